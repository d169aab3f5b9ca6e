package models

type Company struct {
	BaseModel
	Name           string `gorm:"type:varchar(255);not null"`
	Description    string `gorm:"type:text"`
	Slug           string `gorm:"type:varchar(255);uniqueIndex;not null"`
	Logo           string `gorm:"type:varchar(500)"`
	SeoTitle       string `gorm:"type:varchar(255)"`
	SeoDescription string `gorm:"type:text"`
	SeoKeywords    string `gorm:"type:text"`

	// Relations
	PortfolioItems []PortfolioItem `gorm:"foreignKey:CompanyID"`
}
