package models

type Client struct {
	BaseModel
	Name        string     `gorm:"type:varchar(255);not null"`
	Type        ClientType `gorm:"type:varchar(20);not null;index"`
	Slug        string     `gorm:"type:varchar(255);uniqueIndex;not null"`
	Description string     `gorm:"type:text"`
	WebsiteURL  string     `gorm:"type:varchar(500)"`
	LogoURL     string     `gorm:"type:varchar(500)"`

	// Relations
	Works []Work `gorm:"foreignKey:ClientID"`
}
