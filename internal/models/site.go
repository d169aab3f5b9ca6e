package models

import "gorm.io/datatypes"

// SiteConfig - единственная запись с настройками сайта
type SiteConfig struct {
	BaseModel
	SiteName        string `gorm:"type:varchar(255);not null;default:'Rastaka'"`
	SiteDescription string `gorm:"type:text"`
	Email           string `gorm:"type:varchar(255)"`
	Phone           string `gorm:"type:varchar(50)"`
	Address         string `gorm:"type:text"`
	FacebookURL     string `gorm:"type:varchar(500)"`
	InstagramURL    string `gorm:"type:varchar(500)"`
	TwitterURL      string `gorm:"type:varchar(500)"`
	LinkedinURL     string `gorm:"type:varchar(500)"`
	YoutubeURL      string `gorm:"type:varchar(500)"`
	WhatsappNumber  string `gorm:"type:varchar(50)"`
	FooterText      string `gorm:"type:text"`
}

// SeoConfig - единственная запись с глобальными SEO-настройками
type SeoConfig struct {
	BaseModel
	SiteTitle       string `gorm:"type:varchar(255);not null;default:'Rastaka Portfolio'"`
	SiteDescription string `gorm:"type:text"`
	SiteKeywords    string `gorm:"type:text"`
	OgImage         string `gorm:"type:varchar(500)"`
	TwitterHandle   string `gorm:"type:varchar(100)"`
	// Произвольные meta-теги (name -> content)
	ExtraMeta datatypes.JSONMap `gorm:"type:text"`
}
