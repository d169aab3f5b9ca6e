package models

type ContactSubmission struct {
	BaseModel
	Name    string        `gorm:"type:varchar(255);not null"`
	Email   string        `gorm:"type:varchar(255);not null"`
	Phone   string        `gorm:"type:varchar(50)"`
	Subject string        `gorm:"type:varchar(255)"`
	Message string        `gorm:"type:text;not null"`
	Status  ContactStatus `gorm:"type:varchar(20);not null;default:'UNREAD';index"`
}
