package models

// AdminUser - учетная запись администратора/редактора сайта.
// Публичных пользователей в системе нет.
type AdminUser struct {
	BaseModel
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	Name         string    `gorm:"type:varchar(255);not null"`
	Role         AdminRole `gorm:"type:varchar(20);not null;default:'ADMIN'"`
}
