package dto

import (
	"time"

	"rastaka_backend/internal/models"
)

// RegisterRequest - создание администратора/редактора
type RegisterRequest struct {
	Email    string           `json:"email" binding:"required,email,max=255"`
	Password string           `json:"password" binding:"required,min=8,max=72"`
	Name     string           `json:"name" binding:"required,max=255"`
	Role     models.AdminRole `json:"role" binding:"omitempty,admin-role"`
}

// LoginRequest - запрос входа
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AdminUserResponse struct {
	ID        ID               `json:"id"`
	Email     string           `json:"email"`
	Name      string           `json:"name"`
	Role      models.AdminRole `json:"role"`
	CreatedAt time.Time        `json:"createdAt"`
}

// AuthResponse - пользователь и access token
type AuthResponse struct {
	User      *AdminUserResponse `json:"user"`
	Token     string             `json:"token"`
	ExpiresAt time.Time          `json:"expiresAt"`
}

func NewAdminUserResponse(u *models.AdminUser) *AdminUserResponse {
	if u == nil {
		return nil
	}
	return &AdminUserResponse{
		ID:        ID(u.ID),
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}
