package services

import (
	"context"
	"errors"
	"strings"

	"rastaka_backend/internal/auth"
	"rastaka_backend/internal/logger"
	"rastaka_backend/internal/models"
	"rastaka_backend/internal/repositories"
	"rastaka_backend/internal/services/dto"
	"rastaka_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type AuthService interface {
	// Register создает администратора. Пока в системе нет ни одного
	// администратора, регистрация открыта; дальше - только для ADMIN.
	Register(ctx context.Context, db *gorm.DB, actorRole models.AdminRole, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error)
	Me(ctx context.Context, db *gorm.DB, userID int64) (*dto.AdminUserResponse, error)
	// SeedFirstAdmin создает администратора из конфигурации, если их еще нет
	SeedFirstAdmin(ctx context.Context, db *gorm.DB, email, password, name string) (bool, error)
}

type AuthServiceImpl struct {
	adminRepo repositories.AdminUserRepository
	tokens    *auth.TokenManager
}

func NewAuthService(adminRepo repositories.AdminUserRepository, tokens *auth.TokenManager) AuthService {
	return &AuthServiceImpl{
		adminRepo: adminRepo,
		tokens:    tokens,
	}
}

// Register - регистрация администратора/редактора
func (s *AuthServiceImpl) Register(ctx context.Context, db *gorm.DB, actorRole models.AdminRole, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	count, err := s.adminRepo.Count(tx)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if count > 0 && actorRole != models.AdminRoleAdmin {
		return nil, apperrors.ErrInsufficientPermissions
	}

	role := req.Role
	if role == "" {
		role = models.AdminRoleAdmin
	}
	if count == 0 {
		// Первый пользователь всегда администратор
		role = models.AdminRoleAdmin
	}

	user, err := s.createAdmin(tx, req.Email, req.Password, req.Name, role)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "Admin user registered", "user_id", user.ID, "role", user.Role)
	return s.buildAuthResponse(user)
}

// Login - вход по email и паролю
func (s *AuthServiceImpl) Login(ctx context.Context, db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.adminRepo.FindByEmail(db, req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrAdminNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		logger.CtxWarn(ctx, "Failed login attempt", "user_id", user.ID)
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.buildAuthResponse(user)
}

func (s *AuthServiceImpl) Me(ctx context.Context, db *gorm.DB, userID int64) (*dto.AdminUserResponse, error) {
	user, err := s.adminRepo.FindByID(db, userID)
	if err != nil {
		return nil, handleAuthError(err)
	}
	return dto.NewAdminUserResponse(user), nil
}

func (s *AuthServiceImpl) SeedFirstAdmin(ctx context.Context, db *gorm.DB, email, password, name string) (bool, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return false, nil
	}

	count, err := s.adminRepo.Count(db)
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	if name == "" {
		name = "Administrator"
	}
	user, err := s.createAdmin(db, email, password, name, models.AdminRoleAdmin)
	if err != nil {
		return false, err
	}

	logger.CtxInfo(ctx, "First admin created", "user_id", user.ID, "email", user.Email)
	return true, nil
}

func (s *AuthServiceImpl) createAdmin(db *gorm.DB, email, password, name string, role models.AdminRole) (*models.AdminUser, error) {
	if err := auth.ValidatePassword(password); err != nil {
		return nil, apperrors.ErrWeakPassword
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.AdminUser{
		Email:        email,
		PasswordHash: hash,
		Name:         strings.TrimSpace(name),
		Role:         role,
	}
	if err := s.adminRepo.Create(db, user); err != nil {
		return nil, handleAuthError(err)
	}
	return user, nil
}

func (s *AuthServiceImpl) buildAuthResponse(user *models.AdminUser) (*dto.AuthResponse, error) {
	token, expiresAt, err := s.tokens.GenerateToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.AuthResponse{
		User:      dto.NewAdminUserResponse(user),
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

func handleAuthError(err error) error {
	if _, ok := apperrors.AsAppError(err); ok {
		return err
	}
	if errors.Is(err, repositories.ErrAdminNotFound) {
		return apperrors.NotFound(err, "auth", "User not found")
	}
	if errors.Is(err, repositories.ErrAdminAlreadyExists) || errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.ErrEmailAlreadyExists
	}
	return apperrors.InternalError(err)
}
