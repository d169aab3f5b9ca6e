package middleware

import (
	"errors"
	"strconv"
	"strings"

	"rastaka_backend/internal/auth"
	"rastaka_backend/internal/logger"
	"rastaka_backend/internal/models"
	"rastaka_backend/pkg/apperrors"
	"rastaka_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware - проверка Bearer JWT
func AuthMiddleware(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("Authorization header missing or invalid"))
			return
		}

		tokenStr := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		claims, err := tokens.ParseToken(tokenStr)
		if err != nil {
			appErr := apperrors.ErrInvalidToken
			if errors.Is(err, auth.ErrExpiredToken) {
				appErr = appErr.WithMessage("Token expired")
			}
			apperrors.HandleError(c, appErr)
			return
		}

		c.Set(contextkeys.UserIDKey, claims.UserID)
		c.Set(contextkeys.RoleKey, models.AdminRole(claims.Role))
		c.Set(contextkeys.EmailKey, claims.Email)

		ctx := logger.WithUserID(c.Request.Context(), strconv.FormatInt(claims.UserID, 10))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// OptionalAuthMiddleware - как AuthMiddleware, но запрос без заголовка
// Authorization пропускается анонимно
func OptionalAuthMiddleware(tokens *auth.TokenManager) gin.HandlerFunc {
	required := AuthMiddleware(tokens)
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.Next()
			return
		}
		required(c)
	}
}

// RequireRoles - доступ только для перечисленных ролей
func RequireRoles(roles ...models.AdminRole) gin.HandlerFunc {
	roleSet := make(map[models.AdminRole]bool, len(roles))
	for _, r := range roles {
		roleSet[r] = true
	}

	return func(c *gin.Context) {
		role, ok := GetRole(c)
		if !ok {
			apperrors.HandleError(c, apperrors.NewForbiddenError("Access denied: no role"))
			return
		}
		if !roleSet[role] {
			apperrors.HandleError(c, apperrors.ErrInsufficientPermissions)
			return
		}
		c.Next()
	}
}

// RequirePermission - доступ по разрешению роли (auth.Permissions)
func RequirePermission(permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetRole(c)
		if !ok || !auth.HasPermission(string(role), permission) {
			apperrors.HandleError(c, apperrors.ErrInsufficientPermissions)
			return
		}
		c.Next()
	}
}

// GetUserID извлекает ID администратора из контекста
func GetUserID(c *gin.Context) (int64, bool) {
	v, exists := c.Get(contextkeys.UserIDKey)
	if !exists {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}

func GetRole(c *gin.Context) (models.AdminRole, bool) {
	v, exists := c.Get(contextkeys.RoleKey)
	if !exists {
		return "", false
	}
	switch role := v.(type) {
	case models.AdminRole:
		return role, true
	case string:
		return models.AdminRole(role), true
	default:
		return "", false
	}
}
