package auth

import "errors"

// Роли администраторов (совпадают с models.AdminRole)
const (
	RoleAdmin  = "ADMIN"
	RoleEditor = "EDITOR"
)

// Разрешения
const (
	PermContentWrite  = "content:write"
	PermContentDelete = "content:delete"
	PermUsersWrite    = "users:write"
	PermInboxRead     = "inbox:read"
	PermInboxDelete   = "inbox:delete"
)

// Permissions - разрешения по ролям. Редактор ведет контент и входящие,
// но ничего не удаляет и не создает пользователей.
var Permissions = map[string][]string{
	RoleAdmin: {
		PermContentWrite,
		PermContentDelete,
		PermUsersWrite,
		PermInboxRead,
		PermInboxDelete,
	},
	RoleEditor: {
		PermContentWrite,
		PermInboxRead,
	},
}

// HasPermission проверяет есть ли у роли указанное разрешение
func HasPermission(role, permission string) bool {
	permissions, exists := Permissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}
	return false
}

func CanPerformAction(claims *Claims, permission string) bool {
	return claims != nil && HasPermission(claims.Role, permission)
}

func IsAdmin(claims *Claims) bool {
	return claims != nil && claims.Role == RoleAdmin
}

// ValidateRole проверяет валидность роли
func ValidateRole(role string) error {
	switch role {
	case RoleAdmin, RoleEditor:
		return nil
	default:
		return errors.New("invalid role")
	}
}
