package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"rastaka_backend/internal/auth"
	"rastaka_backend/internal/models"
	"rastaka_backend/internal/repositories"
	"rastaka_backend/internal/services/dto"
	"rastaka_backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService() (AuthService, *auth.TokenManager) {
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	return NewAuthService(repositories.NewAdminUserRepository(), tokens), tokens
}

func TestAuthService_RegisterBootstrap(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc, tokens := newAuthService()
	ctx := context.Background()

	// Первый пользователь регистрируется без токена и всегда становится ADMIN
	first, err := svc.Register(ctx, db, "", &dto.RegisterRequest{
		Email: "owner@rastaka.kz", Password: "password123", Name: "Owner", Role: models.AdminRoleEditor,
	})
	require.NoError(t, err)
	assert.Equal(t, models.AdminRoleAdmin, first.User.Role)

	claims, err := tokens.ParseToken(first.Token)
	require.NoError(t, err)
	assert.Equal(t, first.User.ID.Int64(), claims.UserID)

	// Дальше - только администратор
	_, err = svc.Register(ctx, db, "", &dto.RegisterRequest{Email: "x@rastaka.kz", Password: "password123", Name: "X"})
	requireAppError(t, err, http.StatusForbidden)

	_, err = svc.Register(ctx, db, models.AdminRoleEditor, &dto.RegisterRequest{Email: "x@rastaka.kz", Password: "password123", Name: "X"})
	requireAppError(t, err, http.StatusForbidden)

	editor, err := svc.Register(ctx, db, models.AdminRoleAdmin, &dto.RegisterRequest{
		Email: "editor@rastaka.kz", Password: "password123", Name: "Editor", Role: models.AdminRoleEditor,
	})
	require.NoError(t, err)
	assert.Equal(t, models.AdminRoleEditor, editor.User.Role)

	_, err = svc.Register(ctx, db, models.AdminRoleAdmin, &dto.RegisterRequest{Email: "EDITOR@rastaka.kz", Password: "password123", Name: "Dup"})
	requireAppError(t, err, http.StatusConflict)

	_, err = svc.Register(ctx, db, models.AdminRoleAdmin, &dto.RegisterRequest{Email: "short@rastaka.kz", Password: "short", Name: "Short"})
	require.Error(t, err)
}

func TestAuthService_LoginAndMe(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc, _ := newAuthService()
	ctx := context.Background()

	admin := testutil.CreateAdmin(t, db, "admin@rastaka.kz", "password123", models.AdminRoleAdmin)

	resp, err := svc.Login(ctx, db, &dto.LoginRequest{Email: "admin@rastaka.kz", Password: "password123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "admin@rastaka.kz", resp.User.Email)

	_, err = svc.Login(ctx, db, &dto.LoginRequest{Email: "admin@rastaka.kz", Password: "wrong-password"})
	requireAppError(t, err, http.StatusUnauthorized)

	_, err = svc.Login(ctx, db, &dto.LoginRequest{Email: "nobody@rastaka.kz", Password: "password123"})
	requireAppError(t, err, http.StatusUnauthorized)

	me, err := svc.Me(ctx, db, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, admin.Name, me.Name)

	_, err = svc.Me(ctx, db, 999)
	requireAppError(t, err, http.StatusNotFound)
}

func TestAuthService_SeedFirstAdmin(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc, _ := newAuthService()
	ctx := context.Background()

	created, err := svc.SeedFirstAdmin(ctx, db, "", "", "")
	require.NoError(t, err)
	assert.False(t, created)

	created, err = svc.SeedFirstAdmin(ctx, db, "seed@rastaka.kz", "password123", "")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = svc.SeedFirstAdmin(ctx, db, "other@rastaka.kz", "password123", "Other")
	require.NoError(t, err)
	assert.False(t, created)
}
