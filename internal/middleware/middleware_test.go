package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"rastaka_backend/internal/auth"
	"rastaka_backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newProtectedRouter(tokens *auth.TokenManager, extra ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	handlers := append([]gin.HandlerFunc{AuthMiddleware(tokens)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		id, _ := GetUserID(c)
		role, _ := GetRole(c)
		c.JSON(http.StatusOK, gin.H{"id": id, "role": role})
	})
	r.GET("/protected", handlers...)
	return r
}

func doRequest(r http.Handler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	tokens := auth.NewTokenManager("secret", time.Hour)
	r := newProtectedRouter(tokens)

	w := doRequest(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "UNAUTHORIZED")

	w = doRequest(r, "garbage")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_TOKEN")

	token, _, err := tokens.GenerateToken(7, "ed@rastaka.com", auth.RoleEditor)
	require.NoError(t, err)
	w = doRequest(r, token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":7,"role":"EDITOR"}`, w.Body.String())
}

func TestRequireRoles(t *testing.T) {
	tokens := auth.NewTokenManager("secret", time.Hour)
	r := newProtectedRouter(tokens, RequireRoles(models.AdminRoleAdmin))

	editor, _, err := tokens.GenerateToken(2, "ed@rastaka.com", auth.RoleEditor)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, doRequest(r, editor).Code)

	admin, _, err := tokens.GenerateToken(1, "admin@rastaka.com", auth.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, doRequest(r, admin).Code)
}

func TestRequirePermission(t *testing.T) {
	tokens := auth.NewTokenManager("secret", time.Hour)
	r := newProtectedRouter(tokens, RequirePermission(auth.PermContentDelete))

	editor, _, err := tokens.GenerateToken(2, "ed@rastaka.com", auth.RoleEditor)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, doRequest(r, editor).Code)

	admin, _, err := tokens.GenerateToken(1, "admin@rastaka.com", auth.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, doRequest(r, admin).Code)
}

func TestRequestIDMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestCORSMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware([]string{"https://rastaka.com/"}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "https://rastaka.com")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://rastaka.com", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
