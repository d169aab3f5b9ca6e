package apperrors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func performError(t *testing.T, err error) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	HandleError(c, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body["error"].(map[string]interface{})
}

func TestHandleError_AppError(t *testing.T) {
	w, body := performError(t, ValidationError(map[string]string{"email": "must be a valid email"}))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, string(CodeValidationFailed), body["code"])
	assert.Equal(t, "validation", body["domain"])
	assert.Equal(t, map[string]interface{}{"email": "must be a valid email"}, body["details"])
}

func TestHandleError_WrappedAndPlain(t *testing.T) {
	wrapped := fmt.Errorf("service: %w", ErrNoFieldsToUpdate("client"))
	w, body := performError(t, wrapped)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, string(CodeNoFieldsToUpdate), body["code"])

	w, body = performError(t, errors.New("disk on fire"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, string(CodeInternalError), body["code"])
}

func TestHandleError_HidesInternalsOutsideDebug(t *testing.T) {
	SetDebug(false)
	t.Cleanup(func() { SetDebug(true) })

	_, body := performError(t, InternalError(errors.New("secret dsn")).WithMessage("db exploded"))
	assert.Equal(t, "Internal server error", body["message"])
	assert.NotContains(t, body, "details")
}

func TestWithDetailsDoesNotMutate(t *testing.T) {
	base := New(CodeNotFound, "client", "Client not found", http.StatusNotFound)
	withDetails := base.WithDetails("x")

	assert.Nil(t, base.Details)
	assert.Equal(t, "x", withDetails.Details)
	assert.True(t, errors.Is(Wrap(base, CodeInternalError, "system", "boom", 500), base))
}
