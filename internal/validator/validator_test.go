package validator

import (
	"testing"

	"rastaka_backend/internal/models"
	"rastaka_backend/internal/services/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_RequiredAndEnum(t *testing.T) {
	v := New()

	err := v.Validate(&dto.CreateClientRequest{Type: "PARTNER"})
	require.Error(t, err)

	vErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Equal(t, "This field is required", vErr.Errors["name"])
	assert.Equal(t, "Must be one of: INDIVIDUAL, COMPANY", vErr.Errors["type"])
}

func TestValidate_Valid(t *testing.T) {
	v := New()

	err := v.Validate(&dto.CreateClientRequest{
		Name:       "Acme",
		Type:       models.ClientTypeCompany,
		WebsiteURL: "https://acme.example",
	})
	assert.NoError(t, err)
}

func TestValidate_OptionalPointerEnums(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(&dto.UpdateWorkRequest{}))

	bad := models.WorkStatus("DELETED")
	err := v.Validate(&dto.UpdateWorkRequest{Status: &bad})
	require.Error(t, err)
	assert.Contains(t, err.(*ValidationError).Errors, "status")

	good := models.WorkStatusArchived
	assert.NoError(t, v.Validate(&dto.UpdateWorkRequest{Status: &good}))
}

func TestValidate_ContactEmail(t *testing.T) {
	v := New()

	err := v.Validate(&dto.ContactRequest{Name: "A", Email: "not-an-email", Message: "hi"})
	require.Error(t, err)
	assert.Equal(t, "Must be a valid email address", err.(*ValidationError).Errors["email"])
}

func TestValidateStruct_NonStructIgnored(t *testing.T) {
	v := New()
	assert.NoError(t, v.ValidateStruct(nil))
	assert.NoError(t, v.ValidateStruct([]string{"a"}))
	assert.NotNil(t, v.Engine())
}

func TestSlugRule(t *testing.T) {
	v := New()
	type req struct {
		Slug string `json:"slug" binding:"slug"`
	}

	assert.NoError(t, v.Validate(&req{Slug: "brand-identity-2"}))
	assert.NoError(t, v.Validate(&req{Slug: "новый-сайт"}))
	assert.Error(t, v.Validate(&req{Slug: "Bad Slug"}))
	assert.Error(t, v.Validate(&req{Slug: "-leading"}))
}

func TestValidationError_Message(t *testing.T) {
	err := &ValidationError{Errors: map[string]string{"b": "two", "a": "one"}}
	assert.Equal(t, "Validation failed: field 'a': one; field 'b': two", err.Error())
}
