package app_test

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthAndServiceRoutes(t *testing.T) {
	ts := NewTestServer(t)

	res, body := ts.SendRequest(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, `"database":"ok"`)

	res, body = ts.SendRequest(t, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, "go_goroutines")

	res, body = ts.SendRequest(t, http.MethodGet, "/swagger/doc.json", "", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, "/portfolio/{id}")

	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/nothing-here", "", nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Contains(t, body, "NOT_FOUND")
}

func TestAuthFlow(t *testing.T) {
	ts := NewTestServer(t)

	adminToken := ts.RegisterAdmin(t)

	// После первого администратора регистрация без токена закрыта
	res, _ := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"email":    "intruder@rastaka.test",
		"password": "intruderpass",
		"name":     "Intruder",
	})
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	editorToken := ts.RegisterEditor(t, adminToken)

	// Редактор не может регистрировать пользователей
	res, _ = ts.SendRequest(t, http.MethodPost, "/api/v1/auth/register", editorToken, map[string]string{
		"email":    "second@rastaka.test",
		"password": "secondpass",
		"name":     "Second",
	})
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    adminEmail,
		"password": adminPassword,
	})
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.NotEmpty(t, decode(t, body)["token"])

	res, _ = ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    adminEmail,
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/auth/me", editorToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, `"role":"EDITOR"`)

	res, _ = ts.SendRequest(t, http.MethodGet, "/api/v1/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	res, _ = ts.SendRequest(t, http.MethodGet, "/api/v1/auth/me", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestClientWithLogoAndPermissions(t *testing.T) {
	ts := NewTestServer(t)
	adminToken := ts.RegisterAdmin(t)
	editorToken := ts.RegisterEditor(t, adminToken)

	// Без токена запись запрещена
	res, _ := ts.SendMultipart(t, http.MethodPost, "/api/v1/clients", "", map[string]string{
		"name": "Acme", "type": "COMPANY",
	})
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	res, body := ts.SendMultipart(t, http.MethodPost, "/api/v1/clients", editorToken,
		map[string]string{"name": "Acme Studio", "type": "COMPANY"},
		formFile{Field: "logo", Name: "logo.png", Content: pngBytes(t, 20, 20)},
	)
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	client := decode(t, body)["client"].(map[string]interface{})
	assert.Equal(t, "acme-studio", client["slug"])
	logoURL, _ := client["logoUrl"].(string)
	require.True(t, strings.HasPrefix(logoURL, testBaseURL+"/uploads/logo-"), logoURL)

	// Локальный файл раздается по публичному пути
	res, _ = ts.SendRequest(t, http.MethodGet, strings.TrimPrefix(logoURL, testBaseURL), "", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/clients/acme-studio", "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	clientID := client["id"].(string)
	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/clients/id/"+clientID, "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, `"name":"Acme Studio"`)

	res, _ = ts.SendRequest(t, http.MethodGet, "/api/v1/clients/id/abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	res, body = ts.SendRequest(t, http.MethodPatch, "/api/v1/clients/"+clientID, editorToken, map[string]string{})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, body)
	assert.Contains(t, body, "NO_FIELDS_TO_UPDATE")

	res, body = ts.SendRequest(t, http.MethodPatch, "/api/v1/clients/"+clientID, editorToken, map[string]string{"name": "Acme Labs"})
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, `"slug":"acme-labs"`)

	// Удаление - только ADMIN
	res, _ = ts.SendRequest(t, http.MethodDelete, "/api/v1/clients/"+clientID, editorToken, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	res, body = ts.SendRequest(t, http.MethodDelete, "/api/v1/clients/"+clientID, adminToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode, body)

	res, _ = ts.SendRequest(t, http.MethodGet, "/api/v1/clients/acme-labs", "", nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestWorkRoutesShareIDSegment(t *testing.T) {
	ts := NewTestServer(t)
	adminToken := ts.RegisterAdmin(t)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/clients", adminToken, map[string]string{
		"name": "Bolt", "type": "INDIVIDUAL",
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)
	clientID := decode(t, body)["client"].(map[string]interface{})["id"].(string)

	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/tags", adminToken, map[string]string{"name": "Branding"})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)
	tagID := decode(t, body)["tag"].(map[string]interface{})["id"].(string)

	res, body = ts.SendMultipart(t, http.MethodPost, "/api/v1/works", adminToken, map[string]string{
		"clientId": clientID,
		"type":     "WEBSITE",
		"title":    "Landing Page",
		"tagIds":   fmt.Sprintf("[%s]", tagID),
	}, formFile{Field: "file", Name: "cover.png", Content: pngBytes(t, 40, 30)})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	work := decode(t, body)["work"].(map[string]interface{})
	workID := work["id"].(string)
	assert.Equal(t, "landing-page", work["slug"])
	assert.Contains(t, body, `"name":"Branding"`)
	assert.NotNil(t, work["primaryMedia"])

	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/works/landing-page", "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/works/id/"+workID, "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/works/"+workID+"/sections", adminToken, map[string]interface{}{
		"sectionType": "OVERVIEW",
		"title":       "Overview",
		"sortOrder":   1,
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/works/"+workID+"/sections", "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, `"title":"Overview"`)

	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/media/work/"+workID, "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, `"fileType":"IMAGE"`)

	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/works?pageSize=5", "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.EqualValues(t, 1, decode(t, body)["total"])

	res, _ = ts.SendRequest(t, http.MethodGet, "/api/v1/works?status=UNKNOWN", "", nil)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	res, body = ts.SendRequest(t, http.MethodDelete, "/api/v1/works/"+workID, adminToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode, body)
}

func TestPortfolioAndSeo(t *testing.T) {
	ts := NewTestServer(t)
	adminToken := ts.RegisterAdmin(t)

	res, body := ts.SendMultipart(t, http.MethodPost, "/api/v1/companies", adminToken, map[string]string{"name": "Acme Corp"})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)
	companyID := decode(t, body)["company"].(map[string]interface{})["id"].(string)

	// CORPORATE без компании
	res, _ = ts.SendMultipart(t, http.MethodPost, "/api/v1/portfolio", adminToken, map[string]string{
		"title": "No Company", "type": "LOGO", "category": "CORPORATE",
	}, formFile{Field: "media", Name: "a.png", Content: pngBytes(t, 10, 10)})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	res, body = ts.SendMultipart(t, http.MethodPost, "/api/v1/portfolio", adminToken, map[string]string{
		"title":     "Acme Social",
		"type":      "SOCIAL_MEDIA",
		"category":  "CORPORATE",
		"companyId": companyID,
	},
		formFile{Field: "media", Name: "one.png", Content: pngBytes(t, 10, 10)},
		formFile{Field: "media", Name: "two.png", Content: pngBytes(t, 12, 12)},
	)
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	item := decode(t, body)["portfolioItem"].(map[string]interface{})
	assert.Equal(t, "acme-social", item["slug"])
	assert.Nil(t, item["mediaUrl"])
	mediaURLs, ok := item["mediaUrls"].([]interface{})
	require.True(t, ok, body)
	require.Len(t, mediaURLs, 2)
	for _, u := range mediaURLs {
		assert.True(t, strings.HasPrefix(u.(string), testBaseURL+"/uploads/"), u)
	}

	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/portfolio/type/SOCIAL_MEDIA", "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.EqualValues(t, 1, decode(t, body)["count"])

	res, _ = ts.SendRequest(t, http.MethodGet, "/api/v1/portfolio/type/NOPE", "", nil)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/portfolio/slug/acme-social", "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/portfolio/stats", "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, `"total":1`)

	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/companies/"+companyID+"/portfolio", "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.EqualValues(t, 1, decode(t, body)["count"])

	// Компания с работами не удаляется
	res, _ = ts.SendRequest(t, http.MethodDelete, "/api/v1/companies/"+companyID, adminToken, nil)
	assert.Equal(t, http.StatusConflict, res.StatusCode)

	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/seo/metadata/portfolio/acme-social", "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	metadata := decode(t, body)["metadata"].(map[string]interface{})
	assert.Equal(t, testFrontendURL+"/portfolio/acme-social", metadata["url"])
	assert.Equal(t, "article", metadata["type"])

	res, _ = ts.SendRequest(t, http.MethodGet, "/api/v1/seo/metadata/blog/acme-social", "", nil)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/seo/sitemap.xml", "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, res.Header.Get("Content-Type"), "application/xml")
	assert.Contains(t, body, "<urlset")
	assert.Contains(t, body, testFrontendURL+"/portfolio/acme-social")

	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/seo/robots.txt", "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, "Sitemap: "+testFrontendURL+"/sitemap.xml")
}

func TestSiteConfig(t *testing.T) {
	ts := NewTestServer(t)
	adminToken := ts.RegisterAdmin(t)

	res, body := ts.SendRequest(t, http.MethodGet, "/api/v1/config", "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, `"config"`)

	res, _ = ts.SendRequest(t, http.MethodPut, "/api/v1/config", "", map[string]string{"siteName": "Nope"})
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	res, body = ts.SendRequest(t, http.MethodPut, "/api/v1/config", adminToken, map[string]string{
		"siteName": "Rastaka Studio",
		"phone":    "+100200300",
	})
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, `"siteName":"Rastaka Studio"`)

	res, body = ts.SendRequest(t, http.MethodPut, "/api/v1/seo/config", adminToken, map[string]interface{}{
		"siteTitle": "Rastaka",
		"extraMeta": map[string]string{"theme-color": "#000000"},
	})
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/seo/config", "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, `"theme-color":"#000000"`)
}

func TestContactInbox(t *testing.T) {
	ts := NewTestServer(t)
	adminToken := ts.RegisterAdmin(t)
	editorToken := ts.RegisterEditor(t, adminToken)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/contact", "", map[string]string{
		"name":    "Jane",
		"email":   "not-an-email",
		"message": "Hello",
	})
	require.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Contains(t, body, "VALIDATION_FAILED")
	assert.Contains(t, body, `"email"`)

	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/contact", "", map[string]string{
		"name":    "Jane",
		"email":   "jane@example.com",
		"subject": "Website",
		"message": "We need a new website",
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)
	submissionID := decode(t, body)["submission"].(map[string]interface{})["id"].(string)

	res, _ = ts.SendRequest(t, http.MethodGet, "/api/v1/contact/submissions", "", nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/contact/submissions?limit=500", editorToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	list := decode(t, body)
	assert.EqualValues(t, 1, list["total"])
	assert.EqualValues(t, 100, list["limit"])

	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/contact/submissions/"+submissionID, editorToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, `"status":"READ"`)

	res, body = ts.SendRequest(t, http.MethodPatch, "/api/v1/contact/submissions/"+submissionID+"/status", editorToken, map[string]string{"status": "ARCHIVED"})
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/contact/submissions/stats", editorToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, `"archived":1`)

	res, _ = ts.SendRequest(t, http.MethodDelete, "/api/v1/contact/submissions/"+submissionID, editorToken, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	res, _ = ts.SendRequest(t, http.MethodDelete, "/api/v1/contact/submissions/"+submissionID, adminToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
}
