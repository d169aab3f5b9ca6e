package app_test

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"rastaka_backend/internal/app"
	"rastaka_backend/internal/config"
	"rastaka_backend/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const (
	testBaseURL     = "http://api.test"
	testFrontendURL = "https://rastaka.test"
	adminEmail      = "admin@rastaka.test"
	adminPassword   = "supersecret"
)

// TestServer - полный роутер приложения поверх sqlite в памяти
type TestServer struct {
	Server *httptest.Server
	DB     *gorm.DB
	Config *config.Config
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Server: config.ServerConfig{
			Env:         "test",
			BaseURL:     testBaseURL,
			FrontendURL: testFrontendURL,
		},
		Database: config.DatabaseConfig{Driver: "sqlite"},
		JWT:      config.JWTConfig{Secret: "test_secret_key_12345", TTL: time.Hour},
		Storage: config.StorageConfig{
			Type:         "local",
			BasePath:     t.TempDir(),
			PublicPrefix: "/uploads",
		},
		Upload: config.UploadConfig{
			MaxSize:        5 << 20,
			MaxFiles:       10,
			ThumbnailWidth: 64,
			ImageQuality:   80,
		},
		Slug: config.SlugConfig{MaxAttempts: 100},
	}
}

func NewTestServer(t *testing.T) *TestServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := testConfig(t)
	db := testutil.NewTestDB(t)

	router, _, err := app.SetupRouter(context.Background(), cfg, db)
	require.NoError(t, err)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &TestServer{Server: server, DB: db, Config: cfg}
}

// SendRequest - JSON-запрос; возвращает ответ и тело строкой
func (ts *TestServer) SendRequest(t *testing.T, method, path, token string, body interface{}) (*http.Response, string) {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequest(method, ts.Server.URL+path, reqBody)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return ts.do(t, req, token)
}

type formFile struct {
	Field   string
	Name    string
	Content []byte
}

// SendMultipart - multipart/form-data с полями и файлами
func (ts *TestServer) SendMultipart(t *testing.T, method, path, token string, fields map[string]string, files ...formFile) (*http.Response, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for _, f := range files {
		part, err := w.CreateFormFile(f.Field, f.Name)
		require.NoError(t, err)
		_, err = part.Write(f.Content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req, err := http.NewRequest(method, ts.Server.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return ts.do(t, req, token)
}

func (ts *TestServer) do(t *testing.T, req *http.Request, token string) (*http.Response, string) {
	t.Helper()

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := ts.Server.Client().Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res, string(resBody)
}

// RegisterAdmin регистрирует первого администратора и возвращает его токен
func (ts *TestServer) RegisterAdmin(t *testing.T) string {
	t.Helper()

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"email":    adminEmail,
		"password": adminPassword,
		"name":     "Admin",
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	var auth struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &auth))
	require.NotEmpty(t, auth.Token)
	return auth.Token
}

// RegisterEditor создает редактора от имени администратора и логинится им
func (ts *TestServer) RegisterEditor(t *testing.T, adminToken string) string {
	t.Helper()

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/register", adminToken, map[string]string{
		"email":    "editor@rastaka.test",
		"password": "editorpass",
		"name":     "Editor",
		"role":     "EDITOR",
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	var auth struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &auth))
	return auth.Token
}

func decode(t *testing.T, body string) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(body), &out), body)
	return out
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 120, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}
