package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog-backend/internal/config"
	"catalog-backend/pkg/container"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	cfg := &config.Config{
		App:      config.AppConfig{Name: "Catalog API", Environment: "test", Port: "0", Version: "test"},
		Redis:    config.RedisConfig{Enabled: false, BookTTL: time.Minute},
		JWT:      config.JWTConfig{Key: "router-test-jwt-key-0123456789abcdef"},
		Security: config.SecurityConfig{EncryptionKey: "router-test-key", EncryptionIV: "router-test-iv"},
		Store:    config.StoreConfig{Driver: config.StoreDriverMemory},
	}

	c, err := container.NewContainer(cfg)
	require.NoError(t, err)
	t.Cleanup(c.Cleanup)
	return SetupRouter(c)
}

func call(r http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, r http.Handler, email, role, phone string) string {
	t.Helper()
	register := `{"user_name":"u","email":"` + email + `","phone":` + phone + `,"role":"` + role +
		`","date_of_birth":"1990-01-01","password":"pw-123456"}`
	w := call(r, http.MethodPost, "/api/user", "", register)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = call(r, http.MethodPost, "/api/user/login", "", `{"email":"`+email+`","password":"pw-123456"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp["Token"]
}

func TestHealth_InMemory(t *testing.T) {
	r := newTestRouter(t)

	w := call(r, http.MethodGet, "/api/health", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Status string            `json:"status"`
		Checks map[string]string `json:"checks"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, "in-memory", body.Checks["database"])
	assert.Equal(t, "disabled", body.Checks["redis"])
}

func TestCatalogFlow(t *testing.T) {
	r := newTestRouter(t)
	admin := login(t, r, "admin@example.com", "Admin", "1234567890")
	reader := login(t, r, "reader@example.com", "Reader", "1234567891")

	book := `{"title":"Go","author":"Pike","publish_date":"2020-01-01","isbn_number":"978-167883456700",
		"publisher":"P","location":"L","language":"English","genre":"Programming","page_count":100,"price":"10.00"}`

	w := call(r, http.MethodPost, "/api/book", reader, book)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = call(r, http.MethodPost, "/api/book", admin, book)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	id := created["id"].(string)

	w = call(r, http.MethodGet, "/api/book/"+id, reader, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"isbn_number":"************6700"`)

	w = call(r, http.MethodGet, "/api/book", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `"Description":"access denied"`)

	w = call(r, http.MethodDelete, "/api/book/"+id, reader, "")
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = call(r, http.MethodDelete, "/api/book/"+id, admin, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = call(r, http.MethodGet, "/api/book", reader, "")
	assert.Equal(t, http.StatusNoContent, w.Code)
}
