package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/afrinov/expo-backend/internal/models"
	"github.com/afrinov/expo-backend/internal/store"
	"github.com/afrinov/expo-backend/internal/users"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mem := store.NewMemoryStore()
	userRepo := users.NewRepository(mem, nil)
	jwtService := NewJWTService("test-secret", 1)
	handler := NewHandler(userRepo, mem, jwtService, nil)

	r := gin.New()
	r.POST("/auth/login", handler.Login)
	r.POST("/auth/logout", handler.Logout)
	r.GET("/auth/me", handler.Me)
	return r
}

func login(t *testing.T, r *gin.Engine, email, password string) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(map[string]string{"email": email, "password": password})
	require.NoError(t, err)
	req, _ := http.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestLoginSuccess(t *testing.T) {
	r := setupRouter(t)

	w := login(t, r, models.ProtectedUserEmail, "sall123")
	require.Equal(t, http.StatusOK, w.Code)

	var resp envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	var data struct {
		Token string            `json:"token"`
		User  models.UserPublic `json:"user"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	assert.NotEmpty(t, data.Token)
	assert.Equal(t, models.RoleAdmin, data.User.Role)

	// Token must validate with the same service settings.
	claims, err := NewJWTService("test-secret", 1).Validate(data.Token)
	require.NoError(t, err)
	assert.Equal(t, models.ProtectedUserEmail, claims.Email)
}

func TestLoginRecordsSession(t *testing.T) {
	r := setupRouter(t)

	w := login(t, r, "conde@gmail.com", "conde123")
	require.Equal(t, http.StatusOK, w.Code)

	req, _ := http.NewRequest(http.MethodGet, "/auth/me", nil)
	mw := httptest.NewRecorder()
	r.ServeHTTP(mw, req)
	require.Equal(t, http.StatusOK, mw.Code)

	var resp envelope
	require.NoError(t, json.Unmarshal(mw.Body.Bytes(), &resp))
	var sess models.Session
	require.NoError(t, json.Unmarshal(resp.Data, &sess))
	assert.Equal(t, "conde@gmail.com", sess.Email)
	assert.Equal(t, models.RoleOrganisateur, sess.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	r := setupRouter(t)
	w := login(t, r, models.ProtectedUserEmail, "wrong")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginUnknownEmail(t *testing.T) {
	r := setupRouter(t)
	w := login(t, r, "nobody@example.com", "whatever")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginInactiveAccountRefused(t *testing.T) {
	r := setupRouter(t)
	// Fatou is seeded inactive with the shared demo password.
	w := login(t, r, "fatou.ndiaye@example.com", "password123")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestLogoutClearsSession(t *testing.T) {
	r := setupRouter(t)
	require.Equal(t, http.StatusOK, login(t, r, models.ProtectedUserEmail, "sall123").Code)

	req, _ := http.NewRequest(http.MethodPost, "/auth/logout", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	req, _ = http.NewRequest(http.MethodGet, "/auth/me", nil)
	mw := httptest.NewRecorder()
	r.ServeHTTP(mw, req)
	assert.Equal(t, http.StatusUnauthorized, mw.Code)
}
