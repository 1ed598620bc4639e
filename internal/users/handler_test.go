package users

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/afrinov/expo-backend/internal/models"
	"github.com/afrinov/expo-backend/internal/store"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func setupRouter(t *testing.T) (*gin.Engine, *Repository) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	repo := NewRepository(store.NewMemoryStore(), nil)
	handler := NewHandler(repo, nil)

	r := gin.New()
	r.GET("/users", handler.List)
	r.DELETE("/users/:id", handler.Delete)
	return r, repo
}

func TestListOmitsPasswordHashes(t *testing.T) {
	r, _ := setupRouter(t)

	req, _ := http.NewRequest(http.MethodGet, "/users", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	assert.NotContains(t, w.Body.String(), "$2a$")
	assert.NotContains(t, w.Body.String(), "\"password\"")

	var resp envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	var list []models.UserPublic
	require.NoError(t, json.Unmarshal(resp.Data, &list))
	assert.Len(t, list, 6)
}

func TestDeleteProtectedUserReturnsForbidden(t *testing.T) {
	r, repo := setupRouter(t)

	admin, err := repo.GetByEmail(context.Background(), models.ProtectedUserEmail)
	require.NoError(t, err)

	req, _ := http.NewRequest(http.MethodDelete, "/users/"+admin.ID, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestDeleteUnknownUserReturnsNotFound(t *testing.T) {
	r, _ := setupRouter(t)

	req, _ := http.NewRequest(http.MethodDelete, "/users/missing", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
