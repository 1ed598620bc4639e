package events

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/afrinov/expo-backend/internal/store"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func setupEventRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	repo := NewRepository(store.NewMemoryStore(), nil)
	handler := NewHandler(repo, nil, nil)

	r := gin.New()
	r.POST("/events", handler.Create)
	r.PUT("/events/:id", handler.Update)
	return r
}

func postEvent(t *testing.T, r *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req, _ := http.NewRequest(http.MethodPost, "/events", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateRejectsZeroCapacity(t *testing.T) {
	r := setupEventRouter(t)

	w := postEvent(t, r, `{"title":"Forum Startups","date":"2025-09-01","location":"Bamako","category":"networking","capacity":0}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postEvent(t, r, `{"title":"Forum Startups","date":"2025-09-01","location":"Bamako","category":"networking","capacity":-5}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateAcceptsPositiveCapacity(t *testing.T) {
	r := setupEventRouter(t)

	w := postEvent(t, r, `{"title":"Forum Startups","date":"2025-09-01","location":"Bamako","category":"networking","capacity":1}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
}

func TestUpdateRejectsZeroCapacity(t *testing.T) {
	r := setupEventRouter(t)

	body := `{"title":"Afrinov Tech Summit 2025","date":"2025-05-12","location":"Dakar","category":"conference","capacity":0}`
	req, _ := http.NewRequest(http.MethodPut, "/events/1", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
