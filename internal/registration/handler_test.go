package registration

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

	"github.com/afrinov/expo-backend/internal/models"
	"github.com/afrinov/expo-backend/internal/store"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	handler := NewHandler(store.NewMemoryStore(), nil)
	handler.now = func() time.Time { return time.UnixMilli(1748000000000) }

	r := gin.New()
	r.POST("/register/visitor", handler.Register)
	r.GET("/ticket", handler.Ticket)
	r.GET("/ticket/qr-payload", handler.QRPayload)
	return r
}

func register(t *testing.T, r *gin.Engine) models.VisitorRegistration {
	t.Helper()
	body := map[string]string{
		"firstName":  "Awa",
		"lastName":   "Ba",
		"email":      "awa.ba@example.com",
		"profession": "Ingénieure",
		"phone":      "+221770000000",
	}
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req, _ := http.NewRequest(http.MethodPost, "/register/visitor", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	var reg models.VisitorRegistration
	require.NoError(t, json.Unmarshal(resp.Data, &reg))
	return reg
}

func TestRegisterIssuesTimestampTicketID(t *testing.T) {
	r := setupRouter(t)
	reg := register(t, r)
	assert.Equal(t, "AFR-1748000000000", reg.TicketID)
	assert.Equal(t, "Awa", reg.FirstName)
}

func TestTicketReturnsLatestRegistration(t *testing.T) {
	r := setupRouter(t)
	register(t, r)

	req, _ := http.NewRequest(http.MethodGet, "/ticket", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	var reg models.VisitorRegistration
	require.NoError(t, json.Unmarshal(resp.Data, &reg))
	assert.Equal(t, "awa.ba@example.com", reg.Email)
}

func TestTicketWithoutRegistration(t *testing.T) {
	r := setupRouter(t)

	req, _ := http.NewRequest(http.MethodGet, "/ticket", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestQRPayloadContract(t *testing.T) {
	r := setupRouter(t)
	register(t, r)

	req, _ := http.NewRequest(http.MethodGet, "/ticket/qr-payload", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	var payload map[string]string
	require.NoError(t, json.Unmarshal(resp.Data, &payload))

	assert.Equal(t, map[string]string{
		"ticketId": "AFR-1748000000000",
		"name":     "Awa Ba",
		"email":    "awa.ba@example.com",
		"event":    "AFRINOV TECH EXPO 2025",
	}, payload)
}
