package meetings

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/afrinov/expo-backend/internal/models"
	"github.com/afrinov/expo-backend/internal/participants"
	"github.com/afrinov/expo-backend/internal/store"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func setupMeetingRouter(t *testing.T) (*gin.Engine, *participants.Repository, map[string]string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mem := store.NewMemoryStore()
	participantRepo := participants.NewRepository(mem, nil)
	repo := NewRepository(mem, store.KeyEventMeetings, nil)
	handler := NewHandler(repo, participantRepo, nil)

	ctx := context.Background()
	ids := make(map[string]string)
	for _, p := range []models.Participant{
		{Name: "Expo One", Email: "e1@example.com", Type: models.ParticipantExhibitor},
		{Name: "Expo Two", Email: "e2@example.com", Type: models.ParticipantExhibitor},
		{Name: "Invest One", Email: "i1@example.com", Type: models.ParticipantInvestor},
		{Name: "Visitor", Email: "v1@example.com", Type: models.ParticipantVisitor},
	} {
		created, err := participantRepo.Create(ctx, "ev1", p)
		require.NoError(t, err)
		ids[p.Name] = created.ID
	}

	r := gin.New()
	r.GET("/events/:id/meetings", handler.List)
	r.GET("/events/:id/meetings/candidates", handler.Candidates)
	r.POST("/events/:id/meetings", handler.Create)
	r.PUT("/events/:id/meetings/:meetingId", handler.Update)
	r.DELETE("/events/:id/meetings/:meetingId", handler.Delete)
	return r, participantRepo, ids
}

func postMeeting(t *testing.T, r *gin.Engine, body map[string]any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req, _ := http.NewRequest(http.MethodPost, "/events/ev1/meetings", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCandidatesNarrowedByChosenParticipant(t *testing.T) {
	r, _, ids := setupMeetingRouter(t)

	req, _ := http.NewRequest(http.MethodGet, "/events/ev1/meetings/candidates?for="+ids["Expo One"], nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	var pool []models.Participant
	require.NoError(t, json.Unmarshal(resp.Data, &pool))

	// Only the investor can partner an exhibitor; the visitor never
	// enters the pool.
	require.Len(t, pool, 1)
	assert.Equal(t, ids["Invest One"], pool[0].ID)
}

func TestCreateMeetingSnapshotsParticipants(t *testing.T) {
	r, participantRepo, ids := setupMeetingRouter(t)

	w := postMeeting(t, r, map[string]any{
		"title":          "Pitch fintech",
		"participant1Id": ids["Expo One"],
		"participant2Id": ids["Invest One"],
		"date":           "2025-05-13",
		"time":           "10:30",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	var m models.Meeting
	require.NoError(t, json.Unmarshal(resp.Data, &m))
	assert.Equal(t, "Expo One", m.Participant1Name)
	assert.Equal(t, models.ParticipantExhibitor, m.Participant1Type)
	assert.Equal(t, "Invest One", m.Participant2Name)

	// Deleting the participant later leaves the snapshot in place.
	require.NoError(t, participantRepo.Delete(context.Background(), "ev1", ids["Invest One"]))

	req, _ := http.NewRequest(http.MethodGet, "/events/ev1/meetings", nil)
	lw := httptest.NewRecorder()
	r.ServeHTTP(lw, req)
	require.Equal(t, http.StatusOK, lw.Code)

	var listResp envelope
	require.NoError(t, json.Unmarshal(lw.Body.Bytes(), &listResp))
	var meetings []models.Meeting
	require.NoError(t, json.Unmarshal(listResp.Data, &meetings))
	require.Len(t, meetings, 1)
	assert.Equal(t, "Invest One", meetings[0].Participant2Name)
}

func TestCreateMeetingRejectsSelfPairing(t *testing.T) {
	r, _, ids := setupMeetingRouter(t)

	w := postMeeting(t, r, map[string]any{
		"title":          "Solo",
		"participant1Id": ids["Expo One"],
		"participant2Id": ids["Expo One"],
		"date":           "2025-05-13",
		"time":           "10:30",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestCreateMeetingRejectsSameRolePairing(t *testing.T) {
	r, _, ids := setupMeetingRouter(t)

	w := postMeeting(t, r, map[string]any{
		"title":          "Expo vs expo",
		"participant1Id": ids["Expo One"],
		"participant2Id": ids["Expo Two"],
		"date":           "2025-05-13",
		"time":           "10:30",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestListMeetingsChronological(t *testing.T) {
	r, _, ids := setupMeetingRouter(t)

	for _, slot := range []struct{ date, clock string }{
		{"2025-05-14", "09:00"},
		{"2025-05-13", "16:00"},
		{"2025-05-13", "10:30"},
	} {
		w := postMeeting(t, r, map[string]any{
			"title":          "Créneau " + slot.clock,
			"participant1Id": ids["Expo One"],
			"participant2Id": ids["Invest One"],
			"date":           slot.date,
			"time":           slot.clock,
		})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	req, _ := http.NewRequest(http.MethodGet, "/events/ev1/meetings", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	var meetings []models.Meeting
	require.NoError(t, json.Unmarshal(resp.Data, &meetings))
	require.Len(t, meetings, 3)
	assert.Equal(t, "10:30", meetings[0].Time)
	assert.Equal(t, "16:00", meetings[1].Time)
	assert.Equal(t, "2025-05-14", meetings[2].Date)
}
