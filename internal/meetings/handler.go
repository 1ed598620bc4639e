package meetings

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/afrinov/expo-backend/internal/models"
	"github.com/afrinov/expo-backend/internal/participants"
	"github.com/afrinov/expo-backend/pkg/response"
)

// Handler exposes one meeting agenda's endpoints. Pairing candidates come
// from the event's participant roster.
type Handler struct {
	repo         *Repository
	participants *participants.Repository
	logger       *zap.Logger
}

func NewHandler(repo *Repository, participantRepo *participants.Repository, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{repo: repo, participants: participantRepo, logger: logger}
}

type meetingRequest struct {
	Title          string `json:"title" binding:"required"`
	Participant1ID string `json:"participant1Id" binding:"required"`
	Participant2ID string `json:"participant2Id" binding:"required"`
	Date           string `json:"date" binding:"required"`
	Time           string `json:"time" binding:"required"`
	Location       string `json:"location"`
	Notes          string `json:"notes"`
}

func (req *meetingRequest) toModel() models.Meeting {
	return models.Meeting{
		Title:          req.Title,
		Participant1ID: req.Participant1ID,
		Participant2ID: req.Participant2ID,
		Date:           req.Date,
		Time:           req.Time,
		Location:       req.Location,
		Notes:          req.Notes,
	}
}

func (h *Handler) pool(c *gin.Context, eventID string) ([]models.Participant, bool) {
	roster, err := h.participants.ListFor(c.Request.Context(), eventID)
	if err != nil {
		h.logger.Error("failed to load participants", zap.Error(err), zap.String("event_id", eventID))
		response.Internal(c, "Failed to load participants")
		return nil, false
	}
	return EligibleParticipants(roster), true
}

// List returns an event's meetings in chronological order, optionally
// filtered by search text and date.
func (h *Handler) List(c *gin.Context) {
	eventID := c.Param("id")
	meetings, err := h.repo.ListFor(c.Request.Context(), eventID)
	if err != nil {
		h.logger.Error("failed to list meetings", zap.Error(err), zap.String("event_id", eventID))
		response.Internal(c, "Failed to fetch meetings")
		return
	}

	search := strings.ToLower(c.Query("search"))
	date := c.Query("date")

	out := make([]models.Meeting, 0, len(meetings))
	for _, m := range meetings {
		if search != "" &&
			!strings.Contains(strings.ToLower(m.Title), search) &&
			!strings.Contains(strings.ToLower(m.Participant1Name), search) &&
			!strings.Contains(strings.ToLower(m.Participant2Name), search) &&
			!strings.Contains(strings.ToLower(m.Location), search) {
			continue
		}
		if date != "" && m.Date != date {
			continue
		}
		out = append(out, m)
	}
	response.OK(c, out)
}

// Candidates returns the matchmaking pool, narrowed to valid partners when
// the "for" query names an already chosen participant.
func (h *Handler) Candidates(c *gin.Context) {
	pool, ok := h.pool(c, c.Param("id"))
	if !ok {
		return
	}
	response.OK(c, CandidatesFor(pool, c.Query("for")))
}

// Create schedules a meeting after re-validating the pair against the
// current roster.
func (h *Handler) Create(c *gin.Context) {
	eventID := c.Param("id")
	var req meetingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	pool, ok := h.pool(c, eventID)
	if !ok {
		return
	}
	if err := ValidatePairing(pool, req.Participant1ID, req.Participant2ID); err != nil {
		response.UnprocessableEntity(c, err.Error())
		return
	}

	meeting := req.toModel()
	Snapshot(&meeting, pool)
	m, err := h.repo.Create(c.Request.Context(), eventID, meeting)
	if err != nil {
		h.logger.Error("failed to create meeting", zap.Error(err), zap.String("event_id", eventID))
		response.Internal(c, "Failed to create meeting")
		return
	}
	response.Created(c, m)
}

// Update replaces a meeting, re-validating the pair and refreshing the
// snapshots from the current roster.
func (h *Handler) Update(c *gin.Context) {
	eventID := c.Param("id")
	id := c.Param("meetingId")
	var req meetingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	pool, ok := h.pool(c, eventID)
	if !ok {
		return
	}
	if err := ValidatePairing(pool, req.Participant1ID, req.Participant2ID); err != nil {
		response.UnprocessableEntity(c, err.Error())
		return
	}

	meeting := req.toModel()
	Snapshot(&meeting, pool)
	m, err := h.repo.Update(c.Request.Context(), eventID, id, meeting)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c, "Meeting not found")
			return
		}
		h.logger.Error("failed to update meeting", zap.Error(err), zap.String("meeting_id", id))
		response.Internal(c, "Failed to update meeting")
		return
	}
	response.OK(c, m)
}

// Delete cancels a meeting.
func (h *Handler) Delete(c *gin.Context) {
	eventID := c.Param("id")
	id := c.Param("meetingId")
	if err := h.repo.Delete(c.Request.Context(), eventID, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c, "Meeting not found")
			return
		}
		h.logger.Error("failed to delete meeting", zap.Error(err), zap.String("meeting_id", id))
		response.Internal(c, "Failed to delete meeting")
		return
	}
	response.OK(c, gin.H{"message": "Meeting cancelled"})
}
