package participants

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/afrinov/expo-backend/internal/models"
	"github.com/afrinov/expo-backend/pkg/response"
)

// Handler exposes per-event participant endpoints.
type Handler struct {
	repo   *Repository
	logger *zap.Logger
}

func NewHandler(repo *Repository, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{repo: repo, logger: logger}
}

type participantRequest struct {
	Name         string `json:"name" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Type         string `json:"type" binding:"required"`
	Organization string `json:"organization"`
}

// List returns an event's participants, optionally filtered by search text
// and participant type.
func (h *Handler) List(c *gin.Context) {
	eventID := c.Param("id")
	participants, err := h.repo.ListFor(c.Request.Context(), eventID)
	if err != nil {
		h.logger.Error("failed to list participants", zap.Error(err), zap.String("event_id", eventID))
		response.Internal(c, "Failed to fetch participants")
		return
	}

	search := strings.ToLower(c.Query("search"))
	ptype := c.Query("type")

	out := make([]models.Participant, 0, len(participants))
	for _, p := range participants {
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.Email), search) &&
			!strings.Contains(strings.ToLower(p.Organization), search) {
			continue
		}
		if ptype != "" && p.Type != ptype {
			continue
		}
		out = append(out, p)
	}
	response.OK(c, out)
}

// Create registers a participant for an event.
func (h *Handler) Create(c *gin.Context) {
	eventID := c.Param("id")
	var req participantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}
	if !models.ValidParticipantType(req.Type) {
		response.UnprocessableEntity(c, "Unknown participant type: "+req.Type)
		return
	}

	p, err := h.repo.Create(c.Request.Context(), eventID, models.Participant{
		Name:         req.Name,
		Email:        req.Email,
		Type:         req.Type,
		Organization: req.Organization,
	})
	if err != nil {
		h.logger.Error("failed to create participant", zap.Error(err), zap.String("event_id", eventID))
		response.Internal(c, "Failed to create participant")
		return
	}
	response.Created(c, p)
}

// Update replaces a participant's fields.
func (h *Handler) Update(c *gin.Context) {
	eventID := c.Param("id")
	id := c.Param("participantId")
	var req participantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}
	if !models.ValidParticipantType(req.Type) {
		response.UnprocessableEntity(c, "Unknown participant type: "+req.Type)
		return
	}

	p, err := h.repo.Update(c.Request.Context(), eventID, id, models.Participant{
		Name:         req.Name,
		Email:        req.Email,
		Type:         req.Type,
		Organization: req.Organization,
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c, "Participant not found")
			return
		}
		h.logger.Error("failed to update participant", zap.Error(err), zap.String("participant_id", id))
		response.Internal(c, "Failed to update participant")
		return
	}
	response.OK(c, p)
}

// Delete removes a participant from an event.
func (h *Handler) Delete(c *gin.Context) {
	eventID := c.Param("id")
	id := c.Param("participantId")
	if err := h.repo.Delete(c.Request.Context(), eventID, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c, "Participant not found")
			return
		}
		h.logger.Error("failed to delete participant", zap.Error(err), zap.String("participant_id", id))
		response.Internal(c, "Failed to delete participant")
		return
	}
	response.OK(c, gin.H{"message": "Participant deleted"})
}
