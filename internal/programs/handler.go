package programs

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/afrinov/expo-backend/internal/models"
	"github.com/afrinov/expo-backend/pkg/response"
)

// Handler exposes per-event program endpoints.
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

type sessionRequest struct {
	Title       string `json:"title" binding:"required"`
	Time        string `json:"time" binding:"required"`
	Duration    int    `json:"duration" binding:"required,min=1"`
	Location    string `json:"location"`
	Speaker     string `json:"speaker"`
	Description string `json:"description"`
}

func (req *sessionRequest) validate(c *gin.Context) bool {
	if _, err := time.Parse("15:04", req.Time); err != nil {
		response.UnprocessableEntity(c, "Time must be HH:MM")
		return false
	}
	return true
}

func (req *sessionRequest) toModel() models.ProgramSession {
	return models.ProgramSession{
		Title:       req.Title,
		Time:        req.Time,
		Duration:    req.Duration,
		Location:    req.Location,
		Speaker:     req.Speaker,
		Description: req.Description,
	}
}

// List returns an event's program ordered by start time.
func (h *Handler) List(c *gin.Context) {
	eventID := c.Param("id")
	sessions, err := h.repo.ListFor(c.Request.Context(), eventID)
	if err != nil {
		h.logger.Error("failed to list sessions", zap.Error(err), zap.String("event_id", eventID))
		response.Internal(c, "Failed to fetch program")
		return
	}
	response.OK(c, sessions)
}

// Create adds a session to the program.
func (h *Handler) Create(c *gin.Context) {
	eventID := c.Param("id")
	var req sessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}
	if !req.validate(c) {
		return
	}

	s, err := h.repo.Create(c.Request.Context(), eventID, req.toModel())
	if err != nil {
		h.logger.Error("failed to create session", zap.Error(err), zap.String("event_id", eventID))
		response.Internal(c, "Failed to create session")
		return
	}
	response.Created(c, s)
}

// Update replaces a session's fields.
func (h *Handler) Update(c *gin.Context) {
	eventID := c.Param("id")
	id := c.Param("sessionId")
	var req sessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}
	if !req.validate(c) {
		return
	}

	s, err := h.repo.Update(c.Request.Context(), eventID, id, req.toModel())
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c, "Session not found")
			return
		}
		h.logger.Error("failed to update session", zap.Error(err), zap.String("session_id", id))
		response.Internal(c, "Failed to update session")
		return
	}
	response.OK(c, s)
}

// Delete removes a session from the program.
func (h *Handler) Delete(c *gin.Context) {
	eventID := c.Param("id")
	id := c.Param("sessionId")
	if err := h.repo.Delete(c.Request.Context(), eventID, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c, "Session not found")
			return
		}
		h.logger.Error("failed to delete session", zap.Error(err), zap.String("session_id", id))
		response.Internal(c, "Failed to delete session")
		return
	}
	response.OK(c, gin.H{"message": "Session deleted"})
}
