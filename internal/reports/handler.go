package reports

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/afrinov/expo-backend/internal/events"
	"github.com/afrinov/expo-backend/pkg/response"
)

// Handler exposes the reporting endpoints.
type Handler struct {
	service *Service
	events  *events.Repository
	logger  *zap.Logger
}

func NewHandler(service *Service, eventRepo *events.Repository, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{service: service, events: eventRepo, logger: logger}
}

// ForEvent returns one event's report.
func (h *Handler) ForEvent(c *gin.Context) {
	id := c.Param("id")
	event, err := h.events.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, events.ErrNotFound) {
			response.NotFound(c, "Event not found")
			return
		}
		h.logger.Error("failed to fetch event", zap.Error(err), zap.String("event_id", id))
		response.Internal(c, "Failed to build report")
		return
	}

	report, err := h.service.ForEvent(c.Request.Context(), *event)
	if err != nil {
		h.logger.Error("failed to build report", zap.Error(err), zap.String("event_id", id))
		response.Internal(c, "Failed to build report")
		return
	}
	response.OK(c, report)
}

// Summary returns the cross-event totals.
func (h *Handler) Summary(c *gin.Context) {
	summary, err := h.service.Overall(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to build summary", zap.Error(err))
		response.Internal(c, "Failed to build summary")
		return
	}
	response.OK(c, summary)
}
