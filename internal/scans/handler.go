package scans

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/afrinov/expo-backend/internal/models"
	"github.com/afrinov/expo-backend/pkg/queue"
	"github.com/afrinov/expo-backend/pkg/response"
)

// Handler exposes the gate-scan endpoints. The console only reads records;
// gate devices submit scans which are queued and written by the worker.
type Handler struct {
	repo   *Repository
	queue  *queue.Queue
	logger *zap.Logger
}

func NewHandler(repo *Repository, q *queue.Queue, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{repo: repo, queue: q, logger: logger}
}

type ingestRequest struct {
	TicketID        string `json:"ticketId" binding:"required"`
	ParticipantName string `json:"participantName" binding:"required"`
	TicketType      string `json:"ticketType"`
}

// List returns an event's scan records, optionally filtered by search text
// and scan status.
func (h *Handler) List(c *gin.Context) {
	eventID := c.Param("id")
	scans, err := h.repo.ListFor(c.Request.Context(), eventID)
	if err != nil {
		h.logger.Error("failed to list scans", zap.Error(err), zap.String("event_id", eventID))
		response.Internal(c, "Failed to fetch scans")
		return
	}

	search := strings.ToLower(c.Query("search"))
	status := c.Query("status")

	out := make([]models.ScannedTicket, 0, len(scans))
	for _, s := range scans {
		if search != "" &&
			!strings.Contains(strings.ToLower(s.ID), search) &&
			!strings.Contains(strings.ToLower(s.ParticipantName), search) {
			continue
		}
		if status != "" && s.Status != status {
			continue
		}
		out = append(out, s)
	}
	response.OK(c, out)
}

// Ingest accepts a scan from a gate device and queues it for processing.
func (h *Handler) Ingest(c *gin.Context) {
	eventID := c.Param("id")
	var req ingestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	payload := models.ScanPayload{
		EventID:         eventID,
		TicketID:        req.TicketID,
		ParticipantName: req.ParticipantName,
		TicketType:      req.TicketType,
		ScannedAt:       time.Now(),
	}
	if err := h.queue.EnqueueScan(c.Request.Context(), payload); err != nil {
		h.logger.Error("failed to enqueue scan", zap.Error(err), zap.String("event_id", eventID))
		response.Internal(c, "Failed to queue scan")
		return
	}
	response.OK(c, gin.H{"message": "Scan queued", "ticketId": req.TicketID})
}
