package tickets

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/afrinov/expo-backend/internal/models"
	"github.com/afrinov/expo-backend/pkg/response"
)

// Handler exposes per-event ticket type endpoints.
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

type ticketRequest struct {
	Name         string  `json:"name" binding:"required"`
	Price        float64 `json:"price"`
	Quantity     int     `json:"quantity"`
	QuantitySold int     `json:"quantitySold"`
	Description  string  `json:"description"`
}

func (req *ticketRequest) validate(c *gin.Context) bool {
	if req.Price < 0 {
		response.UnprocessableEntity(c, "Price cannot be negative")
		return false
	}
	if req.Quantity < 0 {
		response.UnprocessableEntity(c, "Quantity cannot be negative")
		return false
	}
	if req.QuantitySold < 0 {
		response.UnprocessableEntity(c, "Quantity sold cannot be negative")
		return false
	}
	return true
}

func (req *ticketRequest) toModel() models.TicketType {
	return models.TicketType{
		Name:         req.Name,
		Price:        req.Price,
		Quantity:     req.Quantity,
		QuantitySold: req.QuantitySold,
		Description:  req.Description,
	}
}

// List returns an event's ticket types.
func (h *Handler) List(c *gin.Context) {
	eventID := c.Param("id")
	tickets, err := h.repo.ListFor(c.Request.Context(), eventID)
	if err != nil {
		h.logger.Error("failed to list tickets", zap.Error(err), zap.String("event_id", eventID))
		response.Internal(c, "Failed to fetch tickets")
		return
	}
	response.OK(c, tickets)
}

// Create adds a ticket type to an event.
func (h *Handler) Create(c *gin.Context) {
	eventID := c.Param("id")
	var req ticketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}
	if !req.validate(c) {
		return
	}

	t, err := h.repo.Create(c.Request.Context(), eventID, req.toModel())
	if err != nil {
		h.logger.Error("failed to create ticket", zap.Error(err), zap.String("event_id", eventID))
		response.Internal(c, "Failed to create ticket")
		return
	}
	response.Created(c, t)
}

// Update replaces a ticket type's fields.
func (h *Handler) Update(c *gin.Context) {
	eventID := c.Param("id")
	id := c.Param("ticketId")
	var req ticketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}
	if !req.validate(c) {
		return
	}

	t, err := h.repo.Update(c.Request.Context(), eventID, id, req.toModel())
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c, "Ticket type not found")
			return
		}
		h.logger.Error("failed to update ticket", zap.Error(err), zap.String("ticket_id", id))
		response.Internal(c, "Failed to update ticket")
		return
	}
	response.OK(c, t)
}

// Delete removes a ticket type from an event.
func (h *Handler) Delete(c *gin.Context) {
	eventID := c.Param("id")
	id := c.Param("ticketId")
	if err := h.repo.Delete(c.Request.Context(), eventID, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c, "Ticket type not found")
			return
		}
		h.logger.Error("failed to delete ticket", zap.Error(err), zap.String("ticket_id", id))
		response.Internal(c, "Failed to delete ticket")
		return
	}
	response.OK(c, gin.H{"message": "Ticket type deleted"})
}
