package registration

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/afrinov/expo-backend/internal/models"
	"github.com/afrinov/expo-backend/internal/store"
	"github.com/afrinov/expo-backend/pkg/response"
)

// qrEventLabel is the fixed event name stamped into ticket QR codes.
const qrEventLabel = "AFRINOV TECH EXPO 2025"

// Handler exposes the public visitor registration endpoints. A single
// record holds the latest registration; each new one replaces it.
type Handler struct {
	record *store.Record[models.VisitorRegistration]
	now    func() time.Time
	logger *zap.Logger
}

func NewHandler(s store.Store, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		record: store.NewRecord[models.VisitorRegistration](s, store.KeyVisitorRegistration),
		now:    time.Now,
		logger: logger,
	}
}

type registerRequest struct {
	FirstName  string `json:"firstName" binding:"required"`
	LastName   string `json:"lastName" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Profession string `json:"profession"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
}

// qrPayload is the JSON encoded into the printed ticket's QR code.
type qrPayload struct {
	TicketID string `json:"ticketId"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Event    string `json:"event"`
}

// ticketID issues a visitor ticket id from the current timestamp, matching
// the AFR-<millis> ids printed on existing tickets.
func (h *Handler) ticketID() string {
	return fmt.Sprintf("AFR-%d", h.now().UnixMilli())
}

// Register records a visitor registration and issues their ticket id.
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	reg := models.VisitorRegistration{
		TicketID:   h.ticketID(),
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		Profession: req.Profession,
		Phone:      req.Phone,
		Address:    req.Address,
	}
	if err := h.record.Put(c.Request.Context(), reg); err != nil {
		h.logger.Error("failed to save registration", zap.Error(err))
		response.Internal(c, "Failed to register")
		return
	}
	h.logger.Info("visitor registered", zap.String("ticket_id", reg.TicketID))
	response.Created(c, reg)
}

// Ticket returns the latest registration for ticket rendering.
func (h *Handler) Ticket(c *gin.Context) {
	reg, ok, err := h.record.Get(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to read registration", zap.Error(err))
		response.Internal(c, "Failed to fetch ticket")
		return
	}
	if !ok {
		response.NotFound(c, "No registration found")
		return
	}
	response.OK(c, reg)
}

// QRPayload returns the JSON document a ticket printer encodes into the QR
// code.
func (h *Handler) QRPayload(c *gin.Context) {
	reg, ok, err := h.record.Get(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to read registration", zap.Error(err))
		response.Internal(c, "Failed to fetch ticket")
		return
	}
	if !ok {
		response.NotFound(c, "No registration found")
		return
	}
	response.OK(c, qrPayload{
		TicketID: reg.TicketID,
		Name:     reg.FirstName + " " + reg.LastName,
		Email:    reg.Email,
		Event:    qrEventLabel,
	})
}
