package members

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/afrinov/expo-backend/internal/models"
	"github.com/afrinov/expo-backend/pkg/response"
)

// Handler exposes the organizing team endpoints.
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

type memberRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone" binding:"required"`
	Address string `json:"address"`
}

func (req *memberRequest) toModel() models.OrganizationMember {
	return models.OrganizationMember{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
	}
}

// List returns members, optionally filtered by search text across name,
// email, phone, and address.
func (h *Handler) List(c *gin.Context) {
	members, err := h.repo.List(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list members", zap.Error(err))
		response.Internal(c, "Failed to fetch members")
		return
	}

	search := strings.ToLower(c.Query("search"))
	if search == "" {
		response.OK(c, members)
		return
	}
	out := make([]models.OrganizationMember, 0, len(members))
	for _, m := range members {
		if strings.Contains(strings.ToLower(m.Name), search) ||
			strings.Contains(strings.ToLower(m.Email), search) ||
			strings.Contains(m.Phone, search) ||
			strings.Contains(strings.ToLower(m.Address), search) {
			out = append(out, m)
		}
	}
	response.OK(c, out)
}

// Create adds a member to the roster.
func (h *Handler) Create(c *gin.Context) {
	var req memberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}
	m, err := h.repo.Create(c.Request.Context(), req.toModel())
	if err != nil {
		h.logger.Error("failed to create member", zap.Error(err))
		response.Internal(c, "Failed to create member")
		return
	}
	response.Created(c, m)
}

// Update replaces a member's fields.
func (h *Handler) Update(c *gin.Context) {
	id := c.Param("id")
	var req memberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}
	m, err := h.repo.Update(c.Request.Context(), id, req.toModel())
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c, "Member not found")
			return
		}
		h.logger.Error("failed to update member", zap.Error(err), zap.String("member_id", id))
		response.Internal(c, "Failed to update member")
		return
	}
	response.OK(c, m)
}

// Delete removes a member from the roster.
func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c, "Member not found")
			return
		}
		h.logger.Error("failed to delete member", zap.Error(err), zap.String("member_id", id))
		response.Internal(c, "Failed to delete member")
		return
	}
	response.OK(c, gin.H{"message": "Member deleted"})
}
