package users

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/afrinov/expo-backend/internal/models"
	"github.com/afrinov/expo-backend/pkg/response"
	"github.com/afrinov/expo-backend/pkg/utils"
)

// Handler exposes user management endpoints.
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

type createRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"required"`
	Status   string `json:"status" binding:"required"`
}

type updateRequest struct {
	Name   string `json:"name" binding:"required"`
	Role   string `json:"role" binding:"required"`
	Status string `json:"status" binding:"required"`
}

type passwordRequest struct {
	Password string `json:"password" binding:"required,min=6"`
}

func validRole(role string) bool {
	switch role {
	case models.RoleAdmin, models.RoleEditor, models.RoleViewer, models.RoleOrganisateur:
		return true
	}
	return false
}

func validStatus(status string) bool {
	switch status {
	case models.UserStatusActive, models.UserStatusInactive, models.UserStatusPending:
		return true
	}
	return false
}

// List returns every user without password hashes.
func (h *Handler) List(c *gin.Context) {
	users, err := h.repo.List(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list users", zap.Error(err))
		response.Internal(c, "Failed to fetch users")
		return
	}
	out := make([]models.UserPublic, 0, len(users))
	for _, u := range users {
		out = append(out, u.ToPublic())
	}
	response.OK(c, out)
}

// Create registers a new user account.
func (h *Handler) Create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}
	if !validRole(req.Role) {
		response.UnprocessableEntity(c, "Unknown role: "+req.Role)
		return
	}
	if !validStatus(req.Status) {
		response.UnprocessableEntity(c, "Unknown status: "+req.Status)
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		h.logger.Error("failed to hash password", zap.Error(err))
		response.Internal(c, "Failed to create user")
		return
	}
	u, err := h.repo.Create(c.Request.Context(), req.Name, req.Email, hash, req.Role, req.Status)
	if err != nil {
		h.logger.Error("failed to create user", zap.Error(err))
		response.Internal(c, "Failed to create user")
		return
	}
	response.Created(c, u.ToPublic())
}

// Update changes a user's name, role, and status. Email and join date are
// fixed at creation.
func (h *Handler) Update(c *gin.Context) {
	id := c.Param("id")
	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}
	if !validRole(req.Role) {
		response.UnprocessableEntity(c, "Unknown role: "+req.Role)
		return
	}
	if !validStatus(req.Status) {
		response.UnprocessableEntity(c, "Unknown status: "+req.Status)
		return
	}

	u, err := h.repo.Update(c.Request.Context(), id, req.Name, req.Role, req.Status)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c, "User not found")
			return
		}
		h.logger.Error("failed to update user", zap.Error(err), zap.String("user_id", id))
		response.Internal(c, "Failed to update user")
		return
	}
	response.OK(c, u.ToPublic())
}

// UpdatePassword resets a user's password.
func (h *Handler) UpdatePassword(c *gin.Context) {
	id := c.Param("id")
	var req passwordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}
	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		h.logger.Error("failed to hash password", zap.Error(err))
		response.Internal(c, "Failed to update password")
		return
	}
	if err := h.repo.UpdatePassword(c.Request.Context(), id, hash); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c, "User not found")
			return
		}
		h.logger.Error("failed to update password", zap.Error(err), zap.String("user_id", id))
		response.Internal(c, "Failed to update password")
		return
	}
	response.OK(c, gin.H{"message": "Password updated"})
}

// Delete removes a user. The primary admin account cannot be deleted.
func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, ErrProtected):
			response.Forbidden(c, "This user cannot be deleted")
		case errors.Is(err, ErrNotFound):
			response.NotFound(c, "User not found")
		default:
			h.logger.Error("failed to delete user", zap.Error(err), zap.String("user_id", id))
			response.Internal(c, "Failed to delete user")
		}
		return
	}
	response.OK(c, gin.H{"message": "User deleted"})
}
