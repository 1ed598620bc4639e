package settings

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/afrinov/expo-backend/internal/middleware"
	"github.com/afrinov/expo-backend/internal/models"
	"github.com/afrinov/expo-backend/internal/store"
	"github.com/afrinov/expo-backend/internal/users"
	"github.com/afrinov/expo-backend/pkg/response"
	"github.com/afrinov/expo-backend/pkg/utils"
)

// Handler exposes the console-wide settings endpoints. Settings are a single
// record; defaults apply until the organizer saves their own.
type Handler struct {
	record *store.Record[models.AppSettings]
	users  *users.Repository
	logger *zap.Logger
}

func NewHandler(s store.Store, userRepo *users.Repository, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		record: store.NewRecord[models.AppSettings](s, store.KeyAppSettings),
		users:  userRepo,
		logger: logger,
	}
}

type settingsRequest struct {
	AppName       string                      `json:"appName" binding:"required"`
	Notifications models.NotificationSettings `json:"notifications"`
	Theme         string                      `json:"theme" binding:"required"`
	DateFormat    string                      `json:"dateFormat" binding:"required"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=6"`
}

func validTheme(theme string) bool {
	switch theme {
	case "light", "dark", "system":
		return true
	}
	return false
}

// Get returns the saved settings, or the defaults when none were saved yet.
func (h *Handler) Get(c *gin.Context) {
	s, ok, err := h.record.Get(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to read settings", zap.Error(err))
		response.Internal(c, "Failed to fetch settings")
		return
	}
	if !ok {
		s = models.DefaultSettings()
	}
	response.OK(c, s)
}

// Update replaces the settings record.
func (h *Handler) Update(c *gin.Context) {
	var req settingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}
	if !validTheme(req.Theme) {
		response.UnprocessableEntity(c, "Unknown theme: "+req.Theme)
		return
	}

	s := models.AppSettings{
		AppName:       req.AppName,
		Notifications: req.Notifications,
		Theme:         req.Theme,
		DateFormat:    req.DateFormat,
	}
	if err := h.record.Put(c.Request.Context(), s); err != nil {
		h.logger.Error("failed to save settings", zap.Error(err))
		response.Internal(c, "Failed to save settings")
		return
	}
	response.OK(c, s)
}

// ChangePassword updates the calling user's password after checking the
// current one.
func (h *Handler) ChangePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	email := c.GetString(middleware.ContextUserEmail)
	if email == "" {
		response.Unauthorized(c, "Not logged in")
		return
	}
	u, err := h.users.GetByEmail(c.Request.Context(), email)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			response.Unauthorized(c, "Not logged in")
			return
		}
		h.logger.Error("failed to look up user", zap.Error(err))
		response.Internal(c, "Failed to change password")
		return
	}
	if !utils.CheckPassword(req.CurrentPassword, u.Password) {
		response.Unauthorized(c, "Current password is incorrect")
		return
	}

	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		h.logger.Error("failed to hash password", zap.Error(err))
		response.Internal(c, "Failed to change password")
		return
	}
	if err := h.users.UpdatePasswordByEmail(c.Request.Context(), email, hash); err != nil {
		h.logger.Error("failed to update password", zap.Error(err))
		response.Internal(c, "Failed to change password")
		return
	}
	response.OK(c, gin.H{"message": "Password changed"})
}
