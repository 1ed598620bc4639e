package auth

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/afrinov/expo-backend/internal/models"
	"github.com/afrinov/expo-backend/internal/store"
	"github.com/afrinov/expo-backend/internal/users"
	"github.com/afrinov/expo-backend/pkg/response"
	"github.com/afrinov/expo-backend/pkg/utils"
)

// Handler exposes login, logout, and current-session endpoints.
type Handler struct {
	users   *users.Repository
	session *store.Record[models.Session]
	jwt     *JWTService
	logger  *zap.Logger
}

func NewHandler(userRepo *users.Repository, s store.Store, jwt *JWTService, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		users:   userRepo,
		session: store.NewRecord[models.Session](s, store.KeySession),
		jwt:     jwt,
		logger:  logger,
	}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	Token string            `json:"token"`
	User  models.UserPublic `json:"user"`
}

// Login checks credentials against the user roster, records the session,
// and issues a JWT. Inactive accounts are refused.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	u, err := h.users.GetByEmail(c.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			response.Unauthorized(c, "Invalid email or password")
			return
		}
		h.logger.Error("failed to look up user", zap.Error(err))
		response.Internal(c, "Login failed")
		return
	}
	if !utils.CheckPassword(req.Password, u.Password) {
		response.Unauthorized(c, "Invalid email or password")
		return
	}
	if u.Status != models.UserStatusActive {
		response.Forbidden(c, "Account is not active")
		return
	}

	token, err := h.jwt.Generate(u.ID, u.Email, u.Role)
	if err != nil {
		h.logger.Error("failed to generate token", zap.Error(err))
		response.Internal(c, "Login failed")
		return
	}

	sess := models.Session{Email: u.Email, Name: u.Name, Role: u.Role}
	if err := h.session.Put(c.Request.Context(), sess); err != nil {
		h.logger.Error("failed to record session", zap.Error(err))
		response.Internal(c, "Login failed")
		return
	}

	h.logger.Info("user logged in", zap.String("email", u.Email), zap.String("role", u.Role))
	response.OK(c, loginResponse{Token: token, User: u.ToPublic()})
}

// Logout clears the recorded session.
func (h *Handler) Logout(c *gin.Context) {
	if err := h.session.Clear(c.Request.Context()); err != nil {
		h.logger.Error("failed to clear session", zap.Error(err))
		response.Internal(c, "Logout failed")
		return
	}
	response.OK(c, gin.H{"message": "Logged out"})
}

// Me returns the recorded session, if any.
func (h *Handler) Me(c *gin.Context) {
	sess, ok, err := h.session.Get(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to read session", zap.Error(err))
		response.Internal(c, "Failed to fetch session")
		return
	}
	if !ok {
		response.Unauthorized(c, "Not logged in")
		return
	}
	response.OK(c, sess)
}
