package events

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/afrinov/expo-backend/internal/models"
	"github.com/afrinov/expo-backend/pkg/response"
	"github.com/afrinov/expo-backend/pkg/storage"
)

// Handler exposes the event catalog endpoints.
type Handler struct {
	repo   *Repository
	s3     *storage.S3
	logger *zap.Logger
}

// NewHandler creates an event handler. s3 may be nil when image storage is
// not configured.
func NewHandler(repo *Repository, s3 *storage.S3, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{repo: repo, s3: s3, logger: logger}
}

type eventRequest struct {
	Title        string `json:"title" binding:"required"`
	Date         string `json:"date" binding:"required"`
	EndDate      string `json:"endDate"`
	Location     string `json:"location" binding:"required"`
	Description  string `json:"description"`
	Category     string `json:"category" binding:"required"`
	Capacity     int    `json:"capacity" binding:"required,min=1"`
	StatusUpdate string `json:"statusUpdate"`
}

func (req *eventRequest) toModel() models.Event {
	return models.Event{
		Title:        req.Title,
		Date:         req.Date,
		EndDate:      req.EndDate,
		Location:     req.Location,
		Description:  req.Description,
		Category:     req.Category,
		Capacity:     req.Capacity,
		StatusUpdate: req.StatusUpdate,
	}
}

func (req *eventRequest) validate(c *gin.Context) bool {
	if !models.ValidCategory(req.Category) {
		response.UnprocessableEntity(c, "Unknown category: "+req.Category)
		return false
	}
	if req.StatusUpdate != "" && req.StatusUpdate != models.StatusCancelled {
		response.UnprocessableEntity(c, "Status override only supports "+models.StatusCancelled)
		return false
	}
	if req.EndDate != "" && req.EndDate < req.Date {
		response.UnprocessableEntity(c, "End date is before start date")
		return false
	}
	return true
}

type eventView struct {
	models.Event
	Slug string `json:"slug"`
}

func view(e models.Event) eventView {
	return eventView{Event: e, Slug: Slugify(e.Title)}
}

// List returns events, optionally filtered by search text, category, and
// derived status.
func (h *Handler) List(c *gin.Context) {
	events, err := h.repo.List(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list events", zap.Error(err))
		response.Internal(c, "Failed to fetch events")
		return
	}

	search := strings.ToLower(c.Query("search"))
	category := c.Query("category")
	status := c.Query("status")

	out := make([]eventView, 0, len(events))
	for _, e := range events {
		if search != "" &&
			!strings.Contains(strings.ToLower(e.Title), search) &&
			!strings.Contains(strings.ToLower(e.Location), search) {
			continue
		}
		if category != "" && e.Category != category {
			continue
		}
		if status != "" && e.Status != status {
			continue
		}
		out = append(out, view(e))
	}
	response.OK(c, out)
}

// Get returns a single event by id.
func (h *Handler) Get(c *gin.Context) {
	e, err := h.repo.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c, "Event not found")
			return
		}
		h.logger.Error("failed to fetch event", zap.Error(err))
		response.Internal(c, "Failed to fetch event")
		return
	}
	response.OK(c, view(*e))
}

// Create adds a new event to the catalog.
func (h *Handler) Create(c *gin.Context) {
	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}
	if !req.validate(c) {
		return
	}

	e, err := h.repo.Create(c.Request.Context(), req.toModel())
	if err != nil {
		h.logger.Error("failed to create event", zap.Error(err))
		response.Internal(c, "Failed to create event")
		return
	}
	h.logger.Info("event created", zap.String("event_id", e.ID), zap.String("title", e.Title))
	response.Created(c, view(e))
}

// Update replaces an event's fields.
func (h *Handler) Update(c *gin.Context) {
	id := c.Param("id")
	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}
	if !req.validate(c) {
		return
	}

	e, err := h.repo.Update(c.Request.Context(), id, req.toModel())
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c, "Event not found")
			return
		}
		h.logger.Error("failed to update event", zap.Error(err), zap.String("event_id", id))
		response.Internal(c, "Failed to update event")
		return
	}
	response.OK(c, view(e))
}

// Delete removes an event.
func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c, "Event not found")
			return
		}
		h.logger.Error("failed to delete event", zap.Error(err), zap.String("event_id", id))
		response.Internal(c, "Failed to delete event")
		return
	}
	h.logger.Info("event deleted", zap.String("event_id", id))
	response.OK(c, gin.H{"message": "Event deleted"})
}

type uploadURLRequest struct {
	Filename    string `json:"filename" binding:"required"`
	ContentType string `json:"contentType"`
}

// GenerateImageUploadURL returns a pre-signed PUT URL so clients can push a
// cover image straight to the bucket.
func (h *Handler) GenerateImageUploadURL(c *gin.Context) {
	if h.s3 == nil {
		response.Internal(c, "Image storage is not configured")
		return
	}
	id := c.Param("id")
	var req uploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}
	contentType := req.ContentType
	if contentType == "" {
		contentType = storage.ContentTypeForFilename(req.Filename)
	}
	if !storage.ValidateImageFileType(contentType, req.Filename) {
		response.BadRequest(c, "Unsupported image type")
		return
	}
	if _, err := h.repo.Get(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c, "Event not found")
			return
		}
		h.logger.Error("failed to fetch event", zap.Error(err), zap.String("event_id", id))
		response.Internal(c, "Failed to generate upload URL")
		return
	}

	key := storage.ImageKey(id, req.Filename)
	url, err := h.s3.GeneratePresignedUploadURL(c.Request.Context(), h.s3.ImagesBucket(), key, contentType, h.s3.PresignExpire())
	if err != nil {
		h.logger.Error("failed to presign upload", zap.Error(err), zap.String("event_id", id))
		response.Internal(c, "Failed to generate upload URL")
		return
	}
	response.OK(c, gin.H{"uploadUrl": url, "key": key, "contentType": contentType})
}

// UploadImage stores an event's cover image and records its public URL.
func (h *Handler) UploadImage(c *gin.Context) {
	if h.s3 == nil {
		response.Internal(c, "Image storage is not configured")
		return
	}
	id := c.Param("id")

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		response.BadRequest(c, "Missing image file")
		return
	}
	defer file.Close()

	if header.Size > storage.MaxImageFileSize {
		response.BadRequest(c, "Image exceeds the maximum allowed size")
		return
	}
	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = storage.ContentTypeForFilename(header.Filename)
	}
	if !storage.ValidateImageFileType(contentType, header.Filename) {
		response.BadRequest(c, "Unsupported image type")
		return
	}

	prev, err := h.repo.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c, "Event not found")
			return
		}
		h.logger.Error("failed to fetch event", zap.Error(err), zap.String("event_id", id))
		response.Internal(c, "Failed to upload image")
		return
	}

	key := storage.ImageKey(id, header.Filename)
	url, err := h.s3.Upload(c.Request.Context(), h.s3.ImagesBucket(), key, contentType, file, true)
	if err != nil {
		h.logger.Error("failed to upload image", zap.Error(err), zap.String("event_id", id))
		response.Internal(c, "Failed to upload image")
		return
	}

	e, err := h.repo.SetImage(c.Request.Context(), id, url)
	if err != nil {
		h.logger.Error("failed to record image url", zap.Error(err), zap.String("event_id", id))
		response.Internal(c, "Failed to upload image")
		return
	}

	// The replaced cover is garbage once the new URL is recorded.
	if oldKey, ok := h.s3.ImageKeyFromURL(prev.Image); ok && oldKey != key {
		if err := h.s3.DeleteObject(c.Request.Context(), h.s3.ImagesBucket(), oldKey); err != nil {
			h.logger.Warn("failed to delete previous cover image",
				zap.Error(err), zap.String("event_id", id), zap.String("key", oldKey))
		}
	}
	response.OK(c, view(e))
}
