package events

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/stillpoint-community/backend/internal/authz"
	"github.com/stillpoint-community/backend/internal/middleware"
	"github.com/stillpoint-community/backend/internal/models"
	"github.com/stillpoint-community/backend/pkg/response"
)

// CreateRequest is the body for POST /events.
type CreateRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	EventDate   string `json:"event_date" binding:"required"` // YYYY-MM-DD
	StartTime   string `json:"start_time" binding:"required"` // HH:MM
	Location    string `json:"location" binding:"required"`
	Type        string `json:"type" binding:"required"`
	Capacity    int    `json:"capacity" binding:"required,min=1"`
	PriceCents  int    `json:"price_cents"`
	ImageURL    string `json:"image_url"`
}

// UpdateRequest is the body for PATCH /events/:id.
type UpdateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	EventDate   *string `json:"event_date"`
	StartTime   *string `json:"start_time"`
	Location    *string `json:"location"`
	Capacity    *int    `json:"capacity"`
	PriceCents  *int    `json:"price_cents"`
	ImageURL    *string `json:"image_url"`
}

// Handler handles event HTTP endpoints.
type Handler struct {
	repo   *Repository
	logger *zap.Logger
}

// NewHandler creates an events handler.
func NewHandler(repo *Repository, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{repo: repo, logger: logger}
}

func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

func validTime(s string) bool {
	_, err := time.Parse("15:04", s)
	return err == nil
}

// Create handles POST /events (facilitator or admin).
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if !models.ValidEventType(req.Type) {
		response.BadRequest(c, "invalid event type")
		return
	}
	date, err := parseDate(req.EventDate)
	if err != nil {
		response.BadRequest(c, "invalid event_date, want YYYY-MM-DD")
		return
	}
	if !validTime(req.StartTime) {
		response.BadRequest(c, "invalid start_time, want HH:MM")
		return
	}
	if req.PriceCents < 0 {
		response.BadRequest(c, "price_cents cannot be negative")
		return
	}

	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)
	e := &models.Event{
		Title:         req.Title,
		Description:   req.Description,
		EventDate:     date,
		StartTime:     req.StartTime,
		Location:      req.Location,
		Type:          models.EventType(req.Type),
		Capacity:      req.Capacity,
		PriceCents:    req.PriceCents,
		FacilitatorID: userID,
		ImageURL:      req.ImageURL,
	}
	if err := h.repo.Create(c.Request.Context(), e); err != nil {
		h.logger.Error("create event failed", zap.Error(err))
		response.Internal(c, "failed to create event")
		return
	}
	response.Created(c, e)
}

// List handles GET /events. Query ?type= filters by event type.
func (h *Handler) List(c *gin.Context) {
	var eventType *models.EventType
	if t := c.Query("type"); t != "" {
		if !models.ValidEventType(t) {
			response.BadRequest(c, "invalid event type")
			return
		}
		et := models.EventType(t)
		eventType = &et
	}
	list, err := h.repo.List(c.Request.Context(), eventType)
	if err != nil {
		response.Internal(c, "failed to list events")
		return
	}
	response.OK(c, list)
}

// GetByID handles GET /events/:id.
func (h *Handler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid event id")
		return
	}
	e, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		response.NotFound(c, "event not found")
		return
	}
	response.OK(c, e)
}

// Update handles PATCH /events/:id (owner or admin).
func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid event id")
		return
	}
	e, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		response.NotFound(c, "event not found")
		return
	}

	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)
	role := models.Role(c.GetString(middleware.ContextUserRole))
	if !authz.For(role, e.FacilitatorID, userID).CanEdit {
		response.Forbidden(c, "only the facilitator or an admin can edit this event")
		return
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if req.EventDate != nil {
		if _, err := parseDate(*req.EventDate); err != nil {
			response.BadRequest(c, "invalid event_date, want YYYY-MM-DD")
			return
		}
	}
	if req.StartTime != nil && !validTime(*req.StartTime) {
		response.BadRequest(c, "invalid start_time, want HH:MM")
		return
	}
	if req.Capacity != nil && *req.Capacity < 1 {
		response.BadRequest(c, "capacity must be at least 1")
		return
	}
	if req.PriceCents != nil && *req.PriceCents < 0 {
		response.BadRequest(c, "price_cents cannot be negative")
		return
	}

	if err := h.repo.Update(c.Request.Context(), id, UpdateParams{
		Title:       req.Title,
		Description: req.Description,
		EventDate:   req.EventDate,
		StartTime:   req.StartTime,
		Location:    req.Location,
		Capacity:    req.Capacity,
		PriceCents:  req.PriceCents,
		ImageURL:    req.ImageURL,
	}); err != nil {
		h.logger.Error("update event failed", zap.Error(err), zap.String("event_id", id.String()))
		response.Internal(c, "failed to update event")
		return
	}
	updated, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Internal(c, "failed to load event")
		return
	}
	response.OK(c, updated)
}

// Delete handles DELETE /events/:id (owner or admin, zero active registrations).
func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid event id")
		return
	}
	e, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		response.NotFound(c, "event not found")
		return
	}

	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)
	role := models.Role(c.GetString(middleware.ContextUserRole))
	if !authz.For(role, e.FacilitatorID, userID).CanEdit {
		response.Forbidden(c, "only the facilitator or an admin can delete this event")
		return
	}

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrHasRegistrations) {
			response.Conflict(c, "event still has active registrations")
			return
		}
		response.NotFound(c, "event not found")
		return
	}
	response.NoContent(c)
}
