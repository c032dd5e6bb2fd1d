package registrations

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/stillpoint-community/backend/internal/authz"
	"github.com/stillpoint-community/backend/internal/events"
	"github.com/stillpoint-community/backend/internal/middleware"
	"github.com/stillpoint-community/backend/internal/models"
	"github.com/stillpoint-community/backend/pkg/response"
)

// Handler handles registration HTTP endpoints.
type Handler struct {
	repo      *Repository
	eventRepo *events.Repository
	logger    *zap.Logger
}

// NewHandler creates a registrations handler.
func NewHandler(repo *Repository, eventRepo *events.Repository, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{repo: repo, eventRepo: eventRepo, logger: logger}
}

// Register handles POST /events/:id/register.
func (h *Handler) Register(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid event id")
		return
	}
	if _, err := h.eventRepo.GetByID(c.Request.Context(), eventID); err != nil {
		response.NotFound(c, "event not found")
		return
	}

	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)
	reg, err := h.repo.Create(c.Request.Context(), eventID, userID)
	if err != nil {
		switch {
		case errors.Is(err, ErrAlreadyRegistered):
			response.Conflict(c, "already registered for this event")
		case errors.Is(err, ErrEventFull):
			response.Conflict(c, "event is full")
		default:
			h.logger.Error("create registration failed", zap.Error(err), zap.String("event_id", eventID.String()))
			response.Internal(c, "failed to register")
		}
		return
	}
	response.Created(c, reg)
}

// Cancel handles DELETE /registrations/:id. The registration's owner or an
// admin may cancel; cancelling twice is a no-op.
func (h *Handler) Cancel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid registration id")
		return
	}
	reg, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		response.NotFound(c, "registration not found")
		return
	}

	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)
	role := models.Role(c.GetString(middleware.ContextUserRole))
	if !authz.For(role, reg.UserID, userID).CanEdit {
		response.Forbidden(c, "not your registration")
		return
	}

	if err := h.repo.Cancel(c.Request.Context(), id); err != nil {
		h.logger.Error("cancel registration failed", zap.Error(err), zap.String("registration_id", id.String()))
		response.Internal(c, "failed to cancel registration")
		return
	}
	response.OK(c, gin.H{"cancelled": true})
}

// ListParticipants handles GET /events/:id/participants (event facilitator or admin).
func (h *Handler) ListParticipants(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid event id")
		return
	}
	e, err := h.eventRepo.GetByID(c.Request.Context(), eventID)
	if err != nil {
		response.NotFound(c, "event not found")
		return
	}

	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)
	role := models.Role(c.GetString(middleware.ContextUserRole))
	if !authz.For(role, e.FacilitatorID, userID).CanEdit {
		response.Forbidden(c, "only the facilitator or an admin can view participants")
		return
	}

	list, err := h.repo.ListParticipants(c.Request.Context(), eventID)
	if err != nil {
		response.Internal(c, "failed to list participants")
		return
	}
	response.OK(c, list)
}

// MyEvents handles GET /my-events: events the caller facilitates and events
// they are registered for.
func (h *Handler) MyEvents(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)

	facilitating, err := h.eventRepo.ListByFacilitator(c.Request.Context(), userID)
	if err != nil {
		response.Internal(c, "failed to list events")
		return
	}
	attending, err := h.repo.ListByUser(c.Request.Context(), userID)
	if err != nil {
		response.Internal(c, "failed to list registrations")
		return
	}
	response.OK(c, gin.H{"facilitating": facilitating, "attending": attending})
}
