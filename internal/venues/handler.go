package venues

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/stillpoint-community/backend/internal/authz"
	"github.com/stillpoint-community/backend/internal/middleware"
	"github.com/stillpoint-community/backend/internal/models"
	"github.com/stillpoint-community/backend/pkg/response"
)

// Handler handles venue HTTP endpoints.
type Handler struct {
	repo   *Repository
	logger *zap.Logger
}

// NewHandler creates a venues handler.
func NewHandler(repo *Repository, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{repo: repo, logger: logger}
}

// List handles GET /venues with an optional ?cost_level= filter.
func (h *Handler) List(c *gin.Context) {
	costLevel := c.Query("cost_level")
	if costLevel != "" && !models.ValidCostLevel(costLevel) {
		response.BadRequest(c, "cost level must be free, low, medium or high")
		return
	}
	list, err := h.repo.List(c.Request.Context(), costLevel)
	if err != nil {
		h.logger.Error("list venues failed", zap.Error(err))
		response.Internal(c, "failed to list venues")
		return
	}
	response.OK(c, list)
}

// Get handles GET /venues/:id.
func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid venue id")
		return
	}
	v, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		response.NotFound(c, "venue not found")
		return
	}
	response.OK(c, v)
}

type createRequest struct {
	Name        string `json:"name"`
	Location    string `json:"location"`
	Capacity    int    `json:"capacity"`
	ContactInfo string `json:"contact_info"`
	CostLevel   string `json:"cost_level"`
	Notes       string `json:"notes"`
	ImageURL    string `json:"image_url"`
}

func (r *createRequest) validate() string {
	if strings.TrimSpace(r.Name) == "" {
		return "name is required"
	}
	if strings.TrimSpace(r.Location) == "" {
		return "location is required"
	}
	if r.Capacity < 1 {
		return "capacity must be at least 1"
	}
	if strings.TrimSpace(r.ContactInfo) == "" {
		return "contact info is required"
	}
	if !models.ValidCostLevel(r.CostLevel) {
		return "cost level must be free, low, medium or high"
	}
	return ""
}

// Create handles POST /venues: direct publish for facilitators and admins.
func (h *Handler) Create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		response.BadRequest(c, msg)
		return
	}

	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)
	v := &models.Venue{
		Name:        strings.TrimSpace(req.Name),
		Location:    strings.TrimSpace(req.Location),
		Capacity:    req.Capacity,
		ContactInfo: strings.TrimSpace(req.ContactInfo),
		CostLevel:   models.CostLevel(req.CostLevel),
		Notes:       req.Notes,
		ImageURL:    req.ImageURL,
		OwnerID:     userID,
	}
	if err := h.repo.Create(c.Request.Context(), v); err != nil {
		h.logger.Error("publish venue failed", zap.Error(err))
		response.Internal(c, "failed to publish venue")
		return
	}
	response.Created(c, v)
}

type updateRequest struct {
	Name        *string `json:"name"`
	Location    *string `json:"location"`
	Capacity    *int    `json:"capacity"`
	ContactInfo *string `json:"contact_info"`
	CostLevel   *string `json:"cost_level"`
	Notes       *string `json:"notes"`
	ImageURL    *string `json:"image_url"`
}

// Update handles PATCH /venues/:id (owner or admin).
func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid venue id")
		return
	}
	v, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		response.NotFound(c, "venue not found")
		return
	}
	if !h.canEdit(c, v.OwnerID) {
		return
	}

	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if req.Capacity != nil && *req.Capacity < 1 {
		response.BadRequest(c, "capacity must be at least 1")
		return
	}
	if req.CostLevel != nil && !models.ValidCostLevel(*req.CostLevel) {
		response.BadRequest(c, "cost level must be free, low, medium or high")
		return
	}

	updated, err := h.repo.Update(c.Request.Context(), id, UpdateParams{
		Name:        req.Name,
		Location:    req.Location,
		Capacity:    req.Capacity,
		ContactInfo: req.ContactInfo,
		CostLevel:   req.CostLevel,
		Notes:       req.Notes,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		h.logger.Error("update venue failed", zap.Error(err))
		response.Internal(c, "failed to update venue")
		return
	}
	response.OK(c, updated)
}

// Delete handles DELETE /venues/:id (owner or admin).
func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid venue id")
		return
	}
	v, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		response.NotFound(c, "venue not found")
		return
	}
	if !h.canEdit(c, v.OwnerID) {
		return
	}

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		h.logger.Error("delete venue failed", zap.Error(err))
		response.Internal(c, "failed to delete venue")
		return
	}
	response.OK(c, gin.H{"deleted": true})
}

func (h *Handler) canEdit(c *gin.Context, ownerID uuid.UUID) bool {
	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)
	role := models.Role(c.GetString(middleware.ContextUserRole))
	if !authz.For(role, ownerID, userID).CanEdit {
		response.Forbidden(c, "you cannot modify this venue")
		return false
	}
	return true
}
