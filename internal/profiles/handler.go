package profiles

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/stillpoint-community/backend/internal/middleware"
	"github.com/stillpoint-community/backend/internal/models"
	"github.com/stillpoint-community/backend/pkg/response"
)

// UpdateRequest is the body for PATCH /profile.
type UpdateRequest struct {
	DisplayName  *string  `json:"display_name"`
	Title        *string  `json:"title"`
	Bio          *string  `json:"bio"`
	Approach     *string  `json:"approach"`
	Languages    []string `json:"languages"`
	WorkTypes    []string `json:"work_types"`
	Website      *string  `json:"website"`
	ContactEmail *string  `json:"contact_email"`
	IsPublic     *bool    `json:"is_public"`
	ImageURL     *string  `json:"image_url"`
}

// SetRoleRequest is the body for PATCH /admin/users/:id/role.
type SetRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// Handler handles profile HTTP endpoints.
type Handler struct {
	repo   *Repository
	logger *zap.Logger
}

// NewHandler creates a profiles handler.
func NewHandler(repo *Repository, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{repo: repo, logger: logger}
}

// ListFacilitators handles GET /facilitators (public directory).
func (h *Handler) ListFacilitators(c *gin.Context) {
	list, err := h.repo.ListFacilitators(c.Request.Context())
	if err != nil {
		response.Internal(c, "failed to list facilitators")
		return
	}
	response.OK(c, list)
}

// GetFacilitator handles GET /facilitators/:id.
func (h *Handler) GetFacilitator(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid facilitator id")
		return
	}
	p, err := h.repo.GetFacilitator(c.Request.Context(), id)
	if err != nil {
		response.NotFound(c, "facilitator not found")
		return
	}
	response.OK(c, p)
}

// UpdateProfile handles PATCH /profile (self-edit).
func (h *Handler) UpdateProfile(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if req.DisplayName != nil && *req.DisplayName == "" {
		response.BadRequest(c, "display_name cannot be empty")
		return
	}

	profile, err := h.repo.Update(c.Request.Context(), userID, UpdateParams{
		DisplayName:  req.DisplayName,
		Title:        req.Title,
		Bio:          req.Bio,
		Approach:     req.Approach,
		Languages:    req.Languages,
		WorkTypes:    req.WorkTypes,
		Website:      req.Website,
		ContactEmail: req.ContactEmail,
		IsPublic:     req.IsPublic,
		ImageURL:     req.ImageURL,
	})
	if err != nil {
		h.logger.Error("update profile failed", zap.Error(err), zap.String("profile_id", userID.String()))
		response.Internal(c, "failed to update profile")
		return
	}
	response.OK(c, profile)
}

// ListUsers handles GET /admin/users (admin only).
func (h *Handler) ListUsers(c *gin.Context) {
	list, err := h.repo.List(c.Request.Context())
	if err != nil {
		response.Internal(c, "failed to list users")
		return
	}
	response.OK(c, list)
}

// SetRole handles PATCH /admin/users/:id/role (admin only).
func (h *Handler) SetRole(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return
	}
	var req SetRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if !models.ValidRole(req.Role) {
		response.BadRequest(c, "invalid role")
		return
	}
	if err := h.repo.SetRole(c.Request.Context(), id, models.Role(req.Role)); err != nil {
		response.NotFound(c, "user not found")
		return
	}
	response.OK(c, gin.H{"id": id, "role": req.Role})
}

// Stats handles GET /admin/stats (admin only).
func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.repo.Stats(c.Request.Context())
	if err != nil {
		response.Internal(c, "failed to load stats")
		return
	}
	response.OK(c, stats)
}
