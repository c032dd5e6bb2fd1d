package resources

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

// Handler handles resource HTTP endpoints.
type Handler struct {
	repo   *Repository
	logger *zap.Logger
}

// NewHandler creates a resources handler.
func NewHandler(repo *Repository, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{repo: repo, logger: logger}
}

// List handles GET /resources with optional ?category= and ?type= filters.
func (h *Handler) List(c *gin.Context) {
	category := c.Query("category")
	if category != "" && !models.ValidResourceCategory(category) {
		response.BadRequest(c, "unknown category")
		return
	}
	resourceType := c.Query("type")
	if resourceType != "" && resourceType != string(models.ResourceArticle) && resourceType != string(models.ResourceLink) {
		response.BadRequest(c, "type must be article or link")
		return
	}

	list, err := h.repo.List(c.Request.Context(), category, resourceType)
	if err != nil {
		h.logger.Error("list resources failed", zap.Error(err))
		response.Internal(c, "failed to list resources")
		return
	}
	response.OK(c, list)
}

// Get handles GET /resources/:id.
func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid resource id")
		return
	}
	res, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		response.NotFound(c, "resource not found")
		return
	}
	response.OK(c, res)
}

type createRequest struct {
	Title       string   `json:"title"`
	Author      string   `json:"author"`
	Type        string   `json:"type"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Content     string   `json:"content"`
	URL         string   `json:"url"`
	Tags        []string `json:"tags"`
	ImageURL    string   `json:"image_url"`
}

func (r *createRequest) validate() string {
	return models.ValidateResourceFields(r.Title, r.Author, r.Description, r.Category, r.Type, r.Content, r.URL)
}

// Create handles POST /resources: the direct publish path for facilitators
// and admins, bypassing the review queue.
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
	res := &models.Resource{
		Title:       strings.TrimSpace(req.Title),
		Author:      strings.TrimSpace(req.Author),
		Type:        models.ResourceType(req.Type),
		Category:    req.Category,
		Description: strings.TrimSpace(req.Description),
		Content:     req.Content,
		URL:         req.URL,
		Tags:        req.Tags,
		ImageURL:    req.ImageURL,
		PublishedBy: userID,
	}
	if err := h.repo.Create(c.Request.Context(), res); err != nil {
		h.logger.Error("publish resource failed", zap.Error(err))
		response.Internal(c, "failed to publish resource")
		return
	}
	response.Created(c, res)
}

type updateRequest struct {
	Title       *string  `json:"title"`
	Author      *string  `json:"author"`
	Category    *string  `json:"category"`
	Description *string  `json:"description"`
	Content     *string  `json:"content"`
	URL         *string  `json:"url"`
	Tags        []string `json:"tags"`
	ImageURL    *string  `json:"image_url"`
}

// validateUpdate checks the row as it would look after the patch is applied,
// so a partial update cannot leave an article with a url, a link with
// content, or either with its payload cleared.
func validateUpdate(res *models.Resource, req *updateRequest) string {
	merged := func(p *string, current string) string {
		if p != nil {
			return *p
		}
		return current
	}
	return models.ValidateResourceFields(
		merged(req.Title, res.Title),
		merged(req.Author, res.Author),
		merged(req.Description, res.Description),
		merged(req.Category, res.Category),
		string(res.Type),
		merged(req.Content, res.Content),
		merged(req.URL, res.URL),
	)
}

// Update handles PATCH /resources/:id (publisher or admin).
func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid resource id")
		return
	}
	res, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		response.NotFound(c, "resource not found")
		return
	}
	if !h.canEdit(c, res.PublishedBy) {
		return
	}

	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if msg := validateUpdate(res, &req); msg != "" {
		response.BadRequest(c, msg)
		return
	}

	updated, err := h.repo.Update(c.Request.Context(), id, UpdateParams{
		Title:       req.Title,
		Author:      req.Author,
		Category:    req.Category,
		Description: req.Description,
		Content:     req.Content,
		URL:         req.URL,
		Tags:        req.Tags,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		h.logger.Error("update resource failed", zap.Error(err))
		response.Internal(c, "failed to update resource")
		return
	}
	response.OK(c, updated)
}

// Delete handles DELETE /resources/:id (publisher or admin).
func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid resource id")
		return
	}
	res, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		response.NotFound(c, "resource not found")
		return
	}
	if !h.canEdit(c, res.PublishedBy) {
		return
	}

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		h.logger.Error("delete resource failed", zap.Error(err))
		response.Internal(c, "failed to delete resource")
		return
	}
	response.OK(c, gin.H{"deleted": true})
}

func (h *Handler) canEdit(c *gin.Context, ownerID uuid.UUID) bool {
	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)
	role := models.Role(c.GetString(middleware.ContextUserRole))
	if !authz.For(role, ownerID, userID).CanEdit {
		response.Forbidden(c, "you cannot modify this resource")
		return false
	}
	return true
}
