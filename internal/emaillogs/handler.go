package emaillogs

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/stillpoint-community/backend/pkg/response"
)

// Handler serves the admin email log listing.
type Handler struct {
	repo   *Repository
	logger *zap.Logger
}

// NewHandler creates an email logs handler.
func NewHandler(repo *Repository, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{repo: repo, logger: logger}
}

// List handles GET /admin/email-logs with an optional ?limit=.
func (h *Handler) List(c *gin.Context) {
	limit := 100
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			response.BadRequest(c, "limit must be a positive number")
			return
		}
		limit = n
	}
	list, err := h.repo.List(c.Request.Context(), limit)
	if err != nil {
		h.logger.Error("list email logs failed", zap.Error(err))
		response.Internal(c, "failed to list email logs")
		return
	}
	response.OK(c, list)
}
