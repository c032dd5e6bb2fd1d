package uploads

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/stillpoint-community/backend/pkg/response"
	"github.com/stillpoint-community/backend/pkg/storage"
)

// imageKinds groups uploads by what they illustrate.
var imageKinds = map[string]bool{
	"profile":  true,
	"event":    true,
	"resource": true,
	"venue":    true,
}

// Handler handles image uploads.
type Handler struct {
	store  *storage.S3
	logger *zap.Logger
}

// NewHandler creates an uploads handler.
func NewHandler(store *storage.S3, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{store: store, logger: logger}
}

// Image handles POST /uploads/image. Multipart field "image", optional form
// value "kind" (profile, event, resource, venue; defaults to profile).
func (h *Handler) Image(c *gin.Context) {
	if h.store == nil {
		response.Internal(c, "image storage is not configured")
		return
	}

	kind := c.PostForm("kind")
	if kind == "" {
		kind = "profile"
	}
	if !imageKinds[kind] {
		response.BadRequest(c, "kind must be profile, event, resource or venue")
		return
	}

	header, err := c.FormFile("image")
	if err != nil {
		response.BadRequest(c, "image file is required")
		return
	}
	if header.Size > storage.MaxImageSize {
		response.BadRequest(c, "image exceeds the 5MB limit")
		return
	}
	contentType := header.Header.Get("Content-Type")
	if !storage.ValidateImageType(contentType, header.Filename) {
		response.BadRequest(c, "only jpeg, png, webp and gif images are accepted")
		return
	}
	if contentType == "" {
		contentType = storage.ContentTypeForFilename(header.Filename)
	}

	file, err := header.Open()
	if err != nil {
		response.Internal(c, "failed to read upload")
		return
	}
	defer file.Close()

	key := storage.ImageKey(kind, header.Filename)
	url, err := h.store.Upload(c.Request.Context(), h.store.ImagesBucket(), key, contentType, file, header.Size)
	if err != nil {
		h.logger.Error("image upload failed", zap.String("key", key), zap.Error(err))
		response.Internal(c, "failed to store image")
		return
	}

	response.Created(c, gin.H{"url": url, "key": key})
}
