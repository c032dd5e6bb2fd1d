package submissions

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/stillpoint-community/backend/internal/middleware"
	"github.com/stillpoint-community/backend/internal/models"
	"github.com/stillpoint-community/backend/internal/notify"
	"github.com/stillpoint-community/backend/pkg/response"
)

// ProfileLookup resolves a profile for the submission acknowledgement email.
type ProfileLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error)
}

// Handler handles submission HTTP endpoints.
type Handler struct {
	store    *PgStore
	workflow *Workflow
	notifier *notify.Service
	profiles ProfileLookup
	logger   *zap.Logger
}

// NewHandler creates a submissions handler. notifier may be nil.
func NewHandler(store *PgStore, workflow *Workflow, notifier *notify.Service, profiles ProfileLookup, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{store: store, workflow: workflow, notifier: notifier, profiles: profiles, logger: logger}
}

type resourceRequest struct {
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

func (r *resourceRequest) validate() string {
	return models.ValidateResourceFields(r.Title, r.Author, r.Description, r.Category, r.Type, r.Content, r.URL)
}

// SubmitResource handles POST /resources/submissions.
func (h *Handler) SubmitResource(c *gin.Context) {
	var req resourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		response.BadRequest(c, msg)
		return
	}

	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)
	sub := &models.ResourceSubmission{
		Title:       strings.TrimSpace(req.Title),
		Author:      strings.TrimSpace(req.Author),
		Type:        models.ResourceType(req.Type),
		Category:    req.Category,
		Description: strings.TrimSpace(req.Description),
		Content:     req.Content,
		URL:         req.URL,
		Tags:        req.Tags,
		ImageURL:    req.ImageURL,
		SubmittedBy: userID,
	}
	if err := h.store.CreateResource(c.Request.Context(), sub); err != nil {
		h.logger.Error("create resource submission failed", zap.Error(err))
		response.Internal(c, "failed to submit resource")
		return
	}
	h.acknowledge(c, userID, DomainResource, sub.Title)
	response.Created(c, sub)
}

type venueRequest struct {
	Name        string `json:"name"`
	Location    string `json:"location"`
	Capacity    int    `json:"capacity"`
	ContactInfo string `json:"contact_info"`
	CostLevel   string `json:"cost_level"`
	Notes       string `json:"notes"`
	ImageURL    string `json:"image_url"`
}

func (r *venueRequest) validate() string {
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

// SubmitVenue handles POST /venues/submissions.
func (h *Handler) SubmitVenue(c *gin.Context) {
	var req venueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		response.BadRequest(c, msg)
		return
	}

	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)
	sub := &models.VenueSubmission{
		Name:        strings.TrimSpace(req.Name),
		Location:    strings.TrimSpace(req.Location),
		Capacity:    req.Capacity,
		ContactInfo: strings.TrimSpace(req.ContactInfo),
		CostLevel:   models.CostLevel(req.CostLevel),
		Notes:       req.Notes,
		ImageURL:    req.ImageURL,
		SubmittedBy: userID,
	}
	if err := h.store.CreateVenue(c.Request.Context(), sub); err != nil {
		h.logger.Error("create venue submission failed", zap.Error(err))
		response.Internal(c, "failed to submit venue")
		return
	}
	h.acknowledge(c, userID, DomainVenue, sub.Name)
	response.Created(c, sub)
}

type applicationRequest struct {
	Experience        string   `json:"experience"`
	Title             string   `json:"title"`
	Bio               string   `json:"bio"`
	YearsOfExperience int      `json:"years_of_experience"`
	Certifications    []string `json:"certifications"`
	WorkTypes         []string `json:"work_types"`
	Languages         []string `json:"languages"`
	Availability      string   `json:"availability"`
	ReferenceInfo     string   `json:"reference_info"`
	ContactEmail      string   `json:"contact_email"`
	Website           string   `json:"website"`
}

// SubmitApplication handles POST /facilitator-applications.
func (h *Handler) SubmitApplication(c *gin.Context) {
	var req applicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Experience) == "" {
		response.BadRequest(c, "experience is required")
		return
	}
	if req.YearsOfExperience < 0 {
		response.BadRequest(c, "years of experience cannot be negative")
		return
	}

	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)
	role := models.Role(c.GetString(middleware.ContextUserRole))
	if role != models.RoleUser {
		response.Conflict(c, "you already facilitate")
		return
	}

	app := &models.FacilitatorApplication{
		ApplicantID:       userID,
		Experience:        strings.TrimSpace(req.Experience),
		Title:             req.Title,
		Bio:               req.Bio,
		YearsOfExperience: req.YearsOfExperience,
		Certifications:    req.Certifications,
		WorkTypes:         req.WorkTypes,
		Languages:         req.Languages,
		Availability:      req.Availability,
		ReferenceInfo:     req.ReferenceInfo,
		ContactEmail:      req.ContactEmail,
		Website:           req.Website,
	}
	if err := h.store.CreateApplication(c.Request.Context(), app); err != nil {
		if errors.Is(err, ErrPendingApplication) {
			response.Conflict(c, "an application is already pending")
			return
		}
		h.logger.Error("create facilitator application failed", zap.Error(err))
		response.Internal(c, "failed to submit application")
		return
	}
	h.acknowledge(c, userID, DomainApplication, "Facilitator application")
	response.Created(c, app)
}

// acknowledge enqueues the submission-received email. Best effort.
func (h *Handler) acknowledge(c *gin.Context, userID uuid.UUID, domain Domain, title string) {
	if h.notifier == nil {
		return
	}
	profile, err := h.profiles.GetByID(c.Request.Context(), userID)
	if err != nil {
		h.logger.Warn("submitter lookup failed", zap.Error(err))
		return
	}
	if err := h.notifier.SubmissionReceived(c.Request.Context(), profile.Email, profile.DisplayName, domain.Label(), title); err != nil {
		h.logger.Warn("acknowledgement enqueue failed", zap.Error(err))
	}
}

// PendingResources handles GET /admin/resources/pending.
func (h *Handler) PendingResources(c *gin.Context) {
	list, err := h.store.PendingResources(c.Request.Context())
	if err != nil {
		response.Internal(c, "failed to list pending resources")
		return
	}
	response.OK(c, list)
}

// PendingVenues handles GET /admin/venues/pending.
func (h *Handler) PendingVenues(c *gin.Context) {
	list, err := h.store.PendingVenues(c.Request.Context())
	if err != nil {
		response.Internal(c, "failed to list pending venues")
		return
	}
	response.OK(c, list)
}

// PendingApplications handles GET /admin/facilitator-applications/pending.
func (h *Handler) PendingApplications(c *gin.Context) {
	list, err := h.store.PendingApplications(c.Request.Context())
	if err != nil {
		response.Internal(c, "failed to list pending applications")
		return
	}
	response.OK(c, list)
}

type decideRequest struct {
	Notes string `json:"notes"`
}

// Decide returns a handler that approves or rejects a submission in the
// given domain. One handler serves all six admin decision routes.
func (h *Handler) Decide(domain Domain, approve bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			response.BadRequest(c, "invalid submission id")
			return
		}
		var req decideRequest
		if c.Request.Body != nil && c.Request.ContentLength > 0 {
			if err := c.ShouldBindJSON(&req); err != nil {
				response.BadRequest(c, "invalid request body")
				return
			}
		}

		reviewerID := c.MustGet(middleware.ContextUserID).(uuid.UUID)
		var out *Outcome
		if approve {
			out, err = h.workflow.Approve(c.Request.Context(), domain, id, reviewerID, req.Notes)
		} else {
			out, err = h.workflow.Reject(c.Request.Context(), domain, id, reviewerID, req.Notes)
		}
		if err != nil {
			switch {
			case errors.Is(err, ErrNotFound):
				response.NotFound(c, "submission not found")
			case errors.Is(err, ErrAlreadyReviewed):
				response.Conflict(c, "submission was already reviewed")
			default:
				h.logger.Error("review decision failed",
					zap.String("domain", string(domain)),
					zap.Bool("approve", approve),
					zap.Error(err))
				response.Internal(c, "failed to record decision")
			}
			return
		}
		status := models.StatusRejected
		if approve {
			status = models.StatusApproved
		}
		response.OK(c, gin.H{"id": id, "status": status, "title": out.Title})
	}
}
