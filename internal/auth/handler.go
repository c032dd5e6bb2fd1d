package auth

import (
	"crypto/rand"
	"encoding/base64"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/stillpoint-community/backend/internal/middleware"
	"github.com/stillpoint-community/backend/internal/models"
	"github.com/stillpoint-community/backend/internal/notify"
	"github.com/stillpoint-community/backend/pkg/response"
	"github.com/stillpoint-community/backend/pkg/utils"
)

const confirmationTokenTTL = 48 * time.Hour

// SignupRequest is the body for POST /auth/signup.
type SignupRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	DisplayName string `json:"display_name" binding:"required"`
}

// SigninRequest is the body for POST /auth/signin.
type SigninRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ResendConfirmationRequest is the body for POST /auth/resend-confirmation.
type ResendConfirmationRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// TokenResponse is the auth response with JWT.
type TokenResponse struct {
	Token   string      `json:"token"`
	Profile interface{} `json:"profile"`
}

// Handler handles auth HTTP endpoints.
type Handler struct {
	repo      *Repository
	jwt       *JWTService
	blacklist *Blacklist
	notify    *notify.Service
	logger    *zap.Logger
}

// NewHandler creates an auth handler.
func NewHandler(repo *Repository, jwt *JWTService, blacklist *Blacklist, notifier *notify.Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{repo: repo, jwt: jwt, blacklist: blacklist, notify: notifier, logger: logger}
}

// Signup handles POST /auth/signup. Creates a profile with role 'user' and
// sends a confirmation email.
func (h *Handler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	if _, err := h.repo.GetByEmail(c.Request.Context(), req.Email); err == nil {
		response.BadRequest(c, "email already registered")
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		response.Internal(c, "failed to hash password")
		return
	}

	profile, err := h.repo.Create(c.Request.Context(), req.Email, hash, req.DisplayName)
	if err != nil {
		h.logger.Error("create profile failed", zap.Error(err))
		response.Internal(c, "failed to create account")
		return
	}

	if err := h.sendConfirmation(c, profile.ID, profile.Email, profile.DisplayName); err != nil {
		h.logger.Error("send confirmation failed", zap.Error(err), zap.String("profile_id", profile.ID.String()))
	}

	token, err := h.jwt.Generate(profile.ID, profile.Email, string(profile.Role))
	if err != nil {
		response.Internal(c, "failed to generate token")
		return
	}
	response.Created(c, TokenResponse{Token: token, Profile: profile})
}

// Signin handles POST /auth/signin.
func (h *Handler) Signin(c *gin.Context) {
	var req SigninRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	profile, err := h.repo.GetByEmail(c.Request.Context(), req.Email)
	if err != nil {
		response.Unauthorized(c, "invalid email or password")
		return
	}
	if !utils.CheckPassword(req.Password, profile.PasswordHash) {
		response.Unauthorized(c, "invalid email or password")
		return
	}

	token, err := h.jwt.Generate(profile.ID, profile.Email, string(profile.Role))
	if err != nil {
		response.Internal(c, "failed to generate token")
		return
	}
	c.JSON(http.StatusOK, response.Body{Success: true, Data: TokenResponse{Token: token, Profile: profile}})
}

// Signout handles POST /auth/signout. Revokes the presented token for its
// remaining lifetime.
func (h *Handler) Signout(c *gin.Context) {
	tokenID := c.GetString(middleware.ContextTokenID)
	if tokenID == "" {
		response.Unauthorized(c, "missing user context")
		return
	}
	if err := h.blacklist.Revoke(c.Request.Context(), tokenID, h.jwt.Expiry()); err != nil {
		h.logger.Error("revoke token failed", zap.Error(err))
		response.Internal(c, "failed to sign out")
		return
	}
	response.OK(c, gin.H{"signed_out": true})
}

// Me handles GET /auth/me. Returns the current profile snapshot.
func (h *Handler) Me(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)
	profile, err := h.repo.GetByID(c.Request.Context(), userID)
	if err != nil {
		response.NotFound(c, "profile not found")
		return
	}
	response.OK(c, profile)
}

// ResendConfirmation handles POST /auth/resend-confirmation. Always responds
// with success so the endpoint cannot be used to probe for accounts.
func (h *Handler) ResendConfirmation(c *gin.Context) {
	var req ResendConfirmationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	profile, err := h.repo.GetByEmail(c.Request.Context(), req.Email)
	if err == nil && profile.EmailConfirmedAt == nil {
		if err := h.sendConfirmation(c, profile.ID, profile.Email, profile.DisplayName); err != nil {
			h.logger.Error("resend confirmation failed", zap.Error(err), zap.String("profile_id", profile.ID.String()))
		}
	}
	response.OK(c, gin.H{"sent": true})
}

// Confirm handles GET /auth/confirm/:token. Single use.
func (h *Handler) Confirm(c *gin.Context) {
	tokenStr := c.Param("token")
	if tokenStr == "" {
		response.BadRequest(c, "token required")
		return
	}

	tok, err := h.repo.GetConfirmationToken(c.Request.Context(), tokenStr)
	if err != nil {
		response.NotFound(c, "invalid or expired token")
		return
	}
	if time.Now().After(tok.ExpiresAt) {
		response.BadRequest(c, "token expired")
		return
	}

	ok, err := h.repo.ConfirmEmail(c.Request.Context(), tok.ID, tok.ProfileID)
	if err != nil {
		h.logger.Error("confirm email failed", zap.Error(err))
		response.Internal(c, "failed to confirm email")
		return
	}
	if !ok {
		response.BadRequest(c, "token already used")
		return
	}
	response.OK(c, gin.H{"confirmed": true})
}

func (h *Handler) sendConfirmation(c *gin.Context, profileID uuid.UUID, email, name string) error {
	tokenStr, err := generateToken()
	if err != nil {
		return err
	}
	tok := &models.ConfirmationToken{
		ProfileID: profileID,
		Token:     tokenStr,
		ExpiresAt: time.Now().Add(confirmationTokenTTL),
	}
	if err := h.repo.CreateConfirmationToken(c.Request.Context(), tok); err != nil {
		return err
	}
	return h.notify.Confirmation(c.Request.Context(), email, name, tokenStr)
}

func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b)[:43], nil
}
