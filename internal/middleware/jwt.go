package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/stillpoint-community/backend/pkg/response"
)

const (
	// ContextUserID is the key for user ID in gin context.
	ContextUserID = "user_id"
	// ContextUserRole is the key for user role in gin context.
	ContextUserRole = "user_role"
	// ContextUserEmail is the key for user email in gin context.
	ContextUserEmail = "user_email"
	// ContextTokenID is the key for the token ID in gin context.
	ContextTokenID = "token_id"
)

// TokenClaims is the validated token information set on the request context.
type TokenClaims struct {
	UserID  uuid.UUID
	Email   string
	Role    string
	TokenID string
}

// TokenValidator parses and validates a bearer token.
type TokenValidator func(token string) (*TokenClaims, error)

// TokenRevokedFunc reports whether a token ID has been revoked (signed out).
type TokenRevokedFunc func(ctx context.Context, tokenID string) (bool, error)

// JWT returns a middleware that validates the bearer token, rejects revoked
// tokens, and sets user claims in context.
func JWT(validate TokenValidator, revoked TokenRevokedFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Unauthorized(c, "missing authorization header")
			c.Abort()
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, "invalid authorization header")
			c.Abort()
			return
		}
		claims, err := validate(parts[1])
		if err != nil {
			response.Unauthorized(c, "invalid or expired token")
			c.Abort()
			return
		}
		if revoked != nil {
			isRevoked, err := revoked(c.Request.Context(), claims.TokenID)
			if err == nil && isRevoked {
				response.Unauthorized(c, "token has been signed out")
				c.Abort()
				return
			}
		}
		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUserRole, claims.Role)
		c.Set(ContextUserEmail, claims.Email)
		c.Set(ContextTokenID, claims.TokenID)
		c.Next()
	}
}
