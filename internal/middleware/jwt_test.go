package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func jwtRouter(validate TokenValidator, revoked TokenRevokedFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", JWT(validate, revoked), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(ContextUserEmail))
	})
	return r
}

func TestJWTMiddleware(t *testing.T) {
	userID := uuid.New()
	validate := func(token string) (*TokenClaims, error) {
		if token != "good" {
			return nil, errors.New("bad token")
		}
		return &TokenClaims{UserID: userID, Email: "ana@example.com", Role: "user", TokenID: "tid-1"}, nil
	}
	notRevoked := func(ctx context.Context, tokenID string) (bool, error) { return false, nil }
	revoked := func(ctx context.Context, tokenID string) (bool, error) { return tokenID == "tid-1", nil }

	tests := []struct {
		name    string
		header  string
		revoked TokenRevokedFunc
		want    int
	}{
		{"valid token", "Bearer good", notRevoked, http.StatusOK},
		{"missing header", "", notRevoked, http.StatusUnauthorized},
		{"malformed header", "good", notRevoked, http.StatusUnauthorized},
		{"wrong scheme", "Basic good", notRevoked, http.StatusUnauthorized},
		{"invalid token", "Bearer bad", notRevoked, http.StatusUnauthorized},
		{"signed-out token", "Bearer good", revoked, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			jwtRouter(validate, tt.revoked).ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
			if tt.want == http.StatusOK {
				assert.Equal(t, "ana@example.com", w.Body.String())
			}
		})
	}
}

func TestJWTMiddlewareSetsTokenID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	validate := func(token string) (*TokenClaims, error) {
		return &TokenClaims{UserID: uuid.New(), Email: "ana@example.com", Role: "user", TokenID: "tid-7"}, nil
	}
	r := gin.New()
	r.POST("/signout", JWT(validate, nil), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(ContextTokenID))
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/signout", nil)
	req.Header.Set("Authorization", "Bearer good")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "tid-7", w.Body.String())
}
