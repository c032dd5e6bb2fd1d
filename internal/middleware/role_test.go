package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func roleRouter(setRole string, required ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/guarded",
		func(c *gin.Context) {
			if setRole != "" {
				c.Set(ContextUserRole, setRole)
			}
		},
		RequireRole(required...),
		func(c *gin.Context) { c.String(http.StatusOK, "ok") },
	)
	return r
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name     string
		role     string
		required []string
		want     int
	}{
		{"admin allowed on admin route", "admin", []string{"admin"}, http.StatusOK},
		{"facilitator allowed on shared route", "facilitator", []string{"facilitator", "admin"}, http.StatusOK},
		{"member blocked from admin route", "user", []string{"admin"}, http.StatusForbidden},
		{"member blocked from facilitator route", "user", []string{"facilitator", "admin"}, http.StatusForbidden},
		{"facilitator blocked from admin route", "facilitator", []string{"admin"}, http.StatusForbidden},
		{"missing context rejected", "", []string{"admin"}, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
			roleRouter(tt.role, tt.required...).ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}
