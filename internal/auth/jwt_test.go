package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret", 1)
	userID := uuid.New()

	token, err := svc.Generate(userID, "ana@example.com", "facilitator")
	require.NoError(t, err)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "ana@example.com", claims.Email)
	assert.Equal(t, "facilitator", claims.Role)
	assert.NotEmpty(t, claims.ID, "token id is required for signout revocation")
}

func TestJWTWrongSecret(t *testing.T) {
	token, err := NewJWTService("secret-a", 1).Generate(uuid.New(), "x@example.com", "user")
	require.NoError(t, err)

	_, err = NewJWTService("secret-b", 1).Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTExpired(t *testing.T) {
	svc := NewJWTService("test-secret", 1)
	claims := Claims{
		UserID: uuid.New(),
		Email:  "x@example.com",
		Role:   "user",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			ID:        uuid.New().String(),
		},
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = svc.Validate(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTGarbage(t *testing.T) {
	_, err := NewJWTService("test-secret", 1).Validate("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
