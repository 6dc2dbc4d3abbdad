package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskforge/taskforge-api/internal/service/auth"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestNewHMACJWTService(t *testing.T) {
	t.Parallel()

	_, err := auth.NewHMACJWTService("short")
	assert.Error(t, err)

	svc, err := auth.NewHMACJWTService(testSecret)
	require.NoError(t, err)
	assert.NotNil(t, svc)
}

func TestValidateToken(t *testing.T) {
	t.Parallel()

	svc, err := auth.NewHMACJWTService(testSecret)
	require.NoError(t, err)
	ctx := context.Background()

	t.Run("valid token yields claims", func(t *testing.T) {
		t.Parallel()

		userID := uuid.New()
		token := signToken(t, testSecret, jwt.MapClaims{
			"sub": userID.String(),
			"exp": time.Now().Add(time.Hour).Unix(),
		})

		claims, err := svc.ValidateToken(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, userID, claims.UserID)
	})

	t.Run("expired token", func(t *testing.T) {
		t.Parallel()

		token := signToken(t, testSecret, jwt.MapClaims{
			"sub": uuid.New().String(),
			"exp": time.Now().Add(-time.Hour).Unix(),
		})

		_, err := svc.ValidateToken(ctx, token)
		assert.ErrorIs(t, err, auth.ErrExpiredToken)
	})

	t.Run("wrong signature", func(t *testing.T) {
		t.Parallel()

		token := signToken(t, "ffffffffffffffffffffffffffffffff", jwt.MapClaims{
			"sub": uuid.New().String(),
			"exp": time.Now().Add(time.Hour).Unix(),
		})

		_, err := svc.ValidateToken(ctx, token)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("missing subject", func(t *testing.T) {
		t.Parallel()

		token := signToken(t, testSecret, jwt.MapClaims{
			"exp": time.Now().Add(time.Hour).Unix(),
		})

		_, err := svc.ValidateToken(ctx, token)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("subject is not a uuid", func(t *testing.T) {
		t.Parallel()

		token := signToken(t, testSecret, jwt.MapClaims{
			"sub": "user-42",
			"exp": time.Now().Add(time.Hour).Unix(),
		})

		_, err := svc.ValidateToken(ctx, token)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("garbage token", func(t *testing.T) {
		t.Parallel()

		_, err := svc.ValidateToken(ctx, "not-a-token")
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})
}
