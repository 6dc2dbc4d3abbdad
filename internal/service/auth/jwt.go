// Package auth verifies bearer credentials issued by the authentication
// subsystem. Token issuance, refresh, and password handling live elsewhere;
// this service only needs an authenticated user identity per request.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Common authentication errors.
var (
	// ErrInvalidToken is returned when a token fails signature or claims
	// validation.
	ErrInvalidToken = errors.New("invalid token")

	// ErrExpiredToken is returned when a token is past its expiry.
	ErrExpiredToken = errors.New("token expired")
)

// Claims carries the authenticated identity extracted from a verified token.
type Claims struct {
	UserID uuid.UUID
}

// JWTService validates bearer tokens.
type JWTService interface {
	// ValidateToken verifies the token signature and standard claims and
	// returns the embedded identity.
	// Returns ErrExpiredToken or ErrInvalidToken on failure.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// hmacJWTService verifies HS256 tokens signed with a shared secret.
type hmacJWTService struct {
	secret []byte
}

// NewHMACJWTService creates a JWTService verifying HS256 signatures with the
// given shared secret.
func NewHMACJWTService(secret string) (JWTService, error) {
	if len(secret) < 32 {
		return nil, fmt.Errorf("%w: secret must be at least 32 bytes", ErrInvalidToken)
	}
	return &hmacJWTService{secret: []byte(secret)}, nil
}

// ValidateToken implements JWTService.ValidateToken
func (s *hmacJWTService) ValidateToken(ctx context.Context, tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	subject, err := claims.GetSubject()
	if err != nil || subject == "" {
		return nil, fmt.Errorf("%w: missing subject claim", ErrInvalidToken)
	}

	userID, err := uuid.Parse(subject)
	if err != nil {
		return nil, fmt.Errorf("%w: subject is not a valid user ID", ErrInvalidToken)
	}

	return &Claims{UserID: userID}, nil
}
