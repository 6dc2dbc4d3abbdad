package middleware

import (
	"math"
	"net"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/taskforge/taskforge-api/internal/api/shared"
	"github.com/taskforge/taskforge-api/internal/ratelimit"
)

// RateLimitMiddleware enforces a per-identity request quota.
type RateLimitMiddleware struct {
	limiter ratelimit.Limiter
}

// NewRateLimitMiddleware creates a new RateLimitMiddleware.
func NewRateLimitMiddleware(limiter ratelimit.Limiter) *RateLimitMiddleware {
	if limiter == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("limiter cannot be nil for RateLimitMiddleware")
	}
	return &RateLimitMiddleware{limiter: limiter}
}

// Limit rejects requests over quota with 429 and a Retry-After header.
// The quota is keyed by the authenticated user when available, otherwise
// by client address, so apply this after the auth middleware for
// per-user limiting.
func (m *RateLimitMiddleware) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, retryAfter := m.limiter.Allow(clientIdentity(r))
		if !allowed {
			seconds := int(math.Ceil(retryAfter.Seconds()))
			if seconds < 1 {
				seconds = 1
			}
			w.Header().Set("Retry-After", strconv.Itoa(seconds))
			shared.RespondWithErrorAndLog(w, r,
				http.StatusTooManyRequests, "Too many requests", nil)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// clientIdentity returns the rate-limit key for the request.
func clientIdentity(r *http.Request) string {
	if userID, ok := GetUserID(r); ok && userID != uuid.Nil {
		return userID.String()
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
