package middleware

import (
	"log/slog"
	"net/http"

	h "ticketcheckin/internal/delivery/http/helpers"
	"ticketcheckin/internal/domain"
)

// ScanKey buckets scans by organizer, falling back to the user. It must run
// after RequireAuth.
func ScanKey(r *http.Request) string {
	p, ok := PrincipalFromContext(r.Context())
	if !ok {
		return ""
	}
	if p.OrganizerID != "" {
		return "scan:org:" + p.OrganizerID
	}
	return "scan:user:" + p.UserID
}

// RateLimit returns a wrapper that responds 429 once limiter rejects the key
// for the request. Limiter errors are logged and the request is let through.
func RateLimit(limiter domain.RateLimiter, keyFunc func(*http.Request) string, logger *slog.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			key := keyFunc(r)
			if key == "" {
				next(w, r)
				return
			}
			ok, err := limiter.Allow(r.Context(), key)
			if err != nil {
				logger.WarnContext(r.Context(), "rate limiter unavailable", "error", err)
			}
			if !ok {
				h.WriteJSONError(w, http.StatusTooManyRequests, h.ErrCodeRateLimited, "Too many requests. Try again later.")
				return
			}
			next(w, r)
		}
	}
}
