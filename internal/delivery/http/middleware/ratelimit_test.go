package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"ticketcheckin/internal/domain"
)

type fakeLimiter struct {
	allow bool
	err   error
	keys  []string
}

func (f *fakeLimiter) Allow(_ context.Context, key string) (bool, error) {
	f.keys = append(f.keys, key)
	return f.allow, f.err
}

func TestRateLimit(t *testing.T) {
	tests := []struct {
		name       string
		limiter    *fakeLimiter
		principal  *domain.Principal
		wantStatus int
		wantKey    string
	}{
		{"allowed", &fakeLimiter{allow: true}, &gateStaff, http.StatusOK, "scan:org:org-1"},
		{"rejected", &fakeLimiter{allow: false}, &gateStaff, http.StatusTooManyRequests, "scan:org:org-1"},
		{"store down fails open", &fakeLimiter{allow: true, err: errors.New("redis down")}, &gateStaff, http.StatusOK, "scan:org:org-1"},
		{"user key without organizer", &fakeLimiter{allow: true}, &domain.Principal{UserID: "user-9"}, http.StatusOK, "scan:user:user-9"},
		{"no principal skips limiter", &fakeLimiter{allow: false}, nil, http.StatusOK, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})
			handler := RateLimit(tt.limiter, ScanKey, testLogger)(next)
			req := httptest.NewRequest(http.MethodPost, "http://test/validate", nil)
			if tt.principal != nil {
				req = req.WithContext(SetPrincipal(req.Context(), *tt.principal))
			}
			rr := httptest.NewRecorder()

			handler(rr, req)
			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantKey == "" {
				assert.Empty(t, tt.limiter.keys)
			} else {
				assert.Equal(t, []string{tt.wantKey}, tt.limiter.keys)
			}
		})
	}
}
