package domain

import (
	"errors"
	"slices"
	"time"
)

// ErrInvalidToken is returned by TokenVerifier for any unusable bearer token.
var ErrInvalidToken = errors.New("invalid or expired token")

// Role codes carried in identity tokens.
const (
	RoleAdmin     = "admin"
	RoleOrganizer = "organizer"
	RoleBuyer     = "buyer"
)

// Principal is the authenticated caller, established by the identity
// collaborator before a request reaches the check-in core.
type Principal struct {
	UserID      string
	Email       string
	Roles       []string
	OrganizerID string
}

// HasRole reports whether the principal carries role.
func (p Principal) HasRole(role string) bool {
	return slices.Contains(p.Roles, role)
}

// TokenIssuer issues identity tokens. Only tests and local tooling use it;
// production tokens come from the identity collaborator.
type TokenIssuer interface {
	Issue(p Principal, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a bearer token and returns the principal it names.
type TokenVerifier interface {
	Verify(token string) (Principal, error)
}
