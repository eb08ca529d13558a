// Package auth provides the authenticated principal model and the HTTP
// auth gate for the talentgate API.
//
// A Principal is constructed once per request from a verified session
// token and attached to the request context by the middleware. It is never
// persisted and never shared across requests. Downstream code reads it
// from the context at the handler boundary and threads it explicitly
// through every service call, so the tenant-scoping policy stays
// independently testable.
package auth

import (
	"errors"

	"github.com/talentgate/talentgate/pkg/api"
)

// Principal is the verified identity attached to a request after token
// validation: who is calling, with which role, under which tenant.
type Principal struct {
	UserID    string
	Role      api.Role
	CompanyID string
}

// IsAdmin reports whether the principal carries the ADMIN role.
func (p Principal) IsAdmin() bool {
	return p.Role == api.RoleAdmin
}

// Sentinel errors.
var (
	// ErrInvalidToken is returned by token verification for every failure
	// mode: bad signature, malformed structure, wrong algorithm, expiry.
	// Callers must not learn which one.
	ErrInvalidToken = errors.New("invalid token")

	// ErrUnauthenticated is returned when no usable credential accompanies
	// a protected request.
	ErrUnauthenticated = errors.New("authentication required")
)
