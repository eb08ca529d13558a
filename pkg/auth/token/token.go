// Package token issues and verifies the stateless session tokens of the
// talentgate API.
//
// Tokens are HS256 JWTs signed with a process-wide secret key that is
// loaded once at startup and never mutated. There is no server-side
// session table and no revocation list: a token is valid exactly when its
// signature verifies against the current key and its expiry has not
// passed. Rotating the key invalidates every outstanding token and is the
// only revocation mechanism.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/talentgate/talentgate/pkg/api"
	"github.com/talentgate/talentgate/pkg/auth"
)

// DefaultTTL is the token lifetime used when none is configured. Short
// lifetimes are the mitigation for the missing revocation list.
const DefaultTTL = 24 * time.Hour

// sessionClaims carries the principal inside the JWT. The user id rides
// in the registered subject claim.
type sessionClaims struct {
	Role      string `json:"role"`
	CompanyID string `json:"company_id"`
	jwt.RegisteredClaims
}

// Service issues and verifies session tokens. It holds no mutable state;
// methods are safe for concurrent use.
type Service struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithTTL overrides the token lifetime.
func WithTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithClock injects a clock, used by tests to cross expiry boundaries.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New creates a token service signing with the given secret key.
func New(secretKey []byte, opts ...Option) (*Service, error) {
	if len(secretKey) == 0 {
		return nil, errors.New("token: secret key must not be empty")
	}

	s := &Service{
		key: secretKey,
		ttl: DefaultTTL,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Issue encodes the principal plus an issuance timestamp into a signed
// bearer string.
func (s *Service) Issue(p auth.Principal) (string, error) {
	now := s.now()
	claims := sessionClaims{
		Role:      string(p.Role),
		CompanyID: p.CompanyID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// Verify decodes a bearer string and checks signature, structure, and
// expiry. On any failure it returns auth.ErrInvalidToken and never a
// partially trusted principal. Verification is a pure function of the
// token, the key, and the clock; it performs no store lookups.
func (s *Service) Verify(tokenStr string) (auth.Principal, error) {
	var claims sessionClaims

	parsed, err := jwt.ParseWithClaims(tokenStr, &claims,
		func(t *jwt.Token) (any, error) {
			if t.Method != jwt.SigningMethodHS256 {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return s.key, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid {
		return auth.Principal{}, auth.ErrInvalidToken
	}

	if claims.Subject == "" || claims.CompanyID == "" || !api.Role(claims.Role).Valid() {
		return auth.Principal{}, auth.ErrInvalidToken
	}

	return auth.Principal{
		UserID:    claims.Subject,
		Role:      api.Role(claims.Role),
		CompanyID: claims.CompanyID,
	}, nil
}
