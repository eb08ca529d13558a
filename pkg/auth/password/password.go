// Package password provides one-way salted password hashing and
// constant-time verification on top of bcrypt.
package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the bcrypt work factor. Cost 10 lands verification in the
// tens of milliseconds on current hardware.
const DefaultCost = 10

// Hasher hashes and verifies passwords with a fixed cost factor.
type Hasher struct {
	cost int
}

// New creates a Hasher with the given bcrypt cost. A cost outside bcrypt's
// supported range falls back to DefaultCost.
func New(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash produces a salted digest of the plaintext. The plaintext is never
// retained or logged.
func (h *Hasher) Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(digest), nil
}

// Verify recomputes the digest and compares in constant time. It returns
// false for any failure, including a malformed digest: callers must not be
// able to distinguish "no such user" from "wrong password" through this
// function's behavior.
func (h *Hasher) Verify(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
