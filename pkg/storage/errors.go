package storage

import "errors"

// Sentinel errors for storage operations.
var (
	// ErrNotFound is returned when an entity does not exist or is owned by
	// a different company than the one in the lookup.
	ErrNotFound = errors.New("entity not found")

	// ErrConflict is returned on a unique-constraint violation, such as a
	// duplicate user email.
	ErrConflict = errors.New("entity already exists")
)
