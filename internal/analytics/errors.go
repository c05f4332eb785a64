package analytics

import "errors"

var (
	// ErrStoreRequired is returned by New when no log store is given.
	ErrStoreRequired = errors.New("log store is required")
	// ErrUserRequired is returned when a per-user operation has an empty user id.
	ErrUserRequired = errors.New("user id is required")
)
