package logbook

import "errors"

// Store errors.
var (
	ErrInvalidEntry = errors.New("invalid log entry")
	ErrEmptyUserID  = errors.New("user_id is required")
	ErrStoreClosed  = errors.New("log store is closed")
)
