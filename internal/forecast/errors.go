package forecast

import "errors"

// Dataset errors.
var (
	ErrDatasetUnavailable = errors.New("dataset unavailable")
	ErrDatasetMalformed   = errors.New("dataset malformed")
)

// Prediction errors.
var (
	ErrModelUnavailable = errors.New("forecast model unavailable")
	ErrDivisionGuard    = errors.New("height must be non-zero")
	ErrInvalidInput     = errors.New("invalid forecast input")
)
