package cycle

import "errors"

// Input errors.
var (
	ErrInvalidCycleLength = errors.New("cycle length must be positive")
)
