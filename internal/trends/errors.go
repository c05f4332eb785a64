package trends

import (
	"errors"
	"fmt"
)

// ErrInsufficientData is returned when too few entries fall in the window.
var ErrInsufficientData = errors.New("not enough data")

func insufficient(n int) error {
	return fmt.Errorf("%w: %d entries, need at least %d", ErrInsufficientData, n, MinEntries)
}
