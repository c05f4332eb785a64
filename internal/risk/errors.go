package risk

import "errors"

// Assessment errors.
var (
	ErrEmptySelection = errors.New("no symptoms selected")
)
