package http

import (
	"github.com/fyrsmithlabs/luna/internal/validation"
)

// requestValidator adapts the shared validator to echo.Validator.
type requestValidator struct{}

// Validate returns an error wrapping validation.ErrInvalid when i fails its tags.
func (requestValidator) Validate(i interface{}) error {
	return validation.Struct(i)
}
