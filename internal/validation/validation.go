// Package validation provides the struct validator shared by the log store, the forecaster and
// the HTTP layer.
package validation

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/fyrsmithlabs/luna/internal/mood"
)

// ErrInvalid wraps every validation failure returned by Struct.
var ErrInvalid = errors.New("validation failed")

var (
	instance *validator.Validate
	once     sync.Once
)

// Validator returns the process-wide validator with luna's custom tags registered:
//
//	mood  the field is a known mood.Label
func Validator() *validator.Validate {
	once.Do(func() {
		v, err := newValidator()
		if err != nil {
			panic(fmt.Sprintf("validation: %v", err))
		}
		instance = v
	})
	return instance
}

func newValidator() (*validator.Validate, error) {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("mood", validMood); err != nil {
		return nil, fmt.Errorf("registering mood tag: %w", err)
	}
	return v, nil
}

func validMood(fl validator.FieldLevel) bool {
	l, ok := fl.Field().Interface().(mood.Label)
	return ok && l.Valid()
}

// Struct validates s and flattens any failures into one error wrapping ErrInvalid.
func Struct(s interface{}) error {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max", "lte":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	case "mood":
		return field + " is not a known mood"
	case "datetime":
		return fmt.Sprintf("%s must be a date formatted as %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed %q", field, fe.Tag())
	}
}
