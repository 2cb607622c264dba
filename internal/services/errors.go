package services

import (
	"errors"
	"fmt"
)

// ErrValidation marks errors caused by bad input rather than failures.
// Handlers map anything wrapping it to HTTP 400.
var ErrValidation = errors.New("validation failed")

func validationf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrValidation}, args...)...)
}
