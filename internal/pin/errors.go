package pin

import (
	"errors"
	"fmt"
)

// ErrValidation matches every *ValidationError via errors.Is.
var ErrValidation = errors.New("validation failed")

// ValidationError is a recoverable, user-facing input error. Msg is safe
// to show inline.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Is lets callers test with errors.Is(err, ErrValidation).
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func wrongLength() error {
	return &ValidationError{Msg: fmt.Sprintf("PIN must be exactly %d digits", Length)}
}

func notADigit(n int) error {
	return &ValidationError{Msg: fmt.Sprintf("%d is not a digit 0-9", n)}
}
