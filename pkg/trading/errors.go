package trading

import "errors"

var (
	// ErrValidation is returned when a request is well-formed but its
	// values are unacceptable.
	ErrValidation = errors.New("validation failed")

	// ErrUnauthorized is returned when the acting user lacks the standing
	// to perform the operation.
	ErrUnauthorized = errors.New("not authorized")
)
