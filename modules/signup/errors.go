package signup

import "errors"

var (
	// ErrInvalidEncoding is returned for an unknown SIGNUP_API_ENCODING value.
	ErrInvalidEncoding = errors.New("invalid signup api encoding")
	// ErrUnknownField marks a validation request for a field the form does not have.
	ErrUnknownField = errors.New("unknown signup field")
)
