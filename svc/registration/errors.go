package registration

import "errors"

var (
	ErrSignupFailed     = errors.New("signup failed")
	ErrInvalidResponse  = errors.New("invalid signup response")
	ErrTransportMissing = errors.New("registration transport is required")
)
