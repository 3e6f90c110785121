package apiclient

import "errors"

// Stable error identities; details are wrapped with %w.
var (
	ErrInvalidURL       = errors.New("invalid api url")
	ErrInvalidPayload   = errors.New("invalid api payload")
	ErrRequestFailed    = errors.New("api request failed")
	ErrUnexpectedStatus = errors.New("unexpected api response status")
	ErrTimeout          = errors.New("api request timeout")
)
