package form

import "errors"

var (
	ErrUnknownField   = errors.New("form: unknown field")
	ErrDuplicateField = errors.New("form: duplicate field name")
)
