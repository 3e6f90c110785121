package form

import (
	"github.com/dmitrymomot/signupkit/pkg/validator"
)

// Field describes a single form input.
type Field struct {
	Name         string
	Label        string
	Placeholder  string
	InputType    string // HTML input type: text, email, tel, password
	InputMode    string // HTML inputmode hint, optional
	AutoComplete string
	MaxLength    int // rendered as maxlength; enforcement is the sanitizer's job

	// Sanitize cleans raw input before it is stored. Nil keeps input as is.
	Sanitize func(string) string
	// Rules returns the rules for the given value, in evaluation order.
	Rules func(value string) []validator.Rule
}

func (f Field) sanitize(raw string) string {
	if f.Sanitize == nil {
		return raw
	}
	return f.Sanitize(raw)
}

// Check returns the message of the first failing rule, or "".
func (f Field) Check(value string) string {
	if f.Rules == nil {
		return ""
	}
	return validator.Message(validator.First(f.Rules(value)...))
}

// IsSecret reports whether the field holds a password.
func (f Field) IsSecret() bool {
	return f.InputType == "password"
}
