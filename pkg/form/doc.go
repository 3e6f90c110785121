// Package form holds the state of a fixed set of input fields.
//
// Each Field describes one input: how it is rendered (label, placeholder,
// input type), how raw input is cleaned (Sanitize) and which rules it must
// satisfy (Rules). A State tracks the current value and at most one error
// message per field, re-validating a field every time it changes:
//
//	st := form.New(nameField, emailField)
//	clean, err := st.Set("email", " a b@c.com ")
//	if err != nil { ... }                // unknown field
//	msg := st.Error("email")             // "" when the field is valid
//	ok := st.CanSubmit()                 // all fields non-blank and no errors
//
// Only the first failing rule of a field is reported.
//
// A State is not safe for concurrent use; give each view or request its own.
package form
