package form

import (
	"fmt"
	"strings"
)

// State holds values and errors for an ordered set of fields.
type State struct {
	fields []Field
	index  map[string]int
	values map[string]string
	errors map[string]string
}

// New creates a State with every field empty and no errors.
// It panics on duplicate field names, which is a programming error.
func New(fields ...Field) *State {
	s := &State{
		fields: make([]Field, 0, len(fields)),
		index:  make(map[string]int, len(fields)),
		values: make(map[string]string, len(fields)),
		errors: make(map[string]string, len(fields)),
	}
	for _, f := range fields {
		if _, ok := s.index[f.Name]; ok {
			panic(fmt.Errorf("%w: %s", ErrDuplicateField, f.Name))
		}
		s.index[f.Name] = len(s.fields)
		s.fields = append(s.fields, f)
		s.values[f.Name] = ""
	}
	return s
}

// Set sanitizes raw, stores it and re-runs the field's rules.
// It returns the stored value.
func (s *State) Set(name, raw string) (string, error) {
	f, ok := s.Field(name)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownField, name)
	}

	value := f.sanitize(raw)
	s.values[name] = value
	s.check(f)
	return value, nil
}

func (s *State) check(f Field) {
	if msg := f.Check(s.values[f.Name]); msg != "" {
		s.errors[f.Name] = msg
		return
	}
	delete(s.errors, f.Name)
}

// Validate runs the rules of every field and reports whether all passed.
func (s *State) Validate() bool {
	for _, f := range s.fields {
		s.check(f)
	}
	return len(s.errors) == 0
}

// CanSubmit reports whether every field is non-blank and no field has an error.
// It does not run any rules.
func (s *State) CanSubmit() bool {
	if len(s.errors) > 0 {
		return false
	}
	for _, f := range s.fields {
		if strings.TrimSpace(s.values[f.Name]) == "" {
			return false
		}
	}
	return true
}

func (s *State) Value(name string) string {
	return s.values[name]
}

// Error returns the current error message of a field, or "".
func (s *State) Error(name string) string {
	return s.errors[name]
}

// Errors returns a copy of the error map.
func (s *State) Errors() map[string]string {
	out := make(map[string]string, len(s.errors))
	for k, v := range s.errors {
		out[k] = v
	}
	return out
}

// Values returns a copy of the current values.
func (s *State) Values() map[string]string {
	out := make(map[string]string, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

// Fields returns the field descriptors in declaration order.
func (s *State) Fields() []Field {
	out := make([]Field, len(s.fields))
	copy(out, s.fields)
	return out
}

func (s *State) Field(name string) (Field, bool) {
	i, ok := s.index[name]
	if !ok {
		return Field{}, false
	}
	return s.fields[i], true
}

// Reset clears every value and error.
func (s *State) Reset() {
	for _, f := range s.fields {
		s.values[f.Name] = ""
	}
	clear(s.errors)
}
