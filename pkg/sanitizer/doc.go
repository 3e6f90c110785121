// Package sanitizer provides small, pure helpers that clean raw user input
// before it reaches form state.
//
// Every helper has the signature func(string) string (or can be curried into
// one), never returns an error and never panics. Helpers are combined with
// Apply and Compose into per-field pipelines:
//
//	phone := sanitizer.Compose(
//	    sanitizer.KeepDigits,
//	    sanitizer.Limit(10),
//	)
//
//	phone("+1 (555) 010-9999") // "1555010999"
//
// # Length semantics
//
// MaxLength and Limit count runes, not bytes, so multi-byte input is never
// cut in the middle of a character.
//
// # Concurrency
//
// The package holds no state and is safe for concurrent use.
package sanitizer
