// Package validator provides composable, translation-friendly validation rules
// for form input.
//
// A Rule pairs a Check function with a ValidationError describing the
// failure. Rules are evaluated with Apply, which collects every failure into
// a ValidationErrors slice, or with First, which stops at the first failing
// rule. First is what per-field form validation uses: a field shows at most
// one message, and the order of the rules decides which one.
//
//	err := validator.First(
//	    validator.Required("email", email).WithMessage("Email is required"),
//	    validator.MinLen("email", email, 3),
//	    validator.Matches("email", email, emailRegex, "email").WithMessage("Invalid email format."),
//	)
//
// Messages default to short English strings; every rule also carries a
// TranslationKey and TranslationValues so callers can localise them.
//
// Length rules count runes, not bytes.
//
// The package is stateless and safe for concurrent use.
package validator
