package validator

import (
	"fmt"
	"regexp"
	"unicode/utf8"
)

var (
	uppercaseRegex = regexp.MustCompile(`[A-Z]`)
	lowercaseRegex = regexp.MustCompile(`[a-z]`)
	digitRegex     = regexp.MustCompile(`[0-9]`)
	// Anything outside ASCII letters and digits counts as special, including spaces.
	specialCharRegex = regexp.MustCompile(`[^A-Za-z0-9]`)
)

type PasswordStrengthConfig struct {
	MinLength        int
	MaxLength        int // 0 means no upper bound
	RequireUppercase bool
	RequireLowercase bool
	RequireDigits    bool
	RequireSpecial   bool
}

// DefaultPasswordStrength requires 8+ characters with upper, lower, digit and special characters.
func DefaultPasswordStrength() PasswordStrengthConfig {
	return PasswordStrengthConfig{
		MinLength:        8,
		RequireUppercase: true,
		RequireLowercase: true,
		RequireDigits:    true,
		RequireSpecial:   true,
	}
}

func StrongPassword(field, value string, config PasswordStrengthConfig) Rule {
	return Rule{
		Check: func() bool {
			n := utf8.RuneCountInString(value)
			if n < config.MinLength {
				return false
			}
			if config.MaxLength > 0 && n > config.MaxLength {
				return false
			}

			if config.RequireUppercase && !uppercaseRegex.MatchString(value) {
				return false
			}
			if config.RequireLowercase && !lowercaseRegex.MatchString(value) {
				return false
			}
			if config.RequireDigits && !digitRegex.MatchString(value) {
				return false
			}
			if config.RequireSpecial && !specialCharRegex.MatchString(value) {
				return false
			}

			return true
		},
		Error: ValidationError{
			Field:          field,
			Message:        fmt.Sprintf("password must be at least %d characters with required character types", config.MinLength),
			TranslationKey: "validation.password_strength",
			TranslationValues: map[string]any{
				"field":             field,
				"min_length":        config.MinLength,
				"max_length":        config.MaxLength,
				"require_uppercase": config.RequireUppercase,
				"require_lowercase": config.RequireLowercase,
				"require_digits":    config.RequireDigits,
				"require_special":   config.RequireSpecial,
			},
		},
	}
}
