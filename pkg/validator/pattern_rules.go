package validator

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// MatchesRegex validates against custom patterns. Compiles regex on each call - use Matches with a cached regexp on hot paths.
func MatchesRegex(field, value string, pattern string, description string) Rule {
	return Matches(field, value, regexp.MustCompile(pattern), description)
}

// Matches validates value against a precompiled pattern.
// Blank values never match; pair it with Required to get a dedicated message.
func Matches(field, value string, re *regexp.Regexp, description string) Rule {
	return Rule{
		Check: func() bool {
			if strings.TrimSpace(value) == "" {
				return false
			}
			return re.MatchString(value)
		},
		Error: ValidationError{
			Field:          field,
			Message:        fmt.Sprintf("must match %s pattern", description),
			TranslationKey: "validation.regex_pattern",
			TranslationValues: map[string]any{
				"field":       field,
				"pattern":     re.String(),
				"description": description,
			},
		},
	}
}

// NotAllSameChar fails when value consists of one character repeated, e.g. "1111111111".
// Values shorter than two runes pass.
func NotAllSameChar(field, value string) Rule {
	return Rule{
		Check: func() bool {
			if utf8.RuneCountInString(value) < 2 {
				return true
			}
			first, _ := utf8.DecodeRuneInString(value)
			for _, r := range value {
				if r != first {
					return true
				}
			}
			return false
		},
		Error: ValidationError{
			Field:          field,
			Message:        "must not repeat a single character",
			TranslationKey: "validation.not_all_same_char",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}
