package sanitizer

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Trim removes leading and trailing whitespace from a string.
func Trim(s string) string {
	return strings.TrimSpace(s)
}

// MaxLength truncates a string to at most maxLen runes.
func MaxLength(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}

	// Fast path: byte length bounds rune count.
	if len(s) <= maxLen {
		return s
	}

	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}

	return string(runes[:maxLen])
}

// Limit returns a transform that truncates its input to maxLen runes.
func Limit(maxLen int) func(string) string {
	return func(s string) string {
		return MaxLength(s, maxLen)
	}
}

// KeepDigits keeps only ASCII digits 0-9.
// Digits from other scripts are dropped so the result always matches [0-9]*.
func KeepDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}

// KeepLettersAndSpaces keeps Unicode letters and the ASCII space.
// Tabs, newlines and other whitespace are dropped.
func KeepLettersAndSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || r == ' ' {
			return r
		}
		return -1
	}, s)
}

// StripWhitespace removes every Unicode whitespace character.
func StripWhitespace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// NormalizeNFC converts a string to Unicode normalization form C.
// Decomposed input such as "e" + U+0301 becomes the single letter "é",
// which keeps letter filters from stripping the combining mark.
func NormalizeNFC(s string) string {
	if norm.NFC.IsNormalString(s) {
		return s
	}
	return norm.NFC.String(s)
}
