package sanitizer_test

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/signupkit/pkg/sanitizer"
)

func TestMaxLength(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		max      int
		expected string
	}{
		{name: "shorter than limit", input: "hello", max: 10, expected: "hello"},
		{name: "equal to limit", input: "hello", max: 5, expected: "hello"},
		{name: "longer than limit", input: "hello world", max: 5, expected: "hello"},
		{name: "zero limit", input: "hello", max: 0, expected: ""},
		{name: "negative limit", input: "hello", max: -1, expected: ""},
		{name: "counts runes not bytes", input: "żółćżółć", max: 4, expected: "żółć"},
		{name: "multi-byte within limit", input: "日本語", max: 3, expected: "日本語"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, sanitizer.MaxLength(tt.input, tt.max))
		})
	}
}

func TestKeepDigits(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "formatted phone", input: "+1 (555) 010-9999", expected: "15550109999"},
		{name: "letters only", input: "abc", expected: ""},
		{name: "digits only", input: "0123456789", expected: "0123456789"},
		{name: "drops non-ascii digits", input: "١٢٣45", expected: "45"},
		{name: "empty", input: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, sanitizer.KeepDigits(tt.input))
		})
	}
}

func TestKeepLettersAndSpaces(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "plain name", input: "John Doe", expected: "John Doe"},
		{name: "drops digits and punctuation", input: "J0hn D-o.e!", expected: "Jhn Doe"},
		{name: "keeps unicode letters", input: "Zoë Łukasz", expected: "Zoë Łukasz"},
		{name: "drops tabs and newlines", input: "John\tDoe\n", expected: "JohnDoe"},
		{name: "empty", input: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, sanitizer.KeepLettersAndSpaces(tt.input))
		})
	}
}

func TestStripWhitespace(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "john@example.com", sanitizer.StripWhitespace(" john @ example.com\t\n"))
	assert.Equal(t, "", sanitizer.StripWhitespace(" \t\n "))
	assert.Equal(t, "abc", sanitizer.StripWhitespace("a b c"))
}

func TestNormalizeNFC(t *testing.T) {
	t.Parallel()

	decomposed := "Zoe\u0308"
	composed := sanitizer.NormalizeNFC(decomposed)

	assert.Equal(t, "Zo\u00eb", composed)
	assert.Equal(t, 3, utf8.RuneCountInString(composed))
	assert.Equal(t, "already composed", sanitizer.NormalizeNFC("already composed"))
}
