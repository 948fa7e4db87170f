package utils

import (
	"strings"
	"unicode/utf8"
)

// CleanUTF8 removes invalid UTF8 sequences and NUL bytes, which Postgres
// text columns reject. Returns the cleaned string and whether cleaning was
// needed.
func CleanUTF8(input string) (string, bool) {
	needsCleaning := strings.Contains(input, "\x00") || !utf8.ValidString(input)

	if !needsCleaning {
		return input, false
	}

	cleaned := strings.ToValidUTF8(input, "")
	cleaned = strings.ReplaceAll(cleaned, "\x00", "")

	return cleaned, true
}

// CleanText trims and cleans an optional free-text field. Blank input
// becomes nil.
func CleanText(input *string) *string {
	if input == nil {
		return nil
	}

	cleaned, _ := CleanUTF8(strings.TrimSpace(*input))
	if cleaned == "" {
		return nil
	}
	return &cleaned
}
