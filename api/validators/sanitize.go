package validators

import (
	"strings"
	"unicode"
)

// SanitizeString trims input, drops control characters and caps it at maxLen runes.
func SanitizeString(input string, maxLen int) string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, input)
	trimmed := strings.TrimSpace(cleaned)
	if maxLen > 0 {
		if runes := []rune(trimmed); len(runes) > maxLen {
			return strings.TrimSpace(string(runes[:maxLen]))
		}
	}
	return trimmed
}
