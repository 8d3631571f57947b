package utils

import (
	"html"
	"regexp"
	"strings"
	"unicode"
)

var htmlTag = regexp.MustCompile(`<[^>]*>`)

// SanitizeString trims whitespace and escapes HTML
func SanitizeString(input string) string {
	return html.EscapeString(strings.TrimSpace(input))
}

// SanitizeText sanitizes multi-line text input such as device notes
func SanitizeText(input string) string {
	escaped := html.EscapeString(strings.TrimSpace(input))

	var result strings.Builder
	for _, r := range escaped {
		if unicode.IsPrint(r) || r == '\n' || r == '\t' || r == '\r' {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// SanitizeIdentifier cleans an id taken from a path or query parameter.
// Tags and control characters are dropped, the result is not escaped.
func SanitizeIdentifier(input string) string {
	return removeControlChars(stripHTML(strings.TrimSpace(input)))
}

// SanitizeQuery normalises free-text search input for case-insensitive matching
func SanitizeQuery(input string) string {
	return strings.ToLower(SanitizeIdentifier(input))
}

func stripHTML(input string) string {
	return htmlTag.ReplaceAllString(input, "")
}

func removeControlChars(input string) string {
	var result strings.Builder
	for _, r := range input {
		if unicode.IsPrint(r) || unicode.IsSpace(r) {
			result.WriteRune(r)
		}
	}
	return result.String()
}
