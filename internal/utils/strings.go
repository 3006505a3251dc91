package utils

import (
	"html"
	"strings"
)

// TrimOrEmpty normalizes user input without turning nil into "nil".
func TrimOrEmpty(s string) string {
	return strings.TrimSpace(s)
}

// NormalizeSpace collapses repeated whitespace into a single space.
func NormalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// SanitizeName prepares a free-text name for storage and for echoing back in
// HTML contexts: trims, collapses whitespace, escapes HTML metacharacters.
func SanitizeName(s string) string {
	return html.EscapeString(NormalizeSpace(s))
}
