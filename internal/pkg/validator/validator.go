package validator

import (
	"regexp"
	"strings"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// IsValidEmail checks if the email format is valid
func IsValidEmail(email string) bool {
	if strings.TrimSpace(email) == "" {
		return false
	}
	return emailRegex.MatchString(email)
}

// NormalizeEmail lowercases and trims an email for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// MinLength reports whether s has at least n characters after trimming.
func MinLength(s string, n int) bool {
	return len(strings.TrimSpace(s)) >= n
}

// NotEmpty reports whether s has any non-whitespace content.
func NotEmpty(s string) bool {
	return strings.TrimSpace(s) != ""
}
