// Package validation provides input validation utilities
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

var usernameRegex = regexp.MustCompile(`^[a-z][a-z0-9._]{3,35}$`)

// NormalizeUsername trims and lowercases the raw username and validates the
// result: it must begin with a letter, be 4-36 characters long, and contain
// only letters, digits, dots, and underscores. The normalized form is what
// gets persisted and carried in the session cookie.
func NormalizeUsername(raw string) (string, error) {
	username := strings.ToLower(strings.TrimSpace(raw))
	if !usernameRegex.MatchString(username) {
		return "", fmt.Errorf("username must start with a letter, be 4-36 characters, and contain only letters, digits, dots, and underscores")
	}
	return username, nil
}

// ValidatePassword checks that a password is 6-35 characters with no
// whitespace, at least one letter, and at least one digit.
func ValidatePassword(password string) error {
	if len(password) < 6 || len(password) > 35 {
		return fmt.Errorf("password must be 6-35 characters long")
	}

	hasLetter := false
	hasDigit := false
	for _, r := range password {
		switch {
		case unicode.IsSpace(r):
			return fmt.Errorf("password must not contain whitespace")
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter {
		return fmt.Errorf("password must contain at least one letter")
	}
	if !hasDigit {
		return fmt.Errorf("password must contain at least one digit")
	}
	return nil
}
