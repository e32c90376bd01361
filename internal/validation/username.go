package validation

import (
	"errors"
	"regexp"
	"strings"
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)

// ValidateUsername validates username format and length
func ValidateUsername(username string) error {
	trimmed := strings.TrimSpace(username)

	if trimmed == "" {
		return errors.New("username is required")
	}

	if len(trimmed) > 100 {
		return errors.New("username is too long (max 100 characters)")
	}

	if !usernamePattern.MatchString(trimmed) {
		return errors.New("username may only contain letters, digits, underscores, dots and dashes")
	}

	return nil
}
