// Package validation provides input validation utilities
package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"postbook/internal/models"
)

// MaxPasswordBytes is the longest password bcrypt will hash.
const MaxPasswordBytes = 72

var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// ValidatePassword checks that a password is present and hashable.
func ValidatePassword(password string) error {
	if password == "" {
		return errors.New("password is required")
	}
	if len(password) > MaxPasswordBytes {
		return fmt.Errorf("password must not exceed %d bytes", MaxPasswordBytes)
	}
	return nil
}

// ValidateUsername checks if a username meets requirements
func ValidateUsername(username string) error {
	if len(username) < 3 {
		return errors.New("username must be at least 3 characters long")
	}

	if len(username) > 30 {
		return errors.New("username must not exceed 30 characters")
	}

	if !usernameRegex.MatchString(username) {
		return errors.New("username can only contain letters, numbers, underscores, and hyphens")
	}

	first, last := username[0], username[len(username)-1]
	if first == '_' || first == '-' || last == '_' || last == '-' {
		return errors.New("username cannot start or end with underscore or hyphen")
	}

	return nil
}

// ValidatePostContent checks that content is non-blank and fits the column limit.
// The limit is counted in characters, as the database counts it.
func ValidatePostContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return errors.New("post content is required")
	}
	if n := utf8.RuneCountInString(content); n > models.MaxContentLength {
		return fmt.Errorf("post content must not exceed %d characters (got %d)", models.MaxContentLength, n)
	}
	return nil
}
