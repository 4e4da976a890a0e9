// Package validation provides input validation utilities
package validation

import (
	"fmt"
	"regexp"
	"unicode/utf8"
)

var (
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

// ValidateUsername checks if a username meets requirements
func ValidateUsername(username string) error {
	if len(username) < 3 {
		return fmt.Errorf("username must be at least 3 characters long")
	}
	if len(username) > 30 {
		return fmt.Errorf("username must not exceed 30 characters")
	}

	// Only allow alphanumeric, underscores and hyphens
	if !usernameRegex.MatchString(username) {
		return fmt.Errorf("username can only contain letters, numbers, underscores, and hyphens")
	}

	// Cannot start or end with underscore/hyphen
	if username[0] == '_' || username[0] == '-' || username[len(username)-1] == '_' || username[len(username)-1] == '-' {
		return fmt.Errorf("username cannot start or end with underscore or hyphen")
	}

	return nil
}

// ValidateEmail checks basic email format
func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("invalid email format")
	}
	if len(email) > 254 {
		return fmt.Errorf("email must not exceed 254 characters")
	}
	return nil
}

// ValidatePassword enforces length bounds. Complexity rules are left to the
// frontend; the backend only rejects degenerate inputs.
func ValidatePassword(password string) error {
	if len(password) < 4 {
		return fmt.Errorf("password must be at least 4 characters long")
	}
	if len(password) > 128 {
		return fmt.Errorf("password must not exceed 128 characters")
	}
	return nil
}

// ValidateProjectName enforces the 1-255 character bound on project names.
func ValidateProjectName(name string) error {
	if name == "" {
		return fmt.Errorf("project name is required")
	}
	if utf8.RuneCountInString(name) > 255 {
		return fmt.Errorf("project name must not exceed 255 characters")
	}
	return nil
}

// ValidateStatus checks enum membership for the project lifecycle status.
func ValidateStatus(status string) error {
	switch status {
	case "draft", "published", "archived":
		return nil
	}
	return fmt.Errorf("status must be one of: draft, published, archived")
}
