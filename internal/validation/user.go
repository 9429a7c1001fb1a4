// Package validation holds input validation rules for user-supplied
// fields. Errors are plain and human readable; callers wrap them into
// their own error taxonomy.
package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	MinUsernameLength = 3
	MaxUsernameLength = 30
	MinPasswordLength = 6
	MaxPasswordLength = 128
	MaxEmailLength    = 254
	MaxBioLength      = 500
	MaxLocationLength = 100
)

var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
	emailPattern    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// ValidateUsername enforces the username format: 3-30 characters from
// [a-zA-Z0-9_-], not starting or ending with a separator.
func ValidateUsername(username string) error {
	if length := utf8.RuneCountInString(username); length < MinUsernameLength || length > MaxUsernameLength {
		return fmt.Errorf("username must be between %d and %d characters", MinUsernameLength, MaxUsernameLength)
	}
	if !usernamePattern.MatchString(username) {
		return errors.New("username may only contain letters, numbers, underscores and hyphens")
	}
	if strings.HasPrefix(username, "_") || strings.HasPrefix(username, "-") ||
		strings.HasSuffix(username, "_") || strings.HasSuffix(username, "-") {
		return errors.New("username must not start or end with an underscore or hyphen")
	}
	return nil
}

// ValidateEmail checks the basic shape of an email address. Full RFC
// validation is left to the mail delivery path.
func ValidateEmail(email string) error {
	if email == "" {
		return errors.New("email is required")
	}
	if len(email) > MaxEmailLength {
		return fmt.Errorf("email must be at most %d characters", MaxEmailLength)
	}
	if !emailPattern.MatchString(email) {
		return errors.New("email address is not valid")
	}
	return nil
}

// ValidatePassword bounds password length. Composition rules are
// deliberately not enforced; length is the useful signal.
func ValidatePassword(password string) error {
	if length := utf8.RuneCountInString(password); length < MinPasswordLength || length > MaxPasswordLength {
		return fmt.Errorf("password must be between %d and %d characters", MinPasswordLength, MaxPasswordLength)
	}
	return nil
}

// ValidateMessageText rejects empty or over-long message text. Length
// is counted in runes so multibyte text is not penalized.
func ValidateMessageText(text string, maxLen int) error {
	if strings.TrimSpace(text) == "" {
		return errors.New("message text must not be empty")
	}
	if utf8.RuneCountInString(text) > maxLen {
		return fmt.Errorf("message text must be at most %d characters", maxLen)
	}
	return nil
}

// ValidateBio bounds the profile bio length.
func ValidateBio(bio string) error {
	if utf8.RuneCountInString(bio) > MaxBioLength {
		return fmt.Errorf("bio must be at most %d characters", MaxBioLength)
	}
	return nil
}

// ValidateLocation bounds the profile location length.
func ValidateLocation(location string) error {
	if utf8.RuneCountInString(location) > MaxLocationLength {
		return fmt.Errorf("location must be at most %d characters", MaxLocationLength)
	}
	return nil
}
