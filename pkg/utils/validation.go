package utils

import (
	"regexp"
	"strings"
	"unicode"

	"sisexpo/pkg/models"
)

var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidateEmail checks basic email shape before sending it to the backend
func ValidateEmail(email string) error {
	if !emailRegex.MatchString(strings.TrimSpace(email)) {
		return models.ErrInvalidInput
	}
	return nil
}

// ValidatePassword checks length and character classes (8-128 chars,
// at least one upper, one lower, one digit)
func ValidatePassword(password string) error {
	if len(password) < 8 || len(password) > 128 {
		return models.ErrInvalidInput
	}
	var upper, lower, digit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if !upper || !lower || !digit {
		return models.ErrInvalidInput
	}
	return nil
}

// ValidateTitle validates a programme or media title
func ValidateTitle(title string) error {
	trimmed := strings.TrimSpace(title)
	if len(trimmed) < 2 || len(title) > 255 {
		return models.ErrInvalidInput
	}
	return nil
}
