// Package validation holds the shared input rules used during registration.
package validation

import "regexp"

const (
	PasswordMinLength = 8
	NameMinLength     = 2
	NameMaxLength     = 100
)

var (
	// Email keeps the accepted address shape in one place
	Email = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

	// StudentID is the 8 digit campus student number
	StudentID = regexp.MustCompile(`^\d{8}$`)
)

// ValidEmail reports whether the address matches the accepted shape.
func ValidEmail(email string) bool {
	return Email.MatchString(email)
}

// ValidPassword enforces the minimum password length.
func ValidPassword(password string) bool {
	return len(password) >= PasswordMinLength
}
