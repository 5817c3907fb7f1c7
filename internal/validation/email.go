package validation

import (
	"errors"
	"net/mail"
)

// MaxEmailLength is the RFC 5321 path limit.
const MaxEmailLength = 254

// ValidateEmail checks a digest recipient address.
func ValidateEmail(email string) error {
	if email == "" {
		return errors.New("email address is required")
	}
	if len(email) > MaxEmailLength {
		return errors.New("email address is too long (max 254 characters)")
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return errors.New("invalid email address format")
	}
	return nil
}
