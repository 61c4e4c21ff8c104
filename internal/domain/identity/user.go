package identity

import (
	"context"

	"github.com/storefront/backend/internal/domain/shared"
)

// maxPhoneDigits caps the phone number length accepted at registration
const maxPhoneDigits = 10

// User is one account from the upstream user directory
type User struct {
	ID       string
	Username string
	Password string
	Phone    string
}

// Registration is the data submitted to create a directory account
type Registration struct {
	Username string
	Password string
	Phone    string
}

// UserDirectory is the upstream account store. Registration succeeds
// only when the directory echoes back a created record with an ID.
type UserDirectory interface {
	ListUsers(ctx context.Context) ([]User, error)
	CreateUser(ctx context.Context, reg Registration) (*User, error)
}

// Validate checks the registration fields. Phone numbers are digits
// only with at most ten digits.
func (r Registration) Validate() error {
	if r.Username == "" {
		return shared.NewDomainError("VALIDATION_ERROR", "Username cannot be empty")
	}
	if r.Password == "" {
		return shared.NewDomainError("VALIDATION_ERROR", "Password cannot be empty")
	}
	if r.Phone == "" {
		return shared.NewDomainError("VALIDATION_ERROR", "Phone number cannot be empty")
	}
	if len(r.Phone) > maxPhoneDigits {
		return shared.NewDomainError("VALIDATION_ERROR", "Phone number cannot exceed 10 digits")
	}
	for _, c := range r.Phone {
		if c < '0' || c > '9' {
			return shared.NewDomainError("VALIDATION_ERROR", "Phone number must contain digits only")
		}
	}
	return nil
}

// SanitizePhone strips everything but digits and truncates to the
// maximum length, mirroring what the registration form accepts as typed.
func SanitizePhone(raw string) string {
	digits := make([]rune, 0, len(raw))
	for _, c := range raw {
		if c >= '0' && c <= '9' {
			digits = append(digits, c)
			if len(digits) == maxPhoneDigits {
				break
			}
		}
	}
	return string(digits)
}

// Matches reports whether the given credentials match this account
func (u User) Matches(username, password string) bool {
	return u.Username == username && u.Password == password
}
