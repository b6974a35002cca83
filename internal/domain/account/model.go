package account

import (
	"errors"
	"strings"
)

// Domain errors
var (
	ErrEmptyEmail    = errors.New("email cannot be empty")
	ErrInvalidEmail  = errors.New("email must contain '@'")
	ErrEmptyPassword = errors.New("password cannot be empty")
	ErrEmptyName     = errors.New("name cannot be empty")
)

// User is the session identity returned by the auth API. Credentials are
// never held client-side; the session rides on the gateway's cookie jar.
type User struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// ValidateCredentials checks login input before it is sent to the API.
// PRE: none
// POST: Returns error if email or password is unusable, nil otherwise
func ValidateCredentials(email, password string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ErrEmptyEmail
	}
	if !strings.Contains(email, "@") {
		return ErrInvalidEmail
	}
	if password == "" {
		return ErrEmptyPassword
	}
	return nil
}
