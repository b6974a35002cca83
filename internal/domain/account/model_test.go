package account

import (
	"errors"
	"testing"
)

func TestValidateCredentials(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{"valid", "alice@example.com", "secret", nil},
		{"empty email", "", "secret", ErrEmptyEmail},
		{"whitespace email", "   ", "secret", ErrEmptyEmail},
		{"missing at sign", "alice.example.com", "secret", ErrInvalidEmail},
		{"empty password", "alice@example.com", "", ErrEmptyPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCredentials(tt.email, tt.password)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateCredentials() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
