package domain

import (
	"fmt"
	"strings"

	apperrors "eductl/internal/platform/errors"
)

// Session holds the authentication state of the console. The token is an
// opaque string issued by the server; empty means unauthenticated.
type Session struct {
	Token string
}

func (s Session) Authenticated() bool {
	return s.Token != ""
}

// Credentials identify an operator by email or phone number.
type Credentials struct {
	Email       string
	PhoneNumber string
	Password    string
}

func (c Credentials) Validate() error {
	if strings.TrimSpace(c.Email) == "" && strings.TrimSpace(c.PhoneNumber) == "" {
		return fmt.Errorf("%w: email or phone number is required", apperrors.ErrInvalidInput)
	}
	if c.Password == "" {
		return fmt.Errorf("%w: password is required", apperrors.ErrInvalidInput)
	}
	return nil
}
