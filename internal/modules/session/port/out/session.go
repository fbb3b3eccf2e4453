package out

import (
	"context"

	"eductl/internal/modules/session/domain"
)

// TokenStore is the single durable slot for the session token. Absence of
// the slot means unauthenticated.
type TokenStore interface {
	Save(ctx context.Context, token string) error
	Load(ctx context.Context) (string, error)
	Clear(ctx context.Context) error
}

// Authenticator exchanges credentials for a server-issued token.
type Authenticator interface {
	Authenticate(ctx context.Context, credentials domain.Credentials) (token string, message string, err error)
}
