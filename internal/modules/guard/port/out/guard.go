package out

import "context"

// TokenSource yields the current session token, consulting memory first
// and the durable store second.
type TokenSource interface {
	Token(ctx context.Context) string
}
