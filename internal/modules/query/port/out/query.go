package out

import (
	"context"

	"eductl/internal/modules/query/domain"
)

type Request struct {
	Method string
	Path   string
	Args   map[string]string
	Body   []byte
}

type Response struct {
	StatusCode int
	Body       []byte
}

// Transport performs one HTTP exchange against the remote API. It attaches
// authentication headers but interprets neither bodies nor status codes.
type Transport interface {
	Do(ctx context.Context, req Request) (Response, error)
}

// TokenSource yields the current session token, empty when logged out.
type TokenSource interface {
	Token(ctx context.Context) string
}

// SnapshotStore persists the last good payload per key so the console can
// render stale data immediately after a restart.
type SnapshotStore interface {
	Save(ctx context.Context, snapshot domain.Snapshot) error
	LoadAll(ctx context.Context) ([]domain.Snapshot, error)
	Delete(ctx context.Context, key domain.Key) error
	Reset(ctx context.Context) error
}
