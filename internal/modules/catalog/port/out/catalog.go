package out

import (
	"context"
	"encoding/json"
)

// Invalidation names a cache tag to drop after a mutation. An empty ID
// invalidates every entry registered under the type.
type Invalidation struct {
	Type string
	ID   string
}

// ListResult carries a normalized page and whether it came from a stale
// cache entry.
type ListResult struct {
	Items []json.RawMessage
	Stale bool
}

// WatchResult is ListResult plus the subscription handle.
type WatchResult struct {
	Items        []json.RawMessage
	Stale        bool
	SubscriberID string
}

// Gateway is catalog's view of the cached API client.
type Gateway interface {
	List(ctx context.Context, path, entityType string) (ListResult, error)
	Watch(ctx context.Context, path, entityType string) (WatchResult, error)
	Unwatch(ctx context.Context, subscriberID string)
	Mutate(ctx context.Context, method, path string, body any, invalidates []Invalidation, label string) error
}

// QuestionSource extracts question candidates from a document on disk.
type QuestionSource interface {
	Extract(ctx context.Context, path string) ([]string, error)
}
