package in

import (
	"context"

	"eductl/internal/modules/query/dto"
)

type Usecase interface {
	// Query returns cached data when fresh, otherwise fetches. Concurrent
	// queries for the same key share a single network call.
	Query(ctx context.Context, input dto.QueryInput) (dto.QueryResult, error)
	// Subscribe registers interest in a key so invalidations trigger a
	// background refetch while the subscriber is active.
	Subscribe(ctx context.Context, input dto.QueryInput) (dto.SubscribeOutput, error)
	Unsubscribe(ctx context.Context, subscriberID string)
	// Mutate performs a write and, on success, invalidates the declared
	// tags. On failure the cache is left untouched.
	Mutate(ctx context.Context, input dto.MutationInput) (dto.MutationResult, error)
	Invalidate(ctx context.Context, tags []dto.Tag)
	Clear(ctx context.Context) error
	// Events carries update and settle notifications for the UI. Sends are
	// non-blocking; an idle consumer loses events, never correctness.
	Events() <-chan dto.Event
}
