package usecase

import (
	"context"

	"eductl/internal/modules/query/domain"
	"eductl/internal/modules/query/dto"
	queryin "eductl/internal/modules/query/port/in"
	"eductl/internal/modules/query/service"
)

// eventBuffer bounds the UI event channel; events beyond it are dropped
// rather than blocking background refetches.
const eventBuffer = 64

type Interactor struct {
	svc    *service.CacheService
	events chan dto.Event
}

func NewInteractor(svc *service.CacheService) queryin.Usecase {
	i := &Interactor{svc: svc, events: make(chan dto.Event, eventBuffer)}
	svc.SetHooks(
		func(key domain.Key) {
			i.emit(dto.Event{Kind: dto.EventUpdate, Key: string(key)})
		},
		func(label string, err error) {
			i.emit(dto.Event{Kind: dto.EventSettle, Label: label, Err: err})
		},
	)
	return i
}

func (i *Interactor) Query(ctx context.Context, input dto.QueryInput) (dto.QueryResult, error) {
	items, err := i.svc.Query(ctx, input.Path, input.Args, input.EntityType)
	if err != nil {
		return dto.QueryResult{Status: string(domain.StatusError)}, err
	}
	return dto.QueryResult{Items: items, Status: string(domain.StatusSuccess)}, nil
}

func (i *Interactor) Subscribe(ctx context.Context, input dto.QueryInput) (dto.SubscribeOutput, error) {
	subscriberID, state := i.svc.Subscribe(ctx, input.Path, input.Args, input.EntityType)
	return dto.SubscribeOutput{
		SubscriberID: subscriberID,
		Result: dto.QueryResult{
			Items:  state.Items,
			Status: string(state.Status),
			Stale:  state.Stale,
		},
	}, nil
}

func (i *Interactor) Unsubscribe(_ context.Context, subscriberID string) {
	i.svc.Unsubscribe(subscriberID)
}

func (i *Interactor) Mutate(ctx context.Context, input dto.MutationInput) (dto.MutationResult, error) {
	body, err := i.svc.Mutate(ctx, input.Method, input.Path, input.Body, toDomainTags(input.Invalidates), input.Label)
	if err != nil {
		return dto.MutationResult{}, err
	}
	return dto.MutationResult{Body: body}, nil
}

func (i *Interactor) Invalidate(_ context.Context, tags []dto.Tag) {
	i.svc.Invalidate(toDomainTags(tags))
}

func (i *Interactor) Clear(ctx context.Context) error {
	return i.svc.Clear(ctx)
}

func (i *Interactor) Events() <-chan dto.Event {
	return i.events
}

func (i *Interactor) emit(event dto.Event) {
	select {
	case i.events <- event:
	default:
	}
}

func toDomainTags(tags []dto.Tag) []domain.Tag {
	out := make([]domain.Tag, 0, len(tags))
	for _, tag := range tags {
		out = append(out, domain.Tag{Type: tag.Type, ID: tag.ID})
	}
	return out
}
