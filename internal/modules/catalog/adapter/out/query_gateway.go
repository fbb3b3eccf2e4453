package out

import (
	"context"

	catalogout "eductl/internal/modules/catalog/port/out"
	querydto "eductl/internal/modules/query/dto"
	queryin "eductl/internal/modules/query/port/in"
)

// QueryGateway routes catalog reads and writes through the cached API
// client, translating invalidation plans into cache tags.
type QueryGateway struct {
	client queryin.Usecase
}

func NewQueryGateway(client queryin.Usecase) catalogout.Gateway {
	return &QueryGateway{client: client}
}

func (g *QueryGateway) List(ctx context.Context, path, entityType string) (catalogout.ListResult, error) {
	result, err := g.client.Query(ctx, querydto.QueryInput{Path: path, EntityType: entityType})
	if err != nil {
		return catalogout.ListResult{}, err
	}
	return catalogout.ListResult{Items: result.Items, Stale: result.Stale}, nil
}

func (g *QueryGateway) Watch(ctx context.Context, path, entityType string) (catalogout.WatchResult, error) {
	sub, err := g.client.Subscribe(ctx, querydto.QueryInput{Path: path, EntityType: entityType})
	if err != nil {
		return catalogout.WatchResult{}, err
	}
	return catalogout.WatchResult{
		Items:        sub.Result.Items,
		Stale:        sub.Result.Stale,
		SubscriberID: sub.SubscriberID,
	}, nil
}

func (g *QueryGateway) Unwatch(ctx context.Context, subscriberID string) {
	g.client.Unsubscribe(ctx, subscriberID)
}

func (g *QueryGateway) Mutate(ctx context.Context, method, path string, body any, invalidates []catalogout.Invalidation, label string) error {
	tags := make([]querydto.Tag, 0, len(invalidates))
	for _, inv := range invalidates {
		tags = append(tags, querydto.Tag{Type: inv.Type, ID: inv.ID})
	}
	_, err := g.client.Mutate(ctx, querydto.MutationInput{
		Method:      method,
		Path:        path,
		Body:        body,
		Invalidates: tags,
		Label:       label,
	})
	return err
}
