package service

import (
	"context"

	"eductl/internal/modules/guard/domain"
	guardout "eductl/internal/modules/guard/port/out"
)

// GuardService gates navigation on session state. It holds no state of its
// own; every evaluation reads the token source, so a login that just
// completed is visible to the very next navigation.
type GuardService struct {
	tokens guardout.TokenSource
}

func NewGuardService(tokens guardout.TokenSource) *GuardService {
	return &GuardService{tokens: tokens}
}

func (s *GuardService) Evaluate(ctx context.Context, route domain.Route) domain.Decision {
	var token string
	if s.tokens != nil {
		token = s.tokens.Token(ctx)
	}
	return domain.Evaluate(route, token)
}
