package in

import (
	"context"

	"eductl/internal/modules/guard/dto"
)

type Usecase interface {
	Evaluate(ctx context.Context, input dto.EvaluateInput) (dto.EvaluateOutput, error)
	// RequireAuth is the one-shot form used by CLI verbs: an error when no
	// session is present.
	RequireAuth(ctx context.Context) error
}
