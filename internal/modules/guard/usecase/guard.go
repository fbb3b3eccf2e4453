package usecase

import (
	"context"

	"eductl/internal/modules/guard/domain"
	"eductl/internal/modules/guard/dto"
	guardin "eductl/internal/modules/guard/port/in"
	"eductl/internal/modules/guard/service"
	apperrors "eductl/internal/platform/errors"
)

type Interactor struct {
	svc *service.GuardService
}

func NewInteractor(svc *service.GuardService) guardin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Evaluate(ctx context.Context, input dto.EvaluateInput) (dto.EvaluateOutput, error) {
	decision := i.svc.Evaluate(ctx, domain.Route(input.Route))
	if decision == domain.RedirectToLogin {
		return dto.EvaluateOutput{Allowed: false, Redirect: string(domain.RouteLogin)}, nil
	}
	return dto.EvaluateOutput{Allowed: true}, nil
}

func (i *Interactor) RequireAuth(ctx context.Context) error {
	if i.svc.Evaluate(ctx, "console") == domain.RedirectToLogin {
		return apperrors.ErrNotLoggedIn
	}
	return nil
}
