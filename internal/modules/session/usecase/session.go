package usecase

import (
	"context"

	"eductl/internal/modules/session/domain"
	"eductl/internal/modules/session/dto"
	sessionin "eductl/internal/modules/session/port/in"
	sessionout "eductl/internal/modules/session/port/out"
	"eductl/internal/modules/session/service"
)

type Interactor struct {
	svc  *service.SessionService
	auth sessionout.Authenticator
}

func NewInteractor(svc *service.SessionService, auth sessionout.Authenticator) sessionin.Usecase {
	return &Interactor{svc: svc, auth: auth}
}

// Login exchanges credentials for a token and stores it. The token is
// written before returning, so the next guard evaluation already sees the
// authenticated state.
func (i *Interactor) Login(ctx context.Context, input dto.LoginInput) (dto.LoginOutput, error) {
	credentials := domain.Credentials{
		Email:       input.Email,
		PhoneNumber: input.PhoneNumber,
		Password:    input.Password,
	}
	if err := credentials.Validate(); err != nil {
		return dto.LoginOutput{}, err
	}
	token, message, err := i.auth.Authenticate(ctx, credentials)
	if err != nil {
		return dto.LoginOutput{}, err
	}
	i.svc.SetToken(ctx, token)
	return dto.LoginOutput{Message: message}, nil
}

func (i *Interactor) Logout(ctx context.Context) error {
	i.svc.ClearToken(ctx)
	return nil
}

func (i *Interactor) Status(ctx context.Context) (dto.StatusOutput, error) {
	session := domain.Session{Token: i.svc.Token(ctx)}
	return dto.StatusOutput{LoggedIn: session.Authenticated()}, nil
}
