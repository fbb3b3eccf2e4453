package in

import (
	"context"

	"eductl/internal/modules/session/dto"
)

type Usecase interface {
	Login(ctx context.Context, input dto.LoginInput) (dto.LoginOutput, error)
	Logout(ctx context.Context) error
	Status(ctx context.Context) (dto.StatusOutput, error)
}
