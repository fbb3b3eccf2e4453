package in

import (
	"context"

	"eductl/internal/modules/session/dto"
	sessionin "eductl/internal/modules/session/port/in"
)

type CLIHandler struct {
	usecase sessionin.Usecase
}

func NewCLIHandler(usecase sessionin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Login(ctx context.Context, email, phoneNumber, password string) (dto.LoginOutput, error) {
	return h.usecase.Login(ctx, dto.LoginInput{Email: email, PhoneNumber: phoneNumber, Password: password})
}

func (h CLIHandler) Logout(ctx context.Context) error {
	return h.usecase.Logout(ctx)
}

func (h CLIHandler) Status(ctx context.Context) (dto.StatusOutput, error) {
	return h.usecase.Status(ctx)
}
