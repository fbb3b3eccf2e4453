package in

import (
	"context"

	"eductl/internal/modules/plugin/dto"
	pluginin "eductl/internal/modules/plugin/port/in"
)

type CLIHandler struct {
	usecase pluginin.Usecase
}

func NewCLIHandler(usecase pluginin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context) ([]dto.PluginInfo, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Doctor(ctx context.Context) ([]dto.DoctorResult, error) {
	return h.usecase.Doctor(ctx)
}

func (h CLIHandler) ListFormats(ctx context.Context, pluginName string) ([]dto.FormatInfo, error) {
	return h.usecase.ListFormats(ctx, pluginName)
}

func (h CLIHandler) Export(ctx context.Context, input dto.ExportInput) (dto.ExportOutput, error) {
	return h.usecase.Export(ctx, input)
}
