package usecase

import (
	"context"

	"eductl/internal/modules/plugin/dto"
	pluginin "eductl/internal/modules/plugin/port/in"
	"eductl/internal/modules/plugin/service"
)

type Interactor struct {
	svc *service.PluginService
}

func NewInteractor(svc *service.PluginService) pluginin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) List(ctx context.Context) ([]dto.PluginInfo, error) {
	return i.svc.List(ctx)
}

func (i *Interactor) Doctor(ctx context.Context) ([]dto.DoctorResult, error) {
	return i.svc.Doctor(ctx)
}

func (i *Interactor) ListFormats(ctx context.Context, pluginName string) ([]dto.FormatInfo, error) {
	return i.svc.ListFormats(ctx, pluginName)
}

func (i *Interactor) Export(ctx context.Context, input dto.ExportInput) (dto.ExportOutput, error) {
	return i.svc.Export(ctx, input)
}
