package in

import (
	"context"

	"eductl/internal/modules/catalog/dto"
	catalogin "eductl/internal/modules/catalog/port/in"
)

// TUIHandler is the catalog surface the terminal UI renders from. Unlike the
// CLI handler it exposes the Watch variants, because views hold their
// subscriptions for as long as they stay on screen.
type TUIHandler struct {
	usecase catalogin.Usecase
}

func NewTUIHandler(usecase catalogin.Usecase) TUIHandler {
	return TUIHandler{usecase: usecase}
}

func (h TUIHandler) WatchLessons(ctx context.Context) (dto.WatchOutput[dto.LessonOutput], error) {
	return h.usecase.WatchLessons(ctx)
}

func (h TUIHandler) ListLessons(ctx context.Context) (dto.ListOutput[dto.LessonOutput], error) {
	return h.usecase.ListLessons(ctx)
}

func (h TUIHandler) DeleteLesson(ctx context.Context, id string) error {
	return h.usecase.DeleteLesson(ctx, id)
}

func (h TUIHandler) WatchExams(ctx context.Context) (dto.WatchOutput[dto.ExamOutput], error) {
	return h.usecase.WatchExams(ctx)
}

func (h TUIHandler) ListExams(ctx context.Context) (dto.ListOutput[dto.ExamOutput], error) {
	return h.usecase.ListExams(ctx)
}

func (h TUIHandler) DeleteExam(ctx context.Context, id string) error {
	return h.usecase.DeleteExam(ctx, id)
}

func (h TUIHandler) WatchQuestions(ctx context.Context) (dto.WatchOutput[dto.QuestionOutput], error) {
	return h.usecase.WatchQuestions(ctx)
}

func (h TUIHandler) ListQuestions(ctx context.Context) (dto.ListOutput[dto.QuestionOutput], error) {
	return h.usecase.ListQuestions(ctx)
}

func (h TUIHandler) DeleteQuestion(ctx context.Context, id string) error {
	return h.usecase.DeleteQuestion(ctx, id)
}

func (h TUIHandler) WatchAdmins(ctx context.Context) (dto.WatchOutput[dto.AccountOutput], error) {
	return h.usecase.WatchAdmins(ctx)
}

func (h TUIHandler) WatchUsers(ctx context.Context) (dto.WatchOutput[dto.AccountOutput], error) {
	return h.usecase.WatchUsers(ctx)
}

func (h TUIHandler) ListAdmins(ctx context.Context) (dto.ListOutput[dto.AccountOutput], error) {
	return h.usecase.ListAdmins(ctx)
}

func (h TUIHandler) ListUsers(ctx context.Context) (dto.ListOutput[dto.AccountOutput], error) {
	return h.usecase.ListUsers(ctx)
}

func (h TUIHandler) CreateAdmin(ctx context.Context, input dto.CreateAdminInput) error {
	return h.usecase.CreateAdmin(ctx, input)
}

func (h TUIHandler) Unwatch(ctx context.Context, subscriberID string) {
	h.usecase.Unwatch(ctx, subscriberID)
}
