package in

import (
	"context"

	"eductl/internal/modules/catalog/dto"
	catalogin "eductl/internal/modules/catalog/port/in"
)

type CLIHandler struct {
	usecase catalogin.Usecase
}

func NewCLIHandler(usecase catalogin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) ListLessons(ctx context.Context) (dto.ListOutput[dto.LessonOutput], error) {
	return h.usecase.ListLessons(ctx)
}

func (h CLIHandler) AddLesson(ctx context.Context, input dto.LessonInput) error {
	return h.usecase.AddLesson(ctx, input)
}

func (h CLIHandler) UpdateLesson(ctx context.Context, id string, input dto.LessonInput) error {
	return h.usecase.UpdateLesson(ctx, id, input)
}

func (h CLIHandler) DeleteLesson(ctx context.Context, id string) error {
	return h.usecase.DeleteLesson(ctx, id)
}

func (h CLIHandler) ListExams(ctx context.Context) (dto.ListOutput[dto.ExamOutput], error) {
	return h.usecase.ListExams(ctx)
}

func (h CLIHandler) AddExam(ctx context.Context, input dto.ExamInput) error {
	return h.usecase.AddExam(ctx, input)
}

func (h CLIHandler) UpdateExam(ctx context.Context, id string, input dto.ExamInput) error {
	return h.usecase.UpdateExam(ctx, id, input)
}

func (h CLIHandler) DeleteExam(ctx context.Context, id string) error {
	return h.usecase.DeleteExam(ctx, id)
}

func (h CLIHandler) ListQuestions(ctx context.Context) (dto.ListOutput[dto.QuestionOutput], error) {
	return h.usecase.ListQuestions(ctx)
}

func (h CLIHandler) AddQuestion(ctx context.Context, input dto.QuestionInput) error {
	return h.usecase.AddQuestion(ctx, input)
}

func (h CLIHandler) UpdateQuestion(ctx context.Context, id string, input dto.QuestionInput) error {
	return h.usecase.UpdateQuestion(ctx, id, input)
}

func (h CLIHandler) DeleteQuestion(ctx context.Context, id string) error {
	return h.usecase.DeleteQuestion(ctx, id)
}

func (h CLIHandler) ImportQuestions(ctx context.Context, input dto.ImportQuestionsInput) (dto.ImportQuestionsOutput, error) {
	return h.usecase.ImportQuestions(ctx, input)
}

func (h CLIHandler) ListAdmins(ctx context.Context) (dto.ListOutput[dto.AccountOutput], error) {
	return h.usecase.ListAdmins(ctx)
}

func (h CLIHandler) ListUsers(ctx context.Context) (dto.ListOutput[dto.AccountOutput], error) {
	return h.usecase.ListUsers(ctx)
}

func (h CLIHandler) CreateAdmin(ctx context.Context, input dto.CreateAdminInput) error {
	return h.usecase.CreateAdmin(ctx, input)
}
