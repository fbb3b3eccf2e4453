package in

import (
	"context"

	"eductl/internal/modules/catalog/dto"
)

// Usecase is the typed surface over the cached API client. Each List
// operation reads through the cache; each mutation invalidates the tags its
// entity type registered, which re-fetches any watched list.
type Usecase interface {
	ListLessons(ctx context.Context) (dto.ListOutput[dto.LessonOutput], error)
	AddLesson(ctx context.Context, input dto.LessonInput) error
	UpdateLesson(ctx context.Context, id string, input dto.LessonInput) error
	DeleteLesson(ctx context.Context, id string) error

	ListExams(ctx context.Context) (dto.ListOutput[dto.ExamOutput], error)
	AddExam(ctx context.Context, input dto.ExamInput) error
	UpdateExam(ctx context.Context, id string, input dto.ExamInput) error
	DeleteExam(ctx context.Context, id string) error

	ListQuestions(ctx context.Context) (dto.ListOutput[dto.QuestionOutput], error)
	AddQuestion(ctx context.Context, input dto.QuestionInput) error
	UpdateQuestion(ctx context.Context, id string, input dto.QuestionInput) error
	DeleteQuestion(ctx context.Context, id string) error
	ImportQuestions(ctx context.Context, input dto.ImportQuestionsInput) (dto.ImportQuestionsOutput, error)

	ListAdmins(ctx context.Context) (dto.ListOutput[dto.AccountOutput], error)
	ListUsers(ctx context.Context) (dto.ListOutput[dto.AccountOutput], error)
	CreateAdmin(ctx context.Context, input dto.CreateAdminInput) error

	// Watch variants register a live subscription on top of the read; the
	// returned subscriber id must be released with Unwatch when the caller
	// stops rendering the list.
	WatchLessons(ctx context.Context) (dto.WatchOutput[dto.LessonOutput], error)
	WatchExams(ctx context.Context) (dto.WatchOutput[dto.ExamOutput], error)
	WatchQuestions(ctx context.Context) (dto.WatchOutput[dto.QuestionOutput], error)
	WatchAdmins(ctx context.Context) (dto.WatchOutput[dto.AccountOutput], error)
	WatchUsers(ctx context.Context) (dto.WatchOutput[dto.AccountOutput], error)
	Unwatch(ctx context.Context, subscriberID string)
}
