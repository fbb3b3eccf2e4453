package usecase

import (
	"context"

	"eductl/internal/modules/catalog/domain"
	"eductl/internal/modules/catalog/dto"
	catalogin "eductl/internal/modules/catalog/port/in"
	"eductl/internal/modules/catalog/service"
)

type Interactor struct {
	svc *service.CatalogService
}

func NewInteractor(svc *service.CatalogService) catalogin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) ListLessons(ctx context.Context) (dto.ListOutput[dto.LessonOutput], error) {
	lessons, stale, err := i.svc.ListLessons(ctx)
	if err != nil {
		return dto.ListOutput[dto.LessonOutput]{}, err
	}
	return dto.ListOutput[dto.LessonOutput]{Items: mapSlice(lessons, lessonOutput), Stale: stale}, nil
}

func (i *Interactor) WatchLessons(ctx context.Context) (dto.WatchOutput[dto.LessonOutput], error) {
	lessons, stale, sub, err := i.svc.WatchLessons(ctx)
	if err != nil {
		return dto.WatchOutput[dto.LessonOutput]{}, err
	}
	return dto.WatchOutput[dto.LessonOutput]{Items: mapSlice(lessons, lessonOutput), Stale: stale, SubscriberID: sub}, nil
}

func (i *Interactor) AddLesson(ctx context.Context, input dto.LessonInput) error {
	return i.svc.AddLesson(ctx, lessonDraft(input))
}

func (i *Interactor) UpdateLesson(ctx context.Context, id string, input dto.LessonInput) error {
	return i.svc.UpdateLesson(ctx, id, lessonDraft(input))
}

func (i *Interactor) DeleteLesson(ctx context.Context, id string) error {
	return i.svc.DeleteLesson(ctx, id)
}

func (i *Interactor) ListExams(ctx context.Context) (dto.ListOutput[dto.ExamOutput], error) {
	exams, stale, err := i.svc.ListExams(ctx)
	if err != nil {
		return dto.ListOutput[dto.ExamOutput]{}, err
	}
	return dto.ListOutput[dto.ExamOutput]{Items: mapSlice(exams, examOutput), Stale: stale}, nil
}

func (i *Interactor) WatchExams(ctx context.Context) (dto.WatchOutput[dto.ExamOutput], error) {
	exams, stale, sub, err := i.svc.WatchExams(ctx)
	if err != nil {
		return dto.WatchOutput[dto.ExamOutput]{}, err
	}
	return dto.WatchOutput[dto.ExamOutput]{Items: mapSlice(exams, examOutput), Stale: stale, SubscriberID: sub}, nil
}

func (i *Interactor) AddExam(ctx context.Context, input dto.ExamInput) error {
	return i.svc.AddExam(ctx, examDraft(input))
}

func (i *Interactor) UpdateExam(ctx context.Context, id string, input dto.ExamInput) error {
	return i.svc.UpdateExam(ctx, id, examDraft(input))
}

func (i *Interactor) DeleteExam(ctx context.Context, id string) error {
	return i.svc.DeleteExam(ctx, id)
}

func (i *Interactor) ListQuestions(ctx context.Context) (dto.ListOutput[dto.QuestionOutput], error) {
	questions, stale, err := i.svc.ListQuestions(ctx)
	if err != nil {
		return dto.ListOutput[dto.QuestionOutput]{}, err
	}
	return dto.ListOutput[dto.QuestionOutput]{Items: mapSlice(questions, questionOutput), Stale: stale}, nil
}

func (i *Interactor) WatchQuestions(ctx context.Context) (dto.WatchOutput[dto.QuestionOutput], error) {
	questions, stale, sub, err := i.svc.WatchQuestions(ctx)
	if err != nil {
		return dto.WatchOutput[dto.QuestionOutput]{}, err
	}
	return dto.WatchOutput[dto.QuestionOutput]{Items: mapSlice(questions, questionOutput), Stale: stale, SubscriberID: sub}, nil
}

func (i *Interactor) AddQuestion(ctx context.Context, input dto.QuestionInput) error {
	return i.svc.AddQuestion(ctx, questionDraft(input))
}

func (i *Interactor) UpdateQuestion(ctx context.Context, id string, input dto.QuestionInput) error {
	return i.svc.UpdateQuestion(ctx, id, questionDraft(input))
}

func (i *Interactor) DeleteQuestion(ctx context.Context, id string) error {
	return i.svc.DeleteQuestion(ctx, id)
}

func (i *Interactor) ImportQuestions(ctx context.Context, input dto.ImportQuestionsInput) (dto.ImportQuestionsOutput, error) {
	imported, skipped, err := i.svc.ImportQuestions(ctx, input.PDFPath, input.ExamID, input.Type, input.Points)
	return dto.ImportQuestionsOutput{Imported: imported, Skipped: skipped}, err
}

func (i *Interactor) ListAdmins(ctx context.Context) (dto.ListOutput[dto.AccountOutput], error) {
	accounts, stale, err := i.svc.ListAdmins(ctx)
	if err != nil {
		return dto.ListOutput[dto.AccountOutput]{}, err
	}
	return dto.ListOutput[dto.AccountOutput]{Items: mapSlice(accounts, accountOutput), Stale: stale}, nil
}

func (i *Interactor) WatchAdmins(ctx context.Context) (dto.WatchOutput[dto.AccountOutput], error) {
	accounts, stale, sub, err := i.svc.WatchAdmins(ctx)
	if err != nil {
		return dto.WatchOutput[dto.AccountOutput]{}, err
	}
	return dto.WatchOutput[dto.AccountOutput]{Items: mapSlice(accounts, accountOutput), Stale: stale, SubscriberID: sub}, nil
}

func (i *Interactor) ListUsers(ctx context.Context) (dto.ListOutput[dto.AccountOutput], error) {
	accounts, stale, err := i.svc.ListUsers(ctx)
	if err != nil {
		return dto.ListOutput[dto.AccountOutput]{}, err
	}
	return dto.ListOutput[dto.AccountOutput]{Items: mapSlice(accounts, accountOutput), Stale: stale}, nil
}

func (i *Interactor) WatchUsers(ctx context.Context) (dto.WatchOutput[dto.AccountOutput], error) {
	accounts, stale, sub, err := i.svc.WatchUsers(ctx)
	if err != nil {
		return dto.WatchOutput[dto.AccountOutput]{}, err
	}
	return dto.WatchOutput[dto.AccountOutput]{Items: mapSlice(accounts, accountOutput), Stale: stale, SubscriberID: sub}, nil
}

func (i *Interactor) CreateAdmin(ctx context.Context, input dto.CreateAdminInput) error {
	return i.svc.CreateAdmin(ctx, domain.AdminDraft{
		FullName:        input.FullName,
		Email:           input.Email,
		PhoneNumber:     input.PhoneNumber,
		Password:        input.Password,
		ConfirmPassword: input.ConfirmPassword,
	})
}

func (i *Interactor) Unwatch(ctx context.Context, subscriberID string) {
	i.svc.Unwatch(ctx, subscriberID)
}

func mapSlice[T, U any](in []T, f func(T) U) []U {
	out := make([]U, 0, len(in))
	for _, v := range in {
		out = append(out, f(v))
	}
	return out
}

func lessonOutput(l domain.Lesson) dto.LessonOutput {
	return dto.LessonOutput{
		ID:            l.ID,
		Title:         l.Title,
		Description:   l.Description,
		Video:         l.Video,
		ClassLevel:    l.ClassLevel,
		ScheduledDate: l.ScheduledDate,
		Price:         l.Price,
	}
}

func lessonDraft(in dto.LessonInput) domain.LessonDraft {
	return domain.LessonDraft{
		Title:         in.Title,
		Description:   in.Description,
		Video:         in.Video,
		ClassLevel:    in.ClassLevel,
		ScheduledDate: in.ScheduledDate,
		Price:         in.Price,
	}
}

func examOutput(e domain.Exam) dto.ExamOutput {
	return dto.ExamOutput{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		ClassLevel:  e.ClassLevel,
		Duration:    e.Duration,
		StartDate:   e.StartDate,
		EndDate:     e.EndDate,
		IsPublished: e.IsPublished,
	}
}

func examDraft(in dto.ExamInput) domain.ExamDraft {
	return domain.ExamDraft{
		Title:       in.Title,
		Description: in.Description,
		ClassLevel:  in.ClassLevel,
		Duration:    in.Duration,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		IsPublished: in.IsPublished,
	}
}

func questionOutput(q domain.Question) dto.QuestionOutput {
	return dto.QuestionOutput{
		ID:            q.ID,
		Text:          q.Text,
		Type:          q.Type,
		Options:       q.Options,
		CorrectAnswer: q.CorrectAnswer,
		Exam:          q.Exam,
		Points:        q.Points,
	}
}

func questionDraft(in dto.QuestionInput) domain.QuestionDraft {
	return domain.QuestionDraft{
		Text:          in.Text,
		Type:          in.Type,
		Options:       in.Options,
		CorrectAnswer: in.CorrectAnswer,
		Exam:          in.Exam,
		Points:        in.Points,
	}
}

func accountOutput(a domain.Account) dto.AccountOutput {
	return dto.AccountOutput{
		ID:          a.ID,
		FullName:    a.FullName,
		PhoneNumber: a.PhoneNumber,
		Email:       a.Email,
		ClassLevel:  a.ClassLevel,
		Role:        a.Role,
		IsVerified:  a.IsVerified,
	}
}
