package service

import (
	"context"
	"fmt"
	"strings"

	"eductl/internal/modules/catalog/domain"
	catalogout "eductl/internal/modules/catalog/port/out"
	apperrors "eductl/internal/platform/errors"
)

// CatalogService holds the endpoint and invalidation plan for every entity
// type. Lessons invalidate precisely (the touched item plus the list);
// exams and questions invalidate their whole tag type because the server
// cross-links them, and a published exam can change its questions' shape.
type CatalogService struct {
	gateway   catalogout.Gateway
	questions catalogout.QuestionSource
}

func NewCatalogService(gateway catalogout.Gateway, questions catalogout.QuestionSource) *CatalogService {
	return &CatalogService{gateway: gateway, questions: questions}
}

// Lessons invalidate per item.

func (s *CatalogService) ListLessons(ctx context.Context) ([]domain.Lesson, bool, error) {
	result, err := s.gateway.List(ctx, domain.PathLessons, domain.TagLessons)
	if err != nil {
		return nil, false, err
	}
	lessons, err := domain.DecodeLessons(result.Items)
	return lessons, result.Stale, err
}

func (s *CatalogService) WatchLessons(ctx context.Context) ([]domain.Lesson, bool, string, error) {
	result, err := s.gateway.Watch(ctx, domain.PathLessons, domain.TagLessons)
	if err != nil {
		return nil, false, "", err
	}
	lessons, err := domain.DecodeLessons(result.Items)
	return lessons, result.Stale, result.SubscriberID, err
}

func (s *CatalogService) AddLesson(ctx context.Context, draft domain.LessonDraft) error {
	if err := draft.Validate(); err != nil {
		return err
	}
	return s.gateway.Mutate(ctx, "POST", domain.PathLessons, draft,
		[]catalogout.Invalidation{{Type: domain.TagLessons}}, "lesson added")
}

func (s *CatalogService) UpdateLesson(ctx context.Context, id string, draft domain.LessonDraft) error {
	if err := requireID(id, "lesson"); err != nil {
		return err
	}
	if err := draft.Validate(); err != nil {
		return err
	}
	return s.gateway.Mutate(ctx, "PUT", itemPath(domain.PathLessons, id), draft,
		lessonItemInvalidations(id), "lesson updated")
}

func (s *CatalogService) DeleteLesson(ctx context.Context, id string) error {
	if err := requireID(id, "lesson"); err != nil {
		return err
	}
	return s.gateway.Mutate(ctx, "DELETE", itemPath(domain.PathLessons, id), nil,
		lessonItemInvalidations(id), "lesson deleted")
}

// Exams.

func (s *CatalogService) ListExams(ctx context.Context) ([]domain.Exam, bool, error) {
	result, err := s.gateway.List(ctx, domain.PathExams, domain.TagExams)
	if err != nil {
		return nil, false, err
	}
	exams, err := domain.DecodeExams(result.Items)
	return exams, result.Stale, err
}

func (s *CatalogService) WatchExams(ctx context.Context) ([]domain.Exam, bool, string, error) {
	result, err := s.gateway.Watch(ctx, domain.PathExams, domain.TagExams)
	if err != nil {
		return nil, false, "", err
	}
	exams, err := domain.DecodeExams(result.Items)
	return exams, result.Stale, result.SubscriberID, err
}

func (s *CatalogService) AddExam(ctx context.Context, draft domain.ExamDraft) error {
	if err := draft.Validate(); err != nil {
		return err
	}
	return s.gateway.Mutate(ctx, "POST", domain.PathExams, draft,
		[]catalogout.Invalidation{{Type: domain.TagExams}}, "exam added")
}

func (s *CatalogService) UpdateExam(ctx context.Context, id string, draft domain.ExamDraft) error {
	if err := requireID(id, "exam"); err != nil {
		return err
	}
	if err := draft.Validate(); err != nil {
		return err
	}
	return s.gateway.Mutate(ctx, "PUT", itemPath(domain.PathExams, id), draft,
		[]catalogout.Invalidation{{Type: domain.TagExams}}, "exam updated")
}

func (s *CatalogService) DeleteExam(ctx context.Context, id string) error {
	if err := requireID(id, "exam"); err != nil {
		return err
	}
	return s.gateway.Mutate(ctx, "DELETE", itemPath(domain.PathExams, id), nil,
		[]catalogout.Invalidation{{Type: domain.TagExams}}, "exam deleted")
}

// Questions.

func (s *CatalogService) ListQuestions(ctx context.Context) ([]domain.Question, bool, error) {
	result, err := s.gateway.List(ctx, domain.PathQuestions, domain.TagQuestions)
	if err != nil {
		return nil, false, err
	}
	questions, err := domain.DecodeQuestions(result.Items)
	return questions, result.Stale, err
}

func (s *CatalogService) WatchQuestions(ctx context.Context) ([]domain.Question, bool, string, error) {
	result, err := s.gateway.Watch(ctx, domain.PathQuestions, domain.TagQuestions)
	if err != nil {
		return nil, false, "", err
	}
	questions, err := domain.DecodeQuestions(result.Items)
	return questions, result.Stale, result.SubscriberID, err
}

func (s *CatalogService) AddQuestion(ctx context.Context, draft domain.QuestionDraft) error {
	if err := draft.Validate(); err != nil {
		return err
	}
	return s.gateway.Mutate(ctx, "POST", domain.PathQuestions, draft,
		[]catalogout.Invalidation{{Type: domain.TagQuestions}}, "question added")
}

func (s *CatalogService) UpdateQuestion(ctx context.Context, id string, draft domain.QuestionDraft) error {
	if err := requireID(id, "question"); err != nil {
		return err
	}
	if err := draft.Validate(); err != nil {
		return err
	}
	return s.gateway.Mutate(ctx, "PUT", itemPath(domain.PathQuestions, id), draft,
		[]catalogout.Invalidation{{Type: domain.TagQuestions}}, "question updated")
}

func (s *CatalogService) DeleteQuestion(ctx context.Context, id string) error {
	if err := requireID(id, "question"); err != nil {
		return err
	}
	return s.gateway.Mutate(ctx, "DELETE", itemPath(domain.PathQuestions, id), nil,
		[]catalogout.Invalidation{{Type: domain.TagQuestions}}, "question deleted")
}

// ImportQuestions mines a PDF exam paper for question candidates and posts
// each one as a draft. Lines that do not read as questions are counted as
// skipped rather than failing the whole import.
func (s *CatalogService) ImportQuestions(ctx context.Context, pdfPath, examID, questionType string, points int) (imported, skipped int, err error) {
	if s.questions == nil {
		return 0, 0, fmt.Errorf("%w: no question source configured", apperrors.ErrInvalidInput)
	}
	if err := requireID(examID, "exam"); err != nil {
		return 0, 0, err
	}
	lines, err := s.questions.Extract(ctx, pdfPath)
	if err != nil {
		return 0, 0, err
	}
	if questionType == "" {
		questionType = "written"
	}
	if points <= 0 {
		points = 1
	}
	for _, line := range lines {
		text := strings.TrimSpace(line)
		if !looksLikeQuestion(text) {
			skipped++
			continue
		}
		draft := domain.QuestionDraft{
			Text:   text,
			Type:   questionType,
			Exam:   examID,
			Points: points,
		}
		if err := s.AddQuestion(ctx, draft); err != nil {
			return imported, skipped, fmt.Errorf("import %q: %w", truncate(text, 40), err)
		}
		imported++
	}
	return imported, skipped, nil
}

// Accounts.

func (s *CatalogService) ListAdmins(ctx context.Context) ([]domain.Account, bool, error) {
	result, err := s.gateway.List(ctx, domain.PathAllAdmins, domain.TagAdmins)
	if err != nil {
		return nil, false, err
	}
	accounts, err := domain.DecodeAccounts(result.Items)
	return accounts, result.Stale, err
}

func (s *CatalogService) WatchAdmins(ctx context.Context) ([]domain.Account, bool, string, error) {
	result, err := s.gateway.Watch(ctx, domain.PathAllAdmins, domain.TagAdmins)
	if err != nil {
		return nil, false, "", err
	}
	accounts, err := domain.DecodeAccounts(result.Items)
	return accounts, result.Stale, result.SubscriberID, err
}

func (s *CatalogService) ListUsers(ctx context.Context) ([]domain.Account, bool, error) {
	result, err := s.gateway.List(ctx, domain.PathAllUsers, domain.TagUsers)
	if err != nil {
		return nil, false, err
	}
	accounts, err := domain.DecodeAccounts(result.Items)
	return accounts, result.Stale, err
}

func (s *CatalogService) WatchUsers(ctx context.Context) ([]domain.Account, bool, string, error) {
	result, err := s.gateway.Watch(ctx, domain.PathAllUsers, domain.TagUsers)
	if err != nil {
		return nil, false, "", err
	}
	accounts, err := domain.DecodeAccounts(result.Items)
	return accounts, result.Stale, result.SubscriberID, err
}

func (s *CatalogService) CreateAdmin(ctx context.Context, draft domain.AdminDraft) error {
	if err := draft.Validate(); err != nil {
		return err
	}
	return s.gateway.Mutate(ctx, "POST", domain.PathCreateAdmin, draft,
		[]catalogout.Invalidation{{Type: domain.TagAdmins}}, "admin created")
}

func (s *CatalogService) Unwatch(ctx context.Context, subscriberID string) {
	s.gateway.Unwatch(ctx, subscriberID)
}

func lessonItemInvalidations(id string) []catalogout.Invalidation {
	return []catalogout.Invalidation{
		{Type: domain.TagLessons, ID: id},
		{Type: domain.TagLessons, ID: "LIST"},
	}
}

func itemPath(base, id string) string {
	return base + "/" + id
}

func requireID(id, kind string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: %s id is required", apperrors.ErrInvalidInput, kind)
	}
	return nil
}

func looksLikeQuestion(text string) bool {
	if len(text) < 8 {
		return false
	}
	return strings.HasSuffix(text, "?")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "…"
}
