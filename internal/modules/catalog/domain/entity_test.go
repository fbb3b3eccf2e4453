package domain_test

import (
	"encoding/json"
	"errors"
	"testing"

	"eductl/internal/modules/catalog/domain"
	apperrors "eductl/internal/platform/errors"
)

func TestDecodeLessonsMapsServerFields(t *testing.T) {
	t.Parallel()
	items := []json.RawMessage{
		json.RawMessage(`{"_id":"l1","title":"Algebra","classLevel":"9","scheduledDate":"2026-09-01","price":150}`),
	}
	lessons, err := domain.DecodeLessons(items)
	if err != nil {
		t.Fatalf("decode lessons: %v", err)
	}
	l := lessons[0]
	if l.ID != "l1" || l.Title != "Algebra" || l.ClassLevel != "9" || l.Price != 150 {
		t.Fatalf("unexpected lesson: %+v", l)
	}
}

func TestDecodeRejectsMalformedItem(t *testing.T) {
	t.Parallel()
	items := []json.RawMessage{json.RawMessage(`{"_id":"q1","points":"not-a-number"}`)}
	if _, err := domain.DecodeQuestions(items); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestAdminDraftPasswordConfirmation(t *testing.T) {
	t.Parallel()
	draft := domain.AdminDraft{
		FullName:        "Admin",
		Email:           "a@school.test",
		Password:        "secret",
		ConfirmPassword: "secret",
	}
	if err := draft.Validate(); err != nil {
		t.Fatalf("valid draft: %v", err)
	}
	draft.ConfirmPassword = "different"
	if err := draft.Validate(); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected password mismatch error, got %v", err)
	}
}

func TestDraftValidation(t *testing.T) {
	t.Parallel()
	if err := (domain.LessonDraft{Title: "Algebra", Price: 0}).Validate(); err != nil {
		t.Fatalf("free lesson must validate: %v", err)
	}
	if err := (domain.ExamDraft{Title: "Midterm", Duration: 0}).Validate(); err == nil {
		t.Fatalf("zero duration must be rejected")
	}
	if err := (domain.QuestionDraft{Text: "What is x?", Exam: "e1"}).Validate(); err != nil {
		t.Fatalf("question draft must validate: %v", err)
	}
}
