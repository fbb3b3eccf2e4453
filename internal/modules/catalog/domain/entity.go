package domain

import (
	"encoding/json"
	"fmt"
	"strings"

	apperrors "eductl/internal/platform/errors"
)

// Tag types under which catalog reads register themselves. The cache layer
// treats entity payloads as opaque; these names are the only coupling.
const (
	TagLessons   = "lessons"
	TagExams     = "exams"
	TagQuestions = "questions"
	TagAdmins    = "admins"
	TagUsers     = "users"
)

// API endpoint paths, relative to the configured base address.
const (
	PathLessons     = "/lesson"
	PathExams       = "/exam"
	PathQuestions   = "/question"
	PathAllAdmins   = "/admin/all-admin"
	PathAllUsers    = "/admin/all-user"
	PathCreateAdmin = "/admin/create-admin"
)

type Lesson struct {
	ID            string  `json:"_id"`
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	Video         string  `json:"video"`
	ClassLevel    string  `json:"classLevel"`
	ScheduledDate string  `json:"scheduledDate"`
	Price         float64 `json:"price"`
}

// LessonDraft is the request body for creating or updating a lesson; the
// server owns the id.
type LessonDraft struct {
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	Video         string  `json:"video"`
	ClassLevel    string  `json:"classLevel"`
	ScheduledDate string  `json:"scheduledDate"`
	Price         float64 `json:"price"`
}

func (d LessonDraft) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return fmt.Errorf("%w: lesson title is required", apperrors.ErrInvalidInput)
	}
	if d.Price < 0 {
		return fmt.Errorf("%w: lesson price must not be negative", apperrors.ErrInvalidInput)
	}
	return nil
}

type Exam struct {
	ID          string `json:"_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ClassLevel  string `json:"classLevel"`
	Duration    int    `json:"duration"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	IsPublished bool   `json:"isPublished"`
}

type ExamDraft struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ClassLevel  string `json:"classLevel"`
	Duration    int    `json:"duration"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	IsPublished bool   `json:"isPublished"`
}

func (d ExamDraft) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return fmt.Errorf("%w: exam title is required", apperrors.ErrInvalidInput)
	}
	if d.Duration <= 0 {
		return fmt.Errorf("%w: exam duration must be positive", apperrors.ErrInvalidInput)
	}
	return nil
}

type Question struct {
	ID            string   `json:"_id"`
	Text          string   `json:"text"`
	Type          string   `json:"type"`
	Options       []string `json:"options,omitempty"`
	CorrectAnswer string   `json:"correctAnswer"`
	Exam          string   `json:"exam"`
	Points        int      `json:"points"`
}

type QuestionDraft struct {
	Text          string   `json:"text"`
	Type          string   `json:"type"`
	Options       []string `json:"options,omitempty"`
	CorrectAnswer string   `json:"correctAnswer"`
	Exam          string   `json:"exam"`
	Points        int      `json:"points"`
}

func (d QuestionDraft) Validate() error {
	if strings.TrimSpace(d.Text) == "" {
		return fmt.Errorf("%w: question text is required", apperrors.ErrInvalidInput)
	}
	if strings.TrimSpace(d.Exam) == "" {
		return fmt.Errorf("%w: question exam id is required", apperrors.ErrInvalidInput)
	}
	return nil
}

// Account is an admin or user record; both endpoints share the shape.
type Account struct {
	ID          string `json:"_id"`
	FullName    string `json:"fullName"`
	PhoneNumber string `json:"phoneNumber"`
	Email       string `json:"email"`
	ClassLevel  string `json:"classLevel,omitempty"`
	Role        string `json:"role"`
	IsVerified  bool   `json:"isVerified"`
}

// AdminDraft carries the create-admin form. The password check happens
// here so validation failures never reach the network.
type AdminDraft struct {
	FullName        string `json:"fullName"`
	Email           string `json:"email"`
	PhoneNumber     string `json:"phoneNumber"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"cpassword"`
}

func (d AdminDraft) Validate() error {
	if strings.TrimSpace(d.FullName) == "" {
		return fmt.Errorf("%w: full name is required", apperrors.ErrInvalidInput)
	}
	if strings.TrimSpace(d.Email) == "" {
		return fmt.Errorf("%w: email is required", apperrors.ErrInvalidInput)
	}
	if d.Password == "" {
		return fmt.Errorf("%w: password is required", apperrors.ErrInvalidInput)
	}
	if d.Password != d.ConfirmPassword {
		return fmt.Errorf("%w: passwords do not match", apperrors.ErrInvalidInput)
	}
	return nil
}

func DecodeLessons(items []json.RawMessage) ([]Lesson, error) {
	return decodeList[Lesson](items, "lesson")
}

func DecodeExams(items []json.RawMessage) ([]Exam, error) {
	return decodeList[Exam](items, "exam")
}

func DecodeQuestions(items []json.RawMessage) ([]Question, error) {
	return decodeList[Question](items, "question")
}

func DecodeAccounts(items []json.RawMessage) ([]Account, error) {
	return decodeList[Account](items, "account")
}

func decodeList[T any](items []json.RawMessage, kind string) ([]T, error) {
	out := make([]T, 0, len(items))
	for _, item := range items {
		var decoded T
		if err := json.Unmarshal(item, &decoded); err != nil {
			return nil, fmt.Errorf("decode %s: %w", kind, err)
		}
		out = append(out, decoded)
	}
	return out, nil
}
