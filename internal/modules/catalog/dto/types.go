package dto

// LessonOutput mirrors the server's lesson record.
type LessonOutput struct {
	ID            string
	Title         string
	Description   string
	Video         string
	ClassLevel    string
	ScheduledDate string
	Price         float64
}

type LessonInput struct {
	Title         string
	Description   string
	Video         string
	ClassLevel    string
	ScheduledDate string
	Price         float64
}

type ExamOutput struct {
	ID          string
	Title       string
	Description string
	ClassLevel  string
	Duration    int
	StartDate   string
	EndDate     string
	IsPublished bool
}

type ExamInput struct {
	Title       string
	Description string
	ClassLevel  string
	Duration    int
	StartDate   string
	EndDate     string
	IsPublished bool
}

type QuestionOutput struct {
	ID            string
	Text          string
	Type          string
	Options       []string
	CorrectAnswer string
	Exam          string
	Points        int
}

type QuestionInput struct {
	Text          string
	Type          string
	Options       []string
	CorrectAnswer string
	Exam          string
	Points        int
}

type AccountOutput struct {
	ID          string
	FullName    string
	PhoneNumber string
	Email       string
	ClassLevel  string
	Role        string
	IsVerified  bool
}

type CreateAdminInput struct {
	FullName        string
	Email           string
	PhoneNumber     string
	Password        string
	ConfirmPassword string
}

// ListOutput wraps a typed page together with its cache status, so callers
// can render stale data while a refresh is in flight.
type ListOutput[T any] struct {
	Items []T
	Stale bool
}

// WatchOutput is ListOutput plus the subscriber handle to release later.
type WatchOutput[T any] struct {
	Items        []T
	Stale        bool
	SubscriberID string
}

// ImportQuestionsInput points at a local PDF exam paper to mine for
// question text.
type ImportQuestionsInput struct {
	PDFPath string
	ExamID  string
	Type    string
	Points  int
}

type ImportQuestionsOutput struct {
	Imported int
	Skipped  int
}
