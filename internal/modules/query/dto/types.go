package dto

import "encoding/json"

type Tag struct {
	Type string
	ID   string
}

// QueryInput describes one read: an endpoint path, its arguments, and the
// entity type used to derive cache tags from the result.
type QueryInput struct {
	Path       string
	Args       map[string]string
	EntityType string
}

type QueryResult struct {
	Items  []json.RawMessage
	Status string
	Stale  bool
}

type SubscribeOutput struct {
	SubscriberID string
	Result       QueryResult
}

// MutationInput describes one write. Invalidates lists the tags whose
// dependent reads must refresh once the write succeeds. Label names the
// operation for settle notifications ("exam added", ...).
type MutationInput struct {
	Method      string
	Path        string
	Body        any
	Invalidates []Tag
	Label       string
}

type MutationResult struct {
	Body []byte
}

// Event is emitted on the usecase event channel: "update" when a cache
// entry refreshes, "settle" when a mutation completes either way.
type Event struct {
	Kind  string
	Key   string
	Label string
	Err   error
}

const (
	EventUpdate = "update"
	EventSettle = "settle"
)
