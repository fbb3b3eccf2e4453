package domain

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Key identifies one cached read: the endpoint path plus its arguments in
// canonical order. Two reads with the same key share one cache entry and at
// most one in-flight network request.
type Key string

func MakeKey(path string, args map[string]string) Key {
	if len(args) == 0 {
		return Key(path)
	}
	names := make([]string, 0, len(args))
	for name := range args {
		names = append(names, name)
	}
	sort.Strings(names)
	pairs := make([]string, 0, len(names))
	for _, name := range names {
		pairs = append(pairs, name+"="+args[name])
	}
	return Key(path + "?" + strings.Join(pairs, "&"))
}

// ListID marks the collection-level tag of an entity type.
const ListID = "LIST"

// Tag is a named invalidation group: an entity type plus either a concrete
// item id or ListID for the collection as a whole.
type Tag struct {
	Type string
	ID   string
}

func ItemTag(entityType, id string) Tag {
	return Tag{Type: entityType, ID: id}
}

func ListTag(entityType string) Tag {
	return Tag{Type: entityType, ID: ListID}
}

// TypeTag invalidates every tag of an entity type at once, collection and
// items alike.
func TypeTag(entityType string) Tag {
	return Tag{Type: entityType}
}

// Matches reports whether an invalidation tag reaches a provided tag. A tag
// without an id is type-level and matches every id of its type.
func (t Tag) Matches(other Tag) bool {
	if t.Type != other.Type {
		return false
	}
	return t.ID == "" || t.ID == other.ID
}

// DeriveTags computes the tags a read provides: one item-level tag per
// returned id plus the collection-level tag. A read that yielded nothing
// still provides the collection tag so that creates refresh it.
func DeriveTags(entityType string, items []json.RawMessage) []Tag {
	tags := make([]Tag, 0, len(items)+1)
	for _, item := range items {
		if id := ExtractID(item); id != "" {
			tags = append(tags, ItemTag(entityType, id))
		}
	}
	return append(tags, ListTag(entityType))
}

// ExtractID pulls the server id out of an otherwise opaque payload. The
// cache layer interprets nothing else about entity bodies.
func ExtractID(item json.RawMessage) string {
	var probe struct {
		ID string `json:"_id"`
	}
	if err := json.Unmarshal(item, &probe); err != nil {
		return ""
	}
	return probe.ID
}

// Status tracks a cache entry's lifecycle.
type Status string

const (
	StatusUninitialized Status = "uninitialized"
	StatusLoading       Status = "loading"
	StatusSuccess       Status = "success"
	StatusError         Status = "error"
)

// ReadState is the observable state of one cache entry.
type ReadState struct {
	Items  []json.RawMessage
	Status Status
	Stale  bool
	Err    error
}

// RequestError is a server-rejected request: the HTTP status plus the
// server-supplied message when the envelope carried one.
type RequestError struct {
	StatusCode int
	Message    string
}

func (e *RequestError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("request failed with status %d: %s", e.StatusCode, e.Message)
}

// ErrorFromResponse builds a RequestError for a non-2xx response, pulling
// the message out of the envelope if the body carried one.
func ErrorFromResponse(statusCode int, body []byte) error {
	var envelope struct {
		Message string `json:"message"`
	}
	_ = json.Unmarshal(body, &envelope)
	return &RequestError{StatusCode: statusCode, Message: envelope.Message}
}
