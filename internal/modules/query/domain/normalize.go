package domain

import (
	"bytes"
	"encoding/json"
)

// Normalize folds every response shape the server is known to produce into
// a flat list. Screens assume list semantics unconditionally, so this is a
// contract of the cache layer, not a convenience. Precedence:
//
//  1. a bare array is used as-is
//  2. an envelope whose data field is an array
//  3. an items field that is an array
//  4. null or an empty body becomes an empty list
//  5. anything else is wrapped as a one-element list
//
// The function is total and idempotent: normalizing an already-normalized
// list returns the same list.
func Normalize(raw []byte) []json.RawMessage {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []json.RawMessage{}
	}

	if trimmed[0] == '[' {
		var list []json.RawMessage
		if err := json.Unmarshal(trimmed, &list); err == nil {
			return list
		}
	}

	var envelope struct {
		Data  json.RawMessage `json:"data"`
		Items json.RawMessage `json:"items"`
	}
	if err := json.Unmarshal(trimmed, &envelope); err == nil {
		if list, ok := asArray(envelope.Data); ok {
			return list
		}
		if list, ok := asArray(envelope.Items); ok {
			return list
		}
	}

	item := make(json.RawMessage, len(trimmed))
	copy(item, trimmed)
	return []json.RawMessage{item}
}

func asArray(raw json.RawMessage) ([]json.RawMessage, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, false
	}
	var list []json.RawMessage
	if err := json.Unmarshal(trimmed, &list); err != nil {
		return nil, false
	}
	return list, true
}
