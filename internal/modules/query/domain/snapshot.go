package domain

import "time"

// Snapshot is the durable form of one successful read, enough to rebuild a
// stale cache entry and re-issue its request.
type Snapshot struct {
	Key        Key
	Path       string
	Args       map[string]string
	EntityType string
	Payload    []byte
	FetchedAt  time.Time
}
