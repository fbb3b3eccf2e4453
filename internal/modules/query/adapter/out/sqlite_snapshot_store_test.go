package out_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	out "eductl/internal/modules/query/adapter/out"
	"eductl/internal/modules/query/domain"
)

func TestSQLiteSnapshotStoreRoundTrip(t *testing.T) {
	t.Parallel()
	store, err := out.NewSQLiteSnapshotStore(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	snapshot := domain.Snapshot{
		Key:        domain.MakeKey("/lesson", map[string]string{"classLevel": "9"}),
		Path:       "/lesson",
		Args:       map[string]string{"classLevel": "9"},
		EntityType: "lessons",
		Payload:    []byte(`[{"_id":"l1"}]`),
		FetchedAt:  time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC),
	}
	if err := store.Save(context.Background(), snapshot); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := store.LoadAll(context.Background())
	if err != nil {
		t.Fatalf("load all: %v", err)
	}
	if len(loaded) != 1 {
		t.Fatalf("expected one snapshot, got %d", len(loaded))
	}
	got := loaded[0]
	if got.Key != snapshot.Key || got.Path != "/lesson" || got.EntityType != "lessons" {
		t.Fatalf("unexpected snapshot: %+v", got)
	}
	if got.Args["classLevel"] != "9" {
		t.Fatalf("args must survive the round trip, got %v", got.Args)
	}
	if string(got.Payload) != `[{"_id":"l1"}]` {
		t.Fatalf("payload must survive the round trip, got %s", got.Payload)
	}
	if !got.FetchedAt.Equal(snapshot.FetchedAt) {
		t.Fatalf("fetched_at must survive the round trip, got %v", got.FetchedAt)
	}
}

func TestSQLiteSnapshotStoreUpsertsByKey(t *testing.T) {
	t.Parallel()
	store, err := out.NewSQLiteSnapshotStore(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	base := domain.Snapshot{
		Key:        domain.MakeKey("/exam", nil),
		Path:       "/exam",
		EntityType: "exams",
		Payload:    []byte(`[]`),
		FetchedAt:  time.Now().UTC(),
	}
	if err := store.Save(context.Background(), base); err != nil {
		t.Fatalf("save: %v", err)
	}
	base.Payload = []byte(`[{"_id":"e1"}]`)
	if err := store.Save(context.Background(), base); err != nil {
		t.Fatalf("second save: %v", err)
	}

	loaded, err := store.LoadAll(context.Background())
	if err != nil {
		t.Fatalf("load all: %v", err)
	}
	if len(loaded) != 1 {
		t.Fatalf("same key must upsert, got %d rows", len(loaded))
	}
	if string(loaded[0].Payload) != `[{"_id":"e1"}]` {
		t.Fatalf("latest payload must win, got %s", loaded[0].Payload)
	}
}

func TestSQLiteSnapshotStoreDeleteAndReset(t *testing.T) {
	t.Parallel()
	store, err := out.NewSQLiteSnapshotStore(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	for _, path := range []string{"/lesson", "/exam"} {
		if err := store.Save(context.Background(), domain.Snapshot{
			Key:        domain.MakeKey(path, nil),
			Path:       path,
			EntityType: "x",
			Payload:    []byte(`[]`),
			FetchedAt:  time.Now().UTC(),
		}); err != nil {
			t.Fatalf("save %s: %v", path, err)
		}
	}

	if err := store.Delete(context.Background(), domain.MakeKey("/lesson", nil)); err != nil {
		t.Fatalf("delete: %v", err)
	}
	loaded, err := store.LoadAll(context.Background())
	if err != nil {
		t.Fatalf("load all: %v", err)
	}
	if len(loaded) != 1 || loaded[0].Path != "/exam" {
		t.Fatalf("expected the exam snapshot to remain, got %+v", loaded)
	}

	if err := store.Reset(context.Background()); err != nil {
		t.Fatalf("reset: %v", err)
	}
	loaded, err = store.LoadAll(context.Background())
	if err != nil {
		t.Fatalf("load after reset: %v", err)
	}
	if len(loaded) != 0 {
		t.Fatalf("reset must drop every snapshot, got %d", len(loaded))
	}
}
