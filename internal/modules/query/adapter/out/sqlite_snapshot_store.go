package out

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"eductl/internal/modules/query/domain"
	queryout "eductl/internal/modules/query/port/out"

	_ "modernc.org/sqlite"
)

// SQLiteSnapshotStore keeps the last good payload per request key so the
// console can show last-known data while the first refetch is in flight.
type SQLiteSnapshotStore struct {
	db *sql.DB
}

func NewSQLiteSnapshotStore(dbPath string) (queryout.SnapshotStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	store := &SQLiteSnapshotStore{db: db}
	if err := store.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *SQLiteSnapshotStore) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS snapshots (
  key TEXT PRIMARY KEY,
  path TEXT NOT NULL,
  args TEXT NOT NULL,
  entity_type TEXT NOT NULL,
  payload BLOB NOT NULL,
  fetched_at TEXT NOT NULL
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create snapshots table: %w", err)
	}
	return nil
}

func (s *SQLiteSnapshotStore) Save(ctx context.Context, snapshot domain.Snapshot) error {
	args, err := json.Marshal(snapshot.Args)
	if err != nil {
		return fmt.Errorf("encode snapshot args: %w", err)
	}
	const stmt = `
INSERT INTO snapshots (key, path, args, entity_type, payload, fetched_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(key) DO UPDATE SET
  path=excluded.path,
  args=excluded.args,
  entity_type=excluded.entity_type,
  payload=excluded.payload,
  fetched_at=excluded.fetched_at
`
	if _, err := s.db.ExecContext(ctx, stmt,
		string(snapshot.Key), snapshot.Path, string(args), snapshot.EntityType,
		snapshot.Payload, snapshot.FetchedAt.Format(time.RFC3339Nano)); err != nil {
		return fmt.Errorf("upsert snapshot: %w", err)
	}
	return nil
}

func (s *SQLiteSnapshotStore) LoadAll(ctx context.Context) ([]domain.Snapshot, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key, path, args, entity_type, payload, fetched_at FROM snapshots`)
	if err != nil {
		return nil, fmt.Errorf("select snapshots: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []domain.Snapshot
	for rows.Next() {
		var snapshot domain.Snapshot
		var key, args, fetchedAt string
		if err := rows.Scan(&key, &snapshot.Path, &args, &snapshot.EntityType, &snapshot.Payload, &fetchedAt); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		snapshot.Key = domain.Key(key)
		if err := json.Unmarshal([]byte(args), &snapshot.Args); err != nil {
			return nil, fmt.Errorf("decode snapshot args: %w", err)
		}
		if ts, err := time.Parse(time.RFC3339Nano, fetchedAt); err == nil {
			snapshot.FetchedAt = ts
		}
		out = append(out, snapshot)
	}
	return out, rows.Err()
}

func (s *SQLiteSnapshotStore) Delete(ctx context.Context, key domain.Key) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM snapshots WHERE key = ?`, string(key)); err != nil {
		return fmt.Errorf("delete snapshot: %w", err)
	}
	return nil
}

func (s *SQLiteSnapshotStore) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM snapshots`); err != nil {
		return fmt.Errorf("reset snapshots: %w", err)
	}
	return nil
}
