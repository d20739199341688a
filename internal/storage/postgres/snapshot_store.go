package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/GoSim-25-26J-441/qatrack-backend/internal/tracker/snapshot"
)

// Querier is the subset of *pgxpool.Pool used by SnapshotStore.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// SnapshotStore keeps the snapshot blob in a single row of app_snapshots.
type SnapshotStore struct {
	db  Querier
	key string
}

func NewSnapshotStore(db Querier, key string) *SnapshotStore {
	if key == "" {
		key = snapshot.DefaultKey
	}
	return &SnapshotStore{db: db, key: key}
}

// EnsureSchema creates the snapshot table when it does not exist.
func (s *SnapshotStore) EnsureSchema(ctx context.Context) error {
	const q = `
create table if not exists app_snapshots (
  key        text primary key,
  data       jsonb not null,
  updated_at timestamptz not null default now()
);
`
	if _, err := s.db.Exec(ctx, q); err != nil {
		return fmt.Errorf("create app_snapshots: %w", err)
	}
	return nil
}

func (s *SnapshotStore) Load(ctx context.Context) ([]byte, error) {
	const q = `select data::text from app_snapshots where key = $1;`

	var data string
	err := s.db.QueryRow(ctx, q, s.key).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, snapshot.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot %s: %w", s.key, err)
	}
	return []byte(data), nil
}

func (s *SnapshotStore) Save(ctx context.Context, blob []byte) error {
	const q = `
insert into app_snapshots (key, data, updated_at)
values ($1, $2::jsonb, now())
on conflict (key) do update
set data = excluded.data, updated_at = now();
`
	if _, err := s.db.Exec(ctx, q, s.key, string(blob)); err != nil {
		return fmt.Errorf("save snapshot %s: %w", s.key, err)
	}
	return nil
}
