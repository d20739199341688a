package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/qatrack-backend/config"
	"github.com/GoSim-25-26J-441/qatrack-backend/internal/tracker/snapshot"
)

// fakeDB keeps rows in memory and records the statements it saw.
type fakeDB struct {
	rows    map[string]string
	execs   []string
	execErr error
}

type fakeRow struct {
	val string
	err error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*(dest[0].(*string)) = r.val
	return nil
}

func (f *fakeDB) QueryRow(_ context.Context, _ string, args ...any) pgx.Row {
	v, ok := f.rows[args[0].(string)]
	if !ok {
		return fakeRow{err: pgx.ErrNoRows}
	}
	return fakeRow{val: v}
}

func (f *fakeDB) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.execs = append(f.execs, sql)
	if f.execErr != nil {
		return pgconn.CommandTag{}, f.execErr
	}
	if len(args) == 2 {
		f.rows[args[0].(string)] = args[1].(string)
	}
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func TestSnapshotStore_RoundTrip(t *testing.T) {
	db := &fakeDB{rows: map[string]string{}}
	store := NewSnapshotStore(db, "")
	ctx := context.Background()

	_, err := store.Load(ctx)
	assert.True(t, errors.Is(err, snapshot.ErrNotFound))

	require.NoError(t, store.Save(ctx, []byte(`{"users":[]}`)))
	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, `{"users":[]}`, string(got))
	assert.Contains(t, db.rows, snapshot.DefaultKey)
}

func TestSnapshotStore_SaveError(t *testing.T) {
	db := &fakeDB{rows: map[string]string{}, execErr: errors.New("conn reset")}
	store := NewSnapshotStore(db, "k")

	err := store.Save(context.Background(), []byte(`{}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "save snapshot k")
}

func TestSnapshotStore_EnsureSchema(t *testing.T) {
	db := &fakeDB{rows: map[string]string{}}
	require.NoError(t, NewSnapshotStore(db, "k").EnsureSchema(context.Background()))
	require.Len(t, db.execs, 1)
	assert.Contains(t, db.execs[0], "create table if not exists app_snapshots")
}

func TestDSN(t *testing.T) {
	cfg := &config.DatabaseConfig{Host: "db", Port: 5433, User: "qa", Password: "pw", Name: "qatrack"}
	assert.Equal(t, "host=db port=5433 user=qa password=pw dbname=qatrack sslmode=disable", DSN(cfg))

	cfg.DSN = "postgres://qa@db/qatrack"
	assert.Equal(t, "postgres://qa@db/qatrack", DSN(cfg))
}
