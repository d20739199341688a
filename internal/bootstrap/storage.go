package bootstrap

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/qatrack-backend/config"
	httpapi "github.com/GoSim-25-26J-441/qatrack-backend/internal/api/http"
	"github.com/GoSim-25-26J-441/qatrack-backend/internal/storage/file"
	"github.com/GoSim-25-26J-441/qatrack-backend/internal/storage/memory"
	"github.com/GoSim-25-26J-441/qatrack-backend/internal/storage/postgres"
	"github.com/GoSim-25-26J-441/qatrack-backend/internal/storage/redis"
	"github.com/GoSim-25-26J-441/qatrack-backend/internal/storage/sqlite"
	"github.com/GoSim-25-26J-441/qatrack-backend/internal/tracker/snapshot"
)

// Storage is the snapshot backend chosen by STORAGE_DRIVER.
type Storage struct {
	snapshot.Storage
	// Pinger is set for backends with a connection worth health checking.
	Pinger httpapi.Pinger

	closers []func()
}

func (s *Storage) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
	s.closers = nil
}

func OpenStorage(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Storage, error) {
	if log == nil {
		log = zap.NewNop()
	}
	key := cfg.Storage.Key

	switch cfg.Storage.Driver {
	case config.DriverMemory:
		log.Warn("using in-memory storage; state is lost on restart")
		return &Storage{Storage: memory.New()}, nil

	case config.DriverFile:
		st, err := file.New(cfg.Storage.File)
		if err != nil {
			return nil, err
		}
		log.Info("using file storage", zap.String("path", st.Path()))
		return &Storage{Storage: st}, nil

	case config.DriverRedis:
		client, err := OpenRedis(ctx, &cfg.Redis, DBOptions{})
		if err != nil {
			return nil, err
		}
		st := redis.New(client, key)
		log.Info("using redis storage", zap.String("addr", cfg.Redis.Addr), zap.String("key", st.Key()))
		return &Storage{Storage: st, Pinger: st, closers: []func(){func() { _ = client.Close() }}}, nil

	case config.DriverPostgres:
		pool, err := OpenDB(ctx, &cfg.Database, DBOptions{})
		if err != nil {
			return nil, err
		}
		st := postgres.NewSnapshotStore(pool, key)
		if err := st.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, err
		}
		log.Info("using postgres storage", zap.String("key", key))
		return &Storage{Storage: st, Pinger: pool, closers: []func(){pool.Close}}, nil

	case config.DriverSQLite:
		st, err := sqlite.Open(cfg.Storage.SQLitePath, key)
		if err != nil {
			return nil, err
		}
		log.Info("using sqlite storage", zap.String("path", cfg.Storage.SQLitePath))
		return &Storage{Storage: st, Pinger: st, closers: []func(){func() { _ = st.Close() }}}, nil
	}
	return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
}
