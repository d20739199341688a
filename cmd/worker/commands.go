package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/qatrack-backend/config"
	"github.com/GoSim-25-26J-441/qatrack-backend/internal/auth"
	"github.com/GoSim-25-26J-441/qatrack-backend/internal/backup"
	"github.com/GoSim-25-26J-441/qatrack-backend/internal/bootstrap"
	"github.com/GoSim-25-26J-441/qatrack-backend/internal/logger"
	"github.com/GoSim-25-26J-441/qatrack-backend/internal/tracker/seed"
	"github.com/GoSim-25-26J-441/qatrack-backend/internal/tracker/snapshot"
	"github.com/GoSim-25-26J-441/qatrack-backend/internal/tracker/state"
	"github.com/GoSim-25-26J-441/qatrack-backend/internal/tracker/store"
)

type env struct {
	cfg     *config.Config
	log     *zap.Logger
	storage *bootstrap.Storage
}

func open(ctx context.Context) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log := logger.Must(cfg.App.Environment, cfg.App.LogLevel)
	storage, err := bootstrap.OpenStorage(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, log: log, storage: storage}, nil
}

func (e *env) close() {
	e.storage.Close()
	_ = e.log.Sync()
}

func (e *env) seed() (state.Data, error) {
	return seed.Build(seed.Options{File: e.cfg.Seed.File, DemoProgress: e.cfg.Seed.DemoProgress})
}

// RunExport writes the loaded snapshot, seed fallbacks applied, to a file or stdout.
func RunExport(args []string) error {
	ctx := context.Background()
	e, err := open(ctx)
	if err != nil {
		return err
	}
	defer e.close()

	data, err := e.seed()
	if err != nil {
		return err
	}
	blob, err := store.New(ctx, e.storage, data, store.WithLogger(e.log)).Snapshot()
	if err != nil {
		return err
	}

	if len(args) == 0 || args[0] == "-" {
		_, err = os.Stdout.Write(append(blob, '\n'))
		return err
	}
	return os.WriteFile(args[0], blob, 0o644)
}

// RunImport replaces the stored snapshot with a file. Fields the file lacks
// or cannot supply are filled from the seed.
func RunImport(args []string) error {
	if len(args) < 1 {
		return errors.New("usage: worker import <file.json>")
	}
	raw, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read import file: %w", err)
	}

	ctx := context.Background()
	e, err := open(ctx)
	if err != nil {
		return err
	}
	defer e.close()

	fallback, err := e.seed()
	if err != nil {
		return err
	}
	data, rep := snapshot.Decode(raw, fallback)
	for field, reason := range rep.Fallbacks {
		e.log.Warn("import field replaced by seed", zap.String("field", field), zap.String("reason", reason))
	}
	return e.save(ctx, data)
}

// RunReset overwrites the stored snapshot with the seed dataset.
func RunReset(_ []string) error {
	ctx := context.Background()
	e, err := open(ctx)
	if err != nil {
		return err
	}
	defer e.close()

	data, err := e.seed()
	if err != nil {
		return err
	}
	return e.save(ctx, data)
}

// RunBackup writes one backup file to the directory given or BACKUP_DIR.
func RunBackup(args []string) error {
	ctx := context.Background()
	e, err := open(ctx)
	if err != nil {
		return err
	}
	defer e.close()

	data, err := e.seed()
	if err != nil {
		return err
	}
	dir := e.cfg.Backup.Dir
	if len(args) > 0 {
		dir = args[0]
	}

	st := store.New(ctx, e.storage, data, store.WithLogger(e.log))
	path, err := backup.NewScheduler(st, dir, e.log).Run()
	if err != nil {
		return err
	}
	fmt.Println(path)
	return nil
}

// RunHash prints the bcrypt hash of a password for use in a seed file.
func RunHash(args []string) error {
	if len(args) < 1 {
		return errors.New("usage: worker hash <password>")
	}
	h, err := auth.Bcrypt{}.Hash(args[0])
	if err != nil {
		return err
	}
	fmt.Println(h)
	return nil
}

func (e *env) save(ctx context.Context, data state.Data) error {
	blob, err := snapshot.Encode(data)
	if err != nil {
		return err
	}
	if err := e.storage.Save(ctx, blob); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	e.log.Info("snapshot written",
		zap.Int("projects", len(data.Projects)),
		zap.Int("users", len(data.Users)),
	)
	return nil
}
