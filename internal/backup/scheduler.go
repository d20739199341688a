// Package backup copies the current state snapshot to timestamped files on a cron schedule.
package backup

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/qatrack-backend/internal/metrics"
)

// Source produces the bytes to back up.
type Source interface {
	Snapshot() ([]byte, error)
}

type Scheduler struct {
	source Source
	dir    string
	log    *zap.Logger
	now    func() time.Time

	cron *cron.Cron
}

func NewScheduler(source Source, dir string, log *zap.Logger) *Scheduler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scheduler{source: source, dir: dir, log: log, now: time.Now}
}

// Start runs a backup on every tick of schedule. Both five-field and
// six-field (with seconds) specs are accepted, as are descriptors like @daily.
func (s *Scheduler) Start(schedule string) error {
	if s.cron != nil {
		return errors.New("backup scheduler already started")
	}
	parser := cron.NewParser(cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	c := cron.New(cron.WithParser(parser))

	_, err := c.AddFunc(schedule, func() {
		if _, err := s.Run(); err != nil {
			s.log.Error("scheduled backup failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("backup schedule %q: %w", schedule, err)
	}

	s.log.Info("backup scheduler started", zap.String("schedule", schedule), zap.String("dir", s.dir))
	c.Start()
	s.cron = c
	return nil
}

// Stop halts the schedule and waits for a running backup, bounded by ctx.
func (s *Scheduler) Stop(ctx context.Context) {
	if s.cron == nil {
		return
	}
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
	}
	s.cron = nil
}

// Run writes one backup file and returns its path.
func (s *Scheduler) Run() (string, error) {
	path, err := s.run()
	if err != nil {
		metrics.IncrementBackup("failed")
		return "", err
	}
	metrics.IncrementBackup("ok")
	s.log.Info("backup written", zap.String("path", path))
	return path, nil
}

func (s *Scheduler) run() (string, error) {
	blob, err := s.source.Snapshot()
	if err != nil {
		return "", fmt.Errorf("snapshot: %w", err)
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create backup dir: %w", err)
	}

	name := "state-" + s.now().UTC().Format("20060102T150405Z") + ".json"
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, blob, 0o644); err != nil {
		return "", fmt.Errorf("write backup: %w", err)
	}
	return path, nil
}
