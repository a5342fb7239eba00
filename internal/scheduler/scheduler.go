package scheduler

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/tdhoang-sw/sportsday-exporter/internal/export"
)

// Conn is the database handle an export job borrows for its lifetime
type Conn interface {
	export.Queryer
	Close() error
}

// Config holds scheduler configuration
type Config struct {
	Logger    *slog.Logger
	Interval  time.Duration
	Connect   func() (Conn, error)
	Runner    *export.Runner
	OutputDir string
}

// Scheduler runs the batch export at a fixed interval. The first job
// starts immediately; after each job, successful or not, it waits the
// full interval before the next one. A connection failure is logged
// and retried on the same cadence, never escalated.
type Scheduler struct {
	logger    *slog.Logger
	interval  time.Duration
	connect   func() (Conn, error)
	runner    *export.Runner
	outputDir string
}

// New creates a scheduler from the given configuration
func New(cfg *Config) *Scheduler {
	return &Scheduler{
		logger:    cfg.Logger,
		interval:  cfg.Interval,
		connect:   cfg.Connect,
		runner:    cfg.Runner,
		outputDir: cfg.OutputDir,
	}
}

// Run executes export jobs until ctx is canceled. Cancellation is
// observed between jobs and during the sleep; an in-flight job runs to
// completion first. Returns nil on cancellation, the only way out.
func (s *Scheduler) Run(ctx context.Context) error {
	s.logger.Info("Scheduler started",
		slog.Duration("interval", s.interval),
		slog.String("output_dir", s.outputDir),
	)

	for {
		// An in-flight job never observes the interrupt; cancellation
		// is honored only at the select below.
		s.runJob(context.WithoutCancel(ctx))

		timer := time.NewTimer(s.interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			s.logger.Info("Scheduler stopped")
			return nil
		case <-timer.C:
		}
	}
}

// runJob performs one batch export: open a connection, export every
// table, close the connection. The connection is released on every
// path out of the job.
func (s *Scheduler) runJob(ctx context.Context) {
	start := time.Now()

	conn, err := s.connect()
	if err != nil {
		s.logger.Error("Could not open database connection, will retry",
			slog.Any("error", err),
			slog.Duration("retry_in", s.interval),
		)
		return
	}
	defer func() {
		if err := conn.Close(); err != nil {
			s.logger.Warn("Failed to close database connection",
				slog.Any("error", err),
			)
		}
	}()

	paths := s.runner.ExportAll(ctx, conn)

	files := make([]string, len(paths))
	for i, p := range paths {
		files[i] = filepath.Base(p)
	}

	s.logger.Info("Export run finished",
		slog.Int("exported", len(paths)),
		slog.Int("tables", s.runner.TableCount()),
		slog.String("directory", s.outputDir),
		slog.Any("files", files),
		slog.Duration("elapsed", time.Since(start).Round(time.Millisecond)),
	)
}
