// Package job runs the periodic background work of the server.
package job

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// Manager owns the cron engine. Overlapping runs of the same job are skipped
// and panics are recovered and logged.
type Manager struct {
	engine *cron.Cron
}

func NewManager() *Manager {
	logger := cron.PrintfLogger(slog.NewLogLogger(slog.Default().Handler(), slog.LevelWarn))
	return &Manager{
		engine: cron.New(cron.WithChain(
			cron.Recover(logger),
			cron.SkipIfStillRunning(logger),
		)),
	}
}

// Register schedules job with a standard cron spec or descriptor such as "@hourly".
func (m *Manager) Register(spec string, job cron.Job) error {
	_, err := m.engine.AddJob(spec, job)
	if err != nil {
		return fmt.Errorf("invalid schedule %q: %w", spec, err)
	}
	return nil
}

func (m *Manager) Start() {
	slog.Info("cron engine started", "jobs", len(m.engine.Entries()))
	m.engine.Start()
}

// Stop stops scheduling and waits for running jobs until ctx is done.
func (m *Manager) Stop(ctx context.Context) {
	done := m.engine.Stop()
	select {
	case <-done.Done():
		slog.Info("cron engine stopped")
	case <-ctx.Done():
		slog.Warn("cron engine stop timed out", "error", ctx.Err())
	}
}
