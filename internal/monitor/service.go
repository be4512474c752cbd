package monitor

import (
	"context"
	"log/slog"
	"time"

	"github.com/anatolykoptev/go_jobagent/internal/engine/jobs"
)

// DefaultCheckInterval is how often the service runs a full check round.
const DefaultCheckInterval = 5 * time.Minute

// Service runs health-check rounds on a ticker and exposes maintenance.
type Service struct {
	checker  *Checker
	store    *Store
	dataDir  string
	interval time.Duration
}

// NewService assembles the monitoring service. interval <= 0 uses the
// default.
func NewService(checker *Checker, store *Store, dataDir string, interval time.Duration) *Service {
	if interval <= 0 {
		interval = DefaultCheckInterval
	}
	return &Service{checker: checker, store: store, dataDir: dataDir, interval: interval}
}

// Checker returns the underlying health checker, for the health_status tool.
func (s *Service) Checker() *Checker { return s.checker }

// Run performs check rounds until ctx is cancelled. One round runs
// immediately on start.
func (s *Service) Run(ctx context.Context) {
	slog.Info("monitoring service started", slog.Duration("interval", s.interval))

	s.round(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			slog.Info("monitoring service stopped")
			return
		case <-ticker.C:
			s.round(ctx)
		}
	}
}

func (s *Service) round(ctx context.Context) {
	summary := s.checker.Summary(ctx)
	slog.Info("health check completed",
		slog.String("overall", summary.OverallStatus),
		slog.String("database", summary.Database.Status),
		slog.String("adzuna", summary.APIs["adzuna"].Status))
}

// Maintenance backs up the tracker database and prunes old backups and
// metric rows. Individual failures are logged; maintenance always finishes.
func (s *Service) Maintenance(ctx context.Context) {
	slog.Info("running maintenance tasks")

	if _, err := jobs.BackupDatabase(s.checker.dbPath, s.dataDir); err != nil {
		slog.Warn("maintenance: backup", slog.Any("error", err))
	}
	jobs.CleanupOldBackups(s.dataDir, jobs.DefaultBackupRetention)

	if err := s.store.CleanupOldMetrics(ctx, MetricsRetention); err != nil {
		slog.Warn("maintenance: metrics cleanup", slog.Any("error", err))
	}
}
