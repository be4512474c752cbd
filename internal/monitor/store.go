// Package monitor runs periodic health checks against the tracker database
// and the Adzuna API, records results in a SQLite metrics database, and
// performs maintenance (backups, metric retention).
package monitor

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// MetricsRetention is how long health and API metric rows are kept.
// Error log rows are kept twice as long.
const MetricsRetention = 90 * 24 * time.Hour

// Store is the metrics database. Write failures are logged and swallowed:
// monitoring must never take the server down.
type Store struct {
	db   *sql.DB
	path string
}

// OpenStore opens (or creates) metrics.db under dataDir.
func OpenStore(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0o750); err != nil {
		return nil, fmt.Errorf("monitor: mkdir %s: %w", dataDir, err)
	}
	path := filepath.Join(dataDir, "metrics.db")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("monitor: open metrics db: %w", err)
	}
	db.SetMaxOpenConns(1) // SQLite: single writer
	if err := initMetricsSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("monitor: init schema: %w", err)
	}
	return &Store{db: db, path: path}, nil
}

func initMetricsSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS health_checks (
			id            INTEGER PRIMARY KEY,
			timestamp     DATETIME DEFAULT CURRENT_TIMESTAMP,
			check_type    TEXT,
			status        TEXT,
			response_time REAL,
			details       TEXT
		);
		CREATE TABLE IF NOT EXISTS api_metrics (
			id            INTEGER PRIMARY KEY,
			timestamp     DATETIME DEFAULT CURRENT_TIMESTAMP,
			api_name      TEXT,
			endpoint      TEXT,
			status_code   INTEGER,
			response_time REAL,
			request_size  INTEGER,
			response_size INTEGER
		);
		CREATE TABLE IF NOT EXISTS performance_metrics (
			id           INTEGER PRIMARY KEY,
			timestamp    DATETIME DEFAULT CURRENT_TIMESTAMP,
			metric_name  TEXT,
			metric_value REAL,
			context      TEXT
		);
		CREATE TABLE IF NOT EXISTS error_logs (
			id            INTEGER PRIMARY KEY,
			timestamp     DATETIME DEFAULT CURRENT_TIMESTAMP,
			error_type    TEXT,
			error_message TEXT,
			stack_trace   TEXT,
			context       TEXT
		)`)
	return err
}

func (s *Store) Close() error { return s.db.Close() }

// Path returns the metrics database location.
func (s *Store) Path() string { return s.path }

// LogHealthCheck records one check outcome.
func (s *Store) LogHealthCheck(ctx context.Context, checkType, status string, responseTime time.Duration, details string) {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO health_checks (check_type, status, response_time, details)
		 VALUES (?, ?, ?, ?)`,
		checkType, status, responseTime.Seconds(), details)
	if err != nil {
		slog.Warn("monitor: log health check", slog.Any("error", err))
	}
}

// LogAPIMetric records one external API call outcome.
func (s *Store) LogAPIMetric(ctx context.Context, apiName, endpoint string, statusCode int, responseTime time.Duration, responseSize int) {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO api_metrics (api_name, endpoint, status_code, response_time, request_size, response_size)
		 VALUES (?, ?, ?, ?, 0, ?)`,
		apiName, endpoint, statusCode, responseTime.Seconds(), responseSize)
	if err != nil {
		slog.Warn("monitor: log api metric", slog.Any("error", err))
	}
}

// LogPerformanceMetric records one named measurement.
func (s *Store) LogPerformanceMetric(ctx context.Context, name string, value float64, metricContext string) {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO performance_metrics (metric_name, metric_value, context)
		 VALUES (?, ?, ?)`,
		name, value, metricContext)
	if err != nil {
		slog.Warn("monitor: log performance metric", slog.Any("error", err))
	}
}

// LogError records one error event.
func (s *Store) LogError(ctx context.Context, errType, message, errContext string) {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO error_logs (error_type, error_message, stack_trace, context)
		 VALUES (?, ?, '', ?)`,
		errType, message, errContext)
	if err != nil {
		slog.Warn("monitor: log error", slog.Any("error", err))
	}
}

// CleanupOldMetrics deletes metric rows past retention. Error logs are kept
// twice as long.
func (s *Store) CleanupOldMetrics(ctx context.Context, retention time.Duration) error {
	if retention <= 0 {
		retention = MetricsRetention
	}
	cutoff := time.Now().Add(-retention).UTC().Format("2006-01-02 15:04:05")
	errCutoff := time.Now().Add(-2 * retention).UTC().Format("2006-01-02 15:04:05")

	for _, table := range []string{"health_checks", "api_metrics", "performance_metrics"} {
		if _, err := s.db.ExecContext(ctx,
			fmt.Sprintf(`DELETE FROM %s WHERE timestamp < ?`, table), cutoff); err != nil {
			return fmt.Errorf("monitor: cleanup %s: %w", table, err)
		}
	}
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM error_logs WHERE timestamp < ?`, errCutoff); err != nil {
		return fmt.Errorf("monitor: cleanup error_logs: %w", err)
	}
	return nil
}
