package monitor

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/anatolykoptev/go_jobagent/internal/engine"
	"github.com/anatolykoptev/go_jobagent/internal/engine/sources"
)

// Check statuses.
const (
	StatusHealthy      = "healthy"
	StatusDegraded     = "degraded"
	StatusUnhealthy    = "unhealthy"
	StatusUnconfigured = "unconfigured"
)

// CheckResult is the outcome of one health check.
type CheckResult struct {
	Status       string  `json:"status"`
	ResponseTime float64 `json:"response_time"` // seconds
	Details      string  `json:"details,omitempty"`
	Error        string  `json:"error,omitempty"`

	// Database-check extras.
	Tables           int `json:"tables,omitempty"`
	JobCount         int `json:"job_count,omitempty"`
	ApplicationCount int `json:"application_count,omitempty"`
}

// HealthSummary is the output of one full check round and of the
// health_status tool.
type HealthSummary struct {
	OverallStatus string                 `json:"overall_status"`
	Timestamp     string                 `json:"timestamp"`
	Database      CheckResult            `json:"database"`
	APIs          map[string]CheckResult `json:"apis"`
	Counters      map[string]int64       `json:"counters"`
}

// Checker runs the individual health checks and records them in the metrics
// store.
type Checker struct {
	store  *Store
	dbPath string // tracker database file
}

// NewChecker wires a checker to the metrics store and the tracker database
// file it should probe.
func NewChecker(store *Store, trackerDBPath string) *Checker {
	return &Checker{store: store, dbPath: trackerDBPath}
}

// CheckDatabase verifies the tracker database: the file exists, answers a
// trivial query, and reports table and row counts.
func (c *Checker) CheckDatabase(ctx context.Context) CheckResult {
	start := time.Now()

	fail := func(err error) CheckResult {
		elapsed := time.Since(start)
		c.store.LogHealthCheck(ctx, "database", StatusUnhealthy, elapsed, err.Error())
		return CheckResult{
			Status:       StatusUnhealthy,
			ResponseTime: elapsed.Seconds(),
			Error:        err.Error(),
			Details:      fmt.Sprintf("Database check failed: %v", err),
		}
	}

	if _, err := os.Stat(c.dbPath); err != nil {
		return fail(fmt.Errorf("database file does not exist: %s", c.dbPath))
	}

	db, err := sql.Open("sqlite", c.dbPath)
	if err != nil {
		return fail(err)
	}
	defer db.Close()

	var one int
	if err := db.QueryRowContext(ctx, "SELECT 1").Scan(&one); err != nil || one != 1 {
		if err == nil {
			err = errors.New("connectivity test failed")
		}
		return fail(err)
	}

	var tables int
	if err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sqlite_master WHERE type='table'`).Scan(&tables); err != nil {
		return fail(err)
	}

	// Missing tables count as zero rows, not failures.
	var jobCount, appCount int
	db.QueryRowContext(ctx, `SELECT COUNT(*) FROM jobs`).Scan(&jobCount)         //nolint:errcheck
	db.QueryRowContext(ctx, `SELECT COUNT(*) FROM applications`).Scan(&appCount) //nolint:errcheck

	elapsed := time.Since(start)
	res := CheckResult{
		Status:           StatusHealthy,
		ResponseTime:     elapsed.Seconds(),
		Tables:           tables,
		JobCount:         jobCount,
		ApplicationCount: appCount,
		Details:          fmt.Sprintf("Database responsive in %.2fs", elapsed.Seconds()),
	}
	c.store.LogHealthCheck(ctx, "database", StatusHealthy, elapsed, res.Details)
	return res
}

// CheckAdzuna probes the Adzuna API with a minimal search. Missing
// credentials are "unconfigured", which does not degrade overall health.
func (c *Checker) CheckAdzuna(ctx context.Context) CheckResult {
	start := time.Now()

	err := sources.PingAdzuna(ctx)
	elapsed := time.Since(start)

	switch {
	case err == nil:
		details := fmt.Sprintf("API responsive in %.2fs", elapsed.Seconds())
		c.store.LogAPIMetric(ctx, "adzuna", "search", 200, elapsed, 0)
		return CheckResult{Status: StatusHealthy, ResponseTime: elapsed.Seconds(), Details: details}
	case errors.Is(err, sources.ErrAdzunaNotConfigured):
		return CheckResult{Status: StatusUnconfigured, Details: "API credentials not configured"}
	default:
		c.store.LogError(ctx, "adzuna_api_check", err.Error(), "health_check")
		return CheckResult{
			Status:       StatusUnhealthy,
			ResponseTime: elapsed.Seconds(),
			Error:        err.Error(),
			Details:      fmt.Sprintf("API check failed: %v", err),
		}
	}
}

// Summary runs every check and derives the overall status: unhealthy when
// the database is down, degraded when any configured API is failing.
func (c *Checker) Summary(ctx context.Context) *HealthSummary {
	engine.IncrHealthChecks()

	dbRes := c.CheckDatabase(ctx)
	apis := map[string]CheckResult{
		"adzuna": c.CheckAdzuna(ctx),
	}

	overall := StatusHealthy
	if dbRes.Status != StatusHealthy {
		overall = StatusUnhealthy
	} else {
		for _, api := range apis {
			if api.Status == StatusUnhealthy {
				overall = StatusDegraded
				break
			}
		}
	}

	return &HealthSummary{
		OverallStatus: overall,
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		Database:      dbRes,
		APIs:          apis,
		Counters:      engine.GetMetrics(),
	}
}
