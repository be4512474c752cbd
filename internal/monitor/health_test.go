package monitor

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/anatolykoptev/go_jobagent/internal/engine"
	"github.com/anatolykoptev/go_jobagent/internal/engine/jobs"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenStore(t.TempDir())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestCheckDatabase_Healthy(t *testing.T) {
	dir := t.TempDir()
	tr, err := jobs.OpenSQLiteTracker(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer tr.Close()

	if _, err := tr.Track(context.Background(), jobs.ApplicationTrackInput{
		JobURL: "u1", Company: "Monzo", Position: "Engineer", AppliedDate: "2026-08-01",
	}); err != nil {
		t.Fatal(err)
	}

	c := NewChecker(openTestStore(t), tr.Path())
	res := c.CheckDatabase(context.Background())

	if res.Status != StatusHealthy {
		t.Fatalf("status = %q: %s", res.Status, res.Error)
	}
	if res.Tables < 3 {
		t.Errorf("tables = %d, want >= 3", res.Tables)
	}
	if res.JobCount != 1 || res.ApplicationCount != 1 {
		t.Errorf("counts = %d jobs / %d applications", res.JobCount, res.ApplicationCount)
	}
}

func TestCheckDatabase_MissingFile(t *testing.T) {
	c := NewChecker(openTestStore(t), filepath.Join(t.TempDir(), "absent.db"))
	res := c.CheckDatabase(context.Background())

	if res.Status != StatusUnhealthy {
		t.Errorf("status = %q, want unhealthy", res.Status)
	}
	if res.Error == "" {
		t.Error("missing error detail")
	}
}

func TestCheckAdzuna_Unconfigured(t *testing.T) {
	engine.Init(engine.Config{FetchTimeout: time.Second})

	c := NewChecker(openTestStore(t), "")
	res := c.CheckAdzuna(context.Background())
	if res.Status != StatusUnconfigured {
		t.Errorf("status = %q, want unconfigured", res.Status)
	}
}

func TestSummary_OverallStatus(t *testing.T) {
	engine.Init(engine.Config{FetchTimeout: time.Second})

	dir := t.TempDir()
	tr, err := jobs.OpenSQLiteTracker(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer tr.Close()

	c := NewChecker(openTestStore(t), tr.Path())
	sum := c.Summary(context.Background())

	// Unconfigured APIs do not degrade a healthy database.
	if sum.OverallStatus != StatusHealthy {
		t.Errorf("overall = %q, want healthy", sum.OverallStatus)
	}
	if sum.Database.Status != StatusHealthy {
		t.Errorf("database = %q", sum.Database.Status)
	}
	if sum.APIs["adzuna"].Status != StatusUnconfigured {
		t.Errorf("adzuna = %q", sum.APIs["adzuna"].Status)
	}
	if sum.Counters == nil {
		t.Error("missing counters")
	}

	// A dead database makes the whole summary unhealthy.
	bad := NewChecker(openTestStore(t), filepath.Join(t.TempDir(), "absent.db"))
	if got := bad.Summary(context.Background()).OverallStatus; got != StatusUnhealthy {
		t.Errorf("overall = %q, want unhealthy", got)
	}
}

func TestStore_CleanupOldMetrics(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	s.LogHealthCheck(ctx, "database", StatusHealthy, 10*time.Millisecond, "ok")
	s.LogError(ctx, "test", "boom", "unit")

	// Old rows are deleted, fresh rows survive.
	if _, err := s.db.Exec(
		`INSERT INTO health_checks (timestamp, check_type, status, response_time, details)
		 VALUES (datetime('now', '-200 days'), 'database', 'healthy', 0.1, 'old')`); err != nil {
		t.Fatal(err)
	}

	if err := s.CleanupOldMetrics(ctx, MetricsRetention); err != nil {
		t.Fatal(err)
	}

	var checks, errs int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM health_checks`).Scan(&checks); err != nil {
		t.Fatal(err)
	}
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM error_logs`).Scan(&errs); err != nil {
		t.Fatal(err)
	}
	if checks != 1 {
		t.Errorf("health_checks rows = %d, want 1", checks)
	}
	if errs != 1 {
		t.Errorf("error_logs rows = %d, want 1", errs)
	}
}

func TestServiceMaintenance(t *testing.T) {
	dir := t.TempDir()
	tr, err := jobs.OpenSQLiteTracker(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer tr.Close()

	store, err := OpenStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	svc := NewService(NewChecker(store, tr.Path()), store, dir, 0)
	svc.Maintenance(context.Background())

	// Maintenance leaves one fresh backup behind.
	entries, err := os.ReadDir(filepath.Join(dir, "backups"))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("backups = %d, want 1", len(entries))
	}
}
