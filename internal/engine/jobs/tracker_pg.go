package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/anatolykoptev/go_jobagent/internal/engine"
)

// PgTracker is the Postgres TrackerStore, selected when DATABASE_URL is set.
type PgTracker struct {
	pool *pgxpool.Pool
}

const pgTrackerSchema = `
CREATE TABLE IF NOT EXISTS jobs (
	id            BIGSERIAL PRIMARY KEY,
	title         TEXT,
	company       TEXT,
	location      TEXT,
	url           TEXT UNIQUE,
	description   TEXT,
	salary_min    INTEGER,
	salary_max    INTEGER,
	contract_type TEXT,
	posted_date   TEXT,
	source        TEXT,
	created_at    TIMESTAMPTZ DEFAULT now()
);
CREATE TABLE IF NOT EXISTS applications (
	id             BIGSERIAL PRIMARY KEY,
	job_id         BIGINT REFERENCES jobs (id),
	status         TEXT,
	applied_date   TEXT,
	follow_up_date TEXT,
	notes          TEXT
);
CREATE TABLE IF NOT EXISTS job_searches (
	id            BIGSERIAL PRIMARY KEY,
	query         TEXT,
	results_count INTEGER,
	search_date   TIMESTAMPTZ DEFAULT now()
)`

// ConnectPgTracker creates a pgx pool against databaseURL and ensures the
// tracker schema exists.
func ConnectPgTracker(ctx context.Context, databaseURL string) (*PgTracker, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("tracker: parse DATABASE_URL: %w", err)
	}
	config.MaxConns = 10
	config.MinConns = 1

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("tracker: create pgx pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("tracker: ping postgres: %w", err)
	}
	if _, err := pool.Exec(ctx, pgTrackerSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("tracker: init schema: %w", err)
	}

	slog.Info("tracker postgres connected", slog.String("addr", config.ConnConfig.Host))
	return &PgTracker{pool: pool}, nil
}

func (t *PgTracker) Close() error {
	t.pool.Close()
	return nil
}

func (t *PgTracker) Track(ctx context.Context, input ApplicationTrackInput) (*ApplicationTrackResult, error) {
	if err := validateTrackInput(input); err != nil {
		return nil, err
	}
	status := normalizeStatus(input.Status)

	tx, err := t.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("tracker: begin: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	var jobID int64
	if err := tx.QueryRow(ctx,
		`INSERT INTO jobs (title, company, url) VALUES ($1, $2, $3)
		 ON CONFLICT (url) DO UPDATE SET title=excluded.title, company=excluded.company
		 RETURNING id`,
		input.Position, input.Company, input.JobURL,
	).Scan(&jobID); err != nil {
		return nil, fmt.Errorf("tracker: upsert job: %w", err)
	}

	followUp := trackTimeline(input.AppliedDate).FollowUpIfSilent
	var appID int64
	if err := tx.QueryRow(ctx,
		`INSERT INTO applications (job_id, status, applied_date, follow_up_date, notes)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		jobID, status, input.AppliedDate, followUp, input.Notes,
	).Scan(&appID); err != nil {
		return nil, fmt.Errorf("tracker: insert application: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("tracker: commit: %w", err)
	}

	engine.IncrTrackerWrites()
	return buildTrackResult(appID, input, status), nil
}

func (t *PgTracker) StatusSummary(ctx context.Context) (*ApplicationStatusSummary, error) {
	rows, err := t.pool.Query(ctx,
		`SELECT a.id, COALESCE(j.title, ''), COALESCE(j.company, ''), COALESCE(j.url, ''),
		        COALESCE(a.status, ''), COALESCE(a.applied_date, ''), COALESCE(a.notes, '')
		 FROM applications a
		 LEFT JOIN jobs j ON a.job_id = j.id
		 ORDER BY a.applied_date DESC`)
	if err != nil {
		return nil, fmt.Errorf("tracker: summary query: %w", err)
	}
	defer rows.Close()

	var apps []TrackedApplication
	for rows.Next() {
		var a TrackedApplication
		if err := rows.Scan(&a.ID, &a.Title, &a.Company, &a.URL, &a.Status, &a.AppliedDate, &a.Notes); err != nil {
			continue
		}
		if a.Title == "" {
			a.Title = "Unknown Position"
		}
		if a.Company == "" {
			a.Company = "Unknown Company"
		}
		a.DaysSince = daysSince(a.AppliedDate)
		a.NeedsFollowUp = a.DaysSince >= followUpAfterDays && a.Status == StatusApplied
		apps = append(apps, a)
	}
	return summarizeApplications(apps), nil
}

func (t *PgTracker) LogSearch(ctx context.Context, query string, results int) error {
	_, err := t.pool.Exec(ctx,
		`INSERT INTO job_searches (query, results_count) VALUES ($1, $2)`, query, results)
	if err != nil {
		return fmt.Errorf("tracker: log search: %w", err)
	}
	return nil
}

func (t *PgTracker) PopularSearches(ctx context.Context, since time.Time, limit int) ([]SearchCount, error) {
	rows, err := t.pool.Query(ctx,
		`SELECT query, COUNT(*) AS searches, COALESCE(AVG(results_count), 0)
		 FROM job_searches
		 WHERE search_date > $1
		 GROUP BY query
		 ORDER BY searches DESC
		 LIMIT $2`, since.UTC(), limit)
	if err != nil {
		return nil, fmt.Errorf("tracker: popular searches: %w", err)
	}
	defer rows.Close()

	var out []SearchCount
	for rows.Next() {
		var sc SearchCount
		var avg float64
		if err := rows.Scan(&sc.Query, &sc.Count, &avg); err != nil {
			continue
		}
		sc.Results = int(avg)
		out = append(out, sc)
	}
	return out, nil
}

func (t *PgTracker) TopCompanies(ctx context.Context, since time.Time, limit int) ([]CompanyCount, error) {
	rows, err := t.pool.Query(ctx,
		`SELECT company, COUNT(*) AS job_count
		 FROM jobs
		 WHERE created_at > $1 AND company IS NOT NULL AND company != ''
		 GROUP BY company
		 ORDER BY job_count DESC
		 LIMIT $2`, since.UTC(), limit)
	if err != nil {
		return nil, fmt.Errorf("tracker: top companies: %w", err)
	}
	defer rows.Close()

	var out []CompanyCount
	for rows.Next() {
		var cc CompanyCount
		if err := rows.Scan(&cc.Company, &cc.Count); err != nil {
			continue
		}
		out = append(out, cc)
	}
	return out, nil
}

func (t *PgTracker) StatusCounts(ctx context.Context, since time.Time) (map[string]int, error) {
	rows, err := t.pool.Query(ctx,
		`SELECT status, COUNT(*) FROM applications
		 WHERE applied_date > $1
		 GROUP BY status`, since.UTC().Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("tracker: status counts: %w", err)
	}
	defer rows.Close()

	out := map[string]int{}
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			continue
		}
		out[status] = n
	}
	return out, nil
}

var (
	_ TrackerStore = (*PgTracker)(nil)
	_ TrackerStore = (*SQLiteTracker)(nil)
)
