package jobs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/anatolykoptev/go_jobagent/internal/engine"
)

// Application statuses with dedicated next-action playbooks. Any other
// status string is accepted and gets the generic playbook.
const (
	StatusApplied            = "applied"
	StatusInterviewScheduled = "interview_scheduled"
	StatusInterviewed        = "interviewed"
)

// followUpAfterDays is how long an application may sit in "applied" before
// the summary flags it for follow-up.
const followUpAfterDays = 7

// ApplicationTrackInput is the input for the application_track tool.
type ApplicationTrackInput struct {
	JobURL      string `json:"job_url" jsonschema:"URL of the job posting"`
	Company     string `json:"company_name" jsonschema:"Name of the company"`
	Position    string `json:"position" jsonschema:"Job title applied for"`
	AppliedDate string `json:"application_date" jsonschema:"Date the application was submitted (YYYY-MM-DD)"`
	Status      string `json:"status,omitempty" jsonschema:"Current status (default: applied)"`
	Notes       string `json:"notes,omitempty" jsonschema:"Free-form notes about the application"`
}

// ApplicationTimeline lays out the key dates computed from the applied date.
type ApplicationTimeline struct {
	Submitted        string `json:"application_submitted"`
	ExpectedResponse string `json:"expected_response"`
	FollowUpIfSilent string `json:"follow_up_if_no_response"`
	MoveOnDate       string `json:"move_on_date"`
}

// ApplicationTrackResult is the output for application_track.
type ApplicationTrackResult struct {
	ApplicationID int64               `json:"application_id"`
	Company       string              `json:"company"`
	Position      string              `json:"position"`
	Status        string              `json:"status"`
	AppliedDate   string              `json:"applied_date"`
	NextActions   []string            `json:"next_actions"`
	Timeline      ApplicationTimeline `json:"timeline"`
	Tips          []string            `json:"tips"`
}

// TrackedApplication is one row of the status summary.
type TrackedApplication struct {
	ID            int64  `json:"id"`
	Title         string `json:"title"`
	Company       string `json:"company"`
	URL           string `json:"url,omitempty"`
	Status        string `json:"status"`
	AppliedDate   string `json:"applied_date"`
	DaysSince     int    `json:"days_since_application"`
	Notes         string `json:"notes,omitempty"`
	NeedsFollowUp bool   `json:"needs_follow_up"`
}

// SuccessMetrics aggregates pipeline outcomes for the summary.
type SuccessMetrics struct {
	ResponseRate        string `json:"response_rate"`
	InterviewRate       string `json:"interview_rate"`
	AverageResponseTime string `json:"average_response_time"`
}

// ApplicationStatusSummary is the output for application_status.
type ApplicationStatusSummary struct {
	TotalApplications     int                  `json:"total_applications"`
	StatusBreakdown       map[string]int       `json:"status_breakdown"`
	RecentApplications    []TrackedApplication `json:"recent_applications"`
	FollowUpNeeded        []TrackedApplication `json:"follow_up_needed"`
	ApplicationsByCompany map[string]int       `json:"applications_by_company"`
	SuccessMetrics        SuccessMetrics       `json:"success_metrics"`
	Recommendations       []string             `json:"recommendations"`
}

// SearchCount is one (query, count) pair from the search log.
type SearchCount struct {
	Query   string `json:"query"`
	Results int    `json:"results,omitempty"`
	Count   int    `json:"count"`
}

// CompanyCount is one (company, applications) pair from the tracker.
type CompanyCount struct {
	Company string `json:"company"`
	Count   int    `json:"count"`
}

// TrackerStore persists jobs, applications and the search log. Backed by
// SQLite under the data dir, or Postgres when DATABASE_URL is set.
type TrackerStore interface {
	Track(ctx context.Context, input ApplicationTrackInput) (*ApplicationTrackResult, error)
	StatusSummary(ctx context.Context) (*ApplicationStatusSummary, error)
	LogSearch(ctx context.Context, query string, results int) error
	PopularSearches(ctx context.Context, since time.Time, limit int) ([]SearchCount, error)
	TopCompanies(ctx context.Context, since time.Time, limit int) ([]CompanyCount, error)
	StatusCounts(ctx context.Context, since time.Time) (map[string]int, error)
	Close() error
}

// SQLiteTracker is the default TrackerStore.
type SQLiteTracker struct {
	db   *sql.DB
	path string
}

// OpenSQLiteTracker opens (or creates) jobs.db under dataDir.
func OpenSQLiteTracker(dataDir string) (*SQLiteTracker, error) {
	if err := os.MkdirAll(dataDir, 0o750); err != nil {
		return nil, fmt.Errorf("tracker: mkdir %s: %w", dataDir, err)
	}
	dbPath := filepath.Join(dataDir, "jobs.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("tracker: open db: %w", err)
	}
	db.SetMaxOpenConns(1) // SQLite: single writer
	if err := initTrackerSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("tracker: init schema: %w", err)
	}
	return &SQLiteTracker{db: db, path: dbPath}, nil
}

func initTrackerSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS jobs (
			id            INTEGER PRIMARY KEY,
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
			created_at    TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
		CREATE TABLE IF NOT EXISTS applications (
			id             INTEGER PRIMARY KEY,
			job_id         INTEGER,
			status         TEXT,
			applied_date   TEXT,
			follow_up_date TEXT,
			notes          TEXT,
			FOREIGN KEY (job_id) REFERENCES jobs (id)
		);
		CREATE TABLE IF NOT EXISTS job_searches (
			id            INTEGER PRIMARY KEY,
			query         TEXT,
			results_count INTEGER,
			search_date   TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`)
	return err
}

// Path returns the location of the database file, for backups and health checks.
func (t *SQLiteTracker) Path() string { return t.path }

// DB exposes the underlying handle for health checks.
func (t *SQLiteTracker) DB() *sql.DB { return t.db }

func (t *SQLiteTracker) Close() error { return t.db.Close() }

// Track upserts the job by URL and records one application against it.
func (t *SQLiteTracker) Track(ctx context.Context, input ApplicationTrackInput) (*ApplicationTrackResult, error) {
	if err := validateTrackInput(input); err != nil {
		return nil, err
	}
	status := normalizeStatus(input.Status)

	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("tracker: begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO jobs (title, company, url) VALUES (?, ?, ?)
		 ON CONFLICT(url) DO UPDATE SET title=excluded.title, company=excluded.company`,
		input.Position, input.Company, input.JobURL,
	); err != nil {
		return nil, fmt.Errorf("tracker: upsert job: %w", err)
	}

	var jobID int64
	if err := tx.QueryRowContext(ctx,
		`SELECT id FROM jobs WHERE url = ?`, input.JobURL,
	).Scan(&jobID); err != nil {
		return nil, fmt.Errorf("tracker: job id: %w", err)
	}

	followUp := trackTimeline(input.AppliedDate).FollowUpIfSilent
	res, err := tx.ExecContext(ctx,
		`INSERT INTO applications (job_id, status, applied_date, follow_up_date, notes)
		 VALUES (?, ?, ?, ?, ?)`,
		jobID, status, input.AppliedDate, followUp, input.Notes,
	)
	if err != nil {
		return nil, fmt.Errorf("tracker: insert application: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("tracker: commit: %w", err)
	}

	appID, _ := res.LastInsertId()
	engine.IncrTrackerWrites()
	return buildTrackResult(appID, input, status), nil
}

// StatusSummary reports the whole application pipeline.
func (t *SQLiteTracker) StatusSummary(ctx context.Context) (*ApplicationStatusSummary, error) {
	rows, err := t.db.QueryContext(ctx,
		`SELECT a.id, j.title, j.company, j.url, a.status, a.applied_date, a.notes
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
		var title, company, url, status, applied, notes sql.NullString
		if err := rows.Scan(&a.ID, &title, &company, &url, &status, &applied, &notes); err != nil {
			continue
		}
		a.Title = title.String
		if a.Title == "" {
			a.Title = "Unknown Position"
		}
		a.Company = company.String
		if a.Company == "" {
			a.Company = "Unknown Company"
		}
		a.URL = url.String
		a.Status = status.String
		a.AppliedDate = applied.String
		a.Notes = notes.String
		a.DaysSince = daysSince(a.AppliedDate)
		a.NeedsFollowUp = a.DaysSince >= followUpAfterDays && a.Status == StatusApplied
		apps = append(apps, a)
	}
	return summarizeApplications(apps), nil
}

// LogSearch records one search run for market analysis.
func (t *SQLiteTracker) LogSearch(ctx context.Context, query string, results int) error {
	_, err := t.db.ExecContext(ctx,
		`INSERT INTO job_searches (query, results_count) VALUES (?, ?)`, query, results)
	if err != nil {
		return fmt.Errorf("tracker: log search: %w", err)
	}
	return nil
}

// PopularSearches returns the most frequent queries since the given time.
func (t *SQLiteTracker) PopularSearches(ctx context.Context, since time.Time, limit int) ([]SearchCount, error) {
	rows, err := t.db.QueryContext(ctx,
		`SELECT query, COUNT(*) AS searches, AVG(results_count) AS avg_results
		 FROM job_searches
		 WHERE search_date > ?
		 GROUP BY query
		 ORDER BY searches DESC
		 LIMIT ?`, since.UTC().Format("2006-01-02 15:04:05"), limit)
	if err != nil {
		return nil, fmt.Errorf("tracker: popular searches: %w", err)
	}
	defer rows.Close()

	var out []SearchCount
	for rows.Next() {
		var sc SearchCount
		var avg sql.NullFloat64
		if err := rows.Scan(&sc.Query, &sc.Count, &avg); err != nil {
			continue
		}
		sc.Results = int(avg.Float64)
		out = append(out, sc)
	}
	return out, nil
}

// TopCompanies returns the companies with the most stored postings since the
// given time.
func (t *SQLiteTracker) TopCompanies(ctx context.Context, since time.Time, limit int) ([]CompanyCount, error) {
	rows, err := t.db.QueryContext(ctx,
		`SELECT company, COUNT(*) AS job_count
		 FROM jobs
		 WHERE created_at > ? AND company IS NOT NULL AND company != ''
		 GROUP BY company
		 ORDER BY job_count DESC
		 LIMIT ?`, since.UTC().Format("2006-01-02 15:04:05"), limit)
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

// StatusCounts returns per-status application counts since the given time.
func (t *SQLiteTracker) StatusCounts(ctx context.Context, since time.Time) (map[string]int, error) {
	rows, err := t.db.QueryContext(ctx,
		`SELECT status, COUNT(*) FROM applications
		 WHERE applied_date > ?
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

// --- shared tracker logic (both backends) ---

func validateTrackInput(input ApplicationTrackInput) error {
	if input.JobURL == "" || input.Company == "" || input.Position == "" || input.AppliedDate == "" {
		return errors.New("application_track: job_url, company_name, position and application_date are required")
	}
	return nil
}

func normalizeStatus(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return StatusApplied
	}
	return s
}

// trackTimeline computes the follow-up schedule. An unparseable applied date
// falls back to today rather than failing the whole call.
func trackTimeline(appliedDate string) ApplicationTimeline {
	applied, err := time.Parse("2006-01-02", appliedDate)
	if err != nil {
		applied = time.Now()
	}
	day := func(d int) string { return applied.AddDate(0, 0, d).Format("2006-01-02") }
	return ApplicationTimeline{
		Submitted:        appliedDate,
		ExpectedResponse: day(14),
		FollowUpIfSilent: day(7),
		MoveOnDate:       day(30),
	}
}

func nextActionsFor(status string) []string {
	switch status {
	case StatusApplied:
		return []string{
			"Research hiring manager on LinkedIn",
			"Set calendar reminder for follow-up in 1 week",
			"Prepare for potential screening call",
			"Research company recent news and developments",
		}
	case StatusInterviewScheduled:
		return []string{
			"Research interviewer backgrounds on LinkedIn",
			"Prepare technical examples relevant to role",
			"Practice common interview questions",
			"Plan interview outfit and logistics",
		}
	case StatusInterviewed:
		return []string{
			"Send thank-you email within 24 hours",
			"Reflect on interview questions for future prep",
			"Follow up if no response within their timeline",
			"Continue applying to other opportunities",
		}
	default:
		return []string{
			"Update application status as situation develops",
			"Continue job search activities",
			"Network within the industry",
		}
	}
}

func buildTrackResult(appID int64, input ApplicationTrackInput, status string) *ApplicationTrackResult {
	return &ApplicationTrackResult{
		ApplicationID: appID,
		Company:       input.Company,
		Position:      input.Position,
		Status:        status,
		AppliedDate:   input.AppliedDate,
		NextActions:   nextActionsFor(status),
		Timeline:      trackTimeline(input.AppliedDate),
		Tips: []string{
			"Keep detailed notes of all interactions",
			"Set calendar reminders for follow-ups",
			"Research company and role continuously",
			"Prepare for multiple interview rounds",
			"Keep applying to other opportunities",
		},
	}
}

func daysSince(date string) int {
	applied, err := time.Parse("2006-01-02", date)
	if err != nil {
		return 0
	}
	d := int(time.Since(applied).Hours() / 24)
	if d < 0 {
		return 0
	}
	return d
}

func summarizeApplications(apps []TrackedApplication) *ApplicationStatusSummary {
	s := &ApplicationStatusSummary{
		TotalApplications:     len(apps),
		StatusBreakdown:       map[string]int{},
		RecentApplications:    []TrackedApplication{},
		FollowUpNeeded:        []TrackedApplication{},
		ApplicationsByCompany: map[string]int{},
	}

	responded, interviews, respondedDays := 0, 0, 0
	for _, a := range apps {
		s.StatusBreakdown[a.Status]++
		s.ApplicationsByCompany[a.Company]++
		if a.NeedsFollowUp {
			s.FollowUpNeeded = append(s.FollowUpNeeded, a)
		}
		if a.DaysSince <= followUpAfterDays {
			s.RecentApplications = append(s.RecentApplications, a)
		}
		if a.Status != StatusApplied {
			responded++
			respondedDays += a.DaysSince
		}
		if strings.Contains(a.Status, "interview") {
			interviews++
		}
	}

	avgResponse := 0.0
	if responded > 0 {
		avgResponse = float64(respondedDays) / float64(responded)
	}
	s.SuccessMetrics = SuccessMetrics{
		ResponseRate:        fmt.Sprintf("%d / %d responses", responded, len(apps)),
		InterviewRate:       fmt.Sprintf("%d / %d interviews", interviews, len(apps)),
		AverageResponseTime: fmt.Sprintf("%.1f days", avgResponse),
	}
	s.Recommendations = []string{
		fmt.Sprintf("Follow up on %d applications that haven't received responses", len(s.FollowUpNeeded)),
		"Continue applying to maintain pipeline momentum",
		"Analyze successful applications to improve strategy",
		"Network with employees at companies of interest",
		"Keep detailed notes on all interactions for future reference",
	}
	return s
}
