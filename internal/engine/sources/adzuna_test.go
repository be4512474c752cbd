package sources

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/anatolykoptev/go_jobagent/internal/engine"
)

const adzunaFixture = `{
	"results": [
		{
			"title": "Senior Python Developer",
			"company": {"display_name": "Starling Bank"},
			"location": {"display_name": "London, UK"},
			"salary_min": 70000,
			"salary_max": 90000,
			"contract_type": "permanent",
			"redirect_url": "https://adzuna.example/job/1",
			"description": "<p>Build <b>payments</b> infrastructure.</p>",
			"created": "2026-08-20T00:00:00Z",
			"category": {"label": "IT Jobs"}
		},
		{
			"title": "Data Engineer",
			"company": {"display_name": "Wise"},
			"location": {"display_name": "Remote"},
			"redirect_url": "https://adzuna.example/job/2",
			"description": "Pipelines."
		}
	]
}`

func setupAdzuna(t *testing.T, handler http.HandlerFunc) {
	t.Helper()
	srv := httptest.NewServer(handler)
	old := adzunaBaseURL
	adzunaBaseURL = srv.URL
	t.Cleanup(func() {
		adzunaBaseURL = old
		srv.Close()
	})
	engine.Init(engine.Config{
		AdzunaAppID:     "test-id",
		AdzunaAppKey:    "test-key",
		AdzunaCountry:   "gb",
		DefaultLocation: "London",
		MaxContentChars: 1000,
		FetchTimeout:    5 * time.Second,
	})
}

func TestSearchAdzuna(t *testing.T) {
	var gotQuery map[string]string
	setupAdzuna(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{}
		for k := range r.URL.Query() {
			gotQuery[k] = r.URL.Query().Get(k)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(adzunaFixture)) //nolint:errcheck
	})

	jobs, err := SearchAdzuna(context.Background(), "python developer", "", 15)
	if err != nil {
		t.Fatal(err)
	}
	if len(jobs) != 2 {
		t.Fatalf("jobs = %d, want 2", len(jobs))
	}

	if gotQuery["app_id"] != "test-id" || gotQuery["app_key"] != "test-key" {
		t.Errorf("credentials not sent: %v", gotQuery)
	}
	if gotQuery["what"] != "python developer" || gotQuery["where"] != "London" {
		t.Errorf("search params = %v", gotQuery)
	}
	if gotQuery["results_per_page"] != "15" || gotQuery["sort_by"] != "date" {
		t.Errorf("paging params = %v", gotQuery)
	}

	j := jobs[0]
	if j.Company != "Starling Bank" || j.SalaryMin != 70000 || j.SalaryMax != 90000 {
		t.Errorf("first job = %+v", j)
	}
	// HTML description is normalized to markdown.
	if j.Description == "" || j.Description[0] == '<' {
		t.Errorf("description not normalized: %q", j.Description)
	}
}

func TestSearchAdzuna_ResultsPerPageCapped(t *testing.T) {
	var perPage string
	setupAdzuna(t, func(w http.ResponseWriter, r *http.Request) {
		perPage = r.URL.Query().Get("results_per_page")
		w.Write([]byte(`{"results": []}`)) //nolint:errcheck
	})

	if _, err := SearchAdzuna(context.Background(), "q", "London", 500); err != nil {
		t.Fatal(err)
	}
	if perPage != "50" {
		t.Errorf("results_per_page = %q, want capped at 50", perPage)
	}
}

func TestSearchAdzuna_NotConfigured(t *testing.T) {
	engine.Init(engine.Config{FetchTimeout: time.Second})
	_, err := SearchAdzuna(context.Background(), "q", "", 10)
	if err != ErrAdzunaNotConfigured {
		t.Errorf("err = %v, want ErrAdzunaNotConfigured", err)
	}
}

func TestAdzunaJob_ToListing(t *testing.T) {
	j := AdzunaJob{
		Title:     "Backend Engineer",
		Company:   "Monzo",
		Location:  "London",
		SalaryMin: 60000,
		SalaryMax: 80000,
		URL:       "https://adzuna.example/job/3",
	}
	l := j.ToListing()
	if l.Salary != "£60000 - £80000" {
		t.Errorf("salary text = %q", l.Salary)
	}
	if l.Source != "adzuna" {
		t.Errorf("source = %q", l.Source)
	}

	// No band, no text.
	if got := (AdzunaJob{}).ToListing().Salary; got != "" {
		t.Errorf("empty band rendered %q", got)
	}
}

func TestPingAdzuna(t *testing.T) {
	var perPage, what string
	setupAdzuna(t, func(w http.ResponseWriter, r *http.Request) {
		perPage = r.URL.Query().Get("results_per_page")
		what = r.URL.Query().Get("what")
		w.Write([]byte(`{"results": []}`)) //nolint:errcheck
	})

	if err := PingAdzuna(context.Background()); err != nil {
		t.Fatal(err)
	}
	if perPage != "1" || what != "test" {
		t.Errorf("ping params = %q / %q, want 1 / test", perPage, what)
	}
}
