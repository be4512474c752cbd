package sources

import (
	"strings"
	"testing"
)

const indeedFixture = `
<html><body>
<div class="job_seen_beacon">
  <h2><a href="/viewjob?jk=abc123">Senior Python Developer</a></h2>
  <span data-testid="company-name">Starling Bank</span>
  <div data-testid="job-location">London</div>
  <span class="salary-snippet">£70,000 - £90,000 a year</span>
  <div class="job-snippet">Build payments infrastructure in Python.</div>
</div>
<div class="job_seen_beacon">
  <h2><a href="/viewjob?jk=def456">Backend Developer</a></h2>
  <span class="companyName">Wise</span>
  <div class="companyLocation">Remote</div>
</div>
<div class="job_seen_beacon">
  <span>card without a title is skipped</span>
</div>
</body></html>`

const indeedTestIDFixture = `
<html><body>
<div data-testid="job-result">
  <a data-testid="job-title" href="/viewjob?jk=xyz">Platform Engineer</a>
  <span data-testid="company-name">Monzo</span>
</div>
</body></html>`

func TestParseIndeedJobs(t *testing.T) {
	jobs := ParseIndeedJobs(indeedFixture, "https://uk.indeed.com")
	if len(jobs) != 2 {
		t.Fatalf("jobs = %d, want 2", len(jobs))
	}

	j := jobs[0]
	if j.Title != "Senior Python Developer" || j.Company != "Starling Bank" {
		t.Errorf("first card = %+v", j)
	}
	if j.URL != "https://uk.indeed.com/viewjob?jk=abc123" {
		t.Errorf("url = %q", j.URL)
	}
	if j.Salary != "£70,000 - £90,000 a year" {
		t.Errorf("salary = %q", j.Salary)
	}
	if j.Source != "indeed" {
		t.Errorf("source = %q", j.Source)
	}

	// Fallback selectors on the second card.
	if jobs[1].Company != "Wise" || jobs[1].Location != "Remote" {
		t.Errorf("second card = %+v", jobs[1])
	}
}

func TestParseIndeedJobs_TestIDMarkup(t *testing.T) {
	jobs := ParseIndeedJobs(indeedTestIDFixture, "https://uk.indeed.com")
	if len(jobs) != 1 {
		t.Fatalf("jobs = %d, want 1", len(jobs))
	}
	if jobs[0].Title != "Platform Engineer" || jobs[0].Company != "Monzo" {
		t.Errorf("job = %+v", jobs[0])
	}
	// No location element in this markup: default applies.
	if jobs[0].Location != "UK" {
		t.Errorf("location = %q, want UK default", jobs[0].Location)
	}
}

func TestParseIndeedJobs_Empty(t *testing.T) {
	if jobs := ParseIndeedJobs("<html><body></body></html>", "https://uk.indeed.com"); len(jobs) != 0 {
		t.Errorf("jobs = %v, want none", jobs)
	}
}

func TestIndeedSearchURL(t *testing.T) {
	u := indeedSearchURL("python developer")
	for _, want := range []string{
		"uk.indeed.com/jobs",
		"q=python+developer+fintech",
		"l=United+Kingdom",
		"fromage=14",
		"salary=50000",
	} {
		if !strings.Contains(u, want) {
			t.Errorf("url %q missing %q", u, want)
		}
	}
}
