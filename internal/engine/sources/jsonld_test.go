package sources

import (
	"strings"
	"testing"
)

const jobPostingPage = `
<html><head>
<script type="application/ld+json">{"@context":"https://schema.org"}</script>
<script type="application/ld+json">
{
  "@type": "JobPosting",
  "title": "Senior Python Developer",
  "description": "<p>Build <b>payments</b> systems.</p>",
  "datePosted": "2026-08-18",
  "hiringOrganization": {"name": "Starling Bank"},
  "jobLocation": {"address": {"addressLocality": "London", "addressCountry": "GB"}},
  "baseSalary": {"currency": "GBP", "value": {"minValue": 70000, "maxValue": 90000}}
}
</script>
</head><body></body></html>`

func TestExtractJobPostingLD(t *testing.T) {
	p, ok := ExtractJobPostingLD(jobPostingPage)
	if !ok {
		t.Fatal("no JobPosting found")
	}
	if p.Title != "Senior Python Developer" || p.Company != "Starling Bank" {
		t.Errorf("posting = %+v", p)
	}
	if p.Location != "London, GB" {
		t.Errorf("location = %q", p.Location)
	}
	if p.Salary != "£70000 - £90000" {
		t.Errorf("salary = %q", p.Salary)
	}
	if p.DatePosted != "2026-08-18" {
		t.Errorf("posted = %q", p.DatePosted)
	}
	// Markdown, not HTML.
	if strings.Contains(p.Description, "<p>") {
		t.Errorf("description not converted: %q", p.Description)
	}
	if !strings.Contains(p.Description, "payments") {
		t.Errorf("description lost content: %q", p.Description)
	}
}

func TestExtractJobPostingLD_GraphArray(t *testing.T) {
	page := `<html><head><script type="application/ld+json">
	[{"@type":"WebSite"},{"@type":"JobPosting","title":"Data Engineer","baseSalary":{"value":{"value":65000}}}]
	</script></head></html>`

	p, ok := ExtractJobPostingLD(page)
	if !ok {
		t.Fatal("no JobPosting found in array")
	}
	if p.Title != "Data Engineer" {
		t.Errorf("title = %q", p.Title)
	}
	if p.Salary != "£65000" {
		t.Errorf("salary = %q", p.Salary)
	}
}

func TestExtractJobPostingLD_None(t *testing.T) {
	if _, ok := ExtractJobPostingLD("<html><body>no structured data</body></html>"); ok {
		t.Error("found posting in plain page")
	}
}
