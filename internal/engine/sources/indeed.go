package sources

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/anatolykoptev/go_jobagent/internal/engine"
)

const indeedBaseURL = "https://uk.indeed.com"

// indeedSearchURL builds the Indeed UK search URL. The query gets a
// "fintech" suffix and a salary floor, matching what the ranking pipeline
// expects from this source.
func indeedSearchURL(query string) string {
	params := url.Values{}
	params.Set("q", query+" fintech")
	params.Set("l", "United Kingdom")
	params.Set("fromage", "14")
	params.Set("salary", strconv.Itoa(salaryFloor()))
	return indeedBaseURL + "/jobs?" + params.Encode()
}

func salaryFloor() int {
	if engine.Cfg.SearchSalaryMin > 0 {
		return engine.Cfg.SearchSalaryMin
	}
	return engine.DefaultMinSalary
}

// enrichIndeedMax caps how many detail pages one search fetches. Card
// snippets are enough for most listings; only salary-less ones are worth the
// extra round-trips.
const enrichIndeedMax = 5

// SearchIndeedJobs fetches one Indeed UK results page for the query and
// parses its job cards. Listings without a salary snippet are enriched from
// their detail page, up to enrichIndeedMax per search.
func SearchIndeedJobs(ctx context.Context, query string) ([]engine.JobListing, error) {
	engine.IncrIndeedRequests()

	body, err := fetchPage(ctx, indeedSearchURL(query))
	if err != nil {
		return nil, fmt.Errorf("indeed: fetch: %w", err)
	}
	jobs := ParseIndeedJobs(string(body), indeedBaseURL)

	enriched := 0
	for i := range jobs {
		if enriched >= enrichIndeedMax {
			break
		}
		if jobs[i].Salary != "" {
			continue
		}
		jobs[i] = FetchIndeedPosting(ctx, jobs[i])
		enriched++
	}
	return jobs, nil
}

// ParseIndeedJobs extracts job listings from an Indeed results page. Indeed
// rotates between two card markups; both selector sets are tried. Cards
// missing a title or company are skipped.
func ParseIndeedJobs(html, baseURL string) []engine.JobListing {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	cards := doc.Find("div.job_seen_beacon")
	if cards.Length() == 0 {
		cards = doc.Find(`div[data-testid="job-result"]`)
	}

	var jobs []engine.JobListing
	cards.Each(func(_ int, card *goquery.Selection) {
		title := card.Find("h2 a").First()
		if title.Length() == 0 {
			title = card.Find(`a[data-testid="job-title"]`).First()
		}
		if title.Length() == 0 {
			return
		}
		href, _ := title.Attr("href")

		company := firstText(card, `span[data-testid="company-name"]`, "span.companyName")
		if company == "" {
			company = "Unknown"
		}
		location := firstText(card, `div[data-testid="job-location"]`, "div.companyLocation")
		if location == "" {
			location = "UK"
		}

		l := engine.JobListing{
			Title:       strings.TrimSpace(title.Text()),
			Company:     company,
			Location:    location,
			Salary:      firstText(card, "span.salary-snippet", "div.salary-snippet-container"),
			Description: firstText(card, "div.job-snippet", `div[data-testid="job-snippet"]`),
			URL:         resolveURL(baseURL, href),
			Source:      "indeed",
		}
		if l.Title == "" {
			return
		}
		jobs = append(jobs, l)
	})
	return jobs
}

// firstText returns the trimmed text of the first selector that matches.
func firstText(s *goquery.Selection, selectors ...string) string {
	for _, sel := range selectors {
		if node := s.Find(sel).First(); node.Length() > 0 {
			if text := strings.TrimSpace(node.Text()); text != "" {
				return text
			}
		}
	}
	return ""
}

// FetchIndeedPosting fetches a job detail page and enriches the listing with
// its JSON-LD JobPosting data, when present. The listing is returned
// unchanged on any fetch or parse failure.
func FetchIndeedPosting(ctx context.Context, l engine.JobListing) engine.JobListing {
	if l.URL == "" {
		return l
	}
	body, err := fetchPage(ctx, l.URL)
	if err != nil {
		return l
	}

	posting, ok := ExtractJobPostingLD(string(body))
	if !ok {
		return l
	}
	if posting.Description != "" {
		l.Description = posting.Description
	}
	if l.Salary == "" && posting.Salary != "" {
		l.Salary = posting.Salary
	}
	if posting.DatePosted != "" {
		l.Posted = posting.DatePosted
	}
	return l
}
