// Package sources collects job postings from external boards: the Adzuna
// REST API plus Indeed UK and Reed scrapers.
package sources

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"

	"github.com/anatolykoptev/go_jobagent/internal/engine"
)

// adzunaBaseURL is a var so tests can point the client at a local server.
var adzunaBaseURL = "https://api.adzuna.com/v1/api/jobs"

// ErrAdzunaNotConfigured is returned when API credentials are missing.
// Callers treat this as a degraded source, not a hard failure.
var ErrAdzunaNotConfigured = errors.New("adzuna: ADZUNA_APP_ID / ADZUNA_APP_KEY not configured")

const adzunaMaxPerPage = 50

// AdzunaJob is one posting as returned by the Adzuna API, with the salary
// band kept numeric for feature extraction.
type AdzunaJob struct {
	Source       string  `json:"source"`
	Title        string  `json:"title"`
	Company      string  `json:"company"`
	Location     string  `json:"location"`
	SalaryMin    float64 `json:"salary_min,omitempty"`
	SalaryMax    float64 `json:"salary_max,omitempty"`
	ContractType string  `json:"contract_type,omitempty"`
	URL          string  `json:"url"`
	Description  string  `json:"description"`
	PostedDate   string  `json:"posted_date,omitempty"`
	Category     string  `json:"category,omitempty"`
}

type adzunaResponse struct {
	Results []adzunaItem `json:"results"`
}

type adzunaItem struct {
	Title   string `json:"title"`
	Company struct {
		DisplayName string `json:"display_name"`
	} `json:"company"`
	Location struct {
		DisplayName string `json:"display_name"`
	} `json:"location"`
	SalaryMin    float64 `json:"salary_min"`
	SalaryMax    float64 `json:"salary_max"`
	ContractType string  `json:"contract_type"`
	RedirectURL  string  `json:"redirect_url"`
	Description  string  `json:"description"`
	Created      string  `json:"created"`
	Category     struct {
		Label string `json:"label"`
	} `json:"category"`
}

// adzunaSearchURL builds the search endpoint for page 1.
func adzunaSearchURL(query, location string, maxResults int) string {
	country := engine.Cfg.AdzunaCountry
	if country == "" {
		country = "gb"
	}
	if maxResults < 1 {
		maxResults = 1
	}
	if maxResults > adzunaMaxPerPage {
		maxResults = adzunaMaxPerPage
	}

	params := url.Values{}
	params.Set("app_id", engine.Cfg.AdzunaAppID)
	params.Set("app_key", engine.Cfg.AdzunaAppKey)
	params.Set("results_per_page", strconv.Itoa(maxResults))
	params.Set("what", query)
	params.Set("where", location)
	params.Set("sort_by", "date")
	return fmt.Sprintf("%s/%s/search/1?%s", adzunaBaseURL, country, params.Encode())
}

// SearchAdzuna queries the Adzuna API and returns postings with their
// structured salary band. Description HTML is normalized to markdown.
func SearchAdzuna(ctx context.Context, query, location string, maxResults int) ([]AdzunaJob, error) {
	if engine.Cfg.AdzunaAppID == "" || engine.Cfg.AdzunaAppKey == "" {
		return nil, ErrAdzunaNotConfigured
	}
	engine.IncrAdzunaRequests()

	if location == "" {
		location = engine.Cfg.DefaultLocation
	}

	body, err := engine.FetchJSON(ctx, adzunaSearchURL(query, location, maxResults))
	if err != nil {
		return nil, fmt.Errorf("adzuna: search: %w", err)
	}

	var resp adzunaResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("adzuna: decode: %w", err)
	}

	jobs := make([]AdzunaJob, 0, len(resp.Results))
	for _, item := range resp.Results {
		jobs = append(jobs, AdzunaJob{
			Source:       "adzuna",
			Title:        item.Title,
			Company:      item.Company.DisplayName,
			Location:     item.Location.DisplayName,
			SalaryMin:    item.SalaryMin,
			SalaryMax:    item.SalaryMax,
			ContractType: item.ContractType,
			URL:          item.RedirectURL,
			Description:  normalizeDescription(item.Description),
			PostedDate:   item.Created,
			Category:     item.Category.Label,
		})
	}
	return jobs, nil
}

// SearchAdzunaListings runs SearchAdzuna and maps the results into the
// ranking pipeline's listing type.
func SearchAdzunaListings(ctx context.Context, query, location string, maxResults int) ([]engine.JobListing, error) {
	jobs, err := SearchAdzuna(ctx, query, location, maxResults)
	if err != nil {
		return nil, err
	}
	listings := make([]engine.JobListing, 0, len(jobs))
	for _, j := range jobs {
		listings = append(listings, j.ToListing())
	}
	return listings, nil
}

// ToListing converts an API posting into a pipeline listing, rendering the
// numeric salary band as text.
func (j AdzunaJob) ToListing() engine.JobListing {
	return engine.JobListing{
		Title:       j.Title,
		Company:     j.Company,
		Location:    j.Location,
		Salary:      formatSalaryBand(j.SalaryMin, j.SalaryMax),
		Description: j.Description,
		URL:         j.URL,
		Source:      "adzuna",
		Posted:      j.PostedDate,
	}
}

func formatSalaryBand(min, max float64) string {
	switch {
	case min > 0 && max > 0:
		return fmt.Sprintf("£%.0f - £%.0f", min, max)
	case min > 0:
		return fmt.Sprintf("£%.0f", min)
	case max > 0:
		return fmt.Sprintf("up to £%.0f", max)
	}
	return ""
}

// normalizeDescription converts posting HTML to markdown and caps its length.
func normalizeDescription(s string) string {
	if md, err := htmltomarkdown.ConvertString(s); err == nil {
		s = md
	} else {
		s = engine.CleanHTML(s)
	}
	limit := engine.Cfg.MaxContentChars
	if limit <= 0 {
		limit = 1000
	}
	return engine.TruncateRunes(s, limit, "")
}

// PingAdzuna performs a minimal search to verify API reachability. Used by
// the health checker.
func PingAdzuna(ctx context.Context) error {
	if engine.Cfg.AdzunaAppID == "" || engine.Cfg.AdzunaAppKey == "" {
		return ErrAdzunaNotConfigured
	}
	_, err := engine.FetchJSON(ctx, adzunaSearchURL("test", engine.Cfg.DefaultLocation, 1))
	if err != nil {
		return fmt.Errorf("adzuna: ping: %w", err)
	}
	return nil
}
