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

const reedBaseURL = "https://www.reed.co.uk"

func reedSearchURL(query string) string {
	params := url.Values{}
	params.Set("keywords", query+" fintech")
	params.Set("location", "UK")
	params.Set("salaryfrom", strconv.Itoa(salaryFloor()))
	return reedBaseURL + "/jobs?" + params.Encode()
}

// SearchReedJobs fetches one Reed results page for the query and parses its
// job cards.
func SearchReedJobs(ctx context.Context, query string) ([]engine.JobListing, error) {
	engine.IncrReedRequests()

	body, err := fetchPage(ctx, reedSearchURL(query))
	if err != nil {
		return nil, fmt.Errorf("reed: fetch: %w", err)
	}
	return ParseReedJobs(string(body), reedBaseURL), nil
}

// ParseReedJobs extracts job listings from a Reed results page. Cards missing
// a title are skipped.
func ParseReedJobs(html, baseURL string) []engine.JobListing {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	cards := doc.Find("article.job-result")
	if cards.Length() == 0 {
		cards = doc.Find("div.job-result")
	}

	var jobs []engine.JobListing
	cards.Each(func(_ int, card *goquery.Selection) {
		heading := card.Find("h3").First()
		if heading.Length() == 0 {
			heading = card.Find("h2").First()
		}
		if heading.Length() == 0 {
			return
		}

		link := heading.Find("a").First()
		title := strings.TrimSpace(link.Text())
		if title == "" {
			title = strings.TrimSpace(heading.Text())
		}
		if title == "" {
			return
		}
		href, _ := link.Attr("href")

		company := firstText(card, "a.gtmJobListingPostedBy", "div.job-result-heading__company")
		if company == "" {
			company = "Unknown"
		}
		location := firstText(card, "li.job-metadata__item--location", "div.job-metadata")
		if location == "" {
			location = "UK"
		}

		jobs = append(jobs, engine.JobListing{
			Title:       title,
			Company:     company,
			Location:    location,
			Salary:      firstText(card, "li.job-metadata__item--salary"),
			Description: firstText(card, "p.job-result-description__details"),
			URL:         resolveURL(baseURL, href),
			Source:      "reed",
		})
	})
	return jobs
}
