package sources

import (
	"encoding/json"
	"fmt"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"golang.org/x/net/html"

	"github.com/anatolykoptev/go_jobagent/internal/engine"
)

// JobPostingLD is the subset of a schema.org/JobPosting block the scrapers
// care about.
type JobPostingLD struct {
	Title       string
	Company     string
	Location    string
	Salary      string
	Description string
	DatePosted  string
}

type jobPostingJSON struct {
	Type               string `json:"@type"`
	Title              string `json:"title"`
	Description        string `json:"description"`
	DatePosted         string `json:"datePosted"`
	HiringOrganization struct {
		Name string `json:"name"`
	} `json:"hiringOrganization"`
	JobLocation struct {
		Address struct {
			Locality string `json:"addressLocality"`
			Country  string `json:"addressCountry"`
		} `json:"address"`
	} `json:"jobLocation"`
	BaseSalary struct {
		Currency string `json:"currency"`
		Value    struct {
			MinValue float64 `json:"minValue"`
			MaxValue float64 `json:"maxValue"`
			Value    float64 `json:"value"`
		} `json:"value"`
	} `json:"baseSalary"`
}

// ExtractJobPostingLD walks the document's <script type="application/ld+json">
// blocks and decodes the first JobPosting found. The description HTML is
// converted to markdown.
func ExtractJobPostingLD(pageHTML string) (*JobPostingLD, bool) {
	doc, err := html.Parse(strings.NewReader(pageHTML))
	if err != nil {
		return nil, false
	}

	var posting *JobPostingLD
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if posting != nil {
			return
		}
		if n.Type == html.ElementNode && n.Data == "script" && attrVal(n, "type") == "application/ld+json" {
			if p, ok := decodeJobPosting(textOf(n)); ok {
				posting = p
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	if posting == nil {
		return nil, false
	}
	return posting, true
}

func decodeJobPosting(raw string) (*JobPostingLD, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" || !strings.Contains(raw, "JobPosting") {
		return nil, false
	}

	// Some boards wrap the posting in a @graph array.
	var candidates []json.RawMessage
	if strings.HasPrefix(raw, "[") {
		if err := json.Unmarshal([]byte(raw), &candidates); err != nil {
			return nil, false
		}
	} else {
		candidates = []json.RawMessage{json.RawMessage(raw)}
	}

	for _, c := range candidates {
		var p jobPostingJSON
		if err := json.Unmarshal(c, &p); err != nil {
			continue
		}
		if p.Type != "JobPosting" {
			continue
		}
		out := &JobPostingLD{
			Title:      p.Title,
			Company:    p.HiringOrganization.Name,
			DatePosted: p.DatePosted,
		}
		if md, err := htmltomarkdown.ConvertString(p.Description); err == nil {
			out.Description = strings.TrimSpace(md)
		} else {
			out.Description = engine.CleanHTML(p.Description)
		}

		locParts := []string{}
		if p.JobLocation.Address.Locality != "" {
			locParts = append(locParts, p.JobLocation.Address.Locality)
		}
		if p.JobLocation.Address.Country != "" {
			locParts = append(locParts, p.JobLocation.Address.Country)
		}
		out.Location = strings.Join(locParts, ", ")

		v := p.BaseSalary.Value
		switch {
		case v.MinValue > 0 && v.MaxValue > 0:
			out.Salary = fmt.Sprintf("£%.0f - £%.0f", v.MinValue, v.MaxValue)
		case v.Value > 0:
			out.Salary = fmt.Sprintf("£%.0f", v.Value)
		}
		return out, true
	}
	return nil, false
}

func attrVal(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func textOf(n *html.Node) string {
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
	}
	return sb.String()
}
