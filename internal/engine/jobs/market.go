package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/anatolykoptev/go_jobagent/internal/engine"
)

// MarketAnalysisInput is the input for the job_market_analysis tool.
type MarketAnalysisInput struct {
	Location      string `json:"location,omitempty" jsonschema:"Geographic area to analyze (default: London)"`
	JobCategory   string `json:"job_category,omitempty" jsonschema:"Industry or job category (default: Technology)"`
	TimeframeDays int    `json:"timeframe_days,omitempty" jsonschema:"Days of stored data to look back over (default 30)"`
}

// SalaryBand is one experience level's advertised salary range.
type SalaryBand struct {
	Min     int `json:"min"`
	Max     int `json:"max"`
	Average int `json:"average"`
}

// MarketInsights carries the static market intelligence attached to every
// analysis. These are curated reference numbers, not derived from stored data.
type MarketInsights struct {
	DemandIndicators struct {
		HighDemandSkills []string `json:"high_demand_skills"`
		EmergingSkills   []string `json:"emerging_skills"`
		SkillTrends      string   `json:"skill_trends"`
	} `json:"demand_indicators"`
	SalaryPatterns   map[string]SalaryBand `json:"salary_patterns"`
	SalaryNote       string                `json:"salary_note"`
	RemoteWorkTrends map[string]string     `json:"remote_work_trends"`
	HiringPatterns   map[string]string     `json:"hiring_patterns"`
}

// MarketAnalysis is the output for job_market_analysis.
type MarketAnalysis struct {
	AnalysisPeriod    string            `json:"analysis_period"`
	Location          string            `json:"location"`
	JobCategory       string            `json:"job_category"`
	PopularSearches   []SearchCount     `json:"popular_searches"`
	TopCompanies      []CompanyCount    `json:"top_hiring_companies"`
	ApplicationStats  map[string]int    `json:"application_statistics"`
	MarketInsights    MarketInsights    `json:"market_insights"`
	Recommendations   []string          `json:"recommendations"`
	JobSearchStrategy map[string]string `json:"job_search_strategy"`
}

// AnalyzeMarket combines stored search and application data with static
// market insights. Store failures degrade to empty sections rather than
// failing the analysis.
func AnalyzeMarket(ctx context.Context, store TrackerStore, input MarketAnalysisInput) *MarketAnalysis {
	location := input.Location
	if location == "" {
		location = "London"
	}
	category := input.JobCategory
	if category == "" {
		category = "Technology"
	}
	days := input.TimeframeDays
	if days <= 0 {
		days = 30
	}
	since := time.Now().AddDate(0, 0, -days)

	out := &MarketAnalysis{
		AnalysisPeriod:   fmt.Sprintf("Last %d days", days),
		Location:         location,
		JobCategory:      category,
		PopularSearches:  []SearchCount{},
		TopCompanies:     []CompanyCount{},
		ApplicationStats: map[string]int{},
	}

	if store != nil {
		if popular, err := store.PopularSearches(ctx, since, 10); err != nil {
			slog.Warn("market: popular searches", slog.Any("error", err))
		} else if popular != nil {
			out.PopularSearches = popular
		}
		if top, err := store.TopCompanies(ctx, since, 10); err != nil {
			slog.Warn("market: top companies", slog.Any("error", err))
		} else if top != nil {
			out.TopCompanies = top
		}
		if stats, err := store.StatusCounts(ctx, since); err != nil {
			slog.Warn("market: status counts", slog.Any("error", err))
		} else if stats != nil {
			out.ApplicationStats = stats
		}
	}

	out.MarketInsights = staticMarketInsights()
	out.Recommendations = []string{
		"Focus on in-demand skills like cloud technologies and AI/ML",
		"Target hybrid/remote positions for better work-life balance",
		"Apply during peak hiring months for better response rates",
		"Research company-specific benefits and culture",
		"Network actively on LinkedIn and attend tech meetups",
		"Keep skills updated with online courses and certifications",
	}
	out.JobSearchStrategy = map[string]string{
		"application_volume":    "Apply to 10-15 relevant positions per week",
		"quality_over_quantity": "Tailor each application to specific role requirements",
		"follow_up_timeline":    "Follow up after 1 week if no initial response",
		"networking_importance": "40% of jobs are filled through networking",
		"skill_development":     "Continuous learning is essential in tech roles",
	}

	engine.IncrMarketAnalyses()
	return out
}

func staticMarketInsights() MarketInsights {
	var m MarketInsights
	m.DemandIndicators.HighDemandSkills = []string{
		"Python", "JavaScript", "React", "AWS", "Docker", "Kubernetes",
		"SQL", "Machine Learning", "Data Analysis", "DevOps",
	}
	m.DemandIndicators.EmergingSkills = []string{
		"AI/ML", "Cloud Computing", "Cybersecurity", "Blockchain",
		"Data Engineering", "Site Reliability Engineering",
	}
	m.DemandIndicators.SkillTrends = "Based on job descriptions, cloud technologies and AI/ML skills show increasing demand"
	m.SalaryPatterns = map[string]SalaryBand{
		"entry_level":  {Min: 35000, Max: 50000, Average: 42500},
		"mid_level":    {Min: 50000, Max: 80000, Average: 65000},
		"senior_level": {Min: 80000, Max: 120000, Average: 95000},
		"lead_level":   {Min: 100000, Max: 150000, Average: 125000},
	}
	m.SalaryNote = "Salaries vary significantly by company size, industry, and specific skills"
	m.RemoteWorkTrends = map[string]string{
		"fully_remote": "25-30% of tech positions",
		"hybrid":       "50-60% of tech positions",
		"onsite_only":  "15-20% of tech positions",
		"trend":        "Hybrid work arrangements becoming the standard",
	}
	m.HiringPatterns = map[string]string{
		"peak_hiring_months":        "January, February, September, October",
		"slow_periods":              "December, July, August",
		"application_response_time": "1-2 weeks for initial response, 3-4 weeks for full process",
	}
	return m
}
