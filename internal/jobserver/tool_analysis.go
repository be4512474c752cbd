package jobserver

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/anatolykoptev/go_jobagent/internal/engine"
	"github.com/anatolykoptev/go_jobagent/internal/engine/jobs"
	"github.com/anatolykoptev/go_jobagent/internal/engine/sources"
	"github.com/anatolykoptev/go_jobagent/internal/toolutil"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// JobAnalysis is one unique Adzuna posting with extracted features and,
// optionally, the analysis framework attached.
type JobAnalysis struct {
	Job       sources.AdzunaJob       `json:"job"`
	Features  jobs.JobFeatures        `json:"job_features"`
	Framework *jobs.AnalysisFramework `json:"analysis_framework,omitempty"`
}

// JobSearchAnalysisOutput is the structured output for job_search_analysis.
type JobSearchAnalysisOutput struct {
	Query    string        `json:"query"`
	Location string        `json:"location"`
	Count    int           `json:"count"`
	Jobs     []JobAnalysis `json:"jobs"`
	Summary  string        `json:"summary"`
}

func registerJobSearchAnalysis(server *mcp.Server, deps Deps) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "job_search_analysis",
		Description: "Search Adzuna for jobs matching the query, deduplicate by company and title, and return each posting with extracted features (tech stack, experience level, remote policy, salary, benefits). Optionally attaches analysis prompts and scoring criteria per job.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input engine.JobSearchAnalysisInput) (*mcp.CallToolResult, *JobSearchAnalysisOutput, error) {
		if input.Query == "" {
			return nil, nil, fmt.Errorf("query is required")
		}
		location := input.Location
		if location == "" {
			location = engine.Cfg.DefaultLocation
		}
		if location == "" {
			location = "London"
		}
		maxResults := toolutil.ClampLimit(input.MaxResults, 1, 50, 15)

		cacheKey := engine.CacheKey("job_search_analysis", input.Query, location,
			strconv.Itoa(maxResults), strconv.FormatBool(input.IncludeFramework))
		if out, ok := toolutil.CacheLoadJSON[*JobSearchAnalysisOutput](ctx, cacheKey); ok {
			return nil, out, nil
		}

		found, err := sources.SearchAdzuna(ctx, input.Query, location, maxResults)
		if err != nil {
			return nil, nil, fmt.Errorf("adzuna search failed: %w", err)
		}

		analyzed := analyzeJobs(found, input.IncludeFramework)

		if deps.Tracker != nil {
			if err := deps.Tracker.LogSearch(ctx, input.Query, len(analyzed)); err != nil {
				slog.Warn("job_search_analysis: log search", slog.Any("error", err))
			}
		}

		out := &JobSearchAnalysisOutput{
			Query:    input.Query,
			Location: location,
			Count:    len(analyzed),
			Jobs:     analyzed,
			Summary:  fmt.Sprintf("Found %d unique jobs for %q in %s.", len(analyzed), input.Query, location),
		}
		toolutil.CacheStoreJSON(ctx, cacheKey, out)
		return nil, out, nil
	})
}

// analyzeJobs deduplicates postings by company+title (first wins) and runs
// feature extraction on each survivor.
func analyzeJobs(found []sources.AdzunaJob, includeFramework bool) []JobAnalysis {
	seen := make(map[string]bool, len(found))
	analyzed := make([]JobAnalysis, 0, len(found))
	for _, j := range found {
		key := engine.CompanyTitleKey(j.Company, j.Title)
		if seen[key] {
			continue
		}
		seen[key] = true

		a := JobAnalysis{
			Job:      j,
			Features: jobs.ExtractJobFeatures(j.Title, j.Description, j.SalaryMin, j.SalaryMax),
		}
		if includeFramework {
			f := jobs.BuildAnalysisFramework(j.Title, j.Company, j.Description)
			a.Framework = &f
		}
		analyzed = append(analyzed, a)
	}
	return analyzed
}
