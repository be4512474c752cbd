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

func registerFintechJobSearch(server *mcp.Server, deps Deps) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "fintech_job_search",
		Description: "Search UK fintech job listings on Adzuna, Indeed, and Reed, rank them against the stored profile, and return the matches above the relevance threshold sorted by score. Empty query runs the standard engineering query set. Platform options: adzuna, indeed, reed, all (default).",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input engine.FintechJobSearchInput) (*mcp.CallToolResult, engine.FintechJobSearchOutput, error) {
		platform := toolutil.NormPlatform(input.Platform)
		query := input.Query
		if query == "" {
			query = "standard engineering set"
		}

		cacheKey := engine.CacheKey("fintech_job_search", input.Query, input.Location, platform, strconv.Itoa(input.Limit))
		if out, ok := toolutil.CacheLoadJSON[engine.FintechJobSearchOutput](ctx, cacheKey); ok {
			return nil, out, nil
		}

		batch := sources.CollectFintechJobs(ctx, input.Query, input.Location, platform)
		ranked := jobs.Rank(batch, deps.Profile.Get(), jobs.DefaultScoringConfig(), input.Limit)

		if deps.Tracker != nil {
			if err := deps.Tracker.LogSearch(ctx, query, len(ranked)); err != nil {
				slog.Warn("fintech_job_search: log search", slog.Any("error", err))
			}
		}

		out := engine.FintechJobSearchOutput{
			Query:   query,
			Jobs:    ranked,
			Summary: searchSummary(query, len(batch), ranked),
		}
		toolutil.CacheStoreJSON(ctx, cacheKey, out)
		return nil, out, nil
	})
}

// searchSummary is the one-line human summary for fintech_job_search output.
func searchSummary(query string, collected int, ranked []engine.JobListing) string {
	if collected == 0 {
		return fmt.Sprintf("No listings collected for %q.", query)
	}
	if len(ranked) == 0 {
		return fmt.Sprintf("Collected %d listings for %q; none scored above the relevance threshold.", collected, query)
	}
	return fmt.Sprintf("Collected %d listings for %q, %d relevant. Top match: %.1f/100.",
		collected, query, len(ranked), ranked[0].MatchScore)
}
