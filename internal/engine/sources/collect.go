package sources

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/anatolykoptev/go_jobagent/internal/engine"
)

// StandardQueries is the engineering query set run when the caller supplies
// no extra keywords.
var StandardQueries = []string{
	"software engineer",
	"python developer",
	"backend developer",
	"full stack developer",
	"data engineer",
	"DevOps engineer",
}

// Platform names accepted by CollectFintechJobs.
const (
	PlatformAll    = "all"
	PlatformAdzuna = "adzuna"
	PlatformIndeed = "indeed"
	PlatformReed   = "reed"
)

// CollectFintechJobs fans out over the enabled sources for every query and
// merges everything into one unranked batch. A failing source logs a warning
// and contributes nothing; per-host rate limiting keeps the fan-out polite.
func CollectFintechJobs(ctx context.Context, extraQuery, location, platform string) []engine.JobListing {
	queries := StandardQueries
	if q := strings.TrimSpace(extraQuery); q != "" {
		queries = []string{q}
	}
	platform = strings.ToLower(strings.TrimSpace(platform))
	if platform == "" {
		platform = PlatformAll
	}

	type fetchFn func(context.Context, string) ([]engine.JobListing, error)
	fetchers := map[string]fetchFn{}
	if platform == PlatformAll || platform == PlatformIndeed {
		fetchers[PlatformIndeed] = SearchIndeedJobs
	}
	if platform == PlatformAll || platform == PlatformReed {
		fetchers[PlatformReed] = SearchReedJobs
	}
	if platform == PlatformAll || platform == PlatformAdzuna {
		fetchers[PlatformAdzuna] = func(ctx context.Context, query string) ([]engine.JobListing, error) {
			return SearchAdzunaListings(ctx, query, location, adzunaMaxPerPage)
		}
	}

	var (
		mu  sync.Mutex
		wg  sync.WaitGroup
		all []engine.JobListing
	)
	for name, fetch := range fetchers {
		for _, query := range queries {
			wg.Add(1)
			go func(name, query string, fetch fetchFn) {
				defer wg.Done()
				jobs, err := fetch(ctx, query)
				if err != nil {
					slog.Warn("collect: source failed",
						slog.String("source", name),
						slog.String("query", query),
						slog.Any("error", err))
					return
				}
				mu.Lock()
				all = append(all, jobs...)
				mu.Unlock()
			}(name, query, fetch)
		}
	}
	wg.Wait()

	slog.Debug("collect: batch complete", slog.Int("listings", len(all)))
	return all
}
