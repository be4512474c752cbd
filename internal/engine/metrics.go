package engine

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// Metrics tracks operational counters across the engine.
var metrics struct {
	AdzunaRequests  atomic.Int64
	IndeedRequests  atomic.Int64
	ReedRequests    atomic.Int64
	FetchRequests   atomic.Int64
	FetchErrors     atomic.Int64
	RankRuns        atomic.Int64
	TrackerWrites   atomic.Int64
	HealthChecks    atomic.Int64
	ProfileUpdates  atomic.Int64
	TemplateBuilds  atomic.Int64
	MarketAnalyses  atomic.Int64
}

// GetMetrics returns a snapshot of all metrics including cache stats.
func GetMetrics() map[string]int64 {
	hits, misses := CacheStats()
	return map[string]int64{
		"adzuna_requests": metrics.AdzunaRequests.Load(),
		"indeed_requests": metrics.IndeedRequests.Load(),
		"reed_requests":   metrics.ReedRequests.Load(),
		"fetch_requests":  metrics.FetchRequests.Load(),
		"fetch_errors":    metrics.FetchErrors.Load(),
		"rank_runs":       metrics.RankRuns.Load(),
		"tracker_writes":  metrics.TrackerWrites.Load(),
		"health_checks":   metrics.HealthChecks.Load(),
		"profile_updates": metrics.ProfileUpdates.Load(),
		"template_builds": metrics.TemplateBuilds.Load(),
		"market_analyses": metrics.MarketAnalyses.Load(),
		"cache_hits":      hits,
		"cache_misses":    misses,
	}
}

// FormatMetrics returns metrics as a simple text format for the HTTP endpoint.
func FormatMetrics() string {
	m := GetMetrics()
	var sb strings.Builder
	keys := []string{
		"adzuna_requests", "indeed_requests", "reed_requests",
		"fetch_requests", "fetch_errors",
		"rank_runs", "tracker_writes", "health_checks",
		"profile_updates", "template_builds", "market_analyses",
		"cache_hits", "cache_misses",
	}
	for _, k := range keys {
		fmt.Fprintf(&sb, "%s %d\n", k, m[k])
	}
	return sb.String()
}

// Incrementors for the sources/ sub-package.
func IncrAdzunaRequests() { metrics.AdzunaRequests.Add(1) }
func IncrIndeedRequests() { metrics.IndeedRequests.Add(1) }
func IncrReedRequests()   { metrics.ReedRequests.Add(1) }
func IncrFetchRequests()  { metrics.FetchRequests.Add(1) }
func IncrFetchErrors()    { metrics.FetchErrors.Add(1) }

// Incrementors for the jobs/ sub-package.
func IncrRankRuns()       { metrics.RankRuns.Add(1) }
func IncrTrackerWrites()  { metrics.TrackerWrites.Add(1) }
func IncrProfileUpdates() { metrics.ProfileUpdates.Add(1) }
func IncrTemplateBuilds() { metrics.TemplateBuilds.Add(1) }
func IncrMarketAnalyses() { metrics.MarketAnalyses.Add(1) }

// IncrHealthChecks is called by the monitor on each check round.
func IncrHealthChecks() { metrics.HealthChecks.Add(1) }
