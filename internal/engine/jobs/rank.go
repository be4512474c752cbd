package jobs

import (
	"sort"

	"github.com/anatolykoptev/go_jobagent/internal/engine"
)

// DefaultResultLimit caps ranked output when the caller passes no limit.
const DefaultResultLimit = 20

// DedupByURL returns listings in first-seen order with at most one entry per
// non-empty URL. Listings with an empty URL are always retained: they carry
// no identity and are never compared against each other.
func DedupByURL(listings []engine.JobListing) []engine.JobListing {
	seen := make(map[string]bool, len(listings))
	deduped := make([]engine.JobListing, 0, len(listings))
	for _, l := range listings {
		if l.URL != "" {
			if seen[l.URL] {
				continue
			}
			seen[l.URL] = true
		}
		deduped = append(deduped, l)
	}
	return deduped
}

// Rank runs the full pipeline over one batch: dedup by URL, score each
// listing against the profile, drop everything at or below cfg.MinScore,
// sort by score descending (stable, so ties keep their input order) and
// truncate to limit. An empty or all-below-threshold batch yields an empty
// slice, not an error.
func Rank(listings []engine.JobListing, profile engine.UserProfile, cfg ScoringConfig, limit int) []engine.JobListing {
	engine.IncrRankRuns()

	if limit <= 0 {
		limit = DefaultResultLimit
	}

	unique := DedupByURL(listings)

	relevant := make([]engine.JobListing, 0, len(unique))
	for i := range unique {
		MatchScore(&unique[i], profile, cfg)
		if unique[i].MatchScore > cfg.MinScore {
			relevant = append(relevant, unique[i])
		}
	}

	sort.SliceStable(relevant, func(i, j int) bool {
		return relevant[i].MatchScore > relevant[j].MatchScore
	})

	if len(relevant) > limit {
		relevant = relevant[:limit]
	}
	return relevant
}
