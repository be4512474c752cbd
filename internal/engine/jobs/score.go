package jobs

import (
	"strings"

	"github.com/anatolykoptev/go_jobagent/internal/engine"
)

// FintechKeywords is the default domain vocabulary for relevance scoring.
var FintechKeywords = []string{
	"fintech", "financial technology", "banking", "payments", "cryptocurrency",
	"blockchain", "trading", "investment", "wealth management", "insurtech",
	"regtech", "digital banking", "mobile payments", "peer-to-peer",
	"robo-advisor", "algorithmic trading", "risk management", "financial services",
	"payment processing", "open banking", "neobank", "digital wallet",
}

// SeniorityTitles are the title keywords that earn the seniority bonus.
var SeniorityTitles = []string{"senior", "lead", "principal"}

// ScoringConfig enumerates the match-scoring knobs. All weights are tuning
// values carried over from the reference behaviour; override per run rather
// than editing in place.
type ScoringConfig struct {
	DomainKeywords []string // vocabulary counted against job text

	DomainWeight        float64 // per domain keyword hit
	SkillWeight         float64 // per profile skill hit
	ExperienceWeight    float64 // per profile experience hit
	QualificationWeight float64 // per profile qualification hit

	SalaryBonus float64 // flat, when parsed salary ≥ profile minimum

	// SeniorityBonus is flat, when the title contains any SeniorityTitles
	// entry. Zero disables the rule (the simplified scorer variant).
	SeniorityBonus  float64
	SeniorityTitles []string

	MinScore float64 // listings must score strictly above this to survive
	MaxScore float64 // hard cap on the computed score
}

// DefaultScoringConfig returns the richer scorer variant: the full fintech
// vocabulary plus the title-seniority bonus.
func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		DomainKeywords:      FintechKeywords,
		DomainWeight:        10,
		SkillWeight:         15,
		ExperienceWeight:    12,
		QualificationWeight: 8,
		SalaryBonus:         20,
		SeniorityBonus:      10,
		SeniorityTitles:     SeniorityTitles,
		MinScore:            20,
		MaxScore:            100,
	}
}

// MatchScore computes how well a listing matches the profile and assigns the
// result to l.MatchScore, overwriting any previous value. Missing or empty
// text fields count as zero matches, never as failures. Re-running with the
// same inputs yields the same score.
func MatchScore(l *engine.JobListing, profile engine.UserProfile, cfg ScoringConfig) float64 {
	score := 0.0
	jobText := strings.ToLower(l.Title + " " + l.Description)

	score += countSubstrings(jobText, cfg.DomainKeywords) * cfg.DomainWeight
	score += countSubstrings(jobText, profile.Skills) * cfg.SkillWeight
	score += countSubstrings(jobText, profile.Experience) * cfg.ExperienceWeight
	score += countSubstrings(jobText, profile.Qualifications) * cfg.QualificationWeight

	if l.Salary != "" && ParseSalaryAmount(l.Salary) >= profile.MinSalary {
		score += cfg.SalaryBonus
	}

	if cfg.SeniorityBonus != 0 {
		title := strings.ToLower(l.Title)
		for _, kw := range cfg.SeniorityTitles {
			if strings.Contains(title, kw) {
				score += cfg.SeniorityBonus
				break
			}
		}
	}

	if score > cfg.MaxScore {
		score = cfg.MaxScore
	}
	l.MatchScore = score
	return score
}

// countSubstrings counts how many terms appear in text, case-insensitively.
func countSubstrings(text string, terms []string) float64 {
	n := 0.0
	for _, term := range terms {
		if strings.Contains(text, strings.ToLower(term)) {
			n++
		}
	}
	return n
}
