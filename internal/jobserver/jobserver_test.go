package jobserver

import (
	"strings"
	"testing"

	"github.com/anatolykoptev/go_jobagent/internal/engine"
	"github.com/anatolykoptev/go_jobagent/internal/engine/sources"
)

func TestSearchSummary(t *testing.T) {
	if got := searchSummary("python", 0, nil); !strings.Contains(got, "No listings") {
		t.Errorf("empty batch summary = %q", got)
	}
	if got := searchSummary("python", 12, nil); !strings.Contains(got, "none scored") {
		t.Errorf("no relevant summary = %q", got)
	}

	ranked := []engine.JobListing{{Title: "Senior Engineer", MatchScore: 87.5}}
	got := searchSummary("python", 12, ranked)
	if !strings.Contains(got, "12 listings") || !strings.Contains(got, "87.5/100") {
		t.Errorf("summary = %q", got)
	}
}

func TestAnalyzeJobs_DedupAndFeatures(t *testing.T) {
	found := []sources.AdzunaJob{
		{Title: "Python Developer", Company: "Monzo", Description: "python and aws", SalaryMin: 60000, SalaryMax: 80000},
		{Title: "python developer", Company: "MONZO", Description: "duplicate posting"},
		{Title: "Data Engineer", Company: "Wise", Description: "sql pipelines, remote"},
	}

	analyzed := analyzeJobs(found, false)
	if len(analyzed) != 2 {
		t.Fatalf("analyzed = %d, want 2", len(analyzed))
	}
	// First occurrence wins the company+title dedup.
	if analyzed[0].Job.Description != "python and aws" {
		t.Errorf("kept wrong duplicate: %q", analyzed[0].Job.Description)
	}
	if len(analyzed[0].Features.TechStack) == 0 {
		t.Error("missing tech stack features")
	}
	if analyzed[0].Framework != nil {
		t.Error("framework attached without include_analysis_framework")
	}

	withFramework := analyzeJobs(found, true)
	if withFramework[0].Framework == nil {
		t.Fatal("framework missing")
	}
	if !strings.Contains(withFramework[0].Framework.AnalysisPrompts["requirements_extraction"], "Monzo") {
		t.Error("framework prompt missing company")
	}
}
