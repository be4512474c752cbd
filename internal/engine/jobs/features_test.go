package jobs

import (
	"strings"
	"testing"
)

func TestExtractJobFeatures(t *testing.T) {
	desc := "We use Python and Django on AWS with Docker. Senior engineers enjoy " +
		"a generous pension and learning budget. Fully remote team."
	f := ExtractJobFeatures("Senior Backend Engineer", desc, 70000, 90000)

	for _, want := range []string{"python", "django", "aws", "docker"} {
		found := false
		for _, got := range f.TechStack {
			if got == want {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("tech stack missing %q: %v", want, f.TechStack)
		}
	}
	if f.ExperienceLevel != "senior" {
		t.Errorf("experience level = %q, want senior", f.ExperienceLevel)
	}
	if f.RemotePolicy != "remote" {
		t.Errorf("remote policy = %q, want remote", f.RemotePolicy)
	}
	if !f.HasBenefits {
		t.Error("benefits not detected")
	}
	if f.SalaryInfo == nil || f.SalaryInfo.Average != 80000 {
		t.Errorf("salary info = %+v, want average 80000", f.SalaryInfo)
	}
	if f.DescriptionLength != len(desc) {
		t.Errorf("description length = %d, want %d", f.DescriptionLength, len(desc))
	}
}

func TestExtractJobFeatures_Defaults(t *testing.T) {
	f := ExtractJobFeatures("Barista", "Make coffee.", 0, 0)
	if len(f.TechStack) != 0 {
		t.Errorf("tech stack = %v, want empty", f.TechStack)
	}
	if f.ExperienceLevel != "not_specified" {
		t.Errorf("experience level = %q", f.ExperienceLevel)
	}
	if f.RemotePolicy != "not_specified" {
		t.Errorf("remote policy = %q", f.RemotePolicy)
	}
	if f.SalaryInfo != nil {
		t.Errorf("salary info = %+v, want nil", f.SalaryInfo)
	}
	if f.HasBenefits {
		t.Error("benefits detected in plain text")
	}
}

func TestExtractJobFeatures_FirstLevelWins(t *testing.T) {
	// "junior" appears before "senior" in the indicator order, so a posting
	// mentioning both is classified junior.
	f := ExtractJobFeatures("Engineer", "junior to senior welcome", 0, 0)
	if f.ExperienceLevel != "junior" {
		t.Errorf("experience level = %q, want junior", f.ExperienceLevel)
	}
}

func TestBuildAnalysisFramework(t *testing.T) {
	long := strings.Repeat("requirements and responsibilities ", 100)
	fw := BuildAnalysisFramework("Platform Engineer", "Wise", long)

	if fw.JobTitle != "Platform Engineer" || fw.Company != "Wise" {
		t.Errorf("header = %q at %q", fw.JobTitle, fw.Company)
	}
	if len(fw.JobDescription) > frameworkDescChars {
		t.Errorf("description not truncated: %d chars", len(fw.JobDescription))
	}
	for _, key := range []string{"requirements_extraction", "compatibility_scoring", "application_strategy"} {
		if fw.AnalysisPrompts[key] == "" {
			t.Errorf("missing prompt %q", key)
		}
	}
	if !strings.Contains(fw.AnalysisPrompts["requirements_extraction"], "Wise") {
		t.Error("requirements prompt does not embed the company")
	}
	for _, key := range []string{"technical_skills", "experience", "cultural_fit", "growth_potential"} {
		if len(fw.ScoringCriteria[key]) == 0 {
			t.Errorf("missing scoring criteria %q", key)
		}
	}
}
