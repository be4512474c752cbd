package jobs

import (
	"strings"
	"testing"
)

func TestBuildApplicationTemplates(t *testing.T) {
	tpl, err := BuildApplicationTemplates(ApplicationTemplatesInput{
		JobTitle:       "Backend Engineer",
		Company:        "Starling Bank",
		JobDescription: "We offer a pension, equity options and remote work. Python required.",
		UserBackground: "Five years of backend work in payments.",
	})
	if err != nil {
		t.Fatal(err)
	}

	wantBenefits := map[string]bool{"Pension": true, "Stock Options": true, "Remote Work": true}
	for _, b := range tpl.BenefitsFound {
		delete(wantBenefits, b)
	}
	if len(wantBenefits) != 0 {
		t.Errorf("benefits missing: %v (got %v)", wantBenefits, tpl.BenefitsFound)
	}

	if !strings.Contains(tpl.CVOptimization.SummarySection, "Starling Bank") {
		t.Error("CV summary does not embed the company")
	}
	if !strings.Contains(tpl.CoverLetter.OpeningParagraph, "Backend Engineer") {
		t.Error("cover letter opening does not embed the position")
	}
	if !strings.Contains(tpl.InterviewPreparation.CompanySpecificQuestions[0], "Starling Bank") {
		t.Error("interview questions do not embed the company")
	}
	if len(tpl.CustomizationChecklist) == 0 {
		t.Error("empty customization checklist")
	}
	if tpl.ApplicationStrategy["follow_up_timeline"] == "" {
		t.Error("missing follow-up timeline")
	}
}

func TestBuildApplicationTemplates_Validation(t *testing.T) {
	_, err := BuildApplicationTemplates(ApplicationTemplatesInput{
		JobTitle: "Backend Engineer",
		Company:  "Starling Bank",
	})
	if err == nil {
		t.Error("incomplete input accepted, want error")
	}
}

func TestBuildApplicationTemplates_NoBenefits(t *testing.T) {
	tpl, err := BuildApplicationTemplates(ApplicationTemplatesInput{
		JobTitle:       "Engineer",
		Company:        "Acme",
		JobDescription: "Write code.",
		UserBackground: "Engineer.",
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(tpl.BenefitsFound) != 0 {
		t.Errorf("benefits = %v, want none", tpl.BenefitsFound)
	}
}
