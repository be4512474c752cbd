package jobs

import (
	"fmt"
	"strings"

	"github.com/anatolykoptev/go_jobagent/internal/engine"
)

// TechKeywords is the vocabulary scanned for a posting's tech stack.
var TechKeywords = []string{
	"python", "javascript", "java", "c++", "c#", "ruby", "php", "go", "rust",
	"react", "vue", "angular", "node", "django", "flask", "spring", "laravel",
	"aws", "azure", "gcp", "docker", "kubernetes", "terraform", "jenkins",
	"sql", "postgresql", "mysql", "mongodb", "redis", "elasticsearch",
	"git", "agile", "scrum", "devops", "ci/cd", "microservices", "api",
}

// experienceIndicators maps a level to its trigger phrases. Order matters:
// the first level with a hit wins.
var experienceIndicators = []struct {
	level    string
	keywords []string
}{
	{"junior", []string{"junior", "graduate", "entry level", "1-2 years", "early career"}},
	{"mid", []string{"mid", "intermediate", "3-5 years", "4+ years", "experienced"}},
	{"senior", []string{"senior", "lead", "5+ years", "7+ years", "expert", "principal"}},
	{"management", []string{"manager", "director", "head of", "vp", "cto", "lead team"}},
}

// remoteIndicators maps a work policy to its trigger phrases, first hit wins.
// Only the description is scanned, titles rarely carry the policy.
var remoteIndicators = []struct {
	policy   string
	keywords []string
}{
	{"remote", []string{"remote", "work from home", "wfh", "distributed"}},
	{"hybrid", []string{"hybrid", "flexible", "2-3 days", "part remote"}},
	{"onsite", []string{"office", "on-site", "in person", "london office"}},
}

var benefitHints = []string{"pension", "healthcare", "insurance", "holiday", "flexible", "learning"}

// SalaryRange is the advertised salary band from a structured source.
type SalaryRange struct {
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Average float64 `json:"average"`
}

// JobFeatures is the structured digest of one posting.
type JobFeatures struct {
	TechStack         []string     `json:"tech_stack"`
	ExperienceLevel   string       `json:"experience_level"`
	RemotePolicy      string       `json:"remote_policy"`
	SalaryInfo        *SalaryRange `json:"salary_info,omitempty"`
	DescriptionLength int          `json:"description_length"`
	HasBenefits       bool         `json:"has_benefits"`
}

// ExtractJobFeatures digests a posting into structured features. salaryMin
// and salaryMax come from structured sources (Adzuna); pass zero when the
// posting has no advertised band.
func ExtractJobFeatures(title, description string, salaryMin, salaryMax float64) JobFeatures {
	desc := strings.ToLower(description)
	lowTitle := strings.ToLower(title)

	f := JobFeatures{
		TechStack:         []string{},
		ExperienceLevel:   "not_specified",
		RemotePolicy:      "not_specified",
		DescriptionLength: len(description),
	}

	for _, tech := range TechKeywords {
		if strings.Contains(desc, tech) || strings.Contains(lowTitle, tech) {
			f.TechStack = append(f.TechStack, tech)
		}
	}

	for _, ind := range experienceIndicators {
		if containsAny(desc, ind.keywords) || containsAny(lowTitle, ind.keywords) {
			f.ExperienceLevel = ind.level
			break
		}
	}

	for _, ind := range remoteIndicators {
		if containsAny(desc, ind.keywords) {
			f.RemotePolicy = ind.policy
			break
		}
	}

	if salaryMin > 0 && salaryMax > 0 {
		f.SalaryInfo = &SalaryRange{
			Min:     salaryMin,
			Max:     salaryMax,
			Average: (salaryMin + salaryMax) / 2,
		}
	}

	f.HasBenefits = containsAny(desc, benefitHints)
	return f
}

func containsAny(text string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}

// frameworkDescChars caps how much posting text gets embedded in prompts.
const frameworkDescChars = 800

// AnalysisFramework packages analysis prompts and scoring criteria for one
// posting, so the calling assistant can reason over it without any model API
// round-trips from this server.
type AnalysisFramework struct {
	JobTitle        string              `json:"job_title"`
	Company         string              `json:"company"`
	JobDescription  string              `json:"job_description"`
	AnalysisPrompts map[string]string   `json:"analysis_prompts"`
	ScoringCriteria map[string][]string `json:"scoring_criteria"`
}

// BuildAnalysisFramework builds the per-posting analysis framework.
func BuildAnalysisFramework(title, company, description string) AnalysisFramework {
	desc := engine.TruncateRunes(description, frameworkDescChars, "")
	return AnalysisFramework{
		JobTitle:       title,
		Company:        company,
		JobDescription: desc,
		AnalysisPrompts: map[string]string{
			"requirements_extraction": fmt.Sprintf(
				"Analyze this job posting and extract:\n"+
					"1. Required technical skills (must-have)\n"+
					"2. Nice-to-have skills (preferred)\n"+
					"3. Years of experience needed\n"+
					"4. Key responsibilities\n"+
					"5. Company benefits offered\n"+
					"6. Any red flags or concerning requirements\n\n"+
					"Job Title: %s\nCompany: %s\nDescription: %s",
				title, company, desc),
			"compatibility_scoring": "Score this job compatibility for a candidate with:\n" +
				"- Skills: [TO BE PROVIDED BY USER]\n" +
				"- Experience: [TO BE PROVIDED BY USER]\n\n" +
				"Consider:\n" +
				"- Technical skill match\n" +
				"- Experience level alignment\n" +
				"- Role responsibilities fit\n" +
				"- Salary expectations vs offering\n" +
				"- Remote work preferences\n\n" +
				"Provide a score 1-10 with detailed reasoning.",
			"application_strategy": "Based on this job posting, suggest:\n" +
				"1. Key points to highlight in CV\n" +
				"2. Cover letter talking points\n" +
				"3. Potential interview questions\n" +
				"4. Research areas about the company\n\n" +
				"Focus on what would make a candidate stand out for this specific role.",
		},
		ScoringCriteria: map[string][]string{
			"technical_skills": {
				"Exact match for required skills",
				"Related/transferable skills",
				"Learning curve for missing skills",
			},
			"experience": {
				"Years of experience alignment",
				"Relevant project experience",
				"Industry experience match",
			},
			"cultural_fit": {
				"Company size preference",
				"Industry alignment",
				"Remote work policy match",
			},
			"growth_potential": {
				"Career progression opportunities",
				"Skill development prospects",
				"Learning and training offered",
			},
		},
	}
}
