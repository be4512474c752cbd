package engine

// --- Core job search types ---

// JobListing is a structured representation of one scraped or fetched job
// posting. URL, once non-empty, uniquely identifies a listing within one
// ranking run. MatchScore is populated in place by the ranking pipeline.
type JobListing struct {
	Title       string  `json:"title"`
	Company     string  `json:"company"`
	Location    string  `json:"location"`
	Salary      string  `json:"salary,omitempty"` // free text, e.g. "£55,000 - £70,000"
	Description string  `json:"description"`
	URL         string  `json:"url"`
	Source      string  `json:"source"` // "adzuna", "indeed", "reed"
	Posted      string  `json:"posted,omitempty"`
	MatchScore  float64 `json:"match_score"` // 0–100, set by the pipeline
}

// UserProfile stores the searcher's self-declared attributes used for scoring.
// List fields default to empty; MinSalary is always non-negative.
type UserProfile struct {
	Skills         []string `json:"skills"`
	Experience     []string `json:"experience"`
	Qualifications []string `json:"qualifications"`
	MinSalary      int      `json:"min_salary"`
}

// DefaultMinSalary is the profile salary floor used when none is set.
const DefaultMinSalary = 50000

// NewUserProfile returns an empty profile with the default salary floor.
func NewUserProfile() UserProfile {
	return UserProfile{
		Skills:         []string{},
		Experience:     []string{},
		Qualifications: []string{},
		MinSalary:      DefaultMinSalary,
	}
}

// --- fintech_job_search ---

// FintechJobSearchInput is the input for the fintech_job_search tool.
type FintechJobSearchInput struct {
	Query    string `json:"query,omitempty" jsonschema:"Extra search keywords; empty runs the standard engineering query set"`
	Location string `json:"location,omitempty" jsonschema:"Search location (default: United Kingdom)"`
	Platform string `json:"platform,omitempty" jsonschema:"Source filter: adzuna, indeed, reed, all (default)"`
	Limit    int    `json:"limit,omitempty" jsonschema:"Maximum ranked results to return (default 20)"`
}

// FintechJobSearchOutput is the structured output for fintech_job_search.
type FintechJobSearchOutput struct {
	Query   string       `json:"query"`
	Jobs    []JobListing `json:"jobs"`
	Summary string       `json:"summary"`
}

// --- profile_update / profile_get ---

// ProfileUpdateInput carries profile fields to overwrite. Omitted fields keep
// their current value; supplied fields replace wholesale, never merge.
type ProfileUpdateInput struct {
	Skills         []string `json:"skills,omitempty" jsonschema:"Skill keywords matched against job text (e.g. python, kubernetes)"`
	Experience     []string `json:"experience,omitempty" jsonschema:"Experience phrases matched against job text (e.g. payment systems)"`
	Qualifications []string `json:"qualifications,omitempty" jsonschema:"Qualification phrases (e.g. computer science degree)"`
	MinSalary      *int     `json:"min_salary,omitempty" jsonschema:"Minimum acceptable annual salary (default 50000)"`
}

// ProfileResult is the output for profile_update and profile_get.
type ProfileResult struct {
	Profile UserProfile `json:"profile"`
	Message string      `json:"message,omitempty"`
}

// --- job_search_analysis ---

// JobSearchAnalysisInput is the input for the job_search_analysis tool.
type JobSearchAnalysisInput struct {
	Query            string `json:"query" jsonschema:"Job search keywords (e.g. python developer, data scientist)"`
	Location         string `json:"location,omitempty" jsonschema:"Job location (default: London)"`
	MaxResults       int    `json:"max_results,omitempty" jsonschema:"Maximum jobs to return, 1-50 (default 15)"`
	IncludeFramework bool   `json:"include_analysis_framework,omitempty" jsonschema:"Attach analysis prompts and scoring criteria per job"`
}
