package jobs

import (
	"errors"
	"fmt"
	"strings"

	"github.com/anatolykoptev/go_jobagent/internal/engine"
)

// benefitKeywords maps a benefit label to the phrases that reveal it in a
// posting.
var benefitKeywords = []struct {
	label    string
	keywords []string
}{
	{"Health Insurance", []string{"health", "medical", "dental", "vision"}},
	{"Flexible Hours", []string{"flexible", "hours", "work-life balance"}},
	{"Remote Work", []string{"remote", "work from home", "hybrid"}},
	{"Learning Budget", []string{"learning", "training", "courses", "development"}},
	{"Pension", []string{"pension", "401k", "retirement"}},
	{"Stock Options", []string{"equity", "stock", "options", "shares"}},
}

// ApplicationTemplatesInput is the input for the application_templates tool.
type ApplicationTemplatesInput struct {
	JobTitle       string `json:"job_title" jsonschema:"The position being applied for"`
	Company        string `json:"company_name" jsonschema:"Name of the hiring company"`
	JobDescription string `json:"job_description" jsonschema:"Full job posting text"`
	UserBackground string `json:"user_background" jsonschema:"Brief summary of the candidate's background"`
}

// CVTemplate is the CV-optimization section of the template pack.
type CVTemplate struct {
	SummarySection    string            `json:"summary_section"`
	KeySkillsSection  map[string]string `json:"key_skills_section"`
	ExperienceBullets struct {
		Template          string   `json:"template"`
		Examples          []string `json:"examples"`
		CustomizationTips []string `json:"customization_tips"`
	} `json:"experience_bullets"`
}

// CoverLetterTemplate is the cover-letter section of the template pack.
type CoverLetterTemplate struct {
	OpeningParagraph string            `json:"opening_paragraph"`
	BodyParagraphs   map[string]string `json:"body_paragraphs"`
	ClosingParagraph string            `json:"closing_paragraph"`
}

// InterviewPrep is the interview-preparation section of the template pack.
type InterviewPrep struct {
	TechnicalQuestions       []string `json:"likely_technical_questions"`
	BehavioralQuestions      []string `json:"behavioral_questions"`
	CompanySpecificQuestions []string `json:"company_specific_questions"`
	QuestionsToAsk           []string `json:"questions_to_ask"`
}

// ApplicationTemplates is the full template pack for one posting. Everything
// here is boilerplate for the calling assistant to customize; this server
// never calls a model API itself.
type ApplicationTemplates struct {
	BenefitsFound          []string            `json:"benefits_found"`
	CVOptimization         CVTemplate          `json:"cv_optimization"`
	CoverLetter            CoverLetterTemplate `json:"cover_letter"`
	InterviewPreparation   InterviewPrep       `json:"interview_preparation"`
	ApplicationStrategy    map[string]string   `json:"application_strategy"`
	CustomizationChecklist []string            `json:"customization_checklist"`
}

// BuildApplicationTemplates assembles the template pack for a posting.
func BuildApplicationTemplates(input ApplicationTemplatesInput) (*ApplicationTemplates, error) {
	if input.JobTitle == "" || input.Company == "" || input.JobDescription == "" || input.UserBackground == "" {
		return nil, errors.New("application_templates: job_title, company_name, job_description and user_background are required")
	}

	desc := strings.ToLower(input.JobDescription)
	benefits := []string{}
	for _, b := range benefitKeywords {
		if containsAny(desc, b.keywords) {
			benefits = append(benefits, b.label)
		}
	}

	cv := CVTemplate{
		SummarySection: fmt.Sprintf(
			"Template: \"[X] years of experience in [relevant field] with expertise in "+
				"[key skills from job description]. Proven track record of [relevant achievements]. "+
				"Seeking to leverage [specific skills] to contribute to %s's [relevant company goal/mission].\"",
			input.Company),
		KeySkillsSection: map[string]string{
			"technical_skills":   "List skills mentioned in job description first",
			"soft_skills":        "Include leadership, communication, problem-solving as relevant",
			"tools_technologies": "Match tools/technologies mentioned in job posting",
		},
	}
	cv.ExperienceBullets.Template = "• [Action verb] [what you did] [how/tools used] resulting in [quantified impact]"
	cv.ExperienceBullets.Examples = []string{
		"• Developed scalable web applications using Python and Django, serving 10,000+ users daily",
		"• Led cross-functional team of 5 developers to deliver features 20% ahead of schedule",
		"• Optimized database queries reducing response time by 40% and improving user experience",
	}
	cv.ExperienceBullets.CustomizationTips = []string{
		"Use action verbs that match job description language",
		"Quantify achievements with specific numbers/percentages",
		"Highlight technologies mentioned in job posting",
		"Focus on results and business impact",
	}

	cover := CoverLetterTemplate{
		OpeningParagraph: fmt.Sprintf(
			"Template: \"I am writing to express my strong interest in the %s position at %s. "+
				"With [X years] of experience in [relevant field] and expertise in [key skills from job], "+
				"I am excited about the opportunity to contribute to [specific company goal/project mentioned in job].\"",
			input.JobTitle, input.Company),
		BodyParagraphs: map[string]string{
			"experience_paragraph": "Highlight 2-3 most relevant experiences that directly match job requirements",
			"skills_paragraph":     "Demonstrate specific technical skills mentioned in job posting with examples",
			"company_paragraph":    "Show knowledge of company and why you want to work there specifically",
		},
		ClosingParagraph: fmt.Sprintf(
			"Template: \"I would welcome the opportunity to discuss how my background in [relevant area] "+
				"and passion for [relevant field/mission] can contribute to %s's continued success. "+
				"Thank you for considering my application.\"",
			input.Company),
	}

	prep := InterviewPrep{
		TechnicalQuestions: []string{
			"Tell me about your experience with [technologies mentioned in job description]",
			"How would you approach [specific challenge mentioned in job responsibilities]?",
			"Describe a project where you [key responsibility from job posting]",
			"Walk me through your problem-solving process for [relevant technical scenario]",
		},
		BehavioralQuestions: []string{
			"Tell me about a time you overcame a significant technical challenge",
			"Describe a situation where you had to work with a difficult team member",
			"How do you prioritize tasks when everything seems urgent?",
			"Give an example of when you had to learn a new technology quickly",
		},
		CompanySpecificQuestions: []string{
			fmt.Sprintf("Why do you want to work at %s?", input.Company),
			fmt.Sprintf("How do you see yourself contributing to %s's mission?", input.Company),
			"What do you know about our recent developments/products?",
			"What attracts you to this particular role/team?",
		},
		QuestionsToAsk: []string{
			"What does success look like in this role after 6 months?",
			"What are the biggest challenges facing the team right now?",
			"How does the company support professional development?",
			"What's the team structure and collaboration style?",
			"What technologies is the team excited about adopting?",
		},
	}

	engine.IncrTemplateBuilds()
	return &ApplicationTemplates{
		BenefitsFound:        benefits,
		CVOptimization:       cv,
		CoverLetter:          cover,
		InterviewPreparation: prep,
		ApplicationStrategy: map[string]string{
			"priority_level":        "Analyze job competitiveness and your fit to determine application urgency",
			"follow_up_timeline":    "Apply within 48 hours, follow up after 1 week if no response",
			"networking_approach":   "Research hiring manager and team members on LinkedIn",
			"portfolio_preparation": "Prepare 2-3 relevant project examples that demonstrate required skills",
		},
		CustomizationChecklist: []string{
			"Tailor CV to include keywords from job description",
			"Research company recent news and developments",
			"Prepare specific examples that match job requirements",
			"Practice explaining technical concepts clearly",
			"Prepare questions about role and company culture",
		},
	}, nil
}
