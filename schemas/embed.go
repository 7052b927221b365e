// Package schemas embeds the JSON Schema documents used to validate
// structured AI payloads before they are cached or shown to the user.
package schemas

import _ "embed"

// Schema documents, one per structured AI payload.
var (
	//go:embed resume_analysis.schema.json
	ResumeAnalysis string

	//go:embed salary_insights.schema.json
	SalaryInsights string

	//go:embed resume_score.schema.json
	ResumeScore string

	//go:embed linkedin_headline.schema.json
	LinkedInHeadline string

	//go:embed interview_questions.schema.json
	InterviewQuestions string

	//go:embed placement_plan.schema.json
	PlacementPlan string

	//go:embed skill_list.schema.json
	SkillList string
)

// All maps schema names to their documents, for tests and tooling that walk
// every schema.
func All() map[string]string {
	return map[string]string{
		"resume_analysis":     ResumeAnalysis,
		"salary_insights":     SalaryInsights,
		"resume_score":        ResumeScore,
		"linkedin_headline":   LinkedInHeadline,
		"interview_questions": InterviewQuestions,
		"placement_plan":      PlacementPlan,
		"skill_list":          SkillList,
	}
}
