//nolint:revive // types is a standard Go package name pattern
package types

// ProcessedResume is the output of the resume ingestion pipeline: the
// extracted plain text plus the structured fields derived from it.
type ProcessedResume struct {
	ResumeText        string `json:"resumeText"`
	Location          string `json:"location"`
	YearsOfExperience int    `json:"yearsOfExperience"`
}

// LocationNotFound is the sentinel the analysis model returns when the resume
// contains no recognizable location.
const LocationNotFound = "NOT_FOUND"

// SalaryInsightsData is the salary band for a role, location and experience
// level. Figures are numeric strings in the local currency.
type SalaryInsightsData struct {
	Average    string   `json:"average"`
	UpperRange string   `json:"upperRange"`
	LowerRange string   `json:"lowerRange"`
	KeySkills  []string `json:"keySkills"`
	Industries []string `json:"industries"`
}

// ScoreBreakdown is one scored metric of a resume-vs-job analysis.
type ScoreBreakdown struct {
	Metric          string   `json:"metric"`
	Score           int      `json:"score"`
	Explanation     string   `json:"explanation"`
	MatchedKeywords []string `json:"matchedKeywords,omitempty"`
	MissingKeywords []string `json:"missingKeywords,omitempty"`
}

// ResumeScoreData is the full ATS-style score for a resume against a job
// description.
type ResumeScoreData struct {
	OverallScore int              `json:"overallScore"`
	Breakdown    []ScoreBreakdown `json:"breakdown"`
}

// LinkedInHeadlineData is a generated headline with its self-assessed score.
type LinkedInHeadlineData struct {
	Headline         string `json:"headline"`
	Score            int    `json:"score"`
	ScoreExplanation string `json:"scoreExplanation"`
}

// LinkedInAboutData is a generated three-paragraph About section.
type LinkedInAboutData struct {
	About string `json:"about"`
}

// InterviewQuestion pairs a likely interview question with a suggested answer
// written from the candidate's perspective.
type InterviewQuestion struct {
	Question        string `json:"question"`
	SuggestedAnswer string `json:"suggestedAnswer"`
}

// SWOT is a strengths/weaknesses/opportunities/threats analysis.
type SWOT struct {
	Strengths     []string `json:"strengths"`
	Weaknesses    []string `json:"weaknesses"`
	Opportunities []string `json:"opportunities"`
	Threats       []string `json:"threats"`
}

// ActionItem is one prioritized step of a placement plan.
type ActionItem struct {
	Priority    string `json:"priority"` // High, Medium or Low
	Action      string `json:"action"`
	Timeline    string `json:"timeline"`
	SkillRating int    `json:"skillRating,omitempty"`
	CourseName  string `json:"courseName,omitempty"`
	CourseURL   string `json:"courseUrl,omitempty"`
}

// PlacementPlanData is the personalized placement plan: a SWOT analysis plus
// a prioritized action list.
type PlacementPlanData struct {
	SWOT       SWOT         `json:"swot"`
	ActionPlan []ActionItem `json:"actionPlan"`
}

// Job is one job listing returned by the listing lookup.
type Job struct {
	Title    string `json:"title"`
	Company  string `json:"company"`
	Location string `json:"location"`
	URI      string `json:"uri"`
}

// ChatReply is a coach chat response, optionally carrying a video tip.
type ChatReply struct {
	Text     string `json:"text"`
	VideoURL string `json:"videoUrl,omitempty"`
}
