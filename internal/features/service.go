// Package features builds the prompts for every AI-powered capability, calls
// the completion client and validates structured payloads against their
// schemas before anything is returned or cached.
package features

import (
	"context"
	"fmt"
	"strings"

	"github.com/brillia/career-coach/internal/llm"
	intschemas "github.com/brillia/career-coach/internal/schemas"
	"github.com/brillia/career-coach/internal/types"
	"github.com/brillia/career-coach/schemas"
)

// Prompt context limits keep resume and job description excerpts inside the
// model's practical window.
const (
	resumeExcerptLimit     = 4000
	planResumeLimit        = 5000
	bulletContextLimit     = 1000
	chatResumeSummaryLimit = 500
)

func excerpt(s string, limit int) string {
	if len(s) > limit {
		return s[:limit]
	}
	return s
}

// Service generates feature content through a completion client.
type Service struct {
	client llm.Client
}

// NewService creates a feature service.
func NewService(client llm.Client) *Service {
	return &Service{client: client}
}

// decodeValidated parses the model output as JSON, checks it against schema
// and unmarshals it into v.
func decodeValidated(raw, schema string, v any) error {
	candidate, err := llm.ExtractJSON(raw)
	if err != nil {
		return err
	}
	if err := intschemas.ValidateJSONString(schema, string(candidate)); err != nil {
		return &llm.MalformedResponseError{Message: "payload failed schema validation", Cause: err}
	}
	return llm.DecodeJSON(string(candidate), v)
}

// SalaryInsights returns the salary band for a role, location and experience
// level, in the location's local currency.
func (s *Service) SalaryInsights(ctx context.Context, jobTitle, location string, years int) (*types.SalaryInsightsData, error) {
	currency, term := CurrencyInfo(location)
	prompt := fmt.Sprintf(`Provide a detailed salary band for a %s in %s with exactly %d years of experience. The response must be a single JSON object. The salary figures should be NUMBERS ONLY, representing the typical %s in %s. Do not include currency symbols or commas in the numbers. The JSON object should have the following keys: "lowerRange" (string), "average" (string), "upperRange" (string), "keySkills" (array of 5-7 strings), "industries" (array of 3-5 strings).`,
		jobTitle, location, years, term, currency)

	raw, err := s.client.GenerateJSON(ctx, llm.Request{Prompt: prompt})
	if err != nil {
		return nil, err
	}
	var data types.SalaryInsightsData
	if err := decodeValidated(raw, schemas.SalaryInsights, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// RelevantSkills lists the most important skills for a role.
func (s *Service) RelevantSkills(ctx context.Context, jobTitle string) ([]string, error) {
	prompt := fmt.Sprintf(`List 12 to 15 of the most important technical and soft skills for a %s. Return a JSON array of strings.`, jobTitle)

	raw, err := s.client.GenerateJSON(ctx, llm.Request{Prompt: prompt})
	if err != nil {
		return nil, err
	}
	var skills []string
	if err := decodeValidated(raw, schemas.SkillList, &skills); err != nil {
		return nil, err
	}
	return skills, nil
}

// RewriteSummary rewrites a resume summary for a target role.
func (s *Service) RewriteSummary(ctx context.Context, summary, jobTitle string) (string, error) {
	prompt := fmt.Sprintf(`Rewrite this resume summary to be more impactful for a %s role. Focus on quantifiable achievements and action verbs. Keep it to 2-3 sentences. Current summary: "%s"`, jobTitle, summary)
	return s.client.GenerateContent(ctx, llm.Request{Prompt: prompt})
}

// LinkedInHeadline generates an optimized headline with a self-assessed score.
func (s *Service) LinkedInHeadline(ctx context.Context, jobTitle, resumeText string) (*types.LinkedInHeadlineData, error) {
	prompt := fmt.Sprintf(`Generate an optimized LinkedIn headline for a professional with the title "%s". Use the provided resume text to extract a real, quantifiable achievement.

**Instructions:**
1.  **Headline:** Create a headline that follows the format: [Role] | [Key Skill 1], [Skill 2] | [Industry] | [Key Achievement].
2.  **Headline Score:** Provide a score for the generated headline from 0 to 100, and a concise, one-sentence explanation for why the score is high.

**Output Format:**
You MUST return a single, valid JSON object with exactly three keys: "headline" (string), "score" (number), and "scoreExplanation" (string). Do not include any text outside the JSON object.

--- RESUME FOR CONTEXT ---
%s
--- END RESUME ---`, jobTitle, excerpt(resumeText, resumeExcerptLimit))

	raw, err := s.client.GenerateJSON(ctx, llm.Request{Prompt: prompt})
	if err != nil {
		return nil, err
	}
	var data types.LinkedInHeadlineData
	if err := decodeValidated(raw, schemas.LinkedInHeadline, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// LinkedInAbout generates a three-paragraph About section as plain text.
func (s *Service) LinkedInAbout(ctx context.Context, jobTitle, resumeText string) (string, error) {
	prompt := fmt.Sprintf(`Generate an optimized LinkedIn "About" section for a professional with the title "%s". Use the provided resume text for context on achievements and skills.

**Instructions:**
1. Create a three-paragraph summary.
2. Start with a compelling hook.
3. The second paragraph should tell a brief story with 2-3 achievements from the resume.
4. The final paragraph should be a call to action with contact info.
5. The output must be a single string, with paragraphs separated by '\n\n'. Do not return JSON or markdown.

--- RESUME FOR CONTEXT ---
%s
--- END RESUME ---`, jobTitle, excerpt(resumeText, resumeExcerptLimit))

	return s.client.GenerateContent(ctx, llm.Request{Prompt: prompt})
}

// OptimizeBullet rewrites a resume bullet point against a job description,
// returning 2-3 alternative phrasings.
func (s *Service) OptimizeBullet(ctx context.Context, bulletPoint, jobDescription string) ([]string, error) {
	prompt := fmt.Sprintf(`As an expert resume writer, rewrite the following bullet point to be more impactful for a job description. Focus on using the STAR method (Situation, Task, Action, Result) and incorporating quantifiable achievements. Align the language with the provided job description. Return 2-3 distinct suggestions in a JSON array of strings. Original Bullet Point: "%s" Relevant Job Description context: "%s"`,
		bulletPoint, excerpt(jobDescription, bulletContextLimit))

	raw, err := s.client.GenerateJSON(ctx, llm.Request{Prompt: prompt})
	if err != nil {
		return nil, err
	}
	var suggestions []string
	if err := llm.DecodeJSON(raw, &suggestions); err != nil {
		return nil, err
	}
	return suggestions, nil
}

// CoverLetter writes a cover letter from the resume and job description.
func (s *Service) CoverLetter(ctx context.Context, resumeText, jobDescription string) (string, error) {
	prompt := fmt.Sprintf(`As an expert career coach, write a professional and compelling cover letter. Use the provided resume to highlight the candidate's relevant skills and experience. Tailor the tone and content specifically for the target job description. The cover letter should be concise, about 3-4 paragraphs long, and ready to be sent. Do not use markdown. --- RESUME --- %s --- JOB DESCRIPTION --- %s`,
		excerpt(resumeText, resumeExcerptLimit), excerpt(jobDescription, resumeExcerptLimit))

	return s.client.GenerateContent(ctx, llm.Request{Prompt: prompt})
}

// PlacementPlan builds a SWOT analysis and prioritized action plan from the
// target role, experience, self-rated skills and (optionally) the resume.
func (s *Service) PlacementPlan(ctx context.Context, resumeText, jobTitle string, years int, skills []types.Skill) (*types.PlacementPlanData, error) {
	rated := make([]string, len(skills))
	for i, sk := range skills {
		rated[i] = fmt.Sprintf("%s (self-rated %d/10)", sk.Name, sk.Rating)
	}

	resumeClause := "Since no resume was provided, base the plan primarily on their self-assessed skills for the target role."
	resumeSection := ""
	if resumeText != "" {
		resumeClause = "Also analyze their provided resume to identify strengths and weaknesses."
		resumeSection = fmt.Sprintf("--- USER RESUME ---\n%s", excerpt(resumeText, planResumeLimit))
	}

	prompt := fmt.Sprintf(`As an expert career coach, create a personalized Placement Plan for a user with %d years of experience applying for a "%s" role. Analyze their self-assessed skill ratings. %s The user's self-assessed skills are: %s. Based on all this information, generate two components: 1. A SWOT Analysis: Identify their Strengths, Weaknesses, Opportunities, and Threats in the context of their job search. Provide 3-4 bullet points for each category. 2. An Action Plan: Create a list of 5-7 actionable steps. The list must be prioritized based on what is most critical for a "%s" role. For skills with similar importance, prioritize the one with the lower self-rated score. Each action item must have: 'priority': ('High', 'Medium', or 'Low'), 'action': A concise description of the task, 'timeline': A realistic completion timeline (e.g., "Next 2 weeks"). Base this on the user's skill rating; a lower rating for a skill should have a more intensive or longer timeline, 'skillRating' (optional): The original self-rated skill score (e.g., 3) if the action is tied to improving a specific skill, 'courseName' (optional): If the action involves upskilling, suggest a relevant online course. For actions related to resume building or interview practice, the 'courseName' should be 'Resume & Interview Practice Tool'. 'courseUrl' (optional): For general upskilling courses, use the URL 'https://brainyscout.com/our-courses'. For resume and interview practice actions, the URL MUST be 'https://resumegen.io/'. Return a single JSON object with the keys "swot" and "actionPlan". %s`,
		years, jobTitle, resumeClause, strings.Join(rated, ", "), jobTitle, resumeSection)

	raw, err := s.client.GenerateJSON(ctx, llm.Request{Prompt: prompt})
	if err != nil {
		return nil, err
	}
	var data types.PlacementPlanData
	if err := decodeValidated(raw, schemas.PlacementPlan, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// InterviewQuestions generates likely questions with suggested answers for a
// resume and job description.
func (s *Service) InterviewQuestions(ctx context.Context, resumeText, jobDescription string) ([]types.InterviewQuestion, error) {
	prompt := fmt.Sprintf(`As an expert career coach and hiring manager, generate 5 interview questions based on the provided resume and target job description. For each question, craft a concise and powerful sample answer from the candidate's perspective. Guidelines for the answers: 1. Use the STAR method (Situation, Task, Action, Result) where applicable, especially for behavioral questions. 2. IMPORTANT FORMATTING: When using the STAR method, start each component on a new line for clarity. For example: S: [The situation] T: [The task] A: [The action] R: [The result]. 3. Incorporate specific skills, experiences, and achievements mentioned in the resume. 4. Tailor the answer to align with the requirements and keywords in the job description. 5. Keep each answer under 250 words. 6. The tone should be professional, confident, and authentic. Return a valid JSON array of 5 objects, where each object has two keys: "question" (string) and "suggestedAnswer" (string). --- RESUME TEXT --- %s --- JOB DESCRIPTION --- %s`,
		excerpt(resumeText, resumeExcerptLimit), excerpt(jobDescription, resumeExcerptLimit))

	raw, err := s.client.GenerateJSON(ctx, llm.Request{Prompt: prompt})
	if err != nil {
		return nil, err
	}
	var questions []types.InterviewQuestion
	if err := decodeValidated(raw, schemas.InterviewQuestions, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

// ResumeScore runs the ATS-style analysis of a resume against a job
// description.
func (s *Service) ResumeScore(ctx context.Context, resumeText, jobDescription string) (*types.ResumeScoreData, error) {
	prompt := fmt.Sprintf(`Act as an expert Applicant Tracking System (ATS) and a senior hiring manager. Analyze the following resume against the provided job description and return a detailed score breakdown. The analysis must include: 1. An "overallScore" from 0 to 100. 2. A "breakdown" array of objects, each with: "metric": The name of the scoring category (e.g., "Keyword Alignment", "Skill & Experience Relevance", "Impact & Achievements", "ATS Compatibility"), "score": A score from 0 to 100 for that metric, "explanation": A concise, one-sentence explanation of the score, providing one actionable tip for improvement if the score is below 85. 3. For the "Keyword Alignment" metric ONLY, also provide two arrays: "matchedKeywords": An array of 5-10 important keywords from the job description that were found in the resume, "missingKeywords": An array of 5-10 of the most critical keywords from the job description that were NOT found in the resume. Return a single, valid JSON object with the keys "overallScore" and "breakdown". --- RESUME TEXT --- %s --- JOB DESCRIPTION --- %s`,
		excerpt(resumeText, resumeExcerptLimit), excerpt(jobDescription, resumeExcerptLimit))

	raw, err := s.client.GenerateJSON(ctx, llm.Request{Prompt: prompt})
	if err != nil {
		return nil, err
	}
	var data types.ResumeScoreData
	if err := decodeValidated(raw, schemas.ResumeScore, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// networkingTipVideo is served for networking and referral questions without
// calling the model.
const networkingTipVideo = "https://www.youtube.com/embed/dQw4w9WgXcQ"

// ChatReply answers a coach chat message. Networking and referral questions
// get a canned video tip; everything else goes to the model with the coaching
// knowledge base as the system instruction.
func (s *Service) ChatReply(ctx context.Context, message string, p types.UserProfile, knowledgeBase string) (*types.ChatReply, error) {
	lower := strings.ToLower(message)
	if strings.Contains(lower, "networking") || strings.Contains(lower, "referral") {
		return &types.ChatReply{
			Text:     "Here is a quick tip from Rajinder on networking:",
			VideoURL: networkingTipVideo,
		}, nil
	}

	jobTitle := p.JobTitle
	if jobTitle == "" {
		jobTitle = "Not provided"
	}
	years := "Not provided"
	if p.YearsOfExperience != nil {
		years = fmt.Sprintf("%d", *p.YearsOfExperience)
	}
	resumeSummary := "Not provided"
	if p.ResumeText != "" {
		resumeSummary = excerpt(p.ResumeText, chatResumeSummaryLimit) + "..."
	}

	system := fmt.Sprintf(`You are a friendly and professional AI Career Coach, operating under the guidance of career expert Rajinder Kumar. Your primary knowledge base is the content from his webinar script provided below. When a user asks a question, you must first synthesize an answer based on the principles and strategies outlined in this script. Read the user's question, analyze the provided text, and formulate a helpful, personalized response that reflects Rajinder's coaching style.

IMPORTANT: Keep your responses short, interactive, and to the point, as if you are sending a message in a chat. Avoid long paragraphs. Do not use markdown formatting like '**' or '*'.

If the answer cannot be found in the provided text, state that the information is not covered in Rajinder's material, and then provide a general, helpful answer.

Here is some context about the user you are helping:
- Target Job Title: %s
- Years of Experience: %s
- Resume Summary: %s

--- WEBINAR SCRIPT KNOWLEDGE BASE ---
%s
--- END OF KNOWLEDGE BASE ---`, jobTitle, years, resumeSummary, knowledgeBase)

	text, err := s.client.GenerateContent(ctx, llm.Request{Prompt: message, SystemInstruction: system})
	if err != nil {
		return nil, err
	}
	return &types.ChatReply{Text: text}, nil
}
