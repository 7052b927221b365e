// Package coach is the application shell: it wires the profile store, credit
// ledger, cache engine, feature generators, ingestion pipeline, job lookup
// and navigation together, and translates internal errors into messages fit
// for the widget at the feature boundary.
package coach

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/brillia/career-coach/internal/cache"
	"github.com/brillia/career-coach/internal/credits"
	"github.com/brillia/career-coach/internal/features"
	"github.com/brillia/career-coach/internal/ingest"
	"github.com/brillia/career-coach/internal/jobs"
	"github.com/brillia/career-coach/internal/llm"
	"github.com/brillia/career-coach/internal/nav"
	"github.com/brillia/career-coach/internal/profile"
	"github.com/brillia/career-coach/internal/types"
)

// defaultLocation stands in for salary and job lookups until a resume or
// settings save provides a real one.
const defaultLocation = "New York, USA"

// defaultSkillRating is the starting self-rating for freshly fetched skills.
const defaultSkillRating = 5

// Options configures a Coach.
type Options struct {
	Profiles      *profile.Store
	Client        llm.Client
	JobsClient    *jobs.Client
	Clock         credits.Clock
	Logger        zerolog.Logger
	KnowledgeBase string
}

// Coach exposes every user-facing operation of the widget core.
type Coach struct {
	profiles      *profile.Store
	ledger        *credits.Ledger
	engine        *cache.Engine
	svc           *features.Service
	pipeline      *ingest.Pipeline
	jobs          *jobs.Client
	nav           *nav.Controller
	log           zerolog.Logger
	knowledgeBase string
}

// New wires a Coach and runs the daily credit reset.
func New(opts Options) (*Coach, error) {
	c := &Coach{
		profiles:      opts.Profiles,
		ledger:        credits.NewLedger(opts.Profiles, opts.Clock),
		svc:           features.NewService(opts.Client),
		pipeline:      ingest.New(opts.Client),
		jobs:          opts.JobsClient,
		nav:           nav.NewController(opts.Profiles),
		log:           opts.Logger,
		knowledgeBase: opts.KnowledgeBase,
	}
	c.engine = cache.New(opts.Profiles, c.ledger)
	c.registerFeatures()

	if err := c.ledger.ResetIfNewDay(); err != nil {
		return nil, fmt.Errorf("failed to reset daily credits: %w", err)
	}
	return c, nil
}

func (c *Coach) location(p *types.UserProfile) string {
	if p.Location != "" {
		return p.Location
	}
	return defaultLocation
}

func (c *Coach) years(p *types.UserProfile) int {
	if p.YearsOfExperience != nil {
		return *p.YearsOfExperience
	}
	return 0
}

// registerFeatures binds every cached feature to its cost, fingerprint and
// generator. Fingerprints follow the input table: anything a result was
// derived from is part of its key.
func (c *Coach) registerFeatures() {
	c.engine.Register(types.FeatureSalaryInsights, cache.Registration{
		Cost: credits.Cost(types.FeatureSalaryInsights),
		Fingerprint: func(in cache.Inputs) string {
			return cache.Fingerprint(in.Profile.JobTitle, strconv.Itoa(c.years(&in.Profile)))
		},
		Generate: func(ctx context.Context, in cache.Inputs) (json.RawMessage, error) {
			data, err := c.svc.SalaryInsights(ctx, in.Profile.JobTitle, c.location(&in.Profile), c.years(&in.Profile))
			if err != nil {
				return nil, err
			}
			return json.Marshal(data)
		},
	})

	c.engine.Register(types.FeatureResumeScore, cache.Registration{
		Cost: credits.Cost(types.FeatureResumeScore),
		Fingerprint: func(in cache.Inputs) string {
			return cache.Fingerprint(in.Profile.ResumeFileName, in.JobDescription)
		},
		Generate: func(ctx context.Context, in cache.Inputs) (json.RawMessage, error) {
			data, err := c.svc.ResumeScore(ctx, in.Profile.ResumeText, in.JobDescription)
			if err != nil {
				return nil, err
			}
			return json.Marshal(data)
		},
	})

	c.engine.Register(types.FeatureLinkedInHeadline, cache.Registration{
		Cost: credits.Cost(types.FeatureLinkedInHeadline),
		Fingerprint: func(in cache.Inputs) string {
			return cache.Fingerprint(in.Profile.JobTitle, in.Profile.ResumeText)
		},
		Generate: func(ctx context.Context, in cache.Inputs) (json.RawMessage, error) {
			data, err := c.svc.LinkedInHeadline(ctx, in.Profile.JobTitle, in.Profile.ResumeText)
			if err != nil {
				return nil, err
			}
			return json.Marshal(data)
		},
	})

	c.engine.Register(types.FeatureLinkedInAbout, cache.Registration{
		Cost: credits.Cost(types.FeatureLinkedInAbout),
		Fingerprint: func(in cache.Inputs) string {
			return cache.Fingerprint(in.Profile.JobTitle, in.Profile.ResumeText)
		},
		Generate: func(ctx context.Context, in cache.Inputs) (json.RawMessage, error) {
			about, err := c.svc.LinkedInAbout(ctx, in.Profile.JobTitle, in.Profile.ResumeText)
			if err != nil {
				return nil, err
			}
			return json.Marshal(types.LinkedInAboutData{About: about})
		},
	})

	c.engine.Register(types.FeatureInterviewPrep, cache.Registration{
		Cost: credits.Cost(types.FeatureInterviewPrep),
		Fingerprint: func(in cache.Inputs) string {
			return cache.Fingerprint(in.Profile.ResumeFileName, in.JobDescription)
		},
		Generate: func(ctx context.Context, in cache.Inputs) (json.RawMessage, error) {
			questions, err := c.svc.InterviewQuestions(ctx, in.Profile.ResumeText, in.JobDescription)
			if err != nil {
				return nil, err
			}
			return json.Marshal(questions)
		},
	})

	c.engine.Register(types.FeaturePlacementPlan, cache.Registration{
		Cost: credits.Cost(types.FeaturePlacementPlan),
		Fingerprint: func(in cache.Inputs) string {
			return cache.Fingerprint(in.Profile.JobTitle, strconv.Itoa(c.years(&in.Profile)), in.Profile.ResumeFileName)
		},
		Generate: func(ctx context.Context, in cache.Inputs) (json.RawMessage, error) {
			plan, err := c.svc.PlacementPlan(ctx, in.Profile.ResumeText, in.Profile.JobTitle, c.years(&in.Profile), in.Profile.Skills)
			if err != nil {
				return nil, err
			}
			return json.Marshal(plan)
		},
	})
}

// getAs runs the cache engine and decodes the stored payload.
func getAs[T any](ctx context.Context, c *Coach, f types.Feature, in cache.Inputs, force bool) (T, error) {
	var out T
	raw, err := c.engine.Get(ctx, f, in, force)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("failed to decode cached %s payload: %w", f, err)
	}
	return out, nil
}

// finish records the milestone for a completed feature. Milestone failures
// are logged, not surfaced; the result is already in the user's hands.
func (c *Coach) finish(v types.View) {
	if err := c.profiles.AddMilestone(v); err != nil {
		c.log.Warn().Err(err).Str("view", string(v)).Msg("failed to record milestone")
	}
}

// SalaryInsights returns the salary band for the target role.
func (c *Coach) SalaryInsights(ctx context.Context, force bool) (*types.SalaryInsightsData, error) {
	p := c.profiles.Snapshot()
	if p.JobTitle == "" {
		return nil, &IncompleteProfileError{Missing: "job title"}
	}
	data, err := getAs[*types.SalaryInsightsData](ctx, c, types.FeatureSalaryInsights, cache.Inputs{Profile: p}, force)
	if err != nil {
		return nil, err
	}
	c.finish(types.ViewSalaryInsights)
	return data, nil
}

// ResumeScore scores the stored resume against a job description.
func (c *Coach) ResumeScore(ctx context.Context, jobDescription string, force bool) (*types.ResumeScoreData, error) {
	p := c.profiles.Snapshot()
	if p.ResumeText == "" {
		return nil, &IncompleteProfileError{Missing: "resume"}
	}
	data, err := getAs[*types.ResumeScoreData](ctx, c, types.FeatureResumeScore,
		cache.Inputs{Profile: p, JobDescription: jobDescription}, force)
	if err != nil {
		return nil, err
	}
	c.finish(types.ViewResumeScore)
	return data, nil
}

// LinkedInHeadline generates (or serves) the optimized headline.
func (c *Coach) LinkedInHeadline(ctx context.Context, force bool) (*types.LinkedInHeadlineData, error) {
	p := c.profiles.Snapshot()
	if p.JobTitle == "" {
		return nil, &IncompleteProfileError{Missing: "job title"}
	}
	data, err := getAs[*types.LinkedInHeadlineData](ctx, c, types.FeatureLinkedInHeadline, cache.Inputs{Profile: p}, force)
	if err != nil {
		return nil, err
	}
	c.finish(types.ViewLinkedInHead)
	return data, nil
}

// LinkedInAbout generates (or serves) the About section.
func (c *Coach) LinkedInAbout(ctx context.Context, force bool) (*types.LinkedInAboutData, error) {
	p := c.profiles.Snapshot()
	if p.JobTitle == "" {
		return nil, &IncompleteProfileError{Missing: "job title"}
	}
	data, err := getAs[*types.LinkedInAboutData](ctx, c, types.FeatureLinkedInAbout, cache.Inputs{Profile: p}, force)
	if err != nil {
		return nil, err
	}
	c.finish(types.ViewLinkedInAbout)
	return data, nil
}

// InterviewPrep generates interview questions for a job description, storing
// the description so the prep session survives a reload.
func (c *Coach) InterviewPrep(ctx context.Context, jobDescription string, force bool) ([]types.InterviewQuestion, error) {
	p := c.profiles.Snapshot()
	if p.ResumeText == "" {
		return nil, &IncompleteProfileError{Missing: "resume"}
	}
	if p.InterviewJobDescription != jobDescription {
		if err := c.profiles.SetInterviewJobDescription(jobDescription); err != nil {
			return nil, err
		}
	}
	questions, err := getAs[[]types.InterviewQuestion](ctx, c, types.FeatureInterviewPrep,
		cache.Inputs{Profile: p, JobDescription: jobDescription}, force)
	if err != nil {
		return nil, err
	}
	c.finish(types.ViewInterviewPrep)
	return questions, nil
}

// PlacementPlan generates (or serves) the personalized placement plan.
func (c *Coach) PlacementPlan(ctx context.Context, force bool) (*types.PlacementPlanData, error) {
	p := c.profiles.Snapshot()
	if p.JobTitle == "" {
		return nil, &IncompleteProfileError{Missing: "job title"}
	}
	plan, err := getAs[*types.PlacementPlanData](ctx, c, types.FeaturePlacementPlan, cache.Inputs{Profile: p}, force)
	if err != nil {
		return nil, err
	}
	c.finish(types.ViewPlacementPlan)
	return plan, nil
}

// Skills returns the skills list for the target role, fetching it on first
// use or after a job title change cleared it. The fetch is free.
func (c *Coach) Skills(ctx context.Context) ([]types.Skill, error) {
	p := c.profiles.Snapshot()
	if len(p.Skills) > 0 {
		return p.Skills, nil
	}
	if p.JobTitle == "" {
		return nil, &IncompleteProfileError{Missing: "job title"}
	}

	names, err := c.svc.RelevantSkills(ctx, p.JobTitle)
	if err != nil {
		return nil, err
	}
	skills := make([]types.Skill, len(names))
	for i, name := range names {
		skills[i] = types.Skill{Name: name, Rating: defaultSkillRating}
	}
	if err := c.profiles.SetSkills(skills); err != nil {
		return nil, err
	}
	return skills, nil
}

// RateSkill records a self-rating for one skill.
func (c *Coach) RateSkill(name string, rating int) error {
	return c.profiles.RateSkill(name, rating)
}

// FindJobs looks up live listings for the target role. Metered but uncached:
// every successful lookup charges.
func (c *Coach) FindJobs(ctx context.Context, fetchLatest bool) ([]types.Job, error) {
	p := c.profiles.Snapshot()
	if p.JobTitle == "" {
		return nil, &IncompleteProfileError{Missing: "job title"}
	}
	if err := c.ledger.Authorize(types.FeatureFindJobs); err != nil {
		return nil, err
	}

	location := c.location(&p)
	listings, err := c.jobs.Search(ctx, p.JobTitle, features.CountryCode(location), location, fetchLatest)
	if err != nil {
		return nil, err
	}
	if err := c.ledger.Commit(types.FeatureFindJobs); err != nil {
		return nil, err
	}
	c.finish(types.ViewJobs)
	return listings, nil
}

// CoverLetter writes a cover letter for a job description. Free and uncached.
func (c *Coach) CoverLetter(ctx context.Context, jobDescription string) (string, error) {
	p := c.profiles.Snapshot()
	if p.ResumeText == "" {
		return "", &IncompleteProfileError{Missing: "resume"}
	}
	return c.svc.CoverLetter(ctx, p.ResumeText, jobDescription)
}

// OptimizeBullet rewrites one resume bullet point. Free and uncached.
func (c *Coach) OptimizeBullet(ctx context.Context, bulletPoint, jobDescription string) ([]string, error) {
	return c.svc.OptimizeBullet(ctx, bulletPoint, jobDescription)
}

// RewriteSummary rewrites a resume summary for the target role. Free and
// uncached.
func (c *Coach) RewriteSummary(ctx context.Context, summary string) (string, error) {
	p := c.profiles.Snapshot()
	return c.svc.RewriteSummary(ctx, summary, p.JobTitle)
}

// Chat answers a coach chat message. Free.
func (c *Coach) Chat(ctx context.Context, message string) (*types.ChatReply, error) {
	return c.svc.ChatReply(ctx, message, c.profiles.Snapshot(), c.knowledgeBase)
}

// TopUp purchases a credit package.
func (c *Coach) TopUp(packageID string) (credits.Package, error) {
	return c.ledger.TopUp(packageID)
}

// Balance returns the current credit balance.
func (c *Coach) Balance() int {
	return c.ledger.Balance()
}

// Profile returns a snapshot of the current profile.
func (c *Coach) Profile() types.UserProfile {
	return c.profiles.Snapshot()
}

// Navigate routes to a view through the onboarding gate.
func (c *Coach) Navigate(v types.View) types.View {
	return c.nav.Navigate(v)
}

// CompleteSetup resumes the navigation interrupted by onboarding.
func (c *Coach) CompleteSetup() types.View {
	return c.nav.CompleteSetup()
}
