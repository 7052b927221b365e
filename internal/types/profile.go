// Package types provides type definitions for structured data used throughout the career-coach system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "encoding/json"

// Feature identifies one AI-powered capability with its own cost, fingerprint
// and cache slot.
type Feature string

// Cacheable features plus the metered-but-uncached job search.
const (
	FeatureSalaryInsights   Feature = "salaryInsights"
	FeatureResumeScore      Feature = "resumeScore"
	FeatureLinkedInHeadline Feature = "linkedInHeadline"
	FeatureLinkedInAbout    Feature = "linkedInAbout"
	FeatureInterviewPrep    Feature = "interviewPrep"
	FeaturePlacementPlan    Feature = "placementPlan"
	FeatureFindJobs         Feature = "findJobs"
)

// View identifies a screen of the coaching widget.
type View string

// All navigable views.
const (
	ViewWelcome         View = "welcome"
	ViewChat            View = "chat"
	ViewSalaryInsights  View = "salary-insights"
	ViewResumeScore     View = "resume-score"
	ViewResumeRewrite   View = "resume-rewrite"
	ViewBulletOptimizer View = "bullet-point-optimizer"
	ViewCoverLetter     View = "cover-letter"
	ViewLinkedInHead    View = "linkedin-headline"
	ViewLinkedInAbout   View = "linkedin-about"
	ViewSkillAssessment View = "skill-assessment"
	ViewInterviewPrep   View = "interview-prep"
	ViewReferrals       View = "referrals"
	ViewJobs            View = "jobs"
	ViewPlacementPlan   View = "placement-plan"
	ViewProfileSettings View = "profile-settings"
	ViewBuyCredits      View = "buy-credits"
)

// CacheEntry is one cached AI result together with the fingerprint of the
// inputs that produced it. The entry is valid only while the fingerprint
// matches the profile's current inputs.
type CacheEntry struct {
	Result      json.RawMessage `json:"result"`
	Fingerprint string          `json:"fingerprint"`
}

// Skill is a self-rated skill for the target role.
type Skill struct {
	Name   string `json:"name"`
	Rating int    `json:"rating" validate:"min=1,max=10"`
}

// UserProfile is the single session aggregate: identity, target role, resume,
// credits and the per-feature result caches. It is owned by the profile store
// and mutated only through whole-field updates; the raw resume file blob is
// never part of it.
type UserProfile struct {
	Name                    string                `json:"name"`
	JobTitle                string                `json:"jobTitle"`
	YearsOfExperience       *int                  `json:"yearsOfExperience"`
	Location                string                `json:"location,omitempty"`
	ResumeText              string                `json:"resumeText,omitempty"`
	ResumeFileName          string                `json:"resumeFileName,omitempty"`
	Skills                  []Skill               `json:"skills"`
	CompletedMilestones     []View                `json:"completedMilestones,omitempty"`
	InterviewJobDescription string                `json:"interviewJobDescription,omitempty"`
	Credits                 int                   `json:"credits"`
	LastCreditReset         string                `json:"lastCreditReset"`
	Caches                  map[Feature]CacheEntry `json:"caches,omitempty"`
}

// IsComplete reports whether the profile carries enough information to unlock
// the feature views: a target job title and a known experience level.
func (p *UserProfile) IsComplete() bool {
	return p.JobTitle != "" && p.YearsOfExperience != nil
}

// Cache returns the cache entry for a feature, if one exists.
func (p *UserProfile) Cache(f Feature) (CacheEntry, bool) {
	e, ok := p.Caches[f]
	return e, ok
}

// SetCache stores a cache entry for a feature.
func (p *UserProfile) SetCache(f Feature, e CacheEntry) {
	if p.Caches == nil {
		p.Caches = make(map[Feature]CacheEntry)
	}
	p.Caches[f] = e
}

// ClearCache removes a feature's cache entry entirely, so the next fetch
// re-fingerprints against fresh inputs.
func (p *UserProfile) ClearCache(f Feature) {
	delete(p.Caches, f)
}

// HasMilestone reports whether the user already finished a feature.
func (p *UserProfile) HasMilestone(v View) bool {
	for _, m := range p.CompletedMilestones {
		if m == v {
			return true
		}
	}
	return false
}

// AddMilestone records a finished feature. Duplicates are ignored; insertion
// order is not meaningful.
func (p *UserProfile) AddMilestone(v View) {
	if !p.HasMilestone(v) {
		p.CompletedMilestones = append(p.CompletedMilestones, v)
	}
}

// Clone returns a deep copy of the profile, safe to hand out as a snapshot.
func (p *UserProfile) Clone() UserProfile {
	out := *p
	if p.YearsOfExperience != nil {
		y := *p.YearsOfExperience
		out.YearsOfExperience = &y
	}
	if p.Skills != nil {
		out.Skills = append([]Skill(nil), p.Skills...)
	}
	if p.CompletedMilestones != nil {
		out.CompletedMilestones = append([]View(nil), p.CompletedMilestones...)
	}
	if p.Caches != nil {
		out.Caches = make(map[Feature]CacheEntry, len(p.Caches))
		for k, v := range p.Caches {
			e := v
			e.Result = append(json.RawMessage(nil), v.Result...)
			out.Caches[k] = e
		}
	}
	return out
}
