// Package nav implements view navigation with onboarding gating: feature
// views are reachable only once the profile carries a target role and
// experience level, and a blocked navigation resumes after setup completes.
package nav

import (
	"sync"

	"github.com/brillia/career-coach/internal/types"
)

// ProfileSource supplies the current profile for completeness checks.
type ProfileSource interface {
	Snapshot() types.UserProfile
}

// setupRequired lists the views that need a complete profile.
var setupRequired = map[types.View]bool{
	types.ViewSalaryInsights:  true,
	types.ViewResumeScore:     true,
	types.ViewResumeRewrite:   true,
	types.ViewBulletOptimizer: true,
	types.ViewCoverLetter:     true,
	types.ViewLinkedInHead:    true,
	types.ViewLinkedInAbout:   true,
	types.ViewSkillAssessment: true,
	types.ViewInterviewPrep:   true,
	types.ViewJobs:            true,
	types.ViewPlacementPlan:   true,
}

// RequiresSetup reports whether a view is gated behind onboarding.
func RequiresSetup(v types.View) bool {
	return setupRequired[v]
}

// Controller tracks the current view and the navigation intent interrupted by
// onboarding.
type Controller struct {
	mu       sync.Mutex
	profiles ProfileSource
	current  types.View
	pending  types.View
}

// NewController creates a controller starting at the welcome view.
func NewController(profiles ProfileSource) *Controller {
	return &Controller{profiles: profiles, current: types.ViewWelcome}
}

// Current returns the view being shown.
func (c *Controller) Current() types.View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Navigate moves to a view. A gated view with an incomplete profile redirects
// to profile settings and remembers the intent.
func (c *Controller) Navigate(v types.View) types.View {
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.profiles.Snapshot()
	if setupRequired[v] && !p.IsComplete() {
		c.pending = v
		c.current = types.ViewProfileSettings
		return c.current
	}
	c.pending = ""
	c.current = v
	return c.current
}

// CompleteSetup resumes the interrupted navigation, or lands on the welcome
// view when setup was opened directly.
func (c *Controller) CompleteSetup() types.View {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := types.ViewWelcome
	if c.pending != "" {
		if p := c.profiles.Snapshot(); p.IsComplete() {
			next = c.pending
		}
	}
	c.pending = ""
	c.current = next
	return next
}
