package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/brillia/career-coach/internal/types"
)

// staticProfile serves a fixed profile snapshot.
type staticProfile struct {
	p types.UserProfile
}

func (s *staticProfile) Snapshot() types.UserProfile { return s.p }

func completeProfile() *staticProfile {
	years := 5
	return &staticProfile{p: types.UserProfile{JobTitle: "Data Engineer", YearsOfExperience: &years}}
}

func TestNavigate_CompleteProfileReachesFeatureViews(t *testing.T) {
	c := NewController(completeProfile())

	got := c.Navigate(types.ViewSalaryInsights)

	assert.Equal(t, types.ViewSalaryInsights, got)
	assert.Equal(t, types.ViewSalaryInsights, c.Current())
}

func TestNavigate_IncompleteProfileRedirectsToSettings(t *testing.T) {
	c := NewController(&staticProfile{})

	got := c.Navigate(types.ViewPlacementPlan)

	assert.Equal(t, types.ViewProfileSettings, got)
	assert.Equal(t, types.ViewProfileSettings, c.Current())
}

func TestNavigate_UngatedViewsAlwaysReachable(t *testing.T) {
	c := NewController(&staticProfile{})

	for _, v := range []types.View{
		types.ViewWelcome, types.ViewChat, types.ViewReferrals,
		types.ViewProfileSettings, types.ViewBuyCredits,
	} {
		assert.Equal(t, v, c.Navigate(v), "view %s must not be gated", v)
	}
}

func TestCompleteSetup_ResumesPendingView(t *testing.T) {
	source := &staticProfile{}
	c := NewController(source)

	c.Navigate(types.ViewInterviewPrep)
	assert.Equal(t, types.ViewProfileSettings, c.Current())

	years := 4
	source.p = types.UserProfile{JobTitle: "Data Engineer", YearsOfExperience: &years}

	got := c.CompleteSetup()
	assert.Equal(t, types.ViewInterviewPrep, got)
}

func TestCompleteSetup_NoPendingLandsOnWelcome(t *testing.T) {
	c := NewController(completeProfile())

	c.Navigate(types.ViewProfileSettings)
	got := c.CompleteSetup()

	assert.Equal(t, types.ViewWelcome, got)
}

func TestCompleteSetup_StillIncompleteDropsPending(t *testing.T) {
	c := NewController(&staticProfile{})

	c.Navigate(types.ViewJobs)
	got := c.CompleteSetup()

	assert.Equal(t, types.ViewWelcome, got)

	// The dropped intent does not resurface later.
	years := 3
	complete := completeProfile()
	complete.p.YearsOfExperience = &years
	c.profiles = complete
	assert.Equal(t, types.ViewWelcome, c.CompleteSetup())
}

func TestRequiresSetup(t *testing.T) {
	assert.True(t, RequiresSetup(types.ViewSalaryInsights))
	assert.True(t, RequiresSetup(types.ViewJobs))
	assert.False(t, RequiresSetup(types.ViewChat))
	assert.False(t, RequiresSetup(types.ViewBuyCredits))
}
