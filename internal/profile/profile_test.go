package profile

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brillia/career-coach/internal/credits"
	"github.com/brillia/career-coach/internal/store"
	"github.com/brillia/career-coach/internal/types"
)

// memBackend is an in-memory store.Backend with a switchable failure mode.
type memBackend struct {
	data  []byte
	found bool
	fail  bool
	saves int
}

func (b *memBackend) Load() ([]byte, bool, error) { return b.data, b.found, nil }

func (b *memBackend) Save(data []byte) error {
	if b.fail {
		return errors.New("disk full")
	}
	b.data = append([]byte(nil), data...)
	b.found = true
	b.saves++
	return nil
}

func (b *memBackend) Close() error { return nil }

func openStore(t *testing.T) (*Store, *memBackend) {
	t.Helper()
	b := &memBackend{}
	s, err := Open(b)
	require.NoError(t, err)
	return s, b
}

func strPtr(v string) *string { return &v }
func intPtr(v int) *int       { return &v }

func seedCaches(t *testing.T, s *Store, features ...types.Feature) {
	t.Helper()
	for _, f := range features {
		require.NoError(t, s.CommitGeneration(f, types.CacheEntry{
			Result:      json.RawMessage(`{"v":1}`),
			Fingerprint: "fp",
		}, 0))
	}
}

func TestOpen_FreshProfileDefaults(t *testing.T) {
	s, _ := openStore(t)

	p := s.Snapshot()
	assert.Equal(t, credits.DailyAllocation, p.Credits)
	assert.NotEmpty(t, p.LastCreditReset)
	assert.False(t, p.IsComplete())
}

func TestOpen_LoadsStoredProfile(t *testing.T) {
	b := &memBackend{
		data:  []byte(`{"name":"Ada","jobTitle":"Data Engineer","yearsOfExperience":6,"credits":17,"lastCreditReset":"2026-09-01"}`),
		found: true,
	}
	s, err := Open(b)
	require.NoError(t, err)

	p := s.Snapshot()
	assert.Equal(t, "Ada", p.Name)
	assert.Equal(t, 17, p.Credits)
	assert.True(t, p.IsComplete())
}

func TestOpen_CorruptProfile(t *testing.T) {
	b := &memBackend{data: []byte(`{broken`), found: true}
	_, err := Open(b)
	assert.Error(t, err)
}

func TestApply_PersistsEveryMutation(t *testing.T) {
	s, b := openStore(t)

	require.NoError(t, s.Apply(Update{Name: strPtr("Ada")}))
	require.NoError(t, s.Apply(Update{JobTitle: strPtr("Data Engineer")}))

	assert.Equal(t, 2, b.saves)

	var stored types.UserProfile
	require.NoError(t, json.Unmarshal(b.data, &stored))
	assert.Equal(t, "Ada", stored.Name)
	assert.Equal(t, "Data Engineer", stored.JobTitle)
}

func TestApply_SaveFailureLeavesMemoryUntouched(t *testing.T) {
	s, b := openStore(t)
	require.NoError(t, s.Apply(Update{Name: strPtr("Ada")}))

	b.fail = true
	err := s.Apply(Update{Name: strPtr("Grace")})
	require.Error(t, err)
	assert.Equal(t, "Ada", s.Snapshot().Name)
}

func TestCascade_JobTitleChange(t *testing.T) {
	s, _ := openStore(t)
	require.NoError(t, s.Apply(Update{JobTitle: strPtr("Data Engineer"), YearsOfExperience: intPtr(5)}))
	require.NoError(t, s.SetSkills([]types.Skill{{Name: "SQL", Rating: 7}}))
	seedCaches(t, s,
		types.FeatureSalaryInsights, types.FeaturePlacementPlan,
		types.FeatureLinkedInHeadline, types.FeatureLinkedInAbout,
		types.FeatureResumeScore, types.FeatureInterviewPrep)

	require.NoError(t, s.Apply(Update{JobTitle: strPtr("ML Engineer")}))

	p := s.Snapshot()
	for _, f := range []types.Feature{
		types.FeatureSalaryInsights, types.FeaturePlacementPlan,
		types.FeatureLinkedInHeadline, types.FeatureLinkedInAbout,
	} {
		_, ok := p.Cache(f)
		assert.False(t, ok, "cache %s should be cleared", f)
	}
	assert.Nil(t, p.Skills, "skills list is derived from the job title")

	// Resume-vs-job results key on other inputs and survive.
	_, ok := p.Cache(types.FeatureResumeScore)
	assert.True(t, ok)
	_, ok = p.Cache(types.FeatureInterviewPrep)
	assert.True(t, ok)
}

func TestCascade_YearsChange(t *testing.T) {
	s, _ := openStore(t)
	require.NoError(t, s.Apply(Update{JobTitle: strPtr("Data Engineer"), YearsOfExperience: intPtr(5)}))
	require.NoError(t, s.SetSkills([]types.Skill{{Name: "SQL", Rating: 7}}))
	seedCaches(t, s,
		types.FeatureSalaryInsights, types.FeaturePlacementPlan,
		types.FeatureLinkedInHeadline, types.FeatureLinkedInAbout)

	require.NoError(t, s.Apply(Update{YearsOfExperience: intPtr(9)}))

	p := s.Snapshot()
	_, ok := p.Cache(types.FeatureSalaryInsights)
	assert.False(t, ok)
	_, ok = p.Cache(types.FeaturePlacementPlan)
	assert.False(t, ok)

	// Experience does not feed the LinkedIn results or the skills list.
	_, ok = p.Cache(types.FeatureLinkedInHeadline)
	assert.True(t, ok)
	_, ok = p.Cache(types.FeatureLinkedInAbout)
	assert.True(t, ok)
	assert.NotNil(t, p.Skills)
}

func TestCascade_ResumeChange(t *testing.T) {
	s, _ := openStore(t)
	require.NoError(t, s.Apply(Update{JobTitle: strPtr("Data Engineer"), YearsOfExperience: intPtr(5)}))
	seedCaches(t, s,
		types.FeatureSalaryInsights, types.FeaturePlacementPlan,
		types.FeatureLinkedInHeadline, types.FeatureLinkedInAbout,
		types.FeatureResumeScore)

	require.NoError(t, s.Apply(Update{
		ResumeText:     strPtr("new resume body"),
		ResumeFileName: strPtr("resume_v2.pdf"),
	}))

	p := s.Snapshot()
	for _, f := range []types.Feature{
		types.FeatureLinkedInHeadline, types.FeatureLinkedInAbout,
		types.FeaturePlacementPlan, types.FeatureResumeScore,
	} {
		_, ok := p.Cache(f)
		assert.False(t, ok, "cache %s should be cleared", f)
	}

	// Salary insights ignore the resume.
	_, ok := p.Cache(types.FeatureSalaryInsights)
	assert.True(t, ok)
}

func TestCascade_UnchangedValueDoesNotInvalidate(t *testing.T) {
	s, _ := openStore(t)
	require.NoError(t, s.Apply(Update{JobTitle: strPtr("Data Engineer"), YearsOfExperience: intPtr(5)}))
	seedCaches(t, s, types.FeatureSalaryInsights)

	// Re-saving identical settings is a no-op for the caches.
	require.NoError(t, s.Apply(Update{JobTitle: strPtr("Data Engineer"), YearsOfExperience: intPtr(5)}))

	p := s.Snapshot()
	_, ok := p.Cache(types.FeatureSalaryInsights)
	assert.True(t, ok)
}

func TestCommitGeneration_StoresAndCharges(t *testing.T) {
	s, _ := openStore(t)

	entry := types.CacheEntry{Result: json.RawMessage(`{"average":"120000"}`), Fingerprint: "fp1"}
	require.NoError(t, s.CommitGeneration(types.FeatureSalaryInsights, entry, 3))

	p := s.Snapshot()
	got, ok := p.Cache(types.FeatureSalaryInsights)
	require.True(t, ok)
	assert.Equal(t, "fp1", got.Fingerprint)
	assert.Equal(t, credits.DailyAllocation-3, p.Credits)
}

func TestCommitGeneration_InsufficientBalance(t *testing.T) {
	s, _ := openStore(t)
	require.NoError(t, s.Debit(credits.DailyAllocation - 2))

	err := s.CommitGeneration(types.FeatureResumeScore, types.CacheEntry{Fingerprint: "fp"}, 10)

	var insufficient *credits.InsufficientCreditsError
	require.ErrorAs(t, err, &insufficient)

	p := s.Snapshot()
	_, ok := p.Cache(types.FeatureResumeScore)
	assert.False(t, ok, "nothing may be cached when the charge fails")
	assert.Equal(t, 2, p.Credits)
}

func TestCommitGeneration_SaveFailureChargesNothing(t *testing.T) {
	s, b := openStore(t)
	b.fail = true

	err := s.CommitGeneration(types.FeatureSalaryInsights, types.CacheEntry{Fingerprint: "fp"}, 3)
	require.Error(t, err)

	p := s.Snapshot()
	_, ok := p.Cache(types.FeatureSalaryInsights)
	assert.False(t, ok)
	assert.Equal(t, credits.DailyAllocation, p.Credits)
}

func TestRateSkill(t *testing.T) {
	s, _ := openStore(t)
	require.NoError(t, s.SetSkills([]types.Skill{{Name: "SQL", Rating: 5}, {Name: "Python", Rating: 5}}))

	require.NoError(t, s.RateSkill("SQL", 9))

	p := s.Snapshot()
	assert.Equal(t, 9, p.Skills[0].Rating)
	assert.Equal(t, 5, p.Skills[1].Rating)
}

func TestRateSkill_InvalidRating(t *testing.T) {
	s, _ := openStore(t)
	require.NoError(t, s.SetSkills([]types.Skill{{Name: "SQL", Rating: 5}}))

	assert.Error(t, s.RateSkill("SQL", 0))
	assert.Error(t, s.RateSkill("SQL", 11))
	assert.Equal(t, 5, s.Snapshot().Skills[0].Rating)
}

func TestRateSkill_UnknownSkill(t *testing.T) {
	s, _ := openStore(t)
	require.NoError(t, s.SetSkills([]types.Skill{{Name: "SQL", Rating: 5}}))

	assert.Error(t, s.RateSkill("Juggling", 7))
}

func TestMilestones(t *testing.T) {
	s, _ := openStore(t)

	require.NoError(t, s.AddMilestone(types.ViewSalaryInsights))
	require.NoError(t, s.AddMilestone(types.ViewSalaryInsights))

	p := s.Snapshot()
	assert.Equal(t, []types.View{types.ViewSalaryInsights}, p.CompletedMilestones)
}

func TestWallet_ResetDaily(t *testing.T) {
	s, _ := openStore(t)
	require.NoError(t, s.Debit(25))

	require.NoError(t, s.ResetDaily(credits.DailyAllocation, "2026-09-02"))

	assert.Equal(t, credits.DailyAllocation, s.Balance())
	assert.Equal(t, "2026-09-02", s.LastReset())
}

func TestSnapshot_IsIsolated(t *testing.T) {
	s, _ := openStore(t)
	require.NoError(t, s.SetSkills([]types.Skill{{Name: "SQL", Rating: 5}}))

	p := s.Snapshot()
	p.Skills[0].Rating = 1
	p.Credits = 0

	fresh := s.Snapshot()
	assert.Equal(t, 5, fresh.Skills[0].Rating)
	assert.Equal(t, credits.DailyAllocation, fresh.Credits)
}

var _ store.Backend = (*memBackend)(nil)
