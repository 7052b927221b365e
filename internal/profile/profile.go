// Package profile owns the session aggregate. Every mutation funnels through
// the Store, which applies the cascade invalidation rules, persists the whole
// profile after each change, and exposes the wallet surface the credit ledger
// drives. Failed persistence leaves the in-memory profile untouched.
package profile

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/brillia/career-coach/internal/credits"
	"github.com/brillia/career-coach/internal/store"
	"github.com/brillia/career-coach/internal/types"
)

const dateLayout = "2006-01-02"

// Store is the single owner of the user profile.
type Store struct {
	mu       sync.RWMutex
	backend  store.Backend
	profile  types.UserProfile
	validate *validator.Validate
}

// Open loads the persisted profile, or starts a fresh one with the full daily
// allowance when nothing is stored yet.
func Open(backend store.Backend) (*Store, error) {
	s := &Store{backend: backend, validate: validator.New()}

	data, found, err := backend.Load()
	if err != nil {
		return nil, err
	}
	if !found {
		s.profile = types.UserProfile{
			Credits:         credits.DailyAllocation,
			LastCreditReset: time.Now().Format(dateLayout),
		}
		return s, nil
	}
	if err := json.Unmarshal(data, &s.profile); err != nil {
		return nil, fmt.Errorf("failed to decode stored profile: %w", err)
	}
	return s, nil
}

// Snapshot returns a deep copy of the current profile.
func (s *Store) Snapshot() types.UserProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile.Clone()
}

// Entry returns the cache entry for a feature, if one exists.
func (s *Store) Entry(f types.Feature) (types.CacheEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile.Cache(f)
}

// mutate applies fn to a working copy, persists it, and only then makes it
// the current profile. A persistence failure leaves memory and disk as they
// were.
func (s *Store) mutate(fn func(p *types.UserProfile)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.profile.Clone()
	fn(&next)

	data, err := json.Marshal(&next)
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}
	if err := s.backend.Save(data); err != nil {
		return err
	}
	s.profile = next
	return nil
}

// Update carries the settings fields a user can change in one save. Nil
// pointers mean "leave unchanged".
type Update struct {
	Name              *string
	JobTitle          *string
	YearsOfExperience *int
	Location          *string
	ResumeText        *string
	ResumeFileName    *string
}

// Apply writes an update and runs the cascade rules against the previous
// values, so results derived from stale inputs never survive the change.
func (s *Store) Apply(u Update) error {
	return s.mutate(func(p *types.UserProfile) {
		prev := *p

		if u.Name != nil {
			p.Name = *u.Name
		}
		if u.JobTitle != nil {
			p.JobTitle = *u.JobTitle
		}
		if u.YearsOfExperience != nil {
			y := *u.YearsOfExperience
			p.YearsOfExperience = &y
		}
		if u.Location != nil {
			p.Location = *u.Location
		}
		if u.ResumeText != nil {
			p.ResumeText = *u.ResumeText
		}
		if u.ResumeFileName != nil {
			p.ResumeFileName = *u.ResumeFileName
		}

		cascade(&prev, p)
	})
}

// cascade clears every cached result whose inputs changed between prev and
// next. Clearing removes the entry entirely.
func cascade(prev, next *types.UserProfile) {
	titleChanged := prev.JobTitle != next.JobTitle
	yearsChanged := !equalYears(prev.YearsOfExperience, next.YearsOfExperience)
	resumeChanged := prev.ResumeText != next.ResumeText || prev.ResumeFileName != next.ResumeFileName

	if titleChanged || yearsChanged {
		next.ClearCache(types.FeatureSalaryInsights)
		next.ClearCache(types.FeaturePlacementPlan)
	}
	if titleChanged {
		next.Skills = nil
		next.ClearCache(types.FeatureLinkedInHeadline)
		next.ClearCache(types.FeatureLinkedInAbout)
	}
	if resumeChanged {
		next.ClearCache(types.FeatureLinkedInHeadline)
		next.ClearCache(types.FeatureLinkedInAbout)
		next.ClearCache(types.FeaturePlacementPlan)
		next.ClearCache(types.FeatureResumeScore)
	}
}

func equalYears(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// SetSkills replaces the skills list.
func (s *Store) SetSkills(skills []types.Skill) error {
	return s.mutate(func(p *types.UserProfile) {
		p.Skills = skills
	})
}

// RateSkill sets the rating for one skill. The skill must already exist and
// the rating must be between 1 and 10.
func (s *Store) RateSkill(name string, rating int) error {
	if err := s.validate.Var(rating, "min=1,max=10"); err != nil {
		return fmt.Errorf("invalid skill rating %d: %w", rating, err)
	}
	found := false
	err := s.mutate(func(p *types.UserProfile) {
		for i := range p.Skills {
			if p.Skills[i].Name == name {
				p.Skills[i].Rating = rating
				found = true
				return
			}
		}
	})
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("unknown skill %q", name)
	}
	return nil
}

// SetInterviewJobDescription stores the job description used for interview
// prep and resume scoring.
func (s *Store) SetInterviewJobDescription(jd string) error {
	return s.mutate(func(p *types.UserProfile) {
		p.InterviewJobDescription = jd
	})
}

// AddMilestone records a completed feature.
func (s *Store) AddMilestone(v types.View) error {
	return s.mutate(func(p *types.UserProfile) {
		p.AddMilestone(v)
	})
}

// CommitGeneration stores a freshly generated result and charges its cost as
// one persisted step, so a charge never lands without its cached result and
// vice versa.
func (s *Store) CommitGeneration(f types.Feature, entry types.CacheEntry, cost int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cost > 0 && s.profile.Credits < cost {
		return &credits.InsufficientCreditsError{Feature: f, Cost: cost, Balance: s.profile.Credits}
	}

	next := s.profile.Clone()
	next.SetCache(f, entry)
	next.Credits -= cost

	data, err := json.Marshal(&next)
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}
	if err := s.backend.Save(data); err != nil {
		return err
	}
	s.profile = next
	return nil
}

// Balance returns the current credit balance.
func (s *Store) Balance() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile.Credits
}

// LastReset returns the date of the last daily allowance reset.
func (s *Store) LastReset() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile.LastCreditReset
}

// Debit subtracts credits.
func (s *Store) Debit(amount int) error {
	return s.mutate(func(p *types.UserProfile) {
		p.Credits -= amount
	})
}

// Credit adds credits.
func (s *Store) Credit(amount int) error {
	return s.mutate(func(p *types.UserProfile) {
		p.Credits += amount
	})
}

// ResetDaily replaces the balance with the daily allowance and records the
// reset date.
func (s *Store) ResetDaily(balance int, date string) error {
	return s.mutate(func(p *types.UserProfile) {
		p.Credits = balance
		p.LastCreditReset = date
	})
}

// Close closes the underlying backend.
func (s *Store) Close() error {
	return s.backend.Close()
}
