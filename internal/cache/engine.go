// Package cache implements the credit-gated result cache. Each feature
// registers a cost, a fingerprint over the inputs it depends on, and a
// generator; the engine serves cached results while the fingerprint matches,
// coalesces duplicate in-flight generations, and commits the charge and the
// cached result as one step only after generation succeeds.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/sync/singleflight"

	"github.com/brillia/career-coach/internal/types"
)

// Inputs is the snapshot a fingerprint and generator work from. Profile is a
// deep copy; generators must not mutate shared state through it.
type Inputs struct {
	Profile        types.UserProfile
	JobDescription string
}

// Generator produces a fresh result for a feature.
type Generator func(ctx context.Context, in Inputs) (json.RawMessage, error)

// Registration binds a feature to its cost, fingerprint and generator.
type Registration struct {
	Cost        int
	Fingerprint func(in Inputs) string
	Generate    Generator
}

// ProfileAccess is the slice of the profile store the engine needs.
type ProfileAccess interface {
	Entry(f types.Feature) (types.CacheEntry, bool)
	CommitGeneration(f types.Feature, e types.CacheEntry, cost int) error
}

// Authorizer pre-flights the charge before any generation starts.
type Authorizer interface {
	Authorize(f types.Feature) error
}

// UnknownFeatureError indicates a Get for a feature nothing registered.
type UnknownFeatureError struct {
	Feature types.Feature
}

func (e *UnknownFeatureError) Error() string {
	return fmt.Sprintf("no registration for feature %q", e.Feature)
}

// Engine is the cache-or-generate decision point for all metered features.
type Engine struct {
	profile  ProfileAccess
	auth     Authorizer
	registry map[types.Feature]Registration
	group    singleflight.Group
}

// New creates an engine over a profile store and an authorizer.
func New(profile ProfileAccess, auth Authorizer) *Engine {
	return &Engine{
		profile:  profile,
		auth:     auth,
		registry: make(map[types.Feature]Registration),
	}
}

// Register binds a feature. Later registrations replace earlier ones.
func (e *Engine) Register(f types.Feature, reg Registration) {
	e.registry[f] = reg
}

// Get returns the feature's result, from cache when the stored fingerprint
// matches the current inputs, otherwise by generating. force skips the cache
// read but still charges and stores like any fresh generation. On any failure
// the ledger and cache are left exactly as they were.
func (e *Engine) Get(ctx context.Context, f types.Feature, in Inputs, force bool) (json.RawMessage, error) {
	reg, ok := e.registry[f]
	if !ok {
		return nil, &UnknownFeatureError{Feature: f}
	}

	fp := reg.Fingerprint(in)
	if !force {
		if entry, ok := e.profile.Entry(f); ok && entry.Fingerprint == fp {
			return append(json.RawMessage(nil), entry.Result...), nil
		}
	}

	if err := e.auth.Authorize(f); err != nil {
		return nil, err
	}

	// Concurrent requests for the same feature and fingerprint share one
	// generation and one charge.
	key := string(f) + "\x00" + fp
	v, err, _ := e.group.Do(key, func() (interface{}, error) {
		if !force {
			if entry, ok := e.profile.Entry(f); ok && entry.Fingerprint == fp {
				return append(json.RawMessage(nil), entry.Result...), nil
			}
		}

		result, err := reg.Generate(ctx, in)
		if err != nil {
			return nil, err
		}
		entry := types.CacheEntry{Result: result, Fingerprint: fp}
		if err := e.profile.CommitGeneration(f, entry, reg.Cost); err != nil {
			return nil, err
		}
		return result, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(json.RawMessage), nil
}

// Fingerprint canonicalizes input parts into one comparable string. Quoting
// each part keeps ("ab","c") distinct from ("a","bc").
func Fingerprint(parts ...string) string {
	quoted := make([]string, len(parts))
	for i, p := range parts {
		quoted[i] = fmt.Sprintf("%q", p)
	}
	return strings.Join(quoted, "|")
}
