// Package store provides the persistence backends for the coaching profile.
// The profile is stored as a single opaque JSON blob under a fixed key; the
// backends know nothing about its shape.
package store

// StorageKey is the single key all profile state lives under.
const StorageKey = "careerCoachProfile"

// Backend persists one opaque blob. Load reports found=false when nothing has
// been saved yet, which callers treat as a fresh start rather than an error.
type Backend interface {
	Load() (data []byte, found bool, err error)
	Save(data []byte) error
	Close() error
}
