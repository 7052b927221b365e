// Package credits implements the metering layer: per-feature costs, the daily
// allowance reset and purchasable top-up packages. The ledger never talks to
// storage directly; it drives a Wallet owned by the profile store so every
// balance change persists with the rest of the profile.
package credits

import (
	"fmt"
	"time"

	"github.com/brillia/career-coach/internal/types"
)

// DailyAllocation is the credit balance every user starts each day with.
const DailyAllocation = 30

// Costs maps each metered feature to its credit price. A feature absent from
// the map is free.
var Costs = map[types.Feature]int{
	types.FeatureSalaryInsights:   3,
	types.FeatureResumeScore:      10,
	types.FeatureInterviewPrep:    10,
	types.FeatureLinkedInHeadline: 3,
	types.FeatureLinkedInAbout:    3,
	types.FeaturePlacementPlan:    10,
	types.FeatureFindJobs:         2,
}

// Cost returns the credit price of a feature. Unknown features are free.
func Cost(f types.Feature) int {
	return Costs[f]
}

// Package is one purchasable credit bundle. PriceCents avoids float currency.
type Package struct {
	ID         string
	Credits    int
	PriceCents int
	Popular    bool
}

// Packages are the available top-up bundles, cheapest first.
var Packages = []Package{
	{ID: "starter", Credits: 50, PriceCents: 500},
	{ID: "plus", Credits: 100, PriceCents: 900, Popular: true},
	{ID: "pro", Credits: 250, PriceCents: 2000},
}

// PackageByID looks up a purchasable bundle.
func PackageByID(id string) (Package, bool) {
	for _, p := range Packages {
		if p.ID == id {
			return p, true
		}
	}
	return Package{}, false
}

// InsufficientCreditsError indicates a feature costs more than the current
// balance. The caller routes the user to the purchase screen.
type InsufficientCreditsError struct {
	Feature types.Feature
	Cost    int
	Balance int
}

func (e *InsufficientCreditsError) Error() string {
	return fmt.Sprintf("insufficient credits for %s: need %d, have %d", e.Feature, e.Cost, e.Balance)
}

// UnknownPackageError indicates a top-up request for a bundle that does not
// exist.
type UnknownPackageError struct {
	ID string
}

func (e *UnknownPackageError) Error() string {
	return fmt.Sprintf("unknown credit package %q", e.ID)
}

// Wallet is the balance surface the profile store exposes to the ledger.
// Balance mutations persist before the methods return.
type Wallet interface {
	Balance() int
	LastReset() string
	Debit(amount int) error
	Credit(amount int) error
	ResetDaily(balance int, date string) error
}

// Clock abstracts the current date so reset logic is testable.
type Clock interface {
	Now() time.Time
}

// SystemClock is the real clock.
type SystemClock struct{}

// Now returns the current time.
func (SystemClock) Now() time.Time { return time.Now() }

// Ledger enforces the credit rules over a wallet.
type Ledger struct {
	wallet Wallet
	clock  Clock
}

// NewLedger creates a ledger. A nil clock means the system clock.
func NewLedger(wallet Wallet, clock Clock) *Ledger {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Ledger{wallet: wallet, clock: clock}
}

// today formats the clock's date the way it is persisted.
func (l *Ledger) today() string {
	return l.clock.Now().Format("2006-01-02")
}

// ResetIfNewDay restores the daily allocation when the stored reset date is
// not today. Idempotent within a day; an unspent higher balance from top-ups
// is still replaced, matching the allowance model rather than a rollover one.
func (l *Ledger) ResetIfNewDay() error {
	today := l.today()
	if l.wallet.LastReset() == today {
		return nil
	}
	return l.wallet.ResetDaily(DailyAllocation, today)
}

// Authorize checks that the balance covers a feature without charging it.
// Free features always pass.
func (l *Ledger) Authorize(f types.Feature) error {
	cost := Cost(f)
	if cost == 0 {
		return nil
	}
	if balance := l.wallet.Balance(); balance < cost {
		return &InsufficientCreditsError{Feature: f, Cost: cost, Balance: balance}
	}
	return nil
}

// Commit charges a feature's cost. Callers authorize first; a balance that
// shrank in between still fails here rather than going negative.
func (l *Ledger) Commit(f types.Feature) error {
	cost := Cost(f)
	if cost == 0 {
		return nil
	}
	if balance := l.wallet.Balance(); balance < cost {
		return &InsufficientCreditsError{Feature: f, Cost: cost, Balance: balance}
	}
	return l.wallet.Debit(cost)
}

// TopUp adds a purchased bundle's credits to the balance.
func (l *Ledger) TopUp(packageID string) (Package, error) {
	pkg, ok := PackageByID(packageID)
	if !ok {
		return Package{}, &UnknownPackageError{ID: packageID}
	}
	if err := l.wallet.Credit(pkg.Credits); err != nil {
		return Package{}, err
	}
	return pkg, nil
}

// Balance returns the current credit balance.
func (l *Ledger) Balance() int {
	return l.wallet.Balance()
}
