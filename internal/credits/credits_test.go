package credits

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brillia/career-coach/internal/types"
)

// fakeWallet is an in-memory Wallet.
type fakeWallet struct {
	balance   int
	lastReset string
	debits    int
}

func (w *fakeWallet) Balance() int      { return w.balance }
func (w *fakeWallet) LastReset() string { return w.lastReset }

func (w *fakeWallet) Debit(amount int) error {
	w.balance -= amount
	w.debits++
	return nil
}

func (w *fakeWallet) Credit(amount int) error {
	w.balance += amount
	return nil
}

func (w *fakeWallet) ResetDaily(balance int, date string) error {
	w.balance = balance
	w.lastReset = date
	return nil
}

// fixedClock pins the ledger's idea of today.
type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

func day(s string) fixedClock {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return fixedClock{t: t}
}

func TestResetIfNewDay_Resets(t *testing.T) {
	w := &fakeWallet{balance: 4, lastReset: "2026-08-31"}
	l := NewLedger(w, day("2026-09-01"))

	require.NoError(t, l.ResetIfNewDay())
	assert.Equal(t, DailyAllocation, w.balance)
	assert.Equal(t, "2026-09-01", w.lastReset)
}

func TestResetIfNewDay_IdempotentWithinDay(t *testing.T) {
	w := &fakeWallet{balance: 12, lastReset: "2026-09-01"}
	l := NewLedger(w, day("2026-09-01"))

	require.NoError(t, l.ResetIfNewDay())
	assert.Equal(t, 12, w.balance, "same-day reset must not touch the balance")
}

func TestResetIfNewDay_ReplacesToppedUpBalance(t *testing.T) {
	w := &fakeWallet{balance: 250, lastReset: "2026-08-31"}
	l := NewLedger(w, day("2026-09-01"))

	require.NoError(t, l.ResetIfNewDay())
	assert.Equal(t, DailyAllocation, w.balance)
}

func TestAuthorize(t *testing.T) {
	tests := []struct {
		name    string
		balance int
		feature types.Feature
		wantErr bool
	}{
		{"exact balance passes", 10, types.FeatureResumeScore, false},
		{"surplus passes", 30, types.FeatureSalaryInsights, false},
		{"one short fails", 9, types.FeatureResumeScore, true},
		{"zero balance fails", 0, types.FeatureFindJobs, true},
		{"free feature always passes", 0, types.Feature("coverLetter"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := &fakeWallet{balance: tt.balance}
			err := NewLedger(w, nil).Authorize(tt.feature)
			if tt.wantErr {
				var insufficient *InsufficientCreditsError
				require.ErrorAs(t, err, &insufficient)
				assert.Equal(t, tt.feature, insufficient.Feature)
				assert.Equal(t, tt.balance, insufficient.Balance)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.balance, w.balance, "authorize must never charge")
		})
	}
}

func TestCommit_Charges(t *testing.T) {
	w := &fakeWallet{balance: 30}
	l := NewLedger(w, nil)

	require.NoError(t, l.Commit(types.FeatureSalaryInsights))
	assert.Equal(t, 27, w.balance)
	assert.Equal(t, 1, w.debits)
}

func TestCommit_FreeFeatureSkipsWallet(t *testing.T) {
	w := &fakeWallet{balance: 5}
	l := NewLedger(w, nil)

	require.NoError(t, l.Commit(types.Feature("resumeRewrite")))
	assert.Equal(t, 5, w.balance)
	assert.Zero(t, w.debits)
}

func TestCommit_RefusesOverdraft(t *testing.T) {
	w := &fakeWallet{balance: 2}
	l := NewLedger(w, nil)

	err := l.Commit(types.FeatureInterviewPrep)
	var insufficient *InsufficientCreditsError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 2, w.balance, "failed commit must not change the balance")
}

func TestTopUp(t *testing.T) {
	w := &fakeWallet{balance: 3}
	l := NewLedger(w, nil)

	pkg, err := l.TopUp("plus")
	require.NoError(t, err)
	assert.Equal(t, 100, pkg.Credits)
	assert.True(t, pkg.Popular)
	assert.Equal(t, 103, w.balance)
}

func TestTopUp_UnknownPackage(t *testing.T) {
	w := &fakeWallet{balance: 3}
	l := NewLedger(w, nil)

	_, err := l.TopUp("mega")
	var unknown *UnknownPackageError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, 3, w.balance)
}

func TestCosts_CoverAllMeteredFeatures(t *testing.T) {
	assert.Equal(t, 3, Cost(types.FeatureSalaryInsights))
	assert.Equal(t, 10, Cost(types.FeatureResumeScore))
	assert.Equal(t, 10, Cost(types.FeatureInterviewPrep))
	assert.Equal(t, 3, Cost(types.FeatureLinkedInHeadline))
	assert.Equal(t, 3, Cost(types.FeatureLinkedInAbout))
	assert.Equal(t, 10, Cost(types.FeaturePlacementPlan))
	assert.Equal(t, 2, Cost(types.FeatureFindJobs))
}
