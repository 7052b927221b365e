package coach

import (
	"errors"
	"fmt"

	"github.com/brillia/career-coach/internal/credits"
	"github.com/brillia/career-coach/internal/extract"
	"github.com/brillia/career-coach/internal/ingest"
	"github.com/brillia/career-coach/internal/jobs"
	"github.com/brillia/career-coach/internal/llm"
)

// IncompleteProfileError indicates a feature was invoked before the profile
// carries the input it needs.
type IncompleteProfileError struct {
	Missing string
}

func (e *IncompleteProfileError) Error() string {
	return fmt.Sprintf("profile is missing a %s", e.Missing)
}

// UserMessage translates any error from a Coach operation into a message fit
// to show the user. Internal detail never leaks; a feature failure is never
// fatal to the session.
func UserMessage(err error) string {
	var incomplete *IncompleteProfileError
	if errors.As(err, &incomplete) {
		return fmt.Sprintf("Please add a %s in your profile settings first.", incomplete.Missing)
	}

	var insufficient *credits.InsufficientCreditsError
	if errors.As(err, &insufficient) {
		return fmt.Sprintf("You need %d credits for this but only have %d. Top up to continue.",
			insufficient.Cost, insufficient.Balance)
	}

	var timeout *llm.TimeoutError
	if errors.As(err, &timeout) {
		return "The request to the AI service timed out. Please try again."
	}

	var misconfigured *llm.ServiceMisconfiguredError
	if errors.As(err, &misconfigured) {
		return "The AI service is not configured correctly. Please contact support."
	}

	var quota *llm.QuotaError
	if errors.As(err, &quota) {
		return "The AI service is busy right now. Please try again in a few minutes."
	}

	var malformed *llm.MalformedResponseError
	if errors.As(err, &malformed) {
		return "The AI returned an unexpected answer. Please try again."
	}

	var empty *ingest.EmptyContentError
	if errors.As(err, &empty) {
		return "We could not read any text from that resume. Try a different file."
	}

	var extraction *extract.ExtractionError
	if errors.As(err, &extraction) {
		return extraction.UserMessage()
	}

	var unavailable *jobs.UnavailableError
	if errors.As(err, &unavailable) {
		return "We're having trouble fetching job listings right now. Please try again in a few moments."
	}

	var unknownPkg *credits.UnknownPackageError
	if errors.As(err, &unknownPkg) {
		return "That credit package is not available."
	}

	return "Something went wrong. Please try again."
}
