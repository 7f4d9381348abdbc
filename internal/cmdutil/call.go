package cmdutil

import (
	"context"
	"fmt"
	"time"

	"github.com/schmitthub/ddog/internal/iostreams"
	"github.com/schmitthub/ddog/internal/logger"
	"github.com/schmitthub/ddog/internal/retry"
)

// CallAPI runs one API operation through the retry executor, showing a
// progress spinner and a visible notice before each retry. On failure
// the classified *retry.Failure is returned as the error; Main maps it
// to the process exit code.
func CallAPI[T any](ctx context.Context, ios *iostreams.IOStreams, policy retry.Policy, label string, op func() (T, error)) (T, error) {
	var zero T
	cs := ios.ColorScheme()

	policy.OnRetry = func(attempt int, delay time.Duration, f retry.Failure) {
		logger.Debug().
			Str("category", string(f.Category)).
			Int("attempt", attempt).
			Dur("delay", delay).
			Msg("retrying api call")

		switch f.Category {
		case retry.CategoryRateLimited:
			fmt.Fprintln(ios.ErrOut, cs.Yellowf("Rate limited. Retrying in %s...", delay))
		default:
			fmt.Fprintln(ios.ErrOut, cs.Yellowf("%s. Retrying (%d/%d)...", f.Category, attempt, policy.MaxAttempts))
		}
	}

	ios.StartProgress(label)
	outcome, err := retry.Execute(ctx, func() (any, error) { return op() }, policy)
	ios.StopProgress()

	if err != nil {
		return zero, err
	}
	if !outcome.Succeeded() {
		return zero, outcome.Failure
	}

	payload, ok := outcome.Payload.(T)
	if !ok {
		return zero, fmt.Errorf("api call returned unexpected payload type %T", outcome.Payload)
	}
	return payload, nil
}

// HandleFailure renders a classified API failure when machine-readable
// output was requested: the structured payload goes to stderr and the
// command returns SilentError so Main still maps the exit code from
// the wrapped failure. In table mode the error passes through for
// Main's plain rendering.
func HandleFailure(ios *iostreams.IOStreams, ff *FormatFlags, err error) error {
	if err == nil {
		return nil
	}
	if f, ok := err.(*retry.Failure); ok && ff != nil && ff.IsJSON() {
		_ = WriteJSON(ios.ErrOut, f)
		return &silentFailure{failure: f}
	}
	return err
}

// silentFailure suppresses duplicate rendering while preserving the
// category for exit-code mapping.
type silentFailure struct {
	failure *retry.Failure
}

func (e *silentFailure) Error() string { return e.failure.Error() }

// Unwrap exposes both SilentError (so Main skips printing) and the
// failure itself (so Main still maps the exit code).
func (e *silentFailure) Unwrap() []error { return []error{SilentError, e.failure} }
