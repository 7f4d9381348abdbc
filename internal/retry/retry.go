// Package retry wraps a single outbound API call with failure
// classification, retry-with-backoff, and semantic exit-code mapping.
//
// Every command funnels its API calls through Execute so that rate
// limits and transient server errors are retried uniformly, while
// authentication, not-found, and validation failures surface on the
// first occurrence.
package retry

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net"
	"time"
)

// Category is the classification bucket assigned to a failed call.
// It drives both retry eligibility and the process exit code.
type Category string

const (
	CategoryAuth        Category = "AUTH"
	CategoryNotFound    Category = "NOT_FOUND"
	CategoryValidation  Category = "VALIDATION"
	CategoryRateLimited Category = "RATE_LIMITED"
	CategoryServerError Category = "SERVER_ERROR"
	CategoryTransport   Category = "TRANSPORT"
	CategoryUnknown     Category = "UNKNOWN"
)

// Semantic exit codes, consumed by ddog.Main when a command terminates.
const (
	ExitOK              = 0
	ExitGeneralError    = 1
	ExitAuthError       = 2
	ExitNotFound        = 3
	ExitValidationError = 4
	ExitRateLimited     = 5
	ExitServerError     = 6
)

// ExitCode maps a failure category to its semantic process exit code.
func (c Category) ExitCode() int {
	switch c {
	case CategoryAuth:
		return ExitAuthError
	case CategoryNotFound:
		return ExitNotFound
	case CategoryValidation:
		return ExitValidationError
	case CategoryRateLimited:
		return ExitRateLimited
	case CategoryServerError:
		return ExitServerError
	default:
		return ExitGeneralError
	}
}

// StatusCoder is implemented by errors that originate from an HTTP
// response and carry its status code. api.Error satisfies this.
type StatusCoder interface {
	HTTPStatusCode() int
}

// RetryAfterer is implemented by errors that carry a server-provided
// Retry-After hint, typically from a 429 response.
type RetryAfterer interface {
	RetryAfter() (time.Duration, bool)
}

// Failure describes one classified call failure. It is suitable for
// JSON serialization as a structured error payload.
type Failure struct {
	Category   Category `json:"category"`
	StatusCode int      `json:"http_status,omitempty"`
	Message    string   `json:"message"`

	// RetryAfterHint is the server-provided wait, when present.
	RetryAfterHint time.Duration `json:"-"`
}

// Error implements the error interface so a Failure can flow back
// through cobra's RunE chain to Main for exit-code mapping.
func (f *Failure) Error() string {
	if f.StatusCode > 0 {
		return fmt.Sprintf("%s (HTTP %d): %s", f.Category, f.StatusCode, f.Message)
	}
	return fmt.Sprintf("%s: %s", f.Category, f.Message)
}

// Classify buckets a raw error into a Failure. Classification is a
// pure function of the error: an explicit HTTP status takes priority
// over a transport-level signal, which takes priority over unknown.
func Classify(err error) Failure {
	f := Failure{Category: CategoryUnknown, Message: err.Error()}

	var sc StatusCoder
	if errors.As(err, &sc) {
		f.StatusCode = sc.HTTPStatusCode()
		f.Category = categoryForStatus(f.StatusCode)
		var ra RetryAfterer
		if errors.As(err, &ra) {
			if d, ok := ra.RetryAfter(); ok {
				f.RetryAfterHint = d
			}
		}
		return f
	}

	var netErr net.Error
	if errors.As(err, &netErr) || errors.Is(err, context.DeadlineExceeded) {
		f.Category = CategoryTransport
	}
	return f
}

func categoryForStatus(status int) Category {
	switch {
	case status == 401 || status == 403:
		return CategoryAuth
	case status == 404:
		return CategoryNotFound
	case status == 400 || status == 422:
		return CategoryValidation
	case status == 429:
		return CategoryRateLimited
	case status >= 500 && status <= 599:
		return CategoryServerError
	default:
		return CategoryUnknown
	}
}

// Policy is the immutable configuration governing attempt count and
// backoff timing. The zero value is not valid; use DefaultPolicy.
type Policy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	Multiplier  float64

	// Retryable overrides the default retryable category set when
	// non-nil. AUTH, NOT_FOUND, and VALIDATION should stay out of it;
	// they represent permanent conditions.
	Retryable map[Category]bool

	// OnRetry, when set, is invoked before each backoff sleep.
	// The executor itself never logs or prints.
	OnRetry func(attempt int, delay time.Duration, f Failure)
}

// DefaultPolicy returns the standard policy: 3 attempts, 1s base
// delay, doubling between attempts.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts: 3,
		BaseDelay:   time.Second,
		Multiplier:  2,
	}
}

// retryable reports whether a category is eligible for another
// attempt under p. By default AUTH, NOT_FOUND, and VALIDATION are
// terminal by classification regardless of remaining attempts.
func (p Policy) retryable(c Category) bool {
	if p.Retryable != nil {
		return p.Retryable[c]
	}
	switch c {
	case CategoryRateLimited, CategoryServerError, CategoryTransport:
		return true
	}
	return false
}

// Operation is a single unit of outbound work: one network call that
// returns an opaque payload or an error.
type Operation func() (any, error)

// Outcome is the result of Execute: either a payload or a classified
// failure, never both.
type Outcome struct {
	Payload any
	Failure *Failure
}

// Succeeded reports whether the call completed without error.
func (o Outcome) Succeeded() bool { return o.Failure == nil }

// Execute runs op under the given policy. Retryable failures are
// re-attempted after a backoff delay; the delay before attempt k is
// BaseDelay × Multiplier^(k-2), unless the failure carries a server
// Retry-After hint, which is used verbatim.
//
// The returned error is non-nil only when ctx is cancelled during the
// backoff wait; cancellation is propagated rather than folded into an
// UNKNOWN failure. All other failures are reported via Outcome.
func Execute(ctx context.Context, op Operation, policy Policy) (Outcome, error) {
	if policy.MaxAttempts < 1 {
		policy.MaxAttempts = 1
	}

	for attempt := 1; ; attempt++ {
		payload, err := op()
		if err == nil {
			return Outcome{Payload: payload}, nil
		}
		if ctx.Err() != nil {
			return Outcome{}, ctx.Err()
		}

		f := Classify(err)
		if !policy.retryable(f.Category) || attempt >= policy.MaxAttempts {
			return Outcome{Failure: &f}, nil
		}

		delay := f.RetryAfterHint
		if delay <= 0 {
			delay = backoffDelay(policy, attempt)
		}
		if policy.OnRetry != nil {
			policy.OnRetry(attempt, delay, f)
		}
		if err := sleep(ctx, delay); err != nil {
			return Outcome{}, err
		}
	}
}

// backoffDelay computes the exponential delay after a failed attempt
// (1-based): BaseDelay × Multiplier^(attempt-1).
func backoffDelay(policy Policy, attempt int) time.Duration {
	mult := policy.Multiplier
	if mult < 1 {
		mult = 1
	}
	d := float64(policy.BaseDelay) * math.Pow(mult, float64(attempt-1))
	return time.Duration(d)
}

// sleep blocks for d or until ctx is done, whichever comes first.
func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
