package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// httpError is a test double for api.Error.
type httpError struct {
	status     int
	retryAfter time.Duration
}

func (e *httpError) Error() string       { return "http error" }
func (e *httpError) HTTPStatusCode() int { return e.status }
func (e *httpError) RetryAfter() (time.Duration, bool) {
	return e.retryAfter, e.retryAfter > 0
}

// timeoutError satisfies net.Error.
type timeoutError struct{}

func (timeoutError) Error() string   { return "dial tcp: i/o timeout" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return true }

func fastPolicy(attempts int) Policy {
	return Policy{
		MaxAttempts: attempts,
		BaseDelay:   time.Millisecond,
		Multiplier:  2,
	}
}

func TestClassify_StatusTable(t *testing.T) {
	tests := []struct {
		status int
		want   Category
	}{
		{401, CategoryAuth},
		{403, CategoryAuth},
		{404, CategoryNotFound},
		{400, CategoryValidation},
		{422, CategoryValidation},
		{429, CategoryRateLimited},
		{500, CategoryServerError},
		{503, CategoryServerError},
		{599, CategoryServerError},
		// Statuses outside the table are unknown.
		{418, CategoryUnknown},
		{302, CategoryUnknown},
		{100, CategoryUnknown},
	}

	for _, tt := range tests {
		f := Classify(&httpError{status: tt.status})
		assert.Equal(t, tt.want, f.Category, "status %d", tt.status)
		assert.Equal(t, tt.status, f.StatusCode)
	}
}

func TestClassify_Transport(t *testing.T) {
	f := Classify(timeoutError{})
	assert.Equal(t, CategoryTransport, f.Category)
	assert.Zero(t, f.StatusCode)
}

func TestClassify_DeadlineExceeded(t *testing.T) {
	f := Classify(context.DeadlineExceeded)
	assert.Equal(t, CategoryTransport, f.Category)
}

func TestClassify_Unknown(t *testing.T) {
	f := Classify(errors.New("boom"))
	assert.Equal(t, CategoryUnknown, f.Category)
	assert.Equal(t, "boom", f.Message)
}

func TestClassify_StatusTakesPriorityOverTransport(t *testing.T) {
	// An error that carries a status is classified by the status even
	// if it also looks like a timeout further down the chain.
	f := Classify(&httpError{status: 503})
	assert.Equal(t, CategoryServerError, f.Category)
}

func TestExecute_SuccessFirstAttempt(t *testing.T) {
	calls := 0
	out, err := Execute(context.Background(), func() (any, error) {
		calls++
		return "payload", nil
	}, fastPolicy(3))

	require.NoError(t, err)
	require.True(t, out.Succeeded())
	assert.Equal(t, "payload", out.Payload)
	assert.Equal(t, 1, calls)
}

func TestExecute_TerminalCategoriesNeverRetried(t *testing.T) {
	for _, status := range []int{400, 401, 403, 404, 422} {
		calls := 0
		out, err := Execute(context.Background(), func() (any, error) {
			calls++
			return nil, &httpError{status: status}
		}, fastPolicy(5))

		require.NoError(t, err)
		require.False(t, out.Succeeded())
		assert.Equal(t, 1, calls, "status %d must not be retried", status)
		assert.Equal(t, status, out.Failure.StatusCode)
	}
}

func TestExecute_RetryableExhaustsAllAttempts(t *testing.T) {
	for _, status := range []int{429, 500, 502} {
		calls := 0
		out, err := Execute(context.Background(), func() (any, error) {
			calls++
			return nil, &httpError{status: status}
		}, fastPolicy(3))

		require.NoError(t, err)
		require.False(t, out.Succeeded())
		assert.Equal(t, 3, calls, "status %d", status)
	}
}

func TestExecute_TransportRetried(t *testing.T) {
	calls := 0
	out, err := Execute(context.Background(), func() (any, error) {
		calls++
		return nil, timeoutError{}
	}, fastPolicy(3))

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, CategoryTransport, out.Failure.Category)
}

func TestExecute_SucceedsAfterTransientFailure(t *testing.T) {
	calls := 0
	out, err := Execute(context.Background(), func() (any, error) {
		calls++
		if calls < 3 {
			return nil, &httpError{status: 503}
		}
		return 42, nil
	}, fastPolicy(3))

	require.NoError(t, err)
	require.True(t, out.Succeeded())
	assert.Equal(t, 42, out.Payload)
	assert.Equal(t, 3, calls)
}

func TestExecute_RetryableOverride(t *testing.T) {
	// A policy that opts server errors out of retrying fails fast.
	policy := fastPolicy(5)
	policy.Retryable = map[Category]bool{CategoryRateLimited: true}

	calls := 0
	out, err := Execute(context.Background(), func() (any, error) {
		calls++
		return nil, &httpError{status: 500}
	}, policy)

	require.NoError(t, err)
	require.False(t, out.Succeeded())
	assert.Equal(t, 1, calls)
}

func TestExecute_BackoffDelaysAreExponential(t *testing.T) {
	var delays []time.Duration
	policy := Policy{
		MaxAttempts: 4,
		BaseDelay:   time.Millisecond,
		Multiplier:  2,
		OnRetry: func(_ int, delay time.Duration, _ Failure) {
			delays = append(delays, delay)
		},
	}

	_, err := Execute(context.Background(), func() (any, error) {
		return nil, &httpError{status: 500}
	}, policy)
	require.NoError(t, err)

	// Delay before attempt k is BaseDelay × Multiplier^(k-2).
	require.Equal(t, []time.Duration{
		1 * time.Millisecond,
		2 * time.Millisecond,
		4 * time.Millisecond,
	}, delays)
}

func TestExecute_RetryAfterHintUsedVerbatim(t *testing.T) {
	var delays []time.Duration
	policy := Policy{
		MaxAttempts: 2,
		BaseDelay:   time.Hour, // would hang if the hint were ignored
		Multiplier:  2,
		OnRetry: func(_ int, delay time.Duration, _ Failure) {
			delays = append(delays, delay)
		},
	}

	_, err := Execute(context.Background(), func() (any, error) {
		return nil, &httpError{status: 429, retryAfter: 5 * time.Millisecond}
	}, policy)
	require.NoError(t, err)

	require.Equal(t, []time.Duration{5 * time.Millisecond}, delays)
}

func TestExecute_CancelledDuringWait(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	policy := Policy{
		MaxAttempts: 3,
		BaseDelay:   time.Minute,
		Multiplier:  2,
		OnRetry: func(int, time.Duration, Failure) {
			cancel()
		},
	}

	_, err := Execute(ctx, func() (any, error) {
		return nil, &httpError{status: 500}
	}, policy)

	require.ErrorIs(t, err, context.Canceled)
}

func TestExitCodes(t *testing.T) {
	tests := []struct {
		category Category
		want     int
	}{
		{CategoryAuth, 2},
		{CategoryNotFound, 3},
		{CategoryValidation, 4},
		{CategoryRateLimited, 5},
		{CategoryServerError, 6},
		{CategoryTransport, 1},
		{CategoryUnknown, 1},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.category.ExitCode(), "category %s", tt.category)
	}
}

func TestFailure_Error(t *testing.T) {
	f := &Failure{Category: CategoryAuth, StatusCode: 401, Message: "bad key"}
	assert.Equal(t, "AUTH (HTTP 401): bad key", f.Error())

	f = &Failure{Category: CategoryTransport, Message: "connection refused"}
	assert.Equal(t, "TRANSPORT: connection refused", f.Error())
}
