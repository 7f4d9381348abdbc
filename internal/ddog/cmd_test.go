package ddog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/schmitthub/ddog/internal/cmdutil"
	"github.com/schmitthub/ddog/internal/iostreams/iostreamstest"
	"github.com/schmitthub/ddog/internal/retry"
)

func testFactory() (*cmdutil.Factory, *iostreamstest.TestIOStreams) {
	streams := iostreamstest.New()
	return &cmdutil.Factory{IOStreams: streams.IOStreams}, streams
}

func TestHandleError_Canceled(t *testing.T) {
	f, streams := testFactory()
	code := handleError(f, nil, context.Canceled)
	assert.Equal(t, 130, code)
	assert.Empty(t, streams.ErrBuf.String())
}

func TestHandleError_ExitError(t *testing.T) {
	f, _ := testFactory()
	code := handleError(f, nil, &cmdutil.ExitError{Code: 7})
	assert.Equal(t, 7, code)
}

func TestHandleError_Failure(t *testing.T) {
	f, streams := testFactory()
	failure := &retry.Failure{
		Category: retry.CategoryNotFound,
		Message:  "monitor 123 not found",
	}
	code := handleError(f, nil, failure)
	assert.Equal(t, retry.CategoryNotFound.ExitCode(), code)
	assert.Contains(t, streams.ErrBuf.String(), "monitor 123 not found")
}

func TestHandleError_SilentFailure(t *testing.T) {
	f, streams := testFactory()
	failure := &retry.Failure{Category: retry.CategoryRateLimited, Message: "rate limited"}
	err := errors.Join(cmdutil.SilentError, failure)
	code := handleError(f, nil, err)
	assert.Equal(t, retry.CategoryRateLimited.ExitCode(), code)
	assert.Empty(t, streams.ErrBuf.String(), "silent failures are already rendered")
}

func TestHandleError_Generic(t *testing.T) {
	f, streams := testFactory()
	code := handleError(f, nil, errors.New("boom"))
	assert.Equal(t, exitError, code)
	assert.Contains(t, streams.ErrBuf.String(), "boom")
}
