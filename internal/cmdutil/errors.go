package cmdutil

import (
	"errors"
	"fmt"
)

// ExitError carries an explicit exit status. Commands return this
// instead of calling os.Exit() directly so deferred cleanup runs; the
// root Main() handles the actual exit.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// FlagError indicates bad flags or arguments. When Main() encounters
// this error type, it prints the message followed by a usage hint.
type FlagError struct {
	err error
}

func (e *FlagError) Error() string { return e.err.Error() }
func (e *FlagError) Unwrap() error { return e.err }

// FlagErrorf creates a FlagError with a formatted message.
func FlagErrorf(format string, args ...any) error {
	return &FlagError{err: fmt.Errorf(format, args...)}
}

// FlagErrorWrap wraps an existing error as a FlagError.
func FlagErrorWrap(err error) error {
	return &FlagError{err: err}
}

// SilentError signals that the error has already been displayed to the
// user. Main() exits non-zero without printing anything additional.
var SilentError = errors.New("SilentError")
