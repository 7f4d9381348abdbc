// Package iostreamstest provides test doubles for the iostreams
// package. Command tests use New() to get non-interactive streams with
// capturable buffers.
package iostreamstest

import (
	"bytes"

	"github.com/schmitthub/ddog/internal/iostreams"
)

// TestIOStreams wraps IOStreams with accessible buffers.
type TestIOStreams struct {
	*iostreams.IOStreams
	InBuf  *bytes.Buffer
	OutBuf *bytes.Buffer
	ErrBuf *bytes.Buffer
}

// New creates IOStreams for testing: non-interactive, colors disabled.
func New() *TestIOStreams {
	in := &bytes.Buffer{}
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}

	ios := &iostreams.IOStreams{
		In:     in,
		Out:    out,
		ErrOut: errOut,
	}
	// Zero values mean non-TTY streams; pin colors off explicitly so
	// table output is byte-stable in assertions.
	ios.SetColorEnabled(false)

	return &TestIOStreams{
		IOStreams: ios,
		InBuf:     in,
		OutBuf:    out,
		ErrBuf:    errOut,
	}
}
