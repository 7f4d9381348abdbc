package cmdutil

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schmitthub/ddog/internal/iostreams"
	"github.com/schmitthub/ddog/internal/retry"
)

func testStreams() (*iostreams.IOStreams, *bytes.Buffer, *bytes.Buffer) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	ios := &iostreams.IOStreams{In: &bytes.Buffer{}, Out: out, ErrOut: errOut}
	ios.SetColorEnabled(false)
	return ios, out, errOut
}

func newFormatCmd(ff **FormatFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:  "test",
		RunE: func(*cobra.Command, []string) error { return nil },
	}
	*ff = AddFormatFlags(cmd)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	return cmd
}

func TestAddFormatFlags(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantJSON bool
		wantErr  bool
	}{
		{name: "default", args: nil},
		{name: "table", args: []string{"--format", "table"}},
		{name: "json", args: []string{"--format", "json"}, wantJSON: true},
		{name: "json shorthand", args: []string{"--json"}, wantJSON: true},
		{name: "invalid", args: []string{"--format", "xml"}, wantErr: true},
		{name: "conflicting", args: []string{"--format", "table", "--json"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ff *FormatFlags
			cmd := newFormatCmd(&ff)
			cmd.SetArgs(tt.args)

			err := cmd.Execute()
			if tt.wantErr {
				var flagErr *FlagError
				require.ErrorAs(t, err, &flagErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantJSON, ff.IsJSON())
		})
	}
}

func TestReadJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "monitor.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"name": "cpu", "priority": 3}`), 0o600))

	var data map[string]any
	require.NoError(t, ReadJSONFile(path, nil, &data))
	assert.Equal(t, "cpu", data["name"])
	assert.Equal(t, json.Number("3"), data["priority"])
}

func TestReadJSONFile_Stdin(t *testing.T) {
	stdin := bytes.NewBufferString(`{"name": "piped"}`)

	var data map[string]any
	require.NoError(t, ReadJSONFile("-", stdin, &data))
	assert.Equal(t, "piped", data["name"])
}

func TestReadJSONFile_Errors(t *testing.T) {
	var data map[string]any

	err := ReadJSONFile(filepath.Join(t.TempDir(), "missing.json"), nil, &data)
	var flagErr *FlagError
	require.ErrorAs(t, err, &flagErr)

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0o600))
	err = ReadJSONFile(path, nil, &data)
	require.ErrorAs(t, err, &flagErr)
}

func TestConfirm_FlagSkipsPrompt(t *testing.T) {
	ios, _, _ := testStreams()
	ok, err := Confirm(ios, "Delete monitor 1?", true)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestConfirm_NonInteractiveFails(t *testing.T) {
	ios, _, _ := testStreams()
	_, err := Confirm(ios, "Delete monitor 1?", false)
	var flagErr *FlagError
	require.ErrorAs(t, err, &flagErr)
}

type statusErr struct{ status int }

func (e *statusErr) Error() string       { return "api failure" }
func (e *statusErr) HTTPStatusCode() int { return e.status }

func TestCallAPI_ReturnsTypedPayload(t *testing.T) {
	ios, _, _ := testStreams()

	got, err := CallAPI(context.Background(), ios, retry.DefaultPolicy(), "fetching", func() ([]string, error) {
		return []string{"a", "b"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, got)
}

func TestCallAPI_NilInterfacePayloadRejected(t *testing.T) {
	ios, _, _ := testStreams()

	// An untyped nil payload cannot satisfy the assertion back to the
	// interface type; that must surface as an error, not a silent zero.
	_, err := CallAPI(context.Background(), ios, retry.DefaultPolicy(), "fetching", func() (io.Reader, error) {
		return nil, nil
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected payload type")
}

func TestCallAPI_FailureSurfacesClassification(t *testing.T) {
	ios, _, _ := testStreams()

	_, err := CallAPI(context.Background(), ios, retry.DefaultPolicy(), "fetching", func() ([]string, error) {
		return nil, &statusErr{status: 404}
	})

	var f *retry.Failure
	require.ErrorAs(t, err, &f)
	assert.Equal(t, retry.CategoryNotFound, f.Category)
}

func TestCallAPI_RetryNoticePrinted(t *testing.T) {
	ios, _, errOut := testStreams()
	policy := retry.Policy{MaxAttempts: 2, BaseDelay: time.Millisecond, Multiplier: 2}

	_, err := CallAPI(context.Background(), ios, policy, "fetching", func() ([]string, error) {
		return nil, &statusErr{status: 500}
	})

	var f *retry.Failure
	require.ErrorAs(t, err, &f)
	assert.Contains(t, errOut.String(), "Retrying (1/2)")
}

func TestHandleFailure_JSONMode(t *testing.T) {
	ios, _, errOut := testStreams()
	ff := &FormatFlags{Format: ModeJSON}
	failure := &retry.Failure{Category: retry.CategoryValidation, StatusCode: 400, Message: "bad query"}

	err := HandleFailure(ios, ff, failure)

	require.True(t, errors.Is(err, SilentError))
	var f *retry.Failure
	require.ErrorAs(t, err, &f)
	assert.Equal(t, retry.CategoryValidation, f.Category)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(errOut.Bytes(), &payload))
	assert.Equal(t, "VALIDATION", payload["category"])
	assert.Equal(t, float64(400), payload["http_status"])
	assert.Equal(t, "bad query", payload["message"])
}

func TestHandleFailure_TableModePassesThrough(t *testing.T) {
	ios, _, errOut := testStreams()
	ff := &FormatFlags{}
	failure := &retry.Failure{Category: retry.CategoryAuth, StatusCode: 401, Message: "nope"}

	err := HandleFailure(ios, ff, failure)
	assert.Equal(t, failure, err)
	assert.Empty(t, errOut.String())
}
