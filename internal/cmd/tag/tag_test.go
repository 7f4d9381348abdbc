package tag

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schmitthub/ddog/internal/api"
	"github.com/schmitthub/ddog/internal/cmdutil"
	"github.com/schmitthub/ddog/internal/iostreams/iostreamstest"
	"github.com/schmitthub/ddog/internal/retry"
)

func testFactory(t *testing.T, handler http.Handler) (*cmdutil.Factory, *iostreamstest.TestIOStreams) {
	t.Helper()

	ios := iostreamstest.New()
	f := &cmdutil.Factory{
		IOStreams:   ios.IOStreams,
		RetryPolicy: func() retry.Policy { return retry.Policy{MaxAttempts: 1, BaseDelay: time.Millisecond, Multiplier: 2} },
	}

	if handler != nil {
		srv := httptest.NewServer(handler)
		t.Cleanup(srv.Close)
		client := api.NewClient(api.Config{APIKey: "k", AppKey: "a", BaseURL: srv.URL})
		f.Client = func() (*api.Client, error) { return client, nil }
	}

	return f, ios
}

func TestListRun_AllTags(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/tags/hosts", r.URL.Path)
		w.Write([]byte(`{"tags": {"env:prod": ["web-01", "web-02"], "env:staging": ["stg-01"]}}`))
	})
	f, ios := testFactory(t, handler)

	opts := &ListOptions{
		IOStreams: f.IOStreams,
		Client:    f.Client,
		Policy:    f.RetryPolicy,
		Format:    &cmdutil.FormatFlags{},
	}

	require.NoError(t, listRun(context.Background(), opts))
	out := ios.OutBuf.String()
	assert.Contains(t, out, "env:prod")
	assert.Contains(t, out, "2")
}

func TestListRun_HostTags(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/tags/hosts/web-01", r.URL.Path)
		assert.Equal(t, "user", r.URL.Query().Get("source"))
		w.Write([]byte(`{"host": "web-01", "tags": ["env:prod", "team:core"]}`))
	})
	f, ios := testFactory(t, handler)

	opts := &ListOptions{
		IOStreams: f.IOStreams,
		Client:    f.Client,
		Policy:    f.RetryPolicy,
		Format:    &cmdutil.FormatFlags{},
		Hostname:  "web-01",
		Source:    "user",
	}

	require.NoError(t, listRun(context.Background(), opts))
	assert.Equal(t, "env:prod\nteam:core\n", ios.OutBuf.String())
}

func TestAddRun(t *testing.T) {
	var body struct {
		Tags []string `json:"tags"`
	}
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/tags/hosts/web-01", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		json.NewEncoder(w).Encode(map[string]any{"host": "web-01", "tags": body.Tags})
	})
	f, ios := testFactory(t, handler)

	opts := &MutateOptions{
		IOStreams: f.IOStreams,
		Client:    f.Client,
		Policy:    f.RetryPolicy,
		Format:    &cmdutil.FormatFlags{},
		Hostname:  "web-01",
		Tags:      []string{"env:prod", "team:core"},
	}

	require.NoError(t, addRun(context.Background(), opts))
	assert.Equal(t, []string{"env:prod", "team:core"}, body.Tags)
	assert.Contains(t, ios.OutBuf.String(), "Added 2 tags to web-01")
}

func TestNewCmdAdd_ParsesArgs(t *testing.T) {
	f, _ := testFactory(t, nil)

	var gotOpts *MutateOptions
	cmd := NewCmdAdd(f, func(_ context.Context, opts *MutateOptions) error {
		gotOpts = opts
		return nil
	})
	cmd.SetArgs([]string{"web-01", "env:prod", "team:core"})
	cmd.SetOut(iostreamstest.New().OutBuf)
	cmd.SetErr(iostreamstest.New().ErrBuf)

	_, err := cmd.ExecuteC()
	require.NoError(t, err)
	assert.Equal(t, "web-01", gotOpts.Hostname)
	assert.Equal(t, []string{"env:prod", "team:core"}, gotOpts.Tags)
}

func TestDetachRun_Confirmed(t *testing.T) {
	deleted := false
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		deleted = true
		w.WriteHeader(http.StatusNoContent)
	})
	f, ios := testFactory(t, handler)

	opts := &DetachOptions{
		IOStreams: f.IOStreams,
		Client:    f.Client,
		Policy:    f.RetryPolicy,
		Format:    &cmdutil.FormatFlags{},
		Hostname:  "web-01",
		Confirmed: true,
	}

	require.NoError(t, detachRun(context.Background(), opts))
	assert.True(t, deleted)
	assert.Contains(t, ios.OutBuf.String(), "Detached all tags from web-01")
}
