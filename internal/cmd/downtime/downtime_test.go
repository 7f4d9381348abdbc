package downtime

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

var testNow = time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)

func testFactory(t *testing.T, handler http.Handler) (*cmdutil.Factory, *iostreamstest.TestIOStreams) {
	t.Helper()

	ios := iostreamstest.New()
	f := &cmdutil.Factory{
		IOStreams:   ios.IOStreams,
		RetryPolicy: func() retry.Policy { return retry.Policy{MaxAttempts: 1, BaseDelay: time.Millisecond, Multiplier: 2} },
		Now:         func() time.Time { return testNow },
	}

	if handler != nil {
		srv := httptest.NewServer(handler)
		t.Cleanup(srv.Close)
		client := api.NewClient(api.Config{APIKey: "k", AppKey: "a", BaseURL: srv.URL})
		f.Client = func() (*api.Client, error) { return client, nil }
	}

	return f, ios
}

func TestListRun_CurrentOnly(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/downtime", r.URL.Path)
		assert.Equal(t, "true", r.URL.Query().Get("current_only"))
		json.NewEncoder(w).Encode([]api.Downtime{
			{ID: 1, Active: true, Scope: []string{"env:prod"}, Start: testNow.Unix()},
		})
	})
	f, ios := testFactory(t, handler)

	opts := &ListOptions{
		IOStreams:   f.IOStreams,
		Client:      f.Client,
		Policy:      f.RetryPolicy,
		Format:      &cmdutil.FormatFlags{},
		CurrentOnly: true,
	}

	require.NoError(t, listRun(context.Background(), opts))
	assert.Contains(t, ios.OutBuf.String(), "env:prod")
	assert.Contains(t, ios.ErrBuf.String(), "Total downtimes: 1")
}

func TestCreateRun_RelativeEnd(t *testing.T) {
	var received api.Downtime
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		received.ID = 55
		json.NewEncoder(w).Encode(received)
	})
	f, ios := testFactory(t, handler)

	opts := &CreateOptions{
		IOStreams: f.IOStreams,
		Client:    f.Client,
		Policy:    f.RetryPolicy,
		Now:       f.Now,
		Format:    &cmdutil.FormatFlags{},
		Scope:     []string{"env:prod"},
		End:       "2h",
		Message:   "maintenance",
	}

	require.NoError(t, createRun(context.Background(), opts))
	assert.Equal(t, []string{"env:prod"}, received.Scope)
	assert.Equal(t, testNow.Add(2*time.Hour).Unix(), received.End)
	assert.Contains(t, ios.OutBuf.String(), "Scheduled downtime 55")
}

func TestCreateOptions_StartAfterEnd(t *testing.T) {
	opts := &CreateOptions{
		Now:   func() time.Time { return testNow },
		Scope: []string{"env:prod"},
		Start: "2026-03-02T00:00:00Z",
		End:   "2026-03-01T00:00:00Z",
	}

	_, err := opts.downtimeBody()
	var flagErr *cmdutil.FlagError
	require.ErrorAs(t, err, &flagErr)
}

func TestCancelRun(t *testing.T) {
	cancelled := false
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/v1/downtime/9", r.URL.Path)
		cancelled = true
		w.WriteHeader(http.StatusOK)
	})
	f, ios := testFactory(t, handler)

	opts := &CancelOptions{
		IOStreams: f.IOStreams,
		Client:    f.Client,
		Policy:    f.RetryPolicy,
		Format:    &cmdutil.FormatFlags{},
		ID:        9,
		Confirmed: true,
	}

	require.NoError(t, cancelRun(context.Background(), opts))
	assert.True(t, cancelled)
	assert.Contains(t, ios.OutBuf.String(), "Cancelled downtime 9")
}

func TestCancelScopeRun(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/downtime/cancel/by_scope", r.URL.Path)
		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "env:staging", req["scope"])
		json.NewEncoder(w).Encode(map[string][]int64{"cancelled_ids": {4, 8}})
	})
	f, ios := testFactory(t, handler)

	opts := &CancelScopeOptions{
		IOStreams: f.IOStreams,
		Client:    f.Client,
		Policy:    f.RetryPolicy,
		Format:    &cmdutil.FormatFlags{},
		Scope:     "env:staging",
		Confirmed: true,
	}

	require.NoError(t, cancelScopeRun(context.Background(), opts))
	assert.Contains(t, ios.OutBuf.String(), "Cancelled 2 downtimes")
}

func TestFormatEpoch(t *testing.T) {
	assert.Equal(t, "-", formatEpoch(0))
	assert.Equal(t, "2026-02-10 12:00", formatEpoch(testNow.Unix()))
}
