package monitor

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/shlex"
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
		Now:         func() time.Time { return time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC) },
	}

	if handler != nil {
		srv := httptest.NewServer(handler)
		t.Cleanup(srv.Close)
		client := api.NewClient(api.Config{APIKey: "k", AppKey: "a", BaseURL: srv.URL})
		f.Client = func() (*api.Client, error) { return client, nil }
	}

	return f, ios
}

func TestNewCmdList_Flags(t *testing.T) {
	tests := []struct {
		name    string
		cli     string
		want    ListOptions
		wantErr string
	}{
		{
			name: "defaults",
			cli:  "",
			want: ListOptions{Interval: 30},
		},
		{
			name: "filters",
			cli:  "--tags env:prod,team:core --state Alert --state Warn",
			want: ListOptions{Tags: "env:prod,team:core", States: []string{"Alert", "Warn"}, Interval: 30},
		},
		{
			name: "watch",
			cli:  "--watch --interval 5",
			want: ListOptions{Watch: true, Interval: 5},
		},
		{
			name:    "bad state",
			cli:     "--state Critical",
			wantErr: `invalid state "Critical"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, _ := testFactory(t, nil)

			var gotOpts *ListOptions
			cmd := NewCmdList(f, func(_ context.Context, opts *ListOptions) error {
				gotOpts = opts
				return nil
			})

			argv, err := shlex.Split(tt.cli)
			require.NoError(t, err)
			cmd.SetArgs(argv)
			cmd.SetOut(iostreamstest.New().OutBuf)
			cmd.SetErr(iostreamstest.New().ErrBuf)

			_, err = cmd.ExecuteC()
			if tt.wantErr != "" {
				require.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want.Tags, gotOpts.Tags)
			assert.Equal(t, tt.want.States, gotOpts.States)
			assert.Equal(t, tt.want.Watch, gotOpts.Watch)
			assert.Equal(t, tt.want.Interval, gotOpts.Interval)
		})
	}
}

func TestListRun_Table(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/monitor", r.URL.Path)
		json.NewEncoder(w).Encode([]api.Monitor{
			{ID: 1, Name: "High CPU", OverallState: "Alert", Tags: []string{"env:prod"}},
			{ID: 2, Name: "Low disk", OverallState: "OK"},
		})
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
	assert.Contains(t, out, "High CPU")
	assert.Contains(t, out, "Alert")
	assert.Contains(t, ios.ErrBuf.String(), "Total monitors: 2")
}

func TestListRun_StateFilterAndQuiet(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]api.Monitor{
			{ID: 1, Name: "a", OverallState: "Alert"},
			{ID: 2, Name: "b", OverallState: "OK"},
			{ID: 3, Name: "c", OverallState: "Alert"},
		})
	})
	f, ios := testFactory(t, handler)

	opts := &ListOptions{
		IOStreams: f.IOStreams,
		Client:    f.Client,
		Policy:    f.RetryPolicy,
		Format:    &cmdutil.FormatFlags{Quiet: true},
		States:    []string{"Alert"},
	}

	require.NoError(t, listRun(context.Background(), opts))
	assert.Equal(t, "1\n3\n", ios.OutBuf.String())
}

func TestGetRun_JSON(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/monitor/42", r.URL.Path)
		json.NewEncoder(w).Encode(api.Monitor{ID: 42, Name: "High CPU", Query: "avg(last_5m):..."})
	})
	f, ios := testFactory(t, handler)

	opts := &GetOptions{
		IOStreams: f.IOStreams,
		Client:    f.Client,
		Policy:    f.RetryPolicy,
		Format:    &cmdutil.FormatFlags{Format: cmdutil.ModeJSON},
		ID:        42,
	}

	require.NoError(t, getRun(context.Background(), opts))

	var got api.Monitor
	require.NoError(t, json.Unmarshal(ios.OutBuf.Bytes(), &got))
	assert.Equal(t, int64(42), got.ID)
	assert.Equal(t, "High CPU", got.Name)
}

func TestGetRun_NotFound(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"errors": ["Monitor not found"]}`))
	})
	f, _ := testFactory(t, handler)

	opts := &GetOptions{
		IOStreams: f.IOStreams,
		Client:    f.Client,
		Policy:    f.RetryPolicy,
		Format:    &cmdutil.FormatFlags{},
		ID:        999,
	}

	err := getRun(context.Background(), opts)
	var failure *retry.Failure
	require.ErrorAs(t, err, &failure)
	assert.Equal(t, retry.CategoryNotFound, failure.Category)
	assert.Equal(t, retry.ExitNotFound, failure.Category.ExitCode())
}

func TestCreateRun_FromFlags(t *testing.T) {
	var received api.Monitor
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/monitor", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		received.ID = 7
		json.NewEncoder(w).Encode(received)
	})
	f, ios := testFactory(t, handler)

	opts := &CreateOptions{
		IOStreams: f.IOStreams,
		Client:    f.Client,
		Policy:    f.RetryPolicy,
		Format:    &cmdutil.FormatFlags{},
		Name:      "High CPU",
		Type:      "metric alert",
		Query:     "avg(last_5m):avg:system.cpu.user{env:prod} > 90",
		Tags:      "env:prod, team:core",
		Priority:  2,
	}

	require.NoError(t, createRun(context.Background(), opts))
	assert.Equal(t, "High CPU", received.Name)
	assert.Equal(t, []string{"env:prod", "team:core"}, received.Tags)
	require.NotNil(t, received.Priority)
	assert.Equal(t, 2, *received.Priority)
	assert.Contains(t, ios.OutBuf.String(), "Created monitor 7")
}

func TestNewCmdCreate_RequiresDefinition(t *testing.T) {
	f, _ := testFactory(t, nil)
	cmd := NewCmdCreate(f, nil)
	cmd.SetArgs([]string{"--name", "only a name"})
	cmd.SetOut(iostreamstest.New().OutBuf)
	cmd.SetErr(iostreamstest.New().ErrBuf)

	_, err := cmd.ExecuteC()
	var flagErr *cmdutil.FlagError
	require.ErrorAs(t, err, &flagErr)
}

func TestDeleteRun_Confirmed(t *testing.T) {
	deleted := false
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/v1/monitor/5", r.URL.Path)
		deleted = true
		w.Write([]byte(`{"deleted_monitor_id": 5}`))
	})
	f, ios := testFactory(t, handler)

	opts := &DeleteOptions{
		IOStreams: f.IOStreams,
		Client:    f.Client,
		Policy:    f.RetryPolicy,
		Format:    &cmdutil.FormatFlags{},
		ID:        5,
		Confirmed: true,
	}

	require.NoError(t, deleteRun(context.Background(), opts))
	assert.True(t, deleted)
	assert.Contains(t, ios.OutBuf.String(), "Deleted monitor 5")
}

func TestDeleteRun_RefusesWithoutConfirm(t *testing.T) {
	f, _ := testFactory(t, nil)

	opts := &DeleteOptions{
		IOStreams: f.IOStreams,
		Client:    f.Client,
		Policy:    f.RetryPolicy,
		Format:    &cmdutil.FormatFlags{},
		ID:        5,
	}

	err := deleteRun(context.Background(), opts)
	var flagErr *cmdutil.FlagError
	require.ErrorAs(t, err, &flagErr)
}

func TestMuteRun_UntilDuration(t *testing.T) {
	var body struct {
		Scope string `json:"scope"`
		End   int64  `json:"end"`
	}
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/monitor/9/mute", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		json.NewEncoder(w).Encode(api.Monitor{ID: 9})
	})
	f, ios := testFactory(t, handler)

	now := time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)
	opts := &MuteOptions{
		IOStreams: f.IOStreams,
		Client:    f.Client,
		Policy:    f.RetryPolicy,
		Now:       func() time.Time { return now },
		Format:    &cmdutil.FormatFlags{},
		ID:        9,
		Scope:     "host:web-01",
		Until:     "2h",
	}

	require.NoError(t, muteRun(context.Background(), opts))
	assert.Equal(t, "host:web-01", body.Scope)
	assert.Equal(t, now.Add(2*time.Hour).Unix(), body.End)
	assert.Contains(t, ios.OutBuf.String(), "Muted monitor 9 for scope host:web-01")
}

func TestMuteRun_BadUntil(t *testing.T) {
	f, _ := testFactory(t, nil)

	opts := &MuteOptions{
		IOStreams: f.IOStreams,
		Client:    f.Client,
		Policy:    f.RetryPolicy,
		Now:       time.Now,
		Format:    &cmdutil.FormatFlags{},
		ID:        9,
		Until:     "2H",
	}

	err := muteRun(context.Background(), opts)
	var flagErr *cmdutil.FlagError
	require.ErrorAs(t, err, &flagErr)
}

func TestMuteAllRun(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/monitor/mute_all", r.URL.Path)
		w.Write([]byte(`{"id": 314}`))
	})
	f, ios := testFactory(t, handler)

	opts := &MuteAllOptions{
		IOStreams: f.IOStreams,
		Client:    f.Client,
		Policy:    f.RetryPolicy,
		Format:    &cmdutil.FormatFlags{},
		Confirmed: true,
	}

	require.NoError(t, muteAllRun(context.Background(), opts))
	assert.Contains(t, ios.OutBuf.String(), "downtime 314")
}

func TestBuildMonitorRows(t *testing.T) {
	rows := buildMonitorRows([]api.Monitor{
		{ID: 1, Name: "a", OverallState: "Alert", Tags: []string{"t1", "t2", "t3", "t4", "t5"}},
		{ID: 2, Name: "b"},
	})

	require.Len(t, rows, 2)
	assert.Equal(t, "Alert", rows[0].State)
	assert.Contains(t, rows[0].Tags, "+2 more")
	assert.Equal(t, "Unknown", rows[1].State)
}

func TestParseMonitorID(t *testing.T) {
	id, err := parseMonitorID("12345")
	require.NoError(t, err)
	assert.Equal(t, int64(12345), id)

	_, err = parseMonitorID("abc")
	var flagErr *cmdutil.FlagError
	require.ErrorAs(t, err, &flagErr)
}
