package investigate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schmitthub/ddog/internal/api"
	"github.com/schmitthub/ddog/internal/cmdutil"
	"github.com/schmitthub/ddog/internal/config"
	"github.com/schmitthub/ddog/internal/iostreams/iostreamstest"
	"github.com/schmitthub/ddog/internal/retry"
	"github.com/schmitthub/ddog/internal/timerange"
)

var testNow = time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)

func testFactory(t *testing.T, handler http.Handler) (*cmdutil.Factory, *iostreamstest.TestIOStreams) {
	t.Helper()

	ios := iostreamstest.New()
	f := &cmdutil.Factory{
		IOStreams:   ios.IOStreams,
		Config:      func() (*config.Config, error) { return &config.Config{DefaultTimeRange: "1h"}, nil },
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

// metricHandler serves /api/v1/query with a flat series whose value
// depends on the requested window: current window gets currentVal,
// anything earlier gets previousVal.
func metricHandler(t *testing.T, boundary int64, currentVal, previousVal float64) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/query", r.URL.Path)
		from, err := strconv.ParseInt(r.URL.Query().Get("from"), 10, 64)
		require.NoError(t, err)

		val := currentVal
		if from < boundary {
			val = previousVal
		}
		json.NewEncoder(w).Encode(api.MetricQueryResponse{
			Series: []api.MetricSeries{{
				Metric:    "test.metric",
				Pointlist: [][2]float64{{1, val}, {2, val}},
			}},
		})
	})
}

func TestCompareRun(t *testing.T) {
	boundary := testNow.Add(-time.Hour).Unix()
	f, ios := testFactory(t, metricHandler(t, boundary, 200, 100))

	opts := &CompareOptions{
		IOStreams: f.IOStreams,
		Client:    f.Client,
		Config:    f.Config,
		Policy:    f.RetryPolicy,
		Now:       f.Now,
		Format:    &cmdutil.FormatFlags{Format: cmdutil.ModeJSON},
		Range:     &cmdutil.RangeFlags{To: "now"},
		Query:     "avg:test.metric{*}",
	}

	require.NoError(t, compareRun(context.Background(), opts))

	var got comparison
	require.NoError(t, json.Unmarshal(ios.OutBuf.Bytes(), &got))
	assert.Equal(t, 200.0, got.Current)
	assert.Equal(t, 100.0, got.Previous)
	assert.Equal(t, 100.0, got.ChangePercent)
}

func TestLatencyRun_ThreePercentiles(t *testing.T) {
	boundary := testNow.Add(-time.Hour).Unix()
	f, ios := testFactory(t, metricHandler(t, boundary, 0.250, 0.200))

	opts := &ServiceOptions{
		IOStreams: f.IOStreams,
		Client:    f.Client,
		Config:    f.Config,
		Policy:    f.RetryPolicy,
		Now:       f.Now,
		Format:    &cmdutil.FormatFlags{Format: cmdutil.ModeJSON},
		Range:     &cmdutil.RangeFlags{To: "now"},
		Service:   "web",
	}

	require.NoError(t, latencyRun(context.Background(), opts))

	var got map[string]comparison
	require.NoError(t, json.Unmarshal(ios.OutBuf.Bytes(), &got))
	require.Len(t, got, 3)
	for _, label := range []string{"p50", "p95", "p99"} {
		assert.InDelta(t, 0.250, got[label].Current, 1e-9, label)
	}
}

func TestErrorsRun_IncludesLogs(t *testing.T) {
	boundary := testNow.Add(-time.Hour).Unix()
	metrics := metricHandler(t, boundary, 5, 1)
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/v2/logs/events/search" {
			json.NewEncoder(w).Encode(map[string]any{
				"data": []api.LogEvent{{ID: "e1", Attributes: api.LogAttributes{
					Timestamp: "2026-02-10T11:59:00Z", Message: "connection refused",
				}}},
				"meta": map[string]any{"page": map[string]any{}},
			})
			return
		}
		metrics.ServeHTTP(w, r)
	})
	f, ios := testFactory(t, handler)

	opts := &ServiceOptions{
		IOStreams: f.IOStreams,
		Client:    f.Client,
		Config:    f.Config,
		Policy:    f.RetryPolicy,
		Now:       f.Now,
		Format:    &cmdutil.FormatFlags{},
		Range:     &cmdutil.RangeFlags{To: "now"},
		Service:   "web",
	}

	require.NoError(t, errorsRun(context.Background(), opts))
	out := ios.OutBuf.String()
	assert.Contains(t, out, "errors/s")
	assert.Contains(t, out, "connection refused")
}

func TestPreviousWindow(t *testing.T) {
	w := timerange.Range{From: 1000, To: 1600}
	prev := previousWindow(w)
	assert.Equal(t, int64(400), prev.From)
	assert.Equal(t, int64(1000), prev.To)
}

func TestScope(t *testing.T) {
	opts := &ServiceOptions{Service: "web"}
	assert.Equal(t, "service:web", opts.scope())

	opts.Env = "prod"
	assert.Equal(t, "service:web,env:prod", opts.scope())
}
