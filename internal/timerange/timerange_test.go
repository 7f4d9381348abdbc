package timerange

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)

func TestResolve_RelativeFromNowTo(t *testing.T) {
	tests := []struct {
		expr string
		want int64 // seconds before now
	}{
		{"1m", 60},
		{"30m", 1800},
		{"1h", 3600},
		{"24h", 86400},
		{"1d", 86400},
		{"7d", 604800},
		{"1w", 604800},
		{"2w", 1209600},
	}

	for _, tt := range tests {
		r, err := Resolve(tt.expr, "now", testNow)
		require.NoError(t, err, tt.expr)
		assert.Equal(t, testNow.Unix()-tt.want, r.From, tt.expr)
		assert.Equal(t, testNow.Unix(), r.To, tt.expr)
	}
}

func TestResolve_ZeroWidthWindow(t *testing.T) {
	r, err := Resolve("0m", "now", testNow)
	require.NoError(t, err)
	assert.Equal(t, testNow.Unix(), r.From)
	assert.Equal(t, testNow.Unix(), r.To)
}

func TestResolve_LeadingZeros(t *testing.T) {
	r, err := Resolve("007h", "now", testNow)
	require.NoError(t, err)
	assert.Equal(t, testNow.Unix()-7*3600, r.From)
}

func TestResolve_DateOnlyIsMidnightUTC(t *testing.T) {
	r, err := Resolve("2026-02-09", "now", testNow)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 2, 9, 0, 0, 0, 0, time.UTC).Unix(), r.From)
}

func TestResolve_AbsoluteDatetime(t *testing.T) {
	r, err := Resolve("2026-02-10T10:00:00Z", "2026-02-10T11:00:00+01:00", testNow)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 2, 10, 10, 0, 0, 0, time.UTC).Unix(), r.From)
	assert.Equal(t, r.From, r.To)
}

func TestResolve_NaiveDatetimeRejected(t *testing.T) {
	_, err := Resolve("2026-02-10T10:00:00", "now", testNow)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "2026-02-10T10:00:00", perr.Expr)
}

func TestResolve_ParseErrors(t *testing.T) {
	bad := []string{
		"1H",   // uppercase unit
		"1D",   // uppercase unit
		"1 h",  // space
		"1.5h", // decimal
		"-1h",  // sign
		"h",    // no quantity
		"10",   // no unit
		"10y",  // unsupported unit
		"soon",
		"",
	}

	for _, expr := range bad {
		_, err := Resolve(expr, "now", testNow)
		var perr *ParseError
		require.ErrorAs(t, err, &perr, "expr %q", expr)
	}
}

func TestResolve_FromAfterToIsRangeError(t *testing.T) {
	// Both sides resolve independently from now, so from=1d is later
	// than to=2d.
	_, err := Resolve("1d", "2d", testNow)
	var rerr *RangeError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, testNow.Unix()-86400, rerr.From)
	assert.Equal(t, testNow.Unix()-2*86400, rerr.To)
}

func TestResolve_TwoRelativeExpressionsValidDirection(t *testing.T) {
	// from=2d to=1d yields a window covering the day before yesterday
	// up to yesterday.
	r, err := Resolve("2d", "1d", testNow)
	require.NoError(t, err)
	assert.Equal(t, testNow.Unix()-2*86400, r.From)
	assert.Equal(t, testNow.Unix()-86400, r.To)
}

func TestUntil(t *testing.T) {
	got, err := Until("2h", testNow)
	require.NoError(t, err)
	assert.Equal(t, testNow.Unix()+2*3600, got)

	got, err = Until("2026-02-11T00:00:00Z", testNow)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 2, 11, 0, 0, 0, 0, time.UTC).Unix(), got)

	_, err = Until("2H", testNow)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
}

func TestRange_TimeAccessors(t *testing.T) {
	r := Range{From: testNow.Unix() - 60, To: testNow.Unix()}
	assert.Equal(t, testNow.Add(-time.Minute), r.FromTime())
	assert.Equal(t, testNow, r.ToTime())
}
