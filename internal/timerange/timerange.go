// Package timerange resolves user-supplied time expressions into
// concrete [from, to] epoch-second pairs used to bound queries.
//
// Three expression forms are recognized:
//
//   - relative: "30m", "2h", "7d", "1w" — N units before now
//   - the literal "now"
//   - absolute ISO-8601: "2026-02-10" (midnight UTC) or a datetime
//     with an explicit offset, e.g. "2026-02-10T10:00:00Z"
//
// A datetime without a zone designator is rejected as ambiguous.
package timerange

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// relativePattern matches digits followed by exactly one lowercase
// unit letter. No spaces, decimals, or signs.
var relativePattern = regexp.MustCompile(`^(\d+)(m|h|d|w)$`)

var unitSeconds = map[string]int64{
	"m": 60,
	"h": 3600,
	"d": 86400,
	"w": 604800,
}

// Range is a resolved query bound in epoch seconds, From ≤ To.
type Range struct {
	From int64 `json:"from"`
	To   int64 `json:"to"`
}

// FromTime returns the lower bound as a time.Time in UTC.
func (r Range) FromTime() time.Time { return time.Unix(r.From, 0).UTC() }

// ToTime returns the upper bound as a time.Time in UTC.
func (r Range) ToTime() time.Time { return time.Unix(r.To, 0).UTC() }

// ParseError reports an expression that is neither a recognized
// relative pattern, the literal "now", nor a valid absolute timestamp.
type ParseError struct {
	Expr string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid time expression %q (expected e.g. \"15m\", \"2h\", \"7d\", \"now\", or an ISO-8601 timestamp)", e.Expr)
}

// RangeError reports a resolved range whose lower bound is after its
// upper bound.
type RangeError struct {
	From int64
	To   int64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("time range starts after it ends (from=%s, to=%s)",
		time.Unix(e.From, 0).UTC().Format(time.RFC3339),
		time.Unix(e.To, 0).UTC().Format(time.RFC3339))
}

// Resolve converts a from/to expression pair into a Range. Both sides
// are resolved independently; relative expressions always mean "N
// units before now" on either side.
func Resolve(fromExpr, toExpr string, now time.Time) (Range, error) {
	from, err := Parse(fromExpr, now)
	if err != nil {
		return Range{}, err
	}
	to, err := Parse(toExpr, now)
	if err != nil {
		return Range{}, err
	}
	if from > to {
		return Range{}, &RangeError{From: from, To: to}
	}
	return Range{From: from, To: to}, nil
}

// Parse resolves a single time expression to epoch seconds.
func Parse(expr string, now time.Time) (int64, error) {
	if expr == "now" {
		return now.Unix(), nil
	}

	if m := relativePattern.FindStringSubmatch(expr); m != nil {
		// Leading zeros are fine; ParseInt handles "007".
		qty, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			return 0, &ParseError{Expr: expr}
		}
		return now.Unix() - qty*unitSeconds[m[2]], nil
	}

	// Date-only input resolves to midnight UTC of that date.
	if t, err := time.ParseInLocation("2006-01-02", expr, time.UTC); err == nil {
		return t.Unix(), nil
	}

	// Datetime input must carry an explicit offset or UTC designator;
	// RFC 3339 enforces that, so a naive local timestamp fails here.
	if t, err := time.Parse(time.RFC3339, expr); err == nil {
		return t.Unix(), nil
	}

	return 0, &ParseError{Expr: expr}
}

// Until resolves an expression to epoch seconds with relative
// expressions meaning "N units after now" instead of before. Used for
// deadlines such as mute and downtime end times.
func Until(expr string, now time.Time) (int64, error) {
	if m := relativePattern.FindStringSubmatch(expr); m != nil {
		qty, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			return 0, &ParseError{Expr: expr}
		}
		return now.Unix() + qty*unitSeconds[m[2]], nil
	}
	return Parse(expr, now)
}
