package cmdutil

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/schmitthub/ddog/internal/timerange"
)

// RangeFlags carries the --from/--to pair shared by every command that
// queries over a time window.
type RangeFlags struct {
	From string
	To   string
}

// AddRangeFlags registers --from and --to on cmd. An omitted --from
// falls back at run time to the configured default_time_range.
func AddRangeFlags(cmd *cobra.Command) *RangeFlags {
	rf := &RangeFlags{}
	cmd.Flags().StringVar(&rf.From, "from", "", "Start of the window (e.g. 15m, 2h, 1d, or ISO-8601; default from config)")
	cmd.Flags().StringVar(&rf.To, "to", "now", "End of the window (e.g. 5m, now, or ISO-8601)")
	return rf
}

// Resolve converts the flag pair into an epoch-second range, applying
// defaultFrom when --from was omitted. Parse and range errors come
// back as FlagError so Main renders usage help.
func (rf *RangeFlags) Resolve(defaultFrom string, now time.Time) (timerange.Range, error) {
	from := rf.From
	if from == "" {
		from = defaultFrom
	}
	if from == "" {
		from = "1h"
	}
	r, err := timerange.Resolve(from, rf.To, now)
	if err != nil {
		return timerange.Range{}, FlagErrorWrap(err)
	}
	return r, nil
}
