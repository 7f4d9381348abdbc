package cmdutil

import (
	"github.com/spf13/cobra"
)

// Output format modes for --format flag parsing.
const (
	ModeDefault = ""
	ModeTable   = "table"
	ModeJSON    = "json"
)

// FormatFlags holds parsed state for --format, --json, and --quiet.
type FormatFlags struct {
	Format string
	Quiet  bool
}

// IsJSON reports whether JSON output was requested.
func (ff *FormatFlags) IsJSON() bool { return ff.Format == ModeJSON }

// AddFormatFlags registers --format, --json, and -q/--quiet on the
// command and chains PreRunE validation for mutual exclusivity. The
// returned FormatFlags is populated during PreRunE; commands read it
// in RunE after flag parsing is complete.
func AddFormatFlags(cmd *cobra.Command) *FormatFlags {
	ff := &FormatFlags{}

	cmd.Flags().String("format", "", `Output format: "table" or "json"`)
	cmd.Flags().Bool("json", false, "Output as JSON (shorthand for --format json)")
	cmd.Flags().BoolP("quiet", "q", false, "Only display IDs")

	existingPreRunE := cmd.PreRunE
	cmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		if existingPreRunE != nil {
			if err := existingPreRunE(cmd, args); err != nil {
				return err
			}
		}

		format, _ := cmd.Flags().GetString("format")
		jsonFlag, _ := cmd.Flags().GetBool("json")
		quiet, _ := cmd.Flags().GetBool("quiet")

		if cmd.Flags().Changed("format") && jsonFlag {
			return FlagErrorf("--format and --json cannot be used together")
		}

		switch format {
		case ModeDefault, ModeTable, ModeJSON:
		default:
			return FlagErrorf("invalid format %q (expected \"table\" or \"json\")", format)
		}

		if jsonFlag {
			format = ModeJSON
		}

		ff.Format = format
		ff.Quiet = quiet
		return nil
	}

	return ff
}
