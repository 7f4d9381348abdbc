// Package root assembles the ddog command tree.
package root

import (
	"errors"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/schmitthub/ddog/internal/cmd/configcmd"
	"github.com/schmitthub/ddog/internal/cmd/downtime"
	"github.com/schmitthub/ddog/internal/cmd/event"
	"github.com/schmitthub/ddog/internal/cmd/host"
	"github.com/schmitthub/ddog/internal/cmd/investigate"
	"github.com/schmitthub/ddog/internal/cmd/logs"
	"github.com/schmitthub/ddog/internal/cmd/metric"
	"github.com/schmitthub/ddog/internal/cmd/monitor"
	"github.com/schmitthub/ddog/internal/cmd/tag"
	"github.com/schmitthub/ddog/internal/cmd/user"
	"github.com/schmitthub/ddog/internal/cmd/version"
	"github.com/schmitthub/ddog/internal/cmdutil"
	"github.com/schmitthub/ddog/internal/config"
	"github.com/schmitthub/ddog/internal/logger"
)

// NewCmdRoot creates the root ddog command.
func NewCmdRoot(f *cmdutil.Factory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ddog <command> <subcommand> [flags]",
		Short: "Datadog from the command line",
		Long:  "Work with Datadog monitors, metrics, events, hosts, and logs from your terminal.",
		Example: `  ddog monitor list --state Alert
  ddog metric query "avg:system.cpu.user{env:prod}" --from 2h
  ddog logs tail "service:web status:error"`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logsDir, err := config.LogsDir()
			if err != nil {
				// Logging to file is best-effort; console logging
				// still works without a config directory.
				logger.Init(f.Debug)
				return nil
			}
			if err := logger.InitWithFile(f.Debug, logsDir, logger.FileConfig{}); err != nil {
				logger.Init(f.Debug)
			}
			return nil
		},
	}

	cmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		if errors.Is(err, pflag.ErrHelp) {
			return err
		}
		return cmdutil.FlagErrorWrap(err)
	})

	pf := cmd.PersistentFlags()
	pf.StringVar(&f.Profile, "profile", "", "Configuration profile to use")
	pf.BoolVar(&f.Debug, "debug", false, "Enable debug logging")

	cmd.AddCommand(monitor.NewCmdMonitor(f))
	cmd.AddCommand(metric.NewCmdMetric(f))
	cmd.AddCommand(event.NewCmdEvent(f))
	cmd.AddCommand(host.NewCmdHost(f))
	cmd.AddCommand(downtime.NewCmdDowntime(f))
	cmd.AddCommand(logs.NewCmdLogs(f))
	cmd.AddCommand(tag.NewCmdTag(f))
	cmd.AddCommand(user.NewCmdUser(f))
	cmd.AddCommand(investigate.NewCmdInvestigate(f))
	cmd.AddCommand(configcmd.NewCmdConfig(f))
	cmd.AddCommand(version.NewCmdVersion(f))

	return cmd
}
