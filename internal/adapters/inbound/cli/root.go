package cli

import "github.com/spf13/cobra"

var (
	version = "dev"
	commit  = "none"
)

// rootOptions are the persistent flags every subcommand shares.
type rootOptions struct {
	settingsPath string
	profileDir   string
	logLevel     string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "tradecheck",
		Short: "Trade-in assessment from photos, VIN and mileage",
		Long:  "tradecheck scores a used vehicle's visible condition from photos, estimates market value from comparable listings and synthesizes a trade-in offer.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.settingsPath, "settings", "", "Settings file (YAML); TRADECHECK_* environment variables override it")
	cmd.PersistentFlags().StringVar(&opts.profileDir, "profile-dir", ".", "Directory holding .tradecheck.yaml")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newInitCmd())
	cmd.AddCommand(newScoreCmd(opts))
	cmd.AddCommand(newMarketCmd(opts))
	cmd.AddCommand(newAssessCmd(opts))
	cmd.AddCommand(newHistoryCmd(opts))
	cmd.AddCommand(newWorkerCmd(opts))
	cmd.AddCommand(newMCPCmd(opts))
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

func Execute() error {
	return newRootCmd().Execute()
}
