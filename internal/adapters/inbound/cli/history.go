package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tradecheck/tradecheck/internal/adapters/outbound/tui"
	"github.com/tradecheck/tradecheck/internal/domain"
)

func newHistoryCmd(opts *rootOptions) *cobra.Command {
	var (
		jsonOutput bool
		show       string
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List stored assessments",
		Long:  "List the assessment history from the local store, or print one stored report with --show.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := opts.load()
			if err != nil {
				return err
			}
			defer rt.Close()

			store := rt.fileStore()

			if show != "" {
				report, err := store.Load(cmd.Context(), show)
				if err != nil {
					return fmt.Errorf("loading report: %w", err)
				}
				if jsonOutput {
					return renderJSON(cmd, report)
				}
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderReport(report))
				return nil
			}

			entries, err := store.Entries()
			if err != nil {
				return fmt.Errorf("loading history: %w", err)
			}
			if jsonOutput {
				if entries == nil {
					entries = []domain.ReportEntry{}
				}
				return renderJSON(cmd, entries)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderHistory(entries))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().StringVar(&show, "show", "", "Print the stored report for this submission id")

	return cmd
}
