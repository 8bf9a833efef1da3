package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tradecheck/tradecheck/internal/adapters/outbound/config"
	"github.com/tradecheck/tradecheck/internal/adapters/outbound/tui"
	"github.com/tradecheck/tradecheck/internal/application"
	"github.com/tradecheck/tradecheck/internal/domain"
)

func newScoreCmd(opts *rootOptions) *cobra.Command {
	var (
		observationPath string
		jsonOutput      bool
		minScore        int
	)

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score a visual observation offline",
		Long:  "Validate a visual observation JSON file and compute the condition score and AI confidence without calling the vision model.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if observationPath == "" {
				return errors.New("--observation is required")
			}

			var obs domain.VisualObservation
			if err := readJSONFile(observationPath, &obs); err != nil {
				return err
			}

			svc := application.NewScoreService(config.New())
			score, err := svc.ScoreObservation(opts.profileDir, obs)
			if err != nil {
				return fmt.Errorf("scoring failed: %w", err)
			}

			if jsonOutput {
				if err := renderJSON(cmd, score); err != nil {
					return err
				}
			} else {
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderScore(score.Condition, score.Confidence, score.Issues, score.Rejections))
			}

			if minScore > 0 && score.Condition.Score < minScore {
				return fmt.Errorf("visual score %d is below minimum %d", score.Condition.Score, minScore)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&observationPath, "observation", "", "Path to a VisualObservation JSON file")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output score as JSON")
	cmd.Flags().IntVar(&minScore, "min", 0, "Exit non-zero when the visual score is below this value")

	return cmd
}
