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

func newMarketCmd(opts *rootOptions) *cobra.Command {
	var (
		listingsPath string
		miles        int
		jsonOutput   bool
	)

	cmd := &cobra.Command{
		Use:   "market",
		Short: "Estimate market values from comparable listings",
		Long:  "Adjust comparable listing prices to the subject mileage, clip outliers and print the 25th, 50th and 75th percentiles.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if listingsPath == "" {
				return errors.New("--listings is required")
			}
			if miles < 0 {
				return fmt.Errorf("--miles must be >= 0 (got %d)", miles)
			}

			var listings []domain.Listing
			if err := readJSONFile(listingsPath, &listings); err != nil {
				return err
			}

			svc := application.NewScoreService(config.New())
			est, err := svc.EstimateMarket(opts.profileDir, listings, miles)
			if err != nil {
				return fmt.Errorf("estimating market values failed: %w", err)
			}

			if jsonOutput {
				return renderJSON(cmd, est)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderMarket(est.Values, est.Range, est.Listings))
			return nil
		},
	}

	cmd.Flags().StringVar(&listingsPath, "listings", "", "Path to a JSON array of {price, miles} listings")
	cmd.Flags().IntVar(&miles, "miles", 0, "Subject vehicle mileage")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output values as JSON")

	return cmd
}
