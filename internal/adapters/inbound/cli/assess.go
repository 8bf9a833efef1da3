package cli

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/tradecheck/tradecheck/internal/adapters/outbound/photos"
	"github.com/tradecheck/tradecheck/internal/adapters/outbound/tui"
	"github.com/tradecheck/tradecheck/internal/domain"
)

func newAssessCmd(opts *rootOptions) *cobra.Command {
	var (
		vin          string
		mileage      int
		description  string
		photoRefs    []string
		photoDir     string
		submissionID string
		listingsPath string
		jsonOutput   bool
	)

	cmd := &cobra.Command{
		Use:   "assess",
		Short: "Run a live trade-in assessment",
		Long:  "Send photos to the vision model, decode the VIN, look up comparables and produce a full assessment report. The report is saved to the configured store.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if photoDir != "" {
				found, err := photos.ScanDir(photoDir)
				if err != nil {
					return fmt.Errorf("scanning %s: %w", photoDir, err)
				}
				photoRefs = append(photoRefs, found...)
			}
			if len(photoRefs) == 0 {
				return errors.New("at least one --photo or --photo-dir is required")
			}
			if mileage < 0 {
				return fmt.Errorf("--mileage must be >= 0 (got %d)", mileage)
			}

			sub := domain.Submission{
				ID:          submissionID,
				VIN:         vin,
				Mileage:     mileage,
				Description: description,
				PhotoRefs:   photoRefs,
			}
			if sub.ID == "" {
				sub.ID = uuid.NewString()
			}
			if listingsPath != "" {
				if err := readJSONFile(listingsPath, &sub.Listings); err != nil {
					return err
				}
			}

			rt, err := opts.load()
			if err != nil {
				return err
			}
			defer rt.Close()

			svc, err := rt.submissionService(cmd.Context(), opts.profileDir)
			if err != nil {
				return err
			}

			report, err := svc.Process(cmd.Context(), sub)
			if err != nil {
				return fmt.Errorf("assessment failed: %w", err)
			}

			if jsonOutput {
				return renderJSON(cmd, report)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderReport(report))
			fmt.Fprintf(cmd.OutOrStdout(), "  submission %s\n", sub.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&vin, "vin", "", "Vehicle identification number")
	cmd.Flags().IntVar(&mileage, "mileage", 0, "Odometer reading")
	cmd.Flags().StringVar(&description, "description", "", "Seller's description of the vehicle")
	cmd.Flags().StringArrayVar(&photoRefs, "photo", nil, "Photo file path or URL (repeatable)")
	cmd.Flags().StringVar(&photoDir, "photo-dir", "", "Directory of photos to include")
	cmd.Flags().StringVar(&submissionID, "submission", "", "Submission id (generated when omitted)")
	cmd.Flags().StringVar(&listingsPath, "listings", "", "JSON file of comparable listings; skips the market lookup")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output report as JSON")

	return cmd
}
