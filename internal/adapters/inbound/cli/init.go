package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tradecheck/tradecheck/internal/adapters/outbound/config"
	"github.com/tradecheck/tradecheck/internal/domain"
)

func newInitCmd() *cobra.Command {
	var (
		margin float64
		force  bool
	)

	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Generate a .tradecheck.yaml profile",
		Long:  "Create a .tradecheck.yaml holding the default deduction and reconditioning weights, ready to tune.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			absPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			dest := filepath.Join(absPath, config.FileName)

			if !force {
				if _, err := os.Stat(dest); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", config.FileName)
				}
			}

			cfg := domain.ProfileConfig{DealerMargin: &margin}
			if err := cfg.Validate(); err != nil {
				return err
			}

			if err := os.WriteFile(dest, []byte(generateProfile(margin)), 0644); err != nil {
				return fmt.Errorf("writing profile: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", config.FileName)
			return nil
		},
	}

	cmd.Flags().Float64Var(&margin, "margin", domain.DefaultProfile().DealerMargin, "Dealer margin below mid-market, in [0, 1)")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing .tradecheck.yaml")

	return cmd
}

func generateProfile(margin float64) string {
	p := domain.DefaultProfile()

	var b strings.Builder
	b.WriteString("# tradecheck assessment profile\n\n")

	b.WriteString("# Points removed per severity level.\ndeduction_weights:\n")
	// Ordered output for readability
	for _, k := range domain.AllIssueKeys {
		fmt.Fprintf(&b, "  %s: %d\n", k, p.Deduction(k))
	}

	b.WriteString("\n# USD reconditioning cost per severity level.\nrecon_weights:\n")
	for _, k := range domain.AllIssueKeys {
		if _, ok := p.ReconWeights[k]; ok {
			fmt.Fprintf(&b, "  %s: %g\n", k, p.Recon(k))
		}
	}

	fmt.Fprintf(&b, "\ndealer_margin: %g\n", margin)
	fmt.Fprintf(&b, "min_comparables: %d\n", p.MinComparables)

	b.WriteString(`
# confidence:
#   default_finding_confidence: 0.4
#   high_threshold: 85
#   medium_threshold: 65
`)

	return b.String()
}
