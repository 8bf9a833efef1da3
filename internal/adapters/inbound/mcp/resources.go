package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/tradecheck/tradecheck/internal/domain"
)

const profileURI = "tradecheck://profile"

// profileView is the resource shape of an assessment profile.
type profileView struct {
	DeductionWeights         map[domain.IssueKey]int     `json:"deduction_weights"`
	ReconWeights             map[domain.IssueKey]float64 `json:"recon_weights"`
	DealerMargin             float64                     `json:"dealer_margin"`
	MinComparables           int                         `json:"min_comparables"`
	FenceMultiplier          float64                     `json:"fence_multiplier"`
	DefaultFindingConfidence float64                     `json:"default_finding_confidence"`
	HighConfidence           int                         `json:"high_threshold"`
	MediumConfidence         int                         `json:"medium_threshold"`
	Overrides                *domain.ProfileConfig       `json:"overrides,omitempty"`
}

// registerResources registers all tradecheck MCP resources on the given server.
func registerResources(s *server.MCPServer, profileDir string) {
	s.AddResource(
		mcplib.NewResource(
			profileURI,
			"Assessment Profile",
			mcplib.WithResourceDescription("Weight tables and thresholds in effect, with any .tradecheck.yaml overrides"),
			mcplib.WithMIMEType("application/json"),
		),
		handleProfileResource(profileDir),
	)
}

func handleProfileResource(profileDir string) server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		p, cfg, err := newScoreService().LoadProfile(profileDir)
		if err != nil {
			return nil, fmt.Errorf("loading profile: %w", err)
		}

		data, err := json.MarshalIndent(profileView{
			DeductionWeights:         p.DeductionWeights,
			ReconWeights:             p.ReconWeights,
			DealerMargin:             p.DealerMargin,
			MinComparables:           p.MinComparables,
			FenceMultiplier:          p.FenceMultiplier,
			DefaultFindingConfidence: p.DefaultFindingConfidence,
			HighConfidence:           p.HighConfidence,
			MediumConfidence:         p.MediumConfidence,
			Overrides:                cfg,
		}, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling profile: %w", err)
		}

		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      profileURI,
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	}
}
