package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/tradecheck/tradecheck/internal/adapters/outbound/config"
	"github.com/tradecheck/tradecheck/internal/application"
	"github.com/tradecheck/tradecheck/internal/domain"
)

// registerTools registers all tradecheck MCP tools on the given server.
func registerTools(s *server.MCPServer, profileDir string, submitter Submitter) {
	// 1. tradecheck_score
	s.AddTool(
		mcplib.NewTool("tradecheck_score",
			mcplib.WithDescription("Score a visual observation offline: condition score, grade, AI confidence and reconditioning cost"),
			mcplib.WithString("observation",
				mcplib.Required(),
				mcplib.Description("VisualObservation JSON (observations, cleanliness, overallComment, coverage)"),
			),
		),
		handleScore(profileDir),
	)

	// 2. tradecheck_market_values
	s.AddTool(
		mcplib.NewTool("tradecheck_market_values",
			mcplib.WithDescription("Estimate p25/p50/p75 market values from comparable listings adjusted to the subject mileage"),
			mcplib.WithString("listings",
				mcplib.Required(),
				mcplib.Description(`JSON array of listings, e.g. [{"price":18000,"miles":30000}]`),
			),
			mcplib.WithNumber("miles",
				mcplib.Required(),
				mcplib.Description("Subject vehicle mileage"),
			),
		),
		handleMarketValues(profileDir),
	)

	// 3. tradecheck_assess
	s.AddTool(
		mcplib.NewTool("tradecheck_assess",
			mcplib.WithDescription("Run a live assessment on photos: vision, VIN decode, market lookup and valuation"),
			mcplib.WithString("photos",
				mcplib.Required(),
				mcplib.Description("Comma-separated photo references (file paths or URLs)"),
			),
			mcplib.WithNumber("mileage", mcplib.Required(), mcplib.Description("Odometer reading")),
			mcplib.WithString("vin", mcplib.Description("Vehicle identification number")),
			mcplib.WithString("description", mcplib.Description("Seller's description of the vehicle")),
			mcplib.WithString("submission_id", mcplib.Description("Submission id (generated when omitted)")),
		),
		handleAssess(submitter),
	)
}

func newScoreService() *application.ScoreService {
	return application.NewScoreService(config.New())
}

func handleScore(profileDir string) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		raw, err := request.RequireString("observation")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		var obs domain.VisualObservation
		if err := json.Unmarshal([]byte(raw), &obs); err != nil {
			return errorResult(fmt.Sprintf("parsing observation: %v", err)), nil
		}

		score, err := newScoreService().ScoreObservation(profileDir, obs)
		if err != nil {
			return errorResult(fmt.Sprintf("scoring failed: %v", err)), nil
		}
		return jsonResult(score)
	}
}

func handleMarketValues(profileDir string) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		raw, err := request.RequireString("listings")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		miles, ok := request.GetArguments()["miles"].(float64)
		if !ok || miles < 0 {
			return errorResult("miles must be a non-negative number"), nil
		}

		var listings []domain.Listing
		if err := json.Unmarshal([]byte(raw), &listings); err != nil {
			return errorResult(fmt.Sprintf("parsing listings: %v", err)), nil
		}

		estimate, err := newScoreService().EstimateMarket(profileDir, listings, int(miles))
		if err != nil {
			return errorResult(fmt.Sprintf("estimating market values failed: %v", err)), nil
		}
		return jsonResult(estimate)
	}
}

func handleAssess(submitter Submitter) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		if submitter == nil {
			return errorResult("live assessment unavailable: set TRADECHECK_GEMINI_API_KEY"), nil
		}

		refs, err := request.RequireString("photos")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		args := request.GetArguments()
		mileage, ok := args["mileage"].(float64)
		if !ok || mileage < 0 {
			return errorResult("mileage must be a non-negative number"), nil
		}
		vin, _ := args["vin"].(string)
		description, _ := args["description"].(string)
		id, _ := args["submission_id"].(string)
		if strings.TrimSpace(id) == "" {
			id = uuid.NewString()
		}

		report, err := submitter.Process(ctx, domain.Submission{
			ID:          id,
			VIN:         vin,
			Mileage:     int(mileage),
			Description: description,
			PhotoRefs:   splitCSV(refs),
		})
		if err != nil {
			return errorResult(fmt.Sprintf("assessment failed: %v", err)), nil
		}
		return jsonResult(report)
	}
}

// splitCSV splits a comma-separated string into trimmed, non-empty parts.
func splitCSV(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			result = append(result, part)
		}
	}
	return result
}

// jsonResult marshals v to indented JSON and wraps it in a CallToolResult.
func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// errorResult returns an error content result.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
