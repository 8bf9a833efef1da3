package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/server"

	"github.com/tradecheck/tradecheck/internal/domain"
)

// Submitter runs a live assessment. The server works without one; the
// assess tool then reports that live assessment is unavailable.
type Submitter interface {
	Process(ctx context.Context, sub domain.Submission) (*domain.AssessmentReport, error)
}

// NewTradecheckMCPServer creates an MCP server with all tradecheck tools and
// resources registered. profileDir holds the optional .tradecheck.yaml.
func NewTradecheckMCPServer(profileDir string, submitter Submitter) *server.MCPServer {
	s := server.NewMCPServer(
		"tradecheck",
		"0.1.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	registerTools(s, profileDir, submitter)
	registerResources(s, profileDir)

	return s
}
