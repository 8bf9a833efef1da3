package cli

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	mcpadapter "github.com/tradecheck/tradecheck/internal/adapters/inbound/mcp"
)

func newMCPCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "MCP server commands",
		Long:  "Commands for running the tradecheck MCP (Model Context Protocol) server.",
	}
	cmd.AddCommand(newMCPServeCmd(opts))
	return cmd
}

func newMCPServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start tradecheck MCP server (stdio)",
		Long:  "Start the tradecheck MCP server using stdio transport. Offline scoring and market tools always work; live assessment needs a Gemini API key.",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := opts.load()
			if err != nil {
				return err
			}
			defer rt.Close()

			var submitter mcpadapter.Submitter
			if svc, err := rt.submissionService(cmd.Context(), opts.profileDir); err != nil {
				rt.logger.Warn("live assessment disabled", zap.Error(err))
			} else {
				submitter = svc
			}

			s := mcpadapter.NewTradecheckMCPServer(opts.profileDir, submitter)
			return server.ServeStdio(s)
		},
	}
}
