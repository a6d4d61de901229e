package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tidewater-labs/lakeview-cli/internal/adapters/driving/mcp"
	"github.com/tidewater-labs/lakeview-cli/internal/core/domain"
	"github.com/tidewater-labs/lakeview-cli/internal/logger"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server for AI assistant integration.

By default, the server communicates over stdio using JSON-RPC and can be
used with Claude Desktop and other MCP-compatible AI assistants.

Use --port to start an HTTP server instead.

Examples:
  # Stdio mode (default, for Claude Desktop)
  lakeview mcp serve

  # HTTP mode (for MCP Inspector, remote access)
  lakeview mcp serve --port 8080

Claude Desktop configuration (claude_desktop_config.json):
  {
    "mcpServers": {
      "lakeview": {
        "command": "/path/to/lakeview",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

// The forwarding ports resolve the service set per call, so a config
// hot-reload takes effect on a running server.

type documentPort struct{}

func (documentPort) Get(ctx context.Context, id string) (*domain.Document, error) {
	return currentServices().document.Get(ctx, id)
}

func (documentPort) Create(ctx context.Context, kind string, fields map[string]string, extraJSON string) (*domain.Document, error) {
	return currentServices().document.Create(ctx, kind, fields, extraJSON)
}

func (documentPort) Update(ctx context.Context, id string, fields map[string]string, extraJSON string) (*domain.Document, error) {
	return currentServices().document.Update(ctx, id, fields, extraJSON)
}

func (documentPort) Delete(ctx context.Context, id string) error {
	return currentServices().document.Delete(ctx, id)
}

func (documentPort) Publish(ctx context.Context, id string) (*domain.Document, error) {
	return currentServices().document.Publish(ctx, id)
}

func (documentPort) Unpublish(ctx context.Context, id string) (*domain.Document, error) {
	return currentServices().document.Unpublish(ctx, id)
}

func (documentPort) RunQuery(ctx context.Context, query string, params map[string]any) (json.RawMessage, error) {
	return currentServices().document.RunQuery(ctx, query, params)
}

func (documentPort) Count(ctx context.Context, kind string) (int, error) {
	return currentServices().document.Count(ctx, kind)
}

type searchPort struct{}

func (searchPort) Search(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.Document, error) {
	return currentServices().search.Search(ctx, query, opts)
}

type contextPort struct{}

func (contextPort) Assemble(ctx context.Context, req domain.ContextRequest) (*domain.ContextResult, error) {
	return currentServices().context.Assemble(ctx, req)
}

type catalogPort struct{}

func (catalogPort) DescribeKind(ctx context.Context, kind string) (*domain.KindSummary, error) {
	return currentServices().catalog.DescribeKind(ctx, kind)
}

func (catalogPort) DescribeAll(ctx context.Context) (*domain.Catalog, error) {
	return currentServices().catalog.DescribeAll(ctx)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	ports := &mcp.Ports{
		Document: documentPort{},
		Search:   searchPort{},
		Context:  contextPort{},
		Catalog:  catalogPort{},
	}

	server, err := mcp.NewServer(ports)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	// Pick up config edits without a restart.
	go func() {
		err := configStore.Watch(ctx, rebuildServices)
		if err != nil && ctx.Err() == nil {
			logger.Warn("Config watch stopped: %v", err)
		}
	}()

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(ctx, addr)
	}

	return server.Run(ctx)
}
