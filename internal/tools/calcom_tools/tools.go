package calcom_tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/arleypeter/calcom-mcp/internal/calcom"
	"github.com/arleypeter/calcom-mcp/internal/server"
	"github.com/arleypeter/calcom-mcp/internal/tools/common"
)

// intArg extracts an optional integer argument. JSON numbers arrive as
// float64; absent or mistyped values yield nil.
func intArg(args map[string]interface{}, key string) *int {
	if v, ok := args[key].(float64); ok {
		n := int(v)
		return &n
	}
	return nil
}

// stringArg extracts an optional string argument, empty when absent.
func stringArg(args map[string]interface{}, key string) string {
	if v, ok := args[key].(string); ok {
		return v
	}
	return ""
}

// stringSliceArg extracts an optional list-of-strings argument. Non-string
// elements are skipped.
func stringSliceArg(args map[string]interface{}, key string) []string {
	raw, ok := args[key].([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// mapArg extracts an optional object argument, nil when absent.
func mapArg(args map[string]interface{}, key string) map[string]interface{} {
	if v, ok := args[key].(map[string]interface{}); ok && len(v) > 0 {
		return v
	}
	return nil
}

// envelopeResult renders an operation envelope as a tool result. Successful
// calls return the remote body as-is; failures return the error mapping
// {error, status_code?, response_text?} flagged as a tool error so hosts and
// metrics see the failure.
func envelopeResult(env calcom.Envelope) (*mcp.CallToolResult, error) {
	body, err := json.MarshalIndent(env.Body(), "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to encode result: %v", err)), nil
	}
	if env.OK() {
		return mcp.NewToolResultText(string(body)), nil
	}
	return mcp.NewToolResultError(string(body)), nil
}

// RegisterCalcomTools registers all Cal.com tools with the MCP server
func RegisterCalcomTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	// API status tool (no credential or network needed, always available)
	statusTool := mcp.NewTool("get_api_status",
		mcp.WithDescription("Check whether the Cal.com API key is configured. Performs no network call."),
	)

	s.AddTool(statusTool, common.InstrumentedToolHandler(
		"get_api_status", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText(sc.CalcomClient().Status()), nil
		}))

	if err := registerListTools(s, sc); err != nil {
		return fmt.Errorf("failed to register list tools: %w", err)
	}

	if err := registerBookingTools(s, sc, readOnly); err != nil {
		return fmt.Errorf("failed to register booking tools: %w", err)
	}

	return nil
}
