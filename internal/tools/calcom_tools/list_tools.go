package calcom_tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/arleypeter/calcom-mcp/internal/calcom"
	"github.com/arleypeter/calcom-mcp/internal/instrumentation"
	"github.com/arleypeter/calcom-mcp/internal/server"
	"github.com/arleypeter/calcom-mcp/internal/tools/common"
)

// registerListTools registers the read-only listing tools
func registerListTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	// List event types tool
	listEventTypesTool := mcp.NewTool("list_event_types",
		mcp.WithDescription("List all event types (bookable meeting templates) defined in Cal.com"),
	)

	s.AddTool(listEventTypesTool, common.InstrumentedToolHandlerWithOperation(
		"list_event_types", instrumentation.OperationListEventTypes, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return envelopeResult(sc.CalcomClient().ListEventTypes(ctx))
		}))

	// List schedules tool
	listSchedulesTool := mcp.NewTool("list_schedules",
		mcp.WithDescription("List availability schedules, optionally filtered by user or team"),
		mcp.WithNumber("user_id",
			mcp.Description("Filter schedules by a specific user ID"),
		),
		mcp.WithNumber("team_id",
			mcp.Description("Filter schedules by a specific team ID"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of schedules to return"),
		),
	)

	s.AddTool(listSchedulesTool, common.InstrumentedToolHandlerWithOperation(
		"list_schedules", instrumentation.OperationListSchedules, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args, _ := request.Params.Arguments.(map[string]interface{})

			query := calcom.SchedulesQuery{
				UserID: intArg(args, "user_id"),
				TeamID: intArg(args, "team_id"),
				Limit:  intArg(args, "limit"),
			}

			return envelopeResult(sc.CalcomClient().ListSchedules(ctx, query))
		}))

	// List teams tool
	listTeamsTool := mcp.NewTool("list_teams",
		mcp.WithDescription("List the teams visible to the configured Cal.com API key"),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of teams to return"),
		),
	)

	s.AddTool(listTeamsTool, common.InstrumentedToolHandlerWithOperation(
		"list_teams", instrumentation.OperationListTeams, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args, _ := request.Params.Arguments.(map[string]interface{})

			query := calcom.ListQuery{Limit: intArg(args, "limit")}

			return envelopeResult(sc.CalcomClient().ListTeams(ctx, query))
		}))

	// List users tool
	listUsersTool := mcp.NewTool("list_users",
		mcp.WithDescription("List the users visible to the configured Cal.com API key"),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of users to return"),
		),
	)

	s.AddTool(listUsersTool, common.InstrumentedToolHandlerWithOperation(
		"list_users", instrumentation.OperationListUsers, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args, _ := request.Params.Arguments.(map[string]interface{})

			query := calcom.ListQuery{Limit: intArg(args, "limit")}

			return envelopeResult(sc.CalcomClient().ListUsers(ctx, query))
		}))

	// List webhooks tool
	listWebhooksTool := mcp.NewTool("list_webhooks",
		mcp.WithDescription("List the webhooks configured in Cal.com"),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of webhooks to return"),
		),
	)

	s.AddTool(listWebhooksTool, common.InstrumentedToolHandlerWithOperation(
		"list_webhooks", instrumentation.OperationListWebhooks, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args, _ := request.Params.Arguments.(map[string]interface{})

			query := calcom.ListQuery{Limit: intArg(args, "limit")}

			return envelopeResult(sc.CalcomClient().ListWebhooks(ctx, query))
		}))

	return nil
}
