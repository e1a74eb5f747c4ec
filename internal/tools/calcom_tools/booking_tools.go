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

// registerBookingTools registers booking tools. The booking creation tool is
// only registered when readOnly is false.
func registerBookingTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	// Get bookings tool (read-only, always available)
	getBookingsTool := mcp.NewTool("get_bookings",
		mcp.WithDescription("Retrieve bookings from Cal.com with optional filters"),
		mcp.WithNumber("event_type_id",
			mcp.Description("Filter bookings by a specific event type ID"),
		),
		mcp.WithNumber("user_id",
			mcp.Description("Filter bookings by a specific user ID"),
		),
		mcp.WithString("status",
			mcp.Description("Filter bookings by status (e.g., 'ACCEPTED', 'PENDING', 'CANCELLED', 'REJECTED')"),
		),
		mcp.WithString("date_from",
			mcp.Description("Filter bookings from this date (ISO 8601, e.g., '2023-10-26T10:00:00.000Z')"),
		),
		mcp.WithString("date_to",
			mcp.Description("Filter bookings up to this date (ISO 8601)"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of bookings to return"),
		),
	)

	s.AddTool(getBookingsTool, common.InstrumentedToolHandlerWithOperation(
		"get_bookings", instrumentation.OperationGetBookings, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args, _ := request.Params.Arguments.(map[string]interface{})

			query := calcom.BookingsQuery{
				EventTypeID: intArg(args, "event_type_id"),
				UserID:      intArg(args, "user_id"),
				Status:      stringArg(args, "status"),
				DateFrom:    stringArg(args, "date_from"),
				DateTo:      stringArg(args, "date_to"),
				Limit:       intArg(args, "limit"),
			}

			return envelopeResult(sc.CalcomClient().GetBookings(ctx, query))
		}))

	// Create booking tool (write operation, requires !readOnly)
	if !readOnly {
		createBookingTool := mcp.NewTool("create_booking",
			mcp.WithDescription("Create a new booking in Cal.com. The event type must be identified either by event_type_id, or by event_type_slug together with username or team_slug."),
			mcp.WithString("start_time",
				mcp.Required(),
				mcp.Description("Booking start time in ISO 8601 UTC (e.g., '2024-08-13T09:00:00Z')"),
			),
			mcp.WithString("attendee_name",
				mcp.Required(),
				mcp.Description("Name of the primary attendee"),
			),
			mcp.WithString("attendee_email",
				mcp.Required(),
				mcp.Description("Email of the primary attendee"),
			),
			mcp.WithString("attendee_timezone",
				mcp.Required(),
				mcp.Description("IANA time zone of the primary attendee (e.g., 'America/New_York')"),
			),
			mcp.WithNumber("event_type_id",
				mcp.Description("ID of the event type to book. Either this or (event_type_slug + username/team_slug) is required."),
			),
			mcp.WithString("event_type_slug",
				mcp.Description("Slug of the event type. Used with username or team_slug when event_type_id is not provided."),
			),
			mcp.WithString("username",
				mcp.Description("Username of the event owner. Used with event_type_slug."),
			),
			mcp.WithString("team_slug",
				mcp.Description("Slug of the team owning the event type. Used with event_type_slug."),
			),
			mcp.WithString("organization_slug",
				mcp.Description("Organization slug, used with event_type_slug and username/team_slug"),
			),
			mcp.WithString("attendee_phone_number",
				mcp.Description("Phone number for the attendee (e.g., for SMS reminders)"),
			),
			mcp.WithString("attendee_language",
				mcp.Description("Preferred language for the attendee (e.g., 'en', 'it')"),
			),
			mcp.WithArray("guests",
				mcp.Description("Additional guest email addresses"),
				mcp.Items(map[string]any{"type": "string"}),
			),
			mcp.WithString("location_input",
				mcp.Description("Meeting location: a simple string for Cal Video, or a URL for custom locations"),
			),
			mcp.WithObject("metadata",
				mcp.Description("Custom key-value pairs (max 50 keys, 40 char key, 500 char value)"),
			),
			mcp.WithNumber("length_in_minutes",
				mcp.Description("Desired duration when the event type allows variable lengths"),
			),
			mcp.WithObject("booking_fields_responses",
				mcp.Description("Responses to custom booking fields, keyed by field slug"),
			),
		)

		s.AddTool(createBookingTool, common.InstrumentedToolHandlerWithOperation(
			"create_booking", instrumentation.OperationCreateBooking, sc,
			func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleCreateBooking(ctx, request, sc)
			}))
	}

	return nil
}

func handleCreateBooking(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})

	startTime, ok := args["start_time"].(string)
	if !ok || startTime == "" {
		return mcp.NewToolResultError("start_time is required"), nil
	}

	attendeeName, ok := args["attendee_name"].(string)
	if !ok || attendeeName == "" {
		return mcp.NewToolResultError("attendee_name is required"), nil
	}

	attendeeEmail, ok := args["attendee_email"].(string)
	if !ok || attendeeEmail == "" {
		return mcp.NewToolResultError("attendee_email is required"), nil
	}

	attendeeTimezone, ok := args["attendee_timezone"].(string)
	if !ok || attendeeTimezone == "" {
		return mcp.NewToolResultError("attendee_timezone is required"), nil
	}

	req := calcom.BookingRequest{
		StartTime: startTime,
		Attendee: calcom.Attendee{
			Name:        attendeeName,
			Email:       attendeeEmail,
			Timezone:    attendeeTimezone,
			PhoneNumber: stringArg(args, "attendee_phone_number"),
			Language:    stringArg(args, "attendee_language"),
		},
		EventTypeID:            intArg(args, "event_type_id"),
		EventTypeSlug:          stringArg(args, "event_type_slug"),
		Username:               stringArg(args, "username"),
		TeamSlug:               stringArg(args, "team_slug"),
		OrganizationSlug:       stringArg(args, "organization_slug"),
		Guests:                 stringSliceArg(args, "guests"),
		Location:               stringArg(args, "location_input"),
		Metadata:               mapArg(args, "metadata"),
		LengthInMinutes:        intArg(args, "length_in_minutes"),
		BookingFieldsResponses: mapArg(args, "booking_fields_responses"),
	}

	return envelopeResult(sc.CalcomClient().CreateBooking(ctx, req))
}
