// Package calcom_tools provides MCP tools for the Cal.com scheduling API.
//
// This package implements MCP (Model Context Protocol) tools that wrap the
// Cal.com v2 client, exposing scheduling queries and booking creation to AI
// assistants.
//
// # Available Tools
//
// Status:
//   - get_api_status: Report whether the Cal.com API key is configured
//
// Read Operations:
//   - list_event_types: List bookable event types
//   - get_bookings: List bookings with optional filters
//   - list_schedules: List availability schedules
//   - list_teams: List teams
//   - list_users: List users
//   - list_webhooks: List configured webhooks
//
// Write Operations (not registered in read-only mode):
//   - create_booking: Create a new booking
//
// # Results
//
// Every API-backed tool returns JSON: the Cal.com response body on success,
// or the uniform error mapping {error, status_code?, response_text?} on
// failure. A missing API key surfaces as that error mapping rather than a
// registration failure, so get_api_status can always answer.
package calcom_tools
