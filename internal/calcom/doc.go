// Package calcom provides a client for the Cal.com v2 scheduling API.
//
// This package offers the scheduling operations exposed by the MCP server:
//   - Listing event types, schedules, teams, users and webhooks
//   - Listing bookings with optional filters
//   - Creating bookings
//
// Every operation performs exactly one HTTP call and returns an Envelope:
// either the decoded JSON body of a successful call, or an error mapping of
// the fixed shape {error, status_code?, response_text?}. Transport faults,
// non-2xx statuses and decode failures are all folded into that shape so
// callers never have to handle a raw transport error.
//
// Authentication:
// The API uses a static bearer credential, read once from the CALCOM_API_KEY
// environment variable at process start and passed into NewClient. When the
// credential is absent, operations short-circuit with a configuration error
// before any network activity; only Status keeps working, reporting the
// readiness of the configuration.
//
// Example usage:
//
//	client := calcom.NewClient(calcom.Config{APIKey: os.Getenv("CALCOM_API_KEY")})
//
//	env := client.ListEventTypes(ctx)
//	if !env.OK() {
//	    log.Printf("list failed: %v", env.Err)
//	}
//
//	limit := 5
//	env = client.GetBookings(ctx, calcom.BookingsQuery{Limit: &limit})
package calcom
