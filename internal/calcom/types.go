package calcom

import "fmt"

// ErrorKind classifies how an operation failed.
type ErrorKind string

const (
	// ErrConfiguration means the API key is missing; no network call was made.
	ErrConfiguration ErrorKind = "configuration"

	// ErrValidation means a required parameter combination was not satisfied;
	// no network call was made.
	ErrValidation ErrorKind = "validation"

	// ErrRemote means the Cal.com API returned a non-2xx status.
	ErrRemote ErrorKind = "remote"

	// ErrTransport means the request failed at the network level
	// (connection refused, DNS failure, timeout).
	ErrTransport ErrorKind = "transport"

	// ErrUnexpected covers everything else, such as a 2xx response whose
	// body is not valid JSON.
	ErrUnexpected ErrorKind = "unexpected"
)

// Envelope is the uniform result of every Cal.com operation: either the
// decoded JSON body of a successful call, or an error mapping with a fixed
// shape. Callers never see a transport error as a Go error; every failure
// path is folded into this shape.
type Envelope struct {
	// Data is the decoded response body of a successful call, passed
	// through without schema validation. Nil when Err is set.
	Data any

	// Err describes the failure when the operation did not succeed.
	Err *OperationError
}

// OK reports whether the operation succeeded.
func (e Envelope) OK() bool {
	return e.Err == nil
}

// Body returns the JSON-serializable result: the success payload as-is, or
// the error mapping {error, status_code?, response_text?}.
func (e Envelope) Body() any {
	if e.Err == nil {
		return e.Data
	}
	return e.Err.Map()
}

// OperationError carries the normalized failure details of an operation.
type OperationError struct {
	// Kind classifies the failure.
	Kind ErrorKind

	// Op is the operation that failed (e.g., "getBookings").
	Op string

	// Message is the human-readable error string placed in the envelope.
	Message string

	// StatusCode is the HTTP status of the remote response, when one was
	// received. Zero when no response arrived.
	StatusCode int

	// ResponseText is the remote response body: parsed JSON when possible,
	// the raw text otherwise. Nil when no response arrived.
	ResponseText any

	// Err is the underlying error, if any.
	Err error
}

// Error implements the error interface.
func (e *OperationError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("calcom %s: %s", e.Op, e.Message)
	}
	return fmt.Sprintf("calcom: %s", e.Message)
}

// Unwrap implements the errors.Unwrap interface.
func (e *OperationError) Unwrap() error {
	return e.Err
}

// Map returns the error envelope shape expected by tool callers:
// {error, status_code?, response_text?}.
func (e *OperationError) Map() map[string]any {
	m := map[string]any{"error": e.Message}
	if e.StatusCode != 0 {
		m["status_code"] = e.StatusCode
	}
	if e.ResponseText != nil {
		m["response_text"] = e.ResponseText
	}
	return m
}

// BookingsQuery holds the optional filters for GetBookings. Zero-valued
// fields are omitted from the outgoing query entirely.
type BookingsQuery struct {
	// EventTypeID filters bookings by event type ID.
	EventTypeID *int

	// UserID filters bookings by the user the booking belongs to.
	UserID *int

	// Status filters by booking status (e.g., "ACCEPTED", "PENDING",
	// "CANCELLED", "REJECTED").
	Status string

	// DateFrom and DateTo bound the booking start time (ISO 8601).
	DateFrom string
	DateTo   string

	// Limit caps the number of bookings returned. Sent as "take" on the
	// wire, the Cal.com v2 pagination parameter.
	Limit *int
}

// SchedulesQuery holds the optional filters for ListSchedules.
type SchedulesQuery struct {
	UserID *int
	TeamID *int
	Limit  *int
}

// ListQuery holds the single optional filter shared by the teams, users
// and webhooks listings.
type ListQuery struct {
	Limit *int
}

// Attendee identifies the primary attendee of a booking.
type Attendee struct {
	// Name, Email and Timezone are required.
	Name     string
	Email    string
	Timezone string

	// PhoneNumber is optional (e.g., for SMS reminders).
	PhoneNumber string

	// Language is the attendee's preferred language (e.g., "en", "it").
	Language string
}

// BookingRequest describes a booking to create. The event type must be
// identified either by EventTypeID, or by EventTypeSlug together with
// Username or TeamSlug.
type BookingRequest struct {
	// StartTime is the booking start in ISO 8601 UTC
	// (e.g., "2024-08-13T09:00:00Z"). Required.
	StartTime string

	// Attendee is the primary attendee. Name, Email and Timezone required.
	Attendee Attendee

	// EventTypeID identifies the event type directly.
	EventTypeID *int

	// EventTypeSlug identifies the event type by slug; requires Username or
	// TeamSlug, optionally scoped by OrganizationSlug.
	EventTypeSlug    string
	Username         string
	TeamSlug         string
	OrganizationSlug string

	// Guests are additional guest email addresses.
	Guests []string

	// Location is the meeting location: a simple string for Cal Video, or a
	// URL for custom locations.
	Location string

	// Metadata is a set of custom key-value pairs.
	Metadata map[string]any

	// LengthInMinutes overrides the duration for variable-length event types.
	LengthInMinutes *int

	// BookingFieldsResponses holds responses to custom booking fields,
	// keyed by field slug.
	BookingFieldsResponses map[string]any
}

// Validate checks the mutually-exclusive event type identification rule.
// It returns the violated precondition as an error, or nil.
func (r *BookingRequest) Validate() error {
	if r.EventTypeID != nil {
		return nil
	}
	if r.EventTypeSlug != "" && (r.Username != "" || r.TeamSlug != "") {
		return nil
	}
	return fmt.Errorf("either 'event_type_id' or ('event_type_slug' and 'username'/'team_slug') must be provided")
}
