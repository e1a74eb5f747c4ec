package calcom

import (
	"net/url"
	"strconv"
	"strings"
)

// The Cal.com v2 API names fields in camelCase while the tool surface uses
// snake_case. Each operation's renames live in one table so the mapping can
// be tested on its own instead of being buried in per-field conditionals.

// FieldRename maps a tool-facing parameter name to its wire name.
type FieldRename struct {
	Param string
	Wire  string
}

// Rename tables, one per operation. The tool-facing "limit" is sent as
// "take", the Cal.com v2 pagination parameter; see the bookings table.
var (
	BookingsQueryRenames = []FieldRename{
		{Param: "event_type_id", Wire: "eventTypeId"},
		{Param: "user_id", Wire: "userId"},
		{Param: "status", Wire: "status"},
		{Param: "date_from", Wire: "dateFrom"},
		{Param: "date_to", Wire: "dateTo"},
		{Param: "limit", Wire: "take"},
	}

	SchedulesQueryRenames = []FieldRename{
		{Param: "user_id", Wire: "userId"},
		{Param: "team_id", Wire: "teamId"},
		{Param: "limit", Wire: "take"},
	}

	ListQueryRenames = []FieldRename{
		{Param: "limit", Wire: "take"},
	}

	CreateBookingRenames = []FieldRename{
		{Param: "start_time", Wire: "start"},
		{Param: "event_type_id", Wire: "eventTypeId"},
		{Param: "event_type_slug", Wire: "eventTypeSlug"},
		{Param: "username", Wire: "username"},
		{Param: "team_slug", Wire: "teamSlug"},
		{Param: "organization_slug", Wire: "organizationSlug"},
		{Param: "guests", Wire: "guests"},
		{Param: "location_input", Wire: "location"},
		{Param: "metadata", Wire: "metadata"},
		{Param: "length_in_minutes", Wire: "lengthInMinutes"},
		{Param: "booking_fields_responses", Wire: "bookingFieldsResponses"},
		{Param: "attendee_name", Wire: "attendee.name"},
		{Param: "attendee_email", Wire: "attendee.email"},
		{Param: "attendee_timezone", Wire: "attendee.timeZone"},
		{Param: "attendee_phone_number", Wire: "attendee.phoneNumber"},
		{Param: "attendee_language", Wire: "attendee.language"},
	}
)

// WireName returns the wire name for a tool-facing parameter, or the
// parameter itself when the table has no entry.
func WireName(table []FieldRename, param string) string {
	for _, r := range table {
		if r.Param == param {
			return r.Wire
		}
	}
	return param
}

// queryValues builds url.Values from present (non-nil, non-empty) fields
// only. Absent fields never appear, not even as empty strings.
type queryValues struct {
	values url.Values
}

func newQueryValues() *queryValues {
	return &queryValues{values: url.Values{}}
}

func (q *queryValues) setInt(table []FieldRename, param string, v *int) {
	if v != nil {
		q.values.Set(WireName(table, param), strconv.Itoa(*v))
	}
}

func (q *queryValues) setString(table []FieldRename, param string, v string) {
	if v != "" {
		q.values.Set(WireName(table, param), v)
	}
}

// Encode returns the encoded query string, empty when no field was set.
func (q *queryValues) Encode() string {
	return q.values.Encode()
}

// encode builds the outgoing query for GetBookings.
func (q BookingsQuery) encode() string {
	v := newQueryValues()
	v.setInt(BookingsQueryRenames, "event_type_id", q.EventTypeID)
	v.setInt(BookingsQueryRenames, "user_id", q.UserID)
	v.setString(BookingsQueryRenames, "status", q.Status)
	v.setString(BookingsQueryRenames, "date_from", q.DateFrom)
	v.setString(BookingsQueryRenames, "date_to", q.DateTo)
	v.setInt(BookingsQueryRenames, "limit", q.Limit)
	return v.Encode()
}

// encode builds the outgoing query for ListSchedules.
func (q SchedulesQuery) encode() string {
	v := newQueryValues()
	v.setInt(SchedulesQueryRenames, "user_id", q.UserID)
	v.setInt(SchedulesQueryRenames, "team_id", q.TeamID)
	v.setInt(SchedulesQueryRenames, "limit", q.Limit)
	return v.Encode()
}

// encode builds the outgoing query for the teams/users/webhooks listings.
func (q ListQuery) encode() string {
	v := newQueryValues()
	v.setInt(ListQueryRenames, "limit", q.Limit)
	return v.Encode()
}

// attendeeWireName resolves an attendee_* parameter to its key inside the
// nested "attendee" object (the table stores them as "attendee.<key>").
func attendeeWireName(param string) string {
	return strings.TrimPrefix(WireName(CreateBookingRenames, param), "attendee.")
}

// payload builds the outgoing JSON body for CreateBooking. Only present
// fields are copied; attendee fields nest under "attendee". The caller is
// responsible for running Validate first.
func (r *BookingRequest) payload() map[string]any {
	attendee := map[string]any{
		attendeeWireName("attendee_name"):     r.Attendee.Name,
		attendeeWireName("attendee_email"):    r.Attendee.Email,
		attendeeWireName("attendee_timezone"): r.Attendee.Timezone,
	}
	if r.Attendee.PhoneNumber != "" {
		attendee[attendeeWireName("attendee_phone_number")] = r.Attendee.PhoneNumber
	}
	if r.Attendee.Language != "" {
		attendee[attendeeWireName("attendee_language")] = r.Attendee.Language
	}

	body := map[string]any{
		WireName(CreateBookingRenames, "start_time"): r.StartTime,
		"attendee": attendee,
	}

	if r.EventTypeID != nil {
		body[WireName(CreateBookingRenames, "event_type_id")] = *r.EventTypeID
	} else {
		body[WireName(CreateBookingRenames, "event_type_slug")] = r.EventTypeSlug
		if r.Username != "" {
			body[WireName(CreateBookingRenames, "username")] = r.Username
		} else if r.TeamSlug != "" {
			body[WireName(CreateBookingRenames, "team_slug")] = r.TeamSlug
		}
		if r.OrganizationSlug != "" {
			body[WireName(CreateBookingRenames, "organization_slug")] = r.OrganizationSlug
		}
	}

	if len(r.Guests) > 0 {
		body[WireName(CreateBookingRenames, "guests")] = r.Guests
	}
	if r.Location != "" {
		body[WireName(CreateBookingRenames, "location_input")] = r.Location
	}
	if len(r.Metadata) > 0 {
		body[WireName(CreateBookingRenames, "metadata")] = r.Metadata
	}
	if r.LengthInMinutes != nil {
		body[WireName(CreateBookingRenames, "length_in_minutes")] = *r.LengthInMinutes
	}
	if len(r.BookingFieldsResponses) > 0 {
		body[WireName(CreateBookingRenames, "booking_fields_responses")] = r.BookingFieldsResponses
	}

	return body
}
