package calcom

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	// DefaultBaseURL is the Cal.com v2 API base URL.
	DefaultBaseURL = "https://api.cal.com/v2"

	// createBookingAPIVersion pins the versioned contract of the booking
	// creation endpoint via the cal-api-version header.
	createBookingAPIVersion = "2024-08-13"

	// DefaultTimeout bounds each API call when no http.Client is injected.
	DefaultTimeout = 30 * time.Second
)

// missingKeyMessage is the envelope error for operations attempted without
// a configured credential.
const missingKeyMessage = "Cal.com API key not configured. Please set the CALCOM_API_KEY environment variable."

// Config holds the settings for a Client.
type Config struct {
	// APIKey is the Cal.com bearer credential. May be empty; operations
	// then short-circuit with a configuration error.
	APIKey string

	// BaseURL overrides the API base URL. Defaults to DefaultBaseURL.
	BaseURL string

	// HTTPClient is the transport used for all calls. Defaults to a client
	// with DefaultTimeout.
	HTTPClient *http.Client
}

// Client provides access to the Cal.com v2 scheduling API. It is stateless
// beyond the read-only credential and safe for concurrent use.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a Cal.com client. It never fails: a missing API key is
// reported per-operation so that the status tool can still answer.
func NewClient(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

// HasAPIKey reports whether a credential is configured.
func (c *Client) HasAPIKey() bool {
	return c.apiKey != ""
}

// Status returns a human-readable string indicating whether the credential
// is present. No side effects, no network call.
func (c *Client) Status() string {
	if c.HasAPIKey() {
		return "Cal.com API key is configured."
	}
	return "Cal.com API key is NOT configured. Please set the CALCOM_API_KEY environment variable."
}

// headers builds the outgoing header set. Empty when no credential is
// configured; callers check HasAPIKey before relying on auth.
func (c *Client) headers() http.Header {
	h := http.Header{}
	if c.apiKey == "" {
		return h
	}
	h.Set("Authorization", "Bearer "+c.apiKey)
	h.Set("Content-Type", "application/json")
	return h
}

// ListEventTypes fetches all event types.
func (c *Client) ListEventTypes(ctx context.Context) Envelope {
	return c.get(ctx, "listEventTypes", "/event-types", "")
}

// GetBookings fetches bookings, applying the query's optional filters.
func (c *Client) GetBookings(ctx context.Context, q BookingsQuery) Envelope {
	return c.get(ctx, "getBookings", "/bookings", q.encode())
}

// ListSchedules fetches schedules, optionally filtered by user or team.
func (c *Client) ListSchedules(ctx context.Context, q SchedulesQuery) Envelope {
	return c.get(ctx, "listSchedules", "/schedules", q.encode())
}

// ListTeams fetches the teams visible to the credential.
func (c *Client) ListTeams(ctx context.Context, q ListQuery) Envelope {
	return c.get(ctx, "listTeams", "/teams", q.encode())
}

// ListUsers fetches the users visible to the credential.
func (c *Client) ListUsers(ctx context.Context, q ListQuery) Envelope {
	return c.get(ctx, "listUsers", "/users", q.encode())
}

// ListWebhooks fetches the configured webhooks.
func (c *Client) ListWebhooks(ctx context.Context, q ListQuery) Envelope {
	return c.get(ctx, "listWebhooks", "/webhooks", q.encode())
}

// CreateBooking creates a new booking. The event type must be identified by
// ID, or by slug plus username/team slug; violations are returned as a
// validation envelope before any network call.
func (c *Client) CreateBooking(ctx context.Context, req BookingRequest) Envelope {
	const op = "createBooking"

	if !c.HasAPIKey() {
		return configurationEnvelope(op)
	}
	if err := req.Validate(); err != nil {
		return Envelope{Err: &OperationError{
			Kind:    ErrValidation,
			Op:      op,
			Message: err.Error(),
			Err:     err,
		}}
	}

	body, err := json.Marshal(req.payload())
	if err != nil {
		return unexpectedEnvelope(op, fmt.Errorf("failed to encode payload: %w", err))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/bookings", bytes.NewReader(body))
	if err != nil {
		return unexpectedEnvelope(op, err)
	}
	httpReq.Header = c.headers()
	httpReq.Header.Set("cal-api-version", createBookingAPIVersion)

	return c.do(op, httpReq)
}

// get performs a single GET against path with an optional raw query and
// normalizes the result.
func (c *Client) get(ctx context.Context, op, path, query string) Envelope {
	if !c.HasAPIKey() {
		return configurationEnvelope(op)
	}

	u := c.baseURL + path
	if query != "" {
		u += "?" + query
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return unexpectedEnvelope(op, err)
	}
	req.Header = c.headers()

	return c.do(op, req)
}

// do issues exactly one HTTP request and folds every outcome into an
// Envelope. No retries.
func (c *Client) do(op string, req *http.Request) Envelope {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Envelope{Err: &OperationError{
			Kind:    ErrTransport,
			Op:      op,
			Message: fmt.Sprintf("Request exception occurred: %v", err),
			Err:     err,
		}}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Envelope{Err: &OperationError{
			Kind:    ErrTransport,
			Op:      op,
			Message: fmt.Sprintf("Request exception occurred: %v", err),
			Err:     err,
		}}
	}

	if resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated {
		var data any
		if err := json.Unmarshal(raw, &data); err != nil {
			return unexpectedEnvelope(op, fmt.Errorf("failed to decode response: %w", err))
		}
		return Envelope{Data: data}
	}

	return Envelope{Err: &OperationError{
		Kind:         ErrRemote,
		Op:           op,
		Message:      fmt.Sprintf("HTTP error occurred: %d %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
		StatusCode:   resp.StatusCode,
		ResponseText: parseResponseText(raw),
		Err:          errors.New(http.StatusText(resp.StatusCode)),
	}}
}

// parseResponseText tries to parse the remote body as JSON for caller
// diagnosis, falling back to the raw text.
func parseResponseText(raw []byte) any {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err == nil {
		return parsed
	}
	return string(raw)
}

func configurationEnvelope(op string) Envelope {
	return Envelope{Err: &OperationError{
		Kind:    ErrConfiguration,
		Op:      op,
		Message: missingKeyMessage,
	}}
}

func unexpectedEnvelope(op string, err error) Envelope {
	return Envelope{Err: &OperationError{
		Kind:    ErrUnexpected,
		Op:      op,
		Message: fmt.Sprintf("An unexpected error occurred: %v", err),
		Err:     err,
	}}
}
