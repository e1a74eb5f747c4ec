package calcom_tools

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/arleypeter/calcom-mcp/internal/calcom"
)

func newBookingRequest(args map[string]interface{}) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func TestHandleCreateBooking_MissingRequiredArgs(t *testing.T) {
	base := map[string]interface{}{
		"start_time":        "2024-08-13T09:00:00Z",
		"attendee_name":     "Jane Doe",
		"attendee_email":    "jane@example.com",
		"attendee_timezone": "Europe/Rome",
	}

	tests := []struct {
		name    string
		missing string
	}{
		{name: "missing start_time", missing: "start_time"},
		{name: "missing attendee_name", missing: "attendee_name"},
		{name: "missing attendee_email", missing: "attendee_email"},
		{name: "missing attendee_timezone", missing: "attendee_timezone"},
	}

	sc := newTestServerContext(t, "http://127.0.0.1:1") // must never be reached

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := make(map[string]interface{}, len(base))
			for k, v := range base {
				args[k] = v
			}
			delete(args, tt.missing)

			result, err := handleCreateBooking(context.Background(), newBookingRequest(args), sc)
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if !result.IsError {
				t.Fatal("Expected error result for missing required argument")
			}
			if text := resultText(t, result); !strings.Contains(text, tt.missing+" is required") {
				t.Errorf("Expected %q message, got %s", tt.missing+" is required", text)
			}
		})
	}
}

func TestHandleCreateBooking_Success(t *testing.T) {
	var captured map[string]interface{}

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/bookings" {
			t.Errorf("Unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer cal_test_key" {
			t.Errorf("Unexpected Authorization header: %q", got)
		}
		if got := r.Header.Get("cal-api-version"); got != "2024-08-13" {
			t.Errorf("Unexpected cal-api-version header: %q", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("Failed to decode request body: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id": 7}`))
	}))
	defer ts.Close()

	sc := newTestServerContext(t, ts.URL)

	args := map[string]interface{}{
		"start_time":        "2024-08-13T09:00:00Z",
		"attendee_name":     "Jane Doe",
		"attendee_email":    "jane@example.com",
		"attendee_timezone": "Europe/Rome",
		"event_type_id":     float64(42),
		"guests":            []interface{}{"guest@example.com"},
		"metadata":          map[string]interface{}{"source": "test"},
	}

	result, err := handleCreateBooking(context.Background(), newBookingRequest(args), sc)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if result.IsError {
		t.Fatalf("Expected success result, got error: %s", resultText(t, result))
	}
	if text := resultText(t, result); !strings.Contains(text, `"id": 7`) {
		t.Errorf("Expected pass-through booking body, got %s", text)
	}

	// Wire shape: camelCase renames and attendee nesting
	if captured["eventTypeId"] != float64(42) {
		t.Errorf("Expected eventTypeId 42, got %v", captured["eventTypeId"])
	}
	if captured["start"] != "2024-08-13T09:00:00Z" {
		t.Errorf("Expected start field, got %v", captured["start"])
	}
	attendee, ok := captured["attendee"].(map[string]interface{})
	if !ok {
		t.Fatalf("Expected nested attendee object, got %v", captured["attendee"])
	}
	if attendee["timeZone"] != "Europe/Rome" {
		t.Errorf("Expected attendee.timeZone, got %v", attendee["timeZone"])
	}
	if _, present := captured["location"]; present {
		t.Error("Absent location_input must not appear in the payload")
	}
}

func TestHandleCreateBooking_ValidationError_NoNetworkCall(t *testing.T) {
	var calls atomic.Int32

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer ts.Close()

	sc := newTestServerContext(t, ts.URL)

	// Neither event_type_id nor (event_type_slug + username/team_slug)
	args := map[string]interface{}{
		"start_time":        "2024-08-13T09:00:00Z",
		"attendee_name":     "Jane Doe",
		"attendee_email":    "jane@example.com",
		"attendee_timezone": "Europe/Rome",
		"event_type_slug":   "intro-call",
	}

	result, err := handleCreateBooking(context.Background(), newBookingRequest(args), sc)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !result.IsError {
		t.Fatal("Expected validation error result")
	}
	if text := resultText(t, result); !strings.Contains(text, "event_type_id") {
		t.Errorf("Expected identification rule in message, got %s", text)
	}
	if calls.Load() != 0 {
		t.Errorf("Expected no network call, got %d", calls.Load())
	}
}

func TestHandleCreateBooking_MissingAPIKey(t *testing.T) {
	var calls atomic.Int32

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer ts.Close()

	sc := newTestServerContext(t, "")
	sc.SetCalcomClient(calcom.NewClient(calcom.Config{BaseURL: ts.URL}))

	args := map[string]interface{}{
		"start_time":        "2024-08-13T09:00:00Z",
		"attendee_name":     "Jane Doe",
		"attendee_email":    "jane@example.com",
		"attendee_timezone": "Europe/Rome",
		"event_type_id":     float64(42),
	}

	result, err := handleCreateBooking(context.Background(), newBookingRequest(args), sc)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !result.IsError {
		t.Fatal("Expected configuration error result")
	}
	if text := resultText(t, result); !strings.Contains(text, "CALCOM_API_KEY") {
		t.Errorf("Expected missing key message, got %s", text)
	}
	if calls.Load() != 0 {
		t.Errorf("Expected no network call, got %d", calls.Load())
	}
}

func TestHandleCreateBooking_RemoteError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("Internal error"))
	}))
	defer ts.Close()

	sc := newTestServerContext(t, ts.URL)

	args := map[string]interface{}{
		"start_time":        "2024-08-13T09:00:00Z",
		"attendee_name":     "Jane Doe",
		"attendee_email":    "jane@example.com",
		"attendee_timezone": "Europe/Rome",
		"event_type_id":     float64(42),
	}

	result, err := handleCreateBooking(context.Background(), newBookingRequest(args), sc)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !result.IsError {
		t.Fatal("Expected error result")
	}

	text := resultText(t, result)
	if !strings.Contains(text, `"status_code": 500`) {
		t.Errorf("Expected status_code 500 in envelope, got %s", text)
	}
	if !strings.Contains(text, "Internal error") {
		t.Errorf("Expected remote body in envelope, got %s", text)
	}
}
