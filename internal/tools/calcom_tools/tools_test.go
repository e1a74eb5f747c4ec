package calcom_tools

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/arleypeter/calcom-mcp/internal/calcom"
	"github.com/arleypeter/calcom-mcp/internal/config"
	"github.com/arleypeter/calcom-mcp/internal/server"
)

func TestIntArg(t *testing.T) {
	tests := []struct {
		name     string
		args     map[string]interface{}
		key      string
		expected *int
	}{
		{
			name:     "present number",
			args:     map[string]interface{}{"limit": float64(5)},
			key:      "limit",
			expected: intPtr(5),
		},
		{
			name:     "zero value",
			args:     map[string]interface{}{"limit": float64(0)},
			key:      "limit",
			expected: intPtr(0),
		},
		{
			name:     "absent key",
			args:     map[string]interface{}{},
			key:      "limit",
			expected: nil,
		},
		{
			name:     "wrong type",
			args:     map[string]interface{}{"limit": "5"},
			key:      "limit",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := intArg(tt.args, tt.key)
			if (result == nil) != (tt.expected == nil) {
				t.Fatalf("intArg() = %v, expected %v", result, tt.expected)
			}
			if result != nil && *result != *tt.expected {
				t.Errorf("intArg() = %d, expected %d", *result, *tt.expected)
			}
		})
	}
}

func TestStringArg(t *testing.T) {
	tests := []struct {
		name     string
		args     map[string]interface{}
		key      string
		expected string
	}{
		{
			name:     "present string",
			args:     map[string]interface{}{"status": "ACCEPTED"},
			key:      "status",
			expected: "ACCEPTED",
		},
		{
			name:     "absent key",
			args:     map[string]interface{}{},
			key:      "status",
			expected: "",
		},
		{
			name:     "wrong type",
			args:     map[string]interface{}{"status": 42},
			key:      "status",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := stringArg(tt.args, tt.key); result != tt.expected {
				t.Errorf("stringArg() = %q, expected %q", result, tt.expected)
			}
		})
	}
}

func TestStringSliceArg(t *testing.T) {
	tests := []struct {
		name     string
		args     map[string]interface{}
		expected []string
	}{
		{
			name:     "string list",
			args:     map[string]interface{}{"guests": []interface{}{"a@example.com", "b@example.com"}},
			expected: []string{"a@example.com", "b@example.com"},
		},
		{
			name:     "non-string elements skipped",
			args:     map[string]interface{}{"guests": []interface{}{"a@example.com", 42, ""}},
			expected: []string{"a@example.com"},
		},
		{
			name:     "empty list",
			args:     map[string]interface{}{"guests": []interface{}{}},
			expected: nil,
		},
		{
			name:     "absent key",
			args:     map[string]interface{}{},
			expected: nil,
		},
		{
			name:     "wrong type",
			args:     map[string]interface{}{"guests": "a@example.com"},
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := stringSliceArg(tt.args, "guests")
			if len(result) != len(tt.expected) {
				t.Fatalf("stringSliceArg() = %v, expected %v", result, tt.expected)
			}
			for i := range result {
				if result[i] != tt.expected[i] {
					t.Errorf("stringSliceArg()[%d] = %q, expected %q", i, result[i], tt.expected[i])
				}
			}
		})
	}
}

func TestMapArg(t *testing.T) {
	args := map[string]interface{}{
		"metadata": map[string]interface{}{"source": "test"},
		"empty":    map[string]interface{}{},
		"wrong":    "not-a-map",
	}

	if result := mapArg(args, "metadata"); result == nil || result["source"] != "test" {
		t.Errorf("Expected metadata map, got %v", result)
	}
	if result := mapArg(args, "empty"); result != nil {
		t.Errorf("Expected nil for empty map, got %v", result)
	}
	if result := mapArg(args, "wrong"); result != nil {
		t.Errorf("Expected nil for non-map value, got %v", result)
	}
	if result := mapArg(args, "absent"); result != nil {
		t.Errorf("Expected nil for absent key, got %v", result)
	}
}

func TestEnvelopeResult_Success(t *testing.T) {
	env := calcom.Envelope{Data: map[string]interface{}{"id": float64(7)}}

	result, err := envelopeResult(env)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if result.IsError {
		t.Error("Expected success result, got error result")
	}

	text := resultText(t, result)
	if !strings.Contains(text, `"id": 7`) {
		t.Errorf("Expected body to contain id, got %s", text)
	}
}

func TestEnvelopeResult_Error(t *testing.T) {
	env := calcom.Envelope{Err: &calcom.OperationError{
		Kind:         calcom.ErrRemote,
		Op:           "getBookings",
		Message:      "HTTP error occurred: 500 Internal Server Error",
		StatusCode:   500,
		ResponseText: "Internal error",
	}}

	result, err := envelopeResult(env)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !result.IsError {
		t.Error("Expected error result")
	}

	text := resultText(t, result)
	if !strings.Contains(text, `"status_code": 500`) {
		t.Errorf("Expected status_code in error envelope, got %s", text)
	}
	if !strings.Contains(text, "HTTP error occurred") {
		t.Errorf("Expected error message in envelope, got %s", text)
	}
}

func TestRegisterCalcomTools(t *testing.T) {
	tests := []struct {
		name     string
		readOnly bool
	}{
		{name: "read-write", readOnly: false},
		{name: "read-only", readOnly: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc := newTestServerContext(t, "")
			s := mcpserver.NewMCPServer("test", "0.0.0", mcpserver.WithToolCapabilities(true))

			if err := RegisterCalcomTools(s, sc, tt.readOnly); err != nil {
				t.Fatalf("RegisterCalcomTools() error = %v", err)
			}
		})
	}
}

func TestListEventTypes_Dispatch(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/event-types" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"data": [{"id": 1, "slug": "intro-call"}]}`))
	}))
	defer ts.Close()

	sc := newTestServerContext(t, ts.URL)
	s := mcpserver.NewMCPServer("test", "0.0.0", mcpserver.WithToolCapabilities(true))
	if err := RegisterCalcomTools(s, sc, true); err != nil {
		t.Fatalf("RegisterCalcomTools() error = %v", err)
	}

	request := `{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"list_event_types","arguments":{}}}`
	response := s.HandleMessage(context.Background(), []byte(request))

	raw, err := json.Marshal(response)
	if err != nil {
		t.Fatalf("Failed to encode response: %v", err)
	}
	if strings.Contains(string(raw), `"isError":true`) {
		t.Fatalf("Expected success response, got %s", raw)
	}
	if !strings.Contains(string(raw), "intro-call") {
		t.Errorf("Expected remote body in response, got %s", raw)
	}
}

// newTestServerContext creates a server context backed by a Cal.com client
// pointing at baseURL. An empty baseURL leaves the default client in place.
func newTestServerContext(t *testing.T, baseURL string) *server.ServerContext {
	t.Helper()

	sc, err := server.NewServerContext(context.Background(), config.Config{})
	if err != nil {
		t.Fatalf("Failed to create server context: %v", err)
	}
	t.Cleanup(func() {
		_ = sc.Shutdown()
	})

	if baseURL != "" {
		sc.SetCalcomClient(calcom.NewClient(calcom.Config{
			APIKey:  "cal_test_key",
			BaseURL: baseURL,
		}))
	}

	return sc
}

// resultText extracts the text content of a tool result.
func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()

	if len(result.Content) == 0 {
		t.Fatal("Expected result content")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("Expected text content, got %T", result.Content[0])
	}
	return text.Text
}

func intPtr(n int) *int {
	return &n
}
