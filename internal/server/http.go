package server

import (
	"context"
	"net/http"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/arleypeter/calcom-mcp/internal/instrumentation"
)

// HTTPServer wraps an MCP server with the streamable HTTP transport.
// It serves the MCP endpoint at /mcp together with Kubernetes health probes,
// and records request metrics when instrumentation is configured.
type HTTPServer struct {
	mcpServer     *mcpserver.MCPServer
	httpServer    *http.Server
	healthChecker *HealthChecker
	metrics       *instrumentation.Metrics
}

// NewHTTPServer creates a new HTTP server for the given MCP server.
func NewHTTPServer(mcpServer *mcpserver.MCPServer) *HTTPServer {
	return &HTTPServer{
		mcpServer: mcpServer,
	}
}

// SetHealthChecker sets the health checker whose endpoints are registered
// alongside the MCP endpoint.
func (s *HTTPServer) SetHealthChecker(h *HealthChecker) {
	s.healthChecker = h
}

// SetMetrics sets the metrics recorder for HTTP request instrumentation.
func (s *HTTPServer) SetMetrics(m *instrumentation.Metrics) {
	s.metrics = m
}

// statusRecorder captures the response status code for metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// instrumentHandler wraps a handler with HTTP request metrics.
func (s *HTTPServer) instrumentHandler(path string, next http.Handler) http.Handler {
	if s.metrics == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)
		s.metrics.RecordHTTPRequest(r.Context(), r.Method, path, recorder.status, time.Since(start))
	})
}

// Start starts the HTTP server on the given address. Blocks until the
// server stops.
func (s *HTTPServer) Start(addr string) error {
	mux := http.NewServeMux()

	streamableServer := mcpserver.NewStreamableHTTPServer(s.mcpServer,
		mcpserver.WithEndpointPath("/mcp"),
	)
	mux.Handle("/mcp", s.instrumentHandler("/mcp", streamableServer))

	if s.healthChecker != nil {
		s.healthChecker.RegisterHealthEndpoints(mux)
	}

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	if s.healthChecker != nil {
		s.healthChecker.SetReady(false)
	}
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
