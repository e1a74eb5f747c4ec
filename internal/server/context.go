package server

import (
	"context"
	"sync"

	"github.com/arleypeter/calcom-mcp/internal/calcom"
	"github.com/arleypeter/calcom-mcp/internal/config"
	"github.com/arleypeter/calcom-mcp/internal/instrumentation"
)

// ServerContext holds the context for the MCP server
type ServerContext struct {
	ctx          context.Context
	cancel       context.CancelFunc
	config       config.Config
	calcomClient *calcom.Client
	metrics      *instrumentation.Metrics
	auditLogger  *instrumentation.AuditLogger
	readOnly     bool
	mu           sync.RWMutex
	shutdown     bool
}

// NewServerContext creates a new server context.
// The Cal.com client is always created, even without an API key: operations
// on a keyless client report the configuration error in their result envelope.
func NewServerContext(ctx context.Context, cfg config.Config) (*ServerContext, error) {
	shutdownCtx, cancel := context.WithCancel(ctx)

	client := calcom.NewClient(cfg.ClientConfig())

	return &ServerContext{
		ctx:          shutdownCtx,
		cancel:       cancel,
		config:       cfg,
		calcomClient: client,
		shutdown:     false,
	}, nil
}

// Context returns the server context
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// Config returns the server configuration.
func (sc *ServerContext) Config() config.Config {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.config
}

// CalcomClient returns the Cal.com API client.
func (sc *ServerContext) CalcomClient() *calcom.Client {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.calcomClient
}

// SetCalcomClient sets the Cal.com API client. Used by tests to inject
// clients pointed at fake servers.
func (sc *ServerContext) SetCalcomClient(client *calcom.Client) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.calcomClient = client
}

// Metrics returns the metrics recorder, or nil when instrumentation is not configured.
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.metrics
}

// SetMetrics sets the metrics recorder.
func (sc *ServerContext) SetMetrics(m *instrumentation.Metrics) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.metrics = m
}

// AuditLogger returns the audit logger, or nil when audit logging is not configured.
func (sc *ServerContext) AuditLogger() *instrumentation.AuditLogger {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.auditLogger
}

// SetAuditLogger sets the audit logger.
func (sc *ServerContext) SetAuditLogger(al *instrumentation.AuditLogger) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.auditLogger = al
}

// ReadOnly returns whether the server runs in read-only mode.
// In read-only mode the create_booking tool is not registered.
func (sc *ServerContext) ReadOnly() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.readOnly
}

// SetReadOnly sets the read-only mode.
func (sc *ServerContext) SetReadOnly(readOnly bool) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.readOnly = readOnly
}

// IsShutdown returns whether the server has been shutdown
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// Shutdown shuts down the server context
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}

	sc.shutdown = true
	sc.cancel()
	return nil
}
