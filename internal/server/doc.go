// Package server provides the MCP server context, health probes, and the
// HTTP transport and metrics servers for the calcom-mcp application.
//
// # Key Components
//
// ServerContext holds the Cal.com API client together with the server
// configuration, metrics recorder, and audit logger. The client is created
// even when no API key is configured: operations on a keyless client report
// the configuration error in their result envelope, so the server always
// starts and tools always respond.
//
// HTTPServer wraps an MCP server with the streamable HTTP transport,
// serving the MCP endpoint at /mcp alongside Kubernetes health probes
// (/healthz, /readyz, /healthz/detailed) with optional request metrics.
//
// MetricsServer exposes Prometheus metrics on a dedicated port, isolating
// operational metrics from application traffic.
package server
