// Package logging provides slog helpers for consistent structured logging.
//
// It defines the canonical attribute keys used across the codebase and
// small constructors for common attributes (tool, operation, status,
// error). SanitizeToken masks the Cal.com API key so it can never end up
// in log output.
package logging
