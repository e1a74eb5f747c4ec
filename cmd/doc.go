// Package cmd implements the command-line interface for calcom-mcp.
//
// This package provides the following commands:
//   - serve: Start the MCP server to provide Cal.com tools for AI assistants
//   - status: Report whether the Cal.com API key is configured
//   - version: Display version information
//   - generate-docs: Generate markdown documentation for all MCP tools
//
// The serve command is the default command when no subcommand is specified.
package cmd
