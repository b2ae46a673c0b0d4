// Package mcp provides an MCP (Model Context Protocol) server adapter for registro.
// It lets AI assistants read the merged registrations and submit the forms.
package mcp

import "errors"

var (
	// ErrMissingListingService is returned when the listing service is not provided.
	ErrMissingListingService = errors.New("mcp: listing service is required")

	// ErrMissingSubmissionService is returned when the submission service is not provided.
	ErrMissingSubmissionService = errors.New("mcp: submission service is required")
)
