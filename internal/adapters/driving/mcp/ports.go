package mcp

import (
	"github.com/custodia-labs/registro-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
type Ports struct {
	// Listing loads, filters and sorts registrations.
	Listing driving.ListingService

	// Submission posts the voter and volunteer forms.
	Submission driving.SubmissionService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Listing == nil {
		return ErrMissingListingService
	}
	if p.Submission == nil {
		return ErrMissingSubmissionService
	}
	return nil
}
