// Package tui provides an interactive terminal user interface for registro.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"context"

	"github.com/custodia-labs/registro-cli/internal/core/domain"
	"github.com/custodia-labs/registro-cli/internal/core/ports/driving"
)

// ConfigWatcher reports changes to the persisted configuration.
type ConfigWatcher interface {
	Watch(ctx context.Context) (<-chan struct{}, error)
}

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Listing fetches, filters and sorts registrations.
	Listing driving.ListingService

	// Submission posts the data-entry forms.
	Submission driving.SubmissionService

	// Settings re-reads configuration after a change. Optional.
	Settings driving.SettingsService

	// Watcher signals configuration changes. Optional.
	Watcher ConfigWatcher

	// OnReload applies reloaded settings to the API adapter. Optional.
	OnReload func(domain.APISettings)
}

// NewPorts creates a new Ports aggregate with the required services.
func NewPorts(listing driving.ListingService, submission driving.SubmissionService) *Ports {
	return &Ports{
		Listing:    listing,
		Submission: submission,
	}
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Listing == nil {
		return ErrMissingListingService
	}
	if p.Submission == nil {
		return ErrMissingSubmissionService
	}
	return nil
}
