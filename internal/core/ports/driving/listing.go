package driving

import (
	"context"

	"github.com/custodia-labs/registro-cli/internal/core/domain"
)

// ListingService provides the read path: fetch, merge, filter and sort.
type ListingService interface {
	// Load runs one fetch cycle against every configured endpoint.
	// Per-endpoint failures are reported in Listing.Errors, never as err.
	// A cancelled ctx yields whatever settled before cancellation.
	Load(ctx context.Context) (*domain.Listing, error)

	// Apply filters and sorts records for display.
	// It is pure and recomputes from scratch on every call.
	Apply(records []domain.Record, filter domain.ListFilter) []domain.Record
}
