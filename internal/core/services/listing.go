package services

import (
	"context"
	"time"

	"github.com/custodia-labs/registro-cli/internal/core/domain"
	"github.com/custodia-labs/registro-cli/internal/core/ports/driving"
	"github.com/custodia-labs/registro-cli/internal/logger"
)

// Ensure ListingService implements the interface.
var _ driving.ListingService = (*ListingService)(nil)

// ListingService runs fetch cycles and the filter/sort pipeline.
type ListingService struct {
	fetcher *Fetcher
}

// NewListingService creates a new listing service.
func NewListingService(fetcher *Fetcher) *ListingService {
	return &ListingService{fetcher: fetcher}
}

// Load runs one fetch cycle. Records are rebuilt from scratch every call.
func (s *ListingService) Load(ctx context.Context) (*domain.Listing, error) {
	if s.fetcher == nil || s.fetcher.api == nil {
		return nil, domain.ErrAPIUnavailable
	}

	logger.Section("Fetch Cycle")
	start := time.Now()

	res := s.fetcher.FetchAll(ctx)
	listing := domain.NewListing(res)

	logger.Info("fetched %d record(s) from %d endpoint(s) in %s",
		listing.Total(), len(s.fetcher.Endpoints()), time.Since(start))
	for _, msg := range listing.Errors {
		logger.Warn("%s", msg)
	}

	return listing, nil
}

// Apply filters and sorts records for display.
func (s *ListingService) Apply(records []domain.Record, filter domain.ListFilter) []domain.Record {
	return Apply(records, filter)
}
