package mcp

import (
	"context"

	"github.com/custodia-labs/registro-cli/internal/core/domain"
	"github.com/custodia-labs/registro-cli/internal/core/services"
)

// mockListingService is a mock implementation of driving.ListingService.
type mockListingService struct {
	listing *domain.Listing
	err     error
	loads   int
}

func (m *mockListingService) Load(_ context.Context) (*domain.Listing, error) {
	m.loads++
	if m.err != nil {
		return nil, m.err
	}
	if m.listing == nil {
		return domain.NewListing(domain.FetchResult{}), nil
	}
	return m.listing, nil
}

func (m *mockListingService) Apply(records []domain.Record, filter domain.ListFilter) []domain.Record {
	return services.Apply(records, filter)
}

// mockSubmissionService is a mock implementation of driving.SubmissionService.
type mockSubmissionService struct {
	response map[string]any
	err      error
	kind     domain.FormKind
	reg      domain.Registration
	calls    int
}

func (m *mockSubmissionService) Submit(
	_ context.Context,
	kind domain.FormKind,
	reg domain.Registration,
) (map[string]any, error) {
	if err := reg.Validate(); err != nil {
		return nil, err
	}
	m.calls++
	m.kind, m.reg = kind, reg
	return m.response, m.err
}

func newTestServer(listing *mockListingService, submission *mockSubmissionService) (*Server, error) {
	if listing == nil {
		listing = &mockListingService{}
	}
	if submission == nil {
		submission = &mockSubmissionService{}
	}
	return NewServer(&Ports{Listing: listing, Submission: submission})
}

func sampleListing() *domain.Listing {
	return domain.NewListing(domain.FetchResult{
		Records: []domain.Record{
			{
				ID: domain.NewRecordID(float64(1)), Source: domain.SourceInscripciones,
				RegisteredAt: "2024-03-01T10:00:00Z", Name: "Ana Pérez", Identification: "1010", Neighborhood: "Centro",
			},
			{
				ID: domain.NewRecordID("b-7"), Source: domain.SourceRegistroPersonas,
				RegisteredAt: "2024-03-02T10:00:00Z", Name: "Luis Gómez", Identification: "2020", Neighborhood: "Norte",
			},
		},
		Errors: []string{"/inscripciones: timeout"},
	})
}
