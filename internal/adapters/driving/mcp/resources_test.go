package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/registro-cli/internal/core/domain"
)

func TestExtractRecordID(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected string
	}{
		{"valid record URI", "registro://records/42", "42"},
		{"invalid prefix", "file://records/42", ""},
		{"nested path", "registro://records/42/extra", ""},
		{"empty URI", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractRecordID(tt.uri))
		})
	}
}

// Helper to create a ReadResourceRequest with the given URI.
func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func TestServer_handleSourcesResource(t *testing.T) {
	ctx := context.Background()

	t.Run("reports counts per endpoint", func(t *testing.T) {
		server, err := newTestServer(&mockListingService{listing: sampleListing()}, nil)
		require.NoError(t, err)

		result, err := server.handleSourcesResource(ctx, makeReadResourceRequest("registro://sources"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)

		var doc sourcesDocument
		require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &doc))
		assert.Equal(t, 2, doc.Total)
		require.Len(t, doc.Sources, 2)
		assert.Equal(t, "/inscripciones", doc.Sources[0].Path)
		assert.Equal(t, 1, doc.Sources[0].Count)
		assert.Equal(t, "Registro personas", doc.Sources[1].Label)
		assert.Equal(t, []string{"/inscripciones: timeout"}, doc.Errors)
	})

	t.Run("returns error on load failure", func(t *testing.T) {
		server, err := newTestServer(&mockListingService{err: domain.ErrAPIUnavailable}, nil)
		require.NoError(t, err)

		_, err = server.handleSourcesResource(ctx, makeReadResourceRequest("registro://sources"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "loading listing")
	})
}

func TestServer_handleRecordResource(t *testing.T) {
	ctx := context.Background()

	t.Run("finds record by id", func(t *testing.T) {
		server, err := newTestServer(&mockListingService{listing: sampleListing()}, nil)
		require.NoError(t, err)

		result, err := server.handleRecordResource(ctx, makeReadResourceRequest("registro://records/b-7"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Contains(t, result.Contents[0].Text, "Luis Gómez")
		assert.Equal(t, "application/json", result.Contents[0].MIMEType)
	})

	t.Run("unknown id returns not found", func(t *testing.T) {
		server, err := newTestServer(&mockListingService{listing: sampleListing()}, nil)
		require.NoError(t, err)

		_, err = server.handleRecordResource(ctx, makeReadResourceRequest("registro://records/999"))

		require.Error(t, err)
	})

	t.Run("invalid URI does not load", func(t *testing.T) {
		listing := &mockListingService{listing: sampleListing()}
		server, err := newTestServer(listing, nil)
		require.NoError(t, err)

		_, err = server.handleRecordResource(ctx, makeReadResourceRequest("registro://invalid"))

		require.Error(t, err)
		assert.Zero(t, listing.loads)
	})
}
