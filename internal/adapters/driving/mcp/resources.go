package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/registro-cli/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for registro resources.
	uriScheme = "registro://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "sources",
		Name:        "sources",
		Description: "Registry endpoints with their record counts and last error",
		MIMEType:    "application/json",
	}, s.handleSourcesResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "records/{recordId}",
		Name:        "record",
		Description: "A single registration looked up by id",
		MIMEType:    "application/json",
	}, s.handleRecordResource)
}

// sourceInfo summarises one source tag after a fetch cycle.
type sourceInfo struct {
	Source string `json:"source"`
	Label  string `json:"label"`
	Path   string `json:"path"`
	Count  int    `json:"count"`
}

type sourcesDocument struct {
	Sources []sourceInfo `json:"sources"`
	Total   int          `json:"total"`
	Errors  []string     `json:"errors,omitempty"`
}

// handleSourcesResource runs a fetch cycle and reports per-source counts.
func (s *Server) handleSourcesResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	listing, err := s.ports.Listing.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading listing: %w", err)
	}

	doc := sourcesDocument{Total: listing.Total(), Errors: listing.Errors}
	for _, ep := range domain.DefaultEndpoints() {
		doc.Sources = append(doc.Sources, sourceInfo{
			Source: string(ep.Source),
			Label:  ep.Source.Label(),
			Path:   ep.Path,
			Count:  listing.Count(ep.Source),
		})
	}

	return jsonResult(req.Params.URI, doc)
}

// handleRecordResource returns the first record whose id matches the URI.
func (s *Server) handleRecordResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	id := extractRecordID(req.Params.URI)
	if id == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	listing, err := s.ports.Listing.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading listing: %w", err)
	}

	for i := range listing.Records {
		if listing.Records[i].ID.String() == id {
			return jsonResult(req.Params.URI, toRecordOutput(&listing.Records[i]))
		}
	}
	return nil, mcp.ResourceNotFoundError(req.Params.URI)
}

func jsonResult(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling resource: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractRecordID extracts the record id from a URI like registro://records/{recordId}.
func extractRecordID(uri string) string {
	prefix := uriScheme + "records/"
	if !strings.HasPrefix(uri, prefix) {
		return ""
	}
	id := strings.TrimPrefix(uri, prefix)
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}
