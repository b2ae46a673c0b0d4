package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/registro-cli/internal/core/domain"
)

// ListInput is the input schema for the list_registrations tool.
type ListInput struct {
	Source string `json:"source,omitempty" jsonschema:"ALL, INSCRIPCIONES or REGISTRO_PERSONAS (default ALL)"`
	Query  string `json:"query,omitempty" jsonschema:"case-insensitive text matched against name, id, phone, address and neighbourhood"`
}

// ListOutput is the output schema for the list_registrations tool.
type ListOutput struct {
	Records []RecordOutput `json:"records"`
	Count   int            `json:"count"`
	Total   int            `json:"total"`
	Errors  []string       `json:"errors,omitempty"`
}

// RecordOutput is a single registration as shown in the listing.
type RecordOutput struct {
	ID             string `json:"id,omitempty"`
	Source         string `json:"source"`
	RegisteredAt   string `json:"fecha_registro,omitempty"`
	Nombre         string `json:"nombre"`
	Identificacion string `json:"identificacion"`
	Celular        string `json:"celular,omitempty"`
	Direccion      string `json:"direccion,omitempty"`
	Barrio         string `json:"barrio,omitempty"`
}

// RegisterInput is the input schema for the register tool.
type RegisterInput struct {
	Form           string `json:"form" jsonschema:"voter or volunteer"`
	Nombre         string `json:"nombre" jsonschema:"full name (required)"`
	Identificacion string `json:"identificacion" jsonschema:"identification number (required)"`
	Celular        string `json:"celular,omitempty" jsonschema:"mobile phone"`
	Direccion      string `json:"direccion,omitempty" jsonschema:"address"`
	Barrio         string `json:"barrio,omitempty" jsonschema:"neighbourhood"`
}

// RegisterOutput is the output schema for the register tool.
type RegisterOutput struct {
	Saved    bool           `json:"saved"`
	ID       string         `json:"id,omitempty"`
	Response map[string]any `json:"response,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_registrations",
		Description: "List registrations from both registry endpoints, newest first",
	}, s.handleList)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "register",
		Description: "Submit the voter or volunteer registration form",
	}, s.handleRegister)
}

// handleList runs one fetch cycle and applies the filter.
// Endpoint failures are reported alongside whatever records did load.
func (s *Server) handleList(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListInput,
) (*mcp.CallToolResult, ListOutput, error) {
	source, err := domain.ParseSourceFilter(input.Source)
	if err != nil {
		return nil, ListOutput{}, err
	}

	listing, err := s.ports.Listing.Load(ctx)
	if err != nil {
		return nil, ListOutput{}, err
	}

	visible := s.ports.Listing.Apply(listing.Records, domain.ListFilter{Source: source, Query: input.Query})
	output := ListOutput{
		Records: make([]RecordOutput, len(visible)),
		Count:   len(visible),
		Total:   listing.Total(),
		Errors:  listing.Errors,
	}
	for i := range visible {
		output.Records[i] = toRecordOutput(&visible[i])
	}

	return nil, output, nil
}

// handleRegister submits one form. Missing required fields fail locally.
func (s *Server) handleRegister(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RegisterInput,
) (*mcp.CallToolResult, RegisterOutput, error) {
	kind, err := domain.ParseFormKind(input.Form)
	if err != nil {
		return nil, RegisterOutput{}, err
	}

	reg := domain.Registration{
		Nombre:         input.Nombre,
		Identificacion: input.Identificacion,
		Celular:        input.Celular,
		Direccion:      input.Direccion,
		Barrio:         input.Barrio,
	}

	resp, err := s.ports.Submission.Submit(ctx, kind, reg)
	if err != nil {
		return nil, RegisterOutput{}, err
	}

	output := RegisterOutput{Saved: true, Response: resp}
	if id, ok := resp["id"]; ok {
		output.ID = domain.ScalarString(id)
	}
	return nil, output, nil
}

func toRecordOutput(r *domain.Record) RecordOutput {
	return RecordOutput{
		ID:             r.ID.String(),
		Source:         string(r.Source),
		RegisteredAt:   r.RegisteredAt,
		Nombre:         r.Name,
		Identificacion: r.Identification,
		Celular:        r.Phone,
		Direccion:      r.Address,
		Barrio:         r.Neighborhood,
	}
}
