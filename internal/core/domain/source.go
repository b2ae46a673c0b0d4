package domain

import (
	"fmt"
	"strings"
)

// SourceTag identifies which configured read endpoint a record came from.
// It is set by the fetcher, never by the API.
type SourceTag string

const (
	// SourceInscripciones tags records read from /inscripciones.
	SourceInscripciones SourceTag = "INSCRIPCIONES"
	// SourceRegistroPersonas tags records read from /registro_personas.
	SourceRegistroPersonas SourceTag = "REGISTRO_PERSONAS"
)

// Label returns the human-readable name of the source.
func (s SourceTag) Label() string {
	switch s {
	case SourceInscripciones:
		return "Inscripciones"
	case SourceRegistroPersonas:
		return "Registro personas"
	default:
		return string(s)
	}
}

// SourceFilter selects records by source. SourceAll passes everything.
type SourceFilter string

// SourceAll is the filter value that matches every source.
const SourceAll SourceFilter = "ALL"

// Matches reports whether a record with the given tag passes the filter.
func (f SourceFilter) Matches(tag SourceTag) bool {
	if f == "" || f == SourceAll {
		return true
	}
	return SourceTag(f) == tag
}

// ParseSourceFilter converts user input into a SourceFilter.
// Matching is case-insensitive; empty input means SourceAll.
func ParseSourceFilter(s string) (SourceFilter, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", string(SourceAll):
		return SourceAll, nil
	case string(SourceInscripciones):
		return SourceFilter(SourceInscripciones), nil
	case string(SourceRegistroPersonas):
		return SourceFilter(SourceRegistroPersonas), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownSource, s)
	}
}

// Endpoint is a read endpoint paired with the tag applied to its records.
type Endpoint struct {
	Path   string
	Source SourceTag
}

// DefaultEndpoints returns the read endpoints in configuration order.
// Merged records and fetch errors follow this order.
func DefaultEndpoints() []Endpoint {
	return []Endpoint{
		{Path: "/inscripciones", Source: SourceInscripciones},
		{Path: "/registro_personas", Source: SourceRegistroPersonas},
	}
}
