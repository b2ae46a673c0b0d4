package services

import (
	"github.com/custodia-labs/registro-cli/internal/core/domain"
)

// envelopeKeys are the wrapper fields accepted around a collection,
// checked in priority order.
var envelopeKeys = []string{"data", "items", "rows"}

// collectionStrategy tries to read a collection out of a decoded JSON value.
type collectionStrategy struct {
	name    string
	extract func(v any) ([]any, bool)
}

// collectionStrategies are tried in order; the first match wins.
var collectionStrategies = buildCollectionStrategies()

func buildCollectionStrategies() []collectionStrategy {
	strategies := []collectionStrategy{
		{
			name: "array",
			extract: func(v any) ([]any, bool) {
				items, ok := v.([]any)
				return items, ok
			},
		},
	}
	for _, key := range envelopeKeys {
		strategies = append(strategies, collectionStrategy{
			name:    "envelope:" + key,
			extract: envelopeField(key),
		})
	}
	return strategies
}

func envelopeField(key string) func(v any) ([]any, bool) {
	return func(v any) ([]any, bool) {
		obj, ok := v.(map[string]any)
		if !ok {
			return nil, false
		}
		items, ok := obj[key].([]any)
		return items, ok
	}
}

// ExtractCollection returns the sequence of raw records carried by v.
// A bare array is returned as is; otherwise the first envelope field holding
// an array is used. Any other shape yields an empty sequence.
// Array elements that are not objects become empty raw records so the
// sequence keeps its length.
func ExtractCollection(v any) []domain.RawRecord {
	items, _ := extractItems(v)
	records := make([]domain.RawRecord, len(items))
	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			obj = map[string]any{}
		}
		records[i] = domain.RawRecord(obj)
	}
	return records
}

// extractItems also reports which strategy matched, for logging.
func extractItems(v any) ([]any, string) {
	for _, s := range collectionStrategies {
		if items, ok := s.extract(v); ok {
			return items, s.name
		}
	}
	return nil, "none"
}

// fieldStrategy resolves one normalised field from an ordered alias chain.
type fieldStrategy struct {
	name    string
	aliases []string
	assign  func(r *domain.Record, v any)
}

// lookup returns the first alias that is present and non-null.
// An empty string counts as present.
func (f fieldStrategy) lookup(raw domain.RawRecord) (any, bool) {
	for _, alias := range f.aliases {
		if v, ok := raw[alias]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// fieldStrategies maps API aliases onto the normalised record.
// Alias order is the preference order.
var fieldStrategies = []fieldStrategy{
	{
		name:    "id",
		aliases: []string{"id"},
		assign:  func(r *domain.Record, v any) { r.ID = domain.NewRecordID(v) },
	},
	{
		name:    "registeredAt",
		aliases: []string{"fecha_registro", "created_at"},
		assign:  func(r *domain.Record, v any) { r.RegisteredAt = domain.ScalarString(v) },
	},
	{
		name:    "name",
		aliases: []string{"nombre", "full_name"},
		assign:  func(r *domain.Record, v any) { r.Name = domain.ScalarString(v) },
	},
	{
		name:    "identification",
		aliases: []string{"identificacion", "documento", "cc"},
		assign:  func(r *domain.Record, v any) { r.Identification = domain.ScalarString(v) },
	},
	{
		name:    "phone",
		aliases: []string{"celular", "telefono"},
		assign:  func(r *domain.Record, v any) { r.Phone = domain.ScalarString(v) },
	},
	{
		name:    "address",
		aliases: []string{"direccion"},
		assign:  func(r *domain.Record, v any) { r.Address = domain.ScalarString(v) },
	},
	{
		name:    "neighborhood",
		aliases: []string{"barrio"},
		assign:  func(r *domain.Record, v any) { r.Neighborhood = domain.ScalarString(v) },
	},
}

// NormalizeRecord projects a raw record into the canonical shape and tags it
// with its source. Every field is resolved independently; missing fields
// stay empty.
func NormalizeRecord(raw domain.RawRecord, source domain.SourceTag) domain.Record {
	r := domain.Record{Source: source, Raw: raw}
	for _, f := range fieldStrategies {
		if v, ok := f.lookup(raw); ok {
			f.assign(&r, v)
		}
	}
	return r
}

// NormalizeCollection extracts and normalises every record in v.
func NormalizeCollection(v any, source domain.SourceTag) []domain.Record {
	raws := ExtractCollection(v)
	records := make([]domain.Record, len(raws))
	for i, raw := range raws {
		records[i] = NormalizeRecord(raw, source)
	}
	return records
}
