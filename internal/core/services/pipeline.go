package services

import (
	"math"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/custodia-labs/registro-cli/internal/core/domain"
)

// ApplyFilter returns the records passing both the source filter and the
// free-text query. The input slice is not modified.
func ApplyFilter(records []domain.Record, filter domain.ListFilter) []domain.Record {
	needle := foldText(strings.TrimSpace(filter.Query))

	out := make([]domain.Record, 0, len(records))
	for i := range records {
		if !filter.Source.Matches(records[i].Source) {
			continue
		}
		if needle != "" && !matchesQuery(&records[i], needle) {
			continue
		}
		out = append(out, records[i])
	}
	return out
}

// matchesQuery reports whether needle is a substring of any searchable field.
// needle must already be folded.
func matchesQuery(r *domain.Record, needle string) bool {
	for _, field := range r.SearchableFields() {
		if strings.Contains(foldText(field), needle) {
			return true
		}
	}
	return false
}

// foldText lowercases s after composing it, so precomposed and combining
// accents compare equal.
func foldText(s string) string {
	return strings.ToLower(norm.NFC.String(s))
}

// missingTimestamp sorts records without a usable timestamp last.
const missingTimestamp = math.MinInt64

// sortKey caches the values compared while sorting.
type sortKey struct {
	registered int64
	id         float64
}

func keyOf(r *domain.Record) sortKey {
	k := sortKey{registered: missingTimestamp, id: r.ID.Numeric()}
	if t, ok := r.RegisteredTime(); ok {
		k.registered = t.UnixMilli()
	}
	return k
}

// SortRecords orders records newest first, breaking timestamp ties by
// descending numeric id. The order is total for distinct (timestamp, id)
// pairs and stable otherwise.
func SortRecords(records []domain.Record) {
	keys := make([]sortKey, len(records))
	for i := range records {
		keys[i] = keyOf(&records[i])
	}

	idx := make([]int, len(records))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		ka, kb := keys[idx[a]], keys[idx[b]]
		if ka.registered != kb.registered {
			return ka.registered > kb.registered
		}
		return ka.id > kb.id
	})

	sorted := make([]domain.Record, len(records))
	for i, j := range idx {
		sorted[i] = records[j]
	}
	copy(records, sorted)
}

// Apply filters and sorts records for display.
func Apply(records []domain.Record, filter domain.ListFilter) []domain.Record {
	out := ApplyFilter(records, filter)
	SortRecords(out)
	return out
}
