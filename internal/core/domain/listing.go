package domain

import "strings"

// FetchResult is the settle-all outcome of one fetch cycle.
// Records follow endpoint configuration order; so do Errors.
type FetchResult struct {
	Records []Record
	Errors  []string
}

// ListFilter holds the two independent listing predicates.
type ListFilter struct {
	Source SourceFilter
	Query  string
}

// Listing is a fetch cycle's records together with its diagnostics.
type Listing struct {
	Records []Record
	Errors  []string
	Counts  map[SourceTag]int
}

// NewListing builds a Listing from a fetch result, counting records per source.
func NewListing(res FetchResult) *Listing {
	counts := make(map[SourceTag]int)
	for i := range res.Records {
		counts[res.Records[i].Source]++
	}
	return &Listing{
		Records: res.Records,
		Errors:  res.Errors,
		Counts:  counts,
	}
}

// Total returns the number of records across all sources.
func (l *Listing) Total() int {
	return len(l.Records)
}

// Count returns the number of records from a single source.
func (l *Listing) Count(tag SourceTag) int {
	return l.Counts[tag]
}

// HasErrors reports whether any endpoint failed.
func (l *Listing) HasErrors() bool {
	return len(l.Errors) > 0
}

// ErrorSummary joins the per-endpoint failures for display.
func (l *Listing) ErrorSummary() string {
	return strings.Join(l.Errors, " | ")
}
