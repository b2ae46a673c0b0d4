package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/custodia-labs/registro-cli/internal/core/domain"
	"github.com/custodia-labs/registro-cli/internal/core/ports/driven"
	"github.com/custodia-labs/registro-cli/internal/logger"
)

// Fetcher reads every configured endpoint concurrently and merges the
// results once all of them have settled.
type Fetcher struct {
	api       driven.RegistryAPI
	endpoints []domain.Endpoint
	metrics   driven.Metrics
}

// NewFetcher creates a fetcher over the given endpoints.
// A nil or empty endpoint list means domain.DefaultEndpoints.
func NewFetcher(api driven.RegistryAPI, endpoints []domain.Endpoint) *Fetcher {
	if len(endpoints) == 0 {
		endpoints = domain.DefaultEndpoints()
	}
	return &Fetcher{
		api:       api,
		endpoints: endpoints,
		metrics:   driven.NopMetrics{},
	}
}

// SetMetrics sets the metrics sink. Nil restores the no-op sink.
func (f *Fetcher) SetMetrics(m driven.Metrics) {
	if m == nil {
		m = driven.NopMetrics{}
	}
	f.metrics = m
}

// Endpoints returns the configured endpoints in order.
func (f *Fetcher) Endpoints() []domain.Endpoint {
	return f.endpoints
}

// endpointOutcome is the settled result of one endpoint.
type endpointOutcome struct {
	records []domain.Record
	err     error
}

// FetchAll issues one GET per endpoint with the shared ctx and waits for all
// of them. Failures never cancel sibling requests. Errors caused by ctx
// cancellation are dropped rather than reported.
func (f *Fetcher) FetchAll(ctx context.Context) domain.FetchResult {
	outcomes := make([]endpointOutcome, len(f.endpoints))

	var wg sync.WaitGroup
	for i, ep := range f.endpoints {
		wg.Add(1)
		go func(i int, ep domain.Endpoint) {
			defer wg.Done()
			outcomes[i] = f.fetchOne(ctx, ep)
		}(i, ep)
	}
	wg.Wait()

	return joinOutcomes(f.endpoints, outcomes)
}

// fetchOne reads and normalises a single endpoint.
func (f *Fetcher) fetchOne(ctx context.Context, ep domain.Endpoint) endpointOutcome {
	start := time.Now()

	if err := ctx.Err(); err != nil {
		f.metrics.ObserveFetch(string(ep.Source), driven.OutcomeCancelled, 0)
		return endpointOutcome{err: err}
	}

	body, err := f.api.Get(ctx, ep.Path)
	elapsed := time.Since(start)
	if err != nil {
		outcome := driven.OutcomeFailure
		if domain.IsCancellation(err) {
			outcome = driven.OutcomeCancelled
		}
		f.metrics.ObserveFetch(string(ep.Source), outcome, elapsed)
		logger.Debug("%s failed after %s: %v", ep.Path, elapsed, err)
		return endpointOutcome{err: err}
	}

	items, strategy := extractItems(body)
	logger.Debug("%s returned %d item(s) via %s", ep.Path, len(items), strategy)

	f.metrics.ObserveFetch(string(ep.Source), driven.OutcomeSuccess, elapsed)
	return endpointOutcome{records: NormalizeCollection(body, ep.Source)}
}

// joinOutcomes merges settled outcomes in configuration order.
func joinOutcomes(endpoints []domain.Endpoint, outcomes []endpointOutcome) domain.FetchResult {
	res := domain.FetchResult{Records: []domain.Record{}}
	for i, o := range outcomes {
		if o.err == nil {
			res.Records = append(res.Records, o.records...)
			continue
		}
		if domain.IsCancellation(o.err) {
			continue
		}
		res.Errors = append(res.Errors, failureMessage(endpoints[i].Path, o.err))
	}
	return res
}

// failureMessage renders a per-endpoint failure for display.
func failureMessage(path string, err error) string {
	var apiErr *domain.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if msg := err.Error(); msg != "" {
		return fmt.Sprintf("%s -> %s", path, msg)
	}
	return fmt.Sprintf("Error en %s", path)
}
