// Package prometheus exposes fetch and submission metrics in the
// Prometheus text format.
package prometheus

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/custodia-labs/registro-cli/internal/core/ports/driven"
	"github.com/custodia-labs/registro-cli/internal/logger"
)

// Ensure Metrics implements the interface.
var _ driven.Metrics = (*Metrics)(nil)

// Metrics records observations on its own registry.
type Metrics struct {
	registry      *prometheus.Registry
	fetchTotal    *prometheus.CounterVec
	fetchDuration *prometheus.HistogramVec
	submitTotal   *prometheus.CounterVec
}

// New creates and registers the collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		fetchTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "registro_fetch_total",
			Help: "Endpoint reads by source and outcome.",
		}, []string{"source", "outcome"}),
		fetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "registro_fetch_duration_seconds",
			Help:    "Latency of endpoint reads.",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
		}, []string{"source"}),
		submitTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "registro_submit_total",
			Help: "Form submissions by form and outcome.",
		}, []string{"form", "outcome"}),
	}
	m.registry.MustRegister(m.fetchTotal, m.fetchDuration, m.submitTotal)
	return m
}

// ObserveFetch implements driven.Metrics.
func (m *Metrics) ObserveFetch(source, outcome string, elapsed time.Duration) {
	m.fetchTotal.WithLabelValues(source, outcome).Inc()
	if outcome == driven.OutcomeSuccess || outcome == driven.OutcomeFailure {
		m.fetchDuration.WithLabelValues(source).Observe(elapsed.Seconds())
	}
}

// ObserveSubmit implements driven.Metrics.
func (m *Metrics) ObserveSubmit(form, outcome string) {
	m.submitTotal.WithLabelValues(form, outcome).Inc()
}

// Registry returns the registry holding the collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is done.
func (m *Metrics) Serve(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return m.serve(ctx, ln)
}

func (m *Metrics) serve(ctx context.Context, ln net.Listener) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())

	server := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	logger.Info("serving metrics at http://%s/metrics", ln.Addr())
	if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve metrics: %w", err)
	}
	return nil
}
