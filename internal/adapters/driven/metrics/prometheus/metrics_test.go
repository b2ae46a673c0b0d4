package prometheus

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/registro-cli/internal/core/ports/driven"
)

func TestMetrics_ObserveFetch(t *testing.T) {
	m := New()

	m.ObserveFetch("INSCRIPCIONES", driven.OutcomeSuccess, 120*time.Millisecond)
	m.ObserveFetch("INSCRIPCIONES", driven.OutcomeSuccess, 80*time.Millisecond)
	m.ObserveFetch("REGISTRO_PERSONAS", driven.OutcomeFailure, time.Second)
	m.ObserveFetch("REGISTRO_PERSONAS", driven.OutcomeCancelled, 0)

	assert.InDelta(t, 2, testutil.ToFloat64(m.fetchTotal.WithLabelValues("INSCRIPCIONES", driven.OutcomeSuccess)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.fetchTotal.WithLabelValues("REGISTRO_PERSONAS", driven.OutcomeFailure)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.fetchTotal.WithLabelValues("REGISTRO_PERSONAS", driven.OutcomeCancelled)), 0)

	// Cancelled reads are not timed.
	assert.Equal(t, 2, testutil.CollectAndCount(m.fetchDuration))
}

func TestMetrics_ObserveSubmit(t *testing.T) {
	m := New()

	m.ObserveSubmit("voter", driven.OutcomeSuccess)
	m.ObserveSubmit("voter", driven.OutcomeInvalid)
	m.ObserveSubmit("volunteer", driven.OutcomeFailure)

	assert.InDelta(t, 1, testutil.ToFloat64(m.submitTotal.WithLabelValues("voter", driven.OutcomeSuccess)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.submitTotal.WithLabelValues("voter", driven.OutcomeInvalid)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.submitTotal.WithLabelValues("volunteer", driven.OutcomeFailure)), 0)
}

func TestMetrics_SeparateRegistries(t *testing.T) {
	// Creating two instances must not panic on duplicate registration.
	a := New()
	b := New()
	a.ObserveSubmit("voter", driven.OutcomeSuccess)

	assert.Equal(t, 1, testutil.CollectAndCount(a.submitTotal))
	assert.Equal(t, 0, testutil.CollectAndCount(b.submitTotal))
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.ObserveSubmit("voter", driven.OutcomeSuccess)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `registro_submit_total{form="voter",outcome="success"} 1`)
}

func TestMetrics_Serve(t *testing.T) {
	m := New()
	m.ObserveFetch("INSCRIPCIONES", driven.OutcomeSuccess, time.Millisecond)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- m.serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/metrics")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "registro_fetch_duration_seconds")

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestMetrics_Serve_BadAddr(t *testing.T) {
	err := New().Serve(context.Background(), "not-an-address")
	assert.Error(t, err)
}
