package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/registro-cli/internal/core/domain"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return New(domain.APISettings{BaseURL: server.URL + "/", Timeout: 5 * time.Second})
}

func TestNew_NormalisesBaseURL(t *testing.T) {
	c := New(domain.APISettings{BaseURL: " https://api.example.test// "})
	assert.Equal(t, "https://api.example.test", c.BaseURL())
}

func TestClient_Get_DecodesJSON(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/inscripciones", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		_, err := uuid.Parse(r.Header.Get(HeaderRequestID))
		assert.NoError(t, err)
		_, _ = io.WriteString(w, `[{"id":1,"nombre":"Ana"}]`)
	})

	body, err := c.Get(context.Background(), "/inscripciones")

	require.NoError(t, err)
	items, ok := body.([]any)
	require.True(t, ok)
	require.Len(t, items, 1)
	assert.Equal(t, "Ana", items[0].(map[string]any)["nombre"])
}

func TestClient_Get_StatusError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, "database unavailable")
	})

	_, err := c.Get(context.Background(), "/registro_personas")

	var apiErr *domain.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 500, apiErr.Status)
	assert.Equal(t, "/registro_personas", apiErr.Path)
	assert.Equal(t, "/registro_personas -> HTTP 500: database unavailable", apiErr.Error())
}

func TestClient_Get_StatusErrorTruncatesBody(t *testing.T) {
	long := strings.Repeat("x", 500)
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = io.WriteString(w, long)
	})

	_, err := c.Get(context.Background(), "/inscripciones")

	require.Error(t, err)
	assert.Equal(t, "/inscripciones -> HTTP 502: "+strings.Repeat("x", 200), err.Error())
}

func TestClient_Get_InvalidJSON(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "<html>")
	})

	_, err := c.Get(context.Background(), "/inscripciones")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode response")
}

func TestClient_Get_TransportError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()
	c := New(domain.APISettings{BaseURL: url})

	_, err := c.Get(context.Background(), "/inscripciones")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "send request")
	assert.False(t, domain.IsCancellation(err))
}

func TestClient_Get_Cancelled(t *testing.T) {
	release := make(chan struct{})
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		<-release
	})
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err := c.Get(ctx, "/inscripciones")

	require.Error(t, err)
	assert.True(t, domain.IsCancellation(err))
}

func TestClient_Post_SendsJSON(t *testing.T) {
	var got domain.Registration
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/inscripciones", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"id":42}`)
	})
	reg := domain.Registration{Nombre: "Ana", Identificacion: "123", Barrio: "Centro"}

	resp, err := c.Post(context.Background(), "/inscripciones", reg)

	require.NoError(t, err)
	assert.Equal(t, map[string]any{"id": 42.0}, resp)
	assert.Equal(t, reg, got)
}

func TestClient_Post_NonObjectSuccessBody(t *testing.T) {
	bodies := []string{"", "OK", "[1,2]", "null"}

	for _, body := range bodies {
		t.Run(body, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				_, _ = io.WriteString(w, body)
			})

			resp, err := c.Post(context.Background(), "/registro_personas", map[string]string{})

			require.NoError(t, err)
			assert.Equal(t, map[string]any{}, resp)
		})
	}
}

func TestClient_Post_StatusError(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		expected string
	}{
		{"server message", http.StatusConflict, `{"message":"Identificación ya registrada"}`, "Identificación ya registrada"},
		{"empty message", http.StatusBadRequest, `{"message":""}`, "HTTP 400"},
		{"no message", http.StatusInternalServerError, `{"error":"x"}`, "HTTP 500"},
		{"not json", http.StatusServiceUnavailable, `down`, "HTTP 503"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})

			_, err := c.Post(context.Background(), "/inscripciones", map[string]string{})

			var apiErr *domain.APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.expected, apiErr.Error())
		})
	}
}

func TestClient_Apply_RepointsBaseURL(t *testing.T) {
	first := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"data":[{"id":1}]}`)
	}))
	defer first.Close()
	second := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"data":[{"id":1},{"id":2}]}`)
	}))
	defer second.Close()

	c := New(domain.APISettings{BaseURL: first.URL})
	body, err := c.Get(context.Background(), "/inscripciones")
	require.NoError(t, err)
	assert.Len(t, body.(map[string]any)["data"], 1)

	c.Apply(domain.APISettings{BaseURL: second.URL})
	body, err = c.Get(context.Background(), "/inscripciones")
	require.NoError(t, err)
	assert.Len(t, body.(map[string]any)["data"], 2)
}

func TestClient_RateLimiter(t *testing.T) {
	c := New(domain.APISettings{BaseURL: "http://example.test", RequestsPerSecond: 2.5})
	_, _, limiter := c.snapshot()
	require.NotNil(t, limiter)
	assert.Equal(t, 3, limiter.Burst())

	c.Apply(domain.APISettings{BaseURL: "http://example.test"})
	_, _, limiter = c.snapshot()
	assert.Nil(t, limiter)
}

func TestClient_RateLimiter_CancelledWait(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `[]`)
	})
	c.Apply(domain.APISettings{BaseURL: c.BaseURL(), RequestsPerSecond: 0.001})

	// The first request consumes the only token.
	_, err := c.Get(context.Background(), "/inscripciones")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = c.Get(ctx, "/inscripciones")

	require.Error(t, err)
	assert.True(t, domain.IsCancellation(err))
}

func TestSnippet(t *testing.T) {
	assert.Equal(t, "short", snippet("short"))
	assert.Equal(t, strings.Repeat("ñ", 200), snippet(strings.Repeat("ñ", 250)))
}

func TestServerMessage(t *testing.T) {
	assert.Equal(t, "", serverMessage(map[string]any{}))
	assert.Equal(t, "", serverMessage(map[string]any{"message": nil}))
	assert.Equal(t, "", serverMessage(map[string]any{"message": false}))
	assert.Equal(t, "404", serverMessage(map[string]any{"message": 404.0}))
	assert.Equal(t, "boom", serverMessage(map[string]any{"message": "boom"}))
}
