// Package httpapi provides the registry API adapter over net/http.
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/registro-cli/internal/core/domain"
	"github.com/custodia-labs/registro-cli/internal/core/ports/driven"
	"github.com/custodia-labs/registro-cli/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.RegistryAPI = (*Client)(nil)

const (
	// HeaderRequestID carries a per-request correlation id.
	HeaderRequestID = "X-Request-ID"

	// snippetLength bounds how much of an error body is shown to users.
	snippetLength = 200
)

// Client talks JSON to the registry API.
// It is safe for concurrent use; Apply may be called while requests are in flight.
type Client struct {
	mu      sync.RWMutex
	client  *http.Client
	baseURL string
	limiter *rate.Limiter
}

// New creates a client from the given settings.
func New(settings domain.APISettings) *Client {
	c := &Client{}
	c.Apply(settings)
	return c
}

// Apply re-points the client at new settings.
// Requests already in flight keep the settings they started with.
func (c *Client) Apply(settings domain.APISettings) {
	timeout := settings.Timeout
	if timeout <= 0 {
		timeout = domain.DefaultAPITimeout
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.client = &http.Client{Timeout: timeout}
	c.baseURL = domain.NormaliseBaseURL(settings.BaseURL)
	c.limiter = newLimiter(settings.RequestsPerSecond)
}

// BaseURL returns the current base URL.
func (c *Client) BaseURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.baseURL
}

func newLimiter(rps float64) *rate.Limiter {
	if rps <= 0 {
		return nil
	}
	burst := int(math.Ceil(rps))
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(rps), burst)
}

// snapshot returns the settings used for one request.
func (c *Client) snapshot() (*http.Client, string, *rate.Limiter) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.client, c.baseURL, c.limiter
}

// Get reads path and decodes the JSON body.
// A non-2xx status yields a *domain.APIError naming the path, status and a
// snippet of the body.
func (c *Client) Get(ctx context.Context, path string) (any, error) {
	resp, body, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	if !isSuccess(resp.StatusCode) {
		text := string(body)
		return nil, &domain.APIError{
			Method:  http.MethodGet,
			Path:    path,
			Status:  resp.StatusCode,
			Body:    text,
			Message: fmt.Sprintf("%s -> HTTP %d: %s", path, resp.StatusCode, snippet(text)),
		}
	}

	var decoded any
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return decoded, nil
}

// Post sends payload as JSON to path.
// A 2xx body that is not a JSON object yields an empty map. A non-2xx status
// yields a *domain.APIError whose message is the server's message field, or
// "HTTP <status>" when there is none.
func (c *Client) Post(ctx context.Context, path string, payload any) (map[string]any, error) {
	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	resp, body, err := c.do(ctx, http.MethodPost, path, jsonBody)
	if err != nil {
		return nil, err
	}

	parsed := parseObject(body)
	if !isSuccess(resp.StatusCode) {
		msg := serverMessage(parsed)
		if msg == "" {
			msg = fmt.Sprintf("HTTP %d", resp.StatusCode)
		}
		return nil, &domain.APIError{
			Method:  http.MethodPost,
			Path:    path,
			Status:  resp.StatusCode,
			Body:    string(body),
			Message: msg,
		}
	}
	return parsed, nil
}

// do sends one request and reads the whole body.
func (c *Client) do(ctx context.Context, method, path string, payload []byte) (*http.Response, []byte, error) {
	client, baseURL, limiter := c.snapshot()

	if limiter != nil {
		if err := limiter.Wait(ctx); err != nil {
			return nil, nil, fmt.Errorf("wait for rate limiter: %w", err)
		}
	}

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, baseURL+path, reader)
	if err != nil {
		return nil, nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	requestID := uuid.NewString()
	req.Header.Set(HeaderRequestID, requestID)

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("read response: %w", err)
	}

	logger.Debug("%s %s -> %d (%s, id=%s)", method, path, resp.StatusCode, time.Since(start), requestID)
	return resp, body, nil
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

// snippet returns at most snippetLength characters of s.
func snippet(s string) string {
	runes := []rune(s)
	if len(runes) <= snippetLength {
		return s
	}
	return string(runes[:snippetLength])
}

// parseObject decodes body as a JSON object, or returns an empty map.
func parseObject(body []byte) map[string]any {
	var obj map[string]any
	if err := json.Unmarshal(body, &obj); err != nil || obj == nil {
		return map[string]any{}
	}
	return obj
}

// serverMessage returns the message field of an error body.
// Empty, false and null values count as absent.
func serverMessage(obj map[string]any) string {
	switch v := obj["message"].(type) {
	case nil:
		return ""
	case bool:
		if !v {
			return ""
		}
		return "true"
	case float64:
		if v == 0 {
			return ""
		}
		return domain.ScalarString(v)
	default:
		return domain.ScalarString(v)
	}
}
