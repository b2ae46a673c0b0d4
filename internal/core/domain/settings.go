package domain

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// DefaultAPIBaseURL is the registry API used when nothing else is configured.
const DefaultAPIBaseURL = "https://api.nuevoliberalismo.factoryil.com"

// DefaultAPITimeout bounds a single HTTP request.
const DefaultAPITimeout = 30 * time.Second

// Configuration keys in dot notation.
const (
	KeyAPIBaseURL           = "api.base_url"
	KeyAPITimeoutSeconds    = "api.timeout_seconds"
	KeyAPIRequestsPerSecond = "api.requests_per_second"
)

// SettingKeys returns every recognised configuration key.
func SettingKeys() []string {
	return []string{KeyAPIBaseURL, KeyAPITimeoutSeconds, KeyAPIRequestsPerSecond}
}

// APISettings configures the registry API client.
type APISettings struct {
	// BaseURL is prefixed to every endpoint path.
	BaseURL string

	// Timeout bounds each request. Zero means DefaultAPITimeout.
	Timeout time.Duration

	// RequestsPerSecond paces outgoing requests. Zero disables pacing.
	RequestsPerSecond float64
}

// DefaultAPISettings returns the built-in settings.
func DefaultAPISettings() APISettings {
	return APISettings{
		BaseURL: DefaultAPIBaseURL,
		Timeout: DefaultAPITimeout,
	}
}

// Validate checks that the settings can be used to build a client.
func (s APISettings) Validate() error {
	if err := ValidateBaseURL(s.BaseURL); err != nil {
		return err
	}
	if s.Timeout < 0 {
		return fmt.Errorf("%w: timeout must not be negative", ErrInvalidInput)
	}
	if s.RequestsPerSecond < 0 {
		return fmt.Errorf("%w: requests per second must not be negative", ErrInvalidInput)
	}
	return nil
}

// ValidateBaseURL requires an absolute http(s) URL.
func ValidateBaseURL(raw string) error {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("%w: base url: %w", ErrInvalidInput, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: base url must be an absolute http(s) URL, got %q", ErrInvalidInput, raw)
	}
	return nil
}

// NormaliseBaseURL trims whitespace and trailing slashes so paths can be appended.
func NormaliseBaseURL(raw string) string {
	return strings.TrimRight(strings.TrimSpace(raw), "/")
}
