// Package env reads configuration overrides from environment variables.
package env

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/custodia-labs/registro-cli/internal/core/domain"
)

// Overrides are the settings that may be supplied through the environment.
// Unset variables leave the corresponding field at its zero value.
type Overrides struct {
	BaseURL           string        `env:"REGISTRO_API_BASE_URL"`
	Timeout           time.Duration `env:"REGISTRO_API_TIMEOUT"`
	RequestsPerSecond float64       `env:"REGISTRO_API_RPS"`
	MetricsAddr       string        `env:"REGISTRO_METRICS_ADDR"`
}

// Load parses Overrides from the process environment.
func Load() (Overrides, error) {
	return parse(env.Options{})
}

// LoadFrom parses Overrides from the given variables instead of the process
// environment. A nil map means no variables are set.
func LoadFrom(vars map[string]string) (Overrides, error) {
	if vars == nil {
		vars = map[string]string{}
	}
	return parse(env.Options{Environment: vars})
}

func parse(opts env.Options) (Overrides, error) {
	var o Overrides
	if err := env.ParseWithOptions(&o, opts); err != nil {
		return Overrides{}, fmt.Errorf("parse env: %w", err)
	}
	if o.Timeout < 0 || o.RequestsPerSecond < 0 {
		return Overrides{}, fmt.Errorf("%w: negative value in environment", domain.ErrInvalidInput)
	}
	return o, nil
}

// APISettings returns the API-related overrides.
func (o Overrides) APISettings() domain.APISettings {
	return domain.APISettings{
		BaseURL:           o.BaseURL,
		Timeout:           o.Timeout,
		RequestsPerSecond: o.RequestsPerSecond,
	}
}
