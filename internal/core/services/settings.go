package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/registro-cli/internal/core/domain"
	"github.com/custodia-labs/registro-cli/internal/core/ports/driven"
	"github.com/custodia-labs/registro-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// SettingsService resolves API settings from defaults, the config store and
// overrides, in increasing order of precedence.
type SettingsService struct {
	configStore driven.ConfigStore
	overrides   domain.APISettings
}

// NewSettingsService creates a new settings service.
// configStore may be nil, in which case only defaults and overrides apply.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// SetOverrides sets values that win over the config store.
// Zero fields are ignored.
func (s *SettingsService) SetOverrides(o domain.APISettings) {
	s.overrides = o
}

// Get returns the effective API settings.
func (s *SettingsService) Get() (domain.APISettings, error) {
	settings := domain.DefaultAPISettings()

	if s.configStore != nil {
		if v := strings.TrimSpace(s.configStore.GetString(domain.KeyAPIBaseURL)); v != "" {
			settings.BaseURL = v
		}
		if v := s.configStore.GetInt(domain.KeyAPITimeoutSeconds); v > 0 {
			settings.Timeout = time.Duration(v) * time.Second
		}
		if v := s.configStore.GetFloat(domain.KeyAPIRequestsPerSecond); v > 0 {
			settings.RequestsPerSecond = v
		}
	}

	if s.overrides.BaseURL != "" {
		settings.BaseURL = s.overrides.BaseURL
	}
	if s.overrides.Timeout > 0 {
		settings.Timeout = s.overrides.Timeout
	}
	if s.overrides.RequestsPerSecond > 0 {
		settings.RequestsPerSecond = s.overrides.RequestsPerSecond
	}

	settings.BaseURL = domain.NormaliseBaseURL(settings.BaseURL)
	if err := settings.Validate(); err != nil {
		return settings, fmt.Errorf("invalid settings: %w", err)
	}
	return settings, nil
}

// Set validates and persists a single setting.
func (s *SettingsService) Set(key, value string) error {
	if s.configStore == nil {
		return fmt.Errorf("%w: no config store", domain.ErrInvalidInput)
	}

	value = strings.TrimSpace(value)
	var stored any
	switch key {
	case domain.KeyAPIBaseURL:
		if err := domain.ValidateBaseURL(value); err != nil {
			return err
		}
		stored = domain.NormaliseBaseURL(value)
	case domain.KeyAPITimeoutSeconds:
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil || n <= 0 {
			return fmt.Errorf("%w: %s must be a positive integer", domain.ErrInvalidInput, key)
		}
		stored = n
	case domain.KeyAPIRequestsPerSecond:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f < 0 {
			return fmt.Errorf("%w: %s must be a non-negative number", domain.ErrInvalidInput, key)
		}
		stored = f
	default:
		return fmt.Errorf("%w: unknown setting %q (known: %s)",
			domain.ErrInvalidInput, key, strings.Join(domain.SettingKeys(), ", "))
	}

	if err := s.configStore.Set(key, stored); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Reload re-reads the config store and returns the new effective settings.
func (s *SettingsService) Reload() (domain.APISettings, error) {
	if s.configStore != nil {
		if err := s.configStore.Load(); err != nil {
			return domain.APISettings{}, fmt.Errorf("reload config: %w", err)
		}
	}
	return s.Get()
}

// Path returns the config file path, or "" without a store.
func (s *SettingsService) Path() string {
	if s.configStore == nil {
		return ""
	}
	return s.configStore.Path()
}
