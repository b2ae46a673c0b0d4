package driving

import "github.com/custodia-labs/registro-cli/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get returns the effective API settings.
	Get() (domain.APISettings, error)

	// Set validates and persists a single setting by key.
	Set(key, value string) error

	// Reload re-reads persisted settings.
	Reload() (domain.APISettings, error)

	// Path returns where settings are persisted.
	Path() string
}
