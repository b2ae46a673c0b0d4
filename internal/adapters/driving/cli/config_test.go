package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/registro-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/registro-cli/internal/core/domain"
	"github.com/custodia-labs/registro-cli/internal/core/services"
)

func TestConfigCmd_Subcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, cmd := range configCmd.Commands() {
		names[cmd.Name()] = true
	}

	assert.True(t, names["show"])
	assert.True(t, names["set"])
	assert.True(t, names["path"])
}

func TestConfigShow(t *testing.T) {
	cleanup := setupTestServices(&Services{Settings: &mockSettingsService{
		GetFunc: func() (domain.APISettings, error) {
			return domain.APISettings{BaseURL: "https://api.example.com", Timeout: 10 * time.Second, RequestsPerSecond: 2.5}, nil
		},
	}})
	defer cleanup()

	out, _, err := execute(t, "config", "show")

	require.NoError(t, err)
	assert.Contains(t, out, "api.base_url")
	assert.Contains(t, out, "https://api.example.com")
	assert.Contains(t, out, "10")
	assert.Contains(t, out, "2.5")
	assert.Contains(t, out, "Config file: /tmp/registro/config.toml")
}

func TestConfigShow_UnlimitedRate(t *testing.T) {
	cleanup := setupTestServices(nil)
	defer cleanup()

	out, _, err := execute(t, "config", "show")

	require.NoError(t, err)
	assert.Contains(t, out, domain.DefaultAPIBaseURL)
	assert.Contains(t, out, "unlimited")
}

func TestConfigSet_PersistsThroughSettingsService(t *testing.T) {
	store := memory.NewConfigStore()
	cleanup := setupTestServices(&Services{Settings: services.NewSettingsService(store)})
	defer cleanup()

	out, _, err := execute(t, "config", "set", "api.base_url", "https://api.example.com/")

	require.NoError(t, err)
	assert.Contains(t, out, "api.base_url = https://api.example.com/")
	assert.Equal(t, "https://api.example.com", store.GetString(domain.KeyAPIBaseURL))
}

func TestConfigSet_RejectsUnknownKey(t *testing.T) {
	cleanup := setupTestServices(&Services{Settings: services.NewSettingsService(memory.NewConfigStore())})
	defer cleanup()

	_, _, err := execute(t, "config", "set", "api.colour", "red")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to set api.colour")
}

func TestConfigSet_RequiresTwoArgs(t *testing.T) {
	cleanup := setupTestServices(nil)
	defer cleanup()

	_, _, err := execute(t, "config", "set", "api.base_url")

	assert.Error(t, err)
}

func TestConfigPath(t *testing.T) {
	cleanup := setupTestServices(nil)
	defer cleanup()

	out, _, err := execute(t, "config", "path")

	require.NoError(t, err)
	assert.Equal(t, "/tmp/registro/config.toml\n", out)
}

func TestConfig_NilService(t *testing.T) {
	cleanup := setupTestServices(nil)
	defer cleanup()
	settingsService = nil

	_, _, err := execute(t, "config", "show")

	assert.EqualError(t, err, "settings service not configured")
}
