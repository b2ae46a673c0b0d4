package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultAPISettings(t *testing.T) {
	s := DefaultAPISettings()

	assert.Equal(t, DefaultAPIBaseURL, s.BaseURL)
	assert.Equal(t, 30*time.Second, s.Timeout)
	assert.Zero(t, s.RequestsPerSecond)
	assert.NoError(t, s.Validate())
}

func TestAPISettings_Validate(t *testing.T) {
	tests := []struct {
		name     string
		settings APISettings
		wantErr  bool
	}{
		{"valid https", APISettings{BaseURL: "https://api.example.com"}, false},
		{"valid http with port", APISettings{BaseURL: "http://127.0.0.1:8080"}, false},
		{"relative", APISettings{BaseURL: "/api"}, true},
		{"no scheme", APISettings{BaseURL: "api.example.com"}, true},
		{"ftp", APISettings{BaseURL: "ftp://example.com"}, true},
		{"empty", APISettings{}, true},
		{"negative timeout", APISettings{BaseURL: "https://a.b", Timeout: -time.Second}, true},
		{"negative rps", APISettings{BaseURL: "https://a.b", RequestsPerSecond: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.settings.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidInput))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestNormaliseBaseURL(t *testing.T) {
	assert.Equal(t, "https://api.example.com", NormaliseBaseURL(" https://api.example.com// "))
	assert.Equal(t, "https://api.example.com/v1", NormaliseBaseURL("https://api.example.com/v1"))
}

func TestSettingKeys(t *testing.T) {
	assert.Equal(t, []string{
		"api.base_url",
		"api.timeout_seconds",
		"api.requests_per_second",
	}, SettingKeys())
}
