// Package bootstrap wires the driven adapters into the core services for the CLI.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/custodia-labs/registro-cli/internal/adapters/driven/api/httpapi"
	"github.com/custodia-labs/registro-cli/internal/adapters/driven/config/env"
	"github.com/custodia-labs/registro-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/registro-cli/internal/adapters/driven/metrics/prometheus"
	"github.com/custodia-labs/registro-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/registro-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/registro-cli/internal/core/domain"
	"github.com/custodia-labs/registro-cli/internal/core/ports/driven"
	"github.com/custodia-labs/registro-cli/internal/core/services"
	"github.com/custodia-labs/registro-cli/internal/logger"
)

// loadEnv reads environment overrides. Replaced in tests.
var loadEnv = env.Load

// Build creates the services used by every command.
// An unusable config directory falls back to in-memory settings.
func Build(ctx context.Context, opts cli.Options) (*cli.Services, error) {
	overrides, err := loadEnv()
	if err != nil {
		return nil, err
	}

	var store driven.ConfigStore
	var watcher *file.Watcher
	fileStore, err := file.NewConfigStore(opts.ConfigDir)
	if err != nil {
		logger.Warn("config file unavailable, using defaults: %v", err)
		store = memory.NewConfigStore()
	} else {
		store = fileStore
		watcher = file.NewWatcher(fileStore.Path())
	}

	settingsService := services.NewSettingsService(store)
	apiOverrides := overrides.APISettings()
	if opts.APIBase != "" {
		if err := domain.ValidateBaseURL(opts.APIBase); err != nil {
			return nil, fmt.Errorf("--api-base: %w", err)
		}
		apiOverrides.BaseURL = domain.NormaliseBaseURL(opts.APIBase)
	}
	settingsService.SetOverrides(apiOverrides)

	settings, err := settingsService.Get()
	if err != nil {
		return nil, err
	}
	logger.Debug("registry API at %s (timeout %s)", settings.BaseURL, settings.Timeout)

	client := httpapi.New(settings)
	fetcher := services.NewFetcher(client, domain.DefaultEndpoints())
	submission := services.NewSubmissionService(client)

	metricsAddr := opts.MetricsAddr
	if metricsAddr == "" {
		metricsAddr = overrides.MetricsAddr
	}
	if metricsAddr != "" {
		m := prometheus.New()
		fetcher.SetMetrics(m)
		submission.SetMetrics(m)
		go func() {
			if err := m.Serve(ctx, metricsAddr); err != nil {
				logger.Warn("metrics server stopped: %v", err)
			}
		}()
		logger.Info("serving metrics on %s/metrics", metricsAddr)
	}

	out := &cli.Services{
		Listing:    services.NewListingService(fetcher),
		Submission: submission,
		Settings:   settingsService,
		OnReload:   client.Apply,
	}
	if watcher != nil {
		out.Watcher = watcher
	}
	return out, nil
}
