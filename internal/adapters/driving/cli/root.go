// Package cli provides the cobra command tree for registro.
// It is a driving adapter: commands call core services through driving ports.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/registro-cli/internal/adapters/driving/tui"
	"github.com/custodia-labs/registro-cli/internal/core/domain"
	"github.com/custodia-labs/registro-cli/internal/core/ports/driving"
	"github.com/custodia-labs/registro-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Options are the root flags passed to the bootstrap function.
type Options struct {
	Verbose     bool
	ConfigDir   string
	APIBase     string
	MetricsAddr string
}

// Services are the core services the commands drive.
type Services struct {
	Listing    driving.ListingService
	Submission driving.SubmissionService
	Settings   driving.SettingsService

	// Watcher and OnReload enable live config reload in the TUI.
	Watcher  tui.ConfigWatcher
	OnReload func(domain.APISettings)
}

// BootstrapFunc builds the services from the root flags.
type BootstrapFunc func(ctx context.Context, opts Options) (*Services, error)

var (
	listingService    driving.ListingService
	submissionService driving.SubmissionService
	settingsService   driving.SettingsService
	configWatcher     tui.ConfigWatcher
	reloadHook        func(domain.APISettings)

	bootstrap      BootstrapFunc
	servicesLoaded bool

	opts Options
)

// stdinIsTerminal reports whether interactive prompts can be shown.
var stdinIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) //nolint:gosec // fd fits in int
}

var rootCmd = &cobra.Command{
	Use:   "registro",
	Short: "Campaign registration client",
	Long: `registro lists and records campaign registrations.

It reads the inscripciones and registro_personas collections from the
registry API, merges them into one listing, and submits the voter and
volunteer forms.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(opts.Verbose)
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "enable verbose logging")
	flags.StringVar(&opts.ConfigDir, "config-dir", "", "configuration directory (default ~/.registro)")
	flags.StringVar(&opts.APIBase, "api-base", "", "registry API base URL")
	flags.StringVar(&opts.MetricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// SetBootstrap registers the function that builds services on first use.
func SetBootstrap(fn BootstrapFunc) {
	bootstrap = fn
}

// SetServices injects services directly, bypassing the bootstrap function.
func SetServices(s *Services) {
	if s == nil {
		s = &Services{}
	}
	listingService = s.Listing
	submissionService = s.Submission
	settingsService = s.Settings
	configWatcher = s.Watcher
	reloadHook = s.OnReload
	servicesLoaded = true
}

// ensureServices runs the bootstrap function once.
func ensureServices(cmd *cobra.Command) error {
	if servicesLoaded {
		return nil
	}
	if bootstrap == nil {
		return errors.New("services not configured")
	}
	s, err := bootstrap(cmd.Context(), opts)
	if err != nil {
		return fmt.Errorf("initialise services: %w", err)
	}
	SetServices(s)
	return nil
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
