package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/registro-cli/internal/core/domain"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change configuration",
	Long: `Show or change the registry API settings stored in the config file.

Keys:
  api.base_url             registry API base URL
  api.timeout_seconds      per-request timeout
  api.requests_per_second  client-side request pacing (0 = unlimited)

Environment variables REGISTRO_API_BASE_URL, REGISTRO_API_TIMEOUT and
REGISTRO_API_RPS, and the --api-base flag, take precedence over the file.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective settings",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Persist a setting",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

func init() {
	configCmd.AddCommand(configShowCmd, configSetCmd, configPathCmd)
	rootCmd.AddCommand(configCmd)
}

func requireSettings(cmd *cobra.Command) error {
	if err := ensureServices(cmd); err != nil {
		return err
	}
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	return nil
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if err := requireSettings(cmd); err != nil {
		return err
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Settings")
	cmd.Println(strings.Repeat("-", 40))
	cmd.Printf("  %-24s %s\n", domain.KeyAPIBaseURL, settings.BaseURL)
	cmd.Printf("  %-24s %d\n", domain.KeyAPITimeoutSeconds, int(settings.Timeout.Seconds()))
	rps := "unlimited"
	if settings.RequestsPerSecond > 0 {
		rps = fmt.Sprintf("%g", settings.RequestsPerSecond)
	}
	cmd.Printf("  %-24s %s\n", domain.KeyAPIRequestsPerSecond, rps)
	cmd.Println()
	cmd.Printf("Config file: %s\n", settingsService.Path())
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if err := requireSettings(cmd); err != nil {
		return err
	}

	key, value := args[0], args[1]
	if err := settingsService.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	cmd.Printf("%s = %s\n", key, value)
	return nil
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	if err := requireSettings(cmd); err != nil {
		return err
	}
	cmd.Println(settingsService.Path())
	return nil
}
