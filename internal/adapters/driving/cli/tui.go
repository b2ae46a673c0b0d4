package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/registro-cli/internal/adapters/driving/tui"
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface.

The TUI opens on the merged listing of registrations and offers the voter
and volunteer forms from its menu. Editing the config file while it runs
re-points the API client and reloads the listing.

Controls:
  tab       - Cycle source / next field
  ↑/↓       - Scroll / move between fields
  ctrl+r    - Reload listing
  Enter     - Select / Guardar
  Esc       - Back to menu
  ctrl+c    - Quit`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

// runApp starts the program. Replaced in tests.
var runApp = func(app *tui.App) error {
	return app.Run()
}

func runTUI(cmd *cobra.Command, _ []string) (err error) {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
			err = errors.New("tui panicked")
		}
	}()

	if err := ensureServices(cmd); err != nil {
		return err
	}

	ports := tui.NewPorts(listingService, submissionService)
	ports.Settings = settingsService
	ports.Watcher = configWatcher
	ports.OnReload = reloadHook

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(cmd.Context())

	if err := runApp(app); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
