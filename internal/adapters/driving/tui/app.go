package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/registro-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/registro-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/registro-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/registro-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/registro-cli/internal/adapters/driving/tui/views/form"
	"github.com/custodia-labs/registro-cli/internal/adapters/driving/tui/views/listing"
	"github.com/custodia-labs/registro-cli/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/registro-cli/internal/core/domain"
	"github.com/custodia-labs/registro-cli/internal/logger"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	styles *styles.Styles
	keymap *keymap.KeyMap

	menuView      *menu.View
	listingView   *listing.View
	voterView     *form.View
	volunteerView *form.View
	statusBar     *status.Bar

	// changes delivers config file change notifications.
	changes <-chan struct{}

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred outside a view.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:         ports,
		ctx:           context.Background(),
		styles:        s,
		keymap:        km,
		menuView:      menu.NewView(s, km),
		listingView:   listing.NewView(s, km, ports.Listing),
		voterView:     form.NewView(s, km, domain.FormVoter, ports.Submission),
		volunteerView: form.NewView(s, km, domain.FormVolunteer, ports.Submission),
		statusBar:     status.NewBar(s, km),
		// The listing is the landing page.
		currentView: messages.ViewListing,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("registro"),
		a.listingView.Init(),
		a.startWatcher(),
	)
}

// startWatcher subscribes to config changes when a watcher is configured.
func (a *App) startWatcher() tea.Cmd {
	if a.ports.Watcher == nil {
		return nil
	}
	changes, err := a.ports.Watcher.Watch(a.ctx)
	if err != nil {
		logger.Warn("config watcher disabled: %v", err)
		return nil
	}
	a.changes = changes
	return a.waitForChange()
}

func (a *App) waitForChange() tea.Cmd {
	changes := a.changes
	if changes == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return messages.ConfigChanged{}
	}
}

func (a *App) reloadSettings() tea.Cmd {
	settings := a.ports.Settings
	if settings == nil {
		return nil
	}
	return func() tea.Msg {
		s, err := settings.Reload()
		return messages.SettingsReloaded{Settings: s, Err: err}
	}
}

// Update implements tea.Model.
// It handles messages and updates the model state.
//
//nolint:gocyclo // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		// Global quit with ctrl+c
		if keymap.Matches(msg.String(), a.keymap.Quit) {
			a.listingView.Cancel()
			return a, tea.Quit
		}
		return a, a.updateCurrent(msg)

	case messages.ViewChanged:
		return a, a.switchView(msg.View)

	case messages.ListingLoaded:
		a.listingView, cmd = a.listingView.Update(msg)
		return a, cmd

	case messages.SubmissionCompleted:
		return a, a.updateForm(msg.Kind, msg)

	case messages.NoticeExpired:
		return a, a.updateForm(msg.Kind, msg)

	case messages.ConfigChanged:
		logger.Info("configuration changed, reloading")
		return a, tea.Batch(a.waitForChange(), a.reloadSettings())

	case messages.SettingsReloaded:
		if msg.Err != nil {
			a.err = msg.Err
			logger.Warn("reload settings: %v", msg.Err)
			return a, nil
		}
		a.err = nil
		if a.ports.OnReload != nil {
			a.ports.OnReload(msg.Settings)
		}
		if a.currentView == messages.ViewListing {
			return a, a.listingView.Load()
		}
		return a, nil

	case messages.ErrorOccurred:
		a.err = msg.Err
		return a, nil

	case messages.Quit:
		a.listingView.Cancel()
		return a, tea.Quit
	}

	return a, a.updateCurrent(msg)
}

// updateCurrent forwards a message to the active view.
func (a *App) updateCurrent(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd

	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewListing:
		a.listingView, cmd = a.listingView.Update(msg)
	case messages.ViewVoterForm:
		a.voterView, cmd = a.voterView.Update(msg)
	case messages.ViewVolunteerForm:
		a.volunteerView, cmd = a.volunteerView.Update(msg)
	case messages.ViewHelp:
		if key, ok := msg.(tea.KeyMsg); ok {
			switch {
			case keymap.Matches(key.String(), a.keymap.Back):
				a.currentView = messages.ViewMenu
			case keymap.Matches(key.String(), a.keymap.Close):
				return tea.Quit
			}
		}
	}
	return cmd
}

// updateForm forwards a message to the form of the given kind, active or not.
func (a *App) updateForm(kind domain.FormKind, msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch kind {
	case domain.FormVoter:
		a.voterView, cmd = a.voterView.Update(msg)
	case domain.FormVolunteer:
		a.volunteerView, cmd = a.volunteerView.Update(msg)
	}
	return cmd
}

// switchView activates a view. Leaving the listing abandons its fetch;
// entering it starts a new one.
func (a *App) switchView(view messages.ViewType) tea.Cmd {
	if a.currentView == messages.ViewListing && view != messages.ViewListing {
		a.listingView.Cancel()
	}
	a.currentView = view

	switch view {
	case messages.ViewListing:
		return a.listingView.Load()
	case messages.ViewVoterForm:
		return a.voterView.Init()
	case messages.ViewVolunteerForm:
		return a.volunteerView.Init()
	case messages.ViewMenu, messages.ViewHelp:
		// No initialisation needed
	}
	return nil
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var body string
	switch a.currentView {
	case messages.ViewListing:
		body = a.listingView.View()
	case messages.ViewVoterForm:
		body = a.voterView.View()
	case messages.ViewVolunteerForm:
		body = a.volunteerView.View()
	case messages.ViewHelp:
		body = a.viewHelp()
	default:
		body = a.menuView.View()
	}

	a.syncStatus()
	return body + "\n\n" + a.statusBar.View()
}

// syncStatus derives the status bar from the active view.
func (a *App) syncStatus() {
	a.statusBar.Clear()

	switch a.currentView {
	case messages.ViewListing:
		a.statusBar.SetHints(a.keymap.ListingHelp())
		switch {
		case a.listingView.Loading():
			a.statusBar.SetState(status.StateLoading)
		case a.listingView.Err() != "":
			a.statusBar.SetState(status.StateError)
		default:
			a.statusBar.SetRecordCount(len(a.listingView.Visible()))
		}
	case messages.ViewVoterForm, messages.ViewVolunteerForm:
		a.statusBar.SetHints(a.keymap.FormHelp())
		if f := a.activeForm(); f != nil && f.Saving() {
			a.statusBar.SetState(status.StateSaving)
		}
	case messages.ViewMenu, messages.ViewHelp:
	}

	if a.err != nil {
		a.statusBar.SetState(status.StateError)
		a.statusBar.SetMessage(a.err.Error())
	}
}

func (a *App) activeForm() *form.View {
	switch a.currentView {
	case messages.ViewVoterForm:
		return a.voterView
	case messages.ViewVolunteerForm:
		return a.volunteerView
	default:
		return nil
	}
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	var b strings.Builder
	b.WriteString(a.styles.Title.Render("Ayuda"))
	b.WriteString("\n\n")
	b.WriteString(`Navigation:
  esc         Back to Menu
  ctrl+c      Quit

Menu:
  j/k, ↑/↓    Navigate options
  enter       Select option
  1-5         Open option directly
  q           Quit

Registrados:
  (type)      Filter by nombre, identificación, celular, dirección, barrio
  tab         Cycle source (Todos, Inscripciones, Registro personas)
  ↑/↓         Scroll
  ctrl+r      Reload

Formularios:
  tab/↓       Next field
  shift+tab/↑ Previous field
  enter       Guardar
`)
	b.WriteString("\n")
	b.WriteString(a.styles.Help.Render("[esc] back to menu"))
	return b.String()
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// SetDimensions sets the terminal dimensions and forwards them to every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	// Leave room for the status bar
	viewHeight := height - 2
	a.menuView.SetDimensions(width, viewHeight)
	a.listingView.SetDimensions(width, viewHeight)
	a.voterView.SetDimensions(width, viewHeight)
	a.volunteerView.SetDimensions(width, viewHeight)
	a.statusBar.SetWidth(width)
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// Width returns the terminal width.
func (a *App) Width() int {
	return a.width
}

// Height returns the terminal height.
func (a *App) Height() int {
	return a.height
}

// Listing returns the listing view.
func (a *App) Listing() *listing.View {
	return a.listingView
}

// Form returns the form view for the given kind.
func (a *App) Form(kind domain.FormKind) *form.View {
	if kind == domain.FormVolunteer {
		return a.volunteerView
	}
	return a.voterView
}
