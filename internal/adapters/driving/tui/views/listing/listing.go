// Package listing provides the merged registrations view for the TUI.
package listing

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/registro-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/registro-cli/internal/adapters/driving/tui/components/table"
	"github.com/custodia-labs/registro-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/registro-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/registro-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/registro-cli/internal/core/domain"
	"github.com/custodia-labs/registro-cli/internal/core/ports/driving"
)

// LoadingMessage is shown while a fetch cycle is in flight.
const LoadingMessage = "Cargando…"

// sourceOptions are the selector entries in display order.
var sourceOptions = []domain.SourceFilter{
	domain.SourceAll,
	domain.SourceFilter(domain.SourceInscripciones),
	domain.SourceFilter(domain.SourceRegistroPersonas),
}

// View shows the merged records of every source with a source selector
// and a free-text filter.
type View struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	service driving.ListingService

	filter *input.FilterInput
	table  *table.RecordTable

	sourceIdx int
	listing   *domain.Listing
	visible   []domain.Record
	loading   bool
	err       string

	cycle  int
	cancel context.CancelFunc

	width  int
	height int
	ready  bool
}

// NewView creates a new listing view.
func NewView(s *styles.Styles, km *keymap.KeyMap, service driving.ListingService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:  s,
		keymap:  km,
		service: service,
		filter:  input.NewFilterInput(s),
		table:   table.NewRecordTable(s),
		width:   80,
		height:  24,
	}
}

// Init starts the first fetch cycle.
func (v *View) Init() tea.Cmd {
	return tea.Batch(v.filter.Init(), v.Load())
}

// Load starts a new fetch cycle, cancelling any cycle still in flight.
func (v *View) Load() tea.Cmd {
	v.Cancel()

	ctx, cancel := context.WithCancel(context.Background())
	v.cancel = cancel
	v.cycle++
	v.loading = true
	v.err = ""

	cycle := v.cycle
	service := v.service
	return func() tea.Msg {
		if service == nil {
			return messages.ListingLoaded{Cycle: cycle, Err: domain.ErrAPIUnavailable}
		}
		listing, err := service.Load(ctx)
		return messages.ListingLoaded{Cycle: cycle, Listing: listing, Err: err}
	}
}

// Cancel abandons the fetch cycle in flight. Its result will be ignored.
func (v *View) Cancel() {
	if v.cancel != nil {
		v.cancel()
		v.cancel = nil
		v.cycle++
	}
	v.loading = false
}

// Update handles messages for the listing view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.ListingLoaded:
		v.handleLoaded(msg)
		return v, nil

	case tea.KeyMsg:
		return v.handleKey(msg)
	}

	return v, nil
}

func (v *View) handleLoaded(msg messages.ListingLoaded) {
	if msg.Cycle != v.cycle {
		return
	}
	if v.cancel != nil {
		v.cancel()
		v.cancel = nil
	}
	v.loading = false

	if msg.Err != nil {
		if !domain.IsCancellation(msg.Err) {
			v.err = msg.Err.Error()
		}
		return
	}

	v.listing = msg.Listing
	if v.listing != nil && v.listing.HasErrors() {
		v.err = v.listing.ErrorSummary()
	}
	v.refresh()
}

func (v *View) handleKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	key := msg.String()

	switch {
	case keymap.Matches(key, v.keymap.Back):
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}

	case keymap.Matches(key, v.keymap.NextSource):
		v.sourceIdx = (v.sourceIdx + 1) % len(sourceOptions)
		v.refresh()
		return v, nil

	case key == "shift+tab":
		v.sourceIdx = (v.sourceIdx + len(sourceOptions) - 1) % len(sourceOptions)
		v.refresh()
		return v, nil

	case keymap.Matches(key, v.keymap.Reload):
		return v, v.Load()
	}

	//nolint:exhaustive // handling only table navigation keys
	switch msg.Type {
	case tea.KeyUp, tea.KeyDown, tea.KeyPgUp, tea.KeyPgDown:
		v.table.Update(msg)
		return v, nil
	default:
	}

	before := v.filter.Value()
	var cmd tea.Cmd
	v.filter, cmd = v.filter.Update(msg)
	if v.filter.Value() != before {
		v.refresh()
	}
	return v, cmd
}

// refresh recomputes the visible rows from the last loaded records.
func (v *View) refresh() {
	if v.listing == nil || v.service == nil {
		v.visible = nil
		v.table.SetRecords(nil)
		return
	}
	v.visible = v.service.Apply(v.listing.Records, domain.ListFilter{
		Source: v.Source(),
		Query:  v.filter.Value(),
	})
	v.table.SetRecords(v.visible)
}

// View renders the listing.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Registrados"))
	b.WriteString("\n\n")
	b.WriteString(v.renderSources())
	b.WriteString("\n")
	b.WriteString(v.filter.View())
	b.WriteString("\n\n")

	if v.loading {
		b.WriteString(v.styles.Muted.Render(LoadingMessage))
		b.WriteString("\n")
	}
	if v.err != "" {
		b.WriteString(v.styles.Error.Render("⚠️ " + v.err))
		b.WriteString("\n")
	}
	if !v.loading && v.err == "" {
		b.WriteString(v.table.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render(keymap.HelpLine(v.keymap.ListingHelp())))

	return b.String()
}

func (v *View) renderSources() string {
	chips := make([]string, 0, len(sourceOptions))
	for i, option := range sourceOptions {
		label := SourceOptionLabel(option, v.listing)
		if i == v.sourceIdx {
			chips = append(chips, v.styles.ActiveChip.Render(label))
		} else {
			chips = append(chips, v.styles.Chip.Render(label))
		}
	}
	return strings.Join(chips, " ")
}

// SourceOptionLabel renders a selector entry with its record count.
func SourceOptionLabel(option domain.SourceFilter, listing *domain.Listing) string {
	count := 0
	name := "Todos"
	if option != domain.SourceAll {
		name = domain.SourceTag(option).Label()
	}
	if listing != nil {
		if option == domain.SourceAll {
			count = listing.Total()
		} else {
			count = listing.Count(domain.SourceTag(option))
		}
	}
	return fmt.Sprintf("%s (%d)", name, count)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.filter.SetWidth(width)
	// Title, selector, filter box, help and spacing take ten lines.
	v.table.SetDimensions(width, height-10)
}

// SetSource selects a source filter.
func (v *View) SetSource(source domain.SourceFilter) {
	for i, option := range sourceOptions {
		if option == source {
			v.sourceIdx = i
			v.refresh()
			return
		}
	}
}

// Source returns the selected source filter.
func (v *View) Source() domain.SourceFilter {
	return sourceOptions[v.sourceIdx]
}

// SetQuery sets the free-text filter.
func (v *View) SetQuery(q string) {
	v.filter.SetValue(q)
	v.refresh()
}

// Query returns the free-text filter.
func (v *View) Query() string {
	return v.filter.Value()
}

// Visible returns the filtered, sorted records currently shown.
func (v *View) Visible() []domain.Record {
	return v.visible
}

// Listing returns the last loaded listing, or nil before the first load.
func (v *View) Listing() *domain.Listing {
	return v.listing
}

// Loading reports whether a fetch cycle is in flight.
func (v *View) Loading() bool {
	return v.loading
}

// Err returns the error shown in place of the table, if any.
func (v *View) Err() string {
	return v.err
}

// Cycle returns the id of the current fetch cycle.
func (v *View) Cycle() int {
	return v.cycle
}
