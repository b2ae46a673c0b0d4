// Package menu provides the navigation menu for the TUI.
package menu

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/registro-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/registro-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/registro-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/registro-cli/internal/core/domain"
)

// Item is a single menu entry. Quit entries end the program instead of
// changing view.
type Item struct {
	Label string
	View  messages.ViewType
	Quit  bool
}

// View lists the screens the user can open.
type View struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	items    []Item
	selected int
	width    int
	height   int
	ready    bool
}

// NewView creates the menu. Nil styles or keymap fall back to defaults.
func NewView(s *styles.Styles, km *keymap.KeyMap) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles: s,
		keymap: km,
		items: []Item{
			{Label: "Registrados", View: messages.ViewListing},
			{Label: domain.FormVoter.Title(), View: messages.ViewVoterForm},
			{Label: domain.FormVolunteer.Title(), View: messages.ViewVolunteerForm},
			{Label: "Ayuda", View: messages.ViewHelp},
			{Label: "Salir", Quit: true},
		},
		width:  80,
		height: 24,
	}
}

func (v *View) Init() tea.Cmd {
	return nil
}

// Update moves the cursor and opens the chosen entry. Digits 1-9 open
// the entry at that position directly.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, v.keymap.Up), msg.String() == "k":
			if v.selected > 0 {
				v.selected--
			}
		case key.Matches(msg, v.keymap.Down), msg.String() == "j":
			if v.selected < len(v.items)-1 {
				v.selected++
			}
		case key.Matches(msg, v.keymap.Select):
			return v, v.open(v.selected)
		case key.Matches(msg, v.keymap.Close):
			return v, tea.Quit
		default:
			if n, ok := digit(msg.String()); ok && n <= len(v.items) {
				v.selected = n - 1
				return v, v.open(v.selected)
			}
		}
	}

	return v, nil
}

func (v *View) open(i int) tea.Cmd {
	item := v.items[i]
	if item.Quit {
		return tea.Quit
	}
	return func() tea.Msg {
		return messages.ViewChanged{View: item.View}
	}
}

func digit(s string) (int, bool) {
	if len(s) != 1 || s[0] < '1' || s[0] > '9' {
		return 0, false
	}
	return int(s[0] - '0'), true
}

func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Registro"))
	b.WriteString("\n\n")
	b.WriteString(v.styles.Muted.Render("Inscripciones y registro de personas"))
	b.WriteString("\n\n")

	for i, item := range v.items {
		cursor := "  "
		style := v.styles.Normal
		if i == v.selected {
			cursor = "> "
			style = v.styles.Title
		}
		b.WriteString(cursor + v.styles.Muted.Render(fmt.Sprintf("%d ", i+1)) + style.Render(item.Label))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render(keymap.HelpLine([]key.Binding{
		v.keymap.Up, v.keymap.Down, v.keymap.Select, v.keymap.Close,
	})))

	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Selected returns the cursor position.
func (v *View) Selected() int {
	return v.selected
}

// Items returns the menu entries in display order.
func (v *View) Items() []Item {
	return v.items
}
