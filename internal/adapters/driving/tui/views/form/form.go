// Package form provides the registration form views for the TUI.
package form

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/registro-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/registro-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/registro-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/registro-cli/internal/core/domain"
	"github.com/custodia-labs/registro-cli/internal/core/ports/driving"
)

const (
	// SavedMessage is shown after a successful submission.
	SavedMessage = "✅ Registro guardado"

	// NoticeDuration is how long SavedMessage stays visible.
	NoticeDuration = 3 * time.Second

	// FailurePrefix precedes server and transport failures.
	FailurePrefix = "⚠️ "
)

// Field indexes in display order.
const (
	FieldNombre = iota
	FieldIdentificacion
	FieldCelular
	FieldDireccion
	FieldBarrio
	fieldCount
)

// Labels are the field names in display order.
var Labels = [fieldCount]string{"Nombre", "Identificación", "Celular", "Dirección", "Barrio"}

// View is a five-field data-entry form bound to one FormKind.
type View struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	service driving.SubmissionService
	kind    domain.FormKind

	inputs [fieldCount]textinput.Model
	focus  int

	saving bool
	ok     string
	err    string
	seq    int
	ttl    time.Duration

	width  int
	height int
	ready  bool
}

// NewView creates a form view for the given kind.
func NewView(s *styles.Styles, km *keymap.KeyMap, kind domain.FormKind, service driving.SubmissionService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	v := &View{
		styles:  s,
		keymap:  km,
		service: service,
		kind:    kind,
		ttl:     NoticeDuration,
		width:   80,
		height:  24,
	}
	for i := range v.inputs {
		ti := textinput.New()
		ti.Placeholder = Labels[i]
		ti.CharLimit = 256
		ti.Width = 40
		ti.Prompt = ""
		v.inputs[i] = ti
	}
	v.inputs[0].Focus()
	return v
}

// Init initialises the form view.
func (v *View) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the form view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.SubmissionCompleted:
		if msg.Kind != v.kind {
			return v, nil
		}
		return v, v.handleCompleted(msg)

	case messages.NoticeExpired:
		if msg.Kind == v.kind && msg.Seq == v.seq {
			v.ok = ""
		}
		return v, nil

	case tea.KeyMsg:
		return v.handleKey(msg)
	}

	return v, nil
}

func (v *View) handleKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	key := msg.String()

	switch {
	case keymap.Matches(key, v.keymap.Back):
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	case keymap.Matches(key, v.keymap.Submit):
		return v, v.Submit()
	case keymap.Matches(key, v.keymap.NextField), keymap.Matches(key, v.keymap.Down):
		return v, v.setFocus(v.focus + 1)
	case keymap.Matches(key, v.keymap.PrevField), keymap.Matches(key, v.keymap.Up):
		return v, v.setFocus(v.focus - 1)
	}

	var cmd tea.Cmd
	v.inputs[v.focus], cmd = v.inputs[v.focus].Update(msg)
	return v, cmd
}

func (v *View) setFocus(i int) tea.Cmd {
	v.focus = (i + fieldCount) % fieldCount
	var cmd tea.Cmd
	for j := range v.inputs {
		if j == v.focus {
			cmd = v.inputs[j].Focus()
		} else {
			v.inputs[j].Blur()
		}
	}
	return cmd
}

// Submit validates the form and, when valid, posts it in the background.
// Submissions are ignored while one is in flight.
func (v *View) Submit() tea.Cmd {
	if v.saving {
		return nil
	}
	v.ok = ""
	v.err = ""

	reg := v.Registration()
	if err := reg.Validate(); err != nil {
		v.err = err.Error()
		return nil
	}

	v.saving = true
	kind := v.kind
	service := v.service
	return func() tea.Msg {
		if service == nil {
			return messages.SubmissionCompleted{Kind: kind, Err: domain.ErrAPIUnavailable}
		}
		resp, err := service.Submit(context.Background(), kind, reg)
		return messages.SubmissionCompleted{Kind: kind, Response: resp, Err: err}
	}
}

func (v *View) handleCompleted(msg messages.SubmissionCompleted) tea.Cmd {
	v.saving = false

	if msg.Err != nil {
		var verr *domain.ValidationError
		if errors.As(msg.Err, &verr) {
			v.err = verr.Message
		} else {
			v.err = FailurePrefix + msg.Err.Error()
		}
		return nil
	}

	v.ok = SavedMessage
	v.Reset()
	v.seq++
	kind, seq := v.kind, v.seq
	return tea.Tick(v.ttl, func(time.Time) tea.Msg {
		return messages.NoticeExpired{Kind: kind, Seq: seq}
	})
}

// View renders the form.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder

	b.WriteString(v.styles.Title.Render(v.kind.Title()))
	b.WriteString("\n\n")

	if v.ok != "" {
		b.WriteString(v.styles.Success.Render(v.ok))
		b.WriteString("\n\n")
	}
	if v.err != "" {
		b.WriteString(v.styles.Error.Render(v.err))
		b.WriteString("\n\n")
	}

	for i := range v.inputs {
		box := v.styles.InputField
		if i == v.focus {
			box = v.styles.FocusedInput
		}
		row := lipgloss.JoinHorizontal(lipgloss.Center,
			v.styles.Label.Render(Labels[i]),
			box.Render(v.inputs[i].View()),
		)
		b.WriteString(row)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Button.Render(v.ButtonLabel()))
	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render(keymap.HelpLine(v.keymap.FormHelp())))

	return b.String()
}

// ButtonLabel returns the submit button text for the current state.
func (v *View) ButtonLabel() string {
	if v.saving {
		return "Guardando..."
	}
	return "Guardar"
}

// Registration returns the form values as typed.
func (v *View) Registration() domain.Registration {
	return domain.Registration{
		Nombre:         v.inputs[FieldNombre].Value(),
		Identificacion: v.inputs[FieldIdentificacion].Value(),
		Celular:        v.inputs[FieldCelular].Value(),
		Direccion:      v.inputs[FieldDireccion].Value(),
		Barrio:         v.inputs[FieldBarrio].Value(),
	}
}

// SetField sets the value of one field.
func (v *View) SetField(field int, value string) {
	if field >= 0 && field < fieldCount {
		v.inputs[field].SetValue(value)
	}
}

// Reset clears every field and focuses the first.
func (v *View) Reset() {
	for i := range v.inputs {
		v.inputs[i].Reset()
	}
	v.setFocus(0)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// SetNoticeDuration overrides how long the success notice stays visible.
func (v *View) SetNoticeDuration(d time.Duration) {
	v.ttl = d
}

// Kind returns the form this view submits.
func (v *View) Kind() domain.FormKind {
	return v.kind
}

// Focus returns the index of the focused field.
func (v *View) Focus() int {
	return v.focus
}

// Saving reports whether a submission is in flight.
func (v *View) Saving() bool {
	return v.saving
}

// Notice returns the success notice, if any.
func (v *View) Notice() string {
	return v.ok
}

// Err returns the error message, if any.
func (v *View) Err() string {
	return v.err
}
