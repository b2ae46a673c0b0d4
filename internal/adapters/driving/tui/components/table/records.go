// Package table provides the record table used by the listing view.
package table

import (
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"

	"github.com/custodia-labs/registro-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/registro-cli/internal/core/domain"
)

// EmptyMessage is shown in place of the table when no record passes the filters.
const EmptyMessage = "Sin registros."

// DateLayout is the local-time layout for parseable registration timestamps.
const DateLayout = "2006-01-02 15:04:05"

// Columns are the listing headings in display order.
var Columns = []string{
	"#", "Fuente", "Fecha registro", "Nombre", "Identificación",
	"Celular", "Dirección", "Barrio", "ID",
}

// FormatDate renders a registration timestamp in local time.
// Unparseable values are returned unchanged.
func FormatDate(v string) string {
	if v == "" {
		return ""
	}
	t, ok := domain.ParseTimestamp(v)
	if !ok {
		return v
	}
	return t.Local().Format(DateLayout)
}

// Row returns the cells of a record. Position is 1-based.
func Row(position int, r *domain.Record) []string {
	return []string{
		strconv.Itoa(position),
		r.Source.Label(),
		FormatDate(r.RegisteredAt),
		r.Name,
		r.Identification,
		r.Phone,
		r.Address,
		r.Neighborhood,
		r.ID.String(),
	}
}

// Rows returns the cells of every record, numbered from 1.
func Rows(records []domain.Record) [][]string {
	rows := make([][]string, 0, len(records))
	for i := range records {
		rows = append(rows, Row(i+1, &records[i]))
	}
	return rows
}

// RecordTable displays records in a scrollable table.
type RecordTable struct {
	records  []domain.Record
	selected int
	offset   int
	styles   *styles.Styles
	width    int
	height   int
}

// NewRecordTable creates a new record table component.
func NewRecordTable(s *styles.Styles) *RecordTable {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &RecordTable{
		styles: s,
		width:  120,
		height: 20,
	}
}

// Init initialises the table.
func (t *RecordTable) Init() tea.Cmd {
	return nil
}

// Update handles table navigation messages.
func (t *RecordTable) Update(msg tea.Msg) (*RecordTable, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		//nolint:exhaustive // handling only relevant key types
		switch msg.Type {
		case tea.KeyUp:
			t.MoveUp()
		case tea.KeyDown:
			t.MoveDown()
		case tea.KeyPgUp:
			for i := 0; i < t.visibleRows(); i++ {
				t.MoveUp()
			}
		case tea.KeyPgDown:
			for i := 0; i < t.visibleRows(); i++ {
				t.MoveDown()
			}
		case tea.KeyHome:
			t.SetSelected(0)
		case tea.KeyEnd:
			t.SetSelected(len(t.records) - 1)
		default:
		}
	}
	return t, nil
}

// View renders the visible window of the table.
func (t *RecordTable) View() string {
	if len(t.records) == 0 {
		return t.styles.Muted.Render(EmptyMessage)
	}

	end := t.offset + t.visibleRows()
	if end > len(t.records) {
		end = len(t.records)
	}

	rows := make([][]string, 0, end-t.offset)
	for i := t.offset; i < end; i++ {
		rows = append(rows, Row(i+1, &t.records[i]))
	}

	selected := t.selected - t.offset
	tbl := lgtable.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(t.styles.Theme().Border)).
		Headers(Columns...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			switch {
			case row == lgtable.HeaderRow:
				return t.styles.TableHeader
			case row == selected:
				return t.styles.Selected.Padding(0, 1)
			default:
				return t.styles.TableCell
			}
		})

	return tbl.String()
}

// visibleRows is the number of data rows that fit, after the header and borders.
func (t *RecordTable) visibleRows() int {
	n := t.height - 4
	if n < 1 {
		n = 1
	}
	return n
}

func (t *RecordTable) scroll() {
	if t.selected < t.offset {
		t.offset = t.selected
	}
	if visible := t.visibleRows(); t.selected >= t.offset+visible {
		t.offset = t.selected - visible + 1
	}
}

// SetRecords replaces the rows and resets the selection.
func (t *RecordTable) SetRecords(records []domain.Record) {
	t.records = records
	t.selected = 0
	t.offset = 0
}

// Records returns the current rows.
func (t *RecordTable) Records() []domain.Record {
	return t.records
}

// Selected returns the index of the selected row.
func (t *RecordTable) Selected() int {
	return t.selected
}

// SetSelected sets the selected index.
func (t *RecordTable) SetSelected(index int) {
	if index >= 0 && index < len(t.records) {
		t.selected = index
		t.scroll()
	}
}

// SelectedRecord returns the currently selected record, or nil if none.
func (t *RecordTable) SelectedRecord() *domain.Record {
	if len(t.records) == 0 || t.selected < 0 || t.selected >= len(t.records) {
		return nil
	}
	return &t.records[t.selected]
}

// MoveUp moves selection up.
func (t *RecordTable) MoveUp() {
	if t.selected > 0 {
		t.selected--
		t.scroll()
	}
}

// MoveDown moves selection down.
func (t *RecordTable) MoveDown() {
	if t.selected < len(t.records)-1 {
		t.selected++
		t.scroll()
	}
}

// Offset returns the index of the first visible row.
func (t *RecordTable) Offset() int {
	return t.offset
}

// SetDimensions sets the component dimensions.
func (t *RecordTable) SetDimensions(width, height int) {
	t.width = width
	t.height = height
	t.scroll()
}

// Width returns the current width.
func (t *RecordTable) Width() int {
	return t.width
}

// Height returns the current height.
func (t *RecordTable) Height() int {
	return t.height
}

// Count returns the number of rows.
func (t *RecordTable) Count() int {
	return len(t.records)
}

// IsEmpty returns whether the table is empty.
func (t *RecordTable) IsEmpty() bool {
	return len(t.records) == 0
}
