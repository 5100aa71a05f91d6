package ui

import (
	"fmt"
	"strings"

	"backoffice/internal/model"
	"backoffice/internal/util"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// DetailModel is the detail screen of one record and its related records.
type DetailModel struct {
	schema  model.Schema
	record  model.Record
	related []model.RelatedGroup
	table   *DataTable
}

// NewDetailModel creates a detail screen. open is called when a related
// record is activated.
func NewDetailModel(schema model.Schema, record model.Record, related []model.RelatedGroup, open func(model.Entity, model.Record) tea.Cmd) *DetailModel {
	m := &DetailModel{
		schema:  schema,
		record:  record,
		related: related,
	}
	if len(related) > 0 {
		group := related[0]
		m.table = NewDataTable(DataTableProps{
			Columns: ColumnsFor(group.Entity),
			Data:    group.Records,
			OnRowClick: func(r model.Record) tea.Cmd {
				return open(group.Entity, r)
			},
		})
	}
	return m
}

// Entity returns the record's entity.
func (m *DetailModel) Entity() model.Entity {
	return m.schema.Entity
}

// Record returns the shown record.
func (m *DetailModel) Record() model.Record {
	return m.record
}

// Table returns the related records table, nil when there is none.
func (m *DetailModel) Table() *DataTable {
	return m.table
}

// Update routes msg to the related records table.
func (m *DetailModel) Update(msg tea.Msg) (tea.Cmd, bool) {
	if m.table == nil {
		return nil, false
	}
	return m.table.Update(msg)
}

func (m *DetailModel) header(width int) string {
	title := PageTitleStyle.Render(fmt.Sprintf("%s %s", m.schema.Singular, m.record.ID()))
	return lipgloss.JoinHorizontal(
		lipgloss.Left,
		title,
		lipgloss.NewStyle().
			Width(max(0, width-lipgloss.Width(title)-4)).
			Align(lipgloss.Right).
			Render(HelpDescStyle.Render("e edit  d delete  h back")),
	)
}

func (m *DetailModel) card(width int) string {
	var fields []string
	for _, f := range m.schema.Fields {
		fields = append(fields, m.renderDetailField(f))
	}
	return PanelStyle.
		Width(max(20, width-4)).
		Render(lipgloss.JoinVertical(
			lipgloss.Left,
			LabelStyle.Render(m.schema.Singular+" Information"),
			"",
			strings.Join(fields, "\n"),
		))
}

// tableTop is the line the related records table starts on.
func (m *DetailModel) tableTop(width int) int {
	return lipgloss.Height(m.header(width)) + lipgloss.Height(m.card(width)) + 1
}

func (m *DetailModel) tableHeight(width, height int) int {
	return max(tableChromeLines+1, height-m.tableTop(width))
}

// SetSize sizes the related records table.
func (m *DetailModel) SetSize(width, height int) {
	if m.table != nil {
		m.table.SetSize(m.tableHeight(width, height))
	}
}

// ClickAt handles a click at screen-local coordinates.
func (m *DetailModel) ClickAt(x, y, width int) tea.Cmd {
	top := m.tableTop(width)
	if m.table == nil || y < top {
		return nil
	}
	return m.table.ClickAt(x, y-top)
}

// View renders the detail card and related records.
func (m *DetailModel) View(width, height int) string {
	sections := []string{m.header(width), m.card(width)}
	if m.table != nil {
		sections = append(sections,
			LabelStyle.Render(" "+m.related[0].Title),
			m.table.View(width, m.tableHeight(width, height)),
		)
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *DetailModel) renderDetailField(f model.FieldSpec) string {
	v := m.record.Value(f.Name)
	value := emptyCell
	switch {
	case !v.Truthy():
	case f.Name == "status":
		value = StatusBadge(m.schema.Entity, v.String())
	case f.Kind == model.FieldDate:
		value = util.FormatDate(v.String())
	default:
		value = v.Display()
	}
	label := LabelStyle.Width(14).Render(f.Label)
	return label + " " + value
}
