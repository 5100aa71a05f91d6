package ui

import (
	"backoffice/internal/db"
	"backoffice/internal/model"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// pageHeaderLines is the height of a list page's title block.
const pageHeaderLines = 3

type pageInfo struct {
	description string
	actionLabel string
}

var pages = map[model.Entity]pageInfo{
	model.EntityOrders:   {description: "Manage your customer orders", actionLabel: "New Order"},
	model.EntityPayments: {description: "View and manage payment transactions"},
	model.EntityProducts: {description: "Manage your product catalog", actionLabel: "Add Product"},
	model.EntityUsers:    {description: "Manage your user accounts", actionLabel: "Add User"},
}

// ListPage is one entity's list screen. It owns the records and the
// selection, and feeds both to its table.
type ListPage struct {
	schema    model.Schema
	records   []model.Record
	selection SelectionSet
	table     *DataTable
	open      func(model.Record) tea.Cmd
}

// NewListPage creates the list page for schema. open is called with the
// activated record.
func NewListPage(schema model.Schema, records []model.Record, open func(model.Record) tea.Cmd) *ListPage {
	p := &ListPage{
		schema:  schema,
		records: records,
		open:    open,
	}
	p.table = NewDataTable(p.props())
	return p
}

func (p *ListPage) props() DataTableProps {
	return DataTableProps{
		Columns:           ColumnsFor(p.schema.Entity),
		Data:              p.records,
		OnRowClick:        p.open,
		Selectable:        true,
		OnSelectionChange: p.onSelectionChange,
		SelectedItems:     p.selection.IDs(),
	}
}

func (p *ListPage) onSelectionChange(id string, selected bool) {
	p.selection.Set(id, selected)
	p.table.SetProps(p.props())
}

// Entity returns the page's entity.
func (p *ListPage) Entity() model.Entity {
	return p.schema.Entity
}

// Table returns the page's table.
func (p *ListPage) Table() *DataTable {
	return p.table
}

// Records returns the page's records.
func (p *ListPage) Records() []model.Record {
	return p.records
}

// SetRecords replaces the records and drops selected ids that are gone.
func (p *ListPage) SetRecords(records []model.Record) {
	p.records = records
	p.selection.Retain(db.IDs(records))
	p.table.SetProps(p.props())
}

// SelectedIDs returns the selected ids in selection order.
func (p *ListPage) SelectedIDs() []string {
	return p.selection.IDs()
}

// ClearSelection deselects everything.
func (p *ListPage) ClearSelection() {
	p.selection.Clear()
	p.table.SetProps(p.props())
}

// CursorRecord returns the record under the table cursor.
func (p *ListPage) CursorRecord() (model.Record, bool) {
	return p.table.CursorRecord()
}

// SetSize sets the height available to the page.
func (p *ListPage) SetSize(height int) {
	p.table.SetSize(height - pageHeaderLines)
}

// Update routes msg to the table.
func (p *ListPage) Update(msg tea.Msg) (tea.Cmd, bool) {
	return p.table.Update(msg)
}

// ClickAt handles a click at page-local coordinates.
func (p *ListPage) ClickAt(x, y int) tea.Cmd {
	if y < pageHeaderLines {
		return nil
	}
	return p.table.ClickAt(x, y-pageHeaderLines)
}

// View renders the page.
func (p *ListPage) View(width, height int) string {
	title := PageTitleStyle.Render(p.schema.Title)
	info := pages[p.schema.Entity]
	if info.actionLabel != "" && p.schema.Creatable {
		title = lipgloss.JoinHorizontal(lipgloss.Left, title, HelpDescStyle.Render("  a "+info.actionLabel))
	}
	return lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		PageDescStyle.Render(info.description),
		"",
		p.table.View(width, height-pageHeaderLines),
	)
}
