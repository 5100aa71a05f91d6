package ui

import (
	"time"

	"backoffice/internal/model"
	"backoffice/internal/util"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// DashboardModel shows store totals and the most recent orders.
type DashboardModel struct {
	stats model.DashboardStats
	table *DataTable
}

// NewDashboardModel creates the dashboard. open is called with an
// activated recent order.
func NewDashboardModel(stats model.DashboardStats, open func(model.Record) tea.Cmd) *DashboardModel {
	return &DashboardModel{
		stats: stats,
		table: NewDataTable(DataTableProps{
			Columns:    recentOrderColumns(time.Now),
			Data:       stats.RecentOrders,
			OnRowClick: open,
		}),
	}
}

// recentOrderColumns are the order columns with relative dates.
func recentOrderColumns(now func() time.Time) []Column {
	cols := ColumnsFor(model.EntityOrders)
	for i := range cols {
		if cols[i].Accessor == "date" {
			cols[i].Cell = func(r model.Record) string {
				return util.FormatDateHuman(r.Value("date").String(), now())
			}
		}
	}
	return cols
}

// SetStats replaces the numbers and the recent orders.
func (m *DashboardModel) SetStats(stats model.DashboardStats) {
	m.stats = stats
	props := m.table.Props()
	props.Data = stats.RecentOrders
	m.table.SetProps(props)
}

// Stats returns the shown numbers.
func (m *DashboardModel) Stats() model.DashboardStats {
	return m.stats
}

// Table returns the recent orders table.
func (m *DashboardModel) Table() *DataTable {
	return m.table
}

// Update routes msg to the recent orders table.
func (m *DashboardModel) Update(msg tea.Msg) (tea.Cmd, bool) {
	return m.table.Update(msg)
}

func (m *DashboardModel) cards(width int) string {
	cardWidth := max(18, (width-8)/4)
	cards := []struct{ title, value string }{
		{"Total Orders", util.FormatCount(m.stats.TotalOrders)},
		{"Revenue", util.FormatMoney(m.stats.Revenue)},
		{"Products", util.FormatCount(m.stats.Products)},
		{"Active Users", util.FormatCount(m.stats.ActiveUsers)},
	}
	rendered := make([]string, len(cards))
	for i, c := range cards {
		rendered[i] = PanelStyle.Padding(0, 1).Width(cardWidth).Render(
			lipgloss.JoinVertical(
				lipgloss.Left,
				HelpDescStyle.Render(c.title),
				lipgloss.NewStyle().Foreground(ColorText).Bold(true).Render(c.value),
			),
		)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m *DashboardModel) title() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		PageTitleStyle.Render("Dashboard"),
		PageDescStyle.Render("Overview of your store"),
	)
}

// tableTop is the line the recent orders table starts on.
func (m *DashboardModel) tableTop(width int) int {
	return lipgloss.Height(m.title()) + lipgloss.Height(m.cards(width)) + 1
}

func (m *DashboardModel) tableHeight(width, height int) int {
	return max(tableChromeLines+1, height-m.tableTop(width))
}

// SetSize sizes the recent orders table.
func (m *DashboardModel) SetSize(width, height int) {
	m.table.SetSize(m.tableHeight(width, height))
}

// ClickAt handles a click at screen-local coordinates.
func (m *DashboardModel) ClickAt(x, y, width int) tea.Cmd {
	top := m.tableTop(width)
	if y < top {
		return nil
	}
	return m.table.ClickAt(x, y-top)
}

// View renders the dashboard.
func (m *DashboardModel) View(width, height int) string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.title(),
		m.cards(width),
		LabelStyle.Render(" Recent Orders"),
		m.table.View(width, m.tableHeight(width, height)),
	)
}
