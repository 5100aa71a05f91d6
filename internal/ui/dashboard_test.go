package ui

import (
	"testing"
	"time"

	"backoffice/internal/model"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecentOrderColumns_RelativeDates(t *testing.T) {
	now := func() time.Time { return time.Date(2025, 5, 13, 9, 0, 0, 0, time.UTC) }
	cols := recentOrderColumns(now)

	var date Column
	for _, c := range cols {
		if c.Accessor == "date" {
			date = c
		}
	}
	require.NotNil(t, date.Cell)

	r := model.NewRecord(model.F("id", model.String("ORD-001")), model.F("date", model.String("2025-05-12")))
	assert.Equal(t, "Yesterday", renderCell(date, r))
}

func TestDashboard_ViewAndClick(t *testing.T) {
	store := openStore(t)
	stats, err := store.Stats()
	require.NoError(t, err)

	var opened []string
	d := NewDashboardModel(stats, func(r model.Record) tea.Cmd {
		opened = append(opened, r.ID())
		return nil
	})
	d.SetSize(120, 30)

	view := d.View(120, 30)
	assert.Contains(t, view, "Total Orders")
	assert.Contains(t, view, "Recent Orders")

	d.ClickAt(20, d.tableTop(120)+firstRowLine, 120)
	require.Len(t, opened, 1)
	assert.Equal(t, stats.RecentOrders[0].ID(), opened[0])
	assert.Empty(t, d.Table().Props().SelectedItems, "the dashboard table is not selectable")
}
