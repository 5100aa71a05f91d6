package ui

import (
	"strings"
	"testing"

	"backoffice/internal/model"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClipboard struct {
	text string
}

func (c *fakeClipboard) write(s string) error {
	c.text = s
	return nil
}

// run executes cmd and feeds every resulting message back into m until
// nothing is left to do.
func run(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		require.Less(t, steps, 100, "command loop did not settle")
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case nil:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		default:
			next, more := m.Update(msg)
			m = next.(Model)
			queue = append(queue, more)
		}
	}
	return m
}

// send delivers msg without running the command it returns.
func send(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func sendKeys(t *testing.T, m Model, keys ...tea.KeyMsg) Model {
	t.Helper()
	for _, k := range keys {
		var cmd tea.Cmd
		m, cmd = send(m, k)
		m = run(t, m, cmd)
	}
	return m
}

func startApp(t *testing.T) (Model, *fakeClipboard) {
	t.Helper()
	clip := &fakeClipboard{}
	m := New(openStore(t), nil, Options{Clipboard: clip.write})
	m, _ = send(m, tea.WindowSizeMsg{Width: 120, Height: 40})
	m = run(t, m, m.Init())
	require.Len(t, m.lists, len(model.Entities))
	require.NotNil(t, m.dashboard)
	return m, clip
}

func space() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
}

func TestApp_TabsSwitchScreens(t *testing.T) {
	m, _ := startApp(t)
	assert.Equal(t, model.ScreenDashboard, m.screen)

	m = sendKeys(t, m, runes("4"))
	assert.Equal(t, model.ScreenList, m.screen)
	assert.Equal(t, model.EntityProducts, m.entity)

	m = sendKeys(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, model.EntityUsers, m.entity)

	m = sendKeys(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, model.ScreenDashboard, m.screen, "tabs wrap around")

	assert.Contains(t, m.View(), "E-Commerce Admin")
}

func TestApp_BulkDeleteUndoRedo(t *testing.T) {
	m, _ := startApp(t)
	m = sendKeys(t, m, runes("2"), space(), runes("j"), space())

	page := m.lists[model.EntityOrders]
	require.Equal(t, []string{"ORD-001", "ORD-002"}, page.SelectedIDs())

	m = sendKeys(t, m, runes("D"))
	assert.Len(t, page.Records(), 6)
	assert.Empty(t, page.SelectedIDs(), "deleted rows leave the selection")
	assert.Contains(t, m.info, "2 orders deleted")
	assert.Equal(t, 6, m.dashboard.Stats().TotalOrders)

	m = sendKeys(t, m, runes("u"))
	assert.Len(t, page.Records(), 8)
	assert.Equal(t, "Undid: 2 orders deleted", m.info)

	m = sendKeys(t, m, tea.KeyMsg{Type: tea.KeyCtrlR})
	assert.Len(t, page.Records(), 6)
	assert.Equal(t, "Redid: 2 orders deleted", m.info)
}

func TestApp_BulkDeleteNeedsSelection(t *testing.T) {
	m, _ := startApp(t)
	m = sendKeys(t, m, runes("2"), runes("D"))

	assert.Equal(t, "No records selected", m.info)
	assert.Len(t, m.lists[model.EntityOrders].Records(), 8)
}

func TestApp_CopyIDs(t *testing.T) {
	m, clip := startApp(t)
	m = sendKeys(t, m, runes("5"), runes("y"))
	assert.Equal(t, "USER-101", clip.text)

	m = sendKeys(t, m, runes("A"), runes("y"))
	assert.Equal(t, "USER-101\nUSER-102\nUSER-103\nUSER-104\nUSER-105\nUSER-106", clip.text)
	assert.Equal(t, "Copied 6 id(s) to clipboard", m.info)
}

func TestApp_SearchOwnsTheKeyboard(t *testing.T) {
	m, _ := startApp(t)
	m = sendKeys(t, m, runes("2"))

	m, _ = send(m, runes("/"))
	assert.Equal(t, model.ModeSearch, m.mode)
	for _, r := range "ORD-002" {
		m, _ = send(m, runes(string(r)))
	}
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, model.ModeNav, m.mode)
	assert.Equal(t, model.EntityOrders, m.entity, "digits typed into search do not switch tabs")
	table := m.lists[model.EntityOrders].Table()
	assert.Equal(t, "ORD-002", table.SearchTerm())
	assert.Len(t, table.Filtered(), 1)
}

func TestApp_OpenDetailAndBack(t *testing.T) {
	m, _ := startApp(t)
	m = sendKeys(t, m, runes("2"), runes("j"), tea.KeyMsg{Type: tea.KeyEnter})

	require.Equal(t, model.ScreenDetail, m.screen)
	assert.Equal(t, "ORD-002", m.detail.Record().ID())
	assert.Contains(t, m.View(), "ORD-002")

	m = sendKeys(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, model.ScreenList, m.screen)
	assert.Equal(t, model.EntityOrders, m.entity)
}

func TestApp_CreateThenUndo(t *testing.T) {
	m, _ := startApp(t)
	m = sendKeys(t, m, runes("2"), runes("a"))
	require.Equal(t, model.ScreenForm, m.screen)
	require.Equal(t, model.ModeInsert, m.mode)

	fill(m.form, validOrder())
	m = sendKeys(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	require.Equal(t, model.ScreenDetail, m.screen)
	assert.Equal(t, "ORD-009", m.detail.Record().ID())
	assert.Equal(t, model.ModeNav, m.mode)
	assert.Len(t, m.lists[model.EntityOrders].Records(), 9)

	m = sendKeys(t, m, runes("u"))
	assert.Equal(t, model.ScreenList, m.screen)
	assert.Len(t, m.lists[model.EntityOrders].Records(), 8)
}

func TestApp_PaymentsAreNotCreatable(t *testing.T) {
	m, _ := startApp(t)
	m = sendKeys(t, m, runes("3"), runes("a"))

	assert.Equal(t, model.ScreenList, m.screen)
	assert.Equal(t, "Payments cannot be created here", m.info)
}

func TestApp_FormCancelReturns(t *testing.T) {
	m, _ := startApp(t)
	m = sendKeys(t, m, runes("4"), runes("e"), tea.KeyMsg{Type: tea.KeyEsc})

	assert.Equal(t, model.ScreenList, m.screen)
	assert.Equal(t, model.EntityProducts, m.entity)
	assert.Nil(t, m.form)
}

func TestApp_MouseClicks(t *testing.T) {
	m, _ := startApp(t)
	header, tabs, _ := m.chrome()
	tabY := lipgloss.Height(header)

	x := 0
	for tabAt(x) != 1 {
		x++
	}
	m, _ = send(m, tea.MouseMsg{X: x, Y: tabY, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	require.Equal(t, model.ScreenList, m.screen)
	require.Equal(t, model.EntityOrders, m.entity)

	top := tabY + lipgloss.Height(tabs)
	m, _ = send(m, tea.MouseMsg{X: 1, Y: top + pageHeaderLines + firstRowLine, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.Equal(t, []string{"ORD-001"}, m.lists[model.EntityOrders].SelectedIDs())

	m, cmd := send(m, tea.MouseMsg{X: 20, Y: top + pageHeaderLines + firstRowLine + 2, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = run(t, m, cmd)
	require.Equal(t, model.ScreenDetail, m.screen)
	assert.Equal(t, "ORD-003", m.detail.Record().ID())
}

func TestApp_MouseClicksOnNarrowTerminal(t *testing.T) {
	m, _ := startApp(t)
	m, _ = send(m, tea.WindowSizeMsg{Width: 80, Height: 40})
	m = sendKeys(t, m, runes("3"))
	require.Equal(t, model.EntityPayments, m.entity)

	for _, line := range strings.Split(m.View(), "\n") {
		require.LessOrEqual(t, lipgloss.Width(line), 80, "line wraps: %q", line)
	}

	header, tabs, _ := m.chrome()
	top := lipgloss.Height(header) + lipgloss.Height(tabs)
	y := top + pageHeaderLines + firstRowLine + 2

	m, _ = send(m, tea.MouseMsg{X: 1, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.Equal(t, []string{"PAY-1236"}, m.lists[model.EntityPayments].SelectedIDs())

	m, cmd := send(m, tea.MouseMsg{X: 20, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = run(t, m, cmd)
	require.Equal(t, model.ScreenDetail, m.screen)
	assert.Equal(t, "PAY-1236", m.detail.Record().ID())
}

func TestApp_ClickRowLeavesSearch(t *testing.T) {
	m, _ := startApp(t)
	m = sendKeys(t, m, runes("2"))
	m, _ = send(m, runes("/"))
	require.Equal(t, model.ModeSearch, m.mode)

	header, tabs, _ := m.chrome()
	top := lipgloss.Height(header) + lipgloss.Height(tabs)
	m, _ = send(m, tea.MouseMsg{X: 1, Y: top + pageHeaderLines + firstRowLine, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})

	table := m.lists[model.EntityOrders].Table()
	assert.False(t, table.Searching())
	assert.Equal(t, model.ModeNav, m.mode)
	assert.Equal(t, []string{"ORD-001"}, m.lists[model.EntityOrders].SelectedIDs())

	m = sendKeys(t, m, runes("j"))
	assert.Empty(t, table.SearchTerm(), "keys go to the table again")
	assert.Equal(t, 1, table.Cursor())
}

func TestTabAt(t *testing.T) {
	assert.Equal(t, -1, tabAt(0))
	assert.Equal(t, 0, tabAt(tabBarIndent))
	assert.Equal(t, -1, tabAt(1000))

	last := -1
	for x := 0; x < 200; x++ {
		if i := tabAt(x); i >= 0 {
			assert.GreaterOrEqual(t, i, last)
			last = i
		}
	}
	assert.Equal(t, len(tabTitles)-1, last)
}
