package ui

import (
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"time"

	"backoffice/internal/db"
	"backoffice/internal/model"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var tabTitles = []string{"Dashboard", "Orders", "Payments", "Products", "Users"}

// Options configures the root model.
type Options struct {
	// PrefsPath is where table preferences persist. Empty disables it.
	PrefsPath string
	// Clipboard writes text to the system clipboard.
	Clipboard func(string) error
}

// Model is the root Bubble Tea model.
type Model struct {
	store  *db.Store
	logger *slog.Logger
	screen model.Screen
	mode   model.Mode
	entity model.Entity

	width  int
	height int

	error       string
	info        string
	showingHelp bool

	// Screen models
	dashboard *DashboardModel
	lists     map[model.Entity]*ListPage
	detail    *DetailModel
	form      *FormModel

	// where back and cancel return to
	detailReturn screenRef
	formReturn   screenRef

	keys      KeyMap
	prefs     UIPreferences
	prefsPath string
	copyText  func(string) error
	undoStack []undoAction
	redoStack []undoAction
}

type screenRef struct {
	screen model.Screen
	entity model.Entity
}

type copiedMsg struct {
	ids []string
}

// New creates a new root model.
func New(store *db.Store, logger *slog.Logger, opts Options) Model {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	copyFn := opts.Clipboard
	if copyFn == nil {
		copyFn = clipboard.WriteAll
	}
	return Model{
		store:     store,
		logger:    logger,
		screen:    model.ScreenDashboard,
		mode:      model.ModeNav,
		entity:    model.EntityOrders,
		lists:     make(map[model.Entity]*ListPage),
		keys:      DefaultKeyMap(),
		prefs:     loadUIPreferences(opts.PrefsPath),
		prefsPath: opts.PrefsPath,
		copyText:  copyFn,
	}
}

// Init loads the dashboard and every list.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{loadDashboardCmd(m.store)}
	for _, e := range model.Entities {
		cmds = append(cmds, loadRecordsCmd(m.store, e))
	}
	return tea.Batch(cmds...)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	next.resize()
	return next, cmd
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case model.ErrorMsg:
		m.error = msg.Err.Error()
		m.logger.Error("command failed", slog.Any("error", msg.Err))
		return m, nil

	case model.DashboardLoadedMsg:
		if m.dashboard == nil {
			m.dashboard = NewDashboardModel(msg.Stats, m.openRecord(model.EntityOrders))
		} else {
			m.dashboard.SetStats(msg.Stats)
		}
		return m, nil

	case model.RecordsLoadedMsg:
		if page, ok := m.lists[msg.Entity]; ok {
			page.SetRecords(msg.Records)
			return m, nil
		}
		sc, err := model.SchemaFor(msg.Entity)
		if err != nil {
			m.error = err.Error()
			return m, nil
		}
		page := NewListPage(sc, msg.Records, m.openRecord(msg.Entity))
		page.Table().ApplyPrefs(m.prefs.Tables[msg.Entity])
		m.lists[msg.Entity] = page
		m.logger.Debug("list loaded", slog.String("entity", string(msg.Entity)), slog.Int("count", len(msg.Records)))
		return m, nil

	case model.DetailLoadedMsg:
		sc, err := model.SchemaFor(msg.Entity)
		if err != nil {
			m.error = err.Error()
			return m, nil
		}
		if m.screen != model.ScreenDetail && m.screen != model.ScreenForm {
			m.detailReturn = screenRef{screen: m.screen, entity: m.entity}
		}
		m.detail = NewDetailModel(sc, msg.Record, msg.Related, func(e model.Entity, r model.Record) tea.Cmd {
			return loadDetailCmd(m.store, e, r.ID())
		})
		m.screen = model.ScreenDetail
		m.entity = msg.Entity
		m.error = ""
		return m, nil

	case model.RecordSavedMsg:
		if action := buildSaveAction(m.store, msg); action != nil {
			m.pushUndoAction(*action)
			m.info = action.label
		}
		m.mode = model.ModeNav
		m.form = nil
		m.screen = m.formReturn.screen
		m.entity = msg.Entity
		m.logger.Info("record saved", slog.String("entity", string(msg.Entity)), slog.String("id", msg.ID), slog.String("op", msg.Operation))
		return m, tea.Batch(
			loadRecordsCmd(m.store, msg.Entity),
			loadDashboardCmd(m.store),
			loadDetailCmd(m.store, msg.Entity, msg.ID),
		)

	case model.RecordsDeletedMsg:
		action := buildDeleteAction(m.store, msg)
		m.pushUndoAction(action)
		m.info = action.label + " (u to undo)"
		if m.screen == model.ScreenDetail {
			m.leaveDetail()
		}
		m.logger.Info("records deleted", slog.String("entity", string(msg.Entity)), slog.Int("count", len(msg.Deleted)))
		return m, m.reloadCmd(msg.Entity)

	case model.FormCancelledMsg:
		m.mode = model.ModeNav
		m.form = nil
		m.screen = m.formReturn.screen
		m.entity = m.formReturn.entity
		return m, nil

	case undoAppliedMsg:
		return m, m.applyUndoResult(msg)

	case copiedMsg:
		m.info = fmt.Sprintf("Copied %d id(s) to clipboard", len(msg.ids))
		return m, nil

	default:
		if m.mode == model.ModeInsert && m.form != nil {
			return m, m.form.Update(msg)
		}
		if t := m.activeTable(); t != nil {
			cmd, _ := t.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

func (m *Model) applyUndoResult(msg undoAppliedMsg) tea.Cmd {
	if msg.err != nil {
		m.error = fmt.Sprintf("%s failed: %v", msg.direction, msg.err)
		m.logger.Error("undo stack action failed", slog.String("direction", msg.direction), slog.Any("error", msg.err))
		return nil
	}

	if msg.direction == "undo" {
		m.redoStack = append(m.redoStack, msg.action)
		m.info = "Undid: " + msg.action.label
	} else {
		m.undoStack = append(m.undoStack, msg.action)
		m.info = "Redid: " + msg.action.label
	}
	m.error = ""
	if m.screen == model.ScreenDetail {
		m.leaveDetail()
	}
	return m.reloadCmd(msg.action.entity)
}

func (m *Model) reloadCmd(e model.Entity) tea.Cmd {
	return tea.Batch(loadRecordsCmd(m.store, e), loadDashboardCmd(m.store))
}

func (m *Model) leaveDetail() {
	m.detail = nil
	m.screen = m.detailReturn.screen
	m.entity = m.detailReturn.entity
}

// openRecord is the row activation callback of the tables showing e.
func (m Model) openRecord(e model.Entity) func(model.Record) tea.Cmd {
	store := m.store
	return func(r model.Record) tea.Cmd {
		return loadDetailCmd(store, e, r.ID())
	}
}

func (m *Model) currentList() *ListPage {
	if m.screen != model.ScreenList {
		return nil
	}
	return m.lists[m.entity]
}

func (m *Model) activeTable() *DataTable {
	switch m.screen {
	case model.ScreenDashboard:
		if m.dashboard != nil {
			return m.dashboard.Table()
		}
	case model.ScreenList:
		if page := m.currentList(); page != nil {
			return page.Table()
		}
	case model.ScreenDetail:
		if m.detail != nil {
			return m.detail.Table()
		}
	}
	return nil
}

func (m *Model) syncMode() {
	if m.mode == model.ModeInsert {
		return
	}
	if t := m.activeTable(); t != nil && t.Searching() {
		m.mode = model.ModeSearch
		return
	}
	m.mode = model.ModeNav
}

func (m *Model) persistCurrentTablePrefs() {
	page := m.currentList()
	if page == nil {
		return
	}
	if m.prefs.Tables == nil {
		m.prefs.Tables = make(map[model.Entity]TablePrefs)
	}
	m.prefs.Tables[page.Entity()] = page.Table().Prefs()
	if err := saveUIPreferences(m.prefsPath, m.prefs); err != nil {
		m.logger.Warn("failed to save preferences", slog.Any("error", err))
	}
}

func samePrefs(a, b TablePrefs) bool {
	return a.ActiveColumn == b.ActiveColumn && slices.Equal(a.HiddenColumns, b.HiddenColumns)
}

func (m Model) topLevel() bool {
	return m.screen == model.ScreenDashboard || m.screen == model.ScreenList
}

// tabIndex is the highlighted tab: 0 for the dashboard, then one per entity.
func (m Model) tabIndex() int {
	if m.screen == model.ScreenDashboard {
		return 0
	}
	return slices.Index(model.Entities, m.entity) + 1
}

func (m *Model) selectTab(i int) {
	n := len(model.Entities) + 1
	i = ((i % n) + n) % n
	if i == 0 {
		m.screen = model.ScreenDashboard
		return
	}
	m.screen = model.ScreenList
	m.entity = model.Entities[i-1]
}

func (m *Model) openForm(existing *model.Record) tea.Cmd {
	sc, err := model.SchemaFor(m.entity)
	if err != nil {
		m.error = err.Error()
		return nil
	}
	m.formReturn = screenRef{screen: m.screen, entity: m.entity}
	if m.screen == model.ScreenDetail {
		m.formReturn = m.detailReturn
	}
	m.form = NewFormModel(m.store, sc, existing)
	m.screen = model.ScreenForm
	m.mode = model.ModeInsert
	m.error = ""
	return nil
}

// handleKey handles keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		m.persistAllTablePrefs()
		return m, tea.Quit
	}

	if m.mode == model.ModeInsert && m.form != nil {
		return m, m.form.Update(msg)
	}

	// search input and two-key sequences own the keyboard
	if t := m.activeTable(); t != nil && (t.Searching() || t.AwaitingKey()) {
		before := t.Prefs()
		cmd, _ := t.Update(msg)
		m.syncMode()
		if m.screen == model.ScreenList && !samePrefs(before, t.Prefs()) {
			m.persistCurrentTablePrefs()
		}
		return m, cmd
	}

	if m.showingHelp {
		if key.Matches(msg, m.keys.Help) || msg.String() == "esc" {
			m.showingHelp = false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Help):
		m.showingHelp = true
		return m, nil
	case key.Matches(msg, m.keys.Undo):
		return m, m.undoCmd()
	case key.Matches(msg, m.keys.Redo):
		return m, m.redoCmd()
	}

	if m.topLevel() {
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.persistAllTablePrefs()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tabs):
			m.selectTab(int(msg.String()[0] - '1'))
			return m, nil
		case key.Matches(msg, m.keys.NextTab):
			m.selectTab(m.tabIndex() + 1)
			return m, nil
		case key.Matches(msg, m.keys.PrevTab):
			m.selectTab(m.tabIndex() - 1)
			return m, nil
		}
	}

	switch m.screen {
	case model.ScreenDashboard:
		if m.dashboard != nil {
			cmd, _ := m.dashboard.Update(msg)
			return m, cmd
		}
	case model.ScreenList:
		return m.handleListKey(msg)
	case model.ScreenDetail:
		return m.handleDetailKey(msg)
	}
	return m, nil
}

func (m Model) handleListKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	page := m.currentList()
	if page == nil {
		return m, nil
	}
	sc, _ := model.SchemaFor(page.Entity())

	switch {
	case key.Matches(msg, m.keys.Add):
		if !sc.Creatable {
			m.info = sc.Title + " cannot be created here"
			return m, nil
		}
		return m, m.openForm(nil)
	case key.Matches(msg, m.keys.Edit):
		if r, ok := page.CursorRecord(); ok {
			return m, m.openForm(&r)
		}
		return m, nil
	case key.Matches(msg, m.keys.BulkDelete):
		ids := page.SelectedIDs()
		if len(ids) == 0 {
			m.info = "No records selected"
			return m, nil
		}
		return m, deleteRecordsCmd(m.store, page.Entity(), ids)
	case key.Matches(msg, m.keys.ClearSelect):
		page.ClearSelection()
		return m, nil
	case key.Matches(msg, m.keys.Copy):
		ids := page.SelectedIDs()
		if len(ids) == 0 {
			if r, ok := page.CursorRecord(); ok {
				ids = []string{r.ID()}
			}
		}
		if len(ids) == 0 {
			return m, nil
		}
		return m, copyCmd(m.copyText, ids)
	}

	before := page.Table().Prefs()
	cmd, _ := page.Update(msg)
	if !samePrefs(before, page.Table().Prefs()) {
		m.persistCurrentTablePrefs()
	}
	m.syncMode()
	return m, cmd
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.detail == nil {
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Back):
		m.leaveDetail()
		return m, nil
	case key.Matches(msg, m.keys.Edit):
		r := m.detail.Record()
		return m, m.openForm(&r)
	case key.Matches(msg, m.keys.Delete):
		return m, deleteRecordsCmd(m.store, m.detail.Entity(), []string{m.detail.Record().ID()})
	}
	cmd, _ := m.detail.Update(msg)
	m.syncMode()
	return m, cmd
}

func (m *Model) persistAllTablePrefs() {
	if m.prefsPath == "" {
		return
	}
	if m.prefs.Tables == nil {
		m.prefs.Tables = make(map[model.Entity]TablePrefs)
	}
	for e, page := range m.lists {
		m.prefs.Tables[e] = page.Table().Prefs()
	}
	if err := saveUIPreferences(m.prefsPath, m.prefs); err != nil {
		m.logger.Warn("failed to save preferences", slog.Any("error", err))
	}
}

// handleMouse routes clicks and wheel events to the tab bar or the table
// on screen, in that screen's coordinates.
func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	if m.showingHelp || m.mode == model.ModeInsert {
		return m, nil
	}

	header, tabs, banners := m.chrome()
	top := lipgloss.Height(header)
	if tabs != "" {
		if msg.Y == top && msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			if i := tabAt(msg.X); i >= 0 {
				m.selectTab(i)
			}
			return m, nil
		}
		top += lipgloss.Height(tabs)
	}
	if banners != "" {
		top += lipgloss.Height(banners)
	}

	local := msg
	local.Y -= top
	if local.Y < 0 {
		return m, nil
	}

	var cmd tea.Cmd
	switch m.screen {
	case model.ScreenList:
		page := m.currentList()
		if page == nil {
			return m, nil
		}
		if isLeftClick(local) {
			cmd = page.ClickAt(local.X, local.Y)
		} else {
			cmd, _ = page.Update(local)
		}
	case model.ScreenDashboard:
		if m.dashboard == nil {
			return m, nil
		}
		if isLeftClick(local) {
			cmd = m.dashboard.ClickAt(local.X, local.Y, m.width)
		} else {
			cmd, _ = m.dashboard.Update(local)
		}
	case model.ScreenDetail:
		if m.detail == nil {
			return m, nil
		}
		if isLeftClick(local) {
			cmd = m.detail.ClickAt(local.X, local.Y, m.width)
		} else {
			cmd, _ = m.detail.Update(local)
		}
	}
	m.syncMode()
	return m, cmd
}

func isLeftClick(msg tea.MouseMsg) bool {
	return msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft
}

func (m Model) breadcrumb() []string {
	sc, err := model.SchemaFor(m.entity)
	title := string(m.entity)
	if err == nil {
		title = sc.Title
	}
	switch m.screen {
	case model.ScreenDashboard:
		return []string{"Dashboard"}
	case model.ScreenList:
		return []string{title}
	case model.ScreenDetail:
		if m.detail != nil {
			return []string{title, m.detail.Record().ID()}
		}
		return []string{title, "Detail"}
	case model.ScreenForm:
		if m.form != nil && m.form.Editing() {
			return []string{title, "Edit"}
		}
		return []string{title, "New"}
	}
	return nil
}

// chrome renders everything above the content area.
func (m Model) chrome() (header, tabs, banners string) {
	header = renderHeader(m.breadcrumb(), m.width)
	if m.topLevel() {
		tabs = renderTabs(m.tabIndex(), m.width)
	}
	var lines []string
	if m.error != "" {
		lines = append(lines, ErrorStyle.Width(m.width).Render("Error: "+m.error))
	}
	if m.info != "" {
		lines = append(lines, SuccessStyle.Width(m.width).Render(m.info))
	}
	banners = strings.Join(lines, "\n")
	return header, tabs, banners
}

func (m Model) contentHeight() int {
	header, tabs, banners := m.chrome()
	h := m.height - lipgloss.Height(header) - lipgloss.Height(RenderHelp(m.screen, m.mode, m.width))
	if tabs != "" {
		h -= lipgloss.Height(tabs)
	}
	if banners != "" {
		h -= lipgloss.Height(banners)
	}
	return max(0, h)
}

// resize keeps every table's page size in step with the layout.
func (m *Model) resize() {
	if m.width == 0 || m.height == 0 {
		return
	}
	h := m.contentHeight()
	for _, page := range m.lists {
		page.SetSize(h)
	}
	if m.dashboard != nil {
		m.dashboard.SetSize(m.width, h)
	}
	if m.detail != nil {
		m.detail.SetSize(m.width, h)
	}
}

// View renders the UI.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if m.showingHelp {
		return RenderFullHelp(m.width, m.height)
	}

	contentHeight := m.contentHeight()
	var content string
	switch m.screen {
	case model.ScreenDashboard:
		if m.dashboard != nil {
			content = m.dashboard.View(m.width, contentHeight)
		}
	case model.ScreenList:
		if page := m.currentList(); page != nil {
			content = page.View(m.width, contentHeight)
		}
	case model.ScreenDetail:
		if m.detail != nil {
			content = m.detail.View(m.width, contentHeight)
		}
	case model.ScreenForm:
		if m.form != nil {
			content = m.form.View(m.width, contentHeight)
		}
	}

	// Lines are cut rather than wrapped so mouse rows stay aligned. Then fill
	// the available height to anchor the footer at the bottom.
	content = fitLines(content, m.width)
	content = lipgloss.NewStyle().
		Width(m.width).
		Height(contentHeight).
		MaxHeight(contentHeight).
		Render(content)

	header, tabs, banners := m.chrome()
	parts := []string{header}
	if tabs != "" {
		parts = append(parts, tabs)
	}
	if banners != "" {
		parts = append(parts, banners)
	}
	parts = append(parts, content, RenderHelp(m.screen, m.mode, m.width))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func fitLines(s string, width int) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = fitLine(line, width)
	}
	return strings.Join(lines, "\n")
}

var tabStyle = lipgloss.NewStyle().
	Padding(0, 2).
	Foreground(ColorMuted)

var activeTabStyle = tabStyle.
	Foreground(ColorText).
	Bold(true).
	Underline(true)

const tabBarIndent = 2

func renderTabs(active, width int) string {
	var tabStrings []string
	for i, name := range tabTitles {
		style := tabStyle
		if i == active {
			style = activeTabStyle
		}
		tabStrings = append(tabStrings, style.Render(fmt.Sprintf("%d %s", i+1, name)))
	}

	tabBar := lipgloss.JoinHorizontal(lipgloss.Left, tabStrings...)
	return lipgloss.NewStyle().
		Width(width).
		Padding(0, tabBarIndent).
		BorderBottom(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ColorMuted).
		Render(tabBar)
}

// tabAt returns the tab under column x of the tab bar, or -1.
func tabAt(x int) int {
	left := tabBarIndent
	for i, name := range tabTitles {
		w := lipgloss.Width(tabStyle.Render(fmt.Sprintf("%d %s", i+1, name)))
		if x >= left && x < left+w {
			return i
		}
		left += w
	}
	return -1
}

func renderHeader(breadcrumbParts []string, width int) string {
	// Left side: app name + breadcrumb
	title := HeaderStyle.Render("E-Commerce Admin")

	var breadcrumb string
	if len(breadcrumbParts) > 0 {
		separator := BreadcrumbStyle.Render(" › ")
		parts := make([]string, len(breadcrumbParts))
		for i, part := range breadcrumbParts {
			if i == len(breadcrumbParts)-1 {
				parts[i] = BreadcrumbActiveStyle.Render(part)
			} else {
				parts[i] = BreadcrumbStyle.Render(part)
			}
		}
		breadcrumb = separator + strings.Join(parts, separator)
	}

	left := "  " + title + breadcrumb

	// Right side: current date
	right := BreadcrumbStyle.Render(time.Now().Format("Mon 02 Jan")) + "  "

	padding := max(0, width-TitleStyle.GetHorizontalFrameSize()-lipgloss.Width(left)-lipgloss.Width(right))

	headerContent := left + strings.Repeat(" ", padding) + right
	return TitleStyle.Width(width).Render(headerContent)
}

func loadDashboardCmd(store *db.Store) tea.Cmd {
	return func() tea.Msg {
		stats, err := store.Stats()
		if err != nil {
			return model.ErrorMsg{Err: err}
		}
		return model.DashboardLoadedMsg{Stats: stats}
	}
}

func loadRecordsCmd(store *db.Store, e model.Entity) tea.Cmd {
	return func() tea.Msg {
		records, err := store.List(e)
		if err != nil {
			return model.ErrorMsg{Err: err}
		}
		return model.RecordsLoadedMsg{Entity: e, Records: records}
	}
}

func loadDetailCmd(store *db.Store, e model.Entity, id string) tea.Cmd {
	return func() tea.Msg {
		r, err := store.Get(e, id)
		if db.IsNotFound(err) {
			return model.ErrorMsg{Err: fmt.Errorf("%s no longer exists: %w", id, err)}
		}
		if err != nil {
			return model.ErrorMsg{Err: err}
		}
		related, err := store.Related(e, r)
		if err != nil {
			return model.ErrorMsg{Err: fmt.Errorf("failed to load related records: %w", err)}
		}
		return model.DetailLoadedMsg{Entity: e, Record: r, Related: related}
	}
}

func deleteRecordsCmd(store *db.Store, e model.Entity, ids []string) tea.Cmd {
	return func() tea.Msg {
		deleted, err := store.Delete(e, ids...)
		if err != nil {
			return model.ErrorMsg{Err: err}
		}
		return model.RecordsDeletedMsg{Entity: e, Deleted: deleted}
	}
}

func copyCmd(write func(string) error, ids []string) tea.Cmd {
	return func() tea.Msg {
		if err := write(strings.Join(ids, "\n")); err != nil {
			return model.ErrorMsg{Err: fmt.Errorf("failed to copy to clipboard: %w", err)}
		}
		return copiedMsg{ids: ids}
	}
}
