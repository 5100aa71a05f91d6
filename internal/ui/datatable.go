package ui

import (
	"fmt"
	"strings"

	"backoffice/internal/model"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Table layout, in lines from the top of the rendered table.
const (
	searchLine   = 0
	headerLine   = 2
	firstRowLine = 3

	// search, blank, header, blank, status
	tableChromeLines = 5

	checkboxWidth   = 5
	minColumnWidth  = 4
	defaultPageSize = 10
	emptyCell       = "—"
	noResults       = "No results found."
)

// Column describes one table column. When Cell is set its output is used
// verbatim instead of the accessor's value.
type Column struct {
	Header   string
	Accessor string
	Width    int
	Cell     func(model.Record) string
}

// DataTableProps is everything a DataTable receives from its owner.
type DataTableProps struct {
	Columns           []Column
	Data              []model.Record
	OnRowClick        func(model.Record) tea.Cmd
	Selectable        bool
	OnSelectionChange func(id string, selected bool)
	SelectedItems     []string
}

// DataTable renders records with a search box, a cursor and optional
// row selection. Selection state is owned by the caller.
type DataTable struct {
	props DataTableProps

	search    textinput.Model
	searching bool

	cursor   int
	offset   int
	pageSize int

	hidden       map[string]bool
	activeColumn int

	gPending   bool
	columnJump bool

	keys TableKeyMap
}

// NewDataTable creates a table for props.
func NewDataTable(props DataTableProps) *DataTable {
	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "Search..."
	search.CharLimit = 128

	t := &DataTable{
		props:    props,
		search:   search,
		pageSize: defaultPageSize,
		hidden:   make(map[string]bool),
		keys:     DefaultTableKeyMap(),
	}
	t.ensureVisibleActiveColumn()
	return t
}

// FilterRecords keeps the records where at least one field's string form
// contains term, ignoring case. An empty term keeps everything in order.
func FilterRecords(records []model.Record, term string) []model.Record {
	if term == "" {
		return records
	}
	needle := strings.ToLower(term)
	out := make([]model.Record, 0, len(records))
	for _, r := range records {
		for _, f := range r.Fields() {
			if strings.Contains(strings.ToLower(f.Value.String()), needle) {
				out = append(out, r)
				break
			}
		}
	}
	return out
}

// Props returns the current props.
func (t *DataTable) Props() DataTableProps {
	return t.props
}

// SetProps replaces the props. The search term survives.
func (t *DataTable) SetProps(p DataTableProps) {
	t.props = p
	t.ensureVisibleActiveColumn()
	t.clampCursor()
}

// SetSize sets the height available to the whole table.
func (t *DataTable) SetSize(height int) {
	t.pageSize = max(1, height-tableChromeLines)
	t.scrollToCursor()
}

// Filtered returns the records matching the current search term.
func (t *DataTable) Filtered() []model.Record {
	return FilterRecords(t.props.Data, t.search.Value())
}

// SearchTerm returns the current search term.
func (t *DataTable) SearchTerm() string {
	return t.search.Value()
}

// SetSearchTerm replaces the search term.
func (t *DataTable) SetSearchTerm(term string) {
	t.search.SetValue(term)
	t.clampCursor()
}

// Searching reports whether the search box has focus.
func (t *DataTable) Searching() bool {
	return t.searching
}

// FocusSearch gives the search box focus.
func (t *DataTable) FocusSearch() tea.Cmd {
	t.searching = true
	return t.search.Focus()
}

// BlurSearch leaves the search box, keeping the term.
func (t *DataTable) BlurSearch() {
	t.searching = false
	t.search.Blur()
}

// AwaitingKey reports whether the table is mid-way through a two-key
// sequence ("gg", "#" then a digit) and wants the next key.
func (t *DataTable) AwaitingKey() bool {
	return t.columnJump || t.gPending
}

// Cursor returns the cursor's index into the filtered view.
func (t *DataTable) Cursor() int {
	return t.cursor
}

// CursorRecord returns the record under the cursor.
func (t *DataTable) CursorRecord() (model.Record, bool) {
	rows := t.Filtered()
	if t.cursor < 0 || t.cursor >= len(rows) {
		return model.Record{}, false
	}
	return rows[t.cursor], true
}

func (t *DataTable) selectedSet() map[string]bool {
	set := make(map[string]bool, len(t.props.SelectedItems))
	for _, id := range t.props.SelectedItems {
		set[id] = true
	}
	return set
}

// AllSelected reports whether the filtered view is non-empty and every
// record in it is selected.
func (t *DataTable) AllSelected() bool {
	rows := t.Filtered()
	if len(rows) == 0 {
		return false
	}
	sel := t.selectedSet()
	for _, r := range rows {
		if !sel[r.ID()] {
			return false
		}
	}
	return true
}

// ToggleAll selects every filtered record, or deselects them all when all
// are already selected. One change is reported per record whose state
// differs from the target, in display order.
func (t *DataTable) ToggleAll() {
	if !t.props.Selectable {
		return
	}
	rows := t.Filtered()
	target := !t.AllSelected()
	sel := t.selectedSet()
	for _, r := range rows {
		if sel[r.ID()] != target {
			t.emitSelection(r.ID(), target)
		}
	}
}

// ToggleRow flips the selection of filtered row i.
func (t *DataTable) ToggleRow(i int) {
	if !t.props.Selectable {
		return
	}
	rows := t.Filtered()
	if i < 0 || i >= len(rows) {
		return
	}
	id := rows[i].ID()
	t.emitSelection(id, !t.selectedSet()[id])
}

// ActivateRow hands filtered row i to OnRowClick.
func (t *DataTable) ActivateRow(i int) tea.Cmd {
	if t.props.OnRowClick == nil {
		return nil
	}
	rows := t.Filtered()
	if i < 0 || i >= len(rows) {
		return nil
	}
	return t.props.OnRowClick(rows[i])
}

func (t *DataTable) emitSelection(id string, selected bool) {
	if t.props.OnSelectionChange != nil {
		t.props.OnSelectionChange(id, selected)
	}
}

// ClickAt handles a left click at table-local coordinates. Clicking
// anywhere but the search line leaves the search box.
func (t *DataTable) ClickAt(x, y int) tea.Cmd {
	if t.searching && y != searchLine {
		t.BlurSearch()
	}
	switch {
	case y == searchLine:
		return t.FocusSearch()
	case y == headerLine:
		if t.props.Selectable && x < checkboxWidth {
			t.ToggleAll()
		}
		return nil
	case y >= firstRowLine:
		row := y - firstRowLine
		if row >= t.pageSize {
			return nil
		}
		i := t.offset + row
		if i >= len(t.Filtered()) {
			return nil
		}
		t.cursor = i
		if t.props.Selectable && x < checkboxWidth {
			t.ToggleRow(i)
			return nil
		}
		return t.ActivateRow(i)
	}
	return nil
}

// Update handles keys and table-local mouse events. The bool reports
// whether the table consumed msg.
func (t *DataTable) Update(msg tea.Msg) (tea.Cmd, bool) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return t.handleKey(msg)
	case tea.MouseMsg:
		return t.handleMouse(msg)
	}
	if t.searching {
		var cmd tea.Cmd
		t.search, cmd = t.search.Update(msg)
		return cmd, true
	}
	return nil, false
}

func (t *DataTable) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	if t.searching {
		if key.Matches(msg, t.keys.SearchDone) {
			t.BlurSearch()
			return nil, true
		}
		var cmd tea.Cmd
		t.search, cmd = t.search.Update(msg)
		t.clampCursor()
		return cmd, true
	}

	if t.columnJump {
		t.columnJump = false
		if s := msg.String(); len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
			t.JumpToColumn(int(s[0] - '0'))
		}
		return nil, true
	}

	if key.Matches(msg, t.keys.Top) {
		if t.gPending {
			t.gPending = false
			t.JumpToTop()
		} else {
			t.gPending = true
		}
		return nil, true
	}
	t.gPending = false

	switch {
	case key.Matches(msg, t.keys.Search):
		return t.FocusSearch(), true
	case key.Matches(msg, t.keys.Down):
		t.MoveDown()
	case key.Matches(msg, t.keys.Up):
		t.MoveUp()
	case key.Matches(msg, t.keys.Bottom):
		t.JumpToBottom()
	case key.Matches(msg, t.keys.HalfPageDown):
		t.HalfPageDown()
	case key.Matches(msg, t.keys.HalfPageUp):
		t.HalfPageUp()
	case key.Matches(msg, t.keys.Activate):
		return t.ActivateRow(t.cursor), true
	case key.Matches(msg, t.keys.ToggleRow):
		if !t.props.Selectable {
			return nil, false
		}
		t.ToggleRow(t.cursor)
	case key.Matches(msg, t.keys.ToggleAll):
		if !t.props.Selectable {
			return nil, false
		}
		t.ToggleAll()
	case key.Matches(msg, t.keys.NextColumn):
		t.NextColumn()
	case key.Matches(msg, t.keys.PrevColumn):
		t.PrevColumn()
	case key.Matches(msg, t.keys.ColumnJump):
		t.columnJump = true
	case key.Matches(msg, t.keys.HideColumn):
		t.HideActiveColumn()
	case key.Matches(msg, t.keys.ShowColumns):
		t.ShowAllColumns()
	case key.Matches(msg, t.keys.FilterValue):
		t.FilterBySelectedValue()
	case key.Matches(msg, t.keys.ClearFilter):
		t.ClearFilter()
	default:
		return nil, false
	}
	return nil, true
}

func (t *DataTable) handleMouse(msg tea.MouseMsg) (tea.Cmd, bool) {
	if msg.Action != tea.MouseActionPress {
		return nil, false
	}
	switch msg.Button {
	case tea.MouseButtonLeft:
		return t.ClickAt(msg.X, msg.Y), true
	case tea.MouseButtonWheelUp:
		t.MoveUp()
		return nil, true
	case tea.MouseButtonWheelDown:
		t.MoveDown()
		return nil, true
	}
	return nil, false
}

func (t *DataTable) clampCursor() {
	n := len(t.Filtered())
	if n == 0 {
		t.cursor = 0
		t.offset = 0
		return
	}
	if t.cursor >= n {
		t.cursor = n - 1
	}
	if t.cursor < 0 {
		t.cursor = 0
	}
	if t.offset > t.cursor {
		t.offset = t.cursor
	}
	if t.offset > n-1 {
		t.offset = n - 1
	}
}

func (t *DataTable) scrollToCursor() {
	if t.cursor < t.offset {
		t.offset = t.cursor
	}
	if t.cursor >= t.offset+t.pageSize {
		t.offset = t.cursor - t.pageSize + 1
	}
}

// MoveDown moves the cursor down.
func (t *DataTable) MoveDown() {
	if t.cursor < len(t.Filtered())-1 {
		t.cursor++
		t.scrollToCursor()
	}
}

// MoveUp moves the cursor up.
func (t *DataTable) MoveUp() {
	if t.cursor > 0 {
		t.cursor--
		t.scrollToCursor()
	}
}

// JumpToTop jumps to the first row.
func (t *DataTable) JumpToTop() {
	t.cursor = 0
	t.offset = 0
}

// JumpToBottom jumps to the last row.
func (t *DataTable) JumpToBottom() {
	if n := len(t.Filtered()); n > 0 {
		t.cursor = n - 1
		t.scrollToCursor()
	}
}

// HalfPageDown moves down half a page.
func (t *DataTable) HalfPageDown() {
	t.cursor += max(1, t.pageSize/2)
	t.clampCursor()
	t.scrollToCursor()
}

// HalfPageUp moves up half a page.
func (t *DataTable) HalfPageUp() {
	t.cursor -= max(1, t.pageSize/2)
	t.clampCursor()
	t.scrollToCursor()
}

// ApplyPrefs restores hidden columns and the active column.
func (t *DataTable) ApplyPrefs(prefs TablePrefs) {
	t.hidden = make(map[string]bool, len(prefs.HiddenColumns))
	for _, c := range prefs.HiddenColumns {
		t.hidden[c] = true
	}
	if prefs.ActiveColumn != "" {
		for i, c := range t.props.Columns {
			if c.Accessor == prefs.ActiveColumn {
				t.activeColumn = i
				break
			}
		}
	}
	t.ensureVisibleActiveColumn()
}

// Prefs captures the column state worth persisting.
func (t *DataTable) Prefs() TablePrefs {
	var hidden []string
	for _, c := range t.props.Columns {
		if t.hidden[c.Accessor] {
			hidden = append(hidden, c.Accessor)
		}
	}
	prefs := TablePrefs{HiddenColumns: hidden}
	if col, ok := t.activeCol(); ok {
		prefs.ActiveColumn = col.Accessor
	}
	return prefs
}

func (t *DataTable) activeCol() (Column, bool) {
	if t.activeColumn < 0 || t.activeColumn >= len(t.props.Columns) {
		return Column{}, false
	}
	return t.props.Columns[t.activeColumn], true
}

// NextColumn moves the active column right, skipping hidden ones.
func (t *DataTable) NextColumn() {
	n := len(t.props.Columns)
	if n == 0 {
		return
	}
	start := t.activeColumn
	for {
		t.activeColumn = (t.activeColumn + 1) % n
		if !t.hidden[t.props.Columns[t.activeColumn].Accessor] || t.activeColumn == start {
			return
		}
	}
}

// PrevColumn moves the active column left, skipping hidden ones.
func (t *DataTable) PrevColumn() {
	n := len(t.props.Columns)
	if n == 0 {
		return
	}
	start := t.activeColumn
	for {
		t.activeColumn--
		if t.activeColumn < 0 {
			t.activeColumn = n - 1
		}
		if !t.hidden[t.props.Columns[t.activeColumn].Accessor] || t.activeColumn == start {
			return
		}
	}
}

// JumpToColumn activates the 1-based column number.
func (t *DataTable) JumpToColumn(number int) bool {
	if number < 1 || number > len(t.props.Columns) {
		return false
	}
	idx := number - 1
	if t.hidden[t.props.Columns[idx].Accessor] {
		return false
	}
	t.activeColumn = idx
	return true
}

// HideActiveColumn hides the active column unless it is the last one shown.
func (t *DataTable) HideActiveColumn() bool {
	if len(t.visibleColumns()) <= 1 {
		return false
	}
	t.hidden[t.props.Columns[t.activeColumn].Accessor] = true
	t.ensureVisibleActiveColumn()
	return true
}

// ShowAllColumns unhides every column.
func (t *DataTable) ShowAllColumns() {
	t.hidden = make(map[string]bool)
}

// FilterBySelectedValue searches for the active cell's value.
func (t *DataTable) FilterBySelectedValue() bool {
	r, ok := t.CursorRecord()
	if !ok {
		return false
	}
	col, ok := t.activeCol()
	if !ok {
		return false
	}
	value := r.Value(col.Accessor).String()
	if value == "" {
		return false
	}
	t.SetSearchTerm(value)
	t.cursor = 0
	t.offset = 0
	return true
}

// ClearFilter empties the search term.
func (t *DataTable) ClearFilter() bool {
	if t.search.Value() == "" {
		return false
	}
	t.SetSearchTerm("")
	return true
}

// TableMeta summarises the active column and search.
func (t *DataTable) TableMeta() string {
	var parts []string
	if col, ok := t.activeCol(); ok {
		parts = append(parts, fmt.Sprintf("col %s", strings.ToUpper(col.Header)))
	}
	if term := t.search.Value(); term != "" {
		parts = append(parts, fmt.Sprintf("search %q", term))
	}
	return strings.Join(parts, "  ·  ")
}

func (t *DataTable) visibleColumns() []int {
	var idxs []int
	for i, c := range t.props.Columns {
		if !t.hidden[c.Accessor] {
			idxs = append(idxs, i)
		}
	}
	return idxs
}

func (t *DataTable) ensureVisibleActiveColumn() {
	cols := t.props.Columns
	if len(cols) == 0 {
		t.activeColumn = 0
		return
	}
	if t.activeColumn >= len(cols) {
		t.activeColumn = len(cols) - 1
	}
	if !t.hidden[cols[t.activeColumn].Accessor] {
		return
	}
	for i, c := range cols {
		if !t.hidden[c.Accessor] {
			t.activeColumn = i
			return
		}
	}
	delete(t.hidden, cols[0].Accessor)
	t.activeColumn = 0
}

// renderCell renders a column's cell: the Cell output when set, otherwise
// the field's display text with falsy values shown as a dash.
func renderCell(col Column, r model.Record) string {
	if col.Cell != nil {
		return col.Cell(r)
	}
	v := r.Value(col.Accessor)
	if !v.Truthy() {
		return emptyCell
	}
	return v.Display()
}

func checkbox(checked bool) string {
	if checked {
		return "[x]"
	}
	return "[ ]"
}

// View renders the table into width x height.
func (t *DataTable) View(width, height int) string {
	rows := t.Filtered()
	visible := t.visibleColumns()

	var widths []int
	var headers []string
	if t.props.Selectable {
		widths = append(widths, checkboxWidth)
		headers = append(headers, checkbox(t.AllSelected()))
	}
	total := 0
	for _, idx := range visible {
		col := t.props.Columns[idx]
		label := strings.ToUpper(col.Header)
		if idx == t.activeColumn {
			label = "❋ " + label
		}
		w := max(col.Width, lipgloss.Width(label)+2)
		widths = append(widths, w)
		headers = append(headers, label)
	}
	fixed := 0
	if t.props.Selectable {
		fixed = 1
	}
	fitColumns(widths, fixed, width-4)
	for _, w := range widths {
		total += w
	}
	if extra := width - total - 4; extra > 0 && len(widths) > 0 {
		widths[len(widths)-1] += extra
		total += extra
	}
	for i := fixed; i < len(headers); i++ {
		headers[i] = ansi.Truncate(headers[i], max(0, widths[i]-2), "…")
	}

	header := fitLine(renderTableRow(headers, widths, TableHeaderStyle), width)

	visibleHeight := max(1, height-tableChromeLines)
	offset := t.offset
	if t.cursor >= offset+visibleHeight {
		offset = t.cursor - visibleHeight + 1
	}

	var body string
	if len(rows) == 0 {
		body = fitLine(EmptyStateStyle.Width(total).Align(lipgloss.Center).Render(noResults), width)
	} else {
		sel := t.selectedSet()
		lines := make([]string, 0, visibleHeight)
		for i := offset; i < len(rows) && i < offset+visibleHeight; i++ {
			r := rows[i]
			checked := sel[r.ID()]

			style := NormalRowStyle
			if checked {
				style = CheckedRowStyle
			}
			if i%2 == 1 {
				style = style.Background(ColorStripe)
			}
			if i == t.cursor && !t.searching {
				style = SelectedRowStyle
			}

			cells := make([]string, 0, len(widths))
			if t.props.Selectable {
				cells = append(cells, checkbox(checked))
			}
			for n, idx := range visible {
				w := widths[n]
				if t.props.Selectable {
					w = widths[n+1]
				}
				cells = append(cells, ansi.Truncate(renderCell(t.props.Columns[idx], r), max(0, w-2), "…"))
			}
			lines = append(lines, fitLine(renderTableRow(cells, widths, style), width))
		}
		body = strings.Join(lines, "\n")
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		fitLine(t.search.View(), width),
		"",
		header,
		body,
		"",
		fitLine(StatusBarStyle.Render(t.statusLine(len(rows))), width),
	)
}

// fitColumns shrinks the widest columns, never below minColumnWidth, until
// widths sum to at most budget. Columns before index fixed keep their width.
func fitColumns(widths []int, fixed, budget int) {
	total := 0
	for _, w := range widths {
		total += w
	}
	for total > budget {
		widest := -1
		for i := fixed; i < len(widths); i++ {
			if widths[i] > minColumnWidth && (widest < 0 || widths[i] > widths[widest]) {
				widest = i
			}
		}
		if widest < 0 {
			return
		}
		widths[widest]--
		total--
	}
}

// fitLine cuts a rendered line to width so it never wraps; hit testing
// counts one terminal line per row.
func fitLine(line string, width int) string {
	if width <= 0 {
		return line
	}
	return ansi.Truncate(line, width, "")
}

func (t *DataTable) statusLine(shown int) string {
	parts := []string{fmt.Sprintf("Showing %d of %d", shown, len(t.props.Data))}
	if t.props.Selectable {
		parts = append(parts, fmt.Sprintf("%d selected", len(t.props.SelectedItems)))
	}
	if meta := t.TableMeta(); meta != "" {
		parts = append(parts, meta)
	}
	return strings.Join(parts, "  ·  ")
}

func renderTableRow(cells []string, widths []int, style lipgloss.Style) string {
	var parts []string
	for i, cell := range cells {
		if i >= len(widths) {
			continue
		}
		parts = append(parts, style.Width(widths[i]).MaxHeight(1).Render(cell))
	}
	return lipgloss.JoinHorizontal(lipgloss.Left, parts...)
}
