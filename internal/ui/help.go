package ui

import (
	"strings"

	"backoffice/internal/model"

	"github.com/charmbracelet/lipgloss"
)

// RenderHelp renders context-sensitive help footer.
func RenderHelp(screen model.Screen, mode model.Mode, width int) string {
	switch mode {
	case model.ModeInsert:
		return renderFormHelp(width)
	case model.ModeSearch:
		return renderSearchHelp(width)
	}

	switch screen {
	case model.ScreenDashboard:
		return renderDashboardHelp(width)
	case model.ScreenList:
		return renderListHelp(width)
	case model.ScreenDetail:
		return renderDetailHelp(width)
	default:
		return renderDefaultHelp(width)
	}
}

func renderDashboardHelp(width int) string {
	keys := []string{
		helpKey("j/k", "navigate"),
		helpKey("enter", "open order"),
		helpKey("1-5", "tabs"),
		helpKey("u/ctrl+r", "undo/redo"),
		helpKey("?", "help"),
		helpKey("q", "quit"),
	}
	return renderHelpLine(keys, width)
}

func renderListHelp(width int) string {
	keys := []string{
		helpKey("j/k", "navigate"),
		helpKey("/", "search"),
		helpKey("space", "select"),
		helpKey("A", "select all"),
		helpKey("enter", "details"),
		helpKey("a", "add"),
		helpKey("D", "delete selected"),
		helpKey("y", "copy ids"),
		helpKey("n/N", "search value"),
		helpKey("?", "help"),
	}
	return renderHelpLine(keys, width)
}

func renderDetailHelp(width int) string {
	keys := []string{
		helpKey("h/esc", "back"),
		helpKey("e", "edit"),
		helpKey("d", "delete"),
		helpKey("j/k", "related"),
		helpKey("enter", "open related"),
	}
	return renderHelpLine(keys, width)
}

func renderSearchHelp(width int) string {
	keys := []string{
		helpKey("type", "filter rows"),
		helpKey("enter/esc", "done"),
	}
	return renderHelpLine(keys, width)
}

func renderFormHelp(width int) string {
	keys := []string{
		helpKey("tab", "next field"),
		helpKey("shift+tab", "prev field"),
		helpKey("ctrl+s", "save"),
		helpKey("esc", "cancel"),
	}
	return renderHelpLine(keys, width)
}

func renderDefaultHelp(width int) string {
	keys := []string{
		helpKey("j/k", "navigate"),
		helpKey("h/l", "back/select"),
		helpKey("q", "quit"),
	}
	return renderHelpLine(keys, width)
}

func helpKey(key, desc string) string {
	return HelpKeyStyle.Render(key) + " " + HelpDescStyle.Render(desc)
}

func renderHelpLine(keys []string, width int) string {
	line := strings.Join(keys, "  ")
	return FooterStyle.Width(width).Render(line)
}

// RenderFullHelp renders the full help screen.
func RenderFullHelp(width, height int) string {
	content := lipgloss.NewStyle().
		Width(width-4).
		Height(height-6).
		Padding(1, 2)

	sections := []string{
		titleSection("Navigation"),
		helpSection([]helpItem{
			{"1-5 / ← →", "Dashboard, Orders, Payments, Products, Users"},
			{"j / ↓", "Move down"},
			{"k / ↑", "Move up"},
			{"gg / G", "Jump to top / bottom"},
			{"ctrl+d / ctrl+u", "Half page down / up"},
			{"enter / l / click", "Open row"},
			{"h / b / esc", "Go back"},
			{"u / ctrl+r", "Undo / redo"},
			{"q", "Quit (from top-level)"},
			{"?", "Toggle help"},
		}),
		titleSection("Tables"),
		helpSection([]helpItem{
			{"/ / click search", "Search every field"},
			{"enter / esc", "Leave search (keeps the term)"},
			{"n / N", "Search for active cell value / clear search"},
			{"tab / shift+tab", "Cycle active column"},
			{"# then 1-9", "Jump to column"},
			{"c / C", "Hide active column / show all"},
		}),
		titleSection("Selection (lists)"),
		helpSection([]helpItem{
			{"space / click [ ]", "Select or deselect row"},
			{"A / click header [ ]", "Select or deselect all shown rows"},
			{"x", "Clear selection"},
			{"D", "Delete selected records"},
			{"y", "Copy selected ids (or current id)"},
		}),
		titleSection("Records"),
		helpSection([]helpItem{
			{"a", "Add record (orders, products, users)"},
			{"e", "Edit current record"},
			{"d", "Delete current record"},
		}),
		titleSection("Forms"),
		helpSection([]helpItem{
			{"tab", "Next field"},
			{"shift+tab", "Previous field"},
			{"ctrl+s", "Save"},
			{"esc", "Cancel"},
		}),
	}

	helpText := content.Render(strings.Join(sections, "\n\n"))

	return lipgloss.JoinVertical(
		lipgloss.Left,
		TitleStyle.Width(width).Render("Help"),
		helpText,
		FooterStyle.Width(width).Render(HelpKeyStyle.Render("esc")+" "+HelpDescStyle.Render("close help")),
	)
}

type helpItem struct {
	key  string
	desc string
}

func titleSection(title string) string {
	return LabelStyle.Render(title)
}

func helpSection(items []helpItem) string {
	var lines []string
	for _, item := range items {
		lines = append(lines, "  "+HelpKeyStyle.Render(item.key)+" - "+HelpDescStyle.Render(item.desc))
	}
	return strings.Join(lines, "\n")
}
