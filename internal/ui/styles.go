package ui

import "github.com/charmbracelet/lipgloss"

// Slate and blue, after the web admin's neutral theme.
var (
	ColorSurface = lipgloss.Color("#1E293B")
	ColorStripe  = lipgloss.Color("#162033")
	ColorMuted   = lipgloss.Color("#64748B")
	ColorText    = lipgloss.Color("#E2E8F0")
	ColorAccent  = lipgloss.Color("#3B82F6")
	ColorGreen   = lipgloss.Color("#22C55E")
	ColorRed     = lipgloss.Color("#EF4444")
	ColorYellow  = lipgloss.Color("#EAB308")
	ColorOrange  = lipgloss.Color("#F97316")
	ColorBlue    = lipgloss.Color("#38BDF8")
)

// App chrome
var (
	HeaderStyle = lipgloss.NewStyle().Foreground(ColorAccent).Bold(true).Padding(0, 1)

	TitleStyle = lipgloss.NewStyle().
			Foreground(ColorText).
			Background(ColorSurface).
			Bold(true).
			Padding(0, 1)

	BreadcrumbStyle       = lipgloss.NewStyle().Foreground(ColorMuted)
	BreadcrumbActiveStyle = lipgloss.NewStyle().Foreground(ColorText).Bold(true)

	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(ColorSurface)

	HelpKeyStyle  = lipgloss.NewStyle().Foreground(ColorAccent).Bold(true)
	HelpDescStyle = lipgloss.NewStyle().Foreground(ColorMuted)

	ErrorStyle   = lipgloss.NewStyle().Foreground(ColorRed).Padding(0, 1)
	SuccessStyle = lipgloss.NewStyle().Foreground(ColorGreen).Padding(0, 1)
)

// Pages and cards
var (
	PageTitleStyle = lipgloss.NewStyle().Foreground(ColorText).Bold(true).Padding(0, 1)
	PageDescStyle  = lipgloss.NewStyle().Foreground(ColorMuted).Padding(0, 1)
	LabelStyle     = lipgloss.NewStyle().Foreground(ColorBlue).Bold(true)

	PanelStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorSurface).
			Padding(1, 2)

	ActivePanelStyle = PanelStyle.BorderForeground(ColorAccent)
)

// Tables. Every cell style pads one column each side.
var (
	TableHeaderStyle = lipgloss.NewStyle().
				Foreground(ColorMuted).
				Background(ColorSurface).
				Bold(true).
				Padding(0, 1)

	NormalRowStyle   = lipgloss.NewStyle().Foreground(ColorText).Padding(0, 1)
	CheckedRowStyle  = NormalRowStyle.Foreground(ColorBlue)
	SelectedRowStyle = NormalRowStyle.Foreground(ColorText).Background(ColorAccent)

	EmptyStateStyle = lipgloss.NewStyle().Foreground(ColorMuted).Italic(true).Padding(0, 1)
	StatusBarStyle  = lipgloss.NewStyle().Foreground(ColorMuted).Padding(0, 1)
)
