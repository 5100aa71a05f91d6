package ui

import (
	"backoffice/internal/model"
	"backoffice/internal/util"

	"github.com/charmbracelet/lipgloss"
)

// BadgeCategory is the colour family of a status badge.
type BadgeCategory string

const (
	BadgeSuccess BadgeCategory = "success"
	BadgePending BadgeCategory = "pending"
	BadgeWarning BadgeCategory = "warning"
	BadgeError   BadgeCategory = "error"
	BadgeInfo    BadgeCategory = "info"
)

var badgeStyles = map[BadgeCategory]lipgloss.Style{
	BadgeSuccess: lipgloss.NewStyle().Foreground(ColorGreen),
	BadgePending: lipgloss.NewStyle().Foreground(ColorYellow),
	BadgeWarning: lipgloss.NewStyle().Foreground(ColorOrange),
	BadgeError:   lipgloss.NewStyle().Foreground(ColorRed),
	BadgeInfo:    lipgloss.NewStyle().Foreground(ColorBlue),
}

// CategoryOf maps a category name to a BadgeCategory; unknown names are info.
func CategoryOf(name string) BadgeCategory {
	c := BadgeCategory(name)
	if _, ok := badgeStyles[c]; ok {
		return c
	}
	return BadgeInfo
}

// StatusCategory maps an entity's status value to its badge category.
func StatusCategory(e model.Entity, status string) BadgeCategory {
	switch e {
	case model.EntityOrders:
		switch status {
		case "completed":
			return BadgeSuccess
		case "processing", "shipped":
			return BadgePending
		case "cancelled", "refunded":
			return BadgeError
		}
	case model.EntityPayments:
		switch status {
		case "completed":
			return BadgeSuccess
		case "pending":
			return BadgeWarning
		case "failed":
			return BadgeError
		}
	case model.EntityProducts:
		switch status {
		case "active":
			return BadgeSuccess
		case "low_stock":
			return BadgeWarning
		case "out_of_stock", "discontinued":
			return BadgeError
		}
	case model.EntityUsers:
		switch status {
		case "active":
			return BadgeSuccess
		case "pending":
			return BadgeWarning
		case "inactive":
			return BadgeError
		}
	}
	return BadgeInfo
}

// StatusLabel is the badge text for an entity's status value.
func StatusLabel(e model.Entity, status string) string {
	if e == model.EntityProducts {
		return util.StatusLabel(status)
	}
	return status
}

// RenderBadge renders "● label" in the category's colour.
func RenderBadge(c BadgeCategory, label string) string {
	style, ok := badgeStyles[c]
	if !ok {
		style = badgeStyles[BadgeInfo]
	}
	return style.Render("● " + label)
}

// StatusBadge renders the badge for an entity's status value.
func StatusBadge(e model.Entity, status string) string {
	return RenderBadge(StatusCategory(e, status), StatusLabel(e, status))
}
