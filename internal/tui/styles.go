package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agrisense/agrisense/internal/database/repository"
	"github.com/agrisense/agrisense/internal/zone"
)

const (
	colorBrand   lipgloss.Color = "#2F80ED"
	colorHealthy lipgloss.Color = "#16C47F"
	colorMedium  lipgloss.Color = "#F2C94C"
	colorHigh    lipgloss.Color = "#EB5757"
	colorText    lipgloss.Color = "#E6E6E6"
	colorMuted   lipgloss.Color = "#888888"
	colorBorder  lipgloss.Color = "#45475A"
	colorSurface lipgloss.Color = "#313244"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorBrand)
	headingStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorText)
	mutedStyle    = lipgloss.NewStyle().Foreground(colorMuted)
	selectedStyle = lipgloss.NewStyle().Foreground(colorBrand).Bold(true)
	cardStyle     = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(colorHealthy).
			Background(colorSurface)
	statusErrBarStyle = lipgloss.NewStyle().
				Foreground(colorHigh).
				Background(colorSurface)
)

func zoneStatusStyle(s zone.Status) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(s.Color()))
}

func severityStyle(sev repository.Severity) lipgloss.Style {
	switch sev {
	case repository.SeverityHigh:
		return lipgloss.NewStyle().Foreground(colorHigh)
	case repository.SeverityMedium:
		return lipgloss.NewStyle().Foreground(colorMedium)
	case repository.SeverityHealthy:
		return lipgloss.NewStyle().Foreground(colorHealthy)
	default:
		return lipgloss.NewStyle().Foreground(colorBrand)
	}
}

func priorityStyle(p repository.Priority) lipgloss.Style {
	switch p {
	case repository.PriorityHigh:
		return lipgloss.NewStyle().Foreground(colorHigh).Bold(true)
	case repository.PriorityMedium:
		return lipgloss.NewStyle().Foreground(colorMedium)
	default:
		return mutedStyle
	}
}
