// Package theme styles CLI output with the Catppuccin Mocha palette.
package theme

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	Text     = lipgloss.Color("#cdd6f4")
	Subtext0 = lipgloss.Color("#a6adc8")
	Surface1 = lipgloss.Color("#45475a")
	Lavender = lipgloss.Color("#b4befe")
	Sapphire = lipgloss.Color("#74c7ec")
	Green    = lipgloss.Color("#a6e3a1")
	Peach    = lipgloss.Color("#fab387")
	Red      = lipgloss.Color("#f38ba8")

	Title = lipgloss.NewStyle().Foreground(Sapphire).Bold(true)
	Muted = lipgloss.NewStyle().Foreground(Subtext0)
	Hot   = lipgloss.NewStyle().Foreground(Peach).Bold(true)
	Good  = lipgloss.NewStyle().Foreground(Green)
	Bad   = lipgloss.NewStyle().Foreground(Red)
)

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// DomainColor returns the domain's display color, or Lavender when the stored
// value is not a hex color.
func DomainColor(color string) lipgloss.Color {
	color = strings.TrimSpace(color)
	if !hexColor.MatchString(color) {
		return Lavender
	}
	return lipgloss.Color(color)
}

func Domain(name, color string) string {
	return lipgloss.NewStyle().Foreground(DomainColor(color)).Bold(true).Render(name)
}

// ProgressBar draws percent (clamped to 0..100) as a bar of width cells.
func ProgressBar(percent, width int) string {
	if width <= 0 {
		width = 20
	}
	percent = max(0, min(100, percent))
	filled := percent * width / 100
	bar := Good.Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(Surface1).Render(strings.Repeat("░", width-filled))
	return fmt.Sprintf("%s %3d%%", bar, percent)
}

func Hours(h float64) string {
	return fmt.Sprintf("%.2fh", h)
}
