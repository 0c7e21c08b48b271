package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/tasktrack/internal/model"
)

// Adaptive color pairs (dark terminal value, light terminal value).
var (
	ColorBlue   = lipgloss.AdaptiveColor{Dark: "#5B9BD5", Light: "#2B6CB0"}
	ColorGreen  = lipgloss.AdaptiveColor{Dark: "#6BCB77", Light: "#2F855A"}
	ColorYellow = lipgloss.AdaptiveColor{Dark: "#FFD93D", Light: "#B7791F"}
	ColorRed    = lipgloss.AdaptiveColor{Dark: "#FF6B6B", Light: "#C53030"}
	ColorGray   = lipgloss.AdaptiveColor{Dark: "#868E96", Light: "#718096"}
	ColorWhite  = lipgloss.AdaptiveColor{Dark: "#F8F9FA", Light: "#1A202C"}
)

// HeaderStyle is used for the application banner.
var HeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite).
	Background(ColorBlue).
	Padding(0, 1)

// ErrorStyle renders business-rule failure messages.
var ErrorStyle = lipgloss.NewStyle().
	Foreground(ColorRed)

// SuccessStyle renders operation confirmations.
var SuccessStyle = lipgloss.NewStyle().
	Foreground(ColorGreen)

// MineStyle highlights tasks assigned to the logged-in user.
var MineStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorBlue)

// HintStyle is used for secondary text such as assignee names.
var HintStyle = lipgloss.NewStyle().
	Foreground(ColorGray)

// StatusStyle returns a color-coded style for the given task status.
func StatusStyle(s model.Status) lipgloss.Style {
	switch s {
	case model.StatusInProgress:
		return lipgloss.NewStyle().Foreground(ColorYellow)
	case model.StatusDone:
		return lipgloss.NewStyle().Foreground(ColorGreen)
	}
	return lipgloss.NewStyle().Foreground(ColorGray)
}
