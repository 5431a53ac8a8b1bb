package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/uartium/uartium/internal/monitor"
)

// Semantic colors as AdaptiveColor{Light, Dark} pairs.
var (
	BorderFocused   = lipgloss.AdaptiveColor{Light: "#2e5cb8", Dark: "#7aa2f7"}
	BorderUnfocused = lipgloss.AdaptiveColor{Light: "#c0c0c0", Dark: "#3b4261"}
	TitleText       = lipgloss.AdaptiveColor{Light: "#1a1b26", Dark: "#c0caf5"}
	KeybindKey      = lipgloss.AdaptiveColor{Light: "#8a6200", Dark: "#e0af68"}
	KeybindLabel    = lipgloss.AdaptiveColor{Light: "#8890a8", Dark: "#565f89"}
	TextPrimary     = lipgloss.AdaptiveColor{Light: "#1a1b26", Dark: "#c0caf5"}
	TextSecondary   = lipgloss.AdaptiveColor{Light: "#8890a8", Dark: "#565f89"}
	TextDim         = lipgloss.AdaptiveColor{Light: "#b0b0b0", Dark: "#3b4261"}

	StatusRunning = lipgloss.AdaptiveColor{Light: "#0969da", Dark: "#7dcfff"}
	StatusStopped = lipgloss.AdaptiveColor{Light: "#8890a8", Dark: "#565f89"}

	SeverityEvent   = lipgloss.AdaptiveColor{Light: "#1a7f37", Dark: "#9ece6a"}
	SeverityInfo    = lipgloss.AdaptiveColor{Light: "#0969da", Dark: "#7dcfff"}
	SeverityWarning = lipgloss.AdaptiveColor{Light: "#8a6200", Dark: "#e0af68"}
	SeverityError   = lipgloss.AdaptiveColor{Light: "#cf222e", Dark: "#f7768e"}
	SeverityDebug   = lipgloss.AdaptiveColor{Light: "#8890a8", Dark: "#565f89"}

	SelectionBg = lipgloss.AdaptiveColor{Light: "#c8d8f0", Dark: "#283457"}
)

// SeverityColor returns the display color for a log severity.
func SeverityColor(sev monitor.Severity) lipgloss.AdaptiveColor {
	switch sev {
	case monitor.Event:
		return SeverityEvent
	case monitor.Warning:
		return SeverityWarning
	case monitor.Error:
		return SeverityError
	case monitor.Debug:
		return SeverityDebug
	default:
		return SeverityInfo
	}
}
