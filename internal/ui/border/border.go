package border

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/uartium/uartium/internal/ui/styles"
)

const (
	cornerTL = "╭"
	cornerTR = "╮"
	cornerBL = "╰"
	cornerBR = "╯"
	horizBar = "─"
	vertBar  = "│"
)

func borderColor(focused bool) lipgloss.AdaptiveColor {
	if focused {
		return styles.BorderFocused
	}
	return styles.BorderUnfocused
}

// RenderBorderTop renders: ╭─ Title ────────────╮
// Title is bold TitleText when focused, TextSecondary otherwise.
func RenderBorderTop(title string, width int, focused bool) string {
	if width < 2 {
		return ""
	}
	bs := lipgloss.NewStyle().Foreground(borderColor(focused))

	innerWidth := width - 2
	if title == "" {
		return bs.Render(cornerTL + strings.Repeat(horizBar, innerWidth) + cornerTR)
	}

	var ts lipgloss.Style
	if focused {
		ts = styles.TitleStyle
	} else {
		ts = styles.TextSecondaryStyle.Bold(true)
	}
	titleRendered := ts.Render(title)

	// "─ " before the title and " " after count against the inner width.
	fill := innerWidth - 3 - lipgloss.Width(titleRendered)
	if fill < 0 {
		fill = 0
	}
	return bs.Render(cornerTL+horizBar+" ") +
		titleRendered +
		bs.Render(" "+strings.Repeat(horizBar, fill)+cornerTR)
}

// RenderBorderBottom renders the bottom border. When focused and
// keybinds are given: ╰─ [s]tart  [x] stop ──╯, dropping hints that do
// not fit. Otherwise a plain bar.
func RenderBorderBottom(keybinds []Keybind, width int, focused bool) string {
	if width < 2 {
		return ""
	}
	bs := lipgloss.NewStyle().Foreground(borderColor(focused))
	innerWidth := width - 2

	if !focused || len(keybinds) == 0 {
		return bs.Render(cornerBL + strings.Repeat(horizBar, innerWidth) + cornerBR)
	}

	maxHintWidth := innerWidth - 3 // "─ " prefix and " " suffix
	if maxHintWidth < 0 {
		maxHintWidth = 0
	}

	var parts []string
	used := 0
	for _, kb := range keybinds {
		rendered := RenderKeybind(kb)
		w := lipgloss.Width(rendered)
		sep := 0
		if len(parts) > 0 {
			sep = 2 // "  " between hints
		}
		if used+sep+w > maxHintWidth {
			break
		}
		parts = append(parts, rendered)
		used += sep + w
	}

	fill := maxHintWidth - used
	if fill < 0 {
		fill = 0
	}
	return bs.Render(cornerBL+horizBar+" ") +
		strings.Join(parts, "  ") +
		bs.Render(" "+strings.Repeat(horizBar, fill)+cornerBR)
}

// RenderBorderSides wraps content lines with │ on each side. Each line
// is truncated or padded to exactly width-2 columns using ANSI-aware
// measurement so styled content survives.
func RenderBorderSides(content string, width int, focused bool) string {
	if width < 2 {
		return content
	}
	bs := lipgloss.NewStyle().Foreground(borderColor(focused))
	innerWidth := width - 2
	truncator := lipgloss.NewStyle().MaxWidth(innerWidth)

	lines := strings.Split(content, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		w := lipgloss.Width(line)
		if w > innerWidth {
			line = truncator.Render(line)
			w = lipgloss.Width(line)
		}
		if w < innerWidth {
			line += strings.Repeat(" ", innerWidth-w)
		}
		out = append(out, bs.Render(vertBar)+line+bs.Render(vertBar))
	}
	return strings.Join(out, "\n")
}

// RenderPanel assembles a complete bordered panel: a titled top border,
// content padded or cropped to height-2 rows, and a bottom border
// carrying keybind hints when focused.
func RenderPanel(title string, content string, keybinds []Keybind,
	width, height int, focused bool) string {

	if height < 2 || width < 2 {
		return ""
	}

	innerHeight := height - 2
	innerWidth := width - 2

	var lines []string
	if content != "" {
		lines = strings.Split(content, "\n")
	}
	if len(lines) > innerHeight {
		lines = lines[:innerHeight]
	}
	for len(lines) < innerHeight {
		lines = append(lines, strings.Repeat(" ", innerWidth))
	}

	return RenderBorderTop(title, width, focused) + "\n" +
		RenderBorderSides(strings.Join(lines, "\n"), width, focused) + "\n" +
		RenderBorderBottom(keybinds, width, focused)
}
