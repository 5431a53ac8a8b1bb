package border

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/uartium/uartium/internal/ui/styles"
)

// Keybind is a single hint shown in a panel's bottom border: [s]tart.
type Keybind struct {
	Key   string // the key character, e.g. "s"
	Label string // the label after the key, e.g. "tart"
}

// RenderKeybind renders [s]tart with the key bold in KeybindKey color
// and the label in KeybindLabel.
func RenderKeybind(kb Keybind) string {
	keyStyle := lipgloss.NewStyle().Foreground(styles.KeybindKey).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(styles.KeybindLabel)
	return keyStyle.Render("["+kb.Key+"]") + labelStyle.Render(kb.Label)
}

// KeybindWidth returns the display width of a rendered keybind.
// Format is [key]label, so width = 2 + len(key) + len(label).
func KeybindWidth(kb Keybind) int {
	return 2 + len(kb.Key) + len(kb.Label)
}
