package panels

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/uartium/uartium/internal/ui/border"
	"github.com/uartium/uartium/internal/ui/styles"
)

type HelpOverlay struct {
	width  int
	height int
}

func NewHelpOverlay() *HelpOverlay {
	return &HelpOverlay{
		width:  46,
		height: 22,
	}
}

func (h HelpOverlay) Update(msg tea.Msg) (HelpOverlay, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "?", "q":
			return h, func() tea.Msg { return CloseModalMsg{} }
		}
	}
	return h, nil
}

func (h HelpOverlay) View() string {
	keyStyle := lipgloss.NewStyle().Foreground(styles.KeybindKey).Bold(true)
	descStyle := styles.TextPrimaryStyle
	sectionStyle := styles.TitleStyle

	kv := func(key, desc string) string {
		return "  " + keyStyle.Render(key) + "  " + descStyle.Render(desc)
	}

	var b strings.Builder
	b.WriteString(sectionStyle.Render("Stream") + "\n")
	b.WriteString(kv("s", "Start monitoring") + "\n")
	b.WriteString(kv("x", "Stop monitoring") + "\n")
	b.WriteString(kv("c", "Clear log and timeline") + "\n")
	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Log") + "\n")
	b.WriteString(kv("j/k", "Scroll down/up") + "\n")
	b.WriteString(kv("G/gg", "Follow newest / jump to top") + "\n")
	b.WriteString(kv("/", "Search (n/N navigate)") + "\n")
	b.WriteString(kv("y", "Yank lines to clipboard") + "\n")
	b.WriteString(kv("1-5", "Toggle EVENT/INFO/WARN/ERR/DBG") + "\n")
	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Global") + "\n")
	b.WriteString(kv("Tab", "Cycle panel focus") + "\n")
	b.WriteString(kv("h/l", "Focus log / timeline") + "\n")
	b.WriteString(kv("?", "Toggle this help") + "\n")
	b.WriteString(kv("q", "Quit") + "\n")
	b.WriteString(kv("Esc", "Close modal"))

	bottomKb := []border.Keybind{{Key: "?", Label: " close"}, {Key: "Esc", Label: " close"}}
	return border.RenderPanel("Keybinds", b.String(), bottomKb, h.width, h.height, true)
}
