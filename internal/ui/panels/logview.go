package panels

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/uartium/uartium/internal/monitor"
	"github.com/uartium/uartium/internal/ui/border"
	"github.com/uartium/uartium/internal/ui/styles"
	"github.com/uartium/uartium/internal/ui/text"
)

const gTimeout = 300 * time.Millisecond

// GTimerExpiredMsg is sent when the gg double-tap window expires.
type GTimerExpiredMsg struct{}

// LogView renders the classified log with per-severity coloring,
// follow mode, search, severity filters, and a line-wise copy mode.
type LogView struct {
	viewport viewport.Model
	width    int
	height   int
	buffer   *monitor.EntryBuffer
	active   bool // stream running, shows the streaming cursor
	follow   bool
	focused  bool
	gPending bool

	showTimestamps bool
	hidden         map[monitor.Severity]bool

	// Search state
	searching    bool
	searchInput  textinput.Model
	searchQuery  string
	matchIndices []int
	currentMatch int

	// Copy mode state
	copyMode   bool
	copyAnchor int // visible line index where selection started
	copyCursor int
}

func NewLogView(buffer *monitor.EntryBuffer) LogView {
	vp := viewport.New(0, 0)
	ti := textinput.New()
	ti.Prompt = "/"
	ti.Placeholder = "Search..."
	ti.CharLimit = 256
	return LogView{
		viewport:       vp,
		buffer:         buffer,
		follow:         true,
		searchInput:    ti,
		showTimestamps: true,
		hidden:         make(map[monitor.Severity]bool),
	}
}

// SetActive marks whether the stream is running.
func (l *LogView) SetActive(active bool) {
	l.active = active
	l.refreshContent()
}

// SetShowTimestamps controls the leading clock column.
func (l *LogView) SetShowTimestamps(show bool) {
	l.showTimestamps = show
	l.refreshContent()
}

// SetFollow controls whether the view sticks to the newest entry.
func (l *LogView) SetFollow(follow bool) {
	l.follow = follow
	if follow {
		l.viewport.GotoBottom()
	}
}

// ToggleSeverity flips visibility of one severity and returns whether
// it is now shown.
func (l *LogView) ToggleSeverity(sev monitor.Severity) bool {
	l.hidden[sev] = !l.hidden[sev]
	l.recomputeMatches()
	l.refreshContent()
	return !l.hidden[sev]
}

// SeverityShown reports whether a severity is currently visible.
func (l *LogView) SeverityShown(sev monitor.Severity) bool {
	return !l.hidden[sev]
}

func (l LogView) Update(msg tea.Msg) (LogView, tea.Cmd) {
	switch msg := msg.(type) {
	case GTimerExpiredMsg:
		l.gPending = false
		return l, nil
	case tea.KeyMsg:
		if l.searching {
			return l.updateSearch(msg)
		}
		if l.copyMode {
			return l.updateCopyMode(msg)
		}

		// Search query active (not typing), n/N navigate matches.
		if l.searchQuery != "" {
			switch msg.String() {
			case "n":
				l.nextMatch()
				return l, nil
			case "N":
				l.prevMatch()
				return l, nil
			case "esc":
				l.clearSearch()
				return l, nil
			case "/":
				l.searching = true
				l.searchInput.SetValue(l.searchQuery)
				l.searchInput.Focus()
				l.resizeViewport()
				return l, textinput.Blink
			}
		}

		switch msg.String() {
		case "G":
			l.follow = true
			l.viewport.GotoBottom()
			return l, nil
		case "g":
			if l.gPending {
				// Second g, jump to top
				l.gPending = false
				l.follow = false
				l.viewport.GotoTop()
				return l, nil
			}
			l.gPending = true
			l.follow = false
			return l, tea.Tick(gTimeout, func(time.Time) tea.Msg {
				return GTimerExpiredMsg{}
			})
		case "/":
			l.searching = true
			l.follow = false
			l.searchInput.SetValue("")
			l.searchInput.Focus()
			l.resizeViewport()
			return l, textinput.Blink
		case "y":
			l.enterCopyMode()
			return l, nil
		case "j", "down":
			l.follow = false
			l.viewport.SetYOffset(l.viewport.YOffset + 1)
			return l, nil
		case "k", "up":
			l.follow = false
			offset := l.viewport.YOffset - 1
			if offset < 0 {
				offset = 0
			}
			l.viewport.SetYOffset(offset)
			return l, nil
		}
	}

	var cmd tea.Cmd
	l.viewport, cmd = l.viewport.Update(msg)
	return l, cmd
}

// Refresh re-renders the buffer contents, keeping the bottom pinned in
// follow mode. The app calls this whenever new entries land.
func (l *LogView) Refresh() {
	atBottom := l.viewport.AtBottom()
	l.viewport.SetContent(l.renderContent())
	if atBottom || l.follow {
		l.viewport.GotoBottom()
	}
	if l.searchQuery != "" {
		l.recomputeMatches()
	}
}

func (l *LogView) updateSearch(msg tea.KeyMsg) (LogView, tea.Cmd) {
	switch msg.String() {
	case "esc":
		l.clearSearch()
		return *l, nil
	case "enter":
		l.searching = false
		l.searchQuery = l.searchInput.Value()
		l.searchInput.Blur()
		l.resizeViewport()
		l.recomputeMatches()
		if len(l.matchIndices) > 0 {
			l.currentMatch = 0
			l.jumpToMatch()
		}
		l.refreshContent()
		return *l, nil
	}

	var cmd tea.Cmd
	l.searchInput, cmd = l.searchInput.Update(msg)
	// Live-update matches as the user types.
	l.searchQuery = l.searchInput.Value()
	l.recomputeMatches()
	l.refreshContent()
	return *l, cmd
}

func (l *LogView) clearSearch() {
	l.searching = false
	l.searchQuery = ""
	l.matchIndices = nil
	l.currentMatch = 0
	l.searchInput.Blur()
	l.resizeViewport()
	l.refreshContent()
}

func (l LogView) View() string {
	title := "Log"
	if n := l.buffer.Len(); n > 0 {
		title = fmt.Sprintf("Log (%s)", text.FormatCount(n))
	}
	if hidden := l.hiddenCount(); hidden > 0 {
		title += fmt.Sprintf(" [%d filtered]", hidden)
	}

	var keybinds []border.Keybind
	if l.focused {
		if l.copyMode {
			keybinds = []border.Keybind{
				{Key: "y", Label: "ank"},
				{Key: "j", Label: "/k select"},
				{Key: "Esc", Label: " cancel"},
			}
		} else {
			keybinds = []border.Keybind{
				{Key: "y", Label: "ank"},
				{Key: "G", Label: " follow"},
				{Key: "g", Label: "g top"},
				{Key: "/", Label: " search"},
			}
			if !l.viewport.AtBottom() && !l.follow {
				keybinds = append(keybinds, border.Keybind{Key: "↓", Label: " new output"})
			}
		}
	}

	content := l.viewport.View()

	// Status row below the viewport: copy mode, search input, or match count.
	if l.copyMode {
		selStart, selEnd := l.copySelectionRange()
		count := selEnd - selStart + 1
		status := styles.TextSecondaryStyle.Render(
			fmt.Sprintf("  VISUAL: %d line(s) selected", count),
		) + styles.TextDimStyle.Render(" (y yank, Esc cancel)")
		content += "\n" + status
	} else if l.searching {
		content += "\n" + l.searchInput.View()
	} else if l.searchQuery != "" {
		total := len(l.matchIndices)
		var status string
		if total == 0 {
			status = styles.TextDimStyle.Render("  No matches")
		} else {
			status = styles.TextSecondaryStyle.Render(
				fmt.Sprintf("  Match %d/%d", l.currentMatch+1, total),
			) + styles.TextDimStyle.Render(" (n/N navigate, / edit, Esc clear)")
		}
		content += "\n" + status
	}

	return border.RenderPanel(title, content, keybinds, l.width, l.height, l.focused)
}

func (l *LogView) SetSize(w, h int) {
	l.width = w
	l.height = h
	l.resizeViewport()
	l.refreshContent()
}

func (l *LogView) SetFocused(focused bool) {
	l.focused = focused
}

// ConsumesKeys reports whether the log view is in a mode that should
// swallow all key events before global bindings run.
func (l LogView) ConsumesKeys() bool {
	return l.searching || l.searchQuery != "" || l.copyMode
}

func (l *LogView) hiddenCount() int {
	n := 0
	for _, hidden := range l.hidden {
		if hidden {
			n++
		}
	}
	return n
}

// visibleEntries applies the severity filters.
func (l *LogView) visibleEntries() []monitor.Entry {
	entries := l.buffer.Entries()
	if l.hiddenCount() == 0 {
		return entries
	}
	out := entries[:0:0]
	for _, e := range entries {
		if !l.hidden[e.Severity] {
			out = append(out, e)
		}
	}
	return out
}

// visibleLines renders the plain (unstyled) text of each visible row,
// used for search and yanking.
func (l *LogView) visibleLines() []string {
	entries := l.visibleEntries()
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = l.plainLine(e)
	}
	return lines
}

func (l *LogView) plainLine(e monitor.Entry) string {
	if l.showTimestamps {
		return text.ClockTime(e.Time) + " " + e.Severity.Badge() + " " + e.Text
	}
	return e.Severity.Badge() + " " + e.Text
}

func (l *LogView) resizeViewport() {
	innerW := l.width - 2
	innerH := l.height - 2
	if l.searching || l.searchQuery != "" || l.copyMode {
		innerH-- // status row
	}
	if innerW < 0 {
		innerW = 0
	}
	if innerH < 0 {
		innerH = 0
	}
	l.viewport.Width = innerW
	l.viewport.Height = innerH
}

func (l *LogView) refreshContent() {
	l.viewport.SetContent(l.renderContent())
	if l.follow {
		l.viewport.GotoBottom()
	}
}

// renderContent builds the styled log rows including search and
// selection highlights.
func (l *LogView) renderContent() string {
	entries := l.visibleEntries()
	if len(entries) == 0 {
		if l.active {
			return styles.TextDimStyle.Render("Waiting for output...") + " ▍"
		}
		return styles.TextDimStyle.Render("Stopped. Press s to start.")
	}

	matchSet := make(map[int]bool, len(l.matchIndices))
	for _, idx := range l.matchIndices {
		matchSet[idx] = true
	}
	currentMatchLine := -1
	if len(l.matchIndices) > 0 && l.currentMatch >= 0 && l.currentMatch < len(l.matchIndices) {
		currentMatchLine = l.matchIndices[l.currentMatch]
	}

	tsStyle := styles.TextDimStyle
	styled := make([]string, 0, len(entries))
	for i, e := range entries {
		badgeStyle := lipgloss.NewStyle().Foreground(styles.SeverityColor(e.Severity)).Bold(true)
		msg := e.Text
		if l.searchQuery != "" && matchSet[i] {
			msg = highlightMatches(msg, l.searchQuery, i == currentMatchLine)
		} else {
			msg = styles.TextPrimaryStyle.Render(msg)
		}
		row := badgeStyle.Render(e.Severity.Badge()) + " " + msg
		if l.showTimestamps {
			row = tsStyle.Render(text.ClockTime(e.Time)) + " " + row
		}
		styled = append(styled, row)
	}

	result := strings.Join(styled, "\n")
	if l.active {
		result += " ▍"
	}

	if l.copyMode {
		selStart, selEnd := l.copySelectionRange()
		result = applySelectionHighlight(result, selStart, selEnd)
	}
	return result
}

func (l *LogView) recomputeMatches() {
	l.matchIndices = nil
	l.currentMatch = 0
	if l.searchQuery == "" {
		return
	}
	query := strings.ToLower(l.searchQuery)
	for i, line := range l.visibleLines() {
		if strings.Contains(strings.ToLower(line), query) {
			l.matchIndices = append(l.matchIndices, i)
		}
	}
}

func (l *LogView) nextMatch() {
	if len(l.matchIndices) == 0 {
		return
	}
	l.currentMatch = (l.currentMatch + 1) % len(l.matchIndices)
	l.jumpToMatch()
}

func (l *LogView) prevMatch() {
	if len(l.matchIndices) == 0 {
		return
	}
	l.currentMatch = (l.currentMatch - 1 + len(l.matchIndices)) % len(l.matchIndices)
	l.jumpToMatch()
}

func (l *LogView) jumpToMatch() {
	if len(l.matchIndices) == 0 {
		return
	}
	l.follow = false
	l.viewport.SetYOffset(l.matchIndices[l.currentMatch])
	l.refreshContent()
}

func (l *LogView) enterCopyMode() {
	lines := l.visibleLines()
	if len(lines) == 0 {
		return
	}
	// Anchor at the center of the visible viewport.
	center := l.viewport.YOffset + l.viewport.Height/2
	if center >= len(lines) {
		center = len(lines) - 1
	}
	if center < 0 {
		center = 0
	}
	l.copyMode = true
	l.copyAnchor = center
	l.copyCursor = center
	l.follow = false
	l.resizeViewport()
	l.refreshContent()
}

func (l *LogView) updateCopyMode(msg tea.KeyMsg) (LogView, tea.Cmd) {
	lineCount := len(l.visibleLines())

	switch msg.String() {
	case "esc":
		l.copyMode = false
		l.resizeViewport()
		l.refreshContent()
		return *l, nil
	case "y":
		yanked := l.yankSelection()
		l.copyMode = false
		l.resizeViewport()
		l.refreshContent()
		if yanked != "" {
			return *l, func() tea.Msg { return YankMsg{Text: yanked} }
		}
		return *l, nil
	case "j", "down":
		if l.copyCursor < lineCount-1 {
			l.copyCursor++
			if l.copyCursor >= l.viewport.YOffset+l.viewport.Height {
				l.viewport.SetYOffset(l.copyCursor - l.viewport.Height + 1)
			}
			l.refreshContent()
		}
		return *l, nil
	case "k", "up":
		if l.copyCursor > 0 {
			l.copyCursor--
			if l.copyCursor < l.viewport.YOffset {
				l.viewport.SetYOffset(l.copyCursor)
			}
			l.refreshContent()
		}
		return *l, nil
	case "G":
		l.copyCursor = lineCount - 1
		l.viewport.GotoBottom()
		l.refreshContent()
		return *l, nil
	case "g":
		if l.gPending {
			l.gPending = false
			l.copyCursor = 0
			l.viewport.GotoTop()
			l.refreshContent()
			return *l, nil
		}
		l.gPending = true
		return *l, tea.Tick(gTimeout, func(time.Time) tea.Msg {
			return GTimerExpiredMsg{}
		})
	}
	return *l, nil
}

func (l *LogView) yankSelection() string {
	lines := l.visibleLines()
	if len(lines) == 0 {
		return ""
	}
	start, end := l.copySelectionRange()
	if start < 0 {
		start = 0
	}
	if end >= len(lines) {
		end = len(lines) - 1
	}
	return strings.Join(lines[start:end+1], "\n")
}

func (l *LogView) copySelectionRange() (int, int) {
	start, end := l.copyAnchor, l.copyCursor
	if start > end {
		start, end = end, start
	}
	return start, end
}

// applySelectionHighlight wraps lines within the selection range with
// SelectionStyle.
func applySelectionHighlight(content string, selStart, selEnd int) string {
	lines := strings.Split(content, "\n")
	for i := selStart; i <= selEnd && i < len(lines); i++ {
		if i >= 0 {
			lines[i] = styles.SelectionStyle.Render(lines[i])
		}
	}
	return strings.Join(lines, "\n")
}

// highlightMatches wraps occurrences of query in line with highlight
// styling. Case-insensitive literal matching.
func highlightMatches(line, query string, isCurrent bool) string {
	if query == "" {
		return line
	}
	lower := strings.ToLower(line)
	lowerQ := strings.ToLower(query)

	style := styles.SearchHighlightStyle
	if isCurrent {
		style = styles.CurrentMatchStyle
	}

	var b strings.Builder
	start := 0
	qLen := len(lowerQ)
	for {
		idx := strings.Index(lower[start:], lowerQ)
		if idx < 0 {
			b.WriteString(line[start:])
			break
		}
		b.WriteString(line[start : start+idx])
		b.WriteString(style.Render(line[start+idx : start+idx+qLen]))
		start += idx + qLen
	}
	return b.String()
}
