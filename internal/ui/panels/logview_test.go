package panels

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/uartium/uartium/internal/monitor"
)

func testBuffer(lines ...string) *monitor.EntryBuffer {
	b := monitor.NewEntryBuffer(100)
	base := time.Date(2026, 8, 23, 14, 32, 1, 0, time.UTC)
	for i, line := range lines {
		sev, text := monitor.Classify(line)
		b.Append(monitor.Entry{
			Time:     base.Add(time.Duration(i) * time.Second),
			Elapsed:  float64(i),
			Severity: sev,
			Text:     text,
		})
	}
	return b
}

func testLogView(lines ...string) LogView {
	lv := NewLogView(testBuffer(lines...))
	lv.SetFocused(true)
	lv.SetSize(80, 20)
	return lv
}

func keyMsg(s string) tea.KeyMsg {
	if len(s) == 1 {
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
	switch s {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{}
}

func TestLogViewRendersEntries(t *testing.T) {
	lv := testLogView("[ERROR] CRC mismatch", "[INFO] all nominal")
	view := lv.View()

	if !strings.Contains(view, "CRC mismatch") {
		t.Error("expected error text in view")
	}
	if !strings.Contains(view, "all nominal") {
		t.Error("expected info text in view")
	}
	if !strings.Contains(view, "14:32:01") {
		t.Error("expected timestamp column in view")
	}
}

func TestLogViewHidesTimestamps(t *testing.T) {
	lv := testLogView("[INFO] hello")
	lv.SetShowTimestamps(false)
	if strings.Contains(lv.View(), "14:32:01") {
		t.Error("timestamps should be hidden")
	}
}

func TestLogViewEmptyStopped(t *testing.T) {
	lv := testLogView()
	if !strings.Contains(lv.View(), "Stopped") {
		t.Error("expected stopped placeholder for empty inactive log")
	}
}

func TestLogViewEmptyActive(t *testing.T) {
	lv := testLogView()
	lv.SetActive(true)
	if !strings.Contains(lv.View(), "Waiting for output") {
		t.Error("expected waiting placeholder for empty active log")
	}
}

func TestLogViewSeverityFilter(t *testing.T) {
	lv := testLogView("[ERROR] boom", "[DEBUG] noise")

	shown := lv.ToggleSeverity(monitor.Debug)
	if shown {
		t.Error("first toggle should hide the severity")
	}
	view := lv.View()
	if strings.Contains(view, "noise") {
		t.Error("debug entry should be filtered out")
	}
	if !strings.Contains(view, "boom") {
		t.Error("error entry should remain visible")
	}
	if !strings.Contains(view, "[1 filtered]") {
		t.Error("title should show filter count")
	}

	if shown := lv.ToggleSeverity(monitor.Debug); !shown {
		t.Error("second toggle should show the severity again")
	}
	if !strings.Contains(lv.View(), "noise") {
		t.Error("debug entry should be visible after re-toggle")
	}
}

func TestLogViewSearchMatches(t *testing.T) {
	lv := testLogView("[INFO] temperature 23.4", "[INFO] humidity 61", "[WARNING] temperature high")

	lv, _ = lv.Update(keyMsg("/"))
	for _, r := range "temperature" {
		lv, _ = lv.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	lv, _ = lv.Update(keyMsg("enter"))

	if len(lv.matchIndices) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(lv.matchIndices))
	}
	if !strings.Contains(lv.View(), "Match 1/2") {
		t.Error("expected match counter in view")
	}

	lv, _ = lv.Update(keyMsg("n"))
	if lv.currentMatch != 1 {
		t.Errorf("currentMatch = %d, want 1 after n", lv.currentMatch)
	}
	lv, _ = lv.Update(keyMsg("N"))
	if lv.currentMatch != 0 {
		t.Errorf("currentMatch = %d, want 0 after N", lv.currentMatch)
	}

	lv, _ = lv.Update(keyMsg("esc"))
	if lv.searchQuery != "" {
		t.Error("esc should clear the search query")
	}
}

func TestLogViewSearchIsCaseInsensitive(t *testing.T) {
	lv := testLogView("[ERROR] CRC Mismatch")

	lv, _ = lv.Update(keyMsg("/"))
	for _, r := range "crc" {
		lv, _ = lv.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	lv, _ = lv.Update(keyMsg("enter"))

	if len(lv.matchIndices) != 1 {
		t.Errorf("expected 1 case-insensitive match, got %d", len(lv.matchIndices))
	}
}

func TestLogViewConsumesKeysDuringSearch(t *testing.T) {
	lv := testLogView("[INFO] x")
	if lv.ConsumesKeys() {
		t.Error("fresh log view should not consume keys")
	}
	lv, _ = lv.Update(keyMsg("/"))
	if !lv.ConsumesKeys() {
		t.Error("log view should consume keys while searching")
	}
}

func TestLogViewCopyModeYank(t *testing.T) {
	lv := testLogView("[INFO] one", "[INFO] two", "[INFO] three")

	lv, _ = lv.Update(keyMsg("y"))
	if !lv.copyMode {
		t.Fatal("y should enter copy mode")
	}

	// The anchor starts on the last line, so extend upward, then yank.
	lv, _ = lv.Update(keyMsg("k"))
	var cmd tea.Cmd
	lv, cmd = lv.Update(keyMsg("y"))
	if cmd == nil {
		t.Fatal("yank should produce a command")
	}
	msg := cmd()
	yank, ok := msg.(YankMsg)
	if !ok {
		t.Fatalf("expected YankMsg, got %T", msg)
	}
	if !strings.Contains(yank.Text, "\n") {
		t.Errorf("expected multi-line yank, got %q", yank.Text)
	}
	if lv.copyMode {
		t.Error("copy mode should exit after yank")
	}
}

func TestLogViewFollowAfterG(t *testing.T) {
	lv := testLogView("[INFO] a", "[INFO] b")
	lv, _ = lv.Update(keyMsg("j"))
	if lv.follow {
		t.Error("scrolling should disable follow")
	}
	lv, _ = lv.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'G'}})
	if !lv.follow {
		t.Error("G should re-enable follow")
	}
}

func TestLogViewGGJumpsToTop(t *testing.T) {
	lines := make([]string, 50)
	for i := range lines {
		lines[i] = "[INFO] filler"
	}
	lv := testLogView(lines...)

	lv, _ = lv.Update(keyMsg("g"))
	lv, _ = lv.Update(keyMsg("g"))
	if lv.viewport.YOffset != 0 {
		t.Errorf("gg should jump to top, offset = %d", lv.viewport.YOffset)
	}
	if lv.follow {
		t.Error("gg should disable follow")
	}
}

func TestLogViewSnapshot(t *testing.T) {
	lv := testLogView("[EVENT] Boot complete", "[ERROR] CRC mismatch")
	tm := newTestModel(t, wrapLogView(&lv))
	waitForContains(t, tm, "Boot complete")
	waitForContains(t, tm, "CRC mismatch")
	tm.Send(tea.QuitMsg{})
	tm.FinalModel(t, teatest.WithFinalTimeout(waitDuration))
}
