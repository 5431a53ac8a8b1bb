package ui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/uartium/uartium/internal/config"
	"github.com/uartium/uartium/internal/monitor"
	"github.com/uartium/uartium/internal/source"
)

var errTest = errors.New("device gone")

func newTestApp(t *testing.T) App {
	t.Helper()
	cfg := config.DefaultConfig()
	engine, err := monitor.NewTriggerEngine(nil)
	if err != nil {
		t.Fatalf("NewTriggerEngine: %v", err)
	}
	session := monitor.NewSession(
		source.NewDemoSource(time.Second),
		monitor.NewEntryBuffer(cfg.Log.Capacity),
		monitor.NewTimeline(cfg.Timeline.Points),
		monitor.NewStats(),
		engine,
	)
	t.Cleanup(session.Stop)
	return NewApp(&cfg, session)
}

func sendKey(a App, key string) App {
	m, _ := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)})
	return m.(App)
}

func sendSpecialKey(a App, kt tea.KeyType) App {
	m, _ := a.Update(tea.KeyMsg{Type: kt})
	return m.(App)
}

func sendWindowSize(a App, w, h int) App {
	m, _ := a.Update(tea.WindowSizeMsg{Width: w, Height: h})
	return m.(App)
}

func TestAppLoadingBeforeWindowSize(t *testing.T) {
	a := newTestApp(t)
	if !strings.Contains(a.View(), "Loading") {
		t.Error("expected loading placeholder before the first window size")
	}
}

func TestAppTooSmall(t *testing.T) {
	a := sendWindowSize(newTestApp(t), 40, 10)
	view := a.View()
	if !strings.Contains(view, "Terminal too small") {
		t.Error("expected too-small message")
	}
	if !strings.Contains(view, "40×10") {
		t.Error("expected current dimensions in message")
	}
}

func TestAppRendersPanels(t *testing.T) {
	a := sendWindowSize(newTestApp(t), 100, 30)
	view := a.View()
	if !strings.Contains(view, "Log") {
		t.Error("expected log panel title")
	}
	if !strings.Contains(view, "Timeline") {
		t.Error("expected timeline panel title")
	}
	if !strings.Contains(view, "uartium") {
		t.Error("expected status bar")
	}
}

func TestAppStartStop(t *testing.T) {
	a := sendWindowSize(newTestApp(t), 100, 30)

	a = sendKey(a, "s")
	if !a.session.Running() {
		t.Fatal("s should start the stream")
	}
	if !strings.Contains(a.View(), "RUN") {
		t.Error("expected RUN state after start")
	}

	a = sendKey(a, "x")
	if a.session.Running() {
		t.Fatal("x should stop the stream")
	}
	if !strings.Contains(a.View(), "STOP") {
		t.Error("expected STOP state after stop")
	}
}

func TestAppStartWhileRunningIsNoop(t *testing.T) {
	a := sendWindowSize(newTestApp(t), 100, 30)
	a = sendKey(a, "s")
	started := a.session.StartedAt()
	a = sendKey(a, "s")
	if a.session.StartedAt() != started {
		t.Error("second s should not restart the stream")
	}
}

func TestAppClear(t *testing.T) {
	a := sendWindowSize(newTestApp(t), 100, 30)
	a.session.Entries().Append(monitor.Entry{Severity: monitor.Info, Text: "stale"})
	a.session.Stats().Record(monitor.Entry{Time: time.Now(), Severity: monitor.Info})

	a = sendKey(a, "c")
	if a.session.Entries().Len() != 0 {
		t.Error("c should clear the log buffer")
	}
	if a.session.Stats().Snapshot().Total != 0 {
		t.Error("c should reset the counters")
	}
}

func TestAppFocusCycle(t *testing.T) {
	a := sendWindowSize(newTestApp(t), 100, 30)
	if a.focusedPanel != panelLog {
		t.Fatal("log panel should start focused")
	}
	a = sendSpecialKey(a, tea.KeyTab)
	if a.focusedPanel != panelTimeline {
		t.Error("tab should focus the timeline")
	}
	a = sendSpecialKey(a, tea.KeyTab)
	if a.focusedPanel != panelLog {
		t.Error("tab should wrap back to the log")
	}
	a = sendKey(a, "l")
	if a.focusedPanel != panelTimeline {
		t.Error("l should focus the timeline")
	}
	a = sendKey(a, "h")
	if a.focusedPanel != panelLog {
		t.Error("h should focus the log")
	}
}

func TestAppHelpOverlay(t *testing.T) {
	a := sendWindowSize(newTestApp(t), 100, 30)
	a = sendKey(a, "?")
	if a.helpOverlay == nil {
		t.Fatal("? should open the help overlay")
	}
	if !strings.Contains(a.View(), "Keybinds") {
		t.Error("expected help content in view")
	}

	m, cmd := a.Update(tea.KeyMsg{Type: tea.KeyEsc})
	a = m.(App)
	if cmd == nil {
		t.Fatal("esc in help should produce a close command")
	}
	m, _ = a.Update(cmd())
	a = m.(App)
	if a.helpOverlay != nil {
		t.Error("close command should dismiss the overlay")
	}
}

func TestAppSeverityToggleFlash(t *testing.T) {
	a := sendWindowSize(newTestApp(t), 100, 30)
	a = sendKey(a, "5")
	if !strings.Contains(a.View(), "DEBUG hidden") {
		t.Error("expected hidden flash after first toggle")
	}
	a = sendKey(a, "5")
	if !strings.Contains(a.View(), "DEBUG shown") {
		t.Error("expected shown flash after second toggle")
	}
}

func TestAppYankFlash(t *testing.T) {
	a := sendWindowSize(newTestApp(t), 100, 30)
	m, cmd := a.Update(YankMsg{Text: "[INFO] copied line"})
	a = m.(App)
	if cmd == nil {
		t.Fatal("yank should schedule a flash clear")
	}
	view := a.View()
	if !strings.Contains(view, "Copied") && !strings.Contains(view, "Copy failed") {
		t.Error("expected a copy flash either way")
	}
}

func TestAppSessionStoppedFlash(t *testing.T) {
	a := sendWindowSize(newTestApp(t), 100, 30)
	m, _ := a.Update(monitor.SessionStoppedMsg{Err: errTest})
	a = m.(App)
	if !strings.Contains(a.View(), "Connection lost") {
		t.Error("expected connection lost flash")
	}
}

func TestAppQuitStopsSession(t *testing.T) {
	a := sendWindowSize(newTestApp(t), 100, 30)
	a = sendKey(a, "s")
	m, cmd := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	a = m.(App)
	if cmd == nil {
		t.Fatal("q should produce a quit command")
	}
	if a.session.Running() {
		t.Error("q should stop the session before quitting")
	}
}

func TestAppTickStopsWhenNotRunning(t *testing.T) {
	a := sendWindowSize(newTestApp(t), 100, 30)
	m, cmd := a.Update(TickMsg{})
	a = m.(App)
	if cmd != nil {
		t.Error("tick should not reschedule while stopped")
	}
	if a.ticking {
		t.Error("ticking flag should drop while stopped")
	}
}
