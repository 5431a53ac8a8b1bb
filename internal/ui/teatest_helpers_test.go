package ui

import (
	"bytes"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
)

// waitDuration is the standard timeout for WaitFor calls in tests.
const waitDuration = 3 * time.Second

// newTeatestApp starts a full-app teatest program at a standard size.
func newTeatestApp(tb testing.TB, a App) *teatest.TestModel {
	return teatest.NewTestModel(tb, a, teatest.WithInitialTermSize(100, 30))
}

// waitForContains waits until the output contains the given substring.
func waitForContains(tb testing.TB, tm *teatest.TestModel, substr string) {
	tb.Helper()
	teatest.WaitFor(
		tb,
		tm.Output(),
		func(bts []byte) bool { return bytes.Contains(bts, []byte(substr)) },
		teatest.WithDuration(waitDuration),
	)
}

func typeKey(tm *teatest.TestModel, key string) {
	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)})
}
