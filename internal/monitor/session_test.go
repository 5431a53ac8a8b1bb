package monitor

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/uartium/uartium/internal/source"
)

// fakeSource feeds scripted lines through the Source contract so the
// pump can be exercised without hardware or timers.
type fakeSource struct {
	mu      sync.Mutex
	lines   chan source.Line
	err     error
	running bool
	starts  int
}

func newFakeSource() *fakeSource {
	return &fakeSource{}
}

func (f *fakeSource) Start() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lines = make(chan source.Line, 64)
	f.running = true
	f.starts++
	return nil
}

func (f *fakeSource) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.running {
		return
	}
	f.running = false
	close(f.lines)
}

func (f *fakeSource) Lines() <-chan source.Line {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lines
}

func (f *fakeSource) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

func (f *fakeSource) Describe() string { return "fake" }

func (f *fakeSource) Stats() source.Stats { return source.Stats{} }

// emit pushes one line; fail closes the channel with a pending error,
// simulating a device disconnect.
func (f *fakeSource) emit(text string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lines <- source.Line{Text: text, At: time.Now()}
}

func (f *fakeSource) fail(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
	f.running = false
	close(f.lines)
}

func newTestSession(src source.Source) *Session {
	triggers, _ := NewTriggerEngine(nil)
	return NewSession(src, NewEntryBuffer(100), NewTimeline(100), NewStats(), triggers)
}

func waitFor(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", msg)
}

func TestSessionPumpsAndClassifies(t *testing.T) {
	src := newFakeSource()
	s := newTestSession(src)

	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	src.emit("[ERROR] CRC mismatch")
	src.emit("Sensor ready")

	waitFor(t, func() bool { return s.Entries().Len() == 2 }, "2 entries")

	entries := s.Entries().Entries()
	if entries[0].Severity != Error || entries[0].Text != "CRC mismatch" {
		t.Errorf("entry 0 = %+v", entries[0])
	}
	if entries[1].Severity != Info || entries[1].Text != "Sensor ready" {
		t.Errorf("entry 1 = %+v", entries[1])
	}
	if n := len(s.Timeline().Series(Error)); n != 1 {
		t.Errorf("timeline error points = %d, want 1", n)
	}
	if snap := s.Stats().Snapshot(); snap.Total != 2 {
		t.Errorf("stats total = %d, want 2", snap.Total)
	}

	s.Stop()
}

func TestSessionStartWhileRunning(t *testing.T) {
	src := newFakeSource()
	s := newTestSession(src)

	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := s.Start(); err == nil {
		t.Error("expected error starting a running session")
	}
	s.Stop()
}

func TestSessionStopIdempotent(t *testing.T) {
	src := newFakeSource()
	s := newTestSession(src)

	s.Stop() // never started

	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	s.Stop()
	s.Stop()

	if s.Running() {
		t.Error("session still running after Stop")
	}
}

func TestSessionRestart(t *testing.T) {
	src := newFakeSource()
	s := newTestSession(src)

	if err := s.Start(); err != nil {
		t.Fatalf("first Start: %v", err)
	}
	src.emit("[INFO] first run")
	waitFor(t, func() bool { return s.Entries().Len() == 1 }, "first entry")
	s.Stop()

	if err := s.Start(); err != nil {
		t.Fatalf("second Start: %v", err)
	}
	src.emit("[INFO] second run")
	waitFor(t, func() bool { return s.Entries().Len() == 2 }, "second entry")
	s.Stop()

	if src.starts != 2 {
		t.Errorf("source started %d times, want 2", src.starts)
	}
}

func TestSessionDisconnectAppendsErrorEntry(t *testing.T) {
	src := newFakeSource()
	s := newTestSession(src)

	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	src.emit("[INFO] before")
	waitFor(t, func() bool { return s.Entries().Len() == 1 }, "first entry")

	src.fail(errors.New("device unplugged"))
	waitFor(t, func() bool { return !s.Running() }, "session to stop")
	waitFor(t, func() bool { return s.Entries().Len() == 2 }, "disconnect entry")

	entries := s.Entries().Entries()
	last := entries[len(entries)-1]
	if last.Severity != Error {
		t.Errorf("disconnect entry severity = %v, want Error", last.Severity)
	}
}

func TestSessionClear(t *testing.T) {
	src := newFakeSource()
	s := newTestSession(src)

	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	src.emit("[WARNING] noise")
	waitFor(t, func() bool { return s.Entries().Len() == 1 }, "entry")

	s.Clear()

	if s.Entries().Len() != 0 {
		t.Errorf("entries after Clear = %d, want 0", s.Entries().Len())
	}
	if s.Stats().Snapshot().Total != 0 {
		t.Error("stats not cleared")
	}
	if !s.Running() {
		t.Error("Clear must not stop the session")
	}
	s.Stop()
}
