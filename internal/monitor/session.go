package monitor

import (
	"fmt"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/uartium/uartium/internal/source"
)

// LogLineMsg wakes the UI after new entries land in the buffer.
type LogLineMsg struct{}

// SessionStoppedMsg is sent when the pump exits on its own, i.e. the
// source failed mid-stream rather than being stopped by the user.
type SessionStoppedMsg struct {
	Err error
}

// TriggerFiredMsg carries trigger firings to the UI.
type TriggerFiredMsg struct {
	Events []TriggerEvent
}

// Session owns one source and the data structures fed by it. Start
// spawns a pump goroutine that drains the source's line channel,
// classifies each line, and records it in the entry buffer, timeline,
// stats, and trigger engine, then wakes the UI via the program.
type Session struct {
	entries  *EntryBuffer
	timeline *Timeline
	stats    *Stats
	triggers *TriggerEngine

	mu      sync.Mutex
	src     source.Source
	running bool
	started time.Time
	done    chan struct{}
	program *tea.Program
}

// NewSession creates a session around the given source. The trigger
// engine may be empty but must not be nil.
func NewSession(src source.Source, entries *EntryBuffer, timeline *Timeline, stats *Stats, triggers *TriggerEngine) *Session {
	return &Session{
		entries:  entries,
		timeline: timeline,
		stats:    stats,
		triggers: triggers,
		src:      src,
	}
}

// SetProgram wires the UI program the pump wakes on new data.
func (s *Session) SetProgram(p *tea.Program) {
	s.mu.Lock()
	s.program = p
	s.mu.Unlock()
}

// Start opens the source and begins pumping. Starting an already
// running session is an error; a failed open leaves the session
// stopped.
func (s *Session) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return fmt.Errorf("session already running")
	}
	if err := s.src.Start(); err != nil {
		return fmt.Errorf("start %s: %w", s.src.Describe(), err)
	}
	s.running = true
	s.started = time.Now()
	s.done = make(chan struct{})
	go s.pump(s.done)
	return nil
}

// Stop halts the source and waits for the pump to drain. Stopping a
// stopped session is a no-op.
func (s *Session) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	done := s.done
	s.mu.Unlock()

	s.src.Stop()
	<-done
}

// Running reports whether the pump is active.
func (s *Session) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// StartedAt returns when the current (or last) stream began.
func (s *Session) StartedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.started
}

// Source returns the session's source for Describe and Stats calls.
func (s *Session) Source() source.Source { return s.src }

// Entries returns the backing log buffer.
func (s *Session) Entries() *EntryBuffer { return s.entries }

// Timeline returns the backing timeline.
func (s *Session) Timeline() *Timeline { return s.timeline }

// Stats returns the backing counters.
func (s *Session) Stats() *Stats { return s.stats }

// Triggers returns the trigger engine.
func (s *Session) Triggers() *TriggerEngine { return s.triggers }

// Clear resets the log, timeline, and stats without touching the
// stream. The stream clock keeps its origin so elapsed values stay
// monotonic.
func (s *Session) Clear() {
	s.entries.Reset()
	s.timeline.Reset()
	s.stats.Reset()
}

// pump drains the source until its channel closes. If the source
// reports an error afterwards, a synthetic ERROR entry records the
// disconnect and the UI is told the session stopped itself.
func (s *Session) pump(done chan struct{}) {
	defer close(done)

	for line := range s.src.Lines() {
		s.record(line.Text, line.At)
		s.send(LogLineMsg{})
	}

	err := s.src.Err()
	if err == nil {
		// Clean stop, Stop() handles state.
		return
	}

	s.mu.Lock()
	wasRunning := s.running
	s.running = false
	s.mu.Unlock()
	if !wasRunning {
		return
	}

	s.record(fmt.Sprintf("[ERROR] Connection lost: %v", err), time.Now())
	s.send(SessionStoppedMsg{Err: err})
}

// record classifies one raw line and fans it out to every consumer.
func (s *Session) record(text string, at time.Time) {
	sev, msg := Classify(text)
	e := Entry{
		Time:     at,
		Elapsed:  at.Sub(s.StartedAt()).Seconds(),
		Severity: sev,
		Text:     msg,
	}
	s.entries.Append(e)
	s.timeline.Add(e)
	s.stats.Record(e)
	if fired := s.triggers.Evaluate(e); len(fired) > 0 {
		s.send(TriggerFiredMsg{Events: fired})
	}
}

func (s *Session) send(msg tea.Msg) {
	s.mu.Lock()
	p := s.program
	s.mu.Unlock()
	if p != nil {
		p.Send(msg)
	}
}
