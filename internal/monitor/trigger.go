package monitor

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
)

// TriggerKind selects the condition a trigger evaluates.
type TriggerKind string

const (
	// TriggerPattern fires when the entry text matches a substring or
	// regular expression.
	TriggerPattern TriggerKind = "pattern"
	// TriggerRate fires when the overall message rate exceeds a
	// threshold over a window.
	TriggerRate TriggerKind = "rate"
	// TriggerErrorCount fires when the number of ERROR entries in a
	// window exceeds a threshold.
	TriggerErrorCount TriggerKind = "error_count"
)

// Trigger is one configured alert condition.
type Trigger struct {
	Name      string
	Kind      TriggerKind
	Enabled   bool
	Pattern   string // pattern kind: substring, or regex when Regex is set
	Regex     bool
	Threshold float64       // rate: msgs/sec; error_count: error count
	Window    time.Duration // evaluation window for rate and error_count

	compiled  *regexp.Regexp
	fireCount int
	lastFired time.Time
}

// TriggerEvent records one firing.
type TriggerEvent struct {
	Trigger string
	Time    time.Time
	Message string
}

const maxTriggerHistory = 1000

// TriggerEngine evaluates entries against the configured triggers.
// Evaluation happens on the session's pump goroutine only; the mutex
// guards the history read by the UI.
type TriggerEngine struct {
	triggers []*Trigger

	mu      sync.RWMutex
	history []TriggerEvent

	timestamps []time.Time // all entries, for rate triggers
	errors     []time.Time // ERROR entries, for error_count triggers
}

// NewTriggerEngine compiles the given triggers. Invalid regular
// expressions are rejected up front rather than at evaluation time.
func NewTriggerEngine(triggers []Trigger) (*TriggerEngine, error) {
	e := &TriggerEngine{}
	for i := range triggers {
		t := triggers[i]
		if t.Kind == TriggerPattern && t.Regex {
			re, err := regexp.Compile(t.Pattern)
			if err != nil {
				return nil, fmt.Errorf("trigger %q: compile pattern: %w", t.Name, err)
			}
			t.compiled = re
		}
		if t.Window <= 0 {
			t.Window = 60 * time.Second
		}
		e.triggers = append(e.triggers, &t)
	}
	return e, nil
}

// Evaluate checks one entry against all enabled triggers and returns
// the events that fired.
func (e *TriggerEngine) Evaluate(entry Entry) []TriggerEvent {
	e.timestamps = append(e.timestamps, entry.Time)
	if entry.Severity == Error {
		e.errors = append(e.errors, entry.Time)
	}
	e.pruneTracking(entry.Time)

	var fired []TriggerEvent
	for _, t := range e.triggers {
		if !t.Enabled {
			continue
		}
		ev, ok := e.evaluate(t, entry)
		if !ok {
			continue
		}
		t.fireCount++
		t.lastFired = ev.Time
		fired = append(fired, ev)
	}

	if len(fired) > 0 {
		e.mu.Lock()
		e.history = append(e.history, fired...)
		if n := len(e.history); n > maxTriggerHistory {
			e.history = append(e.history[:0], e.history[n-maxTriggerHistory:]...)
		}
		e.mu.Unlock()
	}
	return fired
}

// History returns a copy of the recorded firings, oldest first.
func (e *TriggerEngine) History() []TriggerEvent {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if len(e.history) == 0 {
		return nil
	}
	out := make([]TriggerEvent, len(e.history))
	copy(out, e.history)
	return out
}

// Len returns the number of configured triggers.
func (e *TriggerEngine) Len() int { return len(e.triggers) }

func (e *TriggerEngine) evaluate(t *Trigger, entry Entry) (TriggerEvent, bool) {
	switch t.Kind {
	case TriggerPattern:
		matched := false
		if t.compiled != nil {
			matched = t.compiled.MatchString(entry.Text)
		} else {
			matched = t.Pattern != "" && strings.Contains(entry.Text, t.Pattern)
		}
		if matched {
			return TriggerEvent{
				Trigger: t.Name,
				Time:    entry.Time,
				Message: fmt.Sprintf("%s: pattern matched: %s", t.Name, t.Pattern),
			}, true
		}
	case TriggerRate:
		count := countSince(e.timestamps, entry.Time.Add(-t.Window))
		rate := float64(count) / t.Window.Seconds()
		if rate > t.Threshold {
			return TriggerEvent{
				Trigger: t.Name,
				Time:    entry.Time,
				Message: fmt.Sprintf("%s: rate %.2f msg/s over %.0f msg/s", t.Name, rate, t.Threshold),
			}, true
		}
	case TriggerErrorCount:
		count := countSince(e.errors, entry.Time.Add(-t.Window))
		if float64(count) > t.Threshold {
			return TriggerEvent{
				Trigger: t.Name,
				Time:    entry.Time,
				Message: fmt.Sprintf("%s: %d errors in %s", t.Name, count, t.Window),
			}, true
		}
	}
	return TriggerEvent{}, false
}

// pruneTracking drops tracking data older than the largest configured
// window.
func (e *TriggerEngine) pruneTracking(now time.Time) {
	var max time.Duration
	for _, t := range e.triggers {
		if t.Window > max {
			max = t.Window
		}
	}
	if max == 0 {
		max = 5 * time.Minute
	}
	cutoff := now.Add(-max)
	e.timestamps = dropBefore(e.timestamps, cutoff)
	e.errors = dropBefore(e.errors, cutoff)
}

func countSince(ts []time.Time, cutoff time.Time) int {
	n := 0
	for _, t := range ts {
		if !t.Before(cutoff) {
			n++
		}
	}
	return n
}

func dropBefore(ts []time.Time, cutoff time.Time) []time.Time {
	i := 0
	for i < len(ts) && ts[i].Before(cutoff) {
		i++
	}
	if i == 0 {
		return ts
	}
	return append(ts[:0], ts[i:]...)
}

// triggerFile is the on-disk shape of triggers.toml.
type triggerFile struct {
	Trigger []triggerDef `toml:"trigger"`
}

type triggerDef struct {
	Name      string  `toml:"name"`
	Kind      string  `toml:"kind"`
	Enabled   *bool   `toml:"enabled"`
	Pattern   string  `toml:"pattern"`
	Regex     bool    `toml:"regex"`
	Threshold float64 `toml:"threshold"`
	Window    string  `toml:"window"`
}

// LoadTriggers reads trigger definitions from a TOML file. A missing
// file is not an error: it yields an empty engine.
func LoadTriggers(path string) (*TriggerEngine, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return NewTriggerEngine(nil)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var f triggerFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	triggers := make([]Trigger, 0, len(f.Trigger))
	for _, d := range f.Trigger {
		t := Trigger{
			Name:      d.Name,
			Kind:      TriggerKind(d.Kind),
			Enabled:   d.Enabled == nil || *d.Enabled,
			Pattern:   d.Pattern,
			Regex:     d.Regex,
			Threshold: d.Threshold,
		}
		switch t.Kind {
		case TriggerPattern, TriggerRate, TriggerErrorCount:
		default:
			return nil, fmt.Errorf("trigger %q: unknown kind %q", d.Name, d.Kind)
		}
		if d.Window != "" {
			w, err := time.ParseDuration(d.Window)
			if err != nil {
				return nil, fmt.Errorf("trigger %q: parse window: %w", d.Name, err)
			}
			t.Window = w
		}
		triggers = append(triggers, t)
	}
	return NewTriggerEngine(triggers)
}
