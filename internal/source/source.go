// Package source provides line-producing backends for the monitor: a
// real serial port reader and a synthetic demo generator. Both deliver
// newline-terminated text as discrete lines over a channel and are
// driven by the same Start/Stop lifecycle.
package source

import (
	"sync/atomic"
	"time"
)

// Line is a single raw text line with its arrival time.
type Line struct {
	Text string
	At   time.Time
}

// Source produces raw text lines asynchronously after Start. The Lines
// channel is closed when production ends, either by Stop or by a
// mid-stream failure; Err distinguishes the two. Each Start delivers on
// a fresh channel, so a stopped source can be started again; callers
// must re-read Lines after every Start.
type Source interface {
	// Start begins producing lines. It returns an error when the
	// underlying handle cannot be acquired (e.g. serial port open
	// failure); in that case no lines are ever delivered.
	Start() error

	// Stop halts production and releases the underlying handle.
	// Calling Stop on a source that is not running is a no-op.
	Stop()

	// Lines returns the delivery channel. Closed after the source
	// stops.
	Lines() <-chan Line

	// Err returns the terminal error once Lines is closed: nil after a
	// clean Stop, non-nil after a mid-stream I/O failure.
	Err() error

	// Describe returns a short human-readable label for the status bar,
	// e.g. "/dev/ttyUSB0 @ 115200" or "demo (0.5s)".
	Describe() string

	// Stats returns production counters.
	Stats() Stats
}

// Stats holds counters shared by all source implementations.
type Stats struct {
	Produced  uint64
	Dropped   uint64
	StartedAt time.Time
}

// counters is embedded by source implementations.
type counters struct {
	produced  atomic.Uint64
	dropped   atomic.Uint64
	startedAt time.Time
}

func (c *counters) snapshot() Stats {
	return Stats{
		Produced:  c.produced.Load(),
		Dropped:   c.dropped.Load(),
		StartedAt: c.startedAt,
	}
}

// deliver sends a line without blocking the producer. When the consumer
// falls behind and the channel is full the line is dropped and counted.
func (c *counters) deliver(ch chan Line, text string) {
	line := Line{Text: text, At: time.Now()}
	select {
	case ch <- line:
		c.produced.Add(1)
	default:
		c.dropped.Add(1)
	}
}

// lineBufferSize is the delivery channel depth. The UI drains the
// channel far faster than any plausible serial stream fills it; the
// buffer only absorbs bursts while a frame renders.
const lineBufferSize = 1024
