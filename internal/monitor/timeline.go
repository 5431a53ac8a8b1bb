package monitor

import "sync"

// Point is one timeline mark: x is seconds since stream start, y the
// severity ordinal it is plotted on.
type Point struct {
	X float64
	Y int
}

// DefaultTimelinePoints caps each per-severity series.
const DefaultTimelinePoints = 500

// Timeline keeps one bounded point series per severity for the scatter
// chart. Old points fall off the front once a series hits its cap, so
// the chart tracks the recent stream without unbounded growth.
type Timeline struct {
	mu     sync.RWMutex
	series map[Severity][]Point
	cap    int
	span   float64 // largest x seen, for axis fitting
}

// NewTimeline creates a timeline capping each severity series at cap
// points.
func NewTimeline(cap int) *Timeline {
	if cap <= 0 {
		cap = DefaultTimelinePoints
	}
	return &Timeline{
		series: make(map[Severity][]Point, len(Severities)),
		cap:    cap,
	}
}

// Add records an entry on its severity row.
func (t *Timeline) Add(e Entry) {
	t.mu.Lock()
	defer t.mu.Unlock()
	s := t.series[e.Severity]
	s = append(s, Point{X: e.Elapsed, Y: e.Severity.Ordinal()})
	if len(s) > t.cap {
		s = s[len(s)-t.cap:]
	}
	t.series[e.Severity] = s
	if e.Elapsed > t.span {
		t.span = e.Elapsed
	}
}

// Series returns a copy of the point series for one severity.
func (t *Timeline) Series(sev Severity) []Point {
	t.mu.RLock()
	defer t.mu.RUnlock()
	s := t.series[sev]
	if len(s) == 0 {
		return nil
	}
	out := make([]Point, len(s))
	copy(out, s)
	return out
}

// Span returns the largest elapsed value recorded, i.e. the x-axis
// extent needed to fit every point.
func (t *Timeline) Span() float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.span
}

// Reset discards all series.
func (t *Timeline) Reset() {
	t.mu.Lock()
	t.series = make(map[Severity][]Point, len(Severities))
	t.span = 0
	t.mu.Unlock()
}
