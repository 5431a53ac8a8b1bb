package monitor

import (
	"sync"
	"time"
)

// rateWindow is the sliding window for the messages/sec figure shown in
// the status bar.
const rateWindow = 60 * time.Second

// Stats tracks per-severity counts and a recent-rate estimate.
type Stats struct {
	mu     sync.RWMutex
	counts map[Severity]int
	total  int
	recent []time.Time
}

// StatsSnapshot is an immutable view for rendering.
type StatsSnapshot struct {
	Counts map[Severity]int
	Total  int
	Errors int
	Rate   float64 // messages per second over the sliding window
}

// NewStats creates an empty counter set.
func NewStats() *Stats {
	return &Stats{counts: make(map[Severity]int, len(Severities))}
}

// Record counts one entry.
func (s *Stats) Record(e Entry) {
	s.mu.Lock()
	s.counts[e.Severity]++
	s.total++
	s.recent = append(s.recent, e.Time)
	s.prune(e.Time)
	s.mu.Unlock()
}

// Snapshot returns current counts and the rate as of now.
func (s *Stats) Snapshot() StatsSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	s.prune(now)

	counts := make(map[Severity]int, len(s.counts))
	for sev, n := range s.counts {
		counts[sev] = n
	}

	var rate float64
	if n := len(s.recent); n > 0 {
		window := now.Sub(s.recent[0])
		if window < time.Second {
			window = time.Second
		}
		rate = float64(n) / window.Seconds()
	}

	return StatsSnapshot{
		Counts: counts,
		Total:  s.total,
		Errors: counts[Error],
		Rate:   rate,
	}
}

// Reset clears all counters.
func (s *Stats) Reset() {
	s.mu.Lock()
	s.counts = make(map[Severity]int, len(Severities))
	s.total = 0
	s.recent = nil
	s.mu.Unlock()
}

// prune drops timestamps older than the rate window. Caller holds mu.
func (s *Stats) prune(now time.Time) {
	cutoff := now.Add(-rateWindow)
	i := 0
	for i < len(s.recent) && s.recent[i].Before(cutoff) {
		i++
	}
	if i > 0 {
		s.recent = append(s.recent[:0], s.recent[i:]...)
	}
}
