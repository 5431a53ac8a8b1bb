package monitor

import (
	"testing"
	"time"
)

func TestStatsRecordCounts(t *testing.T) {
	s := NewStats()
	now := time.Now()

	s.Record(Entry{Time: now, Severity: Info})
	s.Record(Entry{Time: now, Severity: Error})
	s.Record(Entry{Time: now, Severity: Error})
	s.Record(Entry{Time: now, Severity: Debug})

	snap := s.Snapshot()
	if snap.Total != 4 {
		t.Errorf("Total = %d, want 4", snap.Total)
	}
	if snap.Errors != 2 {
		t.Errorf("Errors = %d, want 2", snap.Errors)
	}
	if snap.Counts[Info] != 1 || snap.Counts[Debug] != 1 {
		t.Errorf("Counts = %v", snap.Counts)
	}
}

func TestStatsRateExcludesOldTimestamps(t *testing.T) {
	s := NewStats()
	old := time.Now().Add(-2 * rateWindow)

	s.Record(Entry{Time: old, Severity: Info})
	s.Record(Entry{Time: time.Now(), Severity: Info})

	snap := s.Snapshot()
	// The stale timestamp must not inflate the rate window.
	if snap.Rate > 1.5 {
		t.Errorf("Rate = %v, want at most ~1", snap.Rate)
	}
	if snap.Total != 2 {
		t.Errorf("Total = %d, want 2 (counts are cumulative)", snap.Total)
	}
}

func TestStatsReset(t *testing.T) {
	s := NewStats()
	s.Record(Entry{Time: time.Now(), Severity: Warning})
	s.Reset()

	snap := s.Snapshot()
	if snap.Total != 0 || snap.Rate != 0 || len(snap.Counts) != 0 {
		t.Errorf("snapshot after Reset = %+v, want zeroes", snap)
	}
}
