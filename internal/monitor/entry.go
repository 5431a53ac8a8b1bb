package monitor

import (
	"sync"
	"time"
)

// Entry is one classified log line. Entries are immutable once
// appended.
type Entry struct {
	Time     time.Time
	Elapsed  float64 // seconds since stream start
	Severity Severity
	Text     string
}

// EntryBuffer is a thread-safe ring of entries. Appending beyond
// capacity evicts the oldest entry, bounding memory for long sessions.
type EntryBuffer struct {
	mu       sync.RWMutex
	entries  []Entry
	capacity int
	head     int
	count    int
	evicted  int
}

// DefaultCapacity bounds the log buffer when the config does not say
// otherwise.
const DefaultCapacity = 2000

// NewEntryBuffer creates a buffer holding at most capacity entries.
func NewEntryBuffer(capacity int) *EntryBuffer {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &EntryBuffer{
		entries:  make([]Entry, capacity),
		capacity: capacity,
	}
}

// Append adds an entry, evicting the oldest when full.
func (b *EntryBuffer) Append(e Entry) {
	b.mu.Lock()
	b.entries[b.head] = e
	b.head = (b.head + 1) % b.capacity
	if b.count < b.capacity {
		b.count++
	} else {
		b.evicted++
	}
	b.mu.Unlock()
}

// Entries returns all buffered entries in arrival order.
func (b *EntryBuffer) Entries() []Entry {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.count == 0 {
		return nil
	}
	out := make([]Entry, b.count)
	if b.count < b.capacity {
		copy(out, b.entries[:b.count])
	} else {
		// Wrapped: oldest sits at head.
		n := copy(out, b.entries[b.head:])
		copy(out[n:], b.entries[:b.head])
	}
	return out
}

// Tail returns the most recent n entries in arrival order.
func (b *EntryBuffer) Tail(n int) []Entry {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if n <= 0 || b.count == 0 {
		return nil
	}
	if n > b.count {
		n = b.count
	}
	out := make([]Entry, n)
	start := (b.head - n + b.capacity) % b.capacity
	if start+n <= b.capacity {
		copy(out, b.entries[start:start+n])
	} else {
		first := b.capacity - start
		copy(out, b.entries[start:])
		copy(out[first:], b.entries[:n-first])
	}
	return out
}

// Len returns the number of buffered entries.
func (b *EntryBuffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.count
}

// TotalEvicted returns how many entries capacity eviction has removed.
func (b *EntryBuffer) TotalEvicted() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.evicted
}

// Reset discards all entries.
func (b *EntryBuffer) Reset() {
	b.mu.Lock()
	b.head = 0
	b.count = 0
	b.evicted = 0
	b.mu.Unlock()
}
