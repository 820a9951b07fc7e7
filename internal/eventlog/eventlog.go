package eventlog

import (
	"fmt"
	"time"
)

const (
	// DefaultCapacity is the number of entries retained when none is configured.
	DefaultCapacity = 40

	// Placeholder is shown until the first routing event arrives.
	Placeholder = "waiting for traffic…"
)

// Entry is one routing event.
type Entry struct {
	Time   time.Time `json:"time"`
	Server string    `json:"server"`
	Delta  int64     `json:"delta"`
}

// Line renders the entry as it appears in the feed.
func (e Entry) Line() string {
	return fmt.Sprintf("%s $ %s ← routed request [+%d OK]", e.Time.Format("15:04:05"), e.Server, e.Delta)
}

// Log is not safe for concurrent use; the poller owns it.
type Log struct {
	capacity       int
	entries        []Entry
	count          int
	hasPlaceholder bool
	now            func() time.Time
}

func New(capacity int) *Log {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	return &Log{
		capacity:       capacity,
		entries:        make([]Entry, 0, capacity+1),
		hasPlaceholder: true,
		now:            time.Now,
	}
}

// WithClock replaces the wall clock used to stamp entries.
func (l *Log) WithClock(now func() time.Time) *Log {
	l.now = now
	return l
}

// Record prepends a routing event and evicts from the tail beyond capacity.
// It returns false and does nothing unless server is set and delta is positive.
//
// Count is the number of entries inserted since the placeholder was cleared;
// eviction does not lower it.
func (l *Log) Record(server string, delta int64) bool {
	if server == "" || delta <= 0 {
		return false
	}

	if l.hasPlaceholder {
		l.entries = l.entries[:0]
		l.count = 0
		l.hasPlaceholder = false
	}

	l.count++
	l.entries = append(l.entries, Entry{})
	copy(l.entries[1:], l.entries[:len(l.entries)-1])
	l.entries[0] = Entry{Time: l.now(), Server: server, Delta: delta}

	for len(l.entries) > l.capacity {
		l.entries = l.entries[:len(l.entries)-1]
	}

	return true
}

// HasPlaceholder reports whether no event has been recorded yet.
func (l *Log) HasPlaceholder() bool {
	return l.hasPlaceholder
}

// Count returns the displayed entry counter.
func (l *Log) Count() int {
	return l.count
}

// CountLabel renders the counter as shown in the feed header.
func (l *Log) CountLabel() string {
	return fmt.Sprintf("%d entries", l.count)
}

// Len returns the number of retained entries.
func (l *Log) Len() int {
	return len(l.entries)
}

func (l *Log) Capacity() int {
	return l.capacity
}

// Entries returns a newest-first copy of the retained entries.
func (l *Log) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Lines renders the feed newest first, or the placeholder before any event.
func (l *Log) Lines() []string {
	if l.hasPlaceholder {
		return []string{Placeholder}
	}

	lines := make([]string, len(l.entries))
	for i, e := range l.entries {
		lines[i] = e.Line()
	}
	return lines
}
