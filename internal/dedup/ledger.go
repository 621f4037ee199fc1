package dedup

import "sync"

// DefaultCapacity is the number of event IDs retained for duplicate
// detection. Slack redelivers within minutes, so a window of the last
// 100 events is plenty for a single workspace bot.
const DefaultCapacity = 100

// Ledger tracks recently seen event IDs for duplicate suppression.
//
// Entries are kept in insertion order; once capacity is exceeded the
// single oldest entry is evicted (FIFO — a repeated lookup does not
// re-promote an entry). State is in-memory only and resets on restart.
//
// Contains and Add each take an internal mutex, so a Ledger is safe to
// share across concurrent dispatch flows. Callers must not assume the
// pair is atomic: the dispatcher checks before processing and marks
// after, accepting a rare double execution over holding a lock across
// command execution.
type Ledger struct {
	mu       sync.Mutex
	capacity int
	order    []string
	seen     map[string]struct{}
}

// NewLedger creates an empty ledger. A non-positive capacity falls
// back to DefaultCapacity.
func NewLedger(capacity int) *Ledger {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Ledger{
		capacity: capacity,
		seen:     make(map[string]struct{}, capacity),
	}
}

// Contains reports whether id was added and has not yet been evicted.
func (l *Ledger) Contains(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.seen[id]
	return ok
}

// Add records id as seen, evicting the oldest entry when the ledger
// is over capacity.
func (l *Ledger) Add(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.order = append(l.order, id)
	l.seen[id] = struct{}{}

	if len(l.order) > l.capacity {
		oldest := l.order[0]
		l.order = l.order[1:]
		delete(l.seen, oldest)
	}
}

// Len returns the number of retained entries.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.order)
}
