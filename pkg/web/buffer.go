package web

import (
	"sync"
)

// DefaultBufferSize is the default maximum number of events to keep in the buffer.
const DefaultBufferSize = 1000

// Buffer is a thread-safe ring buffer of events with tracker indexing.
// clients that join late read the history from it.
type Buffer struct {
	mu       sync.RWMutex
	events   []Event
	maxSize  int
	writePos int // next position to write (wraps around)
	count    int // total events written (for full detection)

	// positions of events by tracker name, in write order
	trackerIndex map[string][]int
}

// NewBuffer creates a new ring buffer with the specified max size.
// if maxSize is 0, DefaultBufferSize is used.
func NewBuffer(maxSize int) *Buffer {
	if maxSize <= 0 {
		maxSize = DefaultBufferSize
	}
	return &Buffer{
		events:       make([]Event, maxSize),
		maxSize:      maxSize,
		trackerIndex: make(map[string][]int),
	}
}

// Add appends an event to the buffer, overwriting oldest if full.
func (b *Buffer) Add(e Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	// drop the index entry of the slot about to be overwritten
	if b.count >= b.maxSize {
		b.cleanOldIndexEntry(b.writePos)
	}

	b.events[b.writePos] = e
	b.trackerIndex[e.Tracker] = append(b.trackerIndex[e.Tracker], b.writePos)

	b.writePos = (b.writePos + 1) % b.maxSize
	b.count++
}

// cleanOldIndexEntry removes the index entry for the position being overwritten.
// must be called with lock held.
func (b *Buffer) cleanOldIndexEntry(pos int) {
	old := b.events[pos]
	indices, ok := b.trackerIndex[old.Tracker]
	if !ok {
		return
	}
	// entries are in write order, the oldest is first
	if len(indices) > 0 && indices[0] == pos {
		indices = indices[1:]
	}
	if len(indices) == 0 {
		delete(b.trackerIndex, old.Tracker)
		return
	}
	b.trackerIndex[old.Tracker] = indices
}

// All returns all events in chronological order.
func (b *Buffer) All() []Event {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.count == 0 {
		return nil
	}

	result := make([]Event, min(b.count, b.maxSize))
	if b.count <= b.maxSize {
		copy(result, b.events[:b.count])
		return result
	}

	// buffer wrapped, read from writePos to end, then start to writePos
	tailLen := b.maxSize - b.writePos
	copy(result[:tailLen], b.events[b.writePos:])
	copy(result[tailLen:], b.events[:b.writePos])
	return result
}

// ByTracker returns all events of the named tracker in chronological order.
func (b *Buffer) ByTracker(name string) []Event {
	b.mu.RLock()
	defer b.mu.RUnlock()

	indices := b.trackerIndex[name]
	if len(indices) == 0 {
		return nil
	}
	result := make([]Event, len(indices))
	for i, idx := range indices {
		result[i] = b.events[idx]
	}
	return result
}

// Count returns the number of events currently in the buffer.
func (b *Buffer) Count() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return min(b.count, b.maxSize)
}

// Clear removes all events from the buffer.
func (b *Buffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.events = make([]Event, b.maxSize)
	b.writePos = 0
	b.count = 0
	b.trackerIndex = make(map[string][]int)
}
