// Package dedupe defines the interface for idempotency tracking.
package dedupe

import (
	"context"
	"sync"
)

// Deduper records seen submission IDs so a judge replaying the same
// sheet is acknowledged without writing twice.
type Deduper interface {
	// SeenAndRecord atomically checks if id was seen and records it if not.
	// Returns true if id was already seen, false if it was newly recorded.
	SeenAndRecord(ctx context.Context, id string) bool

	// Unrecord removes an ID from the seen list, allowing it to be retried.
	// Used when a submission was marked as seen but failed to persist.
	Unrecord(ctx context.Context, id string)

	// Reset forgets every recorded ID.
	Reset(ctx context.Context)

	Size() int64
}

// inMemoryDeduper implements Deduper with a map plus an insertion-order
// ring. When the ring is full the oldest ID is evicted. maxSize <= 0
// means unbounded (map only, no eviction).
type inMemoryDeduper struct {
	mu      sync.Mutex
	seen    map[string]bool
	ring    []string
	next    int
	maxSize int
}

// NewInMemoryDeduper creates a new in-memory deduper with configuration options.
func NewInMemoryDeduper(opts ...Option) Deduper {
	d := &inMemoryDeduper{
		maxSize: 10_000, // default max size
	}

	// Apply all options
	for _, opt := range opts {
		opt(d)
	}

	d.seen = make(map[string]bool)
	if d.maxSize > 0 {
		d.ring = make([]string, 0, d.maxSize)
	}

	return d
}

// SeenAndRecord atomically checks if id was seen and records it if not.
// Returns true if id was already seen, false if it was newly recorded.
func (d *inMemoryDeduper) SeenAndRecord(_ context.Context, id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.seen[id] {
		return true
	}

	if d.maxSize > 0 {
		if len(d.ring) < d.maxSize {
			d.ring = append(d.ring, id)
		} else {
			// Ring full: evict the oldest slot and reuse it.
			delete(d.seen, d.ring[d.next])
			d.ring[d.next] = id
			d.next = (d.next + 1) % d.maxSize
		}
	}
	d.seen[id] = true
	return false
}

// Unrecord removes an ID from the seen list, allowing it to be retried.
// The ring slot stays occupied until eviction; only the map entry gates
// SeenAndRecord, so the ID becomes recordable again immediately.
func (d *inMemoryDeduper) Unrecord(_ context.Context, id string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.seen, id)
}

// Reset forgets every recorded ID.
func (d *inMemoryDeduper) Reset(_ context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seen = make(map[string]bool)
	if d.maxSize > 0 {
		d.ring = d.ring[:0]
	}
	d.next = 0
}

// Size returns the number of IDs currently recorded.
func (d *inMemoryDeduper) Size() int64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return int64(len(d.seen))
}
