package cache

import (
	"sync"

	"inkwell/internal/models"
)

// Tombstones remembers post IDs deleted by this process so the listing path
// can hide them while the store's secondary reads catch up. It is a
// best-effort UI smoothing workaround for eventually-consistent
// read-after-delete artifacts, not a correctness mechanism: entries are
// drained on every listing read and lost on restart.
type Tombstones struct {
	mu       sync.Mutex
	ids      []models.PostID
	capacity int
}

// NewTombstones returns a buffer holding at most capacity entries; the oldest
// entry is dropped when the buffer is full.
func NewTombstones(capacity int) *Tombstones {
	if capacity <= 0 {
		capacity = 64
	}
	return &Tombstones{capacity: capacity}
}

// Add records a deleted post ID.
func (t *Tombstones) Add(id models.PostID) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.ids) >= t.capacity {
		t.ids = t.ids[1:]
	}
	t.ids = append(t.ids, id)
}

// Drain removes and returns all recorded IDs.
func (t *Tombstones) Drain() []models.PostID {
	t.mu.Lock()
	defer t.mu.Unlock()
	ids := t.ids
	t.ids = nil
	return ids
}

// Len reports the number of buffered IDs.
func (t *Tombstones) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.ids)
}
