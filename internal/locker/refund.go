package locker

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// RefundLockTable is the explicit `LockId -> acquired_at` table spec.md §9
// calls for to bound the refund retry flow: distinct from the name-based
// Locker above, it guards one key (a payment id) against overlapping
// refund attempts, self-expiring after timeout so a crashed oracle can't
// wedge the flow permanently.
type RefundLockTable struct {
	mu      sync.Mutex
	entries map[string]refundLock
	timeout time.Duration
}

type refundLock struct {
	id         string
	acquiredAt time.Time
}

// NewRefundLockTable returns an empty table with the given lock timeout.
func NewRefundLockTable(timeout time.Duration) *RefundLockTable {
	return &RefundLockTable{entries: make(map[string]refundLock), timeout: timeout}
}

// TryAcquire claims key for a refund attempt, returning the opaque lock id
// to present to Release. Fails if key is already held by a lock younger
// than timeout; a stale entry is treated as abandoned and replaced.
func (t *RefundLockTable) TryAcquire(key string, now time.Time) (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if existing, held := t.entries[key]; held && now.Sub(existing.acquiredAt) < t.timeout {
		return "", false
	}

	id := uuid.NewString()
	t.entries[key] = refundLock{id: id, acquiredAt: now}
	return id, true
}

// Release drops key's lock if id still matches the current holder. A
// mismatched id means the lock already expired and was reacquired by
// another attempt, so this call must not clobber that newer lock.
func (t *RefundLockTable) Release(key, id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if existing, ok := t.entries[key]; ok && existing.id == id {
		delete(t.entries, key)
	}
}
