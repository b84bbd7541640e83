// Package locker implements short-lived per-name exclusivity tokens held
// across the suspension points of a Registry/Ledger call, grounded on
// original_source/src/canisters/registrar/src/name_locker.rs. Locks are
// in-memory only: they vanish on restart, which is acceptable because the
// only long-held lock site re-checks availability post-lock (spec §4.5).
package locker

import (
	"sync"

	"golang.org/x/sync/singleflight"
)

// Locker holds the set of names currently under exclusive processing.
type Locker struct {
	mu       sync.Mutex
	held     map[string]struct{}
	inflight singleflight.Group
}

// New returns an empty Locker.
func New() *Locker {
	return &Locker{held: make(map[string]struct{})}
}

// TryLock acquires the lock for name, reporting false on conflict.
// Concurrent TryLock calls for the same name are collapsed through
// singleflight so only one goroutine performs the map check at a time.
func (l *Locker) TryLock(name string) bool {
	v, _, _ := l.inflight.Do(name, func() (any, error) {
		l.mu.Lock()
		defer l.mu.Unlock()
		if _, busy := l.held[name]; busy {
			return false, nil
		}
		l.held[name] = struct{}{}
		return true, nil
	})
	// Forget immediately so the next call for this name re-runs the check
	// rather than replaying a stale cached decision.
	l.inflight.Forget(name)
	return v.(bool)
}

// Unlock releases the lock for name. Unlocking a name that isn't held is a
// no-op.
func (l *Locker) Unlock(name string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.held, name)
}

// IsLocked reports whether name is currently held.
func (l *Locker) IsLocked(name string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.held[name]
	return ok
}
