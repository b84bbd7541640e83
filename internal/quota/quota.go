// Package quota implements the per-principal quota ledger: counters keyed
// by quota class, pruned to absent at zero.
package quota

import (
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/icnaming/icnaming/internal/icnerrors"
	"github.com/icnaming/icnaming/internal/principal"
)

// ClassKind distinguishes the two quota-class shapes.
type ClassKind int

const (
	LenEq ClassKind = iota
	LenGte
)

// Class is the tagged union {LenEq(u8), LenGte(u8)}.
type Class struct {
	Kind ClassKind
	N    uint8
}

func (c Class) String() string {
	if c.Kind == LenEq {
		return fmt.Sprintf("LenEq(%d)", c.N)
	}
	return fmt.Sprintf("LenGte(%d)", c.N)
}

// Matches reports whether a first-level name of the given first-label
// length satisfies this quota class.
func (c Class) Matches(firstLabelLen int) bool {
	if c.Kind == LenEq {
		return firstLabelLen == int(c.N)
	}
	return firstLabelLen >= int(c.N)
}

// Ledger is Map<Principal, Map<Class, u32>>, mutated only by the registrar
// and never under an await per the concurrency model.
type Ledger struct {
	mu      sync.Mutex
	entries map[principal.Principal]map[Class]uint32
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{entries: make(map[principal.Principal]map[Class]uint32)}
}

// Get returns the current count for (p, class); 0 if absent.
func (l *Ledger) Get(p principal.Principal, class Class) uint32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.entries[p][class]
}

// Add increases the count for (p, class) by diff.
func (l *Ledger) Add(p principal.Principal, class Class, diff uint32) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.addLocked(p, class, diff)
}

func (l *Ledger) addLocked(p principal.Principal, class Class, diff uint32) {
	m, ok := l.entries[p]
	if !ok {
		m = make(map[Class]uint32)
		l.entries[p] = m
	}
	m[class] += diff
}

// Sub decreases the count for (p, class) by diff, failing with
// InsufficientQuota if that would underflow. Entries reaching 0 are pruned.
func (l *Ledger) Sub(p principal.Principal, class Class, diff uint32) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.subLocked(p, class, diff)
}

func (l *Ledger) subLocked(p principal.Principal, class Class, diff uint32) error {
	m, ok := l.entries[p]
	if !ok || m[class] < diff {
		return icnerrors.InsufficientQuota()
	}
	m[class] -= diff
	if m[class] == 0 {
		delete(m, class)
	}
	if len(m) == 0 {
		delete(l.entries, p)
	}
	return nil
}

// Transfer atomically decrements from and increments to for the same class.
func (l *Ledger) Transfer(from, to principal.Principal, class Class, diff uint32) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.subLocked(from, class, diff); err != nil {
		return err
	}
	l.addLocked(to, class, diff)
	return nil
}

// Leg is one transfer in a batch_transfer_quota call.
type Leg struct {
	From  principal.Principal
	To    principal.Principal
	Class Class
	Diff  uint32
}

type ledgerKey struct {
	p principal.Principal
	c Class
}

// validatePreconditions fans out a read-only balance check per leg before
// the batch takes its write lock, so an obviously-doomed batch (one leg
// with insufficient balance) fails fast without touching the ledger.
func (l *Ledger) validatePreconditions(legs []Leg) error {
	l.mu.Lock()
	snapshot := make(map[ledgerKey]uint32, len(legs))
	for _, leg := range legs {
		snapshot[ledgerKey{leg.From, leg.Class}] = l.entries[leg.From][leg.Class]
	}
	l.mu.Unlock()

	var g errgroup.Group
	for _, leg := range legs {
		leg := leg
		g.Go(func() error {
			if snapshot[ledgerKey{leg.From, leg.Class}] < leg.Diff {
				return icnerrors.InsufficientQuota()
			}
			return nil
		})
	}
	return g.Wait()
}

// BatchTransfer applies every leg atomically: all-or-nothing. Preconditions
// are validated concurrently first; a batch that passes validation can
// still fail during apply if legs interact (e.g. two legs draining the same
// balance), in which case the partial effects are rolled back.
func (l *Ledger) BatchTransfer(legs []Leg) error {
	if err := l.validatePreconditions(legs); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	// Snapshot affected balances so a mid-batch failure can be rolled back
	// without leaving partial effects, since the Go map mutations below are
	// not otherwise reversible in place.
	snapshot := make(map[ledgerKey]uint32)
	snap := func(p principal.Principal, c Class) {
		k := ledgerKey{p, c}
		if _, ok := snapshot[k]; !ok {
			snapshot[k] = l.entries[p][c]
		}
	}
	for _, leg := range legs {
		snap(leg.From, leg.Class)
		snap(leg.To, leg.Class)
	}

	for _, leg := range legs {
		if err := l.subLocked(leg.From, leg.Class, leg.Diff); err != nil {
			l.rollback(snapshot)
			return err
		}
		l.addLocked(leg.To, leg.Class, leg.Diff)
	}
	return nil
}

// Snapshot is the CBOR-serializable form of the ledger's state.
type Snapshot struct {
	Entries []SnapshotEntry
}

// SnapshotEntry is one (principal, class) -> count pair.
type SnapshotEntry struct {
	Owner principal.Principal
	Class Class
	Count uint32
}

// Snapshot captures the ledger's full state for persistence.
func (l *Ledger) Snapshot() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []SnapshotEntry
	for p, classes := range l.entries {
		for c, n := range classes {
			out = append(out, SnapshotEntry{Owner: p, Class: c, Count: n})
		}
	}
	return Snapshot{Entries: out}
}

// Restore replaces the ledger's state with snap's, as at process startup.
func (l *Ledger) Restore(snap Snapshot) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = make(map[principal.Principal]map[Class]uint32)
	for _, e := range snap.Entries {
		m, ok := l.entries[e.Owner]
		if !ok {
			m = make(map[Class]uint32)
			l.entries[e.Owner] = m
		}
		m[e.Class] = e.Count
	}
}

func (l *Ledger) rollback(snapshot map[ledgerKey]uint32) {
	for k, v := range snapshot {
		if v == 0 {
			if m, ok := l.entries[k.p]; ok {
				delete(m, k.c)
				if len(m) == 0 {
					delete(l.entries, k.p)
				}
			}
			continue
		}
		m, ok := l.entries[k.p]
		if !ok {
			m = make(map[Class]uint32)
			l.entries[k.p] = m
		}
		m[k.c] = v
	}
}
