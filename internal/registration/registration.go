// Package registration implements the authoritative record of a name's
// ownership and expiry, grounded on
// original_source/src/canisters/registrar/src/models.rs.
package registration

import (
	"sync"
	"time"

	"github.com/icnaming/icnaming/internal/icnerrors"
	"github.com/icnaming/icnaming/internal/principal"
)

// YearMillis is one year expressed in milliseconds, the unit expires_at -
// created_at is measured in per spec.md §3 ("an integer multiple of one
// year measured in ms, not ns").
const YearMillis int64 = 365 * 24 * 60 * 60 * 1000

// Registration is {owner, name, expires_at, created_at}, both timestamps in
// nanoseconds since epoch.
type Registration struct {
	Owner     principal.Principal
	Name      string
	ExpiresAt int64
	CreatedAt int64
	// TokenIndex supports get_details ordering; NFT card rendering that
	// consumed it elsewhere is out of scope (a named Non-goal).
	TokenIndex uint64
}

// IsExpired reports whether now (ns) is at or past ExpiresAt.
func (r Registration) IsExpired(nowNanos int64) bool {
	return nowNanos >= r.ExpiresAt
}

// Store is name -> Registration, with a token-index for stable enumeration.
type Store struct {
	mu        sync.Mutex
	byName    map[string]Registration
	nextToken uint64
}

func NewStore() *Store {
	return &Store{byName: make(map[string]Registration)}
}

// Get returns the registration for name, including expired ones (retained
// for auditability per spec.md §3).
func (s *Store) Get(name string) (Registration, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.byName[name]
	return r, ok
}

// IsAvailable reports whether name has no live (non-expired) registration.
func (s *Store) IsAvailable(name string, nowNanos int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.byName[name]
	if !ok {
		return true
	}
	return r.IsExpired(nowNanos)
}

// Insert creates or overwrites the registration for name with
// expires_at = now + years*YearMillis*1e6 (converted to ns), enforcing at
// most one Registration per name at any time.
func (s *Store) Insert(owner principal.Principal, name string, years uint32, nowNanos int64) Registration {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextToken++
	r := Registration{
		Owner:      owner,
		Name:       name,
		CreatedAt:  nowNanos,
		ExpiresAt:  nowNanos + int64(years)*YearMillis*int64(time.Millisecond),
		TokenIndex: s.nextToken,
	}
	s.byName[name] = r
	return r
}

// SetOwner updates the owner of an existing registration (transfer path).
func (s *Store) SetOwner(name string, newOwner principal.Principal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.byName[name]
	if !ok {
		return icnerrors.RegistrationNotFound()
	}
	r.Owner = newOwner
	s.byName[name] = r
	return nil
}

// Renew extends expires_at by years*YearMillis (ms -> ns); expiry only ever
// increases, preserving the monotonicity testable property of spec.md §8.
func (s *Store) Renew(name string, years uint32) (Registration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.byName[name]
	if !ok {
		return Registration{}, icnerrors.RegistrationNotFound()
	}
	r.ExpiresAt += int64(years) * YearMillis * int64(time.Millisecond)
	s.byName[name] = r
	return r, nil
}

// Remove deletes the registration for name (reclaim-after-expiry path).
func (s *Store) Remove(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byName, name)
}

// Snapshot is the CBOR-serializable form of the store's state.
type Snapshot struct {
	Registrations []Registration
	NextToken     uint64
}

// Snapshot captures the store's full state for persistence.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Registration, 0, len(s.byName))
	for _, r := range s.byName {
		out = append(out, r)
	}
	return Snapshot{Registrations: out, NextToken: s.nextToken}
}

// Restore replaces the store's state with snap's, as at process startup.
func (s *Store) Restore(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byName = make(map[string]Registration, len(snap.Registrations))
	for _, r := range snap.Registrations {
		s.byName[r.Name] = r
	}
	s.nextToken = snap.NextToken
}
