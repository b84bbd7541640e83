// Package registry implements the authoritative ownership graph: name ->
// (owner, operators, resolver, ttl), grounded on
// original_source/src/canisters/registrar/src/ (the registrar's view of
// registry.rs as described in spec.md §4.2) and persisted through
// internal/kvstore the way the teacher persists ledger state through
// internal/storage.
package registry

import (
	"sort"
	"sync"

	"github.com/icnaming/icnaming/internal/icnerrors"
	"github.com/icnaming/icnaming/internal/principal"
)

// MaxOperators is K in spec.md §3: SetApproval keeps |operators| < K.
const MaxOperators = 10

// DefaultTTL is the TTL assigned on every ownership-resetting write.
const DefaultTTL = 600

// Entry is a RegistryEntry: name -> (owner, operators, resolver, ttl).
type Entry struct {
	Name      string
	Owner     principal.Principal
	Operators map[principal.Principal]struct{}
	Resolver  principal.Principal
	TTL       uint64
}

func (e Entry) clone() Entry {
	ops := make(map[principal.Principal]struct{}, len(e.Operators))
	for p := range e.Operators {
		ops[p] = struct{}{}
	}
	return Entry{Name: e.Name, Owner: e.Owner, Operators: ops, Resolver: e.Resolver, TTL: e.TTL}
}

// OperatorList returns the operator principals; their order is not defined.
func (e Entry) OperatorList() []principal.Principal {
	out := make([]principal.Principal, 0, len(e.Operators))
	for p := range e.Operators {
		out = append(out, p)
	}
	return out
}

// EnsureCreator is the narrow interface the registry uses to propagate a
// newly-created entry to the resolver store (set_subdomain_owner ->
// resolver.ensure_created).
type EnsureCreator interface {
	EnsureCreated(name string) error
}

// Store is the in-memory authoritative registry, one entry per name.
type Store struct {
	mu       sync.Mutex
	entries  map[string]Entry
	resolver EnsureCreator
}

// NewStore returns an empty Store. resolver may be nil in tests that do not
// exercise the ensure_created cascade.
func NewStore(resolver EnsureCreator) *Store {
	return &Store{entries: make(map[string]Entry), resolver: resolver}
}

// SetTopName is the one-time initialization creating the entry for the top
// label with registrar as owner.
func (s *Store) SetTopName(topLabel string, registrar principal.Principal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.entries[topLabel]; exists {
		return icnerrors.TopNameAlreadyExists()
	}
	s.entries[topLabel] = Entry{
		Name:      topLabel,
		Owner:     registrar,
		Operators: make(map[principal.Principal]struct{}),
		Resolver:  registrar,
		TTL:       DefaultTTL,
	}
	return nil
}

// SetSubdomainOwner adds or overwrites "label.parent", permitted only when
// caller owns parent. On success, invokes resolver.ensure_created.
func (s *Store) SetSubdomainOwner(label, parent string, caller, subOwner principal.Principal, ttl uint64, resolver principal.Principal) (Entry, error) {
	s.mu.Lock()
	parentEntry, ok := s.entries[parent]
	if !ok {
		s.mu.Unlock()
		return Entry{}, icnerrors.RegistryNotFoundError(parent)
	}
	if parentEntry.Owner != caller {
		s.mu.Unlock()
		return Entry{}, icnerrors.PermissionDenied()
	}
	name := label + "." + parent
	entry := Entry{
		Name:      name,
		Owner:     subOwner,
		Operators: make(map[principal.Principal]struct{}),
		Resolver:  resolver,
		TTL:       ttl,
	}
	s.entries[name] = entry
	s.mu.Unlock()

	if s.resolver != nil {
		if err := s.resolver.EnsureCreated(name); err != nil {
			return Entry{}, err
		}
	}
	return entry.clone(), nil
}

func (s *Store) requireEntry(name string) (Entry, error) {
	e, ok := s.entries[name]
	if !ok {
		return Entry{}, icnerrors.RegistryNotFoundError(name)
	}
	return e, nil
}

func isOwnerOrOperator(e Entry, caller principal.Principal) bool {
	if e.Owner == caller {
		return true
	}
	_, ok := e.Operators[caller]
	return ok
}

// SetRecord updates ttl and resolver; caller must be owner or an operator.
func (s *Store) SetRecord(caller principal.Principal, name string, ttl uint64, resolver principal.Principal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, err := s.requireEntry(name)
	if err != nil {
		return err
	}
	if !isOwnerOrOperator(e, caller) {
		return icnerrors.PermissionDenied()
	}
	e.TTL = ttl
	e.Resolver = resolver
	s.entries[name] = e
	return nil
}

// SetApproval adds operator to name's operator set. caller must be owner.
func (s *Store) SetApproval(caller principal.Principal, name string, operator principal.Principal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, err := s.requireEntry(name)
	if err != nil {
		return err
	}
	if e.Owner != caller {
		return icnerrors.PermissionDenied()
	}
	if operator == e.Owner {
		return icnerrors.OperatorShouldNotBeTheSameToOwner()
	}
	if _, already := e.Operators[operator]; !already && len(e.Operators)+1 >= MaxOperators {
		return icnerrors.OperatorCountExceeded(MaxOperators)
	}
	e.Operators[operator] = struct{}{}
	s.entries[name] = e
	return nil
}

// RemoveApproval removes operator from name's operator set.
func (s *Store) RemoveApproval(caller principal.Principal, name string, operator principal.Principal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, err := s.requireEntry(name)
	if err != nil {
		return err
	}
	if e.Owner != caller {
		return icnerrors.PermissionDenied()
	}
	delete(e.Operators, operator)
	s.entries[name] = e
	return nil
}

// resetOwnership resets operators, resolver, and ttl to defaults for an
// ownership-changing write, per spec.md §4.2's state machine.
func (s *Store) resetOwnership(name string, newOwner principal.Principal, resolver principal.Principal) Entry {
	e := Entry{
		Name:      name,
		Owner:     newOwner,
		Operators: make(map[principal.Principal]struct{}),
		Resolver:  resolver,
		TTL:       DefaultTTL,
	}
	s.entries[name] = e
	return e
}

// SetOwner changes ownership; caller must be the current owner.
func (s *Store) SetOwner(caller principal.Principal, name string, newOwner principal.Principal, resolver principal.Principal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, err := s.requireEntry(name)
	if err != nil {
		return err
	}
	if e.Owner != caller {
		return icnerrors.PermissionDenied()
	}
	s.resetOwnership(name, newOwner, resolver)
	return nil
}

// ReclaimName force-sets ownership on behalf of the registrar, recovering
// from a lost entry; caller must be the registrar (enforced by the
// orchestrator, not here, since the registrar is this store's sole admin
// caller for this op).
func (s *Store) ReclaimName(name string, newOwner principal.Principal, resolver principal.Principal) Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resetOwnership(name, newOwner, resolver).clone()
}

// Transfer changes ownership from caller (must be current owner) to
// newOwner, resetting operators/resolver/ttl.
func (s *Store) Transfer(name string, caller principal.Principal, newOwner principal.Principal, resolver principal.Principal) error {
	return s.SetOwner(caller, name, newOwner, resolver)
}

// GetOwner, GetResolver, GetTTL, GetUsers, GetDetails are read accessors.

func (s *Store) GetOwner(name string) (principal.Principal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, err := s.requireEntry(name)
	if err != nil {
		return "", err
	}
	return e.Owner, nil
}

func (s *Store) GetResolver(name string) (principal.Principal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, err := s.requireEntry(name)
	if err != nil {
		return "", err
	}
	return e.Resolver, nil
}

func (s *Store) GetTTL(name string) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, err := s.requireEntry(name)
	if err != nil {
		return 0, err
	}
	return e.TTL, nil
}

func (s *Store) GetUsers(name string) ([]principal.Principal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, err := s.requireEntry(name)
	if err != nil {
		return nil, err
	}
	return e.OperatorList(), nil
}

func (s *Store) GetDetails(name string) (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, err := s.requireEntry(name)
	if err != nil {
		return Entry{}, err
	}
	return e.clone(), nil
}

// GetControlledNames returns the page of names owner controls, ordered by
// name, within [offset, offset+limit).
func (s *Store) GetControlledNames(owner principal.Principal, offset, limit int) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var all []string
	for name, e := range s.entries {
		if e.Owner == owner {
			all = append(all, name)
		}
	}
	sort.Strings(all)
	if offset >= len(all) {
		return nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end]
}

// Snapshot is the CBOR-serializable form of the registry's state, one blob
// per component per spec.md §6.
type Snapshot struct {
	Entries []SnapshotEntry
}

// SnapshotEntry flattens Entry's operator set into a slice for encoding.
type SnapshotEntry struct {
	Name      string
	Owner     principal.Principal
	Operators []principal.Principal
	Resolver  principal.Principal
	TTL       uint64
}

// Snapshot captures the store's full state for persistence.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]SnapshotEntry, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, SnapshotEntry{
			Name:      e.Name,
			Owner:     e.Owner,
			Operators: e.OperatorList(),
			Resolver:  e.Resolver,
			TTL:       e.TTL,
		})
	}
	return Snapshot{Entries: out}
}

// Restore replaces the store's state with snap's, as at process startup.
func (s *Store) Restore(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]Entry, len(snap.Entries))
	for _, se := range snap.Entries {
		ops := make(map[principal.Principal]struct{}, len(se.Operators))
		for _, p := range se.Operators {
			ops[p] = struct{}{}
		}
		s.entries[se.Name] = Entry{
			Name:      se.Name,
			Owner:     se.Owner,
			Operators: ops,
			Resolver:  se.Resolver,
			TTL:       se.TTL,
		}
	}
}
