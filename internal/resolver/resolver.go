// Package resolver implements the per-name typed key/value store and its
// reverse index, grounded on spec.md §4.3 and
// original_source/src/canisters/resolver/src/*, using a bounded read-through
// cache (github.com/hashicorp/golang-lru/v2) in front of GetRecordValue the
// way a hot read path is cached elsewhere in the retrieved pack.
package resolver

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/icnaming/icnaming/internal/icnerrors"
	"github.com/icnaming/icnaming/internal/principal"
)

const (
	MaxItems  = 30
	MaxKeyLen = 64
	MaxValLen = 512
)

// PatchOp distinguishes import_record_value's batch semantics.
type PatchOp int

const (
	Upsert PatchOp = iota
	InsertOrIgnore
	Remove
)

// PatchItem is one entry of an import_record_value batch.
type PatchItem struct {
	Key   string
	Value string
	Op    PatchOp
}

// Store holds every name's resolver kv plus the principal<->name reverse
// index.
type Store struct {
	mu      sync.Mutex
	records map[string]map[string]string
	forward map[principal.Principal]string // principal -> primary name
	reverse map[string]principal.Principal // name -> primary owner principal
	cache   *lru.Cache[string, map[string]string]
}

// NewStore returns an empty Store with a bounded read-through cache of the
// given size (0 disables caching).
func NewStore(cacheSize int) *Store {
	s := &Store{
		records: make(map[string]map[string]string),
		forward: make(map[principal.Principal]string),
		reverse: make(map[string]principal.Principal),
	}
	if cacheSize > 0 {
		c, err := lru.New[string, map[string]string](cacheSize)
		if err == nil {
			s.cache = c
		}
	}
	return s
}

func (s *Store) invalidate(name string) {
	if s.cache != nil {
		s.cache.Remove(name)
	}
}

// EnsureCreated is idempotent; creates an empty kv map for name if absent.
func (s *Store) EnsureCreated(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[name]; !ok {
		s.records[name] = make(map[string]string)
	}
	return nil
}

func (s *Store) applyPatchLocked(name string, patch map[string]PatchItem) error {
	kv, ok := s.records[name]
	if !ok {
		kv = make(map[string]string)
		s.records[name] = kv
	}
	for key, item := range patch {
		switch item.Op {
		case Remove:
			delete(kv, key)
		case InsertOrIgnore:
			if _, exists := kv[key]; exists {
				continue
			}
			fallthrough
		case Upsert:
			if item.Value == "" {
				delete(kv, key)
				continue
			}
			kv[key] = item.Value
		}
	}
	if len(kv) > MaxItems {
		return icnerrors.TooManyResolverKeys(MaxItems)
	}
	for k, v := range kv {
		if len(k) > MaxKeyLen {
			return icnerrors.KeyMaxLengthError(MaxKeyLen)
		}
		if len(v) > MaxValLen {
			return icnerrors.ValueMaxLengthError(MaxValLen)
		}
	}
	return nil
}

// SetRecordValue merges patch into name's kv; empty value deletes that key.
// The primary-name key is handled separately via SetPrimaryName since it
// never lives in kv.
func (s *Store) SetRecordValue(name string, patch map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make(map[string]PatchItem, len(patch))
	for k, v := range patch {
		items[k] = PatchItem{Key: k, Value: v, Op: Upsert}
	}
	for key, item := range items {
		if key == KeyReverseResolutionPrincipal {
			continue
		}
		if item.Value != "" {
			normalized, err := normalizeAndValidate(key, item.Value)
			if err != nil {
				return err
			}
			item.Value = normalized
			items[key] = item
		}
	}
	if err := s.applyPatchLocked(name, items); err != nil {
		return err
	}
	s.invalidate(name)
	return nil
}

// ImportRecordValue applies a batch with explicit per-item operations.
func (s *Store) ImportRecordValue(name string, items []PatchItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	patch := make(map[string]PatchItem, len(items))
	for _, item := range items {
		if item.Op != Remove && item.Value != "" && item.Key != KeyReverseResolutionPrincipal {
			normalized, err := normalizeAndValidate(item.Key, item.Value)
			if err != nil {
				return err
			}
			item.Value = normalized
		}
		patch[item.Key] = item
	}
	if err := s.applyPatchLocked(name, patch); err != nil {
		return err
	}
	s.invalidate(name)
	return nil
}

// GetRecordValue returns the stored kv plus a synthetic entry for the
// primary-name key when the reverse index binds to name.
func (s *Store) GetRecordValue(name string) (map[string]string, error) {
	if s.cache != nil {
		if v, ok := s.cache.Get(name); ok {
			return cloneKV(v), nil
		}
	}

	s.mu.Lock()
	kv, ok := s.records[name]
	if !ok {
		s.mu.Unlock()
		return nil, icnerrors.ResolverNotFoundError(name)
	}
	out := cloneKV(kv)
	if owner, bound := s.reverse[name]; bound {
		out[KeyReverseResolutionPrincipal] = string(owner)
	}
	s.mu.Unlock()

	if s.cache != nil {
		s.cache.Add(name, cloneKV(out))
	}
	return out, nil
}

func cloneKV(kv map[string]string) map[string]string {
	out := make(map[string]string, len(kv))
	for k, v := range kv {
		out[k] = v
	}
	return out
}

// RemoveResolvers removes resolver records for names and purges any
// reverse-index entries pointing at them. Per spec.md's open-question
// decision, this does not touch the Registry entry — only the resolver
// record.
func (s *Store) RemoveResolvers(names []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, name := range names {
		delete(s.records, name)
		if owner, bound := s.reverse[name]; bound {
			delete(s.reverse, name)
			if s.forward[owner] == name {
				delete(s.forward, owner)
			}
		}
		s.invalidate(name)
	}
}

// SetPrimaryName binds owner's primary name to name, removing any prior
// binding for either side of the bijection. caller must be the registry-
// reported owner of name, unless actingAsRegistrar is true (the registrar
// may set the primary name on behalf of the owner during registration).
func (s *Store) SetPrimaryName(caller, registryOwner principal.Principal, name string, actingAsRegistrar bool) error {
	if !actingAsRegistrar && caller != registryOwner {
		return icnerrors.PermissionDenied()
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if prevName, bound := s.forward[registryOwner]; bound {
		delete(s.reverse, prevName)
		s.invalidate(prevName)
	}
	if prevOwner, bound := s.reverse[name]; bound {
		delete(s.forward, prevOwner)
	}
	s.forward[registryOwner] = name
	s.reverse[name] = registryOwner
	s.invalidate(name)
	return nil
}

// Snapshot is the CBOR-serializable form of the resolver's state.
type Snapshot struct {
	Records []SnapshotRecord
	Primary []SnapshotPrimary
}

// SnapshotRecord is one name's kv set flattened to a slice.
type SnapshotRecord struct {
	Name  string
	Items map[string]string
}

// SnapshotPrimary is one half of the principal<->name primary-name bijection.
type SnapshotPrimary struct {
	Owner principal.Principal
	Name  string
}

// Snapshot captures the store's full state for persistence. The read-through
// cache is not persisted; it rebuilds itself lazily from records.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := Snapshot{
		Records: make([]SnapshotRecord, 0, len(s.records)),
		Primary: make([]SnapshotPrimary, 0, len(s.forward)),
	}
	for name, kv := range s.records {
		snap.Records = append(snap.Records, SnapshotRecord{Name: name, Items: cloneKV(kv)})
	}
	for owner, name := range s.forward {
		snap.Primary = append(snap.Primary, SnapshotPrimary{Owner: owner, Name: name})
	}
	return snap
}

// Restore replaces the store's state with snap's, as at process startup.
func (s *Store) Restore(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = make(map[string]map[string]string, len(snap.Records))
	for _, r := range snap.Records {
		s.records[r.Name] = cloneKV(r.Items)
	}
	s.forward = make(map[principal.Principal]string, len(snap.Primary))
	s.reverse = make(map[string]principal.Principal, len(snap.Primary))
	for _, p := range snap.Primary {
		s.forward[p.Owner] = p.Name
		s.reverse[p.Name] = p.Owner
	}
	if s.cache != nil {
		s.cache.Purge()
	}
}

// RemovePrimaryName clears the binding from both sides.
func (s *Store) RemovePrimaryName(owner principal.Principal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if name, bound := s.forward[owner]; bound {
		delete(s.forward, owner)
		delete(s.reverse, name)
		s.invalidate(name)
	}
}

// ReverseResolvePrincipal is the forward lookup p -> primary name.
func (s *Store) ReverseResolvePrincipal(p principal.Principal) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	name, ok := s.forward[p]
	return name, ok
}
