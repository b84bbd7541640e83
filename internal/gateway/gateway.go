// Package gateway implements the idempotent admin interface for quota
// import and off-chain name assignment, grounded on
// original_source/src/canisters/registrar/src/quota_import_store.rs and
// spec.md §4.6.
package gateway

import (
	"bytes"
	"compress/zlib"
	"crypto/sha256"
	"encoding/csv"
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/icnaming/icnaming/internal/icnerrors"
	"github.com/icnaming/icnaming/internal/principal"
	"github.com/icnaming/icnaming/internal/quota"
)

// ImportItem is one parsed line of the quota-import CSV.
type ImportItem struct {
	Owner principal.Principal
	Class quota.Class
	Diff  uint32
}

func parseClass(s string) (quota.Class, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "LenEq(") && strings.HasSuffix(s, ")") {
		n, err := strconv.Atoi(s[len("LenEq(") : len(s)-1])
		if err != nil {
			return quota.Class{}, icnerrors.InvalidRequest("bad quota class: " + s)
		}
		return quota.Class{Kind: quota.LenEq, N: uint8(n)}, nil
	}
	if strings.HasPrefix(s, "LenGte(") && strings.HasSuffix(s, ")") {
		n, err := strconv.Atoi(s[len("LenGte(") : len(s)-1])
		if err != nil {
			return quota.Class{}, icnerrors.InvalidRequest("bad quota class: " + s)
		}
		return quota.Class{Kind: quota.LenGte, N: uint8(n)}, nil
	}
	return quota.Class{}, icnerrors.InvalidRequest("bad quota class: " + s)
}

// Store tracks whitelisted and already-imported hashes, and previously
// assigned off-chain names, keeping the whole admin surface idempotent.
type Store struct {
	mu            sync.Mutex
	whitelist     map[string]struct{}
	imported      map[string]struct{}
	assignedNames map[string]struct{}
}

// NewStore returns a Store with whitelistHashes (lower-case hex SHA-256) as
// its compile-time acceptable set.
func NewStore(whitelistHashes []string) *Store {
	wl := make(map[string]struct{}, len(whitelistHashes))
	for _, h := range whitelistHashes {
		wl[strings.ToLower(h)] = struct{}{}
	}
	return &Store{
		whitelist:     wl,
		imported:      make(map[string]struct{}),
		assignedNames: make(map[string]struct{}),
	}
}

// VerifyAndParse decompresses zlibBytes, computes its SHA-256, rejects
// unless whitelisted and not already imported, and parses the CSV lines.
func (s *Store) VerifyAndParse(zlibBytes []byte) ([]ImportItem, string, error) {
	r, err := zlib.NewReader(bytes.NewReader(zlibBytes))
	if err != nil {
		return nil, "", icnerrors.InvalidRequest("not a valid zlib stream")
	}
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, "", icnerrors.InvalidRequest("failed to decompress payload")
	}

	sum := sha256.Sum256(raw)
	digest := hex.EncodeToString(sum[:])

	s.mu.Lock()
	_, alreadyImported := s.imported[digest]
	_, whitelisted := s.whitelist[digest]
	s.mu.Unlock()

	if alreadyImported {
		return nil, digest, icnerrors.AlreadyExists()
	}
	if !whitelisted {
		return nil, digest, icnerrors.InvalidRequest("file hash not in whitelist")
	}

	items, err := parseCSV(raw)
	if err != nil {
		return nil, digest, err
	}
	return items, digest, nil
}

func parseCSV(raw []byte) ([]ImportItem, error) {
	cr := csv.NewReader(bytes.NewReader(raw))
	cr.FieldsPerRecord = 3
	records, err := cr.ReadAll()
	if err != nil {
		return nil, icnerrors.InvalidRequest(fmt.Sprintf("malformed csv: %v", err))
	}
	items := make([]ImportItem, 0, len(records))
	for _, rec := range records {
		class, err := parseClass(rec[1])
		if err != nil {
			return nil, err
		}
		diff, err := strconv.ParseUint(strings.TrimSpace(rec[2]), 10, 32)
		if err != nil {
			return nil, icnerrors.InvalidRequest("bad diff: " + rec[2])
		}
		items = append(items, ImportItem{
			Owner: principal.Principal(strings.TrimSpace(rec[0])),
			Class: class,
			Diff:  uint32(diff),
		})
	}
	return items, nil
}

// Snapshot is the persisted shape of a Store: the imported-hash ledger and
// the assigned-name overlay. The compile-time whitelist is never persisted,
// since it is re-derived from config on every startup.
type Snapshot struct {
	Imported      []string
	AssignedNames []string
}

// Snapshot returns a deep copy of s's persisted state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := Snapshot{
		Imported:      make([]string, 0, len(s.imported)),
		AssignedNames: make([]string, 0, len(s.assignedNames)),
	}
	for h := range s.imported {
		snap.Imported = append(snap.Imported, h)
	}
	for n := range s.assignedNames {
		snap.AssignedNames = append(snap.AssignedNames, n)
	}
	return snap
}

// Restore replaces s's imported-hash ledger and assigned-name overlay with
// snap's contents, leaving the compile-time whitelist untouched.
func (s *Store) Restore(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.imported = make(map[string]struct{}, len(snap.Imported))
	for _, h := range snap.Imported {
		s.imported[h] = struct{}{}
	}
	s.assignedNames = make(map[string]struct{}, len(snap.AssignedNames))
	for _, n := range snap.AssignedNames {
		s.assignedNames[n] = struct{}{}
	}
}

// MarkImported records digest as permanently applied.
func (s *Store) MarkImported(digest string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.imported[digest] = struct{}{}
}

// AssignName records name as assigned, returning AlreadyAssigned if it was
// assigned before.
func (s *Store) AssignName(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.assignedNames[name]; ok {
		return icnerrors.AlreadyAssigned()
	}
	s.assignedNames[name] = struct{}{}
	return nil
}
