// Package pebble adapts cockroachdb/pebble to the kvstore.DB contract.
package pebble

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/cockroachdb/pebble"

	"github.com/icnaming/icnaming/internal/kvstore"
)

// Manager opens one pebble.DB per namespace under a root directory.
type Manager struct {
	mu   sync.Mutex
	root string
	dbs  map[string]*pebble.DB
}

func NewManager(root string) *Manager {
	return &Manager{root: root, dbs: make(map[string]*pebble.DB)}
}

func (m *Manager) Open(namespace string) (kvstore.DB, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if db, ok := m.dbs[namespace]; ok {
		return &DB{db: db}, nil
	}

	path := filepath.Join(m.root, namespace+".pebble")
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("kvstore/pebble: open %s: %w", namespace, err)
	}
	m.dbs[namespace] = db
	return &DB{db: db}, nil
}

func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var lastErr error
	for name, db := range m.dbs {
		if err := db.Close(); err != nil {
			lastErr = fmt.Errorf("kvstore/pebble: close %s: %w", name, err)
		}
		delete(m.dbs, name)
	}
	return lastErr
}

// DB wraps a single pebble.DB.
type DB struct {
	db *pebble.DB
}

func (d *DB) Get(_ context.Context, key []byte) ([]byte, error) {
	val, closer, err := d.db.Get(key)
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, kvstore.ErrNotFound
		}
		return nil, err
	}
	defer closer.Close()
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (d *DB) Put(_ context.Context, key, value []byte) error {
	return d.db.Set(key, value, pebble.Sync)
}

func (d *DB) Delete(_ context.Context, key []byte) error {
	return d.db.Delete(key, pebble.Sync)
}

func (d *DB) Batch(_ context.Context, ops []kvstore.BatchOp) error {
	batch := d.db.NewBatch()
	defer batch.Close()

	for _, op := range ops {
		switch op.Type {
		case kvstore.BatchPut:
			if err := batch.Set(op.Key, op.Value, nil); err != nil {
				return err
			}
		case kvstore.BatchDelete:
			if err := batch.Delete(op.Key, nil); err != nil {
				return err
			}
		default:
			return fmt.Errorf("kvstore/pebble: unknown batch op %d", op.Type)
		}
	}
	return batch.Commit(pebble.Sync)
}

func (d *DB) Iterator(_ context.Context, prefix []byte) (kvstore.Iterator, error) {
	upper := append(append([]byte{}, prefix...), 0xff)
	iter, err := d.db.NewIter(&pebble.IterOptions{LowerBound: prefix, UpperBound: upper})
	if err != nil {
		return nil, err
	}
	return &iterator{iter: iter, prefix: prefix}, nil
}

func (d *DB) Close() error {
	return d.db.Close()
}

type iterator struct {
	iter    *pebble.Iterator
	prefix  []byte
	started bool
	key     []byte
	value   []byte
}

func (it *iterator) Next() bool {
	var valid bool
	if !it.started {
		it.started = true
		valid = it.iter.First()
	} else {
		valid = it.iter.Next()
	}
	if !valid || !it.iter.Valid() {
		return false
	}
	if !bytes.HasPrefix(it.iter.Key(), it.prefix) {
		return false
	}
	it.key = append([]byte{}, it.iter.Key()...)
	it.value = append([]byte{}, it.iter.Value()...)
	return true
}

func (it *iterator) Key() []byte   { return it.key }
func (it *iterator) Value() []byte { return it.value }
func (it *iterator) Error() error  { return it.iter.Error() }
func (it *iterator) Close() error  { return it.iter.Close() }
