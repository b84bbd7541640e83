// Package leveldb adapts syndtr/goleveldb to the kvstore.DB contract. It is
// the second pluggable backend, used for the Gateway's durable
// already-imported hash ledger and assigned-name overlay, where the write
// volume is low and goleveldb's simpler single-file layout is enough.
package leveldb

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/errors"
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/icnaming/icnaming/internal/kvstore"
)

type Manager struct {
	mu   sync.Mutex
	root string
	dbs  map[string]*leveldb.DB
}

func NewManager(root string) *Manager {
	return &Manager{root: root, dbs: make(map[string]*leveldb.DB)}
}

func (m *Manager) Open(namespace string) (kvstore.DB, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if db, ok := m.dbs[namespace]; ok {
		return &DB{db: db}, nil
	}

	path := filepath.Join(m.root, namespace+".leveldb")
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("kvstore/leveldb: open %s: %w", namespace, err)
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
			lastErr = fmt.Errorf("kvstore/leveldb: close %s: %w", name, err)
		}
		delete(m.dbs, name)
	}
	return lastErr
}

type DB struct {
	db *leveldb.DB
}

func (d *DB) Get(_ context.Context, key []byte) ([]byte, error) {
	val, err := d.db.Get(key, nil)
	if err != nil {
		if err == errors.ErrNotFound {
			return nil, kvstore.ErrNotFound
		}
		return nil, err
	}
	return val, nil
}

func (d *DB) Put(_ context.Context, key, value []byte) error {
	return d.db.Put(key, value, nil)
}

func (d *DB) Delete(_ context.Context, key []byte) error {
	return d.db.Delete(key, nil)
}

func (d *DB) Batch(_ context.Context, ops []kvstore.BatchOp) error {
	batch := new(leveldb.Batch)
	for _, op := range ops {
		switch op.Type {
		case kvstore.BatchPut:
			batch.Put(op.Key, op.Value)
		case kvstore.BatchDelete:
			batch.Delete(op.Key)
		default:
			return fmt.Errorf("kvstore/leveldb: unknown batch op %d", op.Type)
		}
	}
	return d.db.Write(batch, nil)
}

func (d *DB) Iterator(_ context.Context, prefix []byte) (kvstore.Iterator, error) {
	it := d.db.NewIterator(util.BytesPrefix(prefix), nil)
	return &iterator{it: it}, nil
}

func (d *DB) Close() error {
	return d.db.Close()
}

type iterator struct {
	it    iteratorLike
	key   []byte
	value []byte
}

// iteratorLike narrows *leveldb/iterator.Iterator to what we use, so tests
// can substitute a fake without importing goleveldb.
type iteratorLike interface {
	Next() bool
	Key() []byte
	Value() []byte
	Error() error
	Release()
}

func (it *iterator) Next() bool {
	if !it.it.Next() {
		return false
	}
	it.key = append([]byte{}, it.it.Key()...)
	it.value = append([]byte{}, it.it.Value()...)
	return true
}

func (it *iterator) Key() []byte   { return it.key }
func (it *iterator) Value() []byte { return it.value }
func (it *iterator) Error() error  { return it.it.Error() }
func (it *iterator) Close() error  { it.it.Release(); return nil }
