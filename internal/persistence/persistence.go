// Package persistence loads and saves each component store's CBOR
// snapshot blob through a kvstore.DB. Each component gets its own
// namespaced DB and writes a single key holding its entire serialized
// state.
package persistence

import (
	"context"
	"errors"

	"github.com/icnaming/icnaming/internal/kvstore"
)

// snapshotKey is the sole key written in every component's namespaced DB.
var snapshotKey = []byte("snapshot")

// Load decodes the snapshot stored under db's snapshotKey into out. It
// returns false, nil if no snapshot has been written yet (a cold start).
func Load[T any](ctx context.Context, db kvstore.DB, out *T) (bool, error) {
	data, err := db.Get(ctx, snapshotKey)
	if err != nil {
		if errors.Is(err, kvstore.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	if err := kvstore.DecodeSnapshot(data, out); err != nil {
		return false, err
	}
	return true, nil
}

// Save encodes v and writes it under db's snapshotKey, overwriting any
// prior snapshot.
func Save[T any](ctx context.Context, db kvstore.DB, v T) error {
	data, err := kvstore.EncodeSnapshot(v)
	if err != nil {
		return err
	}
	return db.Put(ctx, snapshotKey, data)
}
