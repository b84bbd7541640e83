package kvstore

import (
	"github.com/ugorji/go/codec"
)

// snapshotHandle is the shared CBOR handle used to encode/decode every
// persisted sub-store blob. CBOR is self-describing and tolerates the
// addition of optional trailing fields without breaking old readers,
// matching §6's encoding requirement; it replaces the original
// implementation's Candid encoding.
var snapshotHandle = func() *codec.CborHandle {
	h := &codec.CborHandle{}
	h.Canonical = true
	return h
}()

// EncodeSnapshot serializes v (a versioned tuple of component sub-store
// state) into a self-describing blob suitable for persisting across an
// upgrade/restart boundary.
func EncodeSnapshot(v any) ([]byte, error) {
	var buf []byte
	enc := codec.NewEncoderBytes(&buf, snapshotHandle)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf, nil
}

// DecodeSnapshot deserializes a blob produced by EncodeSnapshot into v.
// Round-trips: DecodeSnapshot(EncodeSnapshot(x)) reproduces x's observable
// state, including when x carries fields a prior version's reader didn't
// know about.
func DecodeSnapshot(data []byte, v any) error {
	dec := codec.NewDecoderBytes(data, snapshotHandle)
	return dec.Decode(v)
}
