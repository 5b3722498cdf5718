package fcdict

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// persisted is the on-disk shape of a Dictionary: N plus the two
// pointer tables and two flat arrays. Pointer tables are
// always persisted as plain slices regardless of the in-memory
// PointerTable implementation; compaction is a read-time memory
// optimisation, not a wire format concern.
type persisted struct {
	Size        uint64   `msgpack:"n"`
	BucketSize  int      `msgpack:"b"`
	HeaderPtrs  []uint64 `msgpack:"hp"`
	BucketPtrs  []uint64 `msgpack:"bp"`
	Headers     []uint32 `msgpack:"h"`
	Buckets     []byte   `msgpack:"bk"`
}

// Marshal encodes a sealed Dictionary into a portable msgpack blob. The
// doc id sidecar is caller-owned and is not part of this blob; use
// MarshalDocIDs separately if needed.
func Marshal(d *Dictionary) ([]byte, error) {
	p := persisted{
		Size:       d.size,
		BucketSize: d.bucketSize,
		HeaderPtrs: pointersToSlice(d.headerPtrs),
		BucketPtrs: pointersToSlice(d.bucketPtrs),
		Headers:    d.headers,
		Buckets:    d.buckets,
	}
	return msgpack.Marshal(&p)
}

// Unmarshal decodes a blob produced by Marshal back into a sealed
// Dictionary. compact selects whether the pointer tables are rebuilt as
// EliasFanoPointerTable or PlainPointerTable.
func Unmarshal(blob []byte, compact bool) (*Dictionary, error) {
	var p persisted
	if err := msgpack.Unmarshal(blob, &p); err != nil {
		return nil, fmt.Errorf("fcdict: unmarshal: %w", err)
	}

	var hp, bp PointerTable
	if compact {
		var err error
		hp, err = NewEliasFanoPointerTable(p.HeaderPtrs)
		if err != nil {
			return nil, err
		}
		bp, err = NewEliasFanoPointerTable(p.BucketPtrs)
		if err != nil {
			return nil, err
		}
	} else {
		hp, bp = PlainPointerTable(p.HeaderPtrs), PlainPointerTable(p.BucketPtrs)
	}

	return &Dictionary{
		size:       p.Size,
		bucketSize: p.BucketSize,
		headers:    p.Headers,
		buckets:    p.Buckets,
		headerPtrs: hp,
		bucketPtrs: bp,
	}, nil
}

// MarshalDocIDs encodes the caller-owned doc id sidecar alongside the
// dictionary, for callers that want to persist both in one place.
func MarshalDocIDs(docIDs []uint64) ([]byte, error) {
	return msgpack.Marshal(docIDs)
}

// UnmarshalDocIDs decodes a doc id sidecar produced by MarshalDocIDs.
func UnmarshalDocIDs(blob []byte) ([]uint64, error) {
	var ids []uint64
	if err := msgpack.Unmarshal(blob, &ids); err != nil {
		return nil, fmt.Errorf("fcdict: unmarshal doc ids: %w", err)
	}
	return ids, nil
}

func pointersToSlice(p PointerTable) []uint64 {
	out := make([]uint64, p.Len())
	for i := range out {
		out[i] = p.At(i)
	}
	return out
}
