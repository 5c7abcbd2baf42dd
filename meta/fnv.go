// Package meta owns the reflection graph: declarations, types, and the
// arenas that hold them for the lifetime of a Unit.
package meta

import "hash/fnv"

// FNV1a returns the 64-bit FNV-1a hash of s. Declaration and type hashes
// (and a Unit's id) are derived from this so that the same textual
// identifier always yields the same hash, across processes and across runs.
func FNV1a(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return h.Sum64()
}

// Mix64 folds two already-hashed values into one, for an id derived from
// more than one already-hashed component. NewUnit does not use it: a Unit's
// id is FNV1a over the concatenated name and version.
func Mix64(a, b uint64) uint64 {
	h := fnv.New64a()
	_, _ = h.Write(u64Bytes(a))
	_, _ = h.Write(u64Bytes(b))
	return h.Sum64()
}

func u64Bytes(u uint64) []byte {
	return []byte{
		byte(u >> 56), byte(u >> 48), byte(u >> 40), byte(u >> 32),
		byte(u >> 24), byte(u >> 16), byte(u >> 8), byte(u),
	}
}
