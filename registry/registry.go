package registry

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// Registry is the process-wide runtime meta index: one ordered slice per
// Kind (spec.md §4.5's per-family "register/has/find/at-by-index" quartet,
// grounded on MetaRegistry.cpp's per-family vectors) plus a single shared
// hash map so any record can be found by hash or name regardless of which
// family it belongs to.
//
// The zero value is not usable; construct with New. Writes are expected
// during a single-threaded init phase only; Seal() ends that phase and
// every subsequent Register call fails instead of racing with readers —
// the teacher's schema.Introspect three-tier cache collapsed to two tiers
// here: precompiled registration, then lock-free reads.
type Registry struct {
	mu      sync.Mutex
	sealed  atomic.Bool
	byKind  map[Kind][]Meta
	byHash  map[uint64]entry
	byName  map[string]entry
}

type entry struct {
	kind Kind
	meta Meta
}

// New creates an empty, writable Registry.
func New() *Registry {
	return &Registry{
		byKind: make(map[Kind][]Meta),
		byHash: make(map[uint64]entry),
		byName: make(map[string]entry),
	}
}

// Register inserts m under kind. A second call with an already-registered
// hash is a no-op, mirrored 1:1 from RuntimeMetaRegistry::registerMeta's
// `if (hasMeta(hash)) return;` guard — generated init code can register
// the same record from more than one translation unit without producing
// duplicates.
func (r *Registry) Register(kind Kind, m Meta) error {
	if r.sealed.Load() {
		return fmt.Errorf("registry: Register(%s) after Seal", m.Name())
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byHash[m.Hash()]; ok {
		return nil
	}

	r.byKind[kind] = append(r.byKind[kind], m)
	e := entry{kind: kind, meta: m}
	r.byHash[m.Hash()] = e
	r.byName[m.Name()] = e
	return nil
}

// Seal ends the write phase. Every Register call after Seal returns an
// error instead of mutating shared state, so a generated init-time
// registration bug surfaces as a diagnosable error rather than a silent
// data race with concurrent readers (spec.md §9's open design note on a
// single init phase followed by read-only operation).
func (r *Registry) Seal() {
	r.sealed.Store(true)
}

// Sealed reports whether Seal has been called.
func (r *Registry) Sealed() bool {
	return r.sealed.Load()
}

// Has reports whether a record with the given hash is registered.
func (r *Registry) Has(hash uint64) bool {
	_, ok := r.byHash[hash]
	return ok
}

// HasName reports whether a record with the given name is registered.
func (r *Registry) HasName(name string) bool {
	_, ok := r.byName[name]
	return ok
}

// Find looks up a record by hash, returning its Kind alongside it.
func (r *Registry) Find(hash uint64) (Kind, Meta, bool) {
	e, ok := r.byHash[hash]
	if !ok {
		return 0, nil, false
	}
	return e.kind, e.meta, true
}

// FindByName looks up a record by name, returning its Kind alongside it.
func (r *Registry) FindByName(name string) (Kind, Meta, bool) {
	e, ok := r.byName[name]
	if !ok {
		return 0, nil, false
	}
	return e.kind, e.meta, true
}

// At returns the index'th record registered under kind, in registration
// order.
func (r *Registry) At(kind Kind, index int) (Meta, bool) {
	list := r.byKind[kind]
	if index < 0 || index >= len(list) {
		return nil, false
	}
	return list[index], true
}

// Len returns how many records are registered under kind.
func (r *Registry) Len(kind Kind) int {
	return len(r.byKind[kind])
}
