// Package registry owns the persistent and transient maps from resource
// handles to their backing references, routing allocation/disposal to the
// right allocator in package alloc.
//
// The split between a sparse, epoch-guarded persistent map and a dense
// per-frame transient array generalizes a type-parameterized storage/
// identity-manager pair from marker types to resource.Handle's own
// (kind, index, generation) triple, since one registry here must hold
// every resource kind rather than one registry per Go type.
package registry

import (
	"sync"

	"github.com/arbor-gfx/rendergraph/resource"
)

type freeSlot struct {
	index      resource.Index
	generation resource.Generation
}

// Identity allocates persistent-registry indices for one resource.Kind,
// recycling released indices with a bumped generation so stale handles
// fail validation (mirrors core.IdentityManager).
type Identity struct {
	mu        sync.Mutex
	kind      resource.Kind
	free      []freeSlot
	nextIndex resource.Index
	count     uint64
}

// NewIdentity returns an identity allocator for the given resource kind.
func NewIdentity(kind resource.Kind) *Identity {
	return &Identity{kind: kind}
}

// Alloc returns a fresh persistent Handle, reusing a released index with an
// incremented generation when one is available. Generation starts at 1 so
// the zero Handle is always invalid.
func (m *Identity) Alloc(flags resource.Flags) resource.Handle {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.count++
	if n := len(m.free); n > 0 {
		slot := m.free[n-1]
		m.free = m.free[:n-1]
		return resource.NewPersistentHandle(m.kind, slot.index, slot.generation+1, flags)
	}

	index := m.nextIndex
	m.nextIndex++
	return resource.NewPersistentHandle(m.kind, index, 1, flags)
}

// Release marks h's index available for reuse.
func (m *Identity) Release(h resource.Handle) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.free = append(m.free, freeSlot{index: h.Index(), generation: h.Generation()})
	m.count--
}

// Count returns the number of currently allocated handles.
func (m *Identity) Count() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.count
}
