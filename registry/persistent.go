package registry

import (
	"sync"

	"github.com/arbor-gfx/rendergraph/resource"
)

type persistentSlot[T any] struct {
	item  T
	gen   resource.Generation
	valid bool
}

// Persistent is a sparse, generation-validated map from resource.Handle to
// T, with handles whose kind is carried in the value rather than the Go
// type.
type Persistent[T any] struct {
	mu    sync.RWMutex
	kind  resource.Kind
	slots []persistentSlot[T]
}

// NewPersistent returns an empty persistent map restricted to handles of
// the given kind; Insert/Get/Remove panic if called with a handle of a
// different kind, catching registry misuse at the call site.
func NewPersistent[T any](kind resource.Kind) *Persistent[T] {
	return &Persistent[T]{kind: kind}
}

func (p *Persistent[T]) checkKind(h resource.Handle) {
	if h.Kind() != p.kind {
		panic("registry: handle kind does not match this persistent map's kind")
	}
}

// Insert stores item at h's index and generation.
func (p *Persistent[T]) Insert(h resource.Handle, item T) {
	p.checkKind(h)
	p.mu.Lock()
	defer p.mu.Unlock()

	index := h.Index()
	p.ensureCapacity(index + 1)
	p.slots[index] = persistentSlot[T]{item: item, gen: h.Generation(), valid: true}
}

// Get retrieves the item stored at h, validating the generation.
func (p *Persistent[T]) Get(h resource.Handle) (T, bool) {
	p.checkKind(h)
	p.mu.RLock()
	defer p.mu.RUnlock()

	var zero T
	index := h.Index()
	if int(index) >= len(p.slots) {
		return zero, false
	}
	slot := &p.slots[index]
	if !slot.valid || slot.gen != h.Generation() {
		return zero, false
	}
	return slot.item, true
}

// GetMut mutates the item stored at h in place, while holding the write
// lock. Returns false if h does not resolve.
func (p *Persistent[T]) GetMut(h resource.Handle, fn func(*T)) bool {
	p.checkKind(h)
	p.mu.Lock()
	defer p.mu.Unlock()

	index := h.Index()
	if int(index) >= len(p.slots) {
		return false
	}
	slot := &p.slots[index]
	if !slot.valid || slot.gen != h.Generation() {
		return false
	}
	fn(&slot.item)
	return true
}

// Remove deletes the item stored at h, returning it if found.
func (p *Persistent[T]) Remove(h resource.Handle) (T, bool) {
	p.checkKind(h)
	p.mu.Lock()
	defer p.mu.Unlock()

	var zero T
	index := h.Index()
	if int(index) >= len(p.slots) {
		return zero, false
	}
	slot := &p.slots[index]
	if !slot.valid || slot.gen != h.Generation() {
		return zero, false
	}
	item := slot.item
	slot.item = zero
	slot.valid = false
	return item, true
}

// Contains reports whether h resolves to a live item.
func (p *Persistent[T]) Contains(h resource.Handle) bool {
	p.checkKind(h)
	p.mu.RLock()
	defer p.mu.RUnlock()
	index := h.Index()
	if int(index) >= len(p.slots) {
		return false
	}
	slot := &p.slots[index]
	return slot.valid && slot.gen == h.Generation()
}

// Len returns the number of live items.
func (p *Persistent[T]) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	n := 0
	for i := range p.slots {
		if p.slots[i].valid {
			n++
		}
	}
	return n
}

// ForEach iterates live items in index order. fn returning false stops
// iteration early.
func (p *Persistent[T]) ForEach(fn func(resource.Handle, T) bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	for i := range p.slots {
		slot := &p.slots[i]
		if !slot.valid {
			continue
		}
		h := resource.NewPersistentHandle(p.kind, resource.Index(i), slot.gen, resource.FlagNone)
		if !fn(h, slot.item) {
			break
		}
	}
}

func (p *Persistent[T]) ensureCapacity(needed resource.Index) {
	current := resource.Index(len(p.slots))
	if needed <= current {
		return
	}
	newCap := current * 2
	if newCap < needed {
		newCap = needed
	}
	if newCap < 64 {
		newCap = 64
	}
	grown := make([]persistentSlot[T], needed, newCap)
	copy(grown, p.slots)
	p.slots = grown
}
