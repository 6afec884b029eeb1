package registry

import "github.com/arbor-gfx/rendergraph/resource"

type transientSlot[T any] struct {
	item  T
	gen   resource.Generation
	valid bool
}

// Transient is the dense, per-frame counterpart to Persistent: dense
// transient maps paired with sparse persistent maps, with generations
// guarding against stale handles. Indices are assigned densely by the
// caller (typically the frame's resource count) and the whole map is reset
// at frame start rather than maintaining a free list, since a transient
// handle's validity never outlives one frame.
type Transient[T any] struct {
	kind  resource.Kind
	gen   resource.Generation
	slots []transientSlot[T]
}

// NewTransient returns an empty transient map restricted to handles of the
// given kind, starting at generation 1.
func NewTransient[T any](kind resource.Kind) *Transient[T] {
	return &Transient[T]{kind: kind, gen: 1}
}

// Insert stores item at the dense slot index, returning the Handle a caller
// should hand out for it. flags must not include FlagPersistent.
func (t *Transient[T]) Insert(index resource.Index, item T, flags resource.Flags) resource.Handle {
	t.ensureCapacity(index + 1)
	t.slots[index] = transientSlot[T]{item: item, gen: t.gen, valid: true}
	return resource.NewTransientHandle(t.kind, index, t.gen, flags)
}

// Get retrieves the item at h, validating both kind and the current frame
// generation: a handle from a previous frame always misses.
func (t *Transient[T]) Get(h resource.Handle) (T, bool) {
	var zero T
	if h.Kind() != t.kind || h.Generation() != t.gen {
		return zero, false
	}
	index := h.TransientIndex()
	if int(index) >= len(t.slots) {
		return zero, false
	}
	slot := &t.slots[index]
	if !slot.valid {
		return zero, false
	}
	return slot.item, true
}

// Len returns the number of resources inserted so far this frame.
func (t *Transient[T]) Len() int {
	n := 0
	for i := range t.slots {
		if t.slots[i].valid {
			n++
		}
	}
	return n
}

// ForEach iterates live items in index order.
func (t *Transient[T]) ForEach(fn func(resource.Handle, T) bool) {
	for i := range t.slots {
		slot := &t.slots[i]
		if !slot.valid {
			continue
		}
		h := resource.NewTransientHandle(t.kind, resource.Index(i), slot.gen, resource.FlagNone)
		if !fn(h, slot.item) {
			break
		}
	}
}

// Reset discards every entry and advances the generation, so any handle
// captured before the reset now fails Get even if its slot index gets
// reused this frame.
func (t *Transient[T]) Reset() {
	for i := range t.slots {
		var zero T
		t.slots[i] = transientSlot[T]{item: zero}
	}
	t.slots = t.slots[:0]
	t.gen++
}

func (t *Transient[T]) ensureCapacity(needed resource.Index) {
	current := resource.Index(len(t.slots))
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
	grown := make([]transientSlot[T], needed, newCap)
	copy(grown, t.slots)
	t.slots = grown
}
