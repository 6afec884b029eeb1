// Package resource defines the opaque handles, per-kind descriptors, and
// backing references the rest of the render-graph backend operates on.
//
// A Handle never carries a native pointer directly: it is a typed
// (kind, generation, index) triple, and only the owning registry
// (github.com/arbor-gfx/rendergraph/registry) ever dereferences it to a
// native backing object. The resource Kind is folded into the value
// itself, since a render-graph resource's kind is part of its identity (a
// buffer handle and a texture handle must never compare equal even if
// they share an index).
package resource

import "fmt"

// Index is the dense slot component of a Handle.
type Index = uint32

// Generation guards against stale handles: a released slot's generation is
// bumped before reuse, so a Handle captured before release compares unequal
// to the Handle reissued for the same Index afterward.
type Generation = uint32

// Kind identifies what a Handle refers to.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindBuffer
	KindTexture
	KindHeap
	KindArgumentBuffer
	KindArgumentBufferArray
	KindAccelerationStructure
	KindVisibleFunctionTable
	KindIntersectionFunctionTable
	KindSampler
	KindHazardTrackingGroup
)

// String returns a human-readable kind name, used in log attributes and
// invariant-violation messages.
func (k Kind) String() string {
	switch k {
	case KindBuffer:
		return "buffer"
	case KindTexture:
		return "texture"
	case KindHeap:
		return "heap"
	case KindArgumentBuffer:
		return "argumentBuffer"
	case KindArgumentBufferArray:
		return "argumentBufferArray"
	case KindAccelerationStructure:
		return "accelerationStructure"
	case KindVisibleFunctionTable:
		return "visibleFunctionTable"
	case KindIntersectionFunctionTable:
		return "intersectionFunctionTable"
	case KindSampler:
		return "sampler"
	case KindHazardTrackingGroup:
		return "hazardTrackingGroup"
	default:
		return "invalid"
	}
}

// Flags are per-handle lifetime/ownership modifiers.
type Flags uint8

const FlagNone Flags = 0

const (
	// FlagPersistent marks a resource living in the persistent registry
	// rather than the per-frame transient one.
	FlagPersistent Flags = 1 << iota
	// FlagHistoryBuffer marks a resource that must live exactly one frame
	// past the frame it was written in.
	FlagHistoryBuffer
	// FlagWindowHandle marks a texture whose backing is acquired from the
	// windowing system each frame (a "drawable").
	FlagWindowHandle
	// FlagExternalOwnership marks a resource whose native backing is owned
	// outside the registry (registerExternalResource).
	FlagExternalOwnership
	// FlagImmutableOnceInitialised marks a resource that must assert if
	// written to a second time after its first write completes.
	FlagImmutableOnceInitialised
)

// Has reports whether all bits in other are set in f.
func (f Flags) Has(other Flags) bool { return f&other == other }

// Handle is the opaque typed identifier every resource is known by outside
// of its owning registry. The zero Handle is never valid: Generation 0 is
// reserved (an epoch-starts-at-1 convention), so an accidentally
// zero-valued Handle is caught rather than silently aliasing slot 0.
type Handle struct {
	kind       Kind
	generation Generation
	index      Index
	flags      Flags
	// transientSlot is the dense per-frame index used when flags excludes
	// FlagPersistent; it is meaningless (and ignored) for persistent handles,
	// where index instead keys the persistent registry's sparse map.
	transientSlot Index
}

// NewPersistentHandle constructs a handle for the persistent registry.
func NewPersistentHandle(kind Kind, index Index, generation Generation, flags Flags) Handle {
	return Handle{kind: kind, index: index, generation: generation, flags: flags | FlagPersistent}
}

// NewTransientHandle constructs a handle for the per-frame transient
// registry. generation still guards against stale handles surviving a frame
// boundary after the dense slot has been recycled.
func NewTransientHandle(kind Kind, transientSlot Index, generation Generation, flags Flags) Handle {
	return Handle{kind: kind, transientSlot: transientSlot, generation: generation, flags: flags &^ FlagPersistent}
}

// Kind returns the resource kind.
func (h Handle) Kind() Kind { return h.kind }

// Flags returns the resource's lifetime/ownership flags.
func (h Handle) Flags() Flags { return h.flags }

// IsPersistent reports whether h lives in the persistent registry.
func (h Handle) IsPersistent() bool { return h.flags.Has(FlagPersistent) }

// Index returns the persistent registry's sparse-map index. Only meaningful
// when IsPersistent() is true.
func (h Handle) Index() Index { return h.index }

// TransientIndex returns the dense per-frame slot. Only meaningful when
// IsPersistent() is false.
func (h Handle) TransientIndex() Index { return h.transientSlot }

// Generation returns the generation guard value.
func (h Handle) Generation() Generation { return h.generation }

// IsValid reports whether h could possibly refer to a live resource. It does
// not consult any registry; a registry lookup can still fail with a
// generation mismatch or not-found error for a Handle that reports valid
// here.
func (h Handle) IsValid() bool { return h.kind != KindInvalid && h.generation != 0 }

// String renders a Handle for logs and error messages.
func (h Handle) String() string {
	if h.flags.Has(FlagPersistent) {
		return fmt.Sprintf("%s(p:%d,g:%d)", h.kind, h.index, h.generation)
	}
	return fmt.Sprintf("%s(t:%d,g:%d)", h.kind, h.transientSlot, h.generation)
}
