package resource

import (
	"sync"

	"github.com/arbor-gfx/rendergraph/hal"
)

// BackingKind discriminates the variants of Backing: a tagged sum over the
// different native objects a backing reference may resolve to.
type BackingKind uint8

const (
	BackingNone BackingKind = iota
	BackingBuffer
	BackingTextureOwned
	BackingTextureBorrowedFromBuffer
	BackingHeap
	BackingAccelerationStructure
	BackingFunctionTable
)

// Backing is a tagged union over the native objects a Handle can resolve to,
// plus the byte offset needed when the native object is itself sub-allocated
// out of a larger buffer (argument buffers, sub-buffer-allocator buffers).
// For textures the offset is always zero; for everything else it is the
// offset returned by the allocator that produced it.
type Backing struct {
	Kind    BackingKind
	Buffer  hal.Buffer
	Texture hal.Texture
	Heap    uintptr // opaque heap identity used for aliasing bookkeeping
	Offset  uint64
}

// IsZero reports whether b refers to nothing.
func (b Backing) IsZero() bool { return b.Kind == BackingNone }

// Snatchable wraps a Backing so it can be safely swapped or released while
// other goroutines may still be reading it through a SnatchGuard. A
// replaced or snatched Backing is not kept in the cell: Replace and Snatch
// hand it back to the caller, which can queue it as a DeferredRelease.
// Snatchable never destroys a Backing itself.
type Snatchable struct {
	mu       sync.RWMutex
	value    Backing
	snatched bool
}

// NewSnatchable wraps an initial Backing.
func NewSnatchable(b Backing) *Snatchable {
	return &Snatchable{value: b}
}

// Get returns the current Backing, or the zero Backing if it has been
// snatched. guard is accepted for API clarity only: callers must hold a
// SnatchGuard obtained from a SnatchLock before calling Get, making the
// locking discipline visible at call sites.
func (s *Snatchable) Get(_ *SnatchGuard) Backing {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snatched {
		return Backing{}
	}
	return s.value
}

// Snatch takes the Backing for destruction/replacement. Succeeds at most
// once; subsequent calls return the zero Backing and false.
func (s *Snatchable) Snatch() (Backing, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snatched {
		return Backing{}, false
	}
	s.snatched = true
	old := s.value
	s.value = Backing{}
	return old, true
}

// Replace swaps in a new Backing without snatching, used when the handle
// keeps living but its native object changes. The previous Backing is
// returned so the caller can enqueue it for DeferredRelease rather than
// destroying it immediately.
func (s *Snatchable) Replace(next Backing) (previous Backing) {
	s.mu.Lock()
	defer s.mu.Unlock()
	previous = s.value
	s.value = next
	return previous
}

// SnatchLock serializes Snatch/Replace calls against concurrent readers
// across a whole registry, while persistent resource maps are read under
// an RWMutex.
type SnatchLock struct {
	mu sync.RWMutex
}

// SnatchGuard proves the holder took SnatchLock.Read.
type SnatchGuard struct{}

// Read acquires the read side of the lock for the duration of fn.
func (l *SnatchLock) Read(fn func(*SnatchGuard)) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	fn(&SnatchGuard{})
}

// Write acquires the write side of the lock, excluding all readers, for the
// duration of fn. Snatch/Replace calls should run under Write.
func (l *SnatchLock) Write(fn func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fn()
}

// DeferredRelease is a Backing queued for destruction once a queue
// completion counter reaches WaitValue. The registries' DisposePersistent
// returns one; rendergraph.Context does not collect or drain them, and no
// code in this module destroys the Backing it carries.
type DeferredRelease struct {
	Backing   Backing
	Queue     uint32
	WaitValue uint64
}
