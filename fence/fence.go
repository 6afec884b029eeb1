// Package fence manages the pool of reusable GPU fence objects the
// resource-command generator and encoder-dependency solver stamp onto the
// command stream.
//
// The free-list recycling discipline mirrors an index allocator: a released
// fence goes back onto a LIFO free list rather than being destroyed, so a
// steady-state frame loop allocates no new native fence objects after
// warm-up.
package fence

import (
	"fmt"
	"sync"

	"github.com/arbor-gfx/rendergraph/hal"
)

// State is a Fence's position in its lifecycle:
// free → pending(commandBufferIndex) → retired.
type State uint8

const (
	StateFree State = iota
	StatePending
	StateRetired
)

func (s State) String() string {
	switch s {
	case StateFree:
		return "free"
	case StatePending:
		return "pending"
	case StateRetired:
		return "retired"
	default:
		return "unknown"
	}
}

// Key identifies which queue and encoder slot a fence was issued for.
type Key struct {
	Queue   uint32
	Encoder int
}

// Fence is a pool-allocated native fence together with the bookkeeping the
// registry needs to recycle it.
type Fence struct {
	Native            hal.Fence
	state             State
	commandBufferIdx  uint64
	tag               uint64 // max(commandBufferIndex) across the dependency edge it was allocated for
}

// State returns the fence's current lifecycle state.
func (f *Fence) State() State { return f.state }

// CommandBufferIndex returns the command-buffer index this fence becomes
// signalled at, valid while State() == StatePending.
func (f *Fence) CommandBufferIndex() uint64 { return f.commandBufferIdx }

// Tag returns the recycling tag assigned at allocation: the maximum
// command-buffer index across src/dst, so the fence can be recycled once
// that index completes.
func (f *Fence) Tag() uint64 { return f.tag }

// Registry is a pool of Fence objects keyed by (queue, encoder index),
// each created lazily from the supplied hal.Device and recycled once its
// command buffer retires.
type Registry struct {
	mu      sync.Mutex
	device  hal.Device
	free    []*Fence
	pending map[Key]*Fence
}

// NewRegistry returns a Registry that creates native fences through device.
func NewRegistry(device hal.Device) *Registry {
	return &Registry{
		device:  device,
		pending: make(map[Key]*Fence),
	}
}

// Acquire returns a free fence (reusing one from the pool if available),
// binds it to key with the given command-buffer index and recycling tag,
// and marks it pending.
func (r *Registry) Acquire(key Key, commandBufferIndex, tag uint64) (*Fence, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var f *Fence
	if n := len(r.free); n > 0 {
		f = r.free[n-1]
		r.free = r.free[:n-1]
	} else {
		native, err := r.device.CreateFence()
		if err != nil {
			return nil, fmt.Errorf("fence: create native fence: %w", err)
		}
		f = &Fence{Native: native}
	}

	f.state = StatePending
	f.commandBufferIdx = commandBufferIndex
	f.tag = tag
	r.pending[key] = f
	return f, nil
}

// Lookup returns the fence currently bound to key, if any.
func (r *Registry) Lookup(key Key) (*Fence, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.pending[key]
	return f, ok
}

// Retire moves every pending fence whose commandBufferIdx is <= completed
// back to the free pool: on queue completion of commandBufferIndex, all
// matching pending fences return to free and may be re-issued.
func (r *Registry) Retire(completed uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key, f := range r.pending {
		if f.commandBufferIdx > completed {
			continue
		}
		f.state = StateRetired
		delete(r.pending, key)
		f.state = StateFree
		r.free = append(r.free, f)
	}
}

// PendingCount returns the number of fences currently pending, used by
// tests and diagnostics to detect fence starvation.
func (r *Registry) PendingCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pending)
}

// FreeCount returns the number of fences currently sitting idle in the pool.
func (r *Registry) FreeCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.free)
}

// Destroy releases every native fence the registry has ever created. The
// caller must ensure no command buffer referencing a pending fence is still
// in flight.
func (r *Registry) Destroy() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, f := range r.free {
		r.device.DestroyFence(f.Native)
	}
	for _, f := range r.pending {
		r.device.DestroyFence(f.Native)
	}
	r.free = nil
	r.pending = make(map[Key]*Fence)
}
