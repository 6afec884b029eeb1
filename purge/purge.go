// Package purge implements a purgeability state machine: unused transient
// heaps are marked purgeable after a quiet period so the OS may reclaim
// their memory without notice, then revived on first re-use. Purgeability
// is advisory only; the system never assumes a purgeable resource is still
// resident.
//
// The discipline mirrors a snatch lock guarding a resource's backing from
// being pulled out under an in-flight reader, generalized here from
// "explicitly released" to "may silently vanish while marked purgeable".
package purge

import "github.com/arbor-gfx/rendergraph/resource"

// State is a resource's current purgeability.
type State uint8

const (
	// StateNonVolatile is the default: the OS must not reclaim this
	// resource's memory.
	StateNonVolatile State = iota
	// StateVolatile means the resource is eligible for reclamation but has
	// not yet been reclaimed; reviving it (UpdateState back to
	// NonVolatile) is guaranteed to succeed.
	StateVolatile
	// StateEmpty means the OS has already discarded the backing memory;
	// any content previously written is gone.
	StateEmpty
)

func (s State) String() string {
	switch s {
	case StateNonVolatile:
		return "nonVolatile"
	case StateVolatile:
		return "volatile"
	case StateEmpty:
		return "empty"
	default:
		return "unknown"
	}
}

// entry tracks one resource's purgeability plus the frame counter at which
// it last saw activity, used to decide when its quiet period has elapsed.
type entry struct {
	state      State
	lastActive uint64
}

// Manager tracks purgeability per resource and the frame counter used to
// detect a quiet period, marking unused transient heaps purgeable once
// that period elapses.
type Manager struct {
	entries     map[resource.Handle]*entry
	frame       uint64
	quietFrames uint64
}

// NewManager returns a Manager that marks a resource purgeable once
// quietFrames have elapsed since its last Touch.
func NewManager(quietFrames uint64) *Manager {
	return &Manager{
		entries:     make(map[resource.Handle]*entry),
		quietFrames: quietFrames,
	}
}

// AdvanceFrame bumps the manager's frame counter and must be called once
// per frame boundary before Sweep.
func (m *Manager) AdvanceFrame() { m.frame++ }

// Touch records that h was used this frame, reviving it to NonVolatile if
// it had been marked otherwise.
func (m *Manager) Touch(h resource.Handle) {
	e, ok := m.entries[h]
	if !ok {
		e = &entry{}
		m.entries[h] = e
	}
	e.lastActive = m.frame
	e.state = StateNonVolatile
}

// UpdateState sets h's purgeability directly, returning the resulting
// state. Calling UpdateState(h, x) then UpdateState(h, y) always leaves h
// in state y regardless of x, since the second call simply overwrites the
// first.
func (m *Manager) UpdateState(h resource.Handle, newState State) State {
	e, ok := m.entries[h]
	if !ok {
		e = &entry{lastActive: m.frame}
		m.entries[h] = e
	}
	// An already-empty resource can never be un-discarded by a request for
	// NonVolatile or Volatile; the backing bytes are already gone.
	if e.state == StateEmpty && newState != StateEmpty {
		return e.state
	}
	e.state = newState
	return e.state
}

// State returns h's current purgeability, or StateNonVolatile if h has
// never been registered.
func (m *Manager) State(h resource.Handle) State {
	if e, ok := m.entries[h]; ok {
		return e.state
	}
	return StateNonVolatile
}

// Sweep marks every NonVolatile resource that has not been Touch-ed for at
// least quietFrames as Volatile, returning the resources it changed.
func (m *Manager) Sweep() []resource.Handle {
	var changed []resource.Handle
	for h, e := range m.entries {
		if e.state != StateNonVolatile {
			continue
		}
		if m.frame-e.lastActive >= m.quietFrames {
			e.state = StateVolatile
			changed = append(changed, h)
		}
	}
	return changed
}

// Discard marks h StateEmpty, modelling the OS having reclaimed its
// memory. Only valid from StateVolatile; calling it on a NonVolatile
// resource is a caller bug since the contract never reclaims memory the
// manager has not first marked volatile.
func (m *Manager) Discard(h resource.Handle) {
	if e, ok := m.entries[h]; ok && e.state == StateVolatile {
		e.state = StateEmpty
	}
}

// Forget removes h from tracking entirely, used when a resource is
// disposed so the manager does not leak entries across its lifetime.
func (m *Manager) Forget(h resource.Handle) {
	delete(m.entries, h)
}
