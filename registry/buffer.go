package registry

import (
	"fmt"

	"github.com/arbor-gfx/rendergraph/alloc"
	"github.com/arbor-gfx/rendergraph/resource"
)

// BufferRegistry owns both the persistent and transient buffer maps and
// routes materialisation/disposal to the right alloc package allocator,
// per the allocator selection policy for buffers. It is the concrete,
// buffer-specialized instance of the generic Persistent/Transient/Identity
// machinery; TextureRegistry is its texture-kind sibling.
type BufferRegistry struct {
	identity   *Identity
	persistent *Persistent[*resource.Snatchable]
	transient  *Transient[*resource.Snatchable]
	lock       resource.SnatchLock

	router *alloc.Router
}

// NewBufferRegistry returns an empty buffer registry wired to router.
func NewBufferRegistry(router *alloc.Router) *BufferRegistry {
	return &BufferRegistry{
		identity:   NewIdentity(resource.KindBuffer),
		persistent: NewPersistent[*resource.Snatchable](resource.KindBuffer),
		transient:  NewTransient[*resource.Snatchable](resource.KindBuffer),
		router:     router,
	}
}

// CreatePersistent allocates a handle and materialises a persistent buffer
// immediately: persistent resources are materialised on first creation.
func (r *BufferRegistry) CreatePersistent(desc resource.BufferDescriptor) (resource.Handle, error) {
	h := r.identity.Alloc(resource.FlagNone)
	backing, err := r.materialise(desc, resource.FlagPersistent)
	if err != nil {
		r.identity.Release(h)
		return resource.Handle{}, err
	}
	r.persistent.Insert(h, resource.NewSnatchable(backing))
	trackHandle(h)
	return h, nil
}

// DisposePersistent releases a persistent buffer, deferring the native
// release until waitValue completes on queue: disposed on explicit user
// request, deferred until the last queue that used them has completed.
func (r *BufferRegistry) DisposePersistent(h resource.Handle, queue uint32, waitValue uint64) (resource.DeferredRelease, error) {
	cell, ok := r.persistent.Remove(h)
	if !ok {
		return resource.DeferredRelease{}, fmt.Errorf("registry: dispose of unknown buffer handle %s", h)
	}
	backing, _ := cell.Snatch()
	r.identity.Release(h)
	untrackHandle(h)
	return resource.DeferredRelease{Backing: backing, Queue: queue, WaitValue: waitValue}, nil
}

// MaterialiseTransient allocates a dense slot for a transient buffer used
// this frame and routes its allocation through the allocator the
// descriptor/flags select.
func (r *BufferRegistry) MaterialiseTransient(index resource.Index, desc resource.BufferDescriptor, flags resource.Flags) (resource.Handle, error) {
	backing, err := r.materialise(desc, flags)
	if err != nil {
		return resource.Handle{}, err
	}
	h := r.transient.Insert(index, resource.NewSnatchable(backing), flags)
	return h, nil
}

// Get resolves h to its current Backing, checking both the persistent and
// transient maps.
func (r *BufferRegistry) Get(h resource.Handle) (resource.Backing, bool) {
	var cell *resource.Snatchable
	var ok bool
	if h.IsPersistent() {
		cell, ok = r.persistent.Get(h)
	} else {
		cell, ok = r.transient.Get(h)
	}
	if !ok {
		return resource.Backing{}, false
	}
	var backing resource.Backing
	r.lock.Read(func(g *resource.SnatchGuard) {
		backing = cell.Get(g)
	})
	return backing, true
}

// ResetTransient discards every transient buffer allocated this frame,
// invalidating all handles issued against it.
func (r *BufferRegistry) ResetTransient() {
	r.transient.Reset()
}

func (r *BufferRegistry) materialise(desc resource.BufferDescriptor, flags resource.Flags) (resource.Backing, error) {
	class := alloc.RouteBuffer(desc, flags)
	switch class {
	case alloc.ClassPersistent:
		return resource.Backing{Kind: resource.BackingBuffer}, nil
	case alloc.ClassPrivateHeapBuffer:
		offset, _, _, err := r.router.PrivateBuffer.Collect(desc.Size)
		if err != nil {
			return resource.Backing{}, fmt.Errorf("registry: collect private buffer: %w", err)
		}
		return resource.Backing{Kind: resource.BackingBuffer, Offset: offset}, nil
	case alloc.ClassSharedSubBuffer:
		_, offset, err := r.router.SharedSubBuffer.Collect(desc.Size, 256)
		if err != nil {
			return resource.Backing{}, fmt.Errorf("registry: collect shared sub-buffer: %w", err)
		}
		return resource.Backing{Kind: resource.BackingBuffer, Offset: offset}, nil
	case alloc.ClassArgumentSubBuffer:
		_, offset, err := r.router.ArgumentBuffer.Collect(desc.Size, 256)
		if err != nil {
			return resource.Backing{}, fmt.Errorf("registry: collect argument buffer: %w", err)
		}
		return resource.Backing{Kind: resource.BackingBuffer, Offset: offset}, nil
	case alloc.ClassHistoryPool:
		key := fmt.Sprintf("buffer:%d", desc.Size)
		if b, ok := r.router.HistoryPool.Collect(key); ok {
			return b, nil
		}
		return resource.Backing{Kind: resource.BackingBuffer}, nil
	default:
		return resource.Backing{}, fmt.Errorf("registry: buffer descriptor routed to unsupported allocator class %d", class)
	}
}
