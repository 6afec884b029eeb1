package registry

import (
	"fmt"

	"github.com/arbor-gfx/rendergraph/alloc"
	"github.com/arbor-gfx/rendergraph/resource"
)

// TextureRegistry is BufferRegistry's texture-kind sibling, routing texture
// materialisation through the depth/color heap, staging pool, or
// memoryless pool per the allocator selection policy.
type TextureRegistry struct {
	identity   *Identity
	persistent *Persistent[*resource.Snatchable]
	transient  *Transient[*resource.Snatchable]
	lock       resource.SnatchLock

	router            *alloc.Router
	unifiedMemory     bool
	memorylessCapable bool
}

// NewTextureRegistry returns an empty texture registry wired to router.
// unifiedMemory and memorylessCapable reflect the active device's
// capabilities.
func NewTextureRegistry(router *alloc.Router, unifiedMemory, memorylessCapable bool) *TextureRegistry {
	return &TextureRegistry{
		identity:          NewIdentity(resource.KindTexture),
		persistent:        NewPersistent[*resource.Snatchable](resource.KindTexture),
		transient:         NewTransient[*resource.Snatchable](resource.KindTexture),
		router:            router,
		unifiedMemory:     unifiedMemory,
		memorylessCapable: memorylessCapable,
	}
}

// CreatePersistent allocates a handle and materialises a persistent texture
// immediately.
func (r *TextureRegistry) CreatePersistent(desc resource.TextureDescriptor) (resource.Handle, error) {
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

// DisposePersistent releases a persistent texture, deferring native release
// until waitValue completes on queue.
func (r *TextureRegistry) DisposePersistent(h resource.Handle, queue uint32, waitValue uint64) (resource.DeferredRelease, error) {
	cell, ok := r.persistent.Remove(h)
	if !ok {
		return resource.DeferredRelease{}, fmt.Errorf("registry: dispose of unknown texture handle %s", h)
	}
	backing, _ := cell.Snatch()
	r.identity.Release(h)
	untrackHandle(h)
	return resource.DeferredRelease{Backing: backing, Queue: queue, WaitValue: waitValue}, nil
}

// MaterialiseTransient allocates a dense slot for a transient texture used
// this frame. Window-handle textures are materialised eagerly by the
// caller regardless of first-use pass index; this method itself is
// agnostic to when it is called.
func (r *TextureRegistry) MaterialiseTransient(index resource.Index, desc resource.TextureDescriptor, flags resource.Flags) (resource.Handle, error) {
	backing, err := r.materialise(desc, flags)
	if err != nil {
		return resource.Handle{}, err
	}
	h := r.transient.Insert(index, resource.NewSnatchable(backing), flags)
	return h, nil
}

// Get resolves h to its current Backing.
func (r *TextureRegistry) Get(h resource.Handle) (resource.Backing, bool) {
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

// ResetTransient discards every transient texture allocated this frame.
func (r *TextureRegistry) ResetTransient() {
	r.transient.Reset()
}

// IsMemoryless reports whether desc would be routed to the memoryless
// pool, used by the resource-command generator to decide whether to flip
// a descriptor's storage mode before materialisation.
func (r *TextureRegistry) IsMemoryless(desc resource.TextureDescriptor, flags resource.Flags) bool {
	return alloc.RouteTexture(desc, flags, r.unifiedMemory, r.memorylessCapable) == alloc.ClassMemorylessPool
}

func (r *TextureRegistry) materialise(desc resource.TextureDescriptor, flags resource.Flags) (resource.Backing, error) {
	class := alloc.RouteTexture(desc, flags, r.unifiedMemory, r.memorylessCapable)
	switch class {
	case alloc.ClassPersistent:
		return resource.Backing{Kind: resource.BackingTextureOwned}, nil
	case alloc.ClassDepthHeapTexture:
		size := textureByteSize(desc)
		offset, _, _, err := r.router.DepthHeap.Collect(size)
		if err != nil {
			return resource.Backing{}, fmt.Errorf("registry: collect depth heap texture: %w", err)
		}
		return resource.Backing{Kind: resource.BackingTextureOwned, Offset: offset}, nil
	case alloc.ClassColorHeapTexture:
		size := textureByteSize(desc)
		offset, _, _, err := r.router.ColorHeap.Collect(size)
		if err != nil {
			return resource.Backing{}, fmt.Errorf("registry: collect color heap texture: %w", err)
		}
		return resource.Backing{Kind: resource.BackingTextureOwned, Offset: offset}, nil
	case alloc.ClassStagingPool:
		_, offset, err := r.router.StagingPool.Collect(textureByteSize(desc), 256)
		if err != nil {
			return resource.Backing{}, fmt.Errorf("registry: collect staging texture: %w", err)
		}
		return resource.Backing{Kind: resource.BackingTextureOwned, Offset: offset}, nil
	case alloc.ClassMemorylessPool:
		key := fmt.Sprintf("memoryless:%dx%d", desc.Width, desc.Height)
		if b, ok := r.router.MemorylessPool.Collect(key); ok {
			return b, nil
		}
		return resource.Backing{Kind: resource.BackingTextureOwned}, nil
	case alloc.ClassHistoryPool:
		key := fmt.Sprintf("history:%dx%d:%d", desc.Width, desc.Height, desc.Format)
		if b, ok := r.router.HistoryPool.Collect(key); ok {
			return b, nil
		}
		return resource.Backing{Kind: resource.BackingTextureOwned}, nil
	default:
		return resource.Backing{}, fmt.Errorf("registry: texture descriptor routed to unsupported allocator class %d", class)
	}
}

// textureByteSize is a conservative estimate used only to size heap
// sub-allocations: it assumes 4 bytes per texel for every format, whereas
// the real byte size depends on the native format's block size, which this
// estimate does not consult.
func textureByteSize(desc resource.TextureDescriptor) uint64 {
	bytesPerTexel := uint64(4)
	mips := uint64(desc.MipLevelCount)
	if mips == 0 {
		mips = 1
	}
	layers := uint64(desc.Depth)
	if layers == 0 {
		layers = 1
	}
	return uint64(desc.Width) * uint64(desc.Height) * bytesPerTexel * mips * layers
}
