package alloc

import "github.com/arbor-gfx/rendergraph/resource"

// Router implements the allocator selection policy: given a resource's
// descriptor and flags, decide which concrete allocator must service it. It
// holds no allocation state itself — callers still call Collect/Deposit on
// the allocator instances it references.
//
// Temporary (CPU-visible staging) allocations share the Staging SubBuffer
// instance with non-private transient textures: sub-buffer / temporary is
// one bump-allocator mechanism serving both roles, distinguished only by
// which blocks a caller requests from, not by a separate allocator type.
type Router struct {
	PersistentHeap  *Heap
	PrivateBuffer   *Heap
	ColorHeap       *Heap
	DepthHeap       *Heap
	SharedSubBuffer *SubBuffer
	ArgumentBuffer  *SubBuffer
	StagingPool     *SubBuffer
	HistoryPool     *Pool
	MemorylessPool  *Pool
}

// Class identifies which allocator family a resource routes to.
type Class uint8

const (
	ClassPersistent Class = iota
	ClassPrivateHeapBuffer
	ClassColorHeapTexture
	ClassDepthHeapTexture
	ClassSharedSubBuffer
	ClassArgumentSubBuffer
	ClassStagingPool
	ClassHistoryPool
	ClassMemorylessPool
)

// RouteBuffer decides the allocator class for a buffer descriptor.
func RouteBuffer(d resource.BufferDescriptor, flags resource.Flags) Class {
	if flags.Has(resource.FlagPersistent) {
		return ClassPersistent
	}
	if flags.Has(resource.FlagHistoryBuffer) {
		return ClassHistoryPool
	}
	switch d.Storage {
	case resource.StoragePrivate:
		return ClassPrivateHeapBuffer
	default:
		return ClassSharedSubBuffer
	}
}

// RouteArgumentBuffer argument buffers always bump-allocate from the shared
// sub-buffer pool: a transient argument buffer routes to the shared
// sub-buffer allocator.
func RouteArgumentBuffer(flags resource.Flags) Class {
	if flags.Has(resource.FlagPersistent) {
		return ClassPersistent
	}
	return ClassArgumentSubBuffer
}

// RouteTexture decides the allocator class for a texture descriptor.
// unifiedMemory and memorylessCapable reflect the device's capability bits.
func RouteTexture(d resource.TextureDescriptor, flags resource.Flags, unifiedMemory, memorylessCapable bool) Class {
	if flags.Has(resource.FlagPersistent) {
		return ClassPersistent
	}
	if flags.Has(resource.FlagHistoryBuffer) {
		return ClassHistoryPool
	}
	if memorylessCapable && unifiedMemory && isRenderTargetOnly(d) {
		return ClassMemorylessPool
	}
	if d.Storage == resource.StoragePrivate {
		if d.IsDepthStencil() {
			return ClassDepthHeapTexture
		}
		return ClassColorHeapTexture
	}
	return ClassStagingPool
}

func isRenderTargetOnly(d resource.TextureDescriptor) bool {
	// A texture is only memoryless-eligible when every usage is a render
	// attachment and nothing else; the resource command generator is the
	// authority on usage history, so this only checks the descriptor-level
	// hint set by the caller.
	return d.Storage == resource.StorageMemoryless
}
