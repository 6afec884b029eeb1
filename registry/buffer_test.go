package registry

import (
	"testing"

	"github.com/arbor-gfx/rendergraph/alloc"
	"github.com/arbor-gfx/rendergraph/resource"
)

func testRouter() *alloc.Router {
	return &alloc.Router{
		PersistentHeap:  alloc.NewHeap(1 << 20),
		PrivateBuffer:   alloc.NewHeap(1 << 20),
		ColorHeap:       alloc.NewHeap(1 << 20),
		DepthHeap:       alloc.NewHeap(1 << 20),
		SharedSubBuffer: alloc.NewSubBuffer(4096, 2),
		ArgumentBuffer:  alloc.NewSubBuffer(4096, 2),
		StagingPool:     alloc.NewSubBuffer(4096, 2),
		HistoryPool:     alloc.NewPool(),
		MemorylessPool:  alloc.NewPool(),
	}
}

func TestBufferRegistry_PersistentRoundTrip(t *testing.T) {
	reg := NewBufferRegistry(testRouter())

	h, err := reg.CreatePersistent(resource.BufferDescriptor{Size: 256, Storage: resource.StoragePrivate})
	if err != nil {
		t.Fatalf("CreatePersistent: %v", err)
	}
	if !h.IsPersistent() {
		t.Error("expected a persistent handle")
	}
	if _, ok := reg.Get(h); !ok {
		t.Fatal("expected the newly created buffer to resolve")
	}

	if _, err := reg.DisposePersistent(h, 0, 1); err != nil {
		t.Fatalf("DisposePersistent: %v", err)
	}
	if _, ok := reg.Get(h); ok {
		t.Error("expected the disposed buffer to no longer resolve")
	}
}

func TestBufferRegistry_TransientRoutesToHeap(t *testing.T) {
	reg := NewBufferRegistry(testRouter())

	h, err := reg.MaterialiseTransient(0, resource.BufferDescriptor{Size: 128, Storage: resource.StoragePrivate}, resource.FlagNone)
	if err != nil {
		t.Fatalf("MaterialiseTransient: %v", err)
	}
	backing, ok := reg.Get(h)
	if !ok {
		t.Fatal("expected the transient buffer to resolve")
	}
	if backing.Kind != resource.BackingBuffer {
		t.Errorf("Backing.Kind = %v, want BackingBuffer", backing.Kind)
	}
}

func TestBufferRegistry_ResetTransientInvalidatesHandles(t *testing.T) {
	reg := NewBufferRegistry(testRouter())
	h, err := reg.MaterialiseTransient(0, resource.BufferDescriptor{Size: 128, Storage: resource.StorageShared}, resource.FlagNone)
	if err != nil {
		t.Fatalf("MaterialiseTransient: %v", err)
	}
	reg.ResetTransient()
	if _, ok := reg.Get(h); ok {
		t.Error("expected a transient handle to be invalid after ResetTransient")
	}
}
