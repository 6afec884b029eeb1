package alloc

import (
	"fmt"
	"sync"

	"github.com/arbor-gfx/rendergraph/fence"
	"github.com/arbor-gfx/rendergraph/resource"
)

// AliasIndex is the monotonically increasing stamp a Heap assigns to every
// collected resource. Two resources with different AliasIndex values may
// share the same physical memory.
type AliasIndex uint64

// aliasFence pairs a fence with the alias index that was current when the
// fence's resource was deposited: a parallel list of
// (fenceAliasingIndex, fence) pairs.
type aliasFence struct {
	index AliasIndex
	fence *fence.Fence
}

// HeapStats snapshots a Heap's size and high-water mark, the whole-heap
// accounting equivalent of a raw device-memory allocator's stats struct.
type HeapStats struct {
	CurrentSize    uint64
	UsedSize       uint64
	HighWaterMark  uint64
	GrowCount      int
	DowngradeCount int
}

// Heap owns one native heap (grown by reallocating a larger one as needed)
// and sub-allocates buffers/textures from it with aliasing tracking.
type Heap struct {
	mu sync.Mutex

	size     uint64
	used     uint64
	nextByte uint64
	nextAlias AliasIndex

	fences []aliasFence

	// perFrameUsed is a rolling history of bytes used by each frame,
	// recorded by EndFrame, used to decide downsizing: current size exceeding 2x the
	// high-water mark across the retained history triggers a downsize.
	perFrameUsed  []uint64
	highWaterMark uint64

	stats HeapStats
}

// NewHeap returns an empty heap of the given initial size.
func NewHeap(initialSize uint64) *Heap {
	return &Heap{size: initialSize, stats: HeapStats{CurrentSize: initialSize}}
}

// Collect sub-allocates size bytes, stamping the result with the heap's
// current alias index (which is then advanced), and returns the fences the
// consumer must wait on before first using the backing object: every fence
// registered against a strictly older alias index, since the returned set
// must contain at least all fences deposited after its own index was
// issued.
func (h *Heap) Collect(size uint64) (offset uint64, alias AliasIndex, waitFences []*fence.Fence, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.nextByte+size > h.size {
		if err := h.growLocked(size); err != nil {
			return 0, 0, nil, err
		}
	}

	offset = h.nextByte
	h.nextByte += size
	h.used += size
	if h.used > h.stats.UsedSize {
		h.stats.UsedSize = h.used
	}

	alias = h.nextAlias
	h.nextAlias++

	for _, af := range h.fences {
		if af.index < alias {
			waitFences = append(waitFences, af.fence)
		}
	}
	return offset, alias, waitFences, nil
}

// Deposit returns a sub-allocation's final read+write fence to the heap and
// evicts every alias-fence pair strictly older than alias, since those
// resources can no longer alias with anything collected from now on.
func (h *Heap) Deposit(alias AliasIndex, f *fence.Fence) {
	h.mu.Lock()
	defer h.mu.Unlock()

	kept := h.fences[:0]
	for _, af := range h.fences {
		if af.index >= alias {
			kept = append(kept, af)
		}
	}
	h.fences = append(kept, aliasFence{index: alias, fence: f})
}

// growLocked allocates a larger backing heap. The caller must already hold
// h.mu. The old heap's contents are implicitly invalidated, and aliasing
// indices and tracked fences are reset here; callers are responsible for
// deferring the old heap's release until its last wait value completes.
func (h *Heap) growLocked(minExtra uint64) error {
	needed := h.nextByte + minExtra
	newSize := h.size * 2
	for newSize < needed {
		newSize *= 2
	}
	if newSize == 0 {
		return fmt.Errorf("alloc: heap grow requested zero-sized heap")
	}

	h.size = newSize
	h.nextByte = 0
	h.nextAlias = 0
	h.fences = nil
	h.stats.CurrentSize = newSize
	h.stats.GrowCount++
	return nil
}

// EndFrame records this frame's peak usage into the rolling history and
// resets the bump pointer for the next frame's transient allocations,
// returning true if the heap should be downsized (current size exceeds 2x
// the high-water mark across the retained history).
func (h *Heap) EndFrame(historyLen int) (shouldDownsize bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.perFrameUsed = append(h.perFrameUsed, h.used)
	if len(h.perFrameUsed) > historyLen {
		h.perFrameUsed = h.perFrameUsed[len(h.perFrameUsed)-historyLen:]
	}

	h.highWaterMark = 0
	for _, u := range h.perFrameUsed {
		if u > h.highWaterMark {
			h.highWaterMark = u
		}
	}
	h.stats.HighWaterMark = h.highWaterMark

	h.used = 0
	h.nextByte = 0

	return h.highWaterMark > 0 && h.size > h.highWaterMark*2
}

// Downsize shrinks the heap to roughly its high-water mark. Like growLocked
// this resets aliasing indices and drops all tracked fences; the caller
// must not call this while any resource collected from this heap is still
// in flight.
func (h *Heap) Downsize() {
	h.mu.Lock()
	defer h.mu.Unlock()

	newSize := h.highWaterMark
	if newSize == 0 {
		newSize = 1
	}
	h.size = newSize
	h.nextByte = 0
	h.nextAlias = 0
	h.fences = nil
	h.stats.CurrentSize = newSize
	h.stats.DowngradeCount++
}

// Stats returns a snapshot of the heap's size and occupancy.
func (h *Heap) Stats() HeapStats {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.stats
}

// ToBacking wraps a collected offset into a resource.Backing value for the
// given kind.
func ToBacking(kind resource.BackingKind, offset uint64) resource.Backing {
	return resource.Backing{Kind: kind, Offset: offset}
}
