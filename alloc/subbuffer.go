package alloc

import "fmt"

// subBlock is one large native buffer segment served by bump allocation.
type subBlock struct {
	size     uint64
	offset   uint64 // bump pointer
	oversize bool
}

// SubBuffer is a sub-buffer / temporary allocator implemented as a bump
// allocator: collect(length) returns an offset into the current
// block, and blocks are frame-rotated so a block is only reused once every
// in-flight frame referencing it has completed. The rotation is modeled as
// a ring of inflightFrameCount slots, one per frame in flight; a slot's
// blocks are only ever bumped during the frame that owns the slot, and are
// reset (not reallocated) when that slot comes back around.
type SubBuffer struct {
	blockSize uint64
	ringSize  int

	ring    [][]*subBlock
	slot    int
	current int // index of the block currently being bumped within ring[slot]
}

// NewSubBuffer returns a bump allocator with the given fixed block size and
// the number of frames a block must wait before reuse.
func NewSubBuffer(blockSize uint64, inflightFrameCount int) *SubBuffer {
	if inflightFrameCount < 1 {
		inflightFrameCount = 1
	}
	return &SubBuffer{
		blockSize: blockSize,
		ringSize:  inflightFrameCount,
		ring:      make([][]*subBlock, inflightFrameCount),
	}
}

// Collect bump-allocates length bytes aligned to align (must be a power of
// two) from the current frame's ring slot, returning the block index within
// that slot and the offset within the block. An oversize request (larger
// than the fixed block size) gets its own one-shot block.
func (s *SubBuffer) Collect(length, align uint64) (blockIndex int, offset uint64, err error) {
	if length == 0 {
		return 0, 0, fmt.Errorf("alloc: sub-buffer collect of zero length")
	}

	blocks := s.ring[s.slot]
	if length > s.blockSize {
		blocks = append(blocks, &subBlock{size: length, offset: length, oversize: true})
		s.ring[s.slot] = blocks
		return len(blocks) - 1, 0, nil
	}

	if len(blocks) == 0 {
		blocks = append(blocks, &subBlock{size: s.blockSize})
		s.ring[s.slot] = blocks
		s.current = 0
	}

	idx := len(blocks) - 1
	block := blocks[idx]
	aligned := alignUp(block.offset, align)
	if aligned+length > block.size {
		blocks = append(blocks, &subBlock{size: s.blockSize})
		s.ring[s.slot] = blocks
		idx = len(blocks) - 1
		block = blocks[idx]
		aligned = 0
	}

	block.offset = aligned + length
	s.current = idx
	return idx, aligned, nil
}

// Deposit is a no-op for the bump pointer itself; block recycling is purely
// frame-based. Retained for symmetry with the other allocators'
// collect/deposit contract.
func (s *SubBuffer) Deposit(int, uint64) {}

// EndFrame advances to the next ring slot and resets the blocks that slot
// held inflightFrameCount frames ago, making them available for bumping
// again.
func (s *SubBuffer) EndFrame() {
	s.slot = (s.slot + 1) % s.ringSize
	for _, b := range s.ring[s.slot] {
		if !b.oversize {
			b.offset = 0
		}
	}
	// Oversize one-shot blocks never get reused; drop them now that their
	// slot has rotated back.
	kept := s.ring[s.slot][:0]
	for _, b := range s.ring[s.slot] {
		if !b.oversize {
			kept = append(kept, b)
		}
	}
	s.ring[s.slot] = kept
}

// BlockCount returns the number of blocks currently allocated across every
// ring slot.
func (s *SubBuffer) BlockCount() int {
	n := 0
	for _, blocks := range s.ring {
		n += len(blocks)
	}
	return n
}

func alignUp(v, align uint64) uint64 {
	if align <= 1 {
		return v
	}
	return (v + align - 1) &^ (align - 1)
}
