package usage

// ActiveRange is either the whole resource or a bounded subresource range.
// Textures are bounded by a level×slice rectangle, buffers by a byte range.
type ActiveRange struct {
	full     bool
	isBuffer bool

	// Buffer range, valid when !full && isBuffer.
	ByteOffset uint64
	ByteSize   uint64

	// Texture range, valid when !full && !isBuffer. Bounds are inclusive.
	MipMin, MipMax     uint32
	SliceMin, SliceMax uint32
}

// FullResource is the range covering an entire resource.
func FullResource() ActiveRange { return ActiveRange{full: true} }

// BufferRange describes a byte range within a buffer.
func BufferRange(offset, size uint64) ActiveRange {
	return ActiveRange{isBuffer: true, ByteOffset: offset, ByteSize: size}
}

// TextureRange describes a level×slice rectangle within a texture. Levels
// and slices are inclusive bounds.
func TextureRange(mipMin, mipMax, sliceMin, sliceMax uint32) ActiveRange {
	return ActiveRange{MipMin: mipMin, MipMax: mipMax, SliceMin: sliceMin, SliceMax: sliceMax}
}

// IsFull reports whether r covers the entire resource.
func (r ActiveRange) IsFull() bool { return r.full }

// Intersects reports whether r and o provably overlap. A full-resource
// range is always treated as intersecting any other range, rather than
// guessed at: fullResource has no bounds to compare against a subresource
// rectangle.
func (r ActiveRange) Intersects(o ActiveRange) bool {
	if r.full || o.full {
		return true
	}
	if r.isBuffer != o.isBuffer {
		// A buffer range can never share memory with a texture range; this
		// only happens if the caller mixed ranges from two different
		// resources, which is a misuse, not an intersection.
		return false
	}
	if r.isBuffer {
		aEnd := r.ByteOffset + r.ByteSize
		bEnd := o.ByteOffset + o.ByteSize
		return r.ByteOffset < bEnd && o.ByteOffset < aEnd
	}
	return r.MipMin <= o.MipMax && o.MipMin <= r.MipMax &&
		r.SliceMin <= o.SliceMax && o.SliceMin <= r.SliceMax
}
