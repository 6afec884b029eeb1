package usage

import "testing"

func TestActiveRange_Intersects_Buffers(t *testing.T) {
	a := BufferRange(0, 128)
	b := BufferRange(64, 128)
	c := BufferRange(128, 64)

	if !a.Intersects(b) {
		t.Error("overlapping buffer ranges should intersect")
	}
	if a.Intersects(c) {
		t.Error("adjacent non-overlapping buffer ranges should not intersect")
	}
}

func TestActiveRange_Intersects_Textures(t *testing.T) {
	mip0 := TextureRange(0, 0, 0, 0)
	mip1 := TextureRange(1, 1, 0, 0)

	if mip0.Intersects(mip1) {
		t.Error("disjoint mip levels should not intersect")
	}
	if !mip0.Intersects(mip0) {
		t.Error("identical ranges should intersect")
	}
}

func TestActiveRange_Intersects_Full(t *testing.T) {
	full := FullResource()
	mip0 := TextureRange(0, 0, 0, 0)

	if !full.Intersects(mip0) {
		t.Error("fullResource must be treated as intersecting every subresource range")
	}
	if !mip0.Intersects(full) {
		t.Error("intersects must be symmetric for fullResource")
	}
}
