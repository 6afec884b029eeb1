package registry

import (
	"testing"

	"github.com/arbor-gfx/rendergraph/resource"
	"github.com/gogpu/gputypes"
)

func TestTextureRegistry_RoutesDepthVsColor(t *testing.T) {
	reg := NewTextureRegistry(testRouter(), false, false)

	depthDesc := resource.TextureDescriptor{Width: 64, Height: 64, Format: gputypes.TextureFormatDepth32Float, Storage: resource.StoragePrivate}
	colorDesc := resource.TextureDescriptor{Width: 64, Height: 64, Format: gputypes.TextureFormatRGBA8Unorm, Storage: resource.StoragePrivate}

	if _, err := reg.MaterialiseTransient(0, depthDesc, resource.FlagNone); err != nil {
		t.Fatalf("MaterialiseTransient(depth): %v", err)
	}
	if _, err := reg.MaterialiseTransient(1, colorDesc, resource.FlagNone); err != nil {
		t.Fatalf("MaterialiseTransient(color): %v", err)
	}

	if reg.router.DepthHeap.Stats().UsedSize == 0 {
		t.Error("expected the depth texture to be collected from the depth heap")
	}
	if reg.router.ColorHeap.Stats().UsedSize == 0 {
		t.Error("expected the color texture to be collected from the color heap")
	}
}

func TestTextureRegistry_IsMemoryless(t *testing.T) {
	reg := NewTextureRegistry(testRouter(), true, true)
	desc := resource.TextureDescriptor{Width: 64, Height: 64, Storage: resource.StorageMemoryless}
	if !reg.IsMemoryless(desc, resource.FlagNone) {
		t.Error("expected a memoryless-storage texture on a memoryless-capable unified-memory device to route to the memoryless pool")
	}

	reg2 := NewTextureRegistry(testRouter(), false, false)
	if reg2.IsMemoryless(desc, resource.FlagNone) {
		t.Error("expected no memoryless routing on a device without unified memory or memoryless capability")
	}
}
