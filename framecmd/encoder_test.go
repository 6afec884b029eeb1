package framecmd

import (
	"testing"

	"github.com/arbor-gfx/rendergraph/resource"
)

func rt(w, h uint32) *resource.RenderTargetDescriptor {
	return &resource.RenderTargetDescriptor{Width: w, Height: h, SampleCount: 1}
}

func TestAssign_SplitsOnKindChange(t *testing.T) {
	passes := []PassRecord{
		{Index: 0, Kind: PassCompute},
		{Index: 1, Kind: PassCompute},
		{Index: 2, Kind: PassDraw, RenderTarget: rt(64, 64)},
	}

	encoders, next := Assign(passes, 0)
	if len(encoders) != 2 {
		t.Fatalf("len(encoders) = %d, want 2", len(encoders))
	}
	if encoders[0].Kind != PassCompute || encoders[0].PassStart != 0 || encoders[0].PassEnd != 2 {
		t.Errorf("encoders[0] = %+v, want compute covering [0,2)", encoders[0])
	}
	if encoders[1].Kind != PassDraw || encoders[1].PassStart != 2 || encoders[1].PassEnd != 3 {
		t.Errorf("encoders[1] = %+v, want draw covering [2,3)", encoders[1])
	}
	if next != 1 {
		t.Errorf("nextGlobalIndex = %d, want 1", next)
	}
}

func TestAssign_SplitsOnIncompatibleRenderTarget(t *testing.T) {
	passes := []PassRecord{
		{Index: 0, Kind: PassDraw, RenderTarget: rt(64, 64)},
		{Index: 1, Kind: PassDraw, RenderTarget: rt(64, 64)},
		{Index: 2, Kind: PassDraw, RenderTarget: rt(128, 128)},
	}

	encoders, _ := Assign(passes, 0)
	if len(encoders) != 2 {
		t.Fatalf("len(encoders) = %d, want 2", len(encoders))
	}
	if encoders[0].PassStart != 0 || encoders[0].PassEnd != 2 {
		t.Errorf("encoders[0] should merge the two compatible 64x64 draws, got %+v", encoders[0])
	}
	if encoders[1].PassStart != 2 || encoders[1].PassEnd != 3 {
		t.Errorf("encoders[1] should isolate the incompatible 128x128 draw, got %+v", encoders[1])
	}
}

func TestAssign_MergesCompatibleDraws(t *testing.T) {
	passes := []PassRecord{
		{Index: 0, Kind: PassDraw, RenderTarget: rt(64, 64)},
		{Index: 1, Kind: PassDraw, RenderTarget: rt(64, 64)},
		{Index: 2, Kind: PassDraw, RenderTarget: rt(64, 64)},
	}
	encoders, _ := Assign(passes, 0)
	if len(encoders) != 1 {
		t.Fatalf("len(encoders) = %d, want 1", len(encoders))
	}
	if encoders[0].PassStart != 0 || encoders[0].PassEnd != 3 {
		t.Errorf("encoders[0] = %+v, want [0,3)", encoders[0])
	}
}

func TestAssign_EmptyPassesYieldsNoEncoders(t *testing.T) {
	encoders, next := Assign(nil, 7)
	if encoders != nil {
		t.Errorf("encoders = %+v, want nil", encoders)
	}
	if next != 7 {
		t.Errorf("nextGlobalIndex = %d, want 7 (unchanged)", next)
	}
}

func TestAssign_SharesCommandBufferUntilBudget(t *testing.T) {
	var passes []PassRecord
	for i := 0; i < commandBufferBudget+1; i++ {
		passes = append(passes,
			PassRecord{Index: 2 * i, Kind: PassCompute},
			PassRecord{Index: 2*i + 1, Kind: PassBlit},
		)
	}

	encoders, next := Assign(passes, 5)
	wantEncoders := 2 * (commandBufferBudget + 1)
	if len(encoders) != wantEncoders {
		t.Fatalf("len(encoders) = %d, want %d", len(encoders), wantEncoders)
	}

	for i, e := range encoders[:commandBufferBudget] {
		if e.CommandBufferIndex != 5 {
			t.Errorf("encoders[%d].CommandBufferIndex = %d, want 5 (within budget)", i, e.CommandBufferIndex)
		}
	}
	if encoders[commandBufferBudget].CommandBufferIndex != 6 {
		t.Errorf("encoders[%d].CommandBufferIndex = %d, want 6 (budget exceeded)", commandBufferBudget, encoders[commandBufferBudget].CommandBufferIndex)
	}
	if next != 8 {
		t.Errorf("nextGlobalIndex = %d, want 8", next)
	}
}

func TestAssign_TrailingCommandBufferDoesNotLeakIntoNextFrame(t *testing.T) {
	passes := []PassRecord{
		{Index: 0, Kind: PassCompute},
	}
	_, next := Assign(passes, 3)
	if next != 4 {
		t.Errorf("nextGlobalIndex = %d, want 4", next)
	}
}
