package assemble

import (
	"testing"

	"github.com/arbor-gfx/rendergraph/framecmd"
	"github.com/arbor-gfx/rendergraph/hal/noop"
	"github.com/arbor-gfx/rendergraph/rescmd"
	"github.com/arbor-gfx/rendergraph/resource"
)

func TestAssemble_OneCommandBufferPerIndex(t *testing.T) {
	rt := &resource.RenderTargetDescriptor{Width: 64, Height: 64, SampleCount: 1}
	passes := []framecmd.PassRecord{
		{Index: 0, Kind: framecmd.PassCompute},
		{Index: 1, Kind: framecmd.PassDraw, RenderTarget: rt},
	}
	info := framecmd.Build(passes, 0)

	a := New(&noop.Device{}, &noop.Queue{})

	var recorded []int
	buffers, err := a.Assemble(passes, info, nil, func(passIndex int, _ interface{}) {
		recorded = append(recorded, passIndex)
	})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if len(buffers) != info.CommandBufferCount() {
		t.Errorf("len(buffers) = %d, want %d", len(buffers), info.CommandBufferCount())
	}
	if len(recorded) != 2 {
		t.Fatalf("recorded = %v, want 2 passes visited", recorded)
	}
}

func TestAssemble_AppliesResidencyHintBeforePass(t *testing.T) {
	passes := []framecmd.PassRecord{
		{Index: 0, Kind: framecmd.PassCompute},
	}
	info := framecmd.Build(passes, 0)
	commands := []rescmd.Command{
		{PassIndex: 0, Order: rescmd.Before, Kind: rescmd.KindResidencyHint, ResidencyResources: nil},
	}

	a := New(&noop.Device{}, &noop.Queue{})
	if _, err := a.Assemble(passes, info, commands, nil); err != nil {
		t.Fatalf("Assemble: %v", err)
	}
}

func TestAssembler_Submit(t *testing.T) {
	a := New(&noop.Device{}, &noop.Queue{})
	if err := a.Submit(nil, nil, 0); err != nil {
		t.Fatalf("Submit: %v", err)
	}
}
