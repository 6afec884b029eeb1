package rescmd

import (
	"testing"

	"github.com/arbor-gfx/rendergraph/fence"
	"github.com/arbor-gfx/rendergraph/framecmd"
	"github.com/arbor-gfx/rendergraph/hal/noop"
	"github.com/arbor-gfx/rendergraph/resource"
	"github.com/arbor-gfx/rendergraph/usage"
)

func TestGenerator_CompactEmitsFenceAcrossEncoders(t *testing.T) {
	buf := handle(resource.KindBuffer, 0)
	passes := []framecmd.PassRecord{
		{Index: 0, Kind: framecmd.PassCompute, Writes: []framecmd.ResourceUsage{
			readUsage(buf, usage.ShaderWrite, usage.StageCompute, usage.FullResource()),
		}},
		{Index: 1, Kind: framecmd.PassDraw, RenderTarget: rtStub(), Reads: []framecmd.ResourceUsage{
			readUsage(buf, usage.ShaderRead, usage.StageFragment, usage.FullResource()),
		}},
	}
	encoders, _ := framecmd.Assign(passes, 0)
	if len(encoders) != 2 {
		t.Fatalf("expected compute and draw to land in separate encoders, got %d", len(encoders))
	}

	reg := fence.NewRegistry(&noop.Device{})
	g := NewGenerator(reg, 0, nil)

	commands, err := g.Generate(passes, encoders)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	commands, err = g.Compact(passes, encoders, commands)
	if err != nil {
		t.Fatalf("Compact: %v", err)
	}

	var signals, waits int
	for _, c := range commands {
		switch c.Kind {
		case KindFenceSignal:
			signals++
		case KindFenceWait:
			waits++
		}
	}
	if signals != 1 || waits != 1 {
		t.Errorf("signals=%d waits=%d, want 1 and 1", signals, waits)
	}
	if reg.PendingCount() != 1 {
		t.Errorf("PendingCount() = %d, want 1 (the fence Compact acquired)", reg.PendingCount())
	}
}

func TestGenerator_CompactNoDependencyNoFence(t *testing.T) {
	a := handle(resource.KindBuffer, 0)
	b := handle(resource.KindBuffer, 1)
	passes := []framecmd.PassRecord{
		{Index: 0, Kind: framecmd.PassCompute, Writes: []framecmd.ResourceUsage{
			readUsage(a, usage.ShaderWrite, usage.StageCompute, usage.FullResource()),
		}},
		{Index: 1, Kind: framecmd.PassCompute, Writes: []framecmd.ResourceUsage{
			readUsage(b, usage.ShaderWrite, usage.StageCompute, usage.FullResource()),
		}},
	}
	encoders, _ := framecmd.Assign(passes, 0) // same kind: one encoder, so no cross-encoder edge

	reg := fence.NewRegistry(&noop.Device{})
	g := NewGenerator(reg, 0, nil)
	commands, err := g.Generate(passes, encoders)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	commands, err = g.Compact(passes, encoders, commands)
	if err != nil {
		t.Fatalf("Compact: %v", err)
	}
	for _, c := range commands {
		if c.Kind == KindFenceSignal || c.Kind == KindFenceWait {
			t.Errorf("unexpected fence command for unrelated resources in one encoder: %+v", c)
		}
	}
}

func rtStub() *resource.RenderTargetDescriptor {
	return &resource.RenderTargetDescriptor{Width: 64, Height: 64, SampleCount: 1}
}
