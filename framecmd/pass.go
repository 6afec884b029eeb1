// Package framecmd groups a frame's passes into encoders and tracks the
// monotonic command-buffer indices and per-queue wait indices the rest of
// the pipeline stamps onto the command stream.
package framecmd

import (
	"github.com/arbor-gfx/rendergraph/resource"
	"github.com/arbor-gfx/rendergraph/usage"
)

// PassKind identifies the kind of native encoder a pass requires.
type PassKind uint8

const (
	PassDraw PassKind = iota
	PassCompute
	PassBlit
	PassExternal
	PassAccelerationStructure
	PassCPU
)

// CommandRange is the half-open [Start, End) range of low-level commands a
// pass recorded, in whatever command-list representation the caller uses.
type CommandRange struct {
	Start, End int
}

// Empty reports whether the range contributes no commands: passes with
// empty command ranges contribute no commands and no fences.
func (r CommandRange) Empty() bool { return r.Start >= r.End }

// ResourceUsage is one (handle, usageType, stages, activeRange) touch a
// pass makes on a resource. The pass author, not the generator, decides
// Type/Stages/Range: a blit pass reads with BlitSource and writes with
// BlitDestination, a draw pass touching only mip 0 of a texture narrows
// Range to that mip so an unrelated write to mip 1 never forces a barrier
// between them.
type ResourceUsage struct {
	Handle resource.Handle
	Type   usage.Type
	Stages usage.Stage
	Range  usage.ActiveRange
}

// PassRecord is one (passIndex, kind, renderTarget?, commandRange, reads,
// writes) entry submitted to the render graph.
type PassRecord struct {
	Index        int
	Kind         PassKind
	RenderTarget *resource.RenderTargetDescriptor // nil unless Kind == PassDraw
	Commands     CommandRange
	Reads        []ResourceUsage
	Writes       []ResourceUsage
}

// ReadHandles returns the resource handles touched by Reads, discarding
// usage detail; used by callers (purgeability touch, tests) that only
// need identity.
func (p PassRecord) ReadHandles() []resource.Handle {
	return handlesOf(p.Reads)
}

// WrittenHandles returns the resource handles touched by Writes,
// discarding usage detail.
func (p PassRecord) WrittenHandles() []resource.Handle {
	return handlesOf(p.Writes)
}

func handlesOf(usages []ResourceUsage) []resource.Handle {
	if len(usages) == 0 {
		return nil
	}
	out := make([]resource.Handle, len(usages))
	for i, u := range usages {
		out[i] = u.Handle
	}
	return out
}
