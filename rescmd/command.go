// Package rescmd generates the resource commands that bracket each
// encoder: residency hints, barriers, lifecycle materialise/dispose events,
// and the cross-encoder fence waits/signals the compaction pass assigns.
package rescmd

import (
	"github.com/arbor-gfx/rendergraph/resource"
	"github.com/arbor-gfx/rendergraph/usage"
)

// Order distinguishes commands that must run before an encoder's native
// commands from the ones that must run after. The final command stream is
// sorted by (passIndex, order).
type Order uint8

const (
	Before Order = iota
	After
)

// Kind identifies the shape of a generated resource command.
type Kind uint8

const (
	KindBarrier Kind = iota
	KindResidencyHint
	KindMaterialise
	KindDispose
	KindFenceWait
	KindFenceSignal
)

// barrierShapeThreshold is the resource-count boundary at which the
// generator switches from per-resource barriers to one coarse barrier: a
// run of at most 8 barriers in one (PassIndex, Order) bucket stays
// individual; a longer run is merged into a single CoarseScope barrier
// listing all of its resources. The shape is chosen by count only; a
// render-target scope does not by itself produce a coarse barrier.
const barrierShapeThreshold = 8

// Command is one generated resource command, ordered into the final
// per-encoder command stream by (PassIndex, Order).
type Command struct {
	PassIndex int
	Order     Order
	Kind      Kind

	// Barrier fields (KindBarrier).
	BarrierResources []resource.Handle
	FromUsage        usage.Type
	ToUsage          usage.Type
	CoarseScope      bool // true once len(BarrierResources) > barrierShapeThreshold

	// Residency fields (KindResidencyHint).
	ResidencyResources []resource.Handle

	// Lifecycle fields (KindMaterialise, KindDispose).
	Resource resource.Handle

	// Fence fields (KindFenceWait, KindFenceSignal).
	Queue      uint32
	FenceValue uint64
}
