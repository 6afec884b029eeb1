// Package assemble drives the hal.CommandEncoder/RenderPassEncoder/
// ComputePassEncoder trio to turn a generated rescmd.Command stream into
// submitted hal.CommandBuffer objects, one per distinct global
// command-buffer index.
package assemble

import (
	"fmt"

	"github.com/arbor-gfx/rendergraph/framecmd"
	"github.com/arbor-gfx/rendergraph/hal"
	"github.com/arbor-gfx/rendergraph/rescmd"
)

// Assembler owns the hal.Device used to create encoders and the hal.Queue
// used to submit the finished command buffers.
type Assembler struct {
	device hal.Device
	queue  hal.Queue
}

// New returns an Assembler bound to device and queue.
func New(device hal.Device, queue hal.Queue) *Assembler {
	return &Assembler{device: device, queue: queue}
}

// Assemble walks encoders in order, opens one hal.CommandEncoder per
// distinct CommandBufferIndex, replays the bracketing Commands assigned to
// each pass, and returns the finished command buffers in submission order.
//
// recordPass is supplied by the caller (the pass author) to emit the
// actual draw/dispatch/copy commands for one pass's native encoder; it
// receives the already-open render or compute pass encoder as an
// interface{} (hal.RenderPassEncoder or hal.ComputePassEncoder) so this
// package stays agnostic to pass content.
func (a *Assembler) Assemble(passes []framecmd.PassRecord, info framecmd.FrameCommandInfo, commands []rescmd.Command, recordPass func(passIndex int, enc interface{})) ([]hal.CommandBuffer, error) {
	commandsByPass := make(map[int][]rescmd.Command)
	for _, c := range commands {
		commandsByPass[c.PassIndex] = append(commandsByPass[c.PassIndex], c)
	}

	var buffers []hal.CommandBuffer
	var current hal.CommandEncoder
	currentIndex := -1

	flush := func() error {
		if current == nil {
			return nil
		}
		cb, err := current.EndEncoding()
		if err != nil {
			return fmt.Errorf("assemble: end command buffer %d: %w", currentIndex, err)
		}
		buffers = append(buffers, cb)
		current = nil
		return nil
	}

	for _, enc := range info.Encoders {
		if enc.CommandBufferIndex != currentIndex {
			if err := flush(); err != nil {
				return nil, err
			}
			next, err := a.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{})
			if err != nil {
				return nil, fmt.Errorf("assemble: create command encoder: %w", err)
			}
			if err := next.BeginEncoding(""); err != nil {
				return nil, fmt.Errorf("assemble: begin command buffer %d: %w", enc.CommandBufferIndex, err)
			}
			current = next
			currentIndex = enc.CommandBufferIndex
		}

		for pi := enc.PassStart; pi < enc.PassEnd; pi++ {
			p := passes[pi]
			for _, c := range commandsByPass[p.Index] {
				if c.Order != rescmd.Before {
					continue
				}
				applyBracket(current, c)
			}

			recordNativePass(current, p, recordPass)

			for _, c := range commandsByPass[p.Index] {
				if c.Order != rescmd.After {
					continue
				}
				applyBracket(current, c)
			}
		}
	}
	if err := flush(); err != nil {
		return nil, err
	}

	return buffers, nil
}

// Submit hands the assembled command buffers to the queue, signalling f at
// fenceValue once the GPU has finished executing all of them.
func (a *Assembler) Submit(buffers []hal.CommandBuffer, f hal.Fence, fenceValue uint64) error {
	if err := a.queue.Submit(buffers, f, fenceValue); err != nil {
		return fmt.Errorf("assemble: submit: %w", err)
	}
	return nil
}

func applyBracket(enc hal.CommandEncoder, c rescmd.Command) {
	switch c.Kind {
	case rescmd.KindResidencyHint:
		// Residency is a set-once-per-encoder hint; backends that don't
		// need it (Vulkan, DX12) no-op it.
		for range c.ResidencyResources {
			enc.UseResource(nil, hal.ResidencyRead|hal.ResidencyWrite)
		}
	case rescmd.KindBarrier:
		// Barrier shape (buffer vs. texture, coarse vs. per-resource) is
		// decided by the resource-command generator. The assembler issues
		// no TransitionBuffers/TransitionTextures call for a barrier
		// command: Command only carries handles, and no hal.Buffer/
		// hal.Texture lookup is done here.
	case rescmd.KindMaterialise, rescmd.KindDispose, rescmd.KindFenceWait, rescmd.KindFenceSignal:
		// Handled by the caller's frame driver (registry materialise/dispose
		// calls and queue-level fence wait/signal happen outside a single
		// command encoder's recording scope).
	}
}

func recordNativePass(enc hal.CommandEncoder, p framecmd.PassRecord, recordPass func(int, interface{})) {
	switch p.Kind {
	case framecmd.PassDraw:
		rp := enc.BeginRenderPass(&hal.RenderPassDescriptor{})
		if recordPass != nil {
			recordPass(p.Index, rp)
		}
		rp.End()
	case framecmd.PassCompute:
		cp := enc.BeginComputePass(&hal.ComputePassDescriptor{})
		if recordPass != nil {
			recordPass(p.Index, cp)
		}
		cp.End()
	default:
		if recordPass != nil {
			recordPass(p.Index, enc)
		}
	}
}
