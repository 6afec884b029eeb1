package rescmd

import (
	"github.com/arbor-gfx/rendergraph/depsolve"
	"github.com/arbor-gfx/rendergraph/fence"
	"github.com/arbor-gfx/rendergraph/framecmd"
)

// Compact runs transitive reduction over the encoder dependency edges
// gathered during Generate and stamps a fence signal on each dependency's
// source encoder and a matching wait on its destination, appending both to
// commands. Each reduced edge gets exactly one fence, tagged with the
// destination encoder's global command-buffer index so the registry can
// recycle it once that command buffer retires.
func (g *Generator) Compact(passes []framecmd.PassRecord, encoders []framecmd.Encoder, commands []Command) ([]Command, error) {
	edges := g.deps.Edges()
	reduced := depsolve.Reduce(len(encoders), edges)

	for _, e := range reduced {
		dst := encoders[e.From] // waits
		src := encoders[e.To]   // signals

		key := fence.Key{Queue: g.queue, Encoder: e.To}
		tag := uint64(src.CommandBufferIndex)
		if uint64(dst.CommandBufferIndex) > tag {
			tag = uint64(dst.CommandBufferIndex)
		}

		f, err := g.fences.Acquire(key, uint64(src.CommandBufferIndex), tag)
		if err != nil {
			return nil, err
		}

		commands = append(commands,
			Command{
				PassIndex:  lastPassIndex(passes, src),
				Order:      After,
				Kind:       KindFenceSignal,
				Queue:      g.queue,
				FenceValue: f.CommandBufferIndex(),
			},
			Command{
				PassIndex:  firstPassIndex(passes, dst),
				Order:      Before,
				Kind:       KindFenceWait,
				Queue:      g.queue,
				FenceValue: f.CommandBufferIndex(),
			},
		)
	}

	sortCommands(commands)
	return commands, nil
}

func firstPassIndex(passes []framecmd.PassRecord, enc framecmd.Encoder) int {
	return passes[enc.PassStart].Index
}

func lastPassIndex(passes []framecmd.PassRecord, enc framecmd.Encoder) int {
	return passes[enc.PassEnd-1].Index
}
