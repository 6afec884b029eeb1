package framecmd

import "github.com/arbor-gfx/rendergraph/resource"

// Encoder is a maximal run of consecutive passes of the same kind, with
// draws additionally required to share a compatible render target.
type Encoder struct {
	Kind                    PassKind
	PassStart, PassEnd      int // half-open [PassStart, PassEnd) into the frame's PassRecord slice
	CommandBufferIndex      int
	QueueCommandWaitIndices map[uint32]uint64
}

// PassRange returns the half-open pass index range this encoder covers.
func (e Encoder) PassRange() (int, int) { return e.PassStart, e.PassEnd }

// commandBufferBudget caps how many encoders may share one command buffer
// before a new one starts: multiple encoders may share a command buffer
// until it reaches a size/time budget. This is a size budget only; the
// assembler is responsible for any time-based budget a host wants to add
// on top.
const commandBufferBudget = 16

// Assign greedily groups passes into encoders: a new encoder starts when
// the next pass's kind differs from the current one, or when a draw pass's
// render target is incompatible with the previous draw's.
// frameBaseIndex is the first global monotonic command-buffer index this
// frame may use; Assign returns the encoders and FrameCommandInfo's global
// index counter positioned just past the last command buffer it assigned.
func Assign(passes []PassRecord, frameBaseIndex int) (encoders []Encoder, nextGlobalIndex int) {
	if len(passes) == 0 {
		return nil, frameBaseIndex
	}

	localCommandBufferIndex := 0
	encoderInCurrentBuffer := 0

	start := 0
	for i := 1; i <= len(passes); i++ {
		boundary := i == len(passes)
		if !boundary {
			prev, cur := passes[i-1], passes[i]
			if cur.Kind != prev.Kind {
				boundary = true
			} else if cur.Kind == PassDraw && !renderTargetsCompatible(prev.RenderTarget, cur.RenderTarget) {
				boundary = true
			}
		}
		if !boundary {
			continue
		}

		if encoderInCurrentBuffer >= commandBufferBudget {
			localCommandBufferIndex++
			encoderInCurrentBuffer = 0
		}

		encoders = append(encoders, Encoder{
			Kind:                    passes[start].Kind,
			PassStart:               start,
			PassEnd:                 i,
			CommandBufferIndex:      frameBaseIndex + localCommandBufferIndex,
			QueueCommandWaitIndices: make(map[uint32]uint64),
		})
		encoderInCurrentBuffer++
		start = i
	}

	return encoders, frameBaseIndex + localCommandBufferIndex + 1
}

// renderTargetsCompatible reports whether two draw passes may share an
// encoder. A nil render target (shouldn't occur for PassDraw, but handled
// defensively) never matches.
func renderTargetsCompatible(a, b *resource.RenderTargetDescriptor) bool {
	if a == nil || b == nil {
		return false
	}
	return a.Compatible(*b)
}
