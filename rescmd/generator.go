package rescmd

import (
	"sort"

	"github.com/arbor-gfx/rendergraph/depsolve"
	"github.com/arbor-gfx/rendergraph/fence"
	"github.com/arbor-gfx/rendergraph/framecmd"
	"github.com/arbor-gfx/rendergraph/resource"
	"github.com/arbor-gfx/rendergraph/usage"
)

// Generator walks a frame's encoders in submission order and produces the
// resource commands that bracket each one: residency hints batched at
// encoder start, barriers for usage transitions within the encoder, and
// cross-encoder fence waits/signals once the dependency graph has been
// reduced.
type Generator struct {
	table    *usage.Table
	indices  map[resource.Handle]usage.Index
	nextSlot usage.Index
	deps     *depsolve.Table
	fences   *fence.Registry
	queue    uint32

	// queueSync is consulted, and updated, for every usage so a resource
	// touched by another queue's Generator since this queue last touched it
	// gets a wait stamped on the consuming encoder. May be nil: a Context
	// with no resources shared across queues has no need of one.
	queueSync *QueueSync
}

// NewGenerator returns a Generator that allocates fences from registry for
// the given queue. queueSync may be nil if this queue never shares
// persistent resources with another queue's Generator.
func NewGenerator(registry *fence.Registry, queue uint32, queueSync *QueueSync) *Generator {
	return &Generator{
		table:     usage.NewTable(),
		indices:   make(map[resource.Handle]usage.Index),
		deps:      depsolve.NewTable(),
		fences:    registry,
		queue:     queue,
		queueSync: queueSync,
	}
}

func (g *Generator) slot(h resource.Handle) usage.Index {
	if idx, ok := g.indices[h]; ok {
		return idx
	}
	idx := g.nextSlot
	g.nextSlot++
	g.indices[h] = idx
	return idx
}

// Generate produces the full ordered resource-command stream for one
// frame's encoders, given the PassRecords they were assigned from.
func (g *Generator) Generate(passes []framecmd.PassRecord, encoders []framecmd.Encoder) ([]Command, error) {
	var commands []Command

	// encoderOfPass maps a pass's global Index to the encoder that owns it,
	// so a usage hazard found against an earlier pass can tell whether that
	// pass shares this usage's encoder (same-encoder: emit a barrier here)
	// or landed in a prior one (cross-encoder: the encoder-dependency solver
	// and its fence own that ordering instead; see Compact).
	encoderOfPass := make(map[int]int, len(passes))
	for i, enc := range encoders {
		for pi := enc.PassStart; pi < enc.PassEnd; pi++ {
			encoderOfPass[passes[pi].Index] = i
		}
	}

	for encoderIdx, enc := range encoders {
		var reads, writes []resource.Handle

		for pi := enc.PassStart; pi < enc.PassEnd; pi++ {
			p := passes[pi]
			// Conflicts are checked per pass; usages in different passes of
			// the same encoder are ordered by the barriers emitted below.
			scope := usage.NewScope()

			for _, u := range p.Reads {
				idx := g.slot(u.Handle)
				if err := scope.Add(idx, u.Type, u.Stages); err != nil {
					return nil, err
				}
				reads = append(reads, u.Handle)

				if rec, ok := g.table.Get(idx).PreviousWrite(p.Index, u.Range); ok && encoderOfPass[rec.PassIndex] == encoderIdx {
					commands = append(commands, Command{
						PassIndex:        p.Index,
						Order:            Before,
						Kind:             KindBarrier,
						BarrierResources: []resource.Handle{u.Handle},
						FromUsage:        rec.Type,
						ToUsage:          u.Type,
					})
				}
				g.table.Record(idx, usage.Record{PassIndex: p.Index, Type: u.Type, Stages: u.Stages, Range: u.Range})
				g.crossQueueWait(u.Handle, false, &enc)
			}

			for _, u := range p.Writes {
				idx := g.slot(u.Handle)
				if err := scope.Add(idx, u.Type, u.Stages); err != nil {
					return nil, err
				}
				writes = append(writes, u.Handle)

				tr := g.table.Get(idx)
				if rec, ok := tr.PreviousWrite(p.Index, u.Range); ok && encoderOfPass[rec.PassIndex] == encoderIdx {
					commands = append(commands, Command{
						PassIndex:        p.Index,
						Order:            Before,
						Kind:             KindBarrier,
						BarrierResources: []resource.Handle{u.Handle},
						FromUsage:        rec.Type,
						ToUsage:          u.Type,
					})
				} else if rec, ok := tr.PreviousRead(p.Index, u.Range); ok && encoderOfPass[rec.PassIndex] == encoderIdx {
					commands = append(commands, Command{
						PassIndex:        p.Index,
						Order:            Before,
						Kind:             KindBarrier,
						BarrierResources: []resource.Handle{u.Handle},
						FromUsage:        rec.Type,
						ToUsage:          u.Type,
					})
				}
				tr.Append(usage.Record{PassIndex: p.Index, Type: u.Type, Stages: u.Stages, Range: u.Range})
				g.crossQueueWait(u.Handle, true, &enc)
			}
		}

		commands = append(commands, residencyCommand(enc, reads, writes)...)

		g.deps.Record(encoderIdx, reads, writes)
	}

	sortCommands(commands)
	return coalesceBarriers(commands), nil
}

// crossQueueWait pulls h's last-write (and, for a write usage, last-read)
// stamp from every other queue into enc's QueueCommandWaitIndices, then
// records this queue's own touch so a later queue waits on it in turn.
func (g *Generator) crossQueueWait(h resource.Handle, forWrite bool, enc *framecmd.Encoder) {
	if g.queueSync == nil {
		return
	}
	for _, w := range g.queueSync.waitsFor(h, g.queue, forWrite) {
		stampWait(enc, w)
	}
	if forWrite {
		g.queueSync.recordWrite(h, g.queue, uint64(enc.CommandBufferIndex))
	} else {
		g.queueSync.recordRead(h, g.queue, uint64(enc.CommandBufferIndex))
	}
}

func residencyCommand(enc framecmd.Encoder, reads, writes []resource.Handle) []Command {
	if len(reads) == 0 && len(writes) == 0 {
		return nil
	}
	all := make([]resource.Handle, 0, len(reads)+len(writes))
	all = append(all, reads...)
	all = append(all, writes...)
	return []Command{{
		PassIndex:          enc.PassStart,
		Order:              Before,
		Kind:               KindResidencyHint,
		ResidencyResources: all,
	}}
}

func sortCommands(commands []Command) {
	sort.SliceStable(commands, func(i, j int) bool {
		if commands[i].PassIndex != commands[j].PassIndex {
			return commands[i].PassIndex < commands[j].PassIndex
		}
		return commands[i].Order < commands[j].Order
	})
}

// coalesceBarriers collapses, per (PassIndex, Order) bucket, any run of
// individual-resource barriers past barrierShapeThreshold into a single
// coarse barrier.
func coalesceBarriers(commands []Command) []Command {
	out := make([]Command, 0, len(commands))
	i := 0
	for i < len(commands) {
		if commands[i].Kind != KindBarrier {
			out = append(out, commands[i])
			i++
			continue
		}
		j := i
		for j < len(commands) && commands[j].Kind == KindBarrier &&
			commands[j].PassIndex == commands[i].PassIndex && commands[j].Order == commands[i].Order {
			j++
		}
		if j-i <= barrierShapeThreshold {
			out = append(out, commands[i:j]...)
		} else {
			coarse := commands[i]
			coarse.CoarseScope = true
			coarse.BarrierResources = nil
			for _, c := range commands[i:j] {
				coarse.BarrierResources = append(coarse.BarrierResources, c.BarrierResources...)
			}
			out = append(out, coarse)
		}
		i = j
	}
	return out
}
