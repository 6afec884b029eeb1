// Package usage records how each resource is touched by each pass and
// answers the ordering queries the resource-command generator needs:
// "what was the last write before pass i that could conflict with this
// range" and its read-side counterpart. usageType and stages are shared
// bit sets across every resource kind rather than tracked separately per
// kind.
package usage

// Type is the bit set of ways a pass can touch a resource in one usage
// record.
type Type uint32

const (
	ShaderRead Type = 1 << iota
	ShaderWrite
	ColorAttachment
	DepthStencilAttachment
	InputAttachment
	BlitSource
	BlitDestination
	VertexBuffer
	IndexBuffer
	ConstantBuffer
	CPURead
	CPUWrite
	// FrameStartLayoutTransitionCheck marks a synthetic usage inserted at
	// the start of a frame to force a layout/barrier check against the
	// previous frame's last usage; it carries no read or write semantics
	// of its own.
	FrameStartLayoutTransitionCheck
)

const writeMask = ShaderWrite | ColorAttachment | DepthStencilAttachment | BlitDestination | CPUWrite
const cpuMask = CPURead | CPUWrite

// Contains reports whether all bits in other are set in t.
func (t Type) Contains(other Type) bool { return t&other == other }

// IsWrite reports whether t includes any write-class usage.
func (t Type) IsWrite() bool { return t&writeMask != 0 }

// IsReadOnly reports whether t contains no write-class usage.
func (t Type) IsReadOnly() bool { return !t.IsWrite() }

// IsCPUOnly reports whether t is exclusively CPU-side access, which the
// resource-command generator must skip entirely: a resource accessed only
// by the CPU produces no GPU commands.
func (t Type) IsCPUOnly() bool { return t != 0 && t&^cpuMask == 0 }

// IsCompatible reports whether two usages may coexist without a barrier
// between them: empty usage is compatible with anything, and two read-only
// usages are always compatible with each other. Any usage involving a write
// requires the usages to be identical to be considered compatible.
func (t Type) IsCompatible(other Type) bool {
	if t == 0 || other == 0 {
		return true
	}
	if t.IsReadOnly() && other.IsReadOnly() {
		return true
	}
	return t == other
}

// Stage is the bit set of pipeline stages a usage executes in.
type Stage uint32

const (
	StageVertex Stage = 1 << iota
	StageFragment
	StageCompute
	StageTile
	StageObject
	StageMesh
)

// Contains reports whether all bits in other are set in s.
func (s Stage) Contains(other Stage) bool { return s&other == other }
