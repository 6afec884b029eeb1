package resource

import "github.com/gogpu/gputypes"

// StorageMode selects where a resource's bytes physically live.
type StorageMode uint8

const (
	StorageShared StorageMode = iota
	StorageManaged
	StoragePrivate
	StorageMemoryless
)

// CacheMode hints the CPU cache behaviour for shared/managed storage.
type CacheMode uint8

const (
	CacheDefault CacheMode = iota
	CacheWriteCombined
)

// BufferDescriptor describes a buffer resource, transient or persistent.
type BufferDescriptor struct {
	Label     string
	Size      uint64
	Usage     gputypes.BufferUsage
	Storage   StorageMode
	Cache     CacheMode
	Immutable bool // not read by the registries; FlagImmutableOnceInitialised is not set from it
}

// TextureDescriptor describes a texture resource.
type TextureDescriptor struct {
	Label         string
	Width, Height uint32
	Depth         uint32 // DepthOrArrayLayers
	MipLevelCount uint32
	SampleCount   uint32
	Format        gputypes.TextureFormat
	Usage         gputypes.TextureUsage
	Storage       StorageMode
	Cache         CacheMode
	// WindowHandle marks this descriptor as backing a swapchain drawable.
	// The registries do not read it; materialisation is the same as for
	// any other texture.
	WindowHandle bool
	// HistoryBuffer marks the texture as a history buffer. The registries
	// do not read it; routing to the history pool follows
	// FlagHistoryBuffer in the flags passed at materialisation.
	HistoryBuffer bool
}

// IsDepthStencil reports whether the format requires the depth heap
// allocator rather than the color heap allocator.
func (d *TextureDescriptor) IsDepthStencil() bool {
	switch d.Format {
	case gputypes.TextureFormatDepth16Unorm,
		gputypes.TextureFormatDepth24Plus,
		gputypes.TextureFormatDepth24PlusStencil8,
		gputypes.TextureFormatDepth32Float,
		gputypes.TextureFormatDepth32FloatStencil8,
		gputypes.TextureFormatStencil8:
		return true
	default:
		return false
	}
}

// HeapDescriptor describes a native heap from which private buffers and
// textures are sub-allocated.
type HeapDescriptor struct {
	Label string
	Size  uint64
	// Depth selects the depth-heap allocator pool rather than the color
	// one; heaps are never shared between the two.
	Depth bool
}

// ArgumentBufferDescriptor describes a packed resource-binding buffer.
type ArgumentBufferDescriptor struct {
	Label        string
	EncodedBytes uint64
}

// ArgumentBufferArrayDescriptor describes a fixed-size array of argument
// buffers sharing one allocation.
type ArgumentBufferArrayDescriptor struct {
	Label        string
	Count        uint32
	EncodedBytes uint64
}

// SamplerDescriptor describes a texture sampler.
type SamplerDescriptor struct {
	Label        string
	AddressModeU gputypes.AddressMode
	AddressModeV gputypes.AddressMode
	AddressModeW gputypes.AddressMode
	MagFilter    gputypes.FilterMode
	MinFilter    gputypes.FilterMode
	MipmapFilter gputypes.FilterMode
	Compare      gputypes.CompareFunction
}

// AccelerationStructureDescriptor describes a ray-tracing acceleration
// structure build target.
type AccelerationStructureDescriptor struct {
	Label       string
	SizeEstimate uint64
	IsTopLevel  bool
}

// FunctionTableDescriptor describes a visible- or intersection-function
// table used by ray-tracing/mesh pipelines.
type FunctionTableDescriptor struct {
	Label         string
	FunctionCount uint32
	Intersection  bool // false: visible function table, true: intersection
}

// RenderTargetDescriptor describes the attachments of a draw-pass encoder,
// used to decide encoder compatibility and memoryless eligibility.
type RenderTargetDescriptor struct {
	ColorAttachments       []Handle
	DepthStencilAttachment Handle
	Width, Height          uint32
	SampleCount            uint32
}

// Compatible reports whether two render targets may share one encoder: an
// incompatible render target starts a new encoder.
func (d RenderTargetDescriptor) Compatible(o RenderTargetDescriptor) bool {
	if d.Width != o.Width || d.Height != o.Height || d.SampleCount != o.SampleCount {
		return false
	}
	if len(d.ColorAttachments) != len(o.ColorAttachments) {
		return false
	}
	for i := range d.ColorAttachments {
		if d.ColorAttachments[i] != o.ColorAttachments[i] {
			return false
		}
	}
	return d.DepthStencilAttachment == o.DepthStencilAttachment
}
