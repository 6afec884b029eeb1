package rendergraph

import "github.com/arbor-gfx/rendergraph/rescmd"

// ContextOptions configures a Context at construction. There is no
// env/flag-parsing layer here — a host application owns that; this backend
// only accepts a plain struct, deliberately carrying no configuration file
// format or environment variable scheme of its own.
type ContextOptions struct {
	// QueueCount is a number of hal.Queue objects. NewContext does not read
	// it: a Context drives the single queue it is given.
	QueueCount uint32

	// TransientArenaSize is an initial size for the per-frame transient
	// sub-buffer and heap allocators. NewContext does not read it; those
	// allocators take their sizes from alloc.NewHeap/NewSubBuffer directly.
	TransientArenaSize uint64

	// InflightFrameCount is a count of frames whose transient sub-buffer
	// blocks may be outstanding at once. NewContext does not read it;
	// alloc.NewSubBuffer takes its own in-flight frame count.
	InflightFrameCount int

	// PurgeQuietFrames is the number of frames a transient allocator must
	// see no activity before the purgeability manager marks it volatile.
	PurgeQuietFrames uint64

	// ShaderLibraryPath is a path for a ShaderLibrary's WGSL source.
	// NewContext does not read it or open a ShaderLibrary; OpenShaderLibrary
	// takes its path directly.
	ShaderLibraryPath string

	// QueueSync tracks cross-queue touches of persistent resources. Pass the
	// same QueueSync into every Context whose queues may read or write the
	// same persistent resource; leave nil if this Context's queue never
	// shares resources with another queue.
	QueueSync *rescmd.QueueSync
}

// DefaultContextOptions returns the options a Context uses when none are
// supplied.
func DefaultContextOptions() ContextOptions {
	return ContextOptions{
		QueueCount:         1,
		TransientArenaSize: 16 << 20,
		InflightFrameCount: 3,
		PurgeQuietFrames:   60,
	}
}
