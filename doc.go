// Package rendergraph implements a GPU render-graph backend: given a
// frame's ordered passes and the resources they read and write, it assigns
// passes to encoders, derives the barrier/residency/fence command stream
// those encoders need, assembles and submits command buffers on a hal.Queue,
// and tracks resource purgeability across frames.
//
// A Context drives one queue's frame loop (SubmitFrame). Its subpackages
// each own one stage of that pipeline: framecmd assigns encoders,
// depsolve and rescmd derive the cross-encoder dependency and resource
// command stream, assemble replays that stream around native pass
// recording, and purge tracks purgeable transient memory. resource, usage,
// fence, alloc, and registry provide the shared resource model underneath
// all of them.
package rendergraph
