package rendergraph

import (
	"context"
	"sync"

	"github.com/arbor-gfx/rendergraph/framecmd"
	"github.com/arbor-gfx/rendergraph/hal"
)

// PassError pairs a pass index with the error its completion handler
// reported, part of a frame's sparse error list.
type PassError struct {
	PassIndex int
	Err       error
}

// FrameResult is returned by SubmitFrame: the command buffers submitted for
// the frame, in submission order, and a Wait that blocks until the queue
// has retired all of them and run their completion handlers.
type FrameResult struct {
	Info           framecmd.FrameCommandInfo
	CommandBuffers []hal.CommandBuffer

	mu        sync.Mutex
	done      bool
	passErrs  []PassError
	waitErr   error
	completed chan struct{}
}

func newFrameResult(info framecmd.FrameCommandInfo, buffers []hal.CommandBuffer) *FrameResult {
	return &FrameResult{
		Info:           info,
		CommandBuffers: buffers,
		completed:      make(chan struct{}),
	}
}

// complete is called by the Context's completion handler once the queue
// reports every command buffer in this frame retired.
func (r *FrameResult) complete(passErrs []PassError, err error) {
	r.mu.Lock()
	if r.done {
		r.mu.Unlock()
		return
	}
	r.done = true
	r.passErrs = passErrs
	r.waitErr = err
	r.mu.Unlock()
	close(r.completed)
}

// Wait blocks until the frame's command buffers have all completed, or ctx
// is cancelled first. It returns the frame-level error (if any) and the
// sparse per-pass errors its completion handlers reported.
func (r *FrameResult) Wait(ctx context.Context) ([]PassError, error) {
	select {
	case <-r.completed:
		r.mu.Lock()
		defer r.mu.Unlock()
		return r.passErrs, r.waitErr
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
