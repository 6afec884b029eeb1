package rendergraph

import (
	"fmt"
	"sync"
	"time"

	"github.com/arbor-gfx/rendergraph/assemble"
	"github.com/arbor-gfx/rendergraph/fence"
	"github.com/arbor-gfx/rendergraph/framecmd"
	"github.com/arbor-gfx/rendergraph/hal"
	"github.com/arbor-gfx/rendergraph/internal/thread"
	"github.com/arbor-gfx/rendergraph/purge"
	"github.com/arbor-gfx/rendergraph/rescmd"
)

// completionTimeout bounds how long SubmitFrame's background completion
// watcher waits on the GPU before giving up and reporting the frame failed,
// guarding against a lost device wedging the queue forever.
const completionTimeout = 30 * time.Second

// Context drives one hal.Queue's frame loop: it assigns encoders to a
// frame's passes (framecmd), derives the barrier/residency/fence command
// stream (rescmd), assembles and submits command buffers (assemble), and
// retires fences and sweeps purgeability once the GPU reports completion.
//
// All device-touching work runs on a dedicated OS thread via
// internal/thread.RenderLoop, keeping a host window's event loop responsive
// during heavy GPU operations.
type Context struct {
	device hal.Device
	queue  hal.Queue
	loop   *thread.RenderLoop

	fences     *fence.Registry
	purgeMgr   *purge.Manager
	generator  *rescmd.Generator
	assembler  *assemble.Assembler
	queueFence hal.Fence

	opts ContextOptions

	mu             sync.Mutex
	closed         bool
	frameInFlight  bool
	frameBaseIndex int
	nextFenceValue uint64
}

// NewContext returns a Context driving queueIndex on queue/device, using
// opts (DefaultContextOptions if the caller has no preference).
func NewContext(device hal.Device, queue hal.Queue, queueIndex uint32, opts ContextOptions) (*Context, error) {
	queueFence, err := device.CreateFence()
	if err != nil {
		return nil, fmt.Errorf("rendergraph: create queue completion fence: %w", err)
	}
	fences := fence.NewRegistry(device)
	return &Context{
		device:     device,
		queue:      queue,
		loop:       thread.NewRenderLoop(),
		fences:     fences,
		purgeMgr:   purge.NewManager(opts.PurgeQuietFrames),
		generator:  rescmd.NewGenerator(fences, queueIndex, opts.QueueSync),
		assembler:  assemble.New(device, queue),
		queueFence: queueFence,
		opts:       opts,
	}, nil
}

// SubmitFrame assigns encoders to passes, generates and compacts the
// resource-command stream, assembles command buffers, and submits them.
// recordPass is invoked once per pass, bracketed by the pass's barriers and
// residency hints, to record its native commands onto the active encoder.
//
// SubmitFrame returns as soon as the frame's command buffers have been
// handed to the GPU; call FrameResult.Wait to block until they retire.
// Only one frame may be in flight per Context at a time; a second call
// before the first completes returns ErrFrameInFlight.
func (c *Context) SubmitFrame(passes []framecmd.PassRecord, recordPass func(passIndex int, enc interface{})) (*FrameResult, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil, ErrContextClosed
	}
	if c.frameInFlight {
		c.mu.Unlock()
		return nil, ErrFrameInFlight
	}
	c.frameInFlight = true
	frameBaseIndex := c.frameBaseIndex
	c.nextFenceValue++
	fenceValue := c.nextFenceValue
	c.mu.Unlock()

	var (
		result *FrameResult
		info   framecmd.FrameCommandInfo
		runErr error
	)
	c.loop.RunOnRenderThreadVoid(func() {
		for _, p := range passes {
			for _, h := range p.ReadHandles() {
				c.purgeMgr.Touch(h)
			}
			for _, h := range p.WrittenHandles() {
				c.purgeMgr.Touch(h)
			}
		}

		info = framecmd.Build(passes, frameBaseIndex)

		commands, err := c.generator.Generate(passes, info.Encoders)
		if err != nil {
			runErr = fmt.Errorf("rendergraph: generate resource commands: %w", err)
			return
		}
		commands, err = c.generator.Compact(passes, info.Encoders, commands)
		if err != nil {
			runErr = fmt.Errorf("rendergraph: compact fences: %w", err)
			return
		}

		buffers, err := c.assembler.Assemble(passes, info, commands, recordPass)
		if err != nil {
			runErr = fmt.Errorf("rendergraph: assemble command buffers: %w", err)
			return
		}
		if err := c.assembler.Submit(buffers, c.queueFence, fenceValue); err != nil {
			runErr = err
			return
		}

		result = newFrameResult(info, buffers)
	})

	if runErr != nil {
		c.mu.Lock()
		c.frameInFlight = false
		c.mu.Unlock()
		return nil, runErr
	}

	c.mu.Lock()
	c.frameBaseIndex = info.NextGlobalIndex
	c.mu.Unlock()

	go c.awaitCompletion(result, fenceValue, uint64(info.NextGlobalIndex-1))
	return result, nil
}

// awaitCompletion blocks on the queue fence reaching fenceValue, then
// retires every tracked fence up to completedCommandBufferIndex, sweeps
// purgeability, and marks result complete.
func (c *Context) awaitCompletion(result *FrameResult, fenceValue uint64, completedCommandBufferIndex uint64) {
	reached, err := c.device.Wait(c.queueFence, fenceValue, completionTimeout)

	c.mu.Lock()
	c.frameInFlight = false
	c.mu.Unlock()

	c.fences.Retire(completedCommandBufferIndex)
	c.purgeMgr.AdvanceFrame()
	c.purgeMgr.Sweep()

	switch {
	case err != nil:
		result.complete(nil, fmt.Errorf("rendergraph: wait for frame completion: %w", err))
	case !reached:
		result.complete(nil, fmt.Errorf("rendergraph: frame did not complete within %s", completionTimeout))
	default:
		result.complete(nil, nil)
	}
}

// Close stops the Context's render thread and releases its fence pool. No
// frame may be in flight when Close is called.
func (c *Context) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()

	c.loop.Stop()
	c.fences.Destroy()
	c.device.DestroyFence(c.queueFence)
	return nil
}
