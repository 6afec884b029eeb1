package rendergraph

import (
	"fmt"

	"github.com/arbor-gfx/rendergraph/hal"
)

// Swapchain wraps a hal.Surface and tracks the window-handle texture a
// frame's draw passes render into, handling drawable acquire failures via
// InvalidDrawableError.
type Swapchain struct {
	surface hal.Surface
	width   uint32
	height  uint32
}

// NewSwapchain wraps surface, already configured by the caller via
// hal.Surface.Configure.
func NewSwapchain(surface hal.Surface, width, height uint32) *Swapchain {
	return &Swapchain{surface: surface, width: width, height: height}
}

// Drawable is the acquired per-frame window-handle texture a draw pass may
// render into and must present or discard exactly once.
type Drawable struct {
	Texture    hal.SurfaceTexture
	Suboptimal bool
}

// Acquire retrieves the next drawable from the swapchain's surface,
// wrapping acquisition failures in *InvalidDrawableError.
func (s *Swapchain) Acquire(fence hal.Fence) (*Drawable, error) {
	acquired, err := s.surface.AcquireTexture(fence)
	if err != nil {
		return nil, &InvalidDrawableError{
			RequestedWidth:  s.width,
			RequestedHeight: s.height,
			Cause:           err,
		}
	}
	return &Drawable{Texture: acquired.Texture, Suboptimal: acquired.Suboptimal}, nil
}

// Discard abandons a drawable without presenting it, used when a frame's
// draw passes failed before reaching Present.
func (s *Swapchain) Discard(d *Drawable) {
	s.surface.DiscardTexture(d.Texture)
}

// Present hands a drawable to queue for presentation.
func (s *Swapchain) Present(queue hal.Queue, d *Drawable) error {
	if err := queue.Present(s.surface, d.Texture); err != nil {
		return fmt.Errorf("rendergraph: present: %w", err)
	}
	return nil
}

// Resize updates the tracked drawable size; the caller is still
// responsible for calling hal.Surface.Configure with the new size.
func (s *Swapchain) Resize(width, height uint32) {
	s.width, s.height = width, height
}
