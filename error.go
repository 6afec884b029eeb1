package rendergraph

import (
	"errors"
	"fmt"
)

// Sentinel errors for unparameterized conditions. Richer, parameterized
// failures below are concrete struct types instead.
var (
	// ErrFrameInFlight is returned by SubmitFrame when the previous frame on
	// the same queue has not yet completed.
	ErrFrameInFlight = errors.New("rendergraph: previous frame still in flight")

	// ErrContextClosed is returned by any Context operation after Close.
	ErrContextClosed = errors.New("rendergraph: context closed")
)

// InvalidDrawableError reports that a swapchain drawable could not be
// acquired at the requested size.
type InvalidDrawableError struct {
	RequestedWidth, RequestedHeight uint32
	AcquiredWidth, AcquiredHeight   uint32
	Cause                           error
}

func (e *InvalidDrawableError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid drawable: acquire failed: %v", e.Cause)
	}
	return fmt.Sprintf("invalid drawable: requested %dx%d, acquired %dx%d",
		e.RequestedWidth, e.RequestedHeight, e.AcquiredWidth, e.AcquiredHeight)
}

func (e *InvalidDrawableError) Unwrap() error { return e.Cause }

// IsInvalidDrawableError reports whether err is an *InvalidDrawableError.
func IsInvalidDrawableError(err error) bool {
	var e *InvalidDrawableError
	return errors.As(err, &e)
}

// ResourceAllocationFailureError reports that the device refused an
// allocation even after the allocator's growth/retry policy ran out.
type ResourceAllocationFailureError struct {
	Label         string
	RequestedSize uint64
	Cause         error
}

func (e *ResourceAllocationFailureError) Error() string {
	label := e.Label
	if label == "" {
		label = "<unnamed>"
	}
	return fmt.Sprintf("resource allocation failure: %q (%d bytes): %v", label, e.RequestedSize, e.Cause)
}

func (e *ResourceAllocationFailureError) Unwrap() error { return e.Cause }

// IsResourceAllocationFailureError reports whether err is a
// *ResourceAllocationFailureError.
func IsResourceAllocationFailureError(err error) bool {
	var e *ResourceAllocationFailureError
	return errors.As(err, &e)
}

// PipelineCreationFailureError reports that a shader failed to compile or
// a pipeline failed to link.
type PipelineCreationFailureError struct {
	Label string
	Cause error
}

func (e *PipelineCreationFailureError) Error() string {
	label := e.Label
	if label == "" {
		label = "<unnamed>"
	}
	return fmt.Sprintf("pipeline creation failure: %q: %v", label, e.Cause)
}

func (e *PipelineCreationFailureError) Unwrap() error { return e.Cause }

// IsPipelineCreationFailureError reports whether err is a
// *PipelineCreationFailureError.
func IsPipelineCreationFailureError(err error) bool {
	var e *PipelineCreationFailureError
	return errors.As(err, &e)
}

// ShaderReloadFailureError reports that a hot-reload of a shader library
// failed; the previously loaded library remains active.
type ShaderReloadFailureError struct {
	Path  string
	Cause error
}

func (e *ShaderReloadFailureError) Error() string {
	return fmt.Sprintf("shader reload failure: %q: %v", e.Path, e.Cause)
}

func (e *ShaderReloadFailureError) Unwrap() error { return e.Cause }

// IsShaderReloadFailureError reports whether err is a
// *ShaderReloadFailureError.
func IsShaderReloadFailureError(err error) bool {
	var e *ShaderReloadFailureError
	return errors.As(err, &e)
}

// InvariantViolationError reports that an internal invariant did not
// hold, e.g. a stale generation resolving, or a usage conflict the
// resource-command generator could not reconcile. These indicate a
// caller bug, not a transient condition.
type InvariantViolationError struct {
	Invariant string
	Detail    string
}

func (e *InvariantViolationError) Error() string {
	return fmt.Sprintf("invariant violation (%s): %s", e.Invariant, e.Detail)
}

// IsInvariantViolationError reports whether err is an
// *InvariantViolationError.
func IsInvariantViolationError(err error) bool {
	var e *InvariantViolationError
	return errors.As(err, &e)
}

// CompletionError wraps a per-pass failure surfaced through a frame's
// sparse PassError list after GPU execution.
type CompletionError struct {
	PassIndex int
	Cause     error
}

func (e *CompletionError) Error() string {
	return fmt.Sprintf("pass %d: completion error: %v", e.PassIndex, e.Cause)
}

func (e *CompletionError) Unwrap() error { return e.Cause }

// IsCompletionError reports whether err is a *CompletionError.
func IsCompletionError(err error) bool {
	var e *CompletionError
	return errors.As(err, &e)
}
