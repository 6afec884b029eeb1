// Package hal provides the hardware-abstraction boundary the render graph
// drives: devices, queues, command encoders and the handful of resource
// types a frame's command stream touches.
//
// # Architecture
//
//  1. Device - logical GPU device, creates buffers/textures/encoders/fences
//  2. Queue - command buffer submission and presentation
//  3. CommandEncoder - command recording (copies, barriers, pass brackets)
//
// Backend construction (instance/adapter enumeration, pipeline and
// bind-group creation) lives outside this package's concern; the render
// graph is handed an already-open Device and Queue and never constructs
// them itself.
//
// # Design Principles
//
// The HAL prioritizes portability over safety, delegating validation to the
// render-graph layer. This means:
//
//   - Most methods are unsafe in terms of GPU state validation
//   - Validation is the caller's responsibility
//   - Only unrecoverable errors are returned (out of memory, device lost)
//   - Invalid usage results in undefined behavior at the GPU level
//
// # Resource Types
//
// All GPU resources (buffers, textures, fences, etc.) implement the Resource
// interface which provides a Destroy method. Resources must be explicitly destroyed
// to free GPU memory.
//
// # Thread Safety
//
// Unless explicitly stated, HAL interfaces are not thread-safe. Synchronization
// is the caller's responsibility. Notable exception:
//
//   - Queue.Submit is typically thread-safe (backend-specific)
//
// # Error Handling
//
// The HAL uses error values for unrecoverable errors:
//
//   - ErrDeviceOutOfMemory - GPU memory exhausted
//   - ErrDeviceLost - GPU disconnected or driver reset
//   - ErrSurfaceLost - Window destroyed or surface invalidated
//   - ErrSurfaceOutdated - Window resized, need reconfiguration
//
// Validation errors (invalid descriptors, incorrect usage) are the caller's
// responsibility and are not checked by the HAL.
package hal
