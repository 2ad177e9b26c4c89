package ggweb

import (
	"errors"
	"fmt"
)

// Errors returned by Module operations.
var (
	// ErrNilDisplayTarget is returned when a surface or context is requested
	// without a display target.
	ErrNilDisplayTarget = errors.New("ggweb: nil display target")

	// ErrExplicitSwapControl is returned when WithExplicitSwapControl(true)
	// is requested. It is never recovered by fallback.
	ErrExplicitSwapControl = errors.New("ggweb: explicitSwapControl is not supported")

	// ErrAcquisitionFailed is returned when the host or the engine declined
	// to create a context or surface.
	ErrAcquisitionFailed = errors.New("ggweb: GPU acquisition failed")

	// ErrWebGLUnavailable is returned when the host or engine has no WebGL.
	ErrWebGLUnavailable = errors.New("ggweb: WebGL unavailable")

	// ErrWebGPUUnavailable is returned when the host or engine has no WebGPU.
	ErrWebGPUUnavailable = errors.New("ggweb: WebGPU unavailable")

	// ErrNoBackendAvailable is returned when every backend failed.
	ErrNoBackendAvailable = errors.New("ggweb: no backend available")

	// ErrContextLost is returned when a surface's GL context can no longer
	// be made current.
	ErrContextLost = errors.New("ggweb: GL context lost")

	// ErrNoFrameScheduler is returned by RequestAnimationFrame on hosts
	// without a frame scheduler.
	ErrNoFrameScheduler = errors.New("ggweb: host has no frame scheduler")

	// ErrDisposed is returned when flushing a disposed surface.
	ErrDisposed = errors.New("ggweb: surface disposed")

	// ErrBootstrapDrained is returned when appending to a bootstrap that
	// has already run.
	ErrBootstrapDrained = errors.New("ggweb: bootstrap already drained")

	// ErrUnsupportedTextureFormat is returned for texture formats the
	// engine has no index for.
	ErrUnsupportedTextureFormat = errors.New("ggweb: unsupported texture format")

	// ErrInvalidDimensions is returned when width or height is not positive.
	ErrInvalidDimensions = errors.New("ggweb: invalid dimensions")

	// ErrNilDevice is returned by MakeGPUDeviceContext without a device.
	ErrNilDevice = errors.New("ggweb: nil GPU device")

	// ErrIncompleteHost is returned by New when a required host part is missing.
	ErrIncompleteHost = errors.New("ggweb: incomplete host")
)

// TargetNotFoundError indicates that no display target has the given id.
type TargetNotFoundError struct {
	ID string
}

func (e *TargetNotFoundError) Error() string {
	return fmt.Sprintf("ggweb: display target %q not found", e.ID)
}

// BackendNotFoundError indicates a named backend is not registered.
type BackendNotFoundError struct {
	Name string
}

func (e *BackendNotFoundError) Error() string {
	return "ggweb: backend not found: " + e.Name
}

// fatal reports whether err must abort backend selection instead of falling
// through to the next backend.
func fatal(err error) bool {
	var notFound *TargetNotFoundError
	return errors.As(err, &notFound) ||
		errors.Is(err, ErrNilDisplayTarget) ||
		errors.Is(err, ErrExplicitSwapControl)
}

// BackendUnavailableError indicates a backend is registered but cannot run
// on this host.
type BackendUnavailableError struct {
	Name string
}

func (e *BackendUnavailableError) Error() string {
	return "ggweb: backend unavailable: " + e.Name
}
