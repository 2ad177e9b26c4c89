package ggweb

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/ggweb/host"
	"github.com/gogpu/ggweb/native"
)

// SurfaceOptions configures MakeSurface.
type SurfaceOptions struct {
	// Device enables the WebGPU backend. Without it WebGPU is skipped.
	Device gpucontext.Device

	// Format is the WebGPU canvas format. Zero uses the host's preferred
	// canvas format.
	Format gputypes.TextureFormat

	// AlphaMode is the WebGPU canvas alpha mode.
	AlphaMode gputypes.CompositeAlphaMode

	// ColorSpace is the color space of WebGPU surfaces.
	ColorSpace native.ColorSpace

	// GL configures the WebGL context.
	GL []GLOption
}

// MakeSurface makes a surface over t with the most preferred backend that
// works: WebGPU (when opts.Device is set), then WebGL, then software.
//
// A GPU backend that fails after touching t leaves t unusable for the next
// one, so t is replaced by a fresh clone first. The returned surface's
// Target is the target it was finally made over.
//
// A nil target, an unknown id and unsupported options fail immediately.
// When every backend fails the error wraps ErrNoBackendAvailable and the
// last backend's error.
func (m *Module) MakeSurface(t host.DisplayTarget, opts SurfaceOptions) (*Surface, error) {
	if t == nil {
		return nil, ErrNilDisplayTarget
	}
	names := m.backends.AvailableFor(opts)
	if len(names) == 0 {
		return nil, ErrNoBackendAvailable
	}

	var (
		lastErr error
		dirty   bool
	)
	for _, name := range names {
		entry, ok := m.backends.Get(name)
		if !ok {
			continue
		}
		if dirty {
			r, err := m.replaceTarget(t)
			if err != nil {
				return nil, errors.Join(ErrNoBackendAvailable, lastErr, err)
			}
			t = r
			dirty = false
		}

		Logger().Debug("ggweb: trying backend", "backend", name, "target", t.ID())
		s, err := entry.Factory(t, opts)
		if err == nil {
			return s, nil
		}
		if fatal(err) {
			return nil, err
		}
		Logger().Debug("ggweb: backend failed", "backend", name, "err", err)
		lastErr = err
		dirty = entry.Kind.IsGPU() && touched(err)
	}
	return nil, errors.Join(ErrNoBackendAvailable, lastErr)
}

// MakeSurfaceByID resolves id and calls MakeSurface.
func (m *Module) MakeSurfaceByID(id string, opts SurfaceOptions) (*Surface, error) {
	t, err := m.lookup(id)
	if err != nil {
		return nil, err
	}
	return m.MakeSurface(t, opts)
}

// MakeSurfaceWith makes a surface with the named backend only.
func (m *Module) MakeSurfaceWith(name string, t host.DisplayTarget, opts SurfaceOptions) (*Surface, error) {
	entry, ok := m.backends.Get(name)
	if !ok {
		return nil, &BackendNotFoundError{Name: name}
	}
	if !entry.Available(opts) {
		return nil, &BackendUnavailableError{Name: name}
	}
	if t == nil {
		return nil, ErrNilDisplayTarget
	}
	return entry.Factory(t, opts)
}

// untouchedError marks a backend failure that happened before the display
// target was bound to a GPU context.
type untouchedError struct {
	err error
}

func (e *untouchedError) Error() string { return e.err.Error() }
func (e *untouchedError) Unwrap() error { return e.err }

// touched reports whether a failed GPU attempt got far enough to bind the
// display target.
func touched(err error) bool {
	var u *untouchedError
	if errors.As(err, &u) {
		return false
	}
	return !errors.Is(err, ErrWebGLUnavailable) && !errors.Is(err, ErrWebGPUUnavailable)
}

// replaceTarget swaps t for a clone without GPU configuration.
func (m *Module) replaceTarget(t host.DisplayTarget) (host.DisplayTarget, error) {
	r, err := m.host.Displays.Replace(t)
	if err != nil {
		return nil, fmt.Errorf("ggweb: replace display target %q: %w", t.ID(), err)
	}
	if r == nil {
		return nil, fmt.Errorf("ggweb: replace display target %q: %w", t.ID(), ErrNilDisplayTarget)
	}
	Logger().Warn("ggweb: display target replaced after GPU failure", "target", t.ID())
	return r, nil
}
