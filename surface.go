package ggweb

import (
	"fmt"
	"image"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/ggweb/host"
	"github.com/gogpu/ggweb/native"
)

// Surface is a drawable bound to one backend for its whole life.
//
// Which fields are set depends on the backend: software surfaces own a pixel
// buffer and blit into their display target; WebGL surfaces own a GL context
// and its direct context; WebGPU surfaces draw into a texture, usually the
// current swap texture of a PresentationContext.
//
// A Surface must be released with Dispose. It is not safe for concurrent use.
type Surface struct {
	module *Module
	kind   Backend
	width  int
	height int
	native native.Surface
	target host.DisplayTarget

	// software
	pixels  *pixelBuffer
	blitter host.Blitter

	// webgl
	handle host.GLHandle
	direct *DirectContext

	// webgpu
	format       gputypes.TextureFormat
	texture      gpucontext.Texture
	presentation *PresentationContext
	presented    bool

	disposed bool
}

// Backend returns the backend the surface was made by.
func (s *Surface) Backend() Backend { return s.kind }

// Width returns the surface width in pixels.
func (s *Surface) Width() int { return s.width }

// Height returns the surface height in pixels.
func (s *Surface) Height() int { return s.height }

// IsSoftware reports whether the surface is a software raster surface.
func (s *Surface) IsSoftware() bool { return s.kind == BackendSoftware }

// IsWebGL reports whether the surface draws through WebGL.
func (s *Surface) IsWebGL() bool { return s.kind == BackendWebGL }

// IsWebGPU reports whether the surface draws into a WebGPU texture.
func (s *Surface) IsWebGPU() bool { return s.kind == BackendWebGPU }

// Canvas returns the engine's drawing handle, or nil once disposed.
func (s *Surface) Canvas() native.Canvas {
	if s.disposed {
		return nil
	}
	return s.native.Canvas()
}

// Native returns the engine surface.
func (s *Surface) Native() native.Surface { return s.native }

// Target returns the display target the surface presents into. After a
// fallback this is the replacement, not the target originally requested.
// Texture surfaces without a presentation context have no target.
func (s *Surface) Target() host.DisplayTarget { return s.target }

// Context returns the direct context the surface draws through, or nil for
// software surfaces.
func (s *Surface) Context() *DirectContext { return s.direct }

// Handle returns the GL context of a WebGL surface, or host.NoContext.
func (s *Surface) Handle() host.GLHandle { return s.handle }

// PixelLen returns the size of the pixel buffer of a software surface, or 0.
func (s *Surface) PixelLen() int {
	if s.pixels == nil {
		return 0
	}
	return s.pixels.size
}

// Pixels returns the software pixel buffer, tightly packed RGBA8888. The
// slice is whatever the heap's Bytes returns: a view of engine memory for
// heap.Go and wasmheap, a copy for jshost.Heap, where writes to it are lost.
// Either way it must not be kept past the next engine call.
func (s *Surface) Pixels() ([]byte, error) {
	if s.disposed {
		return nil, ErrDisposed
	}
	if s.pixels == nil {
		return nil, fmt.Errorf("ggweb: %s surface has no pixel buffer", s.kind)
	}
	return s.pixels.bytes()
}

// Format returns the texture format of a WebGPU surface.
func (s *Surface) Format() gputypes.TextureFormat { return s.format }

// Texture returns the texture a WebGPU surface draws into.
func (s *Surface) Texture() gpucontext.Texture { return s.texture }

// PresentationContext returns the presentation context a WebGPU canvas
// surface was made from, or nil.
func (s *Surface) PresentationContext() *PresentationContext { return s.presentation }

// IsDisposed reports whether Dispose has been called.
func (s *Surface) IsDisposed() bool { return s.disposed }

// Flush submits pending draws and makes them visible in the display target.
func (s *Surface) Flush() error {
	return s.flush(nil)
}

// FlushRect is Flush for software surfaces that changed only inside r. Only
// r, clipped to the surface, is copied to the display target. GPU surfaces
// treat it as Flush.
func (s *Surface) FlushRect(r image.Rectangle) error {
	return s.flush(&r)
}

func (s *Surface) flush(dirty *image.Rectangle) error {
	if s.disposed {
		return ErrDisposed
	}
	switch s.kind {
	case BackendSoftware:
		// No GL state to select; the result is ignored.
		s.module.contexts.SetCurrent(host.NoContext)
		s.native.Flush()
		if s.target == nil {
			return nil
		}
		return s.blit(dirty)

	case BackendWebGL:
		if !s.module.contexts.SetCurrent(s.handle) {
			return fmt.Errorf("%w: handle %d", ErrContextLost, s.handle)
		}
		s.native.Flush()
		return nil

	case BackendWebGPU:
		s.native.Flush()
		return s.present()
	}
	return nil
}

func (s *Surface) blit(dirty *image.Rectangle) error {
	bounds := image.Rect(0, 0, s.width, s.height)
	r := bounds
	if dirty != nil {
		r = dirty.Canon().Intersect(bounds)
		if r.Empty() {
			return nil
		}
	}
	if s.blitter == nil {
		b, err := s.module.host.Displays.Blitter(s.target)
		if err != nil {
			return fmt.Errorf("ggweb: blit into %q: %w", s.target.ID(), err)
		}
		s.blitter = b
	}
	pix, err := s.pixels.bytes()
	if err != nil {
		return err
	}
	return s.blitter.PutPixels(pix, s.width, s.height, r)
}

// present hands the swap texture back to hosts that need an explicit
// present. Browsers present at the end of the task on their own.
func (s *Surface) present() error {
	if s.presentation == nil || s.presented {
		return nil
	}
	p, ok := s.presentation.surface.(host.Presenter)
	if !ok {
		return nil
	}
	s.presented = true
	if err := p.Present(s.texture); err != nil {
		return fmt.Errorf("ggweb: present: %w", err)
	}
	return nil
}

// Dispose releases everything the surface owns. Software surfaces free their
// pixel buffer and then delete the engine surface. WebGL surfaces re-select
// their context before deleting the engine surface, the direct context and
// the GL context. Calling Dispose again does nothing.
func (s *Surface) Dispose() {
	if s.disposed {
		return
	}
	s.disposed = true

	switch s.kind {
	case BackendSoftware:
		s.pixels.release()
		s.deleteNative()

	case BackendWebGL:
		s.module.contexts.SetCurrent(s.handle)
		s.deleteNative()
		s.module.contexts.Delete(s.handle)

	case BackendWebGPU:
		s.deleteNative()
	}
	Logger().Debug("ggweb: disposed surface", "backend", s.kind.String())
}

func (s *Surface) deleteNative() {
	if s.native != nil && !s.native.IsDeleted() {
		s.native.Delete()
	}
}
