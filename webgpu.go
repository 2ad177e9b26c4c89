package ggweb

import (
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/ggweb/host"
	"github.com/gogpu/ggweb/native"
)

// PresentationOptions configures a WebGPU canvas.
type PresentationOptions struct {
	// Format is the swap texture format. Zero uses the host's preferred
	// canvas format.
	Format gputypes.TextureFormat

	// AlphaMode is passed to the canvas configuration unchanged.
	AlphaMode gputypes.CompositeAlphaMode

	// ColorSpace is used for the surfaces made each frame.
	ColorSpace native.ColorSpace
}

func (m *Module) webgpuEngine() (native.WebGPUEngine, error) {
	if !m.webgpu {
		return nil, ErrWebGPUUnavailable
	}
	e, ok := m.host.Engine.(native.WebGPUEngine)
	if !ok {
		return nil, fmt.Errorf("%w: engine built without WebGPU", ErrWebGPUUnavailable)
	}
	return e, nil
}

// MakeGPUDeviceContext records dev as the device the engine imports and
// returns the engine's direct context for it. The caller owns the context.
func (m *Module) MakeGPUDeviceContext(dev gpucontext.Device) (*DirectContext, error) {
	if dev == nil {
		return nil, ErrNilDevice
	}
	e, err := m.webgpuEngine()
	if err != nil {
		return nil, err
	}
	m.device = dev

	n, err := e.MakeWebGPUDirectContext(dev)
	if err == nil && n == nil {
		err = ErrAcquisitionFailed
	}
	if err != nil {
		return nil, fmt.Errorf("ggweb: WebGPU direct context: %w", err)
	}
	return &DirectContext{
		native:   n,
		kind:     BackendWebGPU,
		device:   dev,
		contexts: m.contexts,
	}, nil
}

// PreinitializedDevice returns the device last passed to
// MakeGPUDeviceContext.
func (m *Module) PreinitializedDevice() gpucontext.Device {
	return m.device
}

// deviceContextFor returns the module-owned device context for dev. The
// context of a previous device is deleted first.
func (m *Module) deviceContextFor(dev gpucontext.Device) (*DirectContext, error) {
	if dc := m.deviceContext; dc != nil {
		if dc.device == dev && !dc.IsDeleted() {
			return dc, nil
		}
		m.ReleaseDeviceContext()
	}
	dc, err := m.MakeGPUDeviceContext(dev)
	if err != nil {
		return nil, err
	}
	m.deviceContext = dc
	return dc, nil
}

// ReleaseDeviceContext deletes the device context MakeSurface created for
// WebGPU surfaces. Surfaces made with it must be disposed first. It reports
// whether there was a context to delete.
func (m *Module) ReleaseDeviceContext() bool {
	dc := m.deviceContext
	m.deviceContext = nil
	if dc == nil {
		return false
	}
	dc.Delete()
	return true
}

func checkDeviceContext(dc *DirectContext) error {
	if dc == nil || dc.kind != BackendWebGPU {
		return fmt.Errorf("%w: not a WebGPU device context", ErrNilDevice)
	}
	return nil
}

// MakeGPUCanvasContext configures t for WebGPU presentation with the device
// of dc.
func (m *Module) MakeGPUCanvasContext(dc *DirectContext, t host.DisplayTarget, opts PresentationOptions) (*PresentationContext, error) {
	pc, _, err := m.makeCanvasContext(dc, t, opts)
	return pc, err
}

// makeCanvasContext also reports whether t's presentation surface was
// obtained, after which t counts as bound to WebGPU.
func (m *Module) makeCanvasContext(dc *DirectContext, t host.DisplayTarget, opts PresentationOptions) (pc *PresentationContext, bound bool, err error) {
	if t == nil {
		return nil, false, ErrNilDisplayTarget
	}
	if err := checkDeviceContext(dc); err != nil {
		return nil, false, err
	}
	if m.gpu == nil {
		return nil, false, ErrWebGPUUnavailable
	}
	ps, ok := m.gpu.PresentationSurface(t)
	if !ok || ps == nil {
		return nil, false, fmt.Errorf("%w: no WebGPU context on %q", ErrAcquisitionFailed, t.ID())
	}

	format := opts.Format
	if format == gputypes.TextureFormatUndefined {
		format = m.gpu.PreferredCanvasFormat()
	}
	cfg := host.PresentationConfig{
		Device:    dc.device,
		Format:    format,
		AlphaMode: opts.AlphaMode,
	}
	if err := ps.Configure(cfg); err != nil {
		return nil, true, fmt.Errorf("%w: configure %q: %v", ErrAcquisitionFailed, t.ID(), err)
	}

	Logger().Debug("ggweb: WebGPU canvas", "target", t.ID(), "format", format.String())
	return &PresentationContext{
		module:     m,
		surface:    ps,
		target:     t,
		device:     dc,
		format:     format,
		alphaMode:  opts.AlphaMode,
		colorSpace: opts.ColorSpace,
	}, true, nil
}

// MakeGPUCanvasSurface makes a surface over the current swap texture of pc.
// A zero width or height takes the texture's size.
func (m *Module) MakeGPUCanvasSurface(pc *PresentationContext, cs native.ColorSpace, width, height int) (*Surface, error) {
	if pc == nil || pc.surface == nil {
		return nil, fmt.Errorf("%w: nil presentation context", ErrAcquisitionFailed)
	}
	tex, err := pc.surface.CurrentTexture()
	if err != nil {
		return nil, fmt.Errorf("%w: swap texture of %q: %v", ErrAcquisitionFailed, pc.target.ID(), err)
	}
	if tex == nil {
		return nil, fmt.Errorf("%w: no swap texture on %q", ErrAcquisitionFailed, pc.target.ID())
	}
	if width == 0 {
		width = tex.Width()
	}
	if height == 0 {
		height = tex.Height()
	}
	s, err := m.MakeGPUTextureSurface(pc.device, tex, pc.format, width, height, cs)
	if err != nil {
		return nil, err
	}
	s.presentation = pc
	s.target = pc.target
	return s, nil
}

// MakeGPUTextureSurface makes a surface drawing into tex. The texture is
// handed to the engine through its value store; the engine takes it out
// when it imports it.
func (m *Module) MakeGPUTextureSurface(dc *DirectContext, tex gpucontext.Texture, format gputypes.TextureFormat, width, height int, cs native.ColorSpace) (*Surface, error) {
	if err := checkDeviceContext(dc); err != nil {
		return nil, err
	}
	if tex == nil {
		return nil, fmt.Errorf("%w: nil texture", ErrAcquisitionFailed)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimensions, width, height)
	}
	index, err := TextureFormatIndex(format)
	if err != nil {
		return nil, err
	}
	e, err := m.webgpuEngine()
	if err != nil {
		return nil, err
	}

	handle := e.Values().Add(tex)
	ns, err := e.MakeGPUTextureSurface(dc.native, handle, index, width, height, cs)
	if err == nil && ns == nil {
		err = ErrAcquisitionFailed
	}
	if err != nil {
		return nil, fmt.Errorf("ggweb: WebGPU texture surface %dx%d: %w", width, height, err)
	}
	return &Surface{
		module:  m,
		kind:    BackendWebGPU,
		width:   width,
		height:  height,
		native:  ns,
		direct:  dc,
		format:  format,
		texture: tex,
	}, nil
}

// PresentationContext couples a display target configured for WebGPU with
// a device context and the negotiated format.
type PresentationContext struct {
	module     *Module
	surface    host.PresentationSurface
	target     host.DisplayTarget
	device     *DirectContext
	format     gputypes.TextureFormat
	alphaMode  gputypes.CompositeAlphaMode
	colorSpace native.ColorSpace
}

// Surface returns the host presentation surface.
func (pc *PresentationContext) Surface() host.PresentationSurface { return pc.surface }

// Target returns the configured display target.
func (pc *PresentationContext) Target() host.DisplayTarget { return pc.target }

// DeviceContext returns the device context frames are drawn with.
func (pc *PresentationContext) DeviceContext() *DirectContext { return pc.device }

// Format returns the swap texture format.
func (pc *PresentationContext) Format() gputypes.TextureFormat { return pc.format }

// AlphaMode returns the configured alpha mode.
func (pc *PresentationContext) AlphaMode() gputypes.CompositeAlphaMode { return pc.alphaMode }

// RequestAnimationFrame schedules one frame. On the next tick a surface is
// made over the swap texture, cb draws on its canvas, and the surface is
// flushed and disposed before the tick ends. If no surface can be made the
// frame is logged and skipped. Call it again from cb for the next frame.
func (pc *PresentationContext) RequestAnimationFrame(cb func(native.Canvas)) error {
	frames := pc.module.host.Frames
	if frames == nil {
		return ErrNoFrameScheduler
	}
	frames.RequestAnimationFrame(func() {
		pc.frame(cb)
	})
	return nil
}

func (pc *PresentationContext) frame(cb func(native.Canvas)) {
	s, err := pc.module.MakeGPUCanvasSurface(pc, pc.colorSpace, 0, 0)
	if err != nil {
		Logger().Error("ggweb: failed to make surface for frame", "target", pc.target.ID(), "err", err)
		return
	}
	defer s.Dispose()

	cb(s.Canvas())
	if err := s.Flush(); err != nil {
		Logger().Error("ggweb: frame flush failed", "target", pc.target.ID(), "err", err)
	}
}

// makeWebGPUSurface is the selector's WebGPU factory.
func (m *Module) makeWebGPUSurface(t host.DisplayTarget, opts SurfaceOptions) (*Surface, error) {
	dc, err := m.deviceContextFor(opts.Device)
	if err != nil {
		return nil, &untouchedError{err}
	}
	pc, bound, err := m.makeCanvasContext(dc, t, PresentationOptions{
		Format:     opts.Format,
		AlphaMode:  opts.AlphaMode,
		ColorSpace: opts.ColorSpace,
	})
	if err != nil {
		if !bound {
			err = &untouchedError{err}
		}
		return nil, err
	}
	return m.MakeGPUCanvasSurface(pc, opts.ColorSpace, 0, 0)
}
