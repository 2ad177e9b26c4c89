package ggweb

import (
	"errors"
	"fmt"

	"github.com/gogpu/ggweb/host"
	"github.com/gogpu/ggweb/native"
)

// GLOption sets one WebGL context attribute.
type GLOption func(*host.GLAttributes)

// WithAlpha sets whether the drawing buffer has an alpha channel.
func WithAlpha(v bool) GLOption { return func(a *host.GLAttributes) { a.Alpha = v } }

// WithDepth sets whether the drawing buffer has a depth buffer.
func WithDepth(v bool) GLOption { return func(a *host.GLAttributes) { a.Depth = v } }

// WithStencil sets whether the drawing buffer has a stencil buffer.
func WithStencil(v bool) GLOption { return func(a *host.GLAttributes) { a.Stencil = v } }

// WithAntialias sets whether the drawing buffer is multisampled.
func WithAntialias(v bool) GLOption { return func(a *host.GLAttributes) { a.Antialias = v } }

// WithPremultipliedAlpha sets whether colors are premultiplied by alpha.
func WithPremultipliedAlpha(v bool) GLOption {
	return func(a *host.GLAttributes) { a.PremultipliedAlpha = v }
}

// WithPreserveDrawingBuffer keeps the buffer contents after presentation.
func WithPreserveDrawingBuffer(v bool) GLOption {
	return func(a *host.GLAttributes) { a.PreserveDrawingBuffer = v }
}

// WithPreferLowPower asks for the low-power GPU on dual-GPU systems.
func WithPreferLowPower(v bool) GLOption {
	return func(a *host.GLAttributes) { a.PreferLowPowerToHighPerformance = v }
}

// WithFailIfMajorPerformanceCaveat refuses slow (software) GL implementations.
func WithFailIfMajorPerformanceCaveat(v bool) GLOption {
	return func(a *host.GLAttributes) { a.FailIfMajorPerformanceCaveat = v }
}

// WithEnableExtensionsByDefault enables all extensions at creation.
func WithEnableExtensionsByDefault(v bool) GLOption {
	return func(a *host.GLAttributes) { a.EnableExtensionsByDefault = v }
}

// WithExplicitSwapControl requests manual buffer swaps. It is not supported;
// requesting it makes context creation fail with ErrExplicitSwapControl.
func WithExplicitSwapControl(v bool) GLOption {
	return func(a *host.GLAttributes) { a.ExplicitSwapControl = v }
}

// WithRenderViaOffscreenBackBuffer renders into an offscreen buffer that is
// copied to the canvas on swap.
func WithRenderViaOffscreenBackBuffer(v bool) GLOption {
	return func(a *host.GLAttributes) { a.RenderViaOffscreenBackBuffer = v }
}

// WithMajorVersion pins the WebGL version (1 or 2). The default picks 2
// when the host supports it.
func WithMajorVersion(v int) GLOption {
	return func(a *host.GLAttributes) { a.MajorVersion = v }
}

// DefaultGLAttributes returns the attributes used when no option is given.
// MajorVersion is left at zero.
func DefaultGLAttributes() host.GLAttributes {
	return host.GLAttributes{
		Alpha:                     true,
		Depth:                     true,
		Stencil:                   true,
		Antialias:                 false,
		PremultipliedAlpha:        true,
		PreserveDrawingBuffer:     false,
		EnableExtensionsByDefault: true,
	}
}

// ResolveGLAttributes applies opts over the defaults and picks the major
// version when none was set: 2 if the host has WebGL2, 1 otherwise.
func ResolveGLAttributes(hasWebGL2 bool, opts ...GLOption) host.GLAttributes {
	a := DefaultGLAttributes()
	for _, opt := range opts {
		opt(&a)
	}
	if a.MajorVersion == 0 {
		a.MajorVersion = 1
		if hasWebGL2 {
			a.MajorVersion = 2
		}
	}
	return a
}

// GetWebGLContext creates a GL context on t, makes it current and enables
// the debug renderer info extension the engine relies on.
func (m *Module) GetWebGLContext(t host.DisplayTarget, opts ...GLOption) (host.GLHandle, error) {
	if t == nil {
		return host.NoContext, ErrNilDisplayTarget
	}
	if m.gl == nil {
		return host.NoContext, ErrWebGLUnavailable
	}
	attrs := ResolveGLAttributes(m.gl.HasWebGL2(), opts...)
	if attrs.ExplicitSwapControl {
		return host.NoContext, ErrExplicitSwapControl
	}

	h := m.gl.CreateContext(t, attrs)
	if h == host.NoContext {
		return host.NoContext, fmt.Errorf("%w: WebGL%d context on %q", ErrAcquisitionFailed, attrs.MajorVersion, t.ID())
	}
	m.contexts.add(h)
	if !m.contexts.SetCurrent(h) {
		m.contexts.Delete(h)
		return host.NoContext, fmt.Errorf("%w: make context %d current", ErrAcquisitionFailed, h)
	}
	m.gl.EnableExtension(host.DebugRendererInfo)

	Logger().Debug("ggweb: WebGL context", "target", t.ID(), "handle", h, "version", attrs.MajorVersion)
	return h, nil
}

func (m *Module) glEngine() (native.GLEngine, error) {
	if m.gl == nil {
		return nil, ErrWebGLUnavailable
	}
	e, ok := m.host.Engine.(native.GLEngine)
	if !ok {
		return nil, fmt.Errorf("%w: engine built without WebGL", ErrWebGLUnavailable)
	}
	return e, nil
}

// MakeWebGLDirectContext wraps GL context h as an engine direct context.
// The result is recorded as h's direct context, so CurrentDirectContext
// returns it while h is current.
func (m *Module) MakeWebGLDirectContext(h host.GLHandle) (*DirectContext, error) {
	e, err := m.glEngine()
	if err != nil {
		return nil, err
	}
	if !m.contexts.SetCurrent(h) {
		return nil, fmt.Errorf("%w: make context %d current", ErrAcquisitionFailed, h)
	}
	n, err := e.MakeWebGLDirectContext()
	if err == nil && n == nil {
		err = ErrAcquisitionFailed
	}
	if err != nil {
		return nil, fmt.Errorf("ggweb: WebGL direct context: %w", err)
	}
	dc := &DirectContext{
		native:   n,
		kind:     BackendWebGL,
		handle:   h,
		contexts: m.contexts,
	}
	m.contexts.attach(h, dc)
	return dc, nil
}

// makeWebGLSurface makes a WebGL surface without falling back. Anything it
// created is deleted again on failure.
func (m *Module) makeWebGLSurface(t host.DisplayTarget, opts ...GLOption) (*Surface, error) {
	e, err := m.glEngine()
	if err != nil {
		return nil, err
	}
	h, err := m.GetWebGLContext(t, opts...)
	if err != nil {
		return nil, err
	}
	dc, err := m.MakeWebGLDirectContext(h)
	if err != nil {
		m.contexts.Delete(h)
		return nil, err
	}
	if !m.contexts.SetCurrent(h) {
		m.contexts.Delete(h)
		return nil, fmt.Errorf("%w: make context %d current", ErrAcquisitionFailed, h)
	}

	width, height := t.Size()
	ns, err := e.MakeOnScreenGLSurface(dc.native, width, height)
	if err == nil && ns == nil {
		err = ErrAcquisitionFailed
	}
	if err != nil {
		m.contexts.Delete(h)
		return nil, fmt.Errorf("ggweb: WebGL surface %dx%d: %w", width, height, err)
	}

	return &Surface{
		module: m,
		kind:   BackendWebGL,
		width:  width,
		height: height,
		native: ns,
		target: t,
		handle: h,
		direct: dc,
	}, nil
}

// MakeWebGLSurface makes a WebGL surface over t. If WebGL cannot be set up,
// t is replaced by a fresh clone and a software surface is made over the
// clone instead. Only a nil target and ErrExplicitSwapControl are returned
// as errors without falling back.
func (m *Module) MakeWebGLSurface(t host.DisplayTarget, opts ...GLOption) (*Surface, error) {
	s, err := m.makeWebGLSurface(t, opts...)
	if err == nil {
		return s, nil
	}
	if fatal(err) {
		return nil, err
	}
	Logger().Debug("ggweb: WebGL unavailable, falling back to software", "target", t.ID(), "err", err)

	r, rerr := m.replaceTarget(t)
	if rerr != nil {
		return nil, errors.Join(err, rerr)
	}
	return m.MakeSWSurface(r)
}

// MakeWebGLSurfaceByID resolves id and calls MakeWebGLSurface.
func (m *Module) MakeWebGLSurfaceByID(id string, opts ...GLOption) (*Surface, error) {
	t, err := m.lookup(id)
	if err != nil {
		return nil, err
	}
	return m.MakeWebGLSurface(t, opts...)
}
