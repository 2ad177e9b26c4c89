//go:build js && wasm

package jshost

import (
	"syscall/js"

	"github.com/gogpu/ggweb/host"
)

// GL drives the module's GL context table.
type GL struct {
	gl js.Value
}

// NewGL binds the GL table of mod, falling back to a global GL object.
func NewGL(mod js.Value) *GL {
	gl := mod.Get("GL")
	if !gl.Truthy() {
		gl = js.Global().Get("GL")
	}
	return &GL{gl: gl}
}

// Available reports whether the module was built with GL support.
func (g *GL) Available() bool { return g.gl.Truthy() }

// HasWebGL2 implements host.GL.
func (g *GL) HasWebGL2() bool {
	return js.Global().Get("WebGL2RenderingContext").Truthy()
}

// CreateContext implements host.GL.
func (g *GL) CreateContext(t host.DisplayTarget, attrs host.GLAttributes) host.GLHandle {
	c, ok := t.(*Canvas)
	if !ok {
		return host.NoContext
	}
	stencil := 0
	if attrs.Stencil {
		stencil = 8
	}
	h := g.gl.Call("createContext", c.v, map[string]any{
		"alpha":                           flag(attrs.Alpha),
		"depth":                           flag(attrs.Depth),
		"stencil":                         stencil,
		"antialias":                       flag(attrs.Antialias),
		"premultipliedAlpha":              flag(attrs.PremultipliedAlpha),
		"preserveDrawingBuffer":           flag(attrs.PreserveDrawingBuffer),
		"preferLowPowerToHighPerformance": flag(attrs.PreferLowPowerToHighPerformance),
		"failIfMajorPerformanceCaveat":    flag(attrs.FailIfMajorPerformanceCaveat),
		"enableExtensionsByDefault":       flag(attrs.EnableExtensionsByDefault),
		"explicitSwapControl":             flag(attrs.ExplicitSwapControl),
		"renderViaOffscreenBackBuffer":    flag(attrs.RenderViaOffscreenBackBuffer),
		"majorVersion":                    attrs.MajorVersion,
	})
	if !h.Truthy() {
		return host.NoContext
	}
	return host.GLHandle(h.Int())
}

func flag(b bool) int {
	if b {
		return 1
	}
	return 0
}

// MakeCurrent implements host.GL.
func (g *GL) MakeCurrent(h host.GLHandle) bool {
	return g.gl.Call("makeContextCurrent", int(h)).Bool()
}

// Current implements host.GL.
func (g *GL) Current() host.GLHandle {
	cc := g.gl.Get("currentContext")
	if !cc.Truthy() {
		return host.NoContext
	}
	return host.GLHandle(cc.Get("handle").Int())
}

// DeleteContext implements host.GL.
func (g *GL) DeleteContext(h host.GLHandle) {
	g.gl.Call("deleteContext", int(h))
}

// EnableExtension implements host.GL.
func (g *GL) EnableExtension(name string) bool {
	cc := g.gl.Get("currentContext")
	if !cc.Truthy() {
		return false
	}
	return cc.Get("GLctx").Call("getExtension", name).Truthy()
}

var _ host.GL = (*GL)(nil)
