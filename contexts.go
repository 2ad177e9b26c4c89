package ggweb

import (
	"github.com/gogpu/gpucontext"

	"github.com/gogpu/ggweb/host"
	"github.com/gogpu/ggweb/native"
)

// ContextRegistry tracks the GL contexts a Module created and the direct
// context wrapping each. It is the only place that switches the current GL
// context.
//
// Without a GL bridge (a build or host without WebGL) SetCurrent always
// fails and CurrentDirectContext is always nil.
type ContextRegistry struct {
	gl     host.GL
	live   map[host.GLHandle]bool
	direct map[host.GLHandle]*DirectContext
}

func newContextRegistry() *ContextRegistry {
	return &ContextRegistry{
		live:   make(map[host.GLHandle]bool),
		direct: make(map[host.GLHandle]*DirectContext),
	}
}

func (r *ContextRegistry) bind(gl host.GL) {
	r.gl = gl
}

// SetCurrent makes h the current GL context. It returns false, without
// switching, for host.NoContext or when there is no GL bridge.
func (r *ContextRegistry) SetCurrent(h host.GLHandle) bool {
	if h == host.NoContext || r.gl == nil {
		return false
	}
	ok := r.gl.MakeCurrent(h)
	Logger().Debug("ggweb: make current", "handle", h, "ok", ok)
	return ok
}

// Current returns the current GL context, or host.NoContext.
func (r *ContextRegistry) Current() host.GLHandle {
	if r.gl == nil {
		return host.NoContext
	}
	return r.gl.Current()
}

// CurrentDirectContext returns the direct context made for the current GL
// context. It returns nil when nothing is current, when no direct context
// was made for it, or when that direct context has been deleted.
func (r *ContextRegistry) CurrentDirectContext() *DirectContext {
	h := r.Current()
	if h == host.NoContext {
		return nil
	}
	dc := r.direct[h]
	if dc == nil || dc.IsDeleted() {
		return nil
	}
	return dc
}

// Live reports whether h was created through this registry and not deleted.
func (r *ContextRegistry) Live(h host.GLHandle) bool {
	return r.live[h]
}

// Len returns the number of live GL contexts.
func (r *ContextRegistry) Len() int {
	return len(r.live)
}

// Delete re-selects h, then deletes its direct context, if any, and the GL
// context itself. Unknown and already deleted handles are ignored.
func (r *ContextRegistry) Delete(h host.GLHandle) bool {
	if h == host.NoContext || !r.live[h] {
		return false
	}
	if dc := r.direct[h]; dc != nil {
		dc.Delete()
	}
	r.SetCurrent(h)
	r.gl.DeleteContext(h)
	delete(r.live, h)
	delete(r.direct, h)
	Logger().Debug("ggweb: deleted context", "handle", h)
	return true
}

func (r *ContextRegistry) add(h host.GLHandle) {
	r.live[h] = true
}

func (r *ContextRegistry) attach(h host.GLHandle, dc *DirectContext) {
	r.direct[h] = dc
}

// DirectContext is the engine's wrapper around a GPU context, tagged with
// the GL handle or WebGPU device it was made from.
type DirectContext struct {
	native   native.DirectContext
	kind     Backend
	handle   host.GLHandle
	device   gpucontext.Device
	contexts *ContextRegistry
	deleted  bool
}

// Backend returns BackendWebGL or BackendWebGPU.
func (c *DirectContext) Backend() Backend { return c.kind }

// Handle returns the GL context the direct context wraps, or host.NoContext
// for WebGPU.
func (c *DirectContext) Handle() host.GLHandle { return c.handle }

// Device returns the WebGPU device, or nil for WebGL.
func (c *DirectContext) Device() gpucontext.Device { return c.device }

// Native returns the engine object.
func (c *DirectContext) Native() native.DirectContext { return c.native }

// IsDeleted reports whether the direct context has been deleted.
func (c *DirectContext) IsDeleted() bool {
	return c.deleted || c.native.IsDeleted()
}

// Delete destroys the engine object. A WebGL direct context first re-selects
// its own GL context so that the engine tears down the right state. Calling
// Delete again does nothing.
func (c *DirectContext) Delete() {
	if c.deleted {
		return
	}
	c.deleted = true
	if c.kind == BackendWebGL {
		c.contexts.SetCurrent(c.handle)
	}
	if !c.native.IsDeleted() {
		c.native.Delete()
	}
}
