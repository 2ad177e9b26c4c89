package ggweb

import (
	"context"
	"fmt"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/ggweb/host"
	"github.com/gogpu/ggweb/native"
)

// Host bundles the engine and the page-side bridges a Module runs against.
// Engine, Heap and Displays are required. GL, GPU and Frames may be nil;
// the backends that need them then report themselves unavailable.
type Host struct {
	Engine   native.Engine
	Heap     native.Heap
	Displays host.DisplayProvider
	GL       host.GL
	GPU      host.GPU
	Frames   host.FrameScheduler
}

// Loader produces a Host once the native module has finished loading.
type Loader func(ctx context.Context) (Host, error)

// Module is a loaded native engine together with its surface and context
// state. A Module is not safe for concurrent use.
type Module struct {
	host     Host
	contexts *ContextRegistry
	backends *Registry

	// Set by the WebGL and WebGPU extensions.
	gl     host.GL
	gpu    host.GPU
	webgpu bool

	device        gpucontext.Device
	deviceContext *DirectContext
}

// Option configures a Module.
type Option func(*moduleOptions)

type moduleOptions struct {
	bootstrap *Bootstrap
}

// WithBootstrap runs b instead of a fresh NewBootstrap when the module is
// created. b must not have been drained.
func WithBootstrap(b *Bootstrap) Option {
	return func(o *moduleOptions) {
		o.bootstrap = b
	}
}

// Load waits for loader, then builds the Module as New does. Waiting for the
// loader is the only blocking step; everything after it is synchronous.
func Load(ctx context.Context, loader Loader, opts ...Option) (*Module, error) {
	h, err := loader(ctx)
	if err != nil {
		return nil, fmt.Errorf("ggweb: load: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return New(h, opts...)
}

// New builds a Module over h and runs the bootstrap extensions.
func New(h Host, opts ...Option) (*Module, error) {
	switch {
	case h.Engine == nil:
		return nil, fmt.Errorf("%w: no engine", ErrIncompleteHost)
	case h.Heap == nil:
		return nil, fmt.Errorf("%w: no heap", ErrIncompleteHost)
	case h.Displays == nil:
		return nil, fmt.Errorf("%w: no display provider", ErrIncompleteHost)
	}

	o := moduleOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.bootstrap == nil {
		o.bootstrap = NewBootstrap()
	}

	m := &Module{
		host:     h,
		contexts: newContextRegistry(),
		backends: NewRegistry(),
	}
	n := o.bootstrap.Drain(m)
	Logger().Info("ggweb: module loaded",
		"extensions", n,
		"backends", m.backends.Available())
	return m, nil
}

// Host returns the host the module was built over.
func (m *Module) Host() Host {
	return m.host
}

// Contexts returns the module's context registry.
func (m *Module) Contexts() *ContextRegistry {
	return m.contexts
}

// Backends returns the names of the registered backends, most preferred first.
func (m *Module) Backends() []string {
	return m.backends.List()
}

// Registry returns the module's backend registry.
func (m *Module) Registry() *Registry {
	return m.backends
}

// SetCurrentContext makes h the current GL context. See ContextRegistry.SetCurrent.
func (m *Module) SetCurrentContext(h host.GLHandle) bool {
	return m.contexts.SetCurrent(h)
}

// CurrentDirectContext returns the direct context of the current GL context.
func (m *Module) CurrentDirectContext() *DirectContext {
	return m.contexts.CurrentDirectContext()
}

// DeleteContext deletes the GL context h after re-selecting it. It returns
// false for NoContext and for handles that are unknown or already deleted.
func (m *Module) DeleteContext(h host.GLHandle) bool {
	return m.contexts.Delete(h)
}

// lookup resolves a display target id.
func (m *Module) lookup(id string) (host.DisplayTarget, error) {
	t, ok := m.host.Displays.Lookup(id)
	if !ok || t == nil {
		return nil, &TargetNotFoundError{ID: id}
	}
	return t, nil
}
