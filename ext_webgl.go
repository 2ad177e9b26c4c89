//go:build !nowebgl

package ggweb

import (
	"github.com/gogpu/ggweb/host"
	"github.com/gogpu/ggweb/native"
)

func init() {
	registerBuiltin(orderWebGL, installWebGL)
}

// installWebGL binds the host's GL bridge and registers the WebGL backend.
// Without a bridge the context registry stays unbound.
func installWebGL(m *Module) {
	if m.host.GL == nil {
		return
	}
	m.gl = m.host.GL
	m.contexts.bind(m.gl)

	_, glEngine := m.host.Engine.(native.GLEngine)
	m.backends.Register(BackendWebGL.String(), BackendWebGL, PriorityWebGL,
		func(t host.DisplayTarget, opts SurfaceOptions) (*Surface, error) {
			return m.makeWebGLSurface(t, opts.GL...)
		},
		func(SurfaceOptions) bool { return glEngine })
}
