package ggweb

import "github.com/gogpu/ggweb/host"

func init() {
	registerBuiltin(orderSoftware, installSoftware)
}

func installSoftware(m *Module) {
	m.backends.Register(BackendSoftware.String(), BackendSoftware, PrioritySoftware,
		func(t host.DisplayTarget, _ SurfaceOptions) (*Surface, error) {
			return m.MakeSWSurface(t)
		}, nil)
}
