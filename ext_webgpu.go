//go:build !nowebgpu

package ggweb

import "github.com/gogpu/ggweb/native"

func init() {
	registerBuiltin(orderWebGPU, installWebGPU)
}

// installWebGPU enables the WebGPU entry points and registers the backend.
// The backend is only tried when a device is supplied.
func installWebGPU(m *Module) {
	m.webgpu = true
	m.gpu = m.host.GPU

	_, gpuEngine := m.host.Engine.(native.WebGPUEngine)
	m.backends.Register(BackendWebGPU.String(), BackendWebGPU, PriorityWebGPU,
		m.makeWebGPUSurface,
		func(opts SurfaceOptions) bool {
			return gpuEngine && m.gpu != nil && opts.Device != nil
		})
}
