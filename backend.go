package ggweb

// Backend is the kind of a Surface. It is fixed when the surface is made.
type Backend uint8

// Surface backends.
const (
	BackendSoftware Backend = iota
	BackendWebGL
	BackendWebGPU
)

// String returns the backend's registry name.
func (b Backend) String() string {
	switch b {
	case BackendSoftware:
		return "software"
	case BackendWebGL:
		return "webgl"
	case BackendWebGPU:
		return "webgpu"
	default:
		return "unknown"
	}
}

// IsGPU reports whether the backend draws through a GPU context.
func (b Backend) IsGPU() bool {
	return b == BackendWebGL || b == BackendWebGPU
}
