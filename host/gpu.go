// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package host

import (
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// PresentationConfig configures a presentation surface.
// AlphaMode CompositeAlphaModeAuto leaves the host default in place.
type PresentationConfig struct {
	Device    gpucontext.Device
	Format    gputypes.TextureFormat
	AlphaMode gputypes.CompositeAlphaMode
}

// PresentationSurface is the WebGPU context of a display target.
type PresentationSurface interface {
	Configure(cfg PresentationConfig) error

	// CurrentTexture returns the texture the next composited frame reads.
	CurrentTexture() (gpucontext.Texture, error)

	// Size returns the size of the target's drawing buffer.
	Size() (width, height int)
}

// Presenter is implemented by presentation surfaces that need an explicit
// present call once a frame has been flushed. Browsers present implicitly.
type Presenter interface {
	Present(tex gpucontext.Texture) error
}

// GPU is the host's WebGPU entry point.
type GPU interface {
	// PreferredCanvasFormat returns the format the host composites fastest.
	PreferredCanvasFormat() gputypes.TextureFormat

	// PresentationSurface returns the WebGPU context of t.
	PresentationSurface(t DisplayTarget) (PresentationSurface, bool)
}

// FrameScheduler runs callbacks on the display's refresh.
type FrameScheduler interface {
	RequestAnimationFrame(fn func())
}
