// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package native

import (
	"errors"

	"github.com/gogpu/gpucontext"
)

// ErrUnsupported is returned by engines for capabilities they were built without.
var ErrUnsupported = errors.New("native: capability not supported")

// Ptr is an address inside the engine's linear memory. Zero is the null pointer.
type Ptr uint32

// Heap is the engine's memory allocator.
//
// Free(0) must be a no-op. Slices returned by Bytes alias engine memory when
// the heap can provide a view; they may be invalidated by a later Malloc that
// grows the underlying memory.
type Heap interface {
	Malloc(size int) (Ptr, error)
	Free(p Ptr)
	Bytes(p Ptr, size int) ([]byte, error)
}

// Object is a native object with an explicit lifetime.
// Delete is not guaranteed to be idempotent by the engine.
type Object interface {
	Delete()
	IsDeleted() bool
}

// Canvas is the engine's drawing handle for a surface. Its concrete type is
// engine specific (an image.RGBA for the software engine, a JS object in the
// browser).
type Canvas interface{}

// Surface is a native drawable.
type Surface interface {
	Object

	Width() int
	Height() int

	// Canvas returns the drawing handle for this surface.
	Canvas() Canvas

	// Flush submits pending draw commands to the surface's backing store.
	Flush()
}

// DirectContext is the engine's wrapper around a host GPU context.
type DirectContext interface {
	Object
}

// ColorSpace names the color space of a GPU texture surface.
// The zero value means none.
type ColorSpace string

// Color spaces understood by the engines in this module.
const (
	ColorSpaceNone      ColorSpace = ""
	ColorSpaceSRGB      ColorSpace = "srgb"
	ColorSpaceDisplayP3 ColorSpace = "display-p3"
)

// Engine is the capability set every build of the native engine provides.
type Engine interface {
	// MakeRasterDirect builds a raster surface directly over caller-owned
	// pixels. The memory is RGBA8888, rowBytes apart, and stays owned by
	// the caller.
	MakeRasterDirect(width, height int, pixels Ptr, rowBytes int) (Surface, error)
}

// GLEngine is implemented by engines built with WebGL support.
// Both methods operate on whatever GL context is current.
type GLEngine interface {
	Engine

	MakeWebGLDirectContext() (DirectContext, error)
	MakeOnScreenGLSurface(ctx DirectContext, width, height int) (Surface, error)
}

// WebGPUEngine is implemented by engines built with WebGPU support.
type WebGPUEngine interface {
	Engine

	// MakeWebGPUDirectContext imports the pre-initialized device.
	MakeWebGPUDirectContext(device gpucontext.Device) (DirectContext, error)

	// MakeGPUTextureSurface builds a surface over a texture previously
	// handed to the engine through its ValueStore. format is an index into
	// the engine's texture format table.
	MakeGPUTextureSurface(ctx DirectContext, texture Handle, format int, width, height int, cs ColorSpace) (Surface, error)

	// Values returns the store used to hand external objects to the engine.
	Values() ValueStore
}
