// Package ggweb manages surfaces and GPU contexts for a native 2D/3D engine
// compiled to WebAssembly.
//
// # Overview
//
// The native engine draws through one of three backends: a software raster
// buffer in engine memory, a WebGL context, or a WebGPU device. ggweb picks
// the backend, acquires the context, owns the pixel buffer of software
// surfaces and tears everything down again. It also keeps the single "current"
// GL context pointed at the right place before every native call.
//
// # Quick Start
//
//	m, err := ggweb.Load(ctx, loadEngine)
//	if err != nil {
//		return err
//	}
//
//	// Best available backend: WebGPU, then WebGL, then software.
//	s, err := m.MakeSurfaceByID("canvas", ggweb.SurfaceOptions{})
//	if err != nil {
//		return err
//	}
//	defer s.Dispose()
//
//	draw(s.Canvas())
//	if err := s.Flush(); err != nil {
//		return err
//	}
//
// # Fallback
//
// A display target that has been bound to a GPU context cannot be bound to
// another one. When a GPU backend fails part way, the target is replaced by
// a fresh clone before the next backend is tried. Surface.Target returns the
// target a surface actually presents into; Replaced reports whether it is a
// clone.
//
// # Hosts
//
// ggweb talks to the engine through the interfaces in package native and to
// the page through package host. host/jshost implements them in the browser,
// host/memhost headlessly, and host/wgpuhost presents through gogpu/wgpu on
// the desktop.
//
// # Build Tags
//
// The WebGL and WebGPU backends register themselves from their own files.
// Build with -tags nowebgl or -tags nowebgpu to leave them out; the software
// backend is always present.
package ggweb
