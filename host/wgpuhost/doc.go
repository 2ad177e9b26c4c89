// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package wgpuhost presents WebGPU surfaces through gogpu/wgpu windows.
//
// GPU implements host.GPU for desktop programs that drive the engine's
// WebGPU backend outside a browser. The device comes from a
// gpucontext.DeviceProvider (usually the gogpu application); each display
// target is matched by id to a *wgpu.Surface attached with Attach.
//
//	gpu, err := wgpuhost.New(app)
//	gpu.Attach("main", surface)
//	m, err := ggweb.New(ggweb.Host{Engine: e, Heap: h, Displays: doc, GPU: gpu})
//	s, err := m.MakeSurfaceByID("main", ggweb.SurfaceOptions{Device: gpu.Device()})
//
// Unlike a browser canvas, a window surface must be presented explicitly;
// Surface implements host.Presenter so ggweb presents on Flush.
package wgpuhost
