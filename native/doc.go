// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package native describes the boundary between ggweb and the native
// rendering engine.
//
// The engine is an opaque capability: it can raster into a memory region
// owned by a [Heap], wrap the current GL context as a direct context, and
// build surfaces over imported GPU textures. Everything the engine returns
// is an [Object] that must be deleted explicitly; nothing here relies on
// garbage collection to release native memory or GPU handles.
//
// GPU support is optional. An engine built without WebGL implements only
// [Engine]; WebGL and WebGPU builds additionally implement [GLEngine] and
// [WebGPUEngine]. ggweb probes for those interfaces the same way a
// compile-time feature flag would gate the corresponding backend.
package native
