// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package host defines what ggweb needs from the environment it runs in:
// display targets and their 2D blit capability, a GL-style context bridge,
// a WebGPU bridge, and an animation frame scheduler.
//
// Implementations live in sub-packages:
//
//   - memhost: headless, in-memory host used by tests and command-line tools
//   - jshost: the browser, through syscall/js (js/wasm builds only)
//   - wgpuhost: native WebGPU presentation through gogpu/wgpu
package host
