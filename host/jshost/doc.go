// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package jshost runs ggweb in the browser.
//
// It binds the host interfaces to the DOM and to the JavaScript object of
// the compiled engine module: canvases are looked up by element id, GL
// contexts go through the module's GL table, WebGPU through navigator.gpu,
// and frames through window.requestAnimationFrame.
//
// The package only builds for GOOS=js GOARCH=wasm.
//
//	m, err := ggweb.Load(ctx, jshost.Loader("EngineInit"))
package jshost
