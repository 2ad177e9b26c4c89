// Package wasmheap implements native.Heap over the linear memory of a
// WebAssembly module instantiated with wazero.
//
// The module must export its memory as "memory" and an allocator pair named
// "malloc"/"free" (Emscripten's "_malloc"/"_free" are accepted too). Views
// returned by Heap.Bytes write through to module memory; they disconnect
// when the module grows its memory, so callers re-resolve them after every
// allocation.
//
// NewStandalone instantiates a small embedded allocator for hosts that run
// the native engine out of process and only need a shared pixel heap.
package wasmheap
