//go:build js && wasm

package jshost

import (
	"errors"
	"fmt"
	"syscall/js"

	"github.com/gogpu/ggweb/native"
)

// ErrOutOfMemory is returned when the module's malloc returns null.
var ErrOutOfMemory = errors.New("jshost: module out of memory")

// Heap is the engine module's allocator.
//
// Bytes returns a copy: Go memory cannot alias the module's linear memory.
type Heap struct {
	mod js.Value
}

// Malloc implements native.Heap.
func (h *Heap) Malloc(size int) (native.Ptr, error) {
	p := h.mod.Call("_malloc", size).Int()
	if p == 0 {
		return 0, fmt.Errorf("%w: size=%d", ErrOutOfMemory, size)
	}
	return native.Ptr(p), nil
}

// Free implements native.Heap.
func (h *Heap) Free(p native.Ptr) {
	if p == 0 {
		return
	}
	h.mod.Call("_free", uint32(p))
}

// Bytes implements native.Heap.
func (h *Heap) Bytes(p native.Ptr, size int) ([]byte, error) {
	v, err := h.view(p, size)
	if err != nil {
		return nil, err
	}
	buf := make([]byte, size)
	js.CopyBytesToGo(buf, v)
	return buf, nil
}

func (h *Heap) view(p native.Ptr, size int) (js.Value, error) {
	// HEAPU8 is replaced when memory grows, so it is fetched on every use.
	mem := h.mod.Get("HEAPU8")
	end := int(p) + size
	if p == 0 || size < 0 || end > mem.Length() {
		return js.Undefined(), fmt.Errorf("jshost: range [%d, %d) outside module memory (%d bytes)", p, end, mem.Length())
	}
	return mem.Call("subarray", uint32(p), end), nil
}

var _ native.Heap = (*Heap)(nil)
