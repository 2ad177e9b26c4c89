package wasmheap

import (
	"context"
	"fmt"

	"github.com/tetratelabs/wazero"
)

// allocatorWasm is a minimal module exporting memory, malloc, free and a
// mutable i32 global "frees". malloc is an 8-byte aligned bump allocator
// starting at 1024 that grows memory on demand and returns 0 when growth
// fails. free never reuses memory; it counts calls with a non-zero pointer.
var allocatorWasm = []byte{
	0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00, 0x01, 0x0a, 0x02, 0x60,
	0x01, 0x7f, 0x01, 0x7f, 0x60, 0x01, 0x7f, 0x00, 0x03, 0x03, 0x02, 0x00,
	0x01, 0x05, 0x03, 0x01, 0x00, 0x01, 0x06, 0x0c, 0x02, 0x7f, 0x01, 0x41,
	0x80, 0x08, 0x0b, 0x7f, 0x01, 0x41, 0x00, 0x0b, 0x07, 0x22, 0x04, 0x06,
	0x6d, 0x65, 0x6d, 0x6f, 0x72, 0x79, 0x02, 0x00, 0x06, 0x6d, 0x61, 0x6c,
	0x6c, 0x6f, 0x63, 0x00, 0x00, 0x04, 0x66, 0x72, 0x65, 0x65, 0x00, 0x01,
	0x05, 0x66, 0x72, 0x65, 0x65, 0x73, 0x03, 0x01, 0x0a, 0x4b, 0x02, 0x3a,
	0x01, 0x01, 0x7f, 0x23, 0x00, 0x21, 0x01, 0x20, 0x01, 0x20, 0x00, 0x6a,
	0x41, 0x07, 0x6a, 0x41, 0x78, 0x71, 0x24, 0x00, 0x02, 0x40, 0x03, 0x40,
	0x23, 0x00, 0x3f, 0x00, 0x41, 0x10, 0x74, 0x4d, 0x0d, 0x01, 0x41, 0x01,
	0x40, 0x00, 0x41, 0x7f, 0x46, 0x04, 0x40, 0x20, 0x01, 0x24, 0x00, 0x41,
	0x00, 0x0f, 0x0b, 0x0c, 0x00, 0x0b, 0x0b, 0x20, 0x01, 0x0b, 0x0e, 0x00,
	0x20, 0x00, 0x04, 0x40, 0x23, 0x01, 0x41, 0x01, 0x6a, 0x24, 0x01, 0x0b,
	0x0b,
}

// Standalone is a Heap backed by its own runtime and the embedded allocator.
type Standalone struct {
	*Heap
	rt wazero.Runtime
}

// NewStandalone starts a runtime and instantiates the embedded allocator.
func NewStandalone(ctx context.Context) (*Standalone, error) {
	rt := wazero.NewRuntime(ctx)
	mod, err := rt.InstantiateWithConfig(ctx, allocatorWasm,
		wazero.NewModuleConfig().WithName("ggweb-heap"))
	if err != nil {
		_ = rt.Close(ctx)
		return nil, fmt.Errorf("wasmheap: instantiate allocator: %w", err)
	}
	h, err := New(ctx, mod)
	if err != nil {
		_ = rt.Close(ctx)
		return nil, err
	}
	return &Standalone{Heap: h, rt: rt}, nil
}

// Frees reports how many non-zero pointers were released.
func (s *Standalone) Frees() int {
	g := s.mod.ExportedGlobal("frees")
	if g == nil {
		return 0
	}
	return int(int32(g.Get()))
}

// Close releases the runtime and all module memory.
func (s *Standalone) Close(ctx context.Context) error {
	return s.rt.Close(ctx)
}
