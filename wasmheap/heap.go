package wasmheap

import (
	"context"
	"errors"
	"fmt"

	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/gogpu/ggweb/native"
)

// Errors returned while binding a module.
var (
	ErrNoMemory    = errors.New("wasmheap: module exports no memory")
	ErrNoAllocator = errors.New("wasmheap: module exports no malloc/free pair")
	ErrOutOfMemory = errors.New("wasmheap: out of memory")
)

var allocatorNames = [][2]string{
	{"malloc", "free"},
	{"_malloc", "_free"},
}

// Heap allocates from a wazero module.
type Heap struct {
	ctx    context.Context
	mod    api.Module
	mem    api.Memory
	malloc api.Function
	free   api.Function
}

// New binds a heap to mod. ctx is used for every allocator call.
func New(ctx context.Context, mod api.Module) (*Heap, error) {
	mem := mod.Memory()
	if mem == nil {
		return nil, ErrNoMemory
	}
	for _, names := range allocatorNames {
		m := mod.ExportedFunction(names[0])
		f := mod.ExportedFunction(names[1])
		if m != nil && f != nil {
			Logger().Debug("bound heap",
				zap.String("module", mod.Name()),
				zap.String("malloc", names[0]),
				zap.Uint32("pages", mem.Size()/pageSize))
			return &Heap{ctx: ctx, mod: mod, mem: mem, malloc: m, free: f}, nil
		}
	}
	return nil, ErrNoAllocator
}

const pageSize = 65536

// Malloc calls the module's allocator.
func (h *Heap) Malloc(size int) (native.Ptr, error) {
	if size < 0 || uint64(size) > uint64(^uint32(0)) {
		return 0, fmt.Errorf("wasmheap: invalid allocation size %d", size)
	}
	res, err := h.malloc.Call(h.ctx, uint64(size))
	if err != nil {
		return 0, fmt.Errorf("wasmheap: malloc(%d): %w", size, err)
	}
	p := native.Ptr(api.DecodeU32(res[0]))
	if p == 0 {
		Logger().Warn("allocation failed", zap.Int("size", size))
		return 0, fmt.Errorf("%w: %d bytes", ErrOutOfMemory, size)
	}
	return p, nil
}

// Free calls the module's deallocator. Free(0) is a no-op.
func (h *Heap) Free(p native.Ptr) {
	if p == 0 {
		return
	}
	if _, err := h.free.Call(h.ctx, api.EncodeU32(uint32(p))); err != nil {
		Logger().Error("free failed", zap.Uint32("ptr", uint32(p)), zap.Error(err))
	}
}

// Bytes returns a write-through view of module memory.
func (h *Heap) Bytes(p native.Ptr, size int) ([]byte, error) {
	if size < 0 {
		return nil, fmt.Errorf("wasmheap: invalid read size %d", size)
	}
	b, ok := h.mem.Read(uint32(p), uint32(size))
	if !ok {
		return nil, fmt.Errorf("wasmheap: memory read out of bounds: offset=%d, length=%d", uint32(p), size)
	}
	return b, nil
}

// Module returns the module the heap allocates from.
func (h *Heap) Module() api.Module {
	return h.mod
}

var _ native.Heap = (*Heap)(nil)
