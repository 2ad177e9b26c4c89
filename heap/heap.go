// Package heap provides a native.Heap backed by Go memory.
//
// It is used when the native engine runs in-process (see engine/soft) and in
// tests. Pointers are synthetic addresses: they start above zero, are 8-byte
// aligned and are never reused, so a stale pointer can never alias a newer
// allocation. Once the 32-bit address space is spent, Malloc fails with
// ErrAddressSpace.
package heap

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/gogpu/ggweb/native"
)

// Errors returned by Malloc.
var (
	ErrInvalidSize  = errors.New("heap: invalid allocation size")
	ErrAddressSpace = errors.New("heap: out of address space")
)

// base is the first address handed out. Zero stays the null pointer.
const base native.Ptr = 1024

// Go is a heap of Go byte slices keyed by synthetic address.
type Go struct {
	mu     sync.Mutex
	next   native.Ptr
	blocks map[native.Ptr][]byte
	limit  int
	inUse  int
	frees  int
}

// New returns an empty heap. limit caps the bytes live at once; zero means
// unlimited.
func New(limit int) *Go {
	return &Go{
		next:   base,
		blocks: make(map[native.Ptr][]byte),
		limit:  limit,
	}
}

// Malloc allocates size zeroed bytes.
func (h *Go) Malloc(size int) (native.Ptr, error) {
	if size < 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.limit > 0 && h.inUse+size > h.limit {
		return 0, fmt.Errorf("heap: out of memory: %d bytes requested, %d of %d in use", size, h.inUse, h.limit)
	}

	step := uint64(size+7) &^ 7
	if size == 0 {
		step = 8
	}
	// Addresses are 32-bit; the counter must not wrap onto live blocks.
	end := uint64(h.next) + step
	if end > math.MaxUint32 {
		return 0, fmt.Errorf("%w: %d bytes requested at %#x", ErrAddressSpace, size, uint32(h.next))
	}
	p := h.next
	if _, live := h.blocks[p]; live {
		return 0, fmt.Errorf("%w: %#x is live", ErrAddressSpace, uint32(p))
	}
	h.next = native.Ptr(end)
	h.blocks[p] = make([]byte, size)
	h.inUse += size
	return p, nil
}

// Free releases the block at p. Freeing 0 or an unknown pointer is a no-op.
func (h *Go) Free(p native.Ptr) {
	if p == 0 {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	b, ok := h.blocks[p]
	if !ok {
		return
	}
	delete(h.blocks, p)
	h.inUse -= len(b)
	h.frees++
}

// Bytes returns a view of size bytes starting at p. The range must lie
// inside a single live block.
func (h *Go) Bytes(p native.Ptr, size int) ([]byte, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	b, ok := h.blocks[p]
	if !ok {
		return nil, fmt.Errorf("heap: no live block at %#x", uint32(p))
	}
	if size < 0 || size > len(b) {
		return nil, fmt.Errorf("heap: read of %d bytes at %#x exceeds block of %d", size, uint32(p), len(b))
	}
	return b[:size:size], nil
}

// InUse returns the number of bytes currently allocated.
func (h *Go) InUse() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.inUse
}

// Live returns the number of live blocks.
func (h *Go) Live() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.blocks)
}

// Frees returns how many blocks have been released.
func (h *Go) Frees() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.frees
}

var _ native.Heap = (*Go)(nil)
