package ggweb

import (
	"fmt"

	"github.com/gogpu/ggweb/native"
)

// bytesPerPixel is the size of one RGBA8888 pixel.
const bytesPerPixel = 4

// pixelBuffer is width*height*4 bytes of engine memory owned by exactly one
// software Surface.
type pixelBuffer struct {
	heap native.Heap
	ptr  native.Ptr
	size int
}

func allocPixels(heap native.Heap, width, height int) (*pixelBuffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimensions, width, height)
	}
	size := width * height * bytesPerPixel
	p, err := heap.Malloc(size)
	if err != nil {
		return nil, fmt.Errorf("ggweb: allocate %d pixel bytes: %w", size, err)
	}
	if p == 0 {
		return nil, fmt.Errorf("ggweb: allocate %d pixel bytes: null pointer", size)
	}
	return &pixelBuffer{heap: heap, ptr: p, size: size}, nil
}

// bytes resolves the buffer in engine memory. The slice must not be kept:
// engine memory may move when it grows.
func (b *pixelBuffer) bytes() ([]byte, error) {
	if b.ptr == 0 {
		return nil, ErrDisposed
	}
	return b.heap.Bytes(b.ptr, b.size)
}

func (b *pixelBuffer) held() bool {
	return b.ptr != 0
}

// release frees the buffer. Only the first call frees.
func (b *pixelBuffer) release() {
	if b.ptr == 0 {
		return
	}
	b.heap.Free(b.ptr)
	b.ptr = 0
}
