// Package soft is a raster-only native engine that draws straight into heap
// memory.
//
// It stands in for the WebAssembly engine when everything runs in one Go
// process: headless hosts, tools and tests. It implements native.Engine only,
// so surfaces made through it always take the software path.
package soft

import (
	"errors"
	"fmt"

	"github.com/gogpu/ggweb/native"
)

// ErrBadRowBytes is returned when rowBytes cannot hold a row of pixels.
var ErrBadRowBytes = errors.New("soft: row bytes smaller than width*4")

// Engine makes raster surfaces over a native.Heap.
type Engine struct {
	heap native.Heap
	live int
}

// New returns an engine that resolves pixel pointers through heap.
func New(heap native.Heap) *Engine {
	return &Engine{heap: heap}
}

// Heap returns the heap pixel pointers are resolved in.
func (e *Engine) Heap() native.Heap {
	return e.heap
}

// Live returns the number of surfaces made and not yet deleted.
func (e *Engine) Live() int {
	return e.live
}

// MakeRasterDirect wraps width*height pixels at p. The memory stays owned by
// the caller and must outlive the surface.
func (e *Engine) MakeRasterDirect(width, height int, p native.Ptr, rowBytes int) (native.Surface, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("soft: invalid surface size %dx%d", width, height)
	}
	if rowBytes < width*4 {
		return nil, fmt.Errorf("%w: rowBytes=%d, width=%d", ErrBadRowBytes, rowBytes, width)
	}
	if p == 0 {
		return nil, errors.New("soft: nil pixel pointer")
	}
	// Probe once so a bad pointer fails construction rather than the first draw.
	if _, err := e.heap.Bytes(p, rowBytes*height); err != nil {
		return nil, fmt.Errorf("soft: pixel memory: %w", err)
	}
	e.live++
	s := &Surface{engine: e, width: width, height: height, pixels: p, stride: rowBytes}
	s.canvas = &Canvas{surface: s}
	return s, nil
}

var _ native.Engine = (*Engine)(nil)

// Surface is a raster surface over heap memory.
type Surface struct {
	engine  *Engine
	canvas  *Canvas
	width   int
	height  int
	pixels  native.Ptr
	stride  int
	flushes int
	deleted bool
}

// Width returns the surface width in pixels.
func (s *Surface) Width() int { return s.width }

// Height returns the surface height in pixels.
func (s *Surface) Height() int { return s.height }

// Canvas returns a *Canvas.
func (s *Surface) Canvas() native.Canvas { return s.canvas }

// Flush is a no-op: drawing lands in memory immediately.
func (s *Surface) Flush() {
	s.flushes++
}

// Flushes reports how many times Flush was called.
func (s *Surface) Flushes() int { return s.flushes }

// Delete detaches the surface. The pixel memory is not freed.
func (s *Surface) Delete() {
	if s.deleted {
		return
	}
	s.deleted = true
	s.engine.live--
}

// IsDeleted reports whether Delete was called.
func (s *Surface) IsDeleted() bool { return s.deleted }
