//go:build js && wasm

package jshost

import (
	"sync"
	"syscall/js"

	"github.com/gogpu/ggweb/host"
)

// Frames schedules callbacks with window.requestAnimationFrame.
type Frames struct {
	raf js.Value

	mu      sync.Mutex
	pending []func()
	tick    js.Func
	armed   bool
}

// NewFrames returns a scheduler bound to the global window.
func NewFrames() *Frames {
	f := &Frames{raf: js.Global().Get("requestAnimationFrame")}
	f.tick = js.FuncOf(func(js.Value, []js.Value) any {
		f.run()
		return nil
	})
	return f
}

// RequestAnimationFrame implements host.FrameScheduler. All callbacks
// requested before a frame share one browser request.
func (f *Frames) RequestAnimationFrame(fn func()) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.pending = append(f.pending, fn)
	if !f.armed {
		f.armed = true
		f.raf.Invoke(f.tick)
	}
}

func (f *Frames) run() {
	f.mu.Lock()
	fns := f.pending
	f.pending = nil
	f.armed = false
	f.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// Release frees the JS callback. Pending callbacks never run.
func (f *Frames) Release() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pending = nil
	f.tick.Release()
}

var _ host.FrameScheduler = (*Frames)(nil)
