//go:build js && wasm

package jshost

import (
	"context"
	"fmt"
	"syscall/js"

	"github.com/gogpu/ggweb"
)

// Loader returns a ggweb.Loader that calls the global module factory
// initName, waits for the module, and binds the browser host to it.
// WebGPU is bridged only when navigator.gpu exists.
func Loader(initName string, args ...any) ggweb.Loader {
	return func(ctx context.Context) (ggweb.Host, error) {
		init := js.Global().Get(initName)
		if init.Type() != js.TypeFunction {
			return ggweb.Host{}, fmt.Errorf("jshost: %s is not a function", initName)
		}
		mod, err := await(ctx, init.Invoke(args...))
		if err != nil {
			return ggweb.Host{}, fmt.Errorf("jshost: %s: %w", initName, err)
		}
		return Bind(mod), nil
	}
}

// Bind builds a ggweb.Host over an already loaded module object.
func Bind(mod js.Value) ggweb.Host {
	e := NewEngine(mod)
	h := ggweb.Host{
		Engine:   e,
		Heap:     e.Heap(),
		Displays: NewDocument(),
		Frames:   NewFrames(),
	}
	if gl := NewGL(mod); gl.Available() {
		h.GL = gl
	}
	if gpu, err := NewGPU(); err == nil {
		h.GPU = gpu
	} else {
		ggweb.Logger().Debug("jshost: no WebGPU bridge", "error", err)
	}
	return h
}
