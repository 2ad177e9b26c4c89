package ggweb

import (
	"sort"
	"sync"
)

// Extension initializes one part of a Module. Extensions run once, right
// after the native module has loaded, in the order they were appended.
type Extension func(m *Module)

// Bootstrap is an ordered list of extensions waiting for a module to load.
// It is safe for concurrent use.
type Bootstrap struct {
	mu      sync.Mutex
	exts    []Extension
	drained bool
}

// builtin extensions, registered from init functions of the ext_*.go files.
var (
	builtinMu  sync.Mutex
	builtinExt []builtin
)

type builtin struct {
	order int
	ext   Extension
}

// Order of the compiled-in extensions.
const (
	orderSoftware = iota
	orderWebGL
	orderWebGPU
)

func registerBuiltin(order int, ext Extension) {
	builtinMu.Lock()
	defer builtinMu.Unlock()

	builtinExt = append(builtinExt, builtin{order: order, ext: ext})
	sort.SliceStable(builtinExt, func(i, j int) bool {
		return builtinExt[i].order < builtinExt[j].order
	})
}

// NewBootstrap returns a bootstrap holding the compiled-in extensions:
// software, then webgl and webgpu unless excluded by build tags.
func NewBootstrap() *Bootstrap {
	builtinMu.Lock()
	defer builtinMu.Unlock()

	b := &Bootstrap{exts: make([]Extension, 0, len(builtinExt))}
	for _, e := range builtinExt {
		b.exts = append(b.exts, e.ext)
	}
	return b
}

// Append adds ext to the end of the list. It fails once the bootstrap has
// been drained.
func (b *Bootstrap) Append(ext Extension) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.drained {
		return ErrBootstrapDrained
	}
	b.exts = append(b.exts, ext)
	return nil
}

// Len returns the number of extensions waiting to run.
func (b *Bootstrap) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.exts)
}

// Drained reports whether Drain has run.
func (b *Bootstrap) Drained() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.drained
}

// Drain runs every extension against m in append order and consumes the
// list. Only the first call runs anything; it returns the number run.
func (b *Bootstrap) Drain(m *Module) int {
	b.mu.Lock()
	if b.drained {
		b.mu.Unlock()
		return 0
	}
	exts := b.exts
	b.exts = nil
	b.drained = true
	b.mu.Unlock()

	for _, ext := range exts {
		if ext != nil {
			ext(m)
		}
	}
	return len(exts)
}
