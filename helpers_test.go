package ggweb

import (
	"errors"
	"testing"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/ggweb/engine/soft"
	"github.com/gogpu/ggweb/heap"
	"github.com/gogpu/ggweb/host"
	"github.com/gogpu/ggweb/host/memhost"
	"github.com/gogpu/ggweb/native"
)

var errEngine = errors.New("engine refused")

type object struct {
	deletes int
}

func (o *object) Delete()         { o.deletes++ }
func (o *object) IsDeleted() bool { return o.deletes > 0 }

type gpuSurface struct {
	object
	width, height int
	flushes       int
}

func (s *gpuSurface) Width() int            { return s.width }
func (s *gpuSurface) Height() int           { return s.height }
func (s *gpuSurface) Canvas() native.Canvas { return s }
func (s *gpuSurface) Flush()                { s.flushes++ }

type directContext struct {
	object
	engine       *engine
	device       gpucontext.Device
	deletedUnder host.GLHandle // current GL context when Delete ran
}

func (d *directContext) Delete() {
	if d.engine.gl != nil {
		d.deletedUnder = d.engine.gl.Current()
	}
	d.object.Delete()
}

type textureSurface struct {
	gpuSurface
	texture any
	format  int
	cs      native.ColorSpace
}

// engine is a GL and WebGPU capable engine. Raster surfaces come from the
// soft engine; GPU objects are recorded for inspection.
type engine struct {
	*soft.Engine

	gl     *memhost.GL
	values native.Values

	failRaster     bool
	failDirect     bool
	failGLSurface  bool
	failGPUDirect  bool
	failGPUSurface bool

	directs  []*directContext
	surfaces []*gpuSurface
	textures []*textureSurface
}

func (e *engine) MakeRasterDirect(width, height int, p native.Ptr, rowBytes int) (native.Surface, error) {
	if e.failRaster {
		return nil, errEngine
	}
	return e.Engine.MakeRasterDirect(width, height, p, rowBytes)
}

func (e *engine) MakeWebGLDirectContext() (native.DirectContext, error) {
	if e.failDirect {
		return nil, errEngine
	}
	d := &directContext{engine: e}
	e.directs = append(e.directs, d)
	return d, nil
}

func (e *engine) MakeOnScreenGLSurface(_ native.DirectContext, width, height int) (native.Surface, error) {
	if e.failGLSurface {
		return nil, nil
	}
	s := &gpuSurface{width: width, height: height}
	e.surfaces = append(e.surfaces, s)
	return s, nil
}

func (e *engine) MakeWebGPUDirectContext(dev gpucontext.Device) (native.DirectContext, error) {
	if e.failGPUDirect {
		return nil, errEngine
	}
	d := &directContext{engine: e, device: dev}
	e.directs = append(e.directs, d)
	return d, nil
}

func (e *engine) MakeGPUTextureSurface(_ native.DirectContext, h native.Handle, format int, width, height int, cs native.ColorSpace) (native.Surface, error) {
	tex, ok := e.values.Take(h)
	if !ok {
		return nil, errors.New("texture handle not in value store")
	}
	if e.failGPUSurface {
		return nil, errEngine
	}
	s := &textureSurface{gpuSurface: gpuSurface{width: width, height: height}, texture: tex, format: format, cs: cs}
	e.textures = append(e.textures, s)
	return s, nil
}

func (e *engine) Values() native.ValueStore { return &e.values }

// liveTextures returns the number of texture surfaces not yet deleted.
func (e *engine) liveTextures() int {
	n := 0
	for _, s := range e.textures {
		if !s.IsDeleted() {
			n++
		}
	}
	return n
}

var (
	_ native.GLEngine     = (*engine)(nil)
	_ native.WebGPUEngine = (*engine)(nil)
)

type device struct{ name string }

// fixture is a module on a memhost with every capability present.
type fixture struct {
	doc    *memhost.Document
	heap   *heap.Go
	gl     *memhost.GL
	gpu    *memhost.GPU
	frames *memhost.FrameQueue
	engine *engine
	m      *Module
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		doc:    memhost.NewDocument(),
		heap:   heap.New(0),
		frames: &memhost.FrameQueue{},
	}
	f.gl = memhost.NewGL(f.doc)
	f.gpu = memhost.NewGPU(f.doc)
	f.engine = &engine{Engine: soft.New(f.heap), gl: f.gl}
	f.m = f.load(t, Host{
		Engine:   f.engine,
		Heap:     f.heap,
		Displays: f.doc,
		GL:       f.gl,
		GPU:      f.gpu,
		Frames:   f.frames,
	})
	return f
}

// newCPUFixture is a module whose host has no GL, no GPU and a raster-only
// engine.
func newCPUFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		doc:  memhost.NewDocument(),
		heap: heap.New(0),
	}
	f.m = f.load(t, Host{
		Engine:   soft.New(f.heap),
		Heap:     f.heap,
		Displays: f.doc,
	})
	return f
}

func (f *fixture) load(t *testing.T, h Host) *Module {
	t.Helper()
	m, err := New(h)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return m
}
