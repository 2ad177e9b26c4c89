package memhost

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/gogpu/ggweb/host"
)

func TestDocumentLookupAndReplace(t *testing.T) {
	doc := NewDocument()
	orig := doc.AddCanvas("main", 300, 150)

	target, ok := doc.Lookup("main")
	if !ok {
		t.Fatal("Lookup(main) failed")
	}
	if _, ok := doc.Lookup("missing"); ok {
		t.Error("Lookup(missing) succeeded")
	}
	if w, h := target.Size(); w != 300 || h != 150 {
		t.Errorf("Size() = %dx%d, want 300x150", w, h)
	}

	repl, err := doc.Replace(target)
	if err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if !repl.Replaced() || repl.ID() != "main" {
		t.Errorf("replacement = {id %q, replaced %v}, want {main, true}", repl.ID(), repl.Replaced())
	}
	if !orig.Detached() {
		t.Error("original not detached after Replace")
	}
	if got, _ := doc.Lookup("main"); got != repl {
		t.Error("Lookup(main) does not return the replacement")
	}
	if _, err := doc.Replace(orig); !errors.Is(err, ErrDetached) {
		t.Errorf("Replace(detached) = %v, want ErrDetached", err)
	}
	if doc.Replacements() != 1 {
		t.Errorf("Replacements() = %d, want 1", doc.Replacements())
	}
}

func TestBlitterRefusesGPUCanvas(t *testing.T) {
	doc := NewDocument()
	c := doc.AddCanvas("gl", 8, 8)
	if err := c.Bind(ContextWebGL); err != nil {
		t.Fatal(err)
	}
	if _, err := doc.Blitter(c); !errors.Is(err, ErrContextBound) {
		t.Errorf("Blitter(webgl canvas) = %v, want ErrContextBound", err)
	}

	other := NewDocument().AddCanvas("x", 1, 1)
	if _, err := doc.Blitter(other); !errors.Is(err, ErrForeignTarget) {
		t.Errorf("Blitter(foreign) = %v, want ErrForeignTarget", err)
	}
}

func TestPutPixelsDirtyRect(t *testing.T) {
	doc := NewDocument()
	c := doc.AddCanvas("c", 4, 4)
	b, err := doc.Blitter(c)
	if err != nil {
		t.Fatal(err)
	}

	pix := make([]byte, 4*4*4)
	for i := range pix {
		pix[i] = 0xff
	}
	if err := b.PutPixels(pix, 4, 4, image.Rect(1, 1, 3, 3)); err != nil {
		t.Fatalf("PutPixels: %v", err)
	}

	img := c.Image()
	tests := []struct {
		x, y int
		want color.RGBA
	}{
		{0, 0, color.RGBA{}},
		{1, 1, color.RGBA{255, 255, 255, 255}},
		{2, 2, color.RGBA{255, 255, 255, 255}},
		{3, 3, color.RGBA{}},
	}
	for _, tt := range tests {
		if got := img.RGBAAt(tt.x, tt.y); got != tt.want {
			t.Errorf("pixel (%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
	if n, last := c.Blits(); n != 1 || last != image.Rect(1, 1, 3, 3) {
		t.Errorf("Blits() = %d, %v", n, last)
	}

	if err := b.PutPixels(pix, 4, 4, image.Rect(10, 10, 20, 20)); err != nil {
		t.Fatalf("PutPixels outside: %v", err)
	}
	if n, _ := c.Blits(); n != 1 {
		t.Errorf("empty dirty rect counted as blit")
	}
}

func TestGLContexts(t *testing.T) {
	doc := NewDocument()
	c := doc.AddCanvas("gl", 16, 16)
	gl := NewGL(doc)

	h := gl.CreateContext(c, host.GLAttributes{MajorVersion: 2})
	if h == host.NoContext {
		t.Fatal("CreateContext returned NoContext")
	}
	if !gl.MakeCurrent(h) || gl.Current() != h {
		t.Fatalf("MakeCurrent(%d) failed", h)
	}
	if !gl.EnableExtension(host.DebugRendererInfo) || !gl.ExtensionEnabled(h, host.DebugRendererInfo) {
		t.Error("debug renderer info not enabled")
	}
	if gl.MakeCurrent(h + 10) {
		t.Error("MakeCurrent(unknown) succeeded")
	}

	gl.DeleteContext(h)
	if gl.Current() != host.NoContext {
		t.Errorf("Current() = %d after deleting current, want NoContext", gl.Current())
	}
	gl.DeleteContext(h)
	if gl.DoubleDeletes() != 1 {
		t.Errorf("DoubleDeletes() = %d, want 1", gl.DoubleDeletes())
	}

	gl.WebGL2 = false
	if got := gl.CreateContext(doc.AddCanvas("v2", 1, 1), host.GLAttributes{MajorVersion: 2}); got != host.NoContext {
		t.Error("level-2 context created without WebGL2")
	}
}

type device struct{}

func TestPresentationSurface(t *testing.T) {
	doc := NewDocument()
	c := doc.AddCanvas("gpu", 64, 32)
	gpu := NewGPU(doc)

	ps, ok := gpu.PresentationSurface(c)
	if !ok {
		t.Fatal("PresentationSurface failed")
	}
	if _, err := ps.CurrentTexture(); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("CurrentTexture before Configure = %v, want ErrNotConfigured", err)
	}
	if err := ps.Configure(host.PresentationConfig{Device: device{}, Format: gpu.PreferredCanvasFormat()}); err != nil {
		t.Fatalf("Configure: %v", err)
	}

	tex, err := ps.CurrentTexture()
	if err != nil {
		t.Fatalf("CurrentTexture: %v", err)
	}
	if tex.Width() != 64 || tex.Height() != 32 {
		t.Errorf("texture = %dx%d, want 64x32", tex.Width(), tex.Height())
	}
	again, _ := ps.CurrentTexture()
	if again != tex {
		t.Error("CurrentTexture changed within a frame")
	}

	p := ps.(*PresentationSurface)
	if err := p.Present(tex); err != nil {
		t.Fatalf("Present: %v", err)
	}
	if err := p.Present(tex); !errors.Is(err, ErrStaleTexture) {
		t.Errorf("second Present = %v, want ErrStaleTexture", err)
	}
	if p.Acquired() != 1 || p.Presented() != 1 {
		t.Errorf("acquired/presented = %d/%d, want 1/1", p.Acquired(), p.Presented())
	}

	if _, err := doc.Blitter(c); err == nil {
		t.Error("Blitter on WebGPU canvas succeeded")
	}
}

func TestFrameQueue(t *testing.T) {
	var q FrameQueue
	var order []int

	q.RequestAnimationFrame(func() {
		order = append(order, 1)
		q.RequestAnimationFrame(func() { order = append(order, 3) })
	})
	q.RequestAnimationFrame(func() { order = append(order, 2) })

	if n := q.Tick(); n != 2 {
		t.Errorf("first Tick ran %d, want 2", n)
	}
	if q.Pending() != 1 {
		t.Errorf("Pending() = %d, want 1", q.Pending())
	}
	q.Tick()
	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Errorf("order = %v, want [1 2 3]", order)
	}
}
