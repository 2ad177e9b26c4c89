package ggweb

import (
	"errors"
	"testing"

	"github.com/gogpu/ggweb/host"
)

func TestResolveGLAttributesMajorVersion(t *testing.T) {
	tests := []struct {
		name   string
		webgl2 bool
		opts   []GLOption
		want   int
	}{
		{"webgl1 host", false, nil, 1},
		{"webgl2 host", true, nil, 2},
		{"explicit 1 on webgl2 host", true, []GLOption{WithMajorVersion(1)}, 1},
		{"explicit 2 on webgl1 host", false, []GLOption{WithMajorVersion(2)}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveGLAttributes(tt.webgl2, tt.opts...)
			if got.MajorVersion != tt.want {
				t.Errorf("MajorVersion = %d, want %d", got.MajorVersion, tt.want)
			}
		})
	}
}

func TestResolveGLAttributesDefaults(t *testing.T) {
	a := ResolveGLAttributes(true)
	want := host.GLAttributes{
		Alpha:                     true,
		Depth:                     true,
		Stencil:                   true,
		PremultipliedAlpha:        true,
		EnableExtensionsByDefault: true,
		MajorVersion:              2,
	}
	if a != want {
		t.Errorf("defaults = %+v, want %+v", a, want)
	}

	a = ResolveGLAttributes(true, WithAlpha(false), WithAntialias(true), WithPreserveDrawingBuffer(true))
	if a.Alpha || !a.Antialias || !a.PreserveDrawingBuffer {
		t.Errorf("options not applied: %+v", a)
	}
}

func TestGetWebGLContext(t *testing.T) {
	f := newFixture(t)
	c := f.doc.AddCanvas("gl", 32, 16)

	h, err := f.m.GetWebGLContext(c, WithStencil(false))
	if err != nil {
		t.Fatalf("GetWebGLContext: %v", err)
	}
	if f.gl.Current() != h {
		t.Errorf("current = %d, want %d", f.gl.Current(), h)
	}
	if !f.gl.ExtensionEnabled(h, host.DebugRendererInfo) {
		t.Error("debug renderer info extension not enabled")
	}
	attrs, _ := f.gl.Attributes(h)
	if attrs.MajorVersion != 2 || attrs.Stencil {
		t.Errorf("attributes = %+v", attrs)
	}

	f.gl.WebGL2 = false
	h1, err := f.m.GetWebGLContext(f.doc.AddCanvas("gl1", 4, 4))
	if err != nil {
		t.Fatal(err)
	}
	if attrs, _ := f.gl.Attributes(h1); attrs.MajorVersion != 1 {
		t.Errorf("MajorVersion on WebGL1 host = %d, want 1", attrs.MajorVersion)
	}
}

func TestGetWebGLContextErrors(t *testing.T) {
	f := newFixture(t)

	if _, err := f.m.GetWebGLContext(nil); !errors.Is(err, ErrNilDisplayTarget) {
		t.Errorf("nil target: %v", err)
	}
	c := f.doc.AddCanvas("gl", 4, 4)
	if _, err := f.m.GetWebGLContext(c, WithExplicitSwapControl(true)); !errors.Is(err, ErrExplicitSwapControl) {
		t.Errorf("explicit swap control: %v", err)
	}
	f.gl.Fail = true
	if _, err := f.m.GetWebGLContext(c); !errors.Is(err, ErrAcquisitionFailed) {
		t.Errorf("host failure: %v", err)
	}

	cpu := newCPUFixture(t)
	if _, err := cpu.m.GetWebGLContext(cpu.doc.AddCanvas("x", 1, 1)); !errors.Is(err, ErrWebGLUnavailable) {
		t.Errorf("no GL bridge: %v", err)
	}
}

func TestMakeWebGLSurface(t *testing.T) {
	f := newFixture(t)
	c := f.doc.AddCanvas("gl", 300, 150)

	s, err := f.m.MakeWebGLSurface(c)
	if err != nil {
		t.Fatalf("MakeWebGLSurface: %v", err)
	}
	if !s.IsWebGL() || s.IsSoftware() {
		t.Fatalf("backend = %v, want webgl", s.Backend())
	}
	if s.Width() != 300 || s.Height() != 150 {
		t.Errorf("size = %dx%d, want 300x150", s.Width(), s.Height())
	}
	if s.Target() != c || s.Context().Handle() != s.Handle() {
		t.Error("surface not bound to its target and context")
	}
	if s.PixelLen() != 0 {
		t.Errorf("PixelLen() = %d for WebGL surface", s.PixelLen())
	}
	if err := s.Flush(); err != nil {
		t.Errorf("Flush: %v", err)
	}

	dc := s.Context()
	s.Dispose()
	if !dc.IsDeleted() || f.gl.Live() != 0 {
		t.Errorf("context not deleted: direct deleted=%v, live GL=%d", dc.IsDeleted(), f.gl.Live())
	}
	if n := dc.Native().(*directContext); n.deletedUnder != s.Handle() {
		t.Errorf("direct context deleted under %d, want %d", n.deletedUnder, s.Handle())
	}
	s.Dispose()
	if f.gl.DoubleDeletes() != 0 {
		t.Errorf("double dispose deleted the GL context again")
	}
	if err := s.Flush(); !errors.Is(err, ErrDisposed) {
		t.Errorf("Flush after Dispose = %v, want ErrDisposed", err)
	}
}

func TestMakeWebGLSurfaceFallback(t *testing.T) {
	tests := []struct {
		name  string
		setup func(f *fixture)
	}{
		{"context creation", func(f *fixture) { f.gl.Fail = true }},
		{"direct context", func(f *fixture) { f.engine.failDirect = true }},
		{"on-screen surface", func(f *fixture) { f.engine.failGLSurface = true }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setup(f)
			c := f.doc.AddCanvas("gl", 100, 100)

			s, err := f.m.MakeWebGLSurface(c)
			if err != nil {
				t.Fatalf("MakeWebGLSurface: %v", err)
			}
			defer s.Dispose()

			if !s.IsSoftware() {
				t.Errorf("backend = %v, want software", s.Backend())
			}
			if s.Target() == c || !s.Target().Replaced() {
				t.Error("software surface not bound to a replacement target")
			}
			if !c.Detached() {
				t.Error("original target still attached")
			}
			if f.gl.Live() != 0 {
				t.Errorf("%d GL contexts leaked", f.gl.Live())
			}
		})
	}
}

func TestMakeWebGLSurfaceExplicitSwapControlIsFatal(t *testing.T) {
	f := newFixture(t)
	if _, err := f.m.MakeWebGLSurfaceByID(f.doc.AddCanvas("gl", 4, 4).ID(), WithExplicitSwapControl(true)); !errors.Is(err, ErrExplicitSwapControl) {
		t.Fatalf("err = %v, want ErrExplicitSwapControl", err)
	}
	if f.doc.Replacements() != 0 {
		t.Errorf("target replaced %d times, want 0", f.doc.Replacements())
	}
}
