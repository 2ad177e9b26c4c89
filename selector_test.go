package ggweb

import (
	"errors"
	"reflect"
	"testing"

	"github.com/gogpu/ggweb/engine/soft"
	"github.com/gogpu/ggweb/heap"
	"github.com/gogpu/ggweb/host/memhost"
)

func TestMakeSurfaceSoftwareOnlyHost(t *testing.T) {
	f := newCPUFixture(t)
	c := f.doc.AddCanvas("canvas", 100, 100)

	s, err := f.m.MakeSurfaceByID("canvas", SurfaceOptions{Device: &device{}})
	if err != nil {
		t.Fatalf("MakeSurfaceByID: %v", err)
	}
	defer s.Dispose()

	if s.Backend() != BackendSoftware || s.IsWebGL() || s.IsWebGPU() {
		t.Errorf("backend = %v, want software", s.Backend())
	}
	if s.PixelLen() != 40000 {
		t.Errorf("PixelLen() = %d, want 40000", s.PixelLen())
	}
	if s.Target() != c || s.Target().Replaced() {
		t.Error("untouched target was replaced")
	}
}

func TestMakeSurfacePreference(t *testing.T) {
	tests := []struct {
		name string
		opts SurfaceOptions
		want Backend
	}{
		{"device given", SurfaceOptions{Device: &device{}}, BackendWebGPU},
		{"no device", SurfaceOptions{}, BackendWebGL},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			c := f.doc.AddCanvas("c", 20, 20)

			s, err := f.m.MakeSurface(c, tt.opts)
			if err != nil {
				t.Fatalf("MakeSurface: %v", err)
			}
			defer s.Dispose()
			if s.Backend() != tt.want {
				t.Errorf("backend = %v, want %v", s.Backend(), tt.want)
			}
			if s.Target() != c {
				t.Error("target replaced on success")
			}
		})
	}
}

func TestMakeSurfaceFallbackOrdering(t *testing.T) {
	f := newFixture(t)
	f.gpu.Fail = true
	f.gl.Fail = true
	c := f.doc.AddCanvas("c", 100, 100)

	s, err := f.m.MakeSurface(c, SurfaceOptions{Device: &device{}})
	if err != nil {
		t.Fatalf("MakeSurface: %v", err)
	}
	defer s.Dispose()

	if !s.IsSoftware() {
		t.Fatalf("backend = %v, want software", s.Backend())
	}
	if s.Target() == c || !s.Target().Replaced() {
		t.Error("software surface bound to the original target")
	}
	// WebGPU never obtained a presentation surface; only WebGL bound the target.
	if f.doc.Replacements() != 1 {
		t.Errorf("Replacements() = %d, want 1", f.doc.Replacements())
	}
	if got, _ := f.doc.Lookup("c"); got != s.Target() {
		t.Error("document does not hold the surface's target")
	}
}

func TestMakeSurfaceFallbackAfterPartialGPUSetup(t *testing.T) {
	f := newFixture(t)
	f.engine.failGPUSurface = true
	f.engine.failGLSurface = true
	c := f.doc.AddCanvas("c", 8, 8)

	s, err := f.m.MakeSurface(c, SurfaceOptions{Device: &device{}})
	if err != nil {
		t.Fatalf("MakeSurface: %v", err)
	}
	defer s.Dispose()
	if !s.IsSoftware() || !s.Target().Replaced() {
		t.Errorf("got %v on replaced=%v, want software on a replacement", s.Backend(), s.Target().Replaced())
	}
	if f.gl.Live() != 0 {
		t.Errorf("%d GL contexts leaked", f.gl.Live())
	}
}

func TestMakeSurfaceWebGPUReplacement(t *testing.T) {
	tests := []struct {
		name         string
		failDirect   bool
		failSurface  bool
		wantReplaced bool
	}{
		{"device context fails", true, false, false},
		{"texture surface fails", false, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.engine.failGPUDirect = tt.failDirect
			f.engine.failGPUSurface = tt.failSurface
			c := f.doc.AddCanvas("c", 8, 8)

			s, err := f.m.MakeSurface(c, SurfaceOptions{Device: &device{}})
			if err != nil {
				t.Fatalf("MakeSurface: %v", err)
			}
			defer s.Dispose()
			if !s.IsWebGL() {
				t.Errorf("backend = %v, want webgl", s.Backend())
			}
			if got := s.Target() != c; got != tt.wantReplaced {
				t.Errorf("target replaced = %v, want %v", got, tt.wantReplaced)
			}
			if got := s.Target().Replaced(); got != tt.wantReplaced {
				t.Errorf("Replaced() = %v, want %v", got, tt.wantReplaced)
			}
		})
	}
}

func TestMakeSurfaceUnavailableBackendKeepsTarget(t *testing.T) {
	doc := memhost.NewDocument()
	h := heap.New(0)
	gl := memhost.NewGL(doc)
	// GL bridge present, raster-only engine: WebGL is registered but
	// unavailable, so it never touches the target.
	m, err := New(Host{Engine: soft.New(h), Heap: h, Displays: doc, GL: gl})
	if err != nil {
		t.Fatal(err)
	}
	c := doc.AddCanvas("c", 4, 4)

	s, err := m.MakeSurface(c, SurfaceOptions{})
	if err != nil {
		t.Fatal(err)
	}
	defer s.Dispose()
	if s.Target() != c || doc.Replacements() != 0 {
		t.Error("target replaced although no GPU backend ran")
	}
}

func TestMakeSurfaceFatalErrors(t *testing.T) {
	f := newFixture(t)

	var notFound *TargetNotFoundError
	if _, err := f.m.MakeSurfaceByID("nope", SurfaceOptions{}); !errors.As(err, &notFound) {
		t.Errorf("unknown id = %v, want TargetNotFoundError", err)
	}
	if _, err := f.m.MakeSurface(nil, SurfaceOptions{}); !errors.Is(err, ErrNilDisplayTarget) {
		t.Errorf("nil target = %v, want ErrNilDisplayTarget", err)
	}

	c := f.doc.AddCanvas("c", 4, 4)
	_, err := f.m.MakeSurface(c, SurfaceOptions{GL: []GLOption{WithExplicitSwapControl(true)}})
	if !errors.Is(err, ErrExplicitSwapControl) {
		t.Errorf("explicit swap control = %v, want ErrExplicitSwapControl", err)
	}
	if f.doc.Replacements() != 0 {
		t.Error("fatal error triggered a replacement")
	}
}

func TestMakeSurfaceAllBackendsFail(t *testing.T) {
	f := newFixture(t)
	f.gl.Fail = true
	f.engine.failRaster = true

	_, err := f.m.MakeSurface(f.doc.AddCanvas("c", 4, 4), SurfaceOptions{})
	if !errors.Is(err, ErrNoBackendAvailable) {
		t.Fatalf("err = %v, want ErrNoBackendAvailable", err)
	}
	if !errors.Is(err, errEngine) {
		t.Errorf("err = %v, want it to carry the last backend's error", err)
	}
}

func TestMakeSurfaceWith(t *testing.T) {
	f := newFixture(t)
	c := f.doc.AddCanvas("c", 4, 4)

	var notFound *BackendNotFoundError
	if _, err := f.m.MakeSurfaceWith("vulkan", c, SurfaceOptions{}); !errors.As(err, &notFound) {
		t.Errorf("unknown backend = %v, want BackendNotFoundError", err)
	}
	var unavailable *BackendUnavailableError
	if _, err := f.m.MakeSurfaceWith("webgpu", c, SurfaceOptions{}); !errors.As(err, &unavailable) {
		t.Errorf("webgpu without device = %v, want BackendUnavailableError", err)
	}

	s, err := f.m.MakeSurfaceWith("software", c, SurfaceOptions{})
	if err != nil {
		t.Fatal(err)
	}
	defer s.Dispose()
	if !s.IsSoftware() {
		t.Errorf("backend = %v, want software", s.Backend())
	}
}

func TestBackends(t *testing.T) {
	f := newFixture(t)
	want := []string{"webgpu", "webgl", "software"}
	if got := f.m.Backends(); !reflect.DeepEqual(got, want) {
		t.Errorf("Backends() = %v, want %v", got, want)
	}

	cpu := newCPUFixture(t)
	if got := cpu.m.Registry().AvailableFor(SurfaceOptions{Device: &device{}}); !reflect.DeepEqual(got, []string{"software"}) {
		t.Errorf("available on CPU host = %v, want [software]", got)
	}
}
