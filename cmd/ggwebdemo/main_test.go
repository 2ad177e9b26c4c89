package main

import (
	"context"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/gogpu/ggweb"
	"github.com/gogpu/ggweb/engine/soft"
	"github.com/gogpu/ggweb/host/memhost"
)

func TestDrawFlushSave(t *testing.T) {
	for _, kind := range []string{"go", "wasm"} {
		t.Run(kind, func(t *testing.T) {
			ctx := context.Background()
			h, closeHeap, err := newHeap(ctx, kind)
			if err != nil {
				t.Fatalf("newHeap: %v", err)
			}
			defer closeHeap()

			doc := memhost.NewDocument()
			doc.AddCanvas(canvasID, 64, 32)
			m, err := ggweb.New(ggweb.Host{Engine: soft.New(h), Heap: h, Displays: doc})
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			s, err := m.MakeSurfaceByID(canvasID, ggweb.SurfaceOptions{})
			if err != nil {
				t.Fatalf("MakeSurfaceByID: %v", err)
			}
			defer s.Dispose()

			if err := draw(s, "x"); err != nil {
				t.Fatalf("draw: %v", err)
			}
			if err := s.Flush(); err != nil {
				t.Fatalf("Flush: %v", err)
			}

			c, _ := doc.Canvas(canvasID)
			if n, _ := c.Blits(); n != 1 {
				t.Errorf("blits = %d, want 1", n)
			}
			// The background fill covers the whole frame.
			if a := c.Image().RGBAAt(0, 0).A; a != 0xff {
				t.Errorf("alpha at origin = %d, want 255", a)
			}

			path := filepath.Join(t.TempDir(), "out.png")
			if err := save(path, c.Image()); err != nil {
				t.Fatalf("save: %v", err)
			}
			f, err := os.Open(path)
			if err != nil {
				t.Fatal(err)
			}
			defer f.Close()
			img, err := png.Decode(f)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if b := img.Bounds(); b.Dx() != 64 || b.Dy() != 32 {
				t.Errorf("png size = %v, want 64x32", b.Size())
			}
		})
	}
}

func TestNewHeapUnknown(t *testing.T) {
	if _, _, err := newHeap(context.Background(), "mmap"); err == nil {
		t.Error("newHeap(mmap) err = nil, want error")
	}
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	o := options{width: 16, height: 16, output: filepath.Join(dir, "ok.png"), heap: "wasm", label: "x"}
	if err := run(context.Background(), o); err != nil {
		t.Fatalf("run: %v", err)
	}
	if _, err := os.Stat(o.output); err != nil {
		t.Errorf("output not written: %v", err)
	}
}

func TestRunReturnsErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		o    options
	}{
		{"unknown heap", options{width: 4, height: 4, output: filepath.Join(dir, "a.png"), heap: "mmap"}},
		{"empty canvas", options{width: 0, height: 4, output: filepath.Join(dir, "b.png"), heap: "go"}},
		{"unwritable output", options{width: 4, height: 4, output: filepath.Join(dir, "missing", "c.png"), heap: "go"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := run(context.Background(), tt.o); err == nil {
				t.Error("run err = nil, want error")
			}
		})
	}
}
