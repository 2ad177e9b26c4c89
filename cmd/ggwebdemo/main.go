// Command ggwebdemo renders a frame through a ggweb software surface on a
// headless document and saves the blitted canvas as PNG.
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"

	"github.com/gogpu/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/ggweb"
	"github.com/gogpu/ggweb/engine/soft"
	"github.com/gogpu/ggweb/heap"
	"github.com/gogpu/ggweb/host/memhost"
	"github.com/gogpu/ggweb/native"
	"github.com/gogpu/ggweb/wasmheap"
)

const canvasID = "demo"

type options struct {
	width, height int
	output        string
	heap          string
	label         string
	preview       bool
	cols          int
}

func main() {
	var o options
	flag.IntVar(&o.width, "width", 320, "canvas width")
	flag.IntVar(&o.height, "height", 200, "canvas height")
	flag.StringVar(&o.output, "output", "ggweb.png", "output file")
	flag.StringVar(&o.heap, "heap", "go", "pixel heap: go or wasm")
	flag.StringVar(&o.label, "label", "ggweb", "text drawn into the frame")
	flag.BoolVar(&o.preview, "preview", false, "print a preview to the terminal")
	flag.IntVar(&o.cols, "cols", 0, "preview width in columns (0: terminal width)")
	flag.Parse()

	if err := run(context.Background(), o); err != nil {
		log.Fatal(err)
	}
}

// run returns instead of exiting so the surface and heap are always released.
func run(ctx context.Context, o options) error {
	h, closeHeap, err := newHeap(ctx, o.heap)
	if err != nil {
		return fmt.Errorf("heap: %w", err)
	}
	defer closeHeap()

	doc := memhost.NewDocument()
	doc.AddCanvas(canvasID, o.width, o.height)

	m, err := ggweb.New(ggweb.Host{Engine: soft.New(h), Heap: h, Displays: doc})
	if err != nil {
		return fmt.Errorf("module: %w", err)
	}

	s, err := m.MakeSurfaceByID(canvasID, ggweb.SurfaceOptions{})
	if err != nil {
		return fmt.Errorf("surface: %w", err)
	}
	defer s.Dispose()

	if err := draw(s, o.label); err != nil {
		return fmt.Errorf("draw: %w", err)
	}
	if err := s.Flush(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}

	c, _ := doc.Canvas(canvasID)
	if err := save(o.output, c.Image()); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	log.Printf("%s surface saved to %s (%dx%d)", s.Backend(), o.output, s.Width(), s.Height())

	if o.preview {
		fmt.Print(render(c.Image(), previewCols(o.cols)))
	}
	return nil
}

func newHeap(ctx context.Context, kind string) (native.Heap, func(), error) {
	switch kind {
	case "go":
		return heap.New(0), func() {}, nil
	case "wasm":
		s, err := wasmheap.NewStandalone(ctx)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { _ = s.Close(ctx) }, nil
	}
	return nil, nil, fmt.Errorf("unknown heap %q", kind)
}

// draw composites a gg scene onto the surface canvas and labels it.
func draw(s *ggweb.Surface, label string) error {
	canvas, ok := s.Canvas().(*soft.Canvas)
	if !ok {
		return fmt.Errorf("unexpected canvas %T", s.Canvas())
	}
	w, h := float64(s.Width()), float64(s.Height())

	dc := gg.NewContext(s.Width(), s.Height())
	defer dc.Close()

	dc.SetRGB(0.12, 0.14, 0.2)
	dc.DrawRectangle(0, 0, w, h)
	if err := dc.Fill(); err != nil {
		return fmt.Errorf("background: %w", err)
	}

	dc.SetRGBA(1, 0.3, 0.3, 0.8)
	dc.DrawCircle(w*0.35, h*0.45, h*0.25)
	if err := dc.Fill(); err != nil {
		return fmt.Errorf("red circle: %w", err)
	}

	dc.SetRGBA(0.3, 0.6, 1, 0.8)
	dc.DrawCircle(w*0.55, h*0.45, h*0.25)
	if err := dc.Fill(); err != nil {
		return fmt.Errorf("blue circle: %w", err)
	}

	dc.SetRGB(1, 0.8, 0)
	dc.SetLineWidth(3)
	dc.DrawRoundedRectangle(w*0.1, h*0.1, w*0.8, h*0.75, 12)
	if err := dc.Stroke(); err != nil {
		return fmt.Errorf("frame: %w", err)
	}

	if err := canvas.DrawImage(dc.Image(), image.Point{}); err != nil {
		return err
	}

	img, err := canvas.Image()
	if err != nil {
		return err
	}
	d := font.Drawer{
		Dst:  img,
		Src:  image.White,
		Face: basicfont.Face7x13,
		Dot:  fixed.P(8, s.Height()-8),
	}
	d.DrawString(label)
	return nil
}

func save(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
