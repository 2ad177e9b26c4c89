package memhost

import (
	"errors"
	"fmt"
	"image"

	"golang.org/x/image/draw"

	"github.com/gogpu/ggweb/host"
)

// Errors returned by Document.
var (
	ErrForeignTarget = errors.New("memhost: display target does not belong to this document")
	ErrContextBound  = errors.New("memhost: canvas is bound to another context type")
	ErrDetached      = errors.New("memhost: canvas was replaced and is no longer attached")
)

// Context types a canvas can be bound to. The first one requested wins, as
// with getContext on a browser canvas.
const (
	Context2D     = "2d"
	ContextWebGL  = "webgl"
	ContextWebGPU = "webgpu"
)

// Canvas is an in-memory display target.
type Canvas struct {
	doc      *Document
	id       string
	img      *image.RGBA
	context  string
	replaced bool
	detached bool
	blits    int
	lastBlit image.Rectangle
}

// ID returns the canvas id.
func (c *Canvas) ID() string { return c.id }

// Size returns the drawing buffer size.
func (c *Canvas) Size() (width, height int) {
	b := c.img.Bounds()
	return b.Dx(), b.Dy()
}

// Replaced reports whether the canvas was created by Document.Replace.
func (c *Canvas) Replaced() bool { return c.replaced }

// Detached reports whether the canvas has been replaced in its document.
func (c *Canvas) Detached() bool { return c.detached }

// ContextType returns the context type the canvas is bound to, or "".
func (c *Canvas) ContextType() string { return c.context }

// Image returns the canvas contents. The image is live, not a copy.
func (c *Canvas) Image() *image.RGBA { return c.img }

// Blits returns the number of pixel uploads and the last dirty rectangle.
func (c *Canvas) Blits() (n int, last image.Rectangle) { return c.blits, c.lastBlit }

// Bind binds the canvas to a context type. It fails if the canvas is already
// bound to a different type.
func (c *Canvas) Bind(kind string) error {
	if c.detached {
		return ErrDetached
	}
	if c.context != "" && c.context != kind {
		return fmt.Errorf("%w: have %s, want %s", ErrContextBound, c.context, kind)
	}
	c.context = kind
	return nil
}

// PutPixels implements host.Blitter.
func (c *Canvas) PutPixels(pix []byte, width, height int, dirty image.Rectangle) error {
	if c.detached {
		return ErrDetached
	}
	if len(pix) < width*height*4 {
		return fmt.Errorf("memhost: short pixel buffer: %d bytes for %dx%d", len(pix), width, height)
	}
	src := &image.RGBA{Pix: pix, Stride: width * 4, Rect: image.Rect(0, 0, width, height)}
	dirty = dirty.Intersect(src.Rect).Intersect(c.img.Rect)
	if dirty.Empty() {
		return nil
	}
	draw.Copy(c.img, dirty.Min, src, dirty, draw.Src, nil)
	c.blits++
	c.lastBlit = dirty
	return nil
}

// Document is a set of canvases addressed by id.
type Document struct {
	canvases map[string]*Canvas
	order    []string
	replaced int
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{canvases: make(map[string]*Canvas)}
}

// AddCanvas creates a canvas with a width x height drawing buffer. An
// existing canvas with the same id is detached.
func (d *Document) AddCanvas(id string, width, height int) *Canvas {
	c := &Canvas{doc: d, id: id, img: image.NewRGBA(image.Rect(0, 0, width, height))}
	d.attach(c)
	return c
}

func (d *Document) attach(c *Canvas) {
	if old, ok := d.canvases[c.id]; ok {
		old.detached = true
	} else {
		d.order = append(d.order, c.id)
	}
	d.canvases[c.id] = c
}

// Canvas returns the attached canvas with the given id.
func (d *Document) Canvas(id string) (*Canvas, bool) {
	c, ok := d.canvases[id]
	return c, ok
}

// IDs returns canvas ids in creation order.
func (d *Document) IDs() []string {
	return append([]string(nil), d.order...)
}

// Replacements returns how many canvases Replace has swapped out.
func (d *Document) Replacements() int { return d.replaced }

// Lookup implements host.DisplayProvider.
func (d *Document) Lookup(id string) (host.DisplayTarget, bool) {
	c, ok := d.canvases[id]
	if !ok {
		return nil, false
	}
	return c, true
}

// Replace swaps t for a blank, unbound clone of the same id and size.
func (d *Document) Replace(t host.DisplayTarget) (host.DisplayTarget, error) {
	c, err := d.own(t)
	if err != nil {
		return nil, err
	}
	if c.detached {
		return nil, ErrDetached
	}
	clone := &Canvas{
		doc:      d,
		id:       c.id,
		img:      image.NewRGBA(c.img.Rect),
		replaced: true,
	}
	d.attach(clone)
	d.replaced++
	return clone, nil
}

// Blitter binds t to a 2D context and returns it as a Blitter.
func (d *Document) Blitter(t host.DisplayTarget) (host.Blitter, error) {
	c, err := d.own(t)
	if err != nil {
		return nil, err
	}
	if err := c.Bind(Context2D); err != nil {
		return nil, err
	}
	return c, nil
}

func (d *Document) own(t host.DisplayTarget) (*Canvas, error) {
	c, ok := t.(*Canvas)
	if !ok || c.doc != d {
		return nil, ErrForeignTarget
	}
	return c, nil
}

var (
	_ host.DisplayProvider = (*Document)(nil)
	_ host.DisplayTarget   = (*Canvas)(nil)
	_ host.Blitter         = (*Canvas)(nil)
)
