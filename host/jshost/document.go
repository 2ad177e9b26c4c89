//go:build js && wasm

package jshost

import (
	"errors"
	"fmt"
	"image"
	"syscall/js"

	"github.com/gogpu/ggweb/host"
)

// ReplacedClass is added to canvases that replaced a GPU-bound canvas.
const ReplacedClass = "ck-replaced"

// Errors returned by Document.
var (
	ErrForeignTarget = errors.New("jshost: display target is not a DOM canvas")
	ErrNo2DContext   = errors.New("jshost: canvas has no 2d context")
	ErrNotAttached   = errors.New("jshost: canvas has no parent node")
)

// Canvas is an HTMLCanvasElement or OffscreenCanvas.
type Canvas struct {
	v  js.Value
	id string
}

// NewCanvas wraps an existing canvas element.
func NewCanvas(v js.Value) *Canvas {
	return &Canvas{v: v, id: v.Get("id").String()}
}

// Value returns the canvas element.
func (c *Canvas) Value() js.Value { return c.v }

// ID implements host.DisplayTarget.
func (c *Canvas) ID() string { return c.id }

// Size implements host.DisplayTarget. It is the drawing buffer size, not
// the CSS size.
func (c *Canvas) Size() (width, height int) {
	return c.v.Get("width").Int(), c.v.Get("height").Int()
}

// Replaced implements host.DisplayTarget.
func (c *Canvas) Replaced() bool {
	cl := c.v.Get("classList")
	return cl.Truthy() && cl.Call("contains", ReplacedClass).Bool()
}

// Document resolves canvases in the page's DOM.
type Document struct {
	doc js.Value
}

// NewDocument returns the provider for the global document.
func NewDocument() *Document {
	return &Document{doc: js.Global().Get("document")}
}

// Lookup implements host.DisplayProvider.
func (d *Document) Lookup(id string) (host.DisplayTarget, bool) {
	v := d.doc.Call("getElementById", id)
	if !v.Truthy() || !isCanvas(v) {
		return nil, false
	}
	return &Canvas{v: v, id: id}, true
}

func isCanvas(v js.Value) bool {
	for _, name := range []string{"HTMLCanvasElement", "OffscreenCanvas"} {
		if cls := js.Global().Get(name); cls.Truthy() && v.InstanceOf(cls) {
			return true
		}
	}
	return false
}

// Replace implements host.DisplayProvider. The clone takes the canvas'
// place in its parent and is tagged with ReplacedClass.
func (d *Document) Replace(t host.DisplayTarget) (host.DisplayTarget, error) {
	c, ok := t.(*Canvas)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrForeignTarget, t)
	}
	parent := c.v.Get("parentNode")
	if !parent.Truthy() {
		return nil, fmt.Errorf("%w: %q", ErrNotAttached, c.id)
	}
	clone := c.v.Call("cloneNode", true)
	parent.Call("replaceChild", clone, c.v)
	clone.Get("classList").Call("add", ReplacedClass)
	return &Canvas{v: clone, id: c.id}, nil
}

// Blitter implements host.DisplayProvider.
func (d *Document) Blitter(t host.DisplayTarget) (host.Blitter, error) {
	c, ok := t.(*Canvas)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrForeignTarget, t)
	}
	ctx := c.v.Call("getContext", "2d")
	if !ctx.Truthy() {
		return nil, fmt.Errorf("%w: %q", ErrNo2DContext, c.id)
	}
	return &blitter{ctx: ctx}, nil
}

type blitter struct {
	ctx js.Value
	// buf is reused while frames keep the same size.
	buf js.Value
}

func (b *blitter) PutPixels(pix []byte, width, height int, dirty image.Rectangle) error {
	if len(pix) < width*height*4 {
		return fmt.Errorf("jshost: %d bytes for a %dx%d frame", len(pix), width, height)
	}
	if !b.buf.Truthy() || b.buf.Length() != len(pix) {
		b.buf = js.Global().Get("Uint8ClampedArray").New(len(pix))
	}
	js.CopyBytesToJS(b.buf, pix)
	img := js.Global().Get("ImageData").New(b.buf, width, height)

	if dirty == image.Rect(0, 0, width, height) {
		b.ctx.Call("putImageData", img, 0, 0)
		return nil
	}
	b.ctx.Call("putImageData", img, 0, 0, dirty.Min.X, dirty.Min.Y, dirty.Dx(), dirty.Dy())
	return nil
}

var (
	_ host.DisplayProvider = (*Document)(nil)
	_ host.DisplayTarget   = (*Canvas)(nil)
)
