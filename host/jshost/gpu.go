//go:build js && wasm

package jshost

import (
	"context"
	"errors"
	"fmt"
	"syscall/js"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/ggweb/host"
)

// Errors returned by GPU.
var (
	ErrNoWebGPU  = errors.New("jshost: WebGPU not available")
	ErrNoAdapter = errors.New("jshost: no WebGPU adapter")
)

// GPU is the browser's WebGPU entry point.
type GPU struct {
	gpu js.Value
}

// NewGPU returns navigator.gpu, or ErrNoWebGPU.
func NewGPU() (*GPU, error) {
	g := js.Global().Get("navigator").Get("gpu")
	if !g.Truthy() {
		return nil, ErrNoWebGPU
	}
	return &GPU{gpu: g}, nil
}

// PreferredCanvasFormat implements host.GPU.
func (g *GPU) PreferredCanvasFormat() gputypes.TextureFormat {
	f, ok := host.ParseFormat(g.gpu.Call("getPreferredCanvasFormat").String())
	if !ok {
		return gputypes.TextureFormatBGRA8Unorm
	}
	return f
}

// PresentationSurface implements host.GPU.
func (g *GPU) PresentationSurface(t host.DisplayTarget) (host.PresentationSurface, bool) {
	c, ok := t.(*Canvas)
	if !ok {
		return nil, false
	}
	ctx := c.v.Call("getContext", "webgpu")
	if !ctx.Truthy() {
		return nil, false
	}
	return &CanvasContext{ctx: ctx, canvas: c}, true
}

// RequestDevice requests the default adapter and a device from it.
// It blocks, so it must not run on a JS callback.
func (g *GPU) RequestDevice(ctx context.Context) (js.Value, error) {
	adapter, err := await(ctx, g.gpu.Call("requestAdapter"))
	if err != nil {
		return js.Undefined(), fmt.Errorf("jshost: request adapter: %w", err)
	}
	if !adapter.Truthy() {
		return js.Undefined(), ErrNoAdapter
	}
	dev, err := await(ctx, adapter.Call("requestDevice"))
	if err != nil {
		return js.Undefined(), fmt.Errorf("jshost: request device: %w", err)
	}
	return dev, nil
}

// CanvasContext is a GPUCanvasContext.
type CanvasContext struct {
	ctx    js.Value
	canvas *Canvas
}

// Configure implements host.PresentationSurface.
func (c *CanvasContext) Configure(cfg host.PresentationConfig) error {
	dev, ok := cfg.Device.(js.Value)
	if !ok || !dev.Truthy() {
		return fmt.Errorf("jshost: device is %T, want a GPUDevice", cfg.Device)
	}
	name := host.FormatName(cfg.Format)
	if name == "" {
		return fmt.Errorf("jshost: no canvas format for %v", cfg.Format)
	}
	conf := map[string]any{
		"device": dev,
		"format": name,
	}
	if a := alphaMode(cfg.AlphaMode); a != "" {
		conf["alphaMode"] = a
	}
	c.ctx.Call("configure", conf)
	return nil
}

func alphaMode(m gputypes.CompositeAlphaMode) string {
	switch m {
	case gputypes.CompositeAlphaModeOpaque:
		return "opaque"
	case gputypes.CompositeAlphaModePremultiplied:
		return "premultiplied"
	}
	return ""
}

// CurrentTexture implements host.PresentationSurface.
func (c *CanvasContext) CurrentTexture() (gpucontext.Texture, error) {
	t := c.ctx.Call("getCurrentTexture")
	if !t.Truthy() {
		return nil, fmt.Errorf("%w: getCurrentTexture", ErrNullObject)
	}
	return &Texture{v: t}, nil
}

// Size implements host.PresentationSurface.
func (c *CanvasContext) Size() (width, height int) {
	return c.canvas.Size()
}

// Texture is a GPUTexture.
type Texture struct {
	v js.Value
}

// Value returns the GPUTexture.
func (t *Texture) Value() js.Value { return t.v }

// Width implements gpucontext.Texture.
func (t *Texture) Width() int { return t.v.Get("width").Int() }

// Height implements gpucontext.Texture.
func (t *Texture) Height() int { return t.v.Get("height").Int() }

var (
	_ host.GPU                 = (*GPU)(nil)
	_ host.PresentationSurface = (*CanvasContext)(nil)
	_ gpucontext.Texture       = (*Texture)(nil)
)
