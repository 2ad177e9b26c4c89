//go:build js && wasm

package jshost

import (
	"errors"
	"fmt"
	"syscall/js"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/ggweb/native"
)

// ErrNullObject is returned when the module returns null instead of an object.
var ErrNullObject = errors.New("jshost: module returned null")

// Engine is the compiled engine module seen from Go.
type Engine struct {
	mod    js.Value
	values *values
}

// NewEngine wraps the module object mod.
func NewEngine(mod js.Value) *Engine {
	return &Engine{mod: mod, values: &values{store: mod.Get("JsValStore")}}
}

// Module returns the module object.
func (e *Engine) Module() js.Value { return e.mod }

// Heap returns the module's allocator.
func (e *Engine) Heap() *Heap { return &Heap{mod: e.mod} }

// MakeRasterDirect implements native.Engine.
func (e *Engine) MakeRasterDirect(width, height int, pixels native.Ptr, rowBytes int) (native.Surface, error) {
	v, err := call(e.mod.Get("Surface"), "_makeRasterDirect", width, height, uint32(pixels), rowBytes)
	if err != nil {
		return nil, err
	}
	return &Surface{Object{v: v}}, nil
}

// MakeWebGLDirectContext implements native.GLEngine.
func (e *Engine) MakeWebGLDirectContext() (native.DirectContext, error) {
	v, err := call(e.mod, "_MakeWebGLDirectContext")
	if err != nil {
		return nil, err
	}
	return &Object{v: v}, nil
}

// MakeOnScreenGLSurface implements native.GLEngine.
func (e *Engine) MakeOnScreenGLSurface(ctx native.DirectContext, width, height int) (native.Surface, error) {
	dc, ok := ctx.(*Object)
	if !ok {
		return nil, fmt.Errorf("jshost: foreign direct context %T", ctx)
	}
	v, err := call(e.mod, "_MakeOnScreenGLSurface", dc.v, width, height)
	if err != nil {
		return nil, err
	}
	return &Surface{Object{v: v}}, nil
}

// MakeWebGPUDirectContext implements native.WebGPUEngine. device must be a
// GPUDevice js.Value.
func (e *Engine) MakeWebGPUDirectContext(device gpucontext.Device) (native.DirectContext, error) {
	dev, ok := device.(js.Value)
	if !ok || !dev.Truthy() {
		return nil, fmt.Errorf("jshost: device is %T, want a GPUDevice", device)
	}
	// The module imports the device from this property.
	e.mod.Set("preinitializedWebGPUDevice", dev)
	v, err := call(e.mod, "_MakeWebGPUDirectContext")
	if err != nil {
		return nil, err
	}
	return &Object{v: v}, nil
}

// MakeGPUTextureSurface implements native.WebGPUEngine.
func (e *Engine) MakeGPUTextureSurface(ctx native.DirectContext, texture native.Handle, format int, width, height int, cs native.ColorSpace) (native.Surface, error) {
	dc, ok := ctx.(*Object)
	if !ok {
		return nil, fmt.Errorf("jshost: foreign direct context %T", ctx)
	}
	space := js.Null()
	if cs != native.ColorSpaceNone {
		space = js.ValueOf(string(cs))
	}
	v, err := call(e.mod, "_MakeGPUTextureSurface", dc.v, uint32(texture), format, width, height, space)
	if err != nil {
		return nil, err
	}
	return &Surface{Object{v: v}}, nil
}

// Values implements native.WebGPUEngine.
func (e *Engine) Values() native.ValueStore { return e.values }

// values is the module's JsValStore.
type values struct {
	store js.Value
}

func (s *values) Add(v any) native.Handle {
	switch t := v.(type) {
	case *Texture:
		v = t.v
	case js.Value:
	default:
		panic(fmt.Sprintf("jshost: cannot hand %T to the module", v))
	}
	return native.Handle(s.store.Call("add", v).Int())
}

// Object is an embind object with a manual lifetime.
type Object struct {
	v js.Value
}

// Value returns the underlying JS object.
func (o *Object) Value() js.Value { return o.v }

// Delete frees the native object.
func (o *Object) Delete() { o.v.Call("delete") }

// IsDeleted reports whether Delete has run.
func (o *Object) IsDeleted() bool { return o.v.Call("isDeleted").Bool() }

// Surface is a native surface owned by the module.
type Surface struct {
	Object
}

// call invokes obj[fn]. Builds without the capability do not export fn.
func call(obj js.Value, fn string, args ...any) (js.Value, error) {
	if obj.Get(fn).Type() != js.TypeFunction {
		return js.Undefined(), fmt.Errorf("%w: %s", native.ErrUnsupported, fn)
	}
	v := obj.Call(fn, args...)
	if !v.Truthy() {
		return js.Undefined(), fmt.Errorf("%w: %s", ErrNullObject, fn)
	}
	return v, nil
}

// Width implements native.Surface.
func (s *Surface) Width() int { return s.v.Call("width").Int() }

// Height implements native.Surface.
func (s *Surface) Height() int { return s.v.Call("height").Int() }

// Canvas returns the surface's native canvas object.
func (s *Surface) Canvas() native.Canvas { return s.v.Call("getCanvas") }

// Flush implements native.Surface.
func (s *Surface) Flush() { s.v.Call("_flush") }

var (
	_ native.GLEngine      = (*Engine)(nil)
	_ native.WebGPUEngine  = (*Engine)(nil)
	_ native.DirectContext = (*Object)(nil)
	_ native.Surface       = (*Surface)(nil)
)
