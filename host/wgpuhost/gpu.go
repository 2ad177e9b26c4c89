// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package wgpuhost

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu"

	"github.com/gogpu/ggweb"
	"github.com/gogpu/ggweb/host"
)

// Errors returned by GPU and Surface.
var (
	ErrNilProvider       = errors.New("wgpuhost: nil DeviceProvider")
	ErrDeviceType        = errors.New("wgpuhost: device is not a *wgpu.Device")
	ErrUnsupportedFormat = errors.New("wgpuhost: format not supported by surface")
	ErrNotConfigured     = errors.New("wgpuhost: surface not configured")
	ErrStaleTexture      = errors.New("wgpuhost: texture is not the current swap texture")
)

// presentable is the part of *wgpu.Surface a Surface drives.
type presentable interface {
	Configure(device *wgpu.Device, config *wgpu.SurfaceConfiguration) error
	Unconfigure()
	GetCurrentTexture() (*wgpu.SurfaceTexture, bool, error)
	Present(texture *wgpu.SurfaceTexture) error
}

// GPU is a host.GPU over wgpu window surfaces.
type GPU struct {
	// PresentMode is used when configuring surfaces. Default: Fifo.
	PresentMode wgpu.PresentMode

	provider gpucontext.DeviceProvider
	adapter  *wgpu.Adapter

	mu       sync.Mutex
	surfaces map[string]*Surface
}

// New returns a GPU bridge using the device of provider.
func New(provider gpucontext.DeviceProvider) (*GPU, error) {
	if provider == nil {
		return nil, ErrNilProvider
	}
	g := &GPU{
		PresentMode: wgpu.PresentModeFifo,
		provider:    provider,
		surfaces:    make(map[string]*Surface),
	}
	// Capability checks need the concrete adapter; other providers skip them.
	if a, ok := provider.Adapter().(*wgpu.Adapter); ok {
		g.adapter = a
	}
	info := provider.AdapterInfo()
	ggweb.Logger().Info("wgpuhost: using adapter", "name", info.Name, "type", info.Type.String())
	return g, nil
}

// Device returns the provider's device, for ggweb.SurfaceOptions.Device.
func (g *GPU) Device() gpucontext.Device {
	return g.provider.Device()
}

// Attach binds display target id to s. Attaching an id again replaces the
// previous surface.
func (g *GPU) Attach(id string, s *wgpu.Surface) *Surface {
	return g.attach(id, s)
}

func (g *GPU) attach(id string, p presentable) *Surface {
	g.mu.Lock()
	defer g.mu.Unlock()

	s := &Surface{gpu: g, id: id, surface: p}
	g.surfaces[id] = s
	return s
}

// Detach unconfigures and forgets the surface of id.
func (g *GPU) Detach(id string) {
	g.mu.Lock()
	s, ok := g.surfaces[id]
	delete(g.surfaces, id)
	g.mu.Unlock()

	if ok && s.device != nil {
		s.surface.Unconfigure()
	}
}

// PreferredCanvasFormat returns the provider's surface format, or
// BGRA8Unorm when the provider has none.
func (g *GPU) PreferredCanvasFormat() gputypes.TextureFormat {
	if f := g.provider.SurfaceFormat(); f != gputypes.TextureFormatUndefined {
		return f
	}
	return gputypes.TextureFormatBGRA8Unorm
}

// PresentationSurface returns the surface attached for t's id, sized to t.
func (g *GPU) PresentationSurface(t host.DisplayTarget) (host.PresentationSurface, bool) {
	g.mu.Lock()
	s, ok := g.surfaces[t.ID()]
	g.mu.Unlock()
	if !ok {
		return nil, false
	}
	s.width, s.height = t.Size()
	return s, true
}

// Surface is the presentation surface of one window.
type Surface struct {
	gpu     *GPU
	id      string
	surface presentable
	width   int
	height  int
	device  *wgpu.Device
	format  gputypes.TextureFormat
	current *Texture
}

// Configure configures the window surface. cfg.Device must be a *wgpu.Device.
func (s *Surface) Configure(cfg host.PresentationConfig) error {
	dev, ok := cfg.Device.(*wgpu.Device)
	if !ok || dev == nil {
		return fmt.Errorf("%w: %T", ErrDeviceType, cfg.Device)
	}
	if err := s.checkFormat(cfg.Format); err != nil {
		return err
	}
	err := s.surface.Configure(dev, &wgpu.SurfaceConfiguration{
		Width:       uint32(s.width),
		Height:      uint32(s.height),
		Format:      cfg.Format,
		Usage:       wgpu.TextureUsageRenderAttachment,
		PresentMode: s.gpu.PresentMode,
		AlphaMode:   cfg.AlphaMode,
	})
	if err != nil {
		return fmt.Errorf("wgpuhost: configure %q: %w", s.id, err)
	}
	s.device = dev
	s.format = cfg.Format
	s.current = nil
	return nil
}

func (s *Surface) checkFormat(f gputypes.TextureFormat) error {
	ws, ok := s.surface.(*wgpu.Surface)
	if !ok || s.gpu.adapter == nil {
		return nil
	}
	caps := s.gpu.adapter.GetSurfaceCapabilities(ws)
	if caps == nil || len(caps.Formats) == 0 {
		return nil
	}
	for _, sf := range caps.Formats {
		if sf == f {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrUnsupportedFormat, f)
}

// CurrentTexture acquires the swap texture for this frame. It returns the
// same texture until it is presented.
func (s *Surface) CurrentTexture() (gpucontext.Texture, error) {
	if s.device == nil {
		return nil, ErrNotConfigured
	}
	if s.current != nil {
		return s.current, nil
	}
	st, suboptimal, err := s.surface.GetCurrentTexture()
	if err != nil {
		return nil, fmt.Errorf("wgpuhost: acquire %q: %w", s.id, err)
	}
	if suboptimal {
		ggweb.Logger().Debug("wgpuhost: suboptimal swap texture", "surface", s.id)
	}
	s.current = &Texture{SurfaceTexture: st, width: s.width, height: s.height}
	return s.current, nil
}

// Present presents tex, which must be the current swap texture.
func (s *Surface) Present(tex gpucontext.Texture) error {
	t, ok := tex.(*Texture)
	if !ok || t != s.current {
		return ErrStaleTexture
	}
	s.current = nil
	if err := s.surface.Present(t.SurfaceTexture); err != nil {
		return fmt.Errorf("wgpuhost: present %q: %w", s.id, err)
	}
	return nil
}

// Size returns the size of the display target at the last lookup.
func (s *Surface) Size() (width, height int) {
	return s.width, s.height
}

// Format returns the configured format.
func (s *Surface) Format() gputypes.TextureFormat {
	return s.format
}

// Texture is an acquired swap texture.
type Texture struct {
	*wgpu.SurfaceTexture
	width, height int
}

// Width implements gpucontext.Texture.
func (t *Texture) Width() int { return t.width }

// Height implements gpucontext.Texture.
func (t *Texture) Height() int { return t.height }

var (
	_ host.GPU                 = (*GPU)(nil)
	_ host.PresentationSurface = (*Surface)(nil)
	_ host.Presenter           = (*Surface)(nil)
	_ gpucontext.Texture       = (*Texture)(nil)
	_ presentable              = (*wgpu.Surface)(nil)
)
