package memhost

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/ggweb/host"
)

// Errors returned by presentation surfaces.
var (
	ErrNotConfigured = errors.New("memhost: presentation surface not configured")
	ErrNilDevice     = errors.New("memhost: configure without device")
	ErrStaleTexture  = errors.New("memhost: presented texture is not the current one")
)

// Texture is a headless swap texture.
type Texture struct {
	width, height int
	Seq           int
}

// Width implements gpucontext.Texture.
func (t *Texture) Width() int { return t.width }

// Height implements gpucontext.Texture.
func (t *Texture) Height() int { return t.height }

// GPU is a headless WebGPU bridge.
type GPU struct {
	// Preferred is returned by PreferredCanvasFormat.
	Preferred gputypes.TextureFormat

	// Fail makes PresentationSurface report no WebGPU context.
	Fail bool

	doc      *Document
	surfaces map[*Canvas]*PresentationSurface
}

// NewGPU returns a GPU bridge over doc's canvases. The preferred canvas
// format is BGRA8Unorm.
func NewGPU(doc *Document) *GPU {
	return &GPU{
		Preferred: gputypes.TextureFormatBGRA8Unorm,
		doc:       doc,
		surfaces:  make(map[*Canvas]*PresentationSurface),
	}
}

// PreferredCanvasFormat implements host.GPU.
func (g *GPU) PreferredCanvasFormat() gputypes.TextureFormat { return g.Preferred }

// PresentationSurface binds t to a WebGPU context. Asking twice for the same
// canvas returns the same surface.
func (g *GPU) PresentationSurface(t host.DisplayTarget) (host.PresentationSurface, bool) {
	if g.Fail {
		return nil, false
	}
	c, err := g.doc.own(t)
	if err != nil {
		return nil, false
	}
	if s, ok := g.surfaces[c]; ok {
		return s, true
	}
	if err := c.Bind(ContextWebGPU); err != nil {
		return nil, false
	}
	s := &PresentationSurface{canvas: c}
	g.surfaces[c] = s
	return s, true
}

// PresentationSurface is the WebGPU context of a memhost canvas.
type PresentationSurface struct {
	canvas     *Canvas
	config     host.PresentationConfig
	configured bool
	current    *Texture
	acquired   int
	presented  int
}

// Configure implements host.PresentationSurface.
func (s *PresentationSurface) Configure(cfg host.PresentationConfig) error {
	if cfg.Device == nil {
		return ErrNilDevice
	}
	s.config = cfg
	s.configured = true
	s.current = nil
	return nil
}

// Config returns the last configuration.
func (s *PresentationSurface) Config() (host.PresentationConfig, bool) {
	return s.config, s.configured
}

// CurrentTexture returns the swap texture for this frame. A new texture is
// produced after each Present.
func (s *PresentationSurface) CurrentTexture() (gpucontext.Texture, error) {
	if !s.configured {
		return nil, ErrNotConfigured
	}
	if s.current == nil {
		w, h := s.canvas.Size()
		s.acquired++
		s.current = &Texture{width: w, height: h, Seq: s.acquired}
	}
	return s.current, nil
}

// Present implements host.Presenter.
func (s *PresentationSurface) Present(tex gpucontext.Texture) error {
	if s.current == nil || tex != gpucontext.Texture(s.current) {
		return fmt.Errorf("%w: %v", ErrStaleTexture, tex)
	}
	s.current = nil
	s.presented++
	return nil
}

// Size implements host.PresentationSurface.
func (s *PresentationSurface) Size() (width, height int) { return s.canvas.Size() }

// Acquired returns how many swap textures were handed out.
func (s *PresentationSurface) Acquired() int { return s.acquired }

// Presented returns how many frames were presented.
func (s *PresentationSurface) Presented() int { return s.presented }

var (
	_ host.GPU                 = (*GPU)(nil)
	_ host.PresentationSurface = (*PresentationSurface)(nil)
	_ host.Presenter           = (*PresentationSurface)(nil)
	_ gpucontext.Texture       = (*Texture)(nil)
)
