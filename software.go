package ggweb

import (
	"fmt"

	"github.com/gogpu/ggweb/host"
)

// MakeSWSurface makes a software surface over t. The engine rasterizes
// straight into a pixel buffer the surface owns; Flush copies it into t.
func (m *Module) MakeSWSurface(t host.DisplayTarget) (*Surface, error) {
	if t == nil {
		return nil, ErrNilDisplayTarget
	}
	width, height := t.Size()
	pix, err := allocPixels(m.host.Heap, width, height)
	if err != nil {
		return nil, err
	}

	ns, err := m.host.Engine.MakeRasterDirect(width, height, pix.ptr, width*bytesPerPixel)
	if err == nil && ns == nil {
		err = ErrAcquisitionFailed
	}
	if err != nil {
		pix.release()
		return nil, fmt.Errorf("ggweb: raster surface %dx%d: %w", width, height, err)
	}

	Logger().Debug("ggweb: software surface", "target", t.ID(), "width", width, "height", height)
	return &Surface{
		module: m,
		kind:   BackendSoftware,
		width:  width,
		height: height,
		native: ns,
		target: t,
		pixels: pix,
	}, nil
}

// MakeSWSurfaceByID resolves id through the host's display provider and
// makes a software surface over it.
func (m *Module) MakeSWSurfaceByID(id string) (*Surface, error) {
	t, err := m.lookup(id)
	if err != nil {
		return nil, err
	}
	return m.MakeSWSurface(t)
}
