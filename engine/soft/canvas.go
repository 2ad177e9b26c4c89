package soft

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
)

// ErrDeleted is returned when drawing on a deleted surface.
var ErrDeleted = errors.New("soft: surface deleted")

// Canvas draws into a soft Surface.
type Canvas struct {
	surface *Surface
}

// Image returns the surface pixels as an *image.RGBA. The image aliases heap
// memory and is only valid until the next heap allocation; call Image again
// instead of keeping it.
func (c *Canvas) Image() (*image.RGBA, error) {
	s := c.surface
	if s.deleted {
		return nil, ErrDeleted
	}
	pix, err := s.engine.heap.Bytes(s.pixels, s.stride*s.height)
	if err != nil {
		return nil, err
	}
	return &image.RGBA{
		Pix:    pix,
		Stride: s.stride,
		Rect:   image.Rect(0, 0, s.width, s.height),
	}, nil
}

// Clear fills the whole surface with col.
func (c *Canvas) Clear(col color.Color) error {
	return c.FillRect(image.Rect(0, 0, c.surface.width, c.surface.height), col)
}

// FillRect fills r, clipped to the surface, with col.
func (c *Canvas) FillRect(r image.Rectangle, col color.Color) error {
	img, err := c.Image()
	if err != nil {
		return err
	}
	draw.Draw(img, r.Intersect(img.Rect), image.NewUniform(col), image.Point{}, draw.Src)
	return nil
}

// DrawImage composites src over the surface with its top-left corner at at.
func (c *Canvas) DrawImage(src image.Image, at image.Point) error {
	img, err := c.Image()
	if err != nil {
		return err
	}
	b := src.Bounds()
	draw.Draw(img, image.Rectangle{Min: at, Max: at.Add(b.Size())}, src, b.Min, draw.Over)
	return nil
}
