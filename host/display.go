// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package host

import "image"

// DisplayTarget is a presentation endpoint such as a canvas element.
// ggweb never owns a display target.
type DisplayTarget interface {
	// ID returns the identifier the target was resolved by, if any.
	ID() string

	// Size returns the size of the target's drawing buffer in pixels.
	// This is not the size the target is displayed at.
	Size() (width, height int)

	// Replaced reports whether this target was created to replace one that
	// had been bound to a GPU context.
	Replaced() bool
}

// Blitter writes raw pixels into a display target.
type Blitter interface {
	// PutPixels copies the dirty rectangle of an RGBA8888 frame of the
	// given size, tightly packed, to the same position in the target.
	PutPixels(pix []byte, width, height int, dirty image.Rectangle) error
}

// DisplayProvider resolves and replaces display targets.
type DisplayProvider interface {
	// Lookup resolves a display target by id.
	Lookup(id string) (DisplayTarget, bool)

	// Replace swaps t for a fresh clone that carries no GPU configuration
	// and marks the clone as replaced. The returned target takes t's place.
	Replace(t DisplayTarget) (DisplayTarget, error)

	// Blitter returns the 2D pixel blit capability of t. It fails when t is
	// bound to a GPU context.
	Blitter(t DisplayTarget) (Blitter, error)
}
