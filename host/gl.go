// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package host

// GLHandle identifies a GL-style context in the host's context table.
type GLHandle int32

// NoContext is the null GL handle.
const NoContext GLHandle = 0

// DebugRendererInfo is the extension the native engine needs to work around
// vendor specific GPU issues.
const DebugRendererInfo = "WEBGL_debug_renderer_info"

// GLAttributes are the attributes a GL context is created with.
type GLAttributes struct {
	Alpha                           bool
	Depth                           bool
	Stencil                         bool
	Antialias                       bool
	PremultipliedAlpha              bool
	PreserveDrawingBuffer           bool
	PreferLowPowerToHighPerformance bool
	FailIfMajorPerformanceCaveat    bool
	EnableExtensionsByDefault       bool
	ExplicitSwapControl             bool
	RenderViaOffscreenBackBuffer    bool

	// MajorVersion is 1 or 2. Zero means not chosen yet.
	MajorVersion int
}

// GL is the host's GL context table. Exactly one context is current at a
// time and every native GL call targets it.
type GL interface {
	// HasWebGL2 reports whether level-2 contexts exist on this host.
	HasWebGL2() bool

	// CreateContext creates a context for t. It returns NoContext on failure.
	CreateContext(t DisplayTarget, attrs GLAttributes) GLHandle

	// MakeCurrent makes h the current context.
	MakeCurrent(h GLHandle) bool

	// Current returns the current context, or NoContext.
	Current() GLHandle

	// DeleteContext destroys h. Deleting twice is undefined.
	DeleteContext(h GLHandle)

	// EnableExtension enables a named extension on the current context.
	EnableExtension(name string) bool
}
