package memhost

import "github.com/gogpu/ggweb/host"

type glContext struct {
	canvas     *Canvas
	attrs      host.GLAttributes
	extensions map[string]bool
}

// GL is a headless GL bridge. Handles start at 1 and are never reused.
type GL struct {
	// WebGL2 reports whether level-2 contexts are available.
	WebGL2 bool

	// Fail makes CreateContext return host.NoContext.
	Fail bool

	// Extensions lists the extensions EnableExtension accepts. Nil accepts
	// every name.
	Extensions []string

	doc           *Document
	next          host.GLHandle
	current       host.GLHandle
	contexts      map[host.GLHandle]*glContext
	switches      int
	doubleDeletes int
}

// NewGL returns a GL bridge creating contexts on doc's canvases.
func NewGL(doc *Document) *GL {
	return &GL{
		WebGL2:   true,
		doc:      doc,
		contexts: make(map[host.GLHandle]*glContext),
	}
}

// HasWebGL2 implements host.GL.
func (g *GL) HasWebGL2() bool { return g.WebGL2 }

// CreateContext binds t to a WebGL context.
func (g *GL) CreateContext(t host.DisplayTarget, attrs host.GLAttributes) host.GLHandle {
	if g.Fail {
		return host.NoContext
	}
	c, err := g.doc.own(t)
	if err != nil {
		return host.NoContext
	}
	if attrs.MajorVersion == 2 && !g.WebGL2 {
		return host.NoContext
	}
	if err := c.Bind(ContextWebGL); err != nil {
		return host.NoContext
	}
	g.next++
	g.contexts[g.next] = &glContext{canvas: c, attrs: attrs, extensions: make(map[string]bool)}
	return g.next
}

// MakeCurrent implements host.GL. Selecting host.NoContext clears the
// current context.
func (g *GL) MakeCurrent(h host.GLHandle) bool {
	if h != host.NoContext {
		if _, ok := g.contexts[h]; !ok {
			return false
		}
	}
	if g.current != h {
		g.switches++
	}
	g.current = h
	return true
}

// Current implements host.GL.
func (g *GL) Current() host.GLHandle { return g.current }

// DeleteContext implements host.GL.
func (g *GL) DeleteContext(h host.GLHandle) {
	if _, ok := g.contexts[h]; !ok {
		g.doubleDeletes++
		return
	}
	delete(g.contexts, h)
	if g.current == h {
		g.current = host.NoContext
	}
}

// EnableExtension implements host.GL.
func (g *GL) EnableExtension(name string) bool {
	ctx, ok := g.contexts[g.current]
	if !ok {
		return false
	}
	if g.Extensions != nil && !contains(g.Extensions, name) {
		return false
	}
	ctx.extensions[name] = true
	return true
}

// Attributes returns the attributes h was created with.
func (g *GL) Attributes(h host.GLHandle) (host.GLAttributes, bool) {
	ctx, ok := g.contexts[h]
	if !ok {
		return host.GLAttributes{}, false
	}
	return ctx.attrs, true
}

// ExtensionEnabled reports whether name was enabled on h.
func (g *GL) ExtensionEnabled(h host.GLHandle, name string) bool {
	ctx, ok := g.contexts[h]
	return ok && ctx.extensions[name]
}

// Live returns the number of contexts not yet deleted.
func (g *GL) Live() int { return len(g.contexts) }

// Switches returns how many times the current context changed.
func (g *GL) Switches() int { return g.switches }

// DoubleDeletes returns how many deletes named an unknown context.
func (g *GL) DoubleDeletes() int { return g.doubleDeletes }

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

var _ host.GL = (*GL)(nil)
