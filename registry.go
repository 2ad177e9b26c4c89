// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package ggweb

import (
	"sort"
	"sync"

	"github.com/gogpu/ggweb/host"
)

// Standard backend priorities.
const (
	PriorityWebGPU   = 100
	PriorityWebGL    = 50
	PrioritySoftware = 10
)

// SurfaceFactory makes a surface for t without falling back to another
// backend. Errors other than lookup and configuration errors let the
// selector try the next backend.
type SurfaceFactory func(t host.DisplayTarget, opts SurfaceOptions) (*Surface, error)

// RegistryEntry is a registered surface backend.
type RegistryEntry struct {
	// Name is the unique identifier for this backend.
	Name string

	// Kind is the kind of the surfaces Factory makes.
	Kind Backend

	// Priority determines selection order (higher = preferred).
	Priority int

	// Factory makes surfaces.
	Factory SurfaceFactory

	// Available reports whether the backend can run for the given options.
	// It is asked on every selection, since devices and bridges come and go.
	Available func(opts SurfaceOptions) bool
}

// Registry holds the backends of one Module.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*RegistryEntry
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]*RegistryEntry),
	}
}

// Register adds a backend. If available is nil the backend is always
// available. Registering an existing name replaces the previous entry.
func (r *Registry) Register(name string, kind Backend, priority int, factory SurfaceFactory, available func(SurfaceOptions) bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if available == nil {
		available = func(SurfaceOptions) bool { return true }
	}
	r.entries[name] = &RegistryEntry{
		Name:      name,
		Kind:      kind,
		Priority:  priority,
		Factory:   factory,
		Available: available,
	}
}

// Unregister removes a backend.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.entries, name)
}

// List returns all registered backend names sorted by priority.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sortedNames(nil)
}

// Available returns the names of backends available with default options.
func (r *Registry) Available() []string {
	return r.AvailableFor(SurfaceOptions{})
}

// AvailableFor returns the names of backends available for opts, sorted by
// priority.
func (r *Registry) AvailableFor(opts SurfaceOptions) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sortedNames(&opts)
}

// Get returns a copy of the named entry.
func (r *Registry) Get(name string) (*RegistryEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.entries[name]
	if !ok {
		return nil, false
	}
	entryCopy := *entry
	return &entryCopy, true
}

// sortedNames returns backend names sorted by priority (highest first),
// ties broken by name. A non-nil opts filters to available backends.
// Must be called with lock held.
func (r *Registry) sortedNames(opts *SurfaceOptions) []string {
	if len(r.entries) == 0 {
		return nil
	}

	type entry struct {
		name     string
		priority int
	}

	entries := make([]entry, 0, len(r.entries))
	for name, e := range r.entries {
		if opts != nil && !e.Available(*opts) {
			continue
		}
		entries = append(entries, entry{name: name, priority: e.Priority})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].priority != entries[j].priority {
			return entries[i].priority > entries[j].priority
		}
		return entries[i].name < entries[j].name
	})

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.name
	}
	return names
}
