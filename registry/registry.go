// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: registry/registry.go
// Summary: Name-indexed catalogue of the scenes ledstage can run.
// Usage: cmd/ledstage registers the built-in apps and resolves -app through Get.

package registry

import (
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"

	"github.com/framegrace/ledstage/app"
	"github.com/framegrace/ledstage/stage"
)

// SceneFactory builds a scene for a panel with the given geometry.
type SceneFactory func(matrix stage.MatrixOptions) (app.Scene, error)

// Entry describes one registered app.
type Entry struct {
	Name        string
	Description string
	Factory     SceneFactory
}

// Registry manages the collection of available apps.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*Entry
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{entries: make(map[string]*Entry)}
}

// Register adds or replaces an app. Names are case-insensitive.
func (r *Registry) Register(name, description string, factory SceneFactory) {
	if name == "" || factory == nil {
		return
	}
	key := strings.ToLower(name)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[key] = &Entry{Name: key, Description: description, Factory: factory}
	log.Printf("Registry: Registered app '%s'", key)
}

// Get retrieves an app entry by name, or nil.
func (r *Registry) Get(name string) *Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.entries[strings.ToLower(name)]
}

// List returns all apps sorted by name.
func (r *Registry) List() []*Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Entry, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Names returns the sorted app names.
func (r *Registry) Names() []string {
	list := r.List()
	names := make([]string, len(list))
	for i, e := range list {
		names[i] = e.Name
	}
	return names
}

// Build creates the named scene.
func (r *Registry) Build(name string, matrix stage.MatrixOptions) (app.Scene, error) {
	e := r.Get(name)
	if e == nil {
		return nil, fmt.Errorf("unknown app %q (want %s)", name, strings.Join(r.Names(), ", "))
	}
	scene, err := e.Factory(matrix)
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", e.Name, err)
	}
	return scene, nil
}
