// Package frontend turns source files into tree values for the formatter.
//
// A Frontend wraps one real parser and converts its output into tree.Node
// values described by the front-end's Catalog. A Registry maps front-end
// names and file extensions to implementations.
package frontend

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"astpretty/internal/frontend/golang"
	"astpretty/internal/frontend/graphql"
	"astpretty/internal/frontend/yaml"
	"astpretty/internal/source"
	"astpretty/internal/tree"
)

// ErrUnknownFrontend is returned when no front-end matches a name or path.
var ErrUnknownFrontend = errors.New("unknown frontend")

// Frontend parses one source language into a tree.
type Frontend interface {
	Name() string
	Extensions() []string
	Catalog() *tree.Catalog
	Parse(ctx context.Context, file *source.File) (tree.Value, error)
}

// Registry maps names and extensions to front-ends. It is safe for
// concurrent lookups.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]Frontend
	byExt  map[string]string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]Frontend),
		byExt:  make(map[string]string),
	}
}

// Builtin returns a registry holding the go, graphql and yaml front-ends.
func Builtin() *Registry {
	r := NewRegistry()
	for _, f := range []Frontend{golang.New(), graphql.New(), yaml.New()} {
		if err := r.Register(f); err != nil {
			panic(err)
		}
	}
	return r
}

// Register adds f and claims its extensions. Registering a name twice is
// an error; an extension already claimed moves to f.
func (r *Registry) Register(f Frontend) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := f.Name()
	if _, dup := r.byName[name]; dup {
		return fmt.Errorf("frontend %q already registered", name)
	}
	r.byName[name] = f
	for _, ext := range f.Extensions() {
		r.byExt[normalizeExt(ext)] = name
	}
	return nil
}

// MapExtension routes files with ext to the named front-end.
func (r *Registry) MapExtension(ext, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byName[name]; !ok {
		return fmt.Errorf("extension %s: %w %q", ext, ErrUnknownFrontend, name)
	}
	r.byExt[normalizeExt(ext)] = name
	return nil
}

// Lookup returns the front-end registered under name.
func (r *Registry) Lookup(name string) (Frontend, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.byName[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w %q (known: %s)", ErrUnknownFrontend, name, strings.Join(r.namesLocked(), ", "))
	}
	return f, nil
}

// ForPath picks the front-end for path by its extension.
func (r *Registry) ForPath(path string) (Frontend, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ext := normalizeExt(filepath.Ext(path))
	name, ok := r.byExt[ext]
	if !ok {
		return nil, fmt.Errorf("%s: %w for extension %q", path, ErrUnknownFrontend, ext)
	}
	return r.byName[name], nil
}

// Handles reports whether some front-end claims path's extension.
func (r *Registry) Handles(path string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byExt[normalizeExt(filepath.Ext(path))]
	return ok
}

// Names returns registered front-end names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.namesLocked()
}

func (r *Registry) namesLocked() []string {
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
