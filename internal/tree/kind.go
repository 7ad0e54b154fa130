package tree

import (
	"fmt"
	"slices"
)

// KindSpec describes one node kind: its declared fields in declaration order,
// the position attributes it carries, and whether it is a context marker.
type KindSpec struct {
	Name   string
	Fields []string
	Attrs  []string
	// Context marks kinds that only tag how a value is used (load/store/...).
	// They never count as structural children when deciding leaf-ness.
	Context bool
}

// HasAttrs reports whether nodes of this kind carry position attributes.
func (spec *KindSpec) HasAttrs() bool {
	return spec != nil && len(spec.Attrs) > 0
}

// Catalog is the lookup table of kinds for one front-end.
// It is built once at package initialisation and read-only afterwards.
type Catalog struct {
	name  string
	kinds map[string]*KindSpec
}

// NewCatalog builds a catalog from the given specs.
// It panics on a duplicate or unnamed kind: catalogs are static tables.
func NewCatalog(name string, specs ...KindSpec) *Catalog {
	c := &Catalog{
		name:  name,
		kinds: make(map[string]*KindSpec, len(specs)),
	}
	for i := range specs {
		spec := specs[i]
		if spec.Name == "" {
			panic(fmt.Errorf("tree: catalog %s: kind #%d has no name", name, i))
		}
		if _, dup := c.kinds[spec.Name]; dup {
			panic(fmt.Errorf("tree: catalog %s: duplicate kind %q", name, spec.Name))
		}
		c.kinds[spec.Name] = &spec
	}
	return c
}

// Name returns the catalog name (usually the front-end name).
func (c *Catalog) Name() string {
	return c.name
}

// Lookup returns the spec for the given kind name.
func (c *Catalog) Lookup(name string) (*KindSpec, bool) {
	if c == nil {
		return nil, false
	}
	spec, ok := c.kinds[name]
	return spec, ok
}

// MustLookup is like Lookup but panics when the kind is unknown.
// Front-ends use it while converting, where an unknown kind is a bug in the
// conversion table rather than bad input.
func (c *Catalog) MustLookup(name string) *KindSpec {
	spec, ok := c.Lookup(name)
	if !ok {
		panic(fmt.Errorf("tree: catalog %s: unknown kind %q", c.name, name))
	}
	return spec
}

// New creates an empty node of the named kind.
func (c *Catalog) New(kind string) *Node {
	return NewNode(c.MustLookup(kind))
}

// Specs returns all kinds sorted by name.
func (c *Catalog) Specs() []*KindSpec {
	names := make([]string, 0, len(c.kinds))
	for name := range c.kinds {
		names = append(names, name)
	}
	slices.Sort(names)
	out := make([]*KindSpec, 0, len(names))
	for _, name := range names {
		out = append(out, c.kinds[name])
	}
	return out
}

// Len returns the number of registered kinds.
func (c *Catalog) Len() int {
	return len(c.kinds)
}
