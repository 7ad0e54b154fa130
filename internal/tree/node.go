package tree

import (
	"errors"
	"fmt"
)

// ErrMissingField is returned when a node lacks a field its kind declares.
// It indicates a bug in the front-end that built the tree.
var ErrMissingField = errors.New("missing field")

// Node is one unit of a parsed tree: a kind plus values for the kind's
// declared fields and position attributes.
type Node struct {
	Spec   *KindSpec
	values map[string]Value
}

// NewNode creates an empty node of the given kind.
func NewNode(spec *KindSpec) *Node {
	return &Node{
		Spec:   spec,
		values: make(map[string]Value, len(spec.Fields)+len(spec.Attrs)),
	}
}

// Kind returns the kind name.
func (n *Node) Kind() string {
	if n == nil || n.Spec == nil {
		return ""
	}
	return n.Spec.Name
}

// Set stores a field or attribute value and returns the node for chaining.
// A nil Value is stored as None.
func (n *Node) Set(name string, v Value) *Node {
	if v == nil {
		v = None{}
	}
	n.values[name] = v
	return n
}

// SetPos stores position attributes in the order the kind declares them.
// Extra values are ignored, missing ones are left unset.
func (n *Node) SetPos(vals ...int) *Node {
	for i, name := range n.Spec.Attrs {
		if i >= len(vals) {
			break
		}
		n.values[name] = Int(vals[i])
	}
	return n
}

// Get returns the value stored under name.
func (n *Node) Get(name string) (Value, error) {
	v, ok := n.values[name]
	if !ok {
		return nil, fmt.Errorf("%s.%s: %w", n.Kind(), name, ErrMissingField)
	}
	return v, nil
}

// Field is a named value in declaration order.
type Field struct {
	Name  string
	Value Value
}

// Fields returns the declared fields in declaration order.
func (n *Node) Fields() ([]Field, error) {
	return n.collect(n.Spec.Fields)
}

// Attrs returns the position attributes in declaration order.
func (n *Node) Attrs() ([]Field, error) {
	return n.collect(n.Spec.Attrs)
}

func (n *Node) collect(names []string) ([]Field, error) {
	out := make([]Field, 0, len(names))
	for _, name := range names {
		v, err := n.Get(name)
		if err != nil {
			return nil, err
		}
		out = append(out, Field{Name: name, Value: v})
	}
	return out, nil
}

// IsLeaf reports whether none of the node's immediate field values is, or
// (for lists) contains, a structural child. Context markers do not count,
// and position attributes are never considered.
func (n *Node) IsLeaf() (bool, error) {
	for _, name := range n.Spec.Fields {
		v, err := n.Get(name)
		if err != nil {
			return false, err
		}
		if IsStructural(v) {
			return false, nil
		}
		if list, ok := v.(List); ok {
			for _, el := range list {
				if IsStructural(el) {
					return false, nil
				}
			}
		}
	}
	return true, nil
}
