package tree

// Value is a field value: a scalar, a child node, or a list of values.
// The set of implementations is closed.
type Value interface {
	isValue()
}

type (
	// None is the absence marker.
	None struct{}
	// Str is a text scalar.
	Str string
	// Int is an integer scalar.
	Int int64
	// Float is a floating point scalar.
	Float float64
	// Bool is a boolean scalar.
	Bool bool
	// List is an ordered sequence of values.
	List []Value
)

func (None) isValue()  {}
func (Str) isValue()   {}
func (Int) isValue()   {}
func (Float) isValue() {}
func (Bool) isValue()  {}
func (List) isValue()  {}
func (*Node) isValue() {}

// IsNone reports whether v is the absence marker (or a nil interface / nil node).
func IsNone(v Value) bool {
	switch v := v.(type) {
	case nil:
		return true
	case None:
		return true
	case *Node:
		return v == nil
	}
	return false
}

// AsNode returns v as a node when it is a non-nil *Node.
func AsNode(v Value) (*Node, bool) {
	n, ok := v.(*Node)
	if !ok || n == nil {
		return nil, false
	}
	return n, true
}

// IsStructural reports whether v is a child node that counts for leaf-ness,
// i.e. a node whose kind is not a context marker.
func IsStructural(v Value) bool {
	n, ok := AsNode(v)
	return ok && !n.Spec.Context
}

// OptNode returns n as a Value, mapping a nil node to None.
func OptNode(n *Node) Value {
	if n == nil {
		return None{}
	}
	return n
}
