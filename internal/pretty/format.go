// Package pretty renders trees of tree.Node values as nested, indented text.
//
// A node with no structural child is a leaf and renders on one line:
//
//	Name(id='x', ctx=Load())
//
// Any other node renders one field per line, one indent level deeper:
//
//	Assign(
//	    targets=[Name(id='x', ctx=Store())],
//	    value=Num(n=5),
//	)
//
// Recursion depth follows tree depth; a pathologically deep tree can exhaust
// the goroutine stack.
package pretty

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"astpretty/internal/tree"
)

// Format renders v. It fails only when a node lacks a field its kind declares.
func Format(v tree.Value, opts Options) (string, error) {
	f := formatter{opts: opts, pal: newPalette(opts.Color)}
	var sb strings.Builder
	if err := f.value(&sb, v, 0); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// Fprint writes the rendering of v followed by a newline to w.
func Fprint(w io.Writer, v tree.Value, opts Options) error {
	out, err := Format(v, opts)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, out)
	return err
}

// Print writes the rendering of v followed by a newline to standard output.
func Print(v tree.Value, opts Options) error {
	return Fprint(os.Stdout, v, opts)
}

type palette struct {
	kind  func(a ...any) string
	field func(a ...any) string
}

func newPalette(enabled bool) palette {
	if !enabled {
		return palette{kind: fmt.Sprint, field: fmt.Sprint}
	}
	kind := color.New(color.FgCyan, color.Bold)
	kind.EnableColor()
	field := color.New(color.FgYellow)
	field.EnableColor()
	return palette{kind: kind.SprintFunc(), field: field.SprintFunc()}
}

type formatter struct {
	opts Options
	pal  palette
}

// value renders v as it appears after "field=" on a line at the given depth.
// The same rules apply to the root value at depth 0.
func (f *formatter) value(sb *strings.Builder, v tree.Value, depth int) error {
	if tree.IsNone(v) {
		sb.WriteString(repr(v))
		return nil
	}
	switch v := v.(type) {
	case *tree.Node:
		return f.node(sb, v, depth)
	case tree.List:
		return f.list(sb, v, depth)
	default:
		sb.WriteString(repr(v))
		return nil
	}
}

func (f *formatter) list(sb *strings.Builder, list tree.List, depth int) error {
	if len(list) == 0 {
		sb.WriteString("[]")
		return nil
	}
	if len(list) == 1 && !f.opts.ExpandSingletons {
		if n, ok := tree.AsNode(list[0]); ok {
			leaf, err := n.IsLeaf()
			if err != nil {
				return err
			}
			if leaf {
				sb.WriteByte('[')
				if err := f.leaf(sb, n); err != nil {
					return err
				}
				sb.WriteByte(']')
				return nil
			}
		}
	}

	sb.WriteString("[\n")
	inner := f.opts.indent(depth + 1)
	for _, el := range list {
		sb.WriteString(inner)
		if err := f.value(sb, el, depth+1); err != nil {
			return err
		}
		sb.WriteString(",\n")
	}
	sb.WriteString(f.opts.indent(depth))
	sb.WriteByte(']')
	return nil
}

func (f *formatter) node(sb *strings.Builder, n *tree.Node, depth int) error {
	leaf, err := n.IsLeaf()
	if err != nil {
		return err
	}
	if leaf {
		return f.leaf(sb, n)
	}

	fields, err := f.lines(n)
	if err != nil {
		return err
	}

	sb.WriteString(f.pal.kind(n.Kind()))
	sb.WriteString("(\n")
	inner := f.opts.indent(depth + 1)
	for _, fld := range fields {
		sb.WriteString(inner)
		sb.WriteString(f.pal.field(fld.Name))
		sb.WriteByte('=')
		if err := f.value(sb, fld.Value, depth+1); err != nil {
			return err
		}
		sb.WriteString(",\n")
	}
	sb.WriteString(f.opts.indent(depth))
	sb.WriteByte(')')
	return nil
}

// leaf renders n on a single line. Nested values use the same inline form.
func (f *formatter) leaf(sb *strings.Builder, n *tree.Node) error {
	fields, err := f.lines(n)
	if err != nil {
		return err
	}
	sb.WriteString(f.pal.kind(n.Kind()))
	sb.WriteByte('(')
	for i, fld := range fields {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(f.pal.field(fld.Name))
		sb.WriteByte('=')
		if err := f.inline(sb, fld.Value); err != nil {
			return err
		}
	}
	sb.WriteByte(')')
	return nil
}

func (f *formatter) inline(sb *strings.Builder, v tree.Value) error {
	if tree.IsNone(v) {
		sb.WriteString(repr(v))
		return nil
	}
	switch v := v.(type) {
	case *tree.Node:
		return f.leaf(sb, v)
	case tree.List:
		sb.WriteByte('[')
		for i, el := range v {
			if i > 0 {
				sb.WriteString(", ")
			}
			if err := f.inline(sb, el); err != nil {
				return err
			}
		}
		sb.WriteByte(']')
		return nil
	default:
		sb.WriteString(repr(v))
		return nil
	}
}

// lines returns the attributes (when shown) followed by the declared fields.
func (f *formatter) lines(n *tree.Node) ([]tree.Field, error) {
	fields, err := n.Fields()
	if err != nil {
		return nil, err
	}
	if !f.opts.ShowPositions || !n.Spec.HasAttrs() {
		return fields, nil
	}
	attrs, err := n.Attrs()
	if err != nil {
		return nil, err
	}
	return append(attrs, fields...), nil
}
