// Package query selects sub-trees with expr-lang boolean expressions.
//
// An expression sees one node at a time through these variables:
//
//	kind        the node kind, e.g. "Ident"
//	context     the kind of the node's context marker field, or ""
//	lineno      position attribute, 0 when absent
//	col_offset  position attribute, 0 when absent
//	fields      declared fields: scalars as Go values, nodes as their kind,
//	            lists as lists of those
//
// Example: kind == "Ident" && context == "Def" && fields.name startsWith "x"
package query

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"astpretty/internal/tree"
)

// Env is the environment an expression is evaluated against.
type Env struct {
	Kind      string         `expr:"kind"`
	Context   string         `expr:"context"`
	Lineno    int            `expr:"lineno"`
	ColOffset int            `expr:"col_offset"`
	Fields    map[string]any `expr:"fields"`
}

// Program is a compiled selection expression.
type Program struct {
	src  string
	prog *vm.Program
}

// String returns the expression source.
func (p *Program) String() string {
	return p.src
}

// Compile compiles src into a Program. The expression must yield a bool.
func Compile(src string) (*Program, error) {
	prog, err := expr.Compile(src, expr.Env(Env{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("select %q: %w", src, err)
	}
	return &Program{src: src, prog: prog}, nil
}

// Match reports whether n satisfies the program.
func (p *Program) Match(n *tree.Node) (bool, error) {
	env, err := envFor(n)
	if err != nil {
		return false, err
	}
	out, err := vm.Run(p.prog, env)
	if err != nil {
		return false, fmt.Errorf("select %q on %s: %w", p.src, n.Kind(), err)
	}
	ok, _ := out.(bool)
	return ok, nil
}

// Select walks root in pre-order and returns every matching node. The walk
// does not descend into a node once it matched.
func Select(root tree.Value, p *Program) ([]tree.Value, error) {
	var out []tree.Value
	err := walk(root, func(n *tree.Node) (bool, error) {
		ok, err := p.Match(n)
		if err != nil || !ok {
			return false, err
		}
		out = append(out, n)
		return true, nil
	})
	return out, err
}

// walk calls visit for every node under v. visit returns true to skip the
// node's children.
func walk(v tree.Value, visit func(*tree.Node) (bool, error)) error {
	switch v := v.(type) {
	case tree.List:
		for _, el := range v {
			if err := walk(el, visit); err != nil {
				return err
			}
		}
		return nil
	case *tree.Node:
		if v == nil {
			return nil
		}
		skip, err := visit(v)
		if err != nil || skip {
			return err
		}
		fields, err := v.Fields()
		if err != nil {
			return err
		}
		for _, f := range fields {
			if err := walk(f.Value, visit); err != nil {
				return err
			}
		}
	}
	return nil
}

func envFor(n *tree.Node) (Env, error) {
	fields, err := n.Fields()
	if err != nil {
		return Env{}, err
	}
	env := Env{
		Kind:   n.Kind(),
		Fields: make(map[string]any, len(fields)),
	}
	for _, f := range fields {
		env.Fields[f.Name] = plain(f.Value)
		if child, ok := tree.AsNode(f.Value); ok && child.Spec.Context && env.Context == "" {
			env.Context = child.Kind()
		}
	}
	for _, name := range n.Spec.Attrs {
		v, err := n.Get(name)
		if err != nil {
			continue
		}
		i, ok := v.(tree.Int)
		if !ok {
			continue
		}
		switch name {
		case "lineno":
			env.Lineno = int(i)
		case "col_offset":
			env.ColOffset = int(i)
		}
	}
	return env, nil
}

// plain converts a value into what expressions see.
func plain(v tree.Value) any {
	switch v := v.(type) {
	case tree.Str:
		return string(v)
	case tree.Int:
		return int(v)
	case tree.Float:
		return float64(v)
	case tree.Bool:
		return bool(v)
	case *tree.Node:
		if v == nil {
			return nil
		}
		return v.Kind()
	case tree.List:
		out := make([]any, 0, len(v))
		for _, el := range v {
			out = append(out, plain(el))
		}
		return out
	}
	return nil
}
