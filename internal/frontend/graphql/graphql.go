// Package graphql converts GraphQL documents into tree values using
// vektah/gqlparser. Executable documents (.graphql, .gql) and schema
// documents (.graphqls) are both supported.
package graphql

import (
	"context"
	"fmt"
	"strconv"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"

	"astpretty/internal/source"
	"astpretty/internal/tree"
)

// Frontend parses GraphQL documents.
type Frontend struct{}

// New returns the GraphQL front-end.
func New() *Frontend { return &Frontend{} }

func (*Frontend) Name() string           { return "graphql" }
func (*Frontend) Extensions() []string   { return []string{".graphql", ".gql", ".graphqls"} }
func (*Frontend) Catalog() *tree.Catalog { return Kinds }

// Parse parses file as a schema document when it has the .graphqls
// extension and as an executable document otherwise.
func (*Frontend) Parse(ctx context.Context, file *source.File) (tree.Value, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	src := &ast.Source{Name: file.Path, Input: string(file.Content)}

	if file.Ext() == ".graphqls" {
		doc, err := parser.ParseSchema(src)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", file.Path, err)
		}
		return schemaDocument(doc), nil
	}

	doc, err := parser.ParseQuery(src)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file.Path, err)
	}
	return queryDocument(doc, []rune(src.Input)), nil
}

func node(kind string, p *ast.Position) *tree.Node {
	n := Kinds.New(kind)
	if p == nil {
		return n.Set("lineno", tree.None{}).Set("col_offset", tree.None{})
	}
	return n.SetPos(p.Line, p.Column-1)
}

func optStr(s string) tree.Value {
	if s == "" {
		return tree.None{}
	}
	return tree.Str(s)
}

func strs(ss []string) tree.List {
	out := make(tree.List, 0, len(ss))
	for _, s := range ss {
		out = append(out, tree.Str(s))
	}
	return out
}

func operation(op ast.Operation) tree.Value {
	switch op {
	case ast.Mutation:
		return Kinds.New("Mutation")
	case ast.Subscription:
		return Kinds.New("Subscription")
	default:
		return Kinds.New("Query")
	}
}

// queryDocument converts doc. input is the source text as runes, which is
// how gqlparser counts token offsets.
func queryDocument(doc *ast.QueryDocument, input []rune) *tree.Node {
	ops := make(tree.List, 0, len(doc.Operations))
	for _, op := range doc.Operations {
		ops = append(ops, node("OperationDefinition", op.Position).
			Set("operation", operation(op.Operation)).
			Set("name", optStr(op.Name)).
			Set("variable_definitions", variables(op.VariableDefinitions)).
			Set("directives", directives(op.Directives)).
			Set("selection_set", selections(op.SelectionSet, input)))
	}
	frags := make(tree.List, 0, len(doc.Fragments))
	for _, f := range doc.Fragments {
		frags = append(frags, node("FragmentDefinition", f.Position).
			Set("name", tree.Str(f.Name)).
			Set("variable_definitions", variables(f.VariableDefinition)).
			Set("type_condition", tree.Str(f.TypeCondition)).
			Set("directives", directives(f.Directives)).
			Set("selection_set", selections(f.SelectionSet, input)))
	}
	return Kinds.New("QueryDocument").
		Set("operations", ops).
		Set("fragments", frags)
}

func variables(vars ast.VariableDefinitionList) tree.List {
	out := make(tree.List, 0, len(vars))
	for _, v := range vars {
		out = append(out, node("VariableDefinition", v.Position).
			Set("variable", tree.Str(v.Variable)).
			Set("type", typeRef(v.Type)).
			Set("default_value", value(v.DefaultValue)).
			Set("directives", directives(v.Directives)))
	}
	return out
}

func selections(set ast.SelectionSet, input []rune) tree.List {
	out := make(tree.List, 0, len(set))
	for _, sel := range set {
		switch sel := sel.(type) {
		case *ast.Field:
			out = append(out, node("Field", sel.Position).
				Set("alias", alias(sel, input)).
				Set("name", tree.Str(sel.Name)).
				Set("arguments", arguments(sel.Arguments)).
				Set("directives", directives(sel.Directives)).
				Set("selection_set", selections(sel.SelectionSet, input)))
		case *ast.FragmentSpread:
			out = append(out, node("FragmentSpread", sel.Position).
				Set("name", tree.Str(sel.Name)).
				Set("directives", directives(sel.Directives)))
		case *ast.InlineFragment:
			out = append(out, node("InlineFragment", sel.Position).
				Set("type_condition", optStr(sel.TypeCondition)).
				Set("directives", directives(sel.Directives)).
				Set("selection_set", selections(sel.SelectionSet, input)))
		}
	}
	return out
}

// alias returns the alias written for f, or None. The parser copies the name
// into Alias when there is none, so an alias equal to the name only counts
// when a colon follows the first name in the source.
func alias(f *ast.Field, input []rune) tree.Value {
	if f.Alias != f.Name {
		return optStr(f.Alias)
	}
	if f.Position == nil || f.Position.End < 0 || f.Position.End > len(input) {
		return tree.None{}
	}
	comment := false
	for _, r := range input[f.Position.End:] {
		switch {
		case r == '\n' || r == '\r':
			comment = false
		case comment, r == ' ', r == '\t', r == ',', r == '\ufeff':
		case r == '#':
			comment = true
		case r == ':':
			return tree.Str(f.Alias)
		default:
			return tree.None{}
		}
	}
	return tree.None{}
}

func arguments(args ast.ArgumentList) tree.List {
	out := make(tree.List, 0, len(args))
	for _, a := range args {
		out = append(out, node("Argument", a.Position).
			Set("name", tree.Str(a.Name)).
			Set("value", value(a.Value)))
	}
	return out
}

func directives(dirs ast.DirectiveList) tree.List {
	out := make(tree.List, 0, len(dirs))
	for _, d := range dirs {
		out = append(out, node("Directive", d.Position).
			Set("name", tree.Str(d.Name)).
			Set("arguments", arguments(d.Arguments)))
	}
	return out
}

func typeRef(t *ast.Type) tree.Value {
	if t == nil {
		return tree.None{}
	}
	if t.Elem != nil {
		return node("ListType", t.Position).
			Set("elem", typeRef(t.Elem)).
			Set("non_null", tree.Bool(t.NonNull))
	}
	return node("NamedType", t.Position).
		Set("name", tree.Str(t.NamedType)).
		Set("non_null", tree.Bool(t.NonNull))
}

func value(v *ast.Value) tree.Value {
	if v == nil {
		return tree.None{}
	}
	switch v.Kind {
	case ast.Variable:
		return node("Variable", v.Position).Set("name", tree.Str(v.Raw))
	case ast.IntValue:
		if i, err := strconv.ParseInt(v.Raw, 10, 64); err == nil {
			return node("IntValue", v.Position).Set("value", tree.Int(i))
		}
		return node("IntValue", v.Position).Set("value", tree.Str(v.Raw))
	case ast.FloatValue:
		if f, err := strconv.ParseFloat(v.Raw, 64); err == nil {
			return node("FloatValue", v.Position).Set("value", tree.Float(f))
		}
		return node("FloatValue", v.Position).Set("value", tree.Str(v.Raw))
	case ast.StringValue:
		return node("StringValue", v.Position).Set("value", tree.Str(v.Raw))
	case ast.BlockValue:
		return node("BlockValue", v.Position).Set("value", tree.Str(v.Raw))
	case ast.BooleanValue:
		return node("BooleanValue", v.Position).Set("value", tree.Bool(v.Raw == "true"))
	case ast.NullValue:
		return node("NullValue", v.Position)
	case ast.EnumValue:
		return node("EnumValue", v.Position).Set("value", tree.Str(v.Raw))
	case ast.ListValue:
		vals := make(tree.List, 0, len(v.Children))
		for _, child := range v.Children {
			vals = append(vals, value(child.Value))
		}
		return node("ListValue", v.Position).Set("values", vals)
	case ast.ObjectValue:
		fields := make(tree.List, 0, len(v.Children))
		for _, child := range v.Children {
			fields = append(fields, node("ObjectField", child.Position).
				Set("name", tree.Str(child.Name)).
				Set("value", value(child.Value)))
		}
		return node("ObjectValue", v.Position).Set("fields", fields)
	}
	return node("StringValue", v.Position).Set("value", tree.Str(v.Raw))
}
