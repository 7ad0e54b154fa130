// Package golang converts Go source into tree values using go/parser.
//
// Every identifier carries a ctx marker describing its syntactic role:
// Def for names being declared, Store for assignment targets, Load for
// everything else.
package golang

import (
	"context"
	"fmt"
	goparser "go/parser"
	"go/token"

	"astpretty/internal/source"
	"astpretty/internal/tree"
)

// Frontend parses .go files.
type Frontend struct{}

// New returns the Go front-end.
func New() *Frontend { return &Frontend{} }

func (*Frontend) Name() string           { return "go" }
func (*Frontend) Extensions() []string   { return []string{".go"} }
func (*Frontend) Catalog() *tree.Catalog { return Kinds }

// Parse parses file as a Go source file. Comments are dropped.
func (*Frontend) Parse(ctx context.Context, file *source.File) (tree.Value, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fset := token.NewFileSet()
	f, err := goparser.ParseFile(fset, file.Path, file.Content, goparser.SkipObjectResolution)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file.Path, err)
	}

	c := &converter{fset: fset}
	root := c.file(f)
	if c.err != nil {
		return nil, fmt.Errorf("%s: %w", file.Path, c.err)
	}
	return root, nil
}

// ParseExpr parses a single Go expression.
func ParseExpr(src string) (tree.Value, error) {
	fset := token.NewFileSet()
	e, err := goparser.ParseExprFrom(fset, "expr.go", src, goparser.SkipObjectResolution)
	if err != nil {
		return nil, err
	}
	c := &converter{fset: fset}
	v := c.expr(e, ctxLoad)
	if c.err != nil {
		return nil, c.err
	}
	return v, nil
}
