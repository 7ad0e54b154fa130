package golang

import (
	"fmt"
	"go/ast"
	"go/token"

	"astpretty/internal/tree"
)

type role uint8

const (
	ctxLoad role = iota
	ctxStore
	ctxDef
)

var roleKinds = [...]string{ctxLoad: "Load", ctxStore: "Store", ctxDef: "Def"}

type converter struct {
	fset *token.FileSet
	err  error
}

func (c *converter) node(kind string, n ast.Node) *tree.Node {
	out := Kinds.New(kind)
	if n == nil || !n.Pos().IsValid() {
		return out.SetPos(0, 0, 0, 0)
	}
	start := c.fset.Position(n.Pos())
	end := c.fset.Position(n.End())
	return out.SetPos(start.Line, start.Column-1, end.Line, end.Column-1)
}

func (c *converter) fail(n ast.Node) tree.Value {
	if c.err == nil {
		c.err = fmt.Errorf("unsupported syntax node %T", n)
	}
	return tree.None{}
}

func (c *converter) file(f *ast.File) *tree.Node {
	decls := make(tree.List, 0, len(f.Decls))
	for _, d := range f.Decls {
		decls = append(decls, c.decl(d))
	}
	return c.node("File", f).
		Set("name", c.ident(f.Name, ctxDef)).
		Set("decls", decls)
}

func (c *converter) ident(id *ast.Ident, r role) tree.Value {
	if id == nil {
		return tree.None{}
	}
	return c.node("Ident", id).
		Set("name", tree.Str(id.Name)).
		Set("ctx", Kinds.New(roleKinds[r]))
}

func (c *converter) idents(ids []*ast.Ident, r role) tree.List {
	out := make(tree.List, 0, len(ids))
	for _, id := range ids {
		out = append(out, c.ident(id, r))
	}
	return out
}

func (c *converter) decl(d ast.Decl) tree.Value {
	switch d := d.(type) {
	case *ast.GenDecl:
		specs := make(tree.List, 0, len(d.Specs))
		for _, s := range d.Specs {
			specs = append(specs, c.spec(s))
		}
		return c.node("GenDecl", d).
			Set("tok", tree.Str(d.Tok.String())).
			Set("specs", specs)
	case *ast.FuncDecl:
		var recv tree.Value = tree.None{}
		if d.Recv != nil {
			recv = c.fields(d.Recv)
		}
		return c.node("FuncDecl", d).
			Set("recv", recv).
			Set("name", c.ident(d.Name, ctxDef)).
			Set("type", c.expr(d.Type, ctxLoad)).
			Set("body", c.block(d.Body))
	case *ast.BadDecl:
		return c.node("BadDecl", d)
	case nil:
		return tree.None{}
	}
	return c.fail(d)
}

func (c *converter) spec(s ast.Spec) tree.Value {
	switch s := s.(type) {
	case *ast.ImportSpec:
		return c.node("ImportSpec", s).
			Set("name", c.ident(s.Name, ctxDef)).
			Set("path", c.expr(s.Path, ctxLoad))
	case *ast.ValueSpec:
		return c.node("ValueSpec", s).
			Set("names", c.idents(s.Names, ctxDef)).
			Set("type", c.expr(s.Type, ctxLoad)).
			Set("values", c.exprs(s.Values, ctxLoad))
	case *ast.TypeSpec:
		return c.node("TypeSpec", s).
			Set("name", c.ident(s.Name, ctxDef)).
			Set("type_params", c.fields(s.TypeParams)).
			Set("assign", tree.Bool(s.Assign.IsValid())).
			Set("type", c.expr(s.Type, ctxLoad))
	}
	return c.fail(s)
}

// fields flattens a field list; a nil list becomes an empty one.
func (c *converter) fields(fl *ast.FieldList) tree.List {
	if fl == nil {
		return tree.List{}
	}
	out := make(tree.List, 0, len(fl.List))
	for _, f := range fl.List {
		out = append(out, c.node("Field", f).
			Set("names", c.idents(f.Names, ctxDef)).
			Set("type", c.expr(f.Type, ctxLoad)).
			Set("tag", c.expr(f.Tag, ctxLoad)))
	}
	return out
}

func (c *converter) exprs(es []ast.Expr, r role) tree.List {
	out := make(tree.List, 0, len(es))
	for _, e := range es {
		out = append(out, c.expr(e, r))
	}
	return out
}

// expr converts e. r applies to the identifier e names, if any; operands
// nested below e are always loaded.
func (c *converter) expr(e ast.Expr, r role) tree.Value {
	switch e := e.(type) {
	case nil:
		return tree.None{}
	case *ast.Ident:
		if e == nil {
			return tree.None{}
		}
		return c.ident(e, r)
	case *ast.BasicLit:
		if e == nil {
			return tree.None{}
		}
		return c.node("BasicLit", e).
			Set("kind", tree.Str(e.Kind.String())).
			Set("value", tree.Str(e.Value))
	case *ast.CompositeLit:
		return c.node("CompositeLit", e).
			Set("type", c.expr(e.Type, ctxLoad)).
			Set("elts", c.exprs(e.Elts, ctxLoad))
	case *ast.FuncLit:
		return c.node("FuncLit", e).
			Set("type", c.expr(e.Type, ctxLoad)).
			Set("body", c.block(e.Body))
	case *ast.ParenExpr:
		return c.node("ParenExpr", e).
			Set("x", c.expr(e.X, r))
	case *ast.SelectorExpr:
		return c.node("SelectorExpr", e).
			Set("x", c.expr(e.X, ctxLoad)).
			Set("sel", c.ident(e.Sel, r))
	case *ast.IndexExpr:
		return c.node("IndexExpr", e).
			Set("x", c.expr(e.X, ctxLoad)).
			Set("index", c.expr(e.Index, ctxLoad))
	case *ast.IndexListExpr:
		return c.node("IndexListExpr", e).
			Set("x", c.expr(e.X, ctxLoad)).
			Set("indices", c.exprs(e.Indices, ctxLoad))
	case *ast.SliceExpr:
		return c.node("SliceExpr", e).
			Set("x", c.expr(e.X, ctxLoad)).
			Set("low", c.expr(e.Low, ctxLoad)).
			Set("high", c.expr(e.High, ctxLoad)).
			Set("max", c.expr(e.Max, ctxLoad)).
			Set("slice3", tree.Bool(e.Slice3))
	case *ast.TypeAssertExpr:
		// x.(type) in a type switch has a nil Type
		return c.node("TypeAssertExpr", e).
			Set("x", c.expr(e.X, ctxLoad)).
			Set("type", c.expr(e.Type, ctxLoad))
	case *ast.CallExpr:
		return c.node("CallExpr", e).
			Set("fun", c.expr(e.Fun, ctxLoad)).
			Set("args", c.exprs(e.Args, ctxLoad)).
			Set("ellipsis", tree.Bool(e.Ellipsis.IsValid()))
	case *ast.StarExpr:
		return c.node("StarExpr", e).
			Set("x", c.expr(e.X, ctxLoad))
	case *ast.UnaryExpr:
		return c.node("UnaryExpr", e).
			Set("op", tree.Str(e.Op.String())).
			Set("x", c.expr(e.X, ctxLoad))
	case *ast.BinaryExpr:
		return c.node("BinaryExpr", e).
			Set("x", c.expr(e.X, ctxLoad)).
			Set("op", tree.Str(e.Op.String())).
			Set("y", c.expr(e.Y, ctxLoad))
	case *ast.KeyValueExpr:
		return c.node("KeyValueExpr", e).
			Set("key", c.expr(e.Key, ctxLoad)).
			Set("value", c.expr(e.Value, ctxLoad))
	case *ast.Ellipsis:
		return c.node("Ellipsis", e).
			Set("elt", c.expr(e.Elt, ctxLoad))
	case *ast.ArrayType:
		return c.node("ArrayType", e).
			Set("len", c.expr(e.Len, ctxLoad)).
			Set("elt", c.expr(e.Elt, ctxLoad))
	case *ast.StructType:
		return c.node("StructType", e).
			Set("fields", c.fields(e.Fields))
	case *ast.FuncType:
		if e == nil {
			return tree.None{}
		}
		return c.node("FuncType", e).
			Set("type_params", c.fields(e.TypeParams)).
			Set("params", c.fields(e.Params)).
			Set("results", c.fields(e.Results))
	case *ast.InterfaceType:
		return c.node("InterfaceType", e).
			Set("methods", c.fields(e.Methods))
	case *ast.MapType:
		return c.node("MapType", e).
			Set("key", c.expr(e.Key, ctxLoad)).
			Set("value", c.expr(e.Value, ctxLoad))
	case *ast.ChanType:
		return c.node("ChanType", e).
			Set("dir", tree.Str(chanDir(e.Dir))).
			Set("value", c.expr(e.Value, ctxLoad))
	case *ast.BadExpr:
		return c.node("BadExpr", e)
	}
	return c.fail(e)
}

func chanDir(dir ast.ChanDir) string {
	switch dir {
	case ast.SEND:
		return "send"
	case ast.RECV:
		return "recv"
	default:
		return "both"
	}
}

func (c *converter) block(b *ast.BlockStmt) tree.Value {
	if b == nil {
		return tree.None{}
	}
	return c.node("BlockStmt", b).
		Set("list", c.stmts(b.List))
}

func (c *converter) stmts(ss []ast.Stmt) tree.List {
	out := make(tree.List, 0, len(ss))
	for _, s := range ss {
		out = append(out, c.stmt(s))
	}
	return out
}

func assignRole(tok token.Token) role {
	if tok == token.DEFINE {
		return ctxDef
	}
	return ctxStore
}

func (c *converter) stmt(s ast.Stmt) tree.Value {
	switch s := s.(type) {
	case nil:
		return tree.None{}
	case *ast.BlockStmt:
		return c.block(s)
	case *ast.DeclStmt:
		return c.node("DeclStmt", s).
			Set("decl", c.decl(s.Decl))
	case *ast.EmptyStmt:
		return c.node("EmptyStmt", s).
			Set("implicit", tree.Bool(s.Implicit))
	case *ast.LabeledStmt:
		return c.node("LabeledStmt", s).
			Set("label", c.ident(s.Label, ctxDef)).
			Set("stmt", c.stmt(s.Stmt))
	case *ast.ExprStmt:
		return c.node("ExprStmt", s).
			Set("x", c.expr(s.X, ctxLoad))
	case *ast.SendStmt:
		return c.node("SendStmt", s).
			Set("chan", c.expr(s.Chan, ctxLoad)).
			Set("value", c.expr(s.Value, ctxLoad))
	case *ast.IncDecStmt:
		return c.node("IncDecStmt", s).
			Set("x", c.expr(s.X, ctxStore)).
			Set("tok", tree.Str(s.Tok.String()))
	case *ast.AssignStmt:
		return c.node("AssignStmt", s).
			Set("lhs", c.exprs(s.Lhs, assignRole(s.Tok))).
			Set("tok", tree.Str(s.Tok.String())).
			Set("rhs", c.exprs(s.Rhs, ctxLoad))
	case *ast.GoStmt:
		return c.node("GoStmt", s).
			Set("call", c.expr(s.Call, ctxLoad))
	case *ast.DeferStmt:
		return c.node("DeferStmt", s).
			Set("call", c.expr(s.Call, ctxLoad))
	case *ast.ReturnStmt:
		return c.node("ReturnStmt", s).
			Set("results", c.exprs(s.Results, ctxLoad))
	case *ast.BranchStmt:
		return c.node("BranchStmt", s).
			Set("tok", tree.Str(s.Tok.String())).
			Set("label", c.ident(s.Label, ctxLoad))
	case *ast.IfStmt:
		return c.node("IfStmt", s).
			Set("init", c.stmt(s.Init)).
			Set("cond", c.expr(s.Cond, ctxLoad)).
			Set("body", c.block(s.Body)).
			Set("else", c.stmt(s.Else))
	case *ast.CaseClause:
		return c.node("CaseClause", s).
			Set("list", c.exprs(s.List, ctxLoad)).
			Set("body", c.stmts(s.Body))
	case *ast.SwitchStmt:
		return c.node("SwitchStmt", s).
			Set("init", c.stmt(s.Init)).
			Set("tag", c.expr(s.Tag, ctxLoad)).
			Set("body", c.block(s.Body))
	case *ast.TypeSwitchStmt:
		return c.node("TypeSwitchStmt", s).
			Set("init", c.stmt(s.Init)).
			Set("assign", c.stmt(s.Assign)).
			Set("body", c.block(s.Body))
	case *ast.CommClause:
		return c.node("CommClause", s).
			Set("comm", c.stmt(s.Comm)).
			Set("body", c.stmts(s.Body))
	case *ast.SelectStmt:
		return c.node("SelectStmt", s).
			Set("body", c.block(s.Body))
	case *ast.ForStmt:
		return c.node("ForStmt", s).
			Set("init", c.stmt(s.Init)).
			Set("cond", c.expr(s.Cond, ctxLoad)).
			Set("post", c.stmt(s.Post)).
			Set("body", c.block(s.Body))
	case *ast.RangeStmt:
		r := assignRole(s.Tok)
		tok := tree.Value(tree.None{})
		if s.Tok != token.ILLEGAL {
			tok = tree.Str(s.Tok.String())
		}
		return c.node("RangeStmt", s).
			Set("key", c.expr(s.Key, r)).
			Set("value", c.expr(s.Value, r)).
			Set("tok", tok).
			Set("x", c.expr(s.X, ctxLoad)).
			Set("body", c.block(s.Body))
	case *ast.BadStmt:
		return c.node("BadStmt", s)
	}
	return c.fail(s)
}
