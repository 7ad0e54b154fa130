package golang

import "astpretty/internal/tree"

var pos = []string{"lineno", "col_offset", "end_lineno", "end_col_offset"}

func kind(name string, fields ...string) tree.KindSpec {
	return tree.KindSpec{Name: name, Fields: fields, Attrs: pos}
}

func marker(name string) tree.KindSpec {
	return tree.KindSpec{Name: name, Context: true}
}

// Kinds is the catalog of Go syntax node kinds. Names follow go/ast.
var Kinds = tree.NewCatalog("go",
	kind("File", "name", "decls"),

	// declarations
	kind("GenDecl", "tok", "specs"),
	kind("FuncDecl", "recv", "name", "type", "body"),
	kind("ImportSpec", "name", "path"),
	kind("ValueSpec", "names", "type", "values"),
	kind("TypeSpec", "name", "type_params", "assign", "type"),
	kind("BadDecl"),

	// expressions
	kind("Ident", "name", "ctx"),
	kind("BasicLit", "kind", "value"),
	kind("CompositeLit", "type", "elts"),
	kind("FuncLit", "type", "body"),
	kind("ParenExpr", "x"),
	kind("SelectorExpr", "x", "sel"),
	kind("IndexExpr", "x", "index"),
	kind("IndexListExpr", "x", "indices"),
	kind("SliceExpr", "x", "low", "high", "max", "slice3"),
	kind("TypeAssertExpr", "x", "type"),
	kind("CallExpr", "fun", "args", "ellipsis"),
	kind("StarExpr", "x"),
	kind("UnaryExpr", "op", "x"),
	kind("BinaryExpr", "x", "op", "y"),
	kind("KeyValueExpr", "key", "value"),
	kind("Ellipsis", "elt"),
	kind("BadExpr"),

	// types
	kind("ArrayType", "len", "elt"),
	kind("StructType", "fields"),
	kind("FuncType", "type_params", "params", "results"),
	kind("InterfaceType", "methods"),
	kind("MapType", "key", "value"),
	kind("ChanType", "dir", "value"),
	kind("Field", "names", "type", "tag"),

	// statements
	kind("DeclStmt", "decl"),
	kind("EmptyStmt", "implicit"),
	kind("LabeledStmt", "label", "stmt"),
	kind("ExprStmt", "x"),
	kind("SendStmt", "chan", "value"),
	kind("IncDecStmt", "x", "tok"),
	kind("AssignStmt", "lhs", "tok", "rhs"),
	kind("GoStmt", "call"),
	kind("DeferStmt", "call"),
	kind("ReturnStmt", "results"),
	kind("BranchStmt", "tok", "label"),
	kind("BlockStmt", "list"),
	kind("IfStmt", "init", "cond", "body", "else"),
	kind("CaseClause", "list", "body"),
	kind("SwitchStmt", "init", "tag", "body"),
	kind("TypeSwitchStmt", "init", "assign", "body"),
	kind("CommClause", "comm", "body"),
	kind("SelectStmt", "body"),
	kind("ForStmt", "init", "cond", "post", "body"),
	kind("RangeStmt", "key", "value", "tok", "x", "body"),
	kind("BadStmt"),

	// identifier roles
	marker("Load"),
	marker("Store"),
	marker("Def"),
)
