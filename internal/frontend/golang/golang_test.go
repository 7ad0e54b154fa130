package golang

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"astpretty/internal/pretty"
	"astpretty/internal/source"
	"astpretty/internal/testkit"
	"astpretty/internal/tree"
)

var noPos = pretty.Options{Indent: pretty.DefaultIndent}

func parse(t *testing.T, src string) tree.Value {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("main.go", []byte(src))
	v, err := New().Parse(context.Background(), fs.Get(id))
	require.NoError(t, err)
	return v
}

func format(t *testing.T, v tree.Value, opts pretty.Options) string {
	t.Helper()
	out, err := pretty.Format(v, opts)
	require.NoError(t, err)
	return out
}

func TestIdentRoles(t *testing.T) {
	src := `package p

func f(n int) {
	x := 5
	x = 6
	x++
	a.b = x
	for k, v := range m {
		_ = k + v
	}
}
`
	out := format(t, parse(t, src), noPos)

	for _, want := range []string{
		"name=Ident(name='p', ctx=Def()),",
		"lhs=[Ident(name='x', ctx=Def())],",
		"rhs=[BasicLit(kind='INT', value='5')],",
		"lhs=[Ident(name='x', ctx=Store())],",
		"x=Ident(name='x', ctx=Store()),",
		"tok='++',",
		"x=Ident(name='a', ctx=Load()),",
		"sel=Ident(name='b', ctx=Store()),",
		"key=Ident(name='k', ctx=Def()),",
		"value=Ident(name='v', ctx=Def()),",
		"x=Ident(name='m', ctx=Load()),",
		"names=[Ident(name='n', ctx=Def())],",
		"type=Ident(name='int', ctx=Load()),",
	} {
		assert.Contains(t, out, want)
	}
}

func TestExprPositions(t *testing.T) {
	v, err := ParseExpr("a + b")
	require.NoError(t, err)

	want := `BinaryExpr(
    lineno=1,
    col_offset=0,
    end_lineno=1,
    end_col_offset=5,
    x=Ident(lineno=1, col_offset=0, end_lineno=1, end_col_offset=1, name='a', ctx=Load()),
    op='+',
    y=Ident(lineno=1, col_offset=4, end_lineno=1, end_col_offset=5, name='b', ctx=Load()),
)`
	assert.Equal(t, want, format(t, v, pretty.DefaultOptions()))
}

func TestLeafExpr(t *testing.T) {
	v, err := ParseExpr(`"hi"`)
	require.NoError(t, err)
	assert.Equal(t, `BasicLit(kind='STRING', value='"hi"')`, format(t, v, noPos))
}

func TestEmptyFunc(t *testing.T) {
	out := format(t, parse(t, "package p\n\nfunc f() {}\n"), noPos)
	assert.Contains(t, out, "recv=None,")
	assert.Contains(t, out, "type=FuncType(type_params=[], params=[], results=[]),")
	assert.Contains(t, out, "body=BlockStmt(list=[]),")
}

func TestImports(t *testing.T) {
	out := format(t, parse(t, "package p\n\nimport (\n\t\"fmt\"\n\tstr \"strings\"\n)\n"), noPos)
	assert.Contains(t, out, "tok='import',")
	assert.Contains(t, out, "name=None,")
	assert.Contains(t, out, `path=BasicLit(kind='STRING', value='"fmt"'),`)
	assert.Contains(t, out, "name=Ident(name='str', ctx=Def()),")
}

func TestGoldenDecls(t *testing.T) {
	fs := source.NewFileSet()
	id, err := fs.Load(filepath.Join("testdata", "decls.go"))
	require.NoError(t, err)
	v, err := New().Parse(context.Background(), fs.Get(id))
	require.NoError(t, err)
	testkit.Golden(t, filepath.Join("testdata", "decls.golden"), format(t, v, noPos)+"\n")
}

func TestParseErrorCarriesPath(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("broken.go", []byte("package p\nfunc {"))
	_, err := New().Parse(context.Background(), fs.Get(id))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.go")
}

func TestParseCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	fs := source.NewFileSet()
	id := fs.AddVirtual("main.go", []byte("package p\n"))
	_, err := New().Parse(ctx, fs.Get(id))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMarkersAreContextKinds(t *testing.T) {
	for _, name := range []string{"Load", "Store", "Def"} {
		spec, ok := Kinds.Lookup(name)
		require.True(t, ok, name)
		assert.True(t, spec.Context, name)
		assert.False(t, spec.HasAttrs(), name)
	}
}
