package pretty

import (
	"bytes"
	"regexp"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"astpretty/internal/tree"
)

var pos = []string{"lineno", "col_offset"}

// pyKinds mirrors a handful of Python AST kinds, which is the shape the
// rendering rules were designed around.
var pyKinds = tree.NewCatalog("py",
	tree.KindSpec{Name: "Module", Fields: []string{"body"}},
	tree.KindSpec{Name: "Expr", Fields: []string{"value"}, Attrs: pos},
	tree.KindSpec{Name: "Assign", Fields: []string{"targets", "value"}, Attrs: pos},
	tree.KindSpec{Name: "If", Fields: []string{"test", "body", "orelse"}, Attrs: pos},
	tree.KindSpec{Name: "Pass", Attrs: pos},
	tree.KindSpec{Name: "Global", Fields: []string{"names"}, Attrs: pos},
	tree.KindSpec{Name: "ImportFrom", Fields: []string{"module", "names", "level"}, Attrs: pos},
	tree.KindSpec{Name: "alias", Fields: []string{"name", "asname"}},
	tree.KindSpec{Name: "Name", Fields: []string{"id", "ctx"}, Attrs: pos},
	tree.KindSpec{Name: "Num", Fields: []string{"n"}, Attrs: pos},
	tree.KindSpec{Name: "Str", Fields: []string{"s"}, Attrs: pos},
	tree.KindSpec{Name: "List", Fields: []string{"elts", "ctx"}, Attrs: pos},
	tree.KindSpec{Name: "Attribute", Fields: []string{"value", "attr", "ctx"}, Attrs: pos},
	tree.KindSpec{Name: "Call", Fields: []string{"func", "args", "keywords"}, Attrs: pos},
	tree.KindSpec{Name: "Load", Context: true},
	tree.KindSpec{Name: "Store", Context: true},
)

func ctx(kind string) *tree.Node { return pyKinds.New(kind) }

func name(id, c string, line, col int) *tree.Node {
	return pyKinds.New("Name").SetPos(line, col).Set("id", tree.Str(id)).Set("ctx", ctx(c))
}

func num(n int64, line, col int) *tree.Node {
	return pyKinds.New("Num").SetPos(line, col).Set("n", tree.Int(n))
}

// x = 5
func assignX5() *tree.Node {
	return pyKinds.New("Assign").SetPos(1, 0).
		Set("targets", tree.List{name("x", "Store", 1, 0)}).
		Set("value", num(5, 1, 4))
}

// [1, 2, 3]
func list123() *tree.Node {
	return pyKinds.New("List").SetPos(1, 0).
		Set("elts", tree.List{num(1, 1, 1), num(2, 1, 4), num(3, 1, 7)}).
		Set("ctx", ctx("Load"))
}

// f()
func moduleCallF() *tree.Node {
	call := pyKinds.New("Call").SetPos(1, 0).
		Set("func", name("f", "Load", 1, 0)).
		Set("args", tree.List{}).
		Set("keywords", tree.List{})
	expr := pyKinds.New("Expr").SetPos(1, 0).Set("value", call)
	return pyKinds.New("Module").Set("body", tree.List{expr})
}

func noPos() Options {
	return Options{Indent: DefaultIndent}
}

func mustFormat(t *testing.T, v tree.Value, opts Options) string {
	t.Helper()
	out, err := Format(v, opts)
	require.NoError(t, err)
	return out
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		in   tree.Value
		opts Options
		want string
	}{
		{
			name: "leaf",
			in:   name("x", "Load", 1, 0),
			opts: noPos(),
			want: "Name(id='x', ctx=Load())",
		},
		{
			name: "leaf with positions",
			in:   name("x", "Load", 1, 0),
			opts: DefaultOptions(),
			want: "Name(lineno=1, col_offset=0, id='x', ctx=Load())",
		},
		{
			name: "empty leaf with positions",
			in:   pyKinds.New("Pass").SetPos(3, 4),
			opts: DefaultOptions(),
			want: "Pass(lineno=3, col_offset=4)",
		},
		{
			name: "nested",
			in:   assignX5(),
			opts: noPos(),
			want: "Assign(\n" +
				"    targets=[Name(id='x', ctx=Store())],\n" +
				"    value=Num(n=5),\n" +
				")",
		},
		{
			name: "nested with positions",
			in:   assignX5(),
			opts: DefaultOptions(),
			want: "Assign(\n" +
				"    lineno=1,\n" +
				"    col_offset=0,\n" +
				"    targets=[Name(lineno=1, col_offset=0, id='x', ctx=Store())],\n" +
				"    value=Num(lineno=1, col_offset=4, n=5),\n" +
				")",
		},
		{
			name: "empty list field",
			in: pyKinds.New("If").SetPos(1, 0).
				Set("test", num(1, 1, 3)).
				Set("body", tree.List{pyKinds.New("Pass").SetPos(1, 6)}).
				Set("orelse", tree.List{}),
			opts: noPos(),
			want: "If(\n" +
				"    test=Num(n=1),\n" +
				"    body=[Pass()],\n" +
				"    orelse=[],\n" +
				")",
		},
		{
			name: "mixed sub nodes and primitives",
			in: pyKinds.New("ImportFrom").SetPos(1, 0).
				Set("module", tree.Str("y")).
				Set("names", tree.List{pyKinds.New("alias").Set("name", tree.Str("x")).Set("asname", tree.None{})}).
				Set("level", tree.Int(0)),
			opts: noPos(),
			want: "ImportFrom(\n" +
				"    module='y',\n" +
				"    names=[alias(name='x', asname=None)],\n" +
				"    level=0,\n" +
				")",
		},
		{
			name: "multiple elements",
			in:   list123(),
			opts: noPos(),
			want: "List(\n" +
				"    elts=[\n" +
				"        Num(n=1),\n" +
				"        Num(n=2),\n" +
				"        Num(n=3),\n" +
				"    ],\n" +
				"    ctx=Load(),\n" +
				")",
		},
		{
			name: "custom indent",
			in:   list123(),
			opts: Options{Indent: "\t"},
			want: "List(\n" +
				"\telts=[\n" +
				"\t\tNum(n=1),\n" +
				"\t\tNum(n=2),\n" +
				"\t\tNum(n=3),\n" +
				"\t],\n" +
				"\tctx=Load(),\n" +
				")",
		},
		{
			name: "singleton list of non-leaf",
			in:   moduleCallF(),
			opts: noPos(),
			want: "Module(\n" +
				"    body=[\n" +
				"        Expr(\n" +
				"            value=Call(\n" +
				"                func=Name(id='f', ctx=Load()),\n" +
				"                args=[],\n" +
				"                keywords=[],\n" +
				"            ),\n" +
				"        ),\n" +
				"    ],\n" +
				")",
		},
		{
			name: "list of primitives keeps node a leaf",
			in:   pyKinds.New("Global").SetPos(1, 0).Set("names", tree.List{tree.Str("x"), tree.Str("y")}),
			opts: noPos(),
			want: "Global(names=['x', 'y'])",
		},
		{
			name: "expand singletons",
			in:   assignX5(),
			opts: Options{Indent: DefaultIndent, ExpandSingletons: true},
			want: "Assign(\n" +
				"    targets=[\n" +
				"        Name(id='x', ctx=Store()),\n" +
				"    ],\n" +
				"    value=Num(n=5),\n" +
				")",
		},
		{
			name: "root none",
			in:   tree.None{},
			opts: DefaultOptions(),
			want: "None",
		},
		{
			name: "root raw text",
			in:   tree.Str("raw"),
			opts: DefaultOptions(),
			want: "'raw'",
		},
		{
			name: "root list",
			in:   tree.List{num(1, 1, 0), num(2, 2, 0)},
			opts: noPos(),
			want: "[\n" +
				"    Num(n=1),\n" +
				"    Num(n=2),\n" +
				"]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mustFormat(t, tt.in, tt.opts)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Format() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestIsLeaf(t *testing.T) {
	attr := pyKinds.New("Attribute").SetPos(1, 0).
		Set("value", name("a", "Load", 1, 0)).
		Set("attr", tree.Str("b")).
		Set("ctx", ctx("Load"))
	oneElem := pyKinds.New("List").SetPos(1, 0).
		Set("elts", tree.List{num(4, 1, 1)}).
		Set("ctx", ctx("Load"))
	emptyList := pyKinds.New("List").SetPos(1, 0).
		Set("elts", tree.List{}).
		Set("ctx", ctx("Load"))

	tests := []struct {
		name string
		node *tree.Node
		want bool
	}{
		{"name with context marker", name("x", "Load", 1, 0), true},
		{"string", pyKinds.New("Str").SetPos(1, 0).Set("s", tree.Str("y")), true},
		{"number", num(5, 1, 0), true},
		{"empty list", emptyList, true},
		{"attribute", attr, false},
		{"one element list", oneElem, false},
		{"call", moduleCallF(), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.node.IsLeaf()
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestFormatDeterministic(t *testing.T) {
	root := moduleCallF()
	first := mustFormat(t, root, DefaultOptions())
	for range 5 {
		require.Equal(t, first, mustFormat(t, root, DefaultOptions()))
	}
}

func TestPositionsDoNotChangeLeafClassification(t *testing.T) {
	root := assignX5()
	without := strings.Split(mustFormat(t, root, noPos()), "\n")
	with := strings.Split(mustFormat(t, root, DefaultOptions()), "\n")

	// Only the two attribute lines of Assign itself are added; the target
	// list stays inline because Name is still a leaf.
	require.Len(t, with, len(without)+2)
	require.Contains(t, with[3], "targets=[Name(")
}

func TestIndentOnlyChangesPrefixes(t *testing.T) {
	root := moduleCallF()
	spaces := strings.Split(mustFormat(t, root, Options{Indent: "    "}), "\n")
	tabs := strings.Split(mustFormat(t, root, Options{Indent: "\t"}), "\n")
	require.Len(t, tabs, len(spaces))
	for i := range spaces {
		require.Equal(t, strings.TrimLeft(spaces[i], " "), strings.TrimLeft(tabs[i], "\t"), "line %d", i)
	}
}

func TestStructuralBalance(t *testing.T) {
	root := pyKinds.New("Module").Set("body", tree.List{
		assignX5(),
		pyKinds.New("Expr").SetPos(2, 0).Set("value", list123()),
		moduleCallF(),
	})
	out := mustFormat(t, root, DefaultOptions())

	type open struct {
		indent string
		close  byte
	}
	var stack []open
	for i, line := range strings.Split(out, "\n") {
		trimmed := strings.TrimLeft(line, " ")
		indent := line[:len(line)-len(trimmed)]
		switch {
		case strings.HasSuffix(trimmed, "("):
			stack = append(stack, open{indent: indent, close: ')'})
		case strings.HasSuffix(trimmed, "["):
			stack = append(stack, open{indent: indent, close: ']'})
		case trimmed == ")" || trimmed == ")," || trimmed == "]" || trimmed == "],":
			require.NotEmpty(t, stack, "line %d closes nothing", i)
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			require.Equal(t, top.close, trimmed[0], "line %d", i)
			require.Equal(t, top.indent, indent, "line %d", i)
		}
	}
	require.Empty(t, stack)
}

func TestFormatMissingField(t *testing.T) {
	broken := pyKinds.New("Assign").Set("targets", tree.List{})
	_, err := Format(broken, noPos())
	require.ErrorIs(t, err, tree.ErrMissingField)
	require.Contains(t, err.Error(), "Assign.value")
}

var ansi = regexp.MustCompile("\x1b\\[[0-9;]*m")

func TestFormatColor(t *testing.T) {
	root := assignX5()
	plain := mustFormat(t, root, DefaultOptions())
	opts := DefaultOptions()
	opts.Color = true
	colored := mustFormat(t, root, opts)
	require.NotEqual(t, plain, colored)
	require.Equal(t, plain, ansi.ReplaceAllString(colored, ""))
}

func TestFprint(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Fprint(&buf, name("x", "Load", 1, 0), noPos()))
	require.Equal(t, "Name(id='x', ctx=Load())\n", buf.String())
}

func TestParseIndent(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", DefaultIndent},
		{"4", "    "},
		{"2", "  "},
		{"0", ""},
		{"tab", "\t"},
		{`\t`, "\t"},
		{"--", "--"},
	}
	for _, tt := range tests {
		got, err := ParseIndent(tt.in)
		require.NoError(t, err, tt.in)
		require.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseIndent("-1")
	require.Error(t, err)
}
