package query

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"astpretty/internal/tree"
)

var kinds = tree.NewCatalog("test",
	tree.KindSpec{Name: "Module", Fields: []string{"body"}},
	tree.KindSpec{Name: "Assign", Fields: []string{"targets", "value"}, Attrs: []string{"lineno", "col_offset"}},
	tree.KindSpec{Name: "Name", Fields: []string{"id", "ctx"}, Attrs: []string{"lineno", "col_offset"}},
	tree.KindSpec{Name: "Num", Fields: []string{"n"}, Attrs: []string{"lineno", "col_offset"}},
	tree.KindSpec{Name: "Load", Context: true},
	tree.KindSpec{Name: "Store", Context: true},
)

func name(id string, ctx string, line, col int) *tree.Node {
	return kinds.New("Name").SetPos(line, col).Set("id", tree.Str(id)).Set("ctx", kinds.New(ctx))
}

// x = 5
// y = x
func sample() tree.Value {
	return kinds.New("Module").Set("body", tree.List{
		kinds.New("Assign").SetPos(1, 0).
			Set("targets", tree.List{name("x", "Store", 1, 0)}).
			Set("value", kinds.New("Num").SetPos(1, 4).Set("n", tree.Int(5))),
		kinds.New("Assign").SetPos(2, 0).
			Set("targets", tree.List{name("y", "Store", 2, 0)}).
			Set("value", name("x", "Load", 2, 4)),
	})
}

func kindsOf(vals []tree.Value) []string {
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		n, _ := tree.AsNode(v)
		out = append(out, n.Kind())
	}
	return out
}

func TestSelect(t *testing.T) {
	tests := []struct {
		expr string
		want []string
	}{
		{`kind == "Name"`, []string{"Name", "Name", "Name"}},
		{`kind == "Name" && context == "Load"`, []string{"Name"}},
		{`kind == "Assign" && lineno == 2`, []string{"Assign"}},
		{`fields.n == 5`, []string{"Num"}},
		{`kind == "Name" && col_offset > 0`, []string{"Name"}},
		{`fields.value == "Num"`, []string{"Assign"}},
		{`kind == "Module" || kind == "Name"`, []string{"Module"}},
		{`kind == "Missing"`, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			prog, err := Compile(tt.expr)
			require.NoError(t, err)
			got, err := Select(sample(), prog)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, kindsOf(got)); diff != "" {
				t.Errorf("Select(%s) mismatch (-want +got):\n%s", tt.expr, diff)
			}
		})
	}
}

func TestSelectDoesNotDescendIntoMatches(t *testing.T) {
	prog, err := Compile(`kind == "Assign" || kind == "Name"`)
	require.NoError(t, err)
	got, err := Select(sample(), prog)
	require.NoError(t, err)
	assert.Equal(t, []string{"Assign", "Assign"}, kindsOf(got))
}

func TestCompileErrors(t *testing.T) {
	_, err := Compile(`kind ==`)
	assert.Error(t, err)

	_, err = Compile(`lineno + 1`)
	assert.Error(t, err, "non-boolean expressions are rejected")

	prog, err := Compile(`kind == "Name"`)
	require.NoError(t, err)
	assert.Equal(t, `kind == "Name"`, prog.String())
}

func TestSelectMissingField(t *testing.T) {
	prog, err := Compile(`kind == "Name"`)
	require.NoError(t, err)
	_, err = Select(kinds.New("Num"), prog)
	assert.ErrorIs(t, err, tree.ErrMissingField)
}
