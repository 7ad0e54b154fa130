package yaml

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"astpretty/internal/pretty"
	"astpretty/internal/source"
	"astpretty/internal/tree"
)

func parse(t *testing.T, src string) tree.Value {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("doc.yaml", []byte(src))
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

func TestEmptyStream(t *testing.T) {
	assert.Equal(t, "Stream(documents=[])", format(t, parse(t, ""), pretty.DefaultOptions()))
}

func TestScalarDocument(t *testing.T) {
	want := `Stream(
    documents=[
        Document(
            content=Scalar(tag='!!int', anchor=None, style=Plain(), value='42'),
        ),
    ],
)`
	assert.Equal(t, want, format(t, parse(t, "42\n"), pretty.Options{Indent: pretty.DefaultIndent}))
}

func TestMappingStyles(t *testing.T) {
	out := format(t, parse(t, "a: 1\nb: [x, 'y', \"z\"]\nc: |\n  text\n"), pretty.Options{Indent: "  "})
	for _, want := range []string{
		"key=Scalar(tag='!!str', anchor=None, style=Plain(), value='a'),",
		"value=Scalar(tag='!!int', anchor=None, style=Plain(), value='1'),",
		"style=Block(),",
		"style=Flow(),",
		"Scalar(tag='!!str', anchor=None, style=SingleQuoted(), value='y'),",
		"Scalar(tag='!!str', anchor=None, style=DoubleQuoted(), value='z'),",
		"value=Scalar(tag='!!str', anchor=None, style=Literal(), value='text\\n'),",
	} {
		assert.Contains(t, out, want)
	}
}

func TestAnchorsAndAliases(t *testing.T) {
	out := format(t, parse(t, "base: &b {x: 1}\nother: *b\n"), pretty.DefaultOptions())
	assert.Contains(t, out, "anchor='b',")
	assert.Contains(t, out, "value=Alias(lineno=2, col_offset=7, name='b'),")
}

func TestMultipleDocuments(t *testing.T) {
	v := parse(t, "a\n---\nb\n")
	root, ok := tree.AsNode(v)
	require.True(t, ok)
	docs, err := root.Get("documents")
	require.NoError(t, err)
	assert.Len(t, docs, 2)
}

func TestParseErrorCarriesPath(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("bad.yaml", []byte("a: [1, 2\n"))
	_, err := New().Parse(context.Background(), fs.Get(id))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.yaml")
}
