package graphql

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"astpretty/internal/pretty"
	"astpretty/internal/source"
	"astpretty/internal/tree"
)

var noPos = pretty.Options{Indent: pretty.DefaultIndent}

func parse(t *testing.T, name, src string) tree.Value {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual(name, []byte(src))
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

func TestAnonymousQuery(t *testing.T) {
	want := `QueryDocument(
    operations=[
        OperationDefinition(
            operation=Query(),
            name=None,
            variable_definitions=[],
            directives=[],
            selection_set=[Field(alias=None, name='a', arguments=[], directives=[], selection_set=[])],
        ),
    ],
    fragments=[],
)`
	assert.Equal(t, want, format(t, parse(t, "q.graphql", "query { a }"), noPos))
}

func TestPositions(t *testing.T) {
	out := format(t, parse(t, "q.graphql", "query { a }"), pretty.DefaultOptions())
	assert.Contains(t, out, "OperationDefinition(\n            lineno=1,\n            col_offset=0,\n")
	assert.Contains(t, out, "[Field(lineno=1, col_offset=8, alias=None, name='a',")
}

func TestAliasEqualToName(t *testing.T) {
	src := "# café\nquery {\n  a: a\n  b , # note\n  : c\n  d\n  e\n}"
	out := format(t, parse(t, "q.graphql", src), noPos)
	assert.Contains(t, out, "Field(alias='a', name='a',")
	assert.Contains(t, out, "Field(alias='b', name='c',")
	assert.Contains(t, out, "Field(alias=None, name='d',")
	assert.Contains(t, out, "Field(alias=None, name='e',")
}

func TestMutationWithArguments(t *testing.T) {
	src := `mutation Del($id: ID!, $n: Int = 3) {
  gone: delete(id: $id, tags: ["x"], opts: {force: true}) @skip(if: false) {
    ...Info
    ... on User { name }
  }
}

fragment Info on Result { ok }
`
	out := format(t, parse(t, "m.gql", src), noPos)
	for _, want := range []string{
		"operation=Mutation(),",
		"name='Del',",
		"type=NamedType(name='ID', non_null=True),",
		"default_value=IntValue(value=3),",
		"alias='gone',",
		"name='delete',",
		"value=Variable(name='id'),",
		"values=[StringValue(value='x')],",
		"name='force',",
		"value=BooleanValue(value=True),",
		"name='skip',",
		"value=BooleanValue(value=False),",
		"FragmentSpread(name='Info', directives=[]),",
		"type_condition='User',",
		"FragmentDefinition(",
		"type_condition='Result',",
	} {
		assert.Contains(t, out, want)
	}
}

func TestSchemaDocument(t *testing.T) {
	src := `"""A user."""
type User implements Node {
  name: String!
  tags(first: Int = 10): [String]
}

enum Role { ADMIN GUEST }

schema { query: User }
`
	out := format(t, parse(t, "s.graphqls", src), noPos)
	for _, want := range []string{
		"SchemaDocument(",
		"kind='OBJECT',",
		"description='A user.',",
		"interfaces=[\n                'Node',\n            ],",
		"type=NamedType(name='String', non_null=True),",
		"elem=NamedType(name='String', non_null=False),",
		"default_value=IntValue(value=10),",
		"kind='ENUM',",
		"EnumValueDefinition(description=None, name='ADMIN', directives=[]),",
		"operation_types=[OperationTypeDefinition(operation=Query(), type='User')],",
	} {
		assert.Contains(t, out, want)
	}
}

func TestOperationMarkersAreContextKinds(t *testing.T) {
	for _, name := range []string{"Query", "Mutation", "Subscription"} {
		spec := Kinds.MustLookup(name)
		assert.True(t, spec.Context, name)
	}
	op := Kinds.New("OperationTypeDefinition").SetPos(1, 0).
		Set("operation", Kinds.New("Subscription")).
		Set("type", tree.Str("S"))
	leaf, err := op.IsLeaf()
	require.NoError(t, err)
	assert.True(t, leaf)
}

func TestParseErrorCarriesPath(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("bad.graphql", []byte("query {"))
	_, err := New().Parse(context.Background(), fs.Get(id))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.graphql")
}
