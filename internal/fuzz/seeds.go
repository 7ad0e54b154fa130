package fuzztests

import (
	"testing"
)

const maxFuzzInput = 16 << 10

var seeds = map[string][]string{
	"go": {
		"package p\n",
		"package p\n\nfunc f(a, b int) (int, error) {\n\tx := a + b\n\treturn x, nil\n}\n",
		"package p\n\ntype T[K comparable, V any] struct {\n\tm map[K]V `json:\"m\"`\n}\n",
		"package p\n\nfunc g() {\n\tfor i, v := range xs {\n\t\tselect {\n\t\tcase ch <- v:\n\t\tdefault:\n\t\t}\n\t\t_ = i\n\t}\n}\n",
		"package p\n\nvar (\n\ta = []int{1, 2, 3}\n\tb = func() {}\n)\n",
	},
	"graphql": {
		"query { a }",
		"query Q($id: ID! = 1) @dir(x: [1, 2.5]) {\n  user(id: $id) { ...F name @include(if: true) }\n}\nfragment F on User { id }\n",
		"mutation { like(input: {id: \"x\", on: true, v: null, e: RED}) { ok } }",
		"subscription S { events { ... on Click { x y } } }",
	},
	"yaml": {
		"a: 1\n",
		"- x\n- 'y'\n- \"z\"\n- {k: v}\n- [1, 2]\n",
		"base: &b {x: 1}\nuse: *b\ntext: |\n  line\nfolded: >\n  more\n",
		"---\na: 1\n---\n- b\n",
	},
}

func addSeeds(f *testing.F) {
	for name, inputs := range seeds {
		for _, input := range inputs {
			f.Add(name, []byte(input))
		}
	}
}

func clamp(input []byte) []byte {
	if len(input) > maxFuzzInput {
		input = input[:maxFuzzInput]
	}
	return append([]byte(nil), input...)
}
