package fuzztests

import (
	"context"
	"strings"
	"testing"
	"time"

	"astpretty/internal/frontend"
	"astpretty/internal/pretty"
	"astpretty/internal/source"
	"astpretty/internal/tree"
)

// formatTimeout bounds parsing plus formatting of one input. Exceeding it
// points at a loop rather than a slow machine.
const formatTimeout = 5 * time.Second

var registry = frontend.Builtin()

func lookup(t *testing.T, name string) frontend.Frontend {
	t.Helper()
	f, err := registry.Lookup(name)
	if err != nil {
		t.Skip("no front-end named", name)
	}
	return f
}

func parse(f frontend.Frontend, input []byte) (tree.Value, bool) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("fuzz"+f.Extensions()[0], input))
	v, err := f.Parse(context.Background(), file)
	if err != nil {
		return nil, false
	}
	return v, true
}

// FuzzFormatAcceptedInput checks that every tree a front-end builds is well
// formed and renders the same way twice.
func FuzzFormatAcceptedInput(f *testing.F) {
	addSeeds(f)
	f.Fuzz(func(t *testing.T, name string, input []byte) {
		v, ok := parse(lookup(t, name), clamp(input))
		if !ok {
			return
		}
		opts := pretty.DefaultOptions()
		first, err := pretty.Format(v, opts)
		if err != nil {
			t.Fatalf("%s tree is malformed: %v", name, err)
		}
		second, err := pretty.Format(v, opts)
		if err != nil || first != second {
			t.Fatalf("%s: formatting is not deterministic", name)
		}

		// positions only add attribute text, never lines to leaves
		opts.ShowPositions = false
		bare, err := pretty.Format(v, opts)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if strings.Count(bare, "\n") > strings.Count(first, "\n") {
			t.Fatalf("%s: hiding positions added lines", name)
		}
	})
}

// FuzzNoHang runs parse and format under a deadline.
func FuzzNoHang(f *testing.F) {
	addSeeds(f)
	f.Add("go", []byte("package p\nfunc f() { { { { } } } }"))
	f.Add("graphql", []byte("{ a { b { c { d } } } }"))
	f.Add("yaml", []byte("[[[[[]]]]]"))

	f.Fuzz(func(t *testing.T, name string, input []byte) {
		fe := lookup(t, name)
		input = clamp(input)
		done := make(chan struct{})
		go func() {
			defer close(done)
			if v, ok := parse(fe, input); ok {
				_, _ = pretty.Format(v, pretty.DefaultOptions())
			}
		}()
		select {
		case <-done:
		case <-time.After(formatTimeout):
			t.Fatalf("%s: parse+format exceeded %v on %d bytes", name, formatTimeout, len(input))
		}
	})
}
