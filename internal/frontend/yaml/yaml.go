// Package yaml converts YAML streams into tree values using gopkg.in/yaml.v3.
//
// Scalars and collections carry a style marker (Plain, DoubleQuoted, Flow,
// ...) that records how the value was written without making it structural.
package yaml

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	yamlv3 "gopkg.in/yaml.v3"

	"astpretty/internal/source"
	"astpretty/internal/tree"
)

var pos = []string{"lineno", "col_offset"}

func kind(name string, fields ...string) tree.KindSpec {
	return tree.KindSpec{Name: name, Fields: fields, Attrs: pos}
}

func marker(name string) tree.KindSpec {
	return tree.KindSpec{Name: name, Context: true}
}

// Kinds is the catalog of YAML node kinds.
var Kinds = tree.NewCatalog("yaml",
	tree.KindSpec{Name: "Stream", Fields: []string{"documents"}},
	kind("Document", "content"),
	kind("Mapping", "tag", "anchor", "style", "pairs"),
	kind("Pair", "key", "value"),
	kind("Sequence", "tag", "anchor", "style", "items"),
	kind("Scalar", "tag", "anchor", "style", "value"),
	kind("Alias", "name"),

	marker("Plain"),
	marker("DoubleQuoted"),
	marker("SingleQuoted"),
	marker("Literal"),
	marker("Folded"),
	marker("Block"),
	marker("Flow"),
)

// Frontend parses YAML streams.
type Frontend struct{}

// New returns the YAML front-end.
func New() *Frontend { return &Frontend{} }

func (*Frontend) Name() string           { return "yaml" }
func (*Frontend) Extensions() []string   { return []string{".yaml", ".yml"} }
func (*Frontend) Catalog() *tree.Catalog { return Kinds }

// Parse decodes every document in file.
func (*Frontend) Parse(ctx context.Context, file *source.File) (tree.Value, error) {
	dec := yamlv3.NewDecoder(bytes.NewReader(file.Content))
	docs := tree.List{}
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var doc yamlv3.Node
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", file.Path, err)
		}
		docs = append(docs, convert(&doc))
	}
	return Kinds.New("Stream").Set("documents", docs), nil
}

func newNode(kind string, n *yamlv3.Node) *tree.Node {
	return Kinds.New(kind).SetPos(n.Line, n.Column-1)
}

func optStr(s string) tree.Value {
	if s == "" {
		return tree.None{}
	}
	return tree.Str(s)
}

func convert(n *yamlv3.Node) tree.Value {
	if n == nil {
		return tree.None{}
	}
	switch n.Kind {
	case yamlv3.DocumentNode:
		var content tree.Value = tree.None{}
		if len(n.Content) > 0 {
			content = convert(n.Content[0])
		}
		return newNode("Document", n).Set("content", content)
	case yamlv3.MappingNode:
		pairs := make(tree.List, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			key, val := n.Content[i], n.Content[i+1]
			pairs = append(pairs, newNode("Pair", key).
				Set("key", convert(key)).
				Set("value", convert(val)))
		}
		return newNode("Mapping", n).
			Set("tag", tree.Str(n.ShortTag())).
			Set("anchor", optStr(n.Anchor)).
			Set("style", collectionStyle(n.Style)).
			Set("pairs", pairs)
	case yamlv3.SequenceNode:
		items := make(tree.List, 0, len(n.Content))
		for _, item := range n.Content {
			items = append(items, convert(item))
		}
		return newNode("Sequence", n).
			Set("tag", tree.Str(n.ShortTag())).
			Set("anchor", optStr(n.Anchor)).
			Set("style", collectionStyle(n.Style)).
			Set("items", items)
	case yamlv3.AliasNode:
		return newNode("Alias", n).Set("name", tree.Str(n.Value))
	default:
		return newNode("Scalar", n).
			Set("tag", tree.Str(n.ShortTag())).
			Set("anchor", optStr(n.Anchor)).
			Set("style", scalarStyle(n.Style)).
			Set("value", tree.Str(n.Value))
	}
}

func collectionStyle(s yamlv3.Style) tree.Value {
	if s&yamlv3.FlowStyle != 0 {
		return Kinds.New("Flow")
	}
	return Kinds.New("Block")
}

func scalarStyle(s yamlv3.Style) tree.Value {
	switch {
	case s&yamlv3.DoubleQuotedStyle != 0:
		return Kinds.New("DoubleQuoted")
	case s&yamlv3.SingleQuotedStyle != 0:
		return Kinds.New("SingleQuoted")
	case s&yamlv3.LiteralStyle != 0:
		return Kinds.New("Literal")
	case s&yamlv3.FoldedStyle != 0:
		return Kinds.New("Folded")
	default:
		return Kinds.New("Plain")
	}
}
