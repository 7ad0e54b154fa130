package graphql

import (
	"github.com/vektah/gqlparser/v2/ast"

	"astpretty/internal/tree"
)

func schemaDocument(doc *ast.SchemaDocument) *tree.Node {
	dirs := make(tree.List, 0, len(doc.Directives))
	for _, d := range doc.Directives {
		locs := make(tree.List, 0, len(d.Locations))
		for _, l := range d.Locations {
			locs = append(locs, tree.Str(string(l)))
		}
		dirs = append(dirs, node("DirectiveDefinition", d.Position).
			Set("description", optStr(d.Description)).
			Set("name", tree.Str(d.Name)).
			Set("arguments", argumentDefinitions(d.Arguments)).
			Set("locations", locs).
			Set("is_repeatable", tree.Bool(d.IsRepeatable)))
	}
	return Kinds.New("SchemaDocument").
		Set("schema", schemaDefinitions(doc.Schema)).
		Set("schema_extensions", schemaDefinitions(doc.SchemaExtension)).
		Set("directives", dirs).
		Set("definitions", definitions(doc.Definitions)).
		Set("extensions", definitions(doc.Extensions))
}

func schemaDefinitions(defs ast.SchemaDefinitionList) tree.List {
	out := make(tree.List, 0, len(defs))
	for _, d := range defs {
		ops := make(tree.List, 0, len(d.OperationTypes))
		for _, op := range d.OperationTypes {
			ops = append(ops, node("OperationTypeDefinition", op.Position).
				Set("operation", operation(op.Operation)).
				Set("type", tree.Str(op.Type)))
		}
		out = append(out, node("SchemaDefinition", d.Position).
			Set("description", optStr(d.Description)).
			Set("directives", directives(d.Directives)).
			Set("operation_types", ops))
	}
	return out
}

func definitions(defs ast.DefinitionList) tree.List {
	out := make(tree.List, 0, len(defs))
	for _, d := range defs {
		fields := make(tree.List, 0, len(d.Fields))
		for _, f := range d.Fields {
			fields = append(fields, node("FieldDefinition", f.Position).
				Set("description", optStr(f.Description)).
				Set("name", tree.Str(f.Name)).
				Set("arguments", argumentDefinitions(f.Arguments)).
				Set("default_value", value(f.DefaultValue)).
				Set("type", typeRef(f.Type)).
				Set("directives", directives(f.Directives)))
		}
		enums := make(tree.List, 0, len(d.EnumValues))
		for _, e := range d.EnumValues {
			enums = append(enums, node("EnumValueDefinition", e.Position).
				Set("description", optStr(e.Description)).
				Set("name", tree.Str(e.Name)).
				Set("directives", directives(e.Directives)))
		}
		out = append(out, node("Definition", d.Position).
			Set("kind", tree.Str(string(d.Kind))).
			Set("description", optStr(d.Description)).
			Set("name", tree.Str(d.Name)).
			Set("directives", directives(d.Directives)).
			Set("interfaces", strs(d.Interfaces)).
			Set("fields", fields).
			Set("types", strs(d.Types)).
			Set("enum_values", enums))
	}
	return out
}

func argumentDefinitions(args ast.ArgumentDefinitionList) tree.List {
	out := make(tree.List, 0, len(args))
	for _, a := range args {
		out = append(out, node("ArgumentDefinition", a.Position).
			Set("description", optStr(a.Description)).
			Set("name", tree.Str(a.Name)).
			Set("default_value", value(a.DefaultValue)).
			Set("type", typeRef(a.Type)).
			Set("directives", directives(a.Directives)))
	}
	return out
}
