package graphql

import "astpretty/internal/tree"

var pos = []string{"lineno", "col_offset"}

func kind(name string, fields ...string) tree.KindSpec {
	return tree.KindSpec{Name: name, Fields: fields, Attrs: pos}
}

// Kinds is the catalog of GraphQL document node kinds.
var Kinds = tree.NewCatalog("graphql",
	// executable documents
	tree.KindSpec{Name: "QueryDocument", Fields: []string{"operations", "fragments"}},
	kind("OperationDefinition", "operation", "name", "variable_definitions", "directives", "selection_set"),
	kind("VariableDefinition", "variable", "type", "default_value", "directives"),
	kind("FragmentDefinition", "name", "variable_definitions", "type_condition", "directives", "selection_set"),
	kind("Field", "alias", "name", "arguments", "directives", "selection_set"),
	kind("FragmentSpread", "name", "directives"),
	kind("InlineFragment", "type_condition", "directives", "selection_set"),
	kind("Argument", "name", "value"),
	kind("Directive", "name", "arguments"),

	// types
	kind("NamedType", "name", "non_null"),
	kind("ListType", "elem", "non_null"),

	// values
	kind("Variable", "name"),
	kind("IntValue", "value"),
	kind("FloatValue", "value"),
	kind("StringValue", "value"),
	kind("BlockValue", "value"),
	kind("BooleanValue", "value"),
	kind("NullValue"),
	kind("EnumValue", "value"),
	kind("ListValue", "values"),
	kind("ObjectValue", "fields"),
	kind("ObjectField", "name", "value"),

	// schema documents
	tree.KindSpec{Name: "SchemaDocument", Fields: []string{"schema", "schema_extensions", "directives", "definitions", "extensions"}},
	kind("SchemaDefinition", "description", "directives", "operation_types"),
	kind("OperationTypeDefinition", "operation", "type"),
	kind("Definition", "kind", "description", "name", "directives", "interfaces", "fields", "types", "enum_values"),
	kind("FieldDefinition", "description", "name", "arguments", "default_value", "type", "directives"),
	kind("ArgumentDefinition", "description", "name", "default_value", "type", "directives"),
	kind("EnumValueDefinition", "description", "name", "directives"),
	kind("DirectiveDefinition", "description", "name", "arguments", "locations", "is_repeatable"),

	// operation types tag how a selection set is executed
	tree.KindSpec{Name: "Query", Context: true},
	tree.KindSpec{Name: "Mutation", Context: true},
	tree.KindSpec{Name: "Subscription", Context: true},
)
