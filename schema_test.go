package jsonschema2ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaTypeUnmarshalSingleAndArray(t *testing.T) {
	var single Schema
	require.NoError(t, single.UnmarshalJSON([]byte(`{"type":"string"}`)))
	assert.Equal(t, SchemaType{"string"}, single.Type)

	var multi Schema
	require.NoError(t, multi.UnmarshalJSON([]byte(`{"type":["string","null"]}`)))
	assert.Equal(t, SchemaType{"string", "null"}, multi.Type)
}

func TestSchemaUnmarshalBooleanShorthand(t *testing.T) {
	var truthy Schema
	require.NoError(t, truthy.UnmarshalJSON([]byte(`true`)))
	assert.True(t, truthy.IsBooleanTrue())
	assert.False(t, truthy.IsBooleanFalse())

	var falsy Schema
	require.NoError(t, falsy.UnmarshalJSON([]byte(`false`)))
	assert.True(t, falsy.IsBooleanFalse())
}

func TestSchemaUnmarshalItemsPolymorphism(t *testing.T) {
	var homogeneous Schema
	require.NoError(t, homogeneous.UnmarshalJSON([]byte(`{"items":{"type":"string"}}`)))
	require.NotNil(t, homogeneous.Items)
	assert.Nil(t, homogeneous.ItemsList)
	assert.Equal(t, SchemaType{"string"}, homogeneous.Items.Type)

	var tuple Schema
	require.NoError(t, tuple.UnmarshalJSON([]byte(`{"items":[{"type":"string"},{"type":"number"}]}`)))
	assert.Nil(t, tuple.Items)
	require.Len(t, tuple.ItemsList, 2)
	assert.Equal(t, SchemaType{"number"}, tuple.ItemsList[1].Type)
}

func TestPropertiesPreserveDocumentOrder(t *testing.T) {
	var schema Schema
	raw := `{"properties":{"zeta":{"type":"string"},"alpha":{"type":"number"},"mid":{"type":"boolean"}}}`
	require.NoError(t, schema.UnmarshalJSON([]byte(raw)))

	require.Len(t, schema.Properties, 3)
	assert.Equal(t, "zeta", schema.Properties[0].Key)
	assert.Equal(t, "alpha", schema.Properties[1].Key)
	assert.Equal(t, "mid", schema.Properties[2].Key)
}

func TestDefinitionsMergesDefsAndLegacyDefinitions(t *testing.T) {
	var schema Schema
	raw := `{"$defs":{"a":{"type":"string"}},"definitions":{"a":{"type":"number"},"b":{"type":"boolean"}}}`
	require.NoError(t, schema.UnmarshalJSON([]byte(raw)))

	require.Len(t, schema.Definitions, 2)
	aSchema, ok := schema.Definitions.Get("a")
	require.True(t, ok)
	assert.Equal(t, SchemaType{"string"}, aSchema.Type, "$defs should win over definitions for a duplicate key")

	bSchema, ok := schema.Definitions.Get("b")
	require.True(t, ok)
	assert.Equal(t, SchemaType{"boolean"}, bSchema.Type)
}

func TestUnknownKeywordsCollectIntoExtra(t *testing.T) {
	var schema Schema
	require.NoError(t, schema.UnmarshalJSON([]byte(`{"type":"string","format":"date-time","minLength":3}`)))

	assert.Equal(t, "date-time", schema.Extra["format"])
	assert.EqualValues(t, 3, schema.Extra["minLength"])
	_, hasType := schema.Extra["type"]
	assert.False(t, hasType, "modeled keywords must not leak into Extra")
}

func TestLinkAssignsParentsAndTerminatesOnCycles(t *testing.T) {
	root := &Schema{ID: "root"}
	child := &Schema{ID: "child"}
	root.Properties = PropertyList{{Key: "self", Schema: child}}
	child.Properties = PropertyList{{Key: "loop", Schema: root}}

	Link(root)

	assert.Same(t, root, child.Parent)
	assert.Same(t, child, root.Properties[0].Schema.Properties[0].Schema.Parent)
	assert.Same(t, root, child.RootSchema())
}
