package jsonschema2ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildInterfaceOrdersPropertiesAndMarksOptional(t *testing.T) {
	schema := &Schema{
		Title: "Widget",
		Properties: PropertyList{
			{Key: "name", Schema: &Schema{Type: SchemaType{"string"}}},
			{Key: "count", Schema: &Schema{Type: SchemaType{"number"}}},
		},
		Required: []string{"name"},
	}

	node, err := buildInterface(schema, true, "#", NewNameGenerator(), nil, DefaultOptions(), translateForTest)
	require.NoError(t, err)

	require.Len(t, node.Params, 2)
	assert.Equal(t, "name", node.Params[0].Name)
	assert.False(t, node.Params[0].Optional)
	assert.Equal(t, "count", node.Params[1].Name)
	assert.True(t, node.Params[1].Optional)
}

func TestBuildInterfaceNamedSchemaRequiresDerivableName(t *testing.T) {
	schema := &Schema{Properties: PropertyList{{Key: "a", Schema: &Schema{Type: SchemaType{"string"}}}}}

	_, err := buildInterface(schema, true, "#", NewNameGenerator(), nil, DefaultOptions(), translateForTest)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNameRequired)
}

func TestBuildInterfaceUnnamedSchemaToleratesMissingName(t *testing.T) {
	schema := &Schema{Properties: PropertyList{{Key: "a", Schema: &Schema{Type: SchemaType{"string"}}}}}

	node, err := buildInterface(schema, false, "#", NewNameGenerator(), nil, DefaultOptions(), translateForTest)
	require.NoError(t, err)
	assert.Empty(t, node.Name)
}

func TestBuildInterfaceSinglePatternPropertyIsCatchAll(t *testing.T) {
	schema := &Schema{
		Title:             "Dict",
		PatternProperties: PropertyList{{Key: "^[a-z]+$", Schema: &Schema{Type: SchemaType{"string"}}}},
	}

	node, err := buildInterface(schema, true, "#", NewNameGenerator(), nil, DefaultOptions(), translateForTest)
	require.NoError(t, err)

	require.Len(t, node.Params, 1)
	assert.Equal(t, "key", node.Params[0].Name)
	require.NotNil(t, node.Params[0].KeyType)
	assert.Equal(t, KindString, node.Params[0].KeyType.Kind)
}

func TestBuildInterfaceMultiplePatternPropertiesStayPerPattern(t *testing.T) {
	schema := &Schema{
		Title: "Dict",
		PatternProperties: PropertyList{
			{Key: "^a", Schema: &Schema{Type: SchemaType{"string"}}},
			{Key: "^b", Schema: &Schema{Type: SchemaType{"number"}}},
		},
	}

	node, err := buildInterface(schema, true, "#", NewNameGenerator(), nil, DefaultOptions(), translateForTest)
	require.NoError(t, err)

	require.Len(t, node.Params, 2)
	for _, p := range node.Params {
		assert.True(t, p.PatternProperty)
	}
}

func TestBuildInterfaceAdditionalPropertiesTrueIsAnyCatchAll(t *testing.T) {
	truthy := true
	schema := &Schema{Title: "Open", AdditionalProperties: &Schema{Boolean: &truthy}}

	node, err := buildInterface(schema, true, "#", NewNameGenerator(), nil, DefaultOptions(), translateForTest)
	require.NoError(t, err)

	require.Len(t, node.Params, 1)
	assert.Equal(t, KindAny, node.Params[0].Type.Kind)
}

func TestBuildInterfaceExtendsMustBeInterfaceShaped(t *testing.T) {
	schema := &Schema{
		Title:   "Bad",
		Extends: []*Schema{{Type: SchemaType{"string"}}},
	}

	_, err := buildInterface(schema, true, "#", NewNameGenerator(), nil, DefaultOptions(), translateForTest)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidSuperType)
}

func TestBuildPropertyNamesInterfaceSplitsMappedAndConcreteKeys(t *testing.T) {
	schema := &Schema{
		Title: "Mixed",
		Properties: PropertyList{
			{Key: "known", Schema: &Schema{Type: SchemaType{"string"}}},
		},
		PropertyNames: &Schema{Enum: []interface{}{"red", "green"}, TSEnumNames: []string{"RED", "GREEN"}},
	}

	translate := func(child *Schema, path string) (*Node, error) {
		if child == schema.PropertyNames {
			return translateForPropertyNamesEnum(child)
		}
		return translateForTest(child, path)
	}

	node, err := buildInterface(schema, true, "#", NewNameGenerator(), nil, DefaultOptions(), translate)
	require.NoError(t, err)

	assert.Equal(t, KindIntersection, node.Kind)
	require.Len(t, node.Members, 2)
}

func translateForPropertyNamesEnum(schema *Schema) (*Node, error) {
	members := make([]EnumMember, len(schema.Enum))
	for i, v := range schema.Enum {
		members[i] = EnumMember{Name: schema.TSEnumNames[i], Value: v}
	}
	return &Node{Kind: KindEnum, Name: "Color", EnumMembers: members}, nil
}
