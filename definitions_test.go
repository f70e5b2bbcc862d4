package jsonschema2ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildDefinitionsIndexFindsNestedDefinitions(t *testing.T) {
	leaf := &Schema{Type: SchemaType{"string"}}
	root := &Schema{
		Properties: PropertyList{
			{Key: "outer", Schema: &Schema{
				Definitions: PropertyList{{Key: "Leaf", Schema: leaf}},
			}},
		},
	}

	idx := BuildDefinitionsIndex(root)
	key, ok := idx.KeyFor(leaf)
	assert.True(t, ok)
	assert.Equal(t, "Leaf", key)
}

func TestBuildDefinitionsIndexKeepsFirstKeyOnDuplicateReference(t *testing.T) {
	shared := &Schema{Type: SchemaType{"string"}}
	root := &Schema{
		Definitions: PropertyList{
			{Key: "First", Schema: shared},
			{Key: "Second", Schema: shared},
		},
	}

	idx := BuildDefinitionsIndex(root)
	key, ok := idx.KeyFor(shared)
	assert.True(t, ok)
	assert.Equal(t, "First", key)
}

func TestBuildDefinitionsIndexTerminatesOnCycle(t *testing.T) {
	root := &Schema{}
	child := &Schema{Definitions: PropertyList{{Key: "Root", Schema: root}}}
	root.Properties = PropertyList{{Key: "child", Schema: child}}

	assert.NotPanics(t, func() {
		idx := BuildDefinitionsIndex(root)
		_, ok := idx.KeyFor(root)
		assert.True(t, ok)
	})
}

func TestKeyForUnknownNode(t *testing.T) {
	idx := BuildDefinitionsIndex(&Schema{})
	_, ok := idx.KeyFor(&Schema{})
	assert.False(t, ok)
}
