package jsonschema2ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCacheMissThenHit(t *testing.T) {
	c := newCache()
	schema := &Schema{Type: SchemaType{"string"}}

	_, ok := c.get(schema, TagString)
	assert.False(t, ok)

	placeholder := c.placeholder(schema, TagString)
	placeholder.Kind = KindString

	got, ok := c.get(schema, TagString)
	assert.True(t, ok)
	assert.Same(t, placeholder, got)
}

func TestCacheKeysAreIdentityNotStructural(t *testing.T) {
	c := newCache()
	a := &Schema{Type: SchemaType{"string"}}
	b := &Schema{Type: SchemaType{"string"}}

	c.placeholder(a, TagString)

	_, ok := c.get(b, TagString)
	assert.False(t, ok, "structurally identical but distinct schema nodes must not share a cache entry")
}

func TestCacheDistinguishesByTag(t *testing.T) {
	c := newCache()
	schema := &Schema{}

	asString := c.placeholder(schema, TagString)
	asString.Kind = KindString

	_, ok := c.get(schema, TagObject)
	assert.False(t, ok, "same node under a different tag must be a distinct cache entry")
}
