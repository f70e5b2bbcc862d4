package jsonschema2ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateSanitizesAndCasesName(t *testing.T) {
	gen := NewNameGenerator()
	name, ok := gen.Generate("user_id")
	assert.True(t, ok)
	assert.Equal(t, "UserID", name)
}

func TestGenerateDisambiguatesCollisions(t *testing.T) {
	gen := NewNameGenerator()

	first, ok := gen.Generate("Widget")
	assert.True(t, ok)
	assert.Equal(t, "Widget", first)

	second, ok := gen.Generate("Widget")
	assert.True(t, ok)
	assert.Equal(t, "Widget2", second)

	third, ok := gen.Generate("Widget")
	assert.True(t, ok)
	assert.Equal(t, "Widget3", third)
}

func TestGenerateRejectsEmptySeed(t *testing.T) {
	gen := NewNameGenerator()
	name, ok := gen.Generate("")
	assert.False(t, ok)
	assert.Empty(t, name)
}

func TestSeedForPrefersTitleThenIDThenDefinitionsKey(t *testing.T) {
	def := &Schema{}
	root := &Schema{Definitions: PropertyList{{Key: "Thing", Schema: def}}}
	defs := BuildDefinitionsIndex(root)

	assert.Equal(t, "Thing", SeedFor(def, defs))

	withID := &Schema{ID: "https://example.com/Widget"}
	assert.Equal(t, "https://example.com/Widget", SeedFor(withID, defs))

	withTitle := &Schema{ID: "ignored", Title: "Preferred"}
	assert.Equal(t, "Preferred", SeedFor(withTitle, defs))
}

func TestSanitizeNameNormalizesKnownAcronyms(t *testing.T) {
	assert.Equal(t, "UserID", sanitizeName("user_id"))
	assert.Equal(t, "APIResponse", sanitizeName("api_response"))
	assert.Equal(t, "WidgetURL", sanitizeName("widget_url"))
}
