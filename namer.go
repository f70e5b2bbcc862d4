package jsonschema2ast

import (
	"fmt"
	"strings"

	"github.com/iancoleman/strcase"
)

// acronymReplacements maps camel-cased suffixes/prefixes to their
// conventional all-caps spelling, ported from slipscheme's defaultReplacements.
var acronymReplacements = map[string]string{
	"Id":    "ID",
	"Http":  "HTTP",
	"Https": "HTTPS",
	"Api":   "API",
	"Url":   "URL",
	"Json":  "JSON",
	"Xml":   "XML",
	"Html":  "HTML",
}

// NameGenerator hands out unique, sanitized identifiers and remembers every
// name it has produced so later calls can disambiguate.
type NameGenerator struct {
	used map[string]struct{}
}

// NewNameGenerator returns an empty NameGenerator.
func NewNameGenerator() *NameGenerator {
	return &NameGenerator{used: map[string]struct{}{}}
}

// Generate sanitizes seed to the target identifier alphabet and returns a
// name guaranteed unique against every name this generator has produced
// before, appending a monotonically increasing numeric suffix when the
// sanitized form collides. Returns ("", false) when seed is empty or
// sanitizes to the empty string.
func (g *NameGenerator) Generate(seed string) (string, bool) {
	sanitized := sanitizeName(seed)
	if sanitized == "" {
		return "", false
	}

	name := sanitized
	for suffix := 2; g.taken(name); suffix++ {
		name = fmt.Sprintf("%s%d", sanitized, suffix)
	}
	g.used[name] = struct{}{}
	return name, true
}

func (g *NameGenerator) taken(name string) bool {
	_, ok := g.used[name]
	return ok
}

// sanitizeName converts seed to CamelCase and normalizes well-known
// acronyms (Id -> ID, Url -> URL, ...) at either end of the word, matching
// slipscheme's toCamel helper.
func sanitizeName(seed string) string {
	if seed == "" {
		return ""
	}
	word := strcase.ToCamel(seed)
	if word == "" {
		return ""
	}

	for from, to := range acronymReplacements {
		if strings.HasSuffix(word, from) {
			return strings.TrimSuffix(word, from) + to
		}
	}
	for from, to := range acronymReplacements {
		if strings.HasPrefix(word, from) {
			word = to + strings.TrimPrefix(word, from)
		}
	}
	return word
}

// SeedFor returns the first available naming seed for schema: its title,
// its id, or — failing both — its key in defs, matching the Name
// Generator's seed order in §4.2.
func SeedFor(schema *Schema, defs *DefinitionsIndex) string {
	if schema == nil {
		return ""
	}
	if schema.Title != "" {
		return schema.Title
	}
	if schema.ID != "" {
		return schema.ID
	}
	if key, ok := defs.KeyFor(schema); ok {
		return key
	}
	return ""
}
