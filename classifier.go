package jsonschema2ast

// Tag is a classifier output label. It is a larger, flatter vocabulary than
// ast.Kind: several tags (TYPED_ARRAY, NAMED_SCHEMA, ...) funnel into the
// same Kind once built, and some tags (REFERENCE) never reach a built node
// at all because they are always fatal.
type Tag string

const (
	TagAllOf        Tag = "ALL_OF"
	TagAny          Tag = "ANY"
	TagAnyOf        Tag = "ANY_OF"
	TagBoolean      Tag = "BOOLEAN"
	TagCustomType   Tag = "CUSTOM_TYPE"
	TagNamedEnum    Tag = "NAMED_ENUM"
	TagNamedSchema  Tag = "NAMED_SCHEMA"
	TagNever        Tag = "NEVER"
	TagNull         Tag = "NULL"
	TagNumber       Tag = "NUMBER"
	TagObject       Tag = "OBJECT"
	TagOneOf        Tag = "ONE_OF"
	TagReference    Tag = "REFERENCE"
	TagString       Tag = "STRING"
	TagTypedArray   Tag = "TYPED_ARRAY"
	TagUnion        Tag = "UNION"
	TagUnnamedEnum  Tag = "UNNAMED_ENUM"
	TagUnnamedSchema Tag = "UNNAMED_SCHEMA"
	TagUntypedArray Tag = "UNTYPED_ARRAY"
)

// Classify applies the fixed, priority-ordered rule list to schema and
// returns the tags that fired, in rule order with duplicates removed. It
// never returns an empty slice: a nil schema yields {ANY}, and a non-nil
// schema matching none of rules 1-9 gets the rule 10 tag, which is OBJECT
// unless a single primitive type is declared. Classify is a pure function of schema's own fields; it consults
// defs only to test whether a standalone name is derivable (a presence
// check, not a mutation), so its result does not depend on translation
// order or on names already claimed elsewhere in the graph.
func Classify(schema *Schema, defs *DefinitionsIndex) []Tag {
	if schema == nil {
		return []Tag{TagAny}
	}

	var tags []Tag
	add := func(t Tag) {
		for _, existing := range tags {
			if existing == t {
				return
			}
		}
		tags = append(tags, t)
	}

	if schema.TSType != "" {
		add(TagCustomType)
	}
	if isUnresolvedReference(schema) {
		add(TagReference)
	}
	if len(schema.AllOf) > 0 {
		add(TagAllOf)
	}
	if len(schema.AnyOf) > 0 {
		add(TagAnyOf)
	}
	if len(schema.OneOf) > 0 {
		add(TagOneOf)
	}
	if len(schema.Enum) > 0 {
		if len(schema.TSEnumNames) > 0 {
			add(TagNamedEnum)
		} else {
			add(TagUnnamedEnum)
		}
	}
	if len(schema.Type) > 1 {
		add(TagUnion)
	}
	if hasType(schema, "array") || schema.Items != nil || schema.ItemsList != nil {
		if schema.Items == nil && schema.ItemsList == nil {
			add(TagUntypedArray)
		} else {
			add(TagTypedArray)
		}
	}
	if hasType(schema, "object") || len(schema.Properties) > 0 || len(schema.PatternProperties) > 0 ||
		schema.AdditionalProperties != nil || schema.PropertyNames != nil || len(schema.Extends) > 0 || len(schema.Required) > 0 {
		if hasStandaloneNameSeed(schema, defs) && len(schema.Properties) > 0 {
			add(TagNamedSchema)
		} else {
			add(TagUnnamedSchema)
		}
	}
	if len(tags) == 0 {
		add(primitiveTag(schema))
	}
	return tags
}

// primitiveTag implements rule 10 for schemas that matched none of rules
// 1-9: dispatch on the single declared type, defaulting to OBJECT.
func primitiveTag(schema *Schema) Tag {
	if len(schema.Type) == 1 {
		switch schema.Type[0] {
		case "string":
			return TagString
		case "number", "integer":
			return TagNumber
		case "boolean":
			return TagBoolean
		case "null":
			return TagNull
		case "never":
			return TagNever
		}
	}
	return TagObject
}

// hasType reports whether schema declares exactly the single type name. A
// type array is left to the UNION rule, whose per-type clones are then
// classified one type at a time.
func hasType(schema *Schema, name string) bool {
	return len(schema.Type) == 1 && schema.Type[0] == name
}

// isUnresolvedReference reports whether schema still carries a live $ref:
// this module models a resolved $ref as identity-sharing (the dereferencer
// replaces the $ref node with the target node itself), so a node ending up
// here with an Extra["$ref"] entry means the upstream dereferencer failed to
// inline it.
func isUnresolvedReference(schema *Schema) bool {
	if schema.Extra == nil {
		return false
	}
	_, ok := schema.Extra["$ref"]
	return ok
}

// hasStandaloneNameSeed reports whether a name could be derived for schema
// without actually claiming one from a NameGenerator's used-names set: a
// title, an id, or a reverse hit in defs.
func hasStandaloneNameSeed(schema *Schema, defs *DefinitionsIndex) bool {
	if schema.Title != "" || schema.ID != "" {
		return true
	}
	if defs == nil {
		return false
	}
	_, ok := defs.KeyFor(schema)
	return ok
}
