package jsonschema2ast

import (
	"bytes"
	"fmt"

	expjson "github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// SchemaType holds one or more JSON Schema "type" values, accommodating the
// keyword's single-string or array-of-strings forms.
type SchemaType []string

// UnmarshalJSON accepts either a single string or an array of strings.
func (st *SchemaType) UnmarshalJSON(data []byte) error {
	var single string
	if err := expjson.Unmarshal(data, &single); err == nil {
		*st = SchemaType{single}
		return nil
	}

	var multi []string
	if err := expjson.Unmarshal(data, &multi); err != nil {
		return fmt.Errorf("type: %w", err)
	}
	*st = SchemaType(multi)
	return nil
}

// MarshalJSON renders a single-element SchemaType back as a bare string,
// matching the common on-disk shape for schemas with one declared type.
func (st SchemaType) MarshalJSON() ([]byte, error) {
	if len(st) == 1 {
		return expjson.Marshal(st[0])
	}
	return expjson.Marshal([]string(st))
}

// Property is one ordered entry of an object-shaped schema's "properties",
// "patternProperties" or "definitions"/"$defs" map. Using a slice instead of
// a Go map preserves the insertion order of the source document, which a
// plain map[string]*Schema cannot.
type Property struct {
	Key    string
	Schema *Schema
}

// PropertyList is an ordered collection of Property entries with JSON
// (de)serialization that preserves document order on decode and insertion
// order on encode.
type PropertyList []Property

// Get returns the schema registered under key, if any.
func (pl PropertyList) Get(key string) (*Schema, bool) {
	for _, p := range pl {
		if p.Key == key {
			return p.Schema, true
		}
	}
	return nil, false
}

// MarshalJSON writes the list back out as a JSON object in slice order.
func (pl PropertyList) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, p := range pl {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := expjson.Marshal(p.Key)
		if err != nil {
			return nil, err
		}
		val, err := expjson.Marshal(p.Schema)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object into an ordered PropertyList. Key
// order is recovered with jsontext.Decoder.ReadToken, the same experimental
// package this module already depends on for its raw jsontext.Value
// container, rather than reaching for the standard library's json.Decoder.
func (pl *PropertyList) UnmarshalJSON(data []byte) error {
	order, err := objectKeyOrder(data)
	if err != nil {
		return err
	}

	var raw map[string]jsontext.Value
	if err := expjson.Unmarshal(data, &raw); err != nil {
		return err
	}

	out := make(PropertyList, 0, len(order))
	for _, key := range order {
		var s Schema
		if err := expjson.Unmarshal(raw[key], &s); err != nil {
			return fmt.Errorf("property %q: %w", key, err)
		}
		out = append(out, Property{Key: key, Schema: &s})
	}
	*pl = out
	return nil
}

// objectKeyOrder returns the top-level key names of a JSON object in the
// order they appear in data, walked with jsontext.Decoder.ReadToken.
func objectKeyOrder(data []byte) ([]string, error) {
	dec := jsontext.NewDecoder(bytes.NewReader(data))

	start, err := dec.ReadToken()
	if err != nil {
		return nil, err
	}
	if start.Kind() != '{' {
		return nil, fmt.Errorf("expected JSON object, got %v", start)
	}

	var keys []string
	for dec.PeekKind() != '}' {
		key, err := dec.ReadToken()
		if err != nil {
			return nil, err
		}
		keys = append(keys, key.String())

		// Skip the value without decoding it into a Go type.
		if _, err := dec.ReadValue(); err != nil {
			return nil, err
		}
	}

	if _, err := dec.ReadToken(); err != nil { // consume the closing '}'
		return nil, err
	}
	return keys, nil
}

// Schema is a single node of a parsed JSON Schema document. It carries a
// Parent back-reference so callers can recover ancestry (root lookup,
// scope resolution) without threading a path alongside every node, and
// models "schema or boolean" keywords (additionalProperties, additionalItems,
// propertyNames) uniformly: a *Schema whose Boolean field is non-nil stands
// for a bare `true`/`false` schema, following the same trick the teacher
// repo's Schema type uses.
type Schema struct {
	Parent *Schema `json:"-"`

	Boolean *bool `json:"-"`

	ID          string `json:"$id,omitempty"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`

	Type SchemaType `json:"type,omitempty"`

	Enum        []interface{} `json:"enum,omitempty"`
	TSEnumNames []string      `json:"tsEnumNames,omitempty"`
	TSEnumRef   *Schema       `json:"tsEnumRef,omitempty"`

	TSType          string   `json:"tsType,omitempty"`
	TSExtendAllOf   bool     `json:"tsExtendAllOf,omitempty"`
	TSGenericParams []string `json:"tsGenericParams,omitempty"`
	TSGenericValues []*Schema `json:"tsGenericValues,omitempty"`

	AllOf []*Schema `json:"allOf,omitempty"`
	AnyOf []*Schema `json:"anyOf,omitempty"`
	OneOf []*Schema `json:"oneOf,omitempty"`

	Properties        PropertyList `json:"properties,omitempty"`
	PatternProperties PropertyList `json:"patternProperties,omitempty"`
	AdditionalProperties *Schema   `json:"additionalProperties,omitempty"`
	PropertyNames        *Schema   `json:"propertyNames,omitempty"`
	Required             []string  `json:"required,omitempty"`
	Extends              []*Schema `json:"-"`

	// Items holds the homogeneous ("items" is a schema) form; ItemsList
	// holds the tuple ("items" is an array) form. Only one is populated,
	// mirroring the teacher's Draft-07/2020-12 items-polymorphism handling.
	Items           *Schema   `json:"-"`
	ItemsList       []*Schema `json:"-"`
	AdditionalItems *Schema   `json:"additionalItems,omitempty"`
	MinItems        *int      `json:"minItems,omitempty"`
	MaxItems        *int      `json:"maxItems,omitempty"`

	// Definitions holds "$defs"/"definitions" in source order: spec.md's
	// ordering invariant covers definitions traversal alongside properties
	// and patternProperties.
	Definitions PropertyList `json:"-"`

	// Comment is never populated from JSON, and the translator does not
	// write it either: the origin notes for nodes reached through
	// patternProperties or definitions are attached to the built AST
	// Node's Comment instead.
	Comment string `json:"-"`

	// Extra captures any schema keyword this module does not model
	// explicitly (format, const, contains, minLength, ...), preserved only
	// so round-tripping a schema back to JSON does not silently drop data.
	Extra map[string]interface{} `json:"-"`
}

// knownSchemaKeywords lists every JSON tag this struct decodes explicitly,
// used to separate Extra from the fields above.
var knownSchemaKeywords = map[string]struct{}{
	"$id": {}, "title": {}, "description": {}, "type": {},
	"enum": {}, "tsEnumNames": {}, "tsEnumRef": {},
	"tsType": {}, "tsExtendAllOf": {}, "tsGenericParams": {}, "tsGenericValues": {},
	"allOf": {}, "anyOf": {}, "oneOf": {},
	"properties": {}, "patternProperties": {}, "additionalProperties": {},
	"propertyNames": {}, "required": {}, "extends": {},
	"items": {}, "additionalItems": {}, "minItems": {}, "maxItems": {},
	"definitions": {}, "$defs": {},
}

// UnmarshalJSON decodes a Schema node, handling the boolean-schema shorthand
// and the items array-vs-object polymorphism the way the teacher's
// Schema.UnmarshalJSON does, then folding "definitions" and "$defs" into one
// map and capturing any unmodeled keyword into Extra.
func (s *Schema) UnmarshalJSON(data []byte) error {
	var b bool
	if err := expjson.Unmarshal(data, &b); err == nil {
		s.Boolean = &b
		return nil
	}

	type Alias Schema
	aux := &struct {
		Items   jsontext.Value `json:"items,omitempty"`
		Extends jsontext.Value `json:"extends,omitempty"`
		*Alias
	}{Alias: (*Alias)(s)}

	if err := expjson.Unmarshal(data, aux); err != nil {
		return err
	}

	if len(aux.Items) > 0 {
		trimmed := bytes.TrimSpace(aux.Items)
		if len(trimmed) > 0 && trimmed[0] == '[' {
			if err := expjson.Unmarshal(aux.Items, &s.ItemsList); err != nil {
				return fmt.Errorf("items: %w", err)
			}
		} else {
			var item Schema
			if err := expjson.Unmarshal(aux.Items, &item); err != nil {
				return fmt.Errorf("items: %w", err)
			}
			s.Items = &item
		}
	}

	if len(aux.Extends) > 0 {
		trimmed := bytes.TrimSpace(aux.Extends)
		if len(trimmed) > 0 && trimmed[0] == '[' {
			if err := expjson.Unmarshal(aux.Extends, &s.Extends); err != nil {
				return fmt.Errorf("extends: %w", err)
			}
		} else {
			var one Schema
			if err := expjson.Unmarshal(aux.Extends, &one); err != nil {
				return fmt.Errorf("extends: %w", err)
			}
			s.Extends = []*Schema{&one}
		}
	}

	var raw map[string]jsontext.Value
	if err := expjson.Unmarshal(data, &raw); err != nil {
		return err
	}

	var defs PropertyList
	if defsData, ok := raw["$defs"]; ok {
		if err := expjson.Unmarshal(defsData, &defs); err != nil {
			return fmt.Errorf("$defs: %w", err)
		}
	}
	if defsData, ok := raw["definitions"]; ok {
		var legacy PropertyList
		if err := expjson.Unmarshal(defsData, &legacy); err != nil {
			return fmt.Errorf("definitions: %w", err)
		}
		for _, p := range legacy {
			if _, exists := defs.Get(p.Key); !exists {
				defs = append(defs, p)
			}
		}
	}
	if len(defs) > 0 {
		s.Definitions = defs
	}

	return s.collectExtraFields(raw)
}

func (s *Schema) collectExtraFields(raw map[string]jsontext.Value) error {
	extra := map[string]interface{}{}
	for key, val := range raw {
		if _, known := knownSchemaKeywords[key]; known {
			continue
		}
		var v interface{}
		if err := expjson.Unmarshal(val, &v); err != nil {
			return fmt.Errorf("extra field %q: %w", key, err)
		}
		extra[key] = v
	}
	if len(extra) > 0 {
		s.Extra = extra
	}
	return nil
}

// Link walks schema and every schema it reaches through the modeled
// keywords, assigning Parent back-references. It is idempotent and
// cycle-safe: a node already visited is not re-queued. This is a property of
// the data model itself (distinct from $ref resolution, which belongs to an
// external dereferencer — see internal/deref) and is exercised directly by
// any caller that builds a Schema tree by hand, such as tests.
func Link(root *Schema) {
	visited := map[*Schema]bool{}
	linkChildren(root, visited)
}

func linkChildren(s *Schema, visited map[*Schema]bool) {
	if s == nil || visited[s] {
		return
	}
	visited[s] = true
	for _, child := range s.children() {
		if child == nil {
			continue
		}
		child.Parent = s
		linkChildren(child, visited)
	}
}

// children enumerates every *Schema directly reachable from s through a
// modeled keyword, in a stable but not semantically meaningful order. Used
// by Link and by DefinitionsIndex to walk the whole tree once.
func (s *Schema) children() []*Schema {
	if s == nil {
		return nil
	}
	var out []*Schema
	out = append(out, s.AllOf...)
	out = append(out, s.AnyOf...)
	out = append(out, s.OneOf...)
	out = append(out, s.Extends...)
	for _, p := range s.Properties {
		out = append(out, p.Schema)
	}
	for _, p := range s.PatternProperties {
		out = append(out, p.Schema)
	}
	if s.AdditionalProperties != nil {
		out = append(out, s.AdditionalProperties)
	}
	if s.PropertyNames != nil {
		out = append(out, s.PropertyNames)
	}
	if s.Items != nil {
		out = append(out, s.Items)
	}
	out = append(out, s.ItemsList...)
	if s.AdditionalItems != nil {
		out = append(out, s.AdditionalItems)
	}
	if s.TSEnumRef != nil {
		out = append(out, s.TSEnumRef)
	}
	out = append(out, s.TSGenericValues...)
	for _, p := range s.Definitions {
		out = append(out, p.Schema)
	}
	return out
}

// RootSchema walks Parent back-references to the top of the tree. On a
// cyclic schema Link can leave a cycle in the Parent chain; the walk then
// stops at the last node before the chain would revisit one.
func (s *Schema) RootSchema() *Schema {
	seen := map[*Schema]bool{s: true}
	cur := s
	for cur.Parent != nil && !seen[cur.Parent] {
		cur = cur.Parent
		seen[cur] = true
	}
	return cur
}

// IsBooleanTrue reports whether s is the bare `true` schema.
func (s *Schema) IsBooleanTrue() bool {
	return s != nil && s.Boolean != nil && *s.Boolean
}

// IsBooleanFalse reports whether s is the bare `false` schema.
func (s *Schema) IsBooleanFalse() bool {
	return s != nil && s.Boolean != nil && !*s.Boolean
}
