// Package deref is a minimal stand-in for the upstream dereferencer that
// spec.md's core translator assumes has already run: it parses a raw JSON
// Schema document, links every node to its parent, and replaces every
// local `$ref` with the node it points to (shared by identity), so a
// cyclic schema becomes a cyclic linked-schema graph rather than a tree of
// pointer strings. Only local JSON Pointer refs ("#", "#/foo/bar") are
// supported; a remote or unresolvable ref is a fatal input, matching the
// core's stance that an unresolved $ref is always an error.
package deref

import (
	"fmt"
	"strconv"
	"strings"

	expjson "github.com/go-json-experiment/json"
	"github.com/kaptinlin/jsonpointer"

	"github.com/kaptinlin/jsonschema2ast"
)

// Parse decodes a JSON Schema document and returns a fully linked,
// dereferenced root node ready for jsonschema2ast.Translator.
func Parse(data []byte) (*jsonschema2ast.Schema, error) {
	var root jsonschema2ast.Schema
	if err := expjson.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parse schema: %w", err)
	}

	jsonschema2ast.Link(&root)

	if err := Resolve(&root); err != nil {
		return nil, fmt.Errorf("resolve references: %w", err)
	}

	return &root, nil
}

// Resolve walks every schema reachable from root and rewrites any child
// slot whose schema carries a `$ref` into the node the pointer resolves to.
// Nodes already visited are skipped, so cyclic schemas terminate.
func Resolve(root *jsonschema2ast.Schema) error {
	visited := map[*jsonschema2ast.Schema]bool{}
	return resolveChildren(root, root, visited)
}

func resolveChildren(root, node *jsonschema2ast.Schema, visited map[*jsonschema2ast.Schema]bool) error {
	if node == nil || visited[node] {
		return nil
	}
	visited[node] = true

	replace := func(slot **jsonschema2ast.Schema) error {
		if *slot == nil {
			return nil
		}
		if ref, ok := refOf(*slot); ok {
			target, err := resolvePointer(root, ref)
			if err != nil {
				return err
			}
			*slot = target
		}
		return resolveChildren(root, *slot, visited)
	}

	for i := range node.AllOf {
		if err := replace(&node.AllOf[i]); err != nil {
			return err
		}
	}
	for i := range node.AnyOf {
		if err := replace(&node.AnyOf[i]); err != nil {
			return err
		}
	}
	for i := range node.OneOf {
		if err := replace(&node.OneOf[i]); err != nil {
			return err
		}
	}
	for i := range node.Extends {
		if err := replace(&node.Extends[i]); err != nil {
			return err
		}
	}
	for i := range node.ItemsList {
		if err := replace(&node.ItemsList[i]); err != nil {
			return err
		}
	}
	if err := replace(&node.Items); err != nil {
		return err
	}
	if err := replace(&node.AdditionalItems); err != nil {
		return err
	}
	if err := replace(&node.AdditionalProperties); err != nil {
		return err
	}
	if err := replace(&node.PropertyNames); err != nil {
		return err
	}
	if err := replace(&node.TSEnumRef); err != nil {
		return err
	}
	for i := range node.TSGenericValues {
		if err := replace(&node.TSGenericValues[i]); err != nil {
			return err
		}
	}
	for i := range node.Properties {
		if err := replace(&node.Properties[i].Schema); err != nil {
			return err
		}
	}
	for i := range node.PatternProperties {
		if err := replace(&node.PatternProperties[i].Schema); err != nil {
			return err
		}
	}
	for i := range node.Definitions {
		if err := replace(&node.Definitions[i].Schema); err != nil {
			return err
		}
	}
	return nil
}

// refOf reports the raw "$ref" string captured into a schema's Extra map,
// if any.
func refOf(s *jsonschema2ast.Schema) (string, bool) {
	if s.Extra == nil {
		return "", false
	}
	v, ok := s.Extra["$ref"]
	if !ok {
		return "", false
	}
	str, ok := v.(string)
	return str, ok
}

// resolvePointer resolves a local `$ref` ("#", "#/foo/bar") against root,
// walking the same set of JSON-Schema containers the teacher's
// findSchemaInSegment switch recognizes, adapted to this module's field
// names (an ordered PropertyList instead of a map, ItemsList instead of
// PrefixItems).
func resolvePointer(root *jsonschema2ast.Schema, ref string) (*jsonschema2ast.Schema, error) {
	if ref == "#" || ref == "" {
		return root, nil
	}
	if !strings.HasPrefix(ref, "#") {
		return nil, fmt.Errorf("only local pointer refs are supported, got %q", ref)
	}

	pointer := strings.TrimPrefix(ref, "#")
	if pointer == "" {
		return root, nil
	}

	segments := jsonpointer.Parse(pointer)
	cur := root

	for i := 0; i < len(segments); {
		seg := segments[i]
		switch seg {
		case "properties":
			next, ok := requireSegment(segments, i, 1)
			if !ok {
				return nil, fmt.Errorf("%s: truncated pointer after %q", ref, seg)
			}
			child, found := cur.Properties.Get(next)
			if !found {
				return nil, fmt.Errorf("%s: no property %q", ref, next)
			}
			cur, i = child, i+2
		case "patternProperties":
			next, ok := requireSegment(segments, i, 1)
			if !ok {
				return nil, fmt.Errorf("%s: truncated pointer after %q", ref, seg)
			}
			child, found := cur.PatternProperties.Get(next)
			if !found {
				return nil, fmt.Errorf("%s: no patternProperties entry %q", ref, next)
			}
			cur, i = child, i+2
		case "$defs", "definitions":
			next, ok := requireSegment(segments, i, 1)
			if !ok {
				return nil, fmt.Errorf("%s: truncated pointer after %q", ref, seg)
			}
			child, found := cur.Definitions.Get(next)
			if !found {
				return nil, fmt.Errorf("%s: no definition %q", ref, next)
			}
			cur, i = child, i+2
		case "items":
			if cur.Items != nil {
				cur, i = cur.Items, i+1
				continue
			}
			next, ok := requireSegment(segments, i, 1)
			if !ok {
				return nil, fmt.Errorf("%s: truncated pointer after %q", ref, seg)
			}
			idx, err := strconv.Atoi(next)
			if err != nil || idx < 0 || idx >= len(cur.ItemsList) {
				return nil, fmt.Errorf("%s: invalid items index %q", ref, next)
			}
			cur, i = cur.ItemsList[idx], i+2
		case "additionalItems":
			if cur.AdditionalItems == nil {
				return nil, fmt.Errorf("%s: no additionalItems", ref)
			}
			cur, i = cur.AdditionalItems, i+1
		case "additionalProperties":
			if cur.AdditionalProperties == nil {
				return nil, fmt.Errorf("%s: no additionalProperties", ref)
			}
			cur, i = cur.AdditionalProperties, i+1
		case "propertyNames":
			if cur.PropertyNames == nil {
				return nil, fmt.Errorf("%s: no propertyNames", ref)
			}
			cur, i = cur.PropertyNames, i+1
		case "allOf", "anyOf", "oneOf", "extends":
			next, ok := requireSegment(segments, i, 1)
			if !ok {
				return nil, fmt.Errorf("%s: truncated pointer after %q", ref, seg)
			}
			idx, err := strconv.Atoi(next)
			if err != nil {
				return nil, fmt.Errorf("%s: invalid %s index %q", ref, seg, next)
			}
			list := listFor(cur, seg)
			if idx < 0 || idx >= len(list) {
				return nil, fmt.Errorf("%s: %s index %d out of range", ref, seg, idx)
			}
			cur, i = list[idx], i+2
		default:
			return nil, fmt.Errorf("%s: unsupported pointer segment %q", ref, seg)
		}
	}

	return cur, nil
}

func requireSegment(segments []string, i, offset int) (string, bool) {
	if i+offset >= len(segments) {
		return "", false
	}
	return segments[i+offset], true
}

func listFor(s *jsonschema2ast.Schema, keyword string) []*jsonschema2ast.Schema {
	switch keyword {
	case "allOf":
		return s.AllOf
	case "anyOf":
		return s.AnyOf
	case "oneOf":
		return s.OneOf
	case "extends":
		return s.Extends
	}
	return nil
}
