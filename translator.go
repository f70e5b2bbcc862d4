package jsonschema2ast

import (
	"fmt"
	"strings"
)

// Translator recursively converts a linked schema tree into an AST tree. It
// owns the cache and name generator for its own lifetime, so every Translate
// call on one Translator shares them; neither is safe to reuse across concurrent translations, matching §5's
// single-threaded, synchronous concurrency model.
type Translator struct {
	opts  Options
	defs  *DefinitionsIndex
	namer *NameGenerator
	cache *cache
}

// New returns a Translator ready to translate root and anything it reaches.
// Build one Translator per root schema: its cache and used-names set are
// scoped to a single run.
func New(root *Schema, opts Options) *Translator {
	return &Translator{
		opts:  opts,
		defs:  BuildDefinitionsIndex(root),
		namer: NewNameGenerator(),
		cache: newCache(),
	}
}

// Translate runs the entry point of §4.6 over schema.
func (t *Translator) Translate(schema *Schema) (*Node, error) {
	return t.translate(schema, "#")
}

// translate implements the recursive dispatcher: classify, consult the
// cache, install a placeholder before descending so cycles resolve to it,
// build the result, then fill the placeholder in place.
func (t *Translator) translate(schema *Schema, path string) (*Node, error) {
	if schema == nil {
		return &Node{Kind: anyKindFor(t.opts)}, nil
	}
	if schema.IsBooleanTrue() {
		return &Node{Kind: anyKindFor(t.opts)}, nil
	}
	if schema.IsBooleanFalse() {
		return &Node{Kind: KindNever}, nil
	}

	tags := Classify(schema, t.defs)
	key := combinedTag(tags)

	if cached, ok := t.cache.get(schema, key); ok {
		return cached, nil
	}

	placeholder := t.cache.placeholder(schema, key)

	var built *Node
	var err error
	if len(tags) > 1 {
		built, err = t.buildIntersection(schema, tags, path)
	} else {
		built, err = t.buildTag(schema, tags[0], path)
	}
	if err != nil {
		return nil, err
	}

	*placeholder = *built
	return placeholder, nil
}

func combinedTag(tags []Tag) Tag {
	if len(tags) == 1 {
		return tags[0]
	}
	strs := make([]string, len(tags))
	for i, t := range tags {
		strs[i] = string(t)
	}
	return Tag(strings.Join(strs, "+"))
}

// buildIntersection implements the multi-tag case: the outer INTERSECTION
// claims the hoisted description/id/title and naming rights, and each tag
// is built from a copy of schema with those attributes stripped, per
// invariant 6 in §8.
func (t *Translator) buildIntersection(schema *Schema, tags []Tag, path string) (*Node, error) {
	stripped := *schema
	stripped.Title = ""
	stripped.ID = ""
	stripped.Description = ""

	name, _ := t.namer.Generate(SeedFor(schema, t.defs))

	members := make([]*Node, 0, len(tags))
	for _, tag := range tags {
		member, err := t.buildTagImpl(&stripped, tag, path, false)
		if err != nil {
			return nil, err
		}
		members = append(members, member)
	}

	return &Node{
		Kind:    KindIntersection,
		Name:    name,
		Comment: schema.Description,
		Members: members,
	}, nil
}

// buildTag dispatches a single classifier tag to its build rule (§4.6), at
// the top level: a NAMED_SCHEMA or NAMED_ENUM tag that cannot derive a name
// is fatal.
func (t *Translator) buildTag(schema *Schema, tag Tag, path string) (*Node, error) {
	return t.buildTagImpl(schema, tag, path, true)
}

// buildTagImpl dispatches a single classifier tag to its build rule.
// requireName controls whether NAMED_SCHEMA/NAMED_ENUM fatally error when no
// name can be derived. buildIntersection passes false for each of its
// members: the outer INTERSECTION already owns naming rights (invariant 6),
// so a member schema with no title/id of its own (because buildIntersection
// stripped it) must still build successfully, just unnamed.
func (t *Translator) buildTagImpl(schema *Schema, tag Tag, path string, requireName bool) (*Node, error) {
	switch tag {
	case TagCustomType:
		return t.buildCustomType(schema, path)
	case TagReference:
		return nil, NewUnresolvedReferenceError(path)
	case TagAllOf:
		return t.buildAllOf(schema, path)
	case TagAnyOf:
		return t.buildUnionOf(schema.AnyOf, path, "anyOf")
	case TagOneOf:
		return t.buildUnionOf(schema.OneOf, path, "oneOf")
	case TagNamedEnum:
		return t.buildNamedEnum(schema, path, requireName)
	case TagUnnamedEnum:
		return t.buildUnnamedEnum(schema, path)
	case TagUnion:
		return t.buildTypeUnion(schema, path)
	case TagTypedArray, TagUntypedArray:
		return normalizeArray(schema, path, anyKindFor(t.opts), t.translate)
	case TagNamedSchema:
		return buildInterface(schema, requireName, path, t.namer, t.defs, t.opts, t.translate)
	case TagUnnamedSchema:
		return buildInterface(schema, false, path, t.namer, t.defs, t.opts, t.translate)
	case TagString:
		return t.leaf(schema, KindString), nil
	case TagNumber:
		return t.leaf(schema, KindNumber), nil
	case TagBoolean:
		return t.leaf(schema, KindBoolean), nil
	case TagNull:
		return t.leaf(schema, KindNull), nil
	case TagNever:
		return t.leaf(schema, KindNever), nil
	case TagObject:
		return t.leaf(schema, KindObject), nil
	default:
		return t.leaf(schema, anyKindFor(t.opts)), nil
	}
}

func (t *Translator) leaf(schema *Schema, kind Kind) *Node {
	return &Node{Kind: kind, Comment: schema.Description}
}

func (t *Translator) buildCustomType(schema *Schema, path string) (*Node, error) {
	node := &Node{Kind: KindCustom, CustomType: schema.TSType, Comment: schema.Description}
	if name, ok := t.namer.Generate(SeedFor(schema, t.defs)); ok {
		node.Name = name
	}
	for i, param := range schema.TSGenericParams {
		arg := &Node{Kind: KindCustom, CustomType: param}
		if i < len(schema.TSGenericValues) {
			built, err := t.translate(schema.TSGenericValues[i], fmt.Sprintf("%s/tsGenericValues/%d", path, i))
			if err != nil {
				return nil, err
			}
			arg = built
		}
		node.TypeArgs = append(node.TypeArgs, arg)
	}
	return node, nil
}

// buildAllOf implements §4.6's ALL_OF rule: a tsExtendAllOf-flagged child
// supplies the params, and the rest become superTypes of an INTERFACE.
func (t *Translator) buildAllOf(schema *Schema, path string) (*Node, error) {
	var flagged *Schema
	flaggedIdx := 0
	var others []*Schema
	var otherIdx []int
	for i, child := range schema.AllOf {
		if child.TSExtendAllOf && flagged == nil {
			flagged = child
			flaggedIdx = i
			continue
		}
		others = append(others, child)
		otherIdx = append(otherIdx, i)
	}

	if flagged == nil {
		return t.buildUnionOf(schema.AllOf, path, "allOf")
	}

	base, err := buildInterface(flagged, false, fmt.Sprintf("%s/allOf/%d", path, flaggedIdx), t.namer, t.defs, t.opts, t.translate)
	if err != nil {
		return nil, err
	}

	node := &Node{Kind: KindInterface, Name: base.Name, Params: base.Params, Comment: schema.Description}
	for i, other := range others {
		otherPath := fmt.Sprintf("%s/allOf/%d", path, otherIdx[i])
		built, err := t.translate(other, otherPath)
		if err != nil {
			return nil, err
		}
		if built.Kind != KindInterface && built.Kind != KindReference {
			return nil, NewInvalidSuperTypeError(otherPath, built.Kind)
		}
		node.Extends = append(node.Extends, built)
	}
	return node, nil
}

func (t *Translator) buildUnionOf(children []*Schema, path, keyword string) (*Node, error) {
	members := make([]*Node, 0, len(children))
	for i, child := range children {
		built, err := t.translate(child, fmt.Sprintf("%s/%s/%d", path, keyword, i))
		if err != nil {
			return nil, err
		}
		members = append(members, built)
	}
	return &Node{Kind: KindUnion, Members: members}, nil
}

// buildTypeUnion implements the UNION (array-typed) rule: one child per
// type name, each built from a clone of schema pinned to that single type
// with naming attributes stripped (the outer intersection, if any, already
// claimed those). Each clone is re-classified rather than assumed primitive,
// so a type array containing "array" or "object" still gets full array
// normalization / interface construction for that member instead of a bare
// OBJECT leaf.
func (t *Translator) buildTypeUnion(schema *Schema, path string) (*Node, error) {
	members := make([]*Node, 0, len(schema.Type))
	for _, typeName := range schema.Type {
		clone := *schema
		clone.Type = SchemaType{typeName}
		clone.Title = ""
		clone.ID = ""
		clone.Description = ""

		memberPath := path + "/type/" + typeName
		tags := Classify(&clone, t.defs)

		var built *Node
		var err error
		if len(tags) > 1 {
			built, err = t.buildIntersection(&clone, tags, memberPath)
		} else {
			built, err = t.buildTagImpl(&clone, tags[0], memberPath, false)
		}
		if err != nil {
			return nil, err
		}
		members = append(members, built)
	}
	node := &Node{Kind: KindUnion, Members: members, Comment: schema.Description}
	if name, ok := t.namer.Generate(SeedFor(schema, t.defs)); ok {
		node.Name = name
	}
	return node, nil
}

// buildNamedEnum implements the NAMED_ENUM rule: zip enum with
// tsEnumNames by index. requireName fatals when no name is derivable at the
// top level; a NAMED_ENUM built as an intersection member (requireName
// false) simply builds unnamed, since the outer INTERSECTION already owns
// naming rights.
func (t *Translator) buildNamedEnum(schema *Schema, path string, requireName bool) (*Node, error) {
	name, ok := t.namer.Generate(SeedFor(schema, t.defs))
	if !ok {
		if requireName {
			return nil, NewNameRequiredError(path, "NAMED_ENUM")
		}
		name = ""
	}

	members := make([]EnumMember, 0, len(schema.Enum))
	for i, value := range schema.Enum {
		label := fmt.Sprintf("VALUE_%d", i)
		if i < len(schema.TSEnumNames) {
			label = schema.TSEnumNames[i]
		}
		members = append(members, EnumMember{Name: label, Value: value})
	}

	return &Node{Kind: KindEnum, Name: name, EnumMembers: members, Comment: schema.Description}, nil
}

// buildUnnamedEnum implements the UNNAMED_ENUM rule, including the
// tsEnumRef cross-reference case from S3: resolve the referenced enum,
// find the member matching each of this schema's enum values, and return a
// UNION of references to those specific members.
func (t *Translator) buildUnnamedEnum(schema *Schema, path string) (*Node, error) {
	if schema.TSEnumRef == nil {
		members := make([]EnumMember, 0, len(schema.Enum))
		for i, value := range schema.Enum {
			members = append(members, EnumMember{Name: fmt.Sprintf("VALUE_%d", i), Value: value})
		}
		return &Node{Kind: KindEnum, EnumMembers: members, Comment: schema.Description}, nil
	}

	refEnum, err := t.translate(schema.TSEnumRef, path+"/tsEnumRef")
	if err != nil {
		return nil, err
	}
	if refEnum.Kind != KindEnum {
		return nil, NewInvalidEnumValueError(path, nil)
	}

	members := make([]*Node, 0, len(schema.Enum))
	for _, value := range schema.Enum {
		idx := indexOfEnumValue(refEnum.EnumMembers, value)
		if idx < 0 {
			return nil, NewInvalidEnumValueError(path, value)
		}
		members = append(members, &Node{
			Kind:   KindReference,
			Name:   refEnum.EnumMembers[idx].Name,
			Target: refEnum,
		})
	}
	return &Node{Kind: KindUnion, Members: members, Comment: schema.Description}, nil
}

func indexOfEnumValue(members []EnumMember, value interface{}) int {
	for i, m := range members {
		if m.Value == value {
			return i
		}
	}
	return -1
}
