package jsonschema2ast

// Kind identifies which of the closed set of AST shapes a Node holds. Node
// is a tagged union rather than an interface hierarchy: exactly one group of
// fields on Node is meaningful for a given Kind, and callers switch on Kind
// instead of type-asserting.
type Kind string

const (
	KindAny            Kind = "ANY"
	KindArray          Kind = "ARRAY"
	KindBoolean        Kind = "BOOLEAN"
	KindCustom         Kind = "CUSTOM"
	KindEnum           Kind = "ENUM"
	KindInterface      Kind = "INTERFACE"
	KindIntersection   Kind = "INTERSECTION"
	KindLiteral        Kind = "LITERAL"
	KindNamedSchema    Kind = "NAMED_SCHEMA"
	KindNever          Kind = "NEVER"
	KindNull           Kind = "NULL"
	KindNumber         Kind = "NUMBER"
	KindObject         Kind = "OBJECT"
	KindReference      Kind = "REFERENCE"
	KindString         Kind = "STRING"
	KindTuple          Kind = "TUPLE"
	KindUnion          Kind = "UNION"
	KindUnknown        Kind = "UNKNOWN"
	KindUnnamedSchema  Kind = "UNNAMED_SCHEMA"
)

// EnumMember is one value of an ENUM node, pairing the raw value with the
// optional tsEnumNames label for the same position.
type EnumMember struct {
	Name  string
	Value interface{}
}

// Param is a named, typed slot used by INTERFACE nodes for their members.
// CUSTOM generic arguments are carried in Node.TypeArgs instead.
type Param struct {
	Name     string
	Type     *Node
	Optional bool

	// PatternProperty marks a param derived from patternProperties: Name
	// holds the source pattern rather than a literal property key.
	PatternProperty bool

	// UnreachableDefinition marks a param synthesized from a definitions
	// entry under the unreachableDefinitions option.
	UnreachableDefinition bool

	// KeyType is non-nil only for an index signature / mapped key
	// ("[key: KeyType]: Type"), produced from additionalProperties, a lone
	// patternProperties entry, or a propertyNames-constrained catch-all.
	KeyType *Node
}

// Node is the single AST type every translation produces. Only the fields
// relevant to Kind are populated; the rest are left at their zero value.
type Node struct {
	Kind Kind

	// INTERFACE / ENUM / UNION / INTERSECTION / CUSTOM: the standalone
	// declaration name, empty when none was derived. REFERENCE: the name of
	// the referenced enum member.
	Name string

	// NAMED_SCHEMA / UNNAMED_SCHEMA: the wrapped shape.
	Inner *Node

	// INTERFACE: ordered members, insertion-order preserved. A catch-all
	// (additionalProperties or a single patternProperties entry) appears
	// after the declared properties as a Param with KeyType set.
	Params []Param

	// INTERFACE: base interfaces from `extends`.
	Extends []*Node

	// ARRAY / TUPLE: element type(s).
	Items       *Node
	TupleItems  []*Node
	RestItems   *Node // tuple with an open tail (additionalItems schema)

	// UNION / INTERSECTION: member types.
	Members []*Node

	// ENUM: ordered members.
	EnumMembers []EnumMember

	// LITERAL: a single constant value. The translator does not build
	// LITERAL nodes: enum values are carried raw in EnumMembers, a
	// single-value enum becomes an ENUM, and `const` stays in Schema.Extra.
	LiteralValue interface{}

	// CUSTOM: an escape hatch for `tsType`, carrying the raw type text and,
	// for generics, the substituted parameters.
	CustomType string
	TypeArgs   []*Node

	// REFERENCE: points at another node by identity (filled after the
	// referenced node's own translation completes; see cache.go).
	Target *Node

	// Every Kind: a documentation comment to surface above the declaration,
	// threaded from Schema.Description during translation, plus origin notes
	// for nodes reached through patternProperties or definitions.
	Comment string
}
