package jsonschema2ast

// Options controls translator behavior at points spec.md leaves as explicit
// choices rather than fixed rules.
type Options struct {
	// UnknownAny, when true, makes the translator emit an UNKNOWN node
	// everywhere it would otherwise emit ANY, per §6. Use this when the
	// downstream consumer wants to distinguish "explicitly permits anything"
	// from "this module could not determine a more specific type".
	UnknownAny bool

	// UnreachableDefinitions, when true, makes the interface builder add
	// every `definitions` entry of an object-shaped schema as a param marked
	// UnreachableDefinition, whether or not the entry is referenced
	// elsewhere.
	UnreachableDefinitions bool
}

// DefaultOptions returns the zero-value Options: the ANY sentinel is emitted
// as ANY, and definitions entries are not added as interface params.
func DefaultOptions() Options {
	return Options{}
}
