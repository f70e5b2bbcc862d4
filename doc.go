// Package jsonschema2ast translates a JSON Schema document into a
// language-neutral abstract syntax tree suitable for driving downstream
// type-declaration code generators.
//
// The entry point is Translator.Translate, which walks a linked schema tree
// (every node carrying a Parent back-reference, every $ref already resolved
// by an external dereferencer — see the internal/deref package for a
// minimal stand-in) and produces a tree of *Node values. Classification,
// naming, array normalization and interface construction are each handled
// by a dedicated file (classifier.go, namer.go, arrays.go, interfaces.go);
// Translator ties them together and owns the identity-keyed cache that
// makes the walk terminate on cyclic schemas.
package jsonschema2ast
