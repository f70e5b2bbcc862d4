package jsonschema2ast

// DefinitionsIndex maps every sub-schema reachable through a `definitions`/
// `$defs` keyword, anywhere in the tree, back to the key it was registered
// under. The translator and classifier query it by node identity to recover
// a fallback name for schemas with no title or id of their own.
type DefinitionsIndex struct {
	byNode map[*Schema]string
}

// BuildDefinitionsIndex walks root once, recording the first key under which
// each definition node is found. A node reachable under more than one
// definitions key keeps whichever key is discovered first in traversal
// order; re-entered nodes (shared by identity, including cycles) are
// visited only once.
func BuildDefinitionsIndex(root *Schema) *DefinitionsIndex {
	idx := &DefinitionsIndex{byNode: map[*Schema]string{}}
	visited := map[*Schema]bool{}
	idx.walk(root, visited)
	return idx
}

func (idx *DefinitionsIndex) walk(s *Schema, visited map[*Schema]bool) {
	if s == nil || visited[s] {
		return
	}
	visited[s] = true

	for _, p := range s.Definitions {
		if _, exists := idx.byNode[p.Schema]; !exists {
			idx.byNode[p.Schema] = p.Key
		}
	}
	for _, child := range s.children() {
		idx.walk(child, visited)
	}
}

// KeyFor returns the definitions key registered for node, if any.
func (idx *DefinitionsIndex) KeyFor(node *Schema) (string, bool) {
	if idx == nil {
		return "", false
	}
	key, ok := idx.byNode[node]
	return key, ok
}
