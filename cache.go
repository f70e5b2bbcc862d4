package jsonschema2ast

// cacheKey is the identity of one cached translation: a schema node plus
// the tag it was built under. Two structurally identical schema nodes with
// distinct identity get distinct cache entries — see §4.7's rationale that
// identity already captures the sharing the upstream dereferencer intended.
type cacheKey struct {
	node *Schema
	tag  Tag
}

// cache memoizes translations by (node, tag) identity and never evicts: its
// size is bounded by reachable nodes times tags per node.
type cache struct {
	entries map[cacheKey]*Node
}

func newCache() *cache {
	return &cache{entries: map[cacheKey]*Node{}}
}

func (c *cache) get(node *Schema, tag Tag) (*Node, bool) {
	n, ok := c.entries[cacheKey{node, tag}]
	return n, ok
}

// placeholder installs an empty Node under (node, tag) before recursion, so
// that a cyclic reference to node resolves to the same object that will
// later be filled in place.
func (c *cache) placeholder(node *Schema, tag Tag) *Node {
	n := &Node{}
	c.entries[cacheKey{node, tag}] = n
	return n
}
