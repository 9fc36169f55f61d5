// Package tree defines the rooted, ordered tree consumed by the layout
// engine, together with a character trie built from word lists.
//
// The layout engine in pkg/layout is generic over the tree payload: any
// type implementing [Node] can be laid out. The order of Children is
// semantically significant - it is the left-to-right drawing order.
//
// [Trie] is the bundled implementation used by the CLI: it stores a set of
// words as a prefix tree with one character per node.
package tree

// Node is the read-only view of a rooted, ordered, multi-way tree.
//
// Leaf reports the payload-level leaf flag, independent of whether the
// node has children. For a trie, a node that terminates a word is a leaf
// even when longer words extend past it ("ab" inside {"ab", "abcd"}).
// The layout engine never mutates the source tree.
type Node[T any] interface {
	// Value returns the opaque payload carried by this node.
	Value() T

	// Children returns the ordered child nodes. The slice may be freshly
	// allocated on every call; callers should not retain or modify it.
	Children() []Node[T]

	// Leaf reports whether the payload marks this node as terminal.
	Leaf() bool
}
