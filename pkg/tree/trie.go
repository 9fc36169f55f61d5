package tree

import (
	"slices"
	"strings"
)

// Trie is a character prefix tree over a set of words.
// The root carries the empty string; every other node carries a single
// character. Children are kept in first-insertion order, so the word
// order given to [Build] determines the left-to-right drawing order.
//
// The zero value is not usable - use [NewTrie] or [Build].
type Trie struct {
	value    string
	leaf     bool
	children []*Trie
	index    map[string]*Trie
}

// NewTrie creates an empty trie whose root carries the empty string.
func NewTrie() *Trie {
	return &Trie{index: make(map[string]*Trie)}
}

// Build creates a trie containing the given words.
// Words are inserted in the order given; pass the output of [Normalize]
// for a canonical (sorted, upper-case, deduplicated) trie.
func Build(words []string) *Trie {
	t := NewTrie()
	for _, w := range words {
		t.Insert(w)
	}
	return t
}

// Insert adds a word to the trie, creating intermediate nodes as needed.
// The node holding the final character is marked as a word end.
// Inserting the empty string marks the root itself.
func (t *Trie) Insert(word string) {
	cur := t
	for _, r := range word {
		cur = cur.child(string(r))
	}
	cur.leaf = true
}

// child returns the child carrying label, creating it on first use.
func (t *Trie) child(label string) *Trie {
	if c, ok := t.index[label]; ok {
		return c
	}
	c := &Trie{value: label, index: make(map[string]*Trie)}
	t.children = append(t.children, c)
	t.index[label] = c
	return c
}

// Contains reports whether the trie holds word as a complete entry.
func (t *Trie) Contains(word string) bool {
	cur := t
	for _, r := range word {
		next, ok := cur.index[string(r)]
		if !ok {
			return false
		}
		cur = next
	}
	return cur.leaf
}

// Size returns the number of nodes in the trie, including the root.
func (t *Trie) Size() int {
	n := 1
	for _, c := range t.children {
		n += c.Size()
	}
	return n
}

// Value returns the character carried by this node ("" for the root).
func (t *Trie) Value() string { return t.value }

// Leaf reports whether this node terminates a word.
func (t *Trie) Leaf() bool { return t.leaf }

// Children returns the ordered child nodes as layout input.
func (t *Trie) Children() []Node[string] {
	out := make([]Node[string], len(t.children))
	for i, c := range t.children {
		out[i] = c
	}
	return out
}

// Ensure Trie implements Node.
var _ Node[string] = (*Trie)(nil)

// Normalize canonicalizes a word list for trie building:
// blank entries are dropped, the rest are trimmed, upper-cased,
// deduplicated, and sorted.
func Normalize(words []string) []string {
	seen := make(map[string]struct{}, len(words))
	out := make([]string, 0, len(words))
	for _, w := range words {
		u := strings.ToUpper(strings.TrimSpace(w))
		if u == "" {
			continue
		}
		if _, ok := seen[u]; ok {
			continue
		}
		seen[u] = struct{}{}
		out = append(out, u)
	}
	slices.Sort(out)
	return out
}
