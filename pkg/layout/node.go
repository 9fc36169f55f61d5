package layout

import "github.com/treekit/tidytree/pkg/tree"

// node is one vertex of the depth-bounded shadow tree the walks operate
// on. The owning structure is strictly parent→children; parent, ancestor,
// and thread are non-owning back/cross references, so no cycles are held
// alive by the children slices.
//
// ancestor and thread are scratch state of the first walk and must not be
// read after it completes. shift and change only carry meaning within a
// single sibling-group sweep in executeShifts.
type node[T any] struct {
	src      tree.Node[T]
	parent   *node[T]
	children []*node[T]

	// idx is the position among the parent's children, 0-based and stable.
	idx int
	// level is the depth from the layout root (-1 when the root is a pure
	// geometric anchor excluded from the output).
	level int

	x, y float64
	// mod is the horizontal offset owed to every descendant of this node,
	// but never to the node itself.
	mod float64

	shift, change float64

	ancestor *node[T]
	thread   *node[T]
}

// build constructs the shadow tree for src down to the depth limit.
// Children are built only while level < limit-1; deeper source nodes are
// pruned entirely, so the walks see a genuinely smaller tree rather than
// one with hidden subtrees.
func build[T any](src tree.Node[T], parent *node[T], idx, level, limit int) *node[T] {
	n := &node[T]{
		src:    src,
		parent: parent,
		idx:    idx,
		level:  level,
		y:      float64(level),
	}
	n.ancestor = n
	if level < limit-1 {
		for i, c := range src.Children() {
			n.children = append(n.children, build(c, n, i, level+1, limit))
		}
	}
	return n
}

// isLeaf reports whether the node has no children in the shadow tree.
// A source node past the depth limit counts as a leaf here even when its
// payload says otherwise.
func (n *node[T]) isLeaf() bool { return len(n.children) == 0 }

// leftSibling returns the sibling immediately to the left, or nil.
func (n *node[T]) leftSibling() *node[T] {
	if n.parent != nil && n.idx > 0 {
		return n.parent.children[n.idx-1]
	}
	return nil
}

// leftmostSibling returns the first child of the parent, or nil for roots.
func (n *node[T]) leftmostSibling() *node[T] {
	if n.parent != nil {
		return n.parent.children[0]
	}
	return nil
}

// nextLeft returns the next node on the left contour one level down:
// the first child, or the thread when the node is a leaf.
func (n *node[T]) nextLeft() *node[T] {
	if n.isLeaf() {
		return n.thread
	}
	return n.children[0]
}

// nextRight returns the next node on the right contour one level down:
// the last child, or the thread when the node is a leaf.
func (n *node[T]) nextRight() *node[T] {
	if n.isLeaf() {
		return n.thread
	}
	return n.children[len(n.children)-1]
}

// bounds returns the bounding box of the subtree rooted at n, using the
// current coordinates.
func (n *node[T]) bounds() Rect {
	r := Rect{MinX: n.x, MaxX: n.x, MinY: n.y, MaxY: n.y}
	for _, c := range n.children {
		cr := c.bounds()
		r.MinX = min(r.MinX, cr.MinX)
		r.MaxX = max(r.MaxX, cr.MaxX)
		r.MinY = min(r.MinY, cr.MinY)
		r.MaxY = max(r.MaxY, cr.MaxY)
	}
	return r
}
