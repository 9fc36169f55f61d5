package layout

// firstWalk assigns preliminary x coordinates in post-order.
//
// Leaves sit at x=0 or one sibling spacing right of their left sibling.
// Internal nodes lay out each child, apportion it against the already
// placed siblings, resolve the group's deferred shifts in one sweep, and
// finally center themselves over their children - or, when a left sibling
// pins their x, record the discrepancy in mod so the second walk corrects
// the descendants.
func firstWalk[T any](v *node[T], dx float64) {
	if v.isLeaf() {
		if w := v.leftSibling(); w != nil {
			v.x = w.x + dx
		} else {
			v.x = 0
		}
		return
	}

	defaultAncestor := v.children[0]
	for _, w := range v.children {
		firstWalk(w, dx)
		defaultAncestor = apportion(w, defaultAncestor, dx)
	}
	executeShifts(v)

	midpoint := (v.children[0].x + v.children[len(v.children)-1].x) / 2
	if w := v.leftSibling(); w != nil {
		v.x = w.x + dx
		v.mod = v.x - midpoint
	} else {
		v.x = midpoint
	}
}

// apportion resolves overlap between the subtree rooted at v and its
// already-placed left siblings.
//
// Four contour pointers descend in lockstep: the inner-right (vir) and
// outer-right (vor) through v's left and right contours, the inner-left
// (vil) and outer-left (vol) through the right contour of the left
// sibling and the left contour of the leftmost sibling. sil/sir/sol/sor
// carry the modifier sums along each contour. At each level a positive
// gap deficit between the inner contours is charged to the responsible
// ancestor and spread across the intermediate subtrees.
//
// When one side's contour ends first, the exhausted side is threaded to
// the survivor so later traversals continue past it, and the accumulated
// modifier difference is folded into the terminal node's mod. Returns the
// default ancestor to use for the next sibling.
func apportion[T any](v, defaultAncestor *node[T], dx float64) *node[T] {
	w := v.leftSibling()
	if w == nil {
		return defaultAncestor
	}

	vir, vor := v, v
	vil := w
	vol := v.leftmostSibling()
	sir, sor := v.mod, v.mod
	sil := vil.mod
	sol := vol.mod

	for vil.nextRight() != nil && vir.nextLeft() != nil {
		vil = vil.nextRight()
		vir = vir.nextLeft()
		vol = vol.nextLeft()
		vor = vor.nextRight()
		vor.ancestor = v

		if shift := (vil.x + sil) - (vir.x + sir) + dx; shift > 0 {
			moveSubtree(pickAncestor(vil, v, defaultAncestor), v, shift)
			sir += shift
			sor += shift
		}
		sil += vil.mod
		sir += vir.mod
		sol += vol.mod
		sor += vor.mod
	}

	if vil.nextRight() != nil && vor.nextRight() == nil {
		vor.thread = vil.nextRight()
		vor.mod += sil - sor
	} else {
		if vir.nextLeft() != nil && vol.nextLeft() == nil {
			vol.thread = vir.nextLeft()
			vol.mod += sir - sol
		}
		defaultAncestor = v
	}
	return defaultAncestor
}

// moveSubtree shifts the subtree rooted at wr right by shift to clear a
// conflict with the subtree rooted at wl.
//
// The subtrees strictly between wl and wr are not touched here: they
// receive proportional shares of the shift through the shift/change
// accumulators, resolved later by executeShifts. This is what keeps the
// whole algorithm linear.
func moveSubtree[T any](wl, wr *node[T], shift float64) {
	subtrees := float64(wr.idx - wl.idx)
	wr.shift += shift
	wr.change -= shift / subtrees
	wl.change += shift / subtrees
	wr.x += shift
	wr.mod += shift
}

// executeShifts converts the deferred shift/change increments of v's
// children into absolute positions, right to left. Each child absorbs the
// running shift into x and mod; change then accumulates the child's own
// change, and shift the child's own shift plus the updated change. One
// pass, linear in the number of siblings.
func executeShifts[T any](v *node[T]) {
	var shift, change float64
	for i := len(v.children) - 1; i >= 0; i-- {
		w := v.children[i]
		w.x += shift
		w.mod += shift
		change += w.change
		shift += w.shift + change
	}
}

// pickAncestor resolves which subtree a cross-subtree conflict is charged
// to. vil's recorded ancestor is trustworthy only while it is still a
// direct child of the parent currently being laid out; otherwise the
// conflict is charged to the running default ancestor.
func pickAncestor[T any](vil, v, defaultAncestor *node[T]) *node[T] {
	if vil.ancestor.parent == v.parent {
		return vil.ancestor
	}
	return defaultAncestor
}

// secondWalk finalizes coordinates in pre-order: each node absorbs the
// cumulative shift into x and takes its fixed level y; children inherit
// the shift plus the node's own mod. Returns the minimum final x, usable
// for left-alignment normalization by callers.
func secondWalk[T any](v *node[T], shift, y, dy float64) float64 {
	v.x += shift
	v.y = y

	minX := v.x
	for _, w := range v.children {
		if m := secondWalk(w, shift+v.mod, y+dy, dy); m < minX {
			minX = m
		}
	}
	return minX
}
