package layout

import (
	"fmt"
	"hash/fnv"
	"strconv"
)

// extract flattens the finished shadow forest into a [Graph] in level
// order. Nodes are classified into Branches or Leaves by the source
// tree's Leaf flag, not by the (possibly depth-pruned) shadow structure.
//
// When idFn is nil, each node gets a structural hash of its
// root-to-node sibling-index path: injective by construction and stable
// for a given tree shape. Custom id functions are checked for collisions
// against every node emitted so far.
func extract[T any](roots []*node[T], idFn IDFunc[T]) (*Graph[T], error) {
	g := &Graph[T]{
		Branches:  make(map[string]T),
		Leaves:    make(map[string]T),
		Positions: make(map[string]Point),
	}

	type item struct {
		n    *node[T]
		path string
	}
	assign := func(it item) string {
		if idFn != nil {
			return idFn(it.n.src)
		}
		return structuralID(it.path)
	}

	queue := make([]item, 0, len(roots))
	for i, r := range roots {
		queue = append(queue, item{r, strconv.Itoa(i)})
	}

	for len(queue) > 0 {
		var next []item
		for _, it := range queue {
			id := assign(it)
			if _, seen := g.Positions[id]; seen {
				return nil, fmt.Errorf("%w: %q", ErrDuplicateNodeID, id)
			}
			if it.n.src.Leaf() {
				g.Leaves[id] = it.n.src.Value()
			} else {
				g.Branches[id] = it.n.src.Value()
			}
			g.Positions[id] = Point{X: it.n.x, Y: it.n.y}

			for i, c := range it.n.children {
				child := item{c, it.path + "." + strconv.Itoa(i)}
				g.Edges = append(g.Edges, Edge{From: id, To: assign(child)})
				next = append(next, child)
			}
		}
		queue = next
	}
	return g, nil
}

// structuralID hashes a sibling-index path like "0.1.3" to a compact
// stable identifier. A collision, while astronomically unlikely, is
// caught by the duplicate check in extract.
func structuralID(path string) string {
	h := fnv.New64a()
	h.Write([]byte(path))
	return "n" + strconv.FormatUint(h.Sum64(), 16)
}
