// Package layout computes non-overlapping 2-D positions for rooted,
// ordered trees using the Buchheim-Jünger-Leipert refinement of Walker's
// tidy tree algorithm (linear time).
//
// # Algorithm
//
// The engine builds a depth-bounded shadow of the input tree, then runs
// two traversals:
//
//  1. A post-order walk assigns preliminary x coordinates. After each
//     child subtree is placed, an apportionment step walks the right
//     contour of the already-placed siblings against the left contour of
//     the new subtree and pushes the new subtree right by the minimal
//     amount that removes any overlap. Shifts spanning several subtrees
//     are recorded as deferred shift/change increments and resolved by a
//     single right-to-left sweep per sibling group.
//  2. A pre-order walk folds each node's accumulated modifier into its
//     descendants to obtain absolute coordinates.
//
// Contours are traversed through "threads": synthetic links that let the
// traversal continue past a leaf into the adjacent subtree at the same
// depth. Threads, ancestor pointers, and shift accumulators are scratch
// state private to the first walk.
//
// # Usage
//
//	trie := tree.Build(tree.Normalize(words))
//	g, err := layout.Render[string](trie, layout.Options[string]{
//	    Direction: layout.DirTopBottom,
//	})
//
// The result is a flat graph: branch and leaf payloads keyed by node ID,
// an ordered edge list, and a position per ID, remapped for the requested
// layout direction (top-bottom, bottom-top, left-right, right-left, or
// radial).
//
// # Concurrency
//
// Render is a pure function of its inputs: no shared state, no I/O.
// Distinct calls may run concurrently.
package layout
