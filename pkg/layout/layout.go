package layout

import (
	"errors"
	"fmt"

	"github.com/treekit/tidytree/pkg/tree"
)

var (
	// ErrInvalidDepthLimit is returned by [Render] when the depth limit is
	// zero or negative. The limit bounds both the rendered tree and the
	// recursion depth, so it must admit at least the root.
	ErrInvalidDepthLimit = errors.New("depth limit must be positive")

	// ErrInvalidSpacing is returned by [Render] when the sibling or level
	// spacing is zero or negative.
	ErrInvalidSpacing = errors.New("spacing must be positive")

	// ErrUnknownDirection is returned by [Render] when the requested
	// direction is not one of the enumerated [Direction] values.
	ErrUnknownDirection = errors.New("unknown layout direction")

	// ErrDuplicateNodeID is returned by [Render] when the ID function maps
	// two distinct live nodes to the same identifier. Colliding IDs would
	// silently merge nodes, so extraction fails fast instead.
	ErrDuplicateNodeID = errors.New("duplicate node ID")
)

// Direction selects how raw layout coordinates are remapped for display.
// The raw layout is top-to-bottom with y increasing downward.
type Direction string

const (
	// DirTopBottom draws the root at the top, levels growing downward.
	DirTopBottom Direction = "TB"
	// DirBottomTop draws the root at the bottom (the raw layout, untouched).
	DirBottomTop Direction = "BT"
	// DirLeftRight rotates the layout a quarter turn, root at one side.
	DirLeftRight Direction = "LR"
	// DirRightLeft is the mirror of DirLeftRight.
	DirRightLeft Direction = "RL"
	// DirRadial wraps the layout around the origin: levels become rings,
	// the x extent becomes an angle sweep.
	DirRadial Direction = "RADIAL"
)

// Directions lists every supported direction, in documentation order.
func Directions() []Direction {
	return []Direction{DirTopBottom, DirBottomTop, DirLeftRight, DirRightLeft, DirRadial}
}

// ParseDirection converts a string to a [Direction].
// Returns ErrUnknownDirection for anything outside the enumerated set.
func ParseDirection(s string) (Direction, error) {
	d := Direction(s)
	switch d {
	case DirTopBottom, DirBottomTop, DirLeftRight, DirRightLeft, DirRadial:
		return d, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDirection, s)
}

// Default option values, matching the classic unit-spaced tidy layout.
const (
	DefaultDepthLimit     = 15
	DefaultSiblingSpacing = 1.0
	DefaultLevelSpacing   = 1.0
)

// DefaultDirection is the direction applied when Options.Direction is empty.
const DefaultDirection = DirTopBottom

// IDFunc maps a source node to its identifier in the output graph.
// It must be injective over the visited node set and stable for a given
// tree shape; collisions make [Render] fail with ErrDuplicateNodeID.
type IDFunc[T any] func(tree.Node[T]) string

// Options configures a single [Render] call.
// The zero value is usable: defaults are applied by Render, and a zero
// KeepRoot excludes the root from the output while still using it as the
// geometric anchor (the usual choice for tries, whose root carries no
// payload).
type Options[T any] struct {
	// DepthLimit caps the number of levels in the rendered tree
	// (default 15). Nodes at level >= DepthLimit-1 are pruned, not hidden:
	// their parents become leaves for layout purposes. The limit also
	// bounds recursion depth.
	DepthLimit int

	// KeepRoot includes the source root in the output graph. When false
	// the root anchors the geometry at level -1 and its children are
	// emitted as level-0 roots.
	KeepRoot bool

	// Direction remaps coordinates for display (default DirTopBottom).
	Direction Direction

	// SiblingSpacing is the horizontal unit distance between adjacent
	// siblings on the layout axis (default 1.0).
	SiblingSpacing float64

	// LevelSpacing is the vertical distance between consecutive levels
	// (default 1.0).
	LevelSpacing float64

	// IDFunc assigns output identifiers. When nil, a structural hash of
	// the root-to-node sibling-index path is used, which is injective and
	// stable for a given tree shape.
	IDFunc IDFunc[T]
}

// validate checks option values and fills in defaults in place.
func (o *Options[T]) validate() error {
	if o.DepthLimit == 0 {
		o.DepthLimit = DefaultDepthLimit
	}
	if o.DepthLimit < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidDepthLimit, o.DepthLimit)
	}
	if o.SiblingSpacing == 0 {
		o.SiblingSpacing = DefaultSiblingSpacing
	}
	if o.LevelSpacing == 0 {
		o.LevelSpacing = DefaultLevelSpacing
	}
	if o.SiblingSpacing < 0 || o.LevelSpacing < 0 {
		return fmt.Errorf("%w: sibling=%g level=%g", ErrInvalidSpacing, o.SiblingSpacing, o.LevelSpacing)
	}
	if o.Direction == "" {
		o.Direction = DefaultDirection
	}
	if _, err := ParseDirection(string(o.Direction)); err != nil {
		return err
	}
	return nil
}

// Point is a 2-D coordinate in the output space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Edge is a parent→child connection between two output node IDs.
type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Rect is an axis-aligned bounding box.
type Rect struct {
	MinX, MaxX float64
	MinY, MaxY float64
}

// Width returns the horizontal extent of the box.
func (r Rect) Width() float64 { return r.MaxX - r.MinX }

// Height returns the vertical extent of the box.
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// Graph is the flat, renderer-agnostic result of a [Render] call.
//
// Branches holds payloads of internal nodes, Leaves those of terminal
// nodes (classified by the source tree's Leaf flag). The two key sets are
// disjoint and together cover every emitted node. Every edge endpoint is
// a key in Positions. Edges are in level-order traversal order.
type Graph[T any] struct {
	Branches  map[string]T
	Leaves    map[string]T
	Edges     []Edge
	Positions map[string]Point

	// Bounds is the bounding box of the raw (pre-transform) layout,
	// anchor root included. Useful for diagnostics and normalization.
	Bounds Rect
}

// Len returns the number of emitted nodes.
func (g *Graph[T]) Len() int { return len(g.Positions) }

// Render computes a tidy layout for the tree rooted at root and returns
// the flattened graph.
//
// The source tree is never mutated. Render validates opts first and
// returns ErrInvalidDepthLimit, ErrInvalidSpacing, or ErrUnknownDirection
// for bad configuration, and ErrDuplicateNodeID if the ID function
// collides on two distinct nodes.
func Render[T any](root tree.Node[T], opts Options[T]) (*Graph[T], error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	start := 0
	if !opts.KeepRoot {
		start = -1
	}
	shadow := build(root, nil, 0, start, opts.DepthLimit)

	firstWalk(shadow, opts.SiblingSpacing)
	secondWalk(shadow, 0, float64(start)*opts.LevelSpacing, opts.LevelSpacing)

	roots := []*node[T]{shadow}
	if !opts.KeepRoot {
		roots = shadow.children
	}
	g, err := extract(roots, opts.IDFunc)
	if err != nil {
		return nil, err
	}
	g.Bounds = shadow.bounds()

	transform(g.Positions, opts.Direction)
	return g, nil
}
