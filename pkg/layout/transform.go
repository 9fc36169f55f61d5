package layout

import "math"

// transform remaps positions in place for the requested direction.
// The raw layout is top-to-bottom with y increasing downward, so BT is
// the identity. The direction has been validated before this point.
func transform(pos map[string]Point, dir Direction) {
	switch dir {
	case DirBottomTop:
		// raw layout, untouched
	case DirTopBottom:
		for id, p := range pos {
			pos[id] = Point{X: p.X, Y: -p.Y}
		}
	case DirLeftRight:
		for id, p := range pos {
			pos[id] = Point{X: -p.Y, Y: p.X}
		}
	case DirRightLeft:
		for id, p := range pos {
			pos[id] = Point{X: -p.Y, Y: -p.X}
		}
	case DirRadial:
		radial(pos)
	}
}

// radial wraps the raw layout around the origin: the x extent becomes an
// angle sweep just short of a full turn, the y extent a radius. A minimum
// radius of 20% of the tree height keeps the innermost ring off the
// center, and the +1 in the sweep keeps the first and last columns apart.
func radial(pos map[string]Point) {
	if len(pos) == 0 {
		return
	}

	box := positionBounds(pos)
	r0 := 0.2 * box.Height()
	thetaUnit := 2 * math.Pi / (box.Width() + 1)

	for id, p := range pos {
		r := p.Y - box.MinY + r0
		theta := (p.X - box.MinX) * thetaUnit
		pos[id] = Point{X: r * math.Cos(theta), Y: r * math.Sin(theta)}
	}
}

// positionBounds returns the bounding box of the emitted positions.
// Unlike Graph.Bounds this excludes any anchor root, which is exactly
// what the radial sweep needs.
func positionBounds(pos map[string]Point) Rect {
	r := Rect{
		MinX: math.Inf(1), MaxX: math.Inf(-1),
		MinY: math.Inf(1), MaxY: math.Inf(-1),
	}
	for _, p := range pos {
		r.MinX = min(r.MinX, p.X)
		r.MaxX = max(r.MaxX, p.X)
		r.MinY = min(r.MinY, p.Y)
		r.MaxY = max(r.MaxY, p.Y)
	}
	return r
}
