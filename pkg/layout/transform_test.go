package layout

import (
	"math"
	"testing"

	"github.com/treekit/tidytree/pkg/tree"
)

func scenarioTrie() *tree.Trie {
	return tree.Build(tree.Normalize([]string{"ab", "ac", "abcd", "abce"}))
}

func TestTransform_Rotations(t *testing.T) {
	raw := mustRender(t, scenarioTrie(), Options[string]{Direction: DirBottomTop})

	cases := []struct {
		dir Direction
		fn  func(Point) Point
	}{
		{DirTopBottom, func(p Point) Point { return Point{p.X, -p.Y} }},
		{DirLeftRight, func(p Point) Point { return Point{-p.Y, p.X} }},
		{DirRightLeft, func(p Point) Point { return Point{-p.Y, -p.X} }},
	}
	for _, tc := range cases {
		t.Run(string(tc.dir), func(t *testing.T) {
			g := mustRender(t, scenarioTrie(), Options[string]{Direction: tc.dir})
			for id, p := range raw.Positions {
				want := tc.fn(p)
				got, ok := g.Positions[id]
				if !ok {
					t.Fatalf("id %q missing", id)
				}
				if !almost(got.X, want.X) || !almost(got.Y, want.Y) {
					t.Errorf("id %q: got %v, want %v", id, got, want)
				}
			}
		})
	}
}

// TestTransform_RadialRoundTrip inverts the polar mapping and checks it
// recovers the raw positions.
func TestTransform_RadialRoundTrip(t *testing.T) {
	raw := mustRender(t, scenarioTrie(), Options[string]{Direction: DirBottomTop})
	rad := mustRender(t, scenarioTrie(), Options[string]{Direction: DirRadial})

	box := positionBounds(raw.Positions)
	r0 := 0.2 * box.Height()
	thetaUnit := 2 * math.Pi / (box.Width() + 1)

	for id, p := range rad.Positions {
		r := math.Hypot(p.X, p.Y)
		theta := math.Atan2(p.Y, p.X)
		if theta < -tolerance {
			theta += 2 * math.Pi
		}

		x := theta/thetaUnit + box.MinX
		y := r - r0 + box.MinY

		want := raw.Positions[id]
		if !almost(x, want.X) || !almost(y, want.Y) {
			t.Errorf("id %q: inverse radial = (%g, %g), want (%g, %g)", id, x, y, want.X, want.Y)
		}
	}
}

func TestRadial_KeepsNodesOffCenter(t *testing.T) {
	g := mustRender(t, scenarioTrie(), Options[string]{Direction: DirRadial})

	for id, p := range g.Positions {
		if math.Hypot(p.X, p.Y) < tolerance {
			t.Errorf("id %q placed at the center", id)
		}
	}
}

func TestPositionBounds(t *testing.T) {
	pos := map[string]Point{
		"a": {X: -1, Y: 2},
		"b": {X: 3, Y: -4},
		"c": {X: 0, Y: 0},
	}
	got := positionBounds(pos)
	want := Rect{MinX: -1, MaxX: 3, MinY: -4, MaxY: 2}
	if got != want {
		t.Errorf("positionBounds = %+v, want %+v", got, want)
	}
}
