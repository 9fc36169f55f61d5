package layout_test

import (
	"fmt"
	"sort"

	"github.com/treekit/tidytree/pkg/layout"
	"github.com/treekit/tidytree/pkg/tree"
)

func ExampleRender() {
	trie := tree.Build(tree.Normalize([]string{"ab", "ac", "abcd", "abce"}))

	g, err := layout.Render(trie, layout.Options[string]{
		DepthLimit: 10,
		Direction:  layout.DirTopBottom,
	})
	if err != nil {
		panic(err)
	}

	fmt.Println("nodes:", g.Len())
	fmt.Println("branches:", len(g.Branches))
	fmt.Println("leaves:", len(g.Leaves))
	fmt.Println("edges:", len(g.Edges))
	// Output:
	// nodes: 6
	// branches: 2
	// leaves: 4
	// edges: 5
}

func ExampleRender_positions() {
	trie := tree.Build(tree.Normalize([]string{"ab", "ac"}))

	g, err := layout.Render(trie, layout.Options[string]{Direction: layout.DirBottomTop})
	if err != nil {
		panic(err)
	}

	type entry struct {
		label string
		p     layout.Point
	}
	var entries []entry
	for id, p := range g.Positions {
		label, ok := g.Branches[id]
		if !ok {
			label = g.Leaves[id]
		}
		entries = append(entries, entry{label, p})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].p.Y != entries[j].p.Y {
			return entries[i].p.Y < entries[j].p.Y
		}
		return entries[i].p.X < entries[j].p.X
	})
	for _, e := range entries {
		fmt.Printf("%s (%.1f, %.1f)\n", e.label, e.p.X, e.p.Y)
	}
	// Output:
	// A (0.5, 0.0)
	// B (0.0, 1.0)
	// C (1.0, 1.0)
}
