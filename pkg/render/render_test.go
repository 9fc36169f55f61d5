package render

import (
	"strings"
	"testing"

	"github.com/treekit/tidytree/pkg/graph"
)

func testDoc() graph.Document {
	return graph.Document{
		Direction: "TB",
		Nodes: []graph.Node{
			{ID: "a", Label: "A", X: 1, Y: 0},
			{ID: "b", Label: "B", X: 0.5, Y: -1, Leaf: true},
			{ID: "c", Label: "C", X: 1.5, Y: -1},
		},
		Edges: []graph.Edge{
			{From: "a", To: "b"},
			{From: "a", To: "c"},
		},
	}
}

func TestSVG_ContainsNodesAndEdges(t *testing.T) {
	out := string(SVG(testDoc()))

	if !strings.HasPrefix(out, "<svg ") {
		t.Fatalf("output does not start with <svg: %.60s", out)
	}
	if got := strings.Count(out, "<circle"); got != 3 {
		t.Errorf("circle count = %d, want 3", got)
	}
	if got := strings.Count(out, "<line"); got != 2 {
		t.Errorf("line count = %d, want 2", got)
	}
}

func TestSVG_LeafColor(t *testing.T) {
	out := string(SVG(testDoc()))

	if got := strings.Count(out, defaultLeafColor); got != 1 {
		t.Errorf("leaf color occurrences = %d, want 1", got)
	}
	if got := strings.Count(out, defaultBranchColor); got != 2 {
		t.Errorf("branch color occurrences = %d, want 2", got)
	}
}

func TestSVG_Options(t *testing.T) {
	out := string(SVG(testDoc(),
		WithSize(400, 300),
		WithColors("#111111", "#222222"),
		WithLabels(),
	))

	if !strings.Contains(out, `viewBox="0 0 400.0 300.0"`) {
		t.Error("custom size not applied")
	}
	if !strings.Contains(out, "#111111") || !strings.Contains(out, "#222222") {
		t.Error("custom colors not applied")
	}
	if got := strings.Count(out, "<text"); got != 3 {
		t.Errorf("label count = %d, want 3", got)
	}
}

func TestSVG_SingleNode(t *testing.T) {
	doc := graph.Document{Nodes: []graph.Node{{ID: "only", X: 5, Y: 5}}}
	out := string(SVG(doc))

	// Zero span in both axes: the node lands at the frame center.
	if !strings.Contains(out, `cx="400.00" cy="300.00"`) {
		t.Errorf("single node not centered: %s", out)
	}
}

func TestSVG_EscapesLabels(t *testing.T) {
	doc := graph.Document{Nodes: []graph.Node{{ID: "x", Label: `a<b&"c"`}}}
	out := string(SVG(doc, WithLabels()))

	if strings.Contains(out, "a<b") {
		t.Error("label not escaped")
	}
	if !strings.Contains(out, "a&lt;b&amp;&quot;c&quot;") {
		t.Errorf("escaped label missing: %s", out)
	}
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(testDoc())

	if !strings.HasPrefix(dot, "graph G {") {
		t.Fatalf("unexpected header: %.30s", dot)
	}
	if !strings.Contains(dot, "layout=neato") {
		t.Error("neato layout missing")
	}
	if !strings.Contains(dot, `pos="1.0000,0.0000!"`) {
		t.Error("pinned position missing")
	}
	if !strings.Contains(dot, `"a" -- "b";`) {
		t.Error("edge missing")
	}
	if got := strings.Count(dot, "pos="); got != 3 {
		t.Errorf("pinned positions = %d, want 3", got)
	}
}

func TestToDOT_LabelFallsBackToID(t *testing.T) {
	doc := graph.Document{Nodes: []graph.Node{{ID: "n42"}}}
	dot := ToDOT(doc)

	if !strings.Contains(dot, `label="n42"`) {
		t.Errorf("ID fallback label missing: %s", dot)
	}
}
