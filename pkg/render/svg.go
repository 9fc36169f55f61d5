// Package render turns layout documents into images. It provides a
// self-contained SVG scatter renderer and a Graphviz-backed DOT path
// for SVG and PNG output.
package render

import (
	"bytes"
	"fmt"

	"github.com/treekit/tidytree/pkg/graph"
)

const (
	defaultWidth       = 800.0
	defaultHeight      = 600.0
	defaultMargin      = 40.0
	defaultNodeRadius  = 6.0
	defaultBranchColor = "#00b7c3"
	defaultLeafColor   = "#d13438"
)

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	width       float64
	height      float64
	margin      float64
	radius      float64
	branchColor string
	leafColor   string
	labels      bool
}

// WithSize sets the output frame dimensions in pixels.
func WithSize(width, height float64) SVGOption {
	return func(r *svgRenderer) { r.width, r.height = width, height }
}

// WithNodeRadius sets the node circle radius in pixels.
func WithNodeRadius(radius float64) SVGOption {
	return func(r *svgRenderer) { r.radius = radius }
}

// WithColors overrides the branch and leaf fill colors.
func WithColors(branch, leaf string) SVGOption {
	return func(r *svgRenderer) { r.branchColor, r.leafColor = branch, leaf }
}

// WithLabels draws each node's label next to its circle.
func WithLabels() SVGOption {
	return func(r *svgRenderer) { r.labels = true }
}

// SVG renders a layout document as a standalone SVG image. Node
// positions are scaled to fit the frame, preserving their relative
// arrangement. Edges are drawn beneath nodes, labels on top.
func SVG(doc graph.Document, opts ...SVGOption) []byte {
	r := svgRenderer{
		width:       defaultWidth,
		height:      defaultHeight,
		margin:      defaultMargin,
		radius:      defaultNodeRadius,
		branchColor: defaultBranchColor,
		leafColor:   defaultLeafColor,
	}
	for _, opt := range opts {
		opt(&r)
	}

	project := r.projection(doc)
	byID := make(map[string]graph.Node, len(doc.Nodes))
	for _, n := range doc.Nodes {
		byID[n.ID] = n
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		r.width, r.height, r.width, r.height)

	for _, e := range doc.Edges {
		from, okF := byID[e.From]
		to, okT := byID[e.To]
		if !okF || !okT {
			continue
		}
		x1, y1 := project(from.X, from.Y)
		x2, y2 := project(to.X, to.Y)
		fmt.Fprintf(&buf, `  <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="#9e9e9e" stroke-width="1.5"/>`+"\n",
			x1, y1, x2, y2)
	}

	for _, n := range doc.Nodes {
		x, y := project(n.X, n.Y)
		fill := r.branchColor
		if n.Leaf {
			fill = r.leafColor
		}
		fmt.Fprintf(&buf, `  <circle id="node-%s" cx="%.2f" cy="%.2f" r="%.1f" fill="%s"/>`+"\n",
			escape(n.ID), x, y, r.radius, fill)
	}

	if r.labels {
		for _, n := range doc.Nodes {
			if n.Label == "" {
				continue
			}
			x, y := project(n.X, n.Y)
			fmt.Fprintf(&buf, `  <text x="%.2f" y="%.2f" font-size="12" font-family="sans-serif">%s</text>`+"\n",
				x+r.radius+3, y+4, escape(n.Label))
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// projection maps layout coordinates to frame pixels. SVG's y axis
// grows downward, so layout y is flipped.
func (r *svgRenderer) projection(doc graph.Document) func(x, y float64) (float64, float64) {
	minX, maxX := bound(doc, func(n graph.Node) float64 { return n.X })
	minY, maxY := bound(doc, func(n graph.Node) float64 { return n.Y })

	spanX := maxX - minX
	spanY := maxY - minY
	innerW := r.width - 2*r.margin
	innerH := r.height - 2*r.margin

	return func(x, y float64) (float64, float64) {
		px := r.width / 2
		if spanX > 0 {
			px = r.margin + (x-minX)/spanX*innerW
		}
		py := r.height / 2
		if spanY > 0 {
			py = r.margin + (maxY-y)/spanY*innerH
		}
		return px, py
	}
}

func bound(doc graph.Document, f func(graph.Node) float64) (min, max float64) {
	for i, n := range doc.Nodes {
		v := f(n)
		if i == 0 || v < min {
			min = v
		}
		if i == 0 || v > max {
			max = v
		}
	}
	return min, max
}

func escape(s string) string {
	var buf bytes.Buffer
	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '"':
			buf.WriteString("&quot;")
		default:
			buf.WriteRune(r)
		}
	}
	return buf.String()
}
