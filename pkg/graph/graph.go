// Package graph provides the canonical JSON serialization for laid-out
// trees.
//
// This is the wire format between the layout engine and its consumers:
// files written by the CLI, API responses, and cache entries. The format
// is a flat node-link document:
//
//	{
//	  "direction": "TB",
//	  "nodes": [{"id": "n1", "label": "A", "x": 1.0, "y": 0.0}],
//	  "edges": [{"from": "n1", "to": "n2"}]
//	}
//
// Nodes are sorted by ID on output for deterministic serialization;
// edges keep their traversal order.
package graph

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/treekit/tidytree/pkg/layout"
)

// Node is one positioned node of a serialized layout.
type Node struct {
	ID    string  `json:"id"`
	Label string  `json:"label,omitempty"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Leaf  bool    `json:"leaf,omitempty"`
}

// Edge is a directed parent→child connection.
type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Document is the serialization format for a single layout result.
type Document struct {
	Direction string `json:"direction"`
	Nodes     []Node `json:"nodes"`
	Edges     []Edge `json:"edges"`
}

// NodeCount returns the number of nodes in the document.
func (d *Document) NodeCount() int { return len(d.Nodes) }

// EdgeCount returns the number of edges in the document.
func (d *Document) EdgeCount() int { return len(d.Edges) }

// Nodes carry the payload rendered through label; FromLayout converts a
// layout result whose payload is already a string. For other payload
// types use [FromLayoutFunc].
func FromLayout(g *layout.Graph[string], dir layout.Direction) Document {
	return FromLayoutFunc(g, dir, func(s string) string { return s })
}

// FromLayoutFunc converts a layout result to its serialization format,
// rendering each payload to a label with the given function.
// Nodes are sorted by ID for deterministic output.
func FromLayoutFunc[T any](g *layout.Graph[T], dir layout.Direction, label func(T) string) Document {
	doc := Document{
		Direction: string(dir),
		Nodes:     make([]Node, 0, g.Len()),
		Edges:     make([]Edge, 0, len(g.Edges)),
	}

	for id, v := range g.Branches {
		p := g.Positions[id]
		doc.Nodes = append(doc.Nodes, Node{ID: id, Label: label(v), X: p.X, Y: p.Y})
	}
	for id, v := range g.Leaves {
		p := g.Positions[id]
		doc.Nodes = append(doc.Nodes, Node{ID: id, Label: label(v), X: p.X, Y: p.Y, Leaf: true})
	}
	slices.SortFunc(doc.Nodes, func(a, b Node) int {
		return strings.Compare(a.ID, b.ID)
	})

	for _, e := range g.Edges {
		doc.Edges = append(doc.Edges, Edge{From: e.From, To: e.To})
	}
	return doc
}

// Validate checks document integrity: unique node IDs and edge endpoints
// that exist in the node set.
func (d *Document) Validate() error {
	ids := make(map[string]struct{}, len(d.Nodes))
	for _, n := range d.Nodes {
		if n.ID == "" {
			return fmt.Errorf("node with empty ID")
		}
		if _, dup := ids[n.ID]; dup {
			return fmt.Errorf("duplicate node ID %q", n.ID)
		}
		ids[n.ID] = struct{}{}
	}
	for _, e := range d.Edges {
		if _, ok := ids[e.From]; !ok {
			return fmt.Errorf("edge source %q not in node set", e.From)
		}
		if _, ok := ids[e.To]; !ok {
			return fmt.Errorf("edge target %q not in node set", e.To)
		}
	}
	return nil
}

// Marshal serializes a Document to pretty-printed JSON bytes.
func Marshal(d Document) ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// Unmarshal deserializes JSON bytes into a validated Document.
func Unmarshal(data []byte) (Document, error) {
	var d Document
	if err := json.Unmarshal(data, &d); err != nil {
		return Document{}, fmt.Errorf("unmarshal layout document: %w", err)
	}
	if err := d.Validate(); err != nil {
		return Document{}, err
	}
	return d, nil
}

// Write writes a Document as JSON to an io.Writer.
func Write(d Document, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteFile writes a Document to a JSON file with 0644 permissions.
func WriteFile(d Document, path string) error {
	data, err := Marshal(d)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadFile reads and validates a Document from a JSON file.
func ReadFile(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("read %s: %w", path, err)
	}
	return Unmarshal(data)
}
