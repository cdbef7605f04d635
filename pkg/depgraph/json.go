package depgraph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

type document struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// WriteJSON encodes g as indented JSON. Nodes keep insertion order.
func WriteJSON(g *Graph, w io.Writer) error {
	doc := document{
		Nodes: make([]Node, 0, g.NodeCount()),
		Edges: g.Edges(),
	}
	for _, n := range g.Nodes() {
		doc.Nodes = append(doc.Nodes, *n)
	}
	if doc.Edges == nil {
		doc.Edges = []Edge{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes g to a JSON file at path.
func ExportJSON(g *Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(g, f)
}

// ReadJSON decodes a graph written by [WriteJSON]. Edges referencing
// unknown nodes are rejected; cycles are not, so a snapshot with
// unresolved cycles can still be inspected.
func ReadJSON(r io.Reader) (*Graph, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	g := New()
	for _, n := range doc.Nodes {
		if err := g.AddNode(n); err != nil {
			return nil, fmt.Errorf("node %q: %w", n.ID, err)
		}
	}
	for _, e := range doc.Edges {
		if err := g.AddEdge(e); err != nil {
			return nil, fmt.Errorf("edge %s->%s: %w", e.From, e.To, err)
		}
	}
	return g, nil
}

// ImportJSON reads a graph from a JSON file at path.
func ImportJSON(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}

// MarshalJSON encodes g in the [WriteJSON] format without indentation.
func (g *Graph) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteJSON(g, &buf); err != nil {
		return nil, err
	}
	var compact bytes.Buffer
	if err := json.Compact(&compact, buf.Bytes()); err != nil {
		return nil, err
	}
	return compact.Bytes(), nil
}

// UnmarshalJSON replaces g with the graph decoded from data.
func (g *Graph) UnmarshalJSON(data []byte) error {
	decoded, err := ReadJSON(bytes.NewReader(data))
	if err != nil {
		return err
	}
	*g = *decoded
	return nil
}
