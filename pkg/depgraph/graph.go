package depgraph

import (
	"errors"
	"fmt"
	"slices"

	"github.com/matzehuels/isosort/pkg/geom"
)

var (
	// ErrInvalidNodeID is returned by [Graph.AddNode] when the node ID is empty.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [Graph.AddNode] when a node with the
	// same ID already exists.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownSourceNode is returned by [Graph.AddEdge] when the From node
	// does not exist.
	ErrUnknownSourceNode = errors.New("unknown source node")

	// ErrUnknownTargetNode is returned by [Graph.AddEdge] when the To node
	// does not exist.
	ErrUnknownTargetNode = errors.New("unknown target node")

	// ErrSelfDependency is returned by [Graph.AddEdge] for an edge from a node
	// to itself. The sorter never produces one.
	ErrSelfDependency = errors.New("node cannot depend on itself")

	// ErrGraphHasCycle is returned by [Graph.Validate] when a cycle survived
	// cycle breaking.
	ErrGraphHasCycle = errors.New("graph contains a cycle")

	// ErrOrderViolation is returned by [Graph.CheckOrder] when a node is not
	// drawn strictly after one of its dependencies.
	ErrOrderViolation = errors.New("draw order violates dependency")
)

// Node is one sorted object as it was at snapshot time.
type Node struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Dynamic   bool      `json:"dynamic,omitempty"`
	Order     int       `json:"order"`
	P1        geom.Vec2 `json:"p1"`
	P2        geom.Vec2 `json:"p2"`
	Footprint geom.Rect `json:"footprint"`
}

// Edge says From must be drawn after To. Static edges were computed at
// registration between two static objects; the rest were built for the
// frame.
type Edge struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Static bool   `json:"static,omitempty"`
}

// Graph is a directed dependency graph with insertion-ordered nodes.
// The zero value is not usable; use [New].
type Graph struct {
	ids      []string
	nodes    map[string]*Node
	edges    []Edge
	outgoing map[string][]string
	incoming map[string][]string
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		nodes:    make(map[string]*Node),
		outgoing: make(map[string][]string),
		incoming: make(map[string][]string),
	}
}

// AddNode adds n to the graph.
func (g *Graph) AddNode(n Node) error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	if _, exists := g.nodes[n.ID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateNodeID, n.ID)
	}
	node := n
	g.nodes[n.ID] = &node
	g.ids = append(g.ids, n.ID)
	return nil
}

// AddEdge adds a dependency between two existing nodes.
func (g *Graph) AddEdge(e Edge) error {
	if _, ok := g.nodes[e.From]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownSourceNode, e.From)
	}
	if _, ok := g.nodes[e.To]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTargetNode, e.To)
	}
	if e.From == e.To {
		return fmt.Errorf("%w: %s", ErrSelfDependency, e.From)
	}
	g.edges = append(g.edges, e)
	g.outgoing[e.From] = append(g.outgoing[e.From], e.To)
	g.incoming[e.To] = append(g.incoming[e.To], e.From)
	return nil
}

// Node returns the node with the given ID.
func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Nodes returns all nodes in insertion order.
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, len(g.ids))
	for i, id := range g.ids {
		out[i] = g.nodes[id]
	}
	return out
}

// NodesByOrder returns all nodes sorted by draw order, back to front.
func (g *Graph) NodesByOrder() []*Node {
	out := g.Nodes()
	slices.SortStableFunc(out, func(a, b *Node) int { return a.Order - b.Order })
	return out
}

// Edges returns a copy of all edges in insertion order.
func (g *Graph) Edges() []Edge { return slices.Clone(g.edges) }

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Children returns the IDs id depends on. The slice must not be modified.
func (g *Graph) Children(id string) []string { return g.outgoing[id] }

// Parents returns the IDs that depend on id. The slice must not be modified.
func (g *Graph) Parents(id string) []string { return g.incoming[id] }

// DependsOn reports whether an edge from -> to exists.
func (g *Graph) DependsOn(from, to string) bool {
	return slices.Contains(g.outgoing[from], to)
}

// Validate returns ErrGraphHasCycle if any directed cycle exists.
func (g *Graph) Validate() error {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int, len(g.nodes))
	var hasCycle bool

	var dfs func(id string)
	dfs = func(id string) {
		color[id] = gray
		for _, child := range g.outgoing[id] {
			switch color[child] {
			case white:
				dfs(child)
			case gray:
				hasCycle = true
			}
			if hasCycle {
				return
			}
		}
		color[id] = black
	}

	for _, id := range g.ids {
		if color[id] == white {
			dfs(id)
			if hasCycle {
				return ErrGraphHasCycle
			}
		}
	}
	return nil
}

// CheckOrder verifies that each node's order is strictly greater than the
// order of every node it depends on.
func (g *Graph) CheckOrder() error {
	for _, e := range g.edges {
		from, to := g.nodes[e.From], g.nodes[e.To]
		if from.Order <= to.Order {
			return fmt.Errorf("%w: %s (%d) depends on %s (%d)",
				ErrOrderViolation, e.From, from.Order, e.To, to.Order)
		}
	}
	return nil
}
