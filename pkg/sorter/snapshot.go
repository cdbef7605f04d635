package sorter

import "github.com/matzehuels/isosort/pkg/depgraph"

// Snapshot copies the current graph and draw orders. Nodes appear in the
// order of the last frame when one has run, and in traversal order
// otherwise.
func (s *Sorter) Snapshot() *depgraph.Graph {
	s.mu.Lock()
	defer s.mu.Unlock()

	nodes := s.sorted
	if len(nodes) != len(s.static)+len(s.dynamic) {
		nodes = append(append([]*Object(nil), s.dynamic...), s.static...)
	}

	g := depgraph.New()
	for _, o := range nodes {
		_ = g.AddNode(depgraph.Node{
			ID:        o.id,
			Kind:      o.shape.Kind.String(),
			Dynamic:   o.dynamic,
			Order:     o.order,
			P1:        o.shape.P1,
			P2:        o.shape.P2,
			Footprint: o.footprint,
		})
	}
	for _, o := range nodes {
		for _, dep := range o.dynamicDeps {
			if dep.registered {
				_ = g.AddEdge(depgraph.Edge{From: o.id, To: dep.id})
			}
		}
		for _, dep := range o.staticDeps {
			_ = g.AddEdge(depgraph.Edge{From: o.id, To: dep.id, Static: true})
		}
	}
	return g
}
