// Package depgraph holds a read-only snapshot of a sorter's dependency graph.
//
// # Overview
//
// The sorter keeps its edges inside the objects it sorts and rebuilds the
// dynamic part every frame. After a frame completes, [sorter.Sorter.Snapshot]
// copies the combined graph into a [Graph] so it can be inspected, validated,
// exported and rendered without holding the sorter's lock.
//
// An edge From -> To means "From depends on To": To is drawn first. Every
// node carries the draw order it was assigned in the frame the snapshot was
// taken.
//
// # Validation
//
// [Graph.Validate] checks that all edges reference known nodes and that the
// graph is acyclic, using depth-first search with white/gray/black coloring.
// [Graph.CheckOrder] checks that every surviving edge is honored by the
// assigned draw orders.
//
// # Serialization
//
// [WriteJSON] and [ReadJSON] round-trip a snapshot through a simple format:
//
//	{
//	  "nodes": [{"id": "tree", "kind": "point", "order": 0, ...}],
//	  "edges": [{"from": "player", "to": "tree", "static": false}]
//	}
//
// # Concurrency
//
// A Graph is not modified after construction by the sorter and is safe for
// concurrent readers. Building one with [Graph.AddNode] and [Graph.AddEdge]
// requires external synchronization.
//
// [sorter.Sorter.Snapshot]: github.com/matzehuels/isosort/pkg/sorter.Sorter.Snapshot
package depgraph
