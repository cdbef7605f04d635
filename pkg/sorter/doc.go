// Package sorter computes per-frame draw orders for sprites in an
// isometric scene.
//
// # Overview
//
// Sprites have no depth value. Instead, every pair of sprites whose
// footprints overlap is compared geometrically with [iso.Compare], and the
// verdicts become edges of a dependency graph: an edge A -> B means A is in
// front of B and must be drawn after it. Each frame the graph is cleaned of
// cycles and linearized into draw orders 0, 2, 4, ...
//
// # Static and Dynamic Objects
//
// Objects are registered as static (scenery that never moves) or dynamic
// (characters, projectiles). Edges between two static objects are computed
// once in [Sorter.Register] and retracted in [Sorter.Unregister]. Edges
// involving a dynamic object are thrown away and rebuilt in every
// [Sorter.Update], so the per-frame cost is O(S·D + D²) comparisons,
// further pruned by footprint overlap.
//
// # Frame Pipeline
//
// [Sorter.Update] runs these stages:
//
//  1. Refresh: dynamic objects whose [Transform] reports a change re-read
//     their anchors and footprint.
//  2. Build: dynamic edges are cleared and recomputed against every static
//     and dynamic object.
//  3. Break cycles: local verdicts can contradict each other. Up to
//     [Options.CyclePasses] depth-first sweeps remove the weakest dynamic
//     edge of each cycle found, preferring edges between two points and,
//     among those, the one spanning the widest horizontal gap.
//  4. Order: a depth-first topological sort emits each object after its
//     dependencies, and the resulting orders are pushed to each
//     [Renderer].
//
// Cycles that survive the pass budget are not errors. They are counted in
// [Stats.Unresolved] and the order degrades to a best-effort one.
//
// # Host Integration
//
// The host supplies geometry through [Transform] and receives orders
// through [Renderer]. A renderer that also implements [SecondaryRenderer]
// receives order+1 for a paired child layer.
//
//	s := sorter.New(sorter.Options{})
//	tree := sorter.NewObject("tree", false, sorter.FixedPoint(geom.V(4, 6), 2), treeSprite)
//	player := sorter.NewObject("player", true, playerTransform, playerSprite)
//	_ = s.Register(tree)
//	_ = s.Register(player)
//
//	for range ticker.C {
//	    s.Update(ctx)
//	}
//
// # Concurrency
//
// A Sorter serializes all calls with a mutex, so lifecycle calls from other
// goroutines never interleave with a frame in progress. Renderer and
// Transform methods are called with the lock held and must not call back
// into the Sorter.
//
// [iso.Compare]: github.com/matzehuels/isosort/pkg/iso.Compare
package sorter
