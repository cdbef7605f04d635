package sorter

import (
	"context"
	"time"

	"github.com/matzehuels/isosort/pkg/observability"
)

// Update runs one frame: refresh moved dynamic objects, rebuild dynamic
// edges, break cycles, sort, and push draw orders to the renderers.
//
// Update never fails. Cycles that survive the pass budget are reported in
// [Stats.Unresolved] and sorted on a best-effort basis.
func (s *Sorter) Update(ctx context.Context) Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()
	observability.Frame().OnFrameStart(ctx, len(s.static), len(s.dynamic))

	stats := Stats{
		Static:  len(s.static),
		Dynamic: len(s.dynamic),
	}
	stats.Moved = s.refreshDynamic()
	s.buildDynamicDeps()

	s.arena()
	cycles := s.breakCycles(ctx)
	stats.Passes = cycles.passes
	stats.CyclesBroken = cycles.broken
	stats.Unresolved = cycles.unresolved

	s.topoSort()
	s.applyOrder()

	for _, o := range s.all {
		stats.StaticEdges += len(o.staticDeps)
		stats.DynamicEdges += len(o.dynamicDeps)
	}
	stats.Duration = time.Since(start)

	if stats.Unresolved > 0 {
		s.logger.Warn("draw order is approximate",
			"unresolved_cycles", stats.Unresolved,
			"passes", stats.Passes)
	}
	observability.Frame().OnFrameComplete(ctx,
		stats.StaticEdges+stats.DynamicEdges,
		stats.CyclesBroken,
		stats.Unresolved > 0,
		stats.Duration)
	return stats
}
