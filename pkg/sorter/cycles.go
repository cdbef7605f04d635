package sorter

import (
	"context"
	"math"

	"github.com/matzehuels/isosort/pkg/observability"
)

type mark uint8

const (
	unvisited mark = iota
	onStack
	finished
)

// arena lays out every registered object in traversal order, dynamic
// first, and sizes the mark array to match.
func (s *Sorter) arena() {
	s.all = append(s.all[:0], s.dynamic...)
	s.all = append(s.all, s.static...)
	for i, o := range s.all {
		o.slot = i
	}
	if cap(s.marks) < len(s.all) {
		s.marks = make([]mark, len(s.all))
	}
	s.marks = s.marks[:len(s.all)]
}

func (s *Sorter) resetMarks() {
	clear(s.marks)
}

// cycleResult summarizes the cycle-breaking stage of a frame.
type cycleResult struct {
	passes     int
	broken     int
	unresolved int
}

// breakCycles sweeps the combined graph up to CyclePasses times, removing
// the weakest dynamic edge of every cycle found. It stops after the first
// sweep that removes nothing.
func (s *Sorter) breakCycles(ctx context.Context) cycleResult {
	var res cycleResult
	for res.passes < s.opts.CyclePasses {
		res.passes++
		s.resetMarks()
		s.stack = s.stack[:0]

		removed := 0
		for _, o := range s.all {
			removed += s.sweep(ctx, o)
		}
		res.broken += removed
		if removed == 0 {
			break
		}
	}

	res.unresolved = s.countCycles()
	if res.unresolved > 0 {
		s.logger.Debug("cycles left after breaking",
			"cycles", res.unresolved,
			"passes", res.passes)
	}
	return res
}

// sweep is a depth-first walk from o that breaks every cycle it closes.
// It returns the number of edges removed.
func (s *Sorter) sweep(ctx context.Context, o *Object) int {
	s.stack = append(s.stack, o)
	defer func() { s.stack = s.stack[:len(s.stack)-1] }()

	switch s.marks[o.slot] {
	case onStack:
		if s.removeWeakest(ctx) {
			return 1
		}
		return 0
	case finished:
		return 0
	}

	s.marks[o.slot] = onStack
	removed := 0
	// Removal can shrink the slice being walked; index again each step.
	for i := 0; i < len(o.dynamicDeps); i++ {
		removed += s.sweep(ctx, o.dynamicDeps[i])
	}
	for i := 0; i < len(o.staticDeps); i++ {
		removed += s.sweep(ctx, o.staticDeps[i])
	}
	s.marks[o.slot] = finished
	return removed
}

// removeWeakest deletes one edge of the cycle on top of the stack. The top
// element is the node that closed the cycle; the cycle runs from its
// earlier occurrence to the top.
//
// Only dynamic edges can be removed. Among them, edges between two points
// are preferred, and the one spanning the widest horizontal distance wins.
func (s *Sorter) removeWeakest(ctx context.Context) bool {
	n := len(s.stack)
	if n < 2 {
		return false
	}
	top := s.stack[n-1]
	start := 0
	for i := n - 2; i >= 0; i-- {
		if s.stack[i] == top {
			start = i
			break
		}
	}

	weakest := -1
	longest := math.Inf(-1)
	pick := func(pointsOnly bool) {
		for i := start; i < n-1; i++ {
			a, b := s.stack[i], s.stack[i+1]
			if !a.dynamicDeps.has(b) {
				continue
			}
			if pointsOnly && !(a.shape.IsPoint() && b.shape.IsPoint()) {
				continue
			}
			if d := math.Abs(a.shape.Mid().X - b.shape.Mid().X); d > longest {
				weakest, longest = i, d
			}
		}
	}
	pick(true)
	if weakest < 0 {
		pick(false)
	}
	if weakest < 0 {
		return false
	}

	from, to := s.stack[weakest], s.stack[weakest+1]
	from.dynamicDeps.remove(to)
	s.logger.Debug("broke cycle", "from", from.id, "to", to.id, "len", n-1-start)
	observability.Frame().OnCycleBroken(ctx, from.id, to.id, n-1-start)
	return true
}

// countCycles counts back edges in the combined graph without modifying it.
func (s *Sorter) countCycles() int {
	s.resetMarks()
	count := 0
	var visit func(o *Object)
	visit = func(o *Object) {
		s.marks[o.slot] = onStack
		for _, list := range [2]deps{o.dynamicDeps, o.staticDeps} {
			for _, dep := range list {
				switch s.marks[dep.slot] {
				case unvisited:
					visit(dep)
				case onStack:
					count++
				}
			}
		}
		s.marks[o.slot] = finished
	}
	for _, o := range s.all {
		if s.marks[o.slot] == unvisited {
			visit(o)
		}
	}
	return count
}
