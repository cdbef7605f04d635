package sorter

import "github.com/matzehuels/isosort/pkg/iso"

// refreshDynamic re-reads geometry for dynamic objects that moved.
func (s *Sorter) refreshDynamic() int {
	moved := 0
	for _, o := range s.dynamic {
		changed, err := o.refresh()
		if err != nil {
			s.logger.Warn("keeping previous geometry", "id", o.id, "err", err)
			continue
		}
		if changed {
			moved++
		}
	}
	return moved
}

// buildDynamicDeps clears last frame's dynamic edges and rebuilds them.
// Static-static edges are left alone.
func (s *Sorter) buildDynamicDeps() {
	for _, o := range s.static {
		o.dynamicDeps.clear()
	}
	for _, o := range s.dynamic {
		o.dynamicDeps.clear()
	}

	for _, d := range s.dynamic {
		for _, st := range s.static {
			if !d.overlaps(st) {
				continue
			}
			switch iso.Compare(d.shape, st.shape) {
			case iso.Behind:
				st.dynamicDeps.add(d)
			case iso.Front:
				d.dynamicDeps.add(st)
			}
		}

		// Each ordered pair is visited from both sides; only the "d is
		// behind" outcome adds an edge here. Contradictions between the two
		// visits are left to the cycle breaker.
		for _, other := range s.dynamic {
			if other == d || !d.overlaps(other) {
				continue
			}
			if iso.Compare(d.shape, other.shape) == iso.Behind {
				other.dynamicDeps.add(d)
			}
		}
	}
}
