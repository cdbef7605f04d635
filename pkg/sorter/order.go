package sorter

// topoSort linearizes the combined graph depth-first, emitting every
// object after everything it depends on. Roots are visited dynamic first,
// then static, in registration order. Marking before recursing keeps a
// leftover cycle from looping; such a cycle gets some order, not a
// correct one.
func (s *Sorter) topoSort() {
	s.resetMarks()
	s.sorted = s.sorted[:0]
	for _, o := range s.all {
		s.visit(o)
	}
}

func (s *Sorter) visit(o *Object) {
	if s.marks[o.slot] != unvisited {
		return
	}
	s.marks[o.slot] = finished
	for _, dep := range o.dynamicDeps {
		s.visit(dep)
	}
	for _, dep := range o.staticDeps {
		s.visit(dep)
	}
	s.sorted = append(s.sorted, o)
}

// applyOrder hands out orders 0, step, 2*step, ... in sorted order.
func (s *Sorter) applyOrder() {
	for i, o := range s.sorted {
		o.apply(i * s.opts.OrderStep)
	}
}
