package sorter

import (
	"fmt"
	"slices"

	"github.com/matzehuels/isosort/pkg/iso"
)

// Register adds o to the sorter. Registering an object that is already
// registered first unregisters it, so repeated calls are idempotent.
//
// Static objects are compared against every static object whose footprint
// overlaps theirs; the resulting edges are kept until one side is
// unregistered. Dynamic objects are only evaluated per frame.
func (s *Sorter) Register(o *Object) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.register(o)
}

// Unregister removes o and every static edge touching it. Unregistering an
// unknown object does nothing.
func (s *Sorter) Unregister(o *Object) {
	if o == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.unregister(o)
}

// SetDynamic moves o between the static and dynamic sets. It is
// equivalent to unregistering o, flipping its category and registering it
// again.
func (s *Sorter) SetDynamic(o *Object, dynamic bool) error {
	if o == nil {
		return ErrNilObject
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.unregister(o)
	o.dynamic = dynamic
	return s.register(o)
}

// Refresh re-registers o if its transform changed since the last check.
// Use it after moving a static object; dynamic objects are refreshed by
// [Sorter.Update].
func (s *Sorter) Refresh(o *Object) (bool, error) {
	if o == nil || o.transform == nil {
		return false, ErrNilObject
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !o.transform.Changed() {
		return false, nil
	}
	return true, s.register(o)
}

func (s *Sorter) register(o *Object) error {
	if o == nil || o.transform == nil {
		return ErrNilObject
	}
	if o.id == "" {
		return ErrInvalidObjectID
	}
	if o.registered {
		s.unregister(o)
	}
	if other, ok := s.byID[o.id]; ok && other != o {
		return fmt.Errorf("%w: %s", ErrDuplicateObjectID, o.id)
	}
	if err := o.pull(); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidShape, o.id, err)
	}

	if o.dynamic {
		s.dynamic = append(s.dynamic, o)
	} else {
		s.linkStatic(o)
		s.static = append(s.static, o)
	}
	o.registered = true
	s.byID[o.id] = o

	s.logger.Debug("registered object",
		"id", o.id,
		"dynamic", o.dynamic,
		"static_deps", len(o.staticDeps),
		"static_dependents", len(o.staticInverse))
	return nil
}

// linkStatic compares a new static object with the existing static set.
func (s *Sorter) linkStatic(o *Object) {
	for _, other := range s.static {
		if !o.overlaps(other) {
			continue
		}
		switch iso.Compare(o.shape, other.shape) {
		case iso.Behind:
			other.staticDeps.add(o)
			o.staticInverse.add(other)
		case iso.Front:
			o.staticDeps.add(other)
			other.staticInverse.add(o)
		}
	}
}

func (s *Sorter) unregister(o *Object) {
	if !o.registered {
		return
	}
	if o.dynamic {
		s.dynamic = removeObject(s.dynamic, o)
	} else {
		s.static = removeObject(s.static, o)
		s.unlinkStatic(o)
	}
	o.dynamicDeps.clear()
	o.registered = false
	o.slot = -1
	delete(s.byID, o.id)
	s.sorted = removeObject(s.sorted, o)
}

// unlinkStatic retracts every static edge touching o, in both directions.
func (s *Sorter) unlinkStatic(o *Object) {
	for _, dependent := range o.staticInverse {
		dependent.staticDeps.remove(o)
	}
	for _, dep := range o.staticDeps {
		dep.staticInverse.remove(o)
	}
	o.staticInverse.clear()
	o.staticDeps.clear()
}

func removeObject(list []*Object, o *Object) []*Object {
	i := slices.Index(list, o)
	if i < 0 {
		return list
	}
	return slices.Delete(list, i, i+1)
}
