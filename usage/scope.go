package usage

// Scope aggregates usage for a set of resources within one pass or encoder,
// generalized from a single resource kind to every kind sharing the dense
// Index space. Used by the resource-command generator to detect conflicting
// usages of the same resource inside one scope and to merge compatible ones
// before emitting residency hints.
type Scope struct {
	aggregate []Type
	stages    []Stage
	owned     []bool
	count     int
}

// NewScope returns an empty scope.
func NewScope() *Scope {
	return &Scope{}
}

// ConflictError reports that two incompatible usages of the same resource
// occurred within a scope that cannot distinguish between them (e.g. a
// write and a different write with no ordering to fall back on).
type ConflictError struct {
	Index    Index
	Existing Type
	New      Type
}

func (e *ConflictError) Error() string {
	return "usage conflict: incompatible usage types in the same scope"
}

// Add merges t/s into the aggregate usage recorded for index. Two read-only
// usages always merge; when either the recorded usage or t involves a write,
// they merge only if identical (Type.IsCompatible), otherwise a
// *ConflictError is returned and the scope is left unchanged.
func (s *Scope) Add(index Index, t Type, st Stage) error {
	s.ensureSize(int(index) + 1)
	if s.owned[index] {
		existing := s.aggregate[index]
		if !existing.IsCompatible(t) {
			return &ConflictError{Index: index, Existing: existing, New: t}
		}
		s.aggregate[index] = existing | t
		s.stages[index] |= st
		return nil
	}
	s.aggregate[index] = t
	s.stages[index] = st
	s.owned[index] = true
	s.count++
	return nil
}

// Usage returns the aggregated usage type and stages recorded for index.
func (s *Scope) Usage(index Index) (Type, Stage) {
	if int(index) >= len(s.owned) || !s.owned[index] {
		return 0, 0
	}
	return s.aggregate[index], s.stages[index]
}

// IsUsed reports whether index has any recorded usage in this scope.
func (s *Scope) IsUsed(index Index) bool {
	return int(index) < len(s.owned) && s.owned[index]
}

// Count returns the number of distinct resources recorded in this scope.
func (s *Scope) Count() int { return s.count }

// ForEach calls fn once per resource recorded in this scope, in index
// order.
func (s *Scope) ForEach(fn func(index Index, t Type, st Stage)) {
	for i, owned := range s.owned {
		if owned {
			fn(Index(i), s.aggregate[i], s.stages[i])
		}
	}
}

// Clear resets the scope for reuse on the next pass/encoder.
func (s *Scope) Clear() {
	for i := range s.owned {
		s.owned[i] = false
		s.aggregate[i] = 0
		s.stages[i] = 0
	}
	s.count = 0
}

func (s *Scope) ensureSize(size int) {
	for len(s.owned) < size {
		s.owned = append(s.owned, false)
		s.aggregate = append(s.aggregate, 0)
		s.stages = append(s.stages, 0)
	}
}
