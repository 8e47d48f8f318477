package ecs

// IntersectEntities returns slot ids present in every set.
func IntersectEntities(sets ...*SparseSet) []int {
	if len(sets) == 0 {
		return nil
	}
	smallest := sets[0]
	for _, s := range sets {
		if s == nil {
			return nil
		}
		if len(s.denseEntities) < len(smallest.denseEntities) {
			smallest = s
		}
	}
	out := make([]int, 0, len(smallest.denseEntities))
outer:
	for _, id := range smallest.denseEntities {
		for _, s := range sets {
			if s != smallest && !s.Has(id) {
				continue outer
			}
		}
		out = append(out, id)
	}
	return out
}
