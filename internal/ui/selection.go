package ui

// SelectionSet is an insertion-ordered set of record ids.
type SelectionSet struct {
	ids []string
}

// Set adds or removes id.
func (s *SelectionSet) Set(id string, selected bool) {
	i := s.index(id)
	switch {
	case selected && i < 0:
		s.ids = append(s.ids, id)
	case !selected && i >= 0:
		s.ids = append(s.ids[:i], s.ids[i+1:]...)
	}
}

// Has reports whether id is selected.
func (s *SelectionSet) Has(id string) bool {
	return s.index(id) >= 0
}

// IDs returns a copy of the selected ids in selection order.
func (s *SelectionSet) IDs() []string {
	return append([]string(nil), s.ids...)
}

// Len returns the number of selected ids.
func (s *SelectionSet) Len() int {
	return len(s.ids)
}

// Clear empties the set.
func (s *SelectionSet) Clear() {
	s.ids = nil
}

// Retain drops every id not in keep.
func (s *SelectionSet) Retain(keep []string) {
	present := make(map[string]bool, len(keep))
	for _, id := range keep {
		present[id] = true
	}
	out := s.ids[:0]
	for _, id := range s.ids {
		if present[id] {
			out = append(out, id)
		}
	}
	s.ids = out
}

func (s *SelectionSet) index(id string) int {
	for i, v := range s.ids {
		if v == id {
			return i
		}
	}
	return -1
}
