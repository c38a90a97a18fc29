package todo

import "slices"

// Selection is an ordered set of item IDs marked for a batch action.
// Insertion order is kept because promotion copies items in the order they were selected.
type Selection struct {
	ids []string
}

// Toggle adds id if absent, removes it if present.
// Returns true if id is selected afterward.
func (s *Selection) Toggle(id string) bool {
	if i := slices.Index(s.ids, id); i >= 0 {
		s.ids = slices.Delete(s.ids, i, i+1)
		return false
	}
	s.ids = append(s.ids, id)
	return true
}

// Has reports whether id is selected.
func (s *Selection) Has(id string) bool {
	return slices.Contains(s.ids, id)
}

// IDs returns the selected IDs in selection order.
func (s *Selection) IDs() []string {
	return slices.Clone(s.ids)
}

// Len returns the number of selected IDs.
func (s *Selection) Len() int {
	return len(s.ids)
}

// Clear empties the selection.
func (s *Selection) Clear() {
	s.ids = nil
}

// Retain drops every ID for which keep returns false.
func (s *Selection) Retain(keep func(id string) bool) {
	s.ids = slices.DeleteFunc(s.ids, func(id string) bool { return !keep(id) })
}
