package selection

// Model owns the committed selection: the set of selected ids and the anchor
// id used as one endpoint of a range toggle.
//
// Ids that drop out of the live sequence (a refetch after a discard, say) are
// deliberately not pruned; the set only changes through the operations below.
type Model struct {
	selected  map[string]struct{}
	anchor    string
	hasAnchor bool
}

// NewModel creates an empty selection.
func NewModel() *Model {
	return &Model{selected: make(map[string]struct{})}
}

// Toggle flips or extends the selection at id given the current rendered
// order seq.
//
// With extend set and a resolvable anchor, the inclusive range between the
// anchor and id is unioned into the selection; ids selected before the toggle
// stay selected even when they fall outside the new range. In every other
// case membership of id alone is flipped. The anchor always moves to id.
func (m *Model) Toggle(seq []string, id string, extend bool) {
	if extend && m.hasAnchor {
		if r := RangeBetween(seq, m.anchor, id); len(r) > 0 {
			for rid := range r {
				m.selected[rid] = struct{}{}
			}
			m.setAnchor(id)
			return
		}
		// Anchor or id no longer in the sequence; fall through to a plain flip.
	}

	if _, ok := m.selected[id]; ok {
		delete(m.selected, id)
	} else {
		m.selected[id] = struct{}{}
	}
	m.setAnchor(id)
}

// SelectAll replaces the selection with every id in seq. The anchor is
// unchanged.
func (m *Model) SelectAll(seq []string) {
	m.selected = make(map[string]struct{}, len(seq))
	for _, id := range seq {
		m.selected[id] = struct{}{}
	}
}

// Clear empties the selection and drops the anchor.
func (m *Model) Clear() {
	m.selected = make(map[string]struct{})
	m.anchor = ""
	m.hasAnchor = false
}

// Replace swaps the whole selection for ids and moves the anchor, used when a
// drag gesture commits its preview range.
func (m *Model) Replace(ids map[string]struct{}, anchor string) {
	m.selected = make(map[string]struct{}, len(ids))
	for id := range ids {
		m.selected[id] = struct{}{}
	}
	m.setAnchor(anchor)
}

// IsSelected reports whether id is in the selection.
func (m *Model) IsSelected(id string) bool {
	_, ok := m.selected[id]
	return ok
}

// Count returns the number of selected ids.
func (m *Model) Count() int {
	return len(m.selected)
}

// Anchor returns the current anchor id and whether one is set.
func (m *Model) Anchor() (string, bool) {
	return m.anchor, m.hasAnchor
}

// Ordered returns the selected ids in the display order given by seq.
// Selected ids absent from seq are not returned.
func (m *Model) Ordered(seq []string) []string {
	if len(m.selected) == 0 {
		return nil
	}
	out := make([]string, 0, len(m.selected))
	for _, id := range seq {
		if m.IsSelected(id) {
			out = append(out, id)
		}
	}
	return out
}

func (m *Model) setAnchor(id string) {
	m.anchor = id
	m.hasAnchor = true
}
