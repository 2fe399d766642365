package selection

import (
	"testing"
)

func TestModelTogglePlain(t *testing.T) {
	seq := []string{"i1", "i2", "i3"}
	m := NewModel()

	m.Toggle(seq, "i2", false)
	if !m.IsSelected("i2") {
		t.Fatal("expected i2 selected after first toggle")
	}
	if anchor, ok := m.Anchor(); !ok || anchor != "i2" {
		t.Errorf("expected anchor i2, got %q (set=%v)", anchor, ok)
	}

	m.Toggle(seq, "i2", false)
	if m.IsSelected("i2") {
		t.Error("expected i2 deselected after second toggle")
	}
	if m.Count() != 0 {
		t.Errorf("expected empty selection, got %d ids", m.Count())
	}
}

func TestModelToggleSelfInverse(t *testing.T) {
	seq := []string{"i1", "i2", "i3", "i4"}

	// Toggling any id twice with extend=false restores the prior set.
	for _, id := range seq {
		m := NewModel()
		m.Toggle(seq, "i1", false)
		m.Toggle(seq, "i3", false)

		before := m.Ordered(seq)
		m.Toggle(seq, id, false)
		m.Toggle(seq, id, false)
		after := m.Ordered(seq)

		if len(before) != len(after) {
			t.Fatalf("double toggle of %q changed selection size: %v -> %v", id, before, after)
		}
		for i := range before {
			if before[i] != after[i] {
				t.Errorf("double toggle of %q changed selection: %v -> %v", id, before, after)
			}
		}
	}
}

func TestModelToggleExtend(t *testing.T) {
	seq := []string{"i1", "i2", "i3", "i4", "i5", "i6"}

	tests := []struct {
		name         string
		setup        func(m *Model)
		id           string
		wantSelected []string
		wantAnchor   string
	}{
		{
			name: "range from anchor unions",
			setup: func(m *Model) {
				m.Toggle(seq, "i2", false)
			},
			id:           "i5",
			wantSelected: []string{"i2", "i3", "i4", "i5"},
			wantAnchor:   "i5",
		},
		{
			name: "union preserves ids outside the range",
			setup: func(m *Model) {
				m.Toggle(seq, "i6", false)
				m.Toggle(seq, "i2", false)
			},
			id:           "i4",
			wantSelected: []string{"i2", "i3", "i4", "i6"},
			wantAnchor:   "i4",
		},
		{
			name:         "no anchor falls back to plain flip",
			setup:        func(m *Model) {},
			id:           "i3",
			wantSelected: []string{"i3"},
			wantAnchor:   "i3",
		},
		{
			name: "stale anchor falls back to plain flip",
			setup: func(m *Model) {
				m.Toggle([]string{"gone", "i1"}, "gone", false)
			},
			id:           "i3",
			wantSelected: []string{"gone", "i3"},
			wantAnchor:   "i3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewModel()
			tt.setup(m)
			m.Toggle(seq, tt.id, true)

			for _, id := range tt.wantSelected {
				if !m.IsSelected(id) {
					t.Errorf("expected %q selected", id)
				}
			}
			if m.Count() != len(tt.wantSelected) {
				t.Errorf("expected %d selected ids, got %d", len(tt.wantSelected), m.Count())
			}
			if anchor, _ := m.Anchor(); anchor != tt.wantAnchor {
				t.Errorf("expected anchor %q, got %q", tt.wantAnchor, anchor)
			}
		})
	}
}

func TestModelToggleExtendIsSuperset(t *testing.T) {
	seq := seqN(8)

	m := NewModel()
	m.Toggle(seq, seq[0], false)
	m.Toggle(seq, seq[7], false)
	m.Toggle(seq, seq[3], false)

	before := m.Ordered(seq)
	m.Toggle(seq, seq[5], true)

	// Range select is a union, never a subtraction.
	for _, id := range before {
		if !m.IsSelected(id) {
			t.Errorf("extend toggle dropped previously selected id %q", id)
		}
	}
}

func TestModelSelectAll(t *testing.T) {
	seq := []string{"i1", "i2", "i3"}
	m := NewModel()
	m.Toggle(seq, "i2", false)

	m.SelectAll(seq)

	if m.Count() != len(seq) {
		t.Fatalf("expected %d selected, got %d", len(seq), m.Count())
	}
	// Anchor is unchanged by select-all.
	if anchor, ok := m.Anchor(); !ok || anchor != "i2" {
		t.Errorf("expected anchor i2 after select-all, got %q (set=%v)", anchor, ok)
	}
}

func TestModelClear(t *testing.T) {
	seq := []string{"i1", "i2"}
	m := NewModel()
	m.SelectAll(seq)
	m.Toggle(seq, "i1", false)

	m.Clear()

	if m.Count() != 0 {
		t.Errorf("expected empty selection, got %d", m.Count())
	}
	if _, ok := m.Anchor(); ok {
		t.Error("expected anchor cleared")
	}
}

func TestModelKeepsStaleIDs(t *testing.T) {
	m := NewModel()
	m.Toggle([]string{"i1", "i2"}, "i1", false)

	// The sequence changed and i1 no longer exists; the model does not prune.
	refetched := []string{"i2", "i3"}
	if !m.IsSelected("i1") {
		t.Error("expected stale id i1 to remain selected")
	}
	if got := m.Ordered(refetched); len(got) != 0 {
		t.Errorf("expected Ordered to omit stale ids, got %v", got)
	}
}

func TestModelOrdered(t *testing.T) {
	seq := []string{"i3", "i1", "i2"}
	m := NewModel()
	m.Toggle(seq, "i2", false)
	m.Toggle(seq, "i3", false)

	got := m.Ordered(seq)
	want := []string{"i3", "i2"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("expected %v, got %v", want, got)
		}
	}
}
