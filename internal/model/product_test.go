package model

import "testing"

func TestSlotsCompact(t *testing.T) {
	tests := []struct {
		name string
		in   Slots
		k    int
		want Slots
	}{
		{"first of three", Slots{"color", "size", "material"}, 0, Slots{"size", "material", ""}},
		{"middle of three", Slots{"color", "size", "material"}, 1, Slots{"color", "material", ""}},
		{"last of three", Slots{"color", "size", "material"}, 2, Slots{"color", "size", ""}},
		{"second of two", Slots{"color", "size", ""}, 1, Slots{"color", "", ""}},
		{"first of two", Slots{"color", "size", ""}, 0, Slots{"size", "", ""}},
		{"negative index", Slots{"color", "size", ""}, -1, Slots{"color", "size", ""}},
		{"index past end", Slots{"color", "size", ""}, 3, Slots{"color", "size", ""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.Compact(tt.k); got != tt.want {
				t.Errorf("Compact(%d) = %v, want %v", tt.k, got, tt.want)
			}
		})
	}
}

func TestSlotsCompactKeepsContiguity(t *testing.T) {
	s := Slots{"color", "size", "material"}
	for k := 0; k < SlotCount; k++ {
		got := s.Compact(k)
		seenBlank := false
		for _, v := range got {
			if v == "" {
				seenBlank = true
			} else if seenBlank {
				t.Fatalf("Compact(%d) = %v, filled slot after a blank one", k, got)
			}
		}
	}
}

func TestSlotsCompactRepeatedDelete(t *testing.T) {
	// Deleting slot 0 twice equals deleting slots 0 and 1 of the original.
	s := Slots{"color", "size", "material"}
	got := s.Compact(0).Compact(0)
	want := Slots{"material", "", ""}
	if got != want {
		t.Errorf("Compact(0).Compact(0) = %v, want %v", got, want)
	}
}

func TestSlotsSet(t *testing.T) {
	tests := []struct {
		in   Slots
		want int
	}{
		{Slots{"", "", ""}, 0},
		{Slots{"color", "", ""}, 1},
		{Slots{"color", "size", ""}, 2},
		{Slots{"color", "size", "material"}, 3},
		{Slots{"", "size", "material"}, 0},
	}
	for _, tt := range tests {
		if got := tt.in.Set(); got != tt.want {
			t.Errorf("Set() of %v = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestSlotIndex(t *testing.T) {
	tests := []struct {
		key  string
		want int
	}{
		{"attribute1", 0},
		{"attribute2", 1},
		{"attribute3", 2},
		{"attribute4", -1},
		{"", -1},
		{"Attribute1", -1},
	}
	for _, tt := range tests {
		if got := SlotIndex(tt.key); got != tt.want {
			t.Errorf("SlotIndex(%q) = %d, want %d", tt.key, got, tt.want)
		}
	}
}

func TestVariantValueSlotsRoundTrip(t *testing.T) {
	v := &Variant{Value1: "red", Value2: "xl", Value3: "wool"}
	s := v.ValueSlots().Compact(1)
	v.SetValueSlots(s)
	if v.Value1 != "red" || v.Value2 != "wool" || v.Value3 != "" {
		t.Errorf("unexpected values after compaction: %q %q %q", v.Value1, v.Value2, v.Value3)
	}
}
