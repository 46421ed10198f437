package mods

import (
	"reflect"
	"testing"
)

func TestEnsureCore(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"appended when missing", []string{"ModA", "ModB"}, []string{"ModA", "ModB", "Core"}},
		{"kept in place when present", []string{"ModA", "Core", "ModB"}, []string{"ModA", "Core", "ModB"}},
		{"added to empty list", nil, []string{"Core"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EnsureCore(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("EnsureCore(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestReconcilePartitionsCompletely(t *testing.T) {
	records := map[string]Record{
		"ModA":   {ID: "ModA", Score: 3, Known: true},
		"ModB":   {ID: "ModB", Score: 1, Known: true},
		"NoData": {ID: "NoData", Known: false},
		"Core":   {ID: "Core", Score: 0, Known: true},
	}
	enabled := []string{"ModA", "NoData", "ModB", "NeverSeen", "Core"}

	active, unknownActive := Reconcile(enabled, records)

	if len(active)+len(unknownActive) != len(enabled) {
		t.Fatalf("partition dropped entries: %d active + %d unknown != %d enabled",
			len(active), len(unknownActive), len(enabled))
	}

	wantActive := []ActiveMod{{ID: "ModA", Score: 3}, {ID: "ModB", Score: 1}, {ID: "Core", Score: 0}}
	if !reflect.DeepEqual(active, wantActive) {
		t.Errorf("active = %v, want %v", active, wantActive)
	}

	wantUnknown := []string{"NoData", "NeverSeen"}
	if !reflect.DeepEqual(unknownActive, wantUnknown) {
		t.Errorf("unknownActive = %v, want %v", unknownActive, wantUnknown)
	}
}

func TestSortActiveByScore(t *testing.T) {
	// The worked example: ModA=3.0, ModB=1.0, Core=0.
	active := []ActiveMod{{ID: "ModA", Score: 3}, {ID: "ModB", Score: 1}, {ID: "Core", Score: 0}}
	sorted := SortActive(active)

	want := []string{"Core", "ModB", "ModA"}
	if got := FinalOrder(sorted, nil, false); !reflect.DeepEqual(got, want) {
		t.Errorf("FinalOrder = %v, want %v", got, want)
	}

	// Input untouched.
	if active[0].ID != "ModA" {
		t.Error("SortActive mutated its input")
	}
}

func TestSortActiveIsStable(t *testing.T) {
	active := []ActiveMod{
		{ID: "First", Score: 10},
		{ID: "Second", Score: 10},
		{ID: "Earlier", Score: 5},
		{ID: "Third", Score: 10},
	}
	got := FinalOrder(SortActive(active), nil, false)
	want := []string{"Earlier", "First", "Second", "Third"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("stable sort order = %v, want %v", got, want)
	}
}

func TestFinalOrderUnknownHandling(t *testing.T) {
	// The worked example: Unknown1 enabled, no record; Core known.
	records := map[string]Record{"Core": {ID: "Core", Score: 0, Known: true}}
	enabled := []string{"Unknown1", "Core"}

	active, unknownActive := Reconcile(enabled, records)
	sorted := SortActive(active)

	if got := FinalOrder(sorted, unknownActive, false); !reflect.DeepEqual(got, []string{"Core"}) {
		t.Errorf("keep-unknown=false: FinalOrder = %v, want [Core]", got)
	}
	if got := FinalOrder(sorted, unknownActive, true); !reflect.DeepEqual(got, []string{"Core", "Unknown1"}) {
		t.Errorf("keep-unknown=true: FinalOrder = %v, want [Core Unknown1]", got)
	}
}

func TestFinalOrderDropsEmptyIDs(t *testing.T) {
	got := FinalOrder([]ActiveMod{{ID: "", Score: 1}, {ID: "Mod", Score: 2}}, []string{"", "U"}, true)
	want := []string{"Mod", "U"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FinalOrder = %v, want %v", got, want)
	}
}
