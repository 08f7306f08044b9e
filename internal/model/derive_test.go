package model

import (
	"reflect"
	"testing"
)

func sampleSnapshot() []Task {
	return []Task{
		{ID: "1", Title: "A", Status: false},
		{ID: "2", Title: "B", Status: true},
		{ID: "3", Title: "C", Status: false},
		{ID: "4", Title: "D", Status: true},
	}
}

func TestFilterAllPreservesSnapshot(t *testing.T) {
	snapshot := sampleSnapshot()
	got := Filter(snapshot, FilterAll)
	if !reflect.DeepEqual(got, snapshot) {
		t.Fatalf("expected identical sequence, got %#v", got)
	}

	got[0].Title = "mutated"
	if snapshot[0].Title != "A" {
		t.Fatal("filter result must not alias the snapshot")
	}
}

func TestFilterByStatusKeepsOrder(t *testing.T) {
	cases := []struct {
		mode FilterMode
		ids  []string
	}{
		{FilterActive, []string{"1", "3"}},
		{FilterCompleted, []string{"2", "4"}},
		{FilterAll, []string{"1", "2", "3", "4"}},
	}
	for _, tc := range cases {
		got := Filter(sampleSnapshot(), tc.mode)
		ids := make([]string, 0, len(got))
		for _, task := range got {
			ids = append(ids, task.ID)
		}
		if !reflect.DeepEqual(ids, tc.ids) {
			t.Fatalf("mode %s: expected %v, got %v", tc.mode, tc.ids, ids)
		}
	}
}

func TestFilterAbsentSnapshot(t *testing.T) {
	got := Filter(nil, FilterActive)
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil result, got %#v", got)
	}
}

func TestComputeStats(t *testing.T) {
	stats := ComputeStats(sampleSnapshot())
	if stats != (Stats{Total: 4, Active: 2, Completed: 2}) {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if stats.Total != stats.Active+stats.Completed {
		t.Fatalf("total must equal active+completed: %+v", stats)
	}

	if empty := ComputeStats(nil); empty != (Stats{}) {
		t.Fatalf("expected zero stats for absent snapshot, got %+v", empty)
	}
}

func TestActiveScenario(t *testing.T) {
	snapshot := []Task{
		{ID: "1", Title: "A", Status: false},
		{ID: "2", Title: "B", Status: true},
	}
	filtered := Filter(snapshot, FilterActive)
	if len(filtered) != 1 || filtered[0].ID != "1" {
		t.Fatalf("unexpected filtered tasks: %#v", filtered)
	}
	if stats := ComputeStats(snapshot); stats != (Stats{Total: 2, Active: 1, Completed: 1}) {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}
