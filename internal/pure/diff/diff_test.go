package diff

import (
	"reflect"
	"testing"

	"github.com/1broseidon/penrose/internal/pure/geometry"
	"github.com/1broseidon/penrose/internal/pure/layout"
	"github.com/1broseidon/penrose/internal/pure/stackset"
)

func newTestSet(t *testing.T) *stackset.StackSet {
	t.Helper()
	layouts := []layout.Layout{layout.NewMainAndStack(layout.Side, 1, 0.6, 0.05)}
	rects := []geometry.Rect{{X: 0, Y: 0, Width: 1000, Height: 800}}
	ss, err := stackset.TryNew(layouts, []string{"1", "2"}, rects)
	if err != nil {
		t.Fatalf("TryNew: %v", err)
	}
	return ss
}

func TestDiffEmptiness_NoChangeBetweenSnapshots(t *testing.T) {
	ss := newTestSet(t)
	ss.Insert(10)
	ss.Insert(20)

	placements := ss.VisibleClientPositions()
	snap := TakeSnapshot(ss, placementClients(placements))

	// No mutation between the snapshot and the diff: same placements.
	d := Compute(snap, ss, placements)
	if len(d.New) != 0 || len(d.Hidden) != 0 || len(d.Withdrawn) != 0 || len(d.PreviousVisibleTags) != 0 {
		t.Fatalf("expected empty diff, got %+v", d)
	}
}

func TestDiffNewOnInsert(t *testing.T) {
	ss := newTestSet(t)
	ss.Insert(10)
	placements := ss.VisibleClientPositions()
	snap := TakeSnapshot(ss, placementClients(placements))

	ss.Insert(20)
	newPlacements := ss.VisibleClientPositions()
	d := Compute(snap, ss, newPlacements)

	if !contains(d.New, 20) {
		t.Fatalf("expected 20 in New, got %+v", d.New)
	}
}

func TestDiffWithdrawnOnRemove(t *testing.T) {
	ss := newTestSet(t)
	ss.Insert(10)
	ss.Insert(20)
	placements := ss.VisibleClientPositions()
	snap := TakeSnapshot(ss, placementClients(placements))

	ss.RemoveClient(20)
	newPlacements := ss.VisibleClientPositions()
	d := Compute(snap, ss, newPlacements)

	if !contains(d.Withdrawn, 20) {
		t.Fatalf("expected 20 withdrawn, got %+v", d.Withdrawn)
	}
}

func TestDiffHiddenWhenLayoutDropsClient(t *testing.T) {
	ss := newMonocleSet(t)
	ss.Insert(10)
	ss.Insert(20)
	placements := ss.VisibleClientPositions()
	snap := TakeSnapshot(ss, placementClients(placements))

	ss.FocusDown() // monocle places only the focused client
	secondPlacements := ss.VisibleClientPositions()
	d := Compute(snap, ss, secondPlacements)

	if !contains(d.Hidden, 20) {
		t.Fatalf("expected 20 hidden once focus moved away under monocle, got %+v", d.Hidden)
	}
}

func newMonocleSet(t *testing.T) *stackset.StackSet {
	t.Helper()
	layouts := []layout.Layout{layout.NewMonocle()}
	rects := []geometry.Rect{{X: 0, Y: 0, Width: 1000, Height: 800}}
	ss, err := stackset.TryNew(layouts, []string{"1"}, rects)
	if err != nil {
		t.Fatalf("TryNew: %v", err)
	}
	return ss
}

func TestDiffPreviousVisibleTagsOnWorkspaceSwitch(t *testing.T) {
	layouts := []layout.Layout{layout.NewMonocle()}
	rects := []geometry.Rect{{X: 0, Y: 0, Width: 1000, Height: 800}}
	ss, err := stackset.TryNew(layouts, []string{"1", "2"}, rects)
	if err != nil {
		t.Fatalf("TryNew: %v", err)
	}
	placements := ss.VisibleClientPositions()
	snap := TakeSnapshot(ss, placementClients(placements))

	ss.FocusTag("2")
	newPlacements := ss.VisibleClientPositions()
	d := Compute(snap, ss, newPlacements)

	if !reflect.DeepEqual(d.PreviousVisibleTags, []string{"1"}) {
		t.Fatalf("expected tag 1 to be the previous visible tag, got %+v", d.PreviousVisibleTags)
	}
}

func placementClients(ps []layout.Placement) []layout.Xid {
	out := make([]layout.Xid, len(ps))
	for i, p := range ps {
		out[i] = p.Client
	}
	return out
}

func contains(xs []layout.Xid, x layout.Xid) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}
