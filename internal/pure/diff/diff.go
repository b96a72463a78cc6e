// Package diff computes the set-difference between two StackSet
// snapshots — which clients are newly known, which became visible or
// hidden, which were withdrawn entirely, and which tags stopped being
// shown — so the manager loop can issue only the X calls needed to
// reconcile the server with the new state.
package diff

import (
	"sort"

	"github.com/1broseidon/penrose/internal/pure/layout"
	"github.com/1broseidon/penrose/internal/pure/stackset"
)

// Snapshot is a point-in-time view of the manager state taken before an
// action is applied.
type Snapshot struct {
	Focus          layout.Xid
	HasFocus       bool
	VisibleClients []layout.Xid
	HiddenClients  []layout.Xid
	VisibleTags    []string
}

// Diff is the delta between a pre-mutation Snapshot and the StackSet
// plus layout placements that resulted from applying an action.
type Diff struct {
	OldFocus    layout.Xid
	HadOldFocus bool

	// New holds clients present in the StackSet but absent from the
	// snapshot.
	New []layout.Xid
	// Visible holds clients that received a placement in the layout
	// output.
	Visible []layout.Xid
	// Hidden holds clients that were visible in the snapshot, or are new,
	// but did not receive a placement.
	Hidden []layout.Xid
	// Withdrawn holds clients present in the snapshot but no longer in
	// the StackSet.
	Withdrawn []layout.Xid
	// PreviousVisibleTags holds tags that were visible in the snapshot
	// but are hidden now.
	PreviousVisibleTags []string
}

// TakeSnapshot builds a Snapshot from the current StackSet. previousVisible
// is the set of clients the manager placed on screen as of the last
// frame — the pure StackSet itself retains no memory of what was
// previously drawn, so the caller (the manager loop) supplies it.
func TakeSnapshot(ss *stackset.StackSet, previousVisible []layout.Xid) Snapshot {
	focus, hasFocus := ss.CurrentClient()
	visibleSet := toSet(previousVisible)

	var hidden []layout.Xid
	for _, c := range allClients(ss) {
		if !visibleSet[c] {
			hidden = append(hidden, c)
		}
	}
	sortXids(hidden)

	return Snapshot{
		Focus:          focus,
		HasFocus:       hasFocus,
		VisibleClients: append([]layout.Xid{}, previousVisible...),
		HiddenClients:  hidden,
		VisibleTags:    visibleTags(ss),
	}
}

// Compute diffs old against the post-mutation StackSet ss and the
// placements its layouts produced for this frame.
func Compute(old Snapshot, ss *stackset.StackSet, placements []layout.Placement) Diff {
	current := allClients(ss)
	currentSet := toSet(current)
	oldSet := toSet(append(append([]layout.Xid{}, old.VisibleClients...), old.HiddenClients...))

	var newClients []layout.Xid
	for _, c := range current {
		if !oldSet[c] {
			newClients = append(newClients, c)
		}
	}
	sortXids(newClients)

	placedSet := make(map[layout.Xid]bool, len(placements))
	var visible []layout.Xid
	for _, p := range placements {
		if !placedSet[p.Client] {
			placedSet[p.Client] = true
			visible = append(visible, p.Client)
		}
	}

	oldVisible := toSet(old.VisibleClients)
	var hidden []layout.Xid
	for _, c := range current {
		if !placedSet[c] && (oldVisible[c] || !oldSet[c]) {
			hidden = append(hidden, c)
		}
	}
	sortXids(hidden)

	var withdrawn []layout.Xid
	for c := range oldSet {
		if !currentSet[c] {
			withdrawn = append(withdrawn, c)
		}
	}
	sortXids(withdrawn)

	newTagSet := toSet(visibleTags(ss))
	var previousVisibleTags []string
	for _, tag := range old.VisibleTags {
		if !newTagSet[tag] {
			previousVisibleTags = append(previousVisibleTags, tag)
		}
	}

	return Diff{
		OldFocus:            old.Focus,
		HadOldFocus:         old.HasFocus,
		New:                 newClients,
		Visible:             visible,
		Hidden:              hidden,
		Withdrawn:           withdrawn,
		PreviousVisibleTags: previousVisibleTags,
	}
}

func allClients(ss *stackset.StackSet) []layout.Xid {
	var out []layout.Xid
	for _, sc := range ss.Screens.Iter() {
		if sc.Workspace.Stack != nil {
			out = append(out, sc.Workspace.Stack.Iter()...)
		}
	}
	for _, w := range ss.Hidden {
		if w.Stack != nil {
			out = append(out, w.Stack.Iter()...)
		}
	}
	return out
}

func visibleTags(ss *stackset.StackSet) []string {
	var out []string
	for _, sc := range ss.Screens.Iter() {
		out = append(out, sc.Workspace.Tag)
	}
	return out
}

func toSet[T comparable](xs []T) map[T]bool {
	out := make(map[T]bool, len(xs))
	for _, x := range xs {
		out[x] = true
	}
	return out
}

func sortXids(xs []layout.Xid) {
	sort.Slice(xs, func(i, j int) bool { return xs[i] < xs[j] })
}
