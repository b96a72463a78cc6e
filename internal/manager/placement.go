package manager

import (
	"github.com/1broseidon/penrose/internal/pure/geometry"
	"github.com/1broseidon/penrose/internal/pure/layout"
	"github.com/1broseidon/penrose/internal/pure/stack"
	"github.com/1broseidon/penrose/internal/pure/stackset"
)

// visiblePlacements computes this frame's placements, special-casing any
// screen whose workspace holds a fullscreened client: that client alone
// is placed at the full screen rect and every other client on that
// workspace is suppressed (unmapped by the subsequent diff), per the
// fullscreen-bypasses-layout rule.
func (m *Manager) visiblePlacements() []layout.Placement {
	if len(m.fullscreen) == 0 {
		return m.ss.VisibleClientPositions()
	}

	var out []layout.Placement
	for _, sc := range m.ss.Screens.Iter() {
		if sc.Workspace.Stack == nil {
			continue
		}
		if fsID, ok := fullscreenMemberOf(sc.Workspace.Stack, m.fullscreen); ok {
			out = append(out, layout.Placement{Client: fsID, Rect: sc.Rect})
			continue
		}
		out = append(out, m.screenPlacements(sc)...)
	}
	return out
}

func fullscreenMemberOf(s *stack.Stack[layout.Xid], fullscreen map[layout.Xid]bool) (layout.Xid, bool) {
	if fullscreen[s.Focus()] {
		return s.Focus(), true
	}
	for _, c := range s.Iter() {
		if fullscreen[c] {
			return c, true
		}
	}
	return 0, false
}

// screenPlacements replicates stackset.VisibleClientPositions' per-screen
// logic (floats above tiled layout) for the non-fullscreen case, since
// the fullscreen override must be applied per screen rather than over
// the whole StackSet at once.
func (m *Manager) screenPlacements(sc stackset.Screen) []layout.Placement {
	var floats []layout.Placement
	for _, c := range sc.Workspace.Stack.Iter() {
		if rr, ok := m.ss.Floating[c]; ok {
			floats = append(floats, layout.Placement{Client: c, Rect: rr.AppliedTo(sc.Rect)})
		}
	}

	tiled := stack.Filter(sc.Workspace.Stack, func(c layout.Xid) bool {
		_, isFloat := m.ss.Floating[c]
		return !isFloat
	})

	var placements []layout.Placement
	if tiled != nil {
		placements = sc.Workspace.Layouts.Apply(tiled, sc.Rect)
	}

	var out []layout.Placement
	for i := len(placements) - 1; i >= 0; i-- {
		out = append(out, placements[i])
	}
	return append(out, floats...)
}

// finalRect applies the configured gap and screen padding to a layout
// placement, producing the rect actually configured on the X window.
// Border width is applied separately via xconn.BorderPx, since X11 treats
// border width as outside the window's content dimensions.
func (m *Manager) finalRect(r geometry.Rect) geometry.Rect {
	if m.cfg.GapPx > 0 {
		r = r.ShrinkBorder(m.cfg.GapPx)
	}
	return r
}

func visibleClientsFromPlacements(placements []layout.Placement) []layout.Xid {
	out := make([]layout.Xid, 0, len(placements))
	for _, p := range placements {
		out = append(out, p.Client)
	}
	return out
}
