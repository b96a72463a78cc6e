package manager

import (
	"github.com/1broseidon/penrose/internal/config"
	"github.com/1broseidon/penrose/internal/pure/diff"
	"github.com/1broseidon/penrose/internal/pure/geometry"
	"github.com/1broseidon/penrose/internal/pure/layout"
	"github.com/1broseidon/penrose/internal/reduce"
	"github.com/1broseidon/penrose/internal/xconn"
)

func applyScreenPadding(r geometry.Rect, m config.Margins) geometry.Rect {
	return geometry.Rect{
		X:      r.X + m.Left,
		Y:      r.Y + m.Top,
		Width:  maxInt(1, r.Width-m.Left-m.Right),
		Height: maxInt(1, r.Height-m.Top-m.Bottom),
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// runCycle is the read-modify-diff-write cycle every state-changing
// action runs through: snapshot, mutate, recompute placements, diff
// against the snapshot, apply the diff to the X server, run hooks.
func (m *Manager) runCycle(mutate func()) {
	snap := diff.TakeSnapshot(m.ss, m.previousVisible)
	oldFocus, hadOldFocus := m.ss.CurrentClient()

	mutate()

	placements := m.visiblePlacements()
	d := diff.Compute(snap, m.ss, placements)
	m.applyDiff(d, placements)
	m.previousVisible = visibleClientsFromPlacements(placements)

	newFocus, hasNewFocus := m.ss.CurrentClient()
	if m.hooks.OnFocusChange != nil && (oldFocus != newFocus || hadOldFocus != hasNewFocus) {
		m.hooks.OnFocusChange(oldFocus, hadOldFocus, newFocus, hasNewFocus)
	}
	if m.hooks.OnWorkspaceChange != nil && len(d.PreviousVisibleTags) > 0 {
		m.hooks.OnWorkspaceChange(m.ss.CurrentTag())
	}
}

func (m *Manager) applyDiff(d diff.Diff, placements []layout.Placement) {
	for _, id := range d.Withdrawn {
		delete(m.xtrack, id)
		delete(m.known, id)
		delete(m.fullscreen, id)
	}

	for _, id := range d.Hidden {
		entry := m.xtrack[id]
		if entry.visible {
			if err := m.conn.Unmap(id); err != nil {
				m.logger.Printf("manager: unmap %d: %v", id, err)
			}
			entry.visible = false
			m.xtrack[id] = entry
		}
	}

	for _, p := range placements {
		m.applyPlacement(p)
	}

	m.updateEWMH()
}

func (m *Manager) applyPlacement(p layout.Placement) {
	rect := m.finalRect(p.Rect)
	border := m.cfg.BorderPx
	if m.fullscreen[p.Client] {
		rect = p.Rect
		border = 0
	}

	entry, tracked := m.xtrack[p.Client]
	needsConfigure := !tracked || entry.rect != rect || entry.border != border
	needsMap := !tracked || !entry.visible

	if needsConfigure {
		cfg := []xconn.ClientConfig{xconn.BorderPx(border), xconn.Position(rect)}
		if err := m.conn.SetClientConfig(p.Client, cfg); err != nil {
			m.logger.Printf("manager: configure %d: %v", p.Client, err)
		}
	}
	if needsMap {
		if err := m.conn.Map(p.Client); err != nil {
			m.logger.Printf("manager: map %d: %v", p.Client, err)
		}
	}

	m.xtrack[p.Client] = xtrackEntry{rect: rect, border: border, visible: true}
}

func (m *Manager) updateEWMH() {
	writer, ok := m.conn.(xconn.EWMHWriter)
	if !ok {
		return
	}

	ids := make([]layout.Xid, 0, len(m.known))
	for id, kind := range m.known {
		if kind != kindUnmanaged {
			ids = append(ids, id)
		}
	}
	if err := writer.SetClientList(ids); err != nil {
		m.logger.Printf("manager: set client list: %v", err)
	}

	for i, tag := range m.cfg.Tags {
		if tag == m.ss.CurrentTag() {
			if err := writer.SetCurrentDesktop(i); err != nil {
				m.logger.Printf("manager: set current desktop: %v", err)
			}
			break
		}
	}

	if focus, ok := m.ss.CurrentClient(); ok {
		if err := writer.SetActiveWindow(focus); err != nil {
			m.logger.Printf("manager: set active window: %v", err)
		}
	}
}

// applyAction dispatches one pure reduce.Action against the StackSet and
// driver. Called from within runCycle's mutate closure.
func (m *Manager) applyAction(a reduce.Action) {
	switch act := a.(type) {
	case reduce.ClientFocusLost:
		// Informational only; ss tracks focus via the stack cursor, moved
		// by the paired ClientFocusGained.
	case reduce.ClientFocusGained:
		m.ss.FocusClient(act.ID)
	case reduce.SetScreenFromPoint:
		m.focusScreenContaining(act.Point)
	case reduce.ClientMapped:
		m.adopt(act.ID, false)
	case reduce.MapWindow:
		m.adopt(act.ID, true)
	case reduce.ClientDestroyed:
		m.forget(act.ID)
	case reduce.ClientUnmapped:
		m.withdraw(act.ID)
	case reduce.DetectScreens:
		m.redetectScreens()
	case reduce.ToggleClientFullScreen:
		m.setFullscreen(act.ID, act.Desired)
	case reduce.KeyBindingTriggered:
		if name, ok := m.lookupKeyAction(act.Code, act.Mods); ok {
			m.runNamedAction(name)
		}
	case reduce.MouseBindingTriggered:
		if name, ok := m.lookupMouseAction(act.Button, act.State); ok {
			m.runNamedAction(name)
		}
	case reduce.PropertyChanged:
		if !act.IsRoot {
			m.reclassifyOnPropertyChange(act.ID, act.AtomName)
		}
	}
}

func (m *Manager) setFullscreen(id layout.Xid, desired reduce.FullScreenDesire) {
	switch desired {
	case reduce.FullScreenClear:
		delete(m.fullscreen, id)
	case reduce.FullScreenSet:
		m.fullscreen[id] = true
	case reduce.FullScreenToggle:
		if m.fullscreen[id] {
			delete(m.fullscreen, id)
		} else {
			m.fullscreen[id] = true
		}
	}
}

func (m *Manager) focusScreenContaining(pt geometry.Point) {
	screens := m.ss.Screens.Iter()
	if len(screens) <= 1 {
		return
	}
	targetIdx := -1
	for _, sc := range screens {
		if sc.Rect.Contains(pt) {
			targetIdx = sc.Index
			break
		}
	}
	if targetIdx < 0 {
		return
	}
	for i := 0; i < len(screens); i++ {
		if m.ss.Screens.Focus().Index == targetIdx {
			return
		}
		m.ss.NextScreen()
	}
}

func (m *Manager) redetectScreens() {
	rects, err := m.conn.ScreenDetails()
	if err != nil {
		m.logger.Printf("manager: redetect screens: %v", err)
		return
	}
	screens := m.ss.Screens.Iter()
	if len(rects) != len(screens) {
		// Monitor hotplug that changes the screen count would require
		// rebuilding the StackSet's screen/workspace binding, which
		// stackset does not support post-construction; log and keep the
		// existing binding rather than losing workspace state.
		m.logger.Printf("manager: screen count changed (%d -> %d); not reconfiguring, restart to pick up the new layout", len(screens), len(rects))
		return
	}
	for i, r := range rects {
		r = applyScreenPadding(r, m.cfg.GetMargins())
		sc := screens[i]
		sc.Rect = r
		m.ss.Screens.SetAt(i, sc)
	}
}
