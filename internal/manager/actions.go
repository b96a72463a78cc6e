package manager

import (
	"strconv"
	"strings"

	"github.com/1broseidon/penrose/internal/pure/geometry"
	"github.com/1broseidon/penrose/internal/pure/layout"
	"github.com/1broseidon/penrose/internal/reduce"
	"github.com/1broseidon/penrose/internal/xconn"
)

// defaultFloatRect is the relative position/size given to a newly adopted
// floating client, centered over its screen.
var defaultFloatRect = geometry.RelativeRect{X: 0.2, Y: 0.2, Width: 0.6, Height: 0.6}

// classify inspects a client's window-type, class and transient-for
// properties to decide how it should be adopted. Docks and toolbars are
// left mapped but outside the tiled set; dialogs, desktops, menus,
// notifications, splashes and utility windows float; everything else is
// tiled unless flagged floating by class or transient-for.
func (m *Manager) classify(id layout.Xid) clientKind {
	if types, ok := m.windowTypes(id); ok {
		for _, t := range types {
			switch t {
			case "_NET_WM_WINDOW_TYPE_DOCK", "_NET_WM_WINDOW_TYPE_TOOLBAR":
				return kindUnmanaged
			case "_NET_WM_WINDOW_TYPE_DIALOG", "_NET_WM_WINDOW_TYPE_DESKTOP",
				"_NET_WM_WINDOW_TYPE_DROPDOWN_MENU", "_NET_WM_WINDOW_TYPE_MENU",
				"_NET_WM_WINDOW_TYPE_NOTIFICATION", "_NET_WM_WINDOW_TYPE_POPUP_MENU",
				"_NET_WM_WINDOW_TYPE_SPLASH", "_NET_WM_WINDOW_TYPE_UTILITY":
				return kindFloating
			}
		}
	}

	if _, present, err := m.conn.GetProp(id, "WM_TRANSIENT_FOR"); err == nil && present {
		return kindFloating
	}

	if class, ok := m.windowClass(id); ok {
		for _, fc := range m.cfg.FloatingClasses {
			if strings.EqualFold(fc, class) {
				return kindFloating
			}
		}
	}

	return kindTiled
}

func (m *Manager) windowTypes(id layout.Xid) ([]string, bool) {
	prop, ok, err := m.conn.GetProp(id, "_NET_WM_WINDOW_TYPE")
	if err != nil || !ok {
		return nil, false
	}
	names := make([]string, 0, len(prop.Data32))
	for _, atom := range prop.Data32 {
		name, err := m.conn.AtomName(layout.Xid(atom))
		if err != nil {
			continue
		}
		names = append(names, name)
	}
	return names, len(names) > 0
}

func (m *Manager) windowClass(id layout.Xid) (string, bool) {
	prop, ok, err := m.conn.GetProp(id, "WM_CLASS")
	if err != nil || !ok || prop.Text == "" {
		return "", false
	}
	// WM_CLASS is a pair of NUL-separated strings, instance then class;
	// the class (the second component) is what floating_classes matches.
	parts := strings.Split(prop.Text, "\x00")
	if len(parts) >= 2 && parts[1] != "" {
		return parts[1], true
	}
	return parts[0], true
}

// adopt brings a newly seen client under management: classifies it,
// inserts it into the current workspace (tiled or floating), and maps it
// if requested. mapIt distinguishes a MapRequest (the client is not yet
// mapped; the manager must map it) from a client the driver observed
// already mapped (e.g. via Enter on an override-redirect-free window).
func (m *Manager) adopt(id layout.Xid, mapIt bool) {
	if m.KnownClient(id) {
		if mapIt {
			if err := m.conn.Map(id); err != nil {
				m.logger.Printf("manager: map %d: %v", id, err)
			}
		}
		return
	}

	kind := m.classify(id)
	m.known[id] = kind

	switch kind {
	case kindUnmanaged:
		if err := m.conn.SetWmState(id, xconn.WmStateNormal); err != nil {
			m.logger.Printf("manager: set wm state %d: %v", id, err)
		}
		if mapIt {
			if err := m.conn.Map(id); err != nil {
				m.logger.Printf("manager: map %d: %v", id, err)
			}
		}
	case kindFloating:
		m.ss.Insert(id)
		ref := m.ss.Screens.Focus().Rect
		if err := m.ss.Float(id, defaultFloatRect.AppliedTo(ref)); err != nil {
			m.logger.Printf("manager: float %d: %v", id, err)
		}
	default:
		m.ss.Insert(id)
	}

	if err := m.conn.SetClientAttributes(id, []xconn.ClientAttr{xconn.ClientEventMask{}}); err != nil {
		m.logger.Printf("manager: set client attributes %d: %v", id, err)
	}
}

func (m *Manager) forget(id layout.Xid) {
	m.ss.RemoveClient(id)
	m.ss.Sink(id)
	delete(m.known, id)
	delete(m.fullscreen, id)
	delete(m.xtrack, id)
}

func (m *Manager) withdraw(id layout.Xid) {
	if m.known[id] == kindUnmanaged {
		return
	}
	m.ss.RemoveClient(id)
	m.ss.Sink(id)
	delete(m.fullscreen, id)
}

// reclassifyOnPropertyChange re-runs adoption classification when a
// property that feeds it changes after the fact (common for clients that
// set WM_CLASS or their window type asynchronously, after mapping).
func (m *Manager) reclassifyOnPropertyChange(id layout.Xid, atomName string) {
	if atomName != "_NET_WM_WINDOW_TYPE" && atomName != "WM_CLASS" && atomName != "WM_TRANSIENT_FOR" {
		return
	}
	if !m.KnownClient(id) {
		return
	}
	kind := m.classify(id)
	if kind == m.known[id] {
		return
	}
	m.known[id] = kind
	switch kind {
	case kindFloating:
		if m.ss.Contains(id) {
			ref := m.ss.Screens.Focus().Rect
			if err := m.ss.Float(id, defaultFloatRect.AppliedTo(ref)); err != nil {
				m.logger.Printf("manager: float %d: %v", id, err)
			}
		}
	case kindTiled:
		m.ss.Sink(id)
	}
}

// runNamedAction invokes the behavior bound to a keybinding or mouse
// binding's action name.
func (m *Manager) runNamedAction(name string) {
	switch {
	case name == "focus_down":
		m.ss.FocusDown()
	case name == "focus_up":
		m.ss.FocusUp()
	case name == "swap_down":
		m.ss.SwapDown()
	case name == "swap_up":
		m.ss.SwapUp()
	case name == "rotate_down":
		m.ss.RotateDown()
	case name == "rotate_up":
		m.ss.RotateUp()
	case name == "swap_to_main":
		m.swapFocusedToHead()
	case name == "next_layout":
		m.ss.NextLayout()
	case name == "previous_layout":
		m.ss.PreviousLayout()
	case name == "expand_main":
		m.sendLayoutMessage(layout.ExpandMainMsg{})
	case name == "shrink_main":
		m.sendLayoutMessage(layout.ShrinkMainMsg{})
	case name == "inc_main":
		m.sendLayoutMessage(layout.IncMainMsg{N: 1})
	case name == "dec_main":
		m.sendLayoutMessage(layout.IncMainMsg{N: -1})
	case name == "mirror_layout":
		m.sendLayoutMessage(layout.MirrorMsg{})
	case name == "rotate_layout":
		m.sendLayoutMessage(layout.RotateMsg{})
	case name == "next_screen":
		m.ss.NextScreen()
	case name == "previous_screen":
		m.ss.PreviousScreen()
	case name == "drag_workspace_forward":
		m.ss.DragWorkspaceForward()
	case name == "drag_workspace_backward":
		m.ss.DragWorkspaceBackward()
	case name == "toggle_tag":
		m.ss.ToggleTag()
	case name == "toggle_fullscreen":
		if id, ok := m.ss.CurrentClient(); ok {
			m.setFullscreen(id, reduce.FullScreenToggle)
		}
	case name == "kill_client":
		if id, ok := m.ss.CurrentClient(); ok {
			if err := m.conn.Kill(id); err != nil {
				m.logger.Printf("manager: kill %d: %v", id, err)
			}
		}
	case name == "quit":
		m.Stop()
	case strings.HasPrefix(name, "focus_tag_"):
		if tag, ok := m.tagByIndex(strings.TrimPrefix(name, "focus_tag_")); ok {
			m.ss.FocusTag(tag)
		}
	case strings.HasPrefix(name, "move_to_tag_"):
		if tag, ok := m.tagByIndex(strings.TrimPrefix(name, "move_to_tag_")); ok {
			m.ss.MoveFocusedToTag(tag)
		}
	case name == "drag_move_floating" || name == "drag_resize_floating":
		m.dragFloating(name)
	default:
		m.logger.Printf("manager: unrecognised action %q", name)
	}
}

// tagByIndex resolves a keybinding suffix like "1" against the 1-indexed
// position in the configured tag list, the convention the default
// keybindings (M-1, M-2, ...) follow.
func (m *Manager) tagByIndex(suffix string) (string, bool) {
	n, err := strconv.Atoi(suffix)
	if err != nil || n < 1 || n > len(m.cfg.Tags) {
		return "", false
	}
	return m.cfg.Tags[n-1], true
}

func (m *Manager) sendLayoutMessage(msg layout.Message) {
	sc := m.ss.Screens.Focus()
	if sc.Workspace.Layouts != nil {
		sc.Workspace.Layouts.HandleMessage(msg)
	}
}

// swapFocusedToHead moves the focused client to the front of its stack by
// repeated SwapUp, since the pure stack exposes adjacent swaps but no
// direct move-to-head operation.
func (m *Manager) swapFocusedToHead() {
	sc := m.ss.Screens.Focus()
	s := sc.Workspace.Stack
	if s == nil {
		return
	}
	for i := s.FocusIndex(); i > 0; i-- {
		m.ss.SwapUp()
	}
}

// dragFloating repositions or resizes the focused floating client to
// follow the current cursor position; a simplified single-step version of
// the teacher's continuous pointer-drag binding, since the manager loop is
// event-driven rather than polling pointer motion every frame.
func (m *Manager) dragFloating(action string) {
	id, ok := m.ss.CurrentClient()
	if !ok {
		return
	}
	rr, floating := m.ss.Floating[id]
	if !floating {
		return
	}
	pt, err := m.conn.CursorPosition()
	if err != nil {
		return
	}
	ref := m.ss.Screens.Focus().Rect
	abs := rr.AppliedTo(ref)
	switch action {
	case "drag_move_floating":
		abs = abs.WithPosition(pt.X, pt.Y)
	case "drag_resize_floating":
		abs = abs.Resized(maxInt(1, pt.X-abs.X), maxInt(1, pt.Y-abs.Y))
	}
	m.ss.Floating[id] = geometry.RelativeTo(abs, ref)
}
