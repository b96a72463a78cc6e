package manager

import (
	"errors"
	"fmt"

	"github.com/1broseidon/penrose/internal/pure/layout"
	"github.com/1broseidon/penrose/internal/pure/stackset"
)

// ErrNotRunning is returned by control-surface methods when Run is not
// currently looping (the manager has not started or has already stopped).
var ErrNotRunning = errors.New("manager: not running")

type controlRequest struct {
	fn   func()
	resp chan controlResponse
}

type controlResponse struct {
	value interface{}
	err   error
}

// dispatch hands fn to the Run goroutine and blocks for its result. It is
// the only path internal/ipcctl and internal/agentctl use to touch
// Manager state, so every control-surface request is serialized against
// the X event loop exactly like a KeyBindingTriggered action would be.
func (m *Manager) dispatch(fn func() (interface{}, error)) (interface{}, error) {
	resp := make(chan controlResponse, 1)
	req := controlRequest{
		fn: func() {
			value, err := fn()
			resp <- controlResponse{value: value, err: err}
		},
		resp: resp,
	}

	select {
	case m.commands <- req:
	case <-m.stopped():
		return nil, ErrNotRunning
	}

	select {
	case r := <-resp:
		return r.value, r.err
	case <-m.stopped():
		return nil, ErrNotRunning
	}
}

func (m *Manager) handleControlRequest(req controlRequest) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Printf("manager: recovered panic handling control request: %v", r)
		}
	}()
	req.fn()
}

func (m *Manager) stopped() <-chan struct{} {
	if m.cancel == nil {
		closed := make(chan struct{})
		close(closed)
		return closed
	}
	return m.doneCh
}

// StatusSnapshot is the GET_STATUS / get_status response shape.
type StatusSnapshot struct {
	WMName        string
	CurrentTag    string
	FocusedClient layout.Xid
	HasFocus      bool
	ScreenCount   int
	ClientCount   int
}

// WorkspaceInfo is one entry of the LIST_WORKSPACES response.
type WorkspaceInfo struct {
	Tag         string
	Visible     bool
	ScreenIndex int
	ClientCount int
	Layout      string
}

// Status reports a snapshot of manager state for the control surface.
func (m *Manager) Status() (StatusSnapshot, error) {
	v, err := m.dispatch(func() (interface{}, error) {
		focus, hasFocus := m.ss.CurrentClient()
		return StatusSnapshot{
			WMName:        m.cfg.WMName,
			CurrentTag:    m.ss.CurrentTag(),
			FocusedClient: focus,
			HasFocus:      hasFocus,
			ScreenCount:   len(m.ss.Screens.Iter()),
			ClientCount:   len(m.known),
		}, nil
	})
	if err != nil {
		return StatusSnapshot{}, err
	}
	return v.(StatusSnapshot), nil
}

// ListWorkspaces reports every visible and hidden workspace.
func (m *Manager) ListWorkspaces() ([]WorkspaceInfo, error) {
	v, err := m.dispatch(func() (interface{}, error) {
		var out []WorkspaceInfo
		for _, sc := range m.ss.Screens.Iter() {
			out = append(out, workspaceInfo(sc.Workspace, true, sc.Index))
		}
		for _, w := range m.ss.Hidden {
			out = append(out, workspaceInfo(w, false, -1))
		}
		return out, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]WorkspaceInfo), nil
}

func workspaceInfo(w stackset.Workspace, visible bool, screenIndex int) WorkspaceInfo {
	info := WorkspaceInfo{Tag: w.Tag, ScreenIndex: screenIndex, Visible: visible}
	if w.Stack != nil {
		info.ClientCount = w.Stack.Len()
	}
	if w.Layouts != nil {
		info.Layout = w.Layouts.Current().Name()
	}
	return info
}

// FocusTag switches the active screen to tag, equivalent to the
// FOCUS_TAG / focus_tag control command.
func (m *Manager) FocusTag(tag string) error {
	_, err := m.dispatch(func() (interface{}, error) {
		m.runCycle(func() { m.ss.FocusTag(tag) })
		return nil, nil
	})
	return err
}

// FocusClient moves input focus to a specific client, equivalent to the
// agentctl focus_client tool. Returns an error if id is not a known client.
func (m *Manager) FocusClient(id layout.Xid) error {
	_, err := m.dispatch(func() (interface{}, error) {
		if !m.ss.Contains(id) {
			return nil, fmt.Errorf("manager: client %d is not known", id)
		}
		m.runCycle(func() { m.ss.FocusClient(id) })
		return nil, nil
	})
	return err
}

// MoveClientToTag moves a specific client onto tag without changing focus,
// equivalent to the agentctl move_client_to_tag tool.
func (m *Manager) MoveClientToTag(id layout.Xid, tag string) error {
	_, err := m.dispatch(func() (interface{}, error) {
		if !m.ss.Contains(id) {
			return nil, fmt.Errorf("manager: client %d is not known", id)
		}
		m.runCycle(func() { m.ss.MoveClientToTag(id, tag) })
		return nil, nil
	})
	return err
}

// NextLayout cycles the focused workspace's layout, equivalent to the
// NEXT_LAYOUT / next_layout control command.
func (m *Manager) NextLayout() error {
	_, err := m.dispatch(func() (interface{}, error) {
		m.runCycle(func() { m.ss.NextLayout() })
		return nil, nil
	})
	return err
}

// SendLayoutMessage delivers a named message (the control-surface
// equivalent of the keybinding action names in runNamedAction's layout
// branch) to the focused workspace's layout.
func (m *Manager) SendLayoutMessage(name string) error {
	msg, ok := layoutMessageByName(name)
	if !ok {
		return errors.New("manager: unknown layout message " + name)
	}
	_, err := m.dispatch(func() (interface{}, error) {
		m.runCycle(func() { m.sendLayoutMessage(msg) })
		return nil, nil
	})
	return err
}

func layoutMessageByName(name string) (layout.Message, bool) {
	switch name {
	case "expand_main":
		return layout.ExpandMainMsg{}, true
	case "shrink_main":
		return layout.ShrinkMainMsg{}, true
	case "inc_main":
		return layout.IncMainMsg{N: 1}, true
	case "dec_main":
		return layout.IncMainMsg{N: -1}, true
	case "mirror":
		return layout.MirrorMsg{}, true
	case "rotate":
		return layout.RotateMsg{}, true
	default:
		return nil, false
	}
}
