// Package manager drives the read-modify-diff-write cycle: it consumes
// events from the X driver and the control surfaces, mutates the pure
// StackSet, recomputes layout placements, diffs them against the
// previous frame, and issues only the X calls the diff requires.
//
// Grounded on the teacher's internal/daemon (Reconciler.Run's
// ticker+context.Context+slog-free panic-recovering loop shape, adapted
// here to a blocking-event loop instead of a ticker) and internal/tiling
// (Workspace.PreviousGeometries' no-op-avoidance, generalized into the
// xtrack table).
package manager

import (
	"context"
	"fmt"
	"log"

	"github.com/1broseidon/penrose/internal/config"
	"github.com/1broseidon/penrose/internal/pure/geometry"
	"github.com/1broseidon/penrose/internal/pure/layout"
	"github.com/1broseidon/penrose/internal/pure/stackset"
	"github.com/1broseidon/penrose/internal/reduce"
	"github.com/1broseidon/penrose/internal/xconn"
)

// clientKind records how the manager treats a client once adopted.
type clientKind int

const (
	kindTiled clientKind = iota
	kindFloating
	kindUnmanaged
)

// xtrackEntry is the last X-side state the manager applied for a client,
// used to skip redundant configure calls frame over frame.
type xtrackEntry struct {
	rect    geometry.Rect
	border  uint32
	visible bool
}

// Manager is the stateful shell around the pure core.
type Manager struct {
	conn   xconn.XConn
	cfg    *config.Config
	logger *log.Logger

	ss *stackset.StackSet

	known      map[layout.Xid]clientKind
	fullscreen map[layout.Xid]bool
	xtrack     map[layout.Xid]xtrackEntry

	previousVisible []layout.Xid

	keyBindings   []resolvedKeyBinding
	mouseBindings []resolvedMouseBinding

	hooks Hooks

	// commands carries control-surface requests (from internal/ipcctl and
	// internal/agentctl) into the single goroutine that owns ss, so a
	// FOCUS_TAG from a socket handler can never race an Enter event from
	// the X connection.
	commands chan controlRequest
	// doneCh is closed when Run returns, unblocking any dispatch call
	// waiting to enqueue or waiting on a response.
	doneCh chan struct{}

	cancel context.CancelFunc
}

// Hooks are user-registered callbacks run after a frame has been applied
// to the X server.
type Hooks struct {
	OnStartup         func()
	OnFocusChange     func(old layout.Xid, hadOld bool, new layout.Xid, hasNew bool)
	OnWorkspaceChange func(tag string)
}

// New builds a Manager bound to conn, with screens detected via
// conn.ScreenDetails and workspaces/layouts seeded from cfg.
func New(conn xconn.XConn, cfg *config.Config, logger *log.Logger, hooks Hooks) (*Manager, error) {
	if logger == nil {
		logger = log.Default()
	}

	rects, err := conn.ScreenDetails()
	if err != nil {
		return nil, fmt.Errorf("manager: detect screens: %w", err)
	}
	if len(rects) == 0 {
		return nil, fmt.Errorf("manager: no screens detected")
	}
	for i, r := range rects {
		rects[i] = applyScreenPadding(r, cfg.GetMargins())
	}

	layouts, err := config.BuildLayouts(cfg.Layouts)
	if err != nil {
		return nil, fmt.Errorf("manager: build layouts: %w", err)
	}

	ss, err := stackset.TryNew(layouts, cfg.Tags, rects)
	if err != nil {
		return nil, fmt.Errorf("manager: build stackset: %w", err)
	}
	ss.InvisibleTags = append([]string{}, cfg.InvisibleTags...)

	m := &Manager{
		conn:       conn,
		cfg:        cfg,
		logger:     logger,
		ss:         ss,
		known:      make(map[layout.Xid]clientKind),
		fullscreen: make(map[layout.Xid]bool),
		xtrack:     make(map[layout.Xid]xtrackEntry),
		hooks:      hooks,
		commands:   make(chan controlRequest),
		doneCh:     make(chan struct{}),
	}

	if err := m.resolveBindings(); err != nil {
		return nil, err
	}

	return m, nil
}

// StateView adapts the Manager to reduce.StateView.
func (m *Manager) KnownClient(id layout.Xid) bool {
	_, ok := m.known[id]
	return ok
}

func (m *Manager) CurrentFocus() (layout.Xid, bool) {
	return m.ss.CurrentClient()
}

var _ reduce.StateView = (*Manager)(nil)

// Start performs the one-time EWMH bootstrap, grabs configured bindings,
// and runs the startup hook. It does not itself block; callers run Run
// for the event loop.
func (m *Manager) Start() error {
	if writer, ok := m.conn.(xconn.EWMHWriter); ok {
		if err := writer.SetupEWMH(m.cfg.WMName, supportedAtoms()); err != nil {
			return fmt.Errorf("manager: setup ewmh: %w", err)
		}
	}

	var keyCodes []uint8
	for _, b := range m.keyBindings {
		keyCodes = append(keyCodes, b.keycode)
	}
	var mouseMods []uint16
	seenMods := make(map[uint16]bool)
	for _, b := range m.mouseBindings {
		if !seenMods[b.mods] {
			seenMods[b.mods] = true
			mouseMods = append(mouseMods, b.mods)
		}
	}
	if err := m.conn.Grab(keyCodes, mouseMods); err != nil {
		return fmt.Errorf("manager: grab bindings: %w", err)
	}

	m.runCycle(func() {})

	if m.hooks.OnStartup != nil {
		m.hooks.OnStartup()
	}
	return nil
}

func supportedAtoms() []string {
	return []string{
		"_NET_ACTIVE_WINDOW",
		"_NET_CLIENT_LIST",
		"_NET_CURRENT_DESKTOP",
		"_NET_DESKTOP_NAMES",
		"_NET_NUMBER_OF_DESKTOPS",
		"_NET_SUPPORTED",
		"_NET_SUPPORTING_WM_CHECK",
		"_NET_WM_NAME",
		"_NET_WM_STATE",
		"_NET_WM_STATE_FULLSCREEN",
		"_NET_WM_WINDOW_TYPE",
	}
}

type eventOrErr struct {
	ev  reduce.XEvent
	err error
}

// Run blocks, pulling events from conn and control-surface requests from
// commands, applying each in turn, until ctx is cancelled or the "quit"
// action is dispatched. conn.NextEvent blocks on the X connection, so it
// runs on its own goroutine feeding the select loop below; this is the
// only way to multiplex it with commands without making the driver
// itself cancellable mid-read.
func (m *Manager) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	defer cancel()
	defer close(m.doneCh)

	events := make(chan eventOrErr)
	go func() {
		for {
			ev, err := m.conn.NextEvent()
			select {
			case events <- eventOrErr{ev, err}:
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case res := <-events:
			if res.err != nil {
				m.logger.Printf("manager: next event: %v", res.err)
				continue
			}
			if res.ev != nil {
				m.handleEvent(res.ev)
			}

		case req := <-m.commands:
			m.handleControlRequest(req)
		}
	}
}

func (m *Manager) handleEvent(ev reduce.XEvent) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Printf("manager: recovered panic handling event: %v", r)
		}
	}()

	actions := reduce.Reduce(ev, m)
	if len(actions) == 0 {
		return
	}
	m.runCycle(func() {
		for _, a := range actions {
			m.applyAction(a)
		}
	})
}

// Stop cancels the running event loop, if any.
func (m *Manager) Stop() {
	if m.cancel != nil {
		m.cancel()
	}
}
