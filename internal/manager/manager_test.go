package manager

import (
	"errors"
	"testing"

	"github.com/1broseidon/penrose/internal/config"
	"github.com/1broseidon/penrose/internal/pure/geometry"
	"github.com/1broseidon/penrose/internal/pure/layout"
	"github.com/1broseidon/penrose/internal/reduce"
	"github.com/1broseidon/penrose/internal/xconn"
)

// fakeConn is a minimal in-memory xconn.XConn for exercising the manager
// loop without a live X server.
type fakeConn struct {
	rects   []geometry.Rect
	props   map[layout.Xid]map[string]xconn.Prop
	mapped  map[layout.Xid]bool
	killed  []layout.Xid
	configs map[layout.Xid][]xconn.ClientConfig
	attrs   map[layout.Xid][]xconn.ClientAttr
}

func newFakeConn(rects ...geometry.Rect) *fakeConn {
	return &fakeConn{
		rects:   rects,
		props:   make(map[layout.Xid]map[string]xconn.Prop),
		mapped:  make(map[layout.Xid]bool),
		configs: make(map[layout.Xid][]xconn.ClientConfig),
		attrs:   make(map[layout.Xid][]xconn.ClientAttr),
	}
}

func (f *fakeConn) Root() layout.Xid                       { return 1 }
func (f *fakeConn) AtomName(id layout.Xid) (string, error) { return "", nil }
func (f *fakeConn) InternAtom(name string) (layout.Xid, error) { return 0, nil }
func (f *fakeConn) ScreenDetails() ([]geometry.Rect, error) { return f.rects, nil }
func (f *fakeConn) CursorPosition() (geometry.Point, error) { return geometry.Point{}, nil }
func (f *fakeConn) WarpCursor(p geometry.Point) error       { return nil }
func (f *fakeConn) Grab(keyCodes []uint8, mouseStates []uint16) error { return nil }
func (f *fakeConn) NextEvent() (reduce.XEvent, error)       { return nil, errors.New("no events") }
func (f *fakeConn) Flush() error                            { return nil }

func (f *fakeConn) Map(id layout.Xid) error   { f.mapped[id] = true; return nil }
func (f *fakeConn) Unmap(id layout.Xid) error { f.mapped[id] = false; return nil }
func (f *fakeConn) Kill(id layout.Xid) error  { f.killed = append(f.killed, id); return nil }
func (f *fakeConn) Focus(id layout.Xid) error { return nil }
func (f *fakeConn) Destroy(id layout.Xid) error { return nil }

func (f *fakeConn) GetProp(id layout.Xid, name string) (xconn.Prop, bool, error) {
	byName, ok := f.props[id]
	if !ok {
		return xconn.Prop{}, false, nil
	}
	p, ok := byName[name]
	return p, ok, nil
}

func (f *fakeConn) SetProp(id layout.Xid, name string, p xconn.Prop) error {
	if f.props[id] == nil {
		f.props[id] = make(map[string]xconn.Prop)
	}
	f.props[id][name] = p
	return nil
}

func (f *fakeConn) DeleteProp(id layout.Xid, name string) error {
	delete(f.props[id], name)
	return nil
}

func (f *fakeConn) SetWmState(id layout.Xid, state xconn.WmState) error { return nil }

func (f *fakeConn) SetClientAttributes(id layout.Xid, attrs []xconn.ClientAttr) error {
	f.attrs[id] = attrs
	return nil
}

func (f *fakeConn) SetClientConfig(id layout.Xid, cfg []xconn.ClientConfig) error {
	f.configs[id] = cfg
	return nil
}

func (f *fakeConn) SendClientMessage(msg xconn.ClientMessage) error { return nil }

func (f *fakeConn) withProp(id layout.Xid, name string, p xconn.Prop) *fakeConn {
	if f.props[id] == nil {
		f.props[id] = make(map[string]xconn.Prop)
	}
	f.props[id][name] = p
	return f
}

var _ xconn.XConn = (*fakeConn)(nil)

func testManager(t *testing.T, conn xconn.XConn) *Manager {
	t.Helper()
	cfg := config.DefaultConfig()
	m, err := New(conn, cfg, nil, Hooks{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return m
}

func TestNew_NoScreensIsAnError(t *testing.T) {
	if _, err := New(newFakeConn(), config.DefaultConfig(), nil, Hooks{}); err == nil {
		t.Fatal("expected error with zero screens")
	}
}

func TestAdopt_TiledClientIsInsertedAndMapped(t *testing.T) {
	conn := newFakeConn(geometry.Rect{Width: 1280, Height: 800})
	m := testManager(t, conn)

	m.runCycle(func() {
		m.applyAction(reduce.MapWindow{ID: 42})
	})

	if !m.KnownClient(42) {
		t.Fatal("expected client 42 to be known after adoption")
	}
	if !conn.mapped[42] {
		t.Fatal("expected client 42 to be mapped")
	}
	if m.known[42] != kindTiled {
		t.Fatalf("expected kindTiled, got %v", m.known[42])
	}
}

func TestAdopt_DockIsUnmanagedNotTiled(t *testing.T) {
	conn := newFakeConn(geometry.Rect{Width: 1280, Height: 800})
	conn.withProp(7, "_NET_WM_WINDOW_TYPE", xconn.Prop{Data32: []uint32{1}})
	// AtomName always resolving to "" in the fake means windowTypes won't
	// see a recognised name; override AtomName via a thin wrapper instead.
	m := testManager(t, dockAtomConn{conn})

	m.runCycle(func() {
		m.applyAction(reduce.MapWindow{ID: 7})
	})

	if m.known[7] != kindUnmanaged {
		t.Fatalf("expected kindUnmanaged, got %v", m.known[7])
	}
	if m.ss.Contains(7) {
		t.Fatal("expected unmanaged client to stay out of the StackSet")
	}
	if !conn.mapped[7] {
		t.Fatal("expected unmanaged client to still be mapped")
	}
}

// dockAtomConn wraps fakeConn so AtomName resolves atom 1 to a dock type,
// letting classify exercise its unmanaged branch without a real atom table.
type dockAtomConn struct{ *fakeConn }

func (d dockAtomConn) AtomName(id layout.Xid) (string, error) {
	if id == 1 {
		return "_NET_WM_WINDOW_TYPE_DOCK", nil
	}
	return "", nil
}

func TestAdopt_FloatingClassIsFloated(t *testing.T) {
	conn := newFakeConn(geometry.Rect{Width: 1280, Height: 800})
	conn.withProp(9, "WM_CLASS", xconn.Prop{Text: "pavucontrol\x00Pavucontrol"})
	m := testManager(t, conn)

	m.runCycle(func() {
		m.applyAction(reduce.MapWindow{ID: 9})
	})

	if m.known[9] != kindFloating {
		t.Fatalf("expected kindFloating, got %v", m.known[9])
	}
	if _, ok := m.ss.Floating[9]; !ok {
		t.Fatal("expected client to be recorded in the floating set")
	}
}

func TestClientDestroyed_ForgetsClient(t *testing.T) {
	conn := newFakeConn(geometry.Rect{Width: 1280, Height: 800})
	m := testManager(t, conn)
	m.runCycle(func() { m.applyAction(reduce.MapWindow{ID: 5}) })

	m.runCycle(func() { m.applyAction(reduce.ClientDestroyed{ID: 5}) })

	if m.KnownClient(5) {
		t.Fatal("expected client to be forgotten after destroy")
	}
	if m.ss.Contains(5) {
		t.Fatal("expected client removed from stackset")
	}
}

func TestToggleFullscreen_BypassesLayout(t *testing.T) {
	conn := newFakeConn(geometry.Rect{Width: 1280, Height: 800})
	m := testManager(t, conn)
	m.runCycle(func() {
		m.applyAction(reduce.MapWindow{ID: 1})
		m.applyAction(reduce.MapWindow{ID: 2})
	})

	m.runCycle(func() {
		m.applyAction(reduce.ToggleClientFullScreen{ID: 1, Desired: reduce.FullScreenSet})
	})

	if !m.fullscreen[1] {
		t.Fatal("expected client 1 to be marked fullscreen")
	}
	placements := m.visiblePlacements()
	if len(placements) != 1 || placements[0].Client != 1 {
		t.Fatalf("expected only the fullscreen client placed, got %+v", placements)
	}
	if placements[0].Rect != (geometry.Rect{Width: 1280, Height: 800}) {
		t.Fatalf("expected fullscreen client to occupy the full screen rect, got %+v", placements[0].Rect)
	}
}

func TestKeyBindingTriggered_RunsNamedAction(t *testing.T) {
	conn := newFakeConn(geometry.Rect{Width: 1280, Height: 800})
	m := testManager(t, conn)
	m.runCycle(func() {
		m.applyAction(reduce.MapWindow{ID: 1})
		m.applyAction(reduce.MapWindow{ID: 2})
	})

	before, _ := m.ss.CurrentClient()
	m.keyBindings = []resolvedKeyBinding{{keycode: 44, mods: 0, action: "focus_down"}}

	m.runCycle(func() {
		m.applyAction(reduce.KeyBindingTriggered{Code: 44, Mods: 0})
	})

	after, _ := m.ss.CurrentClient()
	if before == after {
		t.Fatalf("expected focus_down to move focus, stayed on %d", after)
	}
}

func TestKillClient_CallsConnKill(t *testing.T) {
	conn := newFakeConn(geometry.Rect{Width: 1280, Height: 800})
	m := testManager(t, conn)
	m.runCycle(func() { m.applyAction(reduce.MapWindow{ID: 3}) })

	m.runNamedAction("kill_client")

	if len(conn.killed) != 1 || conn.killed[0] != 3 {
		t.Fatalf("expected client 3 killed, got %v", conn.killed)
	}
}

func TestTagByIndex(t *testing.T) {
	conn := newFakeConn(geometry.Rect{Width: 1280, Height: 800})
	m := testManager(t, conn)

	tag, ok := m.tagByIndex("1")
	if !ok || tag != m.cfg.Tags[0] {
		t.Fatalf("expected tag %q, got %q (ok=%v)", m.cfg.Tags[0], tag, ok)
	}
	if _, ok := m.tagByIndex("0"); ok {
		t.Fatal("expected index 0 to be rejected")
	}
	if _, ok := m.tagByIndex("99"); ok {
		t.Fatal("expected out-of-range index to be rejected")
	}
}

func TestApplyScreenPadding(t *testing.T) {
	r := geometry.Rect{X: 0, Y: 0, Width: 1000, Height: 800}
	padded := applyScreenPadding(r, config.Margins{Top: 10, Bottom: 20, Left: 5, Right: 5})
	want := geometry.Rect{X: 5, Y: 10, Width: 990, Height: 770}
	if padded != want {
		t.Fatalf("expected %+v, got %+v", want, padded)
	}
}
