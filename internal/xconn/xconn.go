// Package xconn defines the abstract capability set the pure core and
// manager loop consume from an X11 driver. internal/x11driver is the
// production implementation against xgb/xgbutil; tests substitute a fake
// so manager logic never needs a live X server.
package xconn

import (
	"github.com/1broseidon/penrose/internal/pure/geometry"
	"github.com/1broseidon/penrose/internal/pure/layout"
	"github.com/1broseidon/penrose/internal/reduce"
)

// WmState mirrors ICCCM WM_STATE values.
type WmState int

const (
	WmStateWithdrawn WmState = iota
	WmStateNormal
	WmStateIconic
)

// ClientAttr is a window attribute settable via set_client_attributes.
type ClientAttr interface{ isClientAttr() }

type BorderColor uint32

func (BorderColor) isClientAttr() {}

// ClientEventMask requests the standard per-client event subscription
// (enter/leave, focus, property, structure notifications).
type ClientEventMask struct{}

func (ClientEventMask) isClientAttr() {}

// RootEventMask requests the standard root-window event subscription
// (substructure redirect/notify, used once at startup).
type RootEventMask struct{}

func (RootEventMask) isClientAttr() {}

// ClientConfig is a window configuration value settable via
// set_client_config.
type ClientConfig interface{ isClientConfig() }

type BorderPx uint32

func (BorderPx) isClientConfig() {}

type Position geometry.Rect

func (Position) isClientConfig() {}

type StackAbove struct{}

func (StackAbove) isClientConfig() {}

// Prop is a generic X11 property value. Format follows ICCCM/EWMH
// convention (8, 16 or 32 bits per element); Type names the property's
// atom type ("UTF8_STRING", "ATOM", "CARDINAL", ...).
type Prop struct {
	Format uint8
	Type   string
	Data32 []uint32
	Text   string
}

// ClientMessage is a canonicalized ClientMessage send request — the
// counterpart of reduce.ClientMessage, but outbound rather than received.
type ClientMessage struct {
	ID     layout.Xid
	Atom   string
	Data32 [5]uint32
}

// XConn is the capability set a driver must provide. Every method that
// can fail over the wire returns an error; BadWindow-class failures
// (client vanished between detection and the call) are ordinary errors,
// not panics — see ErrWindowGone.
type XConn interface {
	Root() layout.Xid
	AtomName(id layout.Xid) (string, error)
	InternAtom(name string) (layout.Xid, error)

	ScreenDetails() ([]geometry.Rect, error)

	CursorPosition() (geometry.Point, error)
	WarpCursor(p geometry.Point) error

	Grab(keyCodes []uint8, mouseStates []uint16) error
	NextEvent() (reduce.XEvent, error)
	Flush() error

	Map(id layout.Xid) error
	Unmap(id layout.Xid) error
	Kill(id layout.Xid) error
	Focus(id layout.Xid) error
	Destroy(id layout.Xid) error

	GetProp(id layout.Xid, name string) (Prop, bool, error)
	SetProp(id layout.Xid, name string, p Prop) error
	DeleteProp(id layout.Xid, name string) error

	SetWmState(id layout.Xid, state WmState) error
	SetClientAttributes(id layout.Xid, attrs []ClientAttr) error
	SetClientConfig(id layout.Xid, cfg []ClientConfig) error
	SendClientMessage(msg ClientMessage) error
}

// KeyBindingResolver is an optional capability a driver may implement to
// translate a user-facing binding pattern string into the raw keycode/
// button and modifier mask the manager grabs and dispatches on. Not part
// of the core XConn set so fakes backing manager tests need not implement
// a keysym table; production code type-asserts for it.
type KeyBindingResolver interface {
	ResolveKeyBinding(pattern string) (keycode uint8, mods uint16, err error)
	ResolveMouseBinding(pattern string) (button uint8, mods uint16, err error)
	// NormalizeMods strips lock-modifier bits (CapsLock/NumLock/
	// ScrollLock) from an observed event's modifier mask before it is
	// compared against a resolved binding.
	NormalizeMods(mods uint16) uint16
}

// EWMHWriter is an optional capability for the EWMH bookkeeping the
// manager performs on startup and every frame. Backed by dedicated
// convenience methods rather than generic SetProp calls because the
// encoding (window list, UTF8 name, supported-atom list) is handled by
// xgbutil/ewmh helpers in the production driver; a fake may no-op these.
type EWMHWriter interface {
	SetupEWMH(wmName string, supported []string) error
	SetCurrentDesktop(index int) error
	SetActiveWindow(id layout.Xid) error
	SetClientList(ids []layout.Xid) error
}
