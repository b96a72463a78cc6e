// Package x11driver implements xconn.XConn against xgb/xgbutil. It owns
// the single X11 connection the manager loop drives: xgbutil.XUtil and
// the root window, the same two handles the teacher's x11.Connection
// wrapped, generalized from a one-shot tiling helper into a long-lived
// driver that feeds the manager's read-modify-diff-write cycle.
package x11driver

import (
	"fmt"

	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/mousebind"
	"github.com/BurntSushi/xgbutil/xprop"
	"github.com/BurntSushi/xgbutil/xwindow"

	"github.com/1broseidon/penrose/internal/pure/geometry"
	"github.com/1broseidon/penrose/internal/pure/layout"
	"github.com/1broseidon/penrose/internal/xconn"
)

// Conn is the production xconn.XConn implementation.
type Conn struct {
	xu   *xgbutil.XUtil
	root xproto.Window

	atomNames map[xproto.Atom]string
	atomIDs   map[string]xproto.Atom

	// ignoreMods holds the modifier-bit combinations (CapsLock/NumLock/
	// ScrollLock, in any combination) a grabbed key or button match must
	// disregard. Populated by ConfigureIgnoreMods.
	ignoreMods []uint16
	// ignoreBits is the union of the individual lock-modifier bits
	// contributing to ignoreMods, used to normalize an observed event's
	// modifier mask before comparing it against a resolved binding.
	ignoreBits uint16
}

var (
	_ xconn.XConn              = (*Conn)(nil)
	_ xconn.KeyBindingResolver = (*Conn)(nil)
	_ xconn.EWMHWriter         = (*Conn)(nil)
)

// New establishes the X11 connection and initializes the extensions the
// driver needs: keybind/mousebind for grabs, RandR for screen detection.
// EWMH is used ad hoc via xgbutil/ewmh helpers, as it requires no
// separate initialization step.
func New() (*Conn, error) {
	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, fmt.Errorf("x11driver: connect: %w", err)
	}

	keybind.Initialize(xu)
	mousebind.Initialize(xu)

	if err := randr.Init(xu.Conn()); err != nil {
		return nil, fmt.Errorf("x11driver: randr init: %w", err)
	}
	if err := randr.SelectInputChecked(xu.Conn(), xu.RootWin(),
		randr.NotifyMaskScreenChange|randr.NotifyMaskOutputChange).Check(); err != nil {
		return nil, fmt.Errorf("x11driver: randr select input: %w", err)
	}

	return &Conn{
		xu:        xu,
		root:      xu.RootWin(),
		atomNames: make(map[xproto.Atom]string),
		atomIDs:   make(map[string]xproto.Atom),
	}, nil
}

// Close disconnects from the X server.
func (c *Conn) Close() {
	c.xu.Conn().Close()
}

func (c *Conn) Root() layout.Xid { return layout.Xid(c.root) }

func (c *Conn) AtomName(id layout.Xid) (string, error) {
	atom := xproto.Atom(id)
	if name, ok := c.atomNames[atom]; ok {
		return name, nil
	}
	name, err := xprop.AtomName(c.xu, atom)
	if err != nil {
		return "", fmt.Errorf("x11driver: atom name for %d: %w", id, err)
	}
	c.atomNames[atom] = name
	c.atomIDs[name] = atom
	return name, nil
}

func (c *Conn) InternAtom(name string) (layout.Xid, error) {
	if atom, ok := c.atomIDs[name]; ok {
		return layout.Xid(atom), nil
	}
	reply, err := xproto.InternAtom(c.xu.Conn(), false, uint16(len(name)), name).Reply()
	if err != nil {
		return 0, fmt.Errorf("x11driver: intern atom %q: %w", name, err)
	}
	c.atomIDs[name] = reply.Atom
	c.atomNames[reply.Atom] = name
	return layout.Xid(reply.Atom), nil
}

func (c *Conn) CursorPosition() (geometry.Point, error) {
	pointer, err := xproto.QueryPointer(c.xu.Conn(), c.root).Reply()
	if err != nil {
		return geometry.Point{}, fmt.Errorf("x11driver: query pointer: %w", err)
	}
	return geometry.Point{X: int(pointer.RootX), Y: int(pointer.RootY)}, nil
}

func (c *Conn) WarpCursor(p geometry.Point) error {
	return xproto.WarpPointerChecked(
		c.xu.Conn(), 0, c.root, 0, 0, 0, 0, int16(p.X), int16(p.Y),
	).Check()
}

// Grab registers the global key and mouse button combinations the
// manager needs to receive regardless of input focus. keyCodes are raw
// keycodes already resolved by the config's keybinding parser; the
// modifier ignore-set (CapsLock/NumLock/ScrollLock) is configured once
// per process, following the teacher's configureIgnoreMods.
func (c *Conn) Grab(keyCodes []uint8, mouseStates []uint16) error {
	for _, code := range keyCodes {
		if err := xproto.GrabKeyChecked(
			c.xu.Conn(), true, c.root, xproto.ModMaskAny, xproto.Keycode(code),
			xproto.GrabModeAsync, xproto.GrabModeAsync,
		).Check(); err != nil {
			return fmt.Errorf("x11driver: grab key %d: %w", code, err)
		}
	}
	for _, state := range mouseStates {
		if err := xproto.GrabButtonChecked(
			c.xu.Conn(), true, c.root,
			xproto.EventMaskButtonPress|xproto.EventMaskButtonRelease|xproto.EventMaskButtonMotion,
			xproto.GrabModeAsync, xproto.GrabModeAsync, 0, 0,
			xproto.ButtonIndexAny, state,
		).Check(); err != nil {
			return fmt.Errorf("x11driver: grab button state %d: %w", state, err)
		}
	}
	return nil
}

func (c *Conn) Flush() error {
	c.xu.Conn().Sync()
	return nil
}

// ConfigureIgnoreMods mirrors the teacher's configureIgnoreMods: CapsLock,
// NumLock and ScrollLock must be ignored when matching grabbed
// key/button combinations, since any of them being active would
// otherwise desync the grab from what the user actually typed.
func (c *Conn) ConfigureIgnoreMods() {
	caps := uint16(xproto.ModMaskLock)
	numLock := c.modMaskForKeysym("Num_Lock")
	scrollLock := c.modMaskForKeysym("Scroll_Lock")

	unique := map[uint16]struct{}{0: {}}
	base := []uint16{caps}
	if numLock != 0 && numLock != caps {
		base = append(base, numLock)
	}
	if scrollLock != 0 && scrollLock != caps && scrollLock != numLock {
		base = append(base, scrollLock)
	}
	for subset := 1; subset < (1 << len(base)); subset++ {
		var mask uint16
		for bit := range base {
			if subset&(1<<bit) != 0 {
				mask |= base[bit]
			}
		}
		unique[mask] = struct{}{}
	}

	ignore := make([]uint16, 0, len(unique))
	for mask := range unique {
		ignore = append(ignore, mask)
	}
	c.ignoreMods = ignore

	var bits uint16
	for _, b := range base {
		bits |= b
	}
	c.ignoreBits = bits
}

// NormalizeMods strips the lock-modifier bits ConfigureIgnoreMods
// identified (CapsLock, NumLock, ScrollLock) from an observed event's
// modifier mask, so binding dispatch can compare it directly against a
// resolved binding's mods.
func (c *Conn) NormalizeMods(mods uint16) uint16 {
	return mods &^ c.ignoreBits
}

func (c *Conn) modMaskForKeysym(keysym string) uint16 {
	for _, keycode := range keybind.StrToKeycodes(c.xu, keysym) {
		if mask := keybind.ModGet(c.xu, keycode); mask != 0 {
			return mask
		}
	}
	return 0
}

// SetupEWMH establishes the window manager's EWMH identity: a dedicated
// check window, _NET_SUPPORTING_WM_CHECK on both it and the root, and
// the _NET_SUPPORTED atom list the manager honours.
func (c *Conn) SetupEWMH(wmName string, supported []string) error {
	check, err := xwindow.Generate(c.xu)
	if err != nil {
		return fmt.Errorf("x11driver: create check window: %w", err)
	}
	if err := check.Create(c.root, -1, -1, 1, 1, 0); err != nil {
		return fmt.Errorf("x11driver: map check window: %w", err)
	}

	if err := ewmh.SupportingWmCheckSet(c.xu, c.root, check.Id); err != nil {
		return fmt.Errorf("x11driver: set supporting wm check on root: %w", err)
	}
	if err := ewmh.SupportingWmCheckSet(c.xu, check.Id, check.Id); err != nil {
		return fmt.Errorf("x11driver: set supporting wm check on check window: %w", err)
	}
	if err := ewmh.WmNameSet(c.xu, check.Id, wmName); err != nil {
		return fmt.Errorf("x11driver: set wm name: %w", err)
	}
	if err := ewmh.SupportedSet(c.xu, supported); err != nil {
		return fmt.Errorf("x11driver: set supported atoms: %w", err)
	}
	return nil
}

func (c *Conn) SetCurrentDesktop(index int) error {
	return ewmh.CurrentDesktopSet(c.xu, uint(index))
}

func (c *Conn) SetActiveWindow(id layout.Xid) error {
	return ewmh.ActiveWindowSet(c.xu, xproto.Window(id))
}

func (c *Conn) SetClientList(ids []layout.Xid) error {
	windows := make([]xproto.Window, len(ids))
	for i, id := range ids {
		windows[i] = xproto.Window(id)
	}
	return ewmh.ClientListSet(c.xu, windows)
}
