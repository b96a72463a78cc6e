// Package reduce implements the pure mapping from canonical X events to
// the high-level actions the manager loop applies. The reducer performs
// no I/O and makes no decision that depends on driver internals (atom
// interning, modifier-bit masking, numlock handling) — it only sees
// events the driver has already canonicalized.
package reduce

import (
	"github.com/1broseidon/penrose/internal/pure/geometry"
	"github.com/1broseidon/penrose/internal/pure/layout"
)

// StateView is the read-only slice of manager state the reducer
// consults to decide what actions an event implies.
type StateView interface {
	// KnownClient reports whether id has previously been adopted into
	// the window manager's tracked client set.
	KnownClient(id layout.Xid) bool
	// CurrentFocus returns the currently focused client, if any.
	CurrentFocus() (layout.Xid, bool)
}

// PointerChange carries a client id and the pointer position at the
// time of an Enter/Leave event.
type PointerChange struct {
	ID    layout.Xid
	Point geometry.Point
}

// FullScreenDesire mirrors the EWMH _NET_WM_STATE action codes.
type FullScreenDesire uint32

const (
	FullScreenClear  FullScreenDesire = 0
	FullScreenSet    FullScreenDesire = 1
	FullScreenToggle FullScreenDesire = 2
)

// XEvent is an opaque, tagged variant. The payload set matches the
// driver's canonical event types; Reduce type-switches on the concrete
// type and ignores anything it does not recognise.
type XEvent interface{}

// Event variants the reducer accepts.
type (
	MouseEvent struct {
		Button uint8
		State  uint16
	}
	KeyPress struct {
		Code uint8
		Mods uint16
	}
	MapRequest struct {
		ID     layout.Xid
		Ignore bool
	}
	Enter struct{ Change PointerChange }
	Leave struct{ Change PointerChange }
	FocusIn struct{ ID layout.Xid }
	Destroy struct{ ID layout.Xid }
	ScreenChange  struct{}
	RandrNotify   struct{}
	ConfigureNotify struct {
		ID     layout.Xid
		Rect   geometry.Rect
		IsRoot bool
	}
	ConfigureRequest struct {
		ID     layout.Xid
		Rect   geometry.Rect
		IsRoot bool
	}
	Expose struct {
		ID    layout.Xid
		Rect  geometry.Rect
		Count int
	}
	UnmapNotify struct{ ID layout.Xid }
	ClientMessage struct {
		ID   layout.Xid
		Atom string
		// Action is data[0] of the underlying wire message — only
		// meaningful when Atom == "_NET_WM_STATE".
		Action uint32
		// Properties holds the resolved atom names from data[1]/data[2].
		Properties []string
	}
	PropertyNotify struct {
		ID       layout.Xid
		AtomName string
		IsRoot   bool
	}
)

// Action is an opaque, tagged variant describing a high-level
// consequence the manager loop must apply.
type Action interface{}

// Action variants Reduce may produce.
type (
	ClientFocusLost   struct{ ID layout.Xid }
	ClientFocusGained struct{ ID layout.Xid }
	SetScreenFromPoint struct {
		Point geometry.Point
	}
	ClientMapped    struct{ ID layout.Xid }
	MapWindow       struct{ ID layout.Xid }
	ClientDestroyed struct{ ID layout.Xid }
	ClientUnmapped  struct{ ID layout.Xid }
	DetectScreens   struct{}
	ToggleClientFullScreen struct {
		ID      layout.Xid
		Desired FullScreenDesire
	}
	KeyBindingTriggered struct {
		Code uint8
		Mods uint16
	}
	MouseBindingTriggered struct {
		Button uint8
		State  uint16
	}
	PropertyChanged struct {
		ID       layout.Xid
		AtomName string
		IsRoot   bool
	}
)

// Reduce maps event to the sequence of actions the manager loop should
// apply, in order. Reduce is deterministic and side-effect free.
func Reduce(event XEvent, state StateView) []Action {
	switch e := event.(type) {
	case ClientMessage:
		if e.Atom == "_NET_WM_STATE" && containsString(e.Properties, "_NET_WM_STATE_FULLSCREEN") {
			return []Action{ToggleClientFullScreen{ID: e.ID, Desired: FullScreenDesire(e.Action)}}
		}
		return nil

	case ConfigureNotify:
		if e.IsRoot {
			return []Action{DetectScreens{}}
		}
		return nil

	case ConfigureRequest:
		return nil

	case Enter:
		if !state.KnownClient(e.Change.ID) {
			return []Action{
				ClientMapped{ID: e.Change.ID},
				ClientFocusGained{ID: e.Change.ID},
				SetScreenFromPoint{Point: e.Change.Point},
			}
		}
		var actions []Action
		if prev, ok := state.CurrentFocus(); ok && prev != e.Change.ID {
			actions = append(actions, ClientFocusLost{ID: prev})
		}
		actions = append(actions,
			ClientFocusGained{ID: e.Change.ID},
			SetScreenFromPoint{Point: e.Change.Point},
		)
		return actions

	case Leave:
		return nil

	case FocusIn:
		return []Action{ClientFocusGained{ID: e.ID}}

	case MapRequest:
		if !state.KnownClient(e.ID) && !e.Ignore {
			return []Action{MapWindow{ID: e.ID}}
		}
		return nil

	case Destroy:
		return []Action{ClientDestroyed{ID: e.ID}}

	case UnmapNotify:
		return []Action{ClientUnmapped{ID: e.ID}}

	case KeyPress:
		return []Action{KeyBindingTriggered{Code: e.Code, Mods: e.Mods}}

	case MouseEvent:
		return []Action{MouseBindingTriggered{Button: e.Button, State: e.State}}

	case ScreenChange:
		return []Action{DetectScreens{}}

	case RandrNotify:
		return []Action{DetectScreens{}}

	case PropertyNotify:
		return []Action{PropertyChanged{ID: e.ID, AtomName: e.AtomName, IsRoot: e.IsRoot}}

	case Expose:
		return nil

	default:
		return nil
	}
}

func containsString(xs []string, x string) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}
