package x11driver

import (
	"fmt"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"

	"github.com/1broseidon/penrose/internal/pure/geometry"
	"github.com/1broseidon/penrose/internal/pure/layout"
	"github.com/1broseidon/penrose/internal/reduce"
)

// NextEvent blocks for the next X event and translates it into the
// reducer's canonical event representation. Grounded on the same
// conn.WaitForEvent() pull model the teacher's RandR watcher uses for
// its dedicated connection (internal/hotkeys uses a callback-registered
// xevent.Main loop instead; the manager needs a single blocking call per
// iteration of its read-modify-diff-write cycle, which WaitForEvent
// gives directly without an extra goroutine/channel hop).
func (c *Conn) NextEvent() (reduce.XEvent, error) {
	ev, xerr := c.xu.Conn().WaitForEvent()
	if xerr != nil {
		return nil, fmt.Errorf("x11driver: protocol error: %w", xerr)
	}
	if ev == nil {
		return nil, fmt.Errorf("x11driver: connection closed")
	}
	return c.translate(ev)
}

func (c *Conn) translate(ev xgb.Event) (reduce.XEvent, error) {
	switch e := ev.(type) {
	case xproto.KeyPressEvent:
		return reduce.KeyPress{Code: uint8(e.Detail), Mods: e.State}, nil

	case xproto.ButtonPressEvent:
		return reduce.MouseEvent{Button: uint8(e.Detail), State: e.State}, nil

	case xproto.MapRequestEvent:
		return reduce.MapRequest{ID: layout.Xid(e.Window), Ignore: false}, nil

	case xproto.EnterNotifyEvent:
		return reduce.Enter{Change: reduce.PointerChange{
			ID:    layout.Xid(e.Event),
			Point: geometry.Point{X: int(e.RootX), Y: int(e.RootY)},
		}}, nil

	case xproto.LeaveNotifyEvent:
		return reduce.Leave{Change: reduce.PointerChange{
			ID:    layout.Xid(e.Event),
			Point: geometry.Point{X: int(e.RootX), Y: int(e.RootY)},
		}}, nil

	case xproto.FocusInEvent:
		return reduce.FocusIn{ID: layout.Xid(e.Event)}, nil

	case xproto.DestroyNotifyEvent:
		return reduce.Destroy{ID: layout.Xid(e.Window)}, nil

	case xproto.UnmapNotifyEvent:
		return reduce.UnmapNotify{ID: layout.Xid(e.Window)}, nil

	case xproto.ConfigureNotifyEvent:
		return reduce.ConfigureNotify{
			ID:     layout.Xid(e.Window),
			Rect:   geometry.Rect{X: int(e.X), Y: int(e.Y), Width: int(e.Width), Height: int(e.Height)},
			IsRoot: e.Window == c.root,
		}, nil

	case xproto.ConfigureRequestEvent:
		return reduce.ConfigureRequest{
			ID:     layout.Xid(e.Window),
			Rect:   geometry.Rect{X: int(e.X), Y: int(e.Y), Width: int(e.Width), Height: int(e.Height)},
			IsRoot: e.Window == c.root,
		}, nil

	case xproto.ExposeEvent:
		return reduce.Expose{
			ID:    layout.Xid(e.Window),
			Rect:  geometry.Rect{X: int(e.X), Y: int(e.Y), Width: int(e.Width), Height: int(e.Height)},
			Count: int(e.Count),
		}, nil

	case xproto.ClientMessageEvent:
		return c.translateClientMessage(e)

	case xproto.PropertyNotifyEvent:
		name, _ := c.AtomName(layout.Xid(e.Atom))
		return reduce.PropertyNotify{ID: layout.Xid(e.Window), AtomName: name, IsRoot: e.Window == c.root}, nil

	case randr.ScreenChangeNotifyEvent:
		return reduce.ScreenChange{}, nil

	case randr.NotifyEvent:
		return reduce.RandrNotify{}, nil

	default:
		return nil, nil
	}
}

func (c *Conn) translateClientMessage(e xproto.ClientMessageEvent) (reduce.XEvent, error) {
	atomName, err := c.AtomName(layout.Xid(e.Type))
	if err != nil {
		return nil, fmt.Errorf("x11driver: client message atom: %w", err)
	}
	data := e.Data.Data32

	var props []string
	for _, d := range data[1:3] {
		if d == 0 {
			continue
		}
		if name, err := c.AtomName(layout.Xid(d)); err == nil {
			props = append(props, name)
		}
	}

	return reduce.ClientMessage{
		ID:         layout.Xid(e.Window),
		Atom:       atomName,
		Action:     data[0],
		Properties: props,
	}, nil
}
