package x11driver

import (
	"fmt"
	"math"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/1broseidon/penrose/internal/pure/layout"
	"github.com/1broseidon/penrose/internal/xconn"
)

func (c *Conn) Map(id layout.Xid) error {
	return xproto.MapWindowChecked(c.xu.Conn(), xproto.Window(id)).Check()
}

func (c *Conn) Unmap(id layout.Xid) error {
	return xproto.UnmapWindowChecked(c.xu.Conn(), xproto.Window(id)).Check()
}

// Kill politely asks the client to close via WM_DELETE_WINDOW if it
// advertises support, falling back to xproto.KillClient otherwise.
func (c *Conn) Kill(id layout.Xid) error {
	protocols, err := xproto.GetWMProtocols(c.xu.Conn(), xproto.Window(id)).Reply()
	if err == nil {
		for _, atom := range protocols.Atoms {
			name, _ := c.AtomName(layout.Xid(atom))
			if name == "WM_DELETE_WINDOW" {
				return c.sendWMProtocol(id, atom)
			}
		}
	}
	return xproto.KillClientChecked(c.xu.Conn(), uint32(id)).Check()
}

func (c *Conn) sendWMProtocol(id layout.Xid, protocol xproto.Atom) error {
	wmProtocols, err := c.InternAtom("WM_PROTOCOLS")
	if err != nil {
		return err
	}
	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: xproto.Window(id),
		Type:   xproto.Atom(wmProtocols),
		Data:   xproto.ClientMessageDataUnionData32New([]uint32{uint32(protocol), 0, 0, 0, 0}),
	}
	return xproto.SendEventChecked(c.xu.Conn(), false, xproto.Window(id), xproto.EventMaskNoEvent, string(ev.Bytes())).Check()
}

// Focus sets input focus and updates _NET_ACTIVE_WINDOW, mirroring the
// teacher's hand-rolled FocusWindow (which bypasses xgbutil/ewmh's
// ActiveWindowReq because it panics on this xgbutil version).
func (c *Conn) Focus(id layout.Xid) error {
	if err := xproto.SetInputFocusChecked(
		c.xu.Conn(), xproto.InputFocusPointerRoot, xproto.Window(id), xproto.TimeCurrentTime,
	).Check(); err != nil {
		return fmt.Errorf("x11driver: set input focus: %w", err)
	}
	return c.SetActiveWindow(id)
}

func (c *Conn) Destroy(id layout.Xid) error {
	return xproto.DestroyWindowChecked(c.xu.Conn(), xproto.Window(id)).Check()
}

// GetProp fetches an arbitrary window property by atom name. A missing
// property is reported via ok=false, not an error — absent properties
// are an expected condition (a client with no WM_NAME, say), not a
// failure.
func (c *Conn) GetProp(id layout.Xid, name string) (xconn.Prop, bool, error) {
	atom, err := c.InternAtom(name)
	if err != nil {
		return xconn.Prop{}, false, err
	}
	reply, err := xproto.GetProperty(
		c.xu.Conn(), false, xproto.Window(id), xproto.Atom(atom),
		xproto.GetPropertyTypeAny, 0, math.MaxUint32,
	).Reply()
	if err != nil {
		return xconn.Prop{}, false, fmt.Errorf("x11driver: get property %q: %w", name, err)
	}
	if reply == nil || reply.ValueLen == 0 {
		return xconn.Prop{}, false, nil
	}

	typeName, _ := c.AtomName(layout.Xid(reply.Type))
	prop := xconn.Prop{Format: reply.Format, Type: typeName}
	switch reply.Format {
	case 32:
		prop.Data32 = decodeUint32s(reply.Value)
	case 8:
		prop.Text = string(reply.Value)
	}
	return prop, true, nil
}

func (c *Conn) SetProp(id layout.Xid, name string, p xconn.Prop) error {
	atom, err := c.InternAtom(name)
	if err != nil {
		return err
	}
	typeAtom, err := c.InternAtom(propTypeOrDefault(p.Type))
	if err != nil {
		return err
	}

	var value []byte
	format := p.Format
	switch {
	case p.Text != "":
		value = []byte(p.Text)
		format = 8
	default:
		value = encodeUint32s(p.Data32)
		format = 32
	}

	return xproto.ChangePropertyChecked(
		c.xu.Conn(), xproto.PropModeReplace, xproto.Window(id),
		xproto.Atom(atom), xproto.Atom(typeAtom), format,
		uint32(len(value))/uint32(format/8), value,
	).Check()
}

func propTypeOrDefault(t string) string {
	if t == "" {
		return "CARDINAL"
	}
	return t
}

func (c *Conn) DeleteProp(id layout.Xid, name string) error {
	atom, err := c.InternAtom(name)
	if err != nil {
		return err
	}
	return xproto.DeletePropertyChecked(c.xu.Conn(), xproto.Window(id), xproto.Atom(atom)).Check()
}

// SetWmState writes the ICCCM WM_STATE property directly, since xgbutil's
// higher-level icccm helpers target a different set of window managers'
// conventions than this driver needs.
func (c *Conn) SetWmState(id layout.Xid, state xconn.WmState) error {
	return c.SetProp(id, "WM_STATE", xconn.Prop{Data32: []uint32{uint32(state), 0}, Type: "WM_STATE"})
}

func (c *Conn) SetClientAttributes(id layout.Xid, attrs []xconn.ClientAttr) error {
	for _, attr := range attrs {
		switch a := attr.(type) {
		case xconn.BorderColor:
			if err := xproto.ChangeWindowAttributesChecked(
				c.xu.Conn(), xproto.Window(id), xproto.CwBorderPixel, []uint32{uint32(a)},
			).Check(); err != nil {
				return fmt.Errorf("x11driver: set border color: %w", err)
			}
		case xconn.ClientEventMask:
			mask := xproto.EventMaskEnterWindow | xproto.EventMaskLeaveWindow |
				xproto.EventMaskFocusChange | xproto.EventMaskPropertyChange |
				xproto.EventMaskStructureNotify
			if err := xproto.ChangeWindowAttributesChecked(
				c.xu.Conn(), xproto.Window(id), xproto.CwEventMask, []uint32{uint32(mask)},
			).Check(); err != nil {
				return fmt.Errorf("x11driver: set client event mask: %w", err)
			}
		case xconn.RootEventMask:
			mask := xproto.EventMaskSubstructureRedirect | xproto.EventMaskSubstructureNotify |
				xproto.EventMaskPropertyChange
			if err := xproto.ChangeWindowAttributesChecked(
				c.xu.Conn(), xproto.Window(id), xproto.CwEventMask, []uint32{uint32(mask)},
			).Check(); err != nil {
				return fmt.Errorf("x11driver: set root event mask: %w", err)
			}
		}
	}
	return nil
}

func (c *Conn) SetClientConfig(id layout.Xid, cfg []xconn.ClientConfig) error {
	for _, item := range cfg {
		switch v := item.(type) {
		case xconn.BorderPx:
			if err := xproto.ConfigureWindowChecked(
				c.xu.Conn(), xproto.Window(id), xproto.ConfigWindowBorderWidth, []uint32{uint32(v)},
			).Check(); err != nil {
				return fmt.Errorf("x11driver: set border width: %w", err)
			}
		case xconn.Position:
			if err := xproto.ConfigureWindowChecked(
				c.xu.Conn(), xproto.Window(id),
				xproto.ConfigWindowX|xproto.ConfigWindowY|xproto.ConfigWindowWidth|xproto.ConfigWindowHeight,
				[]uint32{uint32(int32(v.X)), uint32(int32(v.Y)), uint32(v.Width), uint32(v.Height)},
			).Check(); err != nil {
				return fmt.Errorf("x11driver: configure position: %w", err)
			}
		case xconn.StackAbove:
			if err := xproto.ConfigureWindowChecked(
				c.xu.Conn(), xproto.Window(id), xproto.ConfigWindowStackMode, []uint32{uint32(xproto.StackModeAbove)},
			).Check(); err != nil {
				return fmt.Errorf("x11driver: stack above: %w", err)
			}
		}
	}
	return nil
}

func (c *Conn) SendClientMessage(msg xconn.ClientMessage) error {
	atom, err := c.InternAtom(msg.Atom)
	if err != nil {
		return err
	}
	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: xproto.Window(msg.ID),
		Type:   xproto.Atom(atom),
		Data:   xproto.ClientMessageDataUnionData32New(msg.Data32[:]),
	}
	return xproto.SendEventChecked(
		c.xu.Conn(), false, c.root,
		xproto.EventMaskSubstructureRedirect|xproto.EventMaskSubstructureNotify,
		string(ev.Bytes()),
	).Check()
}

func decodeUint32s(raw []byte) []uint32 {
	out := make([]uint32, len(raw)/4)
	for i := range out {
		out[i] = uint32(raw[i*4]) | uint32(raw[i*4+1])<<8 | uint32(raw[i*4+2])<<16 | uint32(raw[i*4+3])<<24
	}
	return out
}

func encodeUint32s(vals []uint32) []byte {
	out := make([]byte, len(vals)*4)
	for i, v := range vals {
		out[i*4] = byte(v)
		out[i*4+1] = byte(v >> 8)
		out[i*4+2] = byte(v >> 16)
		out[i*4+3] = byte(v >> 24)
	}
	return out
}
