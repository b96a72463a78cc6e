package x11driver

import (
	"fmt"

	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"

	"github.com/1broseidon/penrose/internal/pure/geometry"
)

// ScreenDetails queries RandR for every active CRTC and returns its
// geometry with any docked panel's strut subtracted, so the core never
// has to special-case reserved screen edges when tiling. Generalized
// from the teacher's GetMonitors/GetActiveMonitor pair, which picked one
// "active" monitor for a one-shot tile; the driver instead reports every
// screen, since the core tracks one workspace per screen itself.
func (c *Conn) ScreenDetails() ([]geometry.Rect, error) {
	resources, err := randr.GetScreenResources(c.xu.Conn(), c.root).Reply()
	if err != nil {
		return nil, fmt.Errorf("x11driver: get screen resources: %w", err)
	}

	rootWidth, rootHeight, err := c.rootDimensions()
	if err != nil {
		return nil, err
	}
	struts, err := c.dockStruts(rootWidth, rootHeight)
	if err != nil {
		return nil, err
	}

	var rects []geometry.Rect
	for _, crtc := range resources.Crtcs {
		info, err := randr.GetCrtcInfo(c.xu.Conn(), crtc, resources.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}
		if info.Width == 0 || info.Height == 0 || len(info.Outputs) == 0 {
			continue
		}
		rect := geometry.Rect{X: int(info.X), Y: int(info.Y), Width: int(info.Width), Height: int(info.Height)}
		rects = append(rects, applyStruts(rect, struts))
	}
	return rects, nil
}

func (c *Conn) rootDimensions() (width, height int, err error) {
	geom, err := xproto.GetGeometry(c.xu.Conn(), xproto.Drawable(c.root)).Reply()
	if err != nil {
		return 0, 0, fmt.Errorf("x11driver: root geometry: %w", err)
	}
	return int(geom.Width), int(geom.Height), nil
}

type dockStruts struct {
	left, right, top, bottom int
}

// dockStruts accumulates the maximum strut reserved on each screen edge
// by any mapped _NET_WM_WINDOW_TYPE_DOCK client — ported from the
// teacher's applyDockStruts/updateStrutsForMonitor, generalized to run
// once per ScreenDetails call over every screen rather than over a
// single already-chosen active monitor.
func (c *Conn) dockStruts(rootWidth, rootHeight int) (dockStruts, error) {
	var out dockStruts
	// Docks are never placed in _NET_CLIENT_LIST (the manager leaves them
	// unmanaged), so the root's children are scanned instead.
	tree, err := xproto.QueryTree(c.xu.Conn(), c.root).Reply()
	if err != nil {
		return out, nil
	}

	for _, win := range tree.Children {
		attrs, err := xproto.GetWindowAttributes(c.xu.Conn(), win).Reply()
		if err != nil || attrs.MapState != xproto.MapStateViewable {
			continue
		}
		types, err := ewmh.WmWindowTypeGet(c.xu, win)
		if err != nil {
			continue
		}
		isDock := false
		for _, t := range types {
			if t == "_NET_WM_WINDOW_TYPE_DOCK" {
				isDock = true
				break
			}
		}
		if !isDock {
			continue
		}

		if sp, err := ewmh.WmStrutPartialGet(c.xu, win); err == nil {
			accumulateStruts(sp, &out)
			continue
		}
		if s, err := ewmh.WmStrutGet(c.xu, win); err == nil {
			sp := &ewmh.WmStrutPartial{
				Left: s.Left, Right: s.Right, Top: s.Top, Bottom: s.Bottom,
				LeftStartY: 0, LeftEndY: uint(rootHeight - 1),
				RightStartY: 0, RightEndY: uint(rootHeight - 1),
				TopStartX: 0, TopEndX: uint(rootWidth - 1),
				BottomStartX: 0, BottomEndX: uint(rootWidth - 1),
			}
			accumulateStruts(sp, &out)
		}
	}
	return out, nil
}

func accumulateStruts(sp *ewmh.WmStrutPartial, acc *dockStruts) {
	if int(sp.Left) > acc.left {
		acc.left = int(sp.Left)
	}
	if int(sp.Right) > acc.right {
		acc.right = int(sp.Right)
	}
	if int(sp.Top) > acc.top {
		acc.top = int(sp.Top)
	}
	if int(sp.Bottom) > acc.bottom {
		acc.bottom = int(sp.Bottom)
	}
}

func applyStruts(rect geometry.Rect, s dockStruts) geometry.Rect {
	rect.X += s.left
	rect.Y += s.top
	rect.Width -= s.left + s.right
	rect.Height -= s.top + s.bottom
	if rect.Width < 1 {
		rect.Width = 1
	}
	if rect.Height < 1 {
		rect.Height = 1
	}
	return rect
}
