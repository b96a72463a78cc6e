package x11driver

import (
	"testing"

	"github.com/BurntSushi/xgbutil/ewmh"

	"github.com/1broseidon/penrose/internal/pure/geometry"
)

func TestApplyStrutsShrinksRect(t *testing.T) {
	rect := geometry.Rect{X: 0, Y: 0, Width: 1000, Height: 800}
	got := applyStruts(rect, dockStruts{left: 10, right: 20, top: 30, bottom: 0})
	want := geometry.Rect{X: 10, Y: 30, Width: 970, Height: 770}
	if got != want {
		t.Fatalf("got %+v want %+v", got, want)
	}
}

func TestApplyStrutsClampsToMinimumSize(t *testing.T) {
	rect := geometry.Rect{X: 0, Y: 0, Width: 50, Height: 50}
	got := applyStruts(rect, dockStruts{left: 40, right: 40})
	if got.Width < 1 || got.Height < 1 {
		t.Fatalf("expected rect clamped to a minimum of 1x1, got %+v", got)
	}
}

func TestAccumulateStrutsTakesMaximum(t *testing.T) {
	var acc dockStruts
	accumulateStruts(&ewmh.WmStrutPartial{Left: 5, Top: 3}, &acc)
	accumulateStruts(&ewmh.WmStrutPartial{Left: 2, Top: 9}, &acc)
	if acc.left != 5 || acc.top != 9 {
		t.Fatalf("expected max per-edge accumulation, got %+v", acc)
	}
}
