package geometry

import "testing"

func TestSplitAtWidth_ConservesTotal(t *testing.T) {
	r := Rect{X: 0, Y: 0, Width: 1000, Height: 800}
	left, right := r.SplitAtWidth(600)
	if left.Width+right.Width != r.Width {
		t.Fatalf("widths don't sum: %d + %d != %d", left.Width, right.Width, r.Width)
	}
	if left != (Rect{X: 0, Y: 0, Width: 600, Height: 800}) {
		t.Fatalf("unexpected left: %+v", left)
	}
	if right != (Rect{X: 600, Y: 0, Width: 400, Height: 800}) {
		t.Fatalf("unexpected right: %+v", right)
	}
}

func TestSplitAtWidth_ClampsOutOfRange(t *testing.T) {
	r := Rect{X: 0, Y: 0, Width: 100, Height: 100}
	left, right := r.SplitAtWidth(500)
	if left.Width != 100 || right.Width != 0 {
		t.Fatalf("expected clamp to full width, got left=%d right=%d", left.Width, right.Width)
	}
}

func TestRows_NoPixelsLost(t *testing.T) {
	r := Rect{X: 0, Y: 0, Width: 100, Height: 100}
	rows := r.Rows(3)
	total := 0
	for _, row := range rows {
		total += row.Height
	}
	if total != r.Height {
		t.Fatalf("rows don't sum to total height: %d != %d", total, r.Height)
	}
	if rows[2].Height != 34 { // 100/3=33, last row gets 100-33*2=34
		t.Fatalf("expected last row to absorb remainder, got %d", rows[2].Height)
	}
}

func TestColumns_NoPixelsLost(t *testing.T) {
	r := Rect{X: 10, Y: 0, Width: 100, Height: 50}
	cols := r.Columns(3)
	total := 0
	for _, c := range cols {
		total += c.Width
	}
	if total != r.Width {
		t.Fatalf("cols don't sum to total width: %d != %d", total, r.Width)
	}
}

func TestShrinkBorder_ClampsAtZero(t *testing.T) {
	r := Rect{X: 0, Y: 0, Width: 10, Height: 10}
	got := r.ShrinkBorder(20)
	if got.Width != 0 || got.Height != 0 {
		t.Fatalf("expected zero dims, got %+v", got)
	}
}

func TestCenteredIn_FailsWhenTooBig(t *testing.T) {
	outer := Rect{X: 0, Y: 0, Width: 100, Height: 100}
	inner := Rect{Width: 200, Height: 50}
	if _, ok := inner.CenteredIn(outer); ok {
		t.Fatalf("expected centering to fail for oversized rect")
	}
}

func TestCenteredIn_Centers(t *testing.T) {
	outer := Rect{X: 0, Y: 0, Width: 100, Height: 100}
	inner := Rect{Width: 50, Height: 20}
	got, ok := inner.CenteredIn(outer)
	if !ok {
		t.Fatalf("expected centering to succeed")
	}
	want := Rect{X: 25, Y: 40, Width: 50, Height: 20}
	if got != want {
		t.Fatalf("got %+v want %+v", got, want)
	}
}

func TestRelativeRect_RoundTrip(t *testing.T) {
	ref := Rect{X: 0, Y: 0, Width: 1920, Height: 1080}
	r := Rect{X: 100, Y: 200, Width: 640, Height: 480}
	rr := RelativeTo(r, ref)
	back := rr.AppliedTo(ref)
	if back != r {
		t.Fatalf("round trip failed: %+v != %+v", back, r)
	}
}

func TestRelativeRect_RoundTrip_NonZeroOrigin(t *testing.T) {
	ref := Rect{X: 1920, Y: 0, Width: 1366, Height: 768}
	r := Rect{X: 2000, Y: 100, Width: 400, Height: 300}
	rr := RelativeTo(r, ref)
	back := rr.AppliedTo(ref)
	if back != r {
		t.Fatalf("round trip failed: %+v != %+v", back, r)
	}
}

func TestContains(t *testing.T) {
	r := Rect{X: 0, Y: 0, Width: 100, Height: 100}
	if !r.Contains(Point{X: 0, Y: 0}) {
		t.Fatal("expected top-left to be contained")
	}
	if r.Contains(Point{X: 100, Y: 100}) {
		t.Fatal("expected bottom-right corner (exclusive) to not be contained")
	}
	if r.Contains(Point{X: -1, Y: 0}) {
		t.Fatal("expected negative x to not be contained")
	}
}

func TestContainsRect(t *testing.T) {
	outer := Rect{X: 0, Y: 0, Width: 100, Height: 100}
	inner := Rect{X: 10, Y: 10, Width: 50, Height: 50}
	if !outer.ContainsRect(inner) {
		t.Fatal("expected inner to be contained")
	}
	overflowing := Rect{X: 90, Y: 90, Width: 50, Height: 50}
	if outer.ContainsRect(overflowing) {
		t.Fatal("expected overflowing rect to not be contained")
	}
}
