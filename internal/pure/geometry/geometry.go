// Package geometry provides integer-coordinate rectangles and points used
// throughout the pure window-manager core, plus a relative (fractional)
// rectangle representation for floating-window placement.
package geometry

import "math"

// Point is an integer-coordinate location on the root window.
type Point struct {
	X, Y int
}

// Rect is an integer-coordinate, axis-aligned rectangle. X and Y are the
// top-left corner; Width and Height are always non-negative.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Contains reports whether p lies within r (inclusive of the top-left
// edge, exclusive of the bottom-right edge).
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.Width && p.Y >= r.Y && p.Y < r.Y+r.Height
}

// ContainsRect reports whether other is entirely within r.
func (r Rect) ContainsRect(other Rect) bool {
	return other.X >= r.X && other.Y >= r.Y &&
		other.X+other.Width <= r.X+r.Width &&
		other.Y+other.Height <= r.Y+r.Height
}

// SplitAtWidth splits r into a left and right rect at the given absolute
// width. w is clamped to [0, r.Width].
func (r Rect) SplitAtWidth(w int) (left, right Rect) {
	w = clamp(w, 0, r.Width)
	left = Rect{X: r.X, Y: r.Y, Width: w, Height: r.Height}
	right = Rect{X: r.X + w, Y: r.Y, Width: r.Width - w, Height: r.Height}
	return left, right
}

// SplitAtHeight splits r into a top and bottom rect at the given absolute
// height. h is clamped to [0, r.Height].
func (r Rect) SplitAtHeight(h int) (top, bottom Rect) {
	h = clamp(h, 0, r.Height)
	top = Rect{X: r.X, Y: r.Y, Width: r.Width, Height: h}
	bottom = Rect{X: r.X, Y: r.Y + h, Width: r.Width, Height: r.Height - h}
	return top, bottom
}

// SplitAtWidthRatio splits r at a proportional width in [0,1].
func (r Rect) SplitAtWidthRatio(ratio float32) (left, right Rect) {
	return r.SplitAtWidth(int(float32(r.Width) * clampf(ratio, 0, 1)))
}

// SplitAtHeightRatio splits r at a proportional height in [0,1].
func (r Rect) SplitAtHeightRatio(ratio float32) (top, bottom Rect) {
	return r.SplitAtHeight(int(float32(r.Height) * clampf(ratio, 0, 1)))
}

// Rows splits r into n evenly sized rows, stacked top to bottom. Any
// leftover pixels from integer division accumulate into the last row so
// no pixels are lost. Panics if n <= 0.
func (r Rect) Rows(n int) []Rect {
	if n <= 0 {
		panic("geometry: Rows requires n > 0")
	}
	out := make([]Rect, n)
	h := r.Height / n
	y := r.Y
	for i := 0; i < n; i++ {
		rowH := h
		if i == n-1 {
			rowH = r.Height - h*(n-1)
		}
		out[i] = Rect{X: r.X, Y: y, Width: r.Width, Height: rowH}
		y += rowH
	}
	return out
}

// Columns splits r into n evenly sized columns, left to right. Leftover
// pixels accumulate into the last column. Panics if n <= 0.
func (r Rect) Columns(n int) []Rect {
	if n <= 0 {
		panic("geometry: Columns requires n > 0")
	}
	out := make([]Rect, n)
	w := r.Width / n
	x := r.X
	for i := 0; i < n; i++ {
		colW := w
		if i == n-1 {
			colW = r.Width - w*(n-1)
		}
		out[i] = Rect{X: x, Y: r.Y, Width: colW, Height: r.Height}
		x += colW
	}
	return out
}

// Grid splits r into a cols x rows grid, row-major, with leftover pixels
// in the last row/column. The final row may contain fewer cells if the
// caller only uses the first n of cols*rows.
func (r Rect) Grid(cols, rows int) []Rect {
	if cols <= 0 || rows <= 0 {
		panic("geometry: Grid requires cols > 0 and rows > 0")
	}
	out := make([]Rect, 0, cols*rows)
	for _, row := range r.Rows(rows) {
		out = append(out, row.Columns(cols)...)
	}
	return out
}

// ShrinkBorder insets r on all sides by px, clamping so width/height never
// go negative.
func (r Rect) ShrinkBorder(px int) Rect {
	w := r.Width - 2*px
	h := r.Height - 2*px
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return Rect{X: r.X + px, Y: r.Y + px, Width: w, Height: h}
}

// WithPosition returns r repositioned to (x, y).
func (r Rect) WithPosition(x, y int) Rect {
	r.X, r.Y = x, y
	return r
}

// Resized returns r resized to w x h, saturating at zero.
func (r Rect) Resized(w, h int) Rect {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	r.Width, r.Height = w, h
	return r
}

// CenteredIn centers r inside outer, returning the centered rect and true,
// or the zero Rect and false if r does not fit inside outer.
func (r Rect) CenteredIn(outer Rect) (Rect, bool) {
	if r.Width > outer.Width || r.Height > outer.Height {
		return Rect{}, false
	}
	return Rect{
		X:      outer.X + (outer.Width-r.Width)/2,
		Y:      outer.Y + (outer.Height-r.Height)/2,
		Width:  r.Width,
		Height: r.Height,
	}, true
}

// RelativeRect is the same shape as Rect expressed as four floats in
// [0,1], relative to some reference Rect (typically a screen).
type RelativeRect struct {
	X, Y          float32
	Width, Height float32
}

// RelativeTo converts an absolute Rect into a RelativeRect expressed
// against ref. Division by a zero reference dimension yields zero.
func RelativeTo(r, ref Rect) RelativeRect {
	rr := RelativeRect{}
	if ref.Width != 0 {
		rr.X = float32(r.X-ref.X) / float32(ref.Width)
		rr.Width = float32(r.Width) / float32(ref.Width)
	}
	if ref.Height != 0 {
		rr.Y = float32(r.Y-ref.Y) / float32(ref.Height)
		rr.Height = float32(r.Height) / float32(ref.Height)
	}
	return rr
}

// AppliedTo converts rr back into an absolute Rect against ref.
//
// For a RelativeRect fully contained in [0,1] produced by RelativeTo for a
// rect fully contained in ref, RelativeTo(AppliedTo(rr, ref), ref) == rr
// up to floating-point rounding, and AppliedTo(RelativeTo(r, ref), ref) == r
// for integer r contained in ref.
func (rr RelativeRect) AppliedTo(ref Rect) Rect {
	return Rect{
		X:      ref.X + int(math.Round(float64(rr.X)*float64(ref.Width))),
		Y:      ref.Y + int(math.Round(float64(rr.Y)*float64(ref.Height))),
		Width:  int(math.Round(float64(rr.Width) * float64(ref.Width))),
		Height: int(math.Round(float64(rr.Height) * float64(ref.Height))),
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampf(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
