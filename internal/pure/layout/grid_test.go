package layout

import (
	"testing"

	"github.com/1broseidon/penrose/internal/pure/geometry"
	"github.com/1broseidon/penrose/internal/pure/stack"
)

func TestGrid_SquareCount(t *testing.T) {
	l := NewGrid()
	rect := geometry.Rect{X: 0, Y: 0, Width: 900, Height: 900}
	s := stack.NewFrom([]Xid{}, Xid(1), []Xid{2, 3, 4, 5, 6, 7, 8, 9})
	_, placements := l.Apply(s, rect)
	// n=9 -> 3x3, every cell filled.
	if len(placements) != 9 {
		t.Fatalf("expected 9 placements, got %d", len(placements))
	}
	for _, p := range placements {
		if p.Rect.Width != 300 || p.Rect.Height != 300 {
			t.Fatalf("expected 300x300 cells, got %+v", p.Rect)
		}
	}
}

func TestGrid_LastRowShort(t *testing.T) {
	l := NewGrid()
	rect := geometry.Rect{X: 0, Y: 0, Width: 800, Height: 400}
	// n=7 -> n_cols = ceil(sqrt(7)) = 3, n_rows = ceil(7/3) = 3, last row holds 1.
	s := stack.NewFrom([]Xid{}, Xid(1), []Xid{2, 3, 4, 5, 6, 7})
	_, placements := l.Apply(s, rect)
	if len(placements) != 7 {
		t.Fatalf("expected 7 placements, got %d", len(placements))
	}
	last := placements[6]
	if last.Client != 7 {
		t.Fatalf("expected last placement to be client 7, got %d", last.Client)
	}
	if last.Rect.Width != rect.Width {
		t.Fatalf("expected the lone client in the short row to span full width, got %+v", last.Rect)
	}
}

func TestGrid_SingleClient(t *testing.T) {
	l := NewGrid()
	rect := geometry.Rect{X: 0, Y: 0, Width: 500, Height: 500}
	s := stack.New(Xid(1))
	_, placements := l.Apply(s, rect)
	if len(placements) != 1 || placements[0].Rect != rect {
		t.Fatalf("expected single client to fill rect, got %+v", placements)
	}
}
