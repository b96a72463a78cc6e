package layout

import (
	"reflect"
	"testing"

	"github.com/1broseidon/penrose/internal/pure/geometry"
	"github.com/1broseidon/penrose/internal/pure/stack"
)

func fiveClients() *stack.Stack[Xid] {
	return stack.NewFrom([]Xid{}, Xid(1), []Xid{2, 3, 4, 5})
}

func TestCenteredMain_ThreeRegions(t *testing.T) {
	l := NewCenteredMain(Side, 1, 0.5, 0.05)
	rect := geometry.Rect{X: 0, Y: 0, Width: 1000, Height: 800}
	_, placements := l.Apply(fiveClients(), rect)

	want := []Placement{
		{Client: 1, Rect: geometry.Rect{X: 250, Y: 0, Width: 500, Height: 800}},
		{Client: 2, Rect: geometry.Rect{X: 0, Y: 0, Width: 250, Height: 400}},
		{Client: 3, Rect: geometry.Rect{X: 0, Y: 400, Width: 250, Height: 400}},
		{Client: 4, Rect: geometry.Rect{X: 750, Y: 0, Width: 250, Height: 400}},
		{Client: 5, Rect: geometry.Rect{X: 750, Y: 400, Width: 250, Height: 400}},
	}
	if !reflect.DeepEqual(placements, want) {
		t.Fatalf("got %+v want %+v", placements, want)
	}
}

func TestCenteredMain_FallsBackWhenNoRightRegion(t *testing.T) {
	// n - max_main == 1 means n_right would be zero: falls back to MainAndStack.
	l := NewCenteredMain(Side, 1, 0.5, 0.05)
	rect := geometry.Rect{X: 0, Y: 0, Width: 1000, Height: 800}
	s := stack.NewFrom([]Xid{}, Xid(1), []Xid{2})
	_, placements := l.Apply(s, rect)

	want := []Placement{
		{Client: 1, Rect: geometry.Rect{X: 0, Y: 0, Width: 500, Height: 800}},
		{Client: 2, Rect: geometry.Rect{X: 500, Y: 0, Width: 500, Height: 800}},
	}
	if !reflect.DeepEqual(placements, want) {
		t.Fatalf("got %+v want %+v", placements, want)
	}
}

func TestCenteredMain_FallsBackWhenUnderMaxMain(t *testing.T) {
	l := NewCenteredMain(Side, 3, 0.5, 0.05)
	rect := geometry.Rect{X: 0, Y: 0, Width: 900, Height: 300}
	s := stack.New(Xid(1))
	_, placements := l.Apply(s, rect)
	want := []Placement{{Client: 1, Rect: rect}}
	if !reflect.DeepEqual(placements, want) {
		t.Fatalf("got %+v want %+v", placements, want)
	}
}

func TestCenteredMain_AllClientsPlaced(t *testing.T) {
	l := NewCenteredMain(Bottom, 2, 0.4, 0.05)
	rect := geometry.Rect{X: 0, Y: 0, Width: 1200, Height: 900}
	s := stack.NewFrom([]Xid{}, Xid(1), []Xid{2, 3, 4, 5, 6, 7})
	_, placements := l.Apply(s, rect)
	if len(placements) != 7 {
		t.Fatalf("expected all 7 clients placed, got %d", len(placements))
	}
	seen := map[Xid]bool{}
	for _, p := range placements {
		seen[p.Client] = true
	}
	for _, c := range []Xid{1, 2, 3, 4, 5, 6, 7} {
		if !seen[c] {
			t.Fatalf("client %d missing from placements", c)
		}
	}
}
