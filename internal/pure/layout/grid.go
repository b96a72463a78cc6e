package layout

import (
	"math"

	"github.com/1broseidon/penrose/internal/pure/geometry"
	"github.com/1broseidon/penrose/internal/pure/stack"
)

// Grid places every client in the smallest n_cols x n_rows grid with
// n_cols * n_rows >= n and n_cols = ceil(sqrt(n)). Clients fill row by
// row, left to right; the last row may hold fewer than n_cols clients.
type Grid struct{}

func NewGrid() *Grid { return &Grid{} }

func (l *Grid) Name() string { return "grid" }

func (l *Grid) Clone() Layout { return &Grid{} }

func (l *Grid) Apply(cs *stack.Stack[Xid], rect geometry.Rect) (Layout, []Placement) {
	clients := cs.Iter()
	n := len(clients)

	nCols := int(math.Ceil(math.Sqrt(float64(n))))
	nRows := int(math.Ceil(float64(n) / float64(nCols)))

	rowRects := rect.Rows(nRows)
	out := make([]Placement, 0, n)
	idx := 0
	for row := 0; row < nRows && idx < n; row++ {
		remaining := n - idx
		colsInRow := nCols
		if remaining < colsInRow {
			colsInRow = remaining
		}
		cells := rowRects[row].Columns(colsInRow)
		for c := 0; c < colsInRow; c++ {
			out = append(out, Placement{Client: clients[idx], Rect: cells[c]})
			idx++
		}
	}
	return nil, out
}

func (l *Grid) HandleMessage(m Message) Layout {
	return nil
}
