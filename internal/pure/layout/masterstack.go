package layout

import (
	"math"

	"github.com/1broseidon/penrose/internal/pure/geometry"
	"github.com/1broseidon/penrose/internal/pure/stack"
)

// MasterStack puts one client in a master region sized by
// MasterWidthPercent (a fraction of the rect width in [0,1]), and auto-grids the remainder into the secondary
// region using as many columns as needed to keep each column's client
// count at or below MaxStackRows, capped at MaxStackCols columns.
type MasterStack struct {
	MasterWidthPercent float32
	MaxStackRows       int
	MaxStackCols       int
}

func NewMasterStack(masterWidthPercent float32, maxStackRows, maxStackCols int) *MasterStack {
	return &MasterStack{MasterWidthPercent: masterWidthPercent, MaxStackRows: maxStackRows, MaxStackCols: maxStackCols}
}

func (l *MasterStack) Name() string { return "master-stack" }

func (l *MasterStack) Clone() Layout {
	cp := *l
	return &cp
}

func (l *MasterStack) Apply(cs *stack.Stack[Xid], rect geometry.Rect) (Layout, []Placement) {
	clients := cs.Iter()
	n := len(clients)
	if n == 1 {
		return nil, []Placement{{Client: clients[0], Rect: rect}}
	}

	masterRect, stackRect := rect.SplitAtWidthRatio(l.MasterWidthPercent)
	stackClients := clients[1:]
	stackCount := len(stackClients)

	cols := int(math.Ceil(float64(stackCount) / float64(l.MaxStackRows)))
	if cols < 1 {
		cols = 1
	}
	if l.MaxStackCols > 0 && cols > l.MaxStackCols {
		cols = l.MaxStackCols
	}
	rows := int(math.Ceil(float64(stackCount) / float64(cols)))

	out := make([]Placement, 0, n)
	out = append(out, Placement{Client: clients[0], Rect: masterRect})

	colRects := stackRect.Columns(cols)
	idx := 0
	for col := 0; col < cols && idx < stackCount; col++ {
		remaining := stackCount - idx
		remainingCols := cols - col
		rowsInCol := rows
		if perCol := (remaining + remainingCols - 1) / remainingCols; perCol < rowsInCol {
			rowsInCol = perCol
		}
		cellRects := colRects[col].Rows(rowsInCol)
		for r := 0; r < rowsInCol; r++ {
			out = append(out, Placement{Client: stackClients[idx], Rect: cellRects[r]})
			idx++
		}
	}
	return nil, out
}

func (l *MasterStack) HandleMessage(m Message) Layout {
	switch msg := m.(type) {
	case IncMainMsg:
		next := l.MaxStackCols + msg.N
		if next < 1 {
			next = 1
		}
		l.MaxStackCols = next
		return l
	case ExpandMainMsg:
		l.MasterWidthPercent = clamp01(l.MasterWidthPercent + 0.05)
		return l
	case ShrinkMainMsg:
		l.MasterWidthPercent = clamp01(l.MasterWidthPercent - 0.05)
		return l
	default:
		return nil
	}
}
