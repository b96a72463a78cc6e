package layout

import (
	"github.com/1broseidon/penrose/internal/pure/geometry"
	"github.com/1broseidon/penrose/internal/pure/stack"
)

// Monocle places the focused client at the full rect and leaves every
// other client unplaced (hidden) for the frame.
type Monocle struct{}

func NewMonocle() *Monocle { return &Monocle{} }

func (l *Monocle) Name() string { return "monocle" }

func (l *Monocle) Clone() Layout { return &Monocle{} }

func (l *Monocle) Apply(cs *stack.Stack[Xid], rect geometry.Rect) (Layout, []Placement) {
	return nil, []Placement{{Client: cs.Focus(), Rect: rect}}
}

func (l *Monocle) HandleMessage(m Message) Layout {
	return nil
}
