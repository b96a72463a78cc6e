package layout

import (
	"github.com/1broseidon/penrose/internal/pure/geometry"
	"github.com/1broseidon/penrose/internal/pure/stack"
)

// LayoutStack is a focused, cyclable collection of Layout algorithms. A
// workspace owns one LayoutStack; only the focused Layout ever runs.
type LayoutStack struct {
	layouts *stack.Stack[Layout]
}

// NewLayoutStack builds a LayoutStack from an ordered, non-empty list of
// layouts, with the first layout focused.
func NewLayoutStack(layouts ...Layout) *LayoutStack {
	if len(layouts) == 0 {
		panic("layout: NewLayoutStack requires at least one layout")
	}
	s := stack.New(layouts[0])
	for _, l := range layouts[1:] {
		s.InsertAt(stack.Tail, l)
	}
	return &LayoutStack{layouts: s}
}

// Current returns the focused layout.
func (ls *LayoutStack) Current() Layout {
	return ls.layouts.Focus()
}

// Apply runs the focused layout, swapping it out for its replacement (if
// any) before returning the placements.
func (ls *LayoutStack) Apply(cs *stack.Stack[Xid], rect geometry.Rect) []Placement {
	replacement, placements := ls.layouts.Focus().Apply(cs, rect)
	if replacement != nil {
		ls.layouts.InsertAt(stack.Focus, replacement)
		ls.layouts.Remove(ls.layouts.Down()[0])
	}
	return placements
}

// HandleMessage delivers m to the focused layout only, substituting it
// for its replacement when one is returned.
func (ls *LayoutStack) HandleMessage(m Message) {
	replacement := ls.layouts.Focus().HandleMessage(m)
	if replacement != nil {
		ls.layouts.InsertAt(stack.Focus, replacement)
		ls.layouts.Remove(ls.layouts.Down()[0])
	}
}

// CycleNext focuses the next layout in the rotation, wrapping around.
func (ls *LayoutStack) CycleNext() {
	ls.layouts.FocusDown()
}

// CyclePrev focuses the previous layout in the rotation, wrapping around.
func (ls *LayoutStack) CyclePrev() {
	ls.layouts.FocusUp()
}

// Names returns the display names of every layout in rotation order,
// with the focused one reported separately.
func (ls *LayoutStack) Names() (all []string, focusedIdx int) {
	iter := ls.layouts.Iter()
	all = make([]string, len(iter))
	focus := ls.layouts.Focus()
	for i, l := range iter {
		all[i] = l.Name()
		if l == focus {
			focusedIdx = i
		}
	}
	return all, focusedIdx
}

// Clone returns an independent copy of the LayoutStack, cloning every
// contained Layout's internal state.
func (ls *LayoutStack) Clone() *LayoutStack {
	iter := ls.layouts.Iter()
	cloned := make([]Layout, len(iter))
	focusIdx := 0
	focus := ls.layouts.Focus()
	for i, l := range iter {
		cloned[i] = l.Clone()
		if l == focus {
			focusIdx = i
		}
	}
	// Rebuild with the same focus position.
	up := make([]Layout, 0, focusIdx)
	for i := focusIdx - 1; i >= 0; i-- {
		up = append(up, cloned[i])
	}
	down := append([]Layout{}, cloned[focusIdx+1:]...)
	return &LayoutStack{layouts: stack.NewFrom(up, cloned[focusIdx], down)}
}
