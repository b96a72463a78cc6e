// Package stack implements a zipper-structured ordered collection with a
// single focused element: conceptually a list with a hole. It is the
// building block every workspace's client ordering is built from.
package stack

// Position selects where an element is inserted relative to the current
// focus.
type Position int

const (
	// Focus displaces the current focus downward and becomes the new focus.
	Focus Position = iota
	// Before inserts immediately before the current focus, without moving it.
	Before
	// After inserts immediately after the current focus, without moving it.
	After
	// Head inserts at absolute position 0, without moving the focus.
	Head
	// Tail inserts at the absolute end, without moving the focus.
	Tail
)

// Stack is a zipper over an ordered sequence with exactly one focused
// element: (up, focus, down), where up is nearest-to-focus-first and down
// is nearest-to-focus-first. The zero value is not valid; construct with
// New or NewFrom.
type Stack[T comparable] struct {
	up    []T
	focus T
	down  []T
}

// New returns a singleton Stack focused on x.
func New[T comparable](x T) *Stack[T] {
	return &Stack[T]{focus: x}
}

// NewFrom builds a Stack from up (nearest-first), a focus, and down
// (nearest-first). The slices are copied.
func NewFrom[T comparable](up []T, focus T, down []T) *Stack[T] {
	s := &Stack[T]{focus: focus}
	s.up = append(s.up, up...)
	s.down = append(s.down, down...)
	return s
}

// Clone returns a deep copy of s.
func (s *Stack[T]) Clone() *Stack[T] {
	return NewFrom(s.up, s.focus, s.down)
}

// Len returns the total number of elements, always >= 1.
func (s *Stack[T]) Len() int {
	return len(s.up) + 1 + len(s.down)
}

// Focus returns the currently focused element.
func (s *Stack[T]) Focus() T {
	return s.focus
}

// Head returns the first element in display order: the first element of
// up if non-empty, else the focus.
func (s *Stack[T]) Head() T {
	if len(s.up) > 0 {
		return s.up[len(s.up)-1]
	}
	return s.focus
}

// Up returns the nearest-first predecessor list (a copy).
func (s *Stack[T]) Up() []T { return append([]T{}, s.up...) }

// Down returns the nearest-first successor list (a copy).
func (s *Stack[T]) Down() []T { return append([]T{}, s.down...) }

// Iter returns every element in display order: head-of-up (reversed),
// focus, down.
func (s *Stack[T]) Iter() []T {
	out := make([]T, 0, s.Len())
	for i := len(s.up) - 1; i >= 0; i-- {
		out = append(out, s.up[i])
	}
	out = append(out, s.focus)
	out = append(out, s.down...)
	return out
}

// FocusIndex returns the display-order index of the focused element.
func (s *Stack[T]) FocusIndex() int { return len(s.up) }

// At returns the element at display-order index i.
func (s *Stack[T]) At(i int) T {
	switch {
	case i < len(s.up):
		return s.up[len(s.up)-1-i]
	case i == len(s.up):
		return s.focus
	default:
		return s.down[i-len(s.up)-1]
	}
}

// SetAt replaces the element at display-order index i, leaving the focus
// position and the order of every other element unchanged.
func (s *Stack[T]) SetAt(i int, x T) {
	switch {
	case i < len(s.up):
		s.up[len(s.up)-1-i] = x
	case i == len(s.up):
		s.focus = x
	default:
		s.down[i-len(s.up)-1] = x
	}
}

// ReplaceFocus overwrites the focused element without moving the cursor.
func (s *Stack[T]) ReplaceFocus(x T) { s.focus = x }

// Contains reports whether x appears anywhere in s.
func (s *Stack[T]) Contains(x T) bool {
	if s.focus == x {
		return true
	}
	return indexOf(s.up, x) >= 0 || indexOf(s.down, x) >= 0
}

// Reverse swaps the roles of up and down, reversing display order while
// keeping the same element focused.
func (s *Stack[T]) Reverse() {
	s.up, s.down = s.down, s.up
}

// reverseBoth reverses the up and down slices in place without swapping
// their roles. Used only to express RotateUp/RotateDown in terms of
// SwapUp per the composition law in the spec.
func (s *Stack[T]) reverseBoth() {
	s.up = reversed(s.up)
	s.down = reversed(s.down)
}

// FocusUp moves the cursor to the previous element, wrapping around the
// start to the last element. Order is unchanged.
func (s *Stack[T]) FocusUp() {
	if len(s.up) == 0 {
		if len(s.down) == 0 {
			return
		}
		all := reversed(append([]T{s.focus}, s.down...))
		s.focus = all[0]
		s.up = all[1:]
		s.down = nil
		return
	}
	newFocus := s.up[0]
	s.down = append([]T{s.focus}, s.down...)
	s.up = s.up[1:]
	s.focus = newFocus
}

// FocusDown moves the cursor to the next element, wrapping around the end
// to the first element. Order is unchanged. Defined as reverse . focusUp
// . reverse so the composition law holds by construction.
func (s *Stack[T]) FocusDown() {
	s.Reverse()
	s.FocusUp()
	s.Reverse()
}

// SwapUp exchanges the focused element with its predecessor (wrapping),
// keeping focus on the same element.
func (s *Stack[T]) SwapUp() {
	if len(s.up) == 0 {
		if len(s.down) == 0 {
			return
		}
		s.up = reversed(s.down)
		s.down = nil
		return
	}
	neighbour := s.up[0]
	s.up = s.up[1:]
	s.down = append([]T{neighbour}, s.down...)
}

// SwapDown exchanges the focused element with its successor (wrapping),
// keeping focus on the same element. Defined as reverse . swapUp .
// reverse so the composition law holds by construction.
func (s *Stack[T]) SwapDown() {
	s.Reverse()
	s.SwapUp()
	s.Reverse()
}

// RotateUp cyclically permutes all elements while keeping the cursor
// pointing at its original focused element. Defined as rev_both . swapUp
// . rev_both per the spec's composition law.
func (s *Stack[T]) RotateUp() {
	s.reverseBoth()
	s.SwapUp()
	s.reverseBoth()
}

// RotateDown cyclically permutes all elements while keeping the cursor
// pointing at its original focused element. Defined as reverse . rotateUp
// . reverse per the spec's composition law.
func (s *Stack[T]) RotateDown() {
	s.Reverse()
	s.RotateUp()
	s.Reverse()
}

// InsertAt inserts x at pos relative to the current focus. Callers are
// responsible for ensuring x is not already present anywhere in the
// collection this Stack belongs to; duplicate membership is a
// StackSet-level invariant, not a Stack-level one.
func (s *Stack[T]) InsertAt(pos Position, x T) {
	switch pos {
	case Focus:
		s.down = append([]T{s.focus}, s.down...)
		s.focus = x
	case Before:
		s.up = append([]T{x}, s.up...)
	case After:
		s.down = append([]T{x}, s.down...)
	case Head:
		if len(s.up) == 0 {
			s.up = []T{x}
		} else {
			s.up = append(s.up, x)
		}
	case Tail:
		s.down = append(s.down, x)
	}
}

// RemoveFocused removes the focused element, returning it. Focus moves to
// the first down element, else the last up element, or ok=false if the
// Stack had length 1 (in which case s is left untouched and the caller
// must discard it entirely — a Stack can never be empty).
func (s *Stack[T]) RemoveFocused() (removed T, ok bool) {
	removed = s.focus
	if len(s.down) > 0 {
		s.focus = s.down[0]
		s.down = s.down[1:]
		return removed, true
	}
	if len(s.up) > 0 {
		s.focus = s.up[0]
		s.up = s.up[1:]
		return removed, true
	}
	return removed, false
}

// Remove removes x from s wherever it occurs. Returns ok=false (s
// unmodified) if x is not present, or if x is the sole element (the
// caller must discard the Stack entirely in that case, mirroring
// RemoveFocused).
func (s *Stack[T]) Remove(x T) (ok bool) {
	if s.focus == x {
		_, ok := s.RemoveFocused()
		return ok
	}
	if i := indexOf(s.up, x); i >= 0 {
		s.up = append(s.up[:i], s.up[i+1:]...)
		return true
	}
	if i := indexOf(s.down, x); i >= 0 {
		s.down = append(s.down[:i], s.down[i+1:]...)
		return true
	}
	return false
}

// Filter keeps only elements satisfying pred. Focus is preserved if
// pred(focus); otherwise focus advances to the nearest surviving
// successor, else predecessor. Returns nil if no element survives.
func Filter[T comparable](s *Stack[T], pred func(T) bool) *Stack[T] {
	all := s.Iter()
	focusIdx := len(s.up)

	kept := make([]int, 0, len(all))
	for i, v := range all {
		if pred(v) {
			kept = append(kept, i)
		}
	}
	if len(kept) == 0 {
		return nil
	}

	newFocusPos := -1
	if pred(all[focusIdx]) {
		newFocusPos = focusIdx
	} else {
		for _, i := range kept {
			if i > focusIdx {
				newFocusPos = i
				break
			}
		}
		if newFocusPos == -1 {
			for i := len(kept) - 1; i >= 0; i-- {
				if kept[i] < focusIdx {
					newFocusPos = kept[i]
					break
				}
			}
		}
	}

	var up, down []T
	var focus T
	for _, i := range kept {
		switch {
		case i < newFocusPos:
			up = append(up, all[i])
		case i == newFocusPos:
			focus = all[i]
		default:
			down = append(down, all[i])
		}
	}
	return NewFrom(reversed(up), focus, down)
}

func indexOf[T comparable](xs []T, x T) int {
	for i, v := range xs {
		if v == x {
			return i
		}
	}
	return -1
}

func reversed[T any](xs []T) []T {
	out := make([]T, len(xs))
	for i, v := range xs {
		out[len(xs)-1-i] = v
	}
	return out
}
