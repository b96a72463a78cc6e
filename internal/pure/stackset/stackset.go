// Package stackset composes the client Stacks of every workspace into the
// root of the pure window-manager model: which workspaces are bound to
// which physical screens, which workspaces are hidden, and which clients
// bypass tiling as floats.
package stackset

import (
	"errors"
	"fmt"

	"github.com/1broseidon/penrose/internal/pure/geometry"
	"github.com/1broseidon/penrose/internal/pure/layout"
	"github.com/1broseidon/penrose/internal/pure/stack"
)

var (
	// ErrUnknownClient is returned by Float when the client is not present
	// in any workspace.
	ErrUnknownClient = errors.New("stackset: client is not present in any workspace")
	// ErrOnlyScreenSizedWorkspaces is returned by RemoveWorkspace when the
	// removal would leave fewer workspaces than screens.
	ErrOnlyScreenSizedWorkspaces = errors.New("stackset: removal would leave fewer workspaces than screens")
	// ErrInsufficientWorkspaces is returned by TryNew when fewer tags than
	// screens are supplied.
	ErrInsufficientWorkspaces = errors.New("stackset: fewer tags than screens")
)

// Workspace is a tag, a layout cursor, and an optional client stack.
// Empty workspaces have a nil Stack.
type Workspace struct {
	ID      int
	Tag     string
	Layouts *layout.LayoutStack
	Stack   *stack.Stack[layout.Xid]
}

// Screen is a physical output rectangle paired with the workspace
// currently shown on it.
type Screen struct {
	Workspace Workspace
	Index     int
	Rect      geometry.Rect
}

// StackSet is the root of the pure window-manager model.
type StackSet struct {
	// Screens is always non-empty; the focused screen is the active one.
	Screens *stack.Stack[Screen]
	// Hidden holds workspaces not currently bound to any screen.
	Hidden []Workspace
	// Floating maps a client to its preferred position relative to the
	// screen it is displayed on.
	Floating map[layout.Xid]geometry.RelativeRect
	// PreviousTag is the last focused tag, used by ToggleTag.
	PreviousTag string
	// InvisibleTags names tags that exist but may not be focused onto a
	// screen (used to host scratchpads).
	InvisibleTags []string
}

// TryNew builds a StackSet from a layout-stack template, a set of
// workspace tags, and a rect for every physical screen. The first
// len(screenRects) tags are bound to screens in order; the remainder
// become hidden workspaces. Every workspace gets its own cloned copy of
// layouts so layout state is independent per workspace.
func TryNew(layouts []layout.Layout, tags []string, screenRects []geometry.Rect) (*StackSet, error) {
	if len(layouts) == 0 {
		return nil, errors.New("stackset: at least one layout is required")
	}
	if len(screenRects) == 0 {
		return nil, errors.New("stackset: at least one screen is required")
	}
	if len(tags) < len(screenRects) {
		return nil, fmt.Errorf("stackset: %d tags for %d screens: %w", len(tags), len(screenRects), ErrInsufficientWorkspaces)
	}

	workspaces := make([]Workspace, len(tags))
	for i, tag := range tags {
		workspaces[i] = Workspace{ID: i, Tag: tag, Layouts: layout.NewLayoutStack(cloneLayouts(layouts)...)}
	}

	screens := make([]Screen, len(screenRects))
	for i, r := range screenRects {
		screens[i] = Screen{Workspace: workspaces[i], Index: i, Rect: r}
	}
	hidden := append([]Workspace{}, workspaces[len(screenRects):]...)

	screenStack := stack.New(screens[0])
	for _, sc := range screens[1:] {
		screenStack.InsertAt(stack.Tail, sc)
	}

	return &StackSet{
		Screens:     screenStack,
		Hidden:      hidden,
		Floating:    make(map[layout.Xid]geometry.RelativeRect),
		PreviousTag: tags[0],
	}, nil
}

func cloneLayouts(layouts []layout.Layout) []layout.Layout {
	out := make([]layout.Layout, len(layouts))
	for i, l := range layouts {
		out[i] = l.Clone()
	}
	return out
}

// CurrentTag returns the tag of the focused screen's workspace.
func (ss *StackSet) CurrentTag() string {
	return ss.Screens.Focus().Workspace.Tag
}

// CurrentClient returns the focused client of the active workspace, if
// any.
func (ss *StackSet) CurrentClient() (layout.Xid, bool) {
	st := ss.Screens.Focus().Workspace.Stack
	if st == nil {
		return 0, false
	}
	return st.Focus(), true
}

func (ss *StackSet) tagExists(t string) bool {
	for _, sc := range ss.Screens.Iter() {
		if sc.Workspace.Tag == t {
			return true
		}
	}
	for _, w := range ss.Hidden {
		if w.Tag == t {
			return true
		}
	}
	return false
}

func (ss *StackSet) tagContaining(c layout.Xid) (string, bool) {
	for _, sc := range ss.Screens.Iter() {
		if sc.Workspace.Stack != nil && sc.Workspace.Stack.Contains(c) {
			return sc.Workspace.Tag, true
		}
	}
	for _, w := range ss.Hidden {
		if w.Stack != nil && w.Stack.Contains(c) {
			return w.Tag, true
		}
	}
	return "", false
}

// Contains reports whether c is present in any workspace.
func (ss *StackSet) Contains(c layout.Xid) bool {
	_, ok := ss.tagContaining(c)
	return ok
}

// FocusTag focuses t on the active screen. If t is current, no-op. If t
// is visible on another screen, the two screens exchange workspaces. If
// t is hidden, it is swapped in for the active screen's workspace, which
// becomes hidden in its place.
func (ss *StackSet) FocusTag(t string) {
	focusIdx := ss.Screens.FocusIndex()
	curTag := ss.Screens.Focus().Workspace.Tag
	if curTag == t {
		return
	}

	n := ss.Screens.Len()
	for i := 0; i < n; i++ {
		if i == focusIdx {
			continue
		}
		sc := ss.Screens.At(i)
		if sc.Workspace.Tag == t {
			focused := ss.Screens.Focus()
			focused.Workspace, sc.Workspace = sc.Workspace, focused.Workspace
			ss.Screens.ReplaceFocus(focused)
			ss.Screens.SetAt(i, sc)
			ss.PreviousTag = curTag
			return
		}
	}

	for i, w := range ss.Hidden {
		if w.Tag == t {
			focused := ss.Screens.Focus()
			old := focused.Workspace
			focused.Workspace = w
			ss.Screens.ReplaceFocus(focused)
			ss.Hidden[i] = old
			ss.PreviousTag = curTag
			return
		}
	}
}

// ToggleTag focuses the previously focused tag.
func (ss *StackSet) ToggleTag() {
	ss.FocusTag(ss.PreviousTag)
}

// FocusClient focuses the tag containing c and moves the workspace
// cursor to it. No-op if c is unknown or already focused.
func (ss *StackSet) FocusClient(c layout.Xid) {
	if cur, ok := ss.CurrentClient(); ok && cur == c {
		return
	}
	tag, ok := ss.tagContaining(c)
	if !ok {
		return
	}
	ss.FocusTag(tag)
	st := ss.Screens.Focus().Workspace.Stack
	if st == nil {
		return
	}
	for st.Focus() != c {
		st.FocusUp()
	}
}

// Insert inserts c at the focus of the active workspace. No-op if c
// already exists anywhere in the StackSet.
func (ss *StackSet) Insert(c layout.Xid) {
	ss.InsertAt(stack.Focus, c)
}

// InsertAt inserts c at pos in the active workspace's stack, creating a
// singleton stack if the workspace was empty. No-op if c already exists
// anywhere in the StackSet.
func (ss *StackSet) InsertAt(pos stack.Position, c layout.Xid) {
	if ss.Contains(c) {
		return
	}
	focused := ss.Screens.Focus()
	if focused.Workspace.Stack == nil {
		focused.Workspace.Stack = stack.New(c)
		ss.Screens.ReplaceFocus(focused)
		return
	}
	focused.Workspace.Stack.InsertAt(pos, c)
}

// Float records r, relative to the screen currently showing c's
// workspace, as c's preferred floating position. Returns ErrUnknownClient
// if c is not in any workspace.
func (ss *StackSet) Float(c layout.Xid, r geometry.Rect) error {
	tag, ok := ss.tagContaining(c)
	if !ok {
		return fmt.Errorf("stackset: float client %d: %w", c, ErrUnknownClient)
	}
	ref := ss.Screens.Focus().Rect
	for _, sc := range ss.Screens.Iter() {
		if sc.Workspace.Tag == tag {
			ref = sc.Rect
			break
		}
	}
	ss.Floating[c] = geometry.RelativeTo(r, ref)
	return nil
}

// Sink removes c from the floating set.
func (ss *StackSet) Sink(c layout.Xid) {
	delete(ss.Floating, c)
}

// removeFromCurrentStack removes c from whichever workspace stack
// contains it, without touching the floating set.
func (ss *StackSet) removeFromCurrentStack(c layout.Xid) bool {
	n := ss.Screens.Len()
	for i := 0; i < n; i++ {
		sc := ss.Screens.At(i)
		if sc.Workspace.Stack != nil && sc.Workspace.Stack.Contains(c) {
			if sc.Workspace.Stack.Len() == 1 {
				sc.Workspace.Stack = nil
			} else {
				sc.Workspace.Stack.Remove(c)
			}
			ss.Screens.SetAt(i, sc)
			return true
		}
	}
	for i := range ss.Hidden {
		w := &ss.Hidden[i]
		if w.Stack != nil && w.Stack.Contains(c) {
			if w.Stack.Len() == 1 {
				w.Stack = nil
			} else {
				w.Stack.Remove(c)
			}
			return true
		}
	}
	return false
}

// RemoveClient removes c from whichever workspace contains it, and sinks
// it. Returns the removed client and whether it was present.
func (ss *StackSet) RemoveClient(c layout.Xid) (layout.Xid, bool) {
	if !ss.removeFromCurrentStack(c) {
		return 0, false
	}
	ss.Sink(c)
	return c, true
}

// RemoveFocused removes the focused client of the active workspace.
func (ss *StackSet) RemoveFocused() (layout.Xid, bool) {
	c, ok := ss.CurrentClient()
	if !ok {
		return 0, false
	}
	return ss.RemoveClient(c)
}

func (ss *StackSet) insertAtTag(t string, c layout.Xid) {
	n := ss.Screens.Len()
	for i := 0; i < n; i++ {
		sc := ss.Screens.At(i)
		if sc.Workspace.Tag == t {
			if sc.Workspace.Stack == nil {
				sc.Workspace.Stack = stack.New(c)
			} else {
				sc.Workspace.Stack.InsertAt(stack.Focus, c)
			}
			ss.Screens.SetAt(i, sc)
			return
		}
	}
	for i := range ss.Hidden {
		w := &ss.Hidden[i]
		if w.Tag == t {
			if w.Stack == nil {
				w.Stack = stack.New(c)
			} else {
				w.Stack.InsertAt(stack.Focus, c)
			}
			return
		}
	}
}

// MoveClientToTag moves c to the focused position of t's workspace.
// No-op if t is unknown or c is not present anywhere. A floating client
// keeps its floating status but its relative rect is not recomputed.
func (ss *StackSet) MoveClientToTag(c layout.Xid, t string) {
	if !ss.tagExists(t) {
		return
	}
	if !ss.Contains(c) {
		return
	}
	ss.removeFromCurrentStack(c)
	ss.insertAtTag(t, c)
}

// MoveFocusedToTag moves the active workspace's focused client to t.
// No-op if the active workspace is empty.
func (ss *StackSet) MoveFocusedToTag(t string) {
	c, ok := ss.CurrentClient()
	if !ok {
		return
	}
	ss.MoveClientToTag(c, t)
}

func (ss *StackSet) nextWorkspaceID() int {
	max := -1
	for _, sc := range ss.Screens.Iter() {
		if sc.Workspace.ID > max {
			max = sc.Workspace.ID
		}
	}
	for _, w := range ss.Hidden {
		if w.ID > max {
			max = w.ID
		}
	}
	return max + 1
}

// AddWorkspace appends a new hidden workspace with id = max(existing)+1.
// Tag uniqueness is the caller's responsibility.
func (ss *StackSet) AddWorkspace(tag string, layouts []layout.Layout) {
	ss.Hidden = append(ss.Hidden, Workspace{
		ID:      ss.nextWorkspaceID(),
		Tag:     tag,
		Layouts: layout.NewLayoutStack(cloneLayouts(layouts)...),
	})
}

// AddInvisibleWorkspace is AddWorkspace plus registering tag as an
// invisible tag (not focusable onto a screen; used for scratchpads).
func (ss *StackSet) AddInvisibleWorkspace(tag string, layouts []layout.Layout) {
	ss.AddWorkspace(tag, layouts)
	ss.InvisibleTags = append(ss.InvisibleTags, tag)
}

// RemoveWorkspace removes and returns the hidden workspace tagged t; its
// clients are dropped from the floating set along with it. Fails with
// ErrOnlyScreenSizedWorkspaces if removal would leave fewer workspaces
// than screens. Returns ok=false if t does not name a hidden workspace.
func (ss *StackSet) RemoveWorkspace(t string) (removed Workspace, ok bool, err error) {
	total := ss.Screens.Len() + len(ss.Hidden)
	if total-1 < ss.Screens.Len() {
		return Workspace{}, false, fmt.Errorf("stackset: remove workspace %q: %w", t, ErrOnlyScreenSizedWorkspaces)
	}
	for i, w := range ss.Hidden {
		if w.Tag != t {
			continue
		}
		ss.Hidden = append(ss.Hidden[:i], ss.Hidden[i+1:]...)
		if w.Stack != nil {
			for _, c := range w.Stack.Iter() {
				delete(ss.Floating, c)
			}
		}
		return w, true, nil
	}
	return Workspace{}, false, nil
}

// NextScreen focuses the next screen in the screens zipper, wrapping.
func (ss *StackSet) NextScreen() { ss.Screens.FocusDown() }

// PreviousScreen focuses the previous screen, wrapping.
func (ss *StackSet) PreviousScreen() { ss.Screens.FocusUp() }

func (ss *StackSet) dragWorkspace(step func()) {
	beforeIdx := ss.Screens.FocusIndex()
	beforeWorkspace := ss.Screens.Focus().Workspace
	step()
	after := ss.Screens.Focus()
	afterWorkspace := after.Workspace
	after.Workspace = beforeWorkspace
	ss.Screens.ReplaceFocus(after)
	before := ss.Screens.At(beforeIdx)
	before.Workspace = afterWorkspace
	ss.Screens.SetAt(beforeIdx, before)
}

// DragWorkspaceForward focuses the next screen and swaps the pre-cycle
// focused workspace with the new screen's workspace.
func (ss *StackSet) DragWorkspaceForward() {
	ss.dragWorkspace(ss.Screens.FocusDown)
}

// DragWorkspaceBackward focuses the previous screen and swaps the
// pre-cycle focused workspace with the new screen's workspace.
func (ss *StackSet) DragWorkspaceBackward() {
	ss.dragWorkspace(ss.Screens.FocusUp)
}

// NextLayout cycles the active workspace's LayoutStack forward.
func (ss *StackSet) NextLayout() {
	ss.Screens.Focus().Workspace.Layouts.CycleNext()
}

// PreviousLayout cycles the active workspace's LayoutStack backward.
func (ss *StackSet) PreviousLayout() {
	ss.Screens.Focus().Workspace.Layouts.CyclePrev()
}

func (ss *StackSet) withFocusedStack(f func(*stack.Stack[layout.Xid])) {
	st := ss.Screens.Focus().Workspace.Stack
	if st == nil {
		return
	}
	f(st)
}

// FocusUp moves the cursor of the active workspace's stack, wrapping.
func (ss *StackSet) FocusUp() { ss.withFocusedStack((*stack.Stack[layout.Xid]).FocusUp) }

// FocusDown moves the cursor of the active workspace's stack, wrapping.
func (ss *StackSet) FocusDown() { ss.withFocusedStack((*stack.Stack[layout.Xid]).FocusDown) }

// SwapUp exchanges the focused client with its predecessor.
func (ss *StackSet) SwapUp() { ss.withFocusedStack((*stack.Stack[layout.Xid]).SwapUp) }

// SwapDown exchanges the focused client with its successor.
func (ss *StackSet) SwapDown() { ss.withFocusedStack((*stack.Stack[layout.Xid]).SwapDown) }

// RotateUp cyclically permutes the active workspace's clients.
func (ss *StackSet) RotateUp() { ss.withFocusedStack((*stack.Stack[layout.Xid]).RotateUp) }

// RotateDown cyclically permutes the active workspace's clients.
func (ss *StackSet) RotateDown() { ss.withFocusedStack((*stack.Stack[layout.Xid]).RotateDown) }

// VisibleClientPositions computes the placement of every client that
// should currently be on screen, across every screen. Floats are placed
// first for the purposes of layering: the returned list is in
// bottom-to-top stacking order, so floats (appended last, after being
// computed first) end up on top of tiled windows.
func (ss *StackSet) VisibleClientPositions() []layout.Placement {
	var out []layout.Placement
	for _, sc := range ss.Screens.Iter() {
		if sc.Workspace.Stack == nil {
			continue
		}

		var floats []layout.Placement
		for _, c := range sc.Workspace.Stack.Iter() {
			if rr, ok := ss.Floating[c]; ok {
				floats = append(floats, layout.Placement{Client: c, Rect: rr.AppliedTo(sc.Rect)})
			}
		}

		tiled := stack.Filter(sc.Workspace.Stack, func(c layout.Xid) bool {
			_, isFloat := ss.Floating[c]
			return !isFloat
		})

		var placements []layout.Placement
		if tiled != nil {
			placements = sc.Workspace.Layouts.Apply(tiled, sc.Rect)
		}
		for i := len(placements) - 1; i >= 0; i-- {
			out = append(out, placements[i])
		}
		out = append(out, floats...)
	}
	return out
}
