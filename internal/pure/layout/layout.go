// Package layout implements the composable layout engine: a focused list
// of layout algorithms, each a pure function from a client Stack and a
// screen Rect to a list of concrete window placements, responsive to
// messages such as grow/shrink-main, rotate, and mirror.
package layout

import (
	"github.com/1broseidon/penrose/internal/pure/geometry"
	"github.com/1broseidon/penrose/internal/pure/stack"
)

// Xid is an opaque 32-bit identifier for an X resource.
type Xid uint32

// Placement pairs a client with the rect it should occupy.
type Placement struct {
	Client Xid
	Rect   geometry.Rect
}

// Message is an opaque, tagged payload delivered to a Layout. The payload
// set is open: Layouts type-switch on the concrete type they recognise and
// silently ignore anything else.
type Message interface{}

// Well-known message tags every builtin layout recognises a subset of.
type (
	// ExpandMainMsg grows the main region (MainAndStack, CenteredMain).
	ExpandMainMsg struct{}
	// ShrinkMainMsg shrinks the main region.
	ShrinkMainMsg struct{}
	// IncMainMsg changes the number of clients in the main region by N
	// (saturating at zero on negative deltas).
	IncMainMsg struct{ N int }
	// RotateMsg swaps the layout's orientation (Side <-> Bottom).
	RotateMsg struct{}
	// MirrorMsg toggles which side the main region renders on.
	MirrorMsg struct{}
)

// Layout is a pure function of (stack, rect) to a sequence of placements,
// plus a message handler. Implementations must not perform any I/O.
type Layout interface {
	// Name identifies the layout algorithm, e.g. for status reporting.
	Name() string
	// Apply computes placements for cs against rect. The returned Layout,
	// if non-nil, replaces the current layout for subsequent frames (used
	// by transformers that rewrite themselves in response to their own
	// output); a nil replacement means "keep using this Layout value".
	// Clients that receive no placement are considered unmapped for this
	// frame.
	Apply(cs *stack.Stack[Xid], rect geometry.Rect) (replacement Layout, placements []Placement)
	// HandleMessage delivers m to the layout. A non-nil returned Layout
	// replaces the current one; unrecognised messages return nil and leave
	// the layout unchanged.
	HandleMessage(m Message) Layout
	// Clone returns an independent copy of the layout's internal state.
	Clone() Layout
}
