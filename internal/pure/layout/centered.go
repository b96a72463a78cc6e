package layout

import (
	"github.com/1broseidon/penrose/internal/pure/geometry"
	"github.com/1broseidon/penrose/internal/pure/stack"
)

// CenteredMain is a three-region layout: a main region flanked by a left
// (or top) and right (or bottom) secondary region. Falls back to
// MainAndStack's two-region behaviour when either secondary region would
// be empty (the right/bottom one gets the smaller half, so this happens
// when exactly one client is outside the main region).
type CenteredMain struct {
	PositionMode Position
	MaxMain      uint32
	Ratio        float32
	RatioStep    float32
	Mirrored     bool
}

func NewCenteredMain(pos Position, maxMain uint32, ratio, ratioStep float32) *CenteredMain {
	return &CenteredMain{PositionMode: pos, MaxMain: maxMain, Ratio: ratio, RatioStep: ratioStep}
}

func (l *CenteredMain) Name() string { return "centered-main" }

func (l *CenteredMain) Clone() Layout {
	cp := *l
	return &cp
}

func (l *CenteredMain) Apply(cs *stack.Stack[Xid], rect geometry.Rect) (Layout, []Placement) {
	clients := cs.Iter()
	n := len(clients)

	if n <= int(l.MaxMain) || l.MaxMain == 0 || l.Ratio <= 0 || l.Ratio >= 1 {
		fallback := &MainAndStack{PositionMode: l.PositionMode, MaxMain: l.MaxMain, Ratio: l.Ratio, RatioStep: l.RatioStep, Mirrored: l.Mirrored}
		return nil, mustApply(fallback, cs, rect)
	}

	rest := n - int(l.MaxMain)
	nRight := rest / 2
	nLeft := rest - nRight
	if nLeft <= 0 || nRight <= 0 {
		fallback := &MainAndStack{PositionMode: l.PositionMode, MaxMain: l.MaxMain, Ratio: l.Ratio, RatioStep: l.RatioStep, Mirrored: l.Mirrored}
		return nil, mustApply(fallback, cs, rect)
	}

	ratio := l.Ratio
	if l.Mirrored {
		ratio = 1 - ratio
	}

	var leftOrTop, rightOrBottom, mainRect geometry.Rect
	if l.PositionMode == Side {
		a, b := rect.SplitAtWidthRatio((1 - ratio) / 2)
		leftOrTop = a
		rem := b
		mainW := int(ratio * float32(rect.Width))
		mainRect, rightOrBottom = rem.SplitAtWidth(mainW)
	} else {
		a, b := rect.SplitAtHeightRatio((1 - ratio) / 2)
		leftOrTop = a
		rem := b
		mainH := int(ratio * float32(rect.Height))
		mainRect, rightOrBottom = rem.SplitAtHeight(mainH)
	}

	mainClients := clients[:l.MaxMain]
	leftClients := clients[l.MaxMain : l.MaxMain+uint32(nLeft)]
	rightClients := clients[l.MaxMain+uint32(nLeft):]

	var mainRects, leftRects, rightRects []geometry.Rect
	if l.PositionMode == Side {
		mainRects = mainRect.Rows(len(mainClients))
		leftRects = leftOrTop.Rows(len(leftClients))
		rightRects = rightOrBottom.Rows(len(rightClients))
	} else {
		mainRects = mainRect.Columns(len(mainClients))
		leftRects = leftOrTop.Columns(len(leftClients))
		rightRects = rightOrBottom.Columns(len(rightClients))
	}

	out := make([]Placement, 0, n)
	for i, c := range mainClients {
		out = append(out, Placement{Client: c, Rect: mainRects[i]})
	}
	for i, c := range leftClients {
		out = append(out, Placement{Client: c, Rect: leftRects[i]})
	}
	for i, c := range rightClients {
		out = append(out, Placement{Client: c, Rect: rightRects[i]})
	}
	return nil, out
}

func (l *CenteredMain) HandleMessage(m Message) Layout {
	switch msg := m.(type) {
	case ExpandMainMsg:
		l.Ratio = clamp01(l.Ratio + l.RatioStep)
		return l
	case ShrinkMainMsg:
		l.Ratio = clamp01(l.Ratio - l.RatioStep)
		return l
	case IncMainMsg:
		next := int(l.MaxMain) + msg.N
		if next < 0 {
			next = 0
		}
		l.MaxMain = uint32(next)
		return l
	case MirrorMsg:
		l.Mirrored = !l.Mirrored
		return l
	case RotateMsg:
		if l.PositionMode == Side {
			l.PositionMode = Bottom
		} else {
			l.PositionMode = Side
		}
		return l
	default:
		return nil
	}
}

// mustApply runs a Layout's Apply, ignoring any replacement it requests
// (used internally by transformers that fall back to a simpler layout for
// one frame without adopting it permanently).
func mustApply(l Layout, cs *stack.Stack[Xid], rect geometry.Rect) []Placement {
	_, placements := l.Apply(cs, rect)
	return placements
}
