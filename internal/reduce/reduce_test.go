package reduce

import (
	"reflect"
	"testing"

	"github.com/1broseidon/penrose/internal/pure/geometry"
	"github.com/1broseidon/penrose/internal/pure/layout"
)

type fakeState struct {
	known map[layout.Xid]bool
	focus layout.Xid
	has   bool
}

func newFakeState(focus layout.Xid, has bool, known ...layout.Xid) *fakeState {
	s := &fakeState{known: map[layout.Xid]bool{}, focus: focus, has: has}
	for _, id := range known {
		s.known[id] = true
	}
	return s
}

func (s *fakeState) KnownClient(id layout.Xid) bool { return s.known[id] }
func (s *fakeState) CurrentFocus() (layout.Xid, bool) { return s.focus, s.has }

func TestEnter_KnownClientSwitchesFocus(t *testing.T) {
	state := newFakeState(1, true, 1, 2)
	pt := geometry.Point{X: 5, Y: 5}

	got := Reduce(Enter{Change: PointerChange{ID: 2, Point: pt}}, state)
	want := []Action{
		ClientFocusLost{ID: 1},
		ClientFocusGained{ID: 2},
		SetScreenFromPoint{Point: pt},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v want %+v", got, want)
	}
}

func TestEnter_SameClientNoFocusLost(t *testing.T) {
	state := newFakeState(1, true, 1)
	pt := geometry.Point{X: 1, Y: 1}

	got := Reduce(Enter{Change: PointerChange{ID: 1, Point: pt}}, state)
	want := []Action{
		ClientFocusGained{ID: 1},
		SetScreenFromPoint{Point: pt},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v want %+v", got, want)
	}
}

func TestEnter_UnknownClientIsAdopted(t *testing.T) {
	state := newFakeState(0, false)
	pt := geometry.Point{X: 9, Y: 9}

	got := Reduce(Enter{Change: PointerChange{ID: 42, Point: pt}}, state)
	want := []Action{
		ClientMapped{ID: 42},
		ClientFocusGained{ID: 42},
		SetScreenFromPoint{Point: pt},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v want %+v", got, want)
	}
}

func TestClientMessage_FullScreenToggle(t *testing.T) {
	state := newFakeState(0, false, 7)
	msg := ClientMessage{
		ID:         7,
		Atom:       "_NET_WM_STATE",
		Action:     uint32(FullScreenToggle),
		Properties: []string{"_NET_WM_STATE_FULLSCREEN"},
	}

	got := Reduce(msg, state)
	want := []Action{ToggleClientFullScreen{ID: 7, Desired: FullScreenToggle}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v want %+v", got, want)
	}
}

func TestClientMessage_IgnoresUnrelatedAtoms(t *testing.T) {
	state := newFakeState(0, false, 7)
	msg := ClientMessage{ID: 7, Atom: "_NET_WM_STATE", Properties: []string{"_NET_WM_STATE_ABOVE"}}
	if got := Reduce(msg, state); got != nil {
		t.Fatalf("expected nil, got %+v", got)
	}
}

func TestClientMessage_IgnoresOtherMessageTypes(t *testing.T) {
	state := newFakeState(0, false, 7)
	msg := ClientMessage{ID: 7, Atom: "_NET_WM_DESKTOP", Properties: []string{"_NET_WM_STATE_FULLSCREEN"}}
	if got := Reduce(msg, state); got != nil {
		t.Fatalf("expected nil, got %+v", got)
	}
}

func TestConfigureNotify_RootTriggersScreenDetection(t *testing.T) {
	state := newFakeState(0, false)
	got := Reduce(ConfigureNotify{IsRoot: true}, state)
	want := []Action{DetectScreens{}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v want %+v", got, want)
	}
}

func TestConfigureNotify_NonRootIsIgnored(t *testing.T) {
	state := newFakeState(0, false)
	if got := Reduce(ConfigureNotify{ID: 3, IsRoot: false}, state); got != nil {
		t.Fatalf("expected nil, got %+v", got)
	}
}

func TestMapRequest_UnknownNotIgnoredIsMapped(t *testing.T) {
	state := newFakeState(0, false)
	got := Reduce(MapRequest{ID: 9, Ignore: false}, state)
	want := []Action{MapWindow{ID: 9}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v want %+v", got, want)
	}
}

func TestMapRequest_KnownClientIsIgnored(t *testing.T) {
	state := newFakeState(0, false, 9)
	if got := Reduce(MapRequest{ID: 9, Ignore: false}, state); got != nil {
		t.Fatalf("expected nil, got %+v", got)
	}
}

func TestMapRequest_ExplicitlyIgnoredIsIgnored(t *testing.T) {
	state := newFakeState(0, false)
	if got := Reduce(MapRequest{ID: 9, Ignore: true}, state); got != nil {
		t.Fatalf("expected nil, got %+v", got)
	}
}

func TestRandrAndScreenChangeTriggerDetection(t *testing.T) {
	state := newFakeState(0, false)
	for _, ev := range []XEvent{ScreenChange{}, RandrNotify{}} {
		got := Reduce(ev, state)
		want := []Action{DetectScreens{}}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("event %+v: got %+v want %+v", ev, got, want)
		}
	}
}

func TestDestroyAndUnmap(t *testing.T) {
	state := newFakeState(0, false)
	if got := Reduce(Destroy{ID: 4}, state); !reflect.DeepEqual(got, []Action{ClientDestroyed{ID: 4}}) {
		t.Fatalf("destroy: got %+v", got)
	}
	if got := Reduce(UnmapNotify{ID: 4}, state); !reflect.DeepEqual(got, []Action{ClientUnmapped{ID: 4}}) {
		t.Fatalf("unmap: got %+v", got)
	}
}

func TestKeyAndMouseBindingsPassThrough(t *testing.T) {
	state := newFakeState(0, false)
	got := Reduce(KeyPress{Code: 38, Mods: 1}, state)
	want := []Action{KeyBindingTriggered{Code: 38, Mods: 1}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v want %+v", got, want)
	}

	got = Reduce(MouseEvent{Button: 1, State: 0}, state)
	want = []Action{MouseBindingTriggered{Button: 1, State: 0}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v want %+v", got, want)
	}
}

func TestUnrecognisedEventIsIgnored(t *testing.T) {
	state := newFakeState(0, false)
	if got := Reduce(struct{}{}, state); got != nil {
		t.Fatalf("expected nil for unrecognised event, got %+v", got)
	}
}
