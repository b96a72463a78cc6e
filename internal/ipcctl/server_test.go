package ipcctl

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/1broseidon/penrose/internal/manager"
	"github.com/1broseidon/penrose/internal/pure/layout"
)

type fakeManager struct {
	status       manager.StatusSnapshot
	statusErr    error
	workspaces   []manager.WorkspaceInfo
	focusedTag   string
	focusErr     error
	focusedID    layout.Xid
	movedID      layout.Xid
	movedTag     string
	layoutCalls  int
	lastMessage  string
}

func (f *fakeManager) Status() (manager.StatusSnapshot, error) { return f.status, f.statusErr }
func (f *fakeManager) ListWorkspaces() ([]manager.WorkspaceInfo, error) {
	return f.workspaces, nil
}
func (f *fakeManager) FocusTag(tag string) error {
	if f.focusErr != nil {
		return f.focusErr
	}
	f.focusedTag = tag
	return nil
}
func (f *fakeManager) FocusClient(id layout.Xid) error {
	f.focusedID = id
	return nil
}
func (f *fakeManager) MoveClientToTag(id layout.Xid, tag string) error {
	f.movedID = id
	f.movedTag = tag
	return nil
}
func (f *fakeManager) NextLayout() error {
	f.layoutCalls++
	return nil
}
func (f *fakeManager) SendLayoutMessage(name string) error {
	f.lastMessage = name
	return nil
}

func testServer(t *testing.T, m ManagerHandle) (*Server, *Client) {
	t.Helper()
	socketPath := filepath.Join(t.TempDir(), "penrose.sock")
	srv := NewServerAt(socketPath, m)
	if err := srv.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	t.Cleanup(srv.Stop)
	return srv, NewClientAt(socketPath)
}

func TestGetStatus_RoundTrips(t *testing.T) {
	fm := &fakeManager{status: manager.StatusSnapshot{
		WMName: "penrose", CurrentTag: "2", HasFocus: true,
		FocusedClient: 42, ScreenCount: 2, ClientCount: 5,
	}}
	_, client := testServer(t, fm)

	status, err := client.GetStatus()
	if err != nil {
		t.Fatalf("GetStatus: %v", err)
	}
	if status.WMName != "penrose" || status.CurrentTag != "2" || status.FocusedClient != 42 {
		t.Fatalf("unexpected status: %+v", status)
	}
	if status.ScreenCount != 2 || status.ClientCount != 5 {
		t.Fatalf("unexpected counts: %+v", status)
	}
}

func TestGetStatus_ManagerErrorBecomesErrorResponse(t *testing.T) {
	fm := &fakeManager{statusErr: errors.New("not running")}
	_, client := testServer(t, fm)

	if _, err := client.GetStatus(); err == nil {
		t.Fatal("expected error from GetStatus")
	}
}

func TestListWorkspaces_RoundTrips(t *testing.T) {
	fm := &fakeManager{workspaces: []manager.WorkspaceInfo{
		{Tag: "1", Visible: true, ScreenIndex: 0, ClientCount: 3, Layout: "tall"},
		{Tag: "3", Visible: false, ScreenIndex: -1, ClientCount: 0, Layout: "tall"},
	}}
	_, client := testServer(t, fm)

	data, err := client.ListWorkspaces()
	if err != nil {
		t.Fatalf("ListWorkspaces: %v", err)
	}
	if len(data.Workspaces) != 2 {
		t.Fatalf("expected 2 workspaces, got %d", len(data.Workspaces))
	}
	if data.Workspaces[0].Tag != "1" || !data.Workspaces[0].Visible {
		t.Fatalf("unexpected first workspace: %+v", data.Workspaces[0])
	}
	if data.Workspaces[1].Visible {
		t.Fatalf("expected hidden workspace to report Visible=false")
	}
}

func TestFocusTag_DeliversPayloadToManager(t *testing.T) {
	fm := &fakeManager{}
	_, client := testServer(t, fm)

	if err := client.FocusTag("5"); err != nil {
		t.Fatalf("FocusTag: %v", err)
	}
	if fm.focusedTag != "5" {
		t.Fatalf("expected manager.FocusTag called with 5, got %q", fm.focusedTag)
	}
}

func TestFocusTag_EmptyTagIsRejected(t *testing.T) {
	fm := &fakeManager{}
	_, client := testServer(t, fm)

	if err := client.FocusTag(""); err == nil {
		t.Fatal("expected error for empty tag")
	}
}

func TestNextLayout_InvokesManager(t *testing.T) {
	fm := &fakeManager{}
	_, client := testServer(t, fm)

	if err := client.NextLayout(); err != nil {
		t.Fatalf("NextLayout: %v", err)
	}
	if fm.layoutCalls != 1 {
		t.Fatalf("expected 1 NextLayout call, got %d", fm.layoutCalls)
	}
}

func TestSendLayoutMessage_DeliversMessageName(t *testing.T) {
	fm := &fakeManager{}
	_, client := testServer(t, fm)

	if err := client.SendLayoutMessage("expand_main"); err != nil {
		t.Fatalf("SendLayoutMessage: %v", err)
	}
	if fm.lastMessage != "expand_main" {
		t.Fatalf("expected expand_main, got %q", fm.lastMessage)
	}
}

func TestFocusClient_DeliversClientID(t *testing.T) {
	fm := &fakeManager{}
	_, client := testServer(t, fm)

	if err := client.FocusClient(99); err != nil {
		t.Fatalf("FocusClient: %v", err)
	}
	if fm.focusedID != 99 {
		t.Fatalf("expected FocusClient(99), got %d", fm.focusedID)
	}
}

func TestMoveClientToTag_DeliversIDAndTag(t *testing.T) {
	fm := &fakeManager{}
	_, client := testServer(t, fm)

	if err := client.MoveClientToTag(7, "4"); err != nil {
		t.Fatalf("MoveClientToTag: %v", err)
	}
	if fm.movedID != 7 || fm.movedTag != "4" {
		t.Fatalf("expected move(7,4), got move(%d,%q)", fm.movedID, fm.movedTag)
	}
}

func TestMoveClientToTag_EmptyTagIsRejected(t *testing.T) {
	fm := &fakeManager{}
	_, client := testServer(t, fm)

	if err := client.MoveClientToTag(1, ""); err == nil {
		t.Fatal("expected error for empty tag")
	}
}

func TestUnknownCommand_ReturnsError(t *testing.T) {
	fm := &fakeManager{}
	srv, client := testServer(t, fm)

	resp := srv.handleCommand(&Request{Command: "NOT_A_COMMAND"})
	if resp.Status != "ERROR" {
		t.Fatalf("expected ERROR status, got %q", resp.Status)
	}
	_ = client
}
