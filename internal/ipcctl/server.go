package ipcctl

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"sync"

	"github.com/1broseidon/penrose/internal/manager"
	"github.com/1broseidon/penrose/internal/pure/layout"
	"github.com/1broseidon/penrose/internal/runtimepath"
)

// ManagerHandle is the slice of manager.Manager the control surface
// drives. An interface, rather than a concrete *manager.Manager
// dependency, so server logic can be tested against a fake the way the
// teacher tested internal/ipc against platform.Backend.
type ManagerHandle interface {
	Status() (manager.StatusSnapshot, error)
	ListWorkspaces() ([]manager.WorkspaceInfo, error)
	FocusTag(tag string) error
	FocusClient(id layout.Xid) error
	MoveClientToTag(id layout.Xid, tag string) error
	NextLayout() error
	SendLayoutMessage(name string) error
}

// Server accepts control-surface connections on a Unix socket.
type Server struct {
	socketPath string
	listener   net.Listener
	manager    ManagerHandle

	shuttingDown bool
	shutdownMu   sync.Mutex
}

// NewServer builds a Server bound to the default runtime socket path.
func NewServer(m ManagerHandle) (*Server, error) {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		return nil, fmt.Errorf("ipcctl: resolve socket path: %w", err)
	}
	return NewServerAt(socketPath, m), nil
}

// NewServerAt builds a Server bound to an explicit socket path, for tests
// and for deployments overriding the default runtime directory.
func NewServerAt(socketPath string, m ManagerHandle) *Server {
	os.Remove(socketPath)
	return &Server{socketPath: socketPath, manager: m}
}

// Start begins listening and accepting connections in the background.
func (s *Server) Start() error {
	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("ipcctl: listen on %s: %w", s.socketPath, err)
	}
	s.listener = listener

	if err := os.Chmod(s.socketPath, 0600); err != nil {
		return fmt.Errorf("ipcctl: chmod socket: %w", err)
	}

	log.Printf("ipcctl: listening on %s", s.socketPath)
	go s.acceptLoop()
	return nil
}

func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			s.shutdownMu.Lock()
			down := s.shuttingDown
			s.shutdownMu.Unlock()
			if down {
				return
			}
			log.Printf("ipcctl: accept error: %v", err)
			continue
		}
		go s.handleConnection(conn)
	}
}

func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	reader := bufio.NewReader(conn)
	data, err := reader.ReadBytes('\n')
	if err != nil && err != io.EOF {
		log.Printf("ipcctl: read error: %v", err)
		return
	}

	req, err := ParseRequest(data)
	if err != nil {
		s.reply(conn, NewErrorResponse(fmt.Sprintf("invalid request: %v", err)))
		return
	}

	s.reply(conn, s.handleCommand(req))
}

func (s *Server) reply(conn net.Conn, resp *Response) {
	data, err := resp.Marshal()
	if err != nil {
		log.Printf("ipcctl: marshal response: %v", err)
		return
	}
	data = append(data, '\n')
	if _, err := conn.Write(data); err != nil {
		log.Printf("ipcctl: write response: %v", err)
	}
}

func (s *Server) handleCommand(req *Request) *Response {
	switch req.Command {
	case CommandGetStatus:
		return s.handleGetStatus()
	case CommandListWorkspaces:
		return s.handleListWorkspaces()
	case CommandFocusTag:
		return s.handleFocusTag(req.Payload)
	case CommandFocusClient:
		return s.handleFocusClient(req.Payload)
	case CommandMoveClientToTag:
		return s.handleMoveClientToTag(req.Payload)
	case CommandNextLayout:
		return s.handleNextLayout()
	case CommandSendLayoutMessage:
		return s.handleSendLayoutMessage(req.Payload)
	default:
		return NewErrorResponse(fmt.Sprintf("unknown command: %s", req.Command))
	}
}

func (s *Server) handleGetStatus() *Response {
	status, err := s.manager.Status()
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	resp, _ := NewOKResponse(StatusData{
		WMName:        status.WMName,
		CurrentTag:    status.CurrentTag,
		FocusedClient: uint32(status.FocusedClient),
		HasFocus:      status.HasFocus,
		ScreenCount:   status.ScreenCount,
		ClientCount:   status.ClientCount,
	})
	return resp
}

func (s *Server) handleListWorkspaces() *Response {
	workspaces, err := s.manager.ListWorkspaces()
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	data := make([]WorkspaceData, len(workspaces))
	for i, w := range workspaces {
		data[i] = WorkspaceData{
			Tag: w.Tag, Visible: w.Visible, ScreenIndex: w.ScreenIndex,
			ClientCount: w.ClientCount, Layout: w.Layout,
		}
	}
	resp, _ := NewOKResponse(WorkspacesData{Workspaces: data})
	return resp
}

func (s *Server) handleFocusTag(payload json.RawMessage) *Response {
	var req FocusTagPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return NewErrorResponse(fmt.Sprintf("invalid focus_tag payload: %v", err))
	}
	if req.Tag == "" {
		return NewErrorResponse("tag is required")
	}
	if err := s.manager.FocusTag(req.Tag); err != nil {
		return NewErrorResponse(err.Error())
	}
	resp, _ := NewOKResponse(nil)
	return resp
}

func (s *Server) handleFocusClient(payload json.RawMessage) *Response {
	var req FocusClientPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return NewErrorResponse(fmt.Sprintf("invalid focus_client payload: %v", err))
	}
	if err := s.manager.FocusClient(layout.Xid(req.ClientID)); err != nil {
		return NewErrorResponse(err.Error())
	}
	resp, _ := NewOKResponse(nil)
	return resp
}

func (s *Server) handleMoveClientToTag(payload json.RawMessage) *Response {
	var req MoveClientToTagPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return NewErrorResponse(fmt.Sprintf("invalid move_client_to_tag payload: %v", err))
	}
	if req.Tag == "" {
		return NewErrorResponse("tag is required")
	}
	if err := s.manager.MoveClientToTag(layout.Xid(req.ClientID), req.Tag); err != nil {
		return NewErrorResponse(err.Error())
	}
	resp, _ := NewOKResponse(nil)
	return resp
}

func (s *Server) handleNextLayout() *Response {
	if err := s.manager.NextLayout(); err != nil {
		return NewErrorResponse(err.Error())
	}
	resp, _ := NewOKResponse(nil)
	return resp
}

func (s *Server) handleSendLayoutMessage(payload json.RawMessage) *Response {
	var req SendLayoutMessagePayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return NewErrorResponse(fmt.Sprintf("invalid send_layout_message payload: %v", err))
	}
	if req.Message == "" {
		return NewErrorResponse("message is required")
	}
	if err := s.manager.SendLayoutMessage(req.Message); err != nil {
		return NewErrorResponse(err.Error())
	}
	resp, _ := NewOKResponse(nil)
	return resp
}

// Stop closes the listener and removes the socket file.
func (s *Server) Stop() {
	s.shutdownMu.Lock()
	s.shuttingDown = true
	s.shutdownMu.Unlock()

	if s.listener != nil {
		s.listener.Close()
	}
	os.Remove(s.socketPath)
}
