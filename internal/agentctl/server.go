// Package agentctl exposes the manager's control surface as MCP tools over
// stdio, so an AI coding agent can drive window placement the same way a
// human drives it from keybindings — without ever touching the X
// connection directly.
package agentctl

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/penrose/internal/manager"
	"github.com/1broseidon/penrose/internal/pure/layout"
)

const (
	serverName    = "penrose"
	serverVersion = "0.1.0"
)

// ManagerHandle is the slice of manager.Manager the MCP tools drive. An
// interface, for the same reason internal/ipcctl depends on one: it lets
// tool handlers be tested against an in-memory fake.
type ManagerHandle interface {
	Status() (manager.StatusSnapshot, error)
	FocusClient(id layout.Xid) error
	MoveClientToTag(id layout.Xid, tag string) error
	NextLayout() error
}

// Server is the MCP server exposing manager control as tools.
type Server struct {
	mcpServer *mcpsdk.Server
	manager   ManagerHandle
}

// NewServer builds an agentctl Server driving m.
func NewServer(m ManagerHandle) *Server {
	s := &Server{manager: m}
	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{Name: serverName, Version: serverVersion},
		nil,
	)
	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "get_status",
		Description: "Report the window manager's current tag, focused client, screen count, and client count.",
	}, s.handleGetStatus)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "focus_client",
		Description: "Move input focus to a specific client by X window ID.",
	}, s.handleFocusClient)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "move_client_to_tag",
		Description: "Move a specific client to a workspace tag without changing focus.",
	}, s.handleMoveClientToTag)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "next_layout",
		Description: "Cycle the focused workspace to its next layout.",
	}, s.handleNextLayout)
}

func (s *Server) handleGetStatus(_ context.Context, _ *mcpsdk.CallToolRequest, _ GetStatusInput) (*mcpsdk.CallToolResult, GetStatusOutput, error) {
	status, err := s.manager.Status()
	if err != nil {
		return nil, GetStatusOutput{}, fmt.Errorf("get_status: %w", err)
	}
	return nil, GetStatusOutput{
		WMName:        status.WMName,
		CurrentTag:    status.CurrentTag,
		FocusedClient: uint32(status.FocusedClient),
		HasFocus:      status.HasFocus,
		ScreenCount:   status.ScreenCount,
		ClientCount:   status.ClientCount,
	}, nil
}

func (s *Server) handleFocusClient(_ context.Context, _ *mcpsdk.CallToolRequest, args FocusClientInput) (*mcpsdk.CallToolResult, FocusClientOutput, error) {
	if err := s.manager.FocusClient(layout.Xid(args.ClientID)); err != nil {
		return nil, FocusClientOutput{}, fmt.Errorf("focus_client: %w", err)
	}
	return nil, FocusClientOutput{Focused: true}, nil
}

func (s *Server) handleMoveClientToTag(_ context.Context, _ *mcpsdk.CallToolRequest, args MoveClientToTagInput) (*mcpsdk.CallToolResult, MoveClientToTagOutput, error) {
	if args.Tag == "" {
		return nil, MoveClientToTagOutput{}, fmt.Errorf("move_client_to_tag: tag is required")
	}
	if err := s.manager.MoveClientToTag(layout.Xid(args.ClientID), args.Tag); err != nil {
		return nil, MoveClientToTagOutput{}, fmt.Errorf("move_client_to_tag: %w", err)
	}
	return nil, MoveClientToTagOutput{Moved: true}, nil
}

func (s *Server) handleNextLayout(_ context.Context, _ *mcpsdk.CallToolRequest, _ NextLayoutInput) (*mcpsdk.CallToolResult, NextLayoutOutput, error) {
	if err := s.manager.NextLayout(); err != nil {
		return nil, NextLayoutOutput{}, fmt.Errorf("next_layout: %w", err)
	}
	return nil, NextLayoutOutput{Advanced: true}, nil
}
