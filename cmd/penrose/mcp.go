package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/1broseidon/penrose/internal/agentctl"
	"github.com/1broseidon/penrose/internal/ipcctl"
	"github.com/1broseidon/penrose/internal/manager"
	"github.com/1broseidon/penrose/internal/pure/layout"
)

// socketManagerHandle adapts an ipcctl.Client, talking to a separately
// running `penrose run` process over its control socket, to
// agentctl.ManagerHandle. The MCP server is meant to run as its own
// process (the shape an MCP host expects to spawn over stdio), so it
// never holds the manager directly — it proxies every call the same way
// the CLI subcommands in this package do.
type socketManagerHandle struct {
	client *ipcctl.Client
}

func (h socketManagerHandle) Status() (manager.StatusSnapshot, error) {
	data, err := h.client.GetStatus()
	if err != nil {
		return manager.StatusSnapshot{}, err
	}
	return manager.StatusSnapshot{
		WMName:        data.WMName,
		CurrentTag:    data.CurrentTag,
		FocusedClient: layout.Xid(data.FocusedClient),
		HasFocus:      data.HasFocus,
		ScreenCount:   data.ScreenCount,
		ClientCount:   data.ClientCount,
	}, nil
}

func (h socketManagerHandle) FocusClient(id layout.Xid) error {
	return h.client.FocusClient(uint32(id))
}

func (h socketManagerHandle) MoveClientToTag(id layout.Xid, tag string) error {
	return h.client.MoveClientToTag(uint32(id), tag)
}

func (h socketManagerHandle) NextLayout() error {
	return h.client.NextLayout()
}

func runMCP(args []string) int {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: penrose mcp serve")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Start the MCP control server on stdio, proxying a running 'penrose run'.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 1 || fs.Arg(0) != "serve" {
		fs.Usage()
		return 2
	}

	handle := socketManagerHandle{client: ipcctl.NewClient()}
	if err := handle.client.Ping(); err != nil {
		fmt.Fprintf(os.Stderr, "penrose mcp: %v\n", err)
		return 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	server := agentctl.NewServer(handle)
	if err := server.Run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
