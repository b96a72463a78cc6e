package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/1broseidon/penrose/internal/config"
	"github.com/1broseidon/penrose/internal/ipcctl"
	"github.com/1broseidon/penrose/internal/manager"
	"github.com/1broseidon/penrose/internal/x11driver"
)

func runDaemon(args []string) int {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: penrose run")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Start the window manager in the foreground.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	supervisorLog := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("penrose: failed to load configuration: %v", err)
	}
	supervisorLog.Info("configuration loaded", "tags", cfg.Tags, "wm_name", cfg.WMName)

	conn, err := x11driver.New()
	if err != nil {
		log.Fatalf("penrose: failed to connect to X server: %v", err)
	}

	m, err := manager.New(conn, cfg, log.Default(), manager.Hooks{
		OnStartup: func() { supervisorLog.Info("window manager started") },
		OnWorkspaceChange: func(tag string) {
			supervisorLog.Info("workspace changed", "tag", tag)
		},
	})
	if err != nil {
		log.Fatalf("penrose: failed to initialize manager: %v", err)
	}
	if err := m.Start(); err != nil {
		log.Fatalf("penrose: failed to start manager: %v", err)
	}

	socketPath := cfg.SocketPath
	var ctlServer *ipcctl.Server
	if socketPath != "" {
		ctlServer = ipcctl.NewServerAt(socketPath, m)
	} else {
		ctlServer, err = ipcctl.NewServer(m)
		if err != nil {
			log.Fatalf("penrose: failed to create control server: %v", err)
		}
	}
	if err := ctlServer.Start(); err != nil {
		log.Fatalf("penrose: failed to start control server: %v", err)
	}
	defer ctlServer.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		supervisorLog.Info("shutting down", "signal", sig.String())
		m.Stop()
		cancel()
	}()

	supervisorLog.Info("entering event loop")
	if err := m.Run(ctx); err != nil {
		log.Fatalf("penrose: event loop exited: %v", err)
	}
	return 0
}
