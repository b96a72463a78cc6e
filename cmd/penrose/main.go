// Command penrose is the X11 tiling window manager's entry point: a
// foreground daemon subcommand plus CLI helpers that drive it over its
// control socket.
package main

import (
	"fmt"
	"io"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "run":
		os.Exit(runDaemon(os.Args[2:]))
	case "status":
		os.Exit(runStatus(os.Args[2:]))
	case "workspaces":
		os.Exit(runWorkspaces(os.Args[2:]))
	case "focus":
		os.Exit(runFocus(os.Args[2:]))
	case "layout":
		os.Exit(runLayoutCmd(os.Args[2:]))
	case "mcp":
		os.Exit(runMCP(os.Args[2:]))
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: penrose <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  run                 Start the window manager (foreground)")
	fmt.Fprintln(w, "  status              Show manager status")
	fmt.Fprintln(w, "  workspaces          List workspaces")
	fmt.Fprintln(w, "  focus <tag>         Focus a workspace tag")
	fmt.Fprintln(w, "  layout next         Cycle the focused workspace's layout")
	fmt.Fprintln(w, "  layout send <msg>   Send a layout message (expand_main, shrink_main, ...)")
	fmt.Fprintln(w, "  mcp serve           Start the MCP control server (stdio transport)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'penrose help' for this message.")
}
