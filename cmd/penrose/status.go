package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/1broseidon/penrose/internal/ipcctl"
)

func runStatus(args []string) int {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: penrose status")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Show window manager status via the control socket.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "status takes no arguments")
		fs.Usage()
		return 2
	}

	client := ipcctl.NewClient()
	status, err := client.GetStatus()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	fmt.Printf("wm_name:     %s\n", status.WMName)
	fmt.Printf("current_tag: %s\n", status.CurrentTag)
	if status.HasFocus {
		fmt.Printf("focused:     0x%x\n", status.FocusedClient)
	} else {
		fmt.Println("focused:     (none)")
	}
	fmt.Printf("screens:     %d\n", status.ScreenCount)
	fmt.Printf("clients:     %d\n", status.ClientCount)
	return 0
}

func runWorkspaces(args []string) int {
	fs := flag.NewFlagSet("workspaces", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: penrose workspaces")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "List visible and hidden workspaces via the control socket.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	client := ipcctl.NewClient()
	data, err := client.ListWorkspaces()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	for _, w := range data.Workspaces {
		visibility := "hidden"
		if w.Visible {
			visibility = fmt.Sprintf("screen %d", w.ScreenIndex)
		}
		fmt.Printf("%-8s %-10s clients=%-3d layout=%s\n", w.Tag, visibility, w.ClientCount, w.Layout)
	}
	return 0
}
