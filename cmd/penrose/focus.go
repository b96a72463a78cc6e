package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/1broseidon/penrose/internal/ipcctl"
)

func runFocus(args []string) int {
	fs := flag.NewFlagSet("focus", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: penrose focus <tag>")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Focus a workspace tag via the control socket.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "focus requires exactly one tag argument")
		fs.Usage()
		return 2
	}

	client := ipcctl.NewClient()
	if err := client.FocusTag(fs.Arg(0)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runLayoutCmd(args []string) int {
	fs := flag.NewFlagSet("layout", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: penrose layout next")
		fmt.Fprintln(os.Stderr, "       penrose layout send <message>")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Messages: expand_main, shrink_main, inc_main, dec_main, mirror, rotate")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return 2
	}

	client := ipcctl.NewClient()
	switch fs.Arg(0) {
	case "next":
		if err := client.NextLayout(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
	case "send":
		if fs.NArg() != 2 {
			fmt.Fprintln(os.Stderr, "layout send requires exactly one message argument")
			fs.Usage()
			return 2
		}
		if err := client.SendLayoutMessage(fs.Arg(1)); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown layout subcommand: %s\n\n", fs.Arg(0))
		fs.Usage()
		return 2
	}
	return 0
}
