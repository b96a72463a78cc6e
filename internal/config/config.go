// Package config loads and validates the on-disk penrose configuration:
// workspace tags, the default layout template, per-screen gap/border
// pixels, keybinding pattern strings, floating/invisible tag rules, and
// the EWMH check-window name.
package config

import (
	"fmt"
	"strings"
)

// LayoutMode names one of the pure layout algorithms a LayoutSpec builds.
type LayoutMode string

const (
	LayoutModeMainAndStack LayoutMode = "main-and-stack"
	LayoutModeCenteredMain LayoutMode = "centered-main"
	LayoutModeMonocle      LayoutMode = "monocle"
	LayoutModeGrid         LayoutMode = "grid"
	LayoutModeMasterStack  LayoutMode = "master-stack"
)

// Side names which edge of the screen the main/centered region sits against.
type Side string

const (
	SideSide   Side = "side"
	SideBottom Side = "bottom"
)

// LayoutSpec configures one entry of the default LayoutStack template.
// Fields not relevant to Mode are ignored.
type LayoutSpec struct {
	Mode LayoutMode `yaml:"mode"`

	// MainAndStack / CenteredMain
	Position  Side    `yaml:"position,omitempty"`
	MaxMain   uint32  `yaml:"max_main,omitempty"`
	Ratio     float32 `yaml:"ratio,omitempty"`
	RatioStep float32 `yaml:"ratio_step,omitempty"`

	// MasterStack
	MasterWidthPercent float32 `yaml:"master_width_percent,omitempty"`
	MaxStackRows       int     `yaml:"max_stack_rows,omitempty"`
	MaxStackCols       int     `yaml:"max_stack_cols,omitempty"`
}

// Margins is gap adjustment applied uniformly per screen.
type Margins struct {
	Top    int `yaml:"top"`
	Bottom int `yaml:"bottom"`
	Left   int `yaml:"left"`
	Right  int `yaml:"right"`
}

// Config holds the effective, validated manager configuration.
type Config struct {
	// Tags lists the workspace tags, in order. The first len(screens)
	// tags are bound to screens at startup; the remainder start hidden.
	Tags []string `yaml:"tags"`
	// InvisibleTags names tags that exist but are never focused onto a
	// screen directly (scratchpad-style workspaces).
	InvisibleTags []string `yaml:"invisible_tags,omitempty"`

	// Layouts is the default LayoutStack template shared by every
	// workspace (each workspace clones it independently).
	Layouts []LayoutSpec `yaml:"layouts"`

	GapPx           int     `yaml:"gap_px"`
	BorderPx        uint32  `yaml:"border_px"`
	ScreenPadding   Margins `yaml:"screen_padding"`
	FocusedBorder   uint32  `yaml:"focused_border_color"`
	UnfocusedBorder uint32  `yaml:"unfocused_border_color"`

	// FloatingClasses lists WM_CLASS values that always float regardless
	// of window type.
	FloatingClasses []string `yaml:"floating_classes,omitempty"`

	// Keybindings maps a binding pattern string ("<MOD>[-<MOD>...]-<key>")
	// to the name of the action it triggers.
	Keybindings map[string]string `yaml:"keybindings"`
	// MouseBindings maps a binding pattern ("<MOD>[-<MOD>...]-Button<n>")
	// to an action name.
	MouseBindings map[string]string `yaml:"mouse_bindings,omitempty"`

	Display    string `yaml:"display,omitempty"`
	XAuthority string `yaml:"xauthority,omitempty"`

	// WMName is advertised via EWMH _NET_WM_NAME on the check window.
	WMName string `yaml:"wm_name"`

	LogLevel string `yaml:"log_level"`

	// SocketPath overrides the default control-surface socket location.
	SocketPath string `yaml:"socket_path,omitempty"`
}

// defaultConfigRelPath is the config file's path relative to the user
// config directory; DefaultConfigPath joins the two
// (~/.config/penrose/config.yaml).
const defaultConfigRelPath = "penrose/config.yaml"

// DefaultWMName is the EWMH-advertised window manager name.
const DefaultWMName = "penrose"

// DefaultConfig returns the built-in configuration used when no file is
// present, or to fill in fields a partial file omits.
func DefaultConfig() *Config {
	return &Config{
		Tags:          []string{"1", "2", "3", "4", "5", "6", "7", "8", "9"},
		InvisibleTags: []string{"scratch"},
		Layouts:       BuiltinLayouts(),
		GapPx:         6,
		BorderPx:      2,
		ScreenPadding: Margins{},
		FocusedBorder: 0xff5f87af,
		UnfocusedBorder: 0xff444444,
		FloatingClasses: []string{
			"Pavucontrol", "Gnome-calculator", "Nm-connection-editor",
		},
		Keybindings: map[string]string{
			"M-j":       "focus_down",
			"M-k":       "focus_up",
			"M-S-j":     "swap_down",
			"M-S-k":     "swap_up",
			"M-Return":  "swap_to_main",
			"M-space":   "next_layout",
			"M-S-space": "previous_layout",
			"M-h":       "shrink_main",
			"M-l":       "expand_main",
			"M-S-c":     "kill_client",
			"M-S-q":     "quit",
			"M-f":       "toggle_fullscreen",
			"M-1":       "focus_tag_1",
			"M-2":       "focus_tag_2",
			"M-3":       "focus_tag_3",
		},
		MouseBindings: map[string]string{
			"M-Button1": "drag_move_floating",
			"M-Button3": "drag_resize_floating",
		},
		Display:  "",
		WMName:   DefaultWMName,
		LogLevel: "info",
	}
}

// BuiltinLayouts returns the always-available default layout template:
// main-and-stack on the side, centered-main, monocle, and a grid
// fallback, in cycle order.
func BuiltinLayouts() []LayoutSpec {
	return []LayoutSpec{
		{
			Mode:      LayoutModeMainAndStack,
			Position:  SideSide,
			MaxMain:   1,
			Ratio:     0.5,
			RatioStep: 0.05,
		},
		{
			Mode:      LayoutModeCenteredMain,
			Position:  SideSide,
			MaxMain:   1,
			Ratio:     0.5,
			RatioStep: 0.05,
		},
		{
			Mode:               LayoutModeMasterStack,
			MasterWidthPercent: 50,
			MaxStackRows:       3,
			MaxStackCols:       2,
		},
		{Mode: LayoutModeMonocle},
		{Mode: LayoutModeGrid},
	}
}

// GetMargins returns the configured screen padding.
func (c *Config) GetMargins() Margins {
	if c == nil {
		return Margins{}
	}
	return c.ScreenPadding
}

func validateLayoutSpec(spec *LayoutSpec) error {
	switch spec.Mode {
	case LayoutModeMainAndStack, LayoutModeCenteredMain:
		switch spec.Position {
		case SideSide, SideBottom, "":
		default:
			return fmt.Errorf("position must be %q or %q", SideSide, SideBottom)
		}
		if spec.Ratio < 0 || spec.Ratio > 1 {
			return fmt.Errorf("ratio must be in [0,1]")
		}
	case LayoutModeMasterStack:
		if spec.MasterWidthPercent < 10 || spec.MasterWidthPercent > 90 {
			return fmt.Errorf("master_width_percent must be between 10 and 90")
		}
		if spec.MaxStackRows < 1 {
			return fmt.Errorf("max_stack_rows must be >= 1")
		}
		if spec.MaxStackCols < 1 {
			return fmt.Errorf("max_stack_cols must be >= 1")
		}
	case LayoutModeMonocle, LayoutModeGrid:
		// no parameters to validate
	default:
		return fmt.Errorf("invalid layout mode %q", spec.Mode)
	}
	return nil
}

func validateKeyPattern(pattern string) error {
	if strings.TrimSpace(pattern) == "" {
		return fmt.Errorf("binding pattern must not be empty")
	}
	parts := strings.Split(pattern, "-")
	if len(parts) < 2 {
		return fmt.Errorf("binding pattern %q must be of the form <MOD>[-<MOD>...]-<key>", pattern)
	}
	for _, mod := range parts[:len(parts)-1] {
		switch mod {
		case "A", "C", "S", "M":
		default:
			return fmt.Errorf("unknown modifier %q in pattern %q", mod, pattern)
		}
	}
	if strings.TrimSpace(parts[len(parts)-1]) == "" {
		return fmt.Errorf("binding pattern %q is missing a key name", pattern)
	}
	return nil
}
