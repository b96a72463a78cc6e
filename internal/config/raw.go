package config

// RawConfig mirrors Config but with every field optional, so a partial
// YAML file only overrides what it sets; BuildEffectiveConfig lays it
// over DefaultConfig().
type RawConfig struct {
	Tags          []string     `yaml:"tags,omitempty"`
	InvisibleTags []string     `yaml:"invisible_tags,omitempty"`
	Layouts       []LayoutSpec `yaml:"layouts,omitempty"`

	GapPx           *int     `yaml:"gap_px,omitempty"`
	BorderPx        *uint32  `yaml:"border_px,omitempty"`
	ScreenPadding   *Margins `yaml:"screen_padding,omitempty"`
	FocusedBorder   *uint32  `yaml:"focused_border_color,omitempty"`
	UnfocusedBorder *uint32  `yaml:"unfocused_border_color,omitempty"`

	FloatingClasses []string `yaml:"floating_classes,omitempty"`

	Keybindings   map[string]string `yaml:"keybindings,omitempty"`
	MouseBindings map[string]string `yaml:"mouse_bindings,omitempty"`

	Display    *string `yaml:"display,omitempty"`
	XAuthority *string `yaml:"xauthority,omitempty"`

	WMName     *string `yaml:"wm_name,omitempty"`
	LogLevel   *string `yaml:"log_level,omitempty"`
	SocketPath *string `yaml:"socket_path,omitempty"`
}

// merge overlays other on top of r, returning the combined result. Scalar
// fields in other win when set; slices and maps in other replace r's
// wholesale (no element-wise merge, matching the teacher's RawConfig.merge
// semantics for map/slice fields).
func (r RawConfig) merge(other RawConfig) RawConfig {
	out := r

	if other.Tags != nil {
		out.Tags = other.Tags
	}
	if other.InvisibleTags != nil {
		out.InvisibleTags = other.InvisibleTags
	}
	if other.Layouts != nil {
		out.Layouts = other.Layouts
	}
	if other.GapPx != nil {
		out.GapPx = other.GapPx
	}
	if other.BorderPx != nil {
		out.BorderPx = other.BorderPx
	}
	if other.ScreenPadding != nil {
		out.ScreenPadding = other.ScreenPadding
	}
	if other.FocusedBorder != nil {
		out.FocusedBorder = other.FocusedBorder
	}
	if other.UnfocusedBorder != nil {
		out.UnfocusedBorder = other.UnfocusedBorder
	}
	if other.FloatingClasses != nil {
		out.FloatingClasses = other.FloatingClasses
	}
	if other.Keybindings != nil {
		out.Keybindings = other.Keybindings
	}
	if other.MouseBindings != nil {
		out.MouseBindings = other.MouseBindings
	}
	if other.Display != nil {
		out.Display = other.Display
	}
	if other.XAuthority != nil {
		out.XAuthority = other.XAuthority
	}
	if other.WMName != nil {
		out.WMName = other.WMName
	}
	if other.LogLevel != nil {
		out.LogLevel = other.LogLevel
	}
	if other.SocketPath != nil {
		out.SocketPath = other.SocketPath
	}
	return out
}
