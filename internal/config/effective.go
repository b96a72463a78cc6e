package config

import (
	"fmt"
)

// ValidationError reports a failure at a specific config path, optionally
// attributed to the file/line/column it was sourced from.
type ValidationError struct {
	Path   string
	Source Source
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Source.Kind == SourceFile && e.Source.File != "" && e.Source.Line > 0 {
		return fmt.Sprintf("%s:%d: %s: %v", e.Source.File, e.Source.Line, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error { return e.Err }

// BuildEffectiveConfig overlays raw on top of DefaultConfig(), producing
// the config the manager actually runs with.
func BuildEffectiveConfig(raw RawConfig) (*Config, error) {
	cfg := DefaultConfig()

	if raw.Tags != nil {
		cfg.Tags = raw.Tags
	}
	if raw.InvisibleTags != nil {
		cfg.InvisibleTags = raw.InvisibleTags
	}
	if raw.Layouts != nil {
		cfg.Layouts = raw.Layouts
	}
	if raw.GapPx != nil {
		cfg.GapPx = *raw.GapPx
	}
	if raw.BorderPx != nil {
		cfg.BorderPx = *raw.BorderPx
	}
	if raw.ScreenPadding != nil {
		cfg.ScreenPadding = *raw.ScreenPadding
	}
	if raw.FocusedBorder != nil {
		cfg.FocusedBorder = *raw.FocusedBorder
	}
	if raw.UnfocusedBorder != nil {
		cfg.UnfocusedBorder = *raw.UnfocusedBorder
	}
	if raw.FloatingClasses != nil {
		cfg.FloatingClasses = raw.FloatingClasses
	}
	if raw.Keybindings != nil {
		cfg.Keybindings = raw.Keybindings
	}
	if raw.MouseBindings != nil {
		cfg.MouseBindings = raw.MouseBindings
	}
	if raw.Display != nil {
		cfg.Display = *raw.Display
	}
	if raw.XAuthority != nil {
		cfg.XAuthority = *raw.XAuthority
	}
	if raw.WMName != nil {
		cfg.WMName = *raw.WMName
	}
	if raw.LogLevel != nil {
		cfg.LogLevel = *raw.LogLevel
	}
	if raw.SocketPath != nil {
		cfg.SocketPath = *raw.SocketPath
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate performs strict validation of the effective configuration.
func (c *Config) Validate() error {
	if len(c.Tags) == 0 {
		return &ValidationError{Path: "tags", Err: fmt.Errorf("at least one tag is required")}
	}
	seen := make(map[string]bool, len(c.Tags))
	for _, t := range c.Tags {
		if t == "" {
			return &ValidationError{Path: "tags", Err: fmt.Errorf("tag names must not be empty")}
		}
		if seen[t] {
			return &ValidationError{Path: "tags", Err: fmt.Errorf("duplicate tag %q", t)}
		}
		seen[t] = true
	}
	for _, t := range c.InvisibleTags {
		if seen[t] {
			return &ValidationError{Path: "invisible_tags", Err: fmt.Errorf("tag %q is both visible and invisible", t)}
		}
	}

	if len(c.Layouts) == 0 {
		return &ValidationError{Path: "layouts", Err: fmt.Errorf("at least one layout is required")}
	}
	for i := range c.Layouts {
		if err := validateLayoutSpec(&c.Layouts[i]); err != nil {
			return &ValidationError{Path: fmt.Sprintf("layouts[%d]", i), Err: err}
		}
	}

	if c.GapPx < 0 {
		return &ValidationError{Path: "gap_px", Err: fmt.Errorf("gap_px must be >= 0")}
	}
	if c.ScreenPadding.Top < 0 || c.ScreenPadding.Bottom < 0 || c.ScreenPadding.Left < 0 || c.ScreenPadding.Right < 0 {
		return &ValidationError{Path: "screen_padding", Err: fmt.Errorf("screen_padding values must be >= 0")}
	}

	if c.WMName == "" {
		return &ValidationError{Path: "wm_name", Err: fmt.Errorf("wm_name is required")}
	}

	switch c.LogLevel {
	case "debug", "info", "warning", "error":
	default:
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("log_level must be one of: debug, info, warning, error")}
	}

	if len(c.Keybindings) == 0 {
		return &ValidationError{Path: "keybindings", Err: fmt.Errorf("at least one keybinding is required")}
	}
	for pattern, action := range c.Keybindings {
		if err := validateKeyPattern(pattern); err != nil {
			return &ValidationError{Path: "keybindings." + pattern, Err: err}
		}
		if action == "" {
			return &ValidationError{Path: "keybindings." + pattern, Err: fmt.Errorf("action name must not be empty")}
		}
	}
	for pattern, action := range c.MouseBindings {
		if err := validateKeyPattern(pattern); err != nil {
			return &ValidationError{Path: "mouse_bindings." + pattern, Err: err}
		}
		if action == "" {
			return &ValidationError{Path: "mouse_bindings." + pattern, Err: fmt.Errorf("action name must not be empty")}
		}
	}

	return nil
}
