package config

import "testing"

func TestDefaultConfigValidates(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("DefaultConfig() failed validation: %v", err)
	}
}

func TestValidateRejectsEmptyTags(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Tags = nil
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for empty tags")
	}
}

func TestValidateRejectsDuplicateTags(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Tags = []string{"1", "1"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for duplicate tags")
	}
}

func TestValidateRejectsTagBothVisibleAndInvisible(t *testing.T) {
	cfg := DefaultConfig()
	cfg.InvisibleTags = []string{cfg.Tags[0]}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for a tag that is both visible and invisible")
	}
}

func TestValidateRejectsUnknownLayoutMode(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Layouts = []LayoutSpec{{Mode: "nonsense"}}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown layout mode")
	}
}

func TestValidateRejectsMasterStackOutOfRangeWidth(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Layouts = []LayoutSpec{{Mode: LayoutModeMasterStack, MasterWidthPercent: 95, MaxStackRows: 1, MaxStackCols: 1}}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for master_width_percent out of [10,90]")
	}
}

func TestValidateRejectsEmptyKeybindings(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Keybindings = nil
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for no keybindings")
	}
}

func TestValidateRejectsMalformedBindingPattern(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Keybindings = map[string]string{"j": "focus_down"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for a pattern missing a modifier")
	}
}

func TestValidateRejectsUnknownModifier(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Keybindings = map[string]string{"X-j": "focus_down"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for an unknown modifier letter")
	}
}

func TestBuildLayoutsProducesOneLayoutPerSpec(t *testing.T) {
	layouts, err := BuildLayouts(BuiltinLayouts())
	if err != nil {
		t.Fatalf("BuildLayouts() error: %v", err)
	}
	if len(layouts) != len(BuiltinLayouts()) {
		t.Fatalf("got %d layouts, want %d", len(layouts), len(BuiltinLayouts()))
	}
}

func TestBuildLayoutsRejectsEmptySpecList(t *testing.T) {
	if _, err := BuildLayouts(nil); err == nil {
		t.Fatal("expected error for empty layout spec list")
	}
}
