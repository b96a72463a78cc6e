package config

import (
	"fmt"

	"github.com/1broseidon/penrose/internal/pure/layout"
)

// BuildLayouts converts the config's ordered LayoutSpec template into the
// concrete pure layout.Layout values the StackSet clones per workspace.
func BuildLayouts(specs []LayoutSpec) ([]layout.Layout, error) {
	if len(specs) == 0 {
		return nil, fmt.Errorf("config: at least one layout is required")
	}
	out := make([]layout.Layout, 0, len(specs))
	for i, spec := range specs {
		l, err := buildLayout(spec)
		if err != nil {
			return nil, fmt.Errorf("config: layouts[%d]: %w", i, err)
		}
		out = append(out, l)
	}
	return out, nil
}

func buildLayout(spec LayoutSpec) (layout.Layout, error) {
	switch spec.Mode {
	case LayoutModeMainAndStack:
		return layout.NewMainAndStack(toLayoutPosition(spec.Position), spec.MaxMain, orDefault(spec.Ratio, 0.5), orDefault(spec.RatioStep, 0.05)), nil
	case LayoutModeCenteredMain:
		return layout.NewCenteredMain(toLayoutPosition(spec.Position), spec.MaxMain, orDefault(spec.Ratio, 0.5), orDefault(spec.RatioStep, 0.05)), nil
	case LayoutModeMasterStack:
		return layout.NewMasterStack(spec.MasterWidthPercent/100, spec.MaxStackRows, spec.MaxStackCols), nil
	case LayoutModeMonocle:
		return layout.NewMonocle(), nil
	case LayoutModeGrid:
		return layout.NewGrid(), nil
	default:
		return nil, fmt.Errorf("invalid layout mode %q", spec.Mode)
	}
}

func toLayoutPosition(s Side) layout.Position {
	if s == SideBottom {
		return layout.Bottom
	}
	return layout.Side
}

func orDefault(v, def float32) float32 {
	if v == 0 {
		return def
	}
	return v
}
