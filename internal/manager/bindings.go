package manager

import (
	"fmt"

	"github.com/1broseidon/penrose/internal/xconn"
)

type resolvedKeyBinding struct {
	keycode uint8
	mods    uint16
	action  string
}

type resolvedMouseBinding struct {
	button uint8
	mods   uint16
	action string
}

// resolveBindings parses every configured key/mouse pattern into its raw
// code and modifier mask via the driver's optional KeyBindingResolver.
// Parse failures are reported here, at startup, never during event
// processing, per the keybinding-format contract.
func (m *Manager) resolveBindings() error {
	resolver, ok := m.conn.(xconn.KeyBindingResolver)
	if !ok {
		return nil
	}

	for pattern, action := range m.cfg.Keybindings {
		code, mods, err := resolver.ResolveKeyBinding(pattern)
		if err != nil {
			return fmt.Errorf("manager: keybinding %q: %w", pattern, err)
		}
		m.keyBindings = append(m.keyBindings, resolvedKeyBinding{keycode: code, mods: mods, action: action})
	}
	for pattern, action := range m.cfg.MouseBindings {
		button, mods, err := resolver.ResolveMouseBinding(pattern)
		if err != nil {
			return fmt.Errorf("manager: mouse binding %q: %w", pattern, err)
		}
		m.mouseBindings = append(m.mouseBindings, resolvedMouseBinding{button: button, mods: mods, action: action})
	}
	return nil
}

func (m *Manager) lookupKeyAction(code uint8, mods uint16) (string, bool) {
	normalized := mods
	if resolver, ok := m.conn.(xconn.KeyBindingResolver); ok {
		normalized = resolver.NormalizeMods(mods)
	}
	for _, b := range m.keyBindings {
		if b.keycode == code && b.mods == normalized {
			return b.action, true
		}
	}
	return "", false
}

func (m *Manager) lookupMouseAction(button uint8, state uint16) (string, bool) {
	normalized := state
	if resolver, ok := m.conn.(xconn.KeyBindingResolver); ok {
		normalized = resolver.NormalizeMods(state)
	}
	for _, b := range m.mouseBindings {
		if b.mods == normalized && (b.button == button || button == 0) {
			return b.action, true
		}
	}
	return "", false
}
