package x11driver

import (
	"fmt"

	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/mousebind"
)

// ResolveKeyBinding parses a binding pattern ("<MOD>[-<MOD>...]-<key>")
// into the raw keycode and modifier mask the manager grabs and matches
// incoming KeyPress events against, grounded on the teacher's
// keybind.KeyPressFun(...).Connect which performs the same parse
// internally via keybind.ParseString before grabbing.
func (c *Conn) ResolveKeyBinding(pattern string) (uint8, uint16, error) {
	mods, keycode, err := keybind.ParseString(c.xu, pattern)
	if err != nil {
		return 0, 0, fmt.Errorf("x11driver: parse key binding %q: %w", pattern, err)
	}
	return uint8(keycode), mods, nil
}

// ResolveMouseBinding parses a mouse binding pattern into the button
// number and modifier mask the manager grabs (any button, that modifier)
// and matches incoming ButtonPress events against.
func (c *Conn) ResolveMouseBinding(pattern string) (uint8, uint16, error) {
	mods, button, err := mousebind.ParseString(c.xu, pattern)
	if err != nil {
		return 0, 0, fmt.Errorf("x11driver: parse mouse binding %q: %w", pattern, err)
	}
	return uint8(button), mods, nil
}
