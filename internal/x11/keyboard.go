package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/keybind"
)

// Keymap is a snapshot of the keyboard: one bit per keycode.
type Keymap []byte

// QueryKeymap reads which keys are currently held.
func (c *Connection) QueryKeymap() (Keymap, error) {
	reply, err := xproto.QueryKeymap(c.XUtil.Conn()).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to query keymap: %w", err)
	}
	return Keymap(reply.Keys), nil
}

// Pressed reports whether any keycode bound to keysym is held in the map.
func (c *Connection) Pressed(km Keymap, keysym string) bool {
	for _, kc := range keybind.StrToKeycodes(c.XUtil, keysym) {
		if km.Has(kc) {
			return true
		}
	}
	return false
}

// Has reports whether the bit for keycode kc is set.
func (km Keymap) Has(kc xproto.Keycode) bool {
	idx := int(kc) / 8
	if idx >= len(km) {
		return false
	}
	return km[idx]&(1<<(uint(kc)%8)) != 0
}
