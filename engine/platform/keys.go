package platform

import "github.com/spaghettifunk/wireframe/engine/core"

// WindowKeys are the keys a window forwards to the engine input.
var WindowKeys = []core.KeyCode{
	core.KEY_ESCAPE, core.KEY_Q, core.KEY_TAB, core.KEY_ENTER, core.KEY_SPACE,
	core.KEY_LEFT, core.KEY_UP, core.KEY_RIGHT, core.KEY_DOWN,
	core.KEY_A, core.KEY_D, core.KEY_P, core.KEY_R, core.KEY_S, core.KEY_W,
}

// ForwardsKey reports whether a window delivers presses and releases of key.
func ForwardsKey(key core.KeyCode) bool {
	for _, k := range WindowKeys {
		if k == key {
			return true
		}
	}
	return false
}
