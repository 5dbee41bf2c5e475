package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/mousebind"
	"github.com/BurntSushi/xgbutil/xevent"
)

// GrabButton grabs a "Mod1-1" style button binding on a window, once per
// ignored-modifier combination. Motion with the button held is reported.
func (c *Connection) GrabButton(windowID xproto.Window, binding string) error {
	mods, button, err := mousebind.ParseString(c.XUtil, binding)
	if err != nil {
		return fmt.Errorf("invalid button binding %q: %w", binding, err)
	}
	mousebind.Grab(c.XUtil, windowID, mods, button, false)
	return nil
}

// GrabKey grabs a "Mod1-F4" style key binding on a window. Every keycode
// that produces the keysym is grabbed.
func (c *Connection) GrabKey(windowID xproto.Window, binding string) error {
	mods, keycodes, err := keybind.ParseString(c.XUtil, binding)
	if err != nil {
		return fmt.Errorf("invalid key binding %q: %w", binding, err)
	}
	for _, kc := range keycodes {
		keybind.Grab(c.XUtil, windowID, mods, kc)
	}
	return nil
}

// configureIgnoreMods makes grabs insensitive to CapsLock, NumLock and
// ScrollLock, wherever the current modifier map puts them.
func configureIgnoreMods(xu *xgbutil.XUtil) {
	// Always ignore CapsLock.
	caps := uint16(xproto.ModMaskLock)

	numLock := modMaskForKeysym(xu, "Num_Lock")
	scrollLock := modMaskForKeysym(xu, "Scroll_Lock")

	base := []uint16{caps}
	if numLock != 0 && numLock != caps {
		base = append(base, numLock)
	}
	if scrollLock != 0 && scrollLock != caps && scrollLock != numLock {
		base = append(base, scrollLock)
	}

	xevent.IgnoreMods = ignoreModCombinations(base)
}

// ignoreModCombinations returns every subset of base OR'ed together,
// starting with the empty set.
func ignoreModCombinations(base []uint16) []uint16 {
	seen := make(map[uint16]struct{}, 1<<len(base))
	combos := make([]uint16, 0, 1<<len(base))
	for subset := 0; subset < (1 << len(base)); subset++ {
		var mask uint16
		for bit := range base {
			if subset&(1<<bit) != 0 {
				mask |= base[bit]
			}
		}
		if _, ok := seen[mask]; ok {
			continue
		}
		seen[mask] = struct{}{}
		combos = append(combos, mask)
	}
	return combos
}

func modMaskForKeysym(xu *xgbutil.XUtil, keysym string) uint16 {
	for _, keycode := range keybind.StrToKeycodes(xu, keysym) {
		if mask := keybind.ModGet(xu, keycode); mask != 0 {
			return mask
		}
	}
	return 0
}
