// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package interactor

import (
	"strings"
)

// Key is the type of keyboard keys.
type Key int

// Keyboard keys.
const (
	KeyUnknown Key = iota
	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ
	KeyMinus
	KeyEqual
	KeySpace
	KeyReturn
	KeyTab
	KeyEsc
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
)

// keymap maps names to Key values. It is indexed by
// Key, so its order must match the constants.
var keymap = [...]string{
	KeyUnknown: "",
	Key0:       "0", Key1: "1", Key2: "2", Key3: "3", Key4: "4",
	Key5: "5", Key6: "6", Key7: "7", Key8: "8", Key9: "9",
	KeyA: "a", KeyB: "b", KeyC: "c", KeyD: "d", KeyE: "e",
	KeyF: "f", KeyG: "g", KeyH: "h", KeyI: "i", KeyJ: "j",
	KeyK: "k", KeyL: "l", KeyM: "m", KeyN: "n", KeyO: "o",
	KeyP: "p", KeyQ: "q", KeyR: "r", KeyS: "s", KeyT: "t",
	KeyU: "u", KeyV: "v", KeyW: "w", KeyX: "x", KeyY: "y",
	KeyZ:      "z",
	KeyMinus:  "minus",
	KeyEqual:  "equal",
	KeySpace:  "space",
	KeyReturn: "return",
	KeyTab:    "tab",
	KeyEsc:    "esc",
	KeyUp:     "up",
	KeyDown:   "down",
	KeyLeft:   "left",
	KeyRight:  "right",
}

// String implements fmt.Stringer.
func (k Key) String() string {
	if k <= KeyUnknown || int(k) >= len(keymap) {
		return "unknown"
	}
	return keymap[k]
}

// KeyFrom returns the Key value named by s.
// Names are case-insensitive; "escape" and "enter" are
// accepted as aliases.
// It returns KeyUnknown if s names no key.
func KeyFrom(s string) Key {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "":
		return KeyUnknown
	case "escape":
		return KeyEsc
	case "enter":
		return KeyReturn
	}
	for i, name := range keymap {
		if name == s {
			return Key(i)
		}
	}
	return KeyUnknown
}
