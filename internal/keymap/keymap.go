// Package keymap maps host keyboard keys to the CHIP-8 hex keypad.
//
// The keypad is mapped to the left side of a QWERTY keyboard:
//
//	1 2 3 C      1 2 3 4
//	4 5 6 D  ->  Q W E R
//	7 8 9 E      A S D F
//	A 0 B F      Z X C V
package keymap

import (
	"time"
	"unicode"
)

// Binding connects a host key to a keypad key.
type Binding struct {
	Rune rune
	Key  uint8
}

// Bindings lists all bindings in keypad layout order, row by row.
var Bindings = []Binding{
	{'1', 0x1}, {'2', 0x2}, {'3', 0x3}, {'4', 0xC},
	{'q', 0x4}, {'w', 0x5}, {'e', 0x6}, {'r', 0xD},
	{'a', 0x7}, {'s', 0x8}, {'d', 0x9}, {'f', 0xE},
	{'z', 0xA}, {'x', 0x0}, {'c', 0xB}, {'v', 0xF},
}

var byRune = func() map[rune]uint8 {
	m := make(map[rune]uint8, len(Bindings))
	for _, b := range Bindings {
		m[b.Rune] = b.Key
	}
	return m
}()

// Key returns the keypad key bound to a host key, ignoring case.
func Key(r rune) (uint8, bool) {
	key, ok := byRune[unicode.ToLower(r)]
	return key, ok
}

// Holder keeps keys pressed for a fixed duration after the last press event.
// Terminals only report key presses and repeats, never releases, so a key
// counts as released once no repeat arrived within the hold duration.
type Holder struct {
	hold    time.Duration
	pressed map[uint8]time.Time
}

// NewHolder returns a holder that releases keys after the given duration.
func NewHolder(hold time.Duration) *Holder {
	return &Holder{
		hold:    hold,
		pressed: make(map[uint8]time.Time),
	}
}

// Press marks a key as pressed at the given time. It returns true if the key
// was not already held.
func (h *Holder) Press(key uint8, now time.Time) bool {
	_, held := h.pressed[key]
	h.pressed[key] = now
	return !held
}

// Release returns the keys whose hold expired and removes them.
func (h *Holder) Release(now time.Time) []uint8 {
	var released []uint8
	for key := range KeyCount {
		at, ok := h.pressed[key]
		if !ok || now.Sub(at) < h.hold {
			continue
		}
		delete(h.pressed, key)
		released = append(released, key)
	}
	return released
}

// KeyCount is the number of keypad keys.
const KeyCount uint8 = 16
