// Package keypad maps host keyboard keys to the 16 key hex key pad.
package keypad

import "unicode"

// Layout maps host keys to key pad keys 0x0-0xF in row order.
// The rows 1234, qwer, asdf and zxcv form a 4x4 grid on most keyboards.
const Layout = "1234qwerasdfzxcv"

// Event is a key pad state change.
type Event struct {
	Key  byte
	Down bool
}

// Lookup returns the key pad key for a host key. Letters are matched
// case-insensitively.
func Lookup(r rune) (byte, bool) {
	r = unicode.ToLower(r)
	for i, k := range Layout {
		if k == r {
			return byte(i), true
		}
	}
	return 0, false
}

// Rune returns the host key for a key pad key.
func Rune(key byte) (rune, bool) {
	if int(key) >= len(Layout) {
		return 0, false
	}
	return rune(Layout[key]), true
}
