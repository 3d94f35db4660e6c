package keypad

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		r     rune
		key   byte
		found bool
	}{
		{'1', 0x0, true},
		{'4', 0x3, true},
		{'q', 0x4, true},
		{'R', 0x7, true},
		{'a', 0x8, true},
		{'f', 0xB, true},
		{'z', 0xC, true},
		{'v', 0xF, true},
		{'5', 0, false},
		{' ', 0, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.r), func(t *testing.T) {
			key, found := Lookup(tt.r)
			assert.Equal(t, tt.found, found)
			assert.Equal(t, tt.key, key)
		})
	}
}

func TestRune(t *testing.T) {
	for key := range byte(16) {
		r, ok := Rune(key)
		assert.True(t, ok)

		back, ok := Lookup(r)
		assert.True(t, ok)
		assert.Equal(t, key, back)
	}

	_, ok := Rune(16)
	assert.False(t, ok)
}
