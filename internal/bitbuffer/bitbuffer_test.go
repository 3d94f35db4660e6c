package bitbuffer

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestRead(t *testing.T) {
	buf := []byte{0b10101010}
	b := New(buf, 0)

	for i := range 4 {
		v, err := b.Read(i * 2)
		assert.NoError(t, err)
		assert.Equal(t, byte(0), v)

		v, err = b.Read(i*2 + 1)
		assert.NoError(t, err)
		assert.Equal(t, byte(1), v)
	}
}

func TestWrite(t *testing.T) {
	buf := make([]byte, 1)
	b := New(buf, 0)

	for i := range 4 {
		assert.NoError(t, b.Write(i*2, 0))
		assert.NoError(t, b.Write(i*2+1, 1))
	}
	assert.Equal(t, byte(0b10101010), buf[0])
}

func TestOffset(t *testing.T) {
	buf := make([]byte, 2)
	b := New(buf, 1)

	assert.NoError(t, b.Write(0, 1))
	assert.Equal(t, byte(0), buf[0])
	assert.Equal(t, byte(1), buf[1])
	assert.Equal(t, 8, b.Len())
}

func TestRoundTrip(t *testing.T) {
	buf := make([]byte, 4)
	b := New(buf, 0)

	for i := range b.Len() {
		for _, v := range []byte{1, 0, 1} {
			assert.NoError(t, b.Write(i, v))
			got, err := b.Read(i)
			assert.NoError(t, err)
			assert.Equal(t, v, got)
		}
	}
}

func TestIsolation(t *testing.T) {
	buf := []byte{0x00, 0xff}
	b := New(buf, 0)

	for i := range b.Len() {
		before := append([]byte(nil), buf...)
		value, err := b.Read(i)
		assert.NoError(t, err)
		assert.NoError(t, b.Write(i, value^1))

		for j := range b.Len() {
			if j == i {
				continue
			}
			got, err := b.Read(j)
			assert.NoError(t, err)
			want := (before[j/8] >> (j % 8)) & 1
			assert.Equal(t, want, got)
		}
		assert.NoError(t, b.Write(i, value))
	}
}

func TestSharedBuffer(t *testing.T) {
	buf := make([]byte, 4)
	low := New(buf, 0)
	high := New(buf, 2)

	for i := range 16 {
		assert.NoError(t, high.Write(i, 1))
	}
	for i := range 16 {
		v, err := low.Read(i)
		assert.NoError(t, err)
		assert.Equal(t, byte(0), v)
	}
	assert.Equal(t, []byte{0x00, 0x00, 0xff, 0xff}, buf)
}

func TestErrors(t *testing.T) {
	b := New(make([]byte, 1), 0)

	_, err := b.Read(8)
	assert.True(t, errors.Is(err, ErrOutOfBounds))

	_, err = b.Read(-1)
	assert.True(t, errors.Is(err, ErrOutOfBounds))

	err = b.Write(8, 1)
	assert.True(t, errors.Is(err, ErrOutOfBounds))

	err = b.Write(0, 2)
	assert.True(t, errors.Is(err, ErrInvalidBitValue))

	empty := New(make([]byte, 1), 4)
	assert.Equal(t, 0, empty.Len())
	_, err = empty.Read(0)
	assert.True(t, errors.Is(err, ErrOutOfBounds))
}
