// Package bitbuffer provides bit level addressing of a byte buffer.
package bitbuffer

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfBounds is returned when a bit index addresses a byte outside of the buffer.
	ErrOutOfBounds = errors.New("bit index out of bounds")
	// ErrInvalidBitValue is returned when a bit is written with a value other than 0 or 1.
	ErrInvalidBitValue = errors.New("invalid bit value")
)

// BitBuffer exposes a byte buffer starting at a fixed byte offset as a
// sequence of individually addressable bits. Bit 0 is the least significant
// bit of the first byte.
type BitBuffer struct {
	buf    []byte
	offset int
}

// New returns a bit view of buf starting at the given byte offset.
// The buffer is referenced, not copied.
func New(buf []byte, offset int) *BitBuffer {
	return &BitBuffer{
		buf:    buf,
		offset: offset,
	}
}

// Len returns the number of bits addressable from the offset to the end of the buffer.
func (b *BitBuffer) Len() int {
	if b.offset >= len(b.buf) {
		return 0
	}
	return (len(b.buf) - b.offset) * 8
}

// Read returns the value of bit i, either 0 or 1.
func (b *BitBuffer) Read(i int) (byte, error) {
	index, mask, err := b.locate(i)
	if err != nil {
		return 0, err
	}
	if b.buf[index]&mask != 0 {
		return 1, nil
	}
	return 0, nil
}

// Write sets bit i to v, which has to be 0 or 1.
func (b *BitBuffer) Write(i int, v byte) error {
	index, mask, err := b.locate(i)
	if err != nil {
		return err
	}

	switch v {
	case 0:
		b.buf[index] &^= mask
	case 1:
		b.buf[index] |= mask
	default:
		return fmt.Errorf("%w: %d", ErrInvalidBitValue, v)
	}
	return nil
}

// locate returns the buffer index and bit mask of bit i.
func (b *BitBuffer) locate(i int) (int, byte, error) {
	if i < 0 {
		return 0, 0, fmt.Errorf("%w: %d", ErrOutOfBounds, i)
	}
	index := b.offset + i/8
	if index < 0 || index >= len(b.buf) {
		return 0, 0, fmt.Errorf("%w: %d", ErrOutOfBounds, i)
	}
	return index, 1 << (i % 8), nil
}
