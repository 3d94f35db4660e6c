// Package loader handles program file loading operations.
package loader

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/retrochip8/internal/chip8"
)

// ErrEmptyProgram is returned for program images without any content.
var ErrEmptyProgram = errors.New("empty program")

// Loader handles loading program files from disk.
type Loader struct{}

// New creates a new program loader.
func New() *Loader {
	return &Loader{}
}

// Load reads a program file. Program files are bare instruction streams
// without any header that get loaded at the program start address.
func (l *Loader) Load(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	data, err := l.LoadFromReader(file)
	if err != nil {
		return nil, fmt.Errorf("loading file %s: %w", path, err)
	}
	return data, nil
}

// LoadFromReader reads a program image from the reader.
func (l *Loader) LoadFromReader(reader io.Reader) ([]byte, error) {
	// read one byte more than allowed to detect oversized images
	data, err := io.ReadAll(io.LimitReader(reader, chip8.MaxProgramSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading program: %w", err)
	}
	return l.LoadFromBytes(data)
}

// LoadFromBytes validates a program image.
func (l *Loader) LoadFromBytes(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, ErrEmptyProgram
	}
	if len(data) > chip8.MaxProgramSize {
		return nil, fmt.Errorf("%w: more than %d bytes", chip8.ErrProgramTooLarge, chip8.MaxProgramSize)
	}
	return data, nil
}
