package loader

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrogolib/assert"
)

func TestLoad(t *testing.T) {
	t.Run("load program file", func(t *testing.T) {
		tmpFile := createTempFile(t, []byte{0x12, 0x34, 0x56, 0x78})

		loader := New()
		data, err := loader.Load(tmpFile)
		assert.NoError(t, err)
		assert.Equal(t, []byte{0x12, 0x34, 0x56, 0x78}, data)
	})

	t.Run("load odd sized file", func(t *testing.T) {
		tmpFile := createTempFile(t, []byte{0x00, 0xE0, 0xFF})

		loader := New()
		data, err := loader.Load(tmpFile)
		assert.NoError(t, err)
		assert.Len(t, data, 3)
	})

	t.Run("error on non-existent file", func(t *testing.T) {
		loader := New()
		_, err := loader.Load("/nonexistent/file.ch8")
		assert.Error(t, err)
	})

	t.Run("error on empty file", func(t *testing.T) {
		tmpFile := createTempFile(t, nil)

		loader := New()
		_, err := loader.Load(tmpFile)
		assert.True(t, errors.Is(err, ErrEmptyProgram))
	})

	t.Run("error on too large file", func(t *testing.T) {
		tmpFile := createTempFile(t, make([]byte, chip8.MaxProgramSize+1))

		loader := New()
		_, err := loader.Load(tmpFile)
		assert.True(t, errors.Is(err, chip8.ErrProgramTooLarge))
	})
}

func TestLoadFromReader(t *testing.T) {
	tests := []struct {
		name string
		size int
		err  error
	}{
		{"empty", 0, ErrEmptyProgram},
		{"single instruction", 2, nil},
		{"maximum size", chip8.MaxProgramSize, nil},
		{"too large", chip8.MaxProgramSize + 1, chip8.ErrProgramTooLarge},
		{"much too large", chip8.MemorySize * 2, chip8.ErrProgramTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader := New()
			data, err := loader.LoadFromReader(bytes.NewReader(make([]byte, tt.size)))
			if tt.err != nil {
				assert.True(t, errors.Is(err, tt.err))
				return
			}
			assert.NoError(t, err)
			assert.Len(t, data, tt.size)
		})
	}
}

func createTempFile(t *testing.T, data []byte) string {
	t.Helper()
	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "test.ch8")
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	return tmpFile
}
