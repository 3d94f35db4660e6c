// Package writer implements the assembly listing output of a disassembled program.
package writer

import (
	"fmt"
	"io"
	"strings"

	"github.com/retroenv/retrochip8/internal/program"
)

const dataBytesPerLine = 16

type lineWriterFunc func(line string, byteCount int) error

// Writer writes a program as assembly listing.
type Writer struct {
	app     *program.Program
	options Options
	writer  io.Writer
}

// Options of the writer.
type Options struct {
	OffsetComments bool
	ZeroBytes      bool // output trailing zero bytes
}

// New creates a new writer.
func New(app *program.Program, writer io.Writer, options Options) *Writer {
	return &Writer{
		app:     app,
		options: options,
		writer:  writer,
	}
}

// Write writes the header and all offsets of the program.
func (w Writer) Write() error {
	if err := w.WriteCommentHeader(); err != nil {
		return err
	}

	endIndex := len(w.app.Offsets)
	if !w.options.ZeroBytes {
		endIndex = w.app.LastNonZeroOffset()
	}
	return w.ProcessOffsets(endIndex)
}

// WriteCommentHeader writes the CRC32 checksum and code base address as comments to the output.
func (w Writer) WriteCommentHeader() error {
	if _, err := fmt.Fprintf(w.writer, "; CHIP-8 program disassembly\n"); err != nil {
		return fmt.Errorf("writing header comment: %w", err)
	}
	if _, err := fmt.Fprintf(w.writer, "; CRC32 checksum: %08x\n", w.app.Checksum); err != nil {
		return fmt.Errorf("writing checksum: %w", err)
	}
	if _, err := fmt.Fprintf(w.writer, "; Size: %d bytes\n\n", w.app.Size); err != nil {
		return fmt.Errorf("writing size: %w", err)
	}
	if _, err := fmt.Fprintf(w.writer, ".org $%03X\n\n", w.app.CodeBaseAddress); err != nil {
		return fmt.Errorf("writing org directive: %w", err)
	}
	return nil
}

// ProcessOffsets writes all offsets up to endIndex with their labels and comments.
// Consecutive data offsets are bundled into lines of multiple bytes.
func (w Writer) ProcessOffsets(endIndex int) error {
	previousLineWasCode := true

	for i := 0; i < endIndex; i++ {
		offset := w.app.Offsets[i]

		if err := w.writeLabel(i, offset); err != nil {
			return err
		}

		// print an empty line in case of data after code and vice versa
		isCode := offset.IsType(program.CodeOffset)
		if i > 0 && offset.Label == "" && isCode != previousLineWasCode {
			if _, err := fmt.Fprintln(w.writer); err != nil {
				return fmt.Errorf("writing line: %w", err)
			}
		}
		previousLineWasCode = isCode

		if isCode {
			if err := w.writeCodeLine(offset); err != nil {
				return fmt.Errorf("writing code line: %w", err)
			}
			continue
		}

		count, err := w.bundleDataWrites(i, endIndex)
		if err != nil {
			return err
		}
		i += count - 1
	}
	return nil
}

// BundleDataWrites bundles writes of data bytes to print dataBytesPerLine bytes per line.
func (w Writer) BundleDataWrites(data []byte, lineWriter lineWriterFunc) error {
	remaining := len(data)
	for i := 0; remaining > 0; {
		toWrite := min(remaining, dataBytesPerLine)

		buf := &strings.Builder{}
		buf.WriteString(".byte ")
		for j := range toWrite {
			if _, err := fmt.Fprintf(buf, "$%02X, ", data[i+j]); err != nil {
				return fmt.Errorf("writing data byte: %w", err)
			}
		}

		line := strings.TrimRight(buf.String(), ", ")

		if lineWriter != nil {
			if err := lineWriter(line, toWrite); err != nil {
				return fmt.Errorf("writing data line using custom writer: %w", err)
			}
		} else {
			if _, err := fmt.Fprintf(w.writer, "  %s\n", line); err != nil {
				return fmt.Errorf("writing data line: %w", err)
			}
		}

		i += toWrite
		remaining -= toWrite
	}

	return nil
}

func (w Writer) writeLabel(index int, offset program.Offset) error {
	if offset.Label == "" {
		return nil
	}

	if index > 0 {
		if _, err := fmt.Fprintln(w.writer); err != nil {
			return fmt.Errorf("writing line: %w", err)
		}
	}

	if _, err := fmt.Fprintf(w.writer, "%s:\n", offset.Label); err != nil {
		return fmt.Errorf("writing label: %w", err)
	}
	return nil
}

func (w Writer) writeCodeLine(offset program.Offset) error {
	if offset.Comment == "" {
		if _, err := fmt.Fprintf(w.writer, "  %s\n", offset.Code); err != nil {
			return fmt.Errorf("writing line: %w", err)
		}
	} else {
		if _, err := fmt.Fprintf(w.writer, "  %-30s ; %s\n", offset.Code, offset.Comment); err != nil {
			return fmt.Errorf("writing line: %w", err)
		}
	}
	return nil
}

// bundleDataWrites writes the data of consecutive unlabeled data offsets
// starting at startIndex and returns the number of processed offsets.
func (w Writer) bundleDataWrites(startIndex, endIndex int) (int, error) {
	var data []byte
	var addresses []uint16 // address of every data byte

	count := 0
	for i := startIndex; i < endIndex; i++ {
		offset := w.app.Offsets[i]
		if offset.IsType(program.CodeOffset) || (i > startIndex && offset.Label != "") {
			break
		}
		for j := range offset.Data {
			addresses = append(addresses, offset.Address+uint16(j))
		}
		data = append(data, offset.Data...)
		count++
	}

	written := 0
	lineWriter := func(line string, byteCount int) error {
		address := addresses[written]
		written += byteCount

		var err error
		if w.options.OffsetComments {
			_, err = fmt.Fprintf(w.writer, "  %-30s ; $%04X\n", line, address)
		} else {
			_, err = fmt.Fprintf(w.writer, "  %s\n", line)
		}
		return err
	}

	if err := w.BundleDataWrites(data, lineWriter); err != nil {
		return 0, err
	}
	return count, nil
}
