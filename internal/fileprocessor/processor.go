// Package fileprocessor handles file loading and processing operations
package fileprocessor

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/retroenv/retrochip8/internal/disasm"
	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// ProcessFile loads a program file and writes its disassembly to the output
// file or stdout.
func ProcessFile(ctx context.Context, logger *log.Logger, opts options.Program, disasmOptions options.Disassembler) error {
	data, err := loader.New().Load(opts.Input)
	if err != nil {
		return fmt.Errorf("loading program: %w", err)
	}

	if !opts.Quiet {
		logger.Info("Processing CHIP-8 program",
			log.String("file", opts.Input),
			log.Int("size", len(data)),
		)
	}

	writer, err := createWriter(opts)
	if err != nil {
		return fmt.Errorf("creating writer: %w", err)
	}
	defer func() {
		if closer, ok := writer.(io.Closer); ok && writer != os.Stdout {
			_ = closer.Close()
		}
	}()

	return Disassemble(ctx, logger, data, disasmOptions, writer)
}

// Disassemble writes the disassembly of the program image to the writer.
func Disassemble(ctx context.Context, logger *log.Logger, data []byte, disasmOptions options.Disassembler,
	writer io.Writer) error {

	dis, err := disasm.New(logger, data, disasmOptions)
	if err != nil {
		return fmt.Errorf("creating disassembler: %w", err)
	}

	if _, err := dis.Process(ctx, writer); err != nil {
		return fmt.Errorf("disassembling: %w", err)
	}
	return nil
}

// GetFilesToProcess returns list of files to process based on options
func GetFilesToProcess(opts *options.Program) ([]string, error) {
	if opts.Batch != "" {
		matches, err := filepath.Glob(opts.Batch)
		if err != nil {
			return nil, fmt.Errorf("globbing batch pattern: %w", err)
		}
		return matches, nil
	}
	return []string{opts.Input}, nil
}

// GenerateOutputFilename generates output filename for a given input file
func GenerateOutputFilename(inputFile string) string {
	ext := filepath.Ext(inputFile)
	return inputFile[:len(inputFile)-len(ext)] + ".asm"
}

func createWriter(opts options.Program) (io.Writer, error) {
	if opts.Output == "" {
		return os.Stdout, nil
	}

	file, err := os.Create(opts.Output)
	if err != nil {
		return nil, fmt.Errorf("creating output file %s: %w", opts.Output, err)
	}
	return file, nil
}
