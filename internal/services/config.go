package services

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Lllllllleong/pdfchunker/internal/chunk"
)

const (
	// DefaultPagesPerChunk is the number of pages written to each artifact.
	DefaultPagesPerChunk = 2

	// DefaultExtension is the file extension, without the dot, of processed files.
	DefaultExtension = "pdf"
)

// ChunkerConfig holds the directories and chunking parameters of a batch.
type ChunkerConfig struct {
	InputDir      string
	FinishedDir   string
	ErrorDir      string
	OutputDir     string
	PagesPerChunk int
	Extension     string
}

// DefaultChunkerConfig lays out input/, finished/, error/ and output/
// under root with the default chunk size and extension.
func DefaultChunkerConfig(root string) ChunkerConfig {
	return ChunkerConfig{
		InputDir:      filepath.Join(root, "input"),
		FinishedDir:   filepath.Join(root, "finished"),
		ErrorDir:      filepath.Join(root, "error"),
		OutputDir:     filepath.Join(root, "output"),
		PagesPerChunk: DefaultPagesPerChunk,
		Extension:     DefaultExtension,
	}
}

// Validate checks that the configuration can drive a batch.
func (c ChunkerConfig) Validate() error {
	var errs []error
	if c.PagesPerChunk < 1 {
		errs = append(errs, fmt.Errorf("pages per chunk: %w: got %d", chunk.ErrInvalidChunkSize, c.PagesPerChunk))
	}
	if c.Extension == "" || strings.HasPrefix(c.Extension, ".") {
		errs = append(errs, fmt.Errorf("extension must be set without a leading dot, got %q", c.Extension))
	}
	dirs := map[string]string{
		"input":    c.InputDir,
		"finished": c.FinishedDir,
		"error":    c.ErrorDir,
		"output":   c.OutputDir,
	}
	for _, name := range []string{"input", "finished", "error", "output"} {
		if dirs[name] == "" {
			errs = append(errs, fmt.Errorf("%s directory must be set", name))
		}
	}
	if c.OutputDir != "" && filepath.Clean(c.OutputDir) == filepath.Clean(c.FinishedDir) {
		errs = append(errs, errors.New("output and finished directories must differ"))
	}
	return errors.Join(errs...)
}
