package pdf

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/Lllllllleong/pdfchunker/internal/chunk"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/spf13/afero"
)

// Artifact is a chunk written to disk.
type Artifact struct {
	Name  string
	Path  string
	Chunk chunk.Chunk
	Size  int64
}

// Writer writes chunk artifacts into a single output directory.
type Writer struct {
	fs   afero.Fs
	dir  string
	ext  string
	conf *model.Configuration
}

// NewWriter returns a Writer that creates ext files under dir.
func NewWriter(fsys afero.Fs, dir, ext string) *Writer {
	return &Writer{fs: fsys, dir: dir, ext: ext, conf: newConfiguration()}
}

// Write assembles the pages of c from doc into a new PDF and saves it.
// An existing file with the generated name is never overwritten.
func (w *Writer) Write(doc *Document, c chunk.Chunk) (Artifact, error) {
	selection := make([]string, 0, c.Size())
	for _, index := range c.Indices() {
		page, err := doc.Page(index)
		if err != nil {
			return Artifact{}, fmt.Errorf("%w: part %d: %w", ErrWriteFailure, c.Ordinal, err)
		}
		selection = append(selection, strconv.Itoa(page.Number()))
	}

	var buf bytes.Buffer
	if err := api.Trim(bytes.NewReader(doc.data), &buf, selection, w.conf); err != nil {
		return Artifact{}, fmt.Errorf("%w: part %d: failed to assemble pages: %w", ErrWriteFailure, c.Ordinal, err)
	}

	name := ArtifactName(BaseName(doc.path, w.ext), c, w.ext)
	path := filepath.Join(w.dir, name)
	size, err := w.create(path, &buf)
	if err != nil {
		return Artifact{}, fmt.Errorf("%w: %s: %w", ErrWriteFailure, name, err)
	}
	return Artifact{Name: name, Path: path, Chunk: c, Size: size}, nil
}

// Remove deletes a previously written artifact.
func (w *Writer) Remove(a Artifact) error {
	return w.fs.Remove(a.Path)
}

func (w *Writer) create(path string, r io.Reader) (int64, error) {
	f, err := w.fs.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return 0, ErrArtifactExists
		}
		return 0, err
	}
	n, err := io.Copy(f, r)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = w.fs.Remove(path)
		return 0, err
	}
	return n, nil
}
