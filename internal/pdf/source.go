// Package pdf loads source documents and writes chunk artifacts with pdfcpu.
package pdf

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/spf13/afero"
)

// Sentinel errors for document operations.
var (
	// ErrUnreadableDocument is returned when a file cannot be read or parsed as a PDF.
	ErrUnreadableDocument = errors.New("unreadable document")

	// ErrPageOutOfRange is returned for a page index outside [0, PageCount).
	ErrPageOutOfRange = errors.New("page index out of range")

	// ErrWriteFailure is returned when an artifact cannot be serialized or persisted.
	ErrWriteFailure = errors.New("failed to write artifact")

	// ErrArtifactExists is returned when an artifact's filename is already taken.
	ErrArtifactExists = errors.New("artifact already exists")
)

// Document is a loaded source PDF. It is immutable once opened.
type Document struct {
	path      string
	data      []byte
	pageCount int
}

// Page references a single page of a Document.
type Page struct {
	doc   *Document
	index int
}

// Index returns the zero-based page index.
func (p Page) Index() int { return p.index }

// Number returns the 1-based page number used by PDF page selections.
func (p Page) Number() int { return p.index + 1 }

// Document returns the document the page belongs to.
func (p Page) Document() *Document { return p.doc }

// Open reads path from fsys and parses it as a PDF.
func Open(fsys afero.Fs, path string) (doc *Document, err error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read %s: %w", ErrUnreadableDocument, path, err)
	}

	defer func() {
		if r := recover(); r != nil {
			doc, err = nil, fmt.Errorf("%w: failed to parse %s: %v", ErrUnreadableDocument, path, r)
		}
	}()
	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), newConfiguration())
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse %s: %w", ErrUnreadableDocument, path, err)
	}

	return &Document{path: path, data: data, pageCount: ctx.PageCount}, nil
}

// Path returns the path the document was opened from.
func (d *Document) Path() string { return d.path }

// PageCount returns the number of pages in the document.
func (d *Document) PageCount() int { return d.pageCount }

// Page returns the page at the zero-based index.
func (d *Document) Page(index int) (Page, error) {
	if index < 0 || index >= d.pageCount {
		return Page{}, fmt.Errorf("%w: %d not in [0, %d)", ErrPageOutOfRange, index, d.pageCount)
	}
	return Page{doc: d, index: index}, nil
}

// Name returns the base filename of the document.
func (d *Document) Name() string { return filepath.Base(d.path) }

func newConfiguration() *model.Configuration {
	cfg := model.NewDefaultConfiguration()
	cfg.ValidationMode = model.ValidationRelaxed
	return cfg
}
