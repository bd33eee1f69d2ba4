// Package pdftest generates PDF fixtures for tests.
//
// Every page of a generated document has a distinct width so that page
// order can be recovered from the page dimensions alone.
package pdftest

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/jung-kurt/gofpdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

const pageHeight = 200

// PageWidth returns the width in millimetres of the zero-based page index.
func PageWidth(index int) float64 {
	return 80 + float64(index)*5
}

// New returns a PDF with the given number of pages. pages must be at least 1.
func New(t testing.TB, pages int) []byte {
	t.Helper()
	require.GreaterOrEqual(t, pages, 1, "gofpdf always emits at least one page")

	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetFont("Helvetica", "", 14)
	for i := 0; i < pages; i++ {
		doc.AddPageFormat("P", gofpdf.SizeType{Wd: PageWidth(i), Ht: pageHeight})
		doc.Cell(40, 10, fmt.Sprintf("Page %d", i+1))
	}

	var buf bytes.Buffer
	require.NoError(t, doc.Output(&buf))
	return buf.Bytes()
}

// WriteFile writes a generated PDF with the given number of pages to path.
func WriteFile(t testing.TB, fsys afero.Fs, path string, pages int) {
	t.Helper()
	require.NoError(t, afero.WriteFile(fsys, path, New(t, pages), 0o644))
}

// PageWidths returns the page widths, in points, of the PDF stored at path.
func PageWidths(t testing.TB, fsys afero.Fs, path string) []float64 {
	t.Helper()
	data, err := afero.ReadFile(fsys, path)
	require.NoError(t, err)

	dims, err := api.PageDims(bytes.NewReader(data), nil)
	require.NoError(t, err)

	widths := make([]float64, 0, len(dims))
	for _, d := range dims {
		widths = append(widths, d.Width)
	}
	return widths
}
