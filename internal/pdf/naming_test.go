package pdf

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Lllllllleong/pdfchunker/internal/chunk"
)

func TestArtifactName(t *testing.T) {
	got := ArtifactName("report", chunk.Chunk{Ordinal: 2, First: 2, Last: 3}, "pdf")
	assert.Equal(t, "report_Part_2_with_Pages_3_to_4.pdf", got)
}

func TestBaseName(t *testing.T) {
	tests := []struct {
		path string
		ext  string
		want string
	}{
		{path: "input/report.pdf", ext: "pdf", want: "report"},
		{path: "input/nested/scan.v2.pdf", ext: "pdf", want: "scan.v2"},
		{path: "input/odd.PDF", ext: "pdf", want: "odd"},
		{path: "noext", ext: "pdf", want: "noext"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, BaseName(tt.path, tt.ext))
		})
	}
}
