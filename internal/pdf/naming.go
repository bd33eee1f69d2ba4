package pdf

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Lllllllleong/pdfchunker/internal/chunk"
)

// ArtifactName builds the output filename for chunk c of a document whose
// filename without extension is base. Page numbers are 1-based.
func ArtifactName(base string, c chunk.Chunk, ext string) string {
	return fmt.Sprintf("%s_Part_%d_with_Pages_%d_to_%d.%s", base, c.Ordinal, c.First+1, c.Last+1, ext)
}

// BaseName strips ".ext" from the filename of path, falling back to the
// filename's own extension when it does not end in ext.
func BaseName(path, ext string) string {
	name := filepath.Base(path)
	if trimmed, ok := strings.CutSuffix(name, "."+ext); ok {
		return trimmed
	}
	return strings.TrimSuffix(name, filepath.Ext(name))
}
