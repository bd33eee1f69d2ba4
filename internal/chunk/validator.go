// Package chunk validates page counts and partitions pages into
// fixed-size, contiguous chunks.
package chunk

import (
	"errors"
	"fmt"
)

// Validation errors returned by Validate.
var (
	// ErrTooFewPages is returned when a document has fewer pages than one chunk.
	ErrTooFewPages = errors.New("too few pages")

	// ErrNotDivisible is returned when the page count leaves a partial trailing chunk.
	ErrNotDivisible = errors.New("page count is not divisible by chunk size")

	// ErrInvalidChunkSize is returned when the chunk size is below 1.
	ErrInvalidChunkSize = errors.New("chunk size must be at least 1")
)

// Validate reports whether pageCount pages can be split into chunks of
// exactly size pages. Partial trailing chunks are rejected, never truncated.
func Validate(pageCount, size int) error {
	if size < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidChunkSize, size)
	}
	if pageCount < size {
		return fmt.Errorf("%w: %d pages, need at least %d", ErrTooFewPages, pageCount, size)
	}
	if pageCount%size != 0 {
		return fmt.Errorf("%w: %d pages into chunks of %d", ErrNotDivisible, pageCount, size)
	}
	return nil
}
