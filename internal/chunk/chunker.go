package chunk

import "iter"

// Chunk is a contiguous range of zero-based page indices, First through
// Last inclusive. Ordinal is the 1-based position of the chunk in its
// document.
type Chunk struct {
	Ordinal int
	First   int
	Last    int
}

// Size returns the number of pages in the chunk.
func (c Chunk) Size() int {
	return c.Last - c.First + 1
}

// Indices returns the page indices covered by the chunk in ascending order.
func (c Chunk) Indices() []int {
	indices := make([]int, 0, c.Size())
	for i := c.First; i <= c.Last; i++ {
		indices = append(indices, i)
	}
	return indices
}

// Chunks returns the chunks of a document with pageCount pages split every
// size pages. The sequence is empty unless Validate(pageCount, size)
// succeeds, and it can be ranged over any number of times.
func Chunks(pageCount, size int) iter.Seq[Chunk] {
	return func(yield func(Chunk) bool) {
		if Validate(pageCount, size) != nil {
			return
		}
		for i := 0; i < pageCount/size; i++ {
			first := i * size
			c := Chunk{Ordinal: i + 1, First: first, Last: first + size - 1}
			if !yield(c) {
				return
			}
		}
	}
}

// Count returns how many chunks Chunks would yield.
func Count(pageCount, size int) int {
	if Validate(pageCount, size) != nil {
		return 0
	}
	return pageCount / size
}
