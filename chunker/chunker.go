// Package chunker splits text into contiguous chunks that fit a caller
// supplied capacity, preferring split points on the highest-ranked semantic
// boundary available (paragraph > sentence > word > grapheme > character,
// or the analogous levels for Markdown and source code).
//
// Three chunkers share one engine: TextChunker for plain text,
// MarkdownChunker for CommonMark / GitHub Flavored Markdown, and
// CodeChunker for Go source. Chunk sizes are measured by a pluggable
// sizer (characters by default, or a tokenizer from the tokenizer
// package), and chunks may optionally overlap.
package chunker

import (
	"fmt"
	"iter"

	"github.com/botirk38/semanticchunk/types"
)

// Chunker is the interface shared by the text, Markdown and code chunkers.
type Chunker interface {
	// Chunks yields the chunk texts in order.
	Chunks(text string) iter.Seq[string]

	// ChunkIndices yields each chunk with its byte offset into text.
	ChunkIndices(text string) iter.Seq[types.Chunk]

	// ChunkCharIndices yields each chunk with both its byte offset and its
	// offset in Unicode scalar values.
	ChunkCharIndices(text string) iter.Seq[types.Chunk]

	// ChunkAll collects ChunkIndices into a slice.
	ChunkAll(text string) []types.Chunk
}

// ChunkConfig holds configuration for chunking behavior.
type ChunkConfig struct {
	// Capacity is the valid size range for emitted chunks, measured in
	// the Sizer's units. Default: 512.
	Capacity Capacity

	// Overlap is the maximum size of content shared between adjacent
	// chunks, in the Sizer's units. A non-zero overlap must be less than
	// the desired capacity; zero is accepted at any capacity. Default: 0.
	Overlap int

	// Trim strips whitespace from the edges of each emitted chunk.
	// Reported offsets point at the post-trim left edge. The Markdown and
	// code chunkers preserve inner-line indentation when trimming.
	// Default: true.
	Trim bool

	// Sizer measures candidate chunks. Default: Characters.
	Sizer types.Sizer
}

// DefaultChunkConfig returns the default chunking configuration.
func DefaultChunkConfig() ChunkConfig {
	return ChunkConfig{
		Capacity: NewCapacity(512),
		Overlap:  0,
		Trim:     true,
		Sizer:    Characters{},
	}
}

// Validate checks if the chunk configuration is valid.
func (c ChunkConfig) Validate() error {
	if c.Capacity.desired < 0 || c.Capacity.max < c.Capacity.desired {
		return fmt.Errorf("%w: desired=%d max=%d", ErrInvalidCapacity, c.Capacity.desired, c.Capacity.max)
	}
	if c.Overlap < 0 {
		return ErrInvalidOverlap
	}
	if c.Overlap > 0 && c.Overlap >= c.Capacity.desired {
		return fmt.Errorf("%w: overlap=%d desired=%d", ErrOverlapTooLarge, c.Overlap, c.Capacity.desired)
	}
	if c.Sizer == nil {
		return ErrNilSizer
	}
	return nil
}
