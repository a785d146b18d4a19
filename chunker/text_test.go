package chunker

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/botirk38/semanticchunk/types"
)

func newTextChunker(t *testing.T, capacity Capacity, overlap int, trim bool) *TextChunker {
	t.Helper()
	config := DefaultChunkConfig()
	config.Capacity = capacity
	config.Overlap = overlap
	config.Trim = trim

	chunker, err := NewTextChunker(config)
	require.NoError(t, err)
	return chunker
}

func collectChunks(c Chunker, text string) []string {
	return slices.Collect(c.Chunks(text))
}

func collectIndices(c Chunker, text string) []types.Chunk {
	return slices.Collect(c.ChunkIndices(text))
}

func TestTextChunker_EmptyInput(t *testing.T) {
	chunker := newTextChunker(t, NewCapacity(100), 0, false)

	assert.Empty(t, collectChunks(chunker, ""))
}

func TestTextChunker_SingleChunkWhenTextFits(t *testing.T) {
	chunker := newTextChunker(t, NewCapacity(100), 0, false)

	assert.Equal(t, []string{"short text"}, collectChunks(chunker, "short text"))
}

func TestTextChunker_FixedRuns(t *testing.T) {
	chunker := newTextChunker(t, NewCapacity(4), 0, false)

	chunks := collectIndices(chunker, "aaaabbbbcccc")

	assert.Equal(t, []types.Chunk{
		{Text: "aaaa", ByteOffset: 0},
		{Text: "bbbb", ByteOffset: 4},
		{Text: "cccc", ByteOffset: 8},
	}, chunks)
}

func TestTextChunker_SplitsAtWordBoundaries(t *testing.T) {
	chunker := newTextChunker(t, NewCapacity(7), 0, false)

	chunks := collectChunks(chunker, "one two three four")

	assert.Equal(t, []string{"one two", " three ", "four"}, chunks)
}

func TestTextChunker_PrefersParagraphOverLineBreak(t *testing.T) {
	chunker := newTextChunker(t, NewCapacity(3), 0, false)

	chunks := collectChunks(chunker, "A\n\nB\nC")

	assert.Equal(t, []string{"A\n\n", "B\nC"}, chunks)
}

func TestTextChunker_CapacityRangeStopsAtFits(t *testing.T) {
	capacity, err := NewCapacityRange(10, 20)
	require.NoError(t, err)
	chunker := newTextChunker(t, capacity, 0, false)

	chunks := collectChunks(chunker, "The quick brown fox.")

	assert.Equal(t, []string{"The quick brown fox."}, chunks)
}

func TestTextChunker_Overlap(t *testing.T) {
	chunker := newTextChunker(t, NewCapacity(4), 2, false)

	chunks := collectIndices(chunker, "abcdefghij")

	assert.Equal(t, []types.Chunk{
		{Text: "abcd", ByteOffset: 0},
		{Text: "cdef", ByteOffset: 2},
		{Text: "efgh", ByteOffset: 4},
		{Text: "ghij", ByteOffset: 6},
	}, chunks)
}

func TestTextChunker_UnicodeCharacters(t *testing.T) {
	chunker := newTextChunker(t, NewCapacity(1), 0, false)

	assert.Equal(t, []string{"é", "é"}, collectChunks(chunker, "éé"))
}

func TestTextChunker_CustomSizerNeverSplitsBelowCharacters(t *testing.T) {
	config := DefaultChunkConfig()
	config.Capacity = NewCapacity(1)
	config.Trim = false
	config.Sizer = Bytes{}

	chunker, err := NewTextChunker(config)
	require.NoError(t, err)

	// each é is two bytes, which exceeds the capacity, but a character is
	// the smallest atom
	assert.Equal(t, []string{"é", "é"}, collectChunks(chunker, "éé"))
}

func TestTextChunker_ChunkByGraphemes(t *testing.T) {
	chunker := newTextChunker(t, NewCapacity(3), 0, false)

	chunks := collectChunks(chunker, "a\u0310\u00e9o\u0332\r\n")

	// \r\n is a single grapheme cluster, never separated
	assert.Equal(t, []string{"a\u0310\u00e9", "o\u0332", "\r\n"}, chunks)
}

func TestTextChunker_GraphemesFallBackToChars(t *testing.T) {
	chunker := newTextChunker(t, NewCapacity(1), 0, false)

	chunks := collectChunks(chunker, "a\u0310\u00e9\r\n")

	assert.Equal(t, []string{"a", "\u0310", "\u00e9", "\r", "\n"}, chunks)
}

func TestTextChunker_ChunkBySentences(t *testing.T) {
	chunker := newTextChunker(t, NewCapacity(21), 0, false)

	chunks := collectChunks(chunker, "Mr. Fox jumped. [...] The dog was too lazy.")

	assert.Equal(t, []string{"Mr. Fox jumped. ", "[...] ", "The dog was too lazy."}, chunks)
}

func TestTextChunker_SentencesFallBackToWords(t *testing.T) {
	chunker := newTextChunker(t, NewCapacity(16), 0, false)

	chunks := collectChunks(chunker, "Mr. Fox jumped. [...] The dog was too lazy.")

	assert.Equal(t, []string{"Mr. Fox jumped. ", "[...] ", "The dog was too ", "lazy."}, chunks)
}

func TestTextChunker_TrimCharIndices(t *testing.T) {
	chunker := newTextChunker(t, NewCapacity(1), 0, true)

	chunks := collectIndices(chunker, " a b ")

	assert.Equal(t, []types.Chunk{
		{Text: "a", ByteOffset: 1},
		{Text: "b", ByteOffset: 3},
	}, chunks)
}

func TestTextChunker_TrimWordIndices(t *testing.T) {
	chunker := newTextChunker(t, NewCapacity(10), 0, true)

	chunks := collectIndices(chunker, "Some text from a document")

	assert.Equal(t, []types.Chunk{
		{Text: "Some text", ByteOffset: 0},
		{Text: "from a", ByteOffset: 10},
		{Text: "document", ByteOffset: 17},
	}, chunks)
}

func TestTextChunker_TrimParagraphIndices(t *testing.T) {
	chunker := newTextChunker(t, NewCapacity(10), 0, true)

	chunks := collectIndices(chunker, "Some text\n\nfrom a\ndocument")

	assert.Equal(t, []types.Chunk{
		{Text: "Some text", ByteOffset: 0},
		{Text: "from a", ByteOffset: 11},
		{Text: "document", ByteOffset: 18},
	}, chunks)
}

func TestTextChunker_ZeroCapacityEmitsSingleCharacters(t *testing.T) {
	chunker := newTextChunker(t, NewCapacity(0), 0, false)

	chunks := collectChunks(chunker, "abc")

	assert.Equal(t, []string{"a", "b", "c"}, chunks)
}

func TestTextProvider_ParseNewlineRuns(t *testing.T) {
	ranges := textProvider{}.parse("\r\n\r\ntext\n\n\ntext2")

	assert.Equal(t, []boundary{
		{level: LevelSentence + 2, start: 0, end: 4},
		{level: LevelSentence + 3, start: 8, end: 11},
	}, ranges)
}
