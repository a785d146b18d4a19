package chunker

import (
	"iter"
	"sort"
	"unicode/utf8"

	"github.com/botirk38/semanticchunk/types"
)

// engine drives the chunking algorithm for one provider. The public
// chunkers embed it and differ only in their provider and trim policy.
type engine struct {
	config ChunkConfig
	prov   provider
	trim   trimPolicy
}

func newEngine(config ChunkConfig, prov provider, trim trimPolicy) (engine, error) {
	if err := config.Validate(); err != nil {
		return engine{}, err
	}
	return engine{config: config, prov: prov, trim: trim}, nil
}

// Chunks yields the chunk texts in order.
func (e *engine) Chunks(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		cur := e.newCursor(text)
		for {
			chunk, ok := cur.nextEmission()
			if !ok || !yield(chunk.Text) {
				return
			}
		}
	}
}

// ChunkIndices yields each chunk with its byte offset into text.
func (e *engine) ChunkIndices(text string) iter.Seq[types.Chunk] {
	return func(yield func(types.Chunk) bool) {
		cur := e.newCursor(text)
		for {
			chunk, ok := cur.nextEmission()
			if !ok || !yield(chunk) {
				return
			}
		}
	}
}

// ChunkCharIndices yields each chunk with both its byte offset and its
// offset in Unicode scalar values.
func (e *engine) ChunkCharIndices(text string) iter.Seq[types.Chunk] {
	return func(yield func(types.Chunk) bool) {
		cur := e.newCursor(text)
		var tracker charTracker
		for {
			chunk, ok := cur.nextEmission()
			if !ok {
				return
			}
			chunk.CharOffset = tracker.charOffset(text, chunk.ByteOffset)
			if !yield(chunk) {
				return
			}
		}
	}
}

// ChunkAll collects ChunkIndices into a slice.
func (e *engine) ChunkAll(text string) []types.Chunk {
	var chunks []types.Chunk
	for chunk := range e.ChunkIndices(text) {
		chunks = append(chunks, chunk)
	}
	return chunks
}

// chunkCursor is the explicit iteration state for one chunking call. All
// state is locally owned; dropping the cursor is the only cancellation
// needed.
type chunkCursor struct {
	config ChunkConfig
	prov   provider
	text   string
	sizer  *memoizedSizer
	ranges *splitRanges
	trim   trimPolicy

	// cursor is the byte offset the next chunk starts at (possibly pulled
	// back by overlap)
	cursor int
	// prevItemEnd suppresses emissions fully covered by the previous one
	prevItemEnd int
	// nextSections is reused across chunks to avoid reallocation
	nextSections []section
	// maxChunkSeen seeds the section fill target for later chunks
	maxChunkSeen int
}

func (e *engine) newCursor(text string) *chunkCursor {
	return &chunkCursor{
		config: e.config,
		prov:   e.prov,
		text:   text,
		sizer:  newMemoizedSizer(e.config.Sizer, text, e.trim, e.config.Trim),
		ranges: newSplitRanges(e.prov.parse(text)),
		trim:   e.trim,
	}
}

// nextEmission returns the next non-empty, not-already-covered chunk.
func (c *chunkCursor) nextEmission() (types.Chunk, bool) {
	for c.cursor < len(c.text) {
		chunk, ok := c.nextChunk()
		if !ok {
			return types.Chunk{}, false
		}
		if chunk.Text == "" {
			// trimmed away entirely; the cursor still advanced
			continue
		}
		itemEnd := chunk.ByteOffset + len(chunk.Text)
		if itemEnd <= c.prevItemEnd {
			// overlap already emitted this content
			continue
		}
		c.prevItemEnd = itemEnd
		return chunk, true
	}
	return types.Chunk{}, false
}

// nextChunk produces one chunk starting at the cursor and advances it.
func (c *chunkCursor) nextChunk() (types.Chunk, bool) {
	c.sizer.clear()
	c.ranges.advance(c.cursor)

	low := c.fillNextSections()
	if len(c.nextSections) == 0 {
		return types.Chunk{}, false
	}

	start, end := c.binarySearchNextChunk(low)
	c.updateCursor(end)

	if end-start > c.maxChunkSeen {
		c.maxChunkSeen = end - start
	}

	offset, text := start, c.text[start:end]
	if c.config.Trim {
		offset, text = c.trim.trim(offset, text)
	}
	return types.Chunk{ByteOffset: offset, Text: text}, true
}

// fallbackLevels are always available for any text, finest first.
var fallbackLevels = [...]Level{LevelCharacter, LevelGrapheme, LevelWord, LevelSentence}

// findStartLevel picks the highest level whose first section at the cursor
// still fits within the max capacity. It returns level 0 when not even a
// single character fits; the caller then emits the minimal atom anyway.
// maxOffset, when >= 0, is the end of the first too-large section at the
// next level up, bounding how far sections need to be enumerated.
func (c *chunkCursor) findStartLevel() (Level, int) {
	chosen := Level(0)
	maxOffset := -1
	prevEnd := -1

	probe := func(level Level, end int) bool {
		if end == prevEnd {
			// same text as the previous level, no need to re-measure
			chosen = level
			return true
		}
		_, fit := c.sizer.checkCapacity(c.cursor, end, c.config.Capacity)
		if fit == types.TooLarge {
			maxOffset = end
			return false
		}
		chosen = level
		prevEnd = end
		return true
	}

	for _, level := range fallbackLevels {
		first, ok := newFallbackStream(c.text, c.cursor, level).next()
		if !ok {
			return chosen, maxOffset
		}
		if !probe(level, first.end) {
			return chosen, maxOffset
		}
	}
	for _, level := range c.ranges.levelsAfter(c.cursor) {
		stream := newSectionStream(c.text, c.prov, c.ranges.after(), c.cursor, level)
		first, ok := stream.next()
		if !ok {
			break
		}
		if !probe(level, first.end) {
			break
		}
	}
	return chosen, maxOffset
}

// fillNextSections populates nextSections with candidate sections at the
// chosen level, growing the list incrementally so huge documents only pay
// for the range the binary search will actually consider. It returns the
// lower bound index for the binary search.
func (c *chunkCursor) fillNextSections() int {
	c.nextSections = c.nextSections[:0]

	chosen, maxOffset := c.findStartLevel()

	var source sectionSource
	if chosen >= levelProvider {
		source = newSectionStream(c.text, c.prov, c.ranges.after(), c.cursor, chosen)
	} else {
		level := chosen
		if level < LevelCharacter {
			level = LevelCharacter
		}
		source = newFallbackStream(c.text, c.cursor, level)
	}

	low := 0
	prevEqualsSize := -1
	maxCap := c.config.Capacity.Max()
	target := c.maxChunkSeen
	if target == 0 {
		target = maxCap
	}
	exhausted := false

	for !exhausted {
		prevNum := len(c.nextSections)
		for {
			s, ok := source.next()
			if !ok {
				exhausted = true
				break
			}
			if maxOffset >= 0 && s.start > maxOffset {
				exhausted = true
				break
			}
			if s.end == s.start {
				continue
			}
			c.nextSections = append(c.nextSections, s)
			if s.end > c.cursor+target {
				break
			}
		}
		if len(c.nextSections) == prevNum {
			break
		}

		last := c.nextSections[len(c.nextSections)-1]
		size, fit := c.sizer.checkCapacity(c.cursor, last.end, c.config.Capacity)

		if fit != types.TooLarge {
			// grow the fill target based on the average section density so
			// the next batch lands near the capacity boundary
			finalOffset := last.end - c.cursor
			sz := size
			if sz < 1 {
				sz = 1
			}
			diff := maxCap - sz
			if diff < 1 {
				diff = 1
			}
			avgSize := finalOffset/sz + 1
			grow := diff * avgSize
			if grow < finalOffset/10 {
				grow = finalOffset / 10
			}
			target = finalOffset + grow + 1
		}

		switch fit {
		case types.TooSmall:
			low = len(c.nextSections) - 1
		case types.Fits:
			// a bigger equals after a smaller one means the plateau is over
			if prevEqualsSize >= 0 && prevEqualsSize < size {
				exhausted = true
			}
			prevEqualsSize = size
		case types.TooLarge:
			exhausted = true
		}
	}

	return low
}

// binarySearchNextChunk finds the largest prefix of nextSections that fits
// the capacity. Because the sizer is monotone, fit is monotone in the
// prefix length. Ties between Fits candidates resolve to the shorter text,
// and a trailing run of sections that add no measured size is folded in.
func (c *chunkCursor) binarySearchNextChunk(low int) (int, int) {
	start := c.cursor
	end := c.cursor
	high := len(c.nextSections) - 1
	bestIdx := -1
	bestSize := 0
	equalsFound := false

	for low <= high {
		mid := low + (high-low)/2
		textEnd := c.nextSections[mid].end
		size, fit := c.sizer.checkCapacity(start, textEnd, c.config.Capacity)

		switch fit {
		case types.TooSmall:
			if textEnd > end {
				end = textEnd
				bestIdx = mid
				bestSize = size
			}
		case types.Fits:
			if textEnd < end || !equalsFound {
				end = textEnd
				bestIdx = mid
				bestSize = size
			}
			equalsFound = true
		case types.TooLarge:
			// on the smallest run we must still return one section, even
			// oversize: the minimal atom
			if mid == 0 && start == end {
				end = textEnd
				bestIdx = mid
				bestSize = size
			}
		}

		if fit == types.TooSmall {
			low = mid + 1
		} else if mid > 0 {
			high = mid - 1
		} else {
			break
		}
	}

	if bestIdx >= 0 {
		for i := bestIdx + 1; i < len(c.nextSections); i++ {
			textEnd := c.nextSections[i].end
			size := c.sizer.sizeRange(start, textEnd)
			if size > bestSize {
				break
			}
			if textEnd > end {
				end = textEnd
			}
		}
	}

	return start, end
}

// updateCursor advances the cursor past the emitted chunk, or pulls it
// back into the chunk's trailing sections when overlap is configured.
func (c *chunkCursor) updateCursor(end int) {
	if c.config.Overlap == 0 {
		c.cursor = end
		return
	}

	prev := c.cursor
	start := end
	high := sort.Search(len(c.nextSections), func(i int) bool {
		return c.nextSections[i].end >= end
	})
	if high >= len(c.nextSections) {
		high = len(c.nextSections) - 1
	}
	low := 0

	for low <= high {
		mid := low + (high-low)/2
		offset := c.nextSections[mid].start
		size := c.sizer.sizeRange(offset, end)

		// whole trailing sections only, and always strictly forward of the
		// previous chunk start
		if size <= c.config.Overlap && offset < start && offset > prev {
			start = offset
		}

		if size < c.config.Overlap && mid > 0 {
			high = mid - 1
		} else {
			low = mid + 1
		}
	}

	c.cursor = start
}

// charTracker converts byte offsets to Unicode scalar value offsets with a
// single forward pass. Emissions are monotone in byte offset, so the work
// is amortized O(1); a backwards jump recounts from zero.
type charTracker struct {
	lastByte int
	lastChar int
}

func (t *charTracker) charOffset(text string, byteOffset int) int {
	if byteOffset < t.lastByte {
		t.lastByte, t.lastChar = 0, 0
	}
	t.lastChar += utf8.RuneCountInString(text[t.lastByte:byteOffset])
	t.lastByte = byteOffset
	return t.lastChar
}
